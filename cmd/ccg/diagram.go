package main

import (
	"context"
	"fmt"

	"github.com/codebase-genius/ccg/internal/export"
)

func runDiagram(flags cliFlags) error {
	snap, err := loadPersisted(context.Background(), flags.ProjectRoot)
	if err != nil {
		return err
	}

	maxNodes := flags.MaxNodes
	if maxNodes <= 0 {
		maxNodes = export.DefaultMaxNodes
	}

	fmt.Print(export.Mermaid(snap, maxNodes))
	return nil
}

package main

import (
	"context"
	"fmt"
)

func runStats(flags cliFlags) error {
	snap, err := loadPersisted(context.Background(), flags.ProjectRoot)
	if err != nil {
		return err
	}

	st := snap.Stats
	fmt.Printf("nodes: %d\n", st.NodeCount)
	fmt.Printf("edges: %d\n", st.EdgeCount)
	fmt.Printf("files: %d\n", st.FileCount)
	fmt.Printf("avg connections: %.2f\n", st.AvgConnections)
	return nil
}

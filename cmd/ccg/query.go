package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/codebase-genius/ccg/internal/graph"
)

// loadPersisted opens the graph persisted by a previous analyze run.
func loadPersisted(ctx context.Context, projectRoot string) (*graph.Snapshot, error) {
	graphPath := filepath.Join(projectRoot, ".ccg", "graph")
	if _, err := os.Stat(graphPath); err != nil {
		return nil, fmt.Errorf("no graph found at %s\nRun 'ccg analyze' first to build one", graphPath)
	}

	store, err := graph.NewKuzuFileStore(graphPath)
	if err != nil {
		return nil, fmt.Errorf("open graph: %w", err)
	}
	defer store.Close()

	snap, err := store.LoadSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("load graph: %w", err)
	}
	return snap, nil
}

func runQuery(flags cliFlags, name string) error {
	kind := graph.QueryKind(flags.Kind)
	switch kind {
	case graph.QueryInfo, graph.QueryCallees, graph.QueryCallers:
	default:
		return fmt.Errorf("unknown query kind: %s", flags.Kind)
	}

	snap, err := loadPersisted(context.Background(), flags.ProjectRoot)
	if err != nil {
		return err
	}

	result := graph.Query(snap, kind, name)
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

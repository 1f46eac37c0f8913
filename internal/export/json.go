package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/codebase-genius/ccg/internal/graph"
)

// SnapshotJSON marshals a snapshot with indentation, suitable for piping
// into other tooling.
func SnapshotJSON(snap *graph.Snapshot) ([]byte, error) {
	out, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return append(out, '\n'), nil
}

// WriteSnapshot writes the snapshot JSON to path, creating parent
// directories as needed.
func WriteSnapshot(path string, snap *graph.Snapshot) error {
	data, err := SnapshotJSON(snap)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

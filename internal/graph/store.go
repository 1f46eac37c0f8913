package graph

import (
	"context"
	"errors"
	"io"
)

// ErrNoGraph is returned by LoadSnapshot when the store holds no persisted
// graph yet.
var ErrNoGraph = errors.New("no persisted graph")

// Store persists assembled graph snapshots between process invocations.
// The analysis run itself always works against the in-memory ContextGraph;
// a store only carries the finished snapshot so diagram and query commands
// can run without re-analyzing the repository.
type Store interface {
	io.Closer

	// InitSchema prepares the backing tables. Called once before any save.
	InitSchema(ctx context.Context) error

	// SaveSnapshot replaces the persisted graph with snap.
	SaveSnapshot(ctx context.Context, snap *Snapshot) error

	// LoadSnapshot reconstructs the most recently saved snapshot, with
	// adjacency order preserved. Returns ErrNoGraph when nothing was saved.
	LoadSnapshot(ctx context.Context) (*Snapshot, error)
}

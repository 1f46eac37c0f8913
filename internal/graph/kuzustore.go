//go:build cgo

package graph

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	kuzu "github.com/kuzudb/go-kuzu"

	"github.com/codebase-genius/ccg/internal/extract"
)

// KuzuStore implements Store on a KuzuDB database. It requires CGO because
// the go-kuzu driver wraps KuzuDB's C library.
type KuzuStore struct {
	db   *kuzu.Database
	conn *kuzu.Connection
}

// Compile-time check that KuzuStore satisfies Store.
var _ Store = (*KuzuStore)(nil)

// NewKuzuStore creates a KuzuStore backed by an in-memory KuzuDB instance,
// used by tests and one-shot pipelines.
func NewKuzuStore() (*KuzuStore, error) {
	return openKuzu(":memory:")
}

// NewKuzuFileStore creates a KuzuStore backed by a file-based KuzuDB at the
// given directory path, so a graph built once can serve later diagram and
// query invocations. KuzuDB creates the leaf directory itself.
func NewKuzuFileStore(dbPath string) (*KuzuStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("kuzu: create parent directory: %w", err)
	}
	return openKuzu(dbPath)
}

func openKuzu(path string) (*KuzuStore, error) {
	cfg := kuzu.DefaultSystemConfig()
	db, err := kuzu.OpenDatabase(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("kuzu: open database: %w", err)
	}
	conn, err := kuzu.OpenConnection(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("kuzu: open connection: %w", err)
	}
	return &KuzuStore{db: db, conn: conn}, nil
}

// Close releases the KuzuDB connection and database.
func (s *KuzuStore) Close() error {
	if s.conn != nil {
		s.conn.Close()
	}
	if s.db != nil {
		s.db.Close()
	}
	return nil
}

// ddlStatements defines the Cypher DDL executed by InitSchema. The seq
// column on REFERENCES preserves adjacency insertion order across a
// save/load round trip, which the diagram projector depends on.
var ddlStatements = []string{
	`CREATE NODE TABLE IF NOT EXISTS Entity(
		id STRING,
		name STRING,
		kind STRING,
		language STRING,
		file_path STRING,
		PRIMARY KEY(id)
	)`,
	`CREATE REL TABLE IF NOT EXISTS REFERENCES(FROM Entity TO Entity, rel_type STRING, seq INT64)`,
}

// InitSchema creates the node and relationship tables if they do not exist.
func (s *KuzuStore) InitSchema(_ context.Context) error {
	for _, stmt := range ddlStatements {
		res, err := s.conn.Query(stmt)
		if err != nil {
			return fmt.Errorf("kuzu: init schema: %w", err)
		}
		res.Close()
	}
	return nil
}

// SaveSnapshot clears the persisted graph and writes snap in full. Entities
// are written in sorted id order; edges in adjacency order with a global
// sequence number.
func (s *KuzuStore) SaveSnapshot(ctx context.Context, snap *Snapshot) error {
	if err := s.InitSchema(ctx); err != nil {
		return err
	}
	for _, stmt := range []string{
		"MATCH ()-[r:REFERENCES]->() DELETE r",
		"MATCH (e:Entity) DELETE e",
	} {
		res, err := s.conn.Query(stmt)
		if err != nil {
			return fmt.Errorf("kuzu: clear graph: %w", err)
		}
		res.Close()
	}

	ids := make([]string, 0, len(snap.Nodes))
	for id := range snap.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		ent := snap.Nodes[id]
		err := s.exec(
			`CREATE (e:Entity {id: $id, name: $name, kind: $kind, language: $lang, file_path: $fp})`,
			map[string]any{
				"id":   ent.ID,
				"name": ent.Name,
				"kind": string(ent.Kind),
				"lang": string(ent.Language),
				"fp":   ent.FilePath,
			},
		)
		if err != nil {
			return fmt.Errorf("kuzu: add entity %s: %w", ent.ID, err)
		}
	}

	fromIDs := make([]string, 0, len(snap.Edges))
	for fromID := range snap.Edges {
		fromIDs = append(fromIDs, fromID)
	}
	sort.Strings(fromIDs)

	seq := int64(0)
	for _, fromID := range fromIDs {
		for _, toID := range snap.Edges[fromID] {
			relType := snap.EdgeTypes[fromID+"->"+toID]
			if relType == "" {
				relType = EdgeTypeCalls
			}
			err := s.exec(
				`MATCH (a:Entity {id: $src}), (b:Entity {id: $dst})
				 CREATE (a)-[:REFERENCES {rel_type: $rt, seq: $seq}]->(b)`,
				map[string]any{"src": fromID, "dst": toID, "rt": relType, "seq": seq},
			)
			if err != nil {
				return fmt.Errorf("kuzu: add edge %s->%s: %w", fromID, toID, err)
			}
			seq++
		}
	}
	return nil
}

// LoadSnapshot reads the persisted entities and edges back and rebuilds the
// snapshot through a ContextGraph, so stats and edge-type flattening come
// out of the same code path as a fresh assembly.
func (s *KuzuStore) LoadSnapshot(ctx context.Context) (*Snapshot, error) {
	if err := s.InitSchema(ctx); err != nil {
		return nil, err
	}

	rows, err := s.query("MATCH (e:Entity) RETURN e.id, e.name, e.kind, e.language, e.file_path ORDER BY e.id", nil)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoGraph
	}

	g := NewContextGraph()
	for _, r := range rows {
		g.AddNode(Entity{
			ID:       toString(r[0]),
			Name:     toString(r[1]),
			Kind:     EntityKind(toString(r[2])),
			Language: extract.Language(toString(r[3])),
			FilePath: toString(r[4]),
		})
	}

	edgeRows, err := s.query(
		`MATCH (a:Entity)-[r:REFERENCES]->(b:Entity)
		 RETURN a.id, b.id, r.rel_type, r.seq ORDER BY r.seq`,
		nil,
	)
	if err != nil {
		return nil, err
	}
	for _, r := range edgeRows {
		g.AddEdge(toString(r[0]), toString(r[1]), toString(r[2]))
	}

	return g.Snapshot(), nil
}

// ---------- Internal helpers ----------

// exec runs a parameterized Cypher statement that produces no result rows.
func (s *KuzuStore) exec(cypher string, params map[string]any) error {
	stmt, err := s.conn.Prepare(cypher)
	if err != nil {
		return fmt.Errorf("kuzu: prepare: %w", err)
	}
	defer stmt.Close()

	res, err := s.conn.Execute(stmt, params)
	if err != nil {
		return fmt.Errorf("kuzu: execute: %w", err)
	}
	res.Close()
	return nil
}

// query runs a parameterized Cypher statement and collects all result rows.
// Each row is a []any slice with values in column order.
func (s *KuzuStore) query(cypher string, params map[string]any) ([][]any, error) {
	var res *kuzu.QueryResult
	var err error

	if len(params) == 0 {
		res, err = s.conn.Query(cypher)
	} else {
		var stmt *kuzu.PreparedStatement
		stmt, err = s.conn.Prepare(cypher)
		if err != nil {
			return nil, fmt.Errorf("kuzu: prepare: %w", err)
		}
		defer stmt.Close()
		res, err = s.conn.Execute(stmt, params)
	}
	if err != nil {
		return nil, fmt.Errorf("kuzu: query: %w", err)
	}
	defer res.Close()

	var rows [][]any
	for res.HasNext() {
		tuple, err := res.Next()
		if err != nil {
			return nil, fmt.Errorf("kuzu: next: %w", err)
		}
		vals, err := tuple.GetAsSlice()
		if err != nil {
			return nil, fmt.Errorf("kuzu: row values: %w", err)
		}
		rows = append(rows, vals)
	}
	return rows, nil
}

// toString coerces a KuzuDB result value to a string.
func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

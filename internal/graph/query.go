package graph

import (
	"fmt"
	"sort"
)

// QueryKind selects what a graph query reports about matching entities.
type QueryKind string

const (
	QueryInfo    QueryKind = "info"
	QueryCallees QueryKind = "callees"
	QueryCallers QueryKind = "callers"
)

// QueryMatch is one response block for one matching entity. Calls is
// populated for callees queries, CalledBy for callers queries; info queries
// carry the entity record alone.
type QueryMatch struct {
	Entity   Entity   `json:"entity"`
	Calls    []Entity `json:"calls,omitempty"`
	CalledBy []Entity `json:"called_by,omitempty"`
}

// QueryResult is either an error message (name matched nothing) or an
// ordered list of response blocks, one per matching entity.
type QueryResult struct {
	Error   string       `json:"error,omitempty"`
	Results []QueryMatch `json:"results,omitempty"`
}

// Query looks up entities by name (not id) in a snapshot. Names are not
// unique, so several files may each contribute a match; blocks are ordered
// by entity id so output is reproducible. Disambiguating across files is the
// caller's business.
func Query(snap *Snapshot, kind QueryKind, entityName string) QueryResult {
	var matchIDs []string
	for id, ent := range snap.Nodes {
		if ent.Name == entityName {
			matchIDs = append(matchIDs, id)
		}
	}
	if len(matchIDs) == 0 {
		return QueryResult{Error: fmt.Sprintf("entity %q not found", entityName)}
	}
	sort.Strings(matchIDs)

	results := make([]QueryMatch, 0, len(matchIDs))
	for _, id := range matchIDs {
		match := QueryMatch{Entity: snap.Nodes[id]}

		switch kind {
		case QueryCallees:
			for _, toID := range snap.Edges[id] {
				if target, ok := snap.Nodes[toID]; ok {
					match.Calls = append(match.Calls, target)
				}
			}
		case QueryCallers:
			match.CalledBy = snapshotCallers(snap, id)
		}

		results = append(results, match)
	}
	return QueryResult{Results: results}
}

// snapshotCallers scans every adjacency list for edges landing on id,
// visiting sources in sorted order.
func snapshotCallers(snap *Snapshot, id string) []Entity {
	fromIDs := make([]string, 0, len(snap.Edges))
	for fromID := range snap.Edges {
		fromIDs = append(fromIDs, fromID)
	}
	sort.Strings(fromIDs)

	var callers []Entity
	for _, fromID := range fromIDs {
		for _, toID := range snap.Edges[fromID] {
			if toID != id {
				continue
			}
			if source, ok := snap.Nodes[fromID]; ok {
				callers = append(callers, source)
			}
			break
		}
	}
	return callers
}

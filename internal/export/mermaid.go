// Package export renders assembled graph snapshots into their outward
// formats: a Mermaid flow diagram and indented JSON.
package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/codebase-genius/ccg/internal/graph"
)

// DefaultMaxNodes bounds the diagram to keep it readable; large graphs get
// their most-connected subset only.
const DefaultMaxNodes = 20

// mermaidID rewrites an entity id into an identifier Mermaid accepts.
// "::" must come before ":" so the id separator collapses to one underscore.
var mermaidID = strings.NewReplacer("::", "_", ":", "_", "/", "_", ".", "_")

// Mermaid produces a graph TD diagram from a snapshot, limited to the
// maxNodes entities with the highest out-degree. Ties are broken by id
// ascending (stable across runs). Edges are emitted only between selected
// entities, deduplicated per ordered pair, preserving recorded direction.
// maxNodes <= 0 yields the bare header.
func Mermaid(snap *graph.Snapshot, maxNodes int) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	selected := topByOutDegree(snap, maxNodes)
	selectedSet := make(map[string]bool, len(selected))
	for _, id := range selected {
		selectedSet[id] = true
	}

	for _, id := range selected {
		ent := snap.Nodes[id]
		cleanID := mermaidID.Replace(id)

		switch {
		case ent.Kind == graph.KindClass:
			sb.WriteString(fmt.Sprintf("    %s[\"%s\\n(%s)\"]\n", cleanID, ent.Name, ent.Kind))
			sb.WriteString(fmt.Sprintf("    style %s fill:#e1f5ff,stroke:#01579b\n", cleanID))
		case ent.Kind == graph.KindNode || ent.Kind == graph.KindWalker:
			sb.WriteString(fmt.Sprintf("    %s{\"%s\\n(%s)\"}\n", cleanID, ent.Name, ent.Kind))
			sb.WriteString(fmt.Sprintf("    style %s fill:#fff3e0,stroke:#e65100\n", cleanID))
		default:
			sb.WriteString(fmt.Sprintf("    %s(\"%s\\n(%s)\")\n", cleanID, ent.Name, ent.Kind))
			sb.WriteString(fmt.Sprintf("    style %s fill:#f3e5f5,stroke:#4a148c\n", cleanID))
		}
	}

	emitted := make(map[[2]string]bool)
	for _, fromID := range selected {
		for _, toID := range snap.Edges[fromID] {
			pair := [2]string{fromID, toID}
			if !selectedSet[toID] || emitted[pair] {
				continue
			}
			emitted[pair] = true
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", mermaidID.Replace(fromID), mermaidID.Replace(toID)))
		}
	}

	return sb.String()
}

// topByOutDegree ranks entity ids by outgoing edge count descending, id
// ascending, and returns at most maxNodes of them.
func topByOutDegree(snap *graph.Snapshot, maxNodes int) []string {
	if maxNodes <= 0 {
		return nil
	}

	ids := make([]string, 0, len(snap.Nodes))
	for id := range snap.Nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		di, dj := len(snap.Edges[ids[i]]), len(snap.Edges[ids[j]])
		if di != dj {
			return di > dj
		}
		return ids[i] < ids[j]
	})

	if len(ids) > maxNodes {
		ids = ids[:maxNodes]
	}
	return ids
}

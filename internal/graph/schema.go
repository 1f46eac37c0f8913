package graph

import "github.com/codebase-genius/ccg/internal/extract"

// EntityKind classifies declared code constructs.
type EntityKind string

const (
	KindFunction EntityKind = "function"
	KindClass    EntityKind = "class"
	KindStruct   EntityKind = "struct"
	KindEnum     EntityKind = "enum"
	KindTrait    EntityKind = "trait"
	// Jac kinds. These share a namespace within a file, so their entity ids
	// carry a kind prefix.
	KindWalker  EntityKind = "walker"
	KindNode    EntityKind = "node"
	KindAbility EntityKind = "ability"
)

// EdgeTypeCalls is the only edge type the current resolver produces. The
// model accepts arbitrary type strings so richer resolvers can add their own
// (inherits, imports) without schema changes.
const EdgeTypeCalls = "calls"

// Entity is a declared code construct. ID is globally unique within one
// graph and deterministically derived from (file path, kind, name); Name is
// not unique across files.
type Entity struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Kind     EntityKind       `json:"kind"`
	Language extract.Language `json:"language"`
	FilePath string           `json:"file_path"`
}

// Stats summarizes an assembled graph. EdgeCount counts every adjacency
// entry, duplicate edges included.
type Stats struct {
	NodeCount      int     `json:"node_count"`
	EdgeCount      int     `json:"edge_count"`
	FileCount      int     `json:"file_count"`
	AvgConnections float64 `json:"avg_connections"`
}

// Snapshot is the flattened, serializable view of an assembled graph: the
// join of nodes, adjacency lists, the "from->to" edge type index, and stats.
// It is the core's output contract for diagramming, querying, and storage.
type Snapshot struct {
	Nodes     map[string]Entity   `json:"nodes"`
	Edges     map[string][]string `json:"edges"`
	EdgeTypes map[string]string   `json:"edge_types"`
	Stats     Stats               `json:"stats"`
}

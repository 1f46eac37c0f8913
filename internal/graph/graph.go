// Package graph holds the code context graph: entities declared across a
// repository and the heuristic reference edges between them. A graph is built
// fresh for every analysis run by Assemble and is read-only afterwards.
package graph

// ContextGraph is an in-memory directed graph of code entities. Nodes are
// keyed by entity id; edges live in an append-only adjacency list with a
// secondary (from,to) -> type index. Not safe for concurrent mutation; a
// single analysis run owns the instance.
type ContextGraph struct {
	nodes     map[string]Entity
	nodeOrder []string

	edges     map[string][]string
	edgeTypes map[[2]string]string

	// fileEntities maps a file path to the entity ids declared in it, in
	// first-declared order. fileOrder keeps file iteration deterministic.
	fileEntities map[string][]string
	fileOrder    []string
}

// NewContextGraph returns an empty graph ready for assembly.
func NewContextGraph() *ContextGraph {
	return &ContextGraph{
		nodes:        make(map[string]Entity),
		edges:        make(map[string][]string),
		edgeTypes:    make(map[[2]string]string),
		fileEntities: make(map[string][]string),
	}
}

// AddNode upserts an entity. Re-adding an existing id overwrites the prior
// record wholesale (last write wins, no merge). The id is also appended to
// the owning file's index bucket when the entity carries a file path.
func (g *ContextGraph) AddNode(ent Entity) {
	if _, exists := g.nodes[ent.ID]; !exists {
		g.nodeOrder = append(g.nodeOrder, ent.ID)
	}
	g.nodes[ent.ID] = ent

	if ent.FilePath != "" {
		if _, seen := g.fileEntities[ent.FilePath]; !seen {
			g.fileOrder = append(g.fileOrder, ent.FilePath)
		}
		g.fileEntities[ent.FilePath] = append(g.fileEntities[ent.FilePath], ent.ID)
	}
}

// AddEdge records a typed edge. Unless both endpoints already exist as nodes
// the call is a silent no-op: assembly can only produce dangling references
// when passes run out of order, and dropping them keeps that harmless.
// The adjacency list is append-only (duplicates accumulate); the type index
// keeps one type per ordered pair, last add wins.
func (g *ContextGraph) AddEdge(fromID, toID, edgeType string) {
	if _, ok := g.nodes[fromID]; !ok {
		return
	}
	if _, ok := g.nodes[toID]; !ok {
		return
	}
	g.edges[fromID] = append(g.edges[fromID], toID)
	g.edgeTypes[[2]string{fromID, toID}] = edgeType
}

// Entity returns the entity for id and whether it exists.
func (g *ContextGraph) Entity(id string) (Entity, bool) {
	ent, ok := g.nodes[id]
	return ent, ok
}

// FileEntities returns the entity ids declared in the given file, in
// first-declared order.
func (g *ContextGraph) FileEntities(path string) []string {
	return g.fileEntities[path]
}

// Files returns every file path with declared entities, in first-seen order.
func (g *ContextGraph) Files() []string {
	return g.fileOrder
}

// Callers returns the ids of entities with an edge pointing at id, scanning
// the adjacency lists in node insertion order.
func (g *ContextGraph) Callers(id string) []string {
	var callers []string
	for _, fromID := range g.nodeOrder {
		for _, toID := range g.edges[fromID] {
			if toID == id {
				callers = append(callers, fromID)
				break
			}
		}
	}
	return callers
}

// Callees returns the ids this entity points at, in edge insertion order.
func (g *ContextGraph) Callees(id string) []string {
	return g.edges[id]
}

// Stats computes node, edge and file counts plus the average out-degree.
// An empty graph reports zero average rather than dividing by zero.
func (g *ContextGraph) Stats() Stats {
	edgeCount := 0
	for _, targets := range g.edges {
		edgeCount += len(targets)
	}
	nodeCount := len(g.nodes)
	denom := nodeCount
	if denom < 1 {
		denom = 1
	}
	return Stats{
		NodeCount:      nodeCount,
		EdgeCount:      edgeCount,
		FileCount:      len(g.fileEntities),
		AvgConnections: float64(edgeCount) / float64(denom),
	}
}

// Snapshot flattens the graph into its serializable form. The adjacency
// slices are copied so the snapshot stays stable if the graph were mutated
// afterwards; the "from->to" key flattening matches the wire contract.
func (g *ContextGraph) Snapshot() *Snapshot {
	nodes := make(map[string]Entity, len(g.nodes))
	for id, ent := range g.nodes {
		nodes[id] = ent
	}

	edges := make(map[string][]string, len(g.edges))
	for from, targets := range g.edges {
		copied := make([]string, len(targets))
		copy(copied, targets)
		edges[from] = copied
	}

	edgeTypes := make(map[string]string, len(g.edgeTypes))
	for pair, edgeType := range g.edgeTypes {
		edgeTypes[pair[0]+"->"+pair[1]] = edgeType
	}

	return &Snapshot{
		Nodes:     nodes,
		Edges:     edges,
		EdgeTypes: edgeTypes,
		Stats:     g.Stats(),
	}
}

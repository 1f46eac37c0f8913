package mcptools

import "github.com/codebase-genius/ccg/internal/graph"

// --- MCP Tool Input Types ---
// These structs define the JSON schema for each MCP tool's input.
// The MCP Go SDK auto-generates JSON schemas from struct tags.

// AnalyzeRepoInput is the input for the analyze_repo MCP tool.
type AnalyzeRepoInput struct {
	RepoPath    string   `json:"repoPath" jsonschema:"the absolute path to the repository to analyze"`
	ExcludeDirs []string `json:"excludeDirs,omitempty" jsonschema:"directories to exclude from the crawl (e.g. vendor, node_modules)"`
}

// AnalyzeRepoOutput is the result of the analyze_repo MCP tool.
type AnalyzeRepoOutput struct {
	Stats graph.Stats `json:"stats"`
}

// QueryEntityInput is the input for the query_entity MCP tool.
type QueryEntityInput struct {
	Name string `json:"name" jsonschema:"entity name to look up (exact match)"`
	Kind string `json:"kind,omitempty" jsonschema:"query kind: info, callees, or callers (default: info)"`
}

// QueryEntityOutput is the result of the query_entity MCP tool.
type QueryEntityOutput struct {
	Result graph.QueryResult `json:"result"`
}

// GenerateDiagramInput is the input for the generate_diagram MCP tool.
type GenerateDiagramInput struct {
	MaxNodes int `json:"maxNodes,omitempty" jsonschema:"maximum number of nodes to include, ranked by out-degree (default: 20)"`
}

// GenerateDiagramOutput is the result of the generate_diagram MCP tool.
type GenerateDiagramOutput struct {
	Mermaid string `json:"mermaid"`
}

// GraphStatsInput is the input for the graph_stats MCP tool.
type GraphStatsInput struct{}

// GraphStatsOutput is the result of the graph_stats MCP tool.
type GraphStatsOutput struct {
	Stats graph.Stats `json:"stats"`
}

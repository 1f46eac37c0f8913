package mcptools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/codebase-genius/ccg/internal/crawler"
	"github.com/codebase-genius/ccg/internal/export"
	"github.com/codebase-genius/ccg/internal/extract"
	"github.com/codebase-genius/ccg/internal/graph"
)

// CCGService holds the extraction engine and the last built snapshot used
// by MCP tool handlers. The snapshot is cached in memory after analyze_repo
// and persisted to disk so the CLI can query it without the server running.
type CCGService struct {
	engine      *extract.Engine
	projectRoot string // used for persisting the graph to disk

	mu   sync.Mutex
	snap *graph.Snapshot
}

// NewCCGService creates a CCGService with the given extraction engine.
func NewCCGService(engine *extract.Engine) *CCGService {
	return &CCGService{engine: engine}
}

// SetProjectRoot sets the project root used for graph persistence.
func (s *CCGService) SetProjectRoot(root string) {
	s.projectRoot = root
}

// AnalyzeRepo crawls a repository, builds the code context graph, caches
// the snapshot, and persists it to disk. Returns graph statistics.
func (s *CCGService) AnalyzeRepo(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AnalyzeRepoInput,
) (*mcp.CallToolResult, AnalyzeRepoOutput, error) {
	if input.RepoPath == "" {
		return nil, AnalyzeRepoOutput{}, fmt.Errorf("repoPath is required")
	}

	info, err := os.Stat(input.RepoPath)
	if err != nil {
		return nil, AnalyzeRepoOutput{}, fmt.Errorf("cannot access repoPath: %w", err)
	}
	if !info.IsDir() {
		return nil, AnalyzeRepoOutput{}, fmt.Errorf("repoPath is not a directory: %s", input.RepoPath)
	}

	records, err := crawler.New(s.engine, input.ExcludeDirs).Crawl(ctx, input.RepoPath)
	if err != nil {
		return nil, AnalyzeRepoOutput{}, fmt.Errorf("crawl: %w", err)
	}

	snap := graph.Assemble(records).Snapshot()

	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()

	// Persist for the CLI query/diagram commands.
	if s.projectRoot != "" {
		persistPath := filepath.Join(s.projectRoot, ".ccg", "graph")
		if err := persistSnapshot(ctx, persistPath, snap); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to persist graph: %v\n", err)
		}
	}

	return nil, AnalyzeRepoOutput{Stats: snap.Stats}, nil
}

// persistSnapshot writes the snapshot to a file-based KuzuDB at persistPath,
// replacing any previous graph so stale data cannot survive a re-analysis.
func persistSnapshot(ctx context.Context, persistPath string, snap *graph.Snapshot) error {
	os.RemoveAll(persistPath)

	store, err := graph.NewKuzuFileStore(persistPath)
	if err != nil {
		return fmt.Errorf("open file store: %w", err)
	}
	defer store.Close()

	if err := store.InitSchema(ctx); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	if err := store.SaveSnapshot(ctx, snap); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// currentSnapshot returns the cached snapshot, falling back to the persisted
// graph on disk when no analyze_repo ran in this process.
func (s *CCGService) currentSnapshot(ctx context.Context) (*graph.Snapshot, error) {
	s.mu.Lock()
	snap := s.snap
	s.mu.Unlock()
	if snap != nil {
		return snap, nil
	}

	if s.projectRoot == "" {
		return nil, fmt.Errorf("no graph available: run analyze_repo first")
	}

	store, err := graph.NewKuzuFileStore(filepath.Join(s.projectRoot, ".ccg", "graph"))
	if err != nil {
		return nil, fmt.Errorf("no graph available: run analyze_repo first")
	}
	defer store.Close()

	snap, err = store.LoadSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("no graph available: run analyze_repo first")
	}

	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
	return snap, nil
}

// QueryEntity looks up an entity by exact name and reports its info,
// callees, or callers.
func (s *CCGService) QueryEntity(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QueryEntityInput,
) (*mcp.CallToolResult, QueryEntityOutput, error) {
	if input.Name == "" {
		return nil, QueryEntityOutput{}, fmt.Errorf("name is required")
	}

	kind := graph.QueryKind(input.Kind)
	switch kind {
	case graph.QueryInfo, graph.QueryCallees, graph.QueryCallers:
	case "":
		kind = graph.QueryInfo
	default:
		return nil, QueryEntityOutput{}, fmt.Errorf("unknown query kind: %s", input.Kind)
	}

	snap, err := s.currentSnapshot(ctx)
	if err != nil {
		return nil, QueryEntityOutput{}, err
	}

	return nil, QueryEntityOutput{Result: graph.Query(snap, kind, input.Name)}, nil
}

// GenerateDiagram renders the current graph as a Mermaid flowchart.
func (s *CCGService) GenerateDiagram(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GenerateDiagramInput,
) (*mcp.CallToolResult, GenerateDiagramOutput, error) {
	maxNodes := input.MaxNodes
	if maxNodes <= 0 {
		maxNodes = export.DefaultMaxNodes
	}

	snap, err := s.currentSnapshot(ctx)
	if err != nil {
		return nil, GenerateDiagramOutput{}, err
	}

	return nil, GenerateDiagramOutput{Mermaid: export.Mermaid(snap, maxNodes)}, nil
}

// GraphStats returns statistics for the current graph.
func (s *CCGService) GraphStats(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ GraphStatsInput,
) (*mcp.CallToolResult, GraphStatsOutput, error) {
	snap, err := s.currentSnapshot(ctx)
	if err != nil {
		return nil, GraphStatsOutput{}, err
	}

	return nil, GraphStatsOutput{Stats: snap.Stats}, nil
}

package mcptools

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// version is set by the linker at build time.
var version = "dev"

// NewCCGMCPServer creates an MCP server with all 4 code context graph tools registered.
func NewCCGMCPServer(svc *CCGService) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "ccg",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "analyze_repo",
		Description: "Analyze a repository and build its code context graph. Crawls the file tree, extracts functions, classes and other entities per language, and links cross-file references.",
	}, svc.AnalyzeRepo)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "query_entity",
		Description: "Look up a code entity by exact name. Returns its location and kind, and optionally what it calls (callees) or what calls it (callers).",
	}, svc.QueryEntity)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_diagram",
		Description: "Render the code context graph as a Mermaid flowchart, limited to the most connected entities.",
	}, svc.GenerateDiagram)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "graph_stats",
		Description: "Return node, edge and file counts plus the average connections per entity for the current graph.",
	}, svc.GraphStats)

	return server
}

// RunMCPServer starts an HTTP server exposing the code context graph MCP tools.
func RunMCPServer(ctx context.Context, svc *CCGService, addr string) error {
	server := NewCCGMCPServer(svc)

	handler := mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server { return server },
		nil,
	)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// Shutdown gracefully when context is cancelled.
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background())
	}()

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

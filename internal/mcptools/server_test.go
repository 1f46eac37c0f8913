//go:build cgo

package mcptools

import (
	"context"
	"encoding/json"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codebase-genius/ccg/internal/extract"
)

// setupServerClient wires an MCP server and client together using in-memory
// transports. It returns the connected client session and the underlying
// CCGService so that tests can inspect state when needed.
func setupServerClient(t *testing.T) (*mcp.ClientSession, *CCGService) {
	t.Helper()

	svc := NewCCGService(extract.NewEngine())
	server := NewCCGMCPServer(svc)

	st, ct := mcp.NewInMemoryTransports()

	ctx := context.Background()

	_, err := server.Connect(ctx, st, nil)
	require.NoError(t, err)

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "test-client",
		Version: "1.0.0",
	}, nil)

	session, err := client.Connect(ctx, ct, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		session.Close()
	})

	return session, svc
}

// fixtureAbsPath resolves the pyweb fixture to an absolute path.
func fixtureAbsPath(t *testing.T) string {
	t.Helper()
	abs, err := filepath.Abs("../../testdata/fixtures/pyweb")
	require.NoError(t, err)
	return abs
}

// callTool invokes a tool and decodes its structured content into out.
func callTool(t *testing.T, session *mcp.ClientSession, name string, args, out any) {
	t.Helper()
	ctx := context.Background()

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	require.NoError(t, err)
	require.False(t, result.IsError, "%s should not return an error", name)
	require.NotNil(t, result.StructuredContent, "expected structured content from %s", name)

	raw, err := json.Marshal(result.StructuredContent)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out))
}

func TestMCPListTools(t *testing.T) {
	session, _ := setupServerClient(t)
	ctx := context.Background()

	result, err := session.ListTools(ctx, &mcp.ListToolsParams{})
	require.NoError(t, err)

	require.Len(t, result.Tools, 4, "expected 4 registered tools")

	names := make([]string, len(result.Tools))
	for i, tool := range result.Tools {
		names[i] = tool.Name
	}
	sort.Strings(names)

	expected := []string{
		"analyze_repo",
		"generate_diagram",
		"graph_stats",
		"query_entity",
	}
	assert.Equal(t, expected, names)
}

func TestMCPAnalyzeRepo(t *testing.T) {
	session, _ := setupServerClient(t)

	var output AnalyzeRepoOutput
	callTool(t, session, "analyze_repo", AnalyzeRepoInput{RepoPath: fixtureAbsPath(t)}, &output)

	assert.Equal(t, 17, output.Stats.NodeCount, "fixture declares 17 entities")
	assert.Equal(t, 5, output.Stats.FileCount, "5 fixture files declare entities")
	assert.Greater(t, output.Stats.EdgeCount, 0, "expected cross-file references")
}

func TestMCPQueryEntity(t *testing.T) {
	session, _ := setupServerClient(t)

	var analyzeOut AnalyzeRepoOutput
	callTool(t, session, "analyze_repo", AnalyzeRepoInput{RepoPath: fixtureAbsPath(t)}, &analyzeOut)

	var output QueryEntityOutput
	callTool(t, session, "query_entity", QueryEntityInput{Name: "init_app", Kind: "callers"}, &output)

	require.Empty(t, output.Result.Error)
	require.Len(t, output.Result.Results, 1)

	callerIDs := make([]string, 0)
	for _, ent := range output.Result.Results[0].CalledBy {
		callerIDs = append(callerIDs, ent.ID)
	}
	assert.Contains(t, callerIDs, "app.py::run_server")
}

func TestMCPQueryEntityNotFound(t *testing.T) {
	session, _ := setupServerClient(t)

	var analyzeOut AnalyzeRepoOutput
	callTool(t, session, "analyze_repo", AnalyzeRepoInput{RepoPath: fixtureAbsPath(t)}, &analyzeOut)

	var output QueryEntityOutput
	callTool(t, session, "query_entity", QueryEntityInput{Name: "no_such_thing"}, &output)
	assert.Contains(t, output.Result.Error, "not found")
}

func TestMCPGenerateDiagram(t *testing.T) {
	session, _ := setupServerClient(t)

	var analyzeOut AnalyzeRepoOutput
	callTool(t, session, "analyze_repo", AnalyzeRepoInput{RepoPath: fixtureAbsPath(t)}, &analyzeOut)

	var output GenerateDiagramOutput
	callTool(t, session, "generate_diagram", GenerateDiagramInput{MaxNodes: 5}, &output)

	assert.True(t, strings.HasPrefix(output.Mermaid, "graph TD\n"))
	assert.Contains(t, output.Mermaid, "-->")
}

func TestMCPToolsBeforeAnalyze(t *testing.T) {
	session, _ := setupServerClient(t)
	ctx := context.Background()

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "graph_stats",
		Arguments: GraphStatsInput{},
	})
	require.NoError(t, err)
	assert.True(t, result.IsError, "graph_stats without a graph should fail")
}

func TestMCPAnalyzeRepoBadPath(t *testing.T) {
	session, _ := setupServerClient(t)
	ctx := context.Background()

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "analyze_repo",
		Arguments: AnalyzeRepoInput{RepoPath: "/does/not/exist"},
	})
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

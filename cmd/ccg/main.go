package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/codebase-genius/ccg/internal/extract"
	"github.com/codebase-genius/ccg/internal/mcptools"
)

// CLI flags parsed from command line.
type cliFlags struct {
	ProjectRoot string
	Output      string
	Exclude     string
	MaxNodes    int
	Kind        string
	Summarize   bool
	Verbose     bool
	ServeMCP    bool
	MCPAddr     string
	Version     bool
}

// version is set by goreleaser at build time.
var version = "dev"

const usage = `usage: ccg [flags] <command> [args]

commands:
  analyze <url-or-path>   clone (if URL), crawl, build the graph, write the report
  query <name>            look up an entity by name (-kind info|callees|callers)
  diagram                 print the Mermaid diagram for the persisted graph
  stats                   print statistics for the persisted graph
`

func main() {
	// A missing .env is fine; flags and the environment still apply.
	_ = godotenv.Load()

	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var flags cliFlags

	fs := flag.NewFlagSet("ccg", flag.ContinueOnError)
	fs.StringVar(&flags.ProjectRoot, "project-root", ".", "path used for graph persistence and config lookup")
	fs.StringVar(&flags.Output, "output", "", "output path for the Markdown report")
	fs.StringVar(&flags.Exclude, "exclude", "", "comma-separated extra directories to skip")
	fs.IntVar(&flags.MaxNodes, "max-nodes", 0, "maximum nodes in the Mermaid diagram (default 20)")
	fs.StringVar(&flags.Kind, "kind", "info", "query kind: info, callees, or callers")
	fs.BoolVar(&flags.Summarize, "summarize", false, "summarize the repository README via the configured provider")
	fs.BoolVar(&flags.Verbose, "verbose", false, "enable verbose output")
	fs.BoolVar(&flags.ServeMCP, "serve-mcp", false, "run as MCP server for editor integration")
	fs.StringVar(&flags.MCPAddr, "mcp-addr", "localhost:8632", "address for the MCP server")
	fs.BoolVar(&flags.Version, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if flags.Version {
		fmt.Println(version)
		return nil
	}

	if flags.ServeMCP {
		return serveMCP(flags)
	}

	rest := fs.Args()
	if len(rest) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("no command given")
	}

	switch rest[0] {
	case "analyze":
		if len(rest) < 2 {
			return fmt.Errorf("analyze requires a repository URL or path")
		}
		return runAnalyze(flags, rest[1])
	case "query":
		if len(rest) < 2 {
			return fmt.Errorf("query requires an entity name")
		}
		return runQuery(flags, rest[1])
	case "diagram":
		return runDiagram(flags)
	case "stats":
		return runStats(flags)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command: %s", rest[0])
	}
}

// serveMCP runs the MCP server until interrupted.
func serveMCP(flags cliFlags) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc := mcptools.NewCCGService(extract.NewEngine())
	svc.SetProjectRoot(flags.ProjectRoot)

	fmt.Fprintf(os.Stderr, "ccg MCP server listening on %s\n", flags.MCPAddr)
	return mcptools.RunMCPServer(ctx, svc, flags.MCPAddr)
}

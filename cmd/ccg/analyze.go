package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/codebase-genius/ccg/internal/config"
	"github.com/codebase-genius/ccg/internal/crawler"
	"github.com/codebase-genius/ccg/internal/export"
	"github.com/codebase-genius/ccg/internal/extract"
	"github.com/codebase-genius/ccg/internal/gitrepo"
	"github.com/codebase-genius/ccg/internal/graph"
	"github.com/codebase-genius/ccg/internal/knowledge"
	"github.com/codebase-genius/ccg/internal/report"
)

// runAnalyze is the full pipeline: resolve the target (cloning when given a
// URL), crawl and extract, assemble the graph, render the report, and persist
// the snapshot under .ccg/ for the query/diagram/stats commands.
func runAnalyze(flags cliFlags, target string) error {
	ctx := context.Background()

	cfg, err := config.Load(flags.ProjectRoot)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.Verbose {
		flags.Verbose = true
	}

	repoPath, repoName, cleanup, err := resolveTarget(ctx, target)
	if err != nil {
		return err
	}
	defer cleanup()

	excludes := append([]string{}, cfg.ExcludeDirs...)
	for _, d := range strings.Split(flags.Exclude, ",") {
		if d = strings.TrimSpace(d); d != "" {
			excludes = append(excludes, d)
		}
	}

	if flags.Verbose {
		log.Printf("crawling %s", repoPath)
	}

	records, err := crawler.New(extract.NewEngine(), excludes).Crawl(ctx, repoPath)
	if err != nil {
		return fmt.Errorf("crawl: %w", err)
	}
	if flags.Verbose {
		log.Printf("extracted %d files", len(records))
	}

	snap := graph.Assemble(records).Snapshot()

	maxNodes := flags.MaxNodes
	if maxNodes <= 0 {
		maxNodes = cfg.DiagramMaxNodes
	}
	if maxNodes <= 0 {
		maxNodes = export.DefaultMaxNodes
	}
	diagram := export.Mermaid(snap, maxNodes)

	summarizer := configureSummarizer(ctx, flags, cfg)
	overview := buildOverview(ctx, summarizer, repoPath)

	var jacExplanations map[string]string
	if summarizer != nil {
		jacExplanations = explainJacComponents(ctx, summarizer, repoName, records)
	}

	outputPath := flags.Output
	if outputPath == "" {
		outputPath = cfg.OutputPath
	}
	if outputPath == "" {
		outputPath = repoName + "_report.md"
	}

	content := report.Build(report.Input{
		RepoName:        repoName,
		Overview:        overview,
		Records:         records,
		Snapshot:        snap,
		Diagram:         diagram,
		JacExplanations: jacExplanations,
	})
	if err := report.WriteFile(outputPath, content); err != nil {
		return err
	}

	ccgDir := filepath.Join(flags.ProjectRoot, ".ccg")
	if err := export.WriteSnapshot(filepath.Join(ccgDir, "snapshot.json"), snap); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := persistGraph(ctx, filepath.Join(ccgDir, "graph"), snap); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to persist graph: %v\n", err)
	}

	st := snap.Stats
	fmt.Printf("wrote %s (%d entities, %d references across %d files)\n",
		outputPath, st.NodeCount, st.EdgeCount, st.FileCount)
	return nil
}

// resolveTarget maps a URL to a fresh shallow clone and a local path to
// itself. cleanup is always safe to call.
func resolveTarget(ctx context.Context, target string) (repoPath, repoName string, cleanup func(), err error) {
	if isRemote(target) {
		return gitrepo.Clone(ctx, target)
	}

	info, err := os.Stat(target)
	if err != nil {
		return "", "", nil, fmt.Errorf("cannot access %s: %w", target, err)
	}
	if !info.IsDir() {
		return "", "", nil, fmt.Errorf("not a directory: %s", target)
	}

	abs, err := filepath.Abs(target)
	if err != nil {
		abs = target
	}
	return abs, filepath.Base(abs), func() {}, nil
}

func isRemote(target string) bool {
	return strings.HasPrefix(target, "http://") ||
		strings.HasPrefix(target, "https://") ||
		strings.HasPrefix(target, "git@")
}

// configureSummarizer builds the summarizer once for the run, or returns nil
// when no provider is configured or the provider cannot be constructed.
func configureSummarizer(ctx context.Context, flags cliFlags, cfg *config.ProjectConfig) knowledge.Summarizer {
	provider := cfg.Summarizer.Provider
	if flags.Summarize && provider == "" {
		provider = "gemini"
	}
	if provider == "" || provider == "none" {
		return nil
	}

	summarizer, err := knowledge.NewSummarizer(ctx, knowledge.Options{
		Provider: provider,
		APIKey:   os.Getenv("GEMINI_API_KEY"),
		Model:    cfg.Summarizer.Model,
	})
	if err != nil {
		log.Printf("summarizer unavailable: %v", err)
		return nil
	}
	return summarizer
}

// buildOverview produces the report overview, summarizing the README when a
// summarizer is available. Summarization failures degrade to the raw README
// head rather than failing the run.
func buildOverview(ctx context.Context, summarizer knowledge.Summarizer, repoPath string) string {
	readme, ok := gitrepo.ReadReadme(repoPath)
	if !ok {
		return "No README found."
	}
	if summarizer == nil {
		return readmeHead(readme)
	}

	summary, err := summarizer.SummarizeReadme(ctx, readme)
	if err != nil {
		log.Printf("summarize readme: %v", err)
		return readmeHead(readme)
	}
	return summary
}

// explainJacComponents collects the walkers and nodes from every Jac file and
// asks the summarizer for one-line explanations. Failures degrade to an empty
// map so the report falls back to placeholder text per component.
func explainJacComponents(ctx context.Context, summarizer knowledge.Summarizer, repoName string, records []extract.Record) map[string]string {
	var components []knowledge.JacComponent
	for _, rec := range records {
		jac, ok := rec.(*extract.JacRecord)
		if !ok {
			continue
		}
		for _, name := range jac.Walkers {
			components = append(components, knowledge.JacComponent{Name: name, Kind: "Walker", Path: jac.Path()})
		}
		for _, name := range jac.Nodes {
			components = append(components, knowledge.JacComponent{Name: name, Kind: "Node", Path: jac.Path()})
		}
	}

	explanations, err := summarizer.ExplainJacComponents(ctx, repoName, components)
	if err != nil {
		log.Printf("explain jac components: %v", err)
		return map[string]string{}
	}
	return explanations
}

// readmeHead returns the first few lines of the README as a plain overview.
func readmeHead(readme string) string {
	lines := strings.Split(readme, "\n")
	if len(lines) > 10 {
		lines = lines[:10]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// persistGraph writes the snapshot to a file-based KuzuDB, replacing any
// previous graph.
func persistGraph(ctx context.Context, persistPath string, snap *graph.Snapshot) error {
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

// Package report assembles the Markdown analysis report from the graph
// core's outputs. It consumes only the public output contract (records,
// snapshot, diagram text, overview string) and renders it; nothing here
// feeds back into analysis.
package report

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/codebase-genius/ccg/internal/extract"
	"github.com/codebase-genius/ccg/internal/graph"
)

// Input carries everything the report renders.
type Input struct {
	RepoName string
	Overview string
	Records  []extract.Record
	Snapshot *graph.Snapshot
	Diagram  string // Mermaid body, embedded in a fenced block

	// JacExplanations maps Jac walker/node names to LLM-generated purpose
	// statements. Nil means no explanations were requested and the Jac
	// sections render bare names; names missing from a non-nil map get a
	// placeholder.
	JacExplanations map[string]string
}

// Build renders the full Markdown report.
func Build(in Input) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Repo Summary: %s\n\n", in.RepoName)

	sb.WriteString("## Overview\n")
	overview := in.Overview
	if overview == "" {
		overview = "No overview available."
	}
	sb.WriteString(overview + "\n\n")

	writeFileTree(&sb, in.Records)
	writeGraphSection(&sb, in.Snapshot, in.Diagram)
	writeParsedDetails(&sb, in.Records, in.JacExplanations)

	return sb.String()
}

// WriteFile writes the report to outputPath, creating parent directories.
func WriteFile(outputPath, content string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}
	if err := os.WriteFile(outputPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// writeFileTree lists the analyzed files grouped by directory.
func writeFileTree(sb *strings.Builder, records []extract.Record) {
	sb.WriteString("## File Tree\n")

	byDir := make(map[string][]string)
	var dirs []string
	for _, rec := range records {
		dir := path.Dir(rec.Path())
		if dir == "." {
			dir = "root"
		}
		if _, seen := byDir[dir]; !seen {
			dirs = append(dirs, dir)
		}
		byDir[dir] = append(byDir[dir], path.Base(rec.Path()))
	}
	sort.Strings(dirs)

	for _, dir := range dirs {
		fmt.Fprintf(sb, "- `%s`: %s\n", dir, strings.Join(byDir[dir], ", "))
	}
	sb.WriteString("\n")
}

// writeGraphSection emits the stats line and the Mermaid diagram block.
func writeGraphSection(sb *strings.Builder, snap *graph.Snapshot, diagram string) {
	sb.WriteString("## Code Context Graph\n")
	if snap != nil {
		st := snap.Stats
		fmt.Fprintf(sb, "- Nodes: %d | Edges: %d | Files: %d | Avg connections: %.2f\n\n",
			st.NodeCount, st.EdgeCount, st.FileCount, st.AvgConnections)
	}
	if diagram != "" {
		sb.WriteString("### Code Graph (Mermaid)\n")
		sb.WriteString("```mermaid\n" + strings.TrimRight(diagram, "\n") + "\n```\n\n")
	}
}

// writeParsedDetails emits one subsection per record, shaped by language.
func writeParsedDetails(sb *strings.Builder, records []extract.Record, jacExplanations map[string]string) {
	sb.WriteString("## Parsed Source Details\n")

	for _, rec := range records {
		fmt.Fprintf(sb, "### `%s`\n", rec.Path())

		switch r := rec.(type) {
		case *extract.PythonRecord:
			if r.ParseErr != "" {
				fmt.Fprintf(sb, "- Error: %s\n", r.ParseErr)
				break
			}
			fmt.Fprintf(sb, "- Functions: %s\n", codeList(r.Funcs))
			fmt.Fprintf(sb, "- Classes: %s\n", codeList(r.Classes))
		case *extract.JavaScriptRecord:
			fmt.Fprintf(sb, "- Functions: %s\n", codeList(r.Funcs))
			fmt.Fprintf(sb, "- Classes: %s\n", codeList(r.Classes))
		case *extract.RustRecord:
			fmt.Fprintf(sb, "- Functions: %s\n", codeList(r.Funcs))
			fmt.Fprintf(sb, "- Structs: %s\n", codeList(r.Structs))
			fmt.Fprintf(sb, "- Enums: %s\n", codeList(r.Enums))
		case *extract.JacRecord:
			if jacExplanations != nil {
				writeExplained(sb, "Walkers", r.Walkers, jacExplanations)
				writeExplained(sb, "Nodes", r.Nodes, jacExplanations)
			} else {
				fmt.Fprintf(sb, "- Walkers: %s\n", codeList(r.Walkers))
				fmt.Fprintf(sb, "- Nodes: %s\n", codeList(r.Nodes))
			}
			fmt.Fprintf(sb, "- Abilities: %s\n", codeList(r.Abilities))
		case *extract.ErrorRecord:
			fmt.Fprintf(sb, "- Error: %s\n", r.Message)
		default:
			preview := strings.TrimSpace(strings.ReplaceAll(rec.Content(), "\n", " "))
			if runes := []rune(preview); len(runes) > 200 {
				preview = string(runes[:200])
			}
			fmt.Fprintf(sb, "- Type: %s | Content Preview: %s...\n", rec.Lang(), preview)
		}
		sb.WriteString("\n")
	}
}

// writeExplained emits the label as a nested Markdown list with a purpose
// statement per name, falling back to a placeholder for names the
// explanation pass did not cover.
func writeExplained(sb *strings.Builder, label string, names []string, explanations map[string]string) {
	if len(names) == 0 {
		fmt.Fprintf(sb, "- %s: None\n", label)
		return
	}
	fmt.Fprintf(sb, "- %s:\n", label)
	for _, n := range names {
		explanation, ok := explanations[n]
		if !ok {
			explanation = "Explanation could not be generated."
		}
		fmt.Fprintf(sb, "  - `%s`: %s\n", n, explanation)
	}
}

// codeList formats names as backticked, comma-separated Markdown.
func codeList(names []string) string {
	if len(names) == 0 {
		return "None"
	}
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = "`" + n + "`"
	}
	return strings.Join(quoted, ", ")
}

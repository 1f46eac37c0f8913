package graph

import (
	"strings"

	"github.com/codebase-genius/ccg/internal/extract"
)

// minRefNameLength is the name-length floor for the substring heuristic:
// names this short or shorter never produce edges, which keeps trivial
// identifiers from flooding the graph with false positives.
const minRefNameLength = 3

// ReferenceResolver populates reference edges on a graph whose nodes are
// already in place. The default is the substring heuristic; a more precise
// strategy can be swapped in without touching the graph model.
type ReferenceResolver interface {
	Resolve(g *ContextGraph, records []extract.Record)
}

// Assemble builds a ContextGraph from ordered extraction records using the
// default substring resolver.
func Assemble(records []extract.Record) *ContextGraph {
	return AssembleWith(records, SubstringResolver{})
}

// AssembleWith runs the two-pass build: pass 1 adds one node per declared
// entity, pass 2 delegates edge detection to the resolver. Inert records
// (extraction errors, python parse failures) are skipped in both passes.
// Pass 1 must complete before any resolver runs; AddEdge drops references to
// ids that are missing, so a misbehaving resolver degrades to fewer edges
// rather than a corrupt graph.
func AssembleWith(records []extract.Record, resolver ReferenceResolver) *ContextGraph {
	g := NewContextGraph()

	for _, rec := range records {
		if rec.Err() != "" {
			continue
		}
		switch r := rec.(type) {
		case *extract.PythonRecord:
			addEntities(g, r.FilePath, extract.LangPython, KindFunction, r.Funcs)
			addEntities(g, r.FilePath, extract.LangPython, KindClass, r.Classes)
		case *extract.JavaScriptRecord:
			addEntities(g, r.FilePath, extract.LangJavaScript, KindFunction, r.Funcs)
			addEntities(g, r.FilePath, extract.LangJavaScript, KindClass, r.Classes)
		case *extract.RustRecord:
			addEntities(g, r.FilePath, extract.LangRust, KindFunction, r.Funcs)
			addEntities(g, r.FilePath, extract.LangRust, KindStruct, r.Structs)
			addEntities(g, r.FilePath, extract.LangRust, KindEnum, r.Enums)
			addEntities(g, r.FilePath, extract.LangRust, KindTrait, r.Traits)
		case *extract.JacRecord:
			addEntities(g, r.FilePath, extract.LangJac, KindNode, r.Nodes)
			addEntities(g, r.FilePath, extract.LangJac, KindWalker, r.Walkers)
			addEntities(g, r.FilePath, extract.LangJac, KindAbility, r.Abilities)
		}
	}

	resolver.Resolve(g, records)
	return g
}

// addEntities inserts one node per name with a deterministic id.
func addEntities(g *ContextGraph, filePath string, lang extract.Language, kind EntityKind, names []string) {
	for _, name := range names {
		g.AddNode(Entity{
			ID:       EntityID(filePath, kind, name),
			Name:     name,
			Kind:     kind,
			Language: lang,
			FilePath: filePath,
		})
	}
}

// EntityID derives the stable entity identifier. Jac is the one language
// where several entity kinds share a namespace within a file, so only its
// ids carry the kind prefix; elsewhere a bare "<file>::<name>" cannot
// collide and stays shorter.
func EntityID(filePath string, kind EntityKind, name string) string {
	switch kind {
	case KindNode, KindWalker, KindAbility:
		return filePath + "::" + string(kind) + ":" + name
	default:
		return filePath + "::" + name
	}
}

// SubstringResolver is the parser-free reference heuristic: whole-file
// string containment, gated only by the name-length floor. It does not parse
// call expressions and does not respect scope. False positives from
// coincidental identifier matches and misses on aliased imports are accepted
// tradeoffs for cheap cross-language linking.
//
// For every file with text content, every entity declared in that file whose
// name is both longer than the floor and present in the file's own text gets
// incoming "calls" edges from every entity declared in every other file.
// Cost is O(files^2 * entities-per-file); fine for the small and medium
// repositories this targets, and explicitly not built for monorepos.
type SubstringResolver struct{}

func (SubstringResolver) Resolve(g *ContextGraph, records []extract.Record) {
	for _, rec := range records {
		if rec.Err() != "" || rec.Content() == "" {
			continue
		}
		path := rec.Path()
		content := rec.Content()

		for _, id := range g.FileEntities(path) {
			ent, ok := g.Entity(id)
			if !ok {
				continue
			}
			if len(ent.Name) <= minRefNameLength || !strings.Contains(content, ent.Name) {
				continue
			}
			for _, otherPath := range g.Files() {
				if otherPath == path {
					continue
				}
				for _, otherID := range g.FileEntities(otherPath) {
					g.AddEdge(otherID, id, EdgeTypeCalls)
				}
			}
		}
	}
}

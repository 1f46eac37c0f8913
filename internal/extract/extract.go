// Package extract turns raw source text into per-language structural records
// for graph assembly. Python goes through a real tree-sitter parse; the other
// recognized languages are matched with regular expressions, which never fail
// on malformed input. Every file yields exactly one record.
package extract

import (
	"fmt"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

// previewLimit bounds the content preview carried by generic records.
const previewLimit = 500

// Engine extracts structural records from source files. A new tree-sitter
// parser is created per python extraction, so the Engine is safe for
// concurrent Extract calls.
type Engine struct {
	pyLang *tree_sitter.Language
}

// NewEngine creates an Engine with the python grammar registered.
func NewEngine() *Engine {
	return &Engine{
		pyLang: tree_sitter.NewLanguage(tree_sitter_python.Language()),
	}
}

// Extract produces the structural record for one file. It never returns an
// error: extraction failures, including extractor panics, are converted into
// an ErrorRecord so one bad file cannot abort a whole run.
func (e *Engine) Extract(path string, source []byte) (rec Record) {
	defer func() {
		if r := recover(); r != nil {
			rec = &ErrorRecord{FilePath: path, Message: fmt.Sprintf("extract %s: %v", path, r)}
		}
	}()

	switch DetectLanguage(path) {
	case LangPython:
		return e.extractPython(path, source)
	case LangJavaScript:
		return extractJavaScript(path, source)
	case LangRust:
		return extractRust(path, source)
	case LangJac:
		return extractJac(path, source)
	default:
		return extractGeneric(path, source)
	}
}

// extractGeneric keeps only a truncated preview of unrecognized files.
// Truncation counts runes, not bytes, so a multi-byte character is never
// split.
func extractGeneric(path string, source []byte) Record {
	preview := string(source)
	if runes := []rune(preview); len(runes) > previewLimit {
		preview = string(runes[:previewLimit])
	}
	return &GenericRecord{FilePath: path, Preview: preview}
}

// dedupe returns the values with duplicates removed, preserving first
// occurrence order so records stay deterministic across runs.
func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

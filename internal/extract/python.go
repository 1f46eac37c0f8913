package extract

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// extractPython parses a python file with tree-sitter and collects every
// function and class definition found anywhere in the tree, nested ones
// included, plus import targets (module names only, never aliases).
//
// A tree containing syntax errors yields a record with ParseErr set and empty
// structural lists; the source text is still carried because the reference
// resolution pass needs it.
func (e *Engine) extractPython(path string, source []byte) Record {
	parser := tree_sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(e.pyLang); err != nil {
		return &ErrorRecord{FilePath: path, Message: "python grammar: " + err.Error()}
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return &ErrorRecord{FilePath: path, Message: "python parse returned no tree for " + path}
	}
	defer tree.Close()

	root := tree.RootNode()
	rec := &PythonRecord{FilePath: path, Source: string(source)}

	if root.HasError() {
		rec.ParseErr = "syntax error in " + path
		return rec
	}

	cursor := root.Walk()
	defer cursor.Close()
	walkPython(cursor, source, rec)
	return rec
}

func walkPython(cursor *tree_sitter.TreeCursor, source []byte, rec *PythonRecord) {
	node := cursor.Node()

	switch node.Kind() {
	case "function_definition":
		if name := node.ChildByFieldName("name"); name != nil {
			rec.Funcs = append(rec.Funcs, name.Utf8Text(source))
		}
	case "class_definition":
		if name := node.ChildByFieldName("name"); name != nil {
			rec.Classes = append(rec.Classes, name.Utf8Text(source))
		}
	case "import_statement":
		rec.Imports = append(rec.Imports, pyImportTargets(node, source)...)
	case "import_from_statement":
		if module := pyFromImportModule(node, source); module != "" {
			rec.Imports = append(rec.Imports, module)
		}
	}

	if cursor.GotoFirstChild() {
		walkPython(cursor, source, rec)
		for cursor.GotoNextSibling() {
			walkPython(cursor, source, rec)
		}
		cursor.GotoParent()
	}
}

// pyImportTargets collects module names from a plain import statement.
// "import a.b as c" contributes "a.b": the aliased_import's name field, not
// the alias identifier.
func pyImportTargets(node *tree_sitter.Node, source []byte) []string {
	var targets []string
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "dotted_name":
			if t := child.Utf8Text(source); t != "" {
				targets = append(targets, t)
			}
		case "aliased_import":
			if name := child.ChildByFieldName("name"); name != nil {
				if t := name.Utf8Text(source); t != "" {
					targets = append(targets, t)
				}
			}
		}
	}
	return targets
}

// pyFromImportModule returns the module of a from-import, or "" when the
// statement has no resolvable module (e.g. "from . import x").
func pyFromImportModule(node *tree_sitter.Node, source []byte) string {
	module := node.ChildByFieldName("module_name")
	if module == nil {
		for i := uint(0); i < node.ChildCount(); i++ {
			child := node.Child(i)
			if child != nil && child.Kind() == "dotted_name" {
				module = child
				break
			}
		}
	}
	if module == nil {
		return ""
	}
	// Relative imports carry leading dots ("from .models import x"); the
	// module name is what remains, and "from . import x" has none at all.
	return strings.TrimLeft(module.Utf8Text(source), ".")
}

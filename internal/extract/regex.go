package extract

import "regexp"

// Regex-based extraction for the languages without a real parse step.
// The patterns are deliberately shallow: they match declaration keywords at
// the text level and never fail on malformed input.

// --- JavaScript ---

var (
	jsFuncRe      = regexp.MustCompile(`\bfunction\s+(\w+)`)
	jsArrowFuncRe = regexp.MustCompile(`\bconst\s+(\w+)\s*=\s*\([^)]*\)\s*=>`)
	jsClassRe     = regexp.MustCompile(`\bclass\s+(\w+)`)
	jsImportRe    = regexp.MustCompile(`import\s+.*?from\s+['"]([^'"]+)['"]`)
	jsRequireRe   = regexp.MustCompile(`require\(['"]([^'"]+)['"]\)`)
)

func extractJavaScript(path string, source []byte) Record {
	code := string(source)

	funcs := captures(jsFuncRe, code)
	funcs = append(funcs, captures(jsArrowFuncRe, code)...)

	imports := captures(jsImportRe, code)
	imports = append(imports, captures(jsRequireRe, code)...)

	return &JavaScriptRecord{
		FilePath: path,
		Funcs:    dedupe(funcs),
		Classes:  dedupe(captures(jsClassRe, code)),
		Imports:  dedupe(imports),
		Source:   code,
	}
}

// --- Rust ---

var (
	rsFnRe     = regexp.MustCompile(`\bfn\s+(\w+)`)
	rsStructRe = regexp.MustCompile(`\bstruct\s+(\w+)`)
	rsEnumRe   = regexp.MustCompile(`\benum\s+(\w+)`)
	rsTraitRe  = regexp.MustCompile(`\btrait\s+(\w+)`)
	rsUseRe    = regexp.MustCompile(`use\s+([^;]+);`)
)

func extractRust(path string, source []byte) Record {
	code := string(source)
	return &RustRecord{
		FilePath: path,
		Funcs:    dedupe(captures(rsFnRe, code)),
		Structs:  dedupe(captures(rsStructRe, code)),
		Enums:    dedupe(captures(rsEnumRe, code)),
		Traits:   dedupe(captures(rsTraitRe, code)),
		// Use-statement bodies are kept verbatim, duplicates included.
		Imports: captures(rsUseRe, code),
		Source:  code,
	}
}

// --- Jac ---

var (
	jacWalkerRe  = regexp.MustCompile(`\bwalker\s+(\w+)\s*[{:]?`)
	jacNodeRe    = regexp.MustCompile(`\bnode\s+(\w+)\s*[{:]?`)
	jacEnumRe    = regexp.MustCompile(`\benum\s+(\w+)\s*[{:]?`)
	jacAbilityRe = regexp.MustCompile(`\bcan\s+(\w+)\s+with`)
	jacGlobalRe  = regexp.MustCompile(`\bglob\s+(\w+)\s*=`)
	jacEdgeRe    = regexp.MustCompile(`\bedge\s+(\w+)`)

	// Three import syntaxes: python interop, same-language, and brace-style
	// multi-import.
	jacImportPyRe    = regexp.MustCompile(`import:py\s+from\s+(\w+)`)
	jacImportJacRe   = regexp.MustCompile(`import:jac\s+from\s+(\w+)`)
	jacImportBraceRe = regexp.MustCompile(`import\s+from\s+[\w.]+\s*\{\s*([^}]+?)\s*\}`)
)

func extractJac(path string, source []byte) Record {
	code := string(source)

	imports := captures(jacImportPyRe, code)
	imports = append(imports, captures(jacImportJacRe, code)...)
	imports = append(imports, captures(jacImportBraceRe, code)...)

	return &JacRecord{
		FilePath:  path,
		Walkers:   dedupe(captures(jacWalkerRe, code)),
		Nodes:     dedupe(captures(jacNodeRe, code)),
		Enums:     dedupe(captures(jacEnumRe, code)),
		Abilities: dedupe(captures(jacAbilityRe, code)),
		Globals:   dedupe(captures(jacGlobalRe, code)),
		EdgeTypes: dedupe(captures(jacEdgeRe, code)),
		Imports:   imports,
		Source:    code,
	}
}

// captures returns the first capture group of every match of re in code.
func captures(re *regexp.Regexp, code string) []string {
	matches := re.FindAllStringSubmatch(code, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m[1])
	}
	return out
}

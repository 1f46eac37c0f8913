package extract

import "path/filepath"

// Language tags a file record with the language it was recognized as.
// LangUnknown and LangError are tags rather than real languages: they mark
// generic files and failed extractions so downstream code can treat every
// record uniformly.
type Language string

const (
	LangPython     Language = "python"
	LangJavaScript Language = "javascript"
	LangRust       Language = "rust"
	LangJac        Language = "jac"
	LangUnknown    Language = "unknown"
	LangError      Language = "error"
)

// extToLanguage maps file extensions to languages. Anything absent from the
// map is treated as generic.
var extToLanguage = map[string]Language{
	".py":  LangPython,
	".js":  LangJavaScript,
	".rs":  LangRust,
	".jac": LangJac,
}

// DetectLanguage resolves a file path to a language tag by extension.
func DetectLanguage(path string) Language {
	if lang, ok := extToLanguage[filepath.Ext(path)]; ok {
		return lang
	}
	return LangUnknown
}

// Record is the common view over per-language extraction records.
// Each language gets its own variant carrying only the fields relevant to it;
// consumers that need structural lists type-switch on the concrete type.
type Record interface {
	// Path returns the repo-relative path of the extracted file.
	Path() string
	// Lang returns the language tag the file was recognized as.
	Lang() Language
	// Content returns the raw source text carried by the record. Generic
	// records carry only a preview; error records carry nothing.
	Content() string
	// Err returns a non-empty message when the record is inert: extraction
	// failed and the structural lists must not be trusted.
	Err() string
}

// PythonRecord holds the structural facts extracted from a Python file.
// A file with syntax errors still produces a PythonRecord: ParseErr is set,
// the structural lists are empty, and the source is carried unchanged.
type PythonRecord struct {
	FilePath string
	Funcs    []string
	Classes  []string
	Imports  []string
	Source   string
	ParseErr string
}

func (r *PythonRecord) Path() string    { return r.FilePath }
func (r *PythonRecord) Lang() Language  { return LangPython }
func (r *PythonRecord) Content() string { return r.Source }
func (r *PythonRecord) Err() string     { return r.ParseErr }

// JavaScriptRecord holds the structural facts extracted from a JavaScript
// file. All lists are deduplicated.
type JavaScriptRecord struct {
	FilePath string
	Funcs    []string
	Classes  []string
	Imports  []string
	Source   string
}

func (r *JavaScriptRecord) Path() string    { return r.FilePath }
func (r *JavaScriptRecord) Lang() Language  { return LangJavaScript }
func (r *JavaScriptRecord) Content() string { return r.Source }
func (r *JavaScriptRecord) Err() string     { return "" }

// RustRecord holds the structural facts extracted from a Rust file.
// Funcs, Structs, Enums and Traits are deduplicated; Imports keeps the raw
// use-statement bodies verbatim, duplicates included.
type RustRecord struct {
	FilePath string
	Funcs    []string
	Structs  []string
	Enums    []string
	Traits   []string
	Imports  []string
	Source   string
}

func (r *RustRecord) Path() string    { return r.FilePath }
func (r *RustRecord) Lang() Language  { return LangRust }
func (r *RustRecord) Content() string { return r.Source }
func (r *RustRecord) Err() string     { return "" }

// JacRecord holds the structural facts extracted from a Jac file. Jac is the
// one language with multiple entity kinds sharing a namespace, so walkers,
// nodes and abilities are kept in separate deduplicated lists. Imports keeps
// duplicates.
type JacRecord struct {
	FilePath  string
	Walkers   []string
	Nodes     []string
	Enums     []string
	Abilities []string
	Globals   []string
	EdgeTypes []string
	Imports   []string
	Source    string
}

func (r *JacRecord) Path() string    { return r.FilePath }
func (r *JacRecord) Lang() Language  { return LangJac }
func (r *JacRecord) Content() string { return r.Source }
func (r *JacRecord) Err() string     { return "" }

// GenericRecord represents a file of an unrecognized language. No structure
// is extracted; only a truncated content preview is kept.
type GenericRecord struct {
	FilePath string
	Preview  string
}

func (r *GenericRecord) Path() string    { return r.FilePath }
func (r *GenericRecord) Lang() Language  { return LangUnknown }
func (r *GenericRecord) Content() string { return r.Preview }
func (r *GenericRecord) Err() string     { return "" }

// ErrorRecord marks a file whose extraction failed outright (unreadable,
// or an extractor panic). It is inert for graph assembly.
type ErrorRecord struct {
	FilePath string
	Message  string
}

func (r *ErrorRecord) Path() string    { return r.FilePath }
func (r *ErrorRecord) Lang() Language  { return LangError }
func (r *ErrorRecord) Content() string { return "" }
func (r *ErrorRecord) Err() string     { return r.Message }

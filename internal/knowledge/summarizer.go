// Package knowledge provides the optional LLM-backed overview summarizer.
// The rest of the system only ever sees the Summarizer interface: plain text
// in, plain text out, so the graph core carries no dependency on any
// provider.
package knowledge

import (
	"context"
	"fmt"
	"strings"
)

// JacComponent identifies one Jac walker or node for explanation.
type JacComponent struct {
	Name string
	Kind string // "Walker" or "Node"
	Path string
}

// Summarizer produces a short repository overview from README text and
// per-component purpose explanations for Jac walkers and nodes.
type Summarizer interface {
	SummarizeReadme(ctx context.Context, readme string) (string, error)

	// ExplainJacComponents returns a name -> 1-2 sentence explanation map for
	// the given components. Names absent from the map simply had no usable
	// explanation; callers render a placeholder for them.
	ExplainJacComponents(ctx context.Context, repoName string, components []JacComponent) (map[string]string, error)
}

// Options selects and configures a summarizer backend.
type Options struct {
	Provider string // "gemini" (default) or "none"
	APIKey   string
	Model    string
}

// NewSummarizer builds a Summarizer for the configured provider. An empty
// provider defaults to gemini; "none" returns a summarizer that reports the
// feature as disabled instead of calling out.
func NewSummarizer(ctx context.Context, opts Options) (Summarizer, error) {
	provider := strings.ToLower(strings.TrimSpace(opts.Provider))
	if provider == "" {
		provider = "gemini"
	}

	switch provider {
	case "gemini":
		return NewGeminiSummarizer(ctx, opts.APIKey, opts.Model)
	case "none":
		return disabledSummarizer{}, nil
	default:
		return nil, fmt.Errorf("unsupported summarizer provider: %s", opts.Provider)
	}
}

// disabledSummarizer is used when summarization is turned off; the report
// still renders, with a placeholder overview.
type disabledSummarizer struct{}

func (disabledSummarizer) SummarizeReadme(_ context.Context, _ string) (string, error) {
	return "Summarization is disabled.", nil
}

func (disabledSummarizer) ExplainJacComponents(_ context.Context, _ string, _ []JacComponent) (map[string]string, error) {
	return map[string]string{}, nil
}

package knowledge

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSummarizerNone(t *testing.T) {
	s, err := NewSummarizer(context.Background(), Options{Provider: "none"})
	require.NoError(t, err)

	out, err := s.SummarizeReadme(context.Background(), "# whatever")
	require.NoError(t, err)
	assert.Equal(t, "Summarization is disabled.", out)
}

func TestNewSummarizerUnknownProvider(t *testing.T) {
	_, err := NewSummarizer(context.Background(), Options{Provider: "gpt-17"})
	assert.ErrorContains(t, err, "unsupported summarizer provider")
}

func TestBuildReadmePrompt(t *testing.T) {
	t.Run("short readme kept whole", func(t *testing.T) {
		prompt := BuildReadmePrompt("# project\nA tool.")
		assert.True(t, strings.HasPrefix(prompt, "Summarize this README"))
		assert.Contains(t, prompt, "# project\nA tool.")
	})

	t.Run("long readme truncated", func(t *testing.T) {
		long := strings.Repeat("a", readmePromptLimit+500)
		prompt := BuildReadmePrompt(long)
		assert.Equal(t, len(BuildReadmePrompt(""))+readmePromptLimit, len(prompt))
	})

	t.Run("truncation respects rune boundaries", func(t *testing.T) {
		long := strings.Repeat("é", readmePromptLimit+1)
		prompt := BuildReadmePrompt(long)
		assert.True(t, utf8.ValidString(prompt))
		assert.Equal(t, readmePromptLimit, strings.Count(prompt, "é"))
	})
}

func TestBuildJacPrompt(t *testing.T) {
	components := []JacComponent{
		{Name: "CodeGuide", Kind: "Walker", Path: "agents/guide.jac"},
		{Name: "Repository", Kind: "Node", Path: "agents/guide.jac"},
	}

	prompt := BuildJacPrompt("pyweb", components)

	assert.Contains(t, prompt, "'pyweb' repository")
	assert.Contains(t, prompt, "- Walker: CodeGuide (in agents/guide.jac)")
	assert.Contains(t, prompt, "- Node: Repository (in agents/guide.jac)")
}

func TestParseExplanations(t *testing.T) {
	text := "Here are the explanations:\n" +
		"1. CodeGuide: Walks the repository and narrates its structure.\n" +
		"2. Repository: Root node anchoring the file tree.\n" +
		"   summarize: Produces the final report text.\n" +
		"not a component line\n" +
		"\n"

	got := ParseExplanations(text)

	assert.Equal(t, map[string]string{
		"CodeGuide":  "Walks the repository and narrates its structure.",
		"Repository": "Root node anchoring the file tree.",
		"summarize":  "Produces the final report text.",
	}, got)
}

func TestDisabledExplainJacComponents(t *testing.T) {
	s, err := NewSummarizer(context.Background(), Options{Provider: "none"})
	require.NoError(t, err)

	got, err := s.ExplainJacComponents(context.Background(), "repo", []JacComponent{
		{Name: "CodeGuide", Kind: "Walker", Path: "g.jac"},
	})
	require.NoError(t, err)
	assert.Empty(t, got)
}

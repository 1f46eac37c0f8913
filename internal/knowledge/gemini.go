package knowledge

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"google.golang.org/genai"
)

// defaultGeminiModel is used when no model is configured.
const defaultGeminiModel = "gemini-2.5-flash"

// readmePromptLimit caps how much README text goes into the prompt.
const readmePromptLimit = 2000

// GeminiSummarizer implements Summarizer using Gemini text generation.
type GeminiSummarizer struct {
	client *genai.Client
	model  string
}

// NewGeminiSummarizer creates a summarizer against the Gemini API. The API
// key comes from opts or the GEMINI_API_KEY / GOOGLE_API_KEY environment
// handled by the client itself.
func NewGeminiSummarizer(ctx context.Context, apiKey, modelName string) (*GeminiSummarizer, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	if modelName == "" {
		modelName = defaultGeminiModel
	}
	return &GeminiSummarizer{client: client, model: modelName}, nil
}

// SummarizeReadme asks the model for a concise overview of the README.
func (s *GeminiSummarizer) SummarizeReadme(ctx context.Context, readme string) (string, error) {
	prompt := BuildReadmePrompt(readme)
	contents := genai.Text(prompt)
	resp, err := s.client.Models.GenerateContent(ctx, s.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("gemini summary: %w", err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("gemini summary: empty response")
	}
	return text, nil
}

// ExplainJacComponents asks the model for a short purpose statement per Jac
// walker and node, based only on names and file locations.
func (s *GeminiSummarizer) ExplainJacComponents(ctx context.Context, repoName string, components []JacComponent) (map[string]string, error) {
	if len(components) == 0 {
		return map[string]string{}, nil
	}

	prompt := BuildJacPrompt(repoName, components)
	resp, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), nil)
	if err != nil {
		return nil, fmt.Errorf("gemini jac explanations: %w", err)
	}
	return ParseExplanations(resp.Text()), nil
}

// BuildJacPrompt renders the explanation request: architect framing plus one
// line per component, asking for a "name: explanation" numbered list back.
func BuildJacPrompt(repoName string, components []JacComponent) string {
	var sb strings.Builder
	fmt.Fprintf(&sb,
		"You are a professional software architect analyzing the '%s' repository. "+
			"Your task is to provide a concise, 1-2 sentence explanation for the likely purpose of each listed JAC component (Walker or Node) based solely on its name and file location. "+
			"Respond with a numbered list where each line starts with the component name, followed by a colon and the explanation.\n\n",
		repoName)

	sb.WriteString("Provide explanations for the following JAC components:\n\n")
	for _, comp := range components {
		fmt.Fprintf(&sb, "- %s: %s (in %s)\n", comp.Kind, comp.Name, comp.Path)
	}
	return sb.String()
}

// explanationLineRe matches "Name: explanation", optionally behind a list
// number ("1. Name: explanation").
var explanationLineRe = regexp.MustCompile(`(?:^\d+\.\s*|^\s*)([a-zA-Z0-9_]+):\s*(.*)`)

// ParseExplanations extracts the name -> explanation pairs from the model's
// numbered-list response. Lines that do not match the expected shape are
// ignored.
func ParseExplanations(text string) map[string]string {
	explanations := make(map[string]string)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if m := explanationLineRe.FindStringSubmatch(line); m != nil {
			explanations[strings.TrimSpace(m[1])] = strings.TrimSpace(m[2])
		}
	}
	return explanations
}

// BuildReadmePrompt truncates the README and wraps it in the summary
// instruction. The truncation keeps prompts small on repositories with very
// large READMEs.
func BuildReadmePrompt(readme string) string {
	if runes := []rune(readme); len(runes) > readmePromptLimit {
		readme = string(runes[:readmePromptLimit])
	}
	return "Summarize this README into a concise 3-5 sentence overview:\n\n" + readme
}

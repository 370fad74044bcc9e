package hint

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
	"gopkg.in/yaml.v3"
)

//go:embed prompts/suggest.txt
var suggestPrompt string

var suggestTmpl = template.Must(template.New("suggest").Parse(suggestPrompt))

// Gemini asks a Gemini model for candidate words.
type Gemini struct {
	client *genai.Client
	model  *genai.GenerativeModel
	count  int
}

// NewGemini connects to Gemini with apiKey. modelName defaults to gemini-2.5-flash.
func NewGemini(ctx context.Context, apiKey, modelName string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}
	return &Gemini{
		client: client,
		model:  client.GenerativeModel(modelName),
		count:  8,
	}, nil
}

func (g *Gemini) Close() error {
	return g.client.Close()
}

// Suggest implements Suggester.
func (g *Gemini) Suggest(ctx context.Context, from, target string, used []string) ([]string, error) {
	prompt, err := renderPrompt(from, target, used, g.count)
	if err != nil {
		return nil, err
	}

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("gemini generate: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no content returned from Gemini")
	}
	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return nil, fmt.Errorf("unexpected response type from Gemini")
	}
	return parseCandidates(string(text))
}

func renderPrompt(from, target string, used []string, count int) (string, error) {
	var buf bytes.Buffer
	err := suggestTmpl.Execute(&buf, struct {
		From, Target string
		Used         []string
		Count        int
	}{From: from, Target: target, Used: used, Count: count})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// parseCandidates reads the YAML reply, tolerating markdown code fences.
func parseCandidates(text string) ([]string, error) {
	clean := strings.TrimSpace(text)
	clean = strings.TrimPrefix(clean, "```yaml")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")

	var out struct {
		Candidates []string `yaml:"candidates"`
	}
	if err := yaml.Unmarshal([]byte(clean), &out); err != nil {
		return nil, fmt.Errorf("failed to parse hint YAML: %w", err)
	}
	return out.Candidates, nil
}

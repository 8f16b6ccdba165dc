// internal/content/generator.go
package content

import (
	"context"
	"fmt"
	"log"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const minContentLength = 100

// Article is the generated document handed to the publisher adapters.
// Body is markdown-style text (blank-line paragraphs, #/## headings) with
// the backlink embedded as a literal HTML anchor.
type Article struct {
	Title string
	Body  string
}

type Request struct {
	Keyword    string
	AnchorText string
	TargetURL  string
	WordCount  int    // optional hint
	Tone       string // optional hint
}

// completionClient is the slice of the OpenAI client the generator uses.
type completionClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Generator produces keyword articles with exactly one embedded anchor
// link. External generation is attempted first; any failure degrades to the
// deterministic templates, so Generate never fails and never surfaces a
// generation error to callers.
type Generator struct {
	client    completionClient
	model     string
	maxTokens int
}

func NewGenerator(apiKey, model string) *Generator {
	g := &Generator{model: model, maxTokens: 1200}
	if apiKey != "" {
		g.client = openai.NewClient(apiKey)
	}
	return g
}

// NewGeneratorWithClient is used by tests to inject a fake completion client.
func NewGeneratorWithClient(client completionClient, model string) *Generator {
	return &Generator{client: client, model: model, maxTokens: 1200}
}

func (g *Generator) Generate(ctx context.Context, req Request) Article {
	title := articleTitle(req.Keyword)
	anchor := anchorHTML(req.TargetURL, req.AnchorText)

	if g.client != nil {
		body, err := g.generateExternal(ctx, req, anchor)
		if err != nil {
			log.Println("⚠️ external generation failed, using template fallback:", err)
		} else if err := validate(body, anchor); err != nil {
			log.Println("⚠️ external generation rejected, using template fallback:", err)
		} else {
			return Article{Title: title, Body: body}
		}
	}

	return Article{Title: title, Body: fallbackBody(req)}
}

func (g *Generator) generateExternal(ctx context.Context, req Request, anchor string) (string, error) {
	words := req.WordCount
	if words <= 0 {
		words = 500
	}
	tone := req.Tone
	if tone == "" {
		tone = "informative"
	}

	prompt := fmt.Sprintf(
		"Write a %s blog article of about %d words on the topic %q. "+
			"Use markdown headings (## for sections) and plain paragraphs separated by blank lines. "+
			"Embed this exact HTML link once, in a natural sentence: %s. "+
			"Do not repeat the link and do not wrap the article in code fences.",
		tone, words, req.Keyword, anchor,
	)

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: "You are an SEO content writer."},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   g.maxTokens,
		Temperature: 0.7,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// validate enforces the generation guarantees: non-trivial length and the
// anchor link present exactly once.
func validate(body, anchor string) error {
	if len(body) < minContentLength {
		return fmt.Errorf("content too short (%d chars)", len(body))
	}
	if n := strings.Count(body, anchor); n != 1 {
		return fmt.Errorf("anchor link appears %d times, want 1", n)
	}
	return nil
}

func anchorHTML(targetURL, anchorText string) string {
	return fmt.Sprintf(`<a href="%s">%s</a>`, targetURL, anchorText)
}

func articleTitle(keyword string) string {
	title := cases.Title(language.English).String(strings.TrimSpace(keyword))
	if title == "" {
		title = "Untitled"
	}
	return fmt.Sprintf("%s: A Practical Guide", title)
}

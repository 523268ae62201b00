package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"pjuskeby-rumors/internal/model"

	openai "github.com/sashabaranov/go-openai"
)

// Summarizer writes the digest's editor's note. Implementations are
// optional; the newsletter renders without one.
type Summarizer interface {
	// EditorsNote creates a short playful note summarizing the period's
	// trending rumors in the given language.
	EditorsNote(ctx context.Context, entries []model.DigestEntry, language string) (string, error)
}

// OpenAIClient implements Summarizer using the OpenAI Chat Completions API.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

type Config struct {
	APIKey  string
	Model   string
	BaseURL string // optional
}

func NewOpenAI(cfg Config) *OpenAIClient {
	var c *openai.Client
	if cfg.BaseURL != "" {
		cc := openai.DefaultConfig(cfg.APIKey)
		cc.BaseURL = cfg.BaseURL
		c = openai.NewClientWithConfig(cc)
	} else {
		c = openai.NewClient(cfg.APIKey)
	}
	model := cfg.Model
	if model == "" {
		panic("OpenAI model must be specified")
	}
	return &OpenAIClient{client: c, model: model}
}

func (o *OpenAIClient) EditorsNote(ctx context.Context, entries []model.DigestEntry, language string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 120*time.Second)
	defer cancel()
	if len(entries) == 0 {
		return "", nil
	}
	b := &strings.Builder{}
	for i, e := range entries {
		if i >= 10 {
			break
		}
		fmt.Fprintf(b, "- %s (%s): %s\n", e.Title, e.Category, e.Excerpt)
	}
	sys := fmt.Sprintf(`
		You are the editor of a small-town gossip newsletter from the fictional town of Pjuskeby.
		Write in %s, return 2-4 sentences (40-120 words).
		Be warm, whimsical and slightly conspiratorial, as if leaning over a garden fence.
		Never confirm or deny any rumor outright.
		`, langOrDefault(language))
	user := fmt.Sprintf("This week's trending rumors (title, category, excerpt):\n%s\nTask: Write the editor's note for the weekly digest. Output plain text only, no links.", b.String())
	out, err := o.create(ctx, sys, user)
	if err != nil {
		slog.Error("openai: editors note error", "err", err)
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (o *OpenAIClient) create(ctx context.Context, system, user string) (string, error) {
	// Default timeout guard, if caller didn't set one
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 300*time.Second)
		defer cancel()
	}
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: 0.6,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

func langOrDefault(lang string) string {
	l := strings.TrimSpace(lang)
	if l == "" {
		return "English"
	}
	return l
}

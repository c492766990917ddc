package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"
)

// TextGenerator is the opaque LLM boundary. The engine only ever feeds it a
// prompt and consumes plain text back, so any chat-capable provider fits.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type textGenerator struct {
	client      *openai.Client
	limiter     *rate.Limiter
	model       string
	maxTokens   int
	temperature float32
}

// NewTextGenerator creates a TextGenerator backed by an OpenAI-compatible
// chat endpoint.
func NewTextGenerator(cfg *GeneratorConfig) (TextGenerator, error) {
	var clientConfig openai.ClientConfig

	switch cfg.Provider {
	case "openai":
		clientConfig = openai.DefaultConfig(cfg.APIKey)
		if cfg.BaseURL != "" {
			clientConfig.BaseURL = cfg.BaseURL
		}

	default:
		return nil, fmt.Errorf("unsupported generator provider: %s", cfg.Provider)
	}

	maxTokens := cfg.MaxTokens
	if maxTokens < 1 {
		maxTokens = 1024
	}

	return &textGenerator{
		client:      openai.NewClientWithConfig(clientConfig),
		limiter:     rate.NewLimiter(rate.Limit(1), 1),
		model:       cfg.Model,
		maxTokens:   maxTokens,
		temperature: cfg.Temperature,
	}, nil
}

func (g *textGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return "", err
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		MaxTokens:   g.maxTokens,
		Temperature: g.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("empty completion response")
	}
	return resp.Choices[0].Message.Content, nil
}

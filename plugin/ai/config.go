package ai

import (
	"errors"

	"github.com/juridex/lexgraph/internal/profile"
)

// Config represents AI configuration.
type Config struct {
	Enabled bool

	Embedding EmbeddingConfig
	Generator GeneratorConfig
}

// EmbeddingConfig represents vector embedding configuration.
type EmbeddingConfig struct {
	Provider   string // openai, or any OpenAI-compatible endpoint
	Model      string // text-embedding-3-small
	Dimensions int
	APIKey     string
	BaseURL    string
	// RateLimit is the request budget in requests per second.
	RateLimit float64
}

// GeneratorConfig represents text generation configuration.
type GeneratorConfig struct {
	Provider    string // openai
	Model       string // gpt-4o-mini
	APIKey      string
	BaseURL     string
	MaxTokens   int     // default: 1024
	Temperature float32 // default: 0.2
}

// NewConfigFromProfile creates AI config from profile.
func NewConfigFromProfile(p *profile.Profile) *Config {
	cfg := &Config{
		Enabled: p.IsAIEnabled(),
	}

	if !cfg.Enabled {
		return cfg
	}

	cfg.Embedding = EmbeddingConfig{
		Provider:   p.AIProvider,
		Model:      p.AIEmbeddingModel,
		Dimensions: p.EmbeddingDim,
		APIKey:     p.AIAPIKey,
		BaseURL:    p.AIBaseURL,
		RateLimit:  p.AIRateLimit,
	}

	cfg.Generator = GeneratorConfig{
		Provider:    p.AIProvider,
		Model:       p.AIModel,
		APIKey:      p.AIAPIKey,
		BaseURL:     p.AIBaseURL,
		MaxTokens:   1024,
		Temperature: 0.2,
	}

	return cfg
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}

	if c.Embedding.Provider == "" {
		return errors.New("embedding provider is required")
	}
	if c.Embedding.APIKey == "" {
		return errors.New("embedding API key is required")
	}
	if c.Embedding.Dimensions < 1 {
		return errors.New("embedding dimensions must be positive")
	}
	if c.Generator.Provider == "" {
		return errors.New("generator provider is required")
	}
	if c.Generator.APIKey == "" {
		return errors.New("generator API key is required")
	}

	return nil
}

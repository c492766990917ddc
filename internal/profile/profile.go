package profile

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Profile is the engine configuration assembled from flags and environment.
type Profile struct {
	// Mode can be "prod" or "dev"
	Mode string
	// Data is the directory analysis reports are written to. Empty means
	// stdout only.
	Data string
	// Version is the current version of the binary
	Version string

	// Propagation model shape
	EmbeddingDim int // LEXGRAPH_EMBEDDING_DIM (default: 64)
	HiddenDim    int // LEXGRAPH_HIDDEN_DIM (default: 32)
	NumLayers    int // LEXGRAPH_NUM_LAYERS (default: 2)

	// Analysis bounds
	MaxKMeansIter int // LEXGRAPH_MAX_KMEANS_ITER (default: 50)

	// AI Configuration
	AIEnabled        bool    // LEXGRAPH_AI_ENABLED
	AIProvider       string  // LEXGRAPH_AI_PROVIDER (default: openai)
	AIAPIKey         string  // LEXGRAPH_AI_API_KEY
	AIBaseURL        string  // LEXGRAPH_AI_BASE_URL (default: https://api.openai.com/v1)
	AIModel          string  // LEXGRAPH_AI_MODEL (default: gpt-4o-mini)
	AIEmbeddingModel string  // LEXGRAPH_AI_EMBEDDING_MODEL (default: text-embedding-3-small)
	AIRateLimit      float64 // LEXGRAPH_AI_RATE_LIMIT requests/second (default: 5)
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// IsAIEnabled returns true if AI is enabled and an API key is configured.
func (p *Profile) IsAIEnabled() bool {
	return p.AIEnabled && p.AIAPIKey != ""
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnvOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getFloatEnvOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// FromEnv loads configuration from LEXGRAPH_* environment variables.
func (p *Profile) FromEnv() {
	p.EmbeddingDim = getIntEnvOrDefault("LEXGRAPH_EMBEDDING_DIM", 64)
	p.HiddenDim = getIntEnvOrDefault("LEXGRAPH_HIDDEN_DIM", 32)
	p.NumLayers = getIntEnvOrDefault("LEXGRAPH_NUM_LAYERS", 2)
	p.MaxKMeansIter = getIntEnvOrDefault("LEXGRAPH_MAX_KMEANS_ITER", 50)

	p.AIEnabled = os.Getenv("LEXGRAPH_AI_ENABLED") == "true"
	p.AIProvider = getEnvOrDefault("LEXGRAPH_AI_PROVIDER", "openai")
	p.AIAPIKey = os.Getenv("LEXGRAPH_AI_API_KEY")
	p.AIBaseURL = getEnvOrDefault("LEXGRAPH_AI_BASE_URL", "https://api.openai.com/v1")
	p.AIModel = getEnvOrDefault("LEXGRAPH_AI_MODEL", "gpt-4o-mini")
	p.AIEmbeddingModel = getEnvOrDefault("LEXGRAPH_AI_EMBEDDING_MODEL", "text-embedding-3-small")
	p.AIRateLimit = getFloatEnvOrDefault("LEXGRAPH_AI_RATE_LIMIT", 5)
}

func checkDataDir(dataDir string) (string, error) {
	if !filepath.IsAbs(dataDir) {
		absDir, err := filepath.Abs(dataDir)
		if err != nil {
			return "", err
		}
		dataDir = absDir
	}

	dataDir = strings.TrimRight(dataDir, "\\/")
	if _, err := os.Stat(dataDir); err != nil {
		return "", errors.Wrapf(err, "unable to access data folder %s", dataDir)
	}
	return dataDir, nil
}

func (p *Profile) Validate() error {
	if p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "dev"
	}

	if p.EmbeddingDim < 1 {
		return errors.Errorf("embedding dimension must be positive, got %d", p.EmbeddingDim)
	}
	if p.HiddenDim < 1 {
		return errors.Errorf("hidden dimension must be positive, got %d", p.HiddenDim)
	}
	if p.NumLayers < 1 {
		return errors.Errorf("layer count must be positive, got %d", p.NumLayers)
	}
	if p.MaxKMeansIter < 1 {
		return errors.Errorf("k-means iteration cap must be positive, got %d", p.MaxKMeansIter)
	}
	if p.AIRateLimit <= 0 {
		return errors.Errorf("AI rate limit must be positive, got %g", p.AIRateLimit)
	}

	if p.Data != "" {
		dataDir, err := checkDataDir(p.Data)
		if err != nil {
			return err
		}
		p.Data = dataDir
	}

	return nil
}

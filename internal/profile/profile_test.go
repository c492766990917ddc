package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"LEXGRAPH_EMBEDDING_DIM",
		"LEXGRAPH_HIDDEN_DIM",
		"LEXGRAPH_NUM_LAYERS",
		"LEXGRAPH_MAX_KMEANS_ITER",
		"LEXGRAPH_AI_ENABLED",
		"LEXGRAPH_AI_PROVIDER",
		"LEXGRAPH_AI_API_KEY",
		"LEXGRAPH_AI_BASE_URL",
		"LEXGRAPH_AI_MODEL",
		"LEXGRAPH_AI_EMBEDDING_MODEL",
		"LEXGRAPH_AI_RATE_LIMIT",
	} {
		t.Setenv(key, "")
	}
}

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)

	p := &Profile{}
	p.FromEnv()

	assert.Equal(t, 64, p.EmbeddingDim)
	assert.Equal(t, 32, p.HiddenDim)
	assert.Equal(t, 2, p.NumLayers)
	assert.Equal(t, 50, p.MaxKMeansIter)
	assert.False(t, p.AIEnabled)
	assert.Equal(t, "openai", p.AIProvider)
	assert.Equal(t, "https://api.openai.com/v1", p.AIBaseURL)
	assert.Equal(t, "gpt-4o-mini", p.AIModel)
	assert.Equal(t, "text-embedding-3-small", p.AIEmbeddingModel)
	assert.Equal(t, 5.0, p.AIRateLimit)
}

func TestFromEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("LEXGRAPH_EMBEDDING_DIM", "128")
	t.Setenv("LEXGRAPH_AI_ENABLED", "true")
	t.Setenv("LEXGRAPH_AI_API_KEY", "test-key")
	t.Setenv("LEXGRAPH_AI_RATE_LIMIT", "2.5")

	p := &Profile{}
	p.FromEnv()

	assert.Equal(t, 128, p.EmbeddingDim)
	assert.True(t, p.AIEnabled)
	assert.True(t, p.IsAIEnabled())
	assert.Equal(t, 2.5, p.AIRateLimit)

	// Malformed numbers fall back to defaults rather than failing load.
	t.Setenv("LEXGRAPH_EMBEDDING_DIM", "lots")
	p = &Profile{}
	p.FromEnv()
	assert.Equal(t, 64, p.EmbeddingDim)
}

func TestIsAIEnabledNeedsKey(t *testing.T) {
	p := &Profile{AIEnabled: true}
	assert.False(t, p.IsAIEnabled())
	p.AIAPIKey = "k"
	assert.True(t, p.IsAIEnabled())
}

func TestValidate(t *testing.T) {
	clearEnv(t)

	p := &Profile{}
	p.FromEnv()
	require.NoError(t, p.Validate())
	assert.Equal(t, "dev", p.Mode, "unknown mode falls back to dev")

	p.Mode = "prod"
	require.NoError(t, p.Validate())
	assert.Equal(t, "prod", p.Mode)
	assert.False(t, p.IsDev())

	p.EmbeddingDim = 0
	require.Error(t, p.Validate())

	p = &Profile{}
	p.FromEnv()
	p.Data = t.TempDir()
	require.NoError(t, p.Validate())

	p.Data = "/nonexistent/lexgraph-data"
	require.Error(t, p.Validate())
}

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "does-not-exist.toml")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "smartfaq", cfg.App.Name)
	assert.Equal(t, "faq_collection", cfg.Qdrant.Collection)
	assert.Equal(t, 1000, cfg.RAG.ChunkSize)
	assert.Equal(t, 200, cfg.RAG.ChunkOverlap)
	assert.Equal(t, 3, cfg.RAG.TopK)
	assert.Equal(t, 3600, cfg.Redis.AnswerTTLSeconds)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CONFIG_FILE", "does-not-exist.toml")
	t.Setenv("QDRANT_COLLECTION", "faq_v2")
	t.Setenv("RAG_TOP_K", "5")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("RAG_CHUNK_SIZE", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "faq_v2", cfg.Qdrant.Collection)
	assert.Equal(t, 5, cfg.RAG.TopK)
	assert.Equal(t, 9090, cfg.App.Port)
	// unparseable overrides fall back to the default
	assert.Equal(t, 1000, cfg.RAG.ChunkSize)
}

func TestHTTPAddrAndDSN(t *testing.T) {
	cfg := defaultConfig()
	cfg.App.Host = "127.0.0.1"
	cfg.App.Port = 8081
	assert.Equal(t, "127.0.0.1:8081", cfg.HTTPAddr())

	cfg.MySQL.User = "faq"
	cfg.MySQL.Password = "secret"
	cfg.MySQL.DB = "smartfaq"
	assert.Contains(t, cfg.MySQLDSN(), "faq:secret@tcp(127.0.0.1:3306)/smartfaq?")
}

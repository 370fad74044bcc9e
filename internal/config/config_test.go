package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_PATH", "LEXICON_CACHE_TTL", "LEXICON_PARALLEL", "GAME_MAX_LINKS", "RARITY_THRESHOLD", "NODE_ENV"} {
		t.Setenv(k, "")
	}
	c := FromEnv()
	assert.Equal(t, "5175", c.Port)
	assert.Equal(t, "./data/wordchain.db", c.DBPath)
	assert.Equal(t, time.Hour, c.LexiconCacheTTL)
	assert.False(t, c.LexiconParallel)
	assert.Equal(t, 20, c.MaxLinks)
	assert.Equal(t, 0.01, c.RarityThreshold)
	assert.False(t, c.Production)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("LEXICON_CACHE_TTL", "90s")
	t.Setenv("LEXICON_PARALLEL", "yes")
	t.Setenv("GAME_MAX_LINKS", "7")
	t.Setenv("RARITY_THRESHOLD", "0.05")
	t.Setenv("NODE_ENV", "production")

	c := FromEnv()
	assert.Equal(t, "9000", c.Port)
	assert.Equal(t, 90*time.Second, c.LexiconCacheTTL)
	assert.True(t, c.LexiconParallel)
	assert.Equal(t, 7, c.MaxLinks)
	assert.Equal(t, 0.05, c.RarityThreshold)
	assert.True(t, c.Production)
}

func TestParsersFallBackOnGarbage(t *testing.T) {
	t.Setenv("X_INT", "seven")
	t.Setenv("X_FLOAT", "")
	t.Setenv("X_BOOL", "maybe")
	t.Setenv("X_DUR", "soon")

	assert.Equal(t, 3, Int("X_INT", 3))
	assert.Equal(t, 1.5, Float("X_FLOAT", 1.5))
	assert.True(t, Bool("X_BOOL", true))
	assert.Equal(t, time.Minute, Duration("X_DUR", time.Minute))
}

func TestRarityThresholdZeroIsKept(t *testing.T) {
	t.Setenv("RARITY_THRESHOLD", "0")
	assert.Zero(t, FromEnv().RarityThreshold)
}

// Package config loads runtime settings from the environment (and a .env file when present).
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	Port         string
	LogLevel     string
	DBPath       string
	ClientOrigin string
	Production   bool

	JWTSecret      string
	JWTExpiresDays int
	CookieName     string
	DailySalt      string

	LexiconBaseURL    string
	LexiconTimeout    time.Duration
	LexiconCacheTTL   time.Duration
	LexiconMaxResults int
	LexiconParallel   bool

	MaxLinks        int
	RarityThreshold float64

	GeminiAPIKey string
	GeminiModel  string
}

// Load reads .env (if any) and then the process environment.
func Load() *Config {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() *Config {
	return &Config{
		Port:         Str("PORT", "5175"),
		LogLevel:     Str("LOG_LEVEL", "info"),
		DBPath:       Str("DB_PATH", "./data/wordchain.db"),
		ClientOrigin: Str("CLIENT_ORIGIN", "http://localhost:5173"),
		Production:   os.Getenv("NODE_ENV") == "production",

		JWTSecret:      Str("JWT_SECRET", "dev_secret_change_me"),
		JWTExpiresDays: Int("JWT_EXPIRES_DAYS", 14),
		CookieName:     Str("COOKIE_NAME", "wordchain_token"),
		DailySalt:      Str("DAILY_SALT", "local_dev_salt"),

		LexiconBaseURL:    Str("LEXICON_BASE_URL", "https://api.datamuse.com"),
		LexiconTimeout:    Duration("LEXICON_TIMEOUT", 5*time.Second),
		LexiconCacheTTL:   Duration("LEXICON_CACHE_TTL", time.Hour),
		LexiconMaxResults: Int("LEXICON_MAX_RESULTS", 100),
		LexiconParallel:   Bool("LEXICON_PARALLEL", false),

		MaxLinks:        Int("GAME_MAX_LINKS", 20),
		RarityThreshold: Float("RARITY_THRESHOLD", 0.01),

		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  Str("GEMINI_MODEL", "gemini-2.5-flash"),
	}
}

// Str returns the value of k or def if unset/empty.
func Str(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Int parses k as an int, falling back to def.
func Int(k string, def int) int {
	if n, err := strconv.Atoi(os.Getenv(k)); err == nil {
		return n
	}
	return def
}

// Float parses k as a float64, falling back to def.
func Float(k string, def float64) float64 {
	if f, err := strconv.ParseFloat(os.Getenv(k), 64); err == nil {
		return f
	}
	return def
}

// Bool parses k as a boolean ("1", "true", "yes", "on"), falling back to def.
func Bool(k string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(k))) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return def
}

// Duration parses k with time.ParseDuration, falling back to def.
func Duration(k string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(k)); err == nil {
		return d
	}
	return def
}

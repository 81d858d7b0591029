package config

import (
	"log/slog"

	"github.com/caarlos0/env/v10"
)

// Config holds minimal runtime configuration. Extend as needed.
type Config struct {
	// Server
	Port     int    `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// LLM
	LLMProvider string `env:"LLM_PROVIDER" envDefault:"ollama"` // "ollama" (local models) or "openai" (hosted API)
	OpenAIKey   string `env:"OPENAI_API_KEY"`
	OpenAIModel string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	OllamaModel string `env:"OLLAMA_MODEL" envDefault:"technobyte/c4ai-command-r7b-12-2024:Q5_K_M"`

	// Geocoding
	GeoapifyKey string `env:"GEOAPIFY_API_KEY"`
	GeoapifyURL string `env:"GEOAPIFY_URL" envDefault:"https://api.geoapify.com"`

	// Community content search
	RedditClientID     string `env:"REDDIT_CLIENT_ID"`
	RedditClientSecret string `env:"REDDIT_CLIENT_SECRET"`
	RedditUsername     string `env:"REDDIT_USERNAME"`
	RedditPassword     string `env:"REDDIT_PASSWORD"`
	Subreddit          string `env:"SUBREDDIT" envDefault:"travel"`
	MaxPosts           int    `env:"MAX_POSTS" envDefault:"5"`

	// Chat
	ChatHistoryLimit int `env:"CHAT_HISTORY_LIMIT" envDefault:"50"` // max retained turns; oldest are evicted
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		slog.Warn("failed to parse env; using defaults where set", "err", err)
	}
	return cfg
}

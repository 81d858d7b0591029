package app

import (
	"fmt"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/openai/openai-go/v3"

	"trip-agent/internal/config"
	"trip-agent/internal/geocode"
	"trip-agent/internal/llm"
	"trip-agent/internal/logger"
	"trip-agent/internal/posts"
)

// Deps bundles common runtime dependencies for the service.
type Deps struct {
	Config   config.Config
	Log      *slog.Logger
	LLM      llm.Client
	Geocoder geocode.Geocoder
	Posts    posts.Searcher
}

// Build loads env, config, and shared components.
func Build() (Deps, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file; relying on process environment", "err", err)
	}
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	llmClient, err := buildLLM(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize LLM: %w", err)
	}
	geocoder, err := buildGeocoder(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize geocoder: %w", err)
	}
	searcher, err := buildSearcher(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize post search: %w", err)
	}
	return Deps{
		Config:   cfg,
		Log:      log,
		LLM:      llmClient,
		Geocoder: geocoder,
		Posts:    searcher,
	}, nil
}

func buildLLM(cfg config.Config, log *slog.Logger) (llm.Client, error) {
	switch cfg.LLMProvider {
	case "ollama":
		client, err := llm.NewOllamaClient(cfg.OllamaModel)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Ollama client: %w", err)
		}
		log.Info("using Ollama LLM client", "model", cfg.OllamaModel)
		return client, nil
	case "openai":
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required when LLM_PROVIDER=openai")
		}
		client, err := llm.NewOpenAIClient(cfg.OpenAIKey, openai.ChatModel(cfg.OpenAIModel))
		if err != nil {
			return nil, fmt.Errorf("failed to initialize OpenAI client: %w", err)
		}
		log.Info("using OpenAI LLM client", "model", cfg.OpenAIModel)
		return client, nil
	default:
		return nil, fmt.Errorf("invalid LLM_PROVIDER: %s (valid options: ollama, openai)", cfg.LLMProvider)
	}
}

func buildGeocoder(cfg config.Config, log *slog.Logger) (geocode.Geocoder, error) {
	if cfg.GeoapifyKey == "" {
		return nil, fmt.Errorf("GEOAPIFY_API_KEY is required")
	}
	client, err := geocode.NewGeoapify(cfg.GeoapifyURL, cfg.GeoapifyKey)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Geoapify client: %w", err)
	}
	log.Info("using Geoapify geocoder", "url", cfg.GeoapifyURL)
	return client, nil
}

func buildSearcher(cfg config.Config, log *slog.Logger) (posts.Searcher, error) {
	searcher, err := posts.NewRedditSearcher(posts.Credentials{
		ClientID:     cfg.RedditClientID,
		ClientSecret: cfg.RedditClientSecret,
		Username:     cfg.RedditUsername,
		Password:     cfg.RedditPassword,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Reddit client: %w", err)
	}
	log.Info("using Reddit post search", "subreddit", cfg.Subreddit, "readonly", cfg.RedditClientID == "")
	return searcher, nil
}

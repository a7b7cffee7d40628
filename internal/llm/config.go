package llm

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"
)

// Kind selects the provider backend.
type Kind string

// Supported provider kinds.
const (
	KindOllama   Kind = "ollama"
	KindGemini   Kind = "gemini"
	KindDisabled Kind = "disabled"
)

// Default Ollama settings matching a local install.
const (
	defaultOllamaBaseURL = "http://localhost:11434"
	defaultOllamaModel   = "llama3:latest"
	defaultGeminiModel   = "gemini-2.5-flash"
	defaultTimeout       = 45 * time.Second
)

// fallbackModels are tried in order after the configured model fails.
var fallbackModels = []string{"mistral:7b", "llama3.1:8b", "phi3:mini"}

// Config holds provider configuration. It is built once from the
// environment in cmd and passed into constructors; components never read
// the environment themselves.
type Config struct {
	Kind    Kind
	BaseURL string
	// Models is the fallback chain: each is tried in order until one answers.
	Models  []string
	APIKey  string
	Timeout time.Duration

	// Cloudflare Access credentials for tunneled Ollama deployments.
	CFAccessClientID     string
	CFAccessClientSecret string
}

// ConfigFromEnv reads provider configuration from the environment once.
func ConfigFromEnv() *Config {
	cfg := &Config{
		Kind:                 Kind(envOr("LLM_PROVIDER", string(KindOllama))),
		BaseURL:              envOr("OLLAMA_BASE_URL", defaultOllamaBaseURL),
		APIKey:               os.Getenv("GEMINI_API_KEY"),
		Timeout:              defaultTimeout,
		CFAccessClientID:     os.Getenv("CF_ACCESS_CLIENT_ID"),
		CFAccessClientSecret: os.Getenv("CF_ACCESS_CLIENT_SECRET"),
	}

	if secs, err := strconv.Atoi(os.Getenv("OLLAMA_TIMEOUT")); err == nil && secs > 0 {
		cfg.Timeout = time.Duration(secs) * time.Second
	}

	switch cfg.Kind {
	case KindGemini:
		cfg.Models = []string{envOr("GEMINI_MODEL", defaultGeminiModel)}
	default:
		cfg.Models = append([]string{envOr("OLLAMA_MODEL", defaultOllamaModel)}, fallbackModels...)
	}

	return cfg
}

// NewProvider builds the configured provider. Misconfiguration fails
// closed: the Disabled provider is returned and generation falls back to
// deterministic rendering.
func NewProvider(ctx context.Context, cfg *Config) Provider {
	if cfg == nil {
		return Disabled{}
	}

	switch cfg.Kind {
	case KindGemini:
		p, err := NewGeminiProvider(ctx, cfg)
		if err != nil {
			log.Printf("[llm] gemini provider unavailable, falling back to offline rendering: %v", err)
			return Disabled{}
		}
		return p
	case KindDisabled:
		return Disabled{}
	default:
		return NewOllamaProvider(cfg)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// userAgent identifies this client to Cloudflare Access fronting a tunnel.
const userAgent = "ResumeGenie/1.0"

// OllamaProvider generates text against an Ollama-compatible HTTP endpoint.
type OllamaProvider struct {
	config *Config
	client *http.Client
}

// NewOllamaProvider creates a provider for the configured Ollama endpoint.
func NewOllamaProvider(cfg *Config) *OllamaProvider {
	return &OllamaProvider{
		config: cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// Name identifies the provider in logs.
func (p *OllamaProvider) Name() string { return "ollama" }

type ollamaRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options,omitempty"`
}

type ollamaResponse struct {
	Response string `json:"response"`
}

// Generate walks the configured model chain, returning the first usable
// completion. The last model's error is returned when none answers.
func (p *OllamaProvider) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	if len(p.config.Models) == 0 {
		return "", ErrUnavailable
	}

	var lastErr error
	for _, model := range p.config.Models {
		text, err := p.generateWithModel(ctx, model, prompt, opts)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	return "", lastErr
}

func (p *OllamaProvider) generateWithModel(ctx context.Context, model, prompt string, opts Options) (string, error) {
	payload := ollamaRequest{
		Model:  model,
		Prompt: prompt,
		Stream: false,
	}
	if opts != (Options{}) {
		payload.Options = map[string]any{
			"temperature": opts.Temperature,
			"num_predict": opts.MaxTokens,
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal generate request: %w", err)
	}

	url := strings.TrimRight(p.config.BaseURL, "/") + "/api/generate"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if p.config.CFAccessClientID != "" && p.config.CFAccessClientSecret != "" {
		req.Header.Set("CF-Access-Client-Id", p.config.CFAccessClientID)
		req.Header.Set("CF-Access-Client-Secret", p.config.CFAccessClientSecret)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("generate request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		return "", &StatusError{Code: resp.StatusCode, Body: string(snippet)}
	}

	var parsed ollamaResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to parse generate response: %w", err)
	}
	if strings.TrimSpace(parsed.Response) == "" {
		return "", ErrEmptyResponse
	}
	return parsed.Response, nil
}

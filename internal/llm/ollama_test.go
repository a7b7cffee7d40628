package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(baseURL string, models ...string) *Config {
	return &Config{
		Kind:    KindOllama,
		BaseURL: baseURL,
		Models:  models,
		Timeout: 5 * time.Second,
	}
}

func TestOllamaGenerate_Success(t *testing.T) {
	var gotReq ollamaRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/generate", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(map[string]string{"response": "tailored resume"})
	}))
	defer srv.Close()

	p := NewOllamaProvider(testConfig(srv.URL, "llama3:latest"))
	text, err := p.Generate(context.Background(), "write a resume", DefaultOptions())

	require.NoError(t, err)
	assert.Equal(t, "tailored resume", text)
	assert.Equal(t, "llama3:latest", gotReq.Model)
	assert.False(t, gotReq.Stream)
	assert.Equal(t, "write a resume", gotReq.Prompt)
}

func TestOllamaGenerate_CloudflareAccessHeaders(t *testing.T) {
	var gotHeaders http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		json.NewEncoder(w).Encode(map[string]string{"response": "ok"})
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL, "llama3:latest")
	cfg.CFAccessClientID = "client-id"
	cfg.CFAccessClientSecret = "client-secret"

	_, err := NewOllamaProvider(cfg).Generate(context.Background(), "hi", Options{})

	require.NoError(t, err)
	assert.Equal(t, "client-id", gotHeaders.Get("CF-Access-Client-Id"))
	assert.Equal(t, "client-secret", gotHeaders.Get("CF-Access-Client-Secret"))
	assert.Equal(t, userAgent, gotHeaders.Get("User-Agent"))
}

func TestOllamaGenerate_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewOllamaProvider(testConfig(srv.URL, "nope")).Generate(context.Background(), "hi", Options{})

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.Code)
}

func TestOllamaGenerate_MissingResponseField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"unexpected": "shape"})
	}))
	defer srv.Close()

	_, err := NewOllamaProvider(testConfig(srv.URL, "llama3:latest")).Generate(context.Background(), "hi", Options{})

	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestOllamaGenerate_ModelFallbackChain(t *testing.T) {
	var models []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ollamaRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		models = append(models, req.Model)
		if req.Model == "primary" {
			http.Error(w, "overloaded", http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"response": "from fallback"})
	}))
	defer srv.Close()

	p := NewOllamaProvider(testConfig(srv.URL, "primary", "fallback"))
	text, err := p.Generate(context.Background(), "hi", Options{})

	require.NoError(t, err)
	assert.Equal(t, "from fallback", text)
	assert.Equal(t, []string{"primary", "fallback"}, models)
}

func TestOllamaGenerate_Unreachable(t *testing.T) {
	// Reserved TEST-NET-1 address; connection should fail fast
	cfg := testConfig("http://192.0.2.1:1", "llama3:latest")
	cfg.Timeout = 200 * time.Millisecond

	_, err := NewOllamaProvider(cfg).Generate(context.Background(), "hi", Options{})

	assert.Error(t, err)
}

func TestNewProvider_FailsClosed(t *testing.T) {
	p := NewProvider(context.Background(), &Config{Kind: KindGemini})

	assert.IsType(t, Disabled{}, p)
}

func TestNewProvider_NilConfig(t *testing.T) {
	assert.IsType(t, Disabled{}, NewProvider(context.Background(), nil))
}

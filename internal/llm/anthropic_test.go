package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func anthropicTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestAnthropicGenerate(t *testing.T) {
	srv := anthropicTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.Header.Get("x-api-key") != "test-key" {
			t.Errorf("x-api-key = %q", r.Header.Get("x-api-key"))
		}
		if r.Header.Get("anthropic-version") == "" {
			t.Error("anthropic-version header missing")
		}

		var req anthropicRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Model != "claude-3-5-haiku-20241022" {
			t.Errorf("model = %q", req.Model)
		}
		if len(req.Messages) != 1 || req.Messages[0].Content != "Summarize this." {
			t.Errorf("messages = %+v", req.Messages)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"content": [{"type": "text", "text": "  A summary.  "}],
			"model": "claude-3-5-haiku-20241022",
			"usage": {"input_tokens": 12, "output_tokens": 5}
		}`))
	})

	client, err := NewAnthropicClient(Config{APIKey: "test-key", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewAnthropicClient: %v", err)
	}
	if client.Name() != "anthropic" {
		t.Errorf("name = %q", client.Name())
	}

	resp, err := client.Generate(context.Background(), GenerateRequest{Prompt: "Summarize this.", MaxTokens: 100})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if resp.Text != "A summary." {
		t.Errorf("text = %q", resp.Text)
	}
	if resp.PromptTokens != 12 || resp.CompletionTokens != 5 {
		t.Errorf("tokens = %d/%d", resp.PromptTokens, resp.CompletionTokens)
	}
}

func TestAnthropicGenerateAPIError(t *testing.T) {
	srv := anthropicTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": {"type": "authentication_error", "message": "invalid x-api-key"}}`))
	})

	client, err := NewAnthropicClient(Config{APIKey: "bad-key", BaseURL: srv.URL})
	if err != nil {
		t.Fatal(err)
	}

	_, err = client.Generate(context.Background(), GenerateRequest{Prompt: "hi"})
	if err == nil {
		t.Fatal("expected error for 401 response")
	}
	if !strings.Contains(err.Error(), "invalid x-api-key") {
		t.Errorf("error = %v", err)
	}
}

func TestAnthropicRequiresAPIKey(t *testing.T) {
	if _, err := NewAnthropicClient(Config{}); err == nil {
		t.Fatal("expected error without API key")
	}
}

func TestNewClientProviders(t *testing.T) {
	for _, provider := range []string{"anthropic", "claude"} {
		client, err := NewClient(Config{Provider: provider, APIKey: "k"})
		if err != nil {
			t.Fatalf("NewClient(%q): %v", provider, err)
		}
		if client.Name() != "anthropic" {
			t.Errorf("NewClient(%q).Name() = %q", provider, client.Name())
		}
	}

	if client, err := NewClient(Config{Provider: ""}); err != nil || client != nil {
		t.Errorf("empty provider = %v, %v; want nil, nil", client, err)
	}
	if _, err := NewClient(Config{Provider: "mystery"}); err == nil {
		t.Error("unknown provider accepted")
	}
}

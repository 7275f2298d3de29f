package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Client defines the text-generation collaborator interface. A nil Client
// means generation is disabled; every call site carries a deterministic
// local fallback for that case and for any error.
type Client interface {
	// Name returns the provider name
	Name() string

	// Available checks if the provider is configured and reachable
	Available(ctx context.Context) bool

	// Generate produces text for the given request
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
}

// GenerateRequest contains the input for a generation call
type GenerateRequest struct {
	Prompt      string
	System      string
	Temperature float64
	MaxTokens   int
}

// GenerateResponse contains the generation output
type GenerateResponse struct {
	Text             string
	Model            string
	PromptTokens     int
	CompletionTokens int
}

// Config holds provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI / Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests, seconds
	Timeout int

	// MaxTokens for response generation
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "", // Disabled by default
		Timeout:   30,
		MaxTokens: 500,
	}
}

// GenerateJSON runs a generation call and unmarshals the response into v.
// The response may be wrapped in markdown code fences; anything that does
// not parse is an error the caller must handle with its deterministic
// fallback — there is no silent recovery here.
func GenerateJSON(ctx context.Context, client Client, task string, req GenerateRequest, usage *Usage, v any) error {
	if client == nil {
		return fmt.Errorf("no text-generation provider configured")
	}

	resp, err := client.Generate(ctx, req)
	if err != nil {
		return fmt.Errorf("generate %s: %w", task, err)
	}
	if usage != nil {
		usage.TrackResponse(task, client.Name(), req.Prompt, resp)
	}

	payload := stripFences(resp.Text)
	if payload == "" {
		return fmt.Errorf("generate %s: empty response", task)
	}
	if err := json.Unmarshal([]byte(payload), v); err != nil {
		return fmt.Errorf("generate %s: parse response: %w", task, err)
	}
	return nil
}

// stripFences removes markdown code fences and isolates the JSON payload
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		parts := strings.SplitN(text, "```", 3)
		if len(parts) >= 2 {
			text = parts[1]
		}
		text = strings.TrimPrefix(text, "json")
		text = strings.TrimSpace(text)
	}

	// Isolate the outermost JSON value when the model added prose around it
	start := strings.IndexAny(text, "[{")
	if start < 0 {
		return ""
	}
	var closer byte
	if text[start] == '[' {
		closer = ']'
	} else {
		closer = '}'
	}
	end := strings.LastIndexByte(text, closer)
	if end <= start {
		return ""
	}
	return text[start : end+1]
}

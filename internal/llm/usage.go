package llm

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// UsageEntry records the token cost of a single generation call
type UsageEntry struct {
	Task             string `json:"task"`
	Model            string `json:"model"`
	PromptTokens     int    `json:"prompt_tokens"`
	CompletionTokens int    `json:"completion_tokens"`
	TotalTokens      int    `json:"total_tokens"`
	Timestamp        string `json:"timestamp"`
}

// Usage accumulates token usage for one pipeline run. One instance is
// created per run and passed down the call chain; there is no process-wide
// state. Not safe for concurrent use — the pipeline is single-threaded.
type Usage struct {
	Run     string       `json:"run"`
	Entries []UsageEntry `json:"entries"`
}

// NewUsage creates a usage tracker for a new run
func NewUsage() *Usage {
	return &Usage{Run: time.Now().Format("20060102_150405")}
}

// Track records one generation call
func (u *Usage) Track(task, model string, promptTokens, completionTokens int) {
	if u == nil {
		return
	}
	u.Entries = append(u.Entries, UsageEntry{
		Task:             task,
		Model:            model,
		PromptTokens:     promptTokens,
		CompletionTokens: completionTokens,
		TotalTokens:      promptTokens + completionTokens,
		Timestamp:        time.Now().Format(time.RFC3339),
	})
}

// TrackResponse records a call using the provider's token counts when
// present, falling back to a length estimate otherwise.
func (u *Usage) TrackResponse(task, model string, prompt string, resp *GenerateResponse) {
	if u == nil || resp == nil {
		return
	}
	promptTokens := resp.PromptTokens
	completionTokens := resp.CompletionTokens
	if promptTokens == 0 && completionTokens == 0 {
		promptTokens = EstimateTokens(prompt)
		completionTokens = EstimateTokens(resp.Text)
	}
	if resp.Model != "" {
		model = resp.Model
	}
	u.Track(task, model, promptTokens, completionTokens)
}

// EstimateTokens approximates the token count of text (~4 chars per token)
func EstimateTokens(text string) int {
	return len(text) / 4
}

// TotalTokens returns the run's total token count
func (u *Usage) TotalTokens() int {
	if u == nil {
		return 0
	}
	total := 0
	for _, e := range u.Entries {
		total += e.TotalTokens
	}
	return total
}

// Summary returns per-task call and token counts
func (u *Usage) Summary() map[string]struct{ Calls, Tokens int } {
	summary := make(map[string]struct{ Calls, Tokens int })
	if u == nil {
		return summary
	}
	for _, e := range u.Entries {
		s := summary[e.Task]
		s.Calls++
		s.Tokens += e.TotalTokens
		summary[e.Task] = s
	}
	return summary
}

// WriteFile saves the usage log as JSON
func (u *Usage) WriteFile(path string) error {
	data, err := json.MarshalIndent(u, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal usage: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write usage: %w", err)
	}
	return nil
}

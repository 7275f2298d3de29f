package compose

import (
	"context"
	"fmt"
	"strings"

	"github.com/praxal/teasergen/internal/llm"
)

// shorten fits text into maxChars without ever producing an ellipsis.
// With an LLM it paraphrases; otherwise (or if the paraphrase is still
// too long) it cuts at a word boundary. The caller keeps the original
// text on the claim so verification is unaffected.
func (c *Composer) shorten(ctx context.Context, text string, maxChars int, task string) string {
	if text == "" || len(text) <= maxChars {
		return text
	}

	if c.client != nil {
		prompt := fmt.Sprintf(`Shorten this text to under %d characters while keeping the key meaning.
Do NOT end with "..." or cut mid-word.

Text: %s

Return only the shortened text:`, maxChars, text)

		resp, err := c.client.Generate(ctx, llm.GenerateRequest{
			Prompt:      prompt,
			Temperature: 0.2,
			MaxTokens:   80,
		})
		if err == nil && resp.Text != "" {
			c.usage.TrackResponse("text_shortening:"+task, resp.Model, prompt, resp)
			shortened := strings.Trim(strings.TrimSpace(resp.Text), `"'`)
			shortened = strings.TrimRight(shortened, ".")
			if shortened != "" && len(shortened) <= maxChars {
				return shortened
			}
		}
	}

	return wordTruncate(text, maxChars)
}

// wordTruncate cuts text at the last word that fits in maxChars
func wordTruncate(text string, maxChars int) string {
	if len(text) <= maxChars {
		return text
	}
	var b strings.Builder
	for _, word := range strings.Fields(text) {
		add := len(word)
		if b.Len() > 0 {
			add++
		}
		if b.Len()+add > maxChars {
			break
		}
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString(word)
	}
	return b.String()
}

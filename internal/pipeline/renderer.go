package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/praxal/teasergen/internal/enrich"
	"github.com/praxal/teasergen/internal/verify"
)

// writeOutputs renders every artifact of a run into dir:
// the teaser deck (markdown and JSON), the citation report, the web-data
// report, and the token usage log. File names share one timestamp so a
// run's artifacts sort together.
func writeOutputs(dir string, result *Result) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	stamp := time.Now().Format("20060102_150405")
	prefix := safeName(result.Company)
	var files []string

	write := func(name, ext string, data []byte) error {
		path := filepath.Join(dir, fmt.Sprintf("%s_%s_%s%s", prefix, name, stamp, ext))
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("write %s%s: %w", name, ext, err)
		}
		files = append(files, path)
		return nil
	}

	if err := write("Teaser", ".md", []byte(deckMarkdown(result))); err != nil {
		return nil, err
	}

	deckJSON, err := json.MarshalIndent(result.Deck, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal deck: %w", err)
	}
	if err := write("Teaser", ".json", deckJSON); err != nil {
		return nil, err
	}

	if err := write("Citations", ".md", []byte(verify.ReportMarkdown(result.Report))); err != nil {
		return nil, err
	}
	if err := write("WebData", ".md", []byte(enrich.Markdown(result.Company, result.Bundle))); err != nil {
		return nil, err
	}

	usageJSON, err := json.MarshalIndent(result.Usage, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal usage: %w", err)
	}
	if err := write("TokenUsage", ".json", usageJSON); err != nil {
		return nil, err
	}

	return files, nil
}

// deckMarkdown renders the filtered deck as the human-reviewable teaser
func deckMarkdown(result *Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Investment Teaser: Project %s\n\n", projectAlias(result.Company))
	fmt.Fprintf(&b, "*Domain: %s | Verification: %d/%d claims (%.1f%%)*\n\n",
		result.Deck.Domain, result.Report.VerifiedCount,
		result.Report.TotalClaims, result.Report.VerificationRate)

	for _, slide := range result.Deck.Slides {
		fmt.Fprintf(&b, "---\n\n## Slide %d: %s\n\n", slide.Index, slide.Title)

		for _, hook := range slide.Hooks {
			fmt.Fprintf(&b, "> %s\n", hook)
		}
		if len(slide.Hooks) > 0 {
			b.WriteString("\n")
		}

		for _, sec := range slide.Sections {
			fmt.Fprintf(&b, "### %s\n\n", sec.Name)
			for _, item := range sec.Items {
				fmt.Fprintf(&b, "- %s\n", item)
			}
			b.WriteString("\n")
		}

		if len(slide.Metrics) > 0 {
			b.WriteString("**Metrics:** ")
			var parts []string
			for _, key := range sortedKeys(slide.Metrics) {
				parts = append(parts, key+": "+slide.Metrics[key])
			}
			b.WriteString(strings.Join(parts, " | "))
			b.WriteString("\n\n")
		}
	}

	return b.String()
}

// projectAlias derives an anonymous project name from the company name,
// keeping the teaser itself name-free.
func projectAlias(company string) string {
	fields := strings.Fields(company)
	if len(fields) == 0 {
		return "X"
	}
	r, _ := utf8.DecodeRuneInString(fields[0])
	return strings.ToUpper(string(r))
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9]+`)

// safeName converts a company name to a filesystem-safe file prefix
func safeName(company string) string {
	name := unsafeChars.ReplaceAllString(strings.TrimSpace(company), "_")
	return strings.Trim(name, "_")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

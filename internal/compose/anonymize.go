package compose

import (
	"regexp"
	"strings"
)

// locationPatterns blinds city and institution names that would identify
// the company in an anonymous teaser. Compiled once; matching is
// case-insensitive on word boundaries.
var locationPatterns = []struct {
	re          *regexp.Regexp
	replacement string
}{
	{regexp.MustCompile(`(?i)\bBangalore\b`), "South India"},
	{regexp.MustCompile(`(?i)\bBengaluru\b`), "South India"},
	{regexp.MustCompile(`(?i)\bMumbai\b`), "West India"},
	{regexp.MustCompile(`(?i)\bDelhi\b`), "North India"},
	{regexp.MustCompile(`(?i)\bChennai\b`), "South India"},
	{regexp.MustCompile(`(?i)\bHyderabad\b`), "South India"},
	{regexp.MustCompile(`(?i)\bPune\b`), "West India"},
	{regexp.MustCompile(`(?i)\bNoida\b`), "North India"},
	{regexp.MustCompile(`(?i)\bDRDO\b`), "Defence Organization"},
	{regexp.MustCompile(`(?i)\bISRO\b`), "Space Agency"},
	{regexp.MustCompile(`(?i)\bHAL\b`), "Aerospace PSU"},
}

// anonymizer removes the company's identity from slide text. Teasers go
// out before an NDA is signed, so the name and home city must not leak.
type anonymizer struct {
	patterns []*regexp.Regexp
}

func newAnonymizer(companyName string) *anonymizer {
	a := &anonymizer{}
	name := strings.TrimSpace(companyName)
	if name != "" {
		a.patterns = append(a.patterns, regexp.MustCompile(`(?i)`+regexp.QuoteMeta(name)))
		if first := strings.Fields(name); len(first) > 1 {
			a.patterns = append(a.patterns, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(first[0])+`\b`))
		}
	}
	return a
}

func (a *anonymizer) apply(text string) string {
	if text == "" {
		return text
	}
	result := text
	for _, re := range a.patterns {
		result = re.ReplaceAllString(result, "The Company")
	}
	for _, loc := range locationPatterns {
		result = loc.re.ReplaceAllString(result, loc.replacement)
	}
	return result
}

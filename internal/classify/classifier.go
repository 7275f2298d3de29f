package classify

import (
	"context"
	"fmt"
	"strings"

	"github.com/praxal/teasergen/internal/llm"
)

// Thresholds preserved for behavioral compatibility; tunable constants,
// not semantically meaningful values.
const (
	hintConfidence        = 0.95
	keywordConfidenceCap  = 0.9
	keywordConfidenceBump = 0.3
	keywordConfidenceBase = 0.5
)

// Result is a classification verdict
type Result struct {
	Domain     Domain
	Confidence float64
	Reasoning  string
}

// Classifier maps free text to a domain, preferring an explicit hint, then
// an LLM call, then deterministic keyword scoring. It never fails: the
// keyword path always produces one of the fixed domain keys.
type Classifier struct {
	client llm.Client
	usage  *llm.Usage
}

// NewClassifier creates a classifier. client may be nil (keyword-only).
func NewClassifier(client llm.Client, usage *llm.Usage) *Classifier {
	return &Classifier{client: client, usage: usage}
}

// Classify assigns a domain from the business description, products, and
// an optional hint taken from the source document.
func (c *Classifier) Classify(ctx context.Context, description, products, hint string) Result {
	if hint != "" {
		if domain, ok := normalizeHint(hint); ok {
			return Result{
				Domain:     domain,
				Confidence: hintConfidence,
				Reasoning:  fmt.Sprintf("Domain specified in data pack: %s", hint),
			}
		}
	}

	text := description
	if products != "" {
		text = description + "\n\nProducts/Services: " + products
	}

	if c.client != nil {
		if result, err := c.classifyLLM(ctx, text); err == nil {
			return result
		}
		// Any LLM failure (timeout, malformed JSON, hallucinated key)
		// falls through to the keyword path.
	}
	return classifyKeywords(text)
}

// normalizeHint maps a free-form domain string to a domain key
func normalizeHint(hint string) (Domain, bool) {
	lower := strings.ToLower(hint)

	// Fixed domain order keeps resolution stable when a hint matches
	// keywords of more than one domain.
	for _, domain := range Domains() {
		if strings.Contains(lower, string(domain)) {
			return domain, true
		}
		for _, kw := range domainTable[domain].Keywords[:3] {
			if strings.Contains(lower, kw) {
				return domain, true
			}
		}
	}

	aliases := map[string]Domain{
		"it services": DomainTechnology,
		"d2c":         DomainConsumer,
		"pharma":      DomainHealthcare,
		"real estate": DomainInfrastructure,
	}
	for alias, domain := range aliases {
		if strings.Contains(lower, alias) {
			return domain, true
		}
	}
	return "", false
}

type llmVerdict struct {
	Domain     string  `json:"domain"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

func (c *Classifier) classifyLLM(ctx context.Context, text string) (Result, error) {
	if len(text) > 2000 {
		text = text[:2000]
	}

	var lines []string
	for i, domain := range Domains() {
		info := domainTable[domain]
		lines = append(lines, fmt.Sprintf("%d. %s - %s", i+1, domain, info.Name))
	}

	prompt := fmt.Sprintf(`You are a domain classifier for M&A due diligence.

Based on the company description below, classify the company into ONE of these domains:
%s

Company Information:
%s

Respond ONLY with a JSON object (no markdown, no explanation):
{"domain": "<domain_key>", "confidence": <0.0 to 1.0>, "reasoning": "<brief explanation>"}`,
		strings.Join(lines, "\n"), text)

	var verdict llmVerdict
	req := llm.GenerateRequest{Prompt: prompt, Temperature: 0.1, MaxTokens: 200}
	if err := llm.GenerateJSON(ctx, c.client, "domain_classification", req, c.usage, &verdict); err != nil {
		return Result{}, err
	}

	domain := Domain(strings.ToLower(verdict.Domain))
	if !Valid(domain) {
		return Result{}, fmt.Errorf("LLM returned unknown domain: %q", verdict.Domain)
	}

	reasoning := verdict.Reasoning
	if reasoning == "" {
		reasoning = "LLM classification"
	}
	return Result{Domain: domain, Confidence: verdict.Confidence, Reasoning: reasoning}, nil
}

// classifyKeywords scores keyword occurrences per domain. Confidence is the
// winning domain's share of total hits, bumped and capped; 0.5 when the
// text matches nothing.
func classifyKeywords(text string) Result {
	lower := strings.ToLower(text)

	type score struct {
		domain  Domain
		hits    int
		matched []string
	}

	var best score
	total := 0
	for _, domain := range Domains() {
		s := score{domain: domain}
		for _, kw := range domainTable[domain].Keywords {
			count := strings.Count(lower, kw)
			if count > 0 {
				s.hits += count
				s.matched = append(s.matched, kw)
			}
		}
		total += s.hits
		if s.hits > best.hits || best.domain == "" {
			best = s
		}
	}

	confidence := keywordConfidenceBase
	if total > 0 {
		confidence = float64(best.hits)/float64(total) + keywordConfidenceBump
		if confidence > keywordConfidenceCap {
			confidence = keywordConfidenceCap
		}
	}

	matched := best.matched
	if len(matched) > 5 {
		matched = matched[:5]
	}
	return Result{
		Domain:     best.domain,
		Confidence: confidence,
		Reasoning:  fmt.Sprintf("Keyword matches: %s", strings.Join(matched, ", ")),
	}
}

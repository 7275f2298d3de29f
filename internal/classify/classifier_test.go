package classify

import (
	"context"
	"strings"
	"testing"
)

func TestClassifyHintShortCircuit(t *testing.T) {
	c := NewClassifier(nil, nil)

	r := c.Classify(context.Background(), "we make things", "", "Pharma & Life Sciences")
	if r.Domain != DomainHealthcare {
		t.Fatalf("domain = %q, want %q", r.Domain, DomainHealthcare)
	}
	if r.Confidence != hintConfidence {
		t.Errorf("confidence = %v, want %v", r.Confidence, hintConfidence)
	}
	if !strings.Contains(r.Reasoning, "data pack") {
		t.Errorf("reasoning = %q, want data pack mention", r.Reasoning)
	}
}

func TestClassifyKeywordFallback(t *testing.T) {
	c := NewClassifier(nil, nil)

	desc := "Leading manufacturer of precision auto components supplying forging and casting parts to OEM customers in the automotive sector."
	r := c.Classify(context.Background(), desc, "forged crankshafts, castings", "")
	if r.Domain != DomainAutomotive {
		t.Fatalf("domain = %q, want %q", r.Domain, DomainAutomotive)
	}
	if r.Confidence <= keywordConfidenceBase || r.Confidence > keywordConfidenceCap {
		t.Errorf("confidence = %v, want in (%v, %v]", r.Confidence, keywordConfidenceBase, keywordConfidenceCap)
	}
	if !strings.HasPrefix(r.Reasoning, "Keyword matches:") {
		t.Errorf("reasoning = %q", r.Reasoning)
	}
}

func TestClassifyNoMatches(t *testing.T) {
	c := NewClassifier(nil, nil)

	r := c.Classify(context.Background(), "xyzzy qwerty", "", "")
	if !Valid(r.Domain) {
		t.Fatalf("invalid domain %q for unmatched text", r.Domain)
	}
	if r.Confidence != keywordConfidenceBase {
		t.Errorf("confidence = %v, want %v", r.Confidence, keywordConfidenceBase)
	}
}

func TestClassifyConfidenceCapped(t *testing.T) {
	// Text hitting a single domain repeatedly should cap, not exceed, 0.9.
	text := strings.Repeat("software saas cloud platform ", 10)
	r := classifyKeywords(text)
	if r.Domain != DomainTechnology {
		t.Fatalf("domain = %q, want %q", r.Domain, DomainTechnology)
	}
	if r.Confidence != keywordConfidenceCap {
		t.Errorf("confidence = %v, want cap %v", r.Confidence, keywordConfidenceCap)
	}
}

func TestNormalizeHint(t *testing.T) {
	cases := []struct {
		hint string
		want Domain
		ok   bool
	}{
		{"Technology", DomainTechnology, true},
		{"IT Services", DomainTechnology, true},
		{"chemicals & polymers", DomainChemicals, true},
		{"Real Estate Development", DomainInfrastructure, true},
		// Matches keywords of both manufacturing and technology; the
		// fixed domain order must resolve it the same way every time.
		{"software production", DomainManufacturing, true},
		{"interpretive dance", "", false},
	}
	for _, tc := range cases {
		got, ok := normalizeHint(tc.hint)
		if ok != tc.ok || got != tc.want {
			t.Errorf("normalizeHint(%q) = %q, %v; want %q, %v", tc.hint, got, ok, tc.want, tc.ok)
		}
	}
}

package verify

import (
	"reflect"
	"strings"
	"testing"

	"github.com/praxal/teasergen/internal/model"
)

const sampleOnePager = `# Acme Precision Engineering - OnePager

## Company Overview
**Description:** Leading manufacturer of precision machined components for aerospace customers.
**Website:** https://acme.example

## Products & Services
* CNC machined components
* Precision sheet metal parts

## Certifications
* AS9100D
* ISO 9001:2015

## Financial Performance
| Metric | Values |
| Revenue From Operations | 2020: 10000, 2021: 12000, 2022: 14500, 2023: 17500, 2024: 21000 |
`

func testRecord() *model.CompanyRecord {
	return &model.CompanyRecord{
		Name:                "Acme Precision Engineering",
		BusinessDescription: "Leading manufacturer of precision machined components for aerospace customers.",
		ProductsServices:    []string{"CNC machined components", "Precision sheet metal parts"},
		Certifications:      []string{"AS9100D", "ISO 9001:2015"},
		Financials: model.FinancialSeries{
			Revenue: map[int]float64{2020: 100, 2021: 120, 2022: 145, 2023: 175, 2024: 210},
			EBITDA:  map[int]float64{2022: 28, 2023: 34, 2024: 40},
		},
	}
}

func testBundle() *model.EnrichmentBundle {
	return &model.EnrichmentBundle{
		Domain:     "manufacturing",
		MarketSize: "$15 billion (2024)",
		GrowthRate: "7-9% (2024-2030)",
		Drivers:    []string{"PLI scheme", "Make in India"},
		Sources: []model.NamedSource{
			{Name: "IBEF Electronics Manufacturing Report", URL: "https://www.ibef.org/industry/electronics-system-design-manufacturing"},
		},
		ScrapedPages: map[string]model.ScrapedPage{
			"about": {URL: "https://acme.example/about-us", PageType: "about", Content: "Acme has served aerospace customers since 1995."},
		},
	}
}

func newTestVerifier() *Verifier {
	return NewVerifier(sampleOnePager, testRecord(), testBundle())
}

func claim(text string) model.DraftClaim {
	return model.DraftClaim{SlideIndex: 2, Section: "Test", Text: text}
}

func TestVerifyCAGRClaim(t *testing.T) {
	v := newTestVerifier()

	// ((210/100)^(1/4) - 1) * 100 = 20.38 -> one decimal 20.4
	c := v.Verify(claim("Revenue CAGR: 20.4%"))
	if !c.Verified {
		t.Fatalf("not verified: %s", c.Reference)
	}
	if c.Kind != model.SourceComputed {
		t.Errorf("kind = %q", c.Kind)
	}
	for _, want := range []string{"20.4%", "100.00", "210.00", "(1/4)"} {
		if !strings.Contains(c.Reference, want) {
			t.Errorf("reference missing %q:\n%s", want, c.Reference)
		}
	}
}

func TestVerifyCAGRWrongValue(t *testing.T) {
	v := newTestVerifier()
	c := v.Verify(claim("Revenue CAGR: 35.0%"))
	if c.Verified {
		t.Fatalf("wrong CAGR verified with reference %q", c.Reference)
	}
	if c.Kind != model.SourceNone {
		t.Errorf("kind = %q", c.Kind)
	}
	if c.Reference != "Calculated value not verified" {
		t.Errorf("reason = %q", c.Reference)
	}
}

func TestVerifyCAGRHookPrecision(t *testing.T) {
	v := newTestVerifier()

	// Hooks state the CAGR at one decimal, the precision comparison uses.
	c := v.Verify(claim("20.4% revenue CAGR over 4 years to ₹210 Cr"))
	if !c.Verified {
		t.Errorf("one-decimal hook should verify: %s", c.Reference)
	}

	// A whole-number restatement is a different figure and must not pass.
	if c := v.Verify(claim("20% revenue CAGR over 4 years to ₹210 Cr")); c.Verified {
		t.Errorf("integer-rounded hook verified: %s", c.Reference)
	}
}

func TestVerifyMarginClaim(t *testing.T) {
	v := newTestVerifier()

	// 40/210*100 = 19.047 -> 19.0
	c := v.Verify(claim("EBITDA Margin: 19.0%"))
	if !c.Verified {
		t.Fatalf("not verified: %s", c.Reference)
	}
	if c.Kind != model.SourceComputed {
		t.Errorf("kind = %q", c.Kind)
	}
	for _, want := range []string{"19.0%", "40.00", "210.00", "FY2024"} {
		if !strings.Contains(c.Reference, want) {
			t.Errorf("reference missing %q:\n%s", want, c.Reference)
		}
	}

	if c := v.Verify(claim("EBITDA Margin: 25.0%")); c.Verified {
		t.Errorf("wrong margin verified: %s", c.Reference)
	}
}

func TestVerifyFYValue(t *testing.T) {
	v := newTestVerifier()

	c := v.Verify(claim("FY24: ₹210.0 Cr"))
	if !c.Verified {
		t.Fatalf("not verified: %s", c.Reference)
	}
	if c.Kind != model.SourceDocument {
		t.Errorf("kind = %q", c.Kind)
	}
	if !strings.Contains(c.Reference, "Revenue FY2024 = ₹210.00 Cr") {
		t.Errorf("reference = %q", c.Reference)
	}

	// Off by more than the tolerance.
	if c := v.Verify(claim("FY24: ₹215.0 Cr")); c.Verified {
		t.Errorf("out-of-tolerance value verified: %s", c.Reference)
	}
	// EBITDA series consulted after revenue.
	if c := v.Verify(claim("FY23: ₹34.0 Cr")); !c.Verified {
		t.Errorf("EBITDA value not verified: %s", c.Reference)
	}
}

func TestVerifyWebMarketSize(t *testing.T) {
	v := newTestVerifier()

	c := v.Verify(claim("Industry Size: $15 billion (2024)"))
	if !c.Verified || c.Kind != model.SourceWeb {
		t.Fatalf("verified=%v kind=%q: %s", c.Verified, c.Kind, c.Reference)
	}
	for _, want := range []string{
		"India market size = $15 billion (2024)",
		"[IBEF Electronics Manufacturing Report](https://www.ibef.org/industry/electronics-system-design-manufacturing)",
	} {
		if !strings.Contains(c.Reference, want) {
			t.Errorf("reference missing %q:\n%s", want, c.Reference)
		}
	}
}

func TestVerifyWebGrowth(t *testing.T) {
	v := newTestVerifier()
	c := v.Verify(claim("Industry Growth: 7-9% (2024-2030)"))
	if !c.Verified || c.Kind != model.SourceWeb {
		t.Fatalf("verified=%v kind=%q: %s", c.Verified, c.Kind, c.Reference)
	}
	if !strings.Contains(c.Reference, "Industry CAGR = 7-9% (2024-2030)") {
		t.Errorf("reference = %q", c.Reference)
	}
}

func TestVerifyWebMissingFact(t *testing.T) {
	record := testRecord()
	bundle := &model.EnrichmentBundle{Domain: "manufacturing"}
	v := NewVerifier(sampleOnePager, record, bundle)

	c := v.Verify(claim("Industry Size: $99 billion"))
	if c.Verified {
		t.Fatalf("verified without bundle fact: %s", c.Reference)
	}
	if c.Reference != "Web data not found" {
		t.Errorf("reason = %q", c.Reference)
	}
}

func TestVerifyWebScrapedPageFallback(t *testing.T) {
	bundle := testBundle()
	bundle.MarketSize = ""
	v := NewVerifier(sampleOnePager, testRecord(), bundle)

	c := v.Verify(claim("aerospace heritage positioned for Market Size leadership"))
	if !c.Verified || c.Kind != model.SourceWeb {
		t.Fatalf("verified=%v kind=%q: %s", c.Verified, c.Kind, c.Reference)
	}
	if !strings.Contains(c.Reference, "Company Website - about") ||
		!strings.Contains(c.Reference, "https://acme.example/about-us") {
		t.Errorf("reference = %q", c.Reference)
	}
}

func TestVerifyDocumentLine(t *testing.T) {
	v := newTestVerifier()

	c := v.Verify(claim("CNC machined components"))
	if !c.Verified || c.Kind != model.SourceDocument {
		t.Fatalf("verified=%v kind=%q: %s", c.Verified, c.Kind, c.Reference)
	}
	if c.LineNumber == 0 {
		t.Error("no line number recorded")
	}
	if !strings.HasPrefix(c.Reference, "Line ") {
		t.Errorf("reference = %q", c.Reference)
	}
	if !strings.Contains(c.Reference, "CNC machined components") {
		t.Errorf("reference does not quote the line: %q", c.Reference)
	}
}

func TestVerifyDocumentWordOverlap(t *testing.T) {
	v := newTestVerifier()

	// Reworded but sharing most words with the description line.
	c := v.Verify(claim("manufacturer of precision machined components"))
	if !c.Verified {
		t.Fatalf("overlap claim not verified: %s", c.Reference)
	}
}

func TestVerifyDocumentFieldFallback(t *testing.T) {
	record := testRecord()
	record.Shareholders = []model.Shareholder{{Name: "Promoter Group Holdings LLP", Pct: 62.5}}
	v := NewVerifier("# empty doc\n", record, testBundle())

	c := v.Verify(claim("Promoter Group Holdings LLP"))
	if !c.Verified {
		t.Fatalf("field fallback failed: %s", c.Reference)
	}
	if !strings.HasPrefix(c.Reference, "Field: ") {
		t.Errorf("reference = %q", c.Reference)
	}
}

func TestVerifyUnverifiable(t *testing.T) {
	v := newTestVerifier()

	c := v.Verify(claim("World-class quantum blockchain synergies"))
	if c.Verified {
		t.Fatalf("nonsense verified: %s", c.Reference)
	}
	if c.Reference != "No matching source found in one-pager" {
		t.Errorf("reason = %q", c.Reference)
	}
}

func TestVerifyTrivialClaim(t *testing.T) {
	v := newTestVerifier()
	c := v.Verify(claim("  ab "))
	if c.Verified || c.Reference != "Empty or too short" {
		t.Errorf("verified=%v reason=%q", c.Verified, c.Reference)
	}
}

func TestVerifyIdempotent(t *testing.T) {
	v := newTestVerifier()
	claims := []model.DraftClaim{
		claim("Revenue CAGR: 20.4%"),
		claim("CNC machined components"),
		claim("Industry Size: $15 billion (2024)"),
		claim("World-class quantum blockchain synergies"),
	}

	first := v.VerifyAll(claims)
	second := v.VerifyAll(claims)
	if !reflect.DeepEqual(first, second) {
		t.Error("verification is not deterministic across runs")
	}
}

func TestVerifyNoTruncation(t *testing.T) {
	long := "Leading manufacturer of precision machined components for aerospace customers. " +
		strings.Repeat("Additional qualifying language about capability. ", 10)
	v := newTestVerifier()
	c := v.Verify(claim(long))

	if c.Claim.Text != long {
		t.Error("claim text altered during verification")
	}
	if strings.Contains(c.Reference, "...") {
		t.Errorf("reference truncated: %q", c.Reference)
	}
}

func TestBuildReportCounts(t *testing.T) {
	v := newTestVerifier()
	citations := v.VerifyAll([]model.DraftClaim{
		claim("Revenue CAGR: 20.4%"),
		claim("CNC machined components"),
		claim("World-class quantum blockchain synergies"),
	})

	report := model.BuildReport("Acme", citations)
	if report.TotalClaims != 3 || report.VerifiedCount != 2 {
		t.Errorf("total=%d verified=%d", report.TotalClaims, report.VerifiedCount)
	}
	if report.BySourceKind[model.SourceComputed] != 1 ||
		report.BySourceKind[model.SourceDocument] != 1 ||
		report.BySourceKind[model.SourceNone] != 1 {
		t.Errorf("by kind = %v", report.BySourceKind)
	}
}

func TestBuildReportEmpty(t *testing.T) {
	report := model.BuildReport("Acme", nil)
	if report.VerificationRate != 100 {
		t.Errorf("rate = %v, want 100 for zero claims", report.VerificationRate)
	}
}

func TestCleanForMatching(t *testing.T) {
	got := cleanForMatching("**Description:**  Leading   manufacturer | of #parts")
	want := "description: leading manufacturer of parts"
	if got != want {
		t.Errorf("clean = %q, want %q", got, want)
	}
}

package verify

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/praxal/teasergen/internal/finmath"
	"github.com/praxal/teasergen/internal/model"
)

// matchThreshold is the minimum containment or overlap score a one-pager
// line must reach before it counts as evidence for a claim.
const matchThreshold = 0.3

// Verifier checks every draft claim against the three evidence sources:
// the one-pager text (with line numbers), the extracted financial series
// (by re-deriving computed figures), and the enrichment bundle. It is a
// pure function of its inputs: the same claim always gets the same
// verdict, and no claim or reference text is ever truncated.
type Verifier struct {
	lines  []string
	record *model.CompanyRecord
	bundle *model.EnrichmentBundle
	flat   []model.FlatField
}

// NewVerifier builds a verifier over the raw one-pager content and the
// structured data extracted from it.
func NewVerifier(onePager string, record *model.CompanyRecord, bundle *model.EnrichmentBundle) *Verifier {
	return &Verifier{
		lines:  strings.Split(onePager, "\n"),
		record: record,
		bundle: bundle,
		flat:   record.Flatten(),
	}
}

// VerifyAll produces exactly one citation per claim, in claim order
func (v *Verifier) VerifyAll(claims []model.DraftClaim) []model.Citation {
	citations := make([]model.Citation, 0, len(claims))
	for _, claim := range claims {
		citations = append(citations, v.Verify(claim))
	}
	return citations
}

// Verify checks one claim. Dispatch is by claim content, not origin:
// computed-looking claims must survive re-derivation, web-looking claims
// must match the bundle, everything else must trace to the one-pager.
func (v *Verifier) Verify(claim model.DraftClaim) model.Citation {
	if len(strings.TrimSpace(claim.Text)) < 3 {
		return unverified(claim, "Empty or too short")
	}
	if computedPattern.MatchString(claim.Text) {
		return v.verifyComputed(claim)
	}
	if webPattern.MatchString(claim.Text) {
		return v.verifyWeb(claim)
	}
	return v.verifyDocument(claim)
}

var (
	computedPattern = regexp.MustCompile(`(?i)CAGR|Margin|FY\d{2,4}.*?Cr\b`)
	webPattern      = regexp.MustCompile(`(?i)Industry Size|Industry Growth|Market Size|\$\d+.*billion|Positioned for`)
	claimPercent    = regexp.MustCompile(`(-?\d+(?:\.\d+)?)%`)
	fyValue         = regexp.MustCompile(`FY(\d{2,4}).*?₹?([\d.]+)\s*Cr`)
)

// verifyComputed re-derives the figure from the financial series and
// accepts the claim only when the claimed value matches the recomputed
// one at one-decimal precision. The reference reproduces the formula,
// the substituted inputs, and the result.
func (v *Verifier) verifyComputed(claim model.DraftClaim) model.Citation {
	fin := v.record.Financials

	if strings.Contains(claim.Text, "CAGR") {
		if cagr, ok := finmath.SeriesCAGR(fin.Revenue); ok && claimedMatches(claim.Text, cagr.Value) {
			ref := fmt.Sprintf(
				"CAGR = ((FY%d_Revenue / FY%d_Revenue)^(1/%d) - 1) × 100\n= ((%.2f / %.2f)^(1/%d) - 1) × 100\n= %.1f%%",
				cagr.EndYear, cagr.StartYear, cagr.Span,
				cagr.EndValue, cagr.StartValue, cagr.Span, cagr.Value)
			return verified(claim, model.SourceComputed, ref)
		}
	}

	if strings.Contains(claim.Text, "Margin") {
		if margin, ok := finmath.SeriesMargin(fin.EBITDA, fin.Revenue); ok && claimedMatches(claim.Text, margin.Value) {
			ref := fmt.Sprintf(
				"EBITDA Margin = (FY%d_EBITDA / FY%d_Revenue) × 100\n= (%.2f / %.2f) × 100\n= %.1f%%",
				margin.Year, margin.Year,
				margin.Numerator, margin.Denominator, margin.Value)
			return verified(claim, model.SourceComputed, ref)
		}
	}

	// FY-prefixed absolute values check directly against the series.
	if m := fyValue.FindStringSubmatch(claim.Text); m != nil {
		year, _ := strconv.Atoi(m[1])
		if len(m[1]) == 2 {
			year += 2000
		}
		value, _ := strconv.ParseFloat(m[2], 64)

		if series, ok := fin.Revenue[year]; ok && abs(series-value) < 1 {
			ref := fmt.Sprintf("Financial data: Revenue FY%d = ₹%.2f Cr", year, series)
			return verified(claim, model.SourceDocument, ref)
		}
		if series, ok := fin.EBITDA[year]; ok && abs(series-value) < 1 {
			ref := fmt.Sprintf("Financial data: EBITDA FY%d = ₹%.2f Cr", year, series)
			return verified(claim, model.SourceDocument, ref)
		}
	}

	return unverified(claim, "Calculated value not verified")
}

// claimedMatches reports whether the percentage stated in the claim
// equals the recomputed value after one-decimal rounding. A claim with
// no explicit percentage cannot match.
func claimedMatches(claimText string, computed float64) bool {
	m := claimPercent.FindStringSubmatch(claimText)
	if m == nil {
		return false
	}
	claimed, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return false
	}
	return fmt.Sprintf("%.1f", claimed) == fmt.Sprintf("%.1f", computed)
}

// verifyWeb checks the claim against the enrichment bundle's market
// facts, then against scraped page content as a fallback.
func (v *Verifier) verifyWeb(claim model.DraftClaim) model.Citation {
	if v.bundle != nil {
		sourceRef := v.marketSourceRefs()

		sizeClaim := strings.Contains(claim.Text, "Market Size") ||
			strings.Contains(claim.Text, "Industry Size") ||
			strings.Contains(claim.Text, "$")
		if sizeClaim && v.bundle.MarketSize != "" {
			ref := fmt.Sprintf("Data: India market size = %s\nSources:\n%s", v.bundle.MarketSize, sourceRef)
			return verified(claim, model.SourceWeb, ref)
		}

		growthClaim := strings.Contains(claim.Text, "Growth") ||
			strings.Contains(strings.ToUpper(claim.Text), "CAGR")
		if growthClaim && v.bundle.GrowthRate != "" {
			ref := fmt.Sprintf("Data: Industry CAGR = %s\nSources:\n%s", v.bundle.GrowthRate, sourceRef)
			return verified(claim, model.SourceWeb, ref)
		}

		driverClaim := strings.Contains(claim.Text, "Positioned for") ||
			strings.Contains(strings.ToLower(claim.Text), "driven by")
		if driverClaim && len(v.bundle.Drivers) > 0 {
			ref := fmt.Sprintf("Industry drivers: %s\nSources:\n%s", strings.Join(v.bundle.Drivers, ", "), sourceRef)
			return verified(claim, model.SourceWeb, ref)
		}

		// Scraped pages: cheap check that the claim's leading words occur
		// in the page at all.
		words := strings.Fields(strings.ToLower(claim.Text))
		if len(words) > 3 {
			words = words[:3]
		}
		for _, pageType := range sortedPageTypes(v.bundle.ScrapedPages) {
			page := v.bundle.ScrapedPages[pageType]
			content := strings.ToLower(page.Content)
			for _, w := range words {
				if strings.Contains(content, w) {
					ref := fmt.Sprintf("Source: Company Website - %s\nURL: %s", pageType, page.URL)
					return verified(claim, model.SourceWeb, ref)
				}
			}
		}
	}

	return unverified(claim, "Web data not found")
}

// marketSourceRefs renders the bundle's market sources as markdown links
func (v *Verifier) marketSourceRefs() string {
	var refs []string
	for _, src := range v.bundle.Sources {
		if strings.HasPrefix(src.Name, "Company Website") {
			continue
		}
		refs = append(refs, fmt.Sprintf("[%s](%s)", src.Name, src.URL))
	}
	if len(refs) == 0 {
		return "Industry estimates"
	}
	return strings.Join(refs, "\n")
}

// verifyDocument looks for the claim in the one-pager, line by line,
// then falls back to the flattened extracted fields. A verified document
// claim always cites the exact line number and quotes the full line.
func (v *Verifier) verifyDocument(claim model.DraftClaim) model.Citation {
	cleanClaim := cleanForMatching(claim.Text)

	bestScore := 0.0
	bestLine := 0
	var bestText string

	claimWords := wordSet(cleanClaim)
	for i, line := range v.lines {
		cleanLine := cleanForMatching(line)
		if cleanLine == "" {
			continue
		}

		if strings.Contains(cleanLine, cleanClaim) || strings.Contains(cleanClaim, cleanLine) {
			score := float64(len(cleanClaim)) / float64(max(len(cleanLine), 1))
			if score > bestScore {
				bestScore = score
				bestLine = i + 1
				bestText = line
			}
		}

		if len(claimWords) > 2 {
			overlap := overlapRatio(claimWords, wordSet(cleanLine))
			if overlap > 0.5 && overlap > bestScore {
				bestScore = overlap
				bestLine = i + 1
				bestText = line
			}
		}
	}

	if bestScore > matchThreshold && bestLine > 0 {
		citation := verified(claim, model.SourceDocument,
			fmt.Sprintf("Line %d: %s", bestLine, strings.TrimSpace(bestText)))
		citation.LineNumber = bestLine
		return citation
	}

	for _, field := range v.flat {
		cleanField := cleanForMatching(field.Value)
		if cleanField == "" {
			continue
		}
		if strings.Contains(cleanField, cleanClaim) || strings.Contains(cleanClaim, cleanField) {
			return verified(claim, model.SourceDocument, "Field: "+field.Path)
		}
	}

	return unverified(claim, "No matching source found in one-pager")
}

// cleanForMatching strips markdown decoration and normalizes whitespace
// and case so slide text can match its source line.
func cleanForMatching(text string) string {
	var b strings.Builder
	for _, r := range text {
		switch r {
		case '*', '_', '#', '-', '|', '`':
		default:
			b.WriteRune(r)
		}
	}
	return strings.ToLower(strings.Join(strings.Fields(b.String()), " "))
}

func wordSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(text) {
		set[w] = true
	}
	return set
}

func overlapRatio(claim, line map[string]bool) float64 {
	if len(claim) == 0 {
		return 0
	}
	shared := 0
	for w := range claim {
		if line[w] {
			shared++
		}
	}
	return float64(shared) / float64(len(claim))
}

func sortedPageTypes(pages map[string]model.ScrapedPage) []string {
	types := make([]string, 0, len(pages))
	for t := range pages {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

func verified(claim model.DraftClaim, kind model.SourceKind, reference string) model.Citation {
	return model.Citation{Claim: claim, Verified: true, Kind: kind, Reference: reference}
}

func unverified(claim model.DraftClaim, reason string) model.Citation {
	return model.Citation{Claim: claim, Verified: false, Kind: model.SourceNone, Reference: reason}
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

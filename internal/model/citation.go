package model

// SourceKind classifies where a claim's evidence came from
type SourceKind string

const (
	SourceDocument SourceKind = "document-line"    // Matched a one-pager line or extracted field
	SourceComputed SourceKind = "computed-formula" // Re-derived from the financial series
	SourceWeb      SourceKind = "web-fact"         // Matched the enrichment bundle or a scraped page
	SourceNone     SourceKind = "unverified"       // No match; Reference holds the reason
)

// Citation is the verification verdict for one DraftClaim. Created exactly
// once per claim per run, immutable. Verified requires a non-empty,
// reproducible Reference; unverified requires a non-empty reason.
type Citation struct {
	Claim      DraftClaim `json:"claim"`
	Verified   bool       `json:"verified"`
	Kind       SourceKind `json:"source_type"`
	Reference  string     `json:"source_reference"` // Line + quote, formula + inputs + result, or name + URL
	LineNumber int        `json:"line_number,omitempty"`
}

// VerificationReport aggregates all citations for a run. Claim and
// reference text is reproduced losslessly; nothing here is ever truncated.
type VerificationReport struct {
	Company          string             `json:"company"`
	TotalClaims      int                `json:"total_claims"`
	VerifiedCount    int                `json:"verified_count"`
	BySourceKind     map[SourceKind]int `json:"by_source_type"`
	VerificationRate float64            `json:"verification_rate"` // percent
	Citations        []Citation         `json:"citations"`
}

// BuildReport computes the summary counts over a citation set
func BuildReport(company string, citations []Citation) VerificationReport {
	report := VerificationReport{
		Company:      company,
		TotalClaims:  len(citations),
		BySourceKind: make(map[SourceKind]int),
		Citations:    citations,
	}
	for _, c := range citations {
		report.BySourceKind[c.Kind]++
		if c.Verified {
			report.VerifiedCount++
		}
	}
	if report.TotalClaims > 0 {
		report.VerificationRate = float64(report.VerifiedCount) / float64(report.TotalClaims) * 100
	} else {
		report.VerificationRate = 100
	}
	return report
}

package verify

import (
	"fmt"
	"sort"
	"strings"

	"github.com/praxal/teasergen/internal/model"
)

// ReportMarkdown renders the verification report. Claim and reference
// text is reproduced in full, never truncated: this document is the
// audit trail for every statement on every slide.
func ReportMarkdown(report model.VerificationReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Citation Report: %s\n\n", report.Company)
	fmt.Fprintf(&b, "**Total Claims:** %d\n", report.TotalClaims)
	fmt.Fprintf(&b, "**Verified:** %d (%.1f%%)\n\n", report.VerifiedCount, report.VerificationRate)

	b.WriteString("**By Source Type:**\n")
	for _, kind := range sortedKinds(report.BySourceKind) {
		fmt.Fprintf(&b, "- %s: %d\n", kind, report.BySourceKind[kind])
	}
	b.WriteString("\n## Verified Citations\n")

	for _, slideNum := range slideNumbers(report.Citations) {
		var onSlide []model.Citation
		for _, c := range report.Citations {
			if c.Claim.SlideIndex == slideNum && c.Verified {
				onSlide = append(onSlide, c)
			}
		}
		if len(onSlide) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n### Slide %d\n\n", slideNum)
		for _, c := range onSlide {
			fmt.Fprintf(&b, "**Claim:** %s\n\n", c.Claim.Text)
			fmt.Fprintf(&b, "**Source Type:** %s\n\n", strings.ToUpper(string(c.Kind)))
			fmt.Fprintf(&b, "**Reference:**\n%s\n\n---\n\n", c.Reference)
		}
	}

	var unverified []model.Citation
	for _, c := range report.Citations {
		if !c.Verified {
			unverified = append(unverified, c)
		}
	}
	if len(unverified) > 0 {
		b.WriteString("\n## Unverified Claims (Excluded from Deck)\n\n")
		for _, c := range unverified {
			fmt.Fprintf(&b, "**Slide %d:** %s\n\n", c.Claim.SlideIndex, c.Claim.Text)
			fmt.Fprintf(&b, "  Reason: %s\n\n", c.Reference)
		}
	}

	return b.String()
}

func sortedKinds(byKind map[model.SourceKind]int) []model.SourceKind {
	kinds := make([]model.SourceKind, 0, len(byKind))
	for k := range byKind {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

func slideNumbers(citations []model.Citation) []int {
	seen := make(map[int]bool)
	var nums []int
	for _, c := range citations {
		if !seen[c.Claim.SlideIndex] {
			seen[c.Claim.SlideIndex] = true
			nums = append(nums, c.Claim.SlideIndex)
		}
	}
	sort.Ints(nums)
	return nums
}

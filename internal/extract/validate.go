package extract

import "strings"

// Validate checks the extracted record for completeness. Missing
// description, website, revenue, or EBITDA are hard failures; other gaps
// are warnings only.
func (e *Extractor) Validate() (bool, []string) {
	var issues []string

	if e.record.BusinessDescription == "" {
		issues = append(issues, "Missing business description")
	}
	if e.record.Website == "" {
		issues = append(issues, "Missing website URL")
	}
	if len(e.record.Financials.Revenue) == 0 {
		issues = append(issues, "Missing revenue data")
	}
	if len(e.record.Financials.EBITDA) == 0 {
		issues = append(issues, "Missing EBITDA data")
	}

	if len(e.record.ProductsServices) == 0 {
		issues = append(issues, "Warning: No products/services extracted")
	}
	if len(e.record.Shareholders) == 0 {
		issues = append(issues, "Warning: No shareholders extracted")
	}

	ok := true
	for _, issue := range issues {
		if strings.HasPrefix(issue, "Missing") {
			ok = false
			break
		}
	}
	return ok, issues
}

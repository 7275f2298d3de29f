package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// lakhsThreshold: monetary values above this are assumed to be stated in
// Lakhs and divided by 100 to get Crores. This mirrors the source
// documents' unit convention and is a heuristic, not a guarantee — a
// legitimately large Crore value would be misclassified. Preserved as-is
// for compatibility with existing one-pagers.
const lakhsThreshold = 100

// Monetary rows get the Lakhs→Crore normalization; ratio rows are kept as-is.
var (
	monetaryRowPatterns = map[string]*regexp.Regexp{
		"revenue":    regexp.MustCompile(`Revenue From Operations \|(.+)`),
		"ebitda":     regexp.MustCompile(`Operating EBITDA \|(.+)`),
		"pat":        regexp.MustCompile(`- PAT \|(.+)`),
		"borrowings": regexp.MustCompile(`Borrowings \|(.+)`),
	}
	ratioRowPatterns = map[string]*regexp.Regexp{
		"pat_margin":     regexp.MustCompile(`PAT Margin \|(.+)`),
		"roce":           regexp.MustCompile(`RoCE \|(.+)`),
		"roe":            regexp.MustCompile(`ROE \|(.+)`),
		"asset_turnover": regexp.MustCompile(`Asset Turnover \|(.+)`),
	}
)

func (e *Extractor) extractFinancials() {
	sec := e.section("## Financials Status")

	parsed := make(map[string]map[int]float64)
	for name, pattern := range monetaryRowPatterns {
		if m := pattern.FindStringSubmatch(sec); m != nil {
			parsed[name] = parseFinancialRow(m[1], true)
		}
	}
	for name, pattern := range ratioRowPatterns {
		if m := pattern.FindStringSubmatch(sec); m != nil {
			parsed[name] = parseFinancialRow(m[1], false)
		}
	}

	e.record.Financials.Revenue = parsed["revenue"]
	e.record.Financials.EBITDA = parsed["ebitda"]
	e.record.Financials.PAT = parsed["pat"]
	e.record.Financials.Borrowings = parsed["borrowings"]
	e.record.Financials.PATMargin = parsed["pat_margin"]
	e.record.Financials.RoCE = parsed["roce"]
	e.record.Financials.ROE = parsed["roe"]
	e.record.Financials.AssetTurnover = parsed["asset_turnover"]
}

// parseFinancialRow parses the inline `year: value | year: value | ...`
// grammar. Entries that fail to parse as int:float are skipped silently; a
// malformed entry never aborts the row.
func parseFinancialRow(row string, monetary bool) map[int]float64 {
	data := make(map[int]float64)
	for _, entry := range strings.Split(row, "|") {
		entry = strings.TrimSpace(entry)
		parts := strings.SplitN(entry, ":", 2)
		if len(parts) != 2 {
			continue
		}
		year, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			continue
		}
		valueStr := strings.TrimSpace(parts[1])
		if valueStr == "" || strings.EqualFold(valueStr, "none") {
			continue
		}
		value, err := strconv.ParseFloat(valueStr, 64)
		if err != nil {
			continue
		}
		if monetary && value > lakhsThreshold {
			value = value / 100
		}
		data[year] = value
	}
	if len(data) == 0 {
		return nil
	}
	return data
}

// Package extract parses one-pager markdown documents into a typed
// CompanyRecord. Extraction is purely rule-based: a missing section yields
// an empty field, never a guess.
package extract

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/praxal/teasergen/internal/model"
)

// Extractor parses a one-pager document
type Extractor struct {
	content string
	record  model.CompanyRecord
}

// NewExtractor creates a new one-pager extractor
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractFile reads the document at path and extracts a CompanyRecord
func (e *Extractor) ExtractFile(path string) (*model.CompanyRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read one-pager: %w", err)
	}
	return e.Extract(string(data)), nil
}

// Extract parses raw document text into a CompanyRecord
func (e *Extractor) Extract(content string) *model.CompanyRecord {
	e.content = content
	e.record = model.CompanyRecord{}

	e.extractBasicInfo()
	e.record.BusinessDescription = e.section("## Business Description")
	e.extractWebsite()
	e.extractProductsServices()
	e.record.IndustriesServed = e.section("## Application areas / Industries served")
	e.extractShareholders()
	e.extractFinancials()
	e.extractMilestones()
	e.extractCertificationsAwards()
	e.record.OperationalIndicators = e.starItems(e.section("## Key Operational Indicators"))
	e.extractSWOT()
	e.extractGlobalPresence()
	e.record.FuturePlans = bulletItems(e.section("## Future Plan"))
	e.extractMarketSize()
	e.record.Facilities = bulletItems(e.section("## Facilities"))
	e.extractPartnersClients()

	return &e.record
}

// Record returns the most recently extracted record
func (e *Extractor) Record() *model.CompanyRecord {
	return &e.record
}

// section returns the text between a `## Header` and the next `## ` header
func (e *Extractor) section(header string) string {
	pattern := regexp.MustCompile(`(?is)` + regexp.QuoteMeta(header) + `\n\n?(.*?)(\n## |\z)`)
	if m := pattern.FindStringSubmatch(e.content); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

var (
	domainPattern   = regexp.MustCompile(`Domain:\s*\*\*(.+?)\*\*`)
	segmentPattern  = regexp.MustCompile(`Segment:\s*\*\*(.+?)\*\*`)
	foundedPattern  = regexp.MustCompile(`Founded:\s*\*\*(.+?)\*\*`)
	hqPattern       = regexp.MustCompile(`Headquarters:\s*\*\*(.+?)\*\*`)
	employeePattern = regexp.MustCompile(`Employees:\s*\*\*(.+?)\*\*`)
	urlPattern      = regexp.MustCompile(`https?://[^\s\)]+`)
	boldPattern     = regexp.MustCompile(`\*\*(.+?)\*\*`)
	boldItemPattern = regexp.MustCompile(`^-\s*\*\*(.+?)\*\*`)
)

func (e *Extractor) extractBasicInfo() {
	details := e.section("## Details")
	if m := domainPattern.FindStringSubmatch(details); m != nil {
		e.record.DomainHint = strings.TrimSpace(m[1])
	}
	if m := segmentPattern.FindStringSubmatch(details); m != nil {
		e.record.Segment = strings.TrimSpace(m[1])
	}
	if m := foundedPattern.FindStringSubmatch(details); m != nil {
		e.record.Founded = strings.TrimSpace(m[1])
	}
	if m := hqPattern.FindStringSubmatch(details); m != nil {
		e.record.Headquarters = strings.TrimSpace(m[1])
	}

	people := e.section("## People")
	if m := employeePattern.FindStringSubmatch(people); m != nil {
		e.record.Employees = strings.TrimSpace(m[1])
	}
}

func (e *Extractor) extractWebsite() {
	sec := e.section("## Website")
	if m := urlPattern.FindString(sec); m != "" {
		e.record.Website = strings.TrimSpace(m)
		return
	}
	e.record.Website = strings.TrimSpace(sec)
}

func (e *Extractor) extractProductsServices() {
	sec := e.section("## Product & Services")
	if sec == "" {
		sec = e.section("## Products & Services")
	}

	var products []string
	for _, line := range strings.Split(sec, "\n") {
		line = strings.TrimSpace(line)
		if m := boldItemPattern.FindStringSubmatch(line); m != nil {
			products = append(products, strings.TrimSpace(m[1]))
		} else if strings.HasPrefix(line, "-") {
			if item := strings.TrimSpace(strings.TrimLeft(line, "- ")); item != "" {
				products = append(products, item)
			}
		}
	}
	e.record.ProductsServices = products
}

func (e *Extractor) extractShareholders() {
	sec := e.section("## Shareholders")

	var shareholders []model.Shareholder
	for _, cells := range tableRows(sec, 3) {
		name, value, kind := cells[0], cells[1], cells[2]
		if strings.EqualFold(name, "SHAREHOLDER NAME") || strings.Contains(name, "---") {
			continue
		}
		pct, err := strconv.ParseFloat(value, 64)
		if err != nil {
			continue
		}
		shareholders = append(shareholders, model.Shareholder{Name: name, Pct: pct, Kind: kind})
	}
	e.record.Shareholders = shareholders
}

func (e *Extractor) extractMilestones() {
	sec := e.section("## Key Milestones")

	var milestones []model.Milestone
	for _, cells := range tableRows(sec, 2) {
		date, text := cells[0], cells[1]
		if strings.EqualFold(date, "DATE") || strings.Contains(date, "---") {
			continue
		}
		if date != "" && text != "" {
			milestones = append(milestones, model.Milestone{Date: date, Text: text})
		}
	}
	e.record.Milestones = milestones
}

// certKeywords mark an item as a certification rather than an award
var certKeywords = []string{"ISO", "GMP", "FSSC", "ROHS", "IPC", "AS9100", "IRIS", "WHO"}

func (e *Extractor) extractCertificationsAwards() {
	sec := e.section("## Awards and Certifications")

	for _, item := range bulletItems(sec) {
		upper := strings.ToUpper(item)
		isCert := false
		for _, kw := range certKeywords {
			if strings.Contains(upper, kw) {
				isCert = true
				break
			}
		}
		if isCert {
			e.record.Certifications = append(e.record.Certifications, item)
		} else {
			e.record.Awards = append(e.record.Awards, item)
		}
	}
}

func (e *Extractor) extractSWOT() {
	sec := e.section("## SWOT")

	var current *[]string
	for _, line := range strings.Split(sec, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "### Strengths"):
			current = &e.record.SWOT.Strengths
		case strings.HasPrefix(line, "### Weaknesses"):
			current = &e.record.SWOT.Weaknesses
		case strings.HasPrefix(line, "### Opportunities"):
			current = &e.record.SWOT.Opportunities
		case strings.HasPrefix(line, "### Threats"):
			current = &e.record.SWOT.Threats
		case strings.HasPrefix(line, "-") && current != nil:
			item := strings.TrimSpace(strings.TrimLeft(line, "- "))
			// Keep the bold title when the item is "Title: detail"
			if idx := strings.Index(item, ":"); idx > 0 {
				item = strings.TrimSpace(item[:idx])
			}
			item = boldPattern.ReplaceAllString(item, "$1")
			if item != "" {
				*current = append(*current, item)
			}
		}
	}
}

func (e *Extractor) extractGlobalPresence() {
	sec := e.section("## Global Presence")
	if sec == "" {
		return
	}
	for _, loc := range regexp.MustCompile(`[,\n]`).Split(sec, -1) {
		if loc = strings.TrimSpace(loc); loc != "" {
			e.record.GlobalPresence = append(e.record.GlobalPresence, loc)
		}
	}
}

func (e *Extractor) extractMarketSize() {
	sec := e.section("## Market Size")

	var rows []model.MarketRow
	for _, line := range strings.Split(sec, "\n") {
		if !strings.Contains(line, "|") || strings.Contains(line, "---") {
			continue
		}
		var parts []string
		for _, p := range strings.Split(line, "|") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		if len(parts) < 5 || strings.EqualFold(parts[0], "SOURCE") {
			continue
		}
		row := model.MarketRow{
			Source: parts[0],
			Market: parts[1],
			Region: parts[2],
			Date:   parts[3],
			Size:   parts[4],
		}
		if len(parts) > 5 {
			row.Growth = parts[5]
		}
		rows = append(rows, row)
	}
	e.record.MarketSize = rows
}

func (e *Extractor) extractPartnersClients() {
	if sec := e.section("## Partners"); sec != "" {
		e.record.Partners = nonEmptyLines(sec)
	}
	if sec := e.section("## Clients"); sec != "" {
		e.record.Clients = nonEmptyLines(sec)
	}
}

// starItems parses `* **bold** text` style indicator lines
func (e *Extractor) starItems(sec string) []string {
	var items []string
	for _, line := range strings.Split(sec, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "*") {
			continue
		}
		item := strings.TrimSpace(strings.TrimLeft(line, "* "))
		item = boldPattern.ReplaceAllString(item, "$1")
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

// bulletItems parses `- item` lines, stripping bold markers
func bulletItems(sec string) []string {
	var items []string
	for _, line := range strings.Split(sec, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "-") {
			continue
		}
		item := strings.TrimSpace(strings.TrimLeft(line, "- "))
		item = boldPattern.ReplaceAllString(item, "$1")
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

// tableRows splits markdown table lines into trimmed cell slices of at
// least minCells cells
func tableRows(sec string, minCells int) [][]string {
	var rows [][]string
	for _, line := range strings.Split(sec, "\n") {
		if !strings.Contains(line, "|") {
			continue
		}
		var cells []string
		for _, c := range strings.Split(line, "|") {
			if c = strings.TrimSpace(c); c != "" {
				cells = append(cells, c)
			}
		}
		if len(cells) >= minCells {
			rows = append(rows, cells[:minCells])
		}
	}
	return rows
}

func nonEmptyLines(sec string) []string {
	var lines []string
	for _, line := range strings.Split(sec, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

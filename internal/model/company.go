package model

import (
	"fmt"
	"sort"
	"strconv"
)

// CompanyRecord holds everything extracted from a one-pager document.
// It is built once per run by the extractor and read-only afterwards.
type CompanyRecord struct {
	Name                string `json:"name"`
	BusinessDescription string `json:"business_description"`
	Website             string `json:"website"`
	DomainHint          string `json:"domain,omitempty"`  // Domain stated in the one-pager, if any
	Segment             string `json:"segment,omitempty"`
	Headquarters        string `json:"headquarters,omitempty"`
	Founded             string `json:"founded,omitempty"`
	Employees           string `json:"employees,omitempty"`

	ProductsServices      []string `json:"products_services"`
	IndustriesServed      string   `json:"industries_served"`
	Certifications        []string `json:"certifications"`
	Awards                []string `json:"awards"`
	Partners              []string `json:"partners,omitempty"`
	Clients               []string `json:"clients,omitempty"`
	OperationalIndicators []string `json:"key_operational_indicators"`
	GlobalPresence        []string `json:"global_presence,omitempty"`
	FuturePlans           []string `json:"future_plans,omitempty"`
	Facilities            []string `json:"facilities,omitempty"`

	Shareholders []Shareholder `json:"shareholders"`
	Milestones   []Milestone   `json:"key_milestones"`
	MarketSize   []MarketRow   `json:"market_size,omitempty"`
	SWOT         SWOT          `json:"swot"`

	Financials FinancialSeries `json:"financials"`
}

// Shareholder is one row of the shareholders table
type Shareholder struct {
	Name string  `json:"name"`
	Pct  float64 `json:"value"`
	Kind string  `json:"type,omitempty"`
}

// Milestone is one row of the key milestones table
type Milestone struct {
	Date string `json:"date"`
	Text string `json:"milestone"`
}

// MarketRow is one row of the one-pager's own market size table
type MarketRow struct {
	Source string `json:"source"`
	Market string `json:"market"`
	Region string `json:"region"`
	Date   string `json:"date"`
	Size   string `json:"size"`
	Growth string `json:"growth"`
}

// SWOT holds the four SWOT categories
type SWOT struct {
	Strengths     []string `json:"strengths"`
	Weaknesses    []string `json:"weaknesses"`
	Opportunities []string `json:"opportunities"`
	Threats       []string `json:"threats"`
}

// FinancialSeries holds per-metric year→value maps. Years are absolute
// 4-digit integers; monetary series are normalized to Crores at extraction.
type FinancialSeries struct {
	Revenue       map[int]float64 `json:"revenue"`
	EBITDA        map[int]float64 `json:"ebitda"`
	PAT           map[int]float64 `json:"pat"`
	PATMargin     map[int]float64 `json:"pat_margin"`
	RoCE          map[int]float64 `json:"roce"`
	ROE           map[int]float64 `json:"roe"`
	AssetTurnover map[int]float64 `json:"asset_turnover"`
	Borrowings    map[int]float64 `json:"borrowings"`
	Equity        map[int]float64 `json:"equity,omitempty"`
}

// Years returns the sorted years present in a series
func Years(series map[int]float64) []int {
	years := make([]int, 0, len(series))
	for y := range series {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// LatestYears returns the last n years of a series, oldest first
func LatestYears(series map[int]float64, n int) []int {
	years := Years(series)
	if len(years) > n {
		years = years[len(years)-n:]
	}
	return years
}

// FlatField is one leaf of a flattened CompanyRecord
type FlatField struct {
	Path  string
	Value string
}

// Flatten walks the record's known fields and returns dotted/bracketed
// key paths with their string values. This is the verifier's last-resort
// matching surface; it replaces the untyped dict walk of earlier designs.
func (r *CompanyRecord) Flatten() []FlatField {
	var fields []FlatField

	add := func(path, value string) {
		if value != "" {
			fields = append(fields, FlatField{Path: path, Value: value})
		}
	}
	addList := func(path string, items []string) {
		for i, item := range items {
			add(fmt.Sprintf("%s[%d]", path, i), item)
		}
	}

	add("name", r.Name)
	add("business_description", r.BusinessDescription)
	add("website", r.Website)
	add("domain", r.DomainHint)
	add("segment", r.Segment)
	add("headquarters", r.Headquarters)
	add("founded", r.Founded)
	add("employees", r.Employees)
	add("industries_served", r.IndustriesServed)

	addList("products_services", r.ProductsServices)
	addList("certifications", r.Certifications)
	addList("awards", r.Awards)
	addList("partners", r.Partners)
	addList("clients", r.Clients)
	addList("key_operational_indicators", r.OperationalIndicators)
	addList("global_presence", r.GlobalPresence)
	addList("future_plans", r.FuturePlans)
	addList("facilities", r.Facilities)

	for i, sh := range r.Shareholders {
		add(fmt.Sprintf("shareholders[%d].name", i), sh.Name)
		add(fmt.Sprintf("shareholders[%d].value", i), strconv.FormatFloat(sh.Pct, 'f', -1, 64))
		add(fmt.Sprintf("shareholders[%d].type", i), sh.Kind)
	}
	for i, m := range r.Milestones {
		add(fmt.Sprintf("key_milestones[%d].date", i), m.Date)
		add(fmt.Sprintf("key_milestones[%d].milestone", i), m.Text)
	}
	for i, row := range r.MarketSize {
		add(fmt.Sprintf("market_size[%d].market", i), row.Market)
		add(fmt.Sprintf("market_size[%d].size", i), row.Size)
		add(fmt.Sprintf("market_size[%d].growth", i), row.Growth)
	}

	addList("swot.strengths", r.SWOT.Strengths)
	addList("swot.weaknesses", r.SWOT.Weaknesses)
	addList("swot.opportunities", r.SWOT.Opportunities)
	addList("swot.threats", r.SWOT.Threats)

	flattenSeries := func(name string, series map[int]float64) {
		for _, year := range Years(series) {
			add(fmt.Sprintf("financials.%s.%d", name, year), strconv.FormatFloat(series[year], 'f', 2, 64))
		}
	}
	flattenSeries("revenue", r.Financials.Revenue)
	flattenSeries("ebitda", r.Financials.EBITDA)
	flattenSeries("pat", r.Financials.PAT)
	flattenSeries("pat_margin", r.Financials.PATMargin)
	flattenSeries("roce", r.Financials.RoCE)
	flattenSeries("roe", r.Financials.ROE)
	flattenSeries("asset_turnover", r.Financials.AssetTurnover)
	flattenSeries("borrowings", r.Financials.Borrowings)
	flattenSeries("equity", r.Financials.Equity)

	return fields
}

package model

// EnrichmentBundle holds domain-level market facts gathered independently
// of the one-pager. Read-only input to composition and verification.
// Every fact that can be cited carries named sources or a scraped-page URL.
type EnrichmentBundle struct {
	Domain           string                 `json:"domain"`
	IndustryName     string                 `json:"industry_name"`
	MarketSize       string                 `json:"india_market_size,omitempty"`
	GlobalMarketSize string                 `json:"global_market_size,omitempty"`
	GrowthRate       string                 `json:"cagr,omitempty"`
	Drivers          []string               `json:"key_drivers,omitempty"`
	Sources          []NamedSource          `json:"sources"`
	News             []NewsItem             `json:"news,omitempty"`
	ScrapedPages     map[string]ScrapedPage `json:"scraped_pages,omitempty"` // keyed by page type
	OutlookSummary   string                 `json:"industry_outlook,omitempty"`
}

// NamedSource is an attributable market-data source
type NamedSource struct {
	Name       string `json:"name"`
	URL        string `json:"url"`
	Metric     string `json:"metric,omitempty"`
	Value      string `json:"value,omitempty"`
	AccessDate string `json:"access_date,omitempty"`
}

// NewsItem is a single industry news headline with its source
type NewsItem struct {
	Headline   string `json:"headline"`
	SourceName string `json:"source_name"`
	SourceURL  string `json:"source_url"`
	Date       string `json:"date"`
}

// ScrapedPage is one fetched company-website page, full text preserved
type ScrapedPage struct {
	URL       string `json:"url"`
	PageType  string `json:"page_type"`
	Content   string `json:"content"`
	ScrapedAt string `json:"scraped_at"`
}

// HasMarketData reports whether the bundle carries any market-level fact
func (b *EnrichmentBundle) HasMarketData() bool {
	return b != nil && (b.MarketSize != "" || b.GrowthRate != "" || len(b.Drivers) > 0)
}

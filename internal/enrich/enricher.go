package enrich

import (
	"context"

	"github.com/praxal/teasergen/internal/cache"
	"github.com/praxal/teasergen/internal/classify"
	"github.com/praxal/teasergen/internal/model"
)

// Enricher gathers everything the pipeline knows beyond the one-pager:
// curated market data for the company's domain, industry news, and the
// company's own website pages.
type Enricher struct {
	scraper *Scraper
	scrape  bool
}

// NewEnricher builds an enricher; scraping is skipped entirely when
// disabled in config.
func NewEnricher(cfg *model.Config, store *cache.PageStore) *Enricher {
	return &Enricher{
		scraper: NewScraper(cfg, store),
		scrape:  cfg.Scrape.Enabled,
	}
}

// Fetch assembles the enrichment bundle for one company. It never fails:
// a dead website or unknown domain just produces a thinner bundle.
func (e *Enricher) Fetch(ctx context.Context, domain classify.Domain, website string) *model.EnrichmentBundle {
	facts := marketData(domain)

	bundle := &model.EnrichmentBundle{
		Domain:           string(domain),
		IndustryName:     facts.IndustryName,
		MarketSize:       facts.MarketSize,
		GlobalMarketSize: facts.GlobalMarketSize,
		GrowthRate:       facts.GrowthRate,
		Drivers:          facts.Drivers,
		Sources:          append([]model.NamedSource(nil), facts.Sources...),
		News:             append([]model.NewsItem(nil), facts.News...),
		OutlookSummary:   outlookSummary(facts),
	}

	if e.scrape && website != "" {
		pages := e.scraper.ScrapeSite(ctx, website)
		if len(pages) > 0 {
			bundle.ScrapedPages = pages
		}
		for _, pageType := range pageTypeOrder(pages) {
			page := pages[pageType]
			bundle.Sources = append(bundle.Sources, model.NamedSource{
				Name:       "Company Website - " + pageType,
				URL:        page.URL,
				AccessDate: page.ScrapedAt,
			})
		}
	}

	return bundle
}

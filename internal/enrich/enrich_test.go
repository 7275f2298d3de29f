package enrich

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/praxal/teasergen/internal/cache"
	"github.com/praxal/teasergen/internal/classify"
	"github.com/praxal/teasergen/internal/model"
)

func testConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.Scrape.RequestsPerSecond = 100 // keep tests fast
	cfg.Scrape.Burst = 10
	cfg.Cache.Enabled = false
	return cfg
}

func pad(s string) string {
	return s + " " + strings.Repeat("lorem ipsum dolor sit amet ", 20)
}

func testSite(t *testing.T, disallowAbout bool) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		if disallowAbout {
			w.Write([]byte("User-agent: *\nDisallow: /about-us\n"))
			return
		}
		w.Write([]byte("User-agent: *\nAllow: /\n"))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`<html><body>
			<nav><a href="/hidden">Navigation link</a></nav>
			<h1>Acme Precision Ltd</h1>
			<p>` + pad("We build precision components.") + `</p>
			<a href="/about-us">About Us</a>
			<a href="/products">Our Products</a>
			<a href="https://twitter.com/acme">Twitter</a>
			<a href="#top">Top</a>
			</body></html>`))
	})
	mux.HandleFunc("/about-us", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><p>" + pad("Founded in 1995, Acme serves aerospace customers.") + "</p></body></html>"))
	})
	mux.HandleFunc("/products", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><p>" + pad("CNC machined parts and assemblies.") + "</p></body></html>"))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestScrapeSiteDiscovery(t *testing.T) {
	srv := testSite(t, false)
	s := NewScraper(testConfig(), nil)

	pages := s.ScrapeSite(context.Background(), srv.URL)

	home, ok := pages["homepage"]
	if !ok {
		t.Fatal("homepage not scraped")
	}
	if !strings.Contains(home.Content, "precision components") {
		t.Errorf("homepage content = %q", home.Content[:min(80, len(home.Content))])
	}
	if strings.Contains(home.Content, "Navigation link") {
		t.Error("nav content should be stripped")
	}

	about, ok := pages["about"]
	if !ok {
		t.Fatal("about page not discovered")
	}
	if !strings.Contains(about.Content, "Founded in 1995") {
		t.Errorf("about content = %q", about.Content[:min(80, len(about.Content))])
	}
	if _, ok := pages["products"]; !ok {
		t.Error("products page not discovered")
	}
}

func TestScrapeSiteRespectsRobots(t *testing.T) {
	srv := testSite(t, true)
	s := NewScraper(testConfig(), nil)

	pages := s.ScrapeSite(context.Background(), srv.URL)
	if _, ok := pages["about"]; ok {
		t.Error("about page scraped despite robots.txt disallow")
	}
	if _, ok := pages["products"]; !ok {
		t.Error("allowed products page should still be scraped")
	}
}

func TestScrapeSiteUsesCache(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			hits++
		}
		w.Write([]byte("<html><body><p>" + pad("hello") + "</p></body></html>"))
	}))
	defer srv.Close()

	store := cache.NewPageStore(cache.NewMemoryCache(time.Minute, time.Minute), time.Minute)
	s := NewScraper(testConfig(), store)

	s.ScrapeSite(context.Background(), srv.URL)
	s.ScrapeSite(context.Background(), srv.URL)
	if hits != 1 {
		t.Errorf("homepage fetched %d times, want 1 (second run should hit cache)", hits)
	}
}

func TestScrapeSiteDeadSite(t *testing.T) {
	s := NewScraper(testConfig(), nil)
	pages := s.ScrapeSite(context.Background(), "http://127.0.0.1:1")
	if len(pages) != 0 {
		t.Errorf("dead site yielded %d pages", len(pages))
	}
}

func TestMarketDataKnownDomain(t *testing.T) {
	facts := marketData(classify.DomainAutomotive)
	if facts.IndustryName != "Auto Components" {
		t.Errorf("industry = %q", facts.IndustryName)
	}
	if len(facts.Sources) == 0 {
		t.Fatal("no sources for automotive")
	}
	if !strings.HasPrefix(facts.Sources[0].URL, "https://") {
		t.Errorf("source URL = %q", facts.Sources[0].URL)
	}
}

func TestMarketDataUnknownDomain(t *testing.T) {
	facts := marketData(classify.Domain("mystery"))
	if facts.IndustryName != "General Industry" {
		t.Errorf("industry = %q", facts.IndustryName)
	}
	if len(facts.Sources) != 0 {
		t.Error("unknown domain should have no sources")
	}
}

func TestOutlookSummary(t *testing.T) {
	facts := marketTable[classify.DomainChemicals]
	got := outlookSummary(facts)
	want := "Specialty Chemicals is expected to grow at 10-12% (2024-2028) CAGR, driven by China+1, PLI scheme, Sustainability."
	if got != want {
		t.Errorf("outlook = %q, want %q", got, want)
	}
}

func TestFetchBundle(t *testing.T) {
	srv := testSite(t, false)
	cfg := testConfig()
	e := NewEnricher(cfg, nil)

	bundle := e.Fetch(context.Background(), classify.DomainTechnology, srv.URL)

	if !bundle.HasMarketData() {
		t.Fatal("bundle missing market data")
	}
	if bundle.IndustryName != "IT Services" {
		t.Errorf("industry = %q", bundle.IndustryName)
	}
	if len(bundle.ScrapedPages) == 0 {
		t.Error("no scraped pages in bundle")
	}

	// Website pages must appear in the source list alongside market reports.
	foundSite := false
	for _, src := range bundle.Sources {
		if strings.HasPrefix(src.Name, "Company Website") {
			foundSite = true
		}
	}
	if !foundSite {
		t.Error("scraped pages not recorded as sources")
	}
}

func TestFetchScrapingDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Scrape.Enabled = false
	e := NewEnricher(cfg, nil)

	bundle := e.Fetch(context.Background(), classify.DomainHealthcare, "https://example.com")
	if len(bundle.ScrapedPages) != 0 {
		t.Error("scraping ran despite being disabled")
	}
	if bundle.MarketSize == "" {
		t.Error("market data should still be present")
	}
}

func TestMarkdownRender(t *testing.T) {
	bundle := &model.EnrichmentBundle{
		Domain:       "chemicals",
		IndustryName: "Specialty Chemicals",
		MarketSize:   "$40 billion (2024)",
		GrowthRate:   "10-12% (2024-2028)",
		Sources: []model.NamedSource{
			{Name: "IBEF Chemicals Report", URL: "https://www.ibef.org/industry/chemicals-industry-india", Metric: "India Chemicals", AccessDate: "2024-12"},
		},
		News: []model.NewsItem{
			{Headline: "Specialty chemicals export rise 12%", SourceName: "Chemical Weekly", SourceURL: "https://www.chemicalweekly.com/", Date: "2024-02"},
		},
		ScrapedPages: map[string]model.ScrapedPage{
			"homepage": {URL: "https://acme.example", PageType: "homepage", Content: "Acme makes resins.", ScrapedAt: "2024-12-01 10:00"},
		},
	}

	md := Markdown("Acme Chemicals", bundle)

	for _, want := range []string{
		"# Web Scraped Data: Acme Chemicals",
		"| India Market Size | $40 billion (2024) |",
		"[IBEF Chemicals Report](https://www.ibef.org/industry/chemicals-industry-india)",
		"**Specialty chemicals export rise 12%**",
		"> Acme makes resins.",
		"| Global Market Size | N/A |",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

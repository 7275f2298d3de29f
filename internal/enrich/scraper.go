package enrich

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/time/rate"

	"github.com/praxal/teasergen/internal/cache"
	"github.com/praxal/teasergen/internal/model"
	"github.com/praxal/teasergen/internal/util"
)

// minPageText is the smallest body a page must yield to count as scraped.
// Shorter pages are cookie walls, redirects, or placeholders.
const minPageText = 200

// pageCategories maps a page type to the keywords that identify it, in a
// link's URL or its visible label.
var pageCategories = map[string][]string{
	"about":     {"about", "company", "who we are", "profile", "leadership", "vision"},
	"products":  {"product", "service", "solution", "offering", "capabilities", "platform"},
	"investors": {"investor", "financial", "shareholder", "annual report", "quarterly", "results"},
	"contact":   {"contact", "reach us", "location", "office"},
	"news":      {"news", "media", "press", "blog", "insight", "update"},
}

// guessedPaths is the last-resort page map when homepage discovery yields
// nothing (heavily scripted sites render no anchors server-side).
var guessedPaths = map[string][]string{
	"about":     {"/about-us", "/about", "/company"},
	"products":  {"/products", "/services", "/solutions"},
	"investors": {"/investors", "/investor-relations"},
	"contact":   {"/contact", "/contact-us"},
}

// Scraper fetches a company website politely: robots.txt honored, one
// host rate-limited, bodies size-capped, pages cached across runs.
type Scraper struct {
	httpClient  *http.Client
	userAgent   string
	maxBytes    int64
	robots      *robotsGate
	pages       *cache.PageStore
	verbose     bool

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	perSec   rate.Limit
	burst    int
}

// NewScraper builds a scraper from config. store may be nil (no caching).
func NewScraper(cfg *model.Config, store *cache.PageStore) *Scraper {
	burst := cfg.Scrape.Burst
	if burst <= 0 {
		burst = 1
	}

	return &Scraper{
		httpClient: &http.Client{
			Timeout: cfg.HTTP.Timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy, cfg.HTTP.NoProxy),
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent:   cfg.HTTP.UserAgent,
		maxBytes:    cfg.HTTP.MaxBodyBytes,
		robots:      newRobotsGate(cfg.HTTP.UserAgent, cfg.HTTP.Timeout),
		pages:       store,
		verbose:     cfg.Output.Verbose,
		limiters:    make(map[string]*rate.Limiter),
		perSec:      rate.Limit(cfg.Scrape.RequestsPerSecond),
		burst:       burst,
	}
}

// ScrapeSite fetches the homepage, discovers category pages from its
// links, and scrapes the first working candidate per category. Returns
// pages keyed by type; an unreachable site returns an empty map, never
// an error.
func (s *Scraper) ScrapeSite(ctx context.Context, website string) map[string]model.ScrapedPage {
	result := make(map[string]model.ScrapedPage)
	if website == "" {
		return result
	}

	base := strings.TrimRight(website, "/")
	if !strings.HasPrefix(base, "http") {
		base = "https://" + base
	}

	home, doc, err := s.fetchPage(ctx, base, "homepage")
	if err != nil {
		s.logf("homepage fetch failed: %v", err)
	} else {
		result["homepage"] = *home
	}

	candidates := map[string][]string{}
	if doc != nil {
		candidates = discoverPages(base, doc)
	}
	if countLinks(candidates) == 0 {
		s.logf("no links discovered on homepage, guessing common paths")
		candidates = make(map[string][]string)
		for category, paths := range guessedPaths {
			for _, p := range paths {
				candidates[category] = append(candidates[category], base+p)
			}
		}
	}

	seen := map[string]bool{base: true, base + "/": true}
	for category, urls := range candidates {
		for _, target := range urls {
			if seen[target] {
				continue
			}
			seen[target] = true

			page, _, err := s.fetchPage(ctx, target, category)
			if err != nil {
				s.logf("skip %s: %v", target, err)
				continue
			}
			result[category] = *page
			break
		}
	}

	return result
}

// fetchPage retrieves one URL and converts it to a ScrapedPage. The
// parsed document is returned alongside so the homepage call can reuse
// it for link discovery.
func (s *Scraper) fetchPage(ctx context.Context, rawURL, pageType string) (*model.ScrapedPage, *html.Node, error) {
	// Cached pages carry extracted text, not HTML, so no doc comes back;
	// the homepage caller falls through to guessed paths, whose fetches
	// hit the cache in turn.
	if cached, found := s.pages.Get(rawURL); found {
		s.logf("cache hit: %s", rawURL)
		page := *cached
		page.PageType = pageType
		return &page, nil, nil
	}

	if ok, delay := s.robots.allowed(ctx, rawURL); !ok {
		return nil, nil, fmt.Errorf("disallowed by robots.txt")
	} else if delay > 0 {
		select {
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		case <-time.After(delay):
		}
	}

	if err := s.wait(ctx, rawURL); err != nil {
		return nil, nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBytes))
	if err != nil {
		return nil, nil, fmt.Errorf("read body: %w", err)
	}

	doc, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		return nil, nil, fmt.Errorf("parse html: %w", err)
	}

	text := visibleText(doc)
	if pageType != "homepage" && len(text) < minPageText {
		return nil, nil, fmt.Errorf("page too thin (%d chars)", len(text))
	}

	page := &model.ScrapedPage{
		URL:       rawURL,
		PageType:  pageType,
		Content:   text,
		ScrapedAt: time.Now().Format("2006-01-02 15:04"),
	}
	s.pages.Put(page)
	s.logf("scraped %s (%d chars)", rawURL, len(text))
	return page, doc, nil
}

// wait blocks on the per-host rate limiter for rawURL
func (s *Scraper) wait(ctx context.Context, rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return err
	}

	s.mu.Lock()
	limiter, exists := s.limiters[parsed.Host]
	if !exists {
		limiter = rate.NewLimiter(s.perSec, s.burst)
		s.limiters[parsed.Host] = limiter
	}
	s.mu.Unlock()

	return limiter.Wait(ctx)
}

func (s *Scraper) logf(format string, args ...interface{}) {
	if s.verbose {
		fmt.Fprintf(os.Stderr, "[scrape] "+format+"\n", args...)
	}
}

// discoverPages classifies the homepage's internal links into page
// categories. Candidates are sorted so clean, short URLs come first.
func discoverPages(base string, doc *html.Node) map[string][]string {
	baseParsed, err := url.Parse(base)
	if err != nil {
		return nil
	}

	discovered := make(map[string][]string)
	seen := map[string]bool{base: true, base + "/": true}

	for _, link := range collectLinks(doc) {
		href := link.Href
		if href == "" || strings.HasPrefix(href, "#") ||
			strings.HasPrefix(href, "javascript") || strings.HasPrefix(href, "mailto") {
			continue
		}

		ref, err := url.Parse(href)
		if err != nil {
			continue
		}
		full := baseParsed.ResolveReference(ref)
		if full.Host != baseParsed.Host {
			continue
		}
		fullStr := full.String()
		if seen[fullStr] {
			continue
		}

		urlLower := strings.ToLower(fullStr)
		for category, keywords := range pageCategories {
			matched := false
			for _, kw := range keywords {
				if strings.Contains(urlLower, kw) || strings.Contains(link.Text, kw) {
					matched = true
					break
				}
			}
			if matched {
				discovered[category] = append(discovered[category], fullStr)
				seen[fullStr] = true
				break
			}
		}
	}

	for category, urls := range discovered {
		sort.Slice(urls, func(i, j int) bool {
			qi, qj := queryLen(urls[i]), queryLen(urls[j])
			if qi != qj {
				return qi < qj
			}
			return len(urls[i]) < len(urls[j])
		})
		if len(urls) > 3 {
			urls = urls[:3]
		}
		discovered[category] = urls
	}
	return discovered
}

func queryLen(rawURL string) int {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return 0
	}
	return len(parsed.RawQuery)
}

func countLinks(m map[string][]string) int {
	n := 0
	for _, urls := range m {
		n += len(urls)
	}
	return n
}

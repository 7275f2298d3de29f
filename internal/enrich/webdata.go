package enrich

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/praxal/teasergen/internal/model"
)

// Markdown renders the enrichment bundle as the web-data report that
// accompanies every generated teaser. Scraped content is included in
// full so a reviewer can check any web citation against it.
func Markdown(company string, bundle *model.EnrichmentBundle) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Web Scraped Data: %s\n\n", company)
	fmt.Fprintf(&b, "*Generated: %s*\n\n---\n\n", time.Now().Format("2006-01-02 15:04"))

	b.WriteString("## Company Website Data\n\n")
	if len(bundle.ScrapedPages) > 0 {
		for _, pageType := range pageTypeOrder(bundle.ScrapedPages) {
			page := bundle.ScrapedPages[pageType]
			fmt.Fprintf(&b, "### %s\n", titleCase(pageType))
			fmt.Fprintf(&b, "- **URL:** [%s](%s)\n", page.URL, page.URL)
			fmt.Fprintf(&b, "- **Scraped:** %s\n\n", page.ScrapedAt)
			if page.Content != "" {
				fmt.Fprintf(&b, "> %s\n", page.Content)
			}
			b.WriteString("\n")
		}
	} else {
		b.WriteString("*No company website data scraped*\n\n")
	}

	b.WriteString("---\n\n## Market Data\n\n")
	b.WriteString("| Metric | Value |\n|--------|-------|\n")
	fmt.Fprintf(&b, "| Industry | %s |\n", orNA(bundle.IndustryName))
	fmt.Fprintf(&b, "| India Market Size | %s |\n", orNA(bundle.MarketSize))
	fmt.Fprintf(&b, "| Global Market Size | %s |\n", orNA(bundle.GlobalMarketSize))
	fmt.Fprintf(&b, "| CAGR | %s |\n\n", orNA(bundle.GrowthRate))

	marketSources := marketOnly(bundle.Sources)
	if len(marketSources) > 0 {
		b.WriteString("### Data Sources\n")
		for _, src := range marketSources {
			fmt.Fprintf(&b, "- [%s](%s) - %s\n", src.Name, src.URL, src.Metric)
		}
		b.WriteString("\n")
	}

	b.WriteString("---\n\n## Industry News\n\n")
	if len(bundle.News) > 0 {
		for _, item := range bundle.News {
			fmt.Fprintf(&b, "- **%s**\n", item.Headline)
			fmt.Fprintf(&b, "  - Source: [%s](%s)\n", item.SourceName, item.SourceURL)
			fmt.Fprintf(&b, "  - Date: %s\n", orNA(item.Date))
		}
		b.WriteString("\n")
	} else {
		b.WriteString("*No news articles found*\n\n")
	}

	b.WriteString("---\n\n## All Sources Used\n\n")
	if len(bundle.Sources) > 0 {
		for _, src := range bundle.Sources {
			fmt.Fprintf(&b, "- **%s**\n", src.Name)
			fmt.Fprintf(&b, "  - URL: [%s](%s)\n", src.URL, src.URL)
			fmt.Fprintf(&b, "  - Accessed: %s\n", orNA(src.AccessDate))
		}
	} else {
		b.WriteString("*No sources recorded*\n")
	}
	b.WriteString("\n")

	return b.String()
}

// pageTypeOrder returns scraped page types with homepage first, the rest
// alphabetical, for stable output.
func pageTypeOrder(pages map[string]model.ScrapedPage) []string {
	var types []string
	for t := range pages {
		if t != "homepage" {
			types = append(types, t)
		}
	}
	sort.Strings(types)
	if _, ok := pages["homepage"]; ok {
		types = append([]string{"homepage"}, types...)
	}
	return types
}

// marketOnly filters out the company-website entries appended by Fetch
func marketOnly(sources []model.NamedSource) []model.NamedSource {
	var out []model.NamedSource
	for _, src := range sources {
		if !strings.HasPrefix(src.Name, "Company Website") {
			out = append(out, src)
		}
	}
	return out
}

func titleCase(s string) string {
	words := strings.Fields(strings.ReplaceAll(s, "_", " "))
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

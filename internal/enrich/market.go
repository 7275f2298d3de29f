package enrich

import (
	"fmt"
	"strings"

	"github.com/praxal/teasergen/internal/classify"
	"github.com/praxal/teasergen/internal/model"
)

// marketFacts is the curated market-data pack, one entry per domain.
// Every figure carries the report it was taken from so downstream
// citations can point at a real URL.
type marketFacts struct {
	IndustryName     string
	MarketSize       string
	GlobalMarketSize string
	GrowthRate       string
	Drivers          []string
	Sources          []model.NamedSource
	News             []model.NewsItem
}

var marketTable = map[classify.Domain]marketFacts{
	classify.DomainManufacturing: {
		IndustryName:     "Electronics Manufacturing Services (EMS)",
		MarketSize:       "$15 billion (2024)",
		GlobalMarketSize: "$672 billion (2024)",
		GrowthRate:       "7-9% (2024-2030)",
		Drivers:          []string{"PLI scheme", "Make in India", "Defense localization", "EV adoption"},
		Sources: []model.NamedSource{
			{Metric: "India EMS Market", Value: "$15 billion", Name: "IBEF Electronics Manufacturing Report", URL: "https://www.ibef.org/industry/electronics-system-design-manufacturing", AccessDate: "2024-12"},
			{Metric: "Global EMS Market", Value: "$672 billion", Name: "Mordor Intelligence", URL: "https://www.mordorintelligence.com/industry-reports/electronics-manufacturing-services-market", AccessDate: "2024-12"},
		},
		News: []model.NewsItem{
			{Headline: "Electronics manufacturing sees 17% growth in FY24", SourceName: "Economic Times", SourceURL: "https://economictimes.indiatimes.com/industry/cons-products/electronics", Date: "2024-04"},
			{Headline: "PLI scheme attracts ₹1 lakh crore investment commitments", SourceName: "Business Standard", SourceURL: "https://www.business-standard.com/economy/news/pli-scheme", Date: "2024-03"},
		},
	},
	classify.DomainTechnology: {
		IndustryName:     "IT Services",
		MarketSize:       "$245 billion (2024)",
		GlobalMarketSize: "$1.2 trillion (2024)",
		GrowthRate:       "8-10% (2024-2028)",
		Drivers:          []string{"Digital transformation", "Cloud adoption", "AI/ML demand", "Remote work"},
		Sources: []model.NamedSource{
			{Metric: "India IT Industry", Value: "$245 billion", Name: "NASSCOM Industry Performance Report", URL: "https://nasscom.in/knowledge-center/publications/technology-sector-india-2024-strategic-review", AccessDate: "2024-12"},
			{Metric: "Global IT Services", Value: "$1.2 trillion", Name: "Gartner IT Spending Forecast", URL: "https://www.gartner.com/en/newsroom/press-releases/2024-01-17-gartner-forecasts-worldwide-it-spending", AccessDate: "2024-12"},
		},
		News: []model.NewsItem{
			{Headline: "Indian IT sector revenue crosses $250 billion", SourceName: "NASSCOM", SourceURL: "https://nasscom.in/knowledge-center/publications/", Date: "2024-04"},
			{Headline: "AI services demand grows 40% year-on-year", SourceName: "Mint", SourceURL: "https://www.livemint.com/technology/tech-news", Date: "2024-03"},
		},
	},
	classify.DomainLogistics: {
		IndustryName:     "Logistics & Express Delivery",
		MarketSize:       "$250 billion (2024)",
		GlobalMarketSize: "$3.2 trillion (2024)",
		GrowthRate:       "10-12% (2024-2028)",
		Drivers:          []string{"E-commerce growth", "GST", "Infrastructure investment", "Last-mile innovation"},
		Sources: []model.NamedSource{
			{Metric: "India Logistics Market", Value: "$250 billion", Name: "IBEF Logistics Report", URL: "https://www.ibef.org/industry/ecommerce-logistics", AccessDate: "2024-12"},
			{Metric: "E-commerce Logistics", Value: "₹50,000 crore by 2025", Name: "RedSeer Consulting", URL: "https://redseer.com/reports/india-ecommerce-logistics-market", AccessDate: "2024-12"},
		},
		News: []model.NewsItem{
			{Headline: "E-commerce logistics market to reach ₹50,000 crore by 2025", SourceName: "RedSeer", SourceURL: "https://redseer.com/reports/india-ecommerce-logistics-market", Date: "2024-02"},
			{Headline: "Express delivery segment grows 25% in FY24", SourceName: "Economic Times", SourceURL: "https://economictimes.indiatimes.com/industry/transportation/shipping-transport", Date: "2024-04"},
		},
	},
	classify.DomainConsumer: {
		IndustryName:     "D2C / Consumer Brands",
		MarketSize:       "$12 billion (2024)",
		GlobalMarketSize: "$250 billion (2024)",
		GrowthRate:       "25-30% (2024-2028)",
		Drivers:          []string{"Digital penetration", "Rising incomes", "Premiumization", "Health consciousness"},
		Sources: []model.NamedSource{
			{Metric: "India D2C Market", Value: "$12 billion", Name: "Bain & Company India Report", URL: "https://www.bain.com/insights/how-india-shops-online-2024/", AccessDate: "2024-12"},
		},
		News: []model.NewsItem{
			{Headline: "D2C brands capture 15% of online retail market", SourceName: "Inc42", SourceURL: "https://inc42.com/datalab/indian-d2c-startups/", Date: "2024-03"},
		},
	},
	classify.DomainHealthcare: {
		IndustryName:     "Pharmaceuticals",
		MarketSize:       "$50 billion (2024)",
		GlobalMarketSize: "$1.6 trillion (2024)",
		GrowthRate:       "9-11% (2024-2030)",
		Drivers:          []string{"Generic demand", "API manufacturing", "PLI scheme", "Biosimilars growth"},
		Sources: []model.NamedSource{
			{Metric: "India Pharma Market", Value: "$50 billion", Name: "IBEF Pharmaceutical Report", URL: "https://www.ibef.org/industry/pharmaceutical-india", AccessDate: "2024-12"},
			{Metric: "Global Pharma Market", Value: "$1.6 trillion", Name: "IQVIA Global Report", URL: "https://www.iqvia.com/insights/the-iqvia-institute/reports/global-trends-in-r-and-d-2024", AccessDate: "2024-12"},
		},
		News: []model.NewsItem{
			{Headline: "India pharma exports grow 9% to $27.3 billion", SourceName: "Pharmexcil", SourceURL: "https://pharmexcil.com/exports/", Date: "2024-04"},
		},
	},
	classify.DomainInfrastructure: {
		IndustryName:     "Infrastructure & Construction",
		MarketSize:       "$200 billion (2024)",
		GlobalMarketSize: "$15 trillion (2024)",
		GrowthRate:       "8-10% (2024-2030)",
		Drivers:          []string{"Govt spending", "NIP", "Urbanization", "Housing demand"},
		Sources: []model.NamedSource{
			{Metric: "India Infrastructure", Value: "$200 billion", Name: "IBEF Infrastructure Report", URL: "https://www.ibef.org/industry/infrastructure-sector-india", AccessDate: "2024-12"},
		},
		News: []model.NewsItem{
			{Headline: "Infra spending to double in 3 years", SourceName: "Economic Times", SourceURL: "https://economictimes.indiatimes.com/", Date: "2024-01"},
		},
	},
	classify.DomainChemicals: {
		IndustryName:     "Specialty Chemicals",
		MarketSize:       "$40 billion (2024)",
		GlobalMarketSize: "$600 billion (2024)",
		GrowthRate:       "10-12% (2024-2028)",
		Drivers:          []string{"China+1", "PLI scheme", "Sustainability", "Innovation"},
		Sources: []model.NamedSource{
			{Metric: "India Chemicals", Value: "$40 billion", Name: "IBEF Chemicals Report", URL: "https://www.ibef.org/industry/chemicals-industry-india", AccessDate: "2024-12"},
		},
		News: []model.NewsItem{
			{Headline: "Specialty chemicals export rise 12%", SourceName: "Chemical Weekly", SourceURL: "https://www.chemicalweekly.com/", Date: "2024-02"},
		},
	},
	classify.DomainAutomotive: {
		IndustryName:     "Auto Components",
		MarketSize:       "$70 billion (2024)",
		GlobalMarketSize: "$450 billion (2024)",
		GrowthRate:       "8-10% (2024-2030)",
		Drivers:          []string{"EV transition", "Export growth", "Localization", "Premiumization"},
		Sources: []model.NamedSource{
			{Metric: "India Auto Components", Value: "$70 billion", Name: "ACMA Annual Report", URL: "https://www.acma.in/uploads/annual-report-2024.pdf", AccessDate: "2024-12"},
		},
		News: []model.NewsItem{
			{Headline: "EV sales cross 1 million mark", SourceName: "Autocar Pro", SourceURL: "https://www.autocarpro.in/", Date: "2024-03"},
		},
	},
}

// marketData resolves a domain to its fact pack, tolerating partial keys.
// Unknown domains get an empty pack, never an error.
func marketData(domain classify.Domain) marketFacts {
	if facts, ok := marketTable[domain]; ok {
		return facts
	}
	lower := strings.ToLower(string(domain))
	for key, facts := range marketTable {
		if strings.Contains(lower, string(key)) || strings.Contains(string(key), lower) {
			return facts
		}
	}
	return marketFacts{IndustryName: "General Industry"}
}

// outlookSummary builds the one-sentence industry outlook from the fact pack
func outlookSummary(facts marketFacts) string {
	if facts.GrowthRate == "" {
		return ""
	}
	drivers := facts.Drivers
	if len(drivers) > 3 {
		drivers = drivers[:3]
	}
	return fmt.Sprintf("%s is expected to grow at %s CAGR, driven by %s.",
		facts.IndustryName, facts.GrowthRate, strings.Join(drivers, ", "))
}

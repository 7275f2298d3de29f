package compose

import (
	"context"
	"strings"
	"testing"

	"github.com/praxal/teasergen/internal/model"
)

func testRecord() *model.CompanyRecord {
	return &model.CompanyRecord{
		Name:                "Acme Precision Engineering Pvt Ltd",
		BusinessDescription: "Acme Precision Engineering is a Bangalore based manufacturer of precision machined components for aerospace and defense customers including DRDO.",
		Website:             "https://acme.example",
		Founded:             "1995",
		Employees:           "450+ employees",
		ProductsServices: []string{
			"CNC machined components", "Precision sheet metal parts", "Cable harnesses",
			"Electro-mechanical assemblies", "Test jigs", "Castings", "Forgings",
			"Injection molded parts", "A ninth product that exceeds the cap",
		},
		IndustriesServed:      "Aerospace, Defense, Railways, Medical Devices",
		Certifications:        []string{"AS9100D", "ISO 9001:2015", "ISO 14001"},
		OperationalIndicators: []string{"30+ CNC machines", "98% on-time delivery"},
		Shareholders: []model.Shareholder{
			{Name: "Promoter Group", Pct: 62.5},
			{Name: "Angel Investors", Pct: 20},
			{Name: "ESOP Pool", Pct: 17.5},
		},
		Milestones: []model.Milestone{
			{Date: "2021", Text: "Commissioned second plant in Pune"},
			{Date: "2023", Text: "Won first export order from Germany"},
		},
		SWOT: model.SWOT{
			Strengths:     []string{"Long-standing aerospace customer relationships", "In-house tooling"},
			Opportunities: []string{"Defense indigenization push"},
		},
		Financials: model.FinancialSeries{
			Revenue: map[int]float64{2020: 100, 2021: 130, 2022: 155, 2023: 180, 2024: 210},
			EBITDA:  map[int]float64{2022: 28, 2023: 34, 2024: 40},
			RoCE:    map[int]float64{2023: 18.5, 2024: 21.2},
		},
	}
}

func testBundle() *model.EnrichmentBundle {
	return &model.EnrichmentBundle{
		Domain:         "manufacturing",
		IndustryName:   "Electronics Manufacturing Services (EMS)",
		MarketSize:     "$15 billion (2024)",
		GrowthRate:     "7-9% (2024-2030)",
		Drivers:        []string{"PLI scheme", "Make in India"},
		OutlookSummary: "Electronics Manufacturing Services (EMS) is expected to grow at 7-9% (2024-2030) CAGR, driven by PLI scheme, Make in India.",
	}
}

func TestComposeThreeSlides(t *testing.T) {
	c := NewComposer(nil, nil)
	deck, claims := c.Compose(context.Background(), testRecord(), testBundle())

	if len(deck.Slides) != 3 {
		t.Fatalf("slides = %d, want 3", len(deck.Slides))
	}
	if deck.Slides[0].Title != "Business Profile & Capabilities" {
		t.Errorf("slide 1 title = %q", deck.Slides[0].Title)
	}
	if deck.Slides[1].Title != "Financial & Operational Performance" {
		t.Errorf("slide 2 title = %q", deck.Slides[1].Title)
	}
	if deck.Slides[2].Title != "Investment Highlights" {
		t.Errorf("slide 3 title = %q", deck.Slides[2].Title)
	}
	if len(claims) == 0 {
		t.Fatal("no claims emitted")
	}
	for _, claim := range claims {
		if strings.Contains(claim.Text, "...") {
			t.Errorf("claim contains ellipsis: %q", claim.Text)
		}
	}
}

func TestComposeNeverShortensProducts(t *testing.T) {
	c := NewComposer(nil, nil)
	record := testRecord()
	deck, _ := c.Compose(context.Background(), record, testBundle())

	products := deck.Slides[0].SectionItems("Products & Services")
	if len(products) != maxProducts {
		t.Fatalf("products = %d, want cap %d", len(products), maxProducts)
	}
	// Full text preserved, no shortening of any kind.
	if products[0] != "CNC machined components" {
		t.Errorf("product altered: %q", products[0])
	}
	certs := deck.Slides[0].SectionItems("Certifications")
	if len(certs) != 3 || certs[0] != "AS9100D" {
		t.Errorf("certs = %v", certs)
	}
}

func TestComposeAnonymizes(t *testing.T) {
	c := NewComposer(nil, nil)
	deck, _ := c.Compose(context.Background(), testRecord(), testBundle())

	overview := deck.Slides[0].SectionItems("Company Overview")[0]
	if strings.Contains(overview, "Acme") {
		t.Errorf("company name leaked: %q", overview)
	}
	if strings.Contains(overview, "Bangalore") {
		t.Errorf("location leaked: %q", overview)
	}
	if strings.Contains(overview, "DRDO") {
		t.Errorf("customer identity leaked: %q", overview)
	}
	if !strings.Contains(overview, "The Company") {
		t.Errorf("expected The Company in %q", overview)
	}
}

func TestComposeOverviewWordBoundary(t *testing.T) {
	c := NewComposer(nil, nil)
	deck, claims := c.Compose(context.Background(), testRecord(), testBundle())

	overview := deck.Slides[0].SectionItems("Company Overview")[0]
	if len(overview) > overviewMax {
		t.Errorf("overview length %d exceeds %d", len(overview), overviewMax)
	}
	if strings.HasSuffix(overview, "...") {
		t.Error("overview truncated with ellipsis")
	}

	// The claim must keep the full original for verification.
	for _, claim := range claims {
		if claim.Origin == "onepager:business_description" && claim.Section == "Company Overview" {
			if claim.Original == "" {
				t.Error("shortened overview claim lost its original text")
			}
		}
	}
}

func TestComposeFinancialKPIs(t *testing.T) {
	c := NewComposer(nil, nil)
	deck, _ := c.Compose(context.Background(), testRecord(), testBundle())

	kpis := deck.Slides[1].SectionItems("Financial KPIs")
	want := []string{"Revenue CAGR: 20.4%", "EBITDA Margin: 19.0%", "RoCE: 21.2%"}
	for i, w := range want {
		if i >= len(kpis) || kpis[i] != w {
			t.Errorf("kpis = %v, want prefix %v", kpis, want)
			break
		}
	}

	revenue := deck.Slides[1].SectionItems("Revenue Trend")
	if len(revenue) != 5 {
		t.Fatalf("revenue items = %d, want 5", len(revenue))
	}
	if revenue[4] != "FY24: ₹210.0 Cr" {
		t.Errorf("latest revenue = %q", revenue[4])
	}

	holders := deck.Slides[1].SectionItems("Key Shareholders")
	if len(holders) != 3 || holders[0] != "Promoter Group: 62.5%" {
		t.Errorf("shareholders = %v", holders)
	}
}

func TestComposeMarketPosition(t *testing.T) {
	c := NewComposer(nil, nil)
	deck, _ := c.Compose(context.Background(), testRecord(), testBundle())

	market := deck.Slides[1].SectionItems("Market Position")
	if len(market) != 2 {
		t.Fatalf("market items = %v", market)
	}
	if market[0] != "Industry Size: $15 billion (2024)" {
		t.Errorf("market[0] = %q", market[0])
	}
	if market[1] != "Industry Growth: 7-9% (2024-2030)" {
		t.Errorf("market[1] = %q", market[1])
	}
}

func TestComposeFallbackHooks(t *testing.T) {
	c := NewComposer(nil, nil)
	deck, _ := c.Compose(context.Background(), testRecord(), testBundle())

	hooks := deck.Slides[2].Hooks
	if len(hooks) < 2 {
		t.Fatalf("hooks = %v", hooks)
	}
	if hooks[0] != "20.4% revenue CAGR over 4 years to ₹210 Cr" {
		t.Errorf("cagr hook = %q", hooks[0])
	}
	if !strings.Contains(hooks[1], "Operating in $15 billion (2024) market") {
		t.Errorf("market hook = %q", hooks[1])
	}
}

func TestComposeMarketOpportunity(t *testing.T) {
	c := NewComposer(nil, nil)
	deck, claims := c.Compose(context.Background(), testRecord(), testBundle())

	items := deck.Slides[2].SectionItems("Market Opportunity")
	if len(items) == 0 {
		t.Fatal("no market opportunity section")
	}
	want := "Positioned for growth in a $15 billion (2024) market expanding at 7-9% (2024-2030) annually"
	if items[0] != want {
		t.Errorf("market opportunity = %q", items[0])
	}

	// The outlook sentence backs the claim even though the slide text
	// is the positioning statement.
	for _, cl := range claims {
		if cl.Text == want && cl.Original != testBundle().OutlookSummary {
			t.Errorf("claim original = %q", cl.Original)
		}
	}
}

func TestComposeGenericHookWhenNoData(t *testing.T) {
	c := NewComposer(nil, nil)
	record := &model.CompanyRecord{Name: "Bare Co", BusinessDescription: "A company."}
	deck, _ := c.Compose(context.Background(), record, &model.EnrichmentBundle{})

	hooks := deck.Slides[2].Hooks
	if len(hooks) != 1 || hooks[0] != "Strong operational track record" {
		t.Errorf("hooks = %v", hooks)
	}
}

func TestWordTruncate(t *testing.T) {
	got := wordTruncate("one two three four five", 13)
	if got != "one two three" {
		t.Errorf("wordTruncate = %q", got)
	}
	if got := wordTruncate("short", 100); got != "short" {
		t.Errorf("short input altered: %q", got)
	}
}

func TestAnonymizerFirstWord(t *testing.T) {
	a := newAnonymizer("Acme Precision Engineering Pvt Ltd")
	got := a.apply("Acme serves customers across Mumbai and Chennai.")
	if strings.Contains(got, "Acme") {
		t.Errorf("first word not anonymized: %q", got)
	}
	if !strings.Contains(got, "West India") || !strings.Contains(got, "South India") {
		t.Errorf("locations not mapped: %q", got)
	}
}

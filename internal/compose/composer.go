package compose

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/praxal/teasergen/internal/finmath"
	"github.com/praxal/teasergen/internal/llm"
	"github.com/praxal/teasergen/internal/model"
)

// Per-item length budgets. These bound layout, not meaning: anything cut
// here keeps its full original text on the claim for verification.
const (
	overviewMax  = 200
	highlightMax = 70
	strengthMax  = 120
	milestoneMax = 70
	hookMax      = 150
)

// Sections whose items are critical facts and are never shortened, only
// capped in count: products, industries, certifications, shareholders.
const (
	maxProducts     = 8
	maxIndustries   = 6
	maxCerts        = 5
	maxShareholders = 5
	maxHooks        = 4
)

// Composer turns an extracted record plus enrichment into draft slides.
// Every slide item is also emitted as a DraftClaim carrying its
// pre-shortened original, so the verifier judges what the slide will
// actually say.
type Composer struct {
	client llm.Client
	usage  *llm.Usage
	anon   *anonymizer
}

// NewComposer creates a composer. client may be nil (rule-based only).
func NewComposer(client llm.Client, usage *llm.Usage) *Composer {
	if usage == nil {
		usage = llm.NewUsage()
	}
	return &Composer{client: client, usage: usage}
}

// Compose builds the three-slide draft deck and its claim list
func (c *Composer) Compose(ctx context.Context, record *model.CompanyRecord, bundle *model.EnrichmentBundle) (*model.Deck, []model.DraftClaim) {
	c.anon = newAnonymizer(record.Name)

	var claims []model.DraftClaim

	deck := &model.Deck{
		Company: record.Name,
		Slides: []model.SlideContent{
			c.businessProfile(ctx, record, &claims),
			c.financialPerformance(record, bundle, &claims),
			c.investmentHighlights(ctx, record, bundle, &claims),
		},
	}
	if bundle != nil {
		deck.Domain = bundle.Domain
	}
	return deck, claims
}

func addClaim(claims *[]model.DraftClaim, slide int, section, text, original, origin string) {
	if original == text {
		original = ""
	}
	*claims = append(*claims, model.DraftClaim{
		SlideIndex: slide,
		Section:    section,
		Text:       text,
		Original:   original,
		Origin:     origin,
	})
}

// businessProfile builds slide 1: overview, products, industries,
// highlights, certifications. Products and certifications go on the
// slide verbatim.
func (c *Composer) businessProfile(ctx context.Context, record *model.CompanyRecord, claims *[]model.DraftClaim) model.SlideContent {
	slide := model.SlideContent{
		Index:   1,
		Title:   "Business Profile & Capabilities",
		Metrics: map[string]string{},
	}

	if desc := record.BusinessDescription; desc != "" {
		overview := c.shorten(ctx, c.anon.apply(desc), overviewMax, "overview")
		slide.Sections = append(slide.Sections, model.Section{
			Name:  "Company Overview",
			Items: []string{overview},
		})
		addClaim(claims, 1, "Company Overview", overview, desc, "onepager:business_description")
	}

	if len(record.ProductsServices) > 0 {
		products := record.ProductsServices
		if len(products) > maxProducts {
			products = products[:maxProducts]
		}
		var items []string
		for _, p := range products {
			text := c.anon.apply(p)
			items = append(items, text)
			addClaim(claims, 1, "Products & Services", text, p, "onepager:products_services")
		}
		slide.Sections = append(slide.Sections, model.Section{Name: "Products & Services", Items: items})
	}

	if record.IndustriesServed != "" {
		var industries []string
		for _, ind := range strings.Split(record.IndustriesServed, ",") {
			if ind = strings.TrimSpace(ind); ind != "" {
				industries = append(industries, ind)
			}
		}
		if len(industries) > maxIndustries {
			industries = industries[:maxIndustries]
		}
		if len(industries) > 0 {
			slide.Sections = append(slide.Sections, model.Section{Name: "Industries Served", Items: industries})
			addClaim(claims, 1, "Industries Served", strings.Join(industries, ", "), record.IndustriesServed, "onepager:industries_served")
		}
	}

	if len(record.OperationalIndicators) > 0 {
		ops := record.OperationalIndicators
		if len(ops) > 4 {
			ops = ops[:4]
		}
		var items []string
		for _, o := range ops {
			text := c.shorten(ctx, c.anon.apply(o), highlightMax, "highlight")
			items = append(items, text)
			addClaim(claims, 1, "Key Highlights", text, o, "onepager:key_operational_indicators")
		}
		slide.Sections = append(slide.Sections, model.Section{Name: "Key Highlights", Items: items})
	}

	if len(record.Certifications) > 0 {
		certs := record.Certifications
		if len(certs) > maxCerts {
			certs = certs[:maxCerts]
		}
		slide.Sections = append(slide.Sections, model.Section{Name: "Certifications", Items: certs})
		for _, cert := range certs {
			addClaim(claims, 1, "Certifications", cert, "", "onepager:certifications")
		}
	}

	if record.Founded != "" {
		founded := record.Founded
		if len(founded) > 10 {
			founded = founded[:10]
		}
		slide.Metrics["Founded"] = founded
	}
	if record.Employees != "" {
		if m := employeeCount.FindString(record.Employees); m != "" {
			slide.Metrics["Employees"] = m
		}
	}

	return slide
}

var employeeCount = regexp.MustCompile(`\d[\d,]*`)

// financialPerformance builds slide 2: revenue and EBITDA trends, derived
// KPIs, shareholders, market position.
func (c *Composer) financialPerformance(record *model.CompanyRecord, bundle *model.EnrichmentBundle, claims *[]model.DraftClaim) model.SlideContent {
	fin := record.Financials
	slide := model.SlideContent{
		Index:   2,
		Title:   "Financial & Operational Performance",
		Metrics: map[string]string{},
	}

	if items := trendItems(fin.Revenue, 2, "Revenue Trend", "onepager:financials:revenue", claims); len(items) > 0 {
		slide.Sections = append(slide.Sections, model.Section{Name: "Revenue Trend", Items: items})
		slide.Metrics["Latest Revenue"] = items[len(items)-1]
	}
	if items := trendItems(fin.EBITDA, 2, "EBITDA", "onepager:financials:ebitda", claims); len(items) > 0 {
		slide.Sections = append(slide.Sections, model.Section{Name: "EBITDA", Items: items})
	}

	var kpis []string
	if cagr, ok := finmath.SeriesCAGR(fin.Revenue); ok {
		text := fmt.Sprintf("Revenue CAGR: %s", finmath.Pct(cagr.Value))
		kpis = append(kpis, text)
		addClaim(claims, 2, "Financial KPIs", text, "", "computed:revenue_cagr")
	}
	if margin, ok := finmath.SeriesMargin(fin.EBITDA, fin.Revenue); ok {
		text := fmt.Sprintf("EBITDA Margin: %s", finmath.Pct(margin.Value))
		kpis = append(kpis, text)
		addClaim(claims, 2, "Financial KPIs", text, "", "computed:ebitda_margin")
	}
	if years := model.Years(fin.RoCE); len(years) > 0 {
		text := fmt.Sprintf("RoCE: %s", finmath.Pct(fin.RoCE[years[len(years)-1]]))
		kpis = append(kpis, text)
		addClaim(claims, 2, "Financial KPIs", text, "", "onepager:financials:roce")
	}
	if years := model.Years(fin.ROE); len(years) > 0 {
		text := fmt.Sprintf("ROE: %s", finmath.Pct(fin.ROE[years[len(years)-1]]))
		kpis = append(kpis, text)
		addClaim(claims, 2, "Financial KPIs", text, "", "onepager:financials:roe")
	}
	if len(kpis) > 0 {
		slide.Sections = append(slide.Sections, model.Section{Name: "Financial KPIs", Items: kpis})
	}

	if len(record.Shareholders) > 0 {
		holders := record.Shareholders
		if len(holders) > maxShareholders {
			holders = holders[:maxShareholders]
		}
		var items []string
		for _, sh := range holders {
			if sh.Name == "" || sh.Pct == 0 {
				continue
			}
			text := fmt.Sprintf("%s: %.1f%%", sh.Name, sh.Pct)
			items = append(items, text)
			addClaim(claims, 2, "Key Shareholders", text, "", "onepager:shareholders")
		}
		if len(items) > 0 {
			slide.Sections = append(slide.Sections, model.Section{Name: "Key Shareholders", Items: items})
		}
	}

	if bundle.HasMarketData() {
		var items []string
		if bundle.MarketSize != "" {
			text := "Industry Size: " + bundle.MarketSize
			items = append(items, text)
			addClaim(claims, 2, "Market Position", text, "", "web:market_data")
		}
		if bundle.GrowthRate != "" {
			text := "Industry Growth: " + bundle.GrowthRate
			items = append(items, text)
			addClaim(claims, 2, "Market Position", text, "", "web:market_data")
		}
		if len(items) > 0 {
			slide.Sections = append(slide.Sections, model.Section{Name: "Market Position", Items: items})
		}
	}

	return slide
}

// trendItems renders the last five years of a series as FY bullets
func trendItems(series map[int]float64, slide int, section, origin string, claims *[]model.DraftClaim) []string {
	years := model.LatestYears(series, 5)
	var items []string
	for _, yr := range years {
		text := fmt.Sprintf("FY%02d: ₹%.1f Cr", yr%100, series[yr])
		items = append(items, text)
		addClaim(claims, slide, section, text, "", origin)
	}
	return items
}

// investmentHighlights builds slide 3: hooks, SWOT-derived strengths and
// opportunities, milestones, market opportunity. Sparse sections are
// backfilled by the LLM when one is available; backfilled items are
// claims like any other and must survive verification to stay on.
func (c *Composer) investmentHighlights(ctx context.Context, record *model.CompanyRecord, bundle *model.EnrichmentBundle, claims *[]model.DraftClaim) model.SlideContent {
	slide := model.SlideContent{
		Index: 3,
		Title: "Investment Highlights",
	}

	slide.Hooks = c.generateHooks(ctx, record, bundle, claims)

	if len(record.SWOT.Strengths) > 0 {
		items := c.swotItems(ctx, record.SWOT.Strengths, 3, "Key Strengths", "onepager:swot:strengths", claims)
		slide.Sections = append(slide.Sections, model.Section{Name: "Key Strengths", Items: items})
	}
	if len(record.SWOT.Opportunities) > 0 {
		items := c.swotItems(ctx, record.SWOT.Opportunities, 3, "Growth Opportunities", "onepager:swot:opportunities", claims)
		slide.Sections = append(slide.Sections, model.Section{Name: "Growth Opportunities", Items: items})
	}

	if len(record.Milestones) > 0 {
		milestones := record.Milestones
		if len(milestones) > 5 {
			milestones = milestones[:5]
		}
		var items []string
		for _, m := range milestones {
			if m.Date == "" || m.Text == "" {
				continue
			}
			text := c.shorten(ctx, fmt.Sprintf("%s: %s", m.Date, c.anon.apply(m.Text)), milestoneMax, "milestone")
			items = append(items, text)
			addClaim(claims, 3, "Recent Milestones", text, fmt.Sprintf("%s: %s", m.Date, m.Text), "onepager:key_milestones")
		}
		if len(items) > 0 {
			slide.Sections = append(slide.Sections, model.Section{Name: "Recent Milestones", Items: items})
		}
	}

	// Phrased as a positioning statement so verification checks it
	// against the market bundle rather than recomputing a growth rate
	// the company's own series cannot support.
	if bundle != nil && bundle.MarketSize != "" && bundle.GrowthRate != "" {
		text := wordTruncate(fmt.Sprintf("Positioned for growth in a %s market expanding at %s annually",
			bundle.MarketSize, bundle.GrowthRate), strengthMax)
		slide.Sections = append(slide.Sections, model.Section{Name: "Market Opportunity", Items: []string{text}})
		addClaim(claims, 3, "Market Opportunity", text, bundle.OutlookSummary, "web:industry_outlook")
	}

	c.backfillSparse(ctx, &slide, record, claims)

	return slide
}

func (c *Composer) swotItems(ctx context.Context, source []string, slideIdx int, section, origin string, claims *[]model.DraftClaim) []string {
	entries := source
	if len(entries) > 5 {
		entries = entries[:5]
	}
	var items []string
	for _, s := range entries {
		text := wordTruncate(c.anon.apply(s), strengthMax)
		items = append(items, text)
		addClaim(claims, slideIdx, section, text, s, origin)
	}
	return items
}

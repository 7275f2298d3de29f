package compose

import (
	"context"
	"fmt"
	"strings"

	"github.com/praxal/teasergen/internal/finmath"
	"github.com/praxal/teasergen/internal/llm"
	"github.com/praxal/teasergen/internal/model"
)

// generateHooks produces the investor hooks for slide 3. LLM-written
// hooks are grounded in the record and bundle via the prompt context;
// if the LLM is unavailable or returns garbage, deterministic hooks
// derived from the financials take over. At least one hook is always
// returned.
func (c *Composer) generateHooks(ctx context.Context, record *model.CompanyRecord, bundle *model.EnrichmentBundle, claims *[]model.DraftClaim) []string {
	companyContext := hookContext(record, bundle)

	if c.client != nil {
		if hooks := c.llmHooks(ctx, companyContext); len(hooks) > 0 {
			for _, h := range hooks {
				addClaim(claims, 3, "Investment Hook", h, "", "llm:insight")
			}
			return hooks
		}
	}

	var hooks []string
	if cagr, ok := finmath.SeriesCAGR(record.Financials.Revenue); ok && cagr.Value > 0 {
		// One decimal, matching the precision verification compares at.
		text := fmt.Sprintf("%s revenue CAGR over %d years to ₹%.0f Cr",
			finmath.Pct(cagr.Value), cagr.Span, cagr.EndValue)
		hooks = append(hooks, text)
		addClaim(claims, 3, "Investment Hook", text, "", "computed:revenue_cagr")
	}
	if bundle.HasMarketData() && bundle.MarketSize != "" {
		text := "Operating in " + bundle.MarketSize + " market"
		if bundle.GrowthRate != "" {
			text += " growing at " + bundle.GrowthRate
		}
		hooks = append(hooks, text)
		addClaim(claims, 3, "Investment Hook", text, "", "web:market_data")
	}
	if len(hooks) == 0 {
		text := "Strong operational track record"
		hooks = append(hooks, text)
		addClaim(claims, 3, "Investment Hook", text, record.BusinessDescription, "onepager:business_description")
	}
	if len(hooks) > maxHooks {
		hooks = hooks[:maxHooks]
	}
	return hooks
}

// hookContext summarizes the company for the hook prompt
func hookContext(record *model.CompanyRecord, bundle *model.EnrichmentBundle) string {
	parts := []string{"Company: " + record.Name}

	if len(record.ProductsServices) > 0 {
		products := record.ProductsServices
		if len(products) > 5 {
			products = products[:5]
		}
		parts = append(parts, "Products: "+strings.Join(products, ", "))
	}
	if record.IndustriesServed != "" {
		parts = append(parts, "Industries: "+record.IndustriesServed)
	}
	if bundle.HasMarketData() {
		if bundle.MarketSize != "" {
			parts = append(parts, "Market Size: "+bundle.MarketSize)
		}
		if bundle.GrowthRate != "" {
			parts = append(parts, "Market Growth: "+bundle.GrowthRate)
		}
	}
	if cagr, ok := finmath.SeriesCAGR(record.Financials.Revenue); ok {
		parts = append(parts, fmt.Sprintf("Revenue CAGR: %.1f%%", cagr.Value))
		parts = append(parts, fmt.Sprintf("Latest Revenue: ₹%.1f Cr", cagr.EndValue))
	}
	return strings.Join(parts, "\n")
}

func (c *Composer) llmHooks(ctx context.Context, companyContext string) []string {
	prompt := fmt.Sprintf(`You are an M&A analyst preparing an investment teaser for institutional investors.

Given this company data:
%s

Generate 3-4 SPECIFIC, QUANTIFIED investment highlights that would appeal to PE/VC investors.

Rules:
- Each highlight must be specific with numbers/facts
- Focus on moats, market opportunity, scalability, defensibility
- NO generic statements like "Positioned for growth"

Return ONLY a JSON array of 3-4 strings. No explanation.`, companyContext)

	var insights []string
	req := llm.GenerateRequest{Prompt: prompt, Temperature: 0.3, MaxTokens: 300}
	if err := llm.GenerateJSON(ctx, c.client, "hook_generation", req, c.usage, &insights); err != nil {
		return nil
	}

	var hooks []string
	for _, insight := range insights {
		insight = strings.TrimSpace(insight)
		if insight == "" {
			continue
		}
		hooks = append(hooks, wordTruncate(insight, hookMax))
		if len(hooks) == maxHooks {
			break
		}
	}
	return hooks
}

// backfillSparse asks the LLM for extra bullets when a highlight section
// has fewer than three items. Backfilled bullets are claims like any
// other: they must survive verification or they are filtered out.
func (c *Composer) backfillSparse(ctx context.Context, slide *model.SlideContent, record *model.CompanyRecord, claims *[]model.DraftClaim) {
	if c.client == nil {
		return
	}

	const minItems = 3
	for _, name := range []string{"Key Strengths", "Growth Opportunities", "Market Opportunity"} {
		existing := slide.SectionItems(name)
		if len(existing) >= minItems {
			continue
		}

		products := record.ProductsServices
		if len(products) > 3 {
			products = products[:3]
		}
		prompt := fmt.Sprintf(`For an M&A investment teaser, generate 3 bullet points for "%s".
Company context:
Company: %s
Products: %s
Industries: %s

Rules:
- Each bullet max 80 characters
- Be specific and quantified where possible
- Professional investment language

Return ONLY a JSON array of 3 strings.`, name, record.Name, strings.Join(products, ", "), record.IndustriesServed)

		var points []string
		req := llm.GenerateRequest{Prompt: prompt, Temperature: 0.3, MaxTokens: 200}
		if err := llm.GenerateJSON(ctx, c.client, "section_backfill", req, c.usage, &points); err != nil {
			continue
		}

		items := append([]string(nil), existing...)
		for _, p := range points {
			if p = strings.TrimSpace(p); p == "" {
				continue
			}
			if len(items) >= 5 {
				break
			}
			text := wordTruncate(c.anon.apply(p), 80)
			items = append(items, text)
			addClaim(claims, 3, name, text, p, "llm:backfill")
		}
		setSection(slide, name, items)
	}
}

// setSection replaces the named section's items, appending the section
// if it does not exist yet.
func setSection(slide *model.SlideContent, name string, items []string) {
	if len(items) == 0 {
		return
	}
	for i, sec := range slide.Sections {
		if sec.Name == name {
			slide.Sections[i].Items = items
			return
		}
	}
	slide.Sections = append(slide.Sections, model.Section{Name: name, Items: items})
}

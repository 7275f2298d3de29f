package pipeline

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/praxal/teasergen/internal/cache"
	"github.com/praxal/teasergen/internal/classify"
	"github.com/praxal/teasergen/internal/compose"
	"github.com/praxal/teasergen/internal/enrich"
	"github.com/praxal/teasergen/internal/extract"
	"github.com/praxal/teasergen/internal/llm"
	"github.com/praxal/teasergen/internal/model"
	"github.com/praxal/teasergen/internal/verify"
)

// Pipeline runs the full teaser generation for one company, strictly in
// stage order: extract, validate, classify, enrich, compose, verify,
// filter, write. Stages share nothing but the Result being built and
// the per-run token usage counter, so a Pipeline is single-use per call
// but reusable across companies.
type Pipeline struct {
	config   *model.Config
	client   llm.Client // nil when no provider is configured
	enricher *enrich.Enricher
}

// New builds a pipeline from config. A misconfigured LLM provider is an
// error; an absent one just disables the LLM paths.
func New(cfg *model.Config) (*Pipeline, error) {
	var client llm.Client
	if cfg.LLM.Provider != "" {
		c, err := llm.NewClient(llm.ConfigFromModel(cfg.LLM, cfg.HTTP))
		if err != nil {
			return nil, fmt.Errorf("init LLM provider: %w", err)
		}
		client = c
	}

	store := cache.NewPageStore(cache.New(cfg.Cache), cfg.Cache.TTL)

	return &Pipeline{
		config:   cfg,
		client:   client,
		enricher: enrich.NewEnricher(cfg, store),
	}, nil
}

// Result is everything one run produced
type Result struct {
	Company     string
	Record      *model.CompanyRecord
	Domain      classify.Result
	Bundle      *model.EnrichmentBundle
	Deck        *model.Deck // filtered
	Report      model.VerificationReport
	Usage       *llm.Usage
	Warnings    []string
	OutputFiles []string
}

// Run generates a verified teaser from the one-pager at path. The
// company name is used for output naming and anonymization; output
// files land in the configured output directory.
func (p *Pipeline) Run(ctx context.Context, company, path string) (*Result, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read one-pager: %w", err)
	}

	extractor := extract.NewExtractor()
	record := extractor.Extract(string(content))
	if record.Name == "" {
		record.Name = company
	}

	ok, issues := extractor.Validate()
	if !ok {
		return nil, fmt.Errorf("one-pager incomplete: %s", strings.Join(issues, "; "))
	}
	var warnings []string
	for _, issue := range issues {
		if strings.HasPrefix(issue, "Warning") {
			warnings = append(warnings, issue)
		}
	}

	usage := llm.NewUsage()

	classifier := classify.NewClassifier(p.client, usage)
	domain := classifier.Classify(ctx, record.BusinessDescription,
		strings.Join(record.ProductsServices, ", "), record.DomainHint)
	p.logf("domain: %s (%.2f, %s)", domain.Domain, domain.Confidence, domain.Reasoning)

	bundle := p.enricher.Fetch(ctx, domain.Domain, record.Website)
	p.logf("enrichment: %d sources, %d pages", len(bundle.Sources), len(bundle.ScrapedPages))

	composer := compose.NewComposer(p.client, usage)
	draft, claims := composer.Compose(ctx, record, bundle)
	p.logf("composed %d slides, %d claims", len(draft.Slides), len(claims))

	verifier := verify.NewVerifier(string(content), record, bundle)
	citations := verifier.VerifyAll(claims)
	report := model.BuildReport(company, citations)
	p.logf("verified %d/%d claims (%.1f%%)", report.VerifiedCount, report.TotalClaims, report.VerificationRate)

	deck := verify.Filter(draft, citations)
	deck.Company = company
	deck.Domain = string(domain.Domain)

	result := &Result{
		Company:  company,
		Record:   record,
		Domain:   domain,
		Bundle:   bundle,
		Deck:     deck,
		Report:   report,
		Usage:    usage,
		Warnings: warnings,
	}

	files, err := writeOutputs(p.config.Output.Dir, result)
	if err != nil {
		return nil, fmt.Errorf("write outputs: %w", err)
	}
	result.OutputFiles = files

	return result, nil
}

func (p *Pipeline) logf(format string, args ...interface{}) {
	if p.config.Output.Verbose {
		fmt.Fprintf(os.Stderr, "[pipeline] "+format+"\n", args...)
	}
}

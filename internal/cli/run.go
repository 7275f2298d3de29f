package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/praxal/teasergen/internal/model"
	"github.com/praxal/teasergen/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	outputDir    string
	runTimeout   time.Duration
	userAgent    string
	maxBytes     int64
	noCache      bool
	cacheDir     string
	skipScraping bool
	httpProxy    string
	httpsProxy   string
	llmEnabled   bool
	llmProvider  string
	llmModel     string
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <company> <one-pager.md>",
	Short: "Generate a verified teaser for one company",
	Long: `Run processes a single company one-pager to:
- Extract the business profile, financial series, and shareholding
- Classify the industry domain
- Enrich with market data and the company website
- Compose an anonymized three-slide teaser
- Verify every statement and exclude what cannot be supported

Example:
  teasergen run "Acme Precision" ./Acme-OnePager.md
  teasergen run "Acme Precision" ./Acme-OnePager.md --output ./out --skip-scraping
  teasergen run "Acme Precision" ./Acme-OnePager.md --llm --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(2),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Output flags
	runCmd.Flags().StringVar(&outputDir, "output", "./teasergen-output", "output directory for teaser files")

	// HTTP flags
	runCmd.Flags().DurationVar(&runTimeout, "timeout", 5*time.Minute, "overall run timeout (increase for slow company websites)")
	runCmd.Flags().StringVar(&userAgent, "ua", "Teasergen/0.1 (+https://github.com/praxal/teasergen)", "HTTP User-Agent")
	runCmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max response bytes to read per page")
	runCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable page cache (force fresh fetch)")
	runCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "persist the page cache to this directory")
	runCmd.Flags().BoolVar(&skipScraping, "skip-scraping", false, "skip company website scraping (market data only)")
	runCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	runCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")

	// LLM flags
	runCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM rewriting of long sections and hooks")
	runCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	runCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runRun(cmd *cobra.Command, args []string) error {
	company, path := args[0], args[1]
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "Company:  %s\n", company)
		fmt.Fprintf(os.Stderr, "One-pager: %s\n", path)
		fmt.Fprintf(os.Stderr, "Scraping: %v\n", !skipScraping)
		fmt.Fprintln(os.Stderr)
	}

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return fmt.Errorf("initialize pipeline: %w", err)
	}

	result, err := p.Run(ctx, company, path)
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	printRunSummary(result)
	return nil
}

// buildConfig assembles the pipeline configuration from flags
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	cfg.HTTP.Timeout = 15 * time.Second
	cfg.HTTP.UserAgent = userAgent
	cfg.HTTP.MaxBodyBytes = maxBytes
	cfg.HTTP.HTTPProxy = httpProxy
	cfg.HTTP.HTTPSProxy = httpsProxy
	cfg.Cache.Enabled = !noCache
	cfg.Cache.Dir = cacheDir
	cfg.Scrape.Enabled = !skipScraping
	cfg.Output.Dir = outputDir
	cfg.Output.Verbose = verbose

	// Configure LLM if enabled
	if llmEnabled {
		cfg.LLM.Provider = llmProvider
		cfg.LLM.Model = llmModel

		// Get API key from environment
		switch llmProvider {
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.LLM.APIKey == "" {
				return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		case "anthropic", "claude":
			cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
			if cfg.LLM.APIKey == "" {
				return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
			}
		case "ollama":
			// Ollama doesn't need an API key
			baseURL := os.Getenv("OLLAMA_BASE_URL")
			if baseURL != "" {
				cfg.LLM.BaseURL = baseURL
			}
		}
	}

	return cfg, nil
}

func printRunSummary(result *pipeline.Result) {
	fmt.Fprintf(os.Stderr, "✓ Domain: %s (confidence %.2f)\n", result.Domain.Domain, result.Domain.Confidence)
	fmt.Fprintf(os.Stderr, "✓ Verified %d/%d claims (%.1f%%)\n",
		result.Report.VerifiedCount, result.Report.TotalClaims, result.Report.VerificationRate)
	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "! %s\n", w)
	}
	for _, f := range result.OutputFiles {
		fmt.Fprintf(os.Stderr, "✓ Wrote %s\n", f)
	}
}

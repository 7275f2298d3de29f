package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/praxal/teasergen/internal/pipeline"
	"github.com/spf13/cobra"
)

var batchTimeout time.Duration

// onePagerSuffix is the filename convention batch mode discovers
const onePagerSuffix = "-OnePager.md"

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Generate teasers for every one-pager in a directory",
	Long: `Batch processes a directory of company one-pagers:
- Discover files named <Company>-OnePager.md
- Run the full pipeline for each company in turn
- Continue past companies that fail, reporting them at the end

One-pagers are processed sequentially: the enrichment step is polite to
company websites, and a single run is dominated by network wait anyway.

Example:
  teasergen batch ./one-pagers
  teasergen batch ./one-pagers --output ./reports --skip-scraping`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 30*time.Minute, "total timeout for batch processing")

	// Shared with run
	batchCmd.Flags().StringVar(&outputDir, "output", "./teasergen-output", "output directory for teaser files")
	batchCmd.Flags().StringVar(&userAgent, "ua", "Teasergen/0.1 (+https://github.com/praxal/teasergen)", "HTTP User-Agent")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable page cache (force fresh fetch)")
	batchCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "persist the page cache to this directory")
	batchCmd.Flags().BoolVar(&skipScraping, "skip-scraping", false, "skip company website scraping (market data only)")
	batchCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	batchCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")

	// LLM flags
	batchCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM rewriting of long sections and hooks")
	batchCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runBatch(cmd *cobra.Command, args []string) error {
	dir := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Teasergen Batch Processing\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input dir:    %s\n", dir)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(os.Stderr, "\n")

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	companies, err := discoverOnePagers(dir)
	if err != nil {
		return err
	}
	if len(companies) == 0 {
		return fmt.Errorf("no *%s files found in %s", onePagerSuffix, dir)
	}
	fmt.Fprintf(os.Stderr, "✓ Found %d one-pagers\n\n", len(companies))

	p, err := pipeline.New(cfg)
	if err != nil {
		return fmt.Errorf("initialize pipeline: %w", err)
	}

	successCount := 0
	failureCount := 0

	for _, c := range companies {
		if ctx.Err() != nil {
			return fmt.Errorf("batch timed out after %d companies", successCount+failureCount)
		}

		result, err := p.Run(ctx, c.name, c.path)
		if err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", c.name, err)
			continue
		}

		successCount++
		fmt.Fprintf(os.Stderr, "✓ %s (verified %.1f%%, %d files)\n",
			c.name, result.Report.VerificationRate, len(result.OutputFiles))
	}

	// Summary
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d companies\n", len(companies))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	if failureCount > 0 {
		return fmt.Errorf("%d of %d companies failed", failureCount, len(companies))
	}
	return nil
}

type batchEntry struct {
	name string
	path string
}

// discoverOnePagers lists one-pagers in filename order. The company
// name is the filename with the suffix stripped and dashes read as
// spaces: "Acme-Precision-OnePager.md" is "Acme Precision".
func discoverOnePagers(dir string) ([]batchEntry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input directory: %w", err)
	}

	var companies []batchEntry
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, onePagerSuffix) {
			continue
		}
		companies = append(companies, batchEntry{
			name: strings.ReplaceAll(strings.TrimSuffix(name, onePagerSuffix), "-", " "),
			path: filepath.Join(dir, name),
		})
	}
	return companies, nil
}

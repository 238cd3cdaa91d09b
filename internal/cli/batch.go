package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ppiankov/draftcheck/internal/model"
	"github.com/ppiankov/draftcheck/internal/worker"
	"github.com/spf13/cobra"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
	batchMD      bool
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Validate many bundles from a list file in parallel",
	Long: `Batch validates many drafts concurrently:
- Read bundle paths from the list file (one per line, # comments)
- Run each pipeline on a worker pool
- Write one JSON (and optionally Markdown) report per bundle
- Exit with the worst severity across all bundles

Example:
  draftcheck batch bundles.txt
  draftcheck batch bundles.txt --concurrency 8 --output-dir ./reports --md`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", 0, "number of concurrent workers (default from config)")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./draftcheck-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().BoolVar(&batchMD, "md", false, "also write Markdown reports")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the report cache")
	batchCmd.Flags().BoolVar(&reviewEnabled, "review", false, "attach reviewer notes (never changes the verdicts)")
	batchCmd.Flags().StringVar(&reviewName, "review-provider", "", "reviewer provider (openai, ollama)")
	batchCmd.Flags().StringVar(&reviewModel, "review-model", "", "reviewer model name")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]

	s, err := newSession(func(cfg *model.Config) {
		applyReviewFlags(cmd, cfg)
		if noCache {
			cfg.Cache.Enabled = false
		}
		if concurrency > 0 {
			cfg.Concurrency.Workers = concurrency
		}
	})
	if err != nil {
		return err
	}
	defer s.close()

	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	workers := s.cfg.Concurrency.Workers
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  draftcheck Batch Validation\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input file:   %s\n", file)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", workers)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(os.Stderr, "\n")

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	processor := worker.NewBatchProcessor(s.svc, workers)
	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	counts := map[model.Severity]int{}
	failures := 0
	used := map[string]int{}

	for _, result := range results {
		if result.Error != nil {
			failures++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Path, result.Error)
			continue
		}
		counts[result.Report.Overall]++

		slug := reportSlug(result.Path, used)
		jsonPath := filepath.Join(outputDir, slug+".json")
		mdPath := ""
		if batchMD || s.cfg.Output.Markdown {
			mdPath = filepath.Join(outputDir, slug+".md")
		}

		if err := s.renderer.RenderJSON(result.Report, jsonPath); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write JSON: %v\n", result.Path, err)
			continue
		}
		if mdPath != "" {
			if err := s.renderer.RenderMarkdown(result.Report, mdPath); err != nil {
				fmt.Fprintf(os.Stderr, "✗ %s: failed to write Markdown: %v\n", result.Path, err)
				continue
			}
		}

		line := fmt.Sprintf("%s: %s", result.Report.Subject, strings.ToUpper(result.Report.Overall.String()))
		if result.Report.HaltedAt != "" {
			line += " (halted at " + result.Report.HaltedAt + ")"
		}
		fmt.Fprintf(os.Stderr, "✓ %s\n", line)
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d bundles\n", len(results))
	fmt.Fprintf(os.Stderr, "  Pass:      %d\n", counts[model.SeverityPass])
	fmt.Fprintf(os.Stderr, "  Warning:   %d\n", counts[model.SeverityWarning])
	fmt.Fprintf(os.Stderr, "  Critical:  %d\n", counts[model.SeverityCritical])
	fmt.Fprintf(os.Stderr, "  Errors:    %d\n", failures)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	return exitFor(worker.WorstSeverity(results))
}

// reportSlug derives a unique report name from a bundle path.
func reportSlug(bundlePath string, used map[string]int) string {
	slug := sanitizeFilename(strings.TrimSuffix(filepath.Base(bundlePath), filepath.Ext(bundlePath)))
	if dir := filepath.Base(filepath.Dir(bundlePath)); slug == "bundle" && dir != "." && dir != string(filepath.Separator) {
		slug = sanitizeFilename(dir)
	}
	used[slug]++
	if n := used[slug]; n > 1 {
		slug = fmt.Sprintf("%s-%d", slug, n)
	}
	return slug
}

// sanitizeFilename sanitizes a string for use as a filename
func sanitizeFilename(s string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
		" ", "-",
	)
	s = replacer.Replace(s)

	// Limit length
	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" {
		s = "report"
	}
	return s
}

package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ppiankov/draftcheck/internal/artifact"
	"github.com/ppiankov/draftcheck/internal/model"
	"github.com/spf13/cobra"
)

var (
	runTranscript string
	runDocument   string
	runMarkdown   string
	runSubject    string
	runConfidence float64
	outJSON       string
	outMD         string
	runTimeout    time.Duration
	noCache       bool
	reviewEnabled bool
	reviewName    string
	reviewModel   string
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [bundle.yaml]",
	Short: "Run the full validation pipeline on one draft",
	Long: `Run validates a draft against its source transcript:
- Checks the transcript is usable
- Confirms the draft is about the declared subject
- Checks required sections and word counts
- Checks image paths and screenshot timestamp links
- Traces every quantitative claim back to the transcript
- Scores technical depth

The inputs come from a bundle file or from flags. Flags override bundle
values.

Example:
  draftcheck run bundle.yaml
  draftcheck run --transcript talk.json --document draft.md --subject "Acme Corp"
  draftcheck run bundle.yaml --json report.json --md report.md --review`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Input flags
	runCmd.Flags().StringVar(&runTranscript, "transcript", "", "transcript file (.json or .txt)")
	runCmd.Flags().StringVar(&runDocument, "document", "", "candidate document (.json, .yaml, .md, .html)")
	runCmd.Flags().StringVar(&runMarkdown, "markdown", "", "rendered Markdown for format checks (optional)")
	runCmd.Flags().StringVar(&runSubject, "subject", "", "declared subject name")
	runCmd.Flags().Float64Var(&runConfidence, "confidence", artifact.DefaultConfidence, "subject identification confidence (0-1)")

	// Output flags
	runCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	runCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	runCmd.Flags().DurationVar(&runTimeout, "timeout", 2*time.Minute, "overall timeout (covers the reviewer call)")
	runCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the report cache")

	// Reviewer flags
	runCmd.Flags().BoolVar(&reviewEnabled, "review", false, "attach a reviewer note (never changes the verdicts)")
	runCmd.Flags().StringVar(&reviewName, "review-provider", "", "reviewer provider (openai, ollama)")
	runCmd.Flags().StringVar(&reviewModel, "review-model", "", "reviewer model name")
}

func runRun(cmd *cobra.Command, args []string) error {
	b, err := bundleFromArgs(cmd, args)
	if err != nil {
		return err
	}

	s, err := newSession(func(cfg *model.Config) {
		applyReviewFlags(cmd, cfg)
		if noCache {
			cfg.Cache.Enabled = false
		}
	})
	if err != nil {
		return err
	}
	defer s.close()

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "Transcript: %s\n", b.Transcript)
		fmt.Fprintf(os.Stderr, "Document:   %s\n", b.Document)
		fmt.Fprintf(os.Stderr, "Cache:      %v\n", s.cfg.Cache.Enabled)
		fmt.Fprintln(os.Stderr)
	}

	report, err := s.svc.ValidateLoaded(ctx, b)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	mdPath := outMD
	if mdPath == "" && s.cfg.Output.Markdown && outJSON != "" {
		mdPath = strings.TrimSuffix(outJSON, ".json") + ".md"
	}
	if err := s.renderer.RenderReport(report, outJSON, mdPath, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return exitFor(report.Overall)
}

// bundleFromArgs loads the bundle argument, if any, and lays the input
// flags over it.
func bundleFromArgs(cmd *cobra.Command, args []string) (*artifact.Bundle, error) {
	b := &artifact.Bundle{}
	if len(args) == 1 {
		loaded, err := artifact.LoadBundle(args[0])
		if err != nil {
			return nil, err
		}
		b = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("transcript") {
		b.Transcript = runTranscript
	}
	if flags.Changed("document") {
		b.Document = runDocument
	}
	if flags.Changed("markdown") {
		b.Markdown = runMarkdown
	}
	if flags.Changed("subject") {
		b.Subject = runSubject
	}
	if flags.Changed("confidence") {
		c := runConfidence
		b.Confidence = &c
	}
	if flags.Changed("profile") {
		b.Profile, _ = flags.GetString("profile")
	}

	if b.Transcript == "" || b.Document == "" {
		return nil, fmt.Errorf("a bundle file or both --transcript and --document are required")
	}
	return b, nil
}

func applyReviewFlags(cmd *cobra.Command, cfg *model.Config) {
	if reviewEnabled {
		cfg.Review.Enabled = true
	}
	if cmd.Flags().Changed("review-provider") {
		cfg.Review.Provider = reviewName
	}
	if cmd.Flags().Changed("review-model") {
		cfg.Review.Model = reviewModel
	}
	if cfg.Review.APIKey == "" && strings.EqualFold(cfg.Review.Provider, "openai") {
		cfg.Review.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.Review.Provider == "ollama" && cfg.Review.BaseURL == "" {
		cfg.Review.BaseURL = os.Getenv("OLLAMA_BASE_URL")
	}
}

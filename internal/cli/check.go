package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/ppiankov/draftcheck/internal/artifact"
	"github.com/ppiankov/draftcheck/internal/extract"
	"github.com/ppiankov/draftcheck/internal/model"
	"github.com/ppiankov/draftcheck/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	checkTranscript string
	checkDocument   string
	checkSubject    string
	checkConfidence float64
	checkJSON       bool
)

// checkCmd groups the single-checkpoint commands
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run a single checkpoint",
	Long: `Check runs one checkpoint on its own and exits with its severity.

Example:
  draftcheck check transcript talk.json
  draftcheck check entity --subject "Acme Corp" --transcript talk.json --document draft.md
  draftcheck check structure draft.md --profile deep-dive
  draftcheck check claims --transcript talk.json --document draft.md
  draftcheck check depth draft.md --transcript talk.json`,
}

var checkTranscriptCmd = &cobra.Command{
	Use:   "transcript <file>",
	Short: "Check transcript size against the profile minimums",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(s *session) (model.Verdict, error) {
			t, _, err := artifact.LoadTranscript(args[0])
			if err != nil {
				return model.Verdict{}, err
			}
			return s.svc.ValidateTranscriptQuality(t, profileFlag(cmd))
		})
	},
}

var checkEntityCmd = &cobra.Command{
	Use:   "entity",
	Short: "Check the draft is about the declared subject",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(s *session) (model.Verdict, error) {
			t, _, err := artifact.LoadTranscript(checkTranscript)
			if err != nil {
				return model.Verdict{}, err
			}
			doc, _, err := s.svc.Documents().LoadDocument(checkDocument)
			if err != nil {
				return model.Verdict{}, err
			}
			if p := profileFlag(cmd); p != "" {
				doc.Profile = p
			}
			subject := checkSubject
			if subject == "" {
				subject = doc.Subject
			}
			return s.svc.ValidateEntityConsistency(subject, checkConfidence, t, doc)
		})
	},
}

var checkStructureCmd = &cobra.Command{
	Use:   "structure <document>",
	Short: "Check required sections and word counts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(s *session) (model.Verdict, error) {
			doc, _, err := s.svc.Documents().LoadDocument(args[0])
			if err != nil {
				return model.Verdict{}, err
			}
			return s.svc.ValidateStructure(doc, profileOr(cmd, doc.Profile))
		})
	},
}

var checkClaimsCmd = &cobra.Command{
	Use:   "claims",
	Short: "Trace quantitative claims back to the transcript",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(s *session) (model.Verdict, error) {
			return claimsVerdict(s, cmd, checkTranscript, checkDocument)
		})
	},
}

var checkDepthCmd = &cobra.Command{
	Use:   "depth <document>",
	Short: "Score technical depth",
	Long: `Depth scores the document on five weighted dimensions. With --transcript
the claim-quality dimension uses traced claims; without it, claim quality is 0.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(s *session) (model.Verdict, error) {
			doc, _, err := s.svc.Documents().LoadDocument(args[0])
			if err != nil {
				return model.Verdict{}, err
			}
			profileID := profileOr(cmd, doc.Profile)

			var depth pipeline.DepthInputs
			if checkTranscript != "" {
				claims, err := claimsVerdict(s, cmd, checkTranscript, args[0])
				if err != nil {
					return model.Verdict{}, err
				}
				depth.ClaimOutcomes = claims.Claims
			}
			return s.svc.ValidateTechnicalDepth(doc, depth, profileID)
		})
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.AddCommand(checkTranscriptCmd, checkEntityCmd, checkStructureCmd, checkClaimsCmd, checkDepthCmd)

	checkCmd.PersistentFlags().BoolVar(&checkJSON, "json", false, "print the verdict as JSON")

	checkEntityCmd.Flags().StringVar(&checkSubject, "subject", "", "declared subject (default: the document subject)")
	checkEntityCmd.Flags().Float64Var(&checkConfidence, "confidence", artifact.DefaultConfidence, "subject identification confidence (0-1)")

	for _, c := range []*cobra.Command{checkEntityCmd, checkClaimsCmd} {
		c.Flags().StringVar(&checkTranscript, "transcript", "", "transcript file")
		c.Flags().StringVar(&checkDocument, "document", "", "candidate document")
		_ = c.MarkFlagRequired("transcript")
		_ = c.MarkFlagRequired("document")
	}
	checkDepthCmd.Flags().StringVar(&checkTranscript, "transcript", "", "transcript file (optional)")
}

// claimsVerdict extracts claims from the document and traces them.
func claimsVerdict(s *session, cmd *cobra.Command, transcriptPath, documentPath string) (model.Verdict, error) {
	t, _, err := artifact.LoadTranscript(transcriptPath)
	if err != nil {
		return model.Verdict{}, err
	}
	doc, _, err := s.svc.Documents().LoadDocument(documentPath)
	if err != nil {
		return model.Verdict{}, err
	}
	p, err := s.svc.Profile(profileOr(cmd, doc.Profile))
	if err != nil {
		return model.Verdict{}, err
	}

	claims := extract.NewClaimExtractor(p.Fabrication.ContextWords).Extract(doc)
	return s.svc.ValidateClaims(claims, t, p.ID)
}

// withSession runs one checkpoint and turns its verdict into output and
// an exit status.
func withSession(fn func(*session) (model.Verdict, error)) error {
	s, err := newSession(nil)
	if err != nil {
		return err
	}
	defer s.close()

	v, err := fn(s)
	if err != nil {
		return err
	}

	if checkJSON {
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal verdict: %w", err)
		}
		fmt.Println(string(data))
	} else {
		printVerdict(v, s.cfg.Output.Color)
	}
	return exitFor(v.Severity)
}

func printVerdict(v model.Verdict, colored bool) {
	var c *color.Color
	switch v.Severity {
	case model.SeverityCritical:
		c = color.New(color.FgRed, color.Bold)
	case model.SeverityWarning:
		c = color.New(color.FgYellow, color.Bold)
	default:
		c = color.New(color.FgGreen, color.Bold)
	}
	if !colored {
		c.DisableColor()
	}

	header := fmt.Sprintf("%s: %s", v.Checkpoint, strings.ToUpper(v.Severity.String()))
	if v.Score != nil {
		header += fmt.Sprintf(" (%.2f)", *v.Score)
	}
	c.Fprintln(os.Stdout, header)
	for _, msg := range v.Messages {
		fmt.Printf("  - %s\n", msg)
	}
}

// profileFlag returns the --profile value only when it was set.
func profileFlag(cmd *cobra.Command) string {
	if !cmd.Flags().Changed("profile") {
		return ""
	}
	p, _ := cmd.Flags().GetString("profile")
	return p
}

// profileOr prefers an explicit --profile over the document's own.
func profileOr(cmd *cobra.Command, declared string) string {
	if p := profileFlag(cmd); p != "" {
		return p
	}
	return declared
}

package validate

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/ppiankov/draftcheck/internal/model"
	"github.com/ppiankov/draftcheck/internal/profile"
	"github.com/ppiankov/draftcheck/internal/score"
)

// TechnicalDepth scores how much concrete engineering substance a document
// carries. It consumes the claim outcomes of the Fabrication checkpoint and
// must run after it.
type TechnicalDepth struct{}

// NewTechnicalDepth creates the checkpoint.
func NewTechnicalDepth() *TechnicalDepth {
	return &TechnicalDepth{}
}

// Name returns the checkpoint name.
func (c *TechnicalDepth) Name() string { return NameDepth }

// Check computes the five sub-scores and combines them with the profile
// weights.
func (c *TechnicalDepth) Check(in *Input) (model.Verdict, error) {
	v := model.NewVerdict(c.Name())
	if err := requireProfile(c.Name(), in); err != nil {
		return v, err
	}
	if err := requireDocument(c.Name(), in); err != nil {
		return v, err
	}

	sub := SubScores(in.Document, in.References, in.ClaimOutcomes, in.Profile)
	res, err := score.Weighted(sub, in.Profile.Depth.Weights, in.Profile.Depth.Pass, in.Profile.Depth.Warn)
	if err != nil {
		return v, err
	}

	v.SetScore(res.Overall)
	v.Signals = res.Breakdown
	v.Add(res.Severity, "technical depth score %.2f (pass >= %.2f, warn >= %.2f)",
		res.Overall, in.Profile.Depth.Pass, in.Profile.Depth.Warn)
	for _, s := range res.Breakdown {
		v.Note("%s", s.Description)
	}

	if sev, msg := referenceGate(len(in.References), in.Profile.Depth); msg != "" {
		v.Add(sev, "%s", msg)
	}
	return v, nil
}

// SubScores computes every depth dimension, each clamped to [0,1].
func SubScores(doc *model.CandidateDocument, refs []model.DomainReference, outcomes []model.ClaimOutcome, p *model.ContentProfile) map[string]float64 {
	return map[string]float64{
		profile.DomainReferenceDepth:   clamp01(domainReferenceDepth(refs, p.Depth.MinDomainReferences)),
		profile.Specificity:            clamp01(specificity(doc)),
		profile.ImplementationDetail:   clamp01(implementationDetail(doc, p.Depth)),
		profile.ClaimQuality:           clamp01(claimQuality(outcomes)),
		profile.StructuralCompleteness: clamp01(structuralCompleteness(doc, p)),
	}
}

// referenceGate grades the number of named domain references against the
// profile floor and recommendation.
func referenceGate(n int, d model.DepthParams) (model.Severity, string) {
	switch {
	case n < d.DomainReferenceFloor:
		return model.SeverityCritical, fmt.Sprintf("only %d domain references named, at least %d required", n, d.DomainReferenceFloor)
	case n < d.MinDomainReferences:
		return model.SeverityWarning, fmt.Sprintf("only %d domain references named, %d recommended", n, d.MinDomainReferences)
	}
	return model.SeverityPass, ""
}

func clamp01(x float64) float64 {
	if math.IsNaN(x) {
		return 0
	}
	return math.Min(1, math.Max(0, x))
}

// domainReferenceDepth rewards naming enough projects and explaining them.
func domainReferenceDepth(refs []model.DomainReference, minimum int) float64 {
	if len(refs) == 0 || minimum <= 0 {
		return 0
	}
	explained := 0
	for _, r := range refs {
		if r.Explained {
			explained++
		}
	}
	coverage := math.Min(1, float64(len(refs))/float64(minimum))
	return 0.7*coverage + 0.3*float64(explained)/float64(len(refs))
}

var specificityIndicators = []*regexp.Regexp{
	// version strings
	regexp.MustCompile(`\bv\d+\.\d+(?:\.\d+)?\b|\b\d+\.\d+\.\d+\b`),
	// configuration-shaped text
	regexp.MustCompile("```|\\b(?:apiVersion|kind|metadata|spec|replicas|nodeGroups|resources|limits|namespace|values)\\s*:"),
	// commands and flags
	regexp.MustCompile(`\b(?:kubectl|helm|eksctl|terraform|argocd|istioctl|docker|flux|linkerd|kustomize)\s+[a-z][\w-]*|(?:^|\s)--[a-z][\w-]+`),
	// named sub-components
	regexp.MustCompile(`(?i)\b(?:sidecars?|operators?|controllers?|admission webhooks?|ingress(?:es)?|gateways?|service mesh|circuit breakers?|canary|blue-green|rolling updates?|autoscalers?|daemonsets?|statefulsets?|crds?|custom resources?)\b`),
}

// specificity mixes how many sections contain concrete technical tokens
// with how many kinds of such tokens appear at all.
func specificity(doc *model.CandidateDocument) float64 {
	if len(doc.Sections) == 0 {
		return 0
	}
	kinds := make([]bool, len(specificityIndicators))
	withTokens := 0
	for _, s := range doc.Sections {
		found := false
		for i, re := range specificityIndicators {
			if re.MatchString(s.Body) {
				kinds[i] = true
				found = true
			}
		}
		if found {
			withTokens++
		}
	}
	present := 0
	for _, k := range kinds {
		if k {
			present++
		}
	}
	return 0.5*float64(withTokens)/float64(len(doc.Sections)) + 0.5*float64(present)/float64(len(kinds))
}

var (
	listItemRe  = regexp.MustCompile(`(?m)^\s*(?:\d+[.)]|[-*+])\s+\S`)
	sequenceRe  = regexp.MustCompile(`(?i)\b(?:first|second|third|then|next|finally|afterwards|subsequently)\b`)
	namedPhases = regexp.MustCompile(`(?i)\b(?:phase|stage|step|milestone|iteration|wave)\s*(?:\d+|one|two|three|four|[ivx]+)?\b`)
)

// implementationDetail averages procedural depth over the procedural sections.
func implementationDetail(doc *model.CandidateDocument, d model.DepthParams) float64 {
	if len(d.ProceduralSections) == 0 || d.ProceduralWords <= 0 {
		return 0
	}
	total := 0.0
	for _, name := range d.ProceduralSections {
		s, ok := doc.Section(name)
		if !ok || strings.TrimSpace(s.Body) == "" {
			continue
		}
		score := 0.5 * math.Min(1, float64(s.Words())/float64(d.ProceduralWords))
		if hasOrderedSteps(s.Body) {
			score += 0.25
		}
		if namedPhases.MatchString(s.Body) {
			score += 0.25
		}
		total += score
	}
	return total / float64(len(d.ProceduralSections))
}

func hasOrderedSteps(body string) bool {
	if len(listItemRe.FindAllString(body, -1)) >= 2 {
		return true
	}
	distinct := make(map[string]bool)
	for _, w := range sequenceRe.FindAllString(body, -1) {
		distinct[strings.ToLower(w)] = true
	}
	return len(distinct) >= 2
}

// claimQuality rewards confirmed claims, more so when they state a change.
func claimQuality(outcomes []model.ClaimOutcome) float64 {
	if len(outcomes) == 0 {
		return 0.2
	}
	clean, comparative := 0, 0
	for _, o := range outcomes {
		if !o.Clean() {
			continue
		}
		clean++
		if o.Comparative {
			comparative++
		}
	}
	n := float64(len(outcomes))
	return 0.6*float64(clean)/n + 0.4*float64(comparative)/n
}

// structuralCompleteness is the share of architecturally significant
// sections that are present and reach their target minimum.
func structuralCompleteness(doc *model.CandidateDocument, p *model.ContentProfile) float64 {
	names := p.Depth.ArchitecturalSections
	if len(names) == 0 {
		return 0
	}
	complete := 0
	for _, name := range names {
		s, ok := doc.Section(name)
		if !ok {
			continue
		}
		want := 1
		if rule, ok := p.Rule(name); ok && rule.Target.Min > 0 {
			want = rule.Target.Min
		}
		if s.Words() >= want {
			complete++
		}
	}
	return float64(complete) / float64(len(names))
}

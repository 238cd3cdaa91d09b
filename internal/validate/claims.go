package validate

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ppiankov/draftcheck/internal/corpus"
	"github.com/ppiankov/draftcheck/internal/extract"
	"github.com/ppiankov/draftcheck/internal/match"
	"github.com/ppiankov/draftcheck/internal/model"
)

// Fabrication traces every quantitative claim back to the transcript.
type Fabrication struct{}

// NewFabrication creates the checkpoint.
func NewFabrication() *Fabrication {
	return &Fabrication{}
}

// Name returns the checkpoint name.
func (c *Fabrication) Name() string { return NameClaims }

// Check evaluates each claim and reports the worst outcome. Per-claim
// results are attached to the verdict for the depth score.
func (c *Fabrication) Check(in *Input) (model.Verdict, error) {
	v := model.NewVerdict(c.Name())
	if err := requireProfile(c.Name(), in); err != nil {
		return v, err
	}
	if err := requireTranscript(c.Name(), in); err != nil {
		return v, err
	}
	for i := range in.Claims {
		if err := model.CheckContract(c.Name(), &in.Claims[i]); err != nil {
			return v, err
		}
	}

	if len(in.Claims) == 0 {
		v.Note("no quantitative claims found")
		return v, nil
	}

	ix := corpusFor(in)
	params := in.Profile.Fabrication
	clean := 0
	for _, claim := range in.Claims {
		outcome := EvaluateClaim(claim, ix, params)
		v.Claims = append(v.Claims, outcome)
		if outcome.Clean() {
			clean++
			continue
		}
		v.Add(outcome.Severity, "%s", outcome.Reason)
	}

	v.SetScore(float64(clean) / float64(len(in.Claims)))
	v.Note("%d of %d claims confirmed against the transcript", clean, len(in.Claims))
	return v, nil
}

// EvaluateClaim decides how well one claim is supported by the corpus.
func EvaluateClaim(claim model.QuantitativeClaim, ix *corpus.Index, params model.FabricationParams) model.ClaimOutcome {
	sentence := claim.Sentence
	if sentence == "" {
		sentence = claim.Context
	}
	o := model.ClaimOutcome{
		Claim:       claim,
		Severity:    model.SeverityPass,
		Comparative: extract.IsComparative(sentence),
	}
	threshold := params.SimilarityThreshold
	quote := strings.TrimSpace(claim.Quote)

	if quote == "" {
		if params.RequireQuotes {
			o.Severity = model.SeverityCritical
			o.Reason = fmt.Sprintf("unsourced metric %q in section %q: no supporting transcript quote", claim.Value, claim.Section)
			return o
		}
		phrase := evidencePhrase(claim)
		m, ok := ix.ContainsPhrase(phrase, threshold)
		o.Similarity, o.MatchedSegment = m.Score, m.Segment
		if !ok {
			o.Severity = model.SeverityWarning
			o.Reason = fmt.Sprintf("metric %q in section %q not found in transcript (best similarity %.2f < %.2f): %q",
				claim.Value, claim.Section, m.Score, threshold, phrase)
			return o
		}
		if !valueNear(claim.Value, match.Prepare(phrase), ix.Segment(m.Index), params.AdjacencyWindow) {
			o.Severity = model.SeverityWarning
			o.Reason = fmt.Sprintf("metric value %q not confirmed within %d tokens of matched transcript text %q",
				claim.Value, params.AdjacencyWindow, m.Segment)
		}
		return o
	}

	if params.MinQuoteLength > 0 && utf8.RuneCountInString(quote) < params.MinQuoteLength {
		o.Severity = model.SeverityCritical
		o.Reason = fmt.Sprintf("unsourced metric %q in section %q: supporting quote %q shorter than %d characters",
			claim.Value, claim.Section, quote, params.MinQuoteLength)
		return o
	}

	m, ok := ix.ContainsPhrase(quote, threshold)
	o.Similarity, o.MatchedSegment = m.Score, m.Segment
	if !ok {
		o.Severity = model.SeverityWarning
		if params.RequireQuotes {
			o.Severity = model.SeverityCritical
		}
		o.Reason = fmt.Sprintf("quote for metric %q does not appear in source (best similarity %.2f < %.2f): %q",
			claim.Value, m.Score, threshold, quote)
		return o
	}
	if !valueNear(claim.Value, match.Prepare(quote), ix.Segment(m.Index), params.AdjacencyWindow) {
		o.Severity = model.SeverityWarning
		o.Reason = fmt.Sprintf("metric value %q not confirmed adjacent to matched quote %q (window %d tokens)",
			claim.Value, quote, params.AdjacencyWindow)
	}
	return o
}

// evidencePhrase is the value with its surrounding words, used when no
// quote was supplied.
func evidencePhrase(claim model.QuantitativeClaim) string {
	if strings.TrimSpace(claim.Context) != "" {
		return claim.Context
	}
	return claim.Value
}

// valueNear reports whether the numeric part of value occurs in segment
// within window tokens of where needle aligns.
func valueNear(value string, needle, segment match.Phrase, window int) bool {
	number := numericToken(value)
	if number == "" {
		return true
	}
	span := match.Align(needle, segment)
	start := max(0, span.Start-window)
	end := min(len(segment.Tokens), span.End+window)
	for _, tok := range segment.Tokens[start:end] {
		if tok == number {
			return true
		}
		if a, errA := strconv.ParseFloat(tok, 64); errA == nil {
			if b, errB := strconv.ParseFloat(number, 64); errB == nil && a == b {
				return true
			}
		}
	}
	return false
}

// numericToken returns the first normalized token of value that is a number.
func numericToken(value string) string {
	for _, tok := range match.Tokens(value) {
		if _, err := strconv.ParseFloat(tok, 64); err == nil {
			return tok
		}
	}
	return ""
}

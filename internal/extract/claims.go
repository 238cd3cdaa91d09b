package extract

import (
	"regexp"
	"strings"

	"github.com/ppiankov/draftcheck/internal/match"
	"github.com/ppiankov/draftcheck/internal/model"
	"github.com/ppiankov/draftcheck/internal/prose"
)

type metricPattern struct {
	unit model.Unit
	re   *regexp.Regexp
}

// ClaimExtractor pulls quantitative claims out of document sections.
type ClaimExtractor struct {
	patterns     []metricPattern
	contextWords int
}

// NewClaimExtractor creates an extractor that keeps contextWords words
// either side of each value as the claim context.
func NewClaimExtractor(contextWords int) *ClaimExtractor {
	if contextWords <= 0 {
		contextWords = 4
	}
	// Earlier patterns win when matches overlap.
	return &ClaimExtractor{
		contextWords: contextWords,
		patterns: []metricPattern{
			{model.UnitCurrency, regexp.MustCompile(`(?i)\$\d[\d,]*(?:\.\d+)?(?:\s*(?:k|m|b|million|billion|thousand)\b)?`)},
			{model.UnitPercentage, regexp.MustCompile(`(?i)\b\d+(?:\.\d+)?\s*(?:%|percent\b|per cent\b)`)},
			{model.UnitMultiplier, regexp.MustCompile(`(?i)\b\d+(?:\.\d+)?(?:x\b|\s+times\b)`)},
			{model.UnitScale, regexp.MustCompile(`(?i)\b\d[\d,]*\+?\s+(?:pods?|services?|nodes?|clusters?|users?|requests?|microservices?|engineers?|developers?|teams?|applications?|deployments?|containers?|regions?)\b`)},
			{model.UnitDuration, regexp.MustCompile(`(?i)\b\d+(?:\.\d+)?\s*(?:ms|milliseconds?|seconds?|minutes?|hours?|days?|weeks?|months?|years?)\b`)},
		},
	}
}

// Extract returns the claims asserted by doc. Author-supplied metric
// evidence is attached to matching claims; evidence whose value never
// appears in the text becomes a claim of its own.
func (e *ClaimExtractor) Extract(doc *model.CandidateDocument) []model.QuantitativeClaim {
	if doc == nil {
		return nil
	}

	var claims []model.QuantitativeClaim
	for _, section := range doc.Sections {
		claims = append(claims, e.ExtractText(section.Name, section.Body)...)
	}
	claims = dedupeClaims(claims)

	for _, m := range doc.Metrics {
		if strings.TrimSpace(m.Quote) == "" && strings.TrimSpace(m.Value) == "" {
			continue
		}
		if attachQuote(claims, m) {
			continue
		}
		claims = append(claims, model.QuantitativeClaim{
			Value:    strings.TrimSpace(m.Value),
			Unit:     e.Classify(m.Value),
			Context:  m.Context,
			Sentence: m.Context,
			Section:  "metrics",
			Quote:    m.Quote,
		})
	}
	return claims
}

// ExtractText finds claims in one block of text.
func (e *ClaimExtractor) ExtractText(section, text string) []model.QuantitativeClaim {
	var claims []model.QuantitativeClaim
	for _, sentence := range prose.Sentences(text) {
		var taken [][2]int
		for _, p := range e.patterns {
			for _, loc := range p.re.FindAllStringIndex(sentence, -1) {
				if overlaps(taken, loc) {
					continue
				}
				taken = append(taken, [2]int{loc[0], loc[1]})
				claims = append(claims, model.QuantitativeClaim{
					Value:    strings.TrimSpace(sentence[loc[0]:loc[1]]),
					Unit:     p.unit,
					Context:  contextAround(sentence, loc[0], loc[1], e.contextWords),
					Sentence: sentence,
					Section:  section,
				})
			}
		}
	}
	return claims
}

// Classify guesses the unit of a bare value such as "40%" or "3x".
func (e *ClaimExtractor) Classify(value string) model.Unit {
	for _, p := range e.patterns {
		if p.re.MatchString(value) {
			return p.unit
		}
	}
	return model.UnitCount
}

func overlaps(taken [][2]int, loc []int) bool {
	for _, t := range taken {
		if loc[0] < t[1] && t[0] < loc[1] {
			return true
		}
	}
	return false
}

// contextAround returns up to n words either side of sentence[start:end],
// including the value itself.
func contextAround(sentence string, start, end, n int) string {
	before := strings.Fields(sentence[:start])
	after := strings.Fields(sentence[end:])
	if len(before) > n {
		before = before[len(before)-n:]
	}
	if len(after) > n {
		after = after[:n]
	}
	parts := append(append(before, strings.TrimSpace(sentence[start:end])), after...)
	return strings.Trim(strings.Join(parts, " "), " .,;:!?")
}

// attachQuote gives m's quote to every unquoted claim with the same
// normalized value. It reports whether any claim matched.
func attachQuote(claims []model.QuantitativeClaim, m model.MetricEvidence) bool {
	want := match.Normalize(m.Value)
	if want == "" {
		return false
	}
	found := false
	for i := range claims {
		if match.Normalize(claims[i].Value) != want {
			continue
		}
		found = true
		if claims[i].Quote == "" {
			claims[i].Quote = m.Quote
		}
	}
	return found
}

// dedupeClaims removes repeated (section, value, sentence) triples.
func dedupeClaims(claims []model.QuantitativeClaim) []model.QuantitativeClaim {
	seen := make(map[string]bool)
	var unique []model.QuantitativeClaim

	for _, claim := range claims {
		key := strings.ToLower(claim.Section + "\x00" + claim.Value + "\x00" + claim.Sentence)
		if !seen[key] {
			seen[key] = true
			unique = append(unique, claim)
		}
	}

	return unique
}

var comparativeRe = regexp.MustCompile(`(?i)(→|->|\bfrom\b.*\bto\b|\b(?:reduc|increas|improv|decreas|cut|drop|grew|grow|shrank|fell|rose|faster|slower|down|up|compared|before|after|saving|saved)\w*\b)`)

// IsComparative reports whether a claim sentence states a change rather
// than a bare figure, e.g. "latency dropped from 300ms to 40ms".
func IsComparative(sentence string) bool {
	return comparativeRe.MatchString(sentence)
}

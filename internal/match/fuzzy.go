// Package match implements approximate phrase matching between generated
// text and transcript segments.
//
// A score combines token containment, which tolerates reordering and
// extra words, with a character edit ratio that tolerates small spelling
// drift. Both operate on normalized text (see Normalize), so numeric
// paraphrases such as "50%" and "fifty percent" compare as equal.
package match

import "strings"

const (
	tokenWeight = 0.85
	charWeight  = 0.15
)

// Phrase is a pre-normalized string. Preparing segments once lets a corpus
// be searched repeatedly without re-normalizing.
type Phrase struct {
	Raw    string
	Norm   string
	Tokens []string
	set    map[string]struct{}
}

// Prepare normalizes s for matching.
func Prepare(s string) Phrase {
	tokens := Tokens(s)
	content := contentTokens(tokens)
	if len(content) == 0 {
		content = tokens
	}
	set := make(map[string]struct{}, len(content))
	for _, t := range content {
		set[t] = struct{}{}
	}
	return Phrase{
		Raw:    s,
		Norm:   strings.Join(tokens, " "),
		Tokens: tokens,
		set:    set,
	}
}

// Empty reports whether the phrase has no tokens.
func (p Phrase) Empty() bool {
	return len(p.Tokens) == 0
}

// Similarity scores a against b in [0,1]. Identical non-empty inputs score
// 1; inputs sharing no tokens and no characters score 0.
func Similarity(a, b string) float64 {
	if a == b && strings.TrimSpace(a) != "" {
		return 1
	}
	return Score(Prepare(a), Prepare(b))
}

// Score is Similarity over prepared phrases.
func Score(a, b Phrase) float64 {
	if a.Empty() || b.Empty() {
		return 0
	}
	if a.Norm == b.Norm {
		return 1
	}
	s := tokenWeight*containment(a, b) + charWeight*partialRatio(a, b)
	if s > 1 {
		s = 1
	}
	return s
}

// Cover scores how much of needle is present in segment, in [0,1]. Unlike
// Score it is directional: a segment much shorter than the needle cannot
// cover it, however many of its own tokens the needle repeats.
func Cover(needle, segment Phrase) float64 {
	if needle.Empty() || segment.Empty() {
		return 0
	}
	if needle.Norm == segment.Norm {
		return 1
	}
	partial := partialRatio(needle, segment)
	if ls, ln := len(segment.Tokens), len(needle.Tokens); ls < ln {
		partial *= float64(ls) / float64(ln)
	}
	s := tokenWeight*coverage(needle, segment) + charWeight*partial
	if s > 1 {
		s = 1
	}
	return s
}

// shares reports whether a and b have at least one content token in common.
func shares(a, b Phrase) bool {
	small, large := a.set, b.set
	if len(small) > len(large) {
		small, large = large, small
	}
	for t := range small {
		if _, ok := large[t]; ok {
			return true
		}
	}
	return false
}

// containment is |A∩B| / min(|A|,|B|) over distinct content tokens.
func containment(a, b Phrase) float64 {
	small, large := a.set, b.set
	if len(small) > len(large) {
		small, large = large, small
	}
	if len(small) == 0 {
		return 0
	}
	shared := 0
	for t := range small {
		if _, ok := large[t]; ok {
			shared++
		}
	}
	return float64(shared) / float64(len(small))
}

// coverage is |N∩S| / |N| over distinct content tokens of the needle.
func coverage(needle, segment Phrase) float64 {
	if len(needle.set) == 0 {
		return 0
	}
	shared := 0
	for t := range needle.set {
		if _, ok := segment.set[t]; ok {
			shared++
		}
	}
	return float64(shared) / float64(len(needle.set))
}

// partialRatio is the best edit ratio of the shorter phrase against
// equally sized token windows of the longer one.
func partialRatio(a, b Phrase) float64 {
	short, long := a, b
	if len(short.Tokens) > len(long.Tokens) {
		short, long = long, short
	}
	best := 0.0
	for _, w := range windows(long.Tokens, len(short.Tokens)) {
		r := editRatio(short.Norm, strings.Join(w.tokens, " "))
		if r > best {
			best = r
			if best == 1 {
				break
			}
		}
	}
	return best
}

type window struct {
	start  int
	tokens []string
}

func windows(tokens []string, size int) []window {
	if size <= 0 {
		return nil
	}
	if size >= len(tokens) {
		return []window{{start: 0, tokens: tokens}}
	}
	out := make([]window, 0, len(tokens)-size+1)
	for i := 0; i+size <= len(tokens); i++ {
		out = append(out, window{start: i, tokens: tokens[i : i+size]})
	}
	return out
}

// Match is the best-scoring segment for a needle.
type Match struct {
	Segment string  `json:"segment"`
	Index   int     `json:"index"`
	Score   float64 `json:"score"`
}

// BestMatch returns the segment most similar to needle and whether it
// reaches minSimilarity. Ties resolve to the earliest segment.
func BestMatch(needle string, segments []string, minSimilarity float64) (Match, bool) {
	prepared := make([]Phrase, len(segments))
	for i, s := range segments {
		prepared[i] = Prepare(s)
	}
	return BestPrepared(Prepare(needle), prepared, minSimilarity)
}

// BestPrepared is BestMatch over prepared segments. Segments are scored
// with Cover, so the needle must be present in the segment, not merely
// overlap it.
func BestPrepared(needle Phrase, segments []Phrase, minSimilarity float64) (Match, bool) {
	best := Match{Index: -1}
	if needle.Empty() {
		return best, false
	}
	// Without a shared token the score cannot exceed charWeight.
	prefilter := minSimilarity > charWeight
	for i, seg := range segments {
		if prefilter && !shares(needle, seg) {
			continue
		}
		s := Cover(needle, seg)
		if s > best.Score || best.Index < 0 {
			best = Match{Segment: seg.Raw, Index: i, Score: s}
		}
	}
	if best.Index < 0 {
		return best, false
	}
	return best, best.Score >= minSimilarity
}

// Span is a half-open token range in a normalized segment.
type Span struct {
	Start int
	End   int
}

// Align locates the token window of segment that best matches needle.
func Align(needle, segment Phrase) Span {
	size := len(needle.Tokens)
	if size == 0 || len(segment.Tokens) == 0 {
		return Span{}
	}
	bestSpan := Span{Start: 0, End: min(size, len(segment.Tokens))}
	bestShared, bestRatio := -1, -1.0
	for _, w := range windows(segment.Tokens, size) {
		shared := 0
		for _, t := range w.tokens {
			if _, ok := needle.set[t]; ok {
				shared++
			}
		}
		ratio := editRatio(needle.Norm, strings.Join(w.tokens, " "))
		if shared > bestShared || (shared == bestShared && ratio > bestRatio) {
			bestShared, bestRatio = shared, ratio
			bestSpan = Span{Start: w.start, End: w.start + len(w.tokens)}
		}
	}
	return bestSpan
}

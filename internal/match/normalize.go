package match

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	thousandsSep = regexp.MustCompile(`(\d),(\d{3})`)
	currencyRe   = regexp.MustCompile(`\$\s?(\d+(?:\.\d+)?)`)
	percentRe    = regexp.MustCompile(`(\d)\s*%`)
	multiplierRe = regexp.MustCompile(`(\d+(?:\.\d+)?)x\b`)
	kiloRe       = regexp.MustCompile(`\b(\d+)k\b`)
	nonWordRe    = regexp.MustCompile(`[^a-z0-9.]+`)
)

var unitWords = map[string]int{
	"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	"eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14, "fifteen": 15,
	"sixteen": 16, "seventeen": 17, "eighteen": 18, "nineteen": 19,
	"twenty": 20, "thirty": 30, "forty": 40, "fifty": 50,
	"sixty": 60, "seventy": 70, "eighty": 80, "ninety": 90,
	"dozen": 12,
}

var scaleWords = map[string]int{
	"hundred":  100,
	"thousand": 1000,
	"million":  1000000,
	"billion":  1000000000,
}

var tokenAliases = map[string][]string{
	"pct":     {"percent"},
	"percent": {"percent"},
	"times":   {"x"},
	"fold":    {"x"},
	"dollars": {"usd"},
	"dollar":  {"usd"},
	"half":    {"50", "percent"},
}

// Normalize folds the surface forms of quantities so that "50%",
// "fifty percent" and "50 per cent" produce the same text.
func Normalize(s string) string {
	return strings.Join(Tokens(s), " ")
}

// Tokens returns the normalized tokens of s.
func Tokens(s string) []string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "per cent", "percent")
	for thousandsSep.MatchString(s) {
		s = thousandsSep.ReplaceAllString(s, "$1$2")
	}
	s = currencyRe.ReplaceAllString(s, " $1 usd ")
	s = percentRe.ReplaceAllString(s, "$1 percent ")
	s = multiplierRe.ReplaceAllString(s, "$1 x ")
	s = kiloRe.ReplaceAllString(s, "${1}000")
	s = nonWordRe.ReplaceAllString(s, " ")

	raw := strings.Fields(s)
	words := make([]string, 0, len(raw))
	for _, w := range raw {
		w = strings.Trim(w, ".")
		if w == "" {
			continue
		}
		if alias, ok := tokenAliases[w]; ok {
			words = append(words, alias...)
			continue
		}
		words = append(words, w)
	}
	return foldNumbers(words)
}

// foldNumbers collapses spelled-out numbers into digits:
// "twenty five" -> "25", "two thousand five hundred" -> "2500", "3 million" -> "3000000".
func foldNumbers(words []string) []string {
	out := make([]string, 0, len(words))
	total, current := 0, 0
	inNumber := false

	flush := func() {
		if inNumber {
			out = append(out, strconv.Itoa(total+current))
		}
		total, current, inNumber = 0, 0, false
	}

	for i, w := range words {
		if v, ok := unitWords[w]; ok {
			current += v
			inNumber = true
			continue
		}
		if scale, ok := scaleWords[w]; ok {
			if !inNumber {
				// Digit followed by a scale word, e.g. "3 million".
				if n := len(out); n > 0 {
					if d, err := strconv.Atoi(out[n-1]); err == nil {
						out[n-1] = strconv.Itoa(d * scale)
						continue
					}
				}
				if w == "hundred" || w == "thousand" {
					current = 1
					inNumber = true
				} else {
					out = append(out, w)
					continue
				}
			}
			if current == 0 {
				current = 1
			}
			if scale == 100 {
				current *= scale
			} else {
				total += current * scale
				current = 0
			}
			continue
		}
		if w == "and" && inNumber && i+1 < len(words) {
			if _, ok := unitWords[words[i+1]]; ok {
				continue
			}
		}
		if w == "a" && i+1 < len(words) {
			next := words[i+1]
			if next == "dozen" || next == "hundred" || next == "thousand" {
				continue
			}
		}
		flush()
		out = append(out, w)
	}
	flush()
	return out
}

var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true, "of": true,
	"to": true, "in": true, "on": true, "at": true, "for": true, "with": true,
	"by": true, "we": true, "our": true, "is": true, "are": true, "was": true,
	"were": true, "be": true, "been": true, "it": true, "its": true, "that": true,
	"this": true, "from": true, "as": true, "so": true, "about": true, "which": true,
	"have": true, "has": true, "had": true, "i": true, "you": true, "they": true,
	"us": true, "them": true, "there": true, "um": true, "uh": true, "like": true,
}

// contentTokens drops stop words.
func contentTokens(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if !stopWords[t] {
			out = append(out, t)
		}
	}
	return out
}

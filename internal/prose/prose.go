// Package prose holds small text helpers shared by extractors and the corpus.
package prose

import (
	"strings"
	"unicode"
)

// Sentences splits text on terminal punctuation followed by whitespace.
// Newlines are treated as spaces unless they separate paragraphs.
func Sentences(text string) []string {
	var sentences []string
	for _, para := range Paragraphs(text) {
		para = strings.Join(strings.Fields(para), " ")
		var current strings.Builder
		runes := []rune(para)
		for i, r := range runes {
			current.WriteRune(r)
			if r != '.' && r != '!' && r != '?' {
				continue
			}
			if i+1 < len(runes) && !unicode.IsSpace(runes[i+1]) {
				continue
			}
			if isAbbreviation(current.String()) {
				continue
			}
			if s := strings.TrimSpace(current.String()); s != "" {
				sentences = append(sentences, s)
			}
			current.Reset()
		}
		if s := strings.TrimSpace(current.String()); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

// Paragraphs splits text on blank lines.
func Paragraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var out []string
	for _, p := range strings.Split(text, "\n\n") {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}

var abbreviations = []string{"e.g.", "i.e.", "etc.", "vs.", "approx.", "inc.", "corp.", "ltd.", "dr.", "mr.", "ms."}

func isAbbreviation(s string) bool {
	lower := strings.ToLower(s)
	for _, a := range abbreviations {
		if strings.HasSuffix(lower, " "+a) || lower == a {
			return true
		}
	}
	return false
}

// Chunks splits words into windows of at most size words, overlapping by
// size-stride words. Short inputs come back as a single chunk.
func Chunks(words []string, size, stride int) [][]string {
	if len(words) == 0 {
		return nil
	}
	if size <= 0 || len(words) <= size {
		return [][]string{words}
	}
	if stride <= 0 || stride > size {
		stride = size
	}
	var out [][]string
	for start := 0; start < len(words); start += stride {
		end := min(start+size, len(words))
		out = append(out, words[start:end])
		if end == len(words) {
			break
		}
	}
	return out
}

// Window returns up to n words either side of the word at index i.
func Window(words []string, i, n int) []string {
	if i < 0 || i >= len(words) {
		return nil
	}
	start := max(0, i-n)
	end := min(len(words), i+n+1)
	return words[start:end]
}

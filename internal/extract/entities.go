package extract

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/ppiankov/draftcheck/internal/prose"
)

// MentionExtractor finds organization-like names in free text.
type MentionExtractor interface {
	Extract(text string) []string
}

// MentionQualifier is implemented by extractors whose weaker mentions need
// corroboration from the source before they count as organizations.
type MentionQualifier interface {
	Qualifies(mention, source string) bool
}

// KnownOrganizations are single-word names accepted as organizations even
// without a second capitalized word or a legal suffix.
var KnownOrganizations = []string{
	"Spotify", "Netflix", "Uber", "Airbnb", "Adobe", "Apple", "Google",
	"Microsoft", "Amazon", "Facebook", "Meta", "Twitter", "LinkedIn", "Slack",
	"Dropbox", "GitHub", "GitLab", "Atlassian", "Salesforce", "Oracle", "IBM",
	"Red Hat", "Intel", "Nvidia", "Tesla", "Intuit", "PayPal", "eBay", "Etsy",
	"Lyft", "DoorDash", "Stripe", "Square", "Shopify",
}

var legalSuffixes = map[string]bool{
	"inc": true, "inc.": true, "llc": true, "ltd": true, "ltd.": true,
	"corp": true, "corp.": true, "corporation": true, "gmbh": true,
	"plc": true, "ag": true, "labs": true, "technologies": true,
}

// leadingFillers are capitalized words that start sentences or titles but
// never start an organization name.
var leadingFillers = map[string]bool{
	"the": true, "our": true, "we": true, "in": true, "at": true, "this": true,
	"that": true, "these": true, "those": true, "a": true, "an": true, "as": true,
	"after": true, "before": true, "when": true, "with": true, "for": true,
	"by": true, "on": true, "today": true, "it": true, "its": true, "their": true,
	"they": true, "and": true, "but": true, "so": true, "then": true, "each": true,
	"every": true, "over": true, "using": true, "while": true, "during": true,
	"if": true, "since": true, "key": true, "phase": true, "step": true,
}

// DefaultIgnoredMentions are names that appear in nearly every cloud-native
// case study and never identify its subject.
var DefaultIgnoredMentions = []string{
	"Cloud Native Computing Foundation", "CNCF", "KubeCon", "CloudNativeCon",
	"KubeCon CloudNativeCon", "Linux Foundation", "Open Source",
	"Amazon Web Services", "AWS", "Google Cloud", "Google Cloud Platform",
	"Microsoft Azure", "Azure", "GitHub Actions", "Site Reliability Engineering",
}

// OrganizationExtractor flags capitalized multi-word runs, names carrying
// a legal suffix and members of KnownOrganizations.
type OrganizationExtractor struct {
	known   map[string]string
	ignored map[string]bool
	refs    *ReferenceExtractor
}

// NewOrganizationExtractor creates an extractor that skips the default
// ignore list plus extraIgnored.
func NewOrganizationExtractor(extraIgnored []string) *OrganizationExtractor {
	e := &OrganizationExtractor{
		known:   make(map[string]string, len(KnownOrganizations)),
		ignored: make(map[string]bool),
		refs:    NewReferenceExtractor(),
	}
	for _, k := range KnownOrganizations {
		e.known[strings.ToLower(k)] = k
	}
	for _, name := range append(append([]string{}, DefaultIgnoredMentions...), extraIgnored...) {
		e.ignored[strings.ToLower(strings.TrimSpace(name))] = true
	}
	return e
}

type word struct {
	text string
	cap  bool
	stop bool // punctuation after the word ends a run
}

// Extract returns distinct organization-like mentions in order.
func (e *OrganizationExtractor) Extract(text string) []string {
	var mentions []string
	seen := make(map[string]bool)
	add := func(name string) {
		key := strings.ToLower(name)
		if name == "" || seen[key] || e.ignored[key] || e.refs.MentionsReference(name) {
			return
		}
		seen[key] = true
		mentions = append(mentions, name)
	}

	for _, sentence := range prose.Sentences(text) {
		words := splitWords(sentence)
		var run []string
		flush := func() {
			for _, name := range e.fromRun(run) {
				add(name)
			}
			run = run[:0]
		}
		for _, w := range words {
			if w.cap {
				run = append(run, w.text)
			} else {
				flush()
			}
			if w.stop {
				flush()
			}
		}
		flush()
	}
	return mentions
}

// fromRun turns a run of capitalized words into zero or more mentions.
func (e *OrganizationExtractor) fromRun(run []string) []string {
	for len(run) > 0 && leadingFillers[strings.ToLower(run[0])] {
		run = run[1:]
	}
	if len(run) == 0 {
		return nil
	}
	if len(run) >= 2 {
		if name, ok := e.known[strings.ToLower(strings.Join(run, " "))]; ok {
			return []string{name}
		}
		return []string{strings.Join(run, " ")}
	}
	only := run[0]
	if name, ok := e.known[strings.ToLower(only)]; ok {
		return []string{name}
	}
	return nil
}

// Qualifies reports whether mention is organization-shaped on its own, or
// is a plain title-case run that source also capitalizes. "Developer
// Experience" only qualifies when the transcript writes it that way.
func (e *OrganizationExtractor) Qualifies(mention, source string) bool {
	if strings.TrimSpace(mention) == "" {
		return false
	}
	if e.Distinctive(mention) {
		return true
	}
	return mentionPattern(mention, false).MatchString(source)
}

// Distinctive reports whether mention carries a legal suffix, is a single
// known organization or contains one.
func (e *OrganizationExtractor) Distinctive(mention string) bool {
	fields := strings.Fields(mention)
	if len(fields) == 0 {
		return false
	}
	if _, ok := e.known[strings.ToLower(mention)]; ok {
		return true
	}
	if legalSuffixes[strings.ToLower(fields[len(fields)-1])] {
		return true
	}
	for _, f := range fields {
		if _, ok := e.known[strings.ToLower(f)]; ok {
			return true
		}
	}
	return false
}

// CountMentions counts whole-word, case-insensitive occurrences of name.
func CountMentions(text, name string) int {
	if strings.TrimSpace(name) == "" {
		return 0
	}
	return len(mentionPattern(name, true).FindAllStringIndex(text, -1))
}

func mentionPattern(name string, fold bool) *regexp.Regexp {
	name = strings.TrimSpace(name)
	expr := regexp.QuoteMeta(name)
	r := []rune(name)
	if isWordRune(r[0]) {
		expr = `\b` + expr
	}
	if isWordRune(r[len(r)-1]) {
		expr += `\b`
	}
	if fold {
		expr = "(?i)" + expr
	}
	return regexp.MustCompile(expr)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// splitWords tokenizes a sentence, stripping possessives and surrounding
// punctuation while remembering where a run must stop.
func splitWords(sentence string) []word {
	fields := strings.Fields(sentence)
	words := make([]word, 0, len(fields))
	for _, f := range fields {
		trimmed := strings.TrimLeft(f, "\"'([{*_`#")
		stop := strings.TrimRight(trimmed, ",;:!?.)]}\"'*_`") != trimmed
		trimmed = strings.TrimRight(trimmed, ",;:!?)]}\"'*_`")
		// Keep a trailing dot only on legal suffixes like "Inc.".
		if strings.HasSuffix(trimmed, ".") && !legalSuffixes[strings.ToLower(trimmed)] {
			trimmed = strings.TrimRight(trimmed, ".")
		}
		trimmed = strings.TrimSuffix(strings.TrimSuffix(trimmed, "'s"), "’s")
		if trimmed == "" {
			continue
		}
		r := []rune(trimmed)
		capitalized := unicode.IsUpper(r[0]) || (len(r) > 1 && unicode.IsLower(r[0]) && unicode.IsUpper(r[1]))
		if legalSuffixes[strings.ToLower(trimmed)] && len(words) > 0 && words[len(words)-1].cap {
			capitalized = true
		}
		words = append(words, word{text: trimmed, cap: capitalized, stop: stop})
	}
	return words
}

// NormalizeCompanyName strips legal suffixes and punctuation so that
// "Intuit Inc." and "intuit" compare equal.
func NormalizeCompanyName(name string) string {
	fields := strings.Fields(strings.ToLower(name))
	for len(fields) > 0 && legalSuffixes[strings.Trim(fields[len(fields)-1], ",")] {
		fields = fields[:len(fields)-1]
	}
	return strings.Trim(strings.Join(fields, " "), " ,.")
}

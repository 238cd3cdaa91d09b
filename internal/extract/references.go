package extract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/ppiankov/draftcheck/internal/model"
	"github.com/ppiankov/draftcheck/internal/prose"
)

// project is a recognized ecosystem project and the spellings it goes by.
// Exact projects share their name with an English word and only match
// with their canonical capitalization.
type project struct {
	name    string
	aliases []string
	exact   bool
}

var knownProjects = []project{
	{"Kubernetes", []string{"k8s"}, false},
	{"Prometheus", nil, false},
	{"Envoy", nil, true},
	{"CoreDNS", nil, false},
	{"containerd", nil, false},
	{"Fluentd", []string{"Fluent Bit"}, false},
	{"Jaeger", nil, false},
	{"Vitess", nil, false},
	{"TUF", nil, false},
	{"Notary", nil, true},
	{"Helm", nil, true},
	{"Argo", []string{"ArgoCD"}, false},
	{"Cilium", nil, false},
	{"Flux", []string{"FluxCD"}, true},
	{"Linkerd", nil, false},
	{"etcd", nil, false},
	{"CRI-O", nil, false},
	{"Harbor", nil, true},
	{"Falco", nil, false},
	{"Dragonfly", nil, true},
	{"Rook", nil, true},
	{"TiKV", nil, false},
	{"gRPC", nil, false},
	{"CNI", nil, false},
	{"Istio", nil, false},
	{"Knative", nil, false},
	{"OpenTelemetry", []string{"OTel"}, false},
	{"Open Policy Agent", []string{"OPA", "Gatekeeper"}, false},
	{"Thanos", nil, false},
	{"Cortex", nil, true},
	{"Crossplane", nil, false},
	{"KEDA", nil, false},
	{"Backstage", nil, true},
	{"Kyverno", nil, false},
	{"cert-manager", nil, false},
	{"Longhorn", nil, false},
	{"Contour", nil, true},
	{"Emissary-ingress", nil, false},
	{"Buildpacks", nil, false},
	{"Strimzi", nil, false},
}

type projectMatcher struct {
	name string
	re   *regexp.Regexp
}

// ReferenceExtractor recognizes ecosystem projects named in a document.
type ReferenceExtractor struct {
	matchers []projectMatcher
}

// NewReferenceExtractor creates an extractor over the built-in project list.
func NewReferenceExtractor() *ReferenceExtractor {
	matchers := make([]projectMatcher, 0, len(knownProjects))
	for _, p := range knownProjects {
		names := append([]string{p.name}, p.aliases...)
		quoted := make([]string, len(names))
		for i, n := range names {
			quoted[i] = regexp.QuoteMeta(n)
		}
		flags := "(?i)"
		if p.exact {
			flags = ""
		}
		matchers = append(matchers, projectMatcher{
			name: p.name,
			re:   regexp.MustCompile(flags + `(?:^|[^\w-])(?:` + strings.Join(quoted, "|") + `)(?:$|[^\w-])`),
		})
	}
	return &ReferenceExtractor{matchers: matchers}
}

var explanationCue = regexp.MustCompile(`(?i)\b(?:for|to|handles?|provides?|manages?|used|uses|enables?|allows?|runs?|powers?|because|via)\b`)

const explanationMinWords = 8

// Extract returns the projects mentioned in doc in order of first
// appearance. A reference counts as explained when some sentence naming it
// is long enough to say what it does and contains a cue like "for" or "manages".
func (e *ReferenceExtractor) Extract(doc *model.CandidateDocument) []model.DomainReference {
	if doc == nil {
		return nil
	}

	type found struct {
		ref   model.DomainReference
		order int
	}
	byName := make(map[string]*found)
	order := 0

	for _, section := range doc.Sections {
		for _, sentence := range prose.Sentences(section.Body) {
			for _, m := range e.matchers {
				hits := len(m.re.FindAllStringIndex(sentence, -1))
				if hits == 0 {
					continue
				}
				f, ok := byName[m.name]
				if !ok {
					f = &found{ref: model.DomainReference{Name: m.name}, order: order}
					order++
					byName[m.name] = f
				}
				f.ref.Mentions += hits
				if !containsString(f.ref.Sections, section.Name) {
					f.ref.Sections = append(f.ref.Sections, section.Name)
				}
				if model.WordCount(sentence) >= explanationMinWords && explanationCue.MatchString(sentence) {
					f.ref.Explained = true
				}
			}
		}
	}

	list := make([]*found, 0, len(byName))
	for _, f := range byName {
		list = append(list, f)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].order < list[j].order })

	refs := make([]model.DomainReference, len(list))
	for i, f := range list {
		refs[i] = f.ref
	}
	return refs
}

// IsReference reports whether name is a known project or alias.
func (e *ReferenceExtractor) IsReference(name string) bool {
	name = strings.TrimSpace(name)
	for _, m := range e.matchers {
		loc := m.re.FindStringIndex(name)
		if loc != nil && strings.EqualFold(strings.Trim(name[loc[0]:loc[1]], " "), name) {
			return true
		}
	}
	return false
}

// MentionsReference reports whether any known project appears in s.
func (e *ReferenceExtractor) MentionsReference(s string) bool {
	for _, m := range e.matchers {
		if m.re.MatchString(s) {
			return true
		}
	}
	return false
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

package validate

import (
	"strings"

	"github.com/ppiankov/draftcheck/internal/extract"
	"github.com/ppiankov/draftcheck/internal/match"
	"github.com/ppiankov/draftcheck/internal/model"
)

var placeholderNames = map[string]bool{
	"company": true, "organization": true, "organisation": true, "tech": true,
	"unknown": true, "tbd": true, "n/a": true, "none": true, "placeholder": true,
	"example": true, "the company": true,
}

// EntityConsistency verifies the document describes the declared subject.
type EntityConsistency struct {
	extractor extract.MentionExtractor
}

// NewEntityConsistency creates the checkpoint. A nil extractor selects the
// organization heuristic configured by each profile's ignore list.
func NewEntityConsistency(extractor extract.MentionExtractor) *EntityConsistency {
	return &EntityConsistency{extractor: extractor}
}

// Name returns the checkpoint name.
func (c *EntityConsistency) Name() string { return NameEntity }

// IsPlaceholder reports whether name is a generic stand-in rather than a
// real organization.
func IsPlaceholder(name string) bool {
	trimmed := strings.TrimSpace(name)
	if len([]rune(trimmed)) < 2 {
		return true
	}
	return placeholderNames[strings.ToLower(trimmed)]
}

// transcriptText is the original-case transcript used to corroborate
// title-case mentions.
func transcriptText(t *model.SourceTranscript) string {
	if t.Text != "" || len(t.Segments) == 0 {
		return t.Text
	}
	parts := make([]string, 0, len(t.Segments))
	for _, seg := range t.Segments {
		parts = append(parts, seg.Text)
	}
	return strings.Join(parts, " ")
}

func documentText(doc *model.CandidateDocument) string {
	parts := make([]string, 0, len(doc.Sections))
	for _, s := range doc.Sections {
		parts = append(parts, s.Body)
	}
	return strings.Join(parts, "\n")
}

// Check runs the placeholder deny-list, the confidence gate and finally the
// cross-mention scan.
func (c *EntityConsistency) Check(in *Input) (model.Verdict, error) {
	v := model.NewVerdict(c.Name())
	if err := requireProfile(c.Name(), in); err != nil {
		return v, err
	}

	if IsPlaceholder(in.Subject) {
		v.Add(model.SeverityCritical, "generic placeholder name %q declared as subject", in.Subject)
		return v, nil
	}

	if err := model.CheckConfidence(c.Name(), in.Confidence); err != nil {
		return v, err
	}
	params := in.Profile.Entity
	if in.Confidence < params.LowConfidence {
		v.Add(model.SeverityCritical, "subject identification confidence %.2f below minimum %.2f", in.Confidence, params.LowConfidence)
		return v, nil
	}
	if in.Confidence < params.HighConfidence {
		v.Add(model.SeverityWarning, "subject identification confidence %.2f below %.2f; manual review recommended", in.Confidence, params.HighConfidence)
	}

	if err := requireTranscript(c.Name(), in); err != nil {
		return v, err
	}
	if err := requireDocument(c.Name(), in); err != nil {
		return v, err
	}

	extractor := c.extractor
	if extractor == nil {
		extractor = extract.NewOrganizationExtractor(params.IgnoreMentions)
	}
	qualifier, _ := extractor.(extract.MentionQualifier)
	ix := corpusFor(in)
	source := transcriptText(in.Transcript)
	subject := extract.NormalizeCompanyName(in.Subject)
	docText := documentText(in.Document)
	subjectMentions := extract.CountMentions(docText, subject)
	subjectSeen := false
	reported := make(map[string]bool)

	for _, section := range in.Document.Sections {
		if strings.Contains(strings.ToLower(section.Body), subject) {
			subjectSeen = true
		}
		for _, mention := range extractor.Extract(section.Body) {
			key := strings.ToLower(mention)
			if reported[key] {
				continue
			}
			sim := match.Similarity(extract.NormalizeCompanyName(mention), subject)
			if sim >= params.SameEntityThreshold {
				subjectSeen = true
				continue
			}
			if qualifier != nil && !qualifier.Qualifies(mention, source) {
				continue
			}
			hit, sourced := ix.ContainsPhrase(mention, params.SourcedMentionThreshold)
			if !sourced {
				continue
			}
			reported[key] = true
			count := extract.CountMentions(docText, mention)
			if count > subjectMentions {
				v.Add(model.SeverityCritical,
					"document appears to describe a different subject than declared (%q, %d mentions): section %q mentions %q %d times, which the transcript also names (similarity to subject %.2f, transcript match %.2f)",
					in.Subject, subjectMentions, section.Name, mention, count, sim, hit.Score)
				continue
			}
			v.Add(model.SeverityWarning,
				"section %q also names %q (%d mentions vs %d for %q); verify it is a partner or competitor, not the subject",
				section.Name, mention, count, subjectMentions, in.Subject)
		}
	}

	if !subjectSeen && v.Severity < model.SeverityCritical {
		v.Add(model.SeverityWarning, "declared subject %q is never mentioned in the document", in.Subject)
	}
	if v.Severity == model.SeverityPass {
		v.Note("subject %q consistent across %d sections", in.Subject, len(in.Document.Sections))
	}
	return v, nil
}

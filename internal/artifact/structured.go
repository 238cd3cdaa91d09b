package artifact

import (
	"fmt"

	"github.com/ppiankov/draftcheck/internal/model"
	"gopkg.in/yaml.v3"
)

// StructuredLoader reads JSON and YAML documents. Sections may be a
// mapping of name to body, in document order, or a list of {name, body}.
type StructuredLoader struct{}

// NewStructuredLoader creates the loader.
func NewStructuredLoader() *StructuredLoader {
	return &StructuredLoader{}
}

// Name returns the loader name
func (l *StructuredLoader) Name() string { return "structured" }

// CanHandle accepts .json, .yaml and .yml.
func (l *StructuredLoader) CanHandle(path string) bool {
	return hasExt(path, ".json", ".yaml", ".yml")
}

type rawDocument struct {
	Subject  string                 `yaml:"subject"`
	Profile  string                 `yaml:"profile"`
	Sections yaml.Node              `yaml:"sections"`
	Metrics  []model.MetricEvidence `yaml:"metrics"`
	Markdown string                 `yaml:"markdown"`
}

// Load decodes data. JSON is parsed by the YAML decoder, which keeps
// mapping order.
func (l *StructuredLoader) Load(data []byte) (*model.CandidateDocument, error) {
	var raw rawDocument
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	sections, err := decodeSections(&raw.Sections)
	if err != nil {
		return nil, err
	}

	return &model.CandidateDocument{
		Subject:  raw.Subject,
		Profile:  raw.Profile,
		Sections: sections,
		Metrics:  raw.Metrics,
		Markdown: raw.Markdown,
	}, nil
}

func decodeSections(n *yaml.Node) ([]model.Section, error) {
	switch n.Kind {
	case 0:
		// absent; the checkpoints report it as a contract violation
		return nil, nil
	case yaml.MappingNode:
		sections := make([]model.Section, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, val := n.Content[i], n.Content[i+1]
			if val.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("section %q: body must be text (line %d)", key.Value, val.Line)
			}
			sections = append(sections, model.Section{Name: key.Value, Body: val.Value})
		}
		return sections, nil
	case yaml.SequenceNode:
		var sections []model.Section
		if err := n.Decode(&sections); err != nil {
			return nil, fmt.Errorf("sections: %w", err)
		}
		return sections, nil
	default:
		return nil, fmt.Errorf("sections must be a mapping or a list (line %d)", n.Line)
	}
}

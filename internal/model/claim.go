package model

// Unit classifies the kind of quantity a claim asserts.
type Unit string

const (
	UnitPercentage Unit = "percentage"
	UnitMultiplier Unit = "multiplier"
	UnitScale      Unit = "scale"
	UnitDuration   Unit = "duration"
	UnitCurrency   Unit = "currency"
	UnitCount      Unit = "count"
)

// QuantitativeClaim is a numeric assertion found in a candidate document.
// Claims are derived per run and never persisted.
type QuantitativeClaim struct {
	Value    string `json:"value" validate:"nonblank"`
	Unit     Unit   `json:"unit"`
	Context  string `json:"context,omitempty"`
	Sentence string `json:"sentence,omitempty"`
	Section  string `json:"section,omitempty"`
	Quote    string `json:"quote,omitempty"` // Supporting transcript quote attached by the author
}

// EntityMention is an organization-like name found in a section.
type EntityMention struct {
	Name    string `json:"name"`
	Section string `json:"section"`
}

// DomainReference is a recognized ecosystem project mentioned by a document.
type DomainReference struct {
	Name      string   `json:"name"`
	Mentions  int      `json:"mentions"`
	Explained bool     `json:"explained"`
	Sections  []string `json:"sections,omitempty"`
}

package profile

import "github.com/ppiankov/draftcheck/internal/model"

// Built-in profile ids.
const (
	ShortForm = "short-form"
	DeepDive  = "deep-dive"
)

// Depth sub-score names.
const (
	DomainReferenceDepth   = "domain_reference_depth"
	Specificity            = "specificity"
	ImplementationDetail   = "implementation_detail"
	ClaimQuality           = "claim_quality"
	StructuralCompleteness = "structural_completeness"
)

// SubScores lists the depth dimensions in reporting order.
var SubScores = []string{
	DomainReferenceDepth,
	Specificity,
	ImplementationDetail,
	ClaimQuality,
	StructuralCompleteness,
}

func shortForm() *model.ContentProfile {
	return &model.ContentProfile{
		ID:          ShortForm,
		Description: "Business case study: five sections, 500-2000 words",
		TranscriptMinimum: model.TranscriptLimits{
			Chars: 1000, Segments: 50, Words: 100,
		},
		TranscriptRecommended: model.TranscriptLimits{
			Chars: 5000, Segments: 200, Words: 800,
		},
		Sections: []model.SectionRule{
			{Name: "Overview", Target: model.Range{Min: 50, Max: 300}, Floor: 20},
			{Name: "Challenge", Target: model.Range{Min: 100, Max: 400}, Floor: 40},
			{Name: "Solution", Target: model.Range{Min: 150, Max: 600}, Floor: 60},
			{Name: "Impact", Target: model.Range{Min: 100, Max: 400}, Floor: 40},
			{Name: "Conclusion", Target: model.Range{Min: 50, Max: 250}, Floor: 20},
		},
		TotalWords: model.Range{Min: 500, Max: 2000},
		Fabrication: model.FabricationParams{
			SimilarityThreshold: 0.75,
			RequireQuotes:       false,
			AdjacencyWindow:     8,
			ContextWords:        3,
		},
		Entity: model.EntityParams{
			LowConfidence:           0.5,
			HighConfidence:          0.7,
			SameEntityThreshold:     0.7,
			SourcedMentionThreshold: 0.85,
		},
		Depth: model.DepthParams{
			Weights: map[string]float64{
				DomainReferenceDepth:   0.20,
				Specificity:            0.15,
				ImplementationDetail:   0.15,
				ClaimQuality:           0.25,
				StructuralCompleteness: 0.25,
			},
			Pass:                  0.75,
			Warn:                  0.60,
			MinDomainReferences:   2,
			DomainReferenceFloor:  1,
			ArchitecturalSections: []string{"Challenge", "Solution", "Impact"},
			ProceduralSections:    []string{"Solution"},
			ProceduralWords:       150,
		},
		Format: model.FormatParams{
			ForbiddenImagePrefixes: []string{"case-studies/", "/"},
			ScreenshotDir:          "images/",
		},
	}
}

func deepDive() *model.ContentProfile {
	rule := func(name string, min, max int) model.SectionRule {
		return model.SectionRule{Name: name, Target: model.Range{Min: min, Max: max}, Floor: min / 2}
	}
	return &model.ContentProfile{
		ID:          DeepDive,
		Description: "Reference architecture: nine sections, 2500-4500 words, quoted metrics",
		TranscriptMinimum: model.TranscriptLimits{
			Chars: 1000, Segments: 50, Words: 100,
		},
		TranscriptRecommended: model.TranscriptLimits{
			Chars: 15000, Segments: 400, Words: 2500,
		},
		Sections: []model.SectionRule{
			rule("executive_summary", 200, 300),
			rule("background", 200, 800),
			rule("technical_challenge", 200, 800),
			rule("architecture_overview", 300, 800),
			rule("cncf_projects", 200, 800),
			rule("implementation_details", 300, 800),
			rule("results_and_impact", 200, 800),
			rule("lessons_learned", 200, 800),
			rule("conclusion", 100, 400),
		},
		TotalWords:         model.Range{Min: 2500, Max: 4500},
		TotalWordsAbsolute: model.Range{Min: 2000, Max: 5000},
		Fabrication: model.FabricationParams{
			SimilarityThreshold: 0.75,
			RequireQuotes:       true,
			AdjacencyWindow:     10,
			ContextWords:        4,
			MinQuoteLength:      10,
		},
		Entity: model.EntityParams{
			LowConfidence:           0.5,
			HighConfidence:          0.7,
			SameEntityThreshold:     0.7,
			SourcedMentionThreshold: 0.85,
		},
		Depth: model.DepthParams{
			Weights: map[string]float64{
				DomainReferenceDepth:   0.25,
				Specificity:            0.20,
				ImplementationDetail:   0.20,
				ClaimQuality:           0.20,
				StructuralCompleteness: 0.15,
			},
			Pass:                  0.70,
			Warn:                  0.60,
			MinDomainReferences:   5,
			DomainReferenceFloor:  4,
			ArchitecturalSections: []string{"architecture_overview", "cncf_projects", "implementation_details", "results_and_impact"},
			ProceduralSections:    []string{"implementation_details"},
			ProceduralWords:       500,
		},
		Format: model.FormatParams{
			ForbiddenImagePrefixes: []string{"reference-architectures/", "/"},
			ScreenshotDir:          "images/",
		},
	}
}

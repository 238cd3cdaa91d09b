package score

import (
	"fmt"
	"math"
	"sort"

	"github.com/ppiankov/draftcheck/internal/model"
)

const (
	// weightTolerance is how far the weight total may drift from 1.0.
	weightTolerance = 1e-6
	// boundaryEpsilon absorbs summation error at threshold boundaries.
	boundaryEpsilon = 1e-9
)

// Result is the outcome of a weighted scoring pass with its transparent
// per-dimension breakdown.
type Result struct {
	Overall   float64
	Severity  model.Severity
	Breakdown []model.Signal
}

// Weighted combines sub-scores in [0,1] into one overall score and maps it
// onto a severity: overall >= pass is Pass, warn <= overall < pass is
// Warning, anything lower is Critical.
//
// Malformed weights or thresholds, and sub-scores outside [0,1], are
// configuration errors. Sub-scores are never clamped here.
func Weighted(subScores, weights map[string]float64, pass, warn float64) (Result, error) {
	if err := CheckWeights(weights, pass, warn); err != nil {
		return Result{}, err
	}

	for name := range subScores {
		if _, ok := weights[name]; !ok {
			return Result{}, model.NewConfigurationError("weights", "no weight for sub-score %q", name)
		}
	}

	names := make([]string, 0, len(weights))
	for name := range weights {
		names = append(names, name)
	}
	sort.Strings(names)

	overall := 0.0
	breakdown := make([]model.Signal, 0, len(names))
	for _, name := range names {
		value, ok := subScores[name]
		if !ok {
			return Result{}, model.NewConfigurationError("sub_scores", "missing sub-score %q", name)
		}
		if math.IsNaN(value) || value < 0 || value > 1 {
			return Result{}, model.NewConfigurationError("sub_scores", "%s = %v outside [0,1]", name, value)
		}
		w := weights[name]
		overall += value * w
		breakdown = append(breakdown, model.Signal{
			Name:        name,
			Value:       value,
			Weight:      w,
			Description: fmt.Sprintf("%s: %.2f (weight %.2f)", name, value, w),
			Data: map[string]interface{}{
				"contribution": value * w,
			},
		})
	}

	// Floating point sums of in-range inputs can overshoot by an ulp.
	overall = math.Min(1, math.Max(0, overall))

	return Result{
		Overall:   overall,
		Severity:  Classify(overall, pass, warn),
		Breakdown: breakdown,
	}, nil
}

// Classify maps an overall score onto a severity. Both boundaries are
// inclusive on the better side.
func Classify(overall, pass, warn float64) model.Severity {
	switch {
	case overall >= pass-boundaryEpsilon:
		return model.SeverityPass
	case overall >= warn-boundaryEpsilon:
		return model.SeverityWarning
	default:
		return model.SeverityCritical
	}
}

// CheckWeights validates a weight table and its thresholds.
func CheckWeights(weights map[string]float64, pass, warn float64) error {
	if len(weights) == 0 {
		return model.NewConfigurationError("weights", "no weights configured")
	}
	total := 0.0
	for name, w := range weights {
		if math.IsNaN(w) || w < 0 {
			return model.NewConfigurationError("weights", "%s has invalid weight %v", name, w)
		}
		total += w
	}
	if math.Abs(total-1) > weightTolerance {
		return model.NewConfigurationError("weights", "weights sum to %.6f, want 1.0", total)
	}
	if math.IsNaN(pass) || math.IsNaN(warn) || warn < 0 || pass > 1 || warn > pass {
		return model.NewConfigurationError("thresholds", "want 0 <= warn (%v) <= pass (%v) <= 1", warn, pass)
	}
	return nil
}

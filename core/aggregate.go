package core

import (
	"fmt"
	"math"
	"sort"

	"github.com/willshacklett/godscore/schema"
)

// ComputeGV combines a feature set into the aggregate penalty scalar.
//
// GV is the weighted average of the penalty features present in the
// set, so it stays in [0,1] no matter how many features are enabled.
// Revert detection then applies a bounded recovery credit; GV never
// drops below zero.
//
// Edge case: if every effective weight resolves to zero the average is
// undefined and GV is defined to be 0 (no signal means no penalty). The degenerate configuration is reported in the
// explanation rather than raising an error.
func ComputeGV(features schema.FeatureSet, weights schema.WeightConfig) (*schema.GVResult, error) {
	if features == nil {
		return nil, fmt.Errorf("%w: feature set is required", schema.ErrInvalidInput)
	}
	if err := validateWeights(weights); err != nil {
		return nil, err
	}

	var weightedSum, totalWeight float64
	contributions := make([]schema.Contribution, 0, len(schema.PenaltyFeatures))

	for _, key := range schema.PenaltyFeatures {
		value, ok := features[key]
		if !ok {
			continue
		}
		value = schema.Clamp01(value)
		w := weights.Resolve(key)
		weightedSum += w * value
		totalWeight += w
		contributions = append(contributions, schema.Contribution{
			Feature: key,
			Value:   value,
			Weight:  w,
		})
	}

	var gv float64
	var explanation []string

	if totalWeight > 0 {
		gv = schema.Clamp01(weightedSum / totalWeight)
		for i := range contributions {
			contributions[i].Share = contributions[i].Weight * contributions[i].Value / totalWeight
		}
	} else {
		explanation = append(explanation,
			"All weights resolve to zero; GV defined as 0.00 (no signal, no penalty).")
	}

	// Deterministic breakdown ordering for the explanation trail.
	sort.Slice(contributions, func(i, j int) bool {
		return contributions[i].Feature < contributions[j].Feature
	})

	for _, c := range contributions {
		explanation = append(explanation, fmt.Sprintf(
			"+%.2f from %s (value %.2f, weight %.2f)", c.Share, c.Feature, c.Value, c.Weight))
	}

	// Revert credit, bounded so GV cannot go below zero.
	if revert := schema.Clamp01(features[schema.FeatureRevert]); revert > 0 {
		credit := schema.RevertCredit * revert
		gv = schema.Clamp01(gv - credit)
		explanation = append(explanation, fmt.Sprintf("-%.2f revert recovery credit", credit))
	}

	score := schema.Clamp01(1.0 - gv)

	explanation = append([]string{fmt.Sprintf("GV total = %.2f", gv)}, explanation...)
	explanation = append(explanation, fmt.Sprintf("GodScore = %.2f", score))

	return &schema.GVResult{
		GV:            gv,
		Score:         score,
		Contributions: contributions,
		Explanation:   explanation,
	}, nil
}

// validateWeights enforces the weight invariant: finite, non-negative.
func validateWeights(weights schema.WeightConfig) error {
	for key, w := range weights {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return fmt.Errorf("%w: weight for %s is not finite", schema.ErrInvalidInput, key)
		}
		if w < 0 {
			return fmt.Errorf("%w: weight for %s is negative (%.2f)", schema.ErrInvalidInput, key, w)
		}
	}
	return nil
}

// DegenerateWeights reports whether a weight config zeroes out every
// penalty feature, which triggers the documented GV = 0 fallback.
func DegenerateWeights(weights schema.WeightConfig) bool {
	var total float64
	for _, key := range schema.PenaltyFeatures {
		total += weights.Resolve(key)
	}
	return total <= 0
}

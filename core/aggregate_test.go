package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/willshacklett/godscore/schema"
)

func featureSet(diff, risky, highRisk, missingTests, wip, revert float64) schema.FeatureSet {
	return schema.FeatureSet{
		schema.FeatureDiffRisk:     diff,
		schema.FeatureRiskyPaths:   risky,
		schema.FeatureHighRiskArea: highRisk,
		schema.FeatureMissingTests: missingTests,
		schema.FeatureWIPMarker:    wip,
		schema.FeatureRevert:       revert,
	}
}

// TestComputeGV verifies the weighted average and the revert credit.
func TestComputeGV(t *testing.T) {
	tests := []struct {
		name     string
		features schema.FeatureSet
		weights  schema.WeightConfig
		wantGV   float64
	}{
		{
			name:     "all zero features",
			features: featureSet(0, 0, 0, 0, 0, 0),
			weights:  schema.DefaultWeights(),
			wantGV:   0.0,
		},
		{
			name:     "all max penalties",
			features: featureSet(1, 1, 1, 1, 1, 0),
			weights:  schema.DefaultWeights(),
			wantGV:   1.0,
		},
		{
			name:     "uniform weights average",
			features: featureSet(0.5, 0, 0, 1, 0, 0),
			weights:  schema.DefaultWeights(),
			wantGV:   0.3, // (0.5 + 1.0) / 5
		},
		{
			name:     "revert credit lowers GV",
			features: featureSet(0.5, 0, 0, 1, 0, 1),
			weights:  schema.DefaultWeights(),
			wantGV:   0.2, // 0.3 - 0.10 credit
		},
		{
			name:     "revert credit clamps at zero",
			features: featureSet(0.05, 0, 0, 0, 0, 1),
			weights:  schema.DefaultWeights(),
			wantGV:   0.0, // 0.01 - 0.10 clamped
		},
		{
			name:     "custom weights shift the average",
			features: featureSet(0, 0, 0, 1, 0, 0),
			weights: schema.WeightConfig{
				schema.FeatureDiffRisk:     1,
				schema.FeatureRiskyPaths:   0,
				schema.FeatureHighRiskArea: 0,
				schema.FeatureMissingTests: 3,
				schema.FeatureWIPMarker:    0,
			},
			wantGV: 0.75, // 3*1 / (1+3)
		},
		{
			name:     "all weights zero falls back to zero GV",
			features: featureSet(1, 1, 1, 1, 1, 0),
			weights: schema.WeightConfig{
				schema.FeatureDiffRisk:     0,
				schema.FeatureRiskyPaths:   0,
				schema.FeatureHighRiskArea: 0,
				schema.FeatureMissingTests: 0,
				schema.FeatureWIPMarker:    0,
			},
			wantGV: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ComputeGV(tt.features, tt.weights)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantGV, result.GV, 1e-9)
			assert.InDelta(t, 1.0, result.GV+result.Score, 1e-9, "Score + GV must equal 1")
			assert.GreaterOrEqual(t, result.GV, 0.0)
			assert.LessOrEqual(t, result.GV, 1.0)
			assert.NotEmpty(t, result.Explanation)
		})
	}
}

// TestComputeGVMonotonic checks that raising a feature value never
// lowers GV (the revert credit is excluded by construction).
func TestComputeGVMonotonic(t *testing.T) {
	weights := schema.DefaultWeights()
	base := featureSet(0.3, 0, 1, 0, 0, 0)

	baseResult, err := ComputeGV(base, weights)
	require.NoError(t, err)

	for _, key := range schema.PenaltyFeatures {
		bumped := base.Clone()
		bumped[key] = math.Min(1.0, bumped[key]+0.5)
		bumpedResult, err := ComputeGV(bumped, weights)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, bumpedResult.GV, baseResult.GV, "feature %s", key)
	}
}

// TestComputeGVContributions checks the deterministic breakdown.
func TestComputeGVContributions(t *testing.T) {
	result, err := ComputeGV(featureSet(0.5, 1, 0, 0, 0, 0), schema.DefaultWeights())
	require.NoError(t, err)
	require.Len(t, result.Contributions, len(schema.PenaltyFeatures))

	var shareSum float64
	for i, c := range result.Contributions {
		if i > 0 {
			assert.LessOrEqual(t, result.Contributions[i-1].Feature, c.Feature, "contributions must be sorted")
		}
		shareSum += c.Share
	}
	assert.InDelta(t, result.GV, shareSum, 1e-9, "shares must sum to GV before the credit")
}

// TestComputeGVInvalidWeights verifies the weight invariant.
func TestComputeGVInvalidWeights(t *testing.T) {
	features := featureSet(0.5, 0, 0, 0, 0, 0)

	_, err := ComputeGV(features, schema.WeightConfig{schema.FeatureDiffRisk: -1})
	assert.ErrorIs(t, err, schema.ErrInvalidInput)

	_, err = ComputeGV(features, schema.WeightConfig{schema.FeatureDiffRisk: math.NaN()})
	assert.ErrorIs(t, err, schema.ErrInvalidInput)

	_, err = ComputeGV(features, schema.WeightConfig{schema.FeatureDiffRisk: math.Inf(1)})
	assert.ErrorIs(t, err, schema.ErrInvalidInput)

	_, err = ComputeGV(nil, schema.DefaultWeights())
	assert.ErrorIs(t, err, schema.ErrInvalidInput)
}

// TestDegenerateWeights covers the zero-total detection helper.
func TestDegenerateWeights(t *testing.T) {
	assert.False(t, DegenerateWeights(schema.DefaultWeights()))
	assert.False(t, DegenerateWeights(nil)) // missing entries default to 1.0

	zeroed := schema.WeightConfig{}
	for _, key := range schema.PenaltyFeatures {
		zeroed[key] = 0
	}
	assert.True(t, DegenerateWeights(zeroed))
}

package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/willshacklett/godscore/schema"
)

// TestExtractFeatures covers the feature vectors for typical changes.
func TestExtractFeatures(t *testing.T) {
	cfg := schema.DefaultExtractorConfig()

	tests := []struct {
		name     string
		raw      schema.RawChange
		expected schema.FeatureSet
	}{
		{
			name: "small code change with tests",
			raw: schema.RawChange{
				AddedLines:    10,
				RemovedLines:  5,
				Files:         []string{"src/api/handler.go", "src/api/handler_test.go"},
				Message:       "fix handler edge case",
				TestsDetected: true,
			},
			expected: schema.FeatureSet{
				schema.FeatureDiffRisk:     0.05,
				schema.FeatureRiskyPaths:   1.0,
				schema.FeatureHighRiskArea: 0,
				schema.FeatureMissingTests: 0,
				schema.FeatureWIPMarker:    0,
				schema.FeatureRevert:       0,
			},
		},
		{
			name: "docs-only change is discounted and never risky",
			raw: schema.RawChange{
				AddedLines:   30,
				RemovedLines: 2,
				Files:        []string{"docs/guide.md", "README.md"},
				Message:      "update docs",
			},
			expected: schema.FeatureSet{
				schema.FeatureDiffRisk:     0.05 * schema.DocsOnlyDiscount,
				schema.FeatureRiskyPaths:   0,
				schema.FeatureHighRiskArea: 0,
				schema.FeatureMissingTests: 0,
				schema.FeatureWIPMarker:    0,
				schema.FeatureRevert:       0,
			},
		},
		{
			name: "auth change without tests",
			raw: schema.RawChange{
				AddedLines:   120,
				RemovedLines: 40,
				Files:        []string{"app/auth/login.go"},
				Message:      "rework login flow",
			},
			expected: schema.FeatureSet{
				schema.FeatureDiffRisk:     0.15,
				schema.FeatureRiskyPaths:   1.0,
				schema.FeatureHighRiskArea: 1.0,
				schema.FeatureMissingTests: 1.0,
				schema.FeatureWIPMarker:    0,
				schema.FeatureRevert:       0,
			},
		},
		{
			name: "wip marker in message",
			raw: schema.RawChange{
				AddedLines:    3,
				Files:         []string{"tools/gen.go"},
				Message:       "WIP: draft generator",
				TestsDetected: true,
			},
			expected: schema.FeatureSet{
				schema.FeatureDiffRisk:     0.05,
				schema.FeatureRiskyPaths:   0,
				schema.FeatureHighRiskArea: 0,
				schema.FeatureMissingTests: 0,
				schema.FeatureWIPMarker:    1.0,
				schema.FeatureRevert:       0,
			},
		},
		{
			name: "revert commit earns the credit flag",
			raw: schema.RawChange{
				AddedLines:    40,
				RemovedLines:  40,
				Files:         []string{"lib/cache.go"},
				Message:       `Revert "add cache warmup"`,
				TestsDetected: true,
			},
			expected: schema.FeatureSet{
				schema.FeatureDiffRisk:     0.15,
				schema.FeatureRiskyPaths:   1.0,
				schema.FeatureHighRiskArea: 0,
				schema.FeatureMissingTests: 0,
				schema.FeatureWIPMarker:    0,
				schema.FeatureRevert:       1.0,
			},
		},
		{
			name: "empty change set is lowest risk",
			raw:  schema.RawChange{Message: "chore: noop"},
			expected: schema.FeatureSet{
				schema.FeatureDiffRisk:     0,
				schema.FeatureRiskyPaths:   0,
				schema.FeatureHighRiskArea: 0,
				schema.FeatureMissingTests: 0,
				schema.FeatureWIPMarker:    0,
				schema.FeatureRevert:       0,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			features, notes, err := ExtractFeatures(&tt.raw, cfg)
			require.NoError(t, err)
			require.NotEmpty(t, notes)
			for key, want := range tt.expected {
				assert.InDelta(t, want, features[key], 1e-9, "feature %s", key)
			}
		})
	}
}

// TestExtractFeaturesBounds ensures every feature stays in [0,1].
func TestExtractFeaturesBounds(t *testing.T) {
	cfg := schema.DefaultExtractorConfig()
	raw := &schema.RawChange{
		AddedLines:   100000,
		RemovedLines: 100000,
		Files:        []string{"src/auth/payments/secrets.go"},
		Message:      "wip revert tmp draft",
	}

	features, _, err := ExtractFeatures(raw, cfg)
	require.NoError(t, err)
	for _, key := range schema.AllFeatures {
		assert.GreaterOrEqual(t, features[key], 0.0)
		assert.LessOrEqual(t, features[key], 1.0)
	}
	assert.InDelta(t, 0.75, features[schema.FeatureDiffRisk], 1e-9)
}

// TestExtractFeaturesInvalidInput verifies the error taxonomy.
func TestExtractFeaturesInvalidInput(t *testing.T) {
	cfg := schema.DefaultExtractorConfig()

	_, _, err := ExtractFeatures(nil, cfg)
	assert.ErrorIs(t, err, schema.ErrInvalidInput)

	_, _, err = ExtractFeatures(&schema.RawChange{AddedLines: -1}, cfg)
	assert.ErrorIs(t, err, schema.ErrInvalidInput)
}

// TestDiffPenaltyLadder checks the documented saturation steps.
func TestDiffPenaltyLadder(t *testing.T) {
	tests := []struct {
		changed  int
		expected float64
	}{
		{0, 0.05},
		{50, 0.05},
		{51, 0.15},
		{200, 0.15},
		{201, 0.30},
		{500, 0.30},
		{501, 0.50},
		{1000, 0.50},
		{1001, 0.75},
		{100000, 0.75},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.expected, diffPenalty(tt.changed, schema.DefaultLargeDiffCutoff), 1e-9,
			"changed=%d", tt.changed)
	}
}

// TestDetectTestSignals covers the cross-ecosystem test markers.
func TestDetectTestSignals(t *testing.T) {
	assert.True(t, DetectTestSignals([]string{"core/score_test.go"}))
	assert.True(t, DetectTestSignals([]string{"tests/test_gate.py"}))
	assert.True(t, DetectTestSignals([]string{"pyproject.toml"}))
	assert.False(t, DetectTestSignals([]string{"src/main.go", "README.md"}))
	assert.False(t, DetectTestSignals(nil))
}

package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/willshacklett/godscore/schema"
)

// TestNormalizeScale verifies both input scales land on [0,1].
func TestNormalizeScale(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"already normalized", 0.85, 0.85},
		{"boundary one stays", 1.0, 1.0},
		{"display scale divides", 85, 0.85},
		{"display scale hundred", 100, 1.0},
		{"above display scale clamps", 150, 1.0},
		{"negative clamps to zero", -0.5, 0.0},
		{"zero stays", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, NormalizeScale(tt.input), 1e-9)
		})
	}
}

// TestNormalizeScaleRoundTrip checks 0..1 -> 0..100 -> 0..1 stability.
func TestNormalizeScaleRoundTrip(t *testing.T) {
	for _, v := range []float64{0, 0.25, 0.5, 0.8, 1.0} {
		display := schema.DisplayScore(v)
		assert.InDelta(t, v, NormalizeScale(display), 1e-9)
	}
}

// TestParseScoreInput covers the manual/auto path selection.
func TestParseScoreInput(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantAuto bool
		want     float64
		wantErr  bool
	}{
		{"empty selects auto", "", true, 0, false},
		{"auto keyword", "auto", true, 0, false},
		{"auto uppercase", "AUTO", true, 0, false},
		{"auto with spaces", "  auto  ", true, 0, false},
		{"normalized score", "0.85", false, 0.85, false},
		{"display scale score", "85", false, 0.85, false},
		{"non-numeric", "great", false, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useAuto, score, err := ParseScoreInput(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, schema.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantAuto, useAuto)
			if !tt.wantAuto {
				assert.InDelta(t, tt.want, score, 1e-9)
			}
		})
	}
}

// TestManualResult ensures the derived GV keeps the complement invariant.
func TestManualResult(t *testing.T) {
	for _, score := range []float64{0, 0.3, 0.8, 0.95, 1.0} {
		result := ManualResult(score)
		assert.InDelta(t, score, result.Score, 1e-9)
		assert.InDelta(t, 1.0, result.Score+result.GV, 1e-9)
		assert.NotEmpty(t, result.Explanation)
	}
}

// TestManualResultIdempotent verifies normalizing twice changes nothing.
func TestManualResultIdempotent(t *testing.T) {
	first := ManualResult(0.9)
	second := ManualResult(first.Score)
	assert.InDelta(t, first.Score, second.Score, 1e-9)
	assert.InDelta(t, first.GV, second.GV, 1e-9)
}

package core

import (
	"fmt"
	"strings"

	"github.com/willshacklett/godscore/schema"
)

// diff risk ladder: fractions of the large-diff cutoff mapped to
// penalty steps. With the default cutoff of 1000 changed lines this
// reproduces the documented 50/200/500/1000 saturation ladder.
var diffLadder = []struct {
	fraction float64
	penalty  float64
}{
	{0.05, 0.05},
	{0.20, 0.15},
	{0.50, 0.30},
	{1.00, 0.50},
}

// diffSaturation is the penalty once the cutoff is exceeded.
const diffSaturation = 0.75

// ExtractFeatures turns raw change metadata into a bounded feature set.
// It is a pure function of its inputs and the static extractor config;
// an empty change set yields all-zero, lowest-risk features. The notes
// slice carries human-readable reasons for the explanation trail.
func ExtractFeatures(raw *schema.RawChange, cfg schema.ExtractorConfig) (schema.FeatureSet, []string, error) {
	if raw == nil {
		return nil, nil, fmt.Errorf("%w: raw change metadata is required", schema.ErrInvalidInput)
	}
	if raw.AddedLines < 0 || raw.RemovedLines < 0 {
		return nil, nil, fmt.Errorf("%w: negative line counts (added=%d, removed=%d)",
			schema.ErrInvalidInput, raw.AddedLines, raw.RemovedLines)
	}
	if cfg.LargeDiffCutoff <= 0 {
		cfg.LargeDiffCutoff = schema.DefaultLargeDiffCutoff
	}

	features := make(schema.FeatureSet, len(schema.AllFeatures))
	for _, key := range schema.AllFeatures {
		features[key] = 0
	}
	var notes []string

	changed := raw.ChangedLines()
	docsOnly := isDocsOnly(raw.Files)
	msg := strings.ToLower(raw.Message)

	// Diff magnitude: bigger diffs are harder to reason about and to
	// recover from. Docs-only changes get a discount.
	if changed > 0 || len(raw.Files) > 0 {
		diffRisk := diffPenalty(changed, cfg.LargeDiffCutoff)
		if docsOnly {
			diffRisk *= schema.DocsOnlyDiscount
			notes = append(notes, "Docs-only change detected (diff risk discounted).")
		}
		features[schema.FeatureDiffRisk] = schema.Clamp01(diffRisk)
		notes = append(notes, fmt.Sprintf("Diff changed lines=%d (added=%d, removed=%d).",
			changed, raw.AddedLines, raw.RemovedLines))
	} else {
		notes = append(notes, "Empty change set; all features at lowest risk.")
	}

	// Path categories. Docs-only changes never count as risky.
	if !docsOnly {
		if hasRiskyPrefix(raw.Files, cfg.RiskyPrefixes) {
			features[schema.FeatureRiskyPaths] = 1.0
			notes = append(notes, "Risky code paths touched ("+strings.Join(cfg.RiskyPrefixes, " ")+").")
		}
		if hasHighRiskMarker(raw.Files, cfg.HighRiskMarkers) {
			features[schema.FeatureHighRiskArea] = 1.0
			notes = append(notes, "High-risk area touched ("+strings.Join(cfg.HighRiskMarkers, "/")+").")
		}
	}

	// Commit message markers, case-insensitive substring membership.
	if containsKeyword(msg, cfg.WIPKeywords) {
		features[schema.FeatureWIPMarker] = 1.0
		notes = append(notes, "Commit message suggests WIP/tmp/draft.")
	}
	if containsKeyword(msg, cfg.RevertKeywords) {
		features[schema.FeatureRevert] = 1.0
		notes = append(notes, "Commit message indicates revert (recovery credit).")
	}

	// Missing tests only matters for non-trivial, non-docs changes.
	if len(raw.Files) > 0 && !raw.TestsDetected && !docsOnly {
		features[schema.FeatureMissingTests] = 1.0
		notes = append(notes, "No test signals detected in changed set.")
	}

	return features, notes, nil
}

// diffPenalty maps a changed-line count to a penalty via the saturation
// ladder scaled to the configured cutoff.
func diffPenalty(changed, cutoff int) float64 {
	for _, step := range diffLadder {
		if float64(changed) <= step.fraction*float64(cutoff) {
			return step.penalty
		}
	}
	return diffSaturation
}

// isDocsOnly reports whether every touched path is documentation.
func isDocsOnly(files []string) bool {
	if len(files) == 0 {
		return false
	}
	for _, f := range files {
		low := strings.ToLower(f)
		if strings.HasPrefix(low, "docs/") || strings.HasPrefix(low, "doc/") || strings.HasPrefix(low, ".github/") {
			continue
		}
		if strings.HasSuffix(low, ".md") || strings.HasSuffix(low, ".rst") || strings.HasSuffix(low, ".txt") {
			continue
		}
		return false
	}
	return true
}

// hasRiskyPrefix tests path prefixes against the risky category list.
func hasRiskyPrefix(files, prefixes []string) bool {
	for _, f := range files {
		low := strings.ToLower(f)
		for _, p := range prefixes {
			if strings.HasPrefix(low, strings.ToLower(p)) {
				return true
			}
		}
	}
	return false
}

// hasHighRiskMarker tests path substrings against the high-risk list.
func hasHighRiskMarker(files, markers []string) bool {
	for _, f := range files {
		low := strings.ToLower(f)
		for _, m := range markers {
			if strings.Contains(low, strings.ToLower(m)) {
				return true
			}
		}
	}
	return false
}

// containsKeyword tests case-insensitive substring membership against a
// keyword list. The message is already lowercased by the caller.
func containsKeyword(msg string, keywords []string) bool {
	if msg == "" {
		return false
	}
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(msg, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// testSignalMarkers is the broad cross-ecosystem heuristic for "does
// this change carry any test signals".
var testSignalMarkers = []string{
	"tests/",
	"test/",
	"_test.go",
	"pytest.ini",
	"tox.ini",
	"pyproject.toml",
	"package.json",
	"go.mod",
	"pom.xml",
	"build.gradle",
}

// DetectTestSignals reports whether any changed path carries a test marker.
func DetectTestSignals(files []string) bool {
	for _, f := range files {
		for _, m := range testSignalMarkers {
			if strings.Contains(f, m) {
				return true
			}
		}
	}
	return false
}

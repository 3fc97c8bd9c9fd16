package core

import (
	"github.com/willshacklett/godscore/schema"
)

// DetectRegression compares the current score against the baseline
// window read from the history ledger.
//
// A regression is flagged when the current score drops below the window
// mean by more than sensitivity x mean, i.e. a relative drop beyond a
// configurable fraction of the historical mean.
//
// Insufficient history (fewer than two records) is reported as
// not-applicable, never as a false positive. A ledger read failure is
// reported as unknown so the policy gate can decide what missing
// history means under the active mode.
func DetectRegression(current float64, window []schema.HistoryRecord, sensitivity float64, historyErr error) schema.RegressionResult {
	if sensitivity <= 0 || sensitivity > 1 {
		sensitivity = schema.DefaultSensitivity
	}

	result := schema.RegressionResult{
		State:       schema.RegressionNotApplicable,
		WindowSize:  len(window),
		Current:     current,
		Sensitivity: sensitivity,
	}

	if historyErr != nil {
		result.State = schema.RegressionUnknown
		result.WindowSize = 0
		return result
	}
	if len(window) < 2 {
		return result
	}

	var sum float64
	for _, rec := range window {
		sum += rec.Score
	}
	mean := sum / float64(len(window))
	result.Mean = mean

	if current < mean-sensitivity*mean {
		result.State = schema.RegressionFlagged
	} else {
		result.State = schema.RegressionNone
	}
	return result
}

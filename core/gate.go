package core

import (
	"fmt"

	"github.com/willshacklett/godscore/schema"
)

// Structured reasons carried by every non-pass verdict, so operators
// can distinguish real risk from tooling outage.
const (
	ReasonOK               = "ok"
	ReasonBelowThreshold   = "policy breach: score below threshold"
	ReasonRegression       = "policy breach: regression against baseline"
	ReasonStorageFailure   = "infrastructure failure: storage unavailable"
	ReasonAdvisoryBreach   = "advisory: would breach policy under enforce"
	ReasonAdvisoryDegraded = "advisory: history degraded"
)

// ApplyPolicy runs the policy gate over a computed GV result and a
// regression state, producing the terminal verdict plus its traceable
// explanation.
//
// Inform mode always terminates in an advisory verdict: breaches are
// surfaced as warnings but never block. Enforce mode passes only when
// the score meets the threshold and regression is not flagged, and
// fails safe when regression state is unknown due to a storage failure.
func ApplyPolicy(gv *schema.GVResult, reg schema.RegressionResult, policy schema.PolicyConfig, source schema.ScoreSource) *schema.GateResult {
	meetsThreshold := gv.Score >= policy.Threshold

	result := &schema.GateResult{
		Passed:     meetsThreshold && reg.State != schema.RegressionFlagged,
		Score:      gv.Score,
		GV:         gv.GV,
		Threshold:  policy.Threshold,
		Mode:       policy.Mode,
		Source:     source,
		Regression: reg,
		Breakdown:  gv.Contributions,
		Reason:     ReasonOK,
	}

	switch policy.Mode {
	case schema.EnforceMode:
		switch {
		case reg.State == schema.RegressionUnknown:
			// Enforcement never silently passes on missing history.
			result.Verdict = schema.FailSafeVerdict
			result.Passed = false
			result.Reason = ReasonStorageFailure
		case !meetsThreshold:
			result.Verdict = schema.FailVerdict
			result.Reason = ReasonBelowThreshold
		case reg.State == schema.RegressionFlagged:
			result.Verdict = schema.FailVerdict
			result.Reason = ReasonRegression
		default:
			result.Verdict = schema.PassVerdict
		}

	default: // inform
		result.Verdict = schema.AdvisoryVerdict
		switch {
		case reg.State == schema.RegressionUnknown:
			result.Reason = ReasonAdvisoryDegraded
		case !meetsThreshold || reg.State == schema.RegressionFlagged:
			result.Reason = ReasonAdvisoryBreach
		}
	}

	result.Explanation = buildExplanation(gv, reg, policy, result)
	return result
}

// buildExplanation assembles the structured breakdown: every feature's
// value, weight and contribution, plus the regression comparison basis.
func buildExplanation(gv *schema.GVResult, reg schema.RegressionResult, policy schema.PolicyConfig, result *schema.GateResult) []string {
	lines := make([]string, 0, len(gv.Explanation)+4)
	lines = append(lines, gv.Explanation...)
	lines = append(lines, fmt.Sprintf("Threshold = %.2f (mode %s)", policy.Threshold, policy.Mode))

	switch reg.State {
	case schema.RegressionFlagged:
		lines = append(lines, fmt.Sprintf(
			"Regression flagged: score %.2f below baseline mean %.2f by more than %.0f%% (window %d).",
			reg.Current, reg.Mean, reg.Sensitivity*100, reg.WindowSize))
	case schema.RegressionNone:
		lines = append(lines, fmt.Sprintf(
			"No regression: score %.2f vs baseline mean %.2f (sensitivity %.0f%%, window %d).",
			reg.Current, reg.Mean, reg.Sensitivity*100, reg.WindowSize))
	case schema.RegressionUnknown:
		lines = append(lines, "Regression unknown: history ledger unavailable (storage unavailable).")
	default:
		lines = append(lines, fmt.Sprintf(
			"Regression not applicable: insufficient history (window %d).", reg.WindowSize))
	}

	lines = append(lines, fmt.Sprintf("Verdict: %s (%s)", result.Verdict, result.Reason))
	return lines
}

package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/willshacklett/godscore/internal/contract"
	"github.com/willshacklett/godscore/schema"
)

// Evaluation holds the transient inputs for a single synchronous
// evaluation. Weights and policy are passed explicitly per invocation;
// the engine keeps no process-wide mutable scoring state.
type Evaluation struct {
	Raw        *schema.RawChange // Change metadata; nil selects the manual path or an empty change
	ScoreInput string            // "", "auto", or a number on either scale
	Weights    schema.WeightConfig
	Extractor  schema.ExtractorConfig
	Policy     schema.PolicyConfig
	Lineage    string
	Identity   string
	WindowSize int
	Now        time.Time // Zero means time.Now()
}

// Evaluate runs the full pipeline: extraction, aggregation,
// normalization, regression detection against the ledger, policy gate,
// and the history append.
//
// Only InvalidInput aborts with an error, before any ledger append.
// Storage failures never abort: they resolve to a defined verdict
// (fail-safe under enforce, degraded advisory under inform). A nil
// ledger disables history entirely.
func Evaluate(ctx context.Context, ev *Evaluation, led contract.Ledger) (*schema.GateResult, error) {
	if ev == nil {
		return nil, fmt.Errorf("%w: evaluation inputs are required", schema.ErrInvalidInput)
	}
	now := ev.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	gv, features, notes, source, err := computeScore(ev)
	if err != nil {
		return nil, err
	}

	// Baseline window read. A read failure degrades to an explicit
	// unknown regression state, never a silent "no regression".
	var window []schema.HistoryRecord
	var historyErr error
	if led != nil {
		window, historyErr = led.RecentWindow(ctx, ev.Lineage, ev.WindowSize)
		if historyErr != nil {
			notes = append(notes, fmt.Sprintf("History read failed: %v", historyErr))
		}
	}

	reg := DetectRegression(gv.Score, window, ev.Policy.Sensitivity, historyErr)
	result := ApplyPolicy(gv, reg, ev.Policy, source)
	result.Lineage = ev.Lineage
	result.Identity = ev.Identity
	result.Features = features
	result.Notes = notes

	// Append after the verdict so the record carries it. An append
	// failure forces fail-safe under enforce; inform degrades to a
	// warning but still reports its advisory verdict.
	if led != nil {
		rec := &schema.HistoryRecord{
			Lineage:   ev.Lineage,
			Identity:  ev.Identity,
			Timestamp: now,
			Score:     gv.Score,
			GV:        gv.GV,
			Features:  features,
			Verdict:   result.Verdict,
			Mode:      ev.Policy.Mode,
		}
		if _, appendErr := led.Append(ctx, rec); appendErr != nil {
			result.Notes = append(result.Notes, fmt.Sprintf("History append failed: %v", appendErr))
			if errors.Is(appendErr, schema.ErrStorageUnavailable) && ev.Policy.Mode == schema.EnforceMode {
				result.Verdict = schema.FailSafeVerdict
				result.Passed = false
				result.Reason = ReasonStorageFailure
				result.Explanation = append(result.Explanation,
					"History append failed (storage unavailable); enforcement fails safe.")
			}
		}
	}

	return result, nil
}

// computeScore selects the manual or auto scoring path and returns the
// GV result, the feature snapshot, the note trail and the score source.
func computeScore(ev *Evaluation) (*schema.GVResult, schema.FeatureSet, []string, schema.ScoreSource, error) {
	useAuto, manual, err := ParseScoreInput(ev.ScoreInput)
	if err != nil {
		return nil, nil, nil, "", err
	}

	if !useAuto {
		gv := ManualResult(manual)
		notes := []string{fmt.Sprintf("User-provided score: %.2f (normalized 0..1)", gv.Score)}
		return gv, schema.FeatureSet{}, notes, schema.ManualSource, nil
	}

	raw := ev.Raw
	if raw == nil {
		raw = &schema.RawChange{}
	}
	features, notes, err := ExtractFeatures(raw, ev.Extractor)
	if err != nil {
		return nil, nil, nil, "", err
	}
	gv, err := ComputeGV(features, ev.Weights)
	if err != nil {
		return nil, nil, nil, "", err
	}
	if DegenerateWeights(ev.Weights) {
		notes = append(notes, "All feature weights are zero; GV defined as 0 (documented fallback).")
	}
	notes = append([]string{"AutoScore active (computed features -> GV -> GodScore)."}, notes...)
	return gv, features, notes, schema.AutoSource, nil
}

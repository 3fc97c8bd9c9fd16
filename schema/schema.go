// Package schema defines the data model shared across the godscore engine.
package schema

import "time"

// RawChange holds the raw change metadata for a single evaluation.
// It is either extracted from the local git repository or supplied
// directly by the caller (e.g. via the MCP server).
type RawChange struct {
	AddedLines    int      // Lines added in the diff
	RemovedLines  int      // Lines removed in the diff
	Files         []string // Paths touched by the change
	Message       string   // Commit message of the head commit
	TestsDetected bool     // Whether test signals were found in the changed set
}

// ChangedLines returns the total number of changed lines.
func (rc *RawChange) ChangedLines() int {
	return rc.AddedLines + rc.RemovedLines
}

// FeatureSet maps feature keys to normalized values in [0,1].
// It is immutable once computed for a given evaluation.
type FeatureSet map[FeatureKey]float64

// Clone returns a copy of the feature set so callers can snapshot it
// without sharing the underlying map.
func (fs FeatureSet) Clone() FeatureSet {
	out := make(FeatureSet, len(fs))
	for k, v := range fs {
		out[k] = v
	}
	return out
}

// WeightConfig maps feature keys to non-negative weights.
// Missing entries default to 1.0; unknown keys are ignored.
type WeightConfig map[FeatureKey]float64

// Resolve returns the weight for a feature, defaulting to 1.0.
func (wc WeightConfig) Resolve(key FeatureKey) float64 {
	if wc == nil {
		return 1.0
	}
	if w, ok := wc[key]; ok {
		return w
	}
	return 1.0
}

// Contribution records how a single feature contributed to GV.
type Contribution struct {
	Feature FeatureKey `json:"feature"`
	Value   float64    `json:"value"`
	Weight  float64    `json:"weight"`
	Share   float64    `json:"share"` // weighted share of GV before the revert credit
}

// GVResult holds the aggregate penalty scalar and its complement.
type GVResult struct {
	GV            float64        `json:"gv"`       // 0 (best) to 1 (worst)
	Score         float64        `json:"godscore"` // 1 - GV
	Contributions []Contribution `json:"contributions"`
	Explanation   []string       `json:"explanation"`
}

// RegressionState classifies the outcome of a baseline comparison.
type RegressionState string

// All regression states.
const (
	RegressionNone          RegressionState = "none"
	RegressionFlagged       RegressionState = "flagged"
	RegressionNotApplicable RegressionState = "not_applicable" // insufficient history
	RegressionUnknown       RegressionState = "unknown"        // history could not be read
)

// RegressionResult holds the regression comparison basis so verdicts
// stay traceable to the numbers that produced them.
type RegressionResult struct {
	State       RegressionState `json:"state"`
	WindowSize  int             `json:"window_size"`
	Mean        float64         `json:"mean"`
	Current     float64         `json:"current"`
	Sensitivity float64         `json:"sensitivity"`
}

// PolicyConfig holds the policy parameters for a single evaluation.
// It is passed explicitly per evaluation; there is no process-wide
// mutable policy state.
type PolicyConfig struct {
	Threshold   float64 // Minimum passing score, normalized to [0,1]
	Mode        Mode    // inform or enforce
	Sensitivity float64 // Relative drop fraction for regression flagging, (0,1]
}

// HistoryRecord is one append-only ledger entry per evaluated change.
// Records are never mutated or deleted by the engine.
type HistoryRecord struct {
	ID        int64      `json:"id"`
	Lineage   string     `json:"lineage"`  // identity axis for regression comparison (e.g. branch)
	Identity  string     `json:"identity"` // commit or run id
	Timestamp time.Time  `json:"timestamp"`
	Score     float64    `json:"godscore"`
	GV        float64    `json:"gv"`
	Features  FeatureSet `json:"features"`
	Verdict   Verdict    `json:"verdict"`
	Mode      Mode       `json:"mode"`
}

// GateResult is the full outcome of one evaluation, as emitted by the
// policy gate. All downstream views (text, JSON, GitHub outputs) are
// derived from this single structure.
type GateResult struct {
	Verdict     Verdict          `json:"verdict"`
	Passed      bool             `json:"passed"`
	Score       float64          `json:"godscore"`
	GV          float64          `json:"gv"`
	Threshold   float64          `json:"effective_threshold"`
	Mode        Mode             `json:"effective_mode"`
	Source      ScoreSource      `json:"score_source"`
	Lineage     string           `json:"lineage"`
	Identity    string           `json:"identity"`
	Regression  RegressionResult `json:"regression"`
	Features    FeatureSet       `json:"features"`
	Breakdown   []Contribution   `json:"breakdown"`
	Notes       []string         `json:"notes"`
	Explanation []string         `json:"explanation"`
	Reason      string           `json:"reason"` // distinguishes policy breach from infrastructure failure
}

// Blocking reports whether the verdict should produce a non-zero exit
// status. Only enforce mode ever blocks.
func (gr *GateResult) Blocking() bool {
	if gr.Mode != EnforceMode {
		return false
	}
	return gr.Verdict == FailVerdict || gr.Verdict == FailSafeVerdict
}

// LedgerStatus describes the state of the history ledger backend.
type LedgerStatus struct {
	Backend       string    `json:"backend"`
	Connected     bool      `json:"connected"`
	TotalRecords  int       `json:"total_records"`
	TotalLineages int       `json:"total_lineages"`
	LastAppend    time.Time `json:"last_append"`
	OldestAppend  time.Time `json:"oldest_append"`
}

// ExtractorConfig holds the static configuration for feature extraction.
type ExtractorConfig struct {
	LargeDiffCutoff int      // Changed-line count at which diff risk saturates
	RiskyPrefixes   []string // Path prefixes that mark risky code areas
	HighRiskMarkers []string // Path substrings that mark high-risk areas
	WIPKeywords     []string // Commit message tokens that indicate draft/WIP work
	RevertKeywords  []string // Commit message tokens that indicate a revert
}

package schema

// Custom string types for type safety.
type (
	// FeatureKey identifies a single change-signal feature.
	FeatureKey string

	// Mode represents the policy enforcement mode.
	Mode string

	// Verdict represents the terminal state of the policy gate.
	Verdict string

	// ScoreSource indicates whether the score was supplied or computed.
	ScoreSource string

	// LedgerBackend represents the database backend for the history ledger.
	LedgerBackend string

	// OutputMode represents the format of the output.
	OutputMode string
)

// Feature keys produced by the extractor.
const (
	FeatureDiffRisk     FeatureKey = "diff_risk"      // saturating diff magnitude penalty
	FeatureRiskyPaths   FeatureKey = "risky_paths"    // risky path prefixes touched
	FeatureHighRiskArea FeatureKey = "high_risk_area" // auth/payments/etc touched
	FeatureMissingTests FeatureKey = "missing_tests"  // no test signals in changed set
	FeatureWIPMarker    FeatureKey = "wip_marker"     // WIP/tmp/draft commit message
	FeatureRevert       FeatureKey = "revert"         // revert commit (recovery credit)
)

// All policy modes supported.
const (
	InformMode  Mode = "inform" // default
	EnforceMode Mode = "enforce"
)

// All gate verdicts.
const (
	PassVerdict     Verdict = "pass"
	FailVerdict     Verdict = "fail"
	FailSafeVerdict Verdict = "fail-safe" // history unknown under enforce
	AdvisoryVerdict Verdict = "advisory"  // inform mode never blocks
)

// All score sources.
const (
	ManualSource ScoreSource = "manual"
	AutoSource   ScoreSource = "auto"
)

// All ledger backends supported.
const (
	SQLiteBackend     LedgerBackend = "sqlite" // default
	MySQLBackend      LedgerBackend = "mysql"
	PostgreSQLBackend LedgerBackend = "postgresql"
	NoneBackend       LedgerBackend = "none"
)

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	JSONOut OutputMode = "json"
)

// Scoring and policy defaults.
const (
	DefaultThreshold   = 0.80 // minimum passing score
	DefaultSensitivity = 0.05 // relative drop fraction for regression flagging
	DefaultWindowSize  = 10   // baseline window length
	MaxWindowSize      = 500

	// LargeDiffCutoff is the changed-line count at which the diff risk
	// feature saturates at its ladder maximum.
	DefaultLargeDiffCutoff = 1000

	// RevertCredit is the bounded recovery credit applied to GV when a
	// revert is detected. GV is clamped at zero afterwards.
	RevertCredit = 0.10

	// DocsOnlyDiscount scales the diff risk feature for docs-only changes.
	DocsOnlyDiscount = 0.25
)

// PenaltyFeatures lists the features that enter the weighted average.
// FeatureRevert is excluded: it is a credit applied after aggregation,
// not a penalty.
var PenaltyFeatures = []FeatureKey{
	FeatureDiffRisk,
	FeatureRiskyPaths,
	FeatureHighRiskArea,
	FeatureMissingTests,
	FeatureWIPMarker,
}

// AllFeatures lists every feature the extractor produces.
var AllFeatures = []FeatureKey{
	FeatureDiffRisk,
	FeatureRiskyPaths,
	FeatureHighRiskArea,
	FeatureMissingTests,
	FeatureWIPMarker,
	FeatureRevert,
}

// ValidModes lists all valid policy modes.
var ValidModes = map[Mode]struct{}{
	InformMode:  {},
	EnforceMode: {},
}

// ValidLedgerBackends lists all valid ledger backends.
var ValidLedgerBackends = map[LedgerBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	JSONOut: {},
}

// FeatureDescriptions documents what each feature measures, for the
// features command and the MCP feature info tool.
var FeatureDescriptions = map[FeatureKey]string{
	FeatureDiffRisk:     "Diff magnitude penalty; saturates on a ladder up to the large-diff cutoff, discounted for docs-only changes.",
	FeatureRiskyPaths:   "Set when any touched path starts with a risky prefix (src/, lib/, api/, infra/, ...).",
	FeatureHighRiskArea: "Set when any touched path mentions a high-risk marker (auth, payments, secrets, ...).",
	FeatureMissingTests: "Set when a non-trivial change carries no test signals.",
	FeatureWIPMarker:    "Set when the commit message contains WIP/tmp/draft tokens.",
	FeatureRevert:       "Revert detection; grants a bounded recovery credit instead of a penalty.",
}

// DefaultExtractorConfig returns the extraction configuration used when
// none is supplied. Prefixes and markers mirror the documented defaults.
func DefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		LargeDiffCutoff: DefaultLargeDiffCutoff,
		RiskyPrefixes: []string{
			"src/", "lib/", "app/", "api/", "infra/", "server/", "services/",
		},
		HighRiskMarkers: []string{
			"auth", "security", "payments", "billing", "crypto", "secrets",
		},
		WIPKeywords:    []string{"wip", "tmp", "draft"},
		RevertKeywords: []string{"revert"},
	}
}

// DefaultWeights returns the default weight map: every feature weighs 1.0.
func DefaultWeights() WeightConfig {
	wc := make(WeightConfig, len(PenaltyFeatures))
	for _, key := range PenaltyFeatures {
		wc[key] = 1.0
	}
	return wc
}

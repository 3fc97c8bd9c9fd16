// Package core implements the survivability scoring and enforcement
// engine: feature extraction, penalty aggregation into GV, score
// normalization, regression detection against the history ledger, and
// the policy gate that turns all of it into a verdict.
package core

package schema

import (
	"fmt"
	"strings"
)

// Clamp01 bounds a value to the [0,1] range.
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// DisplayScore re-expands a normalized [0,1] score to the 0-100 display
// scale used in human-readable output.
func DisplayScore(score float64) float64 {
	return Clamp01(score) * 100.0
}

// ParseMode parses a policy mode string, tolerating case and surrounding
// whitespace. An empty string resolves to the default (inform).
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if m == "" {
		return InformMode, nil
	}
	if _, ok := ValidModes[m]; !ok {
		return "", fmt.Errorf("%w: mode must be inform or enforce (received %q)", ErrInvalidInput, s)
	}
	return m, nil
}

// ParseLedgerBackend parses a ledger backend string. An empty string
// resolves to the default (sqlite).
func ParseLedgerBackend(s string) (LedgerBackend, error) {
	b := LedgerBackend(strings.ToLower(strings.TrimSpace(s)))
	if b == "" {
		return SQLiteBackend, nil
	}
	if _, ok := ValidLedgerBackends[b]; !ok {
		return "", fmt.Errorf("%w: ledger backend must be sqlite, mysql, postgresql or none (received %q)", ErrInvalidInput, s)
	}
	return b, nil
}

// ParseBool parses the permissive boolean spelling accepted for the
// enforce override (1/true/yes/y/on).
func ParseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y", "on":
		return true
	default:
		return false
	}
}

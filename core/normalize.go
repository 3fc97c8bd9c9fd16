package core

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/willshacklett/godscore/schema"
)

// NormalizeScale maps a numeric score or threshold onto [0,1]. Values
// above 1.0 are treated as the 0-100 display scale and divided by 100;
// the result is clamped into range either way.
func NormalizeScale(v float64) float64 {
	if v > 1.0 {
		v = v / 100.0
	}
	return schema.Clamp01(v)
}

// ParseScoreInput decides between the manual and auto scoring paths.
// An empty or "auto" input selects auto scoring. Anything else must be
// a number on either the [0,1] or [0,100] scale.
func ParseScoreInput(raw string) (useAuto bool, score float64, err error) {
	s := strings.TrimSpace(raw)
	if s == "" || strings.EqualFold(s, "auto") {
		return true, 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return false, 0, fmt.Errorf("%w: score must be numeric (received %q)", schema.ErrInvalidInput, raw)
	}
	return false, NormalizeScale(v), nil
}

// ManualResult builds a GVResult for a caller-supplied score. GV is
// derived as the complement so the Score + GV invariant still holds.
func ManualResult(score float64) *schema.GVResult {
	score = schema.Clamp01(score)
	gv := schema.Clamp01(1.0 - score)
	return &schema.GVResult{
		GV:    gv,
		Score: score,
		Explanation: []string{
			fmt.Sprintf("GodScore = %.2f (user-provided, normalized 0..1)", score),
			fmt.Sprintf("GV = %.2f (derived)", gv),
		},
	}
}

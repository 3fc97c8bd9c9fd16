package outwriter

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/willshacklett/godscore/internal/contract"
	"github.com/willshacklett/godscore/schema"
)

// WriteGateResult outputs the evaluation result, dispatching based on
// the output format configured. When a JSON artifact path is set the
// machine-readable document is written there as well, regardless of
// the console format.
func (ow *OutWriter) WriteGateResult(result *schema.GateResult, cfg *contract.Config) error {
	if cfg.JSONFile != "" {
		if err := writeWithFile(cfg.JSONFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON report"); err != nil {
			return fmt.Errorf("error writing JSON report: %w", err)
		}
	}

	switch cfg.Output {
	case schema.JSONOut:
		return writeJSON(os.Stdout, result)
	default:
		return writeGateText(os.Stdout, result, cfg)
	}
}

// writeGateText renders the human-readable verdict with the feature
// breakdown table and the full explanation trail.
func writeGateText(w io.Writer, result *schema.GateResult, cfg *contract.Config) error {
	fmt.Fprintln(w, "GodScore Gate Results:")

	label := contract.GetPlainLabel(schema.DisplayScore(result.Score))
	if cfg.UseColors {
		label = contract.GetColorLabel(schema.DisplayScore(result.Score))
	}

	labels := []string{"GodScore:", "GV:", "Threshold:", "Mode:", "Source:", "Lineage:"}
	values := []any{
		fmt.Sprintf("%.1f / 100 (%s)", schema.DisplayScore(result.Score), label),
		fmt.Sprintf("%.2f (lower is better)", result.GV),
		fmt.Sprintf("%.1f / 100", schema.DisplayScore(result.Threshold)),
		result.Mode,
		result.Source,
		result.Lineage,
	}
	maxLabelLen := 0
	for _, l := range labels {
		if len(l) > maxLabelLen {
			maxLabelLen = len(l)
		}
	}
	for i, l := range labels {
		fmt.Fprintf(w, "  %-*s %v\n", maxLabelLen+1, l, values[i])
	}
	fmt.Fprintln(w)

	if len(result.Breakdown) > 0 {
		if err := writeBreakdownTable(w, result.Breakdown); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}

	if len(result.Notes) > 0 {
		fmt.Fprintln(w, "Notes:")
		for _, n := range result.Notes {
			fmt.Fprintf(w, "  - %s\n", n)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "Explanation:")
	for _, line := range result.Explanation {
		fmt.Fprintf(w, "  %s\n", line)
	}
	fmt.Fprintln(w)

	writeVerdictLine(w, result)
	return nil
}

// writeBreakdownTable renders each feature's value, weight and share of GV.
func writeBreakdownTable(w io.Writer, breakdown []schema.Contribution) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Feature", "Value", "Weight", "GV Share"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, c := range breakdown {
		data = append(data, []string{
			string(c.Feature),
			fmt.Sprintf("%.2f", c.Value),
			fmt.Sprintf("%.2f", c.Weight),
			fmt.Sprintf("%.2f", c.Share),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeVerdictLine prints the terminal verdict in CI-friendly form.
func writeVerdictLine(w io.Writer, result *schema.GateResult) {
	switch result.Verdict {
	case schema.PassVerdict:
		fmt.Fprintf(w, "✅ pass: GodScore meets threshold\n")
	case schema.AdvisoryVerdict:
		if result.Reason == "ok" {
			fmt.Fprintf(w, "✅ advisory: GodScore meets threshold (informational)\n")
		} else {
			fmt.Fprintf(w, "⚠️  advisory: %s (informational, not failing the build)\n", result.Reason)
		}
	case schema.FailSafeVerdict:
		fmt.Fprintf(w, "❌ fail-safe: %s\n", result.Reason)
	default:
		fmt.Fprintf(w, "❌ fail: %s\n", result.Reason)
	}

	if strings.TrimSpace(result.Identity) != "" && result.Identity != "manual" {
		fmt.Fprintf(w, "   evaluated %s\n", truncateMiddle(result.Identity, 16))
	}
}

package outwriter

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/willshacklett/godscore/internal/contract"
	"github.com/willshacklett/godscore/schema"
)

// WriteHistory outputs recent ledger records for a lineage, newest last.
func (ow *OutWriter) WriteHistory(records []schema.HistoryRecord, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		return writeJSON(os.Stdout, records)
	}
	return writeHistoryText(os.Stdout, records, cfg)
}

func writeHistoryText(w io.Writer, records []schema.HistoryRecord, cfg *contract.Config) error {
	if len(records) == 0 {
		fmt.Fprintln(w, "No history records found")
		return nil
	}

	fmt.Fprintf(w, "GodScore History (%d records):\n", len(records))

	// Identity column width adapts to the terminal
	identityWidth := 12
	if getTerminalWidth() >= 120 {
		identityWidth = 40
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"ID", "Lineage", "Identity", "When", "GodScore", "GV", "Verdict", "Mode"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, rec := range records {
		label := contract.GetPlainLabel(schema.DisplayScore(rec.Score))
		if cfg.UseColors {
			label = contract.GetColorLabel(schema.DisplayScore(rec.Score))
		}
		data = append(data, []string{
			fmt.Sprintf("%d", rec.ID),
			rec.Lineage,
			truncateMiddle(rec.Identity, identityWidth),
			rec.Timestamp.Format(time.DateTime),
			fmt.Sprintf("%.1f (%s)", schema.DisplayScore(rec.Score), label),
			fmt.Sprintf("%.2f", rec.GV),
			string(rec.Verdict),
			string(rec.Mode),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// WriteStatus outputs the ledger backend status.
func (ow *OutWriter) WriteStatus(status *schema.LedgerStatus, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		return writeJSON(os.Stdout, status)
	}
	return writeStatusText(os.Stdout, status)
}

func writeStatusText(w io.Writer, status *schema.LedgerStatus) error {
	fmt.Fprintln(w, "Ledger Status:")
	fmt.Fprintf(w, "  Backend:   %s\n", status.Backend)
	fmt.Fprintf(w, "  Connected: %t\n", status.Connected)
	if !status.Connected {
		return nil
	}
	fmt.Fprintf(w, "  Records:   %d\n", status.TotalRecords)
	fmt.Fprintf(w, "  Lineages:  %d\n", status.TotalLineages)
	if !status.OldestAppend.IsZero() {
		fmt.Fprintf(w, "  Oldest:    %s\n", status.OldestAppend.Format(time.DateTime))
	}
	if !status.LastAppend.IsZero() {
		fmt.Fprintf(w, "  Latest:    %s\n", status.LastAppend.Format(time.DateTime))
	}
	return nil
}

// WriteFeatureInfo lists every feature the extractor produces, with the
// docs-facing description and the active weight for each.
func (ow *OutWriter) WriteFeatureInfo(cfg *contract.Config) error {
	weights := cfg.Weights
	if weights == nil {
		weights = schema.DefaultWeights()
	}

	if cfg.Output == schema.JSONOut {
		type featureInfo struct {
			Feature     schema.FeatureKey `json:"feature"`
			Penalty     bool              `json:"penalty"`
			Weight      float64           `json:"weight"`
			Description string            `json:"description"`
		}
		infos := make([]featureInfo, 0, len(schema.AllFeatures))
		for _, key := range schema.AllFeatures {
			infos = append(infos, featureInfo{
				Feature:     key,
				Penalty:     key != schema.FeatureRevert,
				Weight:      weights.Resolve(key),
				Description: schema.FeatureDescriptions[key],
			})
		}
		return writeJSON(os.Stdout, infos)
	}

	fmt.Println("Features:")
	for _, key := range schema.AllFeatures {
		role := "penalty"
		if key == schema.FeatureRevert {
			role = "credit"
		}
		fmt.Printf("  %-15s (%s, weight %.2f)\n", key, role, weights.Resolve(key))
		fmt.Printf("      %s\n", schema.FeatureDescriptions[key])
	}
	return nil
}

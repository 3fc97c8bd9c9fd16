// Package parquet provides data structures and functions for exporting
// godscore history data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/willshacklett/godscore/schema"
)

// HistoryRow represents a single ledger record for Parquet export.
// This struct maps to the godscore_history database table.
type HistoryRow struct {
	// ID is the append-order identifier of the record
	ID int64 `parquet:"id,snappy"`

	// Lineage is the identity axis the record was appended under
	Lineage string `parquet:"lineage,snappy"`

	// Identity is the commit or run id that was evaluated
	Identity string `parquet:"identity,snappy"`

	// Timestamp is when the evaluation ran (TIMESTAMP with nanosecond precision)
	Timestamp time.Time `parquet:"timestamp,snappy"`

	// Score is the GodScore in [0,1]
	Score float64 `parquet:"godscore,snappy"`

	// GV is the aggregate penalty scalar in [0,1]
	GV float64 `parquet:"gv,snappy"`

	// Features is the JSON-encoded feature set snapshot (nullable)
	Features *string `parquet:"features,optional,snappy"`

	// Verdict is the gate verdict recorded for the run
	Verdict string `parquet:"verdict,snappy"`

	// Mode is the effective policy mode recorded for the run
	Mode string `parquet:"mode,snappy"`
}

// WriteHistoryParquet writes a slice of HistoryRow structs to a Parquet file.
func WriteHistoryParquet(data []HistoryRow, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Schema is inferred from the HistoryRow struct tags
	writer := parquet.NewGenericWriter[HistoryRow](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertHistoryRecords converts schema.HistoryRecord to HistoryRow for Parquet export.
func ConvertHistoryRecords(records []schema.HistoryRecord) []HistoryRow {
	result := make([]HistoryRow, len(records))
	for i, record := range records {
		var features *string
		if len(record.Features) > 0 {
			if raw, err := json.Marshal(record.Features); err == nil {
				s := string(raw)
				features = &s
			}
		}
		result[i] = HistoryRow{
			ID:        record.ID,
			Lineage:   record.Lineage,
			Identity:  record.Identity,
			Timestamp: record.Timestamp,
			Score:     record.Score,
			GV:        record.GV,
			Features:  features,
			Verdict:   string(record.Verdict),
			Mode:      string(record.Mode),
		}
	}
	return result
}

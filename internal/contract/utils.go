package contract

import (
	"os"
	"path/filepath"

	"github.com/fatih/color"
)

// Health label constants, keyed off the 0-100 display score.
const (
	ExcellentValue = "Excellent" // Excellent health
	HealthyValue   = "Healthy"   // Healthy
	WatchValue     = "Watch"     // Needs attention
	AtRiskValue    = "At Risk"   // Below acceptable survivability
)

// Color variables for console output.
var (
	ExcellentColor = color.New(color.FgGreen, color.Bold) // excellentColor for top-tier scores.
	HealthyColor   = color.New(color.FgCyan)              // healthyColor for passing scores.
	WatchColor     = color.New(color.FgYellow)            // watchColor for borderline scores.
	AtRiskColor    = color.New(color.FgRed, color.Bold)   // atRiskColor for failing scores.
)

// GetPlainLabel returns a plain text health label based on the 0-100
// display score. This is the core logic used for JSON and table printing.
func GetPlainLabel(displayScore float64) string {
	switch {
	case displayScore >= 90:
		return ExcellentValue
	case displayScore >= 80:
		return HealthyValue
	case displayScore >= 60:
		return WatchValue
	default:
		return AtRiskValue
	}
}

// GetColorLabel returns a colored health label for console output.
// It uses GetPlainLabel to determine the string, and then applies the
// appropriate color.
func GetColorLabel(displayScore float64) string {
	text := GetPlainLabel(displayScore)

	switch text {
	case ExcellentValue:
		return ExcellentColor.Sprint(text)
	case HealthyValue:
		return HealthyColor.Sprint(text)
	case WatchValue:
		return WatchColor.Sprint(text)
	default: // "At Risk"
		return AtRiskColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output,
// based on the provided file path. It falls back to os.Stdout when no
// path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// GetLedgerDBFilePath returns the path to the SQLite DB file for the
// history ledger.
func GetLedgerDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".godscore_history.db"
	}
	return filepath.Join(homeDir, ".godscore_history.db")
}

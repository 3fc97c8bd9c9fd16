package outwriter

import (
	"fmt"
	"os"

	"github.com/willshacklett/godscore/schema"
)

// WriteGitHubOutputs publishes the gate result for downstream workflow
// steps. Values go to the GITHUB_OUTPUT file when the environment
// provides one; otherwise the legacy ::set-output command is emitted
// on stdout for older runners.
func (ow *OutWriter) WriteGitHubOutputs(result *schema.GateResult) error {
	outputs := [][2]string{
		{"godscore", fmt.Sprintf("%.4f", result.Score)},
		{"gv", fmt.Sprintf("%.4f", result.GV)},
		{"passed", fmt.Sprintf("%t", result.Passed)},
		{"effective_mode", string(result.Mode)},
		{"effective_threshold", fmt.Sprintf("%.4f", result.Threshold)},
		{"score_source", string(result.Source)},
	}

	path := os.Getenv("GITHUB_OUTPUT")
	if path == "" {
		for _, kv := range outputs {
			fmt.Printf("::set-output name=%s::%s\n", kv[0], kv[1])
		}
		return nil
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open GITHUB_OUTPUT file: %w", err)
	}
	defer func() { _ = file.Close() }()

	for _, kv := range outputs {
		if _, err := fmt.Fprintf(file, "%s=%s\n", kv[0], kv[1]); err != nil {
			return fmt.Errorf("failed to write GitHub output %s: %w", kv[0], err)
		}
	}
	return nil
}

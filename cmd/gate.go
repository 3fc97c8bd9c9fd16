package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/willshacklett/godscore/core"
	"github.com/willshacklett/godscore/internal/contract"
	"github.com/willshacklett/godscore/internal/ledger"
	"github.com/willshacklett/godscore/schema"
)

// gateCmd focused on CI/CD policy enforcement.
var gateCmd = &cobra.Command{
	Use:   "gate [repo-path]",
	Short: "Score the current change and enforce the survivability gate",
	Long: `Score a change (automatically from git metadata, or from a supplied score)
and run it through the survivability policy gate.

In inform mode the verdict is always advisory and the exit code is zero.
In enforce mode the build fails when the score misses the threshold, when
a regression against the lineage baseline is flagged, or fail-safe when
history cannot be read.

The command doubles as a GitHub Actions step: INPUT_* environment
variables fill any unset flags and outputs are written to GITHUB_OUTPUT.

Examples:
  # Score the latest commit against its parent
  godscore gate

  # Enforce a custom threshold on a PR diff
  godscore gate --base-ref origin/main --mode enforce --threshold 85

  # Gate on an externally computed score
  godscore gate --score 0.91 --mode enforce`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		led := ledger.GetLedger()
		client := contract.NewLocalGitClient()

		// The manual score path never touches git, so evaluations work
		// outside a repository too.
		var raw *schema.RawChange
		if useAuto, _, err := core.ParseScoreInput(cfg.ScoreInput); err != nil {
			contract.LogFatal("Invalid score input", err)
		} else if useAuto {
			collected, err := core.CollectChange(rootCtx, client, cfg.RepoPath, cfg.BaseRef, cfg.TargetRef)
			if err != nil {
				contract.LogFatal("Failed to collect change metadata", err)
			}
			raw = collected
		}

		ev := &core.Evaluation{
			Raw:        raw,
			ScoreInput: cfg.ScoreInput,
			Weights:    cfg.Weights,
			Extractor:  cfg.Extractor,
			Policy:     cfg.Policy,
			Lineage:    cfg.Lineage,
			Identity:   cfg.Identity,
			WindowSize: cfg.WindowSize,
		}

		result, err := core.Evaluate(rootCtx, ev, led)
		if err != nil {
			contract.LogFatal("Evaluation failed", err)
		}

		if err := out.WriteGateResult(result, cfg); err != nil {
			contract.LogFatal("Failed to write results", err)
		}

		if inGitHubActions() || viper.GetBool("github-outputs") {
			if err := out.WriteGitHubOutputs(result); err != nil {
				contract.Warning("Failed to write GitHub outputs: " + err.Error())
			}
		}

		if result.Blocking() {
			ledger.CloseLedger() // os.Exit skips deferred cleanup
			os.Exit(1)
		}
	},
}

// inGitHubActions detects a workflow environment.
func inGitHubActions() bool {
	return os.Getenv("GITHUB_ACTIONS") == "true" || os.Getenv("GITHUB_OUTPUT") != ""
}

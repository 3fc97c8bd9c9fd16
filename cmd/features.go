package cmd

import (
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/willshacklett/godscore/internal/contract"
	"github.com/willshacklett/godscore/schema"
)

// featuresCmd documents the extractor's feature catalog.
var featuresCmd = &cobra.Command{
	Use:   "features",
	Short: "List the change-signal features and how each affects GV",
	Long: `List every feature the extractor produces, with a description of what
it measures and whether it acts as a penalty or a credit.

Feature values are normalized to [0,1] and aggregated into GV (the
gravity of violation); GodScore is its complement.

Examples:
  # Human-readable catalog
  godscore features

  # Machine-readable catalog
  godscore features --output json`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		if err := loadConfigFile(); err != nil {
			return err
		}
		cfg.Output = schema.OutputMode(viper.GetString("output"))

		// Show the active weights: config-file overrides on top of defaults.
		weights := schema.DefaultWeights()
		for name, w := range viper.GetStringMap("weights") {
			key := schema.FeatureKey(strings.ToLower(name))
			if _, ok := weights[key]; ok {
				if f := cast.ToFloat64(w); f >= 0 {
					weights[key] = f
				}
			}
		}
		cfg.Weights = weights
		return nil
	},
	Run: func(_ *cobra.Command, _ []string) {
		if err := out.WriteFeatureInfo(cfg); err != nil {
			contract.LogFatal("Failed to write feature info", err)
		}
	},
}

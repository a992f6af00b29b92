package cmd

import (
	"github.com/bikecast/bikecast/core"
	"github.com/bikecast/bikecast/internal/outwriter"
	"github.com/spf13/cobra"
)

// modelCmd prints the coefficient table.
var modelCmd = &cobra.Command{
	Use:   "model",
	Short: "Show the model coefficients and scaling constants",
	Long: `Print the intercept, every non-zero coefficient and the constants used
to normalize inputs and scale the output.

Examples:
  bikecast model
  bikecast model --output csv --output-file coefficients.csv`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return loadConfig()
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		desc := core.DefaultTable().Describe(cfg.Scaling)
		return outwriter.NewOutWriter().WriteModel(desc, cfg)
	},
}

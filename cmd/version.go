package cmd

import (
	"runtime"

	"github.com/bikecast/bikecast/core"
	"github.com/bikecast/bikecast/schema"
	"github.com/spf13/cobra"
)

// versionCmd shows the verbose version for diagnostic purposes.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of bikecast.",
	Long: `Display version information including the built-in model.

Shows:
- Release version and build details
- Model intercept and coefficient count
- Default normalization maxima and scale factor

A prediction mismatch between two binaries usually shows up here first.`,
	Run: func(cmd *cobra.Command, _ []string) {
		table := core.DefaultTable()
		scaling := schema.DefaultScaling()
		cmd.Printf("bikecast CLI\n")
		cmd.Printf("  Version: %s\n", version)
		cmd.Printf("  Commit:  %s\n", commit)
		cmd.Printf("  Built:   %s\n", date)
		cmd.Printf("  Runtime: %s\n", runtime.Version())
		cmd.Printf("Model\n")
		cmd.Printf("  Intercept:    %g\n", table.Intercept())
		cmd.Printf("  Coefficients: %d\n", len(table.Coefficients()))
		cmd.Printf("  Scaling:      temp/%g hum/%g wind/%g x%g\n",
			scaling.TempMax, scaling.HumidityMax, scaling.WindspeedMax, scaling.ScaleFactor)
	},
}

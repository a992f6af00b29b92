// Package cmd defines the command-line interface for bikecast.
package cmd

import (
	"github.com/bikecast/bikecast/internal/contract"
	"github.com/bikecast/bikecast/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(predictCmd)
	rootCmd.AddCommand(modelCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("history-backend", string(schema.NoneBackend), "History backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("log-level", contract.DefaultLogLevel, "Operator log level: debug or info or warn or error")
	rootCmd.PersistentFlags().String("log-file", "", "Write operator logs to this file with rotation (default stderr)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of serveCmd to Viper
	serveCmd.Flags().String("host", contract.DefaultHost, "Interface to listen on")
	serveCmd.Flags().Int("port", contract.DefaultPort, "Port to listen on")
	serveCmd.Flags().Float64("rate-limit", contract.DefaultRateLimit, "Requests per second across all clients (0 disables limiting)")
	serveCmd.Flags().Int("rate-burst", contract.DefaultRateBurst, "Burst size for the rate limiter")
	serveCmd.Flags().String("shutdown-timeout", contract.DefaultShutdownTimeout.String(), "Grace period for in-flight requests on shutdown")
	if err := viper.BindPFlags(serveCmd.Flags()); err != nil {
		contract.LogFatal("Error binding serve flags", err)
	}

	// Request flags of predictCmd are read directly, not through Viper,
	// so that an unset flag stays absent from the request.
	predictCmd.Flags().String("input", "", "Read the request from a JSON file, or - for stdin")
	predictCmd.Flags().Float64(schema.FieldYear, 0, "Year indicator (0 = first year, 1 = second year)")
	predictCmd.Flags().Float64(schema.FieldTemperature, 0, "Temperature in degrees Celsius")
	predictCmd.Flags().Float64(schema.FieldHumidity, 0, "Relative humidity in percent")
	predictCmd.Flags().Float64(schema.FieldWindspeed, 0, "Wind speed in km/h")
	predictCmd.Flags().String(schema.FieldSeason, "", "Season: Spring or Summer or Fall or Winter")
	predictCmd.Flags().String(schema.FieldMonth, "", "Month abbreviation, e.g. Jul")
	predictCmd.Flags().String(schema.FieldWeather, "", "Weather: Clear or Light_rainfall or Thunderstorm")
	predictCmd.Flags().String(schema.FieldWeekday, "", "Weekday abbreviation, e.g. Mon or Thurs")
	predictCmd.Flags().Float64(schema.FieldHoliday, schema.DefaultHoliday, "Holiday flag")
	predictCmd.Flags().Float64(schema.FieldWorkingDay, schema.DefaultWorkingDay, "Working day flag")

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("to", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}

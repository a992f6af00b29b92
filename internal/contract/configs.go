package contract

import (
	"fmt"
	"strings"
	"time"

	"github.com/bikecast/bikecast/schema"
	"go.uber.org/zap/zapcore"
)

// Default values for configuration.
const (
	DefaultHost            = "0.0.0.0"
	DefaultPort            = 5000
	DefaultRateLimit       = 50.0 // requests per second, 0 disables limiting
	DefaultRateBurst       = 100
	DefaultLogLevel        = "info"
	DefaultShutdownTimeout = 10 * time.Second
	MaxPort                = 65535
)

// ScalingRawInput holds optional overrides for the normalization constants.
// Use float64 pointers so that unset values keep their defaults.
type ScalingRawInput struct {
	TempMax      *float64 `mapstructure:"temp_max"`
	HumidityMax  *float64 `mapstructure:"humidity_max"`
	WindspeedMax *float64 `mapstructure:"windspeed_max"`
	ScaleFactor  *float64 `mapstructure:"scale_factor"`
}

// Config holds the runtime configuration for the service.
// This struct remains the "final, validated" config.
type Config struct {
	Host            string
	Port            int
	RateLimit       float64
	RateBurst       int
	ShutdownTimeout time.Duration

	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext

	LogLevel zapcore.Level
	LogFile  string // Empty logs to stderr

	Scaling schema.Scaling
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	Width            int    `mapstructure:"width"`
	Color            string `mapstructure:"color"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`
	LogLevel         string `mapstructure:"log-level"`
	LogFile          string `mapstructure:"log-file"`

	// --- Fields from serveCmd.Flags() ---
	Host            string  `mapstructure:"host"`
	Port            int     `mapstructure:"port"`
	RateLimit       float64 `mapstructure:"rate-limit"`
	RateBurst       int     `mapstructure:"rate-burst"`
	ShutdownTimeout string  `mapstructure:"shutdown-timeout"`

	// --- Normalization overrides from config file ---
	Scaling ScalingRawInput `mapstructure:"scaling"`
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processServerInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	if err := processScaling(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates the history backend configuration.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	if cfg.HistoryBackend == "" {
		cfg.HistoryBackend = schema.NoneBackend
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.HistoryBackend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect
	return ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect)
}

// validateSimpleInputs processes and validates output and logging fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.LogFile = input.LogFile

	if input.Width < 0 {
		return fmt.Errorf("width cannot be negative (received %d)", input.Width)
	}
	cfg.Width = input.Width

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json", input.Output)
	}

	levelText := input.LogLevel
	if levelText == "" {
		levelText = DefaultLogLevel
	}
	level, err := zapcore.ParseLevel(levelText)
	if err != nil {
		return fmt.Errorf("invalid --log-level value: %w", err)
	}
	cfg.LogLevel = level

	return nil
}

// processServerInputs validates the HTTP listener and rate limiter settings.
func processServerInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.Host = strings.TrimSpace(input.Host)
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}

	if input.Port <= 0 || input.Port > MaxPort {
		return fmt.Errorf("port must be between 1 and %d (received %d)", MaxPort, input.Port)
	}
	cfg.Port = input.Port

	if input.RateLimit < 0 {
		return fmt.Errorf("rate-limit cannot be negative (received %g)", input.RateLimit)
	}
	cfg.RateLimit = input.RateLimit

	if input.RateLimit > 0 && input.RateBurst <= 0 {
		return fmt.Errorf("rate-burst must be greater than 0 when rate limiting is enabled (received %d)", input.RateBurst)
	}
	cfg.RateBurst = input.RateBurst

	cfg.ShutdownTimeout = DefaultShutdownTimeout
	if input.ShutdownTimeout != "" {
		d, err := time.ParseDuration(input.ShutdownTimeout)
		if err != nil {
			return fmt.Errorf("invalid shutdown-timeout '%s': %w", input.ShutdownTimeout, err)
		}
		if d <= 0 {
			return fmt.Errorf("shutdown-timeout must be positive (received %s)", d)
		}
		cfg.ShutdownTimeout = d
	}

	return nil
}

// processScaling merges scaling overrides onto the defaults.
func processScaling(cfg *Config, input *ConfigRawInput) error {
	scaling := schema.DefaultScaling()
	overrides := []struct {
		name  string
		value *float64
		dest  *float64
	}{
		{"temp_max", input.Scaling.TempMax, &scaling.TempMax},
		{"humidity_max", input.Scaling.HumidityMax, &scaling.HumidityMax},
		{"windspeed_max", input.Scaling.WindspeedMax, &scaling.WindspeedMax},
		{"scale_factor", input.Scaling.ScaleFactor, &scaling.ScaleFactor},
	}

	for _, o := range overrides {
		if o.value == nil {
			continue
		}
		if *o.value <= 0 {
			return fmt.Errorf("scaling.%s must be positive (received %g)", o.name, *o.value)
		}
		*o.dest = *o.value
	}

	cfg.Scaling = scaling
	return nil
}

package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/bikecast/bikecast/internal/server"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// serveCmd runs the HTTP prediction API.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP prediction API",
	Long: `Start the HTTP server exposing the demand model.

Endpoints:
  POST /predict  - predict rentals for a JSON request body
  GET  /health   - liveness check
  GET  /model    - coefficient table and scaling constants

Every served prediction is recorded when a history backend is configured.
The log level is reloaded when the config file changes.

Examples:
  # Serve on the default port
  bikecast serve

  # Serve with SQLite history and a tighter rate limit
  bikecast serve --port 8080 --history-backend sqlite --rate-limit 10`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(rootCtx, os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runServer(ctx)
	},
}

// runServer builds the server from cfg and blocks until ctx is done.
func runServer(ctx context.Context) error {
	watchLogLevel()

	srv := server.New(server.Options{
		Host:            cfg.Host,
		Port:            cfg.Port,
		RateLimit:       cfg.RateLimit,
		RateBurst:       cfg.RateBurst,
		ShutdownTimeout: cfg.ShutdownTimeout,
		Scaling:         cfg.Scaling,
	}, newService("api"), logger.Logger)
	return srv.Run(ctx)
}

// watchLogLevel reloads the operator log level whenever the config file is written.
func watchLogLevel() {
	if viper.ConfigFileUsed() == "" {
		return
	}
	viper.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		level := viper.GetString("log-level")
		if err := logger.SetLevel(level); err != nil {
			logger.Warn("ignoring config reload", zap.String("file", e.Name), zap.Error(err))
			return
		}
		logger.Info("log level reloaded", zap.String("file", e.Name), zap.String("level", level))
	})
	viper.WatchConfig()
}

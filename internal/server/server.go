// Package server exposes the prediction service over HTTP.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/bikecast/bikecast/core"
	"github.com/bikecast/bikecast/schema"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Options configures the HTTP server.
type Options struct {
	Host            string
	Port            int
	RateLimit       float64 // requests per second, 0 disables limiting
	RateBurst       int
	ShutdownTimeout time.Duration
	Scaling         schema.Scaling
}

// Addr returns the listen address.
func (o Options) Addr() string {
	return net.JoinHostPort(o.Host, strconv.Itoa(o.Port))
}

// Server bundles router and dependencies for the REST API.
type Server struct {
	opts   Options
	svc    *core.Service
	logger *zap.Logger
	engine *gin.Engine
}

// New constructs a server with routes and middleware.
func New(opts Options, svc *core.Service, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 10 * time.Second
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(recoveryMiddleware(logger))
	engine.Use(requestLogger(logger))
	engine.Use(corsMiddleware())
	if opts.RateLimit > 0 {
		engine.Use(rateLimitMiddleware(rate.NewLimiter(rate.Limit(opts.RateLimit), opts.RateBurst)))
	}

	s := &Server{opts: opts, svc: svc.WithSource("api"), logger: logger, engine: engine}
	s.registerRoutes()
	return s
}

// Engine exposes the underlying gin engine (for tests).
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run starts the HTTP server and blocks until ctx is canceled or the listener fails.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr(),
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	s.logger.Info("bikecast server listening",
		zap.String("addr", srv.Addr),
		zap.Strings("endpoints", []string{"POST /predict", "GET /health", "GET /model"}),
	)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) registerRoutes() {
	s.engine.POST("/predict", s.handlePredict)
	s.engine.GET("/health", s.handleHealth)
	s.engine.GET("/model", s.handleModel)
}

package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"StockScout/pkg/config"
	xhttp "StockScout/pkg/http"
	applogger "StockScout/pkg/logger"
)

// App encapsulates the application lifecycle: HTTP server up, block until
// signal, graceful shutdown.
type App struct {
	cfg        *config.Config
	logger     *applogger.Logger
	handler    xhttp.Handler
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(cfg *config.Config, l *applogger.Logger, handler xhttp.Handler) *App {
	return &App{
		cfg:     cfg,
		logger:  l,
		handler: handler,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	metricsPath := ""
	if a.cfg.Metrics.Enabled {
		metricsPath = a.cfg.Metrics.Path
	}

	a.httpServer = xhttp.NewServer(a.logger, a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithMetricsPath(metricsPath),
	)

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}
	a.logger.Info("server started",
		applogger.Int("port", a.cfg.Server.Port),
		applogger.String("environment", a.cfg.Environment))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(ctx); err != nil {
		a.logger.Error("shutdown error", applogger.Error(err))
		return err
	}
	return nil
}

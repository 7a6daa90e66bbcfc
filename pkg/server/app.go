package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	xhttp "MoneyRoutine/pkg/http"
	applogger "MoneyRoutine/pkg/logger"
)

// App encapsulates the application lifecycle.
type App struct {
	httpServer *xhttp.Server
	log        *applogger.Logger
}

func New(srv *xhttp.Server, log *applogger.Logger) *App {
	if log == nil {
		log = applogger.Nop()
	}
	return &App{httpServer: srv, log: log}
}

// Run starts the HTTP server and blocks until ctx is done or an interrupt
// arrives, then shuts the server down.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.httpServer.Start(); err != nil {
		a.log.Error("http server start error", applogger.Error(err))
		return err
	}

	<-ctx.Done()
	a.log.Info("shutdown signal received")
	return a.shutdown()
}

func (a *App) shutdown() error {
	// the run context is already cancelled; Stop applies its own deadline
	if err := a.httpServer.Stop(context.Background()); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
		return err
	}
	a.log.Info("shutdown complete")
	return nil
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	_ "storefront/docs"
	"storefront/pkg/app"
	"storefront/pkg/config"
	"storefront/pkg/httpapi"
	"storefront/pkg/logger"
	"storefront/pkg/otel"
)

// @title Storefront API
// @version 1.0
// @description Catalog, cart and checkout for a single shopper
// @host localhost:8443
// @BasePath /
func main() {
	cfg := config.Load()
	if err := logger.Init(cfg.Log.Level, cfg.Log.Development); err != nil {
		os.Stderr.WriteString("init logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.Log
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Error("storefront api stopped", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg config.Config, log *zap.Logger) error {
	_, shutdownTracing, err := otel.InitTracing(log, otel.Config{
		ServiceName: "storefront-api",
		Host:        cfg.Tracing.Host,
		Stdout:      cfg.Tracing.Stdout,
		Probability: cfg.Tracing.SampleRatio,
	})
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			log.Warn("shutdown tracing", zap.Error(err))
		}
	}()

	a, err := app.New(cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	r := httpapi.NewRouter(httpapi.NewHandler(a.Session, log))
	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", cfg.Server.Addr), zap.Bool("tls", cfg.Server.TLSEnabled))
		var err error
		if cfg.Server.TLSEnabled {
			err = srv.ListenAndServeTLS(cfg.Server.TLSCert, cfg.Server.TLSKey)
		} else {
			err = srv.ListenAndServe()
		}
		if !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

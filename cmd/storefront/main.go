package main

import (
	"context"
	"os"

	"go.uber.org/zap"

	"storefront/pkg/app"
	"storefront/pkg/config"
	"storefront/pkg/logger"
	"storefront/pkg/otel"
)

func main() {
	cfg := config.Load()
	if err := logger.Init(cfg.Log.Level, cfg.Log.Development); err != nil {
		os.Stderr.WriteString("init logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.Log
	defer func() { _ = log.Sync() }()

	_, shutdown, err := otel.InitTracing(log, otel.Config{
		ServiceName: "storefront",
		Host:        cfg.Tracing.Host,
		Stdout:      cfg.Tracing.Stdout,
		Probability: cfg.Tracing.SampleRatio,
	})
	if err != nil {
		log.Fatal("init tracing", zap.Error(err))
	}
	defer func() { _ = shutdown(context.Background()) }()

	a, err := app.New(cfg, log)
	if err != nil {
		log.Fatal("build storefront", zap.Error(err))
	}
	defer a.Close()

	if err := NewMenu(a.Session, os.Stdin, os.Stdout).Run(context.Background()); err != nil {
		log.Error("menu", zap.Error(err))
	}
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"gomarketplace_sync/config"
	"gomarketplace_sync/internal/core/errs"
	"gomarketplace_sync/internal/ozon/app"
	"gomarketplace_sync/pkg/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	_ = godotenv.Load()

	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to YAML config")
	modeFlag := flag.String("mode", string(app.ModeAll), "what to sync: all, stocks or prices")
	priceBatch := flag.Int("price-batch", 0, "price batch size, 1..1000 (default: config value, or 1000 in prices mode)")
	flag.Parse()

	mode, err := app.ParseMode(*modeFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 2
	}

	zapLogger := logger.NewZap(os.Stderr, logger.Config{Development: cfg.Log.Development, Level: cfg.Log.Level})
	log := logger.FromZap(zapLogger, "[App]")
	defer log.Sync()

	batchSize, err := app.PriceBatchSize(mode, cfg, *priceBatch)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.MetricsAddr != "" {
		shutdown := app.ServeMetrics(cfg.MetricsAddr, log.WithPrefix("[Metrics]"))
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdown(shutdownCtx)
		}()
	}

	server, err := app.NewSyncServerFromConfig(cfg, log)
	if err != nil {
		log.Error("setup failed: %v", err)
		return 1
	}

	if _, err := server.Run(ctx, mode, batchSize); err != nil {
		switch {
		case errs.IsTimeout(err):
			log.Error("request timed out: %v", err)
		case errs.IsConnection(err):
			log.Error("connection error: %v", err)
		default:
			log.Error("sync failed: %v", err)
		}
		return 1
	}
	return 0
}

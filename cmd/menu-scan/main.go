// cmd/menu-scan/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"mcp-menu-scan/internal/server"
)

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

func newLogger(level string, dev bool) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	cfg := zap.NewProductionConfig()
	if dev {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

func main() {
	// .env is optional
	_ = godotenv.Load()

	var (
		port         = flag.Int("port", envInt("MENU_SCAN_PORT", 8012), "Port for HTTP transport")
		host         = flag.String("host", envOr("MENU_SCAN_HOST", "0.0.0.0"), "Host address")
		address      = flag.String("address", "", "Address (alias for host)")
		dbPath       = flag.String("db-path", envOr("MENU_SCAN_DB_PATH", "/data/menu-scan.db"), "Database path")
		weightsPath  = flag.String("weights", envOr("MENU_SCAN_WEIGHTS", ""), "YAML file overriding scoring weights")
		ratesURL     = flag.String("rates-url", envOr("MENU_SCAN_RATES_URL", ""), "USD-based exchange rate endpoint (static table when empty)")
		ratesTTL     = flag.Duration("rates-ttl", envDuration("MENU_SCAN_RATES_TTL", time.Hour), "How long fetched exchange rates stay valid")
		homeCurrency = flag.String("home-currency", envOr("MENU_SCAN_HOME_CURRENCY", "USD"), "Currency spends are recorded in")
		logLevel     = flag.String("log-level", envOr("MENU_SCAN_LOG_LEVEL", "info"), "Log level")
		dev          = flag.Bool("dev", false, "Human-readable development logging")
		version      = flag.Bool("version", false, "Show version")
	)
	flag.Parse()

	if *version {
		fmt.Println("mcp-menu-scan version 1.0.0")
		os.Exit(0)
	}

	logger, err := newLogger(*logLevel, *dev)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Use address if provided, otherwise use host
	hostAddr := *host
	if *address != "" {
		hostAddr = *address
	}

	config := &server.Config{
		Host:         hostAddr,
		Port:         *port,
		DBPath:       *dbPath,
		WeightsPath:  *weightsPath,
		RatesURL:     *ratesURL,
		RatesTTL:     *ratesTTL,
		HomeCurrency: *homeCurrency,
	}

	srv, err := server.NewMenuScanServer(config, logger)
	if err != nil {
		logger.Fatal("failed to create server", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(ctx); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-sigCh:
		logger.Info("received shutdown signal")
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	logger.Info("shutting down")
	cancel()
	if err := srv.Stop(); err != nil {
		logger.Error("error during shutdown", zap.Error(err))
	}
}

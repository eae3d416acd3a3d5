package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/iwvelando/ifta-report/internal/advisory"
	"github.com/iwvelando/ifta-report/internal/config"
	"github.com/iwvelando/ifta-report/internal/importer"
	"github.com/iwvelando/ifta-report/internal/server"
	"github.com/iwvelando/ifta-report/internal/store"
	"github.com/iwvelando/ifta-report/pkg/constants"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

var version = "dev"

func main() {
	configLocation := flag.String("config", constants.DefaultServerConfigFile, "path to server configuration file")
	addressFlag := flag.String("address", "", "listen address override")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	envErr := godotenv.Load()

	cfg, err := server.LoadConfig(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load server configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}
	if *addressFlag != "" {
		cfg.Address = *addressFlag
	}

	logger, err := config.NewLogger(cfg.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	if envErr != nil && !os.IsNotExist(envErr) {
		logger.Warn("failed to load .env file",
			zap.String("op", "main"),
			zap.Error(envErr),
		)
	}

	// Without a report configuration the built-in rates and an empty ledger
	// are used; the advisory key can still come from the environment.
	var conf *config.Configuration
	if cfg.ConfigFile != "" {
		conf, err = config.LoadConfiguration(cfg.ConfigFile)
	} else {
		conf, err = config.LoadConfigurationFromReader(strings.NewReader(""))
	}
	if err != nil {
		logger.Fatal(fmt.Sprintf("failed to load report configuration at %s", cfg.ConfigFile),
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	logger.Debug("report configuration loaded",
		zap.String("op", "main"),
		zap.String("config", conf.Dump()),
	)
	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	rates := conf.RateTable()
	ledger := store.New(logger)
	ledger.AppendAll(conf.LedgerTrips())
	advisoryConfig := conf.AdvisoryConfig()

	if !advisoryConfig.Enabled() {
		logger.Warn("no advisory API key configured, the advisory endpoint will return the fallback assessment",
			zap.String("op", "main"),
		)
	}

	handler := server.NewHandler(server.Options{
		Logger:   logger,
		Store:    ledger,
		Importer: importer.New(logger),
		Advisor:  advisory.NewClient(advisoryConfig, logger),
		Rates:    rates,
		Config:   cfg,
		Version:  version,
	})

	srv := &http.Server{
		Addr:              cfg.Address,
		Handler:           handler,
		ReadHeaderTimeout: 20 * time.Second,
	}

	go func() {
		logger.Info("server starting",
			zap.String("op", "main"),
			zap.String("address", cfg.Address),
			zap.Int("trips", ledger.Len()),
			zap.String("version", version),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to start server",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server", zap.String("op", "main"))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	logger.Info("server exited", zap.String("op", "main"))
}

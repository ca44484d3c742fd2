package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"eirstat/internal/app"
	"eirstat/internal/config"
)

var version = "dev"

func main() {
	configFile := flag.String("config", "", "path to config file (defaults to eirstat.yaml, overridable via EIRSTAT_CONFIG)")
	dataDir := flag.String("data", "", "directory holding the raw CSV datasets (overrides config)")
	outputDir := flag.String("out", "", "directory for exported results (overrides config)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("eirstat %s\n", version)
		return
	}

	if err := run(*configFile, *dataDir, *outputDir); err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func run(configFile, dataDir, outputDir string) error {
	var cfg *config.Config
	var err error
	if configFile != "" {
		cfg, err = config.LoadFromFile(configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if dataDir != "" {
		cfg.Paths.DataDir = dataDir
	}
	if outputDir != "" {
		cfg.Paths.OutputDir = outputDir
	}

	application, err := app.NewApplication(cfg)
	if err != nil {
		return err
	}
	defer application.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, err := application.Run(ctx)
	if err != nil {
		return err
	}

	application.Logger.Info("eirstat finished",
		"version", version,
		"run_id", summary.RunID,
		"duration", summary.Duration.String())
	return nil
}

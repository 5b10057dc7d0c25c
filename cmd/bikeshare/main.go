package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"bikeshare/internal/app"
	"bikeshare/internal/config"
	"bikeshare/internal/infrastructure"
	"bikeshare/internal/session"
	"bikeshare/pkg/contracts"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	showVersion := flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(contracts.GetFullVersionString())
		return
	}

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	consoleSettings(cfg)

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer infrastructure.CloseLogFile()

	providers, err := infrastructure.InitializeOTel(infrastructure.OTelConfigFromTelemetry(cfg.Telemetry), logger)
	if err != nil {
		return fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}
	defer providers.Shutdown(context.Background())

	svc, _, err := app.NewAnalysisService(cfg, logger, providers)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.InfoContext(ctx, "Console session starting", slog.String("version", config.AppVersion))

	runner := session.NewRunner(svc, os.Stdin, os.Stdout, logger)
	if err := runner.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// consoleSettings keeps stdout for the conversation: logs go to the log
// file or nowhere, and spans are never printed.
func consoleSettings(cfg *config.Config) {
	switch strings.ToLower(cfg.Logging.Output) {
	case "file", "discard":
	case "both":
		cfg.Logging.Output = "file"
	default:
		cfg.Logging.Output = "discard"
	}
	if cfg.Telemetry.TraceExporter == "stdout" {
		cfg.Telemetry.TraceExporter = "none"
	}
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/riskibarqy/pitchmart/internal/app"
	"github.com/riskibarqy/pitchmart/internal/config"
	"github.com/riskibarqy/pitchmart/internal/observability"
	"github.com/riskibarqy/pitchmart/internal/platform/logging"
	"github.com/riskibarqy/pitchmart/internal/platform/metrics"
	"github.com/riskibarqy/pitchmart/internal/usecase"
)

func main() {
	force := flag.Bool("force", false, "refetch and rebuild even when outputs already exist")
	flag.Usage = printUsage
	flag.Parse()

	stage := usecase.StageAll
	if flag.NArg() > 0 {
		stage = flag.Arg(0)
	}

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)

	if err := run(cfg, logger, stage, *force); err != nil {
		logger.Error("pipeline run failed", "stage", stage, "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *logging.Logger, stage string, force bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownUptrace, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		return fmt.Errorf("init uptrace: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := shutdownUptrace(shutdownCtx); err != nil {
			logger.Error("uptrace shutdown failed", "error", err)
		}
	}()

	stopPyroscope, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		return fmt.Errorf("init pyroscope: %w", err)
	}
	defer func() {
		if err := stopPyroscope(); err != nil {
			logger.Error("pyroscope stop failed", "error", err)
		}
	}()

	pprofSrv, err := observability.StartPprofServer(cfg, logger)
	if err != nil {
		return fmt.Errorf("start pprof: %w", err)
	}
	defer func() {
		if err := observability.StopPprofServer(pprofSrv, logger, 5*time.Second); err != nil {
			logger.Error("pprof shutdown failed", "error", err)
		}
	}()

	metricsSrv, err := observability.StartMetricsServer(cfg, logger)
	if err != nil {
		return fmt.Errorf("start metrics: %w", err)
	}
	defer func() {
		if err := observability.StopMetricsServer(metricsSrv, logger, 5*time.Second); err != nil {
			logger.Error("metrics shutdown failed", "error", err)
		}
	}()

	manifest, err := config.LoadManifest(cfg.CompetitionsFile)
	if err != nil {
		return fmt.Errorf("load competition manifest: %w", err)
	}
	entries := manifest.Enabled()
	if len(entries) == 0 {
		return fmt.Errorf("no enabled competitions in %s", cfg.CompetitionsFile)
	}

	application, err := app.New(cfg, logger, metrics.NewManager(nil))
	if err != nil {
		return err
	}
	defer func() {
		if err := application.Close(); err != nil {
			logger.Error("close database failed", "error", err)
		}
	}()

	logger.Info("pipeline starting",
		"stage", stage,
		"competitions", len(entries),
		"force", force,
	)

	start := time.Now()
	if err := application.Pipeline.Run(ctx, stage, entries, force); err != nil {
		return err
	}

	logger.Info("pipeline finished", "stage", stage, "duration", time.Since(start).String())
	return nil
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "usage: %s [flags] [stage]\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "stages: %s, %s, %s, %s, %s (default %s)\n",
		usecase.StageDownload, usecase.StageBronze, usecase.StageSilver,
		usecase.StageGold, usecase.StageAll, usecase.StageAll)
	flag.PrintDefaults()
}

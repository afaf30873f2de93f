package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/riskibarqy/league-forecast/internal/app"
	"github.com/riskibarqy/league-forecast/internal/config"
	"github.com/riskibarqy/league-forecast/internal/observability"
	"github.com/riskibarqy/league-forecast/internal/platform/logging"
)

const usage = `usage: forecast <command> [flags]

commands:
  predict   simulate the remaining fixtures and write the forecast reports
  table     print the current league table
  stats     print per-team statistics and efficiencies

flags:
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		fmt.Fprint(stderr, usage)
		return 2
	}
	command := args[0]

	fs := flag.NewFlagSet("forecast "+command, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	configPath := fs.String("config", "config.yaml", "path to the YAML configuration file")
	seed := fs.Int64("seed", 0, "random seed, overrides simulation.random_seed")
	trials := fs.Int("n", 0, "number of simulated seasons, overrides simulation.n_simulations")
	workers := fs.Int("workers", -1, "simulation workers, 0 uses every CPU")
	outDir := fs.String("out", "", "output directory, overrides output.dir")

	switch command {
	case "predict", "table", "stats":
	case "-h", "--help", "help":
		fs.Usage()
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n", command)
		fs.Usage()
		return 2
	}
	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "load config: %v\n", err)
		return 1
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			cfg.Simulation.RandomSeed = *seed
		case "n":
			cfg.Simulation.NSimulations = *trials
		case "workers":
			cfg.Simulation.Workers = *workers
		case "out":
			cfg.Output.Dir = *outDir
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "invalid flags: %v\n", err)
		return 2
	}

	logger := logging.New(logging.Options{Format: cfg.LogFormat, Level: cfg.Level()})
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.InitTracing(cfg, logger)
	if err != nil {
		logger.Error("init tracing", "error", err)
		return 1
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Warn("shutdown tracing", "error", err)
		}
	}()

	stopProfile, err := observability.StartCPUProfile(cfg, logger)
	if err != nil {
		logger.Error("start cpu profile", "error", err)
		return 1
	}
	defer func() {
		if err := stopProfile(); err != nil {
			logger.Warn("stop cpu profile", "error", err)
		}
	}()

	forecaster := app.NewForecaster(cfg, logger)
	switch command {
	case "predict":
		_, err = forecaster.Predict(ctx, stdout)
	case "table":
		err = forecaster.Table(ctx, stdout)
	case "stats":
		err = forecaster.Stats(ctx, stdout)
	}
	if err != nil {
		logger.Error(command+" failed", "error", err)
		return 1
	}

	return 0
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/rickgao/homesale-sim/internal/config"
	"github.com/rickgao/homesale-sim/internal/database"
	"github.com/rickgao/homesale-sim/internal/loader"
	"github.com/rickgao/homesale-sim/internal/metrics"
	"github.com/rickgao/homesale-sim/internal/simulator"
	"github.com/rickgao/homesale-sim/internal/version"
	"github.com/rickgao/homesale-sim/internal/writer"
)

// options holds command-line settings.
type options struct {
	csvPath       string
	daysPerPeriod int
	dryRun        bool
	periods       int
	configPath    string
	logLevel      slog.Level
}

func parseFlags(args []string, output io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("simulator", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringVar(&opts.csvPath, "home-sale-csv-fl", "", "path to home sales CSV (required)")
	fs.IntVar(&opts.daysPerPeriod, "days-per-period", 0, "simulated days per pass over all records (required)")
	fs.BoolVar(&opts.dryRun, "dry-run", false, "run one period without writing to the database")
	fs.IntVar(&opts.periods, "periods", 0, "stop after this many periods (0 runs forever)")
	fs.StringVar(&opts.configPath, "config", "", "optional YAML config file")
	logLevel := fs.String("log-level", "debug", "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	if opts.csvPath == "" {
		return opts, errors.New("--home-sale-csv-fl is required")
	}
	if opts.daysPerPeriod < 1 {
		return opts, errors.New("--days-per-period is required and must be >= 1")
	}
	if opts.periods < 0 {
		return opts, errors.New("--periods must be >= 0")
	}
	if err := opts.logLevel.UnmarshalText([]byte(*logLevel)); err != nil {
		return opts, fmt.Errorf("--log-level: %w", err)
	}
	if opts.dryRun {
		opts.periods = 1
	}
	return opts, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(2)
	}

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: opts.logLevel,
	}))
	slog.SetDefault(logger)
	logger = logger.With("run_id", uuid.NewString())

	logger.Info("starting simulator",
		"build", version.Get(),
		"csv", opts.csvPath,
		"days_per_period", opts.daysPerPeriod,
		"dry_run", opts.dryRun,
		"periods", opts.periods,
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	if err := run(ctx, opts, os.LookupEnv, logger); err != nil {
		logger.Error("simulator failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, lookup config.LookupFunc, logger *slog.Logger) error {
	// Load configuration
	cfg, err := config.LoadAndValidate(opts.configPath, lookup, opts.dryRun)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	records, err := loader.Load(opts.csvPath)
	if err != nil {
		return fmt.Errorf("load home records: %w", err)
	}
	logger.Debug("home records loaded", "count", len(records))

	m := metrics.New()
	gen, err := simulator.New(
		simulator.Config{
			DaysPerPeriod: opts.daysPerPeriod,
			DriftEnabled:  cfg.Simulation.DriftEnabled,
			NoiseStdDev:   *cfg.Simulation.NoiseStdDev,
		},
		records,
		simulator.WithLogger(logger),
		simulator.WithMetrics(m),
	)
	if err != nil {
		return fmt.Errorf("create simulator: %w", err)
	}

	if opts.dryRun {
		stopMetrics := serveMetrics(cfg.Metrics.Port, m.Handler(nil), logger)
		defer stopMetrics()

		var sink writer.Discard
		err := simulator.Run(ctx, gen, &sink, opts.periods)
		if errors.Is(err, context.Canceled) {
			logger.Info("dry run stopped", "events", sink.Stats().Inserts)
			return nil
		}
		if err != nil {
			return fmt.Errorf("dry run: %w", err)
		}
		logger.Info("dry run complete", "events", sink.Stats().Inserts)
		return nil
	}

	// Connect to database
	logger.Info("connecting to database",
		"host", cfg.Database.Host,
		"port", cfg.Database.Port,
		"database", cfg.Database.Name,
	)
	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()
	logger.Info("database connected")

	stopMetrics := serveMetrics(cfg.Metrics.Port, m.Handler(pool), logger)
	defer stopMetrics()

	w := writer.NewEventWriter(pool, cfg.Database.Table, logger, m)
	err = simulator.Run(ctx, gen, w, opts.periods)
	stats := w.Stats()

	if errors.Is(err, context.Canceled) {
		logger.Info("simulator stopped", "events", stats.Inserts, "periods", gen.Period())
		return nil
	}
	if err != nil {
		return fmt.Errorf("store events: %w", err)
	}
	logger.Info("simulator finished", "events", stats.Inserts, "periods", gen.Period())
	return nil
}

// serveMetrics starts the metrics server when port > 0 and returns a
// function that shuts it down.
func serveMetrics(port int, handler http.Handler, logger *slog.Logger) func() {
	if port <= 0 {
		return func() {}
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: handler,
	}
	go func() {
		logger.Info("starting metrics server", "port", port)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("metrics server error", "error", err)
		}
	}()

	return func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}
}

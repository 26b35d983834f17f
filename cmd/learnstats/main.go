package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/phamthanhtung35NB/excel-to-chart/internal/app"
	"github.com/phamthanhtung35NB/excel-to-chart/internal/config"
	"github.com/phamthanhtung35NB/excel-to-chart/internal/errors"
	"github.com/phamthanhtung35NB/excel-to-chart/internal/infrastructure"
	"github.com/phamthanhtung35NB/excel-to-chart/pkg/contracts"
)

// options are the command line overrides. Empty values keep the configured
// setting.
type options struct {
	configFile string
	progress   string
	students   string
	quizzes    string
	outDir     string
	version    bool
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet(config.AppName, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&opts.configFile, "config", "", "path to a YAML config file")
	fs.StringVar(&opts.progress, "progress", "", "learning progress export (.xlsx)")
	fs.StringVar(&opts.students, "students", "", "student roster export (.xlsx or glob pattern)")
	fs.StringVar(&opts.quizzes, "quizzes", "", "quiz results export (.xlsx)")
	fs.StringVar(&opts.outDir, "out", "", "output directory for charts")
	fs.BoolVar(&opts.version, "version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	return opts, nil
}

// apply overlays the flags on cfg, the highest precedence source
func (o options) apply(cfg *config.Config) {
	if o.progress != "" {
		cfg.Inputs.Progress = o.progress
	}
	if o.students != "" {
		cfg.Inputs.Students = o.students
	}
	if o.quizzes != "" {
		cfg.Inputs.Quizzes = o.quizzes
	}
	if o.outDir != "" {
		cfg.Output.Dir = o.outDir
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	run(ctx, os.Args[1:], os.Stdout)
}

// run never fails the process: every error ends in a printed message.
func run(ctx context.Context, args []string, stdout io.Writer) {
	opts, err := parseFlags(args)
	if err != nil {
		fmt.Fprintln(stdout, errors.UserMessage(errors.NewConfigError("invalid arguments", err)))
		return
	}
	if opts.version {
		fmt.Fprintln(stdout, contracts.GetFullVersionString())
		return
	}

	cfg, err := config.Load(opts.configFile)
	if err != nil {
		fmt.Fprintln(stdout, errors.UserMessage(errors.NewConfigError("failed to load configuration", err)))
		return
	}
	opts.apply(cfg)

	paths, err := config.GetPaths(cfg)
	if err != nil {
		fmt.Fprintln(stdout, errors.UserMessage(err))
		return
	}
	cfg.Logging.FilePath = paths.Resolve(cfg.Logging.FilePath)

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize logger:", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	ctx = infrastructure.EnsureRunID(ctx)
	logger.InfoContext(ctx, "Starting learnstats",
		slog.String("version", contracts.Version),
		slog.String("base_dir", paths.BaseDir),
		slog.String("output_dir", paths.OutputDir),
		slog.String("logs_dir", paths.LogsDir))

	telemetry, err := infrastructure.InitializeTelemetry(cfg.Telemetry, logger)
	if err != nil {
		fmt.Fprintln(stdout, errors.UserMessage(errors.NewConfigError("failed to initialize telemetry", err)))
		return
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.ErrorContext(ctx, "Telemetry shutdown failed", slog.String("error", err.Error()))
		}
	}()

	application, err := app.NewApplication(cfg, paths, telemetry, stdout, logger)
	if err != nil {
		fmt.Fprintln(stdout, errors.UserMessage(err))
		return
	}

	if err := application.Execute(ctx); err != nil {
		logger.InfoContext(ctx, "Run finished with error", slog.String("error_type", string(errors.Classify(err))))
	}
}

package app

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/phamthanhtung35NB/excel-to-chart/internal/config"
	"github.com/phamthanhtung35NB/excel-to-chart/internal/dataprocessing"
	"github.com/phamthanhtung35NB/excel-to-chart/internal/errors"
	"github.com/phamthanhtung35NB/excel-to-chart/internal/exporter"
	"github.com/phamthanhtung35NB/excel-to-chart/internal/files"
	"github.com/phamthanhtung35NB/excel-to-chart/internal/infrastructure"
	"github.com/phamthanhtung35NB/excel-to-chart/pkg/contracts"
	"github.com/phamthanhtung35NB/excel-to-chart/pkg/contracts/domain"
)

// Pipeline stage names, used for spans and the stage duration metric
const (
	StageLoad      = "load"
	StageNormalize = "normalize"
	StageAggregate = "aggregate"
	StageReport    = "report"
)

// Application wires the pipeline stages of one run
type Application struct {
	Config    *config.Config
	Paths     *config.Paths
	Logger    *slog.Logger
	Telemetry *infrastructure.Telemetry

	loader       *dataprocessing.Loader
	normalizer   *dataprocessing.Normalizer
	summarizer   *dataprocessing.Summarizer
	reporter     *exporter.Reporter
	summary      *exporter.SummaryWriter
	errorHandler *errors.ErrorHandler
}

// NewApplication creates the pipeline. Console output goes to out; logs go
// through logger only.
func NewApplication(cfg *config.Config, paths *config.Paths, telemetry *infrastructure.Telemetry, out io.Writer, logger *slog.Logger) (*Application, error) {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}

	chartCfg, err := exporter.NewChartConfig(cfg.Report)
	if err != nil {
		return nil, errors.NewConfigError("invalid chart settings", err)
	}

	renderer := exporter.NewRenderer(chartCfg, infrastructure.WithComponent(logger, "renderer"))
	manager := files.NewManager(paths.OutputDir, infrastructure.WithComponent(logger, "files"))

	return &Application{
		Config:    cfg,
		Paths:     paths,
		Logger:    logger,
		Telemetry: telemetry,

		loader: dataprocessing.NewLoader(paths.BaseDir, infrastructure.WithComponent(logger, "loader")),
		normalizer: dataprocessing.NewNormalizer(dataprocessing.ParseOptions{
			DateTimeLayout: cfg.Parsing.DateTimeLayout,
			DateLayout:     cfg.Parsing.DateLayout,
			PassToken:      cfg.Parsing.PassToken,
		}, infrastructure.WithComponent(logger, "normalizer")),
		summarizer: dataprocessing.NewSummarizer(dataprocessing.ReportOptions{
			CompletedLabel:        cfg.Parsing.CompletedLabel,
			ActiveLabel:           cfg.Parsing.ActiveLabel,
			PassLabel:             cfg.Parsing.PassToken,
			FailLabel:             config.DefaultFailLabel,
			TopCourses:            cfg.Report.TopCourses,
			MinInstructorStudents: cfg.Report.MinInstructorStudents,
		}, infrastructure.WithComponent(logger, "summarizer")),
		reporter:     exporter.NewReporter(renderer, manager, cfg.Output.ExportCSV, infrastructure.WithComponent(logger, "reporter")),
		summary:      exporter.NewSummaryWriter(out),
		errorHandler: errors.NewErrorHandler(logger),
	}, nil
}

// Execute runs the pipeline and prints the user message when it aborts. The
// error is returned for logging only; callers end normally either way.
func (a *Application) Execute(ctx context.Context) error {
	ctx = infrastructure.EnsureRunID(ctx)
	err := a.Run(ctx)
	if err != nil {
		a.summary.Message(a.errorHandler.Handle(ctx, err))
	}
	return err
}

// Run executes load, normalize, aggregate and report in order. Output files
// are written only after every figure rendered.
func (a *Application) Run(ctx context.Context) error {
	ctx = infrastructure.EnsureRunID(ctx)
	start := time.Now()

	a.Logger.InfoContext(ctx, "Run started",
		slog.String("version", contracts.Version),
		slog.String("progress", a.Config.Inputs.Progress),
		slog.String("students", a.Config.Inputs.Students),
		slog.String("quizzes", a.Config.Inputs.Quizzes),
		slog.String("output_dir", a.Paths.OutputDir))

	tables, err := a.load(ctx)
	if err != nil {
		return err
	}

	snap, err := a.normalize(ctx, tables)
	if err != nil {
		return err
	}

	report, err := a.aggregate(ctx, snap)
	if err != nil {
		return err
	}
	a.summary.Report(report)

	paths, err := a.report(ctx, report)
	if err != nil {
		return err
	}
	for _, p := range paths {
		a.summary.Saved(a.displayPath(p))
	}
	a.summary.Done()

	a.Logger.InfoContext(ctx, "Run completed",
		slog.Int("artifacts", len(paths)),
		slog.Duration("duration", time.Since(start)))
	return nil
}

func (a *Application) load(ctx context.Context) (_ *dataprocessing.Tables, err error) {
	ctx, end := a.Telemetry.StartStage(ctx, StageLoad)
	defer func() { end(err) }()

	tables, err := a.loader.LoadAll(ctx, dataprocessing.Inputs{
		Progress: a.Config.Inputs.Progress,
		Students: a.Config.Inputs.Students,
		Quizzes:  a.Config.Inputs.Quizzes,
		Options: dataprocessing.LoadOptions{
			Sheet:     a.Config.Inputs.Sheet,
			HeaderRow: a.Config.Inputs.HeaderRow,
		},
	})
	if err != nil {
		return nil, err
	}

	for _, loaded := range []struct {
		label string
		table *dataprocessing.Table
	}{
		{"tiến trình học tập", tables.Progress},
		{"danh sách học viên", tables.Students},
		{"kết quả bài kiểm tra", tables.Quizzes},
	} {
		if loaded.table == nil {
			continue
		}
		a.summary.Loaded(loaded.label, loaded.table.Len())
		a.Telemetry.Metrics.RowsLoaded.Add(ctx, int64(loaded.table.Len()),
			metric.WithAttributes(attribute.String("source", filepath.Base(loaded.table.Source))))
	}
	return tables, nil
}

func (a *Application) normalize(ctx context.Context, tables *dataprocessing.Tables) (_ domain.Snapshot, err error) {
	ctx, end := a.Telemetry.StartStage(ctx, StageNormalize)
	defer func() { end(err) }()

	snap, stats, err := a.normalizer.NormalizeAll(ctx, tables)
	if err != nil {
		return domain.Snapshot{}, err
	}

	m := a.Telemetry.Metrics
	for _, s := range stats {
		source := attribute.String("source", filepath.Base(s.Source))
		m.RowsDropped.Add(ctx, int64(s.Dropped), metric.WithAttributes(source))
		for _, field := range s.MissFields() {
			m.ParseMisses.Add(ctx, int64(s.ParseMisses[field]),
				metric.WithAttributes(source, attribute.String("column", field)))
		}
	}
	return snap, nil
}

func (a *Application) aggregate(ctx context.Context, snap domain.Snapshot) (_ *dataprocessing.Report, err error) {
	ctx, end := a.Telemetry.StartStage(ctx, StageAggregate)
	defer func() { end(err) }()

	report, err := a.summarizer.BuildReport(ctx, snap)
	if err != nil {
		return nil, errors.NewUnexpectedError("failed to aggregate", err)
	}
	if report.Progress != nil {
		a.Telemetry.Metrics.ProgressOutOfRange.Add(ctx, int64(report.Progress.Summary.ExcludedProgress))
	}
	return report, nil
}

func (a *Application) report(ctx context.Context, report *dataprocessing.Report) (_ []string, err error) {
	ctx, end := a.Telemetry.StartStage(ctx, StageReport)
	defer func() { end(err) }()

	a.summary.RenderingStarted()
	paths, err := a.reporter.Export(ctx, report)
	if err != nil {
		return nil, err
	}

	var charts int64
	for _, p := range paths {
		if filepath.Ext(p) == ".png" {
			charts++
		}
	}
	a.Telemetry.Metrics.ChartsWritten.Add(ctx, charts)
	return paths, nil
}

// displayPath shows artifacts relative to the working directory when possible
func (a *Application) displayPath(path string) string {
	rel, err := filepath.Rel(a.Paths.BaseDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}


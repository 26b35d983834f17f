package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/phamthanhtung35NB/excel-to-chart/internal/config"
	"github.com/phamthanhtung35NB/excel-to-chart/pkg/contracts"
)

const MeterName = "learnstats"

// Telemetry bundles the tracer and the pipeline metrics of one run.
// Metrics are always collected; they reach disk only when a metrics file is
// configured.
type Telemetry struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Registry       *prometheus.Registry
	Tracer         trace.Tracer
	Metrics        *PipelineMetrics

	metricsFile string
	logger      *slog.Logger
}

// PipelineMetrics holds the counters recorded by the pipeline stages
type PipelineMetrics struct {
	RowsLoaded         metric.Int64Counter
	RowsDropped        metric.Int64Counter
	ParseMisses        metric.Int64Counter
	ProgressOutOfRange metric.Int64Counter
	ChartsWritten      metric.Int64Counter
	StageDuration      metric.Float64Histogram
}

// InitializeTelemetry sets up tracing and metrics for a run
func InitializeTelemetry(cfg config.TelemetryConfig, logger *slog.Logger) (*Telemetry, error) {
	if logger == nil {
		logger = slog.Default()
	}

	res := newResource()

	t := &Telemetry{
		Tracer:      noop.NewTracerProvider().Tracer(MeterName),
		metricsFile: cfg.MetricsFile,
		logger:      logger,
	}

	switch cfg.TraceExporter {
	case "stdout":
		exporter, err := stdouttrace.New(stdouttrace.WithWriter(os.Stderr), stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("failed to create trace exporter: %w", err)
		}
		t.TracerProvider = sdktrace.NewTracerProvider(
			sdktrace.WithSyncer(exporter),
			sdktrace.WithResource(res),
		)
		t.Tracer = t.TracerProvider.Tracer(MeterName, trace.WithInstrumentationVersion(contracts.Version))
	case "none", "":
	default:
		return nil, fmt.Errorf("unsupported trace exporter: %s", cfg.TraceExporter)
	}

	t.Registry = prometheus.NewRegistry()
	exporter, err := otelprom.New(otelprom.WithRegisterer(t.Registry))
	if err != nil {
		return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}
	t.MeterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)

	t.Metrics, err = newPipelineMetrics(t.MeterProvider.Meter(MeterName, metric.WithInstrumentationVersion(contracts.Version)))
	if err != nil {
		return nil, fmt.Errorf("failed to create pipeline metrics: %w", err)
	}

	logger.Debug("Telemetry initialized",
		slog.String("trace_exporter", cfg.TraceExporter),
		slog.String("metrics_file", cfg.MetricsFile))

	return t, nil
}

// newResource describes the service for traces and metrics
func newResource() *resource.Resource {
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(config.AppName),
		semconv.ServiceVersion(contracts.Version),
	)
}

func newPipelineMetrics(meter metric.Meter) (*PipelineMetrics, error) {
	m := &PipelineMetrics{}
	var err error

	if m.RowsLoaded, err = meter.Int64Counter("learnstats_rows_loaded",
		metric.WithDescription("Data rows read from input workbooks")); err != nil {
		return nil, err
	}
	if m.RowsDropped, err = meter.Int64Counter("learnstats_rows_dropped",
		metric.WithDescription("Rows discarded for a blank student name")); err != nil {
		return nil, err
	}
	if m.ParseMisses, err = meter.Int64Counter("learnstats_parse_misses",
		metric.WithDescription("Non-critical values that could not be parsed")); err != nil {
		return nil, err
	}
	if m.ProgressOutOfRange, err = meter.Int64Counter("learnstats_progress_out_of_range",
		metric.WithDescription("Progress values excluded from the bucket distribution")); err != nil {
		return nil, err
	}
	if m.ChartsWritten, err = meter.Int64Counter("learnstats_charts_written",
		metric.WithDescription("Chart images written")); err != nil {
		return nil, err
	}
	if m.StageDuration, err = meter.Float64Histogram("learnstats_stage_duration_seconds",
		metric.WithDescription("Pipeline stage duration in seconds"),
		metric.WithUnit("s")); err != nil {
		return nil, err
	}
	return m, nil
}

// StartStage opens a span for a pipeline stage. The returned func ends the
// span, records its duration and marks it failed when err is non-nil.
func (t *Telemetry) StartStage(ctx context.Context, stage string) (context.Context, func(err error)) {
	start := time.Now()
	ctx, span := t.Tracer.Start(ctx, stage, trace.WithAttributes(
		attribute.String("run_id", GetRunID(ctx)),
	))

	return ctx, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()
		t.Metrics.StageDuration.Record(ctx, time.Since(start).Seconds(),
			metric.WithAttributes(attribute.String("stage", stage)))
	}
}

// Shutdown flushes spans and writes the metrics file when one is configured.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error

	if t.metricsFile != "" {
		if err := prometheus.WriteToTextfile(t.metricsFile, t.Registry); err != nil {
			errs = append(errs, fmt.Errorf("write metrics file: %w", err))
		} else {
			t.logger.InfoContext(ctx, "Metrics written", slog.String("path", t.metricsFile))
		}
	}
	if t.TracerProvider != nil {
		if err := t.TracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown tracer provider: %w", err))
		}
	}
	if t.MeterProvider != nil {
		if err := t.MeterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown meter provider: %w", err))
		}
	}

	return errors.Join(errs...)
}

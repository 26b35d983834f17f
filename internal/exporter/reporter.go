package exporter

import (
	"context"
	"log/slog"

	"github.com/phamthanhtung35NB/excel-to-chart/internal/dataprocessing"
	apperrors "github.com/phamthanhtung35NB/excel-to-chart/internal/errors"
	"github.com/phamthanhtung35NB/excel-to-chart/internal/files"
)

// Reporter turns a report into files in the output directory
type Reporter struct {
	renderer  *Renderer
	csv       *CSVWriter
	files     *files.Manager
	exportCSV bool
	logger    *slog.Logger
}

// NewReporter creates a reporter writing through manager
func NewReporter(renderer *Renderer, manager *files.Manager, exportCSV bool, logger *slog.Logger) *Reporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reporter{
		renderer:  renderer,
		csv:       NewCSVWriter(),
		files:     manager,
		exportCSV: exportCSV,
		logger:    logger,
	}
}

// Export renders every artifact and then saves them together. Nothing is
// written when any artifact fails to render, and a failed save removes the
// files it already wrote. It returns the saved paths in render order.
func (r *Reporter) Export(ctx context.Context, report *dataprocessing.Report) ([]string, error) {
	artifacts, err := r.renderer.RenderAll(ctx, report)
	if err != nil {
		return nil, apperrors.NewUnexpectedError("failed to render charts", err)
	}

	if r.exportCSV {
		tables, err := r.csv.Tables(report)
		if err != nil {
			return nil, apperrors.NewUnexpectedError("failed to encode CSV tables", err)
		}
		artifacts = append(artifacts, tables...)
	}

	if len(artifacts) == 0 {
		r.logger.InfoContext(ctx, "No artifacts to write")
		return nil, nil
	}

	if err := r.files.EnsureDirectory(); err != nil {
		return nil, apperrors.NewStorageError("failed to create output directory", err).
			WithContext("dir", r.files.Dir())
	}
	paths, err := r.files.WriteAll(artifacts)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to save artifacts", err).
			WithContext("dir", r.files.Dir())
	}

	r.logger.InfoContext(ctx, "Artifacts saved",
		slog.String("dir", r.files.Dir()),
		slog.Int("count", len(paths)))
	return paths, nil
}

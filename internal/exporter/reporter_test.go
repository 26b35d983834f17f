package exporter

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/phamthanhtung35NB/excel-to-chart/internal/errors"
	"github.com/phamthanhtung35NB/excel-to-chart/internal/files"
	"github.com/phamthanhtung35NB/excel-to-chart/internal/shared/testutil"
)

func TestReporter_Export(t *testing.T) {
	logger, handler := testutil.NewTestLogger(t)
	dir := filepath.Join(t.TempDir(), "charts")
	reporter := NewReporter(NewRenderer(testChartConfig(), logger), files.NewManager(dir, logger), false, logger)

	paths, err := reporter.Export(context.Background(), sampleReport(t))
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, LearningProgressFigure),
		filepath.Join(dir, RegistrationFigure),
		filepath.Join(dir, CourseDetailFigure),
		filepath.Join(dir, QuizFigure),
	}, paths)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 4)
	assert.True(t, handler.ContainsMessage("Artifacts saved"))
}

func TestReporter_ExportWithCSV(t *testing.T) {
	dir := t.TempDir()
	reporter := NewReporter(NewRenderer(testChartConfig(), nil), files.NewManager(dir, nil), true, nil)

	paths, err := reporter.Export(context.Background(), sampleReport(t))
	require.NoError(t, err)
	assert.Len(t, paths, 4+12)
	assert.FileExists(t, filepath.Join(dir, "khoa_hoc_ket_qua.csv"))
}

func TestReporter_ExportFailureLeavesNoFiles(t *testing.T) {
	dir := t.TempDir()
	// A directory where the third figure belongs makes its rename fail.
	require.NoError(t, os.Mkdir(filepath.Join(dir, CourseDetailFigure), 0755))

	reporter := NewReporter(NewRenderer(testChartConfig(), nil), files.NewManager(dir, nil), false, nil)
	_, err := reporter.Export(context.Background(), sampleReport(t))
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrTypeStorage, apperrors.Classify(err))

	assert.NoFileExists(t, filepath.Join(dir, LearningProgressFigure))
	assert.NoFileExists(t, filepath.Join(dir, RegistrationFigure))
}

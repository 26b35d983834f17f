package exporter

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phamthanhtung35NB/excel-to-chart/internal/dataprocessing"
	"github.com/phamthanhtung35NB/excel-to-chart/internal/shared/testutil"
	"github.com/phamthanhtung35NB/excel-to-chart/pkg/contracts/domain"
)

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func TestRenderAll(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	r := NewRenderer(testChartConfig(), logger)

	artifacts, err := r.RenderAll(context.Background(), sampleReport(t))
	require.NoError(t, err)
	require.Len(t, artifacts, 4)

	names := make([]string, len(artifacts))
	for i, a := range artifacts {
		names[i] = a.Name
		assert.True(t, bytes.HasPrefix(a.Data, pngSignature), "%s is not a PNG", a.Name)
	}
	assert.Equal(t, []string{LearningProgressFigure, RegistrationFigure, CourseDetailFigure, QuizFigure}, names)
}

func TestRenderAll_SkipsEmptySections(t *testing.T) {
	logger, handler := testutil.NewTestLogger(t)
	r := NewRenderer(testChartConfig(), logger)

	report := sampleReport(t)
	report.Progress = nil
	report.Quiz = nil

	artifacts, err := r.RenderAll(context.Background(), report)
	require.NoError(t, err)
	require.Len(t, artifacts, 1)
	assert.Equal(t, RegistrationFigure, artifacts[0].Name)
	assert.True(t, handler.ContainsMessage("Figure skipped, source table is empty"))
}

func TestRenderAll_EmptyReport(t *testing.T) {
	r := NewRenderer(testChartConfig(), nil)

	artifacts, err := r.RenderAll(context.Background(), &dataprocessing.Report{})
	require.NoError(t, err)
	assert.Empty(t, artifacts)
}

func TestRenderers_SparseData(t *testing.T) {
	r := NewRenderer(testChartConfig(), nil)

	t.Run("single course radar falls back", func(t *testing.T) {
		s := sampleReport(t).Progress
		s.CourseMeans = s.CourseMeans[:1]
		data, err := r.CourseDetail(s)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, pngSignature))
	})

	t.Run("quiz without timings", func(t *testing.T) {
		s := sampleReport(t).Quiz
		s.DurationScores = nil
		data, err := r.QuizAnalysis(s)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, pngSignature))
	})

	t.Run("one registration day", func(t *testing.T) {
		s := sampleReport(t).Roster
		s.Daily = s.Daily[:1]
		data, err := r.Registration(s)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, pngSignature))
	})
}

// blankColumnsReport aggregates exports whose optional and grouping columns
// are all blank
func blankColumnsReport(t *testing.T) *dataprocessing.Report {
	t.Helper()

	snap := domain.Snapshot{
		Enrollments: []domain.EnrollmentRecord{
			{StudentName: "An", StatusLabel: "Đang học"},
			{StudentName: "Bình", StatusLabel: "Đang học"},
		},
		Students: []domain.StudentRecord{{Name: "An"}, {Name: "Bình"}},
		Quizzes:  []domain.QuizResult{{StudentName: "An", Exam: "KT1"}},
	}
	report, err := dataprocessing.NewSummarizer(dataprocessing.ReportOptions{
		PassLabel: "Đạt", FailLabel: "Không đạt",
	}, nil).BuildReport(context.Background(), snap)
	require.NoError(t, err)
	require.NotNil(t, report.Progress)
	require.Empty(t, report.Progress.CourseMeans)
	require.Empty(t, report.Progress.TopCourses)
	require.Empty(t, report.Roster.Statuses)
	return report
}

func TestRenderAll_BlankColumns(t *testing.T) {
	r := NewRenderer(testChartConfig(), nil)

	artifacts, err := r.RenderAll(context.Background(), blankColumnsReport(t))
	require.NoError(t, err)
	require.Len(t, artifacts, 4)
	for _, a := range artifacts {
		assert.True(t, bytes.HasPrefix(a.Data, pngSignature), "%s is not a PNG", a.Name)
	}
}

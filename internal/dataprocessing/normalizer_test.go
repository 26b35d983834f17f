package dataprocessing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phamthanhtung35NB/excel-to-chart/internal/config"
	apperrors "github.com/phamthanhtung35NB/excel-to-chart/internal/errors"
	"github.com/phamthanhtung35NB/excel-to-chart/internal/shared/testutil"
	"github.com/phamthanhtung35NB/excel-to-chart/pkg/contracts/domain"
)

var defaultParseOptions = ParseOptions{
	DateTimeLayout: config.DefaultDateTimeLayout,
	DateLayout:     config.DefaultDateLayout,
	PassToken:      config.DefaultPassToken,
}

// table builds an in-memory table laid out like an export
func table(header []string, rows ...[]string) *Table {
	all := append([][]string{{"title"}, header}, rows...)
	return buildTable("test.xlsx", "Sheet1", all, nil, 1)
}

func TestNormalizer_Progress(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	n := NewNormalizer(defaultParseOptions, logger)

	records, stats, err := n.Progress(table(testutil.ProgressHeader, progressRows()...))
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, 3, stats.Rows)
	assert.Equal(t, 2, stats.Kept)
	assert.Equal(t, 1, stats.Dropped)

	an := records[0]
	assert.Equal(t, "Nguyễn Văn An", an.StudentName)
	assert.Equal(t, "Lập trình Go", an.Course)
	assert.Equal(t, domain.NewPercent(45), an.Progress)
	assert.Equal(t, domain.EnrollmentInProgress, an.Status)
	require.NotNil(t, an.StartedAt)
	assert.Equal(t, time.Date(2025, 6, 1, 8, 0, 0, 0, time.Local), *an.StartedAt)
	assert.Nil(t, an.EndedAt)

	assert.Equal(t, domain.EnrollmentPassed, records[1].Status)
	assert.Equal(t, "Hoàn thành", records[1].StatusLabel)
}

func TestNormalizer_ProgressOutOfRangeIsMissing(t *testing.T) {
	n := NewNormalizer(defaultParseOptions, nil)

	records, stats, err := n.Progress(table(testutil.ProgressHeader,
		[]string{"An", "", "Go", "", "", "", "120%", "Đang học"},
		[]string{"Bình", "", "Go", "", "", "", "không rõ", "Đang học"},
		[]string{"Chi", "", "Go", "", "", "", "", "Đang học"},
	))
	require.NoError(t, err)
	require.Len(t, records, 3)
	for _, r := range records {
		assert.False(t, r.Progress.Valid, r.StudentName)
		assert.Zero(t, r.Progress.Value)
	}
	assert.Equal(t, 2, stats.ParseMisses[ColProgress], "blank cells are not misses")
	assert.Equal(t, []string{ColProgress}, stats.MissFields())
}

func TestNormalizer_MalformedDateAborts(t *testing.T) {
	n := NewNormalizer(defaultParseOptions, nil)

	_, _, err := n.Students(table(testutil.StudentsHeader,
		[]string{"An", "", "", "18/06/2025 14:05:09", "Hoạt động", "", "", ""},
		[]string{"Bình", "", "", "ngày 18", "Hoạt động", "", "", ""},
	))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrParseFailure)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 4, appErr.Context["row"])
	assert.Equal(t, ColRegisteredAt, appErr.Context["column"])
}

func TestNormalizer_Students(t *testing.T) {
	n := NewNormalizer(defaultParseOptions, nil)

	records, stats, err := n.Students(table(testutil.StudentsHeader,
		[]string{"An", "an@x", "09", "18/06/2025 14:05:09", "Hoạt động", "Nam", "2001", "Huế"},
		[]string{"Bình", "", "", "", "Không hoạt động", "", "đầu 2000", ""},
		[]string{"", "", "", "18/06/2025 14:05:09", "Hoạt động", "", "", ""},
	))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 1, stats.Dropped)
	assert.Equal(t, 1, stats.ParseMisses[ColBirthYear])

	assert.Equal(t, domain.StudentActive, records[0].Status)
	assert.Equal(t, 2001, records[0].BirthYear)
	assert.Equal(t, "Huế", records[0].Province)
	assert.Equal(t, domain.StudentInactive, records[1].Status)
	assert.Nil(t, records[1].RegisteredAt)
	assert.Zero(t, records[1].BirthYear)
}

func TestNormalizer_Quizzes(t *testing.T) {
	n := NewNormalizer(defaultParseOptions, nil)

	records, stats, err := n.Quizzes(table(testutil.QuizHeader,
		[]string{"An", "", "Kiểm tra 1", "Go", "19/06/2025 20:00:00", "8/10", "Đạt", "15 phút"},
		[]string{"Bình", "", "Kiểm tra 1", "Go", "", "tám", "Không đạt", "lâu"},
	))
	require.NoError(t, err)
	require.Len(t, records, 2)

	an := records[0]
	assert.Equal(t, 8.0, an.Score.Score)
	assert.Equal(t, 10.0, an.Score.Total)
	assert.True(t, an.Passed)
	assert.Equal(t, 15*time.Minute, an.Elapsed.Duration)
	pct, ok := an.ScorePercent()
	assert.True(t, ok)
	assert.Equal(t, 80.0, pct)

	binh := records[1]
	assert.False(t, binh.Score.Valid)
	assert.False(t, binh.Passed)
	assert.False(t, binh.Elapsed.Valid)
	assert.Equal(t, "tám", binh.RawScore)

	assert.Equal(t, 1, stats.ParseMisses[ColScore])
	assert.Equal(t, 1, stats.ParseMisses[ColElapsed])
}

func TestNormalizer_MissingColumn(t *testing.T) {
	n := NewNormalizer(defaultParseOptions, nil)

	_, _, err := n.Quizzes(table([]string{"Họ tên", "Điểm"}, []string{"An", "8/10"}))
	assert.ErrorIs(t, err, apperrors.ErrMissingColumn)
}

func TestNormalizer_NormalizeAll(t *testing.T) {
	logger, handler := testutil.NewTestLogger(t)
	n := NewNormalizer(defaultParseOptions, logger)

	tables := &Tables{
		Progress: table(testutil.ProgressHeader, progressRows()...),
		Students: table(testutil.StudentsHeader,
			[]string{"An", "", "", "18/06/2025 14:05:09", "Hoạt động", "", "", ""}),
	}

	snap, stats, err := n.NormalizeAll(context.Background(), tables)
	require.NoError(t, err)
	assert.Len(t, snap.Enrollments, 2)
	assert.Len(t, snap.Students, 1)
	assert.Nil(t, snap.Quizzes)
	assert.Len(t, stats, 2)
	assert.Equal(t, 2, handler.Count())
	assert.True(t, handler.ContainsMessage("Table normalized"))
}

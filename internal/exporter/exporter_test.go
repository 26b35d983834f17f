package exporter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/phamthanhtung35NB/excel-to-chart/internal/dataprocessing"
)

func testChartConfig() ChartConfig {
	cfg := DefaultChartConfig()
	cfg.DPI = 72
	return cfg
}

func date(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func sampleReport(t *testing.T) *dataprocessing.Report {
	t.Helper()

	pivot, err := dataprocessing.NewPivot(
		[]string{"Go cơ bản", "Go cơ bản", "Python", "Python", "Go cơ bản"},
		[]string{"Hoàn thành", "Đang học", "Hoàn thành", "Không đạt", "Hoàn thành"},
	)
	require.NoError(t, err)

	return &dataprocessing.Report{
		Progress: &dataprocessing.ProgressSection{
			Summary: dataprocessing.ProgressSummary{
				Enrollments: 1234, MeanProgress: 62.5, ValidProgress: 5,
				Completed: 3, CompletionRate: 60, Courses: 2, Instructors: 2,
			},
			Distribution: dataprocessing.Counts{
				{Key: "0%", Count: 0}, {Key: "1-25%", Count: 1}, {Key: "26-50%", Count: 1},
				{Key: "51-75%", Count: 0}, {Key: "76-99%", Count: 0}, {Key: "100%", Count: 3},
			},
			Outcomes:   dataprocessing.Counts{{Key: "Hoàn thành", Count: 3}, {Key: "Đang học", Count: 1}, {Key: "Không đạt", Count: 1}},
			TopCourses: dataprocessing.Counts{{Key: "Go cơ bản", Count: 3}, {Key: "Python", Count: 2}},
			Instructors: []dataprocessing.GroupStat{
				{Key: "Bình", Mean: 75, Count: 3},
				{Key: "Hà", Mean: 40, Count: 2},
			},
			CourseOutcomes: pivot,
			CourseProgress: []dataprocessing.CourseValues{
				{Course: "Go cơ bản", Values: []float64{100, 50, 100}},
				{Course: "Python", Values: []float64{100, 20}},
			},
			CourseMeans: []dataprocessing.GroupStat{
				{Key: "Go cơ bản", Mean: 83.3, Count: 3},
				{Key: "Python", Mean: 60, Count: 2},
				{Key: "SQL", Mean: 10, Count: 1},
			},
		},
		Roster: &dataprocessing.RosterSection{
			Summary: dataprocessing.RosterSummary{
				Students: 3, Active: 2, ActiveRate: 66.7,
				Earliest: date("2025-06-01"), Latest: date("2025-06-18"),
			},
			Daily: []dataprocessing.DateCount{
				{Date: *date("2025-06-01"), Count: 1},
				{Date: *date("2025-06-18"), Count: 2},
			},
			Statuses: dataprocessing.Counts{{Key: "Hoạt động", Count: 2}, {Key: "Không hoạt động", Count: 1}},
		},
		Quiz: &dataprocessing.QuizSection{
			Summary: dataprocessing.QuizSummary{
				Attempts: 4, Passed: 3, PassRate: 75, MeanScore: 72.5, ScoredAttempts: 4,
				Exams: 2, MeanDuration: 15 * time.Minute, TimedAttempts: 2,
			},
			Results: dataprocessing.Counts{{Key: "Đạt", Count: 3}, {Key: "Không đạt", Count: 1}},
			CoursePassRates: []dataprocessing.RateStat{
				{Key: "Go cơ bản", Passed: 2, Total: 2, Rate: 100},
				{Key: "Python", Passed: 1, Total: 2, Rate: 50},
			},
			DurationScores: []dataprocessing.ScorePoint{{Minutes: 10, Score: 80}, {Minutes: 20, Score: 65}},
			Hours: func() dataprocessing.Counts {
				hours := make(dataprocessing.Counts, len(dataprocessing.HourKeys))
				for i, k := range dataprocessing.HourKeys {
					hours[i] = dataprocessing.Count{Key: k}
				}
				hours[9].Count = 3
				hours[14].Count = 1
				return hours
			}(),
			HourScores: []dataprocessing.GroupStat{
				{Key: "09", Mean: 70, Count: 3},
				{Key: "14", Mean: 65, Count: 1},
			},
		},
	}
}

package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/phamthanhtung35NB/excel-to-chart/pkg/contracts/domain"
)

// ReportOptions configures which labels count as success and how far the
// rankings go
type ReportOptions struct {
	CompletedLabel        string
	ActiveLabel           string
	PassLabel             string
	FailLabel             string
	TopCourses            int
	MinInstructorStudents int
}

// ProgressSummary is the headline numbers of the progress export
type ProgressSummary struct {
	Enrollments      int     `json:"enrollments"`
	MeanProgress     float64 `json:"mean_progress"`
	ValidProgress    int     `json:"valid_progress"`
	Completed        int     `json:"completed"`
	CompletionRate   float64 `json:"completion_rate"`
	Courses          int     `json:"courses"`
	Instructors      int     `json:"instructors"`
	ExcludedProgress int     `json:"excluded_progress"`
}

// RosterSummary is the headline numbers of the roster export
type RosterSummary struct {
	Students   int        `json:"students"`
	Active     int        `json:"active"`
	ActiveRate float64    `json:"active_rate"`
	Earliest   *time.Time `json:"earliest,omitempty"`
	Latest     *time.Time `json:"latest,omitempty"`
}

// QuizSummary is the headline numbers of the quiz export
type QuizSummary struct {
	Attempts       int           `json:"attempts"`
	Passed         int           `json:"passed"`
	PassRate       float64       `json:"pass_rate"`
	MeanScore      float64       `json:"mean_score"`
	ScoredAttempts int           `json:"scored_attempts"`
	Exams          int           `json:"exams"`
	MeanDuration   time.Duration `json:"mean_duration"`
	TimedAttempts  int           `json:"timed_attempts"`
}

// CourseValues is the valid progress values of one course
type CourseValues struct {
	Course string    `json:"course"`
	Values []float64 `json:"values"`
}

// RateStat is a pass rate of one group
type RateStat struct {
	Key    string  `json:"key"`
	Passed int     `json:"passed"`
	Total  int     `json:"total"`
	Rate   float64 `json:"rate"`
}

// ScorePoint pairs the time spent on a quiz with its score
type ScorePoint struct {
	Minutes float64 `json:"minutes"`
	Score   float64 `json:"score"`
}

// ProgressSection holds every aggregate drawn from the progress export
type ProgressSection struct {
	Summary        ProgressSummary `json:"summary"`
	Distribution   Counts          `json:"distribution"`
	Outcomes       Counts          `json:"outcomes"`
	TopCourses     Counts          `json:"top_courses"`
	Instructors    []GroupStat     `json:"instructors"`
	CourseOutcomes *Pivot          `json:"course_outcomes"`
	CourseProgress []CourseValues  `json:"course_progress"`
	CourseMeans    []GroupStat     `json:"course_means"`
}

// RosterSection holds every aggregate drawn from the roster export
type RosterSection struct {
	Summary  RosterSummary `json:"summary"`
	Daily    []DateCount   `json:"daily"`
	Statuses Counts        `json:"statuses"`
}

// QuizSection holds every aggregate drawn from the quiz export
type QuizSection struct {
	Summary         QuizSummary  `json:"summary"`
	Results         Counts       `json:"results"`
	CoursePassRates []RateStat   `json:"course_pass_rates"`
	DurationScores  []ScorePoint `json:"duration_scores"`
	Hours           Counts       `json:"hours"`
	HourScores      []GroupStat  `json:"hour_scores"`
}

// Report is every number the reporter shows. A section is nil when its
// source table has no records.
type Report struct {
	Progress *ProgressSection `json:"progress,omitempty"`
	Roster   *RosterSection   `json:"roster,omitempty"`
	Quiz     *QuizSection     `json:"quiz,omitempty"`
}

// HourKeys are the hour-of-day categories "00" to "23"
var HourKeys = func() []string {
	keys := make([]string, 24)
	for h := range keys {
		keys[h] = fmt.Sprintf("%02d", h)
	}
	return keys
}()

// Summarizer builds the report from a normalized snapshot
type Summarizer struct {
	opts   ReportOptions
	logger *slog.Logger
}

// NewSummarizer creates a new summarizer
func NewSummarizer(opts ReportOptions, logger *slog.Logger) *Summarizer {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.TopCourses <= 0 {
		opts.TopCourses = 10
	}
	if opts.MinInstructorStudents <= 0 {
		opts.MinInstructorStudents = 2
	}
	return &Summarizer{opts: opts, logger: logger}
}

// BuildReport computes every aggregate of the snapshot. It never modifies
// the snapshot.
func (s *Summarizer) BuildReport(ctx context.Context, snap domain.Snapshot) (*Report, error) {
	report := &Report{}
	var err error

	if len(snap.Enrollments) > 0 {
		if report.Progress, err = s.progressSection(snap.Enrollments); err != nil {
			return nil, fmt.Errorf("progress aggregates: %w", err)
		}
		if n := report.Progress.Summary.ExcludedProgress; n > 0 {
			s.logger.WarnContext(ctx, "Progress values out of range, excluded from distribution",
				slog.Int("excluded", n))
		}
	}

	if len(snap.Students) > 0 {
		if report.Roster, err = s.rosterSection(snap.Students); err != nil {
			return nil, fmt.Errorf("roster aggregates: %w", err)
		}
	}

	if len(snap.Quizzes) > 0 {
		if report.Quiz, err = s.quizSection(snap.Quizzes); err != nil {
			return nil, fmt.Errorf("quiz aggregates: %w", err)
		}
	}

	s.logger.InfoContext(ctx, "Report built",
		slog.Bool("progress", report.Progress != nil),
		slog.Bool("roster", report.Roster != nil),
		slog.Bool("quiz", report.Quiz != nil))

	return report, nil
}

func progressValue(p domain.Percent) float64 {
	if !p.Valid {
		return math.NaN()
	}
	return p.Value
}

// SummarizeProgress computes the headline numbers of the progress export
func SummarizeProgress(records []domain.EnrollmentRecord, completedLabel string) (ProgressSummary, error) {
	values := make([]float64, len(records))
	courses := make([]string, len(records))
	instructors := make([]string, len(records))
	completed := 0
	excluded := 0
	for i, r := range records {
		values[i] = progressValue(r.Progress)
		courses[i] = r.Course
		instructors[i] = r.Instructor
		if r.StatusLabel == completedLabel {
			completed++
		}
		if _, ok := ProgressBucketOf(values[i]); !ok {
			excluded++
		}
	}

	rate, err := Rate(completed, len(records))
	if err != nil {
		return ProgressSummary{}, err
	}
	mean, n := Mean(values)

	return ProgressSummary{
		Enrollments:      len(records),
		MeanProgress:     mean,
		ValidProgress:    n,
		Completed:        completed,
		CompletionRate:   rate,
		Courses:          Unique(courses),
		Instructors:      Unique(instructors),
		ExcludedProgress: excluded,
	}, nil
}

func (s *Summarizer) progressSection(records []domain.EnrollmentRecord) (*ProgressSection, error) {
	summary, err := SummarizeProgress(records, s.opts.CompletedLabel)
	if err != nil {
		return nil, err
	}

	buckets := make([]string, 0, len(records))
	values := make([]float64, len(records))
	courses := make([]string, len(records))
	instructors := make([]string, len(records))
	labels := make([]string, len(records))
	for i, r := range records {
		values[i] = progressValue(r.Progress)
		if b, ok := ProgressBucketOf(values[i]); ok {
			buckets = append(buckets, b)
		}
		courses[i] = r.Course
		instructors[i] = r.Instructor
		labels[i] = r.StatusLabel
	}

	distribution, _ := DistributionCount(buckets, ProgressBuckets)
	top := TopN(ValueCounts(courses), s.opts.TopCourses)

	instructorStats, err := MeanByGroup(instructors, values, s.opts.MinInstructorStudents)
	if err != nil {
		return nil, err
	}

	// Re-order the rows by course rank so the pivot and per-course series
	// follow the ranking.
	rank := make(map[string]int, len(top))
	for i, c := range top {
		rank[c.Key] = i
	}
	perCourse := make([][]int, len(top))
	for i, c := range courses {
		if j, ok := rank[c]; ok {
			perCourse[j] = append(perCourse[j], i)
		}
	}

	var rowKeys, colKeys, meanKeys []string
	var meanValues []float64
	courseProgress := make([]CourseValues, 0, len(top))
	for j, idx := range perCourse {
		cv := CourseValues{Course: top[j].Key}
		for _, i := range idx {
			rowKeys = append(rowKeys, courses[i])
			colKeys = append(colKeys, labels[i])
			meanKeys = append(meanKeys, courses[i])
			meanValues = append(meanValues, values[i])
			if !math.IsNaN(values[i]) {
				cv.Values = append(cv.Values, values[i])
			}
		}
		courseProgress = append(courseProgress, cv)
	}

	pivot, err := NewPivot(rowKeys, colKeys)
	if err != nil {
		return nil, err
	}
	courseMeans, err := MeanByGroup(meanKeys, meanValues, 1)
	if err != nil {
		return nil, err
	}

	return &ProgressSection{
		Summary:        summary,
		Distribution:   distribution,
		Outcomes:       ValueCounts(labels),
		TopCourses:     top,
		Instructors:    instructorStats,
		CourseOutcomes: pivot,
		CourseProgress: courseProgress,
		CourseMeans:    courseMeans,
	}, nil
}

// SummarizeRoster computes the headline numbers of the roster export
func SummarizeRoster(records []domain.StudentRecord, activeLabel string) (RosterSummary, error) {
	summary := RosterSummary{Students: len(records)}
	for _, r := range records {
		if r.StatusLabel == activeLabel {
			summary.Active++
		}
		if ts := r.RegisteredAt; ts != nil {
			if summary.Earliest == nil || ts.Before(*summary.Earliest) {
				summary.Earliest = ts
			}
			if summary.Latest == nil || ts.After(*summary.Latest) {
				summary.Latest = ts
			}
		}
	}

	rate, err := Rate(summary.Active, summary.Students)
	if err != nil {
		return RosterSummary{}, err
	}
	summary.ActiveRate = rate
	return summary, nil
}

func (s *Summarizer) rosterSection(records []domain.StudentRecord) (*RosterSection, error) {
	summary, err := SummarizeRoster(records, s.opts.ActiveLabel)
	if err != nil {
		return nil, err
	}

	times := make([]*time.Time, len(records))
	labels := make([]string, len(records))
	for i, r := range records {
		times[i] = r.RegisteredAt
		labels[i] = r.StatusLabel
	}

	return &RosterSection{
		Summary:  summary,
		Daily:    CountByDate(times),
		Statuses: ValueCounts(labels),
	}, nil
}

// SummarizeQuizzes computes the headline numbers of the quiz export
func SummarizeQuizzes(records []domain.QuizResult) (QuizSummary, error) {
	summary := QuizSummary{Attempts: len(records)}
	scores := make([]float64, len(records))
	exams := make([]string, len(records))
	var elapsed time.Duration

	for i, r := range records {
		if r.Passed {
			summary.Passed++
		}
		scores[i] = math.NaN()
		if pct, ok := r.ScorePercent(); ok {
			scores[i] = pct
		}
		exams[i] = r.Exam
		if r.Elapsed.Valid {
			elapsed += r.Elapsed.Duration
			summary.TimedAttempts++
		}
	}

	rate, err := Rate(summary.Passed, summary.Attempts)
	if err != nil {
		return QuizSummary{}, err
	}
	summary.PassRate = rate
	summary.MeanScore, summary.ScoredAttempts = Mean(scores)
	summary.Exams = Unique(exams)
	if summary.TimedAttempts > 0 {
		summary.MeanDuration = elapsed / time.Duration(summary.TimedAttempts)
	}
	return summary, nil
}

func (s *Summarizer) quizSection(records []domain.QuizResult) (*QuizSection, error) {
	summary, err := SummarizeQuizzes(records)
	if err != nil {
		return nil, err
	}

	groups := make([]string, len(records))
	passed := make(map[string]int)
	var hours []string
	var hourScores []float64
	var points []ScorePoint

	for i, r := range records {
		groups[i] = r.Course
		if groups[i] == "" {
			groups[i] = r.Exam
		}
		if r.Passed {
			passed[groups[i]]++
		}

		score, scored := r.ScorePercent()
		if r.SubmittedAt != nil {
			h := HourKeys[r.SubmittedAt.Hour()]
			hours = append(hours, h)
			if scored {
				hourScores = append(hourScores, score)
			} else {
				hourScores = append(hourScores, math.NaN())
			}
		}
		if scored && r.Elapsed.Valid {
			points = append(points, ScorePoint{Minutes: r.Elapsed.Duration.Minutes(), Score: score})
		}
	}

	var rates []RateStat
	for _, g := range TopN(ValueCounts(groups), s.opts.TopCourses) {
		rate, err := Rate(passed[g.Key], g.Count)
		if err != nil {
			return nil, err
		}
		rates = append(rates, RateStat{Key: g.Key, Passed: passed[g.Key], Total: g.Count, Rate: rate})
	}

	hourCounts, _ := DistributionCount(hours, HourKeys)
	hourStats, err := MeanByGroup(hours, hourScores, 1)
	if err != nil {
		return nil, err
	}
	sortByKey(hourStats)

	return &QuizSection{
		Summary: summary,
		Results: Counts{
			{Key: s.opts.PassLabel, Count: summary.Passed},
			{Key: s.opts.FailLabel, Count: summary.Attempts - summary.Passed},
		},
		CoursePassRates: rates,
		DurationScores:  points,
		Hours:           hourCounts,
		HourScores:      hourStats,
	}, nil
}

func sortByKey(stats []GroupStat) {
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Key < stats[j].Key
	})
}

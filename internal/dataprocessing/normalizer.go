package dataprocessing

import (
	"context"
	"log/slog"
	"sort"
	"strconv"
	"time"

	apperrors "github.com/phamthanhtung35NB/excel-to-chart/internal/errors"
	"github.com/phamthanhtung35NB/excel-to-chart/pkg/contracts/domain"
)

// ParseOptions holds the locale rules used when normalizing text cells
type ParseOptions struct {
	DateTimeLayout string
	DateLayout     string
	PassToken      string
}

// NormalizeStats records what normalization discarded from one table
type NormalizeStats struct {
	Source      string
	Rows        int
	Kept        int
	Dropped     int            // rows without a student name
	ParseMisses map[string]int // column -> unparseable non-blank cells
}

// MissFields returns the columns with parse misses in name order
func (s NormalizeStats) MissFields() []string {
	fields := make([]string, 0, len(s.ParseMisses))
	for f := range s.ParseMisses {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

func newStats(t *Table) NormalizeStats {
	return NormalizeStats{Source: t.Source, Rows: t.Len(), ParseMisses: make(map[string]int)}
}

// Normalizer turns loaded tables into typed records
type Normalizer struct {
	opts   ParseOptions
	logger *slog.Logger
}

// NewNormalizer creates a normalizer
func NewNormalizer(opts ParseOptions, logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{opts: opts, logger: logger}
}

func (n *Normalizer) timestamp(t *Table, row int, column string) (*time.Time, error) {
	text := t.cell(row, column)
	ts, err := ParseTimestamp(text, n.opts.DateTimeLayout, n.opts.DateLayout)
	if err != nil {
		if date, ok := ParseDateCell(text, t.rawCell(row, column)); ok {
			return date, nil
		}
		if appErr, ok := err.(*apperrors.AppError); ok {
			appErr.WithContext("source", t.Source).
				WithContext("row", t.RowNumbers[row]).
				WithContext("column", column)
		}
		return nil, err
	}
	return ts, nil
}

// Progress normalizes the learning-progress export
func (n *Normalizer) Progress(t *Table) ([]domain.EnrollmentRecord, NormalizeStats, error) {
	stats := newStats(t)
	if err := t.Require(ProgressSchema); err != nil {
		return nil, stats, err
	}

	records := make([]domain.EnrollmentRecord, 0, t.Len())
	for i := range t.Rows {
		name := t.cell(i, ColStudentName)
		if name == "" {
			stats.Dropped++
			continue
		}

		started, err := n.timestamp(t, i, ColStartedAt)
		if err != nil {
			return nil, stats, err
		}
		ended, err := n.timestamp(t, i, ColEndedAt)
		if err != nil {
			return nil, stats, err
		}

		raw := t.cell(i, ColProgress)
		progress := ParsePercent(raw)
		if raw != "" && !progress.Valid {
			stats.ParseMisses[ColProgress]++
			n.logger.Debug("Progress value excluded",
				slog.String("source", t.Source),
				slog.Int("row", t.RowNumbers[i]),
				slog.String("value", raw))
		}

		label := t.cell(i, ColOutcome)
		records = append(records, domain.EnrollmentRecord{
			StudentName: name,
			Email:       t.cell(i, ColEmail),
			Course:      t.cell(i, ColCourse),
			Instructor:  t.cell(i, ColInstructor),
			StartedAt:   started,
			EndedAt:     ended,
			Progress:    progress,
			StatusLabel: label,
			Status:      domain.ClassifyEnrollment(label),
		})
	}

	stats.Kept = len(records)
	return records, stats, nil
}

// Students normalizes the roster export
func (n *Normalizer) Students(t *Table) ([]domain.StudentRecord, NormalizeStats, error) {
	stats := newStats(t)
	if err := t.Require(StudentSchema); err != nil {
		return nil, stats, err
	}

	records := make([]domain.StudentRecord, 0, t.Len())
	for i := range t.Rows {
		name := t.cell(i, ColStudentName)
		if name == "" {
			stats.Dropped++
			continue
		}

		registered, err := n.timestamp(t, i, ColRegisteredAt)
		if err != nil {
			return nil, stats, err
		}

		var birthYear int
		if raw := t.cell(i, ColBirthYear); raw != "" {
			if y, err := strconv.Atoi(raw); err == nil {
				birthYear = y
			} else {
				stats.ParseMisses[ColBirthYear]++
			}
		}

		label := t.cell(i, ColStatus)
		records = append(records, domain.StudentRecord{
			Name:         name,
			Email:        t.cell(i, ColEmail),
			Phone:        t.cell(i, ColPhone),
			RegisteredAt: registered,
			StatusLabel:  label,
			Status:       domain.ClassifyStudent(label),
			Gender:       t.cell(i, ColGender),
			BirthYear:    birthYear,
			Province:     t.cell(i, ColProvince),
		})
	}

	stats.Kept = len(records)
	return records, stats, nil
}

// Quizzes normalizes the quiz-results export
func (n *Normalizer) Quizzes(t *Table) ([]domain.QuizResult, NormalizeStats, error) {
	stats := newStats(t)
	if err := t.Require(QuizSchema); err != nil {
		return nil, stats, err
	}

	records := make([]domain.QuizResult, 0, t.Len())
	for i := range t.Rows {
		name := t.cell(i, ColStudentName)
		if name == "" {
			stats.Dropped++
			continue
		}

		submitted, err := n.timestamp(t, i, ColSubmittedAt)
		if err != nil {
			return nil, stats, err
		}

		rawScore := t.cell(i, ColScore)
		score := ParseScoreFraction(rawScore)
		if rawScore != "" && !score.Valid {
			stats.ParseMisses[ColScore]++
		}

		rawElapsed := t.cell(i, ColElapsed)
		elapsed := ParseDuration(rawElapsed)
		if rawElapsed != "" && !elapsed.Valid {
			stats.ParseMisses[ColElapsed]++
		}

		result := t.cell(i, ColResult)
		records = append(records, domain.QuizResult{
			StudentName: name,
			Email:       t.cell(i, ColEmail),
			Exam:        t.cell(i, ColExam),
			Course:      t.cell(i, ColCourse),
			SubmittedAt: submitted,
			RawScore:    rawScore,
			Score:       score,
			ResultLabel: result,
			Passed:      ParsePassed(result, n.opts.PassToken),
			Elapsed:     elapsed,
		})
	}

	stats.Kept = len(records)
	return records, stats, nil
}

// NormalizeAll builds the run snapshot from the loaded tables
func (n *Normalizer) NormalizeAll(ctx context.Context, tables *Tables) (domain.Snapshot, []NormalizeStats, error) {
	var snap domain.Snapshot
	var all []NormalizeStats

	enrollments, stats, err := n.Progress(tables.Progress)
	if err != nil {
		return snap, nil, err
	}
	snap.Enrollments = enrollments
	all = append(all, stats)

	students, stats, err := n.Students(tables.Students)
	if err != nil {
		return snap, nil, err
	}
	snap.Students = students
	all = append(all, stats)

	if tables.Quizzes != nil {
		quizzes, stats, err := n.Quizzes(tables.Quizzes)
		if err != nil {
			return snap, nil, err
		}
		snap.Quizzes = quizzes
		all = append(all, stats)
	}

	for _, s := range all {
		n.logger.InfoContext(ctx, "Table normalized",
			slog.String("source", s.Source),
			slog.Int("rows", s.Rows),
			slog.Int("kept", s.Kept),
			slog.Int("dropped", s.Dropped),
			slog.Any("parse_misses", s.ParseMisses))
	}

	return snap, all, nil
}

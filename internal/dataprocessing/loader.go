package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/phamthanhtung35NB/excel-to-chart/internal/errors"
	"github.com/phamthanhtung35NB/excel-to-chart/internal/files"
	"github.com/phamthanhtung35NB/excel-to-chart/internal/validation"
)

// LoadOptions selects the sheet and header row of a workbook
type LoadOptions struct {
	Sheet     string // empty means the first sheet
	HeaderRow int    // zero-based; exports carry one title row, so 1
}

// Table is one sheet read as text, keyed by header name
type Table struct {
	Source     string
	Sheet      string
	Header     []string
	Rows       [][]string
	RowNumbers []int // 1-based sheet row of each entry in Rows

	raw   [][]string // stored cell values, aligned with Rows
	index map[string]int
}

// Len returns the number of data rows
func (t *Table) Len() int {
	return len(t.Rows)
}

// Require checks that every required column of schema is present and names
// all of the missing ones at once.
func (t *Table) Require(schema Schema) error {
	var missing []string
	for _, col := range schema.Required {
		if _, ok := t.index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return apperrors.NewMissingColumnError(t.Source, missing)
	}
	return nil
}

// Value returns the cell of row under column
func (t *Table) Value(row int, column string) (string, error) {
	i, ok := t.index[column]
	if !ok {
		return "", apperrors.NewMissingColumnError(t.Source, []string{column})
	}
	if row < 0 || row >= len(t.Rows) {
		return "", apperrors.NewAppValidationError(fmt.Sprintf("row %d out of range in %s", row, t.Source))
	}
	return t.Rows[row][i], nil
}

// cell reads an optional column, blank when the column is absent
func (t *Table) cell(row int, column string) string {
	i, ok := t.index[column]
	if !ok {
		return ""
	}
	return t.Rows[row][i]
}

// rawCell reads the stored value behind an optional column, before Excel
// number formatting
func (t *Table) rawCell(row int, column string) string {
	i, ok := t.index[column]
	if !ok || row >= len(t.raw) {
		return ""
	}
	return t.raw[row][i]
}

// Loader reads export workbooks
type Loader struct {
	validator *validation.WorkbookValidator
	discovery *files.Discovery
	logger    *slog.Logger
}

// NewLoader creates a loader. Relative input paths resolve against baseDir.
func NewLoader(baseDir string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		validator: validation.NewWorkbookValidator(logger),
		discovery: files.NewDiscovery(baseDir),
		logger:    logger,
	}
}

// LoadTable reads one sheet of the workbook at path
func (l *Loader) LoadTable(path string, opts LoadOptions) (*Table, error) {
	if err := l.validator.Validate(path); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("failed to open workbook %s", path), err)
	}
	defer f.Close()

	sheet := opts.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("failed to read sheet %q of %s", sheet, path), err)
	}
	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("failed to read sheet %q of %s", sheet, path), err)
	}

	t := buildTable(path, sheet, rows, raw, opts.HeaderRow)

	l.logger.Info("Workbook loaded",
		slog.String("file", path),
		slog.String("sheet", sheet),
		slog.Int("columns", len(t.Header)),
		slog.Int("rows", t.Len()))

	return t, nil
}

// buildTable keeps the rows below headerRow that have any text. raw holds the
// same sheet read without number formats and may be nil.
func buildTable(source, sheet string, rows, raw [][]string, headerRow int) *Table {
	t := &Table{
		Source: source,
		Sheet:  sheet,
		index:  make(map[string]int),
	}
	if headerRow < 0 || headerRow >= len(rows) {
		return t
	}

	for i, name := range rows[headerRow] {
		name = strings.TrimSpace(name)
		t.Header = append(t.Header, name)
		if _, dup := t.index[name]; !dup && name != "" {
			t.index[name] = i
		}
	}

	for i := headerRow + 1; i < len(rows); i++ {
		row := make([]string, len(t.Header))
		blank := true
		for j := 0; j < len(row) && j < len(rows[i]); j++ {
			row[j] = strings.TrimSpace(rows[i][j])
			if row[j] != "" {
				blank = false
			}
		}
		if blank {
			continue
		}
		stored := make([]string, len(t.Header))
		if i < len(raw) {
			for j := 0; j < len(stored) && j < len(raw[i]); j++ {
				stored[j] = strings.TrimSpace(raw[i][j])
			}
		}
		t.Rows = append(t.Rows, row)
		t.raw = append(t.raw, stored)
		t.RowNumbers = append(t.RowNumbers, i+1)
	}
	return t
}

// Inputs names the three workbooks of a run. Paths may be glob patterns; an
// empty Quizzes path skips the quiz export.
type Inputs struct {
	Progress string
	Students string
	Quizzes  string
	Options  LoadOptions
}

// Tables holds the loaded exports. Quizzes is nil when the input was skipped.
type Tables struct {
	Progress *Table
	Students *Table
	Quizzes  *Table
}

// LoadAll loads the inputs concurrently. Whatever finishes first, errors are
// reported in input order: progress, then students, then quizzes.
func (l *Loader) LoadAll(ctx context.Context, inputs Inputs) (*Tables, error) {
	paths := []string{inputs.Progress, inputs.Students, inputs.Quizzes}
	schemas := []Schema{ProgressSchema, StudentSchema, QuizSchema}
	tables := make([]*Table, len(paths))
	errs := make([]error, len(paths))

	var g errgroup.Group
	for i := range paths {
		if paths[i] == "" && i == 2 {
			l.logger.InfoContext(ctx, "Quiz input not configured, skipping")
			continue
		}
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return err
			}
			tables[i], errs[i] = l.load(paths[i], schemas[i], inputs.Options)
			return errs[i]
		})
	}
	_ = g.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return &Tables{Progress: tables[0], Students: tables[1], Quizzes: tables[2]}, nil
}

func (l *Loader) load(input string, schema Schema, opts LoadOptions) (*Table, error) {
	path, err := l.discovery.ResolveInput(input)
	if err != nil {
		return nil, err
	}
	t, err := l.LoadTable(path, opts)
	if err != nil {
		return nil, err
	}
	if err := t.Require(schema); err != nil {
		return nil, err
	}
	return t, nil
}

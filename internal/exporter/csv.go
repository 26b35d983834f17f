package exporter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/phamthanhtung35NB/excel-to-chart/internal/dataprocessing"
	"github.com/phamthanhtung35NB/excel-to-chart/internal/files"
)

// utf8BOM makes Excel open the files as UTF-8
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteOptions configures CSV encoding
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// CSVWriter encodes aggregate tables as CSV documents
type CSVWriter struct {
	bom bool
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter() *CSVWriter {
	return &CSVWriter{bom: true}
}

// Encode renders headers and records into a CSV document
func (w *CSVWriter) Encode(options WriteOptions) ([]byte, error) {
	var buf bytes.Buffer
	if options.BOMPrefix {
		buf.Write(utf8BOM)
	}

	writer := csv.NewWriter(&buf)
	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return nil, fmt.Errorf("failed to write headers: %w", err)
		}
	}
	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// csvTable is one aggregate table ready for encoding
type csvTable struct {
	name    string
	headers []string
	records [][]string
}

// Tables encodes every aggregate of the report, one artifact per table.
// Tables of empty sections are not produced.
func (w *CSVWriter) Tables(report *dataprocessing.Report) ([]files.Artifact, error) {
	var tables []csvTable
	if s := report.Progress; s != nil {
		tables = append(tables,
			countsTable("phan_bo_tien_trinh.csv", "Tiến trình", s.Distribution),
			countsTable("ket_qua_hoc_tap.csv", "Kết quả học tập", s.Outcomes),
			countsTable("top_khoa_hoc.csv", "Khóa học", s.TopCourses),
			groupTable("giang_vien.csv", "Giảng viên", progressMean, s.Instructors),
			groupTable("tien_trinh_theo_khoa_hoc.csv", "Khóa học", progressMean, s.CourseMeans),
		)
		if s.CourseOutcomes != nil {
			tables = append(tables, pivotTable("khoa_hoc_ket_qua.csv", s.CourseOutcomes))
		}
	}
	if s := report.Roster; s != nil {
		daily := csvTable{name: "dang_ky_theo_ngay.csv", headers: []string{"Ngày đăng ký", "Số lượng"}}
		for _, d := range s.Daily {
			daily.records = append(daily.records, []string{formatDate(d.Date), strconv.Itoa(d.Count)})
		}
		tables = append(tables, daily, countsTable("trang_thai_hoc_vien.csv", "Trạng thái", s.Statuses))
	}
	if s := report.Quiz; s != nil {
		rates := csvTable{name: "ty_le_dat_theo_khoa_hoc.csv", headers: []string{"Khóa học", "Đạt", "Tổng", "Tỷ lệ đạt (%)"}}
		for _, r := range s.CoursePassRates {
			rates.records = append(rates.records, []string{r.Key, strconv.Itoa(r.Passed), strconv.Itoa(r.Total), formatFloat(r.Rate)})
		}
		tables = append(tables,
			countsTable("ket_qua_bai_kiem_tra.csv", "Kết quả", s.Results),
			rates,
			countsTable("nop_bai_theo_gio.csv", "Giờ", s.Hours),
			groupTable("diem_theo_gio.csv", "Giờ", "Điểm trung bình (%)", s.HourScores),
		)
	}

	artifacts := make([]files.Artifact, 0, len(tables))
	for _, t := range tables {
		data, err := w.Encode(WriteOptions{Headers: t.headers, Records: t.records, BOMPrefix: w.bom})
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", t.name, err)
		}
		artifacts = append(artifacts, files.Artifact{Name: t.name, Data: data})
	}
	return artifacts, nil
}

func countsTable(name, key string, counts dataprocessing.Counts) csvTable {
	t := csvTable{name: name, headers: []string{key, "Số lượng"}}
	for _, c := range counts {
		t.records = append(t.records, []string{c.Key, strconv.Itoa(c.Count)})
	}
	return t
}

const progressMean = "Tiến trình trung bình (%)"

func groupTable(name, key, mean string, stats []dataprocessing.GroupStat) csvTable {
	t := csvTable{name: name, headers: []string{key, mean, "Số lượng"}}
	for _, s := range stats {
		t.records = append(t.records, []string{s.Key, formatFloat(s.Mean), strconv.Itoa(s.Count)})
	}
	return t
}

func pivotTable(name string, p *dataprocessing.Pivot) csvTable {
	t := csvTable{name: name, headers: append([]string{"Khóa học"}, p.Cols...)}
	for i, row := range p.Rows {
		record := make([]string, 0, len(p.Cols)+1)
		record = append(record, row)
		for j := range p.Cols {
			record = append(record, strconv.Itoa(p.Cells[i][j]))
		}
		t.records = append(t.records, record)
	}
	return t
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

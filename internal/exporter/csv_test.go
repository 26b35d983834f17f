package exporter

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phamthanhtung35NB/excel-to-chart/internal/dataprocessing"
)

func TestCSVWriter_Encode(t *testing.T) {
	w := NewCSVWriter()

	tests := []struct {
		name    string
		options WriteOptions
		want    string
	}{
		{
			name:    "headers and records",
			options: WriteOptions{Headers: []string{"Khóa học", "Số lượng"}, Records: [][]string{{"Go", "3"}, {"SQL, nâng cao", "1"}}},
			want:    "Khóa học,Số lượng\nGo,3\n\"SQL, nâng cao\",1\n",
		},
		{
			name:    "bom prefix",
			options: WriteOptions{Headers: []string{"a"}, BOMPrefix: true},
			want:    "\xEF\xBB\xBFa\n",
		},
		{
			name:    "empty",
			options: WriteOptions{},
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := w.Encode(tt.options)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))
		})
	}
}

func TestCSVWriter_Tables(t *testing.T) {
	artifacts, err := NewCSVWriter().Tables(sampleReport(t))
	require.NoError(t, err)

	byName := make(map[string][]byte)
	for _, a := range artifacts {
		assert.True(t, bytes.HasPrefix(a.Data, utf8BOM), "%s has no BOM", a.Name)
		byName[a.Name] = bytes.TrimPrefix(a.Data, utf8BOM)
	}
	assert.Len(t, byName, 12)

	records, err := csv.NewReader(bytes.NewReader(byName["khoa_hoc_ket_qua.csv"])).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Khóa học", "Hoàn thành", "Đang học", "Không đạt"},
		{"Go cơ bản", "2", "1", "0"},
		{"Python", "1", "0", "1"},
	}, records)

	records, err = csv.NewReader(bytes.NewReader(byName["ty_le_dat_theo_khoa_hoc.csv"])).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"Python", "1", "2", "50.0"}, records[2])

	records, err = csv.NewReader(bytes.NewReader(byName["dang_ky_theo_ngay.csv"])).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"18/06/2025", "2"}, records[2])

	records, err = csv.NewReader(bytes.NewReader(byName["diem_theo_gio.csv"])).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Giờ", "Điểm trung bình (%)", "Số lượng"},
		{"09", "70.0", "3"},
		{"14", "65.0", "1"},
	}, records)
}

func TestCSVWriter_TablesSkipEmptySections(t *testing.T) {
	report := sampleReport(t)
	report.Progress = nil
	report.Quiz = nil

	artifacts, err := NewCSVWriter().Tables(report)
	require.NoError(t, err)
	require.Len(t, artifacts, 2)
	assert.Equal(t, "dang_ky_theo_ngay.csv", artifacts[0].Name)
	assert.Equal(t, "trang_thai_hoc_vien.csv", artifacts[1].Name)

	artifacts, err = NewCSVWriter().Tables(&dataprocessing.Report{})
	require.NoError(t, err)
	assert.Empty(t, artifacts)
}

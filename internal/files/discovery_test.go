package files

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/phamthanhtung35NB/excel-to-chart/internal/errors"
)

func touch(t *testing.T, dir, name string, modTime time.Time) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	require.NoError(t, os.Chtimes(path, modTime, modTime))
	return path
}

func TestParseNameDate(t *testing.T) {
	tests := []struct {
		name   string
		want   time.Time
		wantOK bool
	}{
		{"Danh_sach_hoc_vien_tham_gia_18_06_2025.xlsx", time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC), true},
		{"export_01_02_2024_v2.xlsx", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), true},
		{"tien_trinh_hoc_tap.xlsx", time.Time{}, false},
		{"bad_32_13_2025.xlsx", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseNameDate(tt.name)
			assert.Equal(t, tt.wantOK, ok)
			assert.True(t, tt.want.Equal(got))
		})
	}
}

func TestResolveInput(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	touch(t, dir, "Danh_sach_hoc_vien_tham_gia_18_06_2025.xlsx", now.Add(-48*time.Hour))
	touch(t, dir, "Danh_sach_hoc_vien_tham_gia_17_06_2025.xlsx", now)
	touch(t, dir, "Danh_sach_hoc_vien_tham_gia_moi.xlsx", now.Add(time.Hour))

	d := NewDiscovery(dir)

	t.Run("pattern picks latest name date", func(t *testing.T) {
		path, err := d.ResolveInput("Danh_sach_hoc_vien_tham_gia_*.xlsx")
		require.NoError(t, err)
		assert.Equal(t, "Danh_sach_hoc_vien_tham_gia_18_06_2025.xlsx", filepath.Base(path))
	})

	t.Run("plain path is joined to base", func(t *testing.T) {
		path, err := d.ResolveInput("tien_trinh_hoc_tap.xlsx")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "tien_trinh_hoc_tap.xlsx"), path)
	})

	t.Run("absolute path kept", func(t *testing.T) {
		abs := filepath.Join(dir, "x.xlsx")
		path, err := d.ResolveInput(abs)
		require.NoError(t, err)
		assert.Equal(t, abs, path)
	})

	t.Run("lock files and directories skipped", func(t *testing.T) {
		touch(t, dir, "~$Danh_sach_hoc_vien_tham_gia_19_06_2025.xlsx", now)
		require.NoError(t, os.Mkdir(filepath.Join(dir, "Danh_sach_hoc_vien_tham_gia_20_06_2025.xlsx"), 0755))

		path, err := d.ResolveInput("*Danh_sach_hoc_vien_tham_gia_*.xlsx")
		require.NoError(t, err)
		assert.Equal(t, "Danh_sach_hoc_vien_tham_gia_18_06_2025.xlsx", filepath.Base(path))
	})

	t.Run("no match", func(t *testing.T) {
		_, err := d.ResolveInput("ket_qua_*.xlsx")
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrFileNotFound)
	})
}

func TestGetLatestFile(t *testing.T) {
	now := time.Now()
	day := func(d int) time.Time { return time.Date(2025, 6, d, 0, 0, 0, 0, time.UTC) }

	tests := []struct {
		name  string
		files []FileInfo
		want  string
		ok    bool
	}{
		{name: "empty", ok: false},
		{
			name: "name date wins over mod time",
			files: []FileInfo{
				{Name: "old", NameDate: day(18), ModTime: now.Add(-time.Hour)},
				{Name: "new", NameDate: day(17), ModTime: now},
			},
			want: "old",
			ok:   true,
		},
		{
			name: "tie broken by mod time",
			files: []FileInfo{
				{Name: "first", NameDate: day(18), ModTime: now.Add(-time.Hour)},
				{Name: "second", NameDate: day(18), ModTime: now},
			},
			want: "second",
			ok:   true,
		},
		{
			name: "undated falls back to mod time",
			files: []FileInfo{
				{Name: "a", ModTime: now},
				{Name: "b", ModTime: now.Add(-time.Minute)},
			},
			want: "a",
			ok:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := GetLatestFile(tt.files)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got.Name)
		})
	}
}

func TestIsPattern(t *testing.T) {
	assert.True(t, IsPattern("a_*.xlsx"))
	assert.True(t, IsPattern("a_?.xlsx"))
	assert.False(t, IsPattern("data/a.xlsx"))
}

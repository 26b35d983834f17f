package files

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phamthanhtung35NB/excel-to-chart/internal/shared/testutil"
)

func TestManager_WriteAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "charts")
	logger, handler := testutil.NewTestLogger(t)
	m := NewManager(dir, logger)

	written, err := m.WriteAll([]Artifact{
		{Name: "a.png", Data: []byte("aaa")},
		{Name: "b.png", Data: []byte("bb")},
	})
	require.NoError(t, err)
	require.Len(t, written, 2)

	data, err := os.ReadFile(filepath.Join(dir, "a.png"))
	require.NoError(t, err)
	assert.Equal(t, "aaa", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "no temp files left behind")
	assert.Equal(t, 2, len(handler.GetRecordsByLevel(slog.LevelInfo)))
}

func TestManager_WriteAllRollsBack(t *testing.T) {
	dir := t.TempDir()
	// A directory in the way makes the second rename fail
	require.NoError(t, os.Mkdir(filepath.Join(dir, "b.png"), 0755))

	m := NewManager(dir, nil)
	written, err := m.WriteAll([]Artifact{
		{Name: "a.png", Data: []byte("aaa")},
		{Name: "b.png", Data: []byte("bb")},
	})
	require.Error(t, err)
	assert.Nil(t, written)

	_, statErr := os.Stat(filepath.Join(dir, "a.png"))
	assert.True(t, os.IsNotExist(statErr), "first artifact must be removed")
}

func TestManager_WriteFileOverwrites(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(dir, nil)
	require.NoError(t, m.EnsureDirectory())

	_, err := m.WriteFile("report.csv", []byte("old"))
	require.NoError(t, err)
	path, err := m.WriteFile("report.csv", []byte("new"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
	assert.Equal(t, dir, m.Dir())
}

package files

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	apperrors "github.com/phamthanhtung35NB/excel-to-chart/internal/errors"
)

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path     string
	Name     string
	Size     int64
	ModTime  time.Time
	NameDate time.Time // date stamped in the file name, zero when absent
}

// Discovery provides file discovery operations
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// nameDatePattern matches the dd_mm_yyyy stamp the platform appends to exports
var nameDatePattern = regexp.MustCompile(`(\d{2})_(\d{2})_(\d{4})`)

// ParseNameDate extracts the last dd_mm_yyyy stamp from a file name
func ParseNameDate(name string) (time.Time, bool) {
	matches := nameDatePattern.FindAllStringSubmatch(name, -1)
	if len(matches) == 0 {
		return time.Time{}, false
	}
	m := matches[len(matches)-1]
	date, err := time.Parse("02_01_2006", m[1]+"_"+m[2]+"_"+m[3])
	if err != nil {
		return time.Time{}, false
	}
	return date, true
}

// IsPattern reports whether path contains glob metacharacters
func IsPattern(path string) bool {
	return strings.ContainsAny(path, "*?[")
}

// FindFilesByPattern finds files matching a glob pattern. The pattern may
// carry its own directory component.
func (d *Discovery) FindFilesByPattern(pattern string) ([]FileInfo, error) {
	searchPattern := d.resolve(pattern)

	matches, err := filepath.Glob(searchPattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
	}

	var files []FileInfo
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil || info.IsDir() {
			continue
		}
		if strings.HasPrefix(info.Name(), "~$") {
			continue
		}
		files = append(files, newFileInfo(match, info))
	}

	return files, nil
}

// ResolveInput turns a configured input into a concrete file path. Plain
// paths are returned resolved against the base path; glob patterns select
// the latest matching export.
func (d *Discovery) ResolveInput(input string) (string, error) {
	if !IsPattern(input) {
		return d.resolve(input), nil
	}

	files, err := d.FindFilesByPattern(input)
	if err != nil {
		return "", apperrors.NewFileNotFoundError(input, err)
	}
	latest, ok := GetLatestFile(files)
	if !ok {
		return "", apperrors.NewFileNotFoundError(input, fmt.Errorf("no file matches %s", input))
	}
	return latest.Path, nil
}

// GetLatestFile returns the newest file from a list. Files are ordered by
// the date in their name, then by modification time; a named date always
// outranks its absence.
func GetLatestFile(files []FileInfo) (FileInfo, bool) {
	if len(files) == 0 {
		return FileInfo{}, false
	}

	latest := files[0]
	for _, file := range files[1:] {
		if newer(file, latest) {
			latest = file
		}
	}

	return latest, true
}

func newer(a, b FileInfo) bool {
	if !a.NameDate.Equal(b.NameDate) {
		return a.NameDate.After(b.NameDate)
	}
	return a.ModTime.After(b.ModTime)
}

func newFileInfo(path string, info os.FileInfo) FileInfo {
	fi := FileInfo{
		Path:    path,
		Name:    info.Name(),
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}
	if date, ok := ParseNameDate(info.Name()); ok {
		fi.NameDate = date
	}
	return fi
}

func (d *Discovery) resolve(path string) string {
	if filepath.IsAbs(path) || d.basePath == "" {
		return path
	}
	return filepath.Join(d.basePath, path)
}

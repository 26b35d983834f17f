package files

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Artifact is one output file held in memory until it is saved
type Artifact struct {
	Name string
	Data []byte
}

// Manager writes run artifacts into a single output directory
type Manager struct {
	dir    string
	logger *slog.Logger
}

// NewManager creates a new file manager rooted at dir
func NewManager(dir string, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{dir: dir, logger: logger}
}

// Dir returns the output directory
func (m *Manager) Dir() string {
	return m.dir
}

// EnsureDirectory creates the output directory if it doesn't exist
func (m *Manager) EnsureDirectory() error {
	m.logger.Debug("Ensuring directory exists", slog.String("path", m.dir))
	return os.MkdirAll(m.dir, 0755)
}

// WriteFile writes data to a file in the output directory through a
// temporary file and a rename, so a reader never sees a half-written file.
func (m *Manager) WriteFile(name string, data []byte) (string, error) {
	path := filepath.Join(m.dir, name)

	tmp, err := os.CreateTemp(m.dir, "."+name+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file for %s: %w", name, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to close %s: %w", name, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to move %s into place: %w", name, err)
	}

	m.logger.Info("Writing file",
		slog.String("path", path),
		slog.Int("size_bytes", len(data)))
	return path, nil
}

// WriteAll saves every artifact or none. When one write fails the files
// already written by this call are removed again.
func (m *Manager) WriteAll(artifacts []Artifact) ([]string, error) {
	if err := m.EnsureDirectory(); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	written := make([]string, 0, len(artifacts))
	for _, a := range artifacts {
		path, err := m.WriteFile(a.Name, a.Data)
		if err != nil {
			if rbErr := m.remove(written); rbErr != nil {
				err = errors.Join(err, rbErr)
			}
			return nil, err
		}
		written = append(written, path)
	}
	return written, nil
}

func (m *Manager) remove(paths []string) error {
	var errs []error
	for _, p := range paths {
		m.logger.Warn("Removing partial output", slog.String("path", p))
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

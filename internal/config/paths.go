package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths resolves every file location of a run against one base directory.
type Paths struct {
	BaseDir   string
	OutputDir string
	LogsDir   string
}

// GetPaths returns paths rooted at the current working directory, which is
// where the exports are dropped next to the binary's invocation.
func GetPaths(cfg *Config) (*Paths, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return NewPaths(wd, cfg), nil
}

// NewPaths returns paths rooted at baseDir.
func NewPaths(baseDir string, cfg *Config) *Paths {
	p := &Paths{BaseDir: baseDir}
	p.OutputDir = p.Resolve(cfg.Output.Dir)
	if cfg.Logging.FilePath != "" {
		p.LogsDir = filepath.Dir(p.Resolve(cfg.Logging.FilePath))
	} else {
		p.LogsDir = p.Resolve(DefaultLogsDir)
	}
	return p
}

// Resolve makes a relative path absolute against BaseDir.
func (p *Paths) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.BaseDir, path)
}

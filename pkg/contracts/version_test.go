package contracts

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetVersionInfo(t *testing.T) {
	info := GetVersionInfo()
	assert.Equal(t, Version, info.Version)
	assert.Equal(t, ReportFormatVersion, info.ReportFormat)
	assert.Equal(t, runtime.Version(), info.GoVersion)
}

func TestGetFullVersionString(t *testing.T) {
	full := GetFullVersionString()
	assert.Contains(t, full, "learnstats v"+Version)
	assert.Contains(t, full, "report format: "+ReportFormatVersion)
	assert.Contains(t, full, "commit: "+GitCommit)
}

package version

import (
	"runtime"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func withBuildInfo(t *testing.T, info *debug.BuildInfo, ok bool) {
	t.Helper()
	orig := readBuildInfo
	readBuildInfo = func() (*debug.BuildInfo, bool) { return info, ok }
	t.Cleanup(func() { readBuildInfo = orig })
}

func withVersion(t *testing.T, v, c string) {
	t.Helper()
	origVersion, origCommit := Version, Commit
	Version, Commit = v, c
	t.Cleanup(func() { Version, Commit = origVersion, origCommit })
}

func TestString(t *testing.T) {
	tests := []struct {
		name     string
		version  string
		commit   string
		settings []debug.BuildSetting
		expected string
	}{
		{
			name:     "development version without commit",
			version:  "development",
			commit:   "unknown",
			expected: "development",
		},
		{
			name:     "release version with commit",
			version:  "1.0.0",
			commit:   "abc1234",
			expected: "1.0.0+abc1234",
		},
		{
			name:     "commit from build info is shortened",
			version:  "0.5.0",
			commit:   "unknown",
			settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "def5678aaaabbbb"}},
			expected: "0.5.0+def5678",
		},
		{
			name:     "ldflags commit wins over build info",
			version:  "2.0.0",
			commit:   "1234567",
			settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "ffffffffff"}},
			expected: "2.0.0+1234567",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withVersion(t, tt.version, tt.commit)
			withBuildInfo(t, &debug.BuildInfo{Settings: tt.settings}, true)

			assert.Equal(t, tt.expected, String())
		})
	}
}

func TestStringWithoutBuildInfo(t *testing.T) {
	withVersion(t, "1.2.3", "unknown")
	withBuildInfo(t, nil, false)

	assert.Equal(t, "1.2.3", String())
}

func TestFull(t *testing.T) {
	withVersion(t, "1.2.3", "abc1234")

	full := Full()
	assert.Contains(t, full, "shopcart version 1.2.3+abc1234")
	assert.Contains(t, full, runtime.GOOS)
}

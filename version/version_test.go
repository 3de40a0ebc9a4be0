package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetPopulatesRuntimeFields(t *testing.T) {
	info := Get()
	assert.NotEmpty(t, info.GoVersion)
	assert.NotEmpty(t, info.Platform)
	assert.Equal(t, CommitHash, info.CommitHash)
	assert.Equal(t, Version, info.Version)
}

func TestStringDevBuild(t *testing.T) {
	info := Info{Version: "dev", CommitHash: "abc1234567"}
	assert.Contains(t, info.String(), "glslls dev")
	assert.Contains(t, info.String(), "abc1234567")
}

func TestStringTaggedBuild(t *testing.T) {
	info := Info{Version: "1.2.3", CommitHash: "abc1234567", BuildTime: "2026-01-01"}
	s := info.String()
	assert.Contains(t, s, "1.2.3")
	assert.Contains(t, s, "abc1234567")
	assert.Contains(t, s, "2026-01-01")
}

func TestShortTruncatesToSevenChars(t *testing.T) {
	assert.Equal(t, "abcdefg", Info{CommitHash: "abcdefghijklmnop"}.Short())
}

func TestShortLeavesAShortHashAlone(t *testing.T) {
	assert.Equal(t, "abc", Info{CommitHash: "abc"}.Short())
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Completion.Enable)
	assert.True(t, cfg.Hover.Enable)
	assert.True(t, cfg.Diagnostic.Enable)
	assert.True(t, cfg.InlayHint.Enable)
	assert.Equal(t, 5, cfg.InlayHint.BlockEndHintLineThreshold)
	assert.Equal(t, "460", cfg.LanguageConfig.Version)
	assert.Equal(t, "fragment", cfg.LanguageConfig.Stage)
	assert.Equal(t, "info", cfg.LoggingLevel)
	assert.Empty(t, cfg.IncludeDirs)
}

func TestLoadCachesResult(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	first, err := Load()
	require.NoError(t, err)

	first.LoggingLevel = "debug"

	second, err := Load()
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, "debug", second.LoggingLevel)
}

func TestLoadEnvOverride(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	t.Setenv("GLSLLS_LOGGINGLEVEL", "warn")
	t.Setenv("GLSLLS_HOVER_ENABLE", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.LoggingLevel)
	assert.False(t, cfg.Hover.Enable)
}

func TestLoadProjectConfigFile(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "glslls.toml"), []byte(
		"loggingLevel = \"error\"\n\n[completion]\nenable = false\n",
	), 0o644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "error", cfg.LoggingLevel)
	assert.False(t, cfg.Completion.Enable)
	assert.True(t, cfg.Hover.Enable)
}

func TestToFeaturesConfig(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	cfg, err := Load()
	require.NoError(t, err)

	fc := cfg.ToFeaturesConfig()
	assert.Equal(t, cfg.Completion.Enable, fc.CompletionEnable)
	assert.Equal(t, cfg.InlayHint.BlockEndHintLineThreshold, fc.InlayHint.BlockEndHintLineThreshold)
}

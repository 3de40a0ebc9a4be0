// Package config loads glslls' configuration from layered TOML files
// and environment variables via viper, mirroring the recognized
// configuration options table: one independently gated flag per
// feature handler, the inlay-hint sub-options, the diagnostics toggle,
// the declared GLSL language version/stage, and the logging level.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/teranos/glslls/errors"
)

// Config is the complete, unmarshaled configuration tree.
type Config struct {
	Completion     FeatureToggle        `mapstructure:"completion"`
	Hover          FeatureToggle        `mapstructure:"hover"`
	SignatureHelp  FeatureToggle        `mapstructure:"signatureHelp"`
	Declaration    FeatureToggle        `mapstructure:"declaration"`
	Definition     FeatureToggle        `mapstructure:"definition"`
	Reference      FeatureToggle        `mapstructure:"reference"`
	DocumentSymbol FeatureToggle        `mapstructure:"documentSymbol"`
	SemanticToken  FeatureToggle        `mapstructure:"semanticToken"`
	FoldingRange   FeatureToggle        `mapstructure:"foldingRange"`
	Diagnostic     FeatureToggle        `mapstructure:"diagnostic"`
	InlayHint      InlayHintConfig      `mapstructure:"inlayHint"`
	LanguageConfig LanguageConfig       `mapstructure:"languageConfig"`
	IncludeDirs    []string             `mapstructure:"includeDirs"`
	LoggingLevel   string               `mapstructure:"loggingLevel"`
}

// FeatureToggle is the shape every single-flag provider config takes.
type FeatureToggle struct {
	Enable bool `mapstructure:"enable"`
}

// InlayHintConfig mirrors the spec's inlay-hint sub-options: one master
// switch plus three independent emitter switches and the block-end
// line-count threshold.
type InlayHintConfig struct {
	Enable                    bool `mapstructure:"enable"`
	EnableArgumentNameHint    bool `mapstructure:"enableArgumentNameHint"`
	EnableImplicitCastHint    bool `mapstructure:"enableImplicitCastHint"`
	EnableBlockEndHint        bool `mapstructure:"enableBlockEndHint"`
	BlockEndHintLineThreshold int  `mapstructure:"blockEndHintLineThreshold"`
}

// LanguageConfig names the GLSL version/stage a document is assumed to
// target absent a #version/detectable-extension override.
type LanguageConfig struct {
	Version string `mapstructure:"version"`
	Stage   string `mapstructure:"stage"`
}

var (
	global *Config
	v      *viper.Viper
)

// Load reads configuration from layered sources in ascending
// precedence (defaults, system glslls.toml, user glslls.toml, project
// glslls.toml found by walking up from the working directory,
// GLSLLS_-prefixed environment variables), caching the result for
// later Load calls within the same process.
func Load() (*Config, error) {
	if global != nil {
		return global, nil
	}

	vi := newViper()
	var cfg Config
	if err := vi.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal glslls config")
	}
	global = &cfg
	return global, nil
}

// Reset clears the cached configuration; tests use this to load a
// fresh instance per case.
func Reset() {
	global = nil
	v = nil
}

func newViper() *viper.Viper {
	if v != nil {
		return v
	}

	vi := viper.New()
	vi.SetEnvPrefix("GLSLLS")
	vi.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vi.AutomaticEnv()

	setDefaults(vi)
	mergeConfigFiles(vi)

	v = vi
	return vi
}

// mergeConfigFiles layers /etc/glslls/glslls.toml, the user config dir's
// glslls/glslls.toml, and a project-local glslls.toml found by walking
// up from the working directory, each overriding the previous.
func mergeConfigFiles(vi *viper.Viper) {
	candidates := []string{"/etc/glslls/glslls.toml"}
	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, "glslls", "glslls.toml"))
	}
	if project := findProjectConfig(); project != "" {
		candidates = append(candidates, project)
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		vi.SetConfigFile(path)
		vi.SetConfigType("toml")
		_ = vi.MergeInConfig()
	}
}

// findProjectConfig walks up from the working directory looking for
// glslls.toml, stopping at the filesystem root.
func findProjectConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		candidate := filepath.Join(dir, "glslls.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

func setDefaults(vi *viper.Viper) {
	for _, key := range []string{
		"completion", "hover", "signatureHelp", "declaration", "definition",
		"reference", "documentSymbol", "semanticToken", "foldingRange", "diagnostic",
	} {
		vi.SetDefault(key+".enable", true)
	}

	vi.SetDefault("inlayHint.enable", true)
	vi.SetDefault("inlayHint.enableArgumentNameHint", true)
	vi.SetDefault("inlayHint.enableImplicitCastHint", true)
	vi.SetDefault("inlayHint.enableBlockEndHint", true)
	vi.SetDefault("inlayHint.blockEndHintLineThreshold", 5)

	vi.SetDefault("languageConfig.version", "460")
	vi.SetDefault("languageConfig.stage", "fragment")

	vi.SetDefault("includeDirs", []string{})
	vi.SetDefault("loggingLevel", "info")
}

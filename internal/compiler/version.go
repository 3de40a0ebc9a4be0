package compiler

import (
	"fmt"
	"strconv"

	"github.com/Masterminds/semver/v3"

	"github.com/teranos/glslls/internal/diag"
	"github.com/teranos/glslls/internal/source"
)

// checkVersionConstraint compares a shader's own #version directive
// against the workspace's configured languageConfig.version, warning
// when they name different GLSL versions. GLSL version numbers (110,
// 330, 460, ...) already sort the same way major.minor does, so they
// are read as major*100+minor and handed to semver as an exact
// constraint rather than inventing a second comparison scheme.
func checkVersionConstraint(declared int, expected string, diags *diag.List) {
	expectedNum, err := strconv.Atoi(expected)
	if err != nil {
		return
	}

	declaredVer, err := semver.NewVersion(glslVersionString(declared))
	if err != nil {
		return
	}
	constraint, err := semver.NewConstraint("=" + glslVersionString(expectedNum))
	if err != nil {
		return
	}

	if !constraint.Check(declaredVer) {
		diags.Addf(source.Range{}, diag.Warning, diag.CodeVersionMismatch, fmt.Sprintf(
			"shader declares #version %d but the workspace is configured for GLSL version %s", declared, expected))
	}
}

func glslVersionString(v int) string {
	return fmt.Sprintf("%d.%d.0", v/100, v%100)
}

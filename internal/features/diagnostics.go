package features

import (
	"github.com/teranos/glslls/internal/diag"
)

// Diagnostics filters the compilation's accumulated diagnostic list
// down to what the client should see, gated by config (the list
// itself is already assembled by the compiler across preprocessing,
// parsing, and semantic analysis).
func Diagnostics(cfg Config, diags *diag.List) []diag.Message {
	if !cfg.DiagnosticEnable {
		return nil
	}
	return diags.All()
}

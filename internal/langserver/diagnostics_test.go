package langserver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/teranos/glslls/internal/diag"
)

func TestFilterDiagnosticSeverityDropsHints(t *testing.T) {
	all := []diag.Message{
		{Severity: diag.Hint, Text: "a hint"},
		{Severity: diag.Info, Text: "an info"},
		{Severity: diag.Warning, Text: "a warning"},
		{Severity: diag.Error, Text: "an error"},
	}

	filtered := filterDiagnosticSeverity(all)
	assert.Len(t, filtered, 3)
	for _, m := range filtered {
		assert.NotEqual(t, diag.Hint, m.Severity)
	}
}

func TestFilterDiagnosticSeverityEmpty(t *testing.T) {
	assert.Empty(t, filterDiagnosticSeverity(nil))
}

func TestLimiterForReturnsSameInstancePerURI(t *testing.T) {
	p := newDiagnosticsPublisher(nil)

	a := p.limiterFor("file:///x.frag")
	b := p.limiterFor("file:///x.frag")
	c := p.limiterFor("file:///y.frag")

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
}

func TestLimiterAllowsFirstCallThenThrottles(t *testing.T) {
	p := newDiagnosticsPublisher(nil)
	limiter := p.limiterFor("file:///z.frag")

	assert.True(t, limiter.Allow())
	assert.False(t, limiter.Allow())
}

func TestUint32Ptr(t *testing.T) {
	p := uint32Ptr(42)
	if assert.NotNil(t, p) {
		assert.EqualValues(t, 42, *p)
	}
}

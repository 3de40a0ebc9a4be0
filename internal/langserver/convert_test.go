package langserver

import (
	"testing"

	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/glslls/internal/diag"
	"github.com/teranos/glslls/internal/source"
)

func TestPositionRoundTrip(t *testing.T) {
	p := source.Position{Line: 3, Character: 7}
	got := toSourcePosition(toProtocolPosition(p))
	assert.Equal(t, p, got)
}

func TestToProtocolRange(t *testing.T) {
	r := source.Range{
		Start: source.Position{Line: 1, Character: 0},
		End:   source.Position{Line: 1, Character: 5},
	}
	got := toProtocolRange(r)
	assert.EqualValues(t, 1, got.Start.Line)
	assert.EqualValues(t, 0, got.Start.Character)
	assert.EqualValues(t, 5, got.End.Character)
}

func TestSeverityToProtocol(t *testing.T) {
	assert.Equal(t, protocol.DiagnosticSeverityError, severityToProtocol(diag.Error))
	assert.Equal(t, protocol.DiagnosticSeverityError, severityToProtocol(diag.Fatal))
	assert.Equal(t, protocol.DiagnosticSeverityWarning, severityToProtocol(diag.Warning))
	assert.Equal(t, protocol.DiagnosticSeverityInformation, severityToProtocol(diag.Info))
	assert.Equal(t, protocol.DiagnosticSeverityHint, severityToProtocol(diag.Hint))
}

func TestToProtocolDiagnostic(t *testing.T) {
	m := diag.Message{
		Range:    source.Range{Start: source.Position{Line: 2, Character: 1}, End: source.Position{Line: 2, Character: 4}},
		Severity: diag.Error,
		Code:     diag.CodeUnknownIdentifier,
		Text:     "unknown identifier 'foo'",
	}

	got := toProtocolDiagnostic(m)
	require.NotNil(t, got.Severity)
	assert.Equal(t, protocol.DiagnosticSeverityError, *got.Severity)
	require.NotNil(t, got.Code)
	assert.Equal(t, string(diag.CodeUnknownIdentifier), got.Code.Value)
	require.NotNil(t, got.Source)
	assert.Equal(t, "glslls", *got.Source)
	assert.Equal(t, "unknown identifier 'foo'", got.Message)
}

func TestStrPtrAndBoolPtr(t *testing.T) {
	s := strPtr("x")
	require.NotNil(t, s)
	assert.Equal(t, "x", *s)

	b := boolPtr(true)
	require.NotNil(t, b)
	assert.True(t, *b)
}

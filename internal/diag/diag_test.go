package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/teranos/glslls/internal/source"
)

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "hint", Hint.String())
	assert.Equal(t, "info", Info.String())
	assert.Equal(t, "warning", Warning.String())
	assert.Equal(t, "error", Error.String())
	assert.Equal(t, "fatal", Fatal.String())
	assert.Equal(t, "?", Severity(99).String())
}

func TestSeverityOrdering(t *testing.T) {
	assert.True(t, Hint < Info)
	assert.True(t, Info < Warning)
	assert.True(t, Warning < Error)
	assert.True(t, Error < Fatal)
}

func TestListAddAndAll(t *testing.T) {
	var l List
	assert.Empty(t, l.All())

	l.Add(Message{Severity: Warning, Code: CodeUnknownDirective, Text: "oops"})
	l.Addf(source.Range{}, Error, CodeSyntaxError, "bad token")

	got := l.All()
	assert.Len(t, got, 2)
	assert.Equal(t, CodeUnknownDirective, got[0].Code)
	assert.Equal(t, CodeSyntaxError, got[1].Code)
}

func TestListHasErrors(t *testing.T) {
	var l List
	assert.False(t, l.HasErrors())

	l.Add(Message{Severity: Warning})
	assert.False(t, l.HasErrors())

	l.Add(Message{Severity: Error})
	assert.True(t, l.HasErrors())

	var fatalOnly List
	fatalOnly.Add(Message{Severity: Fatal})
	assert.True(t, fatalOnly.HasErrors())
}

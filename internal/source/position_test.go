package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPositionBefore(t *testing.T) {
	a := Position{Line: 1, Character: 5}
	b := Position{Line: 1, Character: 6}
	c := Position{Line: 2, Character: 0}

	assert.True(t, a.Before(b))
	assert.True(t, b.Before(c))
	assert.False(t, b.Before(a))
	assert.False(t, a.Before(a))
}

func TestPositionEqual(t *testing.T) {
	a := Position{Line: 3, Character: 4}
	b := Position{Line: 3, Character: 4}
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(Position{Line: 3, Character: 5}))
}

func TestPositionString(t *testing.T) {
	assert.Equal(t, "1:1", Position{Line: 0, Character: 0}.String())
	assert.Equal(t, "4:9", Position{Line: 3, Character: 8}.String())
}

func TestRangeContains(t *testing.T) {
	r := Range{Start: Position{Line: 1, Character: 0}, End: Position{Line: 1, Character: 5}}

	assert.True(t, r.Contains(Position{Line: 1, Character: 0}))
	assert.True(t, r.Contains(Position{Line: 1, Character: 4}))
	assert.False(t, r.Contains(Position{Line: 1, Character: 5}))
	assert.False(t, r.Contains(Position{Line: 0, Character: 9}))
}

func TestRangeContainsExtended(t *testing.T) {
	r := Range{Start: Position{Line: 1, Character: 0}, End: Position{Line: 1, Character: 5}}
	assert.True(t, r.ContainsExtended(Position{Line: 1, Character: 5}))
	assert.False(t, r.ContainsExtended(Position{Line: 1, Character: 6}))
}

func TestRangePrecedes(t *testing.T) {
	r := Range{Start: Position{Line: 0, Character: 0}, End: Position{Line: 0, Character: 3}}
	assert.True(t, r.Precedes(Position{Line: 0, Character: 3}))
	assert.True(t, r.Precedes(Position{Line: 1, Character: 0}))
	assert.False(t, r.Precedes(Position{Line: 0, Character: 2}))
}

func TestRangeIsEmpty(t *testing.T) {
	p := Position{Line: 2, Character: 2}
	assert.True(t, Range{Start: p, End: p}.IsEmpty())
	assert.False(t, Range{Start: p, End: Position{Line: 2, Character: 3}}.IsEmpty())
}

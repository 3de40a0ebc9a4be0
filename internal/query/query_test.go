package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/glslls/internal/compiler"
	"github.com/teranos/glslls/internal/preprocessor"
	"github.com/teranos/glslls/internal/query"
	"github.com/teranos/glslls/internal/source"
)

func compileQuery(t *testing.T, text string) *query.Info {
	t.Helper()
	c := compiler.New()
	inv := compiler.Invocation{Loader: preprocessor.OSFileLoader{}}
	res := c.Compile(inv, compiler.PreambleSource{}, "main.frag", text)
	require.NotNil(t, res.Main)
	return query.New(res.Main.TU, res.Main.Tokens, res.Main.Root, res.Main.Store)
}

func TestLookupTokenByPositionFindsToken(t *testing.T) {
	q := compileQuery(t, "void main() {}\n")

	idx := q.LookupTokenByPosition(source.Position{Line: 0, Character: 0})
	require.GreaterOrEqual(t, idx, 0)

	tok, ok := q.LookupToken(idx)
	require.True(t, ok)
	assert.Equal(t, "void", tok.Text)
}

func TestLookupTokenByPositionOutOfRange(t *testing.T) {
	q := compileQuery(t, "void main() {}\n")
	idx := q.LookupTokenByPosition(source.Position{Line: 50, Character: 0})
	assert.Equal(t, -1, idx)
}

func TestLookupTokenOutOfBounds(t *testing.T) {
	q := compileQuery(t, "void main() {}\n")
	_, ok := q.LookupToken(-1)
	assert.False(t, ok)
	_, ok = q.LookupToken(100000)
	assert.False(t, ok)
}

func TestLookupTokensClampsRange(t *testing.T) {
	q := compileQuery(t, "void main() {}\n")
	toks := q.LookupTokens(-5, 100000)
	assert.NotEmpty(t, toks)
}

func TestQueryNodeByPositionReturnsInnermostNode(t *testing.T) {
	q := compileQuery(t, "void main() {}\n")
	n := q.QueryNodeByPosition(source.Position{Line: 0, Character: 0})
	assert.NotNil(t, n)
}

func TestQueryNodeByPositionOutOfRange(t *testing.T) {
	q := compileQuery(t, "void main() {}\n")
	n := q.QueryNodeByPosition(source.Position{Line: 50, Character: 0})
	assert.Nil(t, n)
}

func TestQuerySymbolByPositionWithoutStoreEntry(t *testing.T) {
	q := compileQuery(t, "void main() {}\n")
	_, ok := q.QuerySymbolByPosition("main.frag", 0)
	assert.False(t, ok)
}

func TestLookupDotTokenIndex(t *testing.T) {
	q := compileQuery(t, "void main() { vec3 v; v.x; }\n")
	idx := q.LookupTokenByPosition(source.Position{Line: 0, Character: 25})
	require.GreaterOrEqual(t, idx, 0)

	dot := q.LookupDotTokenIndex(source.Position{Line: 0, Character: 25})
	require.GreaterOrEqual(t, dot, 0)
	tok, ok := q.LookupToken(dot)
	require.True(t, ok)
	assert.Equal(t, ".", tok.Text)
}

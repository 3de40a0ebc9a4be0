package preprocessor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOSFileLoaderResolveQuotedPrefersCurrentDir(t *testing.T) {
	dir := t.TempDir()
	searchDir := t.TempDir()

	local := filepath.Join(dir, "common.glsl")
	require.NoError(t, os.WriteFile(local, []byte("// local\n"), 0o644))

	shadowed := filepath.Join(searchDir, "common.glsl")
	require.NoError(t, os.WriteFile(shadowed, []byte("// search path\n"), 0o644))

	var loader OSFileLoader
	path, ok := loader.Resolve("common.glsl", false, dir, []string{searchDir})
	require.True(t, ok)
	assert.Equal(t, local, path)
}

func TestOSFileLoaderResolveQuotedFallsThroughToSearchPath(t *testing.T) {
	dir := t.TempDir()
	searchDir := t.TempDir()

	target := filepath.Join(searchDir, "shared.glsl")
	require.NoError(t, os.WriteFile(target, []byte("// shared\n"), 0o644))

	var loader OSFileLoader
	path, ok := loader.Resolve("shared.glsl", false, dir, []string{searchDir})
	require.True(t, ok)
	assert.Equal(t, target, path)
}

func TestOSFileLoaderResolveAngledNeverTriesCurrentDir(t *testing.T) {
	dir := t.TempDir()
	local := filepath.Join(dir, "only_here.glsl")
	require.NoError(t, os.WriteFile(local, []byte("// local\n"), 0o644))

	var loader OSFileLoader
	_, ok := loader.Resolve("only_here.glsl", true, dir, nil)
	assert.False(t, ok)
}

func TestOSFileLoaderResolveNotFound(t *testing.T) {
	var loader OSFileLoader
	_, ok := loader.Resolve("missing.glsl", false, t.TempDir(), []string{t.TempDir()})
	assert.False(t, ok)
}

func TestOSFileLoaderRead(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "x.glsl")
	require.NoError(t, os.WriteFile(path, []byte("void main() {}\n"), 0o644))

	var loader OSFileLoader
	text, err := loader.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "void main() {}\n", text)
}

func TestOSFileLoaderReadMissing(t *testing.T) {
	var loader OSFileLoader
	_, err := loader.Read(filepath.Join(t.TempDir(), "nope.glsl"))
	assert.Error(t, err)
}

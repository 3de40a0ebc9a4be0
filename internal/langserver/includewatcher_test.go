package langserver

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/teranos/glslls/internal/compiler"
	"github.com/teranos/glslls/internal/preprocessor"
)

func TestIncludeWatcherRecompilesDependentsOnChange(t *testing.T) {
	dir := t.TempDir()
	included := filepath.Join(dir, "shared.glsl")
	require.NoError(t, os.WriteFile(included, []byte("float sharedV1;\n"), 0o644))

	logger := zap.NewNop().Sugar()
	r := NewRegistry(NewPool(context.Background(), 2), compiler.PreambleSource{}, compiler.Invocation{Loader: preprocessor.OSFileLoader{}})

	iw, err := NewIncludeWatcher(r, logger)
	require.NoError(t, err)
	defer iw.Close()

	bc := r.Open(filepath.Join(dir, "main.frag"), 1, "#include \"shared.glsl\"\nvoid main() {}\n")
	require.True(t, bc.WaitAvailable(defaultAvailabilityTimeout))

	iw.NoteIncludes([]string{included})

	recompiled := make(chan struct{}, 1)
	r.OnCompiled(func(bc *BackgroundCompilation) {
		select {
		case recompiled <- struct{}{}:
		default:
		}
	})

	require.NoError(t, os.WriteFile(included, []byte("float sharedV2;\n"), 0o644))

	select {
	case <-recompiled:
	case <-time.After(2 * time.Second):
		t.Fatal("include change never triggered a recompile")
	}
}

func TestIncludeWatcherIgnoresUnwatchedPaths(t *testing.T) {
	logger := zap.NewNop().Sugar()
	r := NewRegistry(NewPool(context.Background(), 2), compiler.PreambleSource{}, compiler.Invocation{Loader: preprocessor.OSFileLoader{}})

	iw, err := NewIncludeWatcher(r, logger)
	require.NoError(t, err)
	defer iw.Close()

	iw.scheduleRecompile("/never/noted.glsl")

	iw.mu.Lock()
	_, scheduled := iw.debounce["/never/noted.glsl"]
	iw.mu.Unlock()
	assert.False(t, scheduled)
}

package langserver

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/glslls/internal/compiler"
	"github.com/teranos/glslls/internal/preprocessor"
)

func testInvocation() compiler.Invocation {
	return compiler.Invocation{Loader: preprocessor.OSFileLoader{}}
}

func TestRegistryOpenPublishesResult(t *testing.T) {
	r := NewRegistry(NewPool(context.Background(), 2), compiler.PreambleSource{}, testInvocation())

	bc := r.Open("file:///main.frag", 1, "void main() {}\n")
	require.True(t, bc.WaitAvailable(defaultAvailabilityTimeout))
	assert.NotNil(t, bc.Result)
	assert.Same(t, bc, r.Lookup("file:///main.frag"))
}

func TestRegistryCloseRemovesEntry(t *testing.T) {
	r := NewRegistry(NewPool(context.Background(), 2), compiler.PreambleSource{}, testInvocation())

	bc := r.Open("file:///a.frag", 1, "void main() {}\n")
	require.True(t, bc.WaitAvailable(defaultAvailabilityTimeout))

	r.Close("file:///a.frag")
	assert.Nil(t, r.Lookup("file:///a.frag"))
}

func TestRegistryLookupUnknownURI(t *testing.T) {
	r := NewRegistry(NewPool(context.Background(), 2), compiler.PreambleSource{}, testInvocation())
	assert.Nil(t, r.Lookup("file:///never-opened.frag"))
}

func TestRegistryReopenRecompilesCachedText(t *testing.T) {
	r := NewRegistry(NewPool(context.Background(), 2), compiler.PreambleSource{}, testInvocation())

	first := r.Open("file:///b.frag", 3, "void main() {}\n")
	require.True(t, first.WaitAvailable(defaultAvailabilityTimeout))

	r.Reopen("file:///b.frag")
	second := r.Lookup("file:///b.frag")
	require.NotNil(t, second)
	require.True(t, second.WaitAvailable(defaultAvailabilityTimeout))

	assert.NotSame(t, first, second)
	assert.Equal(t, int32(3), second.Version)
}

func TestRegistryReopenUnknownURIIsNoop(t *testing.T) {
	r := NewRegistry(NewPool(context.Background(), 2), compiler.PreambleSource{}, testInvocation())
	r.Reopen("file:///never-opened.frag")
	assert.Nil(t, r.Lookup("file:///never-opened.frag"))
}

func TestRegistryOnCompiledCallback(t *testing.T) {
	r := NewRegistry(NewPool(context.Background(), 2), compiler.PreambleSource{}, testInvocation())

	notified := make(chan string, 1)
	r.OnCompiled(func(bc *BackgroundCompilation) { notified <- bc.URI })

	bc := r.Open("file:///c.frag", 1, "void main() {}\n")
	require.True(t, bc.WaitAvailable(defaultAvailabilityTimeout))

	select {
	case uri := <-notified:
		assert.Equal(t, "file:///c.frag", uri)
	case <-time.After(defaultAvailabilityTimeout):
		t.Fatal("onCompiled callback was never invoked")
	}
}

func TestBackgroundCompilationIncludePaths(t *testing.T) {
	r := NewRegistry(NewPool(context.Background(), 2), compiler.PreambleSource{}, testInvocation())

	bc := r.Open("file:///d.frag", 1, "void main() {}\n")
	require.True(t, bc.WaitAvailable(defaultAvailabilityTimeout))

	assert.Empty(t, bc.includePaths())
	assert.False(t, bc.includes("/some/header.glsl"))
}

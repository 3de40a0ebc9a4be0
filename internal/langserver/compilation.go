// Package langserver wires the compiler/query/features pipeline into
// an LSP server: a per-URI background compilation registry, a worker
// pool dispatching feature requests, and the glsp protocol.Handler
// that bridges wire types to this server's internal ones.
package langserver

import (
	"time"

	"github.com/teranos/glslls/internal/compiler"
	"github.com/teranos/glslls/internal/query"
)

// defaultAvailabilityTimeout is how long a feature request waits for
// its document's compilation to finish before returning an empty
// result, per the one-second suspension-point contract.
const defaultAvailabilityTimeout = time.Second

// BackgroundCompilation is one document version's compile job: a
// one-shot availability latch guards the result pointer, published
// exactly once via a closed channel so a feature request either sees
// a fully-built compilation or waits for one, never a half-built one.
type BackgroundCompilation struct {
	URI     string
	Version int32

	done   chan struct{}
	Result *compiler.Result
	Query  *query.Info
}

func newBackgroundCompilation(uri string, version int32) *BackgroundCompilation {
	return &BackgroundCompilation{URI: uri, Version: version, done: make(chan struct{})}
}

// run executes the full compile+query-wrap pipeline synchronously on
// whichever worker picked up this job, then publishes the result and
// closes done, waking every WaitAvailable caller at once. Compilation
// itself never suspends; the only blocking operation in this package
// is WaitAvailable.
func (bc *BackgroundCompilation) run(c *compiler.Compiler, inv compiler.Invocation, preamble compiler.PreambleSource, text string) {
	res := c.Compile(inv, preamble, bc.URI, text)
	bc.Result = res
	bc.Query = query.New(res.Main.TU, res.Main.Tokens, res.Main.Root, res.Main.Store)
	close(bc.done)
}

// WaitAvailable blocks until this compilation's result is published or
// timeout elapses, returning false on timeout (the caller should
// return the protocol's "no result" shape).
func (bc *BackgroundCompilation) WaitAvailable(timeout time.Duration) bool {
	select {
	case <-bc.done:
		return true
	case <-time.After(timeout):
		return false
	}
}

// includePaths returns the distinct file paths this compilation's main
// translation unit read, derived from each token's spelled file rather
// than a separate tracked list, since every included line still has to
// flow through the token stream.
func (bc *BackgroundCompilation) includePaths() []string {
	if bc.Result == nil || bc.Result.Main == nil {
		return nil
	}
	seen := map[string]bool{}
	var out []string
	for _, t := range bc.Result.Main.Tokens {
		if t.SpelledFile == "" || t.SpelledFile == bc.URI || seen[t.SpelledFile] {
			continue
		}
		seen[t.SpelledFile] = true
		out = append(out, t.SpelledFile)
	}
	return out
}

// includes reports whether path was one of the files this compilation
// read via #include; the main document itself is not counted.
func (bc *BackgroundCompilation) includes(path string) bool {
	for _, p := range bc.includePaths() {
		if p == path {
			return true
		}
	}
	return false
}

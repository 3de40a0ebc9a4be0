package langserver

import (
	"sync"

	"github.com/teranos/glslls/internal/compiler"
)

// Registry maintains the uri -> BackgroundCompilation map. Text-sync
// handlers synchronously replace or remove an entry and schedule the
// new compilation on the worker pool; they never block on compilation
// itself. Feature requests read an entry under the lock, then release
// it before calling WaitAvailable, matching the "lock held only across
// pointer swaps" rule.
type Registry struct {
	compiler *compiler.Compiler
	pool     *Pool
	preamble compiler.PreambleSource
	inv      compiler.Invocation

	mu       sync.Mutex
	docs     map[string]*BackgroundCompilation
	lastText map[string]string

	onCompiled func(*BackgroundCompilation)
}

// NewRegistry creates an empty registry sharing one Compiler (and
// therefore one Interner and one cached preamble parse) across every
// document it schedules.
func NewRegistry(pool *Pool, preamble compiler.PreambleSource, inv compiler.Invocation) *Registry {
	return &Registry{
		compiler: compiler.New(),
		pool:     pool,
		preamble: preamble,
		inv:      inv,
		docs:     make(map[string]*BackgroundCompilation),
		lastText: make(map[string]string),
	}
}

// OnCompiled registers a callback invoked on the worker goroutine right
// after every compilation publishes, used by IncludeWatcher to learn
// which files a document's compile pass read.
func (r *Registry) OnCompiled(fn func(*BackgroundCompilation)) {
	r.mu.Lock()
	r.onCompiled = fn
	r.mu.Unlock()
}

// Open or Change: replace the registry's entry for uri with a fresh
// BackgroundCompilation and enqueue its compile job. Returns the new
// entry so the caller (the LSP notification handler) can hold it if
// it wants to, though it normally just fires and forgets.
func (r *Registry) Open(uri string, version int32, text string) *BackgroundCompilation {
	bc := newBackgroundCompilation(uri, version)
	r.mu.Lock()
	r.docs[uri] = bc
	r.lastText[uri] = text
	cb := r.onCompiled
	r.mu.Unlock()

	r.pool.Submit(func() {
		bc.run(r.compiler, r.inv, r.preamble, text)
		if cb != nil {
			cb(bc)
		}
	})
	return bc
}

// Reopen recompiles uri against the text last seen by Open, used to
// refresh a document after one of its includes changed on disk rather
// than the document's own text.
func (r *Registry) Reopen(uri string) {
	r.mu.Lock()
	text, ok := r.lastText[uri]
	r.mu.Unlock()
	if !ok {
		return
	}
	bc := r.Lookup(uri)
	version := int32(0)
	if bc != nil {
		version = bc.Version
	}
	r.Open(uri, version, text)
}

// Close removes uri's entry; any compilation already in flight for it
// keeps running to completion but its result is now unreachable from
// the registry (the owning task already holds a shared reference).
func (r *Registry) Close(uri string) {
	r.mu.Lock()
	delete(r.docs, uri)
	delete(r.lastText, uri)
	r.mu.Unlock()
}

// Lookup returns the current entry for uri, or nil if the document
// isn't open (or was already closed).
func (r *Registry) Lookup(uri string) *BackgroundCompilation {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.docs[uri]
}

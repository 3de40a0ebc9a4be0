package langserver

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// IncludeWatcher re-triggers compilation of every open document whose
// last compile read a given header, whenever that header changes on
// disk: editing shared.glsl should refresh diagnostics in every file
// that #includes it, not just the one the editor happens to be
// viewing.
type IncludeWatcher struct {
	registry *Registry
	logger   *zap.SugaredLogger
	watcher  *fsnotify.Watcher

	mu      sync.Mutex
	watched map[string]bool
	debounce map[string]*time.Timer
}

// NewIncludeWatcher starts an fsnotify watcher bound to registry; call
// Close when the server shuts down.
func NewIncludeWatcher(registry *Registry, logger *zap.SugaredLogger) (*IncludeWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	iw := &IncludeWatcher{
		registry: registry,
		logger:   logger,
		watcher:  w,
		watched:  make(map[string]bool),
		debounce: make(map[string]*time.Timer),
	}
	go iw.loop()
	return iw, nil
}

// NoteIncludes adds every file path a document's compilation touched to
// the watch set, for any not already watched. Called once per finished
// compilation, since the include set can change between edits.
func (iw *IncludeWatcher) NoteIncludes(paths []string) {
	iw.mu.Lock()
	defer iw.mu.Unlock()
	for _, p := range paths {
		if p == "" || iw.watched[p] {
			continue
		}
		dir := filepath.Dir(p)
		if err := iw.watcher.Add(dir); err != nil {
			iw.logger.Debugw("include watcher failed to add directory", "dir", dir, "error", err)
			continue
		}
		iw.watched[p] = true
	}
}

func (iw *IncludeWatcher) loop() {
	for {
		select {
		case event, ok := <-iw.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			iw.scheduleRecompile(event.Name)
		case err, ok := <-iw.watcher.Errors:
			if !ok {
				return
			}
			iw.logger.Warnw("include watcher error", "error", err)
		}
	}
}

// scheduleRecompile debounces rapid writes (editors often emit several
// fsnotify events per save) before recompiling every open document
// that last read the changed path.
func (iw *IncludeWatcher) scheduleRecompile(changed string) {
	iw.mu.Lock()
	defer iw.mu.Unlock()
	if !iw.watched[changed] {
		return
	}
	if t, exists := iw.debounce[changed]; exists {
		t.Stop()
	}
	iw.debounce[changed] = time.AfterFunc(200*time.Millisecond, func() {
		iw.recompileDependents(changed)
	})
}

func (iw *IncludeWatcher) recompileDependents(changed string) {
	iw.registry.mu.Lock()
	var affected []*BackgroundCompilation
	for _, bc := range iw.registry.docs {
		if bc.includes(changed) {
			affected = append(affected, bc)
		}
	}
	iw.registry.mu.Unlock()

	for _, bc := range affected {
		iw.logger.Infow("include changed, recompiling dependent", "include", changed, "uri", bc.URI)
		iw.registry.Reopen(bc.URI)
	}
}

// Close stops the underlying fsnotify watcher.
func (iw *IncludeWatcher) Close() error {
	return iw.watcher.Close()
}

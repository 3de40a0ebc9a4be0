package langserver

import (
	"sync"
	"time"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/teranos/glslls/internal/diag"
)

// diagnosticsPublisher pushes textDocument/publishDiagnostics
// notifications once a document's background compilation finishes,
// rate-limited per URI so a client that fires didChange on every
// keystroke doesn't flood the connection with a notification per edit.
type diagnosticsPublisher struct {
	logger *zap.SugaredLogger

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func newDiagnosticsPublisher(logger *zap.SugaredLogger) *diagnosticsPublisher {
	return &diagnosticsPublisher{logger: logger, limiters: make(map[string]*rate.Limiter)}
}

func (p *diagnosticsPublisher) limiterFor(uri string) *rate.Limiter {
	p.mu.Lock()
	defer p.mu.Unlock()
	l, ok := p.limiters[uri]
	if !ok {
		l = rate.NewLimiter(rate.Every(200*time.Millisecond), 1)
		p.limiters[uri] = l
	}
	return l
}

// schedule waits for bc's compilation on its own goroutine and then
// publishes its diagnostics, so the didOpen/didChange notification
// handler itself never blocks on compilation.
func (p *diagnosticsPublisher) schedule(ctx *glsp.Context, bc *BackgroundCompilation) {
	go func() {
		if !bc.WaitAvailable(10 * time.Second) {
			return
		}
		if !p.limiterFor(bc.URI).Allow() {
			return
		}
		filtered := filterDiagnosticSeverity(bc.Result.Diagnostics.All())
		diags := make([]protocol.Diagnostic, 0, len(filtered))
		for _, m := range filtered {
			diags = append(diags, toProtocolDiagnostic(m))
		}
		ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
			URI:         protocol.DocumentUri(bc.URI),
			Version:     uint32Ptr(uint32(bc.Version)),
			Diagnostics: diags,
		})
	}()
}

// filterDiagnosticSeverity drops Hint-level notes from the published
// set.
func filterDiagnosticSeverity(all []diag.Message) []diag.Message {
	out := make([]diag.Message, 0, len(all))
	for _, m := range all {
		if m.Severity == diag.Hint {
			continue
		}
		out = append(out, m)
	}
	return out
}

func uint32Ptr(v uint32) *uint32 { return &v }

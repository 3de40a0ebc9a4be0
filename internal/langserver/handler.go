package langserver

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"go.uber.org/zap"

	"github.com/teranos/glslls/internal/ast"
	"github.com/teranos/glslls/internal/features"
	"github.com/teranos/glslls/internal/source"
)

// GLSPHandler bridges glsp's wire-level protocol.Handler callbacks to
// the registry of background compilations and the pure feature
// handlers: it owns no compiler state itself, only the Config gating
// which providers are advertised and invoked.
type GLSPHandler struct {
	registry *Registry
	cfg      features.Config
	logger   *zap.SugaredLogger
	diagPub  *diagnosticsPublisher
}

// NewGLSPHandler wraps a Registry, ready to be assembled into a
// protocol.Handler by Build.
func NewGLSPHandler(registry *Registry, cfg features.Config, logger *zap.SugaredLogger) *GLSPHandler {
	return &GLSPHandler{registry: registry, cfg: cfg, logger: logger, diagPub: newDiagnosticsPublisher(logger)}
}

// Build assembles the protocol.Handler struct literal glspserver.NewServer
// expects, wiring every method this handler implements. Unimplemented
// optional methods (formatting, rename, code actions) are left nil,
// matching the teacher's pattern of only wiring what the service supports.
func (h *GLSPHandler) Build() protocol.Handler {
	return protocol.Handler{
		Initialize:                     h.Initialize,
		Initialized:                    h.Initialized,
		Shutdown:                       h.Shutdown,
		TextDocumentDidOpen:            h.TextDocumentDidOpen,
		TextDocumentDidChange:          h.TextDocumentDidChange,
		TextDocumentDidClose:           h.TextDocumentDidClose,
		TextDocumentCompletion:         h.TextDocumentCompletion,
		TextDocumentHover:              h.TextDocumentHover,
		TextDocumentSignatureHelp:      h.TextDocumentSignatureHelp,
		TextDocumentDeclaration:        h.TextDocumentDeclaration,
		TextDocumentDefinition:         h.TextDocumentDefinition,
		TextDocumentReferences:         h.TextDocumentReferences,
		TextDocumentDocumentSymbol:     h.TextDocumentDocumentSymbol,
		TextDocumentSemanticTokensFull: h.TextDocumentSemanticTokensFull,
		TextDocumentInlayHint:          h.TextDocumentInlayHint,
		TextDocumentFoldingRange:       h.TextDocumentFoldingRange,
	}
}

// Initialize advertises capabilities gated by Config, so a client that
// disabled e.g. semantic tokens in its settings never sees it offered.
func (h *GLSPHandler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	h.logger.Infow("client initializing", "client", params.ClientInfo)

	caps := protocol.ServerCapabilities{
		TextDocumentSync: &protocol.TextDocumentSyncOptions{
			OpenClose: boolPtr(true),
			Change:    textDocSyncPtr(protocol.TextDocumentSyncKindFull),
		},
	}
	if h.cfg.CompletionEnable {
		caps.CompletionProvider = &protocol.CompletionOptions{TriggerCharacters: []string{"."}}
	}
	if h.cfg.HoverEnable {
		caps.HoverProvider = &protocol.HoverOptions{}
	}
	if h.cfg.SignatureHelpEnable {
		caps.SignatureHelpProvider = &protocol.SignatureHelpOptions{TriggerCharacters: []string{"(", ","}}
	}
	if h.cfg.DeclarationEnable {
		caps.DeclarationProvider = true
	}
	if h.cfg.DefinitionEnable {
		caps.DefinitionProvider = true
	}
	if h.cfg.ReferenceEnable {
		caps.ReferencesProvider = true
	}
	if h.cfg.DocumentSymbolEnable {
		caps.DocumentSymbolProvider = true
	}
	if h.cfg.SemanticTokenEnable {
		caps.SemanticTokensProvider = &protocol.SemanticTokensOptions{
			Legend: protocol.SemanticTokensLegend{
				TokenTypes:     semanticTokenTypeLegend,
				TokenModifiers: semanticTokenModifierLegend,
			},
			Full: &protocol.SemanticTokensOptionsFull{Value: true},
		}
	}
	if h.cfg.FoldingRangeEnable {
		caps.FoldingRangeProvider = true
	}
	if h.cfg.InlayHint.Enable {
		caps.InlayHintProvider = &protocol.InlayHintOptions{}
	}

	return protocol.InitializeResult{
		Capabilities: caps,
		ServerInfo:   &protocol.InitializeResultServerInfo{Name: "glslls", Version: strPtr("0.1.0")},
	}, nil
}

func (h *GLSPHandler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	h.logger.Infow("client initialized")
	return nil
}

func (h *GLSPHandler) Shutdown(ctx *glsp.Context) error {
	h.logger.Infow("client shutting down")
	return nil
}

func (h *GLSPHandler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	bc := h.registry.Open(uri, int32(params.TextDocument.Version), params.TextDocument.Text)
	h.diagPub.schedule(ctx, bc)
	return nil
}

func (h *GLSPHandler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	var text string
	for _, change := range params.ContentChanges {
		if whole, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			text = whole.Text
		}
	}
	bc := h.registry.Open(uri, int32(params.TextDocument.Version), text)
	h.diagPub.schedule(ctx, bc)
	return nil
}

func (h *GLSPHandler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	h.registry.Close(string(params.TextDocument.URI))
	return nil
}

// awaitQuery blocks up to defaultAvailabilityTimeout for uri's
// compilation and returns that BackgroundCompilation, or nil if the document is unknown
// or compilation hasn't published within the timeout.
func (h *GLSPHandler) awaitQuery(uri string) *BackgroundCompilation {
	bc := h.registry.Lookup(uri)
	if bc == nil {
		return nil
	}
	if !bc.WaitAvailable(defaultAvailabilityTimeout) {
		return nil
	}
	return bc
}

func (h *GLSPHandler) preambleDecls(bc *BackgroundCompilation) []ast.Decl {
	var decls []ast.Decl
	if bc.Result.SystemPreamble != nil {
		decls = append(decls, bc.Result.SystemPreamble.Root.Decls...)
	}
	if bc.Result.UserPreamble != nil {
		decls = append(decls, bc.Result.UserPreamble.Root.Decls...)
	}
	return decls
}

func (h *GLSPHandler) TextDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Errorw("panic in completion handler", "panic", r, "uri", params.TextDocument.URI)
			result, err = []protocol.CompletionItem{}, nil
		}
	}()
	uri := string(params.TextDocument.URI)
	bc := h.awaitQuery(uri)
	if bc == nil {
		return []protocol.CompletionItem{}, nil
	}
	list := features.Completion(h.cfg, bc.Query, h.preambleDecls(bc), toSourcePosition(params.Position))
	items := make([]protocol.CompletionItem, 0, len(list.Items))
	for _, it := range list.Items {
		kind := completionKindToProtocol(it.Kind)
		item := protocol.CompletionItem{Label: it.Label, Kind: &kind}
		if it.Detail != "" {
			item.Detail = strPtr(it.Detail)
		}
		if it.ReplaceRange != nil {
			rng := toProtocolRange(*it.ReplaceRange)
			item.TextEdit = protocol.TextEdit{Range: rng, NewText: it.Label}
		}
		items = append(items, item)
	}
	return protocol.CompletionList{IsIncomplete: list.Incomplete, Items: items}, nil
}

func (h *GLSPHandler) TextDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (result *protocol.Hover, err error) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Errorw("panic in hover handler", "panic", r, "uri", params.TextDocument.URI)
			result, err = nil, nil
		}
	}()
	bc := h.awaitQuery(string(params.TextDocument.URI))
	if bc == nil {
		return nil, nil
	}
	hover, ok := features.Hover(h.cfg, bc.Query, toSourcePosition(params.Position))
	if !ok {
		return nil, nil
	}
	rng := toProtocolRange(hover.Range)
	return &protocol.Hover{
		Contents: protocol.MarkupContent{Kind: protocol.MarkupKindMarkdown, Value: hover.Markdown},
		Range:    &rng,
	}, nil
}

func (h *GLSPHandler) TextDocumentSignatureHelp(ctx *glsp.Context, params *protocol.SignatureHelpParams) (result *protocol.SignatureHelp, err error) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Errorw("panic in signatureHelp handler", "panic", r, "uri", params.TextDocument.URI)
			result, err = nil, nil
		}
	}()
	bc := h.awaitQuery(string(params.TextDocument.URI))
	if bc == nil {
		return nil, nil
	}
	sh, ok := features.SignatureHelp(h.cfg, bc.Query, toSourcePosition(params.Position))
	if !ok {
		return nil, nil
	}
	sigs := make([]protocol.SignatureInformation, 0, len(sh.Signatures))
	for _, s := range sh.Signatures {
		sigs = append(sigs, protocol.SignatureInformation{Label: s.Label})
	}
	active := uint32(sh.ActiveParameter)
	return &protocol.SignatureHelp{Signatures: sigs, ActiveParameter: &active}, nil
}

func (h *GLSPHandler) TextDocumentDeclaration(ctx *glsp.Context, params *protocol.DeclarationParams) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Errorw("panic in declaration handler", "panic", r, "uri", params.TextDocument.URI)
			result, err = nil, nil
		}
	}()
	uri := string(params.TextDocument.URI)
	bc := h.awaitQuery(uri)
	if bc == nil {
		return nil, nil
	}
	loc, ok := features.Declaration(h.cfg, bc.Query, uri, toSourcePosition(params.Position))
	if !ok {
		return nil, nil
	}
	return toProtocolLocation(loc), nil
}

func (h *GLSPHandler) TextDocumentDefinition(ctx *glsp.Context, params *protocol.DefinitionParams) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Errorw("panic in definition handler", "panic", r, "uri", params.TextDocument.URI)
			result, err = nil, nil
		}
	}()
	uri := string(params.TextDocument.URI)
	bc := h.awaitQuery(uri)
	if bc == nil {
		return nil, nil
	}
	loc, ok := features.Definition(h.cfg, bc.Query, uri, toSourcePosition(params.Position))
	if !ok {
		return nil, nil
	}
	return toProtocolLocation(loc), nil
}

func (h *GLSPHandler) TextDocumentReferences(ctx *glsp.Context, params *protocol.ReferenceParams) (result []protocol.Location, err error) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Errorw("panic in references handler", "panic", r, "uri", params.TextDocument.URI)
			result, err = []protocol.Location{}, nil
		}
	}()
	uri := string(params.TextDocument.URI)
	bc := h.awaitQuery(uri)
	if bc == nil {
		return []protocol.Location{}, nil
	}
	locs := features.References(h.cfg, bc.Query, uri, toSourcePosition(params.Position), params.Context.IncludeDeclaration)
	out := make([]protocol.Location, 0, len(locs))
	for _, l := range locs {
		out = append(out, toProtocolLocation(l))
	}
	return out, nil
}

func (h *GLSPHandler) TextDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Errorw("panic in documentSymbol handler", "panic", r, "uri", params.TextDocument.URI)
			result, err = []protocol.DocumentSymbol{}, nil
		}
	}()
	bc := h.awaitQuery(string(params.TextDocument.URI))
	if bc == nil {
		return []protocol.DocumentSymbol{}, nil
	}
	syms := features.DocumentSymbols(h.cfg, bc.Query)
	out := make([]protocol.DocumentSymbol, 0, len(syms))
	for _, s := range syms {
		out = append(out, toProtocolDocumentSymbol(s))
	}
	return out, nil
}

func toProtocolDocumentSymbol(s features.DocumentSymbol) protocol.DocumentSymbol {
	rng := toProtocolRange(s.Range)
	ds := protocol.DocumentSymbol{
		Name:           s.Name,
		Kind:           symbolKindToProtocol(s.Kind),
		Range:          rng,
		SelectionRange: rng,
	}
	for _, c := range s.Children {
		ds.Children = append(ds.Children, toProtocolDocumentSymbol(c))
	}
	return ds
}

func (h *GLSPHandler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (result *protocol.SemanticTokens, err error) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Errorw("panic in semanticTokens handler", "panic", r, "uri", params.TextDocument.URI)
			result, err = nil, nil
		}
	}()
	bc := h.awaitQuery(string(params.TextDocument.URI))
	if bc == nil {
		return nil, nil
	}
	toks := features.SemanticTokens(h.cfg, bc.Query)
	return &protocol.SemanticTokens{Data: deltaEncode(toks)}, nil
}

// deltaEncode converts absolute (line, startChar, length, type,
// modifiers) records, already sorted by position, into the LSP
// relative-delta int array: each token's line/char is expressed
// relative to the previous token's, per the semantic tokens spec.
func deltaEncode(toks []features.SemanticToken) []uint32 {
	data := make([]uint32, 0, len(toks)*5)
	prevLine, prevChar := 0, 0
	for _, t := range toks {
		deltaLine := t.Line - prevLine
		deltaChar := t.StartChar
		if deltaLine == 0 {
			deltaChar = t.StartChar - prevChar
		}
		data = append(data, uint32(deltaLine), uint32(deltaChar), uint32(t.Length), semanticTokenTypeIndex(t.Type), t.Modifiers)
		prevLine, prevChar = t.Line, t.StartChar
	}
	return data
}

func (h *GLSPHandler) TextDocumentInlayHint(ctx *glsp.Context, params *protocol.InlayHintParams) (result []protocol.InlayHint, err error) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Errorw("panic in inlayHint handler", "panic", r, "uri", params.TextDocument.URI)
			result, err = []protocol.InlayHint{}, nil
		}
	}()
	bc := h.awaitQuery(string(params.TextDocument.URI))
	if bc == nil {
		return []protocol.InlayHint{}, nil
	}
	hints := features.InlayHints(h.cfg, bc.Query)
	out := make([]protocol.InlayHint, 0, len(hints))
	for _, hint := range hints {
		pos := toProtocolPosition(hint.Pos)
		label := hint.Label
		kind := protocol.InlayHintKindType
		if hint.Kind == features.HintArgumentName {
			kind = protocol.InlayHintKindParameter
		}
		out = append(out, protocol.InlayHint{
			Position: pos,
			Label:    protocol.StringOrInlayHintLabelParts{Value: label},
			Kind:     &kind,
		})
	}
	return out, nil
}

func (h *GLSPHandler) TextDocumentFoldingRange(ctx *glsp.Context, params *protocol.FoldingRangeParams) (result []protocol.FoldingRange, err error) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Errorw("panic in foldingRange handler", "panic", r, "uri", params.TextDocument.URI)
			result, err = []protocol.FoldingRange{}, nil
		}
	}()
	bc := h.awaitQuery(string(params.TextDocument.URI))
	if bc == nil {
		return []protocol.FoldingRange{}, nil
	}
	ranges := features.FoldingRanges(h.cfg, bc.Query)
	out := make([]protocol.FoldingRange, 0, len(ranges))
	for _, r := range ranges {
		start, end := uint32(r.StartLine), uint32(r.EndLine)
		out = append(out, protocol.FoldingRange{StartLine: start, EndLine: end})
	}
	return out, nil
}

func textDocSyncPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind { return &k }

var semanticTokenTypeLegend = []string{
	"namespace", "type", "class", "enum", "parameter", "variable",
	"property", "function", "method", "macro", "keyword", "modifier",
	"string", "number", "operator",
}

var semanticTokenModifierLegend = []string{"declaration", "readonly", "defaultLibrary"}

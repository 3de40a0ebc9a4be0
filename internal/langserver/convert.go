package langserver

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/teranos/glslls/internal/diag"
	"github.com/teranos/glslls/internal/features"
	"github.com/teranos/glslls/internal/source"
)

func toSourcePosition(p protocol.Position) source.Position {
	return source.Position{Line: int(p.Line), Character: int(p.Character)}
}

func toProtocolPosition(p source.Position) protocol.Position {
	return protocol.Position{Line: uint32(p.Line), Character: uint32(p.Character)}
}

func toProtocolRange(r source.Range) protocol.Range {
	return protocol.Range{Start: toProtocolPosition(r.Start), End: toProtocolPosition(r.End)}
}

func toProtocolLocation(l features.Location) protocol.Location {
	return protocol.Location{URI: protocol.DocumentUri(l.File), Range: toProtocolRange(l.Range)}
}

func severityToProtocol(s diag.Severity) protocol.DiagnosticSeverity {
	switch s {
	case diag.Fatal, diag.Error:
		return protocol.DiagnosticSeverityError
	case diag.Warning:
		return protocol.DiagnosticSeverityWarning
	case diag.Info:
		return protocol.DiagnosticSeverityInformation
	default:
		return protocol.DiagnosticSeverityHint
	}
}

func toProtocolDiagnostic(m diag.Message) protocol.Diagnostic {
	sev := severityToProtocol(m.Severity)
	code := string(m.Code)
	return protocol.Diagnostic{
		Range:    toProtocolRange(m.Range),
		Severity: &sev,
		Code:     &protocol.IntegerOrString{Value: code},
		Source:   strPtr("glslls"),
		Message:  m.Text,
	}
}

func symbolKindToProtocol(k features.SymbolKind) protocol.SymbolKind {
	switch k {
	case features.SymbolFunction:
		return protocol.SymbolKindFunction
	case features.SymbolStruct:
		return protocol.SymbolKindStruct
	case features.SymbolField:
		return protocol.SymbolKindField
	case features.SymbolInterfaceBlock:
		return protocol.SymbolKindNamespace
	case features.SymbolParameter:
		return protocol.SymbolKindVariable
	default:
		return protocol.SymbolKindVariable
	}
}

func completionKindToProtocol(k features.CompletionItemKind) protocol.CompletionItemKind {
	switch k {
	case features.ItemKeyword:
		return protocol.CompletionItemKindKeyword
	case features.ItemFunction:
		return protocol.CompletionItemKindFunction
	case features.ItemField:
		return protocol.CompletionItemKindField
	case features.ItemStruct:
		return protocol.CompletionItemKindStruct
	case features.ItemMethod:
		return protocol.CompletionItemKindMethod
	case features.ItemTypeParameter:
		return protocol.CompletionItemKindTypeParameter
	default:
		return protocol.CompletionItemKindVariable
	}
}

func semanticTokenTypeIndex(t features.TokenType) uint32 { return uint32(t) }

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

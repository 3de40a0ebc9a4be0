package config

import "github.com/teranos/glslls/internal/features"

// ToFeaturesConfig projects the loaded configuration onto the
// gating struct the feature handlers and the GLSP capability
// advertisement both consume.
func (c *Config) ToFeaturesConfig() features.Config {
	return features.Config{
		CompletionEnable:     c.Completion.Enable,
		HoverEnable:          c.Hover.Enable,
		SignatureHelpEnable:  c.SignatureHelp.Enable,
		DeclarationEnable:    c.Declaration.Enable,
		DefinitionEnable:     c.Definition.Enable,
		ReferenceEnable:      c.Reference.Enable,
		DocumentSymbolEnable: c.DocumentSymbol.Enable,
		SemanticTokenEnable:  c.SemanticToken.Enable,
		FoldingRangeEnable:   c.FoldingRange.Enable,
		DiagnosticEnable:     c.Diagnostic.Enable,
		InlayHint: features.InlayHintConfig{
			Enable:                    c.InlayHint.Enable,
			EnableArgumentNameHint:    c.InlayHint.EnableArgumentNameHint,
			EnableImplicitCastHint:    c.InlayHint.EnableImplicitCastHint,
			EnableBlockEndHint:        c.InlayHint.EnableBlockEndHint,
			BlockEndHintLineThreshold: c.InlayHint.BlockEndHintLineThreshold,
		},
	}
}

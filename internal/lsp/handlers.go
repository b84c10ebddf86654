package lsp

import (
	"encoding/json"
	"fmt"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"asmodeus/internal/assist"
	"asmodeus/internal/diag"
	"asmodeus/internal/semtok"
)

func (s *Server) handleInitialize(msg *rpcMessage) (any, error) {
	var params initializeParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return nil, invalidParams("invalid initialize params: %v", err)
		}
	}
	if len(params.InitializationOptions) > 0 {
		s.applySettings(params.InitializationOptions)
	}
	fields := []zap.Field{zap.String("root", params.RootURI)}
	if params.ClientInfo != nil {
		fields = append(fields, zap.String("client", params.ClientInfo.Name))
	}
	s.logger.Info("initialize", fields...)

	s.mu.Lock()
	s.initialized = true
	s.mu.Unlock()

	return initializeResult{
		Capabilities: capabilities(),
		ServerInfo:   &serverInfo{Name: serverName, Version: s.version},
	}, nil
}

func capabilities() serverCapabilities {
	return serverCapabilities{
		TextDocumentSync: textDocumentSyncOptions{
			OpenClose: true,
			Change:    protocol.TextDocumentSyncKindFull,
			Save:      &saveOptions{IncludeText: true},
		},
		HoverProvider: true,
		CompletionProvider: &completionOptions{
			TriggerCharacters: []string{" ", "\t"},
		},
		SignatureHelpProvider: &signatureHelpOptions{
			TriggerCharacters:   []string{" "},
			RetriggerCharacters: []string{","},
		},
		DefinitionProvider:      true,
		ReferencesProvider:      true,
		DocumentSymbolProvider:  true,
		WorkspaceSymbolProvider: true,
		CodeActionProvider: &codeActionOptions{
			CodeActionKinds: []protocol.CodeActionKind{protocol.QuickFix, protocol.Refactor},
		},
		RenameProvider: &renameOptions{PrepareProvider: true},
		SemanticTokensProvider: &semanticTokensOptions{
			Legend: semanticTokensLegend{
				TokenTypes:     semtok.Legend,
				TokenModifiers: semtok.Modifiers,
			},
			Full: true,
		},
	}
}

// openDocument resolves a request's document. Requests for documents the
// editor never opened answer with an empty result.
func (s *Server) openDocument(raw string) (string, document, *lineIndex, bool) {
	uri := canonicalURI(raw)
	doc, ok := s.docs.get(uri)
	if !ok {
		return uri, document{}, nil, false
	}
	return uri, doc, newLineIndex(doc.text), true
}

func (s *Server) handleHover(msg *rpcMessage) (any, error) {
	var params textDocumentPositionParams
	if err := decodeParams(msg, &params); err != nil {
		return nil, err
	}
	_, doc, ix, ok := s.openDocument(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	h, ok := s.currentEngine().Hover(doc.text, ix.toSource(params.Position))
	if !ok {
		return nil, nil
	}
	r := ix.rangeOf(h.Span)
	return protocol.Hover{
		Contents: protocol.MarkupContent{Kind: protocol.Markdown, Value: h.Markdown},
		Range:    &r,
	}, nil
}

func (s *Server) handleCompletion(msg *rpcMessage) (any, error) {
	var params textDocumentPositionParams
	if err := decodeParams(msg, &params); err != nil {
		return nil, err
	}
	_, doc, ix, ok := s.openDocument(params.TextDocument.URI)
	if !ok {
		return completionList{Items: []completionItem{}}, nil
	}
	items := s.currentEngine().Completion(doc.text, ix.toSource(params.Position))
	out := make([]completionItem, 0, len(items))
	for _, it := range items {
		out = append(out, toCompletionItem(it))
	}
	return completionList{Items: out}, nil
}

func toCompletionItem(it assist.Item) completionItem {
	ci := completionItem{
		Label:            it.Label,
		Detail:           it.Detail,
		InsertText:       it.InsertText,
		InsertTextFormat: protocol.InsertTextFormatPlainText,
		SortText:         it.SortText,
	}
	switch it.Kind {
	case assist.ItemLabel:
		ci.Kind = protocol.CompletionItemKindReference
	case assist.ItemConstant:
		ci.Kind = protocol.CompletionItemKindConstant
	default:
		ci.Kind = protocol.CompletionItemKindKeyword
	}
	if it.Snippet {
		ci.InsertTextFormat = protocol.InsertTextFormatSnippet
	}
	if it.Documentation != "" {
		ci.Documentation = markdown(it.Documentation)
	}
	return ci
}

func (s *Server) handleSignatureHelp(msg *rpcMessage) (any, error) {
	var params textDocumentPositionParams
	if err := decodeParams(msg, &params); err != nil {
		return nil, err
	}
	_, doc, ix, ok := s.openDocument(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	sig, ok := s.currentEngine().SignatureHelp(doc.text, ix.toSource(params.Position))
	if !ok {
		return nil, nil
	}
	info := signatureInformation{
		Label:      sig.Label,
		Parameters: make([]parameterInformation, 0, len(sig.Parameters)),
	}
	if sig.Documentation != "" {
		info.Documentation = markdown(sig.Documentation)
	}
	for _, p := range sig.Parameters {
		pi := parameterInformation{Label: p.Label}
		if p.Documentation != "" {
			pi.Documentation = markdown(p.Documentation)
		}
		info.Parameters = append(info.Parameters, pi)
	}
	help := signatureHelp{Signatures: []signatureInformation{info}}
	if sig.ActiveParameter >= 0 {
		active := toUint32(sig.ActiveParameter)
		help.ActiveParameter = &active
	}
	return help, nil
}

func markdown(value string) *protocol.MarkupContent {
	return &protocol.MarkupContent{Kind: protocol.Markdown, Value: value}
}

func (s *Server) handleDefinition(msg *rpcMessage) (any, error) {
	var params textDocumentPositionParams
	if err := decodeParams(msg, &params); err != nil {
		return nil, err
	}
	uri, doc, ix, ok := s.openDocument(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	span, ok := s.currentEngine().Definition(doc.text, ix.toSource(params.Position))
	if !ok {
		return nil, nil
	}
	return protocol.Location{URI: protocol.DocumentURI(uri), Range: ix.rangeOf(span)}, nil
}

func (s *Server) handleReferences(msg *rpcMessage) (any, error) {
	var params referenceParams
	if err := decodeParams(msg, &params); err != nil {
		return nil, err
	}
	uri, doc, ix, ok := s.openDocument(params.TextDocument.URI)
	if !ok {
		return []protocol.Location{}, nil
	}
	spans := s.currentEngine().References(doc.text, ix.toSource(params.Position), params.Context.IncludeDeclaration)
	out := make([]protocol.Location, 0, len(spans))
	for _, sp := range spans {
		out = append(out, protocol.Location{URI: protocol.DocumentURI(uri), Range: ix.rangeOf(sp)})
	}
	return out, nil
}

func (s *Server) handleDocumentSymbol(msg *rpcMessage) (any, error) {
	var params documentSymbolParams
	if err := decodeParams(msg, &params); err != nil {
		return nil, err
	}
	uri, doc, ix, ok := s.openDocument(params.TextDocument.URI)
	if !ok {
		return []protocol.SymbolInformation{}, nil
	}
	symbols := s.currentEngine().DocumentSymbols(doc.text)
	out := make([]protocol.SymbolInformation, 0, len(symbols))
	for _, sym := range symbols {
		out = append(out, protocol.SymbolInformation{
			Name:     sym.Name,
			Kind:     protocol.SymbolKindFunction,
			Location: protocol.Location{URI: protocol.DocumentURI(uri), Range: ix.rangeOf(sym.Span)},
		})
	}
	return out, nil
}

func (s *Server) handleWorkspaceSymbol(msg *rpcMessage) (any, error) {
	var params workspaceSymbolParams
	if err := decodeParams(msg, &params); err != nil {
		return nil, err
	}
	docs := s.docs.snapshot()
	found := s.currentEngine().WorkspaceSymbols(docs, params.Query)
	indexes := make(map[string]*lineIndex)
	out := make([]protocol.SymbolInformation, 0, len(found))
	for _, sym := range found {
		ix, ok := indexes[sym.URI]
		if !ok {
			ix = newLineIndex(docs[sym.URI])
			indexes[sym.URI] = ix
		}
		out = append(out, protocol.SymbolInformation{
			Name:     sym.Name,
			Kind:     protocol.SymbolKindFunction,
			Location: protocol.Location{URI: protocol.DocumentURI(sym.URI), Range: ix.rangeOf(sym.Span)},
		})
	}
	return out, nil
}

func (s *Server) handleCodeAction(msg *rpcMessage) (any, error) {
	var params codeActionParams
	if err := decodeParams(msg, &params); err != nil {
		return nil, err
	}
	uri, doc, ix, ok := s.openDocument(params.TextDocument.URI)
	if !ok {
		return []codeAction{}, nil
	}
	var diagnostics []diag.Diagnostic
	for _, pd := range params.Context.Diagnostics {
		if d, ok := fromProtocolDiagnostic(ix, pd); ok {
			diagnostics = append(diagnostics, d)
		}
	}
	fixes := s.currentEngine().CodeActions(doc.text, ix.toSourceSpan(params.Range), diagnostics, uri)
	out := make([]codeAction, 0, len(fixes))
	for _, f := range fixes {
		out = append(out, toCodeAction(ix, f))
	}
	return out, nil
}

func toCodeAction(ix *lineIndex, f diag.Fix) codeAction {
	action := codeAction{
		Title:       f.Title,
		Kind:        protocol.QuickFix,
		IsPreferred: f.IsPreferred,
		Edit:        toWorkspaceEdit(ix, f.Edit),
	}
	if f.Kind == diag.FixKindRefactor {
		action.Kind = protocol.Refactor
	}
	if len(f.Diagnostics) > 0 {
		action.Diagnostics = toProtocolDiagnostics(ix, f.Diagnostics)
	}
	return action
}

// toWorkspaceEdit converts edits; every edit targets the document indexed
// by ix.
func toWorkspaceEdit(ix *lineIndex, we diag.WorkspaceEdit) *workspaceEdit {
	out := &workspaceEdit{Changes: make(map[string][]protocol.TextEdit, len(we.Changes))}
	for uri, edits := range we.Changes {
		list := make([]protocol.TextEdit, 0, len(edits))
		for _, e := range edits {
			list = append(list, protocol.TextEdit{Range: ix.rangeOf(e.Span), NewText: e.NewText})
		}
		out.Changes[uri] = list
	}
	return out
}

func (s *Server) handlePrepareRename(msg *rpcMessage) (any, error) {
	var params textDocumentPositionParams
	if err := decodeParams(msg, &params); err != nil {
		return nil, err
	}
	_, doc, ix, ok := s.openDocument(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	span, ok := s.currentEngine().PrepareRename(doc.text, ix.toSource(params.Position))
	if !ok {
		return nil, nil
	}
	return prepareRenameResult{
		Range:       ix.rangeOf(span),
		Placeholder: string(ix.line(span.Line)[span.Start:span.End]),
	}, nil
}

func (s *Server) handleRename(msg *rpcMessage) (any, error) {
	var params renameParams
	if err := decodeParams(msg, &params); err != nil {
		return nil, err
	}
	uri, doc, ix, ok := s.openDocument(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	eng := s.currentEngine()
	if err := eng.ValidateName(params.NewName); err != nil {
		return nil, invalidParams("%v", err)
	}
	edit, ok := eng.Rename(doc.text, ix.toSource(params.Position), params.NewName, uri)
	if !ok {
		return nil, nil
	}
	return toWorkspaceEdit(ix, edit), nil
}

func (s *Server) handleSemanticTokens(msg *rpcMessage) (any, error) {
	var params semanticTokensParams
	if err := decodeParams(msg, &params); err != nil {
		return nil, err
	}
	_, doc, ix, ok := s.openDocument(params.TextDocument.URI)
	if !ok {
		return protocol.SemanticTokens{Data: []uint32{}}, nil
	}
	data, err := semtok.Flatten(ix.utf16Tokens(s.currentEngine().SemanticTokens(doc.text)))
	if err != nil {
		return nil, fmt.Errorf("semantic tokens: %w", err)
	}
	if data == nil {
		data = []uint32{}
	}
	return protocol.SemanticTokens{Data: data}, nil
}

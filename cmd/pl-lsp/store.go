package main

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.lsp.dev/protocol"

	"github.com/plkit/plkit/codec"
	"github.com/plkit/plkit/value"
)

type documentStore struct {
	mu   sync.RWMutex
	docs map[string]*document
}

type document struct {
	uri          string
	content      string
	version      int32
	format       codec.Format
	value        *value.Value
	positions    map[*value.Value]codec.Pos
	keyPositions map[*value.Value]codec.Pos
	decodeErr    error
}

func (ds *documentStore) get(uri string) *document {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.docs[uri]
}

func (ds *documentStore) put(uri string, content string, version int32) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	// Decode with position tracking; on error keep the content and
	// the error so diagnostics can report it.
	f := codec.FormatForPath(uri)
	positions := make(map[*value.Value]codec.Pos)
	keyPositions := make(map[*value.Value]codec.Pos)
	v, err := codec.Decode([]byte(content), f,
		codec.DecodePositions(positions), codec.DecodeKeyPositions(keyPositions))
	ds.docs[uri] = &document{
		uri:          uri,
		content:      content,
		version:      version,
		format:       f,
		value:        v,
		positions:    positions,
		keyPositions: keyPositions,
		decodeErr:    err,
	}
}

func (ds *documentStore) remove(uri string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	delete(ds.docs, uri)
}

func (s *Server) publishDiagnostics(ctx context.Context, uri string) {
	doc := s.docs.get(uri)
	if doc == nil {
		return
	}

	diagnostics := s.validateDocument(doc)

	if s.conn != nil {
		s.conn.Notify(ctx, protocol.MethodTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
			URI:         protocol.DocumentURI(uri),
			Diagnostics: diagnostics,
		})
	}
}

func (s *Server) validateDocument(doc *document) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}

	if doc.decodeErr != nil {
		diagnostic := protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{Line: 0, Character: 0},
				End:   protocol.Position{Line: 0, Character: 0},
			},
			Severity: protocol.DiagnosticSeverityError,
			Message:  doc.decodeErr.Error(),
			Source:   "pl",
		}

		// Decode errors mention 1-based lines when they can.
		if line := extractLine(doc.decodeErr.Error()); line > 0 {
			diagnostic.Range = protocol.Range{
				Start: protocol.Position{Line: uint32(line - 1), Character: 0},
				End:   protocol.Position{Line: uint32(line - 1), Character: 1},
			}
		}

		diagnostics = append(diagnostics, diagnostic)
	}

	return diagnostics
}

func extractLine(errMsg string) int {
	i := strings.Index(errMsg, "line ")
	if i == -1 {
		return 0
	}
	var line int
	if _, err := fmt.Sscanf(errMsg[i:], "line %d", &line); err != nil {
		return 0
	}
	return line
}

func (s *Server) DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.docs.put(string(params.TextDocument.URI), params.TextDocument.Text, params.TextDocument.Version)
	s.publishDiagnostics(ctx, string(params.TextDocument.URI))
	return nil
}

func (s *Server) DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) error {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return nil
	}

	// Apply changes
	content := doc.content
	for _, change := range params.ContentChanges {
		// A zero range means full document replacement
		rangeVal := change.Range
		if rangeVal.Start.Line == 0 && rangeVal.Start.Character == 0 && rangeVal.End.Line == 0 && rangeVal.End.Character == 0 {
			content = change.Text
		} else {
			start := rangeVal.Start
			end := rangeVal.End
			contentRunes := []rune(content)
			startOffset := lineColToOffset(content, int(start.Line), int(start.Character))
			endOffset := lineColToOffset(content, int(end.Line), int(end.Character))
			if startOffset < len(contentRunes) && endOffset <= len(contentRunes) {
				content = string(contentRunes[:startOffset]) + change.Text + string(contentRunes[endOffset:])
			}
		}
	}

	s.docs.put(string(params.TextDocument.URI), content, params.TextDocument.Version)
	s.publishDiagnostics(ctx, string(params.TextDocument.URI))
	return nil
}

func (s *Server) DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.docs.remove(string(params.TextDocument.URI))
	return nil
}

func lineColToOffset(content string, line, col int) int {
	currentLine := 0
	currentCol := 0
	for i, r := range content {
		if currentLine == line && currentCol == col {
			return i
		}
		if r == '\n' {
			currentLine++
			currentCol = 0
		} else {
			currentCol++
		}
	}
	return len(content)
}

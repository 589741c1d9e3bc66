package main

import (
	"context"
	"sort"

	"go.lsp.dev/protocol"

	"github.com/plkit/plkit/value"
)

// The legend announced in Initialize. Token type indices in the
// encoded data refer to positions in this slice.
var semanticTokenTypes = []protocol.SemanticTokenTypes{
	protocol.SemanticTokenProperty,
	protocol.SemanticTokenString,
	protocol.SemanticTokenNumber,
	protocol.SemanticTokenKeyword,
	protocol.SemanticTokenOperator,
}

func kindTokenType(k value.Kind) protocol.SemanticTokenTypes {
	switch k {
	case value.NumberKind, value.DateKind:
		return protocol.SemanticTokenNumber
	case value.BooleanKind:
		return protocol.SemanticTokenKeyword
	}
	return protocol.SemanticTokenString
}

// getLineContent returns the content of a specific line from the document
func getLineContent(content string, lineNum int) string {
	lines := []rune(content)
	currentLine := 0
	lineStart := 0

	for i, r := range lines {
		if currentLine == lineNum {
			lineStart = i
			break
		}
		if r == '\n' {
			currentLine++
		}
	}

	// Find end of line
	lineEnd := lineStart
	for lineEnd < len(lines) && lines[lineEnd] != '\n' {
		lineEnd++
	}

	return string(lines[lineStart:lineEnd])
}

// findTokenInLine finds a token in a line starting at a given column
func findTokenInLine(line string, startCol int, tokenText string) (int, int) {
	lineRunes := []rune(line)
	if startCol >= len(lineRunes) {
		return startCol, 0
	}

	tokenRunes := []rune(tokenText)
	for i := startCol; i <= len(lineRunes)-len(tokenRunes); i++ {
		match := true
		for j, tr := range tokenRunes {
			if i+j >= len(lineRunes) || lineRunes[i+j] != tr {
				match = false
				break
			}
		}
		if match {
			return i, len(tokenRunes)
		}
	}

	// If exact match not found, return startCol with estimated length
	return startCol, len(tokenRunes)
}

// keySpan measures a dictionary key starting at startCol: the token
// runs up to the ":" separator, trailing spaces excluded. The second
// result is the separator's column, -1 if the line holds none.
func keySpan(line string, startCol int) (int, int) {
	lineRunes := []rune(line)
	if startCol >= len(lineRunes) {
		return 0, -1
	}
	sep := -1
	for i := startCol; i < len(lineRunes); i++ {
		if lineRunes[i] == ':' {
			sep = i
			break
		}
	}
	if sep < 0 {
		return len(lineRunes) - startCol, -1
	}
	end := sep
	for end > startCol && lineRunes[end-1] == ' ' {
		end--
	}
	return end - startCol, sep
}

// scalarSpan measures a scalar literal starting at startCol: the run
// of characters up to whitespace, a flow delimiter or a comment.
func scalarSpan(line string, startCol int) int {
	lineRunes := []rune(line)
	if startCol >= len(lineRunes) {
		return 0
	}
	end := startCol
	for end < len(lineRunes) {
		switch lineRunes[end] {
		case ' ', '\t', ',', '}', ']', '#':
			return end - startCol
		}
		end++
	}
	return end - startCol
}

// collectSemanticTokens walks the decoded value tree and emits tokens
// for dictionary keys, their ":" separators and scalar literals,
// delta-encoded the way the protocol wants them.
func (s *Server) collectSemanticTokens(doc *document) []uint32 {
	if doc.value == nil {
		return nil
	}

	type tokenInfo struct {
		line      uint32
		character uint32
		length    uint32
		tokenType protocol.SemanticTokenTypes
	}

	var tokenList []tokenInfo
	add := func(line, col, length int, tt protocol.SemanticTokenTypes) {
		if length <= 0 || line < 0 || col < 0 {
			return
		}
		tokenList = append(tokenList, tokenInfo{
			line:      uint32(line),
			character: uint32(col),
			length:    uint32(length),
			tokenType: tt,
		})
	}

	doc.value.Visit(func(v *value.Value, isPost bool) (bool, error) {
		if isPost {
			return false, nil
		}
		if kp, ok := doc.keyPositions[v]; ok {
			lineContent := getLineContent(doc.content, kp.Line-1)
			length, sep := keySpan(lineContent, kp.Column-1)
			add(kp.Line-1, kp.Column-1, length, protocol.SemanticTokenProperty)
			if sep >= 0 {
				add(kp.Line-1, sep, 1, protocol.SemanticTokenOperator)
			}
		}
		if v.IsCollection() {
			return true, nil
		}
		pos, ok := doc.positions[v]
		if !ok {
			return true, nil
		}
		lineContent := getLineContent(doc.content, pos.Line-1)
		col, length := pos.Column-1, 0
		if v.Kind == value.StringKind {
			// Plain strings appear literally in the source; quoted or
			// escaped ones fall back to an estimated length.
			col, length = findTokenInLine(lineContent, pos.Column-1, v.String)
		} else {
			length = scalarSpan(lineContent, pos.Column-1)
		}
		add(pos.Line-1, col, length, kindTokenType(v.Kind))
		return true, nil
	})

	// Sort tokens by line and character (required for LSP delta encoding)
	sort.Slice(tokenList, func(i, j int) bool {
		if tokenList[i].line != tokenList[j].line {
			return tokenList[i].line < tokenList[j].line
		}
		return tokenList[i].character < tokenList[j].character
	})

	typeMap := make(map[protocol.SemanticTokenTypes]uint32)
	for i, tt := range semanticTokenTypes {
		typeMap[tt] = uint32(i)
	}

	tokens := []uint32{}
	var prevLine uint32 = 0
	var prevChar uint32 = 0

	for _, ti := range tokenList {
		deltaLine := ti.line - prevLine
		deltaChar := uint32(0)
		if deltaLine == 0 {
			deltaChar = ti.character - prevChar
		} else {
			deltaChar = ti.character
		}

		tokens = append(tokens, deltaLine, deltaChar, ti.length, typeMap[ti.tokenType], 0)

		prevLine = ti.line
		prevChar = ti.character
	}

	return tokens
}

func (s *Server) SemanticTokensFull(ctx context.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil || doc.value == nil {
		return &protocol.SemanticTokens{
			Data: []uint32{},
		}, nil
	}

	return &protocol.SemanticTokens{
		Data: s.collectSemanticTokens(doc),
	}, nil
}

func (s *Server) SemanticTokensRange(ctx context.Context, params *protocol.SemanticTokensRangeParams) (*protocol.SemanticTokens, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil || doc.value == nil {
		return &protocol.SemanticTokens{
			Data: []uint32{},
		}, nil
	}

	// Filtering to the requested range is an optimization the client
	// tolerates going without; return the full set.
	return &protocol.SemanticTokens{
		Data: s.collectSemanticTokens(doc),
	}, nil
}

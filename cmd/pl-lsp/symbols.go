package main

import (
	"context"
	"fmt"

	"go.lsp.dev/protocol"

	"github.com/plkit/plkit/value"
)

// DocumentSymbol reports the document outline: one symbol per
// collection element, nested the way the document nests.
func (s *Server) DocumentSymbol(ctx context.Context, params *protocol.DocumentSymbolParams) ([]interface{}, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil || doc.value == nil {
		return nil, nil
	}

	syms := valueSymbols(doc, doc.value)
	res := make([]interface{}, 0, len(syms))
	for i := range syms {
		res = append(res, syms[i])
	}
	return res, nil
}

func valueSymbols(doc *document, v *value.Value) []protocol.DocumentSymbol {
	n := v.Count()
	if !v.IsCollection() || n == 0 {
		return nil
	}
	res := make([]protocol.DocumentSymbol, 0, n)
	for i := 0; i < n; i++ {
		el := v.ElementAt(i)
		name := fmt.Sprintf("[%d]", i)
		if key, ok := v.KeyAt(i); ok {
			name = key
		}
		rng := valueRange(doc, el)
		res = append(res, protocol.DocumentSymbol{
			Name:           name,
			Detail:         valueInfo(el),
			Kind:           symbolKind(el.Kind),
			Range:          rng,
			SelectionRange: rng,
			Children:       valueSymbols(doc, el),
		})
	}
	return res
}

func symbolKind(k value.Kind) protocol.SymbolKind {
	switch k {
	case value.StringKind:
		return protocol.SymbolKindString
	case value.NumberKind:
		return protocol.SymbolKindNumber
	case value.BooleanKind:
		return protocol.SymbolKindBoolean
	case value.DateKind, value.DataKind:
		return protocol.SymbolKindConstant
	case value.ArrayKind:
		return protocol.SymbolKindArray
	case value.DictionaryKind:
		return protocol.SymbolKindObject
	}
	return protocol.SymbolKindNull
}

// valueRange spans from v's recorded position through the last line
// recorded anywhere in its subtree, so child ranges stay contained in
// their parents'.
func valueRange(doc *document, v *value.Value) protocol.Range {
	start, ok := doc.positions[v]
	if !ok {
		return protocol.Range{}
	}
	end := start
	v.Visit(func(node *value.Value, isPost bool) (bool, error) {
		if isPost {
			return false, nil
		}
		if p, ok := doc.positions[node]; ok {
			if p.Line > end.Line || (p.Line == end.Line && p.Column > end.Column) {
				end = p
			}
		}
		return true, nil
	})
	return protocol.Range{
		Start: protocol.Position{Line: uint32(start.Line - 1), Character: uint32(start.Column - 1)},
		End:   protocol.Position{Line: uint32(end.Line), Character: 0},
	}
}

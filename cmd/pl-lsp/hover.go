package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.lsp.dev/protocol"

	"github.com/plkit/plkit/codec"
	"github.com/plkit/plkit/value"
)

func (s *Server) Hover(ctx context.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil || doc.value == nil {
		return nil, nil
	}

	// Recorded positions are 1-based, the protocol's are 0-based.
	pos := params.Position
	line := int(pos.Line) + 1
	col := int(pos.Character) + 1

	target := findValueAtPosition(doc.value, doc.positions, line, col)
	if target == nil {
		return nil, nil
	}

	hoverText := buildHoverText(doc.value, target)
	if hoverText == "" {
		return nil, nil
	}

	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.Markdown,
			Value: hoverText,
		},
	}, nil
}

// findValueAtPosition picks the value recorded on the given line,
// preferring the one whose column is closest.
func findValueAtPosition(root *value.Value, positions map[*value.Value]codec.Pos, line, col int) *value.Value {
	var (
		best    *value.Value
		bestPos codec.Pos
	)
	root.Visit(func(v *value.Value, isPost bool) (bool, error) {
		if isPost {
			return false, nil
		}
		pos, ok := positions[v]
		if ok && pos.Line == line {
			if best == nil || abs(pos.Column-col) < abs(bestPos.Column-col) {
				best = v
				bestPos = pos
			}
		}
		return true, nil
	})
	return best
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func buildHoverText(root, v *value.Value) string {
	var parts []string

	if path, ok := pathTo(root, v, "$"); ok {
		parts = append(parts, fmt.Sprintf("**Path:** `%s`", path))
	}
	parts = append(parts, fmt.Sprintf("**Kind:** %s", v.Kind))
	if info := valueInfo(v); info != "" {
		parts = append(parts, fmt.Sprintf("**Value:** %s", info))
	}

	return strings.Join(parts, "\n\n")
}

// pathTo finds target's $-rooted path inside root by identity.
func pathTo(root, target *value.Value, path string) (string, bool) {
	if root == target {
		return path, true
	}
	switch root.Kind {
	case value.ArrayKind:
		for i := 0; i < root.Arr.Count(); i++ {
			if p, ok := pathTo(root.Arr.At(i), target, fmt.Sprintf("%s[%d]", path, i)); ok {
				return p, true
			}
		}
	case value.DictionaryKind:
		for i := 0; i < root.Dict.Count(); i++ {
			pr := root.Dict.PairAt(i)
			if p, ok := pathTo(pr.Value, target, path+"."+value.QuoteKey(pr.Key)); ok {
				return p, true
			}
		}
	}
	return "", false
}

func valueInfo(v *value.Value) string {
	switch v.Kind {
	case value.StringKind:
		s := v.String
		if len(s) > 50 {
			s = s[:50] + "..."
		}
		return fmt.Sprintf("`%s`", s)
	case value.NumberKind:
		if v.Int64 != nil {
			return fmt.Sprintf("`%d`", *v.Int64)
		}
		if v.Float64 != nil {
			return fmt.Sprintf("`%g`", *v.Float64)
		}
	case value.BooleanKind:
		if v.Bool {
			return "`true`"
		}
		return "`false`"
	case value.DateKind:
		return fmt.Sprintf("`%s`", v.Time.UTC().Format(time.RFC3339))
	case value.DataKind:
		return fmt.Sprintf("%d bytes", len(v.Bytes))
	case value.ArrayKind:
		return fmt.Sprintf("array with %d elements", v.Arr.Count())
	case value.DictionaryKind:
		return fmt.Sprintf("dictionary with %d keys", v.Dict.Count())
	}
	return ""
}

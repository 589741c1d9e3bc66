// Package query matches document nodes against compiled expressions.
//
// A query is an expression over one node's attributes:
//
//	key          the node's dictionary key, "" elsewhere
//	index        position among siblings, -1 at the root
//	path         the node's path, as in "$.users[2].name"
//	kind         "string", "number", "boolean", "date", "data",
//	             "array" or "dictionary"
//	value        the scalar payload, nil for collections
//	count        child count, 0 for scalars
//	depth        0 at the root
//	isCollection whether the node expands
//	lookup(p)    the scalar at path p, nil when absent
//
// For example:
//
//	kind == "number" and value > 10
//	key startsWith "Item" and depth == 1
package query

import (
	"errors"
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/plkit/plkit/debug"
	"github.com/plkit/plkit/tree"
	"github.com/plkit/plkit/value"
)

// ErrCompile wraps every query compilation failure.
var ErrCompile = errors.New("query compile error")

// Query is a compiled node expression. A Query is safe to reuse
// across documents.
type Query struct {
	src  string
	prog *vm.Program
}

// Compile builds a query from src. The expression must yield a
// boolean.
func Compile(src string) (*Query, error) {
	prog, err := expr.Compile(src, expr.Env(map[string]any{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCompile, err)
	}
	return &Query{src: src, prog: prog}, nil
}

func (q *Query) Source() string {
	return q.src
}

// Match reports whether n satisfies the query.
func (q *Query) Match(n *tree.Node) (bool, error) {
	return q.match(n, nodeDepth(n))
}

// Select walks the subtree rooted at n in document order and returns
// the nodes the query matches. Children are materialized as the walk
// reaches them.
func (q *Query) Select(n *tree.Node) ([]*tree.Node, error) {
	var res []*tree.Node
	if err := q.walk(n, nodeDepth(n), &res); err != nil {
		return nil, err
	}
	if debug.Query() {
		debug.Logf("query %q selected %d nodes", q.src, len(res))
	}
	return res, nil
}

func (q *Query) walk(n *tree.Node, depth int, res *[]*tree.Node) error {
	ok, err := q.match(n, depth)
	if err != nil {
		return err
	}
	if ok {
		*res = append(*res, n)
	}
	for i := 0; i < n.NumChildren(); i++ {
		if err := q.walk(n.Child(i), depth+1, res); err != nil {
			return err
		}
	}
	return nil
}

func (q *Query) match(n *tree.Node, depth int) (bool, error) {
	out, err := expr.Run(q.prog, nodeEnv(n, depth))
	if err != nil {
		return false, fmt.Errorf("query %q: %w", q.src, err)
	}
	b, _ := out.(bool)
	return b, nil
}

func nodeDepth(n *tree.Node) int {
	d := 0
	for p := n.Parent(); p != nil; p = p.Parent() {
		d++
	}
	return d
}

func nodeEnv(n *tree.Node, depth int) map[string]any {
	v := n.Value()
	count := 0
	if v.IsCollection() {
		count = v.Count()
	}
	key := ""
	if k, ok := n.Key(); ok {
		key = k
	}
	root := n
	for p := root.Parent(); p != nil; p = p.Parent() {
		root = p
	}
	return map[string]any{
		"key":          key,
		"index":        n.Index(),
		"path":         n.Path(),
		"kind":         strings.ToLower(v.Kind.String()),
		"value":        scalar(v),
		"count":        count,
		"depth":        depth,
		"isCollection": v.IsCollection(),
		"lookup": func(path string) any {
			res, err := root.Value().GetPath(path)
			if err != nil || res == nil {
				return nil
			}
			return scalar(res)
		},
	}
}

// scalar unwraps a scalar payload for the expression engine.
// Collections have no scalar form and yield nil.
func scalar(v *value.Value) any {
	switch v.Kind {
	case value.StringKind:
		return v.String
	case value.NumberKind:
		if v.Int64 != nil {
			return *v.Int64
		}
		return *v.Float64
	case value.BooleanKind:
		return v.Bool
	case value.DateKind:
		return v.Time
	case value.DataKind:
		return append([]byte(nil), v.Bytes...)
	}
	return nil
}

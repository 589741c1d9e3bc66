// Package tree projects a recursive value structure onto a stable,
// incrementally-updatable node hierarchy for outline-style presentation.
// Nodes materialize their children lazily and keep identity across
// structural patches, so selection and expansion state keyed by node
// survive edits.
package tree

import (
	"slices"
	"strconv"

	"github.com/plkit/plkit/debug"
	"github.com/plkit/plkit/value"
)

// Node is one position in the projected hierarchy. The parent owns its
// children; the child's parent pointer is lookup-only. children stays
// nil until the node is expanded for the first time.
type Node struct {
	value    *value.Value
	parent   *Node
	index    int
	children []*Node
}

func (n *Node) Value() *value.Value {
	return n.value
}

func (n *Node) Parent() *Node {
	return n.parent
}

// Index is the node's position in its parent's child list, -1 for the
// root.
func (n *Node) Index() int {
	return n.index
}

// Expandable is exactly "the value is a collection kind", regardless of
// element count.
func (n *Node) Expandable() bool {
	return n.value.Kind.IsCollection()
}

// Key returns the node's key in its parent dictionary. ok is false for
// the root and for array elements.
func (n *Node) Key() (string, bool) {
	if n.parent == nil {
		return "", false
	}
	return n.parent.value.KeyAt(n.index)
}

// Path renders the node's $-rooted position.
func (n *Node) Path() string {
	if n.parent == nil {
		return "$"
	}
	switch n.parent.value.Kind {
	case value.DictionaryKind:
		k, _ := n.Key()
		return n.parent.Path() + "." + value.QuoteKey(k)
	case value.ArrayKind:
		return n.parent.Path() + "[" + strconv.Itoa(n.index) + "]"
	default:
		panic("tree: parent is not a collection")
	}
}

// Materialized reports whether the node's children have been built.
func (n *Node) Materialized() bool {
	return n.children != nil
}

// NumChildren returns 0 for scalar nodes and the collection's element
// count otherwise, materializing the children on first call.
func (n *Node) NumChildren() int {
	if !n.Expandable() {
		return 0
	}
	n.materialize()
	return len(n.children)
}

// Child returns the cached child node at index i, materializing the
// children on first call. Panics if i is out of range.
func (n *Node) Child(i int) *Node {
	n.materialize()
	if i < 0 || i >= len(n.children) {
		panic("tree: child index out of range")
	}
	return n.children[i]
}

func (n *Node) materialize() {
	if n.children != nil || !n.Expandable() {
		return
	}
	count := n.value.Count()
	n.children = make([]*Node, count)
	for i := 0; i < count; i++ {
		n.children[i] = &Node{
			value:  n.value.ElementAt(i),
			parent: n,
			index:  i,
		}
	}
	if debug.Tree() {
		debug.Logf("tree: materialized %d children under %s\n", count, n.Path())
	}
}

// Update replaces the node's value wholesale and discards its cached
// children; they rematerialize lazily against the new value.
func (n *Node) Update(v *value.Value) {
	n.value = v
	n.children = nil
}

// UpdateInserting replaces the node's value with v, which must already
// contain the new element at index i, and patches the child cache in
// place: a fresh child node enters at i and later siblings renumber,
// keeping their identity.
func (n *Node) UpdateInserting(v *value.Value, i int) {
	n.value = v
	if n.children == nil {
		return
	}
	if i < 0 || i > len(n.children) {
		panic("tree: insert child index out of range")
	}
	n.children = slices.Insert(n.children, i, &Node{
		value:  v.ElementAt(i),
		parent: n,
		index:  i,
	})
	n.renumber(i + 1)
	n.refresh()
	if debug.Tree() {
		debug.Logf("tree: insert child %d under %s\n", i, n.Path())
	}
}

// UpdateRemoving replaces the node's value with v, which must already
// exclude the element previously at index i, and removes and discards
// the child node at i, renumbering later siblings.
func (n *Node) UpdateRemoving(v *value.Value, i int) {
	n.value = v
	if n.children == nil {
		return
	}
	if i < 0 || i >= len(n.children) {
		panic("tree: remove child index out of range")
	}
	removed := n.children[i]
	n.children = slices.Delete(n.children, i, i+1)
	removed.parent = nil
	removed.index = -1
	n.renumber(i)
	n.refresh()
	if debug.Tree() {
		debug.Logf("tree: remove child %d under %s\n", i, n.Path())
	}
}

func (n *Node) renumber(from int) {
	for j := from; j < len(n.children); j++ {
		n.children[j].index = j
	}
}

// refresh re-points child values at the current collection's elements.
// Patched updates share untouched element references, so this is a
// no-op for them; a child whose element reference did change drops its
// stale grandchild cache.
func (n *Node) refresh() {
	for j, c := range n.children {
		el := n.value.ElementAt(j)
		if c.value != el {
			c.value = el
			c.children = nil
		}
	}
}

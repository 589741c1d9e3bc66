package tree

import (
	"fmt"

	"github.com/plkit/plkit/value"
)

// Tree owns exactly one root node.
type Tree struct {
	root *Node
}

// New returns a tree over an empty dictionary, the default document
// root.
func New() *Tree {
	return FromValue(value.FromDictionary(nil))
}

// FromValue returns a tree projecting v.
func FromValue(v *value.Value) *Tree {
	return &Tree{root: &Node{value: v, index: -1}}
}

func (t *Tree) Root() *Node {
	return t.root
}

// SetRoot replaces the whole projection with a fresh root node over v.
// This is the document-load path; previously handed-out nodes are
// orphaned.
func (t *Tree) SetRoot(v *value.Value) *Node {
	t.root = &Node{value: v, index: -1}
	return t.root
}

// Find resolves a single-target path to its node, materializing
// children along the way. A path through an absent dictionary key
// returns (nil, nil); wildcard and subtree paths, kind mismatches and
// out-of-bounds indices return an error.
func (t *Tree) Find(path string) (*Node, error) {
	p, err := value.ParsePath(path)
	if err != nil {
		return nil, err
	}
	n := t.root
	for p != nil {
		if p.IndexAll {
			return nil, fmt.Errorf("%w: any index in find", value.ErrPath)
		}
		if p.Subtree {
			return nil, fmt.Errorf("%w: recurse .. in find", value.ErrPath)
		}
		if p.Index != nil {
			if n.value.Kind != value.ArrayKind {
				return nil, fmt.Errorf("%w: expected array, got %s", value.ErrPath, n.value.Kind)
			}
			index := *p.Index
			if index < 0 || index >= n.NumChildren() {
				return nil, fmt.Errorf("%w: index out of bounds %d (len %d)", value.ErrPath, index, n.NumChildren())
			}
			n = n.Child(index)
			p = p.Next
			continue
		}
		if p.Key != nil {
			if n.value.Kind != value.DictionaryKind {
				return nil, fmt.Errorf("%w: expected dictionary, got %s", value.ErrPath, n.value.Kind)
			}
			i := n.value.Dict.IndexOfKey(*p.Key)
			if i == -1 {
				return nil, nil
			}
			n = n.Child(i)
			p = p.Next
			continue
		}
		break
	}
	return n, nil
}

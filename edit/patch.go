// Package edit coordinates reversible mutations over a tree projection:
// one primitive replaces a node's value, keeps the node's children in
// sync through structural patches, and registers its exact inverse on
// an undo stack of data records.
package edit

// PatchOp selects the structural adjustment paired with a value
// replacement.
type PatchOp int

const (
	InsertChild PatchOp = iota
	RemoveChild
)

func (op PatchOp) String() string {
	switch op {
	case InsertChild:
		return "insert-child"
	case RemoveChild:
		return "remove-child"
	default:
		return "<unknown op>"
	}
}

// ChildPatch is an insert-child-at-index or remove-child-at-index
// adjustment applied to the target node's cached children.
type ChildPatch struct {
	Op    PatchOp
	Index int
}

// Reverse returns the patch undoing p: reverse of insert is remove at
// the same index, reverse of remove is insert at the same index.
func (p ChildPatch) Reverse() ChildPatch {
	switch p.Op {
	case InsertChild:
		return ChildPatch{Op: RemoveChild, Index: p.Index}
	case RemoveChild:
		return ChildPatch{Op: InsertChild, Index: p.Index}
	default:
		panic("edit: op")
	}
}

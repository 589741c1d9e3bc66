package edit

import (
	"github.com/plkit/plkit/debug"
	"github.com/plkit/plkit/tree"
	"github.com/plkit/plkit/value"
)

// record is one undo/redo stack entry: applying it sets value at node
// with the paired structural patch, and pushes its own inverse.
type record struct {
	node  *tree.Node
	value *value.Value
	patch *ChildPatch
}

// Editor owns the undo/redo stacks of one editing session. The zero
// value is ready to use.
//
// Requests that target the wrong node kind or an out-of-range index are
// silently declined: the editor is the last line of defense against
// invalid UI-driven requests and never corrupts state over them.
// Declines log when PL_DEBUG_EDIT is set.
type Editor struct {
	// KeyFormat shapes generated dictionary keys; it needs one %d
	// verb. Empty means "Item %d".
	KeyFormat string

	undo []*record
	redo []*record
}

// SetValue replaces n's value wholesale, discarding n's cached children,
// and registers the inverse. This is the "edit the value in place" entry
// point for scalar edits and key renames.
func (e *Editor) SetValue(n *tree.Node, v *value.Value) {
	if n == nil || v == nil {
		e.decline("set value: nil target")
		return
	}
	e.apply(n, v, nil, &e.undo)
	e.redo = e.redo[:0]
}

// InsertItem inserts item at index i under collection node n. For
// dictionary targets the pair key is key when free, otherwise the first
// free generated candidate. Non-collection targets and out-of-range
// indices decline.
func (e *Editor) InsertItem(n *tree.Node, i int, key string, item *value.Value) {
	if n == nil || item == nil {
		e.decline("insert: nil target")
		return
	}
	v := n.Value()
	switch v.Kind {
	case value.ArrayKind:
		if i < 0 || i > v.Arr.Count() {
			e.decline("insert: index %d out of range (len %d)", i, v.Arr.Count())
			return
		}
		next := value.FromArray(v.Arr.Inserting(item, i))
		e.applyFresh(n, next, &ChildPatch{Op: InsertChild, Index: i})
	case value.DictionaryKind:
		if i < 0 || i > v.Dict.Count() {
			e.decline("insert: index %d out of range (len %d)", i, v.Dict.Count())
			return
		}
		k := UniqueKey(v.Dict, e.KeyFormat, key)
		next := value.FromDictionary(v.Dict.Inserting(value.NewPair(k, item), i))
		e.applyFresh(n, next, &ChildPatch{Op: InsertChild, Index: i})
	default:
		e.decline("insert: %s is not a collection", v.Kind)
	}
}

// RemoveItem removes the element at index i under collection node n.
func (e *Editor) RemoveItem(n *tree.Node, i int) {
	if n == nil {
		e.decline("remove: nil target")
		return
	}
	v := n.Value()
	switch v.Kind {
	case value.ArrayKind:
		if i < 0 || i >= v.Arr.Count() {
			e.decline("remove: index %d out of range (len %d)", i, v.Arr.Count())
			return
		}
		e.applyFresh(n, value.FromArray(v.Arr.Removing(i)), &ChildPatch{Op: RemoveChild, Index: i})
	case value.DictionaryKind:
		if i < 0 || i >= v.Dict.Count() {
			e.decline("remove: index %d out of range (len %d)", i, v.Dict.Count())
			return
		}
		e.applyFresh(n, value.FromDictionary(v.Dict.Removing(i)), &ChildPatch{Op: RemoveChild, Index: i})
	default:
		e.decline("remove: %s is not a collection", v.Kind)
	}
}

// SetKey rekeys the pair at index i of dictionary node n. A key already
// used by another pair declines.
func (e *Editor) SetKey(n *tree.Node, i int, key string) {
	if n == nil {
		e.decline("set key: nil target")
		return
	}
	v := n.Value()
	if v.Kind != value.DictionaryKind {
		e.decline("set key: %s is not a dictionary", v.Kind)
		return
	}
	if i < 0 || i >= v.Dict.Count() {
		e.decline("set key: index %d out of range (len %d)", i, v.Dict.Count())
		return
	}
	p := v.Dict.PairAt(i)
	if p.Key == key {
		return
	}
	if v.Dict.ContainsKey(key) {
		e.decline("set key: %q already in use", key)
		return
	}
	e.applyFresh(n, value.FromDictionary(v.Dict.Replacing(p.WithKey(key), i)), nil)
}

// CanUndo reports whether an undo record is available.
func (e *Editor) CanUndo() bool {
	return len(e.undo) > 0
}

// CanRedo reports whether a redo record is available.
func (e *Editor) CanRedo() bool {
	return len(e.redo) > 0
}

// UndoDepth returns the number of undo records. A caller that cannot
// observe a mutation directly can compare depths around it to learn
// whether the request was applied or declined.
func (e *Editor) UndoDepth() int {
	return len(e.undo)
}

// RedoDepth returns the number of redo records.
func (e *Editor) RedoDepth() int {
	return len(e.redo)
}

// Undo applies the most recent undo record, pushing its inverse onto
// the redo stack. It reports whether a record was applied.
func (e *Editor) Undo() bool {
	if len(e.undo) == 0 {
		return false
	}
	rec := e.undo[len(e.undo)-1]
	e.undo = e.undo[:len(e.undo)-1]
	e.apply(rec.node, rec.value, rec.patch, &e.redo)
	return true
}

// Redo applies the most recent redo record, pushing its inverse onto
// the undo stack.
func (e *Editor) Redo() bool {
	if len(e.redo) == 0 {
		return false
	}
	rec := e.redo[len(e.redo)-1]
	e.redo = e.redo[:len(e.redo)-1]
	e.apply(rec.node, rec.value, rec.patch, &e.undo)
	return true
}

// Reset drops both stacks. Wholesale root replacement (document load)
// orphans recorded nodes, so the session history goes with them.
func (e *Editor) Reset() {
	e.undo = nil
	e.redo = nil
}

// applyFresh runs the primitive for a brand-new mutation: the inverse
// goes onto the undo stack and the redo stack clears.
func (e *Editor) applyFresh(n *tree.Node, v *value.Value, patch *ChildPatch) {
	e.apply(n, v, patch, &e.undo)
	e.redo = e.redo[:0]
}

// apply is the mutation primitive. It snapshots n's current value,
// installs v (patching or discarding the child cache), re-points the
// parent collection's element slot at v, and pushes the inverse record
// onto the given stack. No state between snapshot and push is
// observable by callers.
func (e *Editor) apply(n *tree.Node, v *value.Value, patch *ChildPatch, inverseTo *[]*record) {
	old := n.Value()
	var inverse *ChildPatch
	if patch != nil {
		r := patch.Reverse()
		inverse = &r
		switch patch.Op {
		case InsertChild:
			n.UpdateInserting(v, patch.Index)
		case RemoveChild:
			n.UpdateRemoving(v, patch.Index)
		default:
			panic("edit: op")
		}
	} else {
		n.Update(v)
	}
	if p := n.Parent(); p != nil {
		switch pv := p.Value(); pv.Kind {
		case value.ArrayKind:
			pv.Arr.Replace(v, n.Index())
		case value.DictionaryKind:
			pv.Dict.SetValue(v, n.Index())
		default:
			panic("tree: parent is not a collection")
		}
	}
	*inverseTo = append(*inverseTo, &record{node: n, value: old, patch: inverse})
	if debug.Edit() {
		if patch != nil {
			debug.Logf("edit: %s %s at %d\n", n.Path(), patch.Op, patch.Index)
		} else {
			debug.Logf("edit: %s set %s\n", n.Path(), v.Kind)
		}
	}
}

func (e *Editor) decline(msg string, args ...any) {
	if debug.Edit() {
		debug.Logf("edit: declined "+msg+"\n", args...)
	}
}

package diff

import (
	"errors"
	"fmt"

	"github.com/plkit/plkit/value"
)

var (
	// ErrApply wraps apply failures: paths that do not resolve,
	// elements that do not match a change's From snapshot, colliding
	// keys and out-of-range indexes. The input document is never
	// partially patched.
	ErrApply = errors.New("apply error")

	// ErrScript wraps failures decoding a script value.
	ErrScript = errors.New("script error")
)

// Apply applies the script to from and returns the patched document.
// from is never modified, and the result shares nothing with the
// script. Every change is validated against the document before it
// lands.
func (sc *Script) Apply(from *value.Value) (*value.Value, error) {
	if from == nil {
		return nil, fmt.Errorf("%w: nil value", ErrApply)
	}
	root := from.Clone()
	for i, ch := range sc.Changes {
		next, err := applyChange(root, ch)
		if err != nil {
			return nil, fmt.Errorf("change %d (%s %s): %w", i, ch.Op, ch.Path, err)
		}
		root = next
	}
	return root, nil
}

func applyChange(root *value.Value, ch *Change) (*value.Value, error) {
	if (ch.Op == Insert || ch.Op == Replace) && ch.To == nil {
		return nil, fmt.Errorf("%w: %s without a value", ErrApply, ch.Op)
	}
	if (ch.Op == Delete || ch.Op == Replace) && ch.From == nil {
		return nil, fmt.Errorf("%w: %s without a prior value", ErrApply, ch.Op)
	}
	if ch.Op == Rename && ch.NewKey == "" {
		return nil, fmt.Errorf("%w: rename without a new key", ErrApply)
	}
	if ch.Index < 0 {
		if ch.Op != Replace {
			return nil, fmt.Errorf("%w: %s of the document root", ErrApply, ch.Op)
		}
		if !value.Equal(root, ch.From) {
			return nil, fmt.Errorf("%w: document does not match the change", ErrApply)
		}
		return ch.To.Clone(), nil
	}
	c, err := root.GetPath(ch.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrApply, err)
	}
	if c == nil {
		return nil, fmt.Errorf("%w: no value at %s", ErrApply, ch.Path)
	}
	switch c.Kind {
	case value.ArrayKind:
		if err := applyToArray(c.Arr, ch); err != nil {
			return nil, err
		}
	case value.DictionaryKind:
		if err := applyToDict(c.Dict, ch); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %s is not a collection", ErrApply, ch.Path)
	}
	return root, nil
}

func applyToArray(a *value.Array, ch *Change) error {
	switch ch.Op {
	case Rename:
		return fmt.Errorf("%w: rename in an array", ErrApply)
	case Insert:
		if ch.Index > a.Count() {
			return fmt.Errorf("%w: index %d beyond %d elements", ErrApply, ch.Index, a.Count())
		}
		a.Insert(ch.To.Clone(), ch.Index)
	case Delete, Replace:
		if ch.Index >= a.Count() {
			return fmt.Errorf("%w: index %d beyond %d elements", ErrApply, ch.Index, a.Count())
		}
		if !value.Equal(a.At(ch.Index), ch.From) {
			return fmt.Errorf("%w: element %d does not match the change", ErrApply, ch.Index)
		}
		if ch.Op == Delete {
			a.Remove(ch.Index)
		} else {
			a.Replace(ch.To.Clone(), ch.Index)
		}
	}
	return nil
}

func applyToDict(d *value.Dictionary, ch *Change) error {
	switch ch.Op {
	case Insert:
		if ch.Index > d.Count() {
			return fmt.Errorf("%w: index %d beyond %d pairs", ErrApply, ch.Index, d.Count())
		}
		if d.ContainsKey(ch.Key) {
			return fmt.Errorf("%w: duplicate key %q", ErrApply, ch.Key)
		}
		d.Insert(value.NewPair(ch.Key, ch.To.Clone()), ch.Index)
	case Delete, Replace:
		if ch.Index >= d.Count() {
			return fmt.Errorf("%w: index %d beyond %d pairs", ErrApply, ch.Index, d.Count())
		}
		p := d.PairAt(ch.Index)
		if p.Key != ch.Key || !value.Equal(p.Value, ch.From) {
			return fmt.Errorf("%w: pair %d does not match the change", ErrApply, ch.Index)
		}
		if ch.Op == Delete {
			d.Remove(ch.Index)
		} else {
			d.SetValue(ch.To.Clone(), ch.Index)
		}
	case Rename:
		if ch.Index >= d.Count() {
			return fmt.Errorf("%w: index %d beyond %d pairs", ErrApply, ch.Index, d.Count())
		}
		p := d.PairAt(ch.Index)
		if p.Key != ch.Key {
			return fmt.Errorf("%w: pair %d does not match the change", ErrApply, ch.Index)
		}
		if ch.From != nil && !value.Equal(p.Value, ch.From) {
			return fmt.Errorf("%w: pair %d does not match the change", ErrApply, ch.Index)
		}
		if d.ContainsKey(ch.NewKey) {
			return fmt.Errorf("%w: duplicate key %q", ErrApply, ch.NewKey)
		}
		d.SetKey(ch.NewKey, ch.Index)
	}
	return nil
}

package diff

import (
	"fmt"

	"github.com/plkit/plkit/value"
)

// Value renders the script as a document value: an array with one
// dictionary per change. The rendering itself encodes to any
// document format, so scripts can be stored and exchanged.
func (sc *Script) Value() *value.Value {
	arr := value.NewArray()
	for i, ch := range sc.Changes {
		pairs := []value.Pair{
			value.NewPair("op", value.FromString(ch.Op.String())),
			value.NewPair("path", value.FromString(ch.Path)),
			value.NewPair("index", value.FromInt(int64(ch.Index))),
		}
		if ch.Key != "" {
			pairs = append(pairs, value.NewPair("key", value.FromString(ch.Key)))
		}
		if ch.NewKey != "" {
			pairs = append(pairs, value.NewPair("newKey", value.FromString(ch.NewKey)))
		}
		if ch.From != nil {
			pairs = append(pairs, value.NewPair("from", ch.From.Clone()))
		}
		if ch.To != nil {
			pairs = append(pairs, value.NewPair("to", ch.To.Clone()))
		}
		arr.Insert(value.FromPairs(pairs), i)
	}
	return value.FromArray(arr)
}

// FromValue decodes a script rendered by Value.
func FromValue(v *value.Value) (*Script, error) {
	if v == nil || v.Kind != value.ArrayKind {
		return nil, fmt.Errorf("%w: not an array", ErrScript)
	}
	sc := &Script{}
	for i := 0; i < v.Arr.Count(); i++ {
		cv := v.Arr.At(i)
		if cv.Kind != value.DictionaryKind {
			return nil, fmt.Errorf("%w: change %d is not a dictionary", ErrScript, i)
		}
		ch, err := changeFromDict(cv.Dict)
		if err != nil {
			return nil, fmt.Errorf("change %d: %w", i, err)
		}
		sc.add(ch)
	}
	return sc, nil
}

func changeFromDict(d *value.Dictionary) (*Change, error) {
	ch := &Change{}
	opv := lookup(d, "op")
	if opv == nil || opv.Kind != value.StringKind {
		return nil, fmt.Errorf("%w: missing op", ErrScript)
	}
	op, ok := parseOp(opv.String)
	if !ok {
		return nil, fmt.Errorf("%w: unrecognized op %q", ErrScript, opv.String)
	}
	ch.Op = op
	pv := lookup(d, "path")
	if pv == nil || pv.Kind != value.StringKind {
		return nil, fmt.Errorf("%w: missing path", ErrScript)
	}
	ch.Path = pv.String
	iv := lookup(d, "index")
	if iv == nil || iv.Kind != value.NumberKind || iv.Int64 == nil {
		return nil, fmt.Errorf("%w: missing index", ErrScript)
	}
	ch.Index = int(*iv.Int64)
	if kv := lookup(d, "key"); kv != nil {
		if kv.Kind != value.StringKind {
			return nil, fmt.Errorf("%w: key is not a string", ErrScript)
		}
		ch.Key = kv.String
	}
	if kv := lookup(d, "newKey"); kv != nil {
		if kv.Kind != value.StringKind {
			return nil, fmt.Errorf("%w: newKey is not a string", ErrScript)
		}
		ch.NewKey = kv.String
	}
	if fv := lookup(d, "from"); fv != nil {
		ch.From = fv.Clone()
	}
	if tv := lookup(d, "to"); tv != nil {
		ch.To = tv.Clone()
	}
	return ch, nil
}

func lookup(d *value.Dictionary, key string) *value.Value {
	i := d.IndexOfKey(key)
	if i < 0 {
		return nil
	}
	return d.PairAt(i).Value
}

func parseOp(s string) (Op, bool) {
	for op, str := range opStrings {
		if str == s {
			return op, true
		}
	}
	return 0, false
}

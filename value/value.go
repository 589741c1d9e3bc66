// Package value defines the property-list value model: a closed sum
// over string, number, boolean, date, data, array and dictionary, with
// ordered collections, structural equality, hashing and path lookup.
package value

import (
	"time"
)

// Value is one property-list value. Kind selects the variant; exactly
// the payload fields for that kind are meaningful. Values reachable
// from more than one place must be treated as immutable: editing layers
// replace values rather than writing through them, so older revisions
// held by undo records stay intact.
type Value struct {
	Kind Kind

	String  string
	Bool    bool
	Int64   *int64
	Float64 *float64
	Time    time.Time
	Bytes   []byte

	Arr  *Array
	Dict *Dictionary
}

func FromString(v string) *Value {
	return &Value{Kind: StringKind, String: v}
}

func FromInt(v int64) *Value {
	return &Value{Kind: NumberKind, Int64: &v}
}

func FromFloat(f float64) *Value {
	return &Value{Kind: NumberKind, Float64: &f}
}

func FromBool(v bool) *Value {
	return &Value{Kind: BooleanKind, Bool: v}
}

func FromDate(t time.Time) *Value {
	return &Value{Kind: DateKind, Time: t}
}

func FromData(d []byte) *Value {
	return &Value{Kind: DataKind, Bytes: d}
}

func FromArray(a *Array) *Value {
	if a == nil {
		a = NewArray()
	}
	return &Value{Kind: ArrayKind, Arr: a}
}

func FromDictionary(d *Dictionary) *Value {
	if d == nil {
		d = NewDictionary()
	}
	return &Value{Kind: DictionaryKind, Dict: d}
}

func FromSlice(vs []*Value) *Value {
	a := NewArray()
	for _, v := range vs {
		a.Insert(v, a.Count())
	}
	return FromArray(a)
}

func FromPairs(pairs []Pair) *Value {
	d := NewDictionary()
	for _, p := range pairs {
		d.Insert(p, d.Count())
	}
	return FromDictionary(d)
}

func (v *Value) IsCollection() bool {
	return v.Kind.IsCollection()
}

// Count returns the number of contained elements, 0 for scalar kinds.
func (v *Value) Count() int {
	switch v.Kind {
	case ArrayKind:
		return v.Arr.Count()
	case DictionaryKind:
		return v.Dict.Count()
	default:
		return 0
	}
}

// ElementAt returns the i-th contained value. For dictionaries this is
// the i-th pair's value. Panics if v is not a collection or i is out of
// range.
func (v *Value) ElementAt(i int) *Value {
	switch v.Kind {
	case ArrayKind:
		return v.Arr.At(i)
	case DictionaryKind:
		return v.Dict.PairAt(i).Value
	default:
		panic("kind")
	}
}

// KeyAt returns the i-th pair's key for dictionaries and false for every
// other kind.
func (v *Value) KeyAt(i int) (string, bool) {
	if v.Kind != DictionaryKind {
		return "", false
	}
	return v.Dict.PairAt(i).Key, true
}

func (v *Value) Clone() *Value {
	res := &Value{}
	return v.CloneTo(res)
}

func (v *Value) CloneTo(dst *Value) *Value {
	dst.Kind = v.Kind
	dst.String = v.String
	dst.Bool = v.Bool
	dst.Time = v.Time
	if v.Int64 != nil {
		i := *v.Int64
		dst.Int64 = &i
	}
	if v.Float64 != nil {
		f := *v.Float64
		dst.Float64 = &f
	}
	if v.Bytes != nil {
		dst.Bytes = make([]byte, len(v.Bytes))
		copy(dst.Bytes, v.Bytes)
	}
	if v.Arr != nil {
		dst.Arr = v.Arr.Clone()
	}
	if v.Dict != nil {
		dst.Dict = v.Dict.Clone()
	}
	return dst
}

// Visit walks v and, when f returns dive=true, its elements in order,
// calling f pre- and post-order at each value.
func (v *Value) Visit(f func(v *Value, isPost bool) (bool, error)) error {
	dive, err := f(v, false)
	if err != nil {
		return err
	}
	if dive {
		n := v.Count()
		for i := 0; i < n; i++ {
			if err := v.ElementAt(i).Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(v, true); err != nil {
		return err
	}
	return nil
}

// Equal reports structural equality. Two numbers are equal only when
// they carry the same representation (integer vs float) and the same
// payload.
func Equal(a, b *Value) bool {
	return Compare(a, b) == 0
}

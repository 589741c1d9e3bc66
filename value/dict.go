package value

import (
	"maps"
	"slices"
)

// Dictionary is an ordered sequence of key/value pairs with unique keys.
// An auxiliary key set is maintained in the same operation as the pair
// list on every mutation, making ContainsKey O(1). Inserting a duplicate
// key is a programming error and panics.
type Dictionary struct {
	pairs []Pair
	keys  map[string]struct{}
}

func NewDictionary(pairs ...Pair) *Dictionary {
	d := &Dictionary{keys: make(map[string]struct{}, len(pairs))}
	for _, p := range pairs {
		d.Insert(p, d.Count())
	}
	return d
}

func (d *Dictionary) Count() int {
	return len(d.pairs)
}

// PairAt returns the pair at index i.
func (d *Dictionary) PairAt(i int) Pair {
	if i < 0 || i >= len(d.pairs) {
		panic("value: dictionary index out of range")
	}
	return d.pairs[i]
}

// ContainsKey reports whether key is currently in use.
func (d *Dictionary) ContainsKey(key string) bool {
	_, ok := d.keys[key]
	return ok
}

// IndexOfKey returns the index of the pair with the given key, or -1.
func (d *Dictionary) IndexOfKey(key string) int {
	if !d.ContainsKey(key) {
		return -1
	}
	for i := range d.pairs {
		if d.pairs[i].Key == key {
			return i
		}
	}
	return -1
}

// Keys returns the keys in pair order.
func (d *Dictionary) Keys() []string {
	res := make([]string, len(d.pairs))
	for i := range d.pairs {
		res[i] = d.pairs[i].Key
	}
	return res
}

// Insert places p at index i, shifting pairs at or after i up by one.
// Panics if p's key is already in the key set.
func (d *Dictionary) Insert(p Pair, i int) {
	if i < 0 || i > len(d.pairs) {
		panic("value: dictionary insert index out of range")
	}
	if d.ContainsKey(p.Key) {
		panic("value: dictionary insert duplicate key")
	}
	d.pairs = slices.Insert(d.pairs, i, p)
	if d.keys == nil {
		d.keys = make(map[string]struct{})
	}
	d.keys[p.Key] = struct{}{}
}

// Remove deletes and returns the pair at index i, releasing its key.
func (d *Dictionary) Remove(i int) Pair {
	if i < 0 || i >= len(d.pairs) {
		panic("value: dictionary remove index out of range")
	}
	p := d.pairs[i]
	d.pairs = slices.Delete(d.pairs, i, i+1)
	delete(d.keys, p.Key)
	return p
}

// Replace substitutes p for the pair at index i. When the key changes,
// the old key leaves and the new key enters the key set as one
// operation; a new key already used by another pair panics.
func (d *Dictionary) Replace(p Pair, i int) {
	if i < 0 || i >= len(d.pairs) {
		panic("value: dictionary replace index out of range")
	}
	old := d.pairs[i]
	if p.Key != old.Key {
		if d.ContainsKey(p.Key) {
			panic("value: dictionary replace duplicate key")
		}
		delete(d.keys, old.Key)
		d.keys[p.Key] = struct{}{}
	}
	d.pairs[i] = p
}

// SetKey rekeys the pair at index i.
func (d *Dictionary) SetKey(key string, i int) {
	d.Replace(d.PairAt(i).WithKey(key), i)
}

// SetValue revalues the pair at index i.
func (d *Dictionary) SetValue(v *Value, i int) {
	d.Replace(d.PairAt(i).WithValue(v), i)
}

// Inserting returns a new dictionary with p at index i. Pair values are
// shared with the receiver, which is left untouched.
func (d *Dictionary) Inserting(p Pair, i int) *Dictionary {
	if i < 0 || i > len(d.pairs) {
		panic("value: dictionary insert index out of range")
	}
	if d.ContainsKey(p.Key) {
		panic("value: dictionary insert duplicate key")
	}
	res := &Dictionary{
		pairs: make([]Pair, 0, len(d.pairs)+1),
		keys:  maps.Clone(d.keys),
	}
	if res.keys == nil {
		res.keys = make(map[string]struct{})
	}
	res.pairs = append(res.pairs, d.pairs[:i]...)
	res.pairs = append(res.pairs, p)
	res.pairs = append(res.pairs, d.pairs[i:]...)
	res.keys[p.Key] = struct{}{}
	return res
}

// Removing returns a new dictionary without the pair at index i.
func (d *Dictionary) Removing(i int) *Dictionary {
	if i < 0 || i >= len(d.pairs) {
		panic("value: dictionary remove index out of range")
	}
	res := &Dictionary{
		pairs: make([]Pair, 0, len(d.pairs)-1),
		keys:  maps.Clone(d.keys),
	}
	res.pairs = append(res.pairs, d.pairs[:i]...)
	res.pairs = append(res.pairs, d.pairs[i+1:]...)
	delete(res.keys, d.pairs[i].Key)
	return res
}

// Replacing returns a new dictionary with p at index i.
func (d *Dictionary) Replacing(p Pair, i int) *Dictionary {
	if i < 0 || i >= len(d.pairs) {
		panic("value: dictionary replace index out of range")
	}
	old := d.pairs[i]
	if p.Key != old.Key && d.ContainsKey(p.Key) {
		panic("value: dictionary replace duplicate key")
	}
	res := &Dictionary{
		pairs: slices.Clone(d.pairs),
		keys:  maps.Clone(d.keys),
	}
	if p.Key != old.Key {
		delete(res.keys, old.Key)
		res.keys[p.Key] = struct{}{}
	}
	res.pairs[i] = p
	return res
}

// Clone deep-copies the dictionary and every contained value.
func (d *Dictionary) Clone() *Dictionary {
	res := &Dictionary{
		pairs: make([]Pair, len(d.pairs)),
		keys:  make(map[string]struct{}, len(d.pairs)),
	}
	for i, p := range d.pairs {
		res.pairs[i] = Pair{Key: p.Key, Value: p.Value.Clone()}
		res.keys[p.Key] = struct{}{}
	}
	return res
}

package value

import "slices"

// Array is an ordered sequence of values. Indices are contiguous
// 0..Count()-1 at all times; out-of-range indices are programming
// errors and panic.
type Array struct {
	values []*Value
}

func NewArray(vs ...*Value) *Array {
	a := &Array{}
	if len(vs) > 0 {
		a.values = slices.Clone(vs)
	}
	return a
}

func (a *Array) Count() int {
	return len(a.values)
}

// At returns the value at index i.
func (a *Array) At(i int) *Value {
	if i < 0 || i >= len(a.values) {
		panic("value: array index out of range")
	}
	return a.values[i]
}

// Insert places v at index i, shifting elements at or after i up by one.
// i == Count() appends.
func (a *Array) Insert(v *Value, i int) {
	if i < 0 || i > len(a.values) {
		panic("value: array insert index out of range")
	}
	a.values = slices.Insert(a.values, i, v)
}

// Remove deletes and returns the value at index i.
func (a *Array) Remove(i int) *Value {
	if i < 0 || i >= len(a.values) {
		panic("value: array remove index out of range")
	}
	v := a.values[i]
	a.values = slices.Delete(a.values, i, i+1)
	return v
}

// Replace substitutes v for the value at index i; the count is
// unchanged.
func (a *Array) Replace(v *Value, i int) {
	if i < 0 || i >= len(a.values) {
		panic("value: array replace index out of range")
	}
	a.values[i] = v
}

// Inserting returns a new array with v at index i. Element references
// are shared with the receiver, which is left untouched.
func (a *Array) Inserting(v *Value, i int) *Array {
	if i < 0 || i > len(a.values) {
		panic("value: array insert index out of range")
	}
	res := &Array{values: make([]*Value, 0, len(a.values)+1)}
	res.values = append(res.values, a.values[:i]...)
	res.values = append(res.values, v)
	res.values = append(res.values, a.values[i:]...)
	return res
}

// Removing returns a new array without the element at index i, sharing
// the remaining element references with the receiver.
func (a *Array) Removing(i int) *Array {
	if i < 0 || i >= len(a.values) {
		panic("value: array remove index out of range")
	}
	res := &Array{values: make([]*Value, 0, len(a.values)-1)}
	res.values = append(res.values, a.values[:i]...)
	res.values = append(res.values, a.values[i+1:]...)
	return res
}

// Replacing returns a new array with v at index i, sharing all other
// element references with the receiver.
func (a *Array) Replacing(v *Value, i int) *Array {
	if i < 0 || i >= len(a.values) {
		panic("value: array replace index out of range")
	}
	res := &Array{values: slices.Clone(a.values)}
	res.values[i] = v
	return res
}

// Clone deep-copies the array and every contained value.
func (a *Array) Clone() *Array {
	res := &Array{values: make([]*Value, len(a.values))}
	for i, v := range a.values {
		res.values[i] = v.Clone()
	}
	return res
}

package value

import (
	"encoding/binary"
	"hash/maphash"
	"math"
)

// hashSeed is shared by every Hash call so equal values hash equal for
// the lifetime of the process.
var hashSeed = maphash.MakeSeed()

// Hash returns a 64-bit structural hash of the value: equal values (per
// Compare) produce equal hashes. It panics if v is nil.
func (v *Value) Hash() uint64 {
	if v == nil {
		panic("value: Hash called on nil value")
	}

	var h maphash.Hash
	h.SetSeed(hashSeed)
	h.WriteByte(byte(v.Kind))

	var b [8]byte
	switch v.Kind {
	case StringKind:
		h.WriteString(v.String)
	case BooleanKind:
		if v.Bool {
			h.WriteByte(1)
		} else {
			h.WriteByte(0)
		}
	case NumberKind:
		if v.Int64 != nil {
			h.WriteByte(0)
			binary.LittleEndian.PutUint64(b[:], uint64(*v.Int64))
		} else {
			h.WriteByte(1)
			binary.LittleEndian.PutUint64(b[:], math.Float64bits(*v.Float64))
		}
		h.Write(b[:])
	case DateKind:
		binary.LittleEndian.PutUint64(b[:], uint64(v.Time.Unix()))
		h.Write(b[:])
		binary.LittleEndian.PutUint64(b[:], uint64(v.Time.Nanosecond()))
		h.Write(b[:])
	case DataKind:
		h.Write(v.Bytes)
	case ArrayKind:
		n := v.Arr.Count()
		for i := 0; i < n; i++ {
			// Combining child hashes order-dependently keeps the
			// recursion positional.
			binary.LittleEndian.PutUint64(b[:], v.Arr.At(i).Hash())
			h.Write(b[:])
		}
	case DictionaryKind:
		n := v.Dict.Count()
		for i := 0; i < n; i++ {
			p := v.Dict.PairAt(i)
			binary.LittleEndian.PutUint64(b[:], maphash.String(hashSeed, p.Key))
			h.Write(b[:])
			binary.LittleEndian.PutUint64(b[:], p.Value.Hash())
			h.Write(b[:])
		}
	}
	return h.Sum64()
}

package value

import (
	"bytes"
	"cmp"
	"strings"
)

// Compare returns an integer comparing two values. The result is 0 if
// a==b, -1 if a < b, and +1 if a > b. Values of different kinds order
// by kind rank; numbers sub-rank integers before floats.
func Compare(a, b *Value) int {
	if a == b {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}

	rankA := rank(a.Kind)
	rankB := rank(b.Kind)
	if rankA != rankB {
		return cmp.Compare(rankA, rankB)
	}

	switch a.Kind {
	case BooleanKind:
		if a.Bool == b.Bool {
			return 0
		}
		if !a.Bool {
			return -1
		}
		return 1
	case NumberKind:
		return compareNumbers(a, b)
	case StringKind:
		return strings.Compare(a.String, b.String)
	case DateKind:
		return a.Time.Compare(b.Time)
	case DataKind:
		return bytes.Compare(a.Bytes, b.Bytes)
	case ArrayKind:
		return compareArrays(a.Arr, b.Arr)
	case DictionaryKind:
		return compareDictionaries(a.Dict, b.Dict)
	}
	return 0
}

// rank returns the sorting rank of a kind.
// Order: Boolean < Number < String < Date < Data < Array < Dictionary
func rank(k Kind) int {
	switch k {
	case BooleanKind:
		return 0
	case NumberKind:
		return 1
	case StringKind:
		return 2
	case DateKind:
		return 3
	case DataKind:
		return 4
	case ArrayKind:
		return 5
	case DictionaryKind:
		return 6
	}
	return 100
}

func compareNumbers(a, b *Value) int {
	// Sub-rank: Int64 < Float64
	subRankA := numberSubRank(a)
	subRankB := numberSubRank(b)
	if subRankA != subRankB {
		return cmp.Compare(subRankA, subRankB)
	}
	if a.Int64 != nil {
		return cmp.Compare(*a.Int64, *b.Int64)
	}
	return cmp.Compare(*a.Float64, *b.Float64)
}

func numberSubRank(v *Value) int {
	if v.Int64 != nil {
		return 0
	}
	return 1
}

func compareArrays(a, b *Array) int {
	lenA := a.Count()
	lenB := b.Count()
	minLen := min(lenA, lenB)

	for i := 0; i < minLen; i++ {
		if c := Compare(a.At(i), b.At(i)); c != 0 {
			return c
		}
	}
	return cmp.Compare(lenA, lenB)
}

func compareDictionaries(a, b *Dictionary) int {
	lenA := a.Count()
	lenB := b.Count()
	minLen := min(lenA, lenB)

	for i := 0; i < minLen; i++ {
		pa, pb := a.PairAt(i), b.PairAt(i)
		if c := strings.Compare(pa.Key, pb.Key); c != 0 {
			return c
		}
		if c := Compare(pa.Value, pb.Value); c != 0 {
			return c
		}
	}
	return cmp.Compare(lenA, lenB)
}

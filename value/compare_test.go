package value

import (
	"testing"
	"time"
)

type compareTest struct {
	a, b *Value
	res  int
}

var compareTests = []compareTest{
	{nil, nil, 0},
	{nil, FromBool(false), -1},
	{FromBool(false), nil, 1},

	// kind rank: Boolean < Number < String < Date < Data < Array < Dictionary
	{FromBool(true), FromInt(0), -1},
	{FromInt(5), FromString("0"), -1},
	{FromString("z"), FromDate(time.Unix(0, 0)), -1},
	{FromDate(time.Unix(10, 0)), FromData([]byte{0}), -1},
	{FromData([]byte{0xff}), FromSlice(nil), -1},
	{FromSlice(nil), FromPairs(nil), -1},

	{FromBool(false), FromBool(true), -1},
	{FromBool(true), FromBool(true), 0},

	// numbers: integers sub-rank below floats
	{FromInt(2), FromInt(3), -1},
	{FromInt(3), FromInt(3), 0},
	{FromInt(9), FromFloat(1.0), -1},
	{FromFloat(1.5), FromFloat(2.5), -1},
	{FromFloat(2.5), FromFloat(2.5), 0},

	{FromString("a"), FromString("b"), -1},
	{FromString("b"), FromString("b"), 0},

	{
		FromDate(time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC)),
		FromDate(time.Date(2024, 1, 2, 17, 4, 5, 0, time.FixedZone("CEST", 2*60*60))),
		0,
	},
	{FromDate(time.Unix(1, 0)), FromDate(time.Unix(2, 0)), -1},

	{FromData([]byte("ab")), FromData([]byte("ac")), -1},
	{FromData([]byte("ab")), FromData([]byte("ab")), 0},

	{
		FromSlice([]*Value{FromInt(1), FromInt(2)}),
		FromSlice([]*Value{FromInt(1), FromInt(3)}),
		-1,
	},
	{
		FromSlice([]*Value{FromInt(1)}),
		FromSlice([]*Value{FromInt(1), FromInt(0)}),
		-1,
	},
	{
		FromSlice([]*Value{FromInt(1), FromInt(2)}),
		FromSlice([]*Value{FromInt(1), FromInt(2)}),
		0,
	},

	{
		FromPairs([]Pair{NewPair("a", FromInt(1))}),
		FromPairs([]Pair{NewPair("b", FromInt(1))}),
		-1,
	},
	{
		FromPairs([]Pair{NewPair("a", FromInt(1))}),
		FromPairs([]Pair{NewPair("a", FromInt(2))}),
		-1,
	},
	{
		FromPairs([]Pair{NewPair("a", FromInt(1)), NewPair("b", FromBool(true))}),
		FromPairs([]Pair{NewPair("a", FromInt(1)), NewPair("b", FromBool(true))}),
		0,
	},
}

func TestCompare(t *testing.T) {
	for i := range compareTests {
		tc := &compareTests[i]
		if got := Compare(tc.a, tc.b); got != tc.res {
			t.Errorf("test %d: Compare = %d want %d", i, got, tc.res)
			continue
		}
		// antisymmetry
		if got := Compare(tc.b, tc.a); got != -tc.res {
			t.Errorf("test %d: reversed Compare = %d want %d", i, got, -tc.res)
		}
	}
}

func TestEqualHash(t *testing.T) {
	for i := range compareTests {
		tc := &compareTests[i]
		if tc.a == nil || tc.b == nil {
			continue
		}
		eq := Equal(tc.a, tc.b)
		if eq != (tc.res == 0) {
			t.Errorf("test %d: Equal = %t want %t", i, eq, tc.res == 0)
			continue
		}
		if eq && tc.a.Hash() != tc.b.Hash() {
			t.Errorf("test %d: equal values hash apart", i)
		}
	}
}

func TestHashStable(t *testing.T) {
	v := FromPairs([]Pair{
		NewPair("xs", FromSlice([]*Value{FromInt(1), FromFloat(2.5)})),
		NewPair("when", FromDate(time.Unix(1700000000, 42))),
		NewPair("blob", FromData([]byte{1, 2, 3})),
	})
	h := v.Hash()
	for i := 0; i < 3; i++ {
		if v.Hash() != h {
			t.Fatal("hash unstable across calls")
		}
	}
	if v.Clone().Hash() != h {
		t.Error("clone hashes apart from original")
	}
}

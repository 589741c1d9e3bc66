package value

import (
	"testing"
	"time"
)

func TestKindText(t *testing.T) {
	for _, k := range Kinds() {
		d, err := k.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var back Kind
		if err := back.UnmarshalText(d); err != nil {
			t.Fatal(err)
		}
		if back != k {
			t.Errorf("kind %s did not round-trip", k)
		}
	}
	var k Kind
	if err := k.UnmarshalText([]byte("Blob")); err == nil {
		t.Error("unknown kind text did not error")
	}
}

func TestIsCollection(t *testing.T) {
	for _, k := range Kinds() {
		want := k == ArrayKind || k == DictionaryKind
		if k.IsCollection() != want {
			t.Errorf("%s: IsCollection = %t", k, k.IsCollection())
		}
	}
}

func TestCountElementAtKeyAt(t *testing.T) {
	d := FromPairs([]Pair{
		NewPair("a", FromInt(1)),
		NewPair("b", FromString("x")),
	})
	if d.Count() != 2 {
		t.Errorf("dict count %d", d.Count())
	}
	if d.ElementAt(1).String != "x" {
		t.Error("dict ElementAt wrong")
	}
	if k, ok := d.KeyAt(0); !ok || k != "a" {
		t.Errorf("KeyAt = %q, %t", k, ok)
	}

	a := FromSlice([]*Value{FromBool(true)})
	if a.Count() != 1 || a.ElementAt(0).Bool != true {
		t.Error("array Count/ElementAt wrong")
	}
	if _, ok := a.KeyAt(0); ok {
		t.Error("KeyAt on array reported ok")
	}

	s := FromString("s")
	if s.Count() != 0 {
		t.Error("scalar count not 0")
	}
}

func TestCloneIndependence(t *testing.T) {
	orig := FromPairs([]Pair{
		NewPair("blob", FromData([]byte{1, 2})),
		NewPair("xs", FromSlice([]*Value{FromInt(1)})),
	})
	cl := orig.Clone()
	if !Equal(orig, cl) {
		t.Fatal("clone not equal to original")
	}
	cl.Dict.PairAt(0).Value.Bytes[0] = 9
	cl.Dict.PairAt(1).Value.Arr.Insert(FromInt(2), 1)
	if orig.Dict.PairAt(0).Value.Bytes[0] != 1 {
		t.Error("clone shares data bytes")
	}
	if orig.Dict.PairAt(1).Value.Arr.Count() != 1 {
		t.Error("clone shares nested array")
	}
}

func TestVisitOrder(t *testing.T) {
	doc := FromPairs([]Pair{
		NewPair("a", FromInt(1)),
		NewPair("b", FromSlice([]*Value{FromInt(2), FromInt(3)})),
	})
	var pre, post []Kind
	err := doc.Visit(func(v *Value, isPost bool) (bool, error) {
		if isPost {
			post = append(post, v.Kind)
		} else {
			pre = append(pre, v.Kind)
		}
		return true, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	wantPre := []Kind{DictionaryKind, NumberKind, ArrayKind, NumberKind, NumberKind}
	if len(pre) != len(wantPre) {
		t.Fatalf("pre visits %d want %d", len(pre), len(wantPre))
	}
	for i := range wantPre {
		if pre[i] != wantPre[i] {
			t.Errorf("pre visit %d: %s want %s", i, pre[i], wantPre[i])
		}
	}
	if len(post) != len(pre) {
		t.Errorf("post visits %d want %d", len(post), len(pre))
	}

	// dive=false skips elements
	var count int
	if err := doc.Visit(func(v *Value, isPost bool) (bool, error) {
		if !isPost {
			count++
		}
		return false, nil
	}); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("no-dive visited %d values", count)
	}
}

type truthTest struct {
	v   *Value
	res bool
}

var truthTests = []truthTest{
	{FromString(""), false},
	{FromString("x"), true},
	{FromInt(0), false},
	{FromInt(-1), true},
	{FromFloat(0.0), false},
	{FromFloat(0.5), true},
	{FromBool(false), false},
	{FromBool(true), true},
	{FromDate(time.Time{}), false},
	{FromDate(time.Unix(1, 0)), true},
	{FromData(nil), false},
	{FromData([]byte{0}), true},
	{FromSlice(nil), false},
	{FromSlice([]*Value{FromInt(0)}), true},
	{FromPairs(nil), false},
	{FromPairs([]Pair{NewPair("k", FromInt(0))}), true},
}

func TestTruth(t *testing.T) {
	for i := range truthTests {
		tc := &truthTests[i]
		if Truth(tc.v) != tc.res {
			t.Errorf("test %d (%s): Truth = %t want %t", i, tc.v.Kind, Truth(tc.v), tc.res)
		}
	}
}

func TestPairWith(t *testing.T) {
	p := NewPair("k", FromInt(1))
	pk := p.WithKey("k2")
	if p.Key != "k" || pk.Key != "k2" || pk.Value != p.Value {
		t.Error("WithKey wrong")
	}
	pv := p.WithValue(FromInt(2))
	if p.Value.Int64 == nil || *p.Value.Int64 != 1 {
		t.Error("WithValue mutated the receiver")
	}
	if pv.Key != "k" || *pv.Value.Int64 != 2 {
		t.Error("WithValue wrong")
	}
}

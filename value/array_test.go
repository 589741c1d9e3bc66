package value

import "testing"

func TestArrayInsertRemoveReplace(t *testing.T) {
	a := NewArray()
	a.Insert(FromString("A"), 0)
	a.Insert(FromString("C"), 1)
	a.Insert(FromString("B"), 1)

	want := []string{"A", "B", "C"}
	if a.Count() != len(want) {
		t.Fatalf("count %d want %d", a.Count(), len(want))
	}
	for i, s := range want {
		if a.At(i).String != s {
			t.Errorf("index %d: got %q want %q", i, a.At(i).String, s)
		}
	}

	removed := a.Remove(1)
	if removed.String != "B" {
		t.Errorf("removed %q want %q", removed.String, "B")
	}
	if a.Count() != 2 || a.At(0).String != "A" || a.At(1).String != "C" {
		t.Error("indices not contiguous after remove")
	}

	a.Replace(FromString("Z"), 1)
	if a.Count() != 2 || a.At(1).String != "Z" {
		t.Error("replace did not substitute in place")
	}
}

func TestArrayIndexPanics(t *testing.T) {
	for _, f := range []func(*Array){
		func(a *Array) { a.At(2) },
		func(a *Array) { a.Insert(FromInt(0), 3) },
		func(a *Array) { a.Remove(2) },
		func(a *Array) { a.Replace(FromInt(0), -1) },
	} {
		func() {
			defer func() {
				if recover() == nil {
					t.Error("out of range access did not panic")
				}
			}()
			f(NewArray(FromInt(1), FromInt(2)))
		}()
	}
}

func TestArrayInsertingRemoving(t *testing.T) {
	orig := NewArray(FromString("A"), FromString("B"))
	ins := orig.Inserting(FromString("X"), 1)
	if orig.Count() != 2 {
		t.Error("Inserting mutated the receiver")
	}
	if ins.Count() != 3 || ins.At(1).String != "X" {
		t.Error("Inserting misplaced the element")
	}
	if ins.At(0) != orig.At(0) || ins.At(2) != orig.At(1) {
		t.Error("Inserting did not share element values")
	}

	rem := orig.Removing(0)
	if orig.Count() != 2 {
		t.Error("Removing mutated the receiver")
	}
	if rem.Count() != 1 || rem.At(0) != orig.At(1) {
		t.Error("Removing did not share the surviving element")
	}

	rep := orig.Replacing(FromString("Y"), 0)
	if orig.At(0).String != "A" {
		t.Error("Replacing mutated the receiver")
	}
	if rep.At(0).String != "Y" || rep.At(1) != orig.At(1) {
		t.Error("Replacing result wrong")
	}
}

func TestArrayClone(t *testing.T) {
	orig := NewArray(FromSlice([]*Value{FromInt(1)}))
	cl := orig.Clone()
	cl.At(0).Arr.Insert(FromInt(2), 1)
	if orig.At(0).Arr.Count() != 1 {
		t.Error("Clone shares nested collections")
	}
}

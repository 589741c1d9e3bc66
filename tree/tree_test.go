package tree

import (
	"errors"
	"testing"

	"github.com/plkit/plkit/value"
)

func sampleDoc() *value.Value {
	return value.FromPairs([]value.Pair{
		value.NewPair("a", value.FromInt(1)),
		value.NewPair("b", value.FromSlice([]*value.Value{
			value.FromString("x"),
			value.FromString("y"),
		})),
		value.NewPair("c", value.FromPairs([]value.Pair{
			value.NewPair("k", value.FromString("v")),
		})),
	})
}

func TestLazyMaterialization(t *testing.T) {
	tr := FromValue(sampleDoc())
	root := tr.Root()
	if root.Materialized() {
		t.Error("root materialized before first access")
	}
	if root.Index() != -1 || root.Parent() != nil {
		t.Error("root index/parent wrong")
	}
	if n := root.NumChildren(); n != 3 {
		t.Errorf("NumChildren = %d want 3", n)
	}
	if !root.Materialized() {
		t.Error("NumChildren did not materialize")
	}

	scalar := root.Child(0)
	if scalar.Expandable() {
		t.Error("scalar node expandable")
	}
	if scalar.NumChildren() != 0 {
		t.Error("scalar node has children")
	}
	if scalar.Materialized() {
		t.Error("scalar node claims materialization")
	}

	// empty collections stay expandable
	empty := FromValue(value.FromSlice(nil)).Root()
	if !empty.Expandable() {
		t.Error("empty array not expandable")
	}
	if empty.NumChildren() != 0 {
		t.Error("empty array has children")
	}
}

func TestChildCaching(t *testing.T) {
	tr := FromValue(sampleDoc())
	root := tr.Root()
	if root.Child(1) != root.Child(1) {
		t.Error("Child not cached across calls")
	}
	b := root.Child(1)
	if b.Index() != 1 || b.Parent() != root {
		t.Errorf("child attributes wrong: index %d", b.Index())
	}
	if k, ok := b.Key(); !ok || k != "b" {
		t.Errorf("Key = %q, %t", k, ok)
	}
	x := b.Child(0)
	if _, ok := x.Key(); ok {
		t.Error("array element reports a key")
	}
	if x.Path() != "$.b[0]" {
		t.Errorf("Path = %q", x.Path())
	}
	if got := root.Child(2).Child(0).Path(); got != "$.c.k" {
		t.Errorf("Path = %q", got)
	}
}

func TestChildOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("out of range Child did not panic")
		}
	}()
	FromValue(sampleDoc()).Root().Child(3)
}

func TestUpdateInserting(t *testing.T) {
	arr := value.FromSlice([]*value.Value{
		value.FromString("A"),
		value.FromString("C"),
	})
	tr := FromValue(arr)
	root := tr.Root()
	nodeA, nodeC := root.Child(0), root.Child(1)

	next := value.FromArray(arr.Arr.Inserting(value.FromString("B"), 1))
	root.UpdateInserting(next, 1)

	if root.Value() != next {
		t.Error("value not replaced")
	}
	if root.NumChildren() != 3 {
		t.Fatalf("children %d want 3", root.NumChildren())
	}
	if root.Child(0) != nodeA || root.Child(2) != nodeC {
		t.Error("untouched siblings lost identity")
	}
	if root.Child(2).Index() != 2 {
		t.Errorf("sibling not renumbered: %d", root.Child(2).Index())
	}
	for i := 0; i < 3; i++ {
		if root.Child(i).Value() != next.ElementAt(i) {
			t.Errorf("child %d value out of sync", i)
		}
	}
}

func TestUpdateRemoving(t *testing.T) {
	arr := value.FromSlice([]*value.Value{
		value.FromString("A"),
		value.FromString("B"),
		value.FromString("C"),
	})
	tr := FromValue(arr)
	root := tr.Root()
	nodeA, nodeB, nodeC := root.Child(0), root.Child(1), root.Child(2)

	next := value.FromArray(arr.Arr.Removing(1))
	root.UpdateRemoving(next, 1)

	if root.NumChildren() != 2 {
		t.Fatalf("children %d want 2", root.NumChildren())
	}
	if root.Child(0) != nodeA {
		t.Error("nodeA lost identity")
	}
	if root.Child(1) != nodeC || root.Child(1).Index() != 1 {
		t.Error("nodeC not renumbered into place")
	}
	if nodeB.Parent() != nil || nodeB.Index() != -1 {
		t.Error("removed node still attached")
	}
}

func TestUpdateWholesaleInvalidates(t *testing.T) {
	tr := FromValue(sampleDoc())
	root := tr.Root()
	root.NumChildren()
	old := root.Child(0)

	root.Update(value.FromPairs([]value.Pair{
		value.NewPair("z", value.FromInt(9)),
	}))
	if root.Materialized() {
		t.Error("children survived wholesale update")
	}
	if root.NumChildren() != 1 {
		t.Errorf("children %d want 1", root.NumChildren())
	}
	if root.Child(0) == old {
		t.Error("stale child returned after wholesale update")
	}
}

func TestPatchBeforeMaterializationIsNoop(t *testing.T) {
	arr := value.FromSlice([]*value.Value{value.FromString("A")})
	root := FromValue(arr).Root()

	next := value.FromArray(arr.Arr.Inserting(value.FromString("B"), 0))
	root.UpdateInserting(next, 0)
	if root.Materialized() {
		t.Error("patch materialized children")
	}
	if root.NumChildren() != 2 {
		t.Errorf("children %d want 2", root.NumChildren())
	}
	if root.Child(0).Value().String != "B" {
		t.Error("late materialization misses patched value")
	}
}

func TestRefreshResyncsForeignValues(t *testing.T) {
	arr := value.FromSlice([]*value.Value{value.FromString("A")})
	root := FromValue(arr).Root()
	root.NumChildren()

	// a deep-cloned collection does not share element references; the
	// patch must re-point child values rather than leave them stale
	next := arr.Clone()
	next.Arr.Insert(value.FromString("B"), 1)
	root.UpdateInserting(next, 1)

	if root.Child(0).Value() != next.ElementAt(0) {
		t.Error("child 0 value not re-synced")
	}
	if root.Child(1).Value().String != "B" {
		t.Error("child 1 value wrong")
	}
}

func TestFind(t *testing.T) {
	tr := FromValue(sampleDoc())

	n, err := tr.Find("$.b[1]")
	if err != nil || n == nil {
		t.Fatalf("Find: %v, %v", n, err)
	}
	if n.Value().String != "y" {
		t.Errorf("found %q", n.Value().String)
	}
	if n != tr.Root().Child(1).Child(1) {
		t.Error("Find returned a different node than Child")
	}

	n, err = tr.Find("$.missing")
	if err != nil || n != nil {
		t.Errorf("missing key: got (%v, %v)", n, err)
	}

	if _, err = tr.Find("$[0]"); !errors.Is(err, value.ErrPath) {
		t.Errorf("index into dictionary: %v", err)
	}
	if _, err = tr.Find("$.b[9]"); !errors.Is(err, value.ErrPath) {
		t.Errorf("out of bounds: %v", err)
	}
	if _, err = tr.Find("$..x"); !errors.Is(err, value.ErrPath) {
		t.Errorf("subtree in find: %v", err)
	}
}

func TestSetRoot(t *testing.T) {
	tr := New()
	if tr.Root().Value().Kind != value.DictionaryKind {
		t.Error("default root not a dictionary")
	}
	old := tr.Root()
	fresh := tr.SetRoot(value.FromSlice(nil))
	if tr.Root() == old || tr.Root() != fresh {
		t.Error("SetRoot did not replace the root node")
	}
}

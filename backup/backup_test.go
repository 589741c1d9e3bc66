package backup

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/plkit/plkit/value"
)

func sampleDoc(n int64) *value.Value {
	return value.FromPairs([]value.Pair{
		value.NewPair("rev", value.FromInt(n)),
	})
}

func TestSaveLoad(t *testing.T) {
	st := NewStore(t.TempDir(), 0)
	seq, err := st.Save(sampleDoc(1))
	if err != nil {
		t.Fatal(err)
	}
	if seq != 1 {
		t.Errorf("first save got sequence %d", seq)
	}
	seq, err = st.Save(sampleDoc(2))
	if err != nil {
		t.Fatal(err)
	}
	if seq != 2 {
		t.Errorf("second save got sequence %d", seq)
	}

	snap, err := st.Load(1)
	if err != nil {
		t.Fatal(err)
	}
	if snap.Sequence != 1 {
		t.Errorf("loaded sequence %d", snap.Sequence)
	}
	if snap.SavedAt.IsZero() {
		t.Error("loaded snapshot has no save time")
	}
	if !value.Equal(snap.Document, sampleDoc(1)) {
		t.Error("loaded document differs from the saved one")
	}
}

func TestLatest(t *testing.T) {
	st := NewStore(t.TempDir(), 0)
	snap, err := st.Latest()
	if err != nil || snap != nil {
		t.Fatalf("empty store: %v %v", snap, err)
	}
	for n := int64(1); n <= 3; n++ {
		if _, err := st.Save(sampleDoc(n)); err != nil {
			t.Fatal(err)
		}
	}
	snap, err = st.Latest()
	if err != nil {
		t.Fatal(err)
	}
	if snap.Sequence != 3 {
		t.Errorf("latest is %d, want 3", snap.Sequence)
	}
}

func TestPrune(t *testing.T) {
	st := NewStore(t.TempDir(), 2)
	for n := int64(1); n <= 4; n++ {
		if _, err := st.Save(sampleDoc(n)); err != nil {
			t.Fatal(err)
		}
	}
	seqs, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]int64{3, 4}, seqs); d != "" {
		t.Errorf("pruned store: %s", d)
	}
}

func TestDelete(t *testing.T) {
	st := NewStore(t.TempDir(), 0)
	if _, err := st.Save(sampleDoc(1)); err != nil {
		t.Fatal(err)
	}
	if err := st.Delete(1); err != nil {
		t.Fatal(err)
	}
	seqs, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(seqs) != 0 {
		t.Errorf("store still lists %v", seqs)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	st := NewStore(dir, 0)
	if _, err := st.Load(7); !errors.Is(err, ErrStore) {
		t.Errorf("missing snapshot: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "8.snapshot"), []byte("]["), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := st.Load(8); !errors.Is(err, ErrStore) {
		t.Errorf("corrupt snapshot: %v", err)
	}
}

func TestListSkipsForeignFiles(t *testing.T) {
	dir := t.TempDir()
	st := NewStore(dir, 0)
	if _, err := st.Save(sampleDoc(1)); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"README", "x.snapshot", "2.snapshot.tmp"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	seqs, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]int64{1}, seqs); d != "" {
		t.Errorf("list: %s", d)
	}
}

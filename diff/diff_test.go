package diff

import (
	"errors"
	"strings"
	"testing"

	"github.com/plkit/plkit/codec"
	"github.com/plkit/plkit/value"
)

func mustDecode(t *testing.T, doc string) *value.Value {
	t.Helper()
	v, err := codec.DecodeYAML([]byte(doc))
	if err != nil {
		t.Fatalf("decode %q: %s", doc, err)
	}
	return v
}

type lawTest struct {
	From string
	To   string
}

var lawTests = []lawTest{
	{"a: 1", "a: 2"},
	{"a: 1", "b: 1"},
	{"[1, 2, 3]", "[1, 3, 4]"},
	{"a: 1\nb: 2\n", "b: 2\na: 1\n"},
	{"a: 1", "a: [1]"},
	{"5", "hello"},
	{"a: {b: [1, 2], c: x}", "a: {b: [1, 5, 2], c: x}"},
	{"a: 1", "a: 1"},
	{"{}", "a: 1"},
	{"[]", "[1]"},
	{
		"users:\n- name: ann\n  age: 3\n- name: bob\n  age: 4\n",
		"users:\n- name: ann\n  age: 5\n- name: cid\n  age: 4\n",
	},
}

// Every diff must apply forward, reverse back, and survive its value
// rendering.
func TestDiffLaws(t *testing.T) {
	for i, tst := range lawTests {
		from := mustDecode(t, tst.From)
		to := mustDecode(t, tst.To)
		sc := Diff(from, to)

		got, err := sc.Apply(from)
		if err != nil {
			t.Errorf("test %d: apply: %s", i, err)
			continue
		}
		if !value.Equal(got, to) {
			t.Errorf("test %d: apply gave\n%s\nwant\n%s",
				i, codec.MustString(got), codec.MustString(to))
			continue
		}

		back, err := sc.Reverse().Apply(to)
		if err != nil {
			t.Errorf("test %d: reverse apply: %s", i, err)
			continue
		}
		if !value.Equal(back, from) {
			t.Errorf("test %d: reverse gave\n%s\nwant\n%s",
				i, codec.MustString(back), codec.MustString(from))
			continue
		}

		round, err := FromValue(sc.Value())
		if err != nil {
			t.Errorf("test %d: script round trip: %s", i, err)
			continue
		}
		got, err = round.Apply(from)
		if err != nil {
			t.Errorf("test %d: round tripped apply: %s", i, err)
			continue
		}
		if !value.Equal(got, to) {
			t.Errorf("test %d: round tripped script gave\n%s", i, codec.MustString(got))
		}
	}
}

func TestDiffShape(t *testing.T) {
	from := mustDecode(t, "a: 1\nb: 2\nc: 3\n")
	to := mustDecode(t, "a: 1\nb: 9\nc: 3\n")
	sc := Diff(from, to)
	if len(sc.Changes) != 1 {
		t.Fatalf("got %d changes, want 1", len(sc.Changes))
	}
	ch := sc.Changes[0]
	if ch.Op != Replace || ch.Path != "$" || ch.Index != 1 || ch.Key != "b" {
		t.Errorf("got %s %s index %d key %q", ch.Op, ch.Path, ch.Index, ch.Key)
	}
	if ch.From.Int64 == nil || *ch.From.Int64 != 2 {
		t.Errorf("From is %s", codec.MustString(ch.From))
	}
	if ch.To.Int64 == nil || *ch.To.Int64 != 9 {
		t.Errorf("To is %s", codec.MustString(ch.To))
	}
}

func TestDiffRename(t *testing.T) {
	from := mustDecode(t, "old: {deep: [1, 2]}\nkeep: x\n")
	to := mustDecode(t, "new: {deep: [1, 2]}\nkeep: x\n")
	sc := Diff(from, to)
	if len(sc.Changes) != 1 {
		t.Fatalf("got %d changes, want 1", len(sc.Changes))
	}
	ch := sc.Changes[0]
	if ch.Op != Rename || ch.Key != "old" || ch.NewKey != "new" || ch.Index != 0 {
		t.Errorf("got %s %q -> %q at %d", ch.Op, ch.Key, ch.NewKey, ch.Index)
	}

	// x could collapse into a rename onto z, but z is taken until a
	// later change deletes it; the script must keep the delete+insert
	// pair.
	from = mustDecode(t, "x: 5\ny: 9\nz: 5\n")
	to = mustDecode(t, "z: 5\ny: 9\n")
	sc = Diff(from, to)
	for _, ch := range sc.Changes {
		if ch.Op == Rename {
			t.Errorf("rename onto a held key: %q -> %q", ch.Key, ch.NewKey)
		}
	}
	got, err := sc.Apply(from)
	if err != nil {
		t.Fatal(err)
	}
	if !value.Equal(got, to) {
		t.Errorf("apply gave\n%s", codec.MustString(got))
	}
}

func TestDiffCoalescesSubstitution(t *testing.T) {
	from := mustDecode(t, "[1, 2, 3]")
	to := mustDecode(t, "[1, 9, 3]")
	sc := Diff(from, to)
	if len(sc.Changes) != 1 {
		t.Fatalf("got %d changes, want 1", len(sc.Changes))
	}
	if sc.Changes[0].Op != Replace || sc.Changes[0].Index != 1 {
		t.Errorf("got %s at %d", sc.Changes[0].Op, sc.Changes[0].Index)
	}
}

func TestDiffNestedPath(t *testing.T) {
	from := mustDecode(t, "a: {b: [1, 2], c: x}")
	to := mustDecode(t, "a: {b: [1, 5, 2], c: x}")
	sc := Diff(from, to)
	if len(sc.Changes) != 1 {
		t.Fatalf("got %d changes, want 1", len(sc.Changes))
	}
	ch := sc.Changes[0]
	if ch.Op != Insert || ch.Path != "$.a.b" || ch.Index != 1 {
		t.Errorf("got %s %s index %d", ch.Op, ch.Path, ch.Index)
	}
}

func TestDiffEmpty(t *testing.T) {
	v := mustDecode(t, "a: 1")
	if sc := Diff(v, v.Clone()); !sc.Empty() {
		t.Errorf("equal documents gave %d changes", len(sc.Changes))
	}
}

func TestApplyValidates(t *testing.T) {
	from := mustDecode(t, "a: 1")
	sc := Diff(from, mustDecode(t, "a: 2"))
	if _, err := sc.Apply(mustDecode(t, "a: 7")); !errors.Is(err, ErrApply) {
		t.Errorf("mismatched document: %v", err)
	}
	got, err := sc.Apply(from)
	if err != nil {
		t.Fatal(err)
	}
	if value.Equal(got, from) {
		t.Error("apply returned an unchanged document")
	}
	if !value.Equal(from, mustDecode(t, "a: 1")) {
		t.Error("apply modified its input")
	}
}

var badScripts = []string{
	`5`,
	`[5]`,
	`[{path: $, index: 0}]`,
	`[{op: wiggle, path: $, index: 0}]`,
	`[{op: insert, path: $}]`,
	`[{op: insert, path: $, index: yes}]`,
}

func TestFromValueErrors(t *testing.T) {
	for i, doc := range badScripts {
		sv := mustDecode(t, doc)
		if _, err := FromValue(sv); !errors.Is(err, ErrScript) {
			t.Errorf("test %d %q: %v", i, doc, err)
		}
	}
}

func TestText(t *testing.T) {
	from := mustDecode(t, "a: 1\nb: 2\n")
	to := mustDecode(t, "a: 1\nb: 3\n")
	s, err := Text(from, to)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(s, "  a: 1\n") {
		t.Errorf("kept line missing from:\n%s", s)
	}
	if !strings.Contains(s, "- b: 2\n") || !strings.Contains(s, "+ b: 3\n") {
		t.Errorf("changed lines missing from:\n%s", s)
	}
}

// Package diff computes and applies structural diffs between
// document values.
//
// A diff is a Script of Changes. Each change addresses a container by
// path and an element by index, in the coordinates of the document as
// it stands when the change is applied, so a script applies
// front-to-back and its reverse applies to the patched document.
package diff

import (
	"strconv"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/plkit/plkit/value"
)

// Op names a change operation.
type Op int

const (
	Replace Op = iota
	Insert
	Delete
	Rename
)

var opStrings = map[Op]string{
	Replace: "replace",
	Insert:  "insert",
	Delete:  "delete",
	Rename:  "rename",
}

func (o Op) String() string {
	s, ok := opStrings[o]
	if !ok {
		return "<unknown op>"
	}
	return s
}

// Change is one edit. Path addresses the container holding the
// changed element and Index the element's position in it. Key is the
// element's dictionary key, "" in arrays. A change of the document
// root as a whole has Path "$" and Index -1.
//
// From holds the element being removed or replaced, To the element
// being inserted or substituted. Both are snapshots: applying a
// script never aliases it. A Rename keeps the pair's value and moves
// it from Key to NewKey; From snapshots the value for validation.
type Change struct {
	Op     Op
	Path   string
	Index  int
	Key    string
	NewKey string
	From   *value.Value
	To     *value.Value
}

// Script is an ordered list of changes.
type Script struct {
	Changes []*Change
}

func (sc *Script) Empty() bool {
	return len(sc.Changes) == 0
}

func (sc *Script) add(ch *Change) {
	sc.Changes = append(sc.Changes, ch)
}

// Diff computes the script that turns from into to. Both values must
// be non-nil. The script is empty when the values are structurally
// equal.
func Diff(from, to *value.Value) *Script {
	if from == nil || to == nil {
		panic("diff: nil value")
	}
	sc := &Script{}
	diffElement(sc, "$", -1, "", "$", from, to)
	return sc
}

// diffElement compares one element of a container, recursing into
// collections of the same kind and otherwise recording a wholesale
// replacement. elemPath is the element's own path, used as the
// container path of any changes inside it.
func diffElement(sc *Script, containerPath string, index int, key, elemPath string, from, to *value.Value) {
	if value.Equal(from, to) {
		return
	}
	switch {
	case from.Kind != to.Kind || !from.IsCollection():
		sc.add(&Change{
			Op:    Replace,
			Path:  containerPath,
			Index: index,
			Key:   key,
			From:  from.Clone(),
			To:    to.Clone(),
		})
	case from.Kind == value.ArrayKind:
		diffArray(sc, elemPath, from.Arr, to.Arr)
	default:
		diffDictionary(sc, elemPath, from.Dict, to.Dict)
	}
}

// diffArray aligns two arrays with an LCS over a rune alphabet of
// element summaries, recursing into aligned elements and recording
// inserts and deletes for the rest. An insert directly after a delete
// at the same spot collapses into a replace.
func diffArray(sc *Script, path string, from, to *value.Array) {
	alphabet := map[string]rune{}
	fromRunes := arrayRunes(alphabet, from)
	toRunes := arrayRunes(alphabet, to)
	diffs := diffpatch.New().DiffMainRunes(fromRunes, toRunes, false)

	fi, ti, ai := 0, 0, 0
	pendingDel := false
	for i := range diffs {
		d := &diffs[i]
		switch d.Type {
		case diffpatch.DiffDelete:
			for range d.Text {
				sc.add(&Change{
					Op:    Delete,
					Path:  path,
					Index: ai,
					From:  from.At(fi).Clone(),
				})
				pendingDel = true
				fi++
			}
		case diffpatch.DiffEqual:
			pendingDel = false
			for range d.Text {
				elemPath := path + "[" + strconv.Itoa(ai) + "]"
				diffElement(sc, path, ai, "", elemPath, from.At(fi), to.At(ti))
				ai++
				fi++
				ti++
			}
		case diffpatch.DiffInsert:
			for range d.Text {
				if pendingDel {
					last := sc.Changes[len(sc.Changes)-1]
					last.Op = Replace
					last.To = to.At(ti).Clone()
					pendingDel = false
				} else {
					sc.add(&Change{
						Op:    Insert,
						Path:  path,
						Index: ai,
						To:    to.At(ti).Clone(),
					})
				}
				ai++
				ti++
			}
			pendingDel = false
		}
	}
}

// diffDictionary is the pairwise form of diffArray. Pair summaries
// include the key, so a change of key never aligns; a delete and
// insert collapse into a replace when the key is unchanged, and into
// a rename when the key changed but the value did not.
func diffDictionary(sc *Script, path string, from, to *value.Dictionary) {
	alphabet := map[string]rune{}
	fromRunes := dictRunes(alphabet, from)
	toRunes := dictRunes(alphabet, to)
	diffs := diffpatch.New().DiffMainRunes(fromRunes, toRunes, false)

	fi, ti, ai := 0, 0, 0
	pendingDel := false
	for i := range diffs {
		d := &diffs[i]
		switch d.Type {
		case diffpatch.DiffDelete:
			for range d.Text {
				p := from.PairAt(fi)
				sc.add(&Change{
					Op:    Delete,
					Path:  path,
					Index: ai,
					Key:   p.Key,
					From:  p.Value.Clone(),
				})
				pendingDel = true
				fi++
			}
		case diffpatch.DiffEqual:
			pendingDel = false
			for range d.Text {
				fp, tp := from.PairAt(fi), to.PairAt(ti)
				elemPath := path + "." + value.QuoteKey(fp.Key)
				diffElement(sc, path, ai, fp.Key, elemPath, fp.Value, tp.Value)
				ai++
				fi++
				ti++
			}
		case diffpatch.DiffInsert:
			for range d.Text {
				tp := to.PairAt(ti)
				last := len(sc.Changes) - 1
				switch {
				case pendingDel && sc.Changes[last].Key == tp.Key:
					sc.Changes[last].Op = Replace
					sc.Changes[last].To = tp.Value.Clone()
					pendingDel = false
				// A key still in from may be deleted only later in
				// the script, so renaming onto it would collide at
				// apply time; those stay delete+insert pairs.
				case pendingDel && value.Equal(sc.Changes[last].From, tp.Value) &&
					!from.ContainsKey(tp.Key):
					sc.Changes[last].Op = Rename
					sc.Changes[last].NewKey = tp.Key
					pendingDel = false
				default:
					sc.add(&Change{
						Op:    Insert,
						Path:  path,
						Index: ai,
						Key:   tp.Key,
						To:    tp.Value.Clone(),
					})
				}
				ai++
				ti++
			}
			pendingDel = false
		}
	}
}

func arrayRunes(alphabet map[string]rune, a *value.Array) []rune {
	rs := make([]rune, a.Count())
	for i := 0; i < a.Count(); i++ {
		rs[i] = alphabetRune(alphabet, summary(a.At(i)))
	}
	return rs
}

func dictRunes(alphabet map[string]rune, d *value.Dictionary) []rune {
	rs := make([]rune, d.Count())
	for i := 0; i < d.Count(); i++ {
		p := d.PairAt(i)
		rs[i] = alphabetRune(alphabet, p.Key+"\x00"+summary(p.Value))
	}
	return rs
}

func alphabetRune(alphabet map[string]rune, sum string) rune {
	r, ok := alphabet[sum]
	if !ok {
		r = rune(len(alphabet))
		alphabet[sum] = r
	}
	return r
}

// summary renders an element for alignment. Collections summarize to
// their kind so that same-kind collections align and are recursed
// into; scalars carry their payload hash. A rare hash collision
// still diffs correctly, it just aligns two unequal scalars and the
// recursion replaces one with the other.
func summary(v *value.Value) string {
	if v.IsCollection() {
		return v.Kind.String()
	}
	return v.Kind.String() + "-" + strconv.FormatUint(v.Hash(), 16)
}

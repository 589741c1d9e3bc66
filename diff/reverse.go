package diff

// Reverse returns the script that undoes sc: applied to the patched
// document it restores the original. Changes invert back-to-front, so
// container coordinates stay valid. The reverse shares its value
// snapshots with sc.
func (sc *Script) Reverse() *Script {
	rev := &Script{Changes: make([]*Change, 0, len(sc.Changes))}
	for i := len(sc.Changes) - 1; i >= 0; i-- {
		ch := sc.Changes[i]
		inv := &Change{Path: ch.Path, Index: ch.Index, Key: ch.Key}
		switch ch.Op {
		case Replace:
			inv.Op = Replace
			inv.From, inv.To = ch.To, ch.From
		case Insert:
			inv.Op = Delete
			inv.From = ch.To
		case Delete:
			inv.Op = Insert
			inv.To = ch.From
		case Rename:
			inv.Op = Rename
			inv.Key, inv.NewKey = ch.NewKey, ch.Key
			inv.From = ch.From
		}
		rev.Changes = append(rev.Changes, inv)
	}
	return rev
}

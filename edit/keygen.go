package edit

import (
	"fmt"

	"github.com/plkit/plkit/value"
)

// DefaultKeyFormat shapes generated dictionary keys when an Editor does
// not override it. Surrounding layers localize by substituting their
// own format.
const DefaultKeyFormat = "Item %d"

// UniqueKey picks a key not currently in d. A non-empty requested key
// wins when free; otherwise candidates format(1), format(2), ... probe
// in order and the first free one wins.
func UniqueKey(d *value.Dictionary, format, requested string) string {
	if requested != "" && !d.ContainsKey(requested) {
		return requested
	}
	if format == "" {
		format = DefaultKeyFormat
	}
	for n := 1; ; n++ {
		k := fmt.Sprintf(format, n)
		if !d.ContainsKey(k) {
			return k
		}
	}
}

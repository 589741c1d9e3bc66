package diff

import (
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/plkit/plkit/codec"
	"github.com/plkit/plkit/value"
)

// Text renders a line diff of the YAML forms of from and to, with
// "-", "+" and " " prefixes on changed and kept lines.
func Text(from, to *value.Value) (string, error) {
	fd, err := codec.EncodeYAML(from)
	if err != nil {
		return "", err
	}
	td, err := codec.EncodeYAML(to)
	if err != nil {
		return "", err
	}
	dmp := diffpatch.New()
	fc, tc, lines := dmp.DiffLinesToChars(string(fd), string(td))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(fc, tc, false), lines)
	var b strings.Builder
	for _, d := range diffs {
		prefix := "  "
		switch d.Type {
		case diffpatch.DiffDelete:
			prefix = "- "
		case diffpatch.DiffInsert:
			prefix = "+ "
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			b.WriteString(prefix)
			b.WriteString(line)
			if !strings.HasSuffix(line, "\n") {
				b.WriteString("\n")
			}
		}
	}
	return b.String(), nil
}

// Pretty renders a colored character diff of the YAML forms, for
// terminals.
func Pretty(from, to *value.Value) (string, error) {
	fd, err := codec.EncodeYAML(from)
	if err != nil {
		return "", err
	}
	td, err := codec.EncodeYAML(to)
	if err != nil {
		return "", err
	}
	dmp := diffpatch.New()
	return dmp.DiffPrettyText(dmp.DiffMain(string(fd), string(td), true)), nil
}

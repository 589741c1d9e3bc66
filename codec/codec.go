// Package codec reads and writes property-list documents.
//
// The canonical format is YAML: every kind a document can hold has a
// faithful representation there, keys keep their order, and a decoded
// document encodes back to the same value. JSON is supported as an
// interchange format with the restriction that dates and data have no
// JSON type; encoding them fails unless [EncodeLossy] is set.
//
// # Usage
//
// To read a document:
//
//	v, err := codec.Decode(d, codec.YAMLFormat)
//
// To write one:
//
//	d, err := codec.Encode(v, codec.JSONFormat, codec.EncodeIndent(2))
package codec

import (
	"fmt"
	"strings"

	"github.com/plkit/plkit/value"
)

// Format names a supported document encoding.
type Format int

const (
	YAMLFormat Format = iota
	JSONFormat
)

var formatStrings = map[Format]string{
	YAMLFormat: "yaml",
	JSONFormat: "json",
}

func (f Format) String() string {
	s, ok := formatStrings[f]
	if !ok {
		return "<unknown format>"
	}
	return s
}

// Suffix gives the file suffix for f, including the dot.
func (f Format) Suffix() string {
	return "." + f.String()
}

// ParseFormat maps a format name such as "yaml" or "json" to its
// Format. It accepts the usual suffix spellings too.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "yaml", "yml":
		return YAMLFormat, nil
	case "json":
		return JSONFormat, nil
	}
	return 0, fmt.Errorf("unrecognized format %q", s)
}

// FormatForPath guesses the format from a file path's suffix,
// defaulting to YAML.
func FormatForPath(path string) Format {
	i := strings.LastIndexByte(path, '.')
	if i < 0 {
		return YAMLFormat
	}
	f, err := ParseFormat(path[i:])
	if err != nil {
		return YAMLFormat
	}
	return f
}

// Pos locates a decoded value in its source document. Line and Column
// are 1-based.
type Pos struct {
	Line   int
	Column int
}

type decOpts struct {
	positions    map[*value.Value]Pos
	keyPositions map[*value.Value]Pos
}

// DecodeOption configures decoding.
type DecodeOption func(*decOpts)

// DecodePositions asks the decoder to record the source position of
// every value it produces in m. Only the YAML decoder tracks
// positions; the JSON decoder leaves m untouched.
func DecodePositions(m map[*value.Value]Pos) DecodeOption {
	return func(o *decOpts) {
		o.positions = m
	}
}

// DecodeKeyPositions records, for every dictionary member, the source
// position of its key, indexed by the member's value. Like
// [DecodePositions] it is a YAML-only feature.
func DecodeKeyPositions(m map[*value.Value]Pos) DecodeOption {
	return func(o *decOpts) {
		o.keyPositions = m
	}
}

type encOpts struct {
	indent int
	lossy  bool
}

// EncodeOption configures encoding.
type EncodeOption func(*encOpts)

// EncodeIndent sets the indent width. Zero means the format default:
// two spaces for YAML, compact output for JSON.
func EncodeIndent(n int) EncodeOption {
	return func(o *encOpts) {
		o.indent = n
	}
}

// EncodeLossy lets the JSON encoder write dates as RFC 3339 strings
// and data as base64 strings instead of failing. The YAML encoder
// ignores it.
func EncodeLossy(lossy bool) EncodeOption {
	return func(o *encOpts) {
		o.lossy = lossy
	}
}

// Decode reads one document in the given format.
func Decode(d []byte, f Format, opts ...DecodeOption) (*value.Value, error) {
	switch f {
	case YAMLFormat:
		return DecodeYAML(d, opts...)
	case JSONFormat:
		return DecodeJSON(d, opts...)
	}
	return nil, fmt.Errorf("%w: unrecognized format %d", ErrDecode, f)
}

// Encode writes v in the given format.
func Encode(v *value.Value, f Format, opts ...EncodeOption) ([]byte, error) {
	switch f {
	case YAMLFormat:
		return EncodeYAML(v, opts...)
	case JSONFormat:
		return EncodeJSON(v, opts...)
	}
	return nil, fmt.Errorf("%w: unrecognized format %d", ErrEncode, f)
}

// MustString renders v as YAML with the trailing newline trimmed,
// panicking on error. It is meant for tests and debug output.
func MustString(v *value.Value) string {
	d, err := EncodeYAML(v)
	if err != nil {
		panic(err)
	}
	return strings.TrimSpace(string(d))
}

package codec

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/plkit/plkit/value"
)

func allKinds() *value.Value {
	return value.FromPairs([]value.Pair{
		value.NewPair("name", value.FromString("tea pot")),
		value.NewPair("count", value.FromInt(42)),
		value.NewPair("ratio", value.FromFloat(0.5)),
		value.NewPair("whole", value.FromFloat(2)),
		value.NewPair("enabled", value.FromBool(true)),
		value.NewPair("since", value.FromDate(time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC))),
		value.NewPair("blob", value.FromData([]byte{0x01, 0x02, 0xff})),
		value.NewPair("tags", value.FromSlice([]*value.Value{
			value.FromString("a"),
			value.FromString("true"),
			value.FromString("12"),
		})),
		value.NewPair("nested", value.FromPairs([]value.Pair{
			value.NewPair("z", value.FromInt(1)),
			value.NewPair("a", value.FromInt(2)),
		})),
	})
}

func TestYAMLRoundTrip(t *testing.T) {
	orig := allKinds()
	d, err := EncodeYAML(orig)
	if err != nil {
		t.Fatal(err)
	}
	back, err := DecodeYAML(d)
	if err != nil {
		t.Fatalf("decode of %q: %s", string(d), err)
	}
	if !value.Equal(orig, back) {
		t.Errorf("round trip changed the document:\n%s\nvs\n%s",
			MustString(orig), MustString(back))
	}
}

func TestYAMLKeyOrder(t *testing.T) {
	v, err := DecodeYAML([]byte("z: 1\nm: 2\na: 3\n"))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"z", "m", "a"}
	for i, k := range want {
		got, ok := v.KeyAt(i)
		if !ok || got != k {
			t.Errorf("key %d: got %q, want %q", i, got, k)
		}
	}
	d, err := EncodeYAML(v)
	if err != nil {
		t.Fatal(err)
	}
	s := string(d)
	if strings.Index(s, "z:") > strings.Index(s, "m:") ||
		strings.Index(s, "m:") > strings.Index(s, "a:") {
		t.Errorf("encode reordered keys:\n%s", s)
	}
}

type yamlKindTest struct {
	Doc  string
	Kind value.Kind
}

var yamlKindTests = []yamlKindTest{
	{"hello", value.StringKind},
	{`"12"`, value.StringKind},
	{`"true"`, value.StringKind},
	{"12", value.NumberKind},
	{"0x1f", value.NumberKind},
	{"-3.25", value.NumberKind},
	{".inf", value.NumberKind},
	{"true", value.BooleanKind},
	{"False", value.BooleanKind},
	{"2024-05-06T07:08:09Z", value.DateKind},
	{"2024-05-06", value.DateKind},
	{"!!binary aGk=", value.DataKind},
	{"[1, 2]", value.ArrayKind},
	{"{a: 1}", value.DictionaryKind},
}

func TestYAMLScalarResolution(t *testing.T) {
	for i, tst := range yamlKindTests {
		v, err := DecodeYAML([]byte(tst.Doc))
		if err != nil {
			t.Errorf("test %d %q: %s", i, tst.Doc, err)
			continue
		}
		if v.Kind != tst.Kind {
			t.Errorf("test %d %q: got %s, want %s", i, tst.Doc, v.Kind, tst.Kind)
		}
	}
}

var yamlBadDocs = []string{
	"",
	"a: 1\na: 2\n",  // duplicate key
	"v: null",       // no null in the model
	"v: ~",          // null again
	"<<: {a: 1}",    // merge key
	"v: !custom x",  // unknown tag
	"[1, 2",         // malformed
	"? [1]\n: 2\n",  // non-scalar key
}

func TestYAMLDecodeErrors(t *testing.T) {
	for i, doc := range yamlBadDocs {
		_, err := DecodeYAML([]byte(doc))
		if err == nil {
			t.Errorf("test %d %q: decode succeeded", i, doc)
			continue
		}
		if !errors.Is(err, ErrDecode) {
			t.Errorf("test %d %q: error %q is not ErrDecode", i, doc, err)
		}
	}
}

func TestYAMLAlias(t *testing.T) {
	v, err := DecodeYAML([]byte("base: &b [1, 2]\nother: *b\n"))
	if err != nil {
		t.Fatal(err)
	}
	a := v.ElementAt(0)
	b := v.ElementAt(1)
	if a == b {
		t.Fatal("alias expansion shared a value")
	}
	if !value.Equal(a, b) {
		t.Errorf("alias decoded to %s, want %s", MustString(b), MustString(a))
	}
}

func TestYAMLPositions(t *testing.T) {
	positions := map[*value.Value]Pos{}
	v, err := DecodeYAML([]byte("a: 1\nb:\n  c: hi\n"), DecodePositions(positions))
	if err != nil {
		t.Fatal(err)
	}
	c, err := v.GetPath("$.b.c")
	if err != nil || c == nil {
		t.Fatalf("get $.b.c: %v %v", c, err)
	}
	p, ok := positions[c]
	if !ok {
		t.Fatal("no position recorded for $.b.c")
	}
	if p.Line != 3 || p.Column != 6 {
		t.Errorf("position of $.b.c: got %d:%d, want 3:6", p.Line, p.Column)
	}
}

func TestYAMLKeyPositions(t *testing.T) {
	keyPositions := map[*value.Value]Pos{}
	v, err := DecodeYAML([]byte("a: 1\nb:\n  c: hi\n"), DecodeKeyPositions(keyPositions))
	if err != nil {
		t.Fatal(err)
	}
	b, err := v.GetPath("$.b")
	if err != nil || b == nil {
		t.Fatalf("get $.b: %v %v", b, err)
	}
	// b's value opens on the line below its key.
	p, ok := keyPositions[b]
	if !ok {
		t.Fatal("no key position recorded for $.b")
	}
	if p.Line != 2 || p.Column != 1 {
		t.Errorf("key position of $.b: got %d:%d, want 2:1", p.Line, p.Column)
	}
	c, err := v.GetPath("$.b.c")
	if err != nil || c == nil {
		t.Fatalf("get $.b.c: %v %v", c, err)
	}
	if p, ok = keyPositions[c]; !ok || p.Line != 3 || p.Column != 3 {
		t.Errorf("key position of $.b.c: got %d:%d, want 3:3", p.Line, p.Column)
	}
}

func TestYAMLFloatStaysFloat(t *testing.T) {
	d, err := EncodeYAML(value.FromFloat(2))
	if err != nil {
		t.Fatal(err)
	}
	back, err := DecodeYAML(d)
	if err != nil {
		t.Fatal(err)
	}
	if back.Float64 == nil {
		t.Errorf("float 2 came back as %s", MustString(back))
	}
}

func TestJSONRoundTrip(t *testing.T) {
	orig := value.FromPairs([]value.Pair{
		value.NewPair("name", value.FromString("tea pot")),
		value.NewPair("count", value.FromInt(42)),
		value.NewPair("ratio", value.FromFloat(0.5)),
		value.NewPair("whole", value.FromFloat(2)),
		value.NewPair("enabled", value.FromBool(true)),
		value.NewPair("tags", value.FromSlice([]*value.Value{
			value.FromString("a"),
			value.FromInt(1),
		})),
	})
	d, err := EncodeJSON(orig)
	if err != nil {
		t.Fatal(err)
	}
	back, err := DecodeJSON(d)
	if err != nil {
		t.Fatalf("decode of %q: %s", string(d), err)
	}
	if !value.Equal(orig, back) {
		t.Errorf("round trip changed the document:\n%s\nvs\n%s",
			MustString(orig), MustString(back))
	}
}

func TestJSONNumberTyping(t *testing.T) {
	v, err := DecodeJSON([]byte(`[2, 2.0, 1e3]`))
	if err != nil {
		t.Fatal(err)
	}
	if v.ElementAt(0).Int64 == nil {
		t.Error("2 did not decode as an integer")
	}
	if v.ElementAt(1).Float64 == nil {
		t.Error("2.0 did not decode as a float")
	}
	if v.ElementAt(2).Float64 == nil {
		t.Error("1e3 did not decode as a float")
	}
}

var jsonBadDocs = []string{
	"",
	"null",
	`{"a": 1, "a": 2}`,
	`{"a": null}`,
	`[1, 2`,
	`{"a": 1} trailing`,
}

func TestJSONDecodeErrors(t *testing.T) {
	for i, doc := range jsonBadDocs {
		_, err := DecodeJSON([]byte(doc))
		if err == nil {
			t.Errorf("test %d %q: decode succeeded", i, doc)
			continue
		}
		if !errors.Is(err, ErrDecode) {
			t.Errorf("test %d %q: error %q is not ErrDecode", i, doc, err)
		}
	}
}

func TestJSONKeyOrder(t *testing.T) {
	v, err := DecodeJSON([]byte(`{"z": 1, "m": 2, "a": 3}`))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"z", "m", "a"}
	for i, k := range want {
		got, ok := v.KeyAt(i)
		if !ok || got != k {
			t.Errorf("key %d: got %q, want %q", i, got, k)
		}
	}
}

func TestJSONLossy(t *testing.T) {
	doc := value.FromPairs([]value.Pair{
		value.NewPair("when", value.FromDate(time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC))),
		value.NewPair("blob", value.FromData([]byte("hi"))),
	})
	if _, err := EncodeJSON(doc); !errors.Is(err, ErrEncode) {
		t.Errorf("encoding a date without EncodeLossy: %v", err)
	}
	d, err := EncodeJSON(doc, EncodeLossy(true))
	if err != nil {
		t.Fatal(err)
	}
	s := string(d)
	if !strings.Contains(s, `"2024-05-06T07:08:09Z"`) {
		t.Errorf("lossy date missing from %s", s)
	}
	if !strings.Contains(s, `"aGk="`) {
		t.Errorf("lossy data missing from %s", s)
	}
}

func TestJSONNonFinite(t *testing.T) {
	if _, err := EncodeJSON(value.FromFloat(math.Inf(1))); !errors.Is(err, ErrEncode) {
		t.Errorf("encoding +inf as JSON: %v", err)
	}
}

func TestJSONIndent(t *testing.T) {
	v := value.FromPairs([]value.Pair{value.NewPair("a", value.FromInt(1))})
	d, err := EncodeJSON(v, EncodeIndent(2))
	if err != nil {
		t.Fatal(err)
	}
	if want := "{\n  \"a\": 1\n}\n"; string(d) != want {
		t.Errorf("indented encode: got %q, want %q", string(d), want)
	}
}

type formatTest struct {
	In     string
	Format Format
	Bad    bool
}

var formatTests = []formatTest{
	{In: "yaml", Format: YAMLFormat},
	{In: "yml", Format: YAMLFormat},
	{In: ".yaml", Format: YAMLFormat},
	{In: "JSON", Format: JSONFormat},
	{In: ".json", Format: JSONFormat},
	{In: "xml", Bad: true},
	{In: "", Bad: true},
}

func TestParseFormat(t *testing.T) {
	for i, tst := range formatTests {
		f, err := ParseFormat(tst.In)
		if tst.Bad {
			if err == nil {
				t.Errorf("test %d %q: parse succeeded", i, tst.In)
			}
			continue
		}
		if err != nil {
			t.Errorf("test %d %q: %s", i, tst.In, err)
			continue
		}
		if f != tst.Format {
			t.Errorf("test %d %q: got %s, want %s", i, tst.In, f, tst.Format)
		}
	}
}

func TestFormatForPath(t *testing.T) {
	if f := FormatForPath("settings.json"); f != JSONFormat {
		t.Errorf("settings.json: got %s", f)
	}
	if f := FormatForPath("settings.yml"); f != YAMLFormat {
		t.Errorf("settings.yml: got %s", f)
	}
	if f := FormatForPath("settings"); f != YAMLFormat {
		t.Errorf("suffix-free path: got %s", f)
	}
}

func TestDecodeEncodeDispatch(t *testing.T) {
	v, err := Decode([]byte(`{"a": 1}`), JSONFormat)
	if err != nil {
		t.Fatal(err)
	}
	d, err := Encode(v, YAMLFormat)
	if err != nil {
		t.Fatal(err)
	}
	if want := "a: 1\n"; string(d) != want {
		t.Errorf("yaml encode: got %q, want %q", string(d), want)
	}
}

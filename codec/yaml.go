package codec

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/plkit/plkit/value"
)

// The timestamp spellings the yaml.v3 resolver accepts for !!timestamp.
var yamlTimestampFormats = []string{
	"2006-1-2T15:4:5.999999999Z07:00",
	"2006-1-2t15:4:5.999999999Z07:00",
	"2006-1-2 15:4:5.999999999",
	"2006-1-2",
}

// DecodeYAML reads one YAML document. Scalars must resolve to a
// property-list kind: strings, integers, floats, booleans, timestamps
// and !!binary data. Nulls, merge keys and custom tags fail with
// ErrDecode, as do duplicate dictionary keys.
func DecodeYAML(d []byte, opts ...DecodeOption) (*value.Value, error) {
	var o decOpts
	for _, opt := range opts {
		opt(&o)
	}
	var root yaml.Node
	if err := yaml.Unmarshal(d, &root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrDecode)
	}
	return fromYAML(root.Content[0], &o)
}

func fromYAML(n *yaml.Node, o *decOpts) (*value.Value, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return fromYAML(n.Alias, o)
	case yaml.ScalarNode:
		return fromYAMLScalar(n, o)
	case yaml.SequenceNode:
		arr := value.NewArray()
		for i, c := range n.Content {
			cv, err := fromYAML(c, o)
			if err != nil {
				return nil, err
			}
			arr.Insert(cv, i)
		}
		return pos(value.FromArray(arr), n, o), nil
	case yaml.MappingNode:
		dict := value.NewDictionary()
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, c := n.Content[i], n.Content[i+1]
			if k.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("%w: line %d: non-scalar dictionary key", ErrDecode, k.Line)
			}
			if k.Tag == "!!merge" {
				return nil, fmt.Errorf("%w: line %d: merge keys are not supported", ErrDecode, k.Line)
			}
			if dict.ContainsKey(k.Value) {
				return nil, fmt.Errorf("%w: line %d: duplicate key %q", ErrDecode, k.Line, k.Value)
			}
			cv, err := fromYAML(c, o)
			if err != nil {
				return nil, err
			}
			if o.keyPositions != nil {
				o.keyPositions[cv] = Pos{Line: k.Line, Column: k.Column}
			}
			dict.Insert(value.NewPair(k.Value, cv), i/2)
		}
		return pos(value.FromDictionary(dict), n, o), nil
	}
	return nil, fmt.Errorf("%w: line %d: unsupported node", ErrDecode, n.Line)
}

func fromYAMLScalar(n *yaml.Node, o *decOpts) (*value.Value, error) {
	switch n.Tag {
	case "!!str":
		return pos(value.FromString(n.Value), n, o), nil
	case "!!int":
		i, err := strconv.ParseInt(n.Value, 0, 64)
		if err == nil {
			return pos(value.FromInt(i), n, o), nil
		}
		f, ferr := strconv.ParseFloat(n.Value, 64)
		if ferr != nil {
			return nil, fmt.Errorf("%w: line %d: bad integer %q", ErrDecode, n.Line, n.Value)
		}
		return pos(value.FromFloat(f), n, o), nil
	case "!!float":
		switch strings.ToLower(n.Value) {
		case ".inf", "+.inf":
			return pos(value.FromFloat(math.Inf(1)), n, o), nil
		case "-.inf":
			return pos(value.FromFloat(math.Inf(-1)), n, o), nil
		case ".nan":
			return pos(value.FromFloat(math.NaN()), n, o), nil
		}
		f, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: bad float %q", ErrDecode, n.Line, n.Value)
		}
		return pos(value.FromFloat(f), n, o), nil
	case "!!bool":
		return pos(value.FromBool(strings.EqualFold(n.Value, "true")), n, o), nil
	case "!!timestamp":
		for _, layout := range yamlTimestampFormats {
			if t, err := time.Parse(layout, n.Value); err == nil {
				return pos(value.FromDate(t), n, o), nil
			}
		}
		return nil, fmt.Errorf("%w: line %d: bad timestamp %q", ErrDecode, n.Line, n.Value)
	case "!!binary":
		raw := strings.Map(func(r rune) rune {
			if unicode.IsSpace(r) {
				return -1
			}
			return r
		}, n.Value)
		b, err := base64.StdEncoding.DecodeString(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: bad binary data: %v", ErrDecode, n.Line, err)
		}
		return pos(value.FromData(b), n, o), nil
	case "!!null":
		return nil, fmt.Errorf("%w: line %d: null is not a property-list value", ErrDecode, n.Line)
	}
	return nil, fmt.Errorf("%w: line %d: unsupported tag %q", ErrDecode, n.Line, n.Tag)
}

func pos(v *value.Value, n *yaml.Node, o *decOpts) *value.Value {
	if o.positions != nil {
		o.positions[v] = Pos{Line: n.Line, Column: n.Column}
	}
	return v
}

// EncodeYAML writes v as one YAML document. Every kind round-trips.
func EncodeYAML(v *value.Value, opts ...EncodeOption) ([]byte, error) {
	o := encOpts{indent: 2}
	for _, opt := range opts {
		opt(&o)
	}
	if o.indent == 0 {
		o.indent = 2
	}
	if v == nil {
		return nil, fmt.Errorf("%w: nil value", ErrEncode)
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(o.indent)
	if err := enc.Encode(toYAML(v)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return buf.Bytes(), nil
}

func toYAML(v *value.Value) *yaml.Node {
	switch v.Kind {
	case value.StringKind:
		return scalarNode("!!str", v.String)
	case value.NumberKind:
		if v.Int64 != nil {
			return scalarNode("!!int", strconv.FormatInt(*v.Int64, 10))
		}
		return scalarNode("!!float", formatYAMLFloat(*v.Float64))
	case value.BooleanKind:
		return scalarNode("!!bool", strconv.FormatBool(v.Bool))
	case value.DateKind:
		return scalarNode("!!timestamp", v.Time.UTC().Format(time.RFC3339Nano))
	case value.DataKind:
		return scalarNode("!!binary", base64.StdEncoding.EncodeToString(v.Bytes))
	case value.ArrayKind:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for i := 0; i < v.Arr.Count(); i++ {
			n.Content = append(n.Content, toYAML(v.Arr.At(i)))
		}
		return n
	case value.DictionaryKind:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for i := 0; i < v.Dict.Count(); i++ {
			p := v.Dict.PairAt(i)
			n.Content = append(n.Content, scalarNode("!!str", p.Key), toYAML(p.Value))
		}
		return n
	}
	panic("kind")
}

func scalarNode(tag, val string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: val}
}

// formatYAMLFloat renders f so that it resolves back to a float: an
// integral float gains a ".0" and the non-finite values use the YAML
// spellings.
func formatYAMLFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	case math.IsNaN(f):
		return ".nan"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

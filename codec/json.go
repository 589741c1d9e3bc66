package codec

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/plkit/plkit/value"
)

// DecodeJSON reads one JSON document. Integers without a fraction or
// exponent become integer numbers, everything else numeric becomes a
// float. Nulls and duplicate object keys fail with ErrDecode. Key
// order is preserved.
func DecodeJSON(d []byte, opts ...DecodeOption) (*value.Value, error) {
	var o decOpts
	for _, opt := range opts {
		opt(&o)
	}
	dec := json.NewDecoder(bytes.NewReader(d))
	dec.UseNumber()
	v, err := jsonValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after document", ErrDecode)
	}
	return v, nil
}

func jsonValue(dec *json.Decoder) (*value.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return jsonObject(dec)
		case '[':
			return jsonArray(dec)
		}
		return nil, fmt.Errorf("%w: unexpected %q", ErrDecode, t.String())
	case string:
		return value.FromString(t), nil
	case json.Number:
		if i, err := strconv.ParseInt(string(t), 10, 64); err == nil {
			return value.FromInt(i), nil
		}
		f, err := strconv.ParseFloat(string(t), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad number %q", ErrDecode, string(t))
		}
		return value.FromFloat(f), nil
	case bool:
		return value.FromBool(t), nil
	case nil:
		return nil, fmt.Errorf("%w: null is not a property-list value", ErrDecode)
	}
	return nil, fmt.Errorf("%w: unexpected token %v", ErrDecode, tok)
}

func jsonObject(dec *json.Decoder) (*value.Value, error) {
	dict := value.NewDictionary()
	for dec.More() {
		ktok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecode, err)
		}
		k, ok := ktok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: non-string object key", ErrDecode)
		}
		if dict.ContainsKey(k) {
			return nil, fmt.Errorf("%w: duplicate key %q", ErrDecode, k)
		}
		cv, err := jsonValue(dec)
		if err != nil {
			return nil, err
		}
		dict.Insert(value.NewPair(k, cv), dict.Count())
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return value.FromDictionary(dict), nil
}

func jsonArray(dec *json.Decoder) (*value.Value, error) {
	arr := value.NewArray()
	for dec.More() {
		cv, err := jsonValue(dec)
		if err != nil {
			return nil, err
		}
		arr.Insert(cv, arr.Count())
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return value.FromArray(arr), nil
}

// EncodeJSON writes v as JSON. Dates and data have no JSON type and
// fail with ErrEncode unless EncodeLossy is set, in which case they
// are written as RFC 3339 and base64 strings. Output is compact unless
// EncodeIndent is given.
func EncodeJSON(v *value.Value, opts ...EncodeOption) ([]byte, error) {
	var o encOpts
	for _, opt := range opts {
		opt(&o)
	}
	if v == nil {
		return nil, fmt.Errorf("%w: nil value", ErrEncode)
	}
	var buf bytes.Buffer
	if err := jsonEncode(&buf, v, &o); err != nil {
		return nil, err
	}
	if o.indent > 0 {
		var out bytes.Buffer
		if err := json.Indent(&out, buf.Bytes(), "", strings.Repeat(" ", o.indent)); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrEncode, err)
		}
		out.WriteByte('\n')
		return out.Bytes(), nil
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func jsonEncode(buf *bytes.Buffer, v *value.Value, o *encOpts) error {
	switch v.Kind {
	case value.StringKind:
		return jsonString(buf, v.String)
	case value.NumberKind:
		if v.Int64 != nil {
			buf.WriteString(strconv.FormatInt(*v.Int64, 10))
			return nil
		}
		f := *v.Float64
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return fmt.Errorf("%w: %v has no JSON representation", ErrEncode, f)
		}
		s := strconv.FormatFloat(f, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		buf.WriteString(s)
		return nil
	case value.BooleanKind:
		buf.WriteString(strconv.FormatBool(v.Bool))
		return nil
	case value.DateKind:
		if !o.lossy {
			return fmt.Errorf("%w: dates have no JSON representation (use EncodeLossy)", ErrEncode)
		}
		return jsonString(buf, v.Time.UTC().Format(time.RFC3339Nano))
	case value.DataKind:
		if !o.lossy {
			return fmt.Errorf("%w: data has no JSON representation (use EncodeLossy)", ErrEncode)
		}
		return jsonString(buf, base64.StdEncoding.EncodeToString(v.Bytes))
	case value.ArrayKind:
		buf.WriteByte('[')
		for i := 0; i < v.Arr.Count(); i++ {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := jsonEncode(buf, v.Arr.At(i), o); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	case value.DictionaryKind:
		buf.WriteByte('{')
		for i := 0; i < v.Dict.Count(); i++ {
			if i > 0 {
				buf.WriteByte(',')
			}
			p := v.Dict.PairAt(i)
			if err := jsonString(buf, p.Key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := jsonEncode(buf, p.Value, o); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	}
	panic("kind")
}

func jsonString(buf *bytes.Buffer, s string) error {
	d, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}
	buf.Write(d)
	return nil
}

// Package bind converts between document values and Go data.
//
// Composite values route through their JSON form, so the usual JSON
// conventions apply: struct fields follow their json tags, map keys
// are sorted, and inside composites dates travel as RFC 3339 strings
// and data as base64 strings. Scalars, time.Time and []byte at the
// top level map directly onto the scalar kinds. Types that want full
// control implement Marshaler or Unmarshaler.
package bind

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/goccy/go-json"

	"github.com/plkit/plkit/codec"
	"github.com/plkit/plkit/value"
)

var ErrBind = errors.New("bind error")

// Marshaler is implemented by types that build their own document
// value.
type Marshaler interface {
	MarshalValue() (*value.Value, error)
}

// Unmarshaler is implemented by types that populate themselves from a
// document value.
type Unmarshaler interface {
	UnmarshalValue(*value.Value) error
}

// To converts a Go datum into a document value.
func To(x any) (*value.Value, error) {
	switch t := x.(type) {
	case nil:
		return nil, fmt.Errorf("%w: nil has no document form", ErrBind)
	case Marshaler:
		return t.MarshalValue()
	case *value.Value:
		return t, nil
	case string:
		return value.FromString(t), nil
	case bool:
		return value.FromBool(t), nil
	case int:
		return value.FromInt(int64(t)), nil
	case int8:
		return value.FromInt(int64(t)), nil
	case int16:
		return value.FromInt(int64(t)), nil
	case int32:
		return value.FromInt(int64(t)), nil
	case int64:
		return value.FromInt(t), nil
	case uint:
		return uintValue(uint64(t))
	case uint8:
		return value.FromInt(int64(t)), nil
	case uint16:
		return value.FromInt(int64(t)), nil
	case uint32:
		return value.FromInt(int64(t)), nil
	case uint64:
		return uintValue(t)
	case float32:
		return value.FromFloat(float64(t)), nil
	case float64:
		return value.FromFloat(t), nil
	case time.Time:
		return value.FromDate(t), nil
	case []byte:
		return value.FromData(t), nil
	}
	d, err := json.Marshal(x)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBind, err)
	}
	v, err := codec.DecodeJSON(d)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBind, err)
	}
	return v, nil
}

func uintValue(u uint64) (*value.Value, error) {
	if u > math.MaxInt64 {
		return nil, fmt.Errorf("%w: %d overflows the number kind", ErrBind, u)
	}
	return value.FromInt(int64(u)), nil
}

// From populates p, which must be a non-nil pointer, from v.
func From(v *value.Value, p any) error {
	if v == nil {
		return fmt.Errorf("%w: nil value", ErrBind)
	}
	switch t := p.(type) {
	case Unmarshaler:
		return t.UnmarshalValue(v)
	case **value.Value:
		*t = v
		return nil
	case *time.Time:
		if v.Kind == value.DateKind {
			*t = v.Time
			return nil
		}
	case *[]byte:
		if v.Kind == value.DataKind {
			*t = append([]byte(nil), v.Bytes...)
			return nil
		}
	}
	d, err := codec.EncodeJSON(v, codec.EncodeLossy(true))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBind, err)
	}
	if err := json.Unmarshal(d, p); err != nil {
		return fmt.Errorf("%w: %v", ErrBind, err)
	}
	return nil
}

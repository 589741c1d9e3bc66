// Package template holds named starter values for new document
// items. Every kind has a default template under its kind name;
// applications register richer ones.
package template

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/plkit/plkit/value"
)

// Template names a starter value. Instance returns a fresh value on
// every call; instances share nothing with each other or the
// template.
type Template interface {
	String() string
	Instance() *value.Value
}

var (
	mu sync.RWMutex
	d  = map[string]Template{}
)

var ErrTemplateExists = errors.New("template exists")

func Register(t Template) error {
	mu.Lock()
	defer mu.Unlock()
	if _, present := d[t.String()]; present {
		return fmt.Errorf("%s: %w", t, ErrTemplateExists)
	}
	d[t.String()] = t
	return nil
}

// Lookup returns the template registered under name, or nil.
func Lookup(name string) Template {
	mu.RLock()
	defer mu.RUnlock()
	return d[name]
}

// Names lists the registered template names in sorted order.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	res := make([]string, 0, len(d))
	for name := range d {
		res = append(res, name)
	}
	slices.Sort(res)
	return res
}

// New builds a template that instances clones of v.
func New(name string, v *value.Value) Template {
	proto := v.Clone()
	return &template{name: name, make: proto.Clone}
}

type template struct {
	name string
	make func() *value.Value
}

func (t *template) String() string {
	return t.name
}

func (t *template) Instance() *value.Value {
	return t.make()
}

func init() {
	for _, k := range value.Kinds() {
		Register(&template{name: k.String(), make: func() *value.Value { return defaultValue(k) }})
	}
}

// defaultValue is the blank slate for each kind. New dates start at
// the current time, the way interactive editors insert them.
func defaultValue(k value.Kind) *value.Value {
	switch k {
	case value.StringKind:
		return value.FromString("")
	case value.NumberKind:
		return value.FromInt(0)
	case value.BooleanKind:
		return value.FromBool(false)
	case value.DateKind:
		return value.FromDate(time.Now())
	case value.DataKind:
		return value.FromData(nil)
	case value.ArrayKind:
		return value.FromArray(nil)
	case value.DictionaryKind:
		return value.FromDictionary(nil)
	}
	panic("kind")
}

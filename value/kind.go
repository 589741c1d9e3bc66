package value

import "fmt"

// Kind identifies the variant of a property-list value. The set is
// closed: every Value carries exactly one of these kinds.
type Kind int

const (
	StringKind Kind = iota
	NumberKind
	BooleanKind
	DateKind
	DataKind
	ArrayKind
	DictionaryKind
)

func (k Kind) String() string {
	s, ok := map[Kind]string{
		StringKind:     "String",
		NumberKind:     "Number",
		BooleanKind:    "Boolean",
		DateKind:       "Date",
		DataKind:       "Data",
		ArrayKind:      "Array",
		DictionaryKind: "Dictionary",
	}[k]
	if ok {
		return s
	}
	return "<unknown kind>"
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(d []byte) error {
	kk, ok := map[string]Kind{
		"String":     StringKind,
		"Number":     NumberKind,
		"Boolean":    BooleanKind,
		"Date":       DateKind,
		"Data":       DataKind,
		"Array":      ArrayKind,
		"Dictionary": DictionaryKind,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized kind %q", d)
	}
	*k = kk
	return nil
}

func Kinds() []Kind {
	return []Kind{
		StringKind,
		NumberKind,
		BooleanKind,
		DateKind,
		DataKind,
		ArrayKind,
		DictionaryKind,
	}
}

// IsCollection reports whether values of this kind contain other values.
// Expandability in tree projections is exactly this predicate, regardless
// of element count.
func (k Kind) IsCollection() bool {
	switch k {
	case ArrayKind, DictionaryKind:
		return true
	default:
		return false
	}
}

package value

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrPath = errors.New("path error")

// Path is one fragment of a parsed value path. Paths are $-rooted:
// $.key, $.'dotted.key', $[3], $[*] for every element, and $.. for the
// whole subtree.
type Path struct {
	IndexAll bool
	Index    *int
	Key      *string
	Subtree  bool
	Next     *Path
}

func (p *Path) String() string {
	buf := bytes.NewBuffer([]byte{'$'})
	x := p
	for x != nil {
		if x.Subtree {
			buf.WriteString("..")
			x = x.Next
			continue
		}
		if x.IndexAll {
			buf.WriteString("[*]")
			x = x.Next
			continue
		}
		if x.Key != nil {
			buf.WriteString("." + QuoteKey(*x.Key))
			x = x.Next
			continue
		}
		if x.Index != nil {
			fmt.Fprintf(buf, "[%d]", *x.Index)
			x = x.Next
			continue
		}
		x = x.Next
	}
	return buf.String()
}

// QuoteKey renders a dictionary key as a path segment, quoting it when
// it contains path metacharacters.
func QuoteKey(k string) string {
	if k != "" && strings.IndexAny(k, "'.*$[]") == -1 {
		return k
	}
	return "'" + strings.Replace(k, "'", "\\'", -1) + "'"
}

func ParsePath(p string) (*Path, error) {
	if len(p) == 0 || p[0] != '$' {
		return nil, fmt.Errorf("%w: path %q should start with '$'", ErrPath, p)
	}
	root := &Path{}
	if len(p) == 1 {
		return root, nil
	}
	if err := parseFrag(p[1:], root); err != nil {
		return nil, err
	}
	return root, nil
}

func parseFrag(frag string, parent *Path) error {
	if len(frag) == 0 {
		return nil
	}
	switch frag[0] {
	case '.':
		if len(frag) > 1 && frag[1] == '.' {
			parent.Subtree = true
			next := &Path{}
			if err := parseFrag(frag[2:], next); err != nil {
				return err
			}
			parent.Next = next
			return nil
		}
		key, rest, err := parseKey(frag[1:])
		if err != nil {
			return err
		}
		parent.Key = &key
		if len(rest) == 0 {
			return nil
		}
		next := &Path{}
		if err := parseFrag(rest, next); err != nil {
			return err
		}
		parent.Next = next
		return nil
	case '[':
		i := strings.IndexByte(frag[1:], ']')
		if i == -1 {
			return fmt.Errorf("%w: expected '[' <index> ']'", ErrPath)
		}
		index, all, err := parseIndex(frag[1 : i+1])
		if err != nil {
			return err
		}
		parent.IndexAll = all
		if !all {
			parent.Index = &index
		}
		if len(frag) == i+2 {
			return nil
		}
		next := &Path{}
		if err := parseFrag(frag[i+2:], next); err != nil {
			return err
		}
		parent.Next = next
		return nil
	default:
		return fmt.Errorf("%w: expected '.' or '['", ErrPath)
	}
}

func parseIndex(is string) (index int, all bool, err error) {
	if len(is) == 1 && is[0] == '*' {
		return 0, true, nil
	}
	u64, err := strconv.ParseUint(is, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("%w: %v", ErrPath, err)
	}
	return int(u64), false, nil
}

func parseKey(frag string) (key, rest string, err error) {
	if len(frag) == 0 {
		return "", "", fmt.Errorf("%w: expected key at end of string", ErrPath)
	}
	if frag[0] != '\'' {
		i := strings.IndexAny(frag, ".[")
		if i == -1 {
			return frag, "", nil
		}
		return frag[:i], frag[i:], nil
	}
	escaped := false
	res := make([]byte, 0, len(frag))
	for i := 1; i < len(frag); i++ {
		c := frag[i]
		switch c {
		case '\\':
			escaped = true
		case '\'':
			if !escaped {
				return string(res), frag[i+1:], nil
			}
			fallthrough
		default:
			escaped = false
			res = append(res, c)
		}
	}
	return "", "", fmt.Errorf("%w: end of string scanning for \"'\"", ErrPath)
}

// GetPath resolves a single-target path against v and returns the value
// there, nil when a named key is absent, and an error for wildcard or
// subtree paths, kind mismatches, and out-of-bounds indices.
func (v *Value) GetPath(path string) (*Value, error) {
	p, err := ParsePath(path)
	if err != nil {
		return nil, err
	}
	res := v
	for p != nil {
		if p.IndexAll {
			return nil, fmt.Errorf("%w: any index in get", ErrPath)
		}
		if p.Subtree {
			return nil, fmt.Errorf("%w: recurse .. in get", ErrPath)
		}
		if p.Index != nil {
			if res.Kind != ArrayKind {
				return nil, fmt.Errorf("%w: expected array, got %s", ErrPath, res.Kind)
			}
			index := *p.Index
			if index < 0 || index >= res.Arr.Count() {
				return nil, fmt.Errorf("%w: index out of bounds %d (len %d)", ErrPath, index, res.Arr.Count())
			}
			res = res.Arr.At(index)
			p = p.Next
			continue
		}
		if p.Key != nil {
			if res.Kind != DictionaryKind {
				return nil, fmt.Errorf("%w: expected dictionary, got %s", ErrPath, res.Kind)
			}
			i := res.Dict.IndexOfKey(*p.Key)
			if i == -1 {
				return nil, nil
			}
			res = res.Dict.PairAt(i).Value
			p = p.Next
			continue
		}
		if p.Next != nil {
			return nil, fmt.Errorf("%w: unexpected next w/out index or key", ErrPath)
		}
		break
	}
	return res, nil
}

// ListPath appends to dst every value matching the path, wildcards and
// subtree fragments included.
func (v *Value) ListPath(dst []*Value, path string) ([]*Value, error) {
	p, err := ParsePath(path)
	if err != nil {
		return nil, err
	}
	return v.listPath(dst, p)
}

func (v *Value) listPath(dst []*Value, p *Path) ([]*Value, error) {
	if p == nil {
		return append(dst, v), nil
	}
	var err error
	if p.Subtree {
		if err := v.Visit(func(node *Value, isPost bool) (bool, error) {
			if isPost {
				return false, nil
			}
			dst, err = node.listPath(dst, p.Next)
			if err != nil {
				return false, err
			}
			return true, nil
		}); err != nil {
			return nil, err
		}
		return dst, nil
	}
	switch v.Kind {
	case DictionaryKind:
		if p.IndexAll || p.Index != nil {
			return dst, nil
		}
		if p.Key == nil && p.Next == nil {
			return append(dst, v), nil
		}
		i := v.Dict.IndexOfKey(*p.Key)
		if i == -1 {
			return dst, nil
		}
		return v.Dict.PairAt(i).Value.listPath(dst, p.Next)

	case ArrayKind:
		if p.Key != nil {
			return dst, nil
		}
		if p.Index == nil && !p.IndexAll && p.Next == nil {
			return append(dst, v), nil
		}
		if p.Index != nil {
			idx := *p.Index
			if 0 <= idx && idx < v.Arr.Count() {
				dst, err = v.Arr.At(idx).listPath(dst, p.Next)
				if err != nil {
					return nil, err
				}
			}
			return dst, nil
		}
		n := v.Arr.Count()
		for i := 0; i < n; i++ {
			dst, err = v.Arr.At(i).listPath(dst, p.Next)
			if err != nil {
				return nil, err
			}
		}
		return dst, nil

	case StringKind, NumberKind, BooleanKind, DateKind, DataKind:
		if p.Key != nil || p.Index != nil || p.IndexAll {
			return dst, nil
		}
		if p.Next == nil {
			return append(dst, v), nil
		}
		return dst, nil
	default:
		panic("kind")
	}
}

package message

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/DanielPopoola/payline-gateway/internal/domain"
)

// Tree is the decoded body of a remote response: nested maps keyed by
// element name with scalar leaves. It is never mutated after decoding.
type Tree map[string]any

// Lookup walks a dotted path such as "transaction.id".
func (t Tree) Lookup(path string) (any, bool) {
	var node any = map[string]any(t)
	for _, key := range strings.Split(path, ".") {
		m, ok := asMap(node)
		if !ok {
			return nil, false
		}
		node, ok = m[key]
		if !ok || node == nil {
			return nil, false
		}
	}
	return node, true
}

// Sub returns the subtree at path.
func (t Tree) Sub(path string) (Tree, error) {
	v, ok := t.Lookup(path)
	if !ok {
		return nil, domain.NewMissingResponseFieldError(path)
	}
	m, ok := asMap(v)
	if !ok {
		return nil, domain.NewMalformedResponseFieldError(path, fmt.Errorf("expected a structure, got %T", v))
	}
	return Tree(m), nil
}

// String returns the leaf at path as a string.
func (t Tree) String(path string) (string, error) {
	v, ok := t.Lookup(path)
	if !ok {
		return "", domain.NewMissingResponseFieldError(path)
	}
	switch s := v.(type) {
	case string:
		return s, nil
	case fmt.Stringer:
		return s.String(), nil
	case int, int32, int64, float64, bool:
		return fmt.Sprint(s), nil
	}
	return "", domain.NewMalformedResponseFieldError(path, fmt.Errorf("expected a scalar, got %T", v))
}

// Int returns the leaf at path as an integer.
func (t Tree) Int(path string) (int, error) {
	v, ok := t.Lookup(path)
	if !ok {
		return 0, domain.NewMissingResponseFieldError(path)
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, domain.NewMalformedResponseFieldError(path, err)
		}
		return i, nil
	}
	return 0, domain.NewMalformedResponseFieldError(path, fmt.Errorf("expected a number, got %T", v))
}

// Flag returns the leaf at path as a 0/1 style boolean: any non-zero
// integer is true.
func (t Tree) Flag(path string) (bool, error) {
	v, ok := t.Lookup(path)
	if !ok {
		return false, domain.NewMissingResponseFieldError(path)
	}
	if b, ok := v.(bool); ok {
		return b, nil
	}
	n, err := t.Int(path)
	if err != nil {
		return false, err
	}
	return n != 0, nil
}

// List returns the element(s) at path. A single element decodes as a map, a
// repeated one as a slice; both come back as a slice of trees.
func (t Tree) List(path string) ([]Tree, error) {
	v, ok := t.Lookup(path)
	if !ok {
		return nil, domain.NewMissingResponseFieldError(path)
	}
	if m, ok := asMap(v); ok {
		return []Tree{Tree(m)}, nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil, domain.NewMalformedResponseFieldError(path, fmt.Errorf("expected a list, got %T", v))
	}
	out := make([]Tree, 0, len(items))
	for i, item := range items {
		m, ok := asMap(item)
		if !ok {
			return nil, domain.NewMalformedResponseFieldError(fmt.Sprintf("%s[%d]", path, i), fmt.Errorf("expected a structure, got %T", item))
		}
		out = append(out, Tree(m))
	}
	return out, nil
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Tree:
		return map[string]any(m), true
	}
	return nil, false
}

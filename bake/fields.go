package bake

import (
	"cmp"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"
)

// FieldTable matches JSON property names to struct members. Names are
// matched exactly first and case-insensitively otherwise; the first member
// in declaration order wins a case-insensitive tie.
type FieldTable struct {
	names []string
	exact map[string]int
}

func NewFieldTable(names ...string) *FieldTable {
	t := &FieldTable{
		names: names,
		exact: make(map[string]int, len(names)),
	}
	for i, n := range names {
		if _, dup := t.exact[n]; !dup {
			t.exact[n] = i
		}
	}
	return t
}

// Match returns the index of the member for name, or -1.
func (t *FieldTable) Match(name string) int {
	if i, ok := t.exact[name]; ok {
		return i
	}
	for i, n := range t.names {
		if strings.EqualFold(n, name) {
			return i
		}
	}
	return -1
}

// Value returns a pointer to the T held in v, which may be a T or a *T. A
// nil *T yields a nil pointer and no error.
func Value[T any](v any) (*T, error) {
	switch x := v.(type) {
	case *T:
		return x, nil
	case T:
		return &x, nil
	}
	return nil, &MarshalError{Message: fmt.Sprintf("cannot encode %T as %v", v, reflect.TypeFor[T]())}
}

// Target returns v as a non-nil *T.
func Target[T any](v any) (*T, error) {
	x, ok := v.(*T)
	if !ok || x == nil {
		return nil, &UnmarshalError{Message: fmt.Sprintf("cannot decode into %T, need non-nil *%v", v, reflect.TypeFor[T]())}
	}
	return x, nil
}

// SortedKeys returns the keys of m in ascending order.
func SortedKeys[M ~map[K]V, K cmp.Ordered, V any](m M) []K {
	return slices.Sorted(maps.Keys(m))
}

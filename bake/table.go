package bake

import (
	"reflect"
	"sort"
)

// ModuleTable maps the types of one package to their converters. It is
// built by a Registry and never modified once published.
type ModuleTable struct {
	path  string
	convs map[reflect.Type]Converter
}

func newModuleTable(path string, convs []Converter) *ModuleTable {
	t := &ModuleTable{
		path:  path,
		convs: make(map[reflect.Type]Converter, len(convs)),
	}
	for _, c := range convs {
		if c == nil {
			continue
		}
		typ := c.Type()
		if typ == nil {
			continue
		}
		if _, dup := t.convs[typ]; dup {
			continue
		}
		t.convs[typ] = c
	}
	return t
}

// Path returns the import path of the package.
func (t *ModuleTable) Path() string { return t.path }

// Len returns the number of converters.
func (t *ModuleTable) Len() int { return len(t.convs) }

// Lookup returns the converter for typ.
func (t *ModuleTable) Lookup(typ reflect.Type) (Converter, bool) {
	c, ok := t.convs[typ]
	return c, ok
}

// Types returns the converted types ordered by their string form.
func (t *ModuleTable) Types() []reflect.Type {
	res := make([]reflect.Type, 0, len(t.convs))
	for typ := range t.convs {
		res = append(res, typ)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].String() < res[j].String() })
	return res
}

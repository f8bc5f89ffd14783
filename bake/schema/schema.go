package schema

import (
	"fmt"
	"go/token"
	"go/types"
	"strings"
)

// NullHandling controls whether nil members are written.
type NullHandling int

const (
	NullInclude NullHandling = iota
	NullIgnore
)

func (h NullHandling) String() string {
	if h == NullIgnore {
		return "ignore"
	}
	return "include"
}

// DefaultHandling controls how members equal to their default value are
// written and read. The numeric values are stable.
type DefaultHandling int

const (
	DefaultInclude DefaultHandling = iota
	// DefaultIgnore omits the member when it equals its default, and
	// discards decoded values equal to the default.
	DefaultIgnore
	// DefaultPopulate assigns the default to the member before decoding, so
	// that absent members take the default.
	DefaultPopulate
	// DefaultIgnoreAndPopulate is accepted and validated but currently
	// behaves like DefaultInclude.
	DefaultIgnoreAndPopulate
)

func (h DefaultHandling) String() string {
	switch h {
	case DefaultIgnore:
		return "ignore"
	case DefaultPopulate:
		return "populate"
	case DefaultIgnoreAndPopulate:
		return "ignoreandpopulate"
	default:
		return "include"
	}
}

func parseNullHandling(s string) (NullHandling, bool) {
	switch strings.ToLower(s) {
	case "include":
		return NullInclude, true
	case "ignore":
		return NullIgnore, true
	}
	return 0, false
}

func parseDefaultHandling(s string) (DefaultHandling, bool) {
	switch strings.ToLower(s) {
	case "include":
		return DefaultInclude, true
	case "ignore":
		return DefaultIgnore, true
	case "populate":
		return DefaultPopulate, true
	case "ignoreandpopulate":
		return DefaultIgnoreAndPopulate, true
	}
	return 0, false
}

// MemberSchema describes one serialized struct field.
type MemberSchema struct {
	MemberName   string
	WireName     string
	DeclaredType types.Type
	Kind         Kind

	// IsCollection is set for slices and maps; ElementType is the slice
	// element or map value type and KeyType the map key type.
	IsCollection bool
	IsMap        bool
	ElementType  types.Type
	KeyType      types.Type

	// HasNestedConverter is set when the declared type, or the element type
	// of a collection, is (a pointer to) a struct marked for generation.
	// Nested is that struct.
	HasNestedConverter bool
	Nested             *types.Named

	NullHandling    NullHandling
	DefaultHandling DefaultHandling
	// DefaultValue is a Go constant expression; empty means the zero value.
	DefaultValue string

	Pos token.Position
}

// TypeSchema is the ordered list of serialized members of a struct marked
// for generation.
type TypeSchema struct {
	Name    string
	PkgPath string
	Type    *types.Named
	Pos     token.Position
	Members []*MemberSchema
}

// FieldDescriptor is a struct field as declared.
type FieldDescriptor struct {
	Name     string
	Type     types.Type
	Tag      string // whole struct tag
	Pos      token.Position
	Embedded bool
	Exported bool
}

// TypeDescriptor is a named struct type as declared.
type TypeDescriptor struct {
	Name    string
	PkgPath string
	Type    *types.Named
	Pos     token.Position
	Fields  []FieldDescriptor
}

// MarkerSet reports whether a named type is marked for generation.
type MarkerSet interface {
	Marked(n *types.Named) bool
}

// MarkerFunc adapts a function to a MarkerSet.
type MarkerFunc func(n *types.Named) bool

func (f MarkerFunc) Marked(n *types.Named) bool { return f(n) }

// Describe builds the descriptor of the named struct type obj.
func Describe(obj *types.TypeName, fset *token.FileSet) (*TypeDescriptor, error) {
	pos := fset.Position(obj.Pos())
	named, ok := obj.Type().(*types.Named)
	if !ok || obj.IsAlias() {
		return nil, &ConfigurationError{Type: obj.Name(), Message: "not a defined type", Pos: pos}
	}
	if named.TypeParams().Len() > 0 {
		return nil, &ConfigurationError{Type: obj.Name(), Message: "generic types are not supported", Pos: pos}
	}
	st, ok := named.Underlying().(*types.Struct)
	if !ok {
		return nil, &ConfigurationError{Type: obj.Name(), Message: fmt.Sprintf("not a struct type (%s)", named.Underlying()), Pos: pos}
	}
	desc := &TypeDescriptor{
		Name: obj.Name(),
		Type: named,
		Pos:  pos,
	}
	if obj.Pkg() != nil {
		desc.PkgPath = obj.Pkg().Path()
	}
	for i := 0; i < st.NumFields(); i++ {
		f := st.Field(i)
		desc.Fields = append(desc.Fields, FieldDescriptor{
			Name:     f.Name(),
			Type:     f.Type(),
			Tag:      st.Tag(i),
			Pos:      fset.Position(f.Pos()),
			Embedded: f.Embedded(),
			Exported: f.Exported(),
		})
	}
	return desc, nil
}

package schema

import "go/types"

// Kind classifies a Go type by how its values are written to JSON.
type Kind int

const (
	// KindOther is any type left to the JSON library.
	KindOther Kind = iota
	KindBool
	KindInt
	KindUint
	KindFloat
	KindString
	// KindTime is time.Time, written as an RFC 3339 string.
	KindTime
	// KindBytes is a byte slice, written as base64.
	KindBytes
	KindPointer
	KindSlice
	KindMap
	KindInterface
	KindStruct
)

var kindNames = [...]string{
	KindOther:     "other",
	KindBool:      "bool",
	KindInt:       "int",
	KindUint:      "uint",
	KindFloat:     "float",
	KindString:    "string",
	KindTime:      "time",
	KindBytes:     "bytes",
	KindPointer:   "pointer",
	KindSlice:     "slice",
	KindMap:       "map",
	KindInterface: "interface",
	KindStruct:    "struct",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Scalar reports whether k is a bool, number or string kind.
func (k Kind) Scalar() bool {
	return k >= KindBool && k <= KindString
}

// Nillable reports whether values of kind k can be nil.
func (k Kind) Nillable() bool {
	switch k {
	case KindBytes, KindPointer, KindSlice, KindMap, KindInterface:
		return true
	}
	return false
}

// KindOf classifies t. Types with their own JSON or text marshaling methods
// are KindOther, except time.Time.
func KindOf(t types.Type) Kind {
	if IsTime(t) {
		return KindTime
	}
	if hasCustomMarshaling(t) {
		return KindOther
	}
	switch u := t.Underlying().(type) {
	case *types.Basic:
		info := u.Info()
		switch {
		case info&types.IsBoolean != 0:
			return KindBool
		case info&types.IsInteger != 0 && info&types.IsUnsigned != 0:
			if u.Kind() == types.UnsafePointer {
				return KindOther
			}
			return KindUint
		case info&types.IsInteger != 0:
			return KindInt
		case info&types.IsFloat != 0:
			return KindFloat
		case info&types.IsString != 0:
			return KindString
		}
	case *types.Slice:
		if types.Identical(u.Elem(), types.Typ[types.Byte]) {
			return KindBytes
		}
		return KindSlice
	case *types.Map:
		return KindMap
	case *types.Pointer:
		return KindPointer
	case *types.Interface:
		return KindInterface
	case *types.Struct:
		return KindStruct
	}
	return KindOther
}

// Bits returns the size of an integer or float type in bits, or 0 for the
// platform-sized int, uint and uintptr.
func Bits(t types.Type) int {
	b, ok := t.Underlying().(*types.Basic)
	if !ok {
		return 0
	}
	switch b.Kind() {
	case types.Int8, types.Uint8:
		return 8
	case types.Int16, types.Uint16:
		return 16
	case types.Int32, types.Uint32, types.Float32:
		return 32
	case types.Int64, types.Uint64, types.Float64:
		return 64
	}
	return 0
}

// IsTime reports whether t is time.Time.
func IsTime(t types.Type) bool {
	n, ok := t.(*types.Named)
	if !ok {
		return false
	}
	obj := n.Obj()
	return obj.Pkg() != nil && obj.Pkg().Path() == "time" && obj.Name() == "Time"
}

var marshalMethods = []string{
	"MarshalJSON", "UnmarshalJSON",
	"MarshalJSONTo", "UnmarshalJSONFrom",
	"MarshalText", "UnmarshalText",
}

func hasCustomMarshaling(t types.Type) bool {
	if _, ok := t.(*types.Named); !ok {
		return false
	}
	if _, ok := t.Underlying().(*types.Interface); ok {
		return false
	}
	ms := types.NewMethodSet(types.NewPointer(t))
	for _, name := range marshalMethods {
		if sel := ms.Lookup(nil, name); sel != nil {
			return true
		}
	}
	return false
}

// Deref returns the element type of a pointer type, or t.
func Deref(t types.Type) types.Type {
	if p, ok := t.Underlying().(*types.Pointer); ok {
		return p.Elem()
	}
	return t
}

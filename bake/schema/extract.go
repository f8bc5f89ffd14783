package schema

import (
	"errors"
	"fmt"
	"go/types"
	"reflect"
	"sort"
	"strconv"
)

// Extract computes the schema of a described type. Fields that are blank,
// unexported or tagged `jsonbake:"-"` (or "omit") are not members; the rest
// are members in declaration order.
//
// All configuration problems of the type are reported together, as
// *ConfigurationError values joined with errors.Join.
func Extract(desc *TypeDescriptor, markers MarkerSet) (*TypeSchema, error) {
	ts := &TypeSchema{
		Name:    desc.Name,
		PkgPath: desc.PkgPath,
		Type:    desc.Type,
		Pos:     desc.Pos,
	}
	var errs []error
	wireNames := make(map[string]string)
	for i := range desc.Fields {
		f := &desc.Fields[i]
		if f.Name == "_" || !f.Exported {
			continue
		}
		m, skip, err := extractMember(desc, f, markers)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if skip {
			continue
		}
		if prev, dup := wireNames[m.WireName]; dup {
			errs = append(errs, &ConfigurationError{
				Type:    desc.Name,
				Member:  m.MemberName,
				Message: fmt.Sprintf("wire name %q already used by %s", m.WireName, prev),
				Pos:     m.Pos,
			})
			continue
		}
		wireNames[m.WireName] = m.MemberName
		ts.Members = append(ts.Members, m)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return ts, nil
}

func extractMember(desc *TypeDescriptor, f *FieldDescriptor, markers MarkerSet) (*MemberSchema, bool, error) {
	confErr := func(msg string, params ...string) error {
		sort.Strings(params)
		return &ConfigurationError{
			Type:    desc.Name,
			Member:  f.Name,
			Params:  params,
			Message: msg,
			Pos:     f.Pos,
		}
	}

	raw, _ := reflect.StructTag(f.Tag).Lookup(TagKey)
	if raw == "-" {
		return nil, true, nil
	}
	params, err := ParseStructTag(raw)
	if err != nil {
		return nil, false, confErr(err.Error())
	}
	if _, omit := params[ParamOmit]; omit {
		return nil, true, nil
	}
	var unknown []string
	for k := range params {
		if !knownParams[k] {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		return nil, false, confErr("unknown tag parameters", unknown...)
	}

	m := &MemberSchema{
		MemberName:   f.Name,
		WireName:     f.Name,
		DeclaredType: f.Type,
		Kind:         KindOf(f.Type),
		Pos:          f.Pos,
	}
	if name, ok := params[ParamName]; ok {
		if name == "" {
			return nil, false, confErr("empty wire name", ParamName)
		}
		m.WireName = name
	}
	if v, ok := params[ParamNull]; ok {
		h, ok := parseNullHandling(v)
		if !ok {
			return nil, false, confErr(fmt.Sprintf("invalid null handling %q", v), ParamNull)
		}
		m.NullHandling = h
	}
	if v, ok := params[ParamDefault]; ok {
		h, ok := parseDefaultHandling(v)
		if !ok {
			return nil, false, confErr(fmt.Sprintf("invalid default handling %q", v), ParamDefault)
		}
		m.DefaultHandling = h
	}

	switch u := f.Type.Underlying().(type) {
	case *types.Slice:
		if m.Kind == KindSlice {
			m.IsCollection = true
			m.ElementType = u.Elem()
		}
	case *types.Map:
		if m.Kind == KindMap {
			m.IsCollection = true
			m.IsMap = true
			m.KeyType = u.Key()
			m.ElementType = u.Elem()
		}
	}
	target := f.Type
	if m.IsCollection {
		target = m.ElementType
	}
	if n := markedStruct(Deref(target), markers); n != nil {
		m.HasNestedConverter = true
		m.Nested = n
	}

	if lit, ok := params[ParamValue]; ok {
		v, err := defaultLiteral(f.Type, m.Kind, lit)
		if err != nil {
			return nil, false, confErr(err.Error(), ParamValue)
		}
		m.DefaultValue = v
	} else if m.DefaultHandling != DefaultInclude && !hasZeroDefault(m.Kind, f.Type) {
		return nil, false, confErr(fmt.Sprintf("default handling %s needs a comparable default, %s has none", m.DefaultHandling, f.Type), ParamDefault)
	}
	return m, false, nil
}

func markedStruct(t types.Type, markers MarkerSet) *types.Named {
	n, ok := t.(*types.Named)
	if !ok || markers == nil || n.TypeArgs().Len() > 0 {
		return nil
	}
	if _, ok := n.Underlying().(*types.Struct); !ok {
		return nil
	}
	if !markers.Marked(n) {
		return nil
	}
	return n
}

// defaultLiteral validates lit against a member type and renders it as a Go
// constant expression.
func defaultLiteral(t types.Type, k Kind, lit string) (string, error) {
	bits := Bits(t)
	switch k {
	case KindBool:
		b, err := strconv.ParseBool(lit)
		if err != nil {
			return "", fmt.Errorf("invalid bool default %q", lit)
		}
		return strconv.FormatBool(b), nil
	case KindInt:
		n, err := strconv.ParseInt(lit, 0, bits)
		if err != nil {
			return "", fmt.Errorf("invalid %s default %q", t, lit)
		}
		return strconv.FormatInt(n, 10), nil
	case KindUint:
		n, err := strconv.ParseUint(lit, 0, bits)
		if err != nil {
			return "", fmt.Errorf("invalid %s default %q", t, lit)
		}
		return strconv.FormatUint(n, 10), nil
	case KindFloat:
		if bits == 0 {
			bits = 64
		}
		f, err := strconv.ParseFloat(lit, bits)
		if err != nil {
			return "", fmt.Errorf("invalid %s default %q", t, lit)
		}
		s := strconv.FormatFloat(f, 'g', -1, bits)
		return s, nil
	case KindString:
		return strconv.Quote(lit), nil
	}
	return "", fmt.Errorf("default value not supported for %s", t)
}

// hasZeroDefault reports whether values of t can be compared against the
// zero value of t.
func hasZeroDefault(k Kind, t types.Type) bool {
	switch {
	case k.Scalar(), k.Nillable(), k == KindTime:
		return true
	case k == KindStruct:
		return types.Comparable(t)
	}
	return false
}

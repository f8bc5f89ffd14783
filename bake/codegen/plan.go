package codegen

import (
	"go/types"

	"github.com/signadot/jsonbake/bake/schema"
)

type planKind int

const (
	planFallback planKind = iota
	planScalar
	planTime
	planBytes
	planNested
	planPointer
	planSlice
	planMap
)

// plan says how a value of one Go type is written and read.
type plan struct {
	kind   planKind
	typ    types.Type
	scalar schema.Kind
	bits   int
	elem   *plan
	key    *plan
	conv   string // converter field, for planNested
}

// planFor chooses the plan for a value of type t belonging to member m.
// Collections are only planned at the top level of a member; nested
// collections are left to the fallback.
func (g *typeGen) planFor(t types.Type, m *schema.MemberSchema, top bool) *plan {
	k := schema.KindOf(t)
	p := &plan{typ: t, scalar: k, bits: schema.Bits(t)}
	switch {
	case k.Scalar():
		p.kind = planScalar
	case k == schema.KindTime:
		p.kind = planTime
	case k == schema.KindBytes:
		p.kind = planBytes
	case k == schema.KindStruct && m.Nested != nil && types.Identical(t, m.Nested):
		p.kind = planNested
		p.conv = g.nestedField(m.Nested)
	case k == schema.KindPointer:
		elem := g.planFor(t.Underlying().(*types.Pointer).Elem(), m, false)
		switch elem.kind {
		case planScalar, planTime, planBytes, planNested:
			p.kind = planPointer
			p.elem = elem
		}
	case k == schema.KindSlice && top:
		p.kind = planSlice
		p.elem = g.planFor(t.Underlying().(*types.Slice).Elem(), m, false)
	case k == schema.KindMap && top:
		mt := t.Underlying().(*types.Map)
		key := g.planFor(mt.Key(), m, false)
		if key.kind == planScalar && (key.scalar == schema.KindString || key.scalar == schema.KindInt || key.scalar == schema.KindUint) {
			p.kind = planMap
			p.key = key
			p.elem = g.planFor(mt.Elem(), m, false)
		}
	}
	return p
}

func isBasic(t types.Type, k types.BasicKind) bool {
	b, ok := t.(*types.Basic)
	return ok && b.Kind() == k
}

package codegen

import (
	"bytes"
	"fmt"
	"go/format"
	"go/types"
	"strconv"
	"strings"
	"unicode"

	"github.com/signadot/jsonbake/bake/schema"
)

// Header is the first line of every generated file.
const Header = "// Code generated by jsonbake-gen. DO NOT EDIT."

// PackageSchemas holds the schemas of the marked types of one package.
type PackageSchemas struct {
	Name  string // package name
	Path  string // import path
	Dir   string
	Types []*schema.TypeSchema
}

// ModulePath returns the path under which the package registers its
// converters: the package path as reported by reflect.
func (ps *PackageSchemas) ModulePath() string {
	if ps.Name == "main" {
		return "main"
	}
	return ps.Path
}

// Generate returns the formatted source of the converters of ps.
func Generate(ps *PackageSchemas) ([]byte, error) {
	imports := newImportSet(ps.Path)
	imports.use("reflect", "reflect")
	imports.use(jsontextPath, "jsontext")
	imports.use(bakePath, "bake")

	var body bytes.Buffer
	var convs []string
	for _, ts := range ps.Types {
		g := newTypeGen(ts, imports)
		g.emit()
		body.Write(g.buf.Bytes())
		convs = append(convs, g.convName)
	}

	fmt.Fprintf(&body, "func init() {\n")
	fmt.Fprintf(&body, "bake.Register(bake.Module{\n")
	fmt.Fprintf(&body, "Path: %q,\n", ps.ModulePath())
	fmt.Fprintf(&body, "Converters: func() []bake.Converter {\n")
	fmt.Fprintf(&body, "return []bake.Converter{\n")
	for _, c := range convs {
		fmt.Fprintf(&body, "&%s{},\n", c)
	}
	fmt.Fprintf(&body, "}\n},\n})\n}\n")

	var src bytes.Buffer
	fmt.Fprintf(&src, "%s\n\npackage %s\n\n", Header, ps.Name)
	src.WriteString(imports.decl())
	src.WriteString("\n")
	src.Write(body.Bytes())

	out, err := format.Source(src.Bytes())
	if err != nil {
		return src.Bytes(), fmt.Errorf("formatting generated code for %s: %w", ps.Path, err)
	}
	return out, nil
}

// typeGen emits the converter of one type.
type typeGen struct {
	ts       *schema.TypeSchema
	imports  *importSet
	buf      bytes.Buffer
	convName string
	fields   string
	typeName string

	plans      []*plan
	nested     []nestedRef
	nestedName map[string]string // type string -> field
	tmp        int
}

type nestedRef struct {
	field string
	typ   string
}

func newTypeGen(ts *schema.TypeSchema, imports *importSet) *typeGen {
	g := &typeGen{
		ts:         ts,
		imports:    imports,
		convName:   "baked" + ts.Name + "Converter",
		fields:     "baked" + ts.Name + "Fields",
		typeName:   ts.Name,
		nestedName: make(map[string]string),
	}
	for _, m := range ts.Members {
		g.plans = append(g.plans, g.planFor(m.DeclaredType, m, true))
	}
	return g
}

func (g *typeGen) p(format string, args ...any) {
	fmt.Fprintf(&g.buf, format, args...)
	g.buf.WriteByte('\n')
}

func (g *typeGen) typeString(t types.Type) string {
	return types.TypeString(t, g.imports.qualifier)
}

func (g *typeGen) temp() string {
	name := "v" + strconv.Itoa(g.tmp)
	g.tmp++
	return name
}

func (g *typeGen) nestedField(n *types.Named) string {
	ts := g.typeString(n)
	if f, ok := g.nestedName[ts]; ok {
		return f
	}
	base := n.Obj().Name()
	if pkg := n.Obj().Pkg(); pkg != nil && pkg.Path() != g.ts.PkgPath {
		base = g.imports.qualifier(pkg) + base
	}
	field := lowerFirst(base) + "Conv"
	for i := 2; g.fieldTaken(field); i++ {
		field = lowerFirst(base) + "Conv" + strconv.Itoa(i)
	}
	g.nestedName[ts] = field
	g.nested = append(g.nested, nestedRef{field: field, typ: ts})
	return field
}

func (g *typeGen) fieldTaken(name string) bool {
	for _, r := range g.nested {
		if r.field == name {
			return true
		}
	}
	return false
}

func (g *typeGen) emit() {
	if len(g.ts.Members) > 1 {
		var names []string
		for _, m := range g.ts.Members {
			names = append(names, strconv.Quote(m.WireName))
		}
		g.p("var %s = bake.NewFieldTable(%s)\n", g.fields, strings.Join(names, ", "))
	}

	if len(g.nested) == 0 {
		g.p("type %s struct{}\n", g.convName)
	} else {
		g.p("type %s struct {", g.convName)
		for _, r := range g.nested {
			g.p("%s bake.Converter", r.field)
		}
		g.p("}\n")
	}

	g.p("func (c *%s) Type() reflect.Type { return reflect.TypeFor[%s]() }\n", g.convName, g.typeName)

	if len(g.nested) == 0 {
		g.p("func (c *%s) Init(bake.Resolver) {}\n", g.convName)
	} else {
		g.p("func (c *%s) Init(r bake.Resolver) {", g.convName)
		for _, r := range g.nested {
			g.p("c.%s = r.Resolve(reflect.TypeFor[%s]())", r.field, r.typ)
		}
		g.p("}\n")
	}

	g.emitEncode()
	g.emitDecode()
}

func (g *typeGen) emitEncode() {
	g.tmp = 0
	g.p("func (c *%s) Encode(enc *jsontext.Encoder, v any, fb bake.Fallback) error {", g.convName)
	g.p("x, err := bake.Value[%s](v)", g.typeName)
	g.p("if err != nil {\nreturn err\n}")
	g.p("w := bake.NewWriter(enc)")
	g.p("if x == nil {\nw.Null()\nreturn w.Err()\n}")
	g.p("w.BeginObject()")
	for i, m := range g.ts.Members {
		expr := "x." + m.MemberName
		conds := emitConditions(m, expr, g.typeString(m.DeclaredType))
		if len(conds) > 0 {
			g.p("if %s {", strings.Join(conds, " && "))
		}
		g.p("w.Name(%q)", m.WireName)
		g.encode(g.plans[i], expr, true)
		if len(conds) > 0 {
			g.p("}")
		}
	}
	g.p("w.EndObject()")
	g.p("return w.Err()")
	g.p("}\n")
}

// emitConditions returns the conditions under which member m, of the Go
// type typ, is written.
func emitConditions(m *schema.MemberSchema, expr, typ string) []string {
	var conds []string
	if m.NullHandling == schema.NullIgnore && m.Kind.Nillable() {
		conds = append(conds, expr+" != nil")
	}
	if m.DefaultHandling == schema.DefaultIgnore {
		c := nonDefault(m, expr, typ)
		if len(conds) == 0 || conds[0] != c {
			conds = append(conds, c)
		}
	}
	return conds
}

// nonDefault returns an expression that is true when expr differs from the
// default of m.
func nonDefault(m *schema.MemberSchema, expr, typ string) string {
	lit := m.DefaultValue
	switch {
	case m.Kind == schema.KindBool:
		if lit == "true" {
			return "!" + expr
		}
		return expr
	case m.Kind.Scalar():
		if lit == "" {
			lit = "0"
			if m.Kind == schema.KindString {
				lit = `""`
			}
		}
		return expr + " != " + lit
	case m.Kind == schema.KindTime:
		return "!" + expr + ".IsZero()"
	case m.Kind == schema.KindStruct:
		return expr + " != (" + typ + "{})"
	}
	return expr + " != nil"
}

func (g *typeGen) encode(p *plan, expr string, addressable bool) {
	switch p.kind {
	case planScalar:
		g.p("%s", g.writeScalar(p, expr))
	case planTime:
		g.p("w.Time(%s)", expr)
	case planBytes:
		if isSlice(p.typ) {
			g.p("w.Bytes(%s)", expr)
		} else {
			g.p("w.Bytes([]byte(%s))", expr)
		}
	case planNested:
		if addressable {
			g.p("w.Convert(c.%s, &%s, fb)", p.conv, expr)
		} else {
			g.p("w.Convert(c.%s, %s, fb)", p.conv, expr)
		}
	case planPointer:
		if p.elem.kind == planNested {
			g.p("w.Convert(c.%s, %s, fb)", p.elem.conv, expr)
			return
		}
		g.p("if %s == nil {\nw.Null()\n} else {", expr)
		g.encode(p.elem, "*"+expr, true)
		g.p("}")
	case planSlice:
		g.p("if %s == nil {\nw.Null()\n} else {", expr)
		g.p("w.BeginArray()")
		g.p("for i := range %s {", expr)
		g.encode(p.elem, expr+"[i]", true)
		g.p("}")
		g.p("w.EndArray()")
		g.p("}")
	case planMap:
		g.p("if %s == nil {\nw.Null()\n} else {", expr)
		g.p("w.BeginObject()")
		g.p("for _, k := range bake.SortedKeys(%s) {", expr)
		switch p.key.scalar {
		case schema.KindString:
			if isBasic(p.key.typ, types.String) {
				g.p("w.Name(k)")
			} else {
				g.p("w.Name(string(k))")
			}
		case schema.KindInt:
			g.p("w.IntName(int64(k))")
		case schema.KindUint:
			g.p("w.UintName(uint64(k))")
		}
		g.encode(p.elem, expr+"[k]", false)
		g.p("}")
		g.p("w.EndObject()")
		g.p("}")
	default:
		if addressable {
			g.p("w.Fallback(&%s, fb)", expr)
		} else {
			g.p("w.Fallback(%s, fb)", expr)
		}
	}
}

func (g *typeGen) writeScalar(p *plan, expr string) string {
	switch p.scalar {
	case schema.KindBool:
		if isBasic(p.typ, types.Bool) {
			return "w.Bool(" + expr + ")"
		}
		return "w.Bool(bool(" + expr + "))"
	case schema.KindInt:
		if isBasic(p.typ, types.Int64) {
			return "w.Int(" + expr + ")"
		}
		return "w.Int(int64(" + expr + "))"
	case schema.KindUint:
		if isBasic(p.typ, types.Uint64) {
			return "w.Uint(" + expr + ")"
		}
		return "w.Uint(uint64(" + expr + "))"
	case schema.KindFloat:
		bits := floatBits(p)
		if isBasic(p.typ, types.Float64) {
			return fmt.Sprintf("w.Float(%s, %d)", expr, bits)
		}
		return fmt.Sprintf("w.Float(float64(%s), %d)", expr, bits)
	default:
		if isBasic(p.typ, types.String) {
			return "w.String(" + expr + ")"
		}
		return "w.String(string(" + expr + "))"
	}
}

func floatBits(p *plan) int {
	if p.bits == 32 {
		return 32
	}
	return 64
}

// readScalar returns an expression reading a value of the scalar plan p.
func (g *typeGen) readScalar(p *plan) string {
	var call string
	var exact bool
	switch p.scalar {
	case schema.KindBool:
		call, exact = "r.Bool()", isBasic(p.typ, types.Bool)
	case schema.KindInt:
		call, exact = fmt.Sprintf("r.Int(%d)", p.bits), isBasic(p.typ, types.Int64)
	case schema.KindUint:
		call, exact = fmt.Sprintf("r.Uint(%d)", p.bits), isBasic(p.typ, types.Uint64)
	case schema.KindFloat:
		call, exact = fmt.Sprintf("r.Float(%d)", floatBits(p)), isBasic(p.typ, types.Float64)
	default:
		call, exact = "r.String()", isBasic(p.typ, types.String)
	}
	if exact {
		return call
	}
	return g.typeString(p.typ) + "(" + call + ")"
}

func (g *typeGen) emitDecode() {
	g.tmp = 0
	g.p("func (c *%s) Decode(dec *jsontext.Decoder, v any, fb bake.Fallback) error {", g.convName)
	g.p("x, err := bake.Target[%s](v)", g.typeName)
	g.p("if err != nil {\nreturn err\n}")
	g.p("r := bake.NewReader(dec)")
	g.p("if r.Null() {\n*x = %s{}\nreturn r.Err()\n}", g.typeName)
	g.p("*x = %s{}", g.typeName)
	for _, m := range g.ts.Members {
		if m.DefaultHandling == schema.DefaultPopulate && m.DefaultValue != "" {
			g.p("x.%s = %s", m.MemberName, m.DefaultValue)
		}
	}
	g.p("r.BeginObject()")
	g.p("for r.More() {")
	switch len(g.ts.Members) {
	case 0:
		g.p("r.Name()")
		g.p("r.Skip()")
	case 1:
		w := strconv.Quote(g.ts.Members[0].WireName)
		g.p("if name := r.Name(); name == %s || strings.EqualFold(name, %s) {", w, w)
		g.imports.use("strings", "strings")
		g.decodeMember(0)
		g.p("} else {\nr.Skip()\n}")
	default:
		g.p("switch %s.Match(r.Name()) {", g.fields)
		for i := range g.ts.Members {
			g.p("case %d:", i)
			g.decodeMember(i)
		}
		g.p("default:\nr.Skip()\n}")
	}
	g.p("}")
	g.p("r.EndObject()")
	g.p("return r.Err()")
	g.p("}\n")
}

func (g *typeGen) decodeMember(i int) {
	m, p := g.ts.Members[i], g.plans[i]
	dst := "x." + m.MemberName
	if m.DefaultHandling != schema.DefaultIgnore {
		g.decode(p, dst)
		return
	}
	tmp, typ := g.temp(), g.typeString(m.DeclaredType)
	g.p("var %s %s", tmp, typ)
	g.decode(p, tmp)
	g.p("if %s {\n%s = %s\n}", nonDefault(m, tmp, typ), dst, tmp)
}

func (g *typeGen) decode(p *plan, dst string) {
	switch p.kind {
	case planScalar:
		g.p("%s = %s", dst, g.readScalar(p))
	case planTime:
		g.p("%s = r.Time()", dst)
	case planBytes:
		if isSlice(p.typ) {
			g.p("%s = r.Bytes()", dst)
		} else {
			g.p("%s = %s(r.Bytes())", dst, g.typeString(p.typ))
		}
	case planNested:
		g.p("r.Convert(c.%s, &%s, fb)", p.conv, dst)
	case planPointer:
		tmp := g.temp()
		g.p("if r.Null() {\n%s = nil\n} else {", dst)
		g.p("%s := new(%s)", tmp, g.typeString(p.elem.typ))
		if p.elem.kind == planNested {
			g.p("r.Convert(c.%s, %s, fb)", p.elem.conv, tmp)
		} else {
			g.decode(p.elem, "*"+tmp)
		}
		g.p("%s = %s", dst, tmp)
		g.p("}")
	case planSlice:
		tmp, elem := g.temp(), g.temp()
		g.p("if r.Null() {\n%s = nil\n} else {", dst)
		g.p("%s := %s{}", tmp, g.typeString(p.typ))
		g.p("r.BeginArray()")
		g.p("for r.More() {")
		g.p("var %s %s", elem, g.typeString(p.elem.typ))
		g.decode(p.elem, elem)
		g.p("%s = append(%s, %s)", tmp, tmp, elem)
		g.p("}")
		g.p("r.EndArray()")
		g.p("%s = %s", dst, tmp)
		g.p("}")
	case planMap:
		tmp, elem := g.temp(), g.temp()
		g.p("if r.Null() {\n%s = nil\n} else {", dst)
		g.p("%s := %s{}", tmp, g.typeString(p.typ))
		g.p("r.BeginObject()")
		g.p("for r.More() {")
		g.p("k := %s", g.readKey(p.key))
		g.p("var %s %s", elem, g.typeString(p.elem.typ))
		g.decode(p.elem, elem)
		g.p("%s[k] = %s", tmp, elem)
		g.p("}")
		g.p("r.EndObject()")
		g.p("%s = %s", dst, tmp)
		g.p("}")
	default:
		g.p("r.Fallback(&%s, fb)", dst)
	}
}

func (g *typeGen) readKey(p *plan) string {
	var call string
	var exact bool
	switch p.scalar {
	case schema.KindInt:
		call, exact = fmt.Sprintf("r.IntName(%d)", p.bits), isBasic(p.typ, types.Int64)
	case schema.KindUint:
		call, exact = fmt.Sprintf("r.UintName(%d)", p.bits), isBasic(p.typ, types.Uint64)
	default:
		call, exact = "r.Name()", isBasic(p.typ, types.String)
	}
	if exact {
		return call
	}
	return g.typeString(p.typ) + "(" + call + ")"
}

func isSlice(t types.Type) bool {
	_, ok := t.(*types.Slice)
	return ok
}

// lowerFirst lower-cases the leading upper-case run of s, keeping the last
// letter of the run when it starts a new word: URLList -> urlList.
func lowerFirst(s string) string {
	rs := []rune(s)
	for i := range rs {
		if !unicode.IsUpper(rs[i]) {
			if i > 1 {
				rs[i-1] = unicode.ToUpper(rs[i-1])
			}
			break
		}
		rs[i] = unicode.ToLower(rs[i])
	}
	return string(rs)
}

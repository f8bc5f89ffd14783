package codegen

import (
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"regexp"
	"slices"
	"strings"
	"testing"

	"github.com/signadot/jsonbake/bake/schema"
)

const modelSrc = `package m

import "time"

type Level int8

type Name string

type Line struct {
	SKU string
}

type Order struct {
	ID      string ` + "`jsonbake:\"name=id\"`" + `
	Lines   []Line ` + "`jsonbake:\"name=lines\"`" + `
	Ptrs    []*Line
	ByName  map[Name]Line
	Counts  map[string]int
	ByLevel map[Level]bool
	Note    *string ` + "`jsonbake:\"null=ignore\"`" + `
	Count   int ` + "`jsonbake:\"default=ignore,value=3\"`" + `
	Enabled bool ` + "`jsonbake:\"default=populate,value=true\"`" + `
	Lvl     Level
	Ratio   float32
	At      time.Time ` + "`jsonbake:\"default=ignore\"`" + `
	Blob    []byte
	Extra   [2]int
	Any     any ` + "`jsonbake:\"null=ignore\"`" + `
	Nested  [][]int
	Labels  []Name
}

type Switch struct {
	On bool ` + "`jsonbake:\"name=on\"`" + `
}

type Empty struct{}
`

func generateFor(t *testing.T, src string, marked []string, names ...string) string {
	t.Helper()
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "m.go", src, parser.ParseComments)
	if err != nil {
		t.Fatal(err)
	}
	conf := types.Config{Importer: importer.ForCompiler(fset, "source", nil)}
	pkg, err := conf.Check("example.com/m", fset, []*ast.File{f}, nil)
	if err != nil {
		t.Fatal(err)
	}
	markers := schema.MarkerFunc(func(n *types.Named) bool {
		return slices.Contains(marked, n.Obj().Name())
	})
	ps := &PackageSchemas{Name: "m", Path: "example.com/m"}
	for _, name := range names {
		desc, err := schema.Describe(pkg.Scope().Lookup(name).(*types.TypeName), fset)
		if err != nil {
			t.Fatal(err)
		}
		ts, err := schema.Extract(desc, markers)
		if err != nil {
			t.Fatal(err)
		}
		ps.Types = append(ps.Types, ts)
	}
	code, err := Generate(ps)
	if err != nil {
		t.Fatalf("Generate: %v\n%s", err, code)
	}
	if _, err := parser.ParseFile(token.NewFileSet(), "gen.go", code, 0); err != nil {
		t.Fatalf("generated code does not parse: %v", err)
	}
	return string(code)
}

func assertContains(t *testing.T, code string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(code, want) {
			t.Errorf("generated code missing %q", want)
		}
	}
	if t.Failed() {
		t.Logf("generated code:\n%s", code)
	}
}

func TestGenerateOrder(t *testing.T) {
	code := generateFor(t, modelSrc, []string{"Line", "Order"}, "Order")
	assertContains(t, code,
		"var bakedOrderFields = bake.NewFieldTable(\"id\", \"lines\", \"Ptrs\"",
		"type bakedOrderConverter struct {\n\tlineConv bake.Converter\n}",
		"func (c *bakedOrderConverter) Type() reflect.Type { return reflect.TypeFor[Order]() }",
		"c.lineConv = r.Resolve(reflect.TypeFor[Line]())",

		// encode
		"x, err := bake.Value[Order](v)",
		"w.Name(\"id\")\n\tw.String(x.ID)",
		"for i := range x.Lines {\n\t\t\tw.Convert(c.lineConv, &x.Lines[i], fb)",
		"w.Convert(c.lineConv, x.Ptrs[i], fb)",
		"for _, k := range bake.SortedKeys(x.ByName) {\n\t\t\tw.Name(string(k))\n\t\t\tw.Convert(c.lineConv, x.ByName[k], fb)",
		"w.Name(k)\n\t\t\tw.Int(int64(x.Counts[k]))",
		"w.IntName(int64(k))\n\t\t\tw.Bool(x.ByLevel[k])",
		"if x.Note != nil {\n\t\tw.Name(\"Note\")\n\t\tif x.Note == nil {",
		"w.String(*x.Note)",
		"if x.Count != 3 {",
		"w.Bool(x.Enabled)",
		"w.Int(int64(x.Lvl))",
		"w.Float(float64(x.Ratio), 32)",
		"if !x.At.IsZero() {\n\t\tw.Name(\"At\")\n\t\tw.Time(x.At)",
		"w.Bytes(x.Blob)",
		"w.Fallback(&x.Extra, fb)",
		"if x.Any != nil {",
		"w.Fallback(&x.Any, fb)",
		"w.Fallback(&x.Nested[i], fb)",
		"w.String(string(x.Labels[i]))",

		// decode
		"x, err := bake.Target[Order](v)",
		"*x = Order{}\n\tx.Enabled = true\n\tr.BeginObject()",
		"switch bakedOrderFields.Match(r.Name()) {",
		"case 0:\n\t\t\tx.ID = r.String()",
		"v0 := []Line{}",
		"r.Convert(c.lineConv, &v1, fb)",
		"v2 := []*Line{}",
		"v4 := new(Line)\n\t\t\t\t\t\tr.Convert(c.lineConv, v4, fb)",
		"v5 := map[Name]Line{}",
		"k := Name(r.Name())",
		"k := r.Name()",
		"k := Level(r.IntName(8))",
		"v11 := new(string)\n\t\t\t\t*v11 = r.String()",
		"var v12 int\n\t\t\tv12 = int(r.Int(0))\n\t\t\tif v12 != 3 {\n\t\t\t\tx.Count = v12\n\t\t\t}",
		"x.Enabled = r.Bool()",
		"x.Lvl = Level(r.Int(8))",
		"x.Ratio = float32(r.Float(32))",
		"var v13 time.Time\n\t\t\tv13 = r.Time()\n\t\t\tif !v13.IsZero() {",
		"x.Blob = r.Bytes()",
		"r.Fallback(&x.Extra, fb)",
		"r.Fallback(&v15, fb)",
		"v17 = Name(r.String())",
		"default:\n\t\t\tr.Skip()",
		"\"time\"",
	)
}

func TestGenerateMemberCounts(t *testing.T) {
	code := generateFor(t, modelSrc, nil, "Switch", "Empty")
	assertContains(t, code,
		"if name := r.Name(); name == \"on\" || strings.EqualFold(name, \"on\") {\n\t\t\tx.On = r.Bool()\n\t\t} else {\n\t\t\tr.Skip()\n\t\t}",
		"\"strings\"",
		"type bakedEmptyConverter struct{}",
		"func (c *bakedEmptyConverter) Init(bake.Resolver) {}",
		"w.BeginObject()\n\tw.EndObject()",
		"for r.More() {\n\t\tr.Name()\n\t\tr.Skip()\n\t}",
		"&bakedSwitchConverter{},\n\t\t\t\t&bakedEmptyConverter{},",
	)
	if strings.Contains(code, "bakedSwitchFields") || strings.Contains(code, "bakedEmptyFields") {
		t.Error("field tables generated for types with fewer than two members")
	}
}

func TestGenerateStructDefault(t *testing.T) {
	src := `package m

type Spot struct {
	X, Y int
}

type Pin struct {
	Name   string
	Origin Spot ` + "`jsonbake:\"default=ignore\"`" + `
}
`
	code := generateFor(t, src, nil, "Pin")
	assertContains(t, code,
		"if x.Origin != (Spot{}) {",
		"w.Fallback(&x.Origin, fb)",
		"var v0 Spot",
		"r.Fallback(&v0, fb)",
		"if v0 != (Spot{}) {",
		"x.Origin = v0",
	)
}

func TestGenerateImportsAndMain(t *testing.T) {
	ps := &PackageSchemas{Name: "main", Path: "example.com/cmd/tool"}
	code, err := Generate(ps)
	if err != nil {
		t.Fatal(err)
	}
	if !regexp.MustCompile(`Path:\s+"main",`).Match(code) {
		t.Errorf("main package not registered as main:\n%s", code)
	}
	if strings.Contains(string(code), `"strings"`) {
		t.Error("strings imported without single-member types")
	}

	s := newImportSet("example.com/m")
	if got := s.use("example.com/other/bake", "bake"); got != "bake2" {
		t.Errorf("conflicting import named %q", got)
	}
	if got := s.use("gopkg.in/yaml.v3", "yaml"); got != "yaml" {
		t.Errorf("yaml import named %q", got)
	}
	decl := s.decl()
	if !strings.Contains(decl, "\tbake2 \"example.com/other/bake\"\n") || !strings.Contains(decl, "\tyaml \"gopkg.in/yaml.v3\"\n") {
		t.Errorf("import decl:\n%s", decl)
	}
}

func TestLowerFirst(t *testing.T) {
	for in, want := range map[string]string{
		"Point":    "point",
		"URL":      "url",
		"URLList":  "urlList",
		"geoPoint": "geoPoint",
		"ID":       "id",
	} {
		if got := lowerFirst(in); got != want {
			t.Errorf("lowerFirst(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSummarize(t *testing.T) {
	ts := &schema.TypeSchema{
		Name:    "P",
		PkgPath: "example.com/p",
		Members: []*schema.MemberSchema{
			{MemberName: "A", WireName: "a", Kind: schema.KindInt, DefaultHandling: schema.DefaultPopulate, DefaultValue: "3"},
			{MemberName: "B", WireName: "B", Kind: schema.KindPointer, NullHandling: schema.NullIgnore},
		},
	}
	got := summarize(ts)
	if got.Type != "example.com/p.P" || len(got.Members) != 2 {
		t.Fatalf("got %+v", got)
	}
	a, b := got.Members[0], got.Members[1]
	if a.Wire != "a" || a.Value != "3" || a.Default != schema.DefaultPopulate.String() {
		t.Errorf("A = %+v", a)
	}
	if b.Null != schema.NullIgnore.String() || b.Nested != "" {
		t.Errorf("B = %+v", b)
	}
}

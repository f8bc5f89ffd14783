package codegen

import (
	"fmt"
	"go/types"
	"path"
	"sort"
	"strings"
)

const (
	bakePath     = "github.com/signadot/jsonbake/bake"
	jsontextPath = "github.com/go-json-experiment/json/jsontext"
)

// importSet assigns local names to the packages referenced by generated
// code.
type importSet struct {
	self   string
	names  map[string]string // path -> local name
	taken  map[string]string // local name -> path
	needed map[string]bool
}

func newImportSet(self string) *importSet {
	s := &importSet{
		self:   self,
		names:  make(map[string]string),
		taken:  make(map[string]string),
		needed: make(map[string]bool),
	}
	// names used by the generated code itself
	for p, n := range map[string]string{
		"reflect":    "reflect",
		"strings":    "strings",
		bakePath:     "bake",
		jsontextPath: "jsontext",
	} {
		s.names[p] = n
		s.taken[n] = p
	}
	return s
}

// use marks the package at p as imported and returns its local name.
func (s *importSet) use(p, name string) string {
	s.needed[p] = true
	if n, ok := s.names[p]; ok {
		return n
	}
	local := name
	for i := 2; ; i++ {
		if _, busy := s.taken[local]; !busy {
			break
		}
		local = fmt.Sprintf("%s%d", name, i)
	}
	s.names[p] = local
	s.taken[local] = p
	return local
}

func (s *importSet) qualifier(p *types.Package) string {
	if p.Path() == s.self {
		return ""
	}
	return s.use(p.Path(), p.Name())
}

// decl renders the import declaration, standard library packages first.
func (s *importSet) decl() string {
	var std, other []string
	for p := range s.needed {
		if p == s.self {
			continue
		}
		if isStandardPath(p) {
			std = append(std, p)
		} else {
			other = append(other, p)
		}
	}
	sort.Strings(std)
	sort.Strings(other)
	var b strings.Builder
	b.WriteString("import (\n")
	for i, group := range [][]string{std, other} {
		if i > 0 && len(std) > 0 && len(other) > 0 {
			b.WriteString("\n")
		}
		for _, p := range group {
			if local := s.names[p]; local != path.Base(p) {
				fmt.Fprintf(&b, "\t%s %q\n", local, p)
			} else {
				fmt.Fprintf(&b, "\t%q\n", p)
			}
		}
	}
	b.WriteString(")\n")
	return b.String()
}

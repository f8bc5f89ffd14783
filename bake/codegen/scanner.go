package codegen

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"strings"
	"sync"

	"github.com/signadot/jsonbake/bake/schema"
	"golang.org/x/tools/go/packages"
)

// Directive marks a struct type for converter generation when it appears
// in the type's doc comment.
const Directive = "//jsonbake:generate"

// Scanner finds marked types and extracts their schemas. It implements
// schema.MarkerSet, loading the syntax of other packages on demand to find
// their directives.
type Scanner struct {
	loader *PackageLoader
	filter *Filter

	mu    sync.Mutex
	marks map[string]map[string]bool // package path -> marked type names
}

func NewScanner(loader *PackageLoader, filter *Filter) *Scanner {
	return &Scanner{
		loader: loader,
		filter: filter,
		marks:  make(map[string]map[string]bool),
	}
}

// Marked reports whether n carries the generation directive.
func (s *Scanner) Marked(n *types.Named) bool {
	obj := n.Obj()
	if obj.Pkg() == nil {
		return false
	}
	marks, err := s.marksOf(obj.Pkg().Path())
	if err != nil {
		return false
	}
	return marks[obj.Name()]
}

func (s *Scanner) marksOf(path string) (map[string]bool, error) {
	s.mu.Lock()
	marks, ok := s.marks[path]
	s.mu.Unlock()
	if ok {
		return marks, nil
	}
	if isStandardPath(path) {
		return nil, nil
	}
	pkg, err := s.loader.LoadPackage(path)
	if err != nil {
		return nil, err
	}
	marks = make(map[string]bool)
	for _, spec := range markedSpecs(pkg.Syntax) {
		marks[spec.Name.Name] = true
	}
	s.mu.Lock()
	s.marks[path] = marks
	s.mu.Unlock()
	return marks, nil
}

// ScanPackage extracts the schemas of the marked types of pkg in source
// order. Types with configuration errors are left out and their errors
// returned joined, along with the schemas of the other types.
func (s *Scanner) ScanPackage(pkg *packages.Package) (*PackageSchemas, error) {
	ps := &PackageSchemas{
		Name: pkg.Name,
		Path: pkg.PkgPath,
	}
	if len(pkg.GoFiles) > 0 {
		ps.Dir = filepath.Dir(pkg.GoFiles[0])
	}

	specs := markedSpecs(pkg.Syntax)
	marks := make(map[string]bool, len(specs))
	for _, spec := range specs {
		marks[spec.Name.Name] = true
	}
	s.mu.Lock()
	s.marks[pkg.PkgPath] = marks
	s.mu.Unlock()

	var errs []error
	for _, spec := range specs {
		obj, ok := pkg.TypesInfo.Defs[spec.Name].(*types.TypeName)
		if !ok {
			errs = append(errs, fmt.Errorf("%s: no type information for %s", pkg.Fset.Position(spec.Pos()), spec.Name.Name))
			continue
		}
		desc, err := schema.Describe(obj, pkg.Fset)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		keep, err := s.filter.Match(FilterEnv{
			Name:    desc.Name,
			Package: pkg.Name,
			Path:    pkg.PkgPath,
			Fields:  len(desc.Fields),
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", desc.Pos, err))
			continue
		}
		if !keep {
			continue
		}
		ts, err := schema.Extract(desc, s)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		ps.Types = append(ps.Types, ts)
	}
	return ps, errors.Join(errs...)
}

// markedSpecs returns the type specs carrying the directive, in source
// order.
func markedSpecs(files []*ast.File) []*ast.TypeSpec {
	var specs []*ast.TypeSpec
	for _, file := range files {
		for _, decl := range file.Decls {
			genDecl, ok := decl.(*ast.GenDecl)
			if !ok || genDecl.Tok != token.TYPE {
				continue
			}
			for _, spec := range genDecl.Specs {
				typeSpec, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				doc := typeSpec.Doc
				if doc == nil && !genDecl.Lparen.IsValid() {
					doc = genDecl.Doc
				}
				if hasDirective(doc) {
					specs = append(specs, typeSpec)
				}
			}
		}
	}
	return specs
}

func hasDirective(doc *ast.CommentGroup) bool {
	if doc == nil {
		return false
	}
	for _, c := range doc.List {
		text := strings.TrimSpace(c.Text)
		if text == Directive || strings.HasPrefix(text, Directive+" ") {
			return true
		}
	}
	return false
}

// isStandardPath reports whether path looks like a standard library import
// path, whose packages are never marked.
func isStandardPath(path string) bool {
	first, _, _ := strings.Cut(path, "/")
	return !strings.Contains(first, ".")
}

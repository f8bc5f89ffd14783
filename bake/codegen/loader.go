package codegen

import (
	"errors"
	"fmt"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/tools/go/packages"
)

const loadMode = packages.NeedName | packages.NeedFiles | packages.NeedCompiledGoFiles |
	packages.NeedImports | packages.NeedTypes | packages.NeedTypesSizes |
	packages.NeedSyntax | packages.NeedTypesInfo

// PackageLoader loads and caches Go packages.
type PackageLoader struct {
	// Dir is the directory go commands run in; it selects the module.
	Dir string
	// Output is the generated file name. When a package directory holds one,
	// it is replaced by an empty file while loading so that stale generated
	// code cannot break type checking.
	Output string

	cache map[string]*packages.Package
	mu    sync.RWMutex
}

// NewPackageLoader creates a new PackageLoader.
func NewPackageLoader(dir, output string) *PackageLoader {
	return &PackageLoader{
		Dir:    dir,
		Output: output,
		cache:  make(map[string]*packages.Package),
	}
}

// LoadPackage loads a package by its import path.
func (l *PackageLoader) LoadPackage(importPath string) (*packages.Package, error) {
	l.mu.RLock()
	if pkg, ok := l.cache[importPath]; ok {
		l.mu.RUnlock()
		return pkg, nil
	}
	l.mu.RUnlock()

	l.mu.Lock()
	defer l.mu.Unlock()

	// Check again in case it was loaded while we were waiting for the lock
	if pkg, ok := l.cache[importPath]; ok {
		return pkg, nil
	}
	// Packages other than the ones being generated are only inspected for
	// directives, so errors in them are tolerated.
	pkg, err := l.load(l.Dir, importPath, false)
	if err != nil {
		return nil, err
	}
	l.cache[importPath] = pkg
	return pkg, nil
}

// LoadDir loads the package in dir.
func (l *PackageLoader) LoadDir(dir string) (*packages.Package, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path for %q: %w", dir, err)
	}
	pkg, err := l.load(abs, ".", true)
	if err != nil {
		return nil, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if cached, ok := l.cache[pkg.PkgPath]; ok {
		return cached, nil
	}
	l.cache[pkg.PkgPath] = pkg
	return pkg, nil
}

func (l *PackageLoader) load(dir, pattern string, strict bool) (*packages.Package, error) {
	cfg := &packages.Config{
		Mode:    loadMode,
		Dir:     dir,
		Overlay: l.overlay(dir, pattern),
	}
	pkgs, err := packages.Load(cfg, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to load package %q: %w", pattern, err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("package %q not found", pattern)
	}
	pkg := pkgs[0]
	if strict && len(pkg.Errors) > 0 {
		errs := make([]error, 0, len(pkg.Errors))
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
		return nil, fmt.Errorf("failed to load package %q: %w", pattern, errors.Join(errs...))
	}
	return pkg, nil
}

// overlay blanks out a previously generated file in the directory of a
// package loaded by directory pattern.
func (l *PackageLoader) overlay(dir, pattern string) map[string][]byte {
	if l.Output == "" || pattern != "." {
		return nil
	}
	path := filepath.Join(dir, l.Output)
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	f, err := parser.ParseFile(token.NewFileSet(), path, nil, parser.PackageClauseOnly)
	if err != nil {
		return nil
	}
	return map[string][]byte{path: []byte("package " + f.Name.Name + "\n")}
}

package codegen

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/signadot/jsonbake/bake/schema"
	"github.com/signadot/jsonbake/internal/debug"
)

// Result is the outcome of generating the converters of one package.
type Result struct {
	Package *PackageSchemas
	// Output is the path of the generated file.
	Output string
	// Code is the generated source, nil when the package has no marked
	// types left to generate.
	Code []byte
	// Err holds the configuration errors of types left out of Code.
	Err error
}

// Write writes the generated code to Output. It does nothing for packages
// without generated code.
func (r *Result) Write() error {
	if r.Code == nil {
		return nil
	}
	if err := os.WriteFile(r.Output, r.Code, 0644); err != nil {
		return fmt.Errorf("failed to write output file %q: %w", r.Output, err)
	}
	return nil
}

// Check compares the generated code with the file on disk.
func (r *Result) Check() (*Drift, error) {
	if r.Code == nil {
		return &Drift{Path: r.Output}, nil
	}
	return CheckFile(r.Output, r.Code)
}

// Generator scans packages and generates their converters.
type Generator struct {
	cfg     *Config
	log     *slog.Logger
	filter  *Filter
	scanner *Scanner
}

// NewGenerator validates cfg and creates a Generator.
func NewGenerator(cfg *Config, log *slog.Logger) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	filter, err := CompileFilter(cfg.Filter)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
		if debug.Gen() {
			log = debug.Logger()
		}
	}
	g := &Generator{cfg: cfg, log: log, filter: filter}
	g.Reset()
	return g, nil
}

// Config returns the generator configuration.
func (g *Generator) Config() *Config { return g.cfg }

// Reset drops every loaded package, so that the next run sees source
// changes.
func (g *Generator) Reset() {
	g.scanner = NewScanner(NewPackageLoader(g.cfg.Dir, g.cfg.Output), g.filter)
}

// Packages lists the package directories selected by the configuration.
func (g *Generator) Packages() ([]*PackageInfo, error) {
	pkgs, err := DiscoverPackages(g.cfg.Dir, g.cfg.Recursive)
	if err != nil {
		return nil, fmt.Errorf("failed to discover packages: %w", err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no Go packages found in %q", g.cfg.Dir)
	}
	return pkgs, nil
}

// Package generates the converters of the package in dir.
func (g *Generator) Package(dir string) (*Result, error) {
	pkg, err := g.scanner.loader.LoadDir(dir)
	if err != nil {
		return nil, err
	}
	ps, scanErr := g.scanner.ScanPackage(pkg)
	if ps.Dir == "" {
		ps.Dir = dir
	}
	res := &Result{
		Package: ps,
		Output:  filepath.Join(ps.Dir, g.cfg.Output),
		Err:     scanErr,
	}
	g.log.Debug("scanned package", "package", ps.Path, "types", len(ps.Types))
	if debug.Schema() {
		for _, ts := range ps.Types {
			debug.LogAny(summarize(ts))
		}
	}
	if len(ps.Types) == 0 {
		return res, nil
	}
	code, err := Generate(ps)
	if err != nil {
		return nil, err
	}
	res.Code = code
	return res, nil
}

// Run generates the converters of every selected package.
func (g *Generator) Run() ([]*Result, error) {
	pkgs, err := g.Packages()
	if err != nil {
		return nil, err
	}
	var results []*Result
	for _, pkg := range pkgs {
		res, err := g.Package(pkg.Dir)
		if err != nil {
			return results, fmt.Errorf("failed to process package in %q: %w", pkg.Dir, err)
		}
		results = append(results, res)
	}
	return results, nil
}

type typeSummary struct {
	Type    string          `json:"type"`
	Pos     string          `json:"pos"`
	Members []memberSummary `json:"members"`
}

type memberSummary struct {
	Name    string `json:"name"`
	Wire    string `json:"wire"`
	Kind    string `json:"kind"`
	Null    string `json:"null"`
	Default string `json:"default"`
	Value   string `json:"value,omitempty"`
	Nested  string `json:"nested,omitempty"`
}

func summarize(ts *schema.TypeSchema) typeSummary {
	s := typeSummary{Type: ts.PkgPath + "." + ts.Name, Pos: ts.Pos.String()}
	for _, m := range ts.Members {
		ms := memberSummary{
			Name:    m.MemberName,
			Wire:    m.WireName,
			Kind:    m.Kind.String(),
			Null:    m.NullHandling.String(),
			Default: m.DefaultHandling.String(),
			Value:   m.DefaultValue,
		}
		if m.Nested != nil {
			ms.Nested = m.Nested.String()
		}
		s.Members = append(s.Members, ms)
	}
	return s
}

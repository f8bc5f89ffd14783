package codegen

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// FilterEnv is the environment of filter expressions, one per marked type.
type FilterEnv struct {
	Name    string // type name
	Package string // package name
	Path    string // package import path
	Fields  int    // number of declared fields
}

// Filter selects the marked types to generate converters for. A nil Filter
// selects every type.
type Filter struct {
	src     string
	program *vm.Program
}

// CompileFilter compiles a boolean expr expression over FilterEnv, such as
// `Package != "internal" && !(Name startsWith "Test")`. The empty string
// yields a nil Filter.
func CompileFilter(src string) (*Filter, error) {
	if src == "" {
		return nil, nil
	}
	program, err := expr.Compile(src, expr.Env(FilterEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("invalid filter %q: %w", src, err)
	}
	return &Filter{src: src, program: program}, nil
}

func (f *Filter) String() string {
	if f == nil {
		return "true"
	}
	return f.src
}

// Match evaluates the filter for env.
func (f *Filter) Match(env FilterEnv) (bool, error) {
	if f == nil {
		return true, nil
	}
	out, err := expr.Run(f.program, env)
	if err != nil {
		return false, fmt.Errorf("filter %q: %w", f.src, err)
	}
	return out.(bool), nil
}

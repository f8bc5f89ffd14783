package bake

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/go-json-experiment/json/jsontext"
)

// Converter encodes and decodes values of exactly one Go type.
//
// Converters are emitted by jsonbake-gen, one per marked struct. Encode
// accepts either a T or a *T (a nil *T encodes as null). Decode accepts a
// non-nil *T.
type Converter interface {
	Type() reflect.Type
	// Init is called once by the registry, after every converter of the
	// module has been instantiated, so that references to the converters of
	// nested types can be resolved.
	Init(r Resolver)
	Encode(enc *jsontext.Encoder, v any, fb Fallback) error
	Decode(dec *jsontext.Decoder, v any, fb Fallback) error
}

// Resolver finds the converter for a type, or returns nil.
type Resolver interface {
	Resolve(t reflect.Type) Converter
}

// Fallback encodes and decodes values with the host JSON library. Generated
// converters use it for members whose types have no converter.
type Fallback interface {
	EncodeValue(enc *jsontext.Encoder, v any) error
	DecodeValue(dec *jsontext.Decoder, v any) error
}

// Module describes the generated converters of one package.
type Module struct {
	// Path is the import path of the package.
	Path string
	// Converters returns freshly allocated converters, one per type.
	Converters func() []Converter
}

var catalog struct {
	mu      sync.RWMutex
	modules map[string]Module
}

// Register makes the converters of a package available to registries. It is
// called from the init function of generated code. Register panics if the
// module is malformed or if the same path is registered twice.
func Register(m Module) {
	if m.Path == "" {
		panic("bake: Register called with empty module path")
	}
	if m.Converters == nil {
		panic(fmt.Sprintf("bake: Register called with nil converters for module %q", m.Path))
	}
	catalog.mu.Lock()
	defer catalog.mu.Unlock()
	if catalog.modules == nil {
		catalog.modules = make(map[string]Module)
	}
	if _, dup := catalog.modules[m.Path]; dup {
		panic(fmt.Sprintf("bake: Register called twice for module %q", m.Path))
	}
	catalog.modules[m.Path] = m
}

// Modules returns the registered modules sorted by path.
func Modules() []Module {
	catalog.mu.RLock()
	defer catalog.mu.RUnlock()
	res := make([]Module, 0, len(catalog.modules))
	for _, m := range catalog.modules {
		res = append(res, m)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Path < res[j].Path })
	return res
}

func registeredModule(path string) (Module, bool) {
	catalog.mu.RLock()
	defer catalog.mu.RUnlock()
	m, ok := catalog.modules[path]
	return m, ok
}

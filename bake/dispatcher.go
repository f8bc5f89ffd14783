package bake

import (
	"fmt"
	"io"
	"reflect"
	"sync"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Dispatcher connects a Registry to the JSON library. Its Options route
// every value whose type has a generated converter through that converter
// and leave the rest to the library's default behavior.
type Dispatcher struct {
	reg    *Registry
	warn   func(string)
	warned sync.Map // module path -> struct{}
	extra  []json.Options
	opts   json.Options
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithDiagnostics sets the function receiving advisory warnings about
// packages that have no generated converters.
func WithDiagnostics(fn func(string)) DispatcherOption {
	return func(d *Dispatcher) { d.warn = fn }
}

// WithJSONOptions adds options passed to the JSON library along with the
// dispatcher's own.
func WithJSONOptions(opts ...json.Options) DispatcherOption {
	return func(d *Dispatcher) { d.extra = append(d.extra, opts...) }
}

func NewDispatcher(reg *Registry, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{reg: reg}
	for _, o := range opts {
		o(d)
	}
	all := append([]json.Options{}, d.extra...)
	all = append(all,
		json.WithMarshalers(json.MarshalToFunc(d.marshal)),
		json.WithUnmarshalers(json.UnmarshalFromFunc(d.unmarshal)),
	)
	d.opts = json.JoinOptions(all...)
	return d
}

// Registry returns the registry the dispatcher resolves converters from.
func (d *Dispatcher) Registry() *Registry { return d.reg }

// Options returns the options that install the dispatcher in the JSON
// library.
func (d *Dispatcher) Options() json.Options { return d.opts }

// CanConvert reports whether t has a generated converter.
func (d *Dispatcher) CanConvert(t reflect.Type) bool {
	c, status := d.reg.Lookup(t)
	if c != nil {
		return true
	}
	if status == StatusModuleMissing && d.warn != nil {
		path := t.PkgPath()
		if _, seen := d.warned.LoadOrStore(path, struct{}{}); !seen {
			d.warn(fmt.Sprintf("jsonbake: package %q has no generated converters (first seen with type %v); call ExcludeModule(%q) to skip the lookup", path, t, path))
		}
	}
	return false
}

// Encode writes v, a T or a *T, with the converter for T. It panics with
// an *UnresolvedTypeFault if there is none.
func (d *Dispatcher) Encode(enc *jsontext.Encoder, v any) error {
	t := valueType(reflect.TypeOf(v))
	c := d.reg.Resolve(t)
	if c == nil {
		panic(&UnresolvedTypeFault{Type: t})
	}
	return c.Encode(enc, v, d)
}

// Decode reads into v, a non-nil pointer, with the converter for the
// pointed-to type. It panics with an *UnresolvedTypeFault if there is none.
func (d *Dispatcher) Decode(dec *jsontext.Decoder, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return &UnmarshalError{Message: fmt.Sprintf("cannot decode into %T, need non-nil pointer", v)}
	}
	t := rv.Type().Elem()
	c := d.reg.Resolve(t)
	if c == nil {
		panic(&UnresolvedTypeFault{Type: t})
	}
	return c.Decode(dec, v, d)
}

// EncodeValue implements Fallback.
func (d *Dispatcher) EncodeValue(enc *jsontext.Encoder, v any) error {
	return json.MarshalEncode(enc, v, d.opts)
}

// DecodeValue implements Fallback.
func (d *Dispatcher) DecodeValue(dec *jsontext.Decoder, v any) error {
	return json.UnmarshalDecode(dec, v, d.opts)
}

func (d *Dispatcher) Marshal(v any) ([]byte, error) {
	return json.Marshal(v, d.opts)
}

func (d *Dispatcher) MarshalWrite(w io.Writer, v any) error {
	return json.MarshalWrite(w, v, d.opts)
}

func (d *Dispatcher) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v, d.opts)
}

func (d *Dispatcher) UnmarshalRead(r io.Reader, v any) error {
	return json.UnmarshalRead(r, v, d.opts)
}

func (d *Dispatcher) marshal(enc *jsontext.Encoder, v any) error {
	// The library hands interface marshalers the address of the value.
	if v == nil || !d.CanConvert(valueType(reflect.TypeOf(v))) {
		return json.SkipFunc
	}
	return d.Encode(enc, v)
}

func (d *Dispatcher) unmarshal(dec *jsontext.Decoder, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || !d.CanConvert(rv.Type().Elem()) {
		return json.SkipFunc
	}
	return d.Decode(dec, v)
}

// valueType strips one level of unnamed pointer from t.
func valueType(t reflect.Type) reflect.Type {
	if t.Kind() == reflect.Pointer && t.Name() == "" {
		return t.Elem()
	}
	return t
}

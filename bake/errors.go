package bake

import (
	"fmt"
	"reflect"
)

// MarshalError represents an error during encoding
type MarshalError struct {
	FieldPath string // Field path (e.g., "order.lines.sku")
	Message   string
	Err       error
}

func (e *MarshalError) Error() string {
	if e.FieldPath != "" {
		return fmt.Sprintf("marshal error at %s: %s", e.FieldPath, e.Message)
	}
	return fmt.Sprintf("marshal error: %s", e.Message)
}

func (e *MarshalError) Unwrap() error {
	return e.Err
}

// UnmarshalError represents an error during decoding
type UnmarshalError struct {
	FieldPath string // Field path (e.g., "order.lines.sku")
	Message   string
	Err       error
}

func (e *UnmarshalError) Error() string {
	if e.FieldPath != "" {
		return fmt.Sprintf("unmarshal error at %s: %s", e.FieldPath, e.Message)
	}
	return fmt.Sprintf("unmarshal error: %s", e.Message)
}

func (e *UnmarshalError) Unwrap() error {
	return e.Err
}

// UnresolvedTypeFault is the panic value used by Dispatcher.Encode and
// Dispatcher.Decode when asked to convert a type that has no converter.
// Callers are expected to check CanConvert first.
type UnresolvedTypeFault struct {
	Type reflect.Type
}

func (f *UnresolvedTypeFault) Error() string {
	return fmt.Sprintf("bake: no converter for type %v", f.Type)
}

// nestPath prefixes the field path of a nested error with name.
func nestPath(name string, err error) error {
	if name == "" {
		return err
	}
	switch e := err.(type) {
	case *UnmarshalError:
		cp := *e
		cp.FieldPath = joinPath(name, e.FieldPath)
		return &cp
	case *MarshalError:
		cp := *e
		cp.FieldPath = joinPath(name, e.FieldPath)
		return &cp
	}
	return err
}

func joinPath(a, b string) string {
	if b == "" {
		return a
	}
	return a + "." + b
}

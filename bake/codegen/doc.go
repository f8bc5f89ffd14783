// Package codegen generates JSON converters for Go struct types marked with
// the //jsonbake:generate directive:
//
//	//jsonbake:generate
//	type Point struct {
//		X int `jsonbake:"name=x"`
//		Y int `jsonbake:"name=y"`
//	}
//
// Each package with marked types gets one generated file (jsonbake_gen.go by
// default) holding a converter per type and an init function registering
// them with package bake.
//
// A Generator discovers packages, loads them with golang.org/x/tools/go/packages,
// extracts the schema of every marked type with package schema and emits
// the converters. Marked types of other packages are detected by loading
// those packages, so a converter delegates to the generated converter of a
// nested type wherever it lives.
package codegen

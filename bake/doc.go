// Package bake is the runtime support for converters generated by
// jsonbake-gen.
//
// Generated code registers one Module per package from an init function.
// A Registry builds the converter table of a package the first time one of
// its types is looked up and caches the result for every type, including
// the types that have no converter. A Dispatcher plugs a registry into
// github.com/go-json-experiment/json:
//
//	d := bake.NewDispatcher(bake.NewRegistry(), bake.WithDiagnostics(func(msg string) {
//		slog.Warn(msg)
//	}))
//	data, err := json.Marshal(order, d.Options())
//
// Values whose types have no converter, including members of generated
// types, are handled by the json package with the same options, so
// converted and reflected values can be nested in each other freely.
//
// # Member configuration
//
// Struct fields are configured with the jsonbake tag key:
//
//	type Flag struct {
//		Enabled bool `jsonbake:"name=enabled,default=populate,value=true"`
//		Note    *string `jsonbake:"null=ignore"`
//	}
//
// See package github.com/signadot/jsonbake/bake/schema for the parameters.
package bake

// Package schema extracts the serialization schema of Go struct types
// marked for converter generation.
//
// Members are configured with the jsonbake struct tag key:
//
//	name=<wire>        JSON property name (default: the field name)
//	null=include       write nil values as null (default)
//	null=ignore        omit nil values
//	default=include    always write the member (default)
//	default=ignore     omit the member when it equals its default
//	default=populate   set the default before decoding
//	value=<literal>    the default; the zero value when absent
//	omit, or "-"       not a member
//
// Unexported and blank fields are never members. Unknown parameters and
// values that do not fit the field type are reported as *ConfigurationError.
package schema

package schema

import (
	"fmt"
	"strings"
)

// TagKey is the struct tag key holding member configuration.
const TagKey = "jsonbake"

// Tag parameters.
const (
	ParamName    = "name"
	ParamNull    = "null"
	ParamDefault = "default"
	ParamValue   = "value"
	ParamOmit    = "omit"
)

var knownParams = map[string]bool{
	ParamName:    true,
	ParamNull:    true,
	ParamDefault: true,
	ParamValue:   true,
	ParamOmit:    true,
}

// ParseStructTag parses the value of a jsonbake struct tag into a map of
// parameters. Parameters are separated by commas or spaces; a parameter
// without "=" is a flag and maps to "". Values may be quoted with single or
// double quotes to include separators: `jsonbake:"value='a, b'"`.
func ParseStructTag(tag string) (map[string]string, error) {
	result := make(map[string]string)

	if tag == "" {
		return result, nil
	}

	var parts []string
	var current strings.Builder
	inSingleQuote := false
	inDoubleQuote := false

	for i := 0; i < len(tag); i++ {
		char := tag[i]

		switch {
		case char == '\'' && !inDoubleQuote:
			inSingleQuote = !inSingleQuote
			current.WriteByte(char)
		case char == '"' && !inSingleQuote:
			inDoubleQuote = !inDoubleQuote
			current.WriteByte(char)
		case (char == ',' || char == ' ') && !inSingleQuote && !inDoubleQuote:
			if part := strings.TrimSpace(current.String()); part != "" {
				parts = append(parts, part)
			}
			current.Reset()
		default:
			current.WriteByte(char)
		}
	}
	if inSingleQuote || inDoubleQuote {
		return nil, fmt.Errorf("invalid tag %q: unterminated quote", tag)
	}
	if part := strings.TrimSpace(current.String()); part != "" {
		parts = append(parts, part)
	}

	for _, part := range parts {
		key, value, isPair := strings.Cut(part, "=")
		key = strings.ToLower(strings.TrimSpace(key))
		if key == "" {
			return nil, fmt.Errorf("invalid tag: empty key in %q", part)
		}
		if _, dup := result[key]; dup {
			return nil, fmt.Errorf("invalid tag: duplicate key %q", key)
		}
		if !isPair {
			result[key] = ""
			continue
		}
		result[key] = unquoteValue(strings.TrimSpace(value))
	}

	return result, nil
}

// unquoteValue removes surrounding single or double quotes from a value.
func unquoteValue(value string) string {
	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if (first == '\'' && last == '\'') || (first == '"' && last == '"') {
			return value[1 : len(value)-1]
		}
	}
	return value
}

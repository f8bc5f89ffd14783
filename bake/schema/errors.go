package schema

import (
	"fmt"
	"go/token"
	"strings"
)

// ConfigurationError reports invalid member configuration found while
// extracting the schema of a type.
type ConfigurationError struct {
	Type    string
	Member  string   // empty for errors about the type itself
	Params  []string // offending tag parameters, sorted
	Message string
	Pos     token.Position
}

func (e *ConfigurationError) Error() string {
	var b strings.Builder
	if e.Pos.IsValid() {
		b.WriteString(e.Pos.String())
		b.WriteString(": ")
	}
	b.WriteString(e.Type)
	if e.Member != "" {
		b.WriteString(".")
		b.WriteString(e.Member)
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	if len(e.Params) > 0 {
		fmt.Fprintf(&b, " (%s)", strings.Join(e.Params, ", "))
	}
	return b.String()
}

package pathexpr

import (
	"fmt"
	"strings"
)

// VarBranch is the placeholder replaced with the current branch name
const VarBranch = "branch"

// Vars holds placeholder values for Expand
type Vars map[string]string

// KnownVars lists the placeholders a template may reference
var KnownVars = []string{VarBranch}

// TemplateError reports an invalid placeholder in a template
type TemplateError struct {
	Template string
	Name     string
	Msg      string
}

func (e *TemplateError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("template %q: %s {%s}", e.Template, e.Msg, e.Name)
	}
	return fmt.Sprintf("template %q: %s", e.Template, e.Msg)
}

// Expand substitutes {name} placeholders in tmpl. Only names in KnownVars are
// accepted, and each must be present in vars. "{{" and "}}" produce literal braces.
func Expand(tmpl string, vars Vars) (string, error) {
	var b strings.Builder
	for i := 0; i < len(tmpl); i++ {
		c := tmpl[i]
		switch {
		case c == '{' && i+1 < len(tmpl) && tmpl[i+1] == '{':
			b.WriteByte('{')
			i++
		case c == '}' && i+1 < len(tmpl) && tmpl[i+1] == '}':
			b.WriteByte('}')
			i++
		case c == '{':
			end := strings.IndexByte(tmpl[i+1:], '}')
			if end < 0 {
				return "", &TemplateError{Template: tmpl, Msg: "unterminated placeholder"}
			}
			name := strings.TrimSpace(tmpl[i+1 : i+1+end])
			if !isKnownVar(name) {
				return "", &TemplateError{Template: tmpl, Name: name, Msg: "unknown placeholder"}
			}
			value, ok := vars[name]
			if !ok {
				return "", &TemplateError{Template: tmpl, Name: name, Msg: "no value for placeholder"}
			}
			b.WriteString(value)
			i += end + 1
		case c == '}':
			return "", &TemplateError{Template: tmpl, Msg: "unmatched }"}
		default:
			b.WriteByte(c)
		}
	}
	return b.String(), nil
}

// ParseTemplate expands tmpl and parses the result
func ParseTemplate(tmpl string, vars Vars) (Path, error) {
	expr, err := Expand(tmpl, vars)
	if err != nil {
		return Path{}, err
	}
	return Parse(expr)
}

func isKnownVar(name string) bool {
	for _, known := range KnownVars {
		if name == known {
			return true
		}
	}
	return false
}

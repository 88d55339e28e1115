package dsl

import (
	"fmt"
	"regexp"
	"strings"
)

// Binding is one name/value pair parsed from a raw "name=value" argument.
// Bindings are transient; they exist only for the duration of one expansion.
type Binding struct {
	Name  string
	Value string
}

// BindingFormatError reports a raw binding string that does not match the
// required <name>=<value> form. It aborts the whole expansion before any
// text is processed.
type BindingFormatError struct {
	Raw string
}

func (e *BindingFormatError) Error() string {
	return fmt.Sprintf("env var %q is not in <name>=<value> format", e.Raw)
}

var (
	// A deferred variable reference: braced ${name} anywhere on the line,
	// or bare $name only at end of line.
	variableRefPattern = regexp.MustCompile(`\$[a-zA-Z_]\w*$|\$\{\w+\}`)
	// Accepted shape of a raw binding; the name must be a valid shell
	// identifier and a value must be present.
	bindingPattern = regexp.MustCompile(`^[a-zA-Z_]\w*=.+`)
)

// ParseBindings validates and splits raw "name=value" strings. The first
// malformed binding fails the whole batch. Everything after the first '='
// belongs to the value.
func ParseBindings(raw []string) ([]Binding, error) {
	bindings := make([]Binding, 0, len(raw))
	for _, r := range raw {
		if !bindingPattern.MatchString(r) {
			return nil, &BindingFormatError{Raw: r}
		}
		name, value, _ := strings.Cut(r, "=")
		bindings = append(bindings, Binding{Name: name, Value: value})
	}
	return bindings, nil
}

// ExpandVariables substitutes deferred variable references in text,
// line by line. A reference whose name matches a binding is replaced
// everywhere it appears on the line; references with no matching binding
// stay verbatim, left for later expansion by the consuming server.
func ExpandVariables(text string, bindings []Binding) string {
	if len(bindings) == 0 {
		return text
	}
	var out strings.Builder
	out.Grow(len(text))
	remaining := text
	for len(remaining) > 0 {
		line := remaining
		if i := strings.IndexByte(remaining, '\n'); i >= 0 {
			line = remaining[:i+1]
			remaining = remaining[i+1:]
		} else {
			remaining = ""
		}
		out.WriteString(expandLine(line, bindings))
	}
	return out.String()
}

func expandLine(line string, bindings []Binding) string {
	body, hadNewline := strings.CutSuffix(line, "\n")
	tokens := variableRefPattern.FindAllString(body, -1)
	if len(tokens) == 0 {
		return line
	}

	// Index tokens by variable name. Later tokens with the same name win,
	// which is harmless since they are replaced with the same value.
	tokensByName := make(map[string]string, len(tokens))
	for _, tok := range tokens {
		tokensByName[referenceName(tok)] = tok
	}

	for _, binding := range bindings {
		if tok, ok := tokensByName[binding.Name]; ok {
			body = strings.ReplaceAll(body, tok, binding.Value)
		}
	}
	if hadNewline {
		return body + "\n"
	}
	return body
}

// referenceName extracts the variable name from a matched reference token,
// either ${name} or $name.
func referenceName(token string) string {
	if strings.HasPrefix(token, "${") {
		return token[2 : len(token)-1]
	}
	return token[1:]
}

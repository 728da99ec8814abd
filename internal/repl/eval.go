package repl

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/quietshell/qsh/internal/namespace"
)

var identPattern = regexp.MustCompile(`^[A-Za-z_]\w*$`)

// evaluate handles one statement: either `name = value` or a bare expression
// to resolve and print.
func (r *REPL) evaluate(line string) (string, error) {
	if name, rest, ok := splitAssignment(line); ok {
		return "", r.assign(name, rest)
	}

	value, err := namespace.Resolve(line, r.namespace)
	if err != nil {
		return "", err
	}
	return formatValue(value), nil
}

// splitAssignment recognizes `identifier = rest`. The `==` operator is not
// part of the language, but guard against it anyway.
func splitAssignment(line string) (name, rest string, ok bool) {
	idx := strings.Index(line, "=")
	if idx < 0 || (idx+1 < len(line) && line[idx+1] == '=') {
		return "", "", false
	}
	name = strings.TrimSpace(line[:idx])
	rest = strings.TrimSpace(line[idx+1:])
	if !identPattern.MatchString(name) {
		return "", "", false
	}
	return name, rest, true
}

func (r *REPL) assign(name, rest string) error {
	if name == namespace.BuiltinsName {
		return fmt.Errorf("cannot rebind reserved name %q", name)
	}
	if namespace.IsKeyword(name) {
		return fmt.Errorf("cannot bind keyword %q", name)
	}
	if rest == "" {
		r.namespace.Delete(name)
		return nil
	}

	value, err := r.parseValue(rest)
	if err != nil {
		return err
	}
	r.namespace.Set(name, value)
	return nil
}

// parseValue interprets the right-hand side of an assignment: a literal
// first, falling back to resolving it as an expression.
func (r *REPL) parseValue(text string) (any, error) {
	if len(text) >= 2 {
		if quote := text[0]; quote == '\'' || quote == '"' {
			if text[len(text)-1] == quote {
				return text[1 : len(text)-1], nil
			}
			return nil, fmt.Errorf("unterminated string literal")
		}
	}

	switch text {
	case "true":
		return true, nil
	case "false":
		return false, nil
	case "null":
		return nil, nil
	}

	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return n, nil
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return f, nil
	}

	return namespace.Resolve(text, r.namespace)
}

// formatValue renders a value for display.
func formatValue(value any) string {
	if value == nil {
		return "null"
	}

	switch v := value.(type) {
	case string:
		return strconv.Quote(v)
	case bool:
		return strconv.FormatBool(v)
	case error:
		return fmt.Sprintf("error(%q)", v.Error())
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Func:
		return fmt.Sprintf("<function %s>", rv.Type())
	case reflect.Map:
		return fmt.Sprintf("<map with %d keys>", rv.Len())
	case reflect.Pointer:
		if rv.IsNil() {
			return "null"
		}
		return formatValue(rv.Elem().Interface())
	case reflect.Struct:
		return fmt.Sprintf("%+v", value)
	default:
		return fmt.Sprintf("%v", value)
	}
}

func sortedKeys(m map[string]any) []string {
	keys := lo.Keys(m)
	sort.Strings(keys)
	return keys
}

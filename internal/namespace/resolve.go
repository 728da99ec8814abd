package namespace

import (
	"fmt"
	"strings"
)

// Resolve evaluates a dotted identifier chain ("proc.Hostname") against the
// namespace, falling back to the builtins table for the leading name. Only
// read-only member access is performed: no calls, no indexing, no literals.
// Resolution against a nil namespace uses the process default.
func Resolve(expr string, ns *Namespace) (any, error) {
	if ns == nil {
		ns = Default()
	}

	segments := strings.Split(expr, ".")
	for _, segment := range segments {
		if segment == "" {
			return nil, fmt.Errorf("malformed expression %q", expr)
		}
	}

	current, ok := ns.Get(segments[0])
	if !ok {
		current, ok = builtins[segments[0]]
	}
	if !ok {
		return nil, fmt.Errorf("undefined name %q", segments[0])
	}

	for _, segment := range segments[1:] {
		value, err := Member(current, segment)
		if err != nil {
			return nil, err
		}
		current = value
	}
	return current, nil
}

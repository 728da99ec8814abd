// Package complete implements readline-style tab completion for the qsh
// REPL. Given a partially typed token it proposes candidates drawn from
// language keywords, builtins, namespace bindings, object members, and
// filesystem paths.
package complete

import (
	"strings"

	"github.com/quietshell/qsh/internal/namespace"
	"go.uber.org/zap"
)

// Completer computes completion candidates for a token prefix. It holds a
// reference to a binding environment and the match cache for the most recent
// completion cycle. It is not safe for concurrent use; the line editor that
// drives it is single-threaded.
type Completer struct {
	ns      *namespace.Namespace
	matches []string
	noPaths bool
	logger  *zap.Logger
}

// Option configures a Completer.
type Option func(*Completer)

// WithLogger sets the logger used for debug output. Completion itself never
// surfaces errors to the caller, so the log is the only place faults appear.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Completer) {
		c.logger = logger
	}
}

// WithPathCompletion toggles quoted-path completion against the filesystem.
// It is on by default.
func WithPathCompletion(enabled bool) Option {
	return func(c *Completer) {
		c.noPaths = !enabled
	}
}

// New creates a Completer over the given namespace. A nil namespace means
// the process-wide default namespace, looked up fresh at each completion
// cycle so late bindings are visible.
func New(ns *namespace.Namespace, opts ...Option) *Completer {
	c := &Completer{
		ns:     ns,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewFromBindings creates a Completer from an arbitrary bindings value. The
// value must be a string-keyed map; anything else fails with
// namespace.ErrInvalidNamespace.
func NewFromBindings(bindings any, opts ...Option) (*Completer, error) {
	ns, err := namespace.FromValue(bindings)
	if err != nil {
		return nil, err
	}
	return New(ns, opts...), nil
}

// Namespace returns the active binding environment for this cycle.
func (c *Completer) Namespace() *namespace.Namespace {
	if c.ns != nil {
		return c.ns
	}
	return namespace.Default()
}

// Complete returns the state-th match for text. The line editor calls this
// with state = 0, 1, 2, ... for a fixed text; ok = false signals end of the
// match list. The full match set is computed once, at state 0, and cached
// for the remainder of the cycle.
func (c *Completer) Complete(text string, state int) (match string, ok bool) {
	if state == 0 {
		c.matches = c.compute(text)
	}
	if state < 0 || state >= len(c.matches) {
		return "", false
	}
	return c.matches[state], true
}

// Matches runs one full completion cycle for text and returns every match.
func (c *Completer) Matches(text string) []string {
	var matches []string
	for state := 0; ; state++ {
		match, ok := c.Complete(text, state)
		if !ok {
			break
		}
		matches = append(matches, match)
	}
	return matches
}

// compute classifies the text and builds the match list. Any fault raised by
// the reflective walks is recovered here and treated as zero matches: the
// editor drives us from inside a raw-mode terminal and cannot report errors.
func (c *Completer) compute(text string) (matches []string) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Debug("completion recovered", zap.Any("panic", r), zap.String("text", text))
			matches = nil
		}
	}()

	switch {
	case strings.ContainsAny(text, `'"`):
		if c.noPaths {
			return nil
		}
		return c.fileMatches(text)
	case strings.Contains(text, "."):
		return c.attrMatches(text)
	default:
		return c.nameMatches(text)
	}
}

// callablePostfix appends an open parenthesis to word when its value is
// callable, hinting that completing the name starts an argument list.
func callablePostfix(value any, word string) string {
	if namespace.Callable(value) {
		return word + "("
	}
	return word
}

package complete

import (
	"regexp"
	"strings"

	"github.com/quietshell/qsh/internal/namespace"
	"go.uber.org/zap"
)

// attrPattern matches NAME.NAME....[NAME]: a dotted identifier chain with a
// possibly empty trailing partial.
var attrPattern = regexp.MustCompile(`^(\w+(\.\w+)*)\.(\w*)$`)

// attrMatches computes matches when text contains a dot. The chain before
// the last dot is evaluated against the namespace and the resulting value's
// members are offered as completions. Evaluation failures of any kind yield
// an empty match set rather than an error.
func (c *Completer) attrMatches(text string) []string {
	groups := attrPattern.FindStringSubmatch(text)
	if groups == nil {
		return nil
	}
	expr, attr := groups[1], groups[3]

	object, err := namespace.Resolve(expr, c.Namespace())
	if err != nil {
		c.logger.Debug("attribute completion: expression failed", zap.String("expr", expr), zap.Error(err))
		return nil
	}

	var matches []string
	for _, word := range namespace.Members(object) {
		if !strings.HasPrefix(word, attr) {
			continue
		}
		// Re-fetch to confirm the member is actually readable; an
		// advertised member may still fail (nil dereference etc.).
		value, err := namespace.Member(object, word)
		if err != nil {
			continue
		}
		matches = append(matches, callablePostfix(value, expr+"."+word))
	}
	return matches
}

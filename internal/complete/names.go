package complete

import (
	"sort"
	"strings"

	"github.com/quietshell/qsh/internal/namespace"
	"github.com/samber/lo"
)

// nameMatches computes matches for a bare identifier prefix: keywords first,
// then builtins, then namespace bindings. Duplicates across the groups are
// kept; the sentinel binding for the builtins table itself is excluded.
func (c *Completer) nameMatches(text string) []string {
	matches := lo.Filter(namespace.Keywords, func(word string, _ int) bool {
		return strings.HasPrefix(word, text)
	})

	matches = append(matches, tableMatches(namespace.Builtins(), text)...)
	matches = append(matches, namespaceMatches(c.Namespace(), text)...)
	return matches
}

func tableMatches(table map[string]any, prefix string) []string {
	names := lo.Filter(lo.Keys(table), func(word string, _ int) bool {
		return word != namespace.BuiltinsName && strings.HasPrefix(word, prefix)
	})
	sort.Strings(names)
	return decorate(names, func(word string) (any, bool) {
		value, ok := table[word]
		return value, ok
	})
}

func namespaceMatches(ns *namespace.Namespace, prefix string) []string {
	names := lo.Filter(ns.Keys(), func(word string, _ int) bool {
		return word != namespace.BuiltinsName && strings.HasPrefix(word, prefix)
	})
	return decorate(names, ns.Get)
}

// decorate appends the callable postfix to each name using its bound value.
func decorate(names []string, get func(string) (any, bool)) []string {
	return lo.Map(names, func(word string, _ int) string {
		if value, ok := get(word); ok {
			return callablePostfix(value, word)
		}
		return word
	})
}

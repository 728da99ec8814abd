package complete

import (
	"unicode"
)

// Provider adapts a Completer to the line editor's completion callback. The
// editor hands over the whole input line and cursor position; the provider
// isolates the token under the cursor, runs one completion cycle, and
// returns the candidates that should replace that token.
type Provider struct {
	completer *Completer
}

// NewProvider creates a Provider around the given Completer.
func NewProvider(completer *Completer) *Provider {
	return &Provider{completer: completer}
}

// Completer returns the wrapped Completer.
func (p *Provider) Completer() *Completer {
	return p.completer
}

// GetCompletions returns completion suggestions for the token at the cursor.
func (p *Provider) GetCompletions(line string, pos int) []string {
	prefix := currentToken(line, pos)
	return p.completer.Matches(prefix)
}

// GetHelpInfo returns help for the current input. The completer has no help
// surface, so this is always empty.
func (p *Provider) GetHelpInfo(line string, pos int) string {
	return ""
}

// currentToken extracts the partial token ending at the cursor position.
func currentToken(line string, pos int) string {
	runes := []rune(line)
	if pos < 0 {
		pos = 0
	}
	if pos > len(runes) {
		pos = len(runes)
	}

	start := pos
	for start > 0 && !unicode.IsSpace(runes[start-1]) {
		start--
	}
	return string(runes[start:pos])
}

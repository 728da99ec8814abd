package input

import (
	"unicode"
)

// CompletionProvider supplies completion suggestions for the current input
// line and cursor position. The editor drives it once per Tab press and
// cycles through whatever it returns.
type CompletionProvider interface {
	// GetCompletions returns completion candidates for the token at the
	// cursor. An empty slice means nothing to offer.
	GetCompletions(line string, pos int) []string

	// GetHelpInfo returns help text for the current input, or "".
	GetHelpInfo(line string, pos int) string
}

// CompletionState tracks an active completion cycle inside the editor: the
// candidate list, the current selection, and the token boundaries the
// selected candidate replaces.
type CompletionState struct {
	active       bool
	suggestions  []string
	selected     int
	prefix       string
	startPos     int
	endPos       int
	originalText string
}

// NewCompletionState creates an inactive completion state.
func NewCompletionState() *CompletionState {
	return &CompletionState{selected: -1}
}

// Reset clears all completion state and returns to inactive mode.
func (cs *CompletionState) Reset() {
	*cs = CompletionState{selected: -1}
}

// IsActive returns true while a completion cycle is in progress.
func (cs *CompletionState) IsActive() bool {
	return cs.active
}

// Suggestions returns the current candidate list.
func (cs *CompletionState) Suggestions() []string {
	return cs.suggestions
}

// Selected returns the index of the selected candidate, or -1.
func (cs *CompletionState) Selected() int {
	return cs.selected
}

// StartPos returns where the replaced token starts in the input.
func (cs *CompletionState) StartPos() int {
	return cs.startPos
}

// EndPos returns where the replaced token ends in the input.
func (cs *CompletionState) EndPos() int {
	return cs.endPos
}

// HasMultiple returns true if there is more than one candidate, i.e. the
// suggestion panel is worth showing.
func (cs *CompletionState) HasMultiple() bool {
	return len(cs.suggestions) > 1
}

// Current returns the selected candidate, or "".
func (cs *CompletionState) Current() string {
	if !cs.active || cs.selected < 0 || cs.selected >= len(cs.suggestions) {
		return ""
	}
	return cs.suggestions[cs.selected]
}

// Next advances to the next candidate, wrapping around, and returns it.
func (cs *CompletionState) Next() string {
	if !cs.active || len(cs.suggestions) == 0 {
		return ""
	}
	cs.selected = (cs.selected + 1) % len(cs.suggestions)
	return cs.suggestions[cs.selected]
}

// Prev moves to the previous candidate, wrapping around, and returns it.
func (cs *CompletionState) Prev() string {
	if !cs.active || len(cs.suggestions) == 0 {
		return ""
	}
	cs.selected--
	if cs.selected < 0 {
		cs.selected = len(cs.suggestions) - 1
	}
	return cs.suggestions[cs.selected]
}

// Activate starts a completion cycle with the given candidates and token
// boundaries. originalText is kept so Cancel can restore the line.
func (cs *CompletionState) Activate(suggestions []string, prefix string, startPos, endPos int, originalText string) {
	cs.active = true
	cs.suggestions = suggestions
	cs.selected = -1
	cs.prefix = prefix
	cs.startPos = startPos
	cs.endPos = endPos
	cs.originalText = originalText
}

// UpdateBoundaries moves the token boundaries after a candidate has been
// applied, so the next cycle step replaces the right span.
func (cs *CompletionState) UpdateBoundaries(prefix string, startPos, endPos int) {
	cs.prefix = prefix
	cs.startPos = startPos
	cs.endPos = endPos
}

// Cancel aborts the cycle and returns the original line text.
func (cs *CompletionState) Cancel() string {
	originalText := cs.originalText
	cs.Reset()
	return originalText
}

// GetWordBoundary finds the start and end of the whitespace-delimited word
// at the cursor position.
func GetWordBoundary(text string, cursorPos int) (start, end int) {
	runes := []rune(text)
	cursorPos = min(max(cursorPos, 0), len(runes))

	start = cursorPos
	for start > 0 && !unicode.IsSpace(runes[start-1]) {
		start--
	}

	end = cursorPos
	for end < len(runes) && !unicode.IsSpace(runes[end]) {
		end++
	}

	return start, end
}

// ApplySuggestion replaces text[startPos:endPos] with the suggestion and
// returns the new line plus the new cursor position (end of the insertion).
func ApplySuggestion(text string, suggestion string, startPos, endPos int) (newText string, newCursorPos int) {
	startPos = min(max(startPos, 0), len(text))
	endPos = min(max(endPos, startPos), len(text))

	newText = text[:startPos] + suggestion + text[endPos:]
	newCursorPos = startPos + len(suggestion)
	return newText, newCursorPos
}

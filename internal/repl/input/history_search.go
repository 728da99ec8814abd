package input

import (
	"github.com/sahilm/fuzzy"
)

// HistorySearchState manages reverse history search (Ctrl+R): the query the
// user is typing, the ranked matches, and the input state to restore on
// cancel.
type HistorySearchState struct {
	active            bool
	query             string
	matches           []string
	matchIndex        int
	originalInput     string
	originalCursorPos int
}

// NewHistorySearchState creates an inactive history search state.
func NewHistorySearchState() *HistorySearchState {
	return &HistorySearchState{}
}

// IsActive returns true while search mode is active.
func (s *HistorySearchState) IsActive() bool {
	return s.active
}

// Query returns the current search query.
func (s *HistorySearchState) Query() string {
	return s.query
}

// CurrentMatch returns the selected match, or "".
func (s *HistorySearchState) CurrentMatch() string {
	if len(s.matches) == 0 || s.matchIndex < 0 || s.matchIndex >= len(s.matches) {
		return ""
	}
	return s.matches[s.matchIndex]
}

// MatchCount returns how many history entries match the query.
func (s *HistorySearchState) MatchCount() int {
	return len(s.matches)
}

// Start begins a search session, saving the current input for Cancel.
func (s *HistorySearchState) Start(currentInput string, cursorPos int) {
	s.active = true
	s.query = ""
	s.matches = nil
	s.matchIndex = 0
	s.originalInput = currentInput
	s.originalCursorPos = cursorPos
}

// Refresh recomputes the ranked matches for the current query against the
// given history (most recent first). An empty query matches everything in
// history order; otherwise entries are ranked by fuzzy match quality.
func (s *HistorySearchState) Refresh(history []string) {
	if s.query == "" {
		s.matches = history
	} else {
		ranked := fuzzy.Find(s.query, history)
		s.matches = make([]string, 0, len(ranked))
		for _, match := range ranked {
			s.matches = append(s.matches, match.Str)
		}
	}

	if s.matchIndex >= len(s.matches) {
		s.matchIndex = len(s.matches) - 1
	}
	if s.matchIndex < 0 {
		s.matchIndex = 0
	}
}

// NextMatch moves to the next (worse-ranked or older) match.
func (s *HistorySearchState) NextMatch() bool {
	if s.matchIndex < len(s.matches)-1 {
		s.matchIndex++
		return true
	}
	return false
}

// PrevMatch moves back toward the best-ranked match.
func (s *HistorySearchState) PrevMatch() bool {
	if len(s.matches) > 0 && s.matchIndex > 0 {
		s.matchIndex--
		return true
	}
	return false
}

// AddChar appends a character to the query and resets the selection.
func (s *HistorySearchState) AddChar(r rune) {
	s.query += string(r)
	s.matchIndex = 0
}

// DeleteChar removes the last query character. Returns true if one was
// removed.
func (s *HistorySearchState) DeleteChar() bool {
	if len(s.query) == 0 {
		return false
	}
	runes := []rune(s.query)
	s.query = string(runes[:len(runes)-1])
	s.matchIndex = 0
	return true
}

// Cancel exits search mode and returns the input state to restore.
func (s *HistorySearchState) Cancel() (originalInput string, originalCursorPos int) {
	originalInput = s.originalInput
	originalCursorPos = s.originalCursorPos
	s.Reset()
	return
}

// Accept exits search mode keeping the current match, falling back to the
// original input when nothing matched.
func (s *HistorySearchState) Accept() string {
	result := s.CurrentMatch()
	if result == "" {
		result = s.originalInput
	}
	s.Reset()
	return result
}

// Reset clears the search state.
func (s *HistorySearchState) Reset() {
	*s = HistorySearchState{}
}

package input

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Action represents a keyboard action that can be triggered by key bindings.
type Action int

const (
	// ActionNone represents no action (used when a key doesn't match any binding).
	ActionNone Action = iota

	// Navigation actions
	ActionCharacterForward  // Move cursor one character forward (Ctrl+F, Right)
	ActionCharacterBackward // Move cursor one character backward (Ctrl+B, Left)
	ActionWordForward       // Move cursor one word forward (Alt+F, Alt+Right)
	ActionWordBackward      // Move cursor one word backward (Alt+B, Alt+Left)
	ActionLineStart         // Move cursor to start of line (Ctrl+A, Home)
	ActionLineEnd           // Move cursor to end of line (Ctrl+E, End)

	// Deletion actions
	ActionDeleteCharacterBackward // Delete character before cursor (Backspace, Ctrl+H)
	ActionDeleteCharacterForward  // Delete character at cursor (Delete, Ctrl+D)
	ActionDeleteWordBackward      // Delete word before cursor (Ctrl+W, Alt+Backspace)
	ActionDeleteWordForward       // Delete word after cursor (Alt+D, Alt+Delete)
	ActionDeleteBeforeCursor      // Delete all text before cursor (Ctrl+U)
	ActionDeleteAfterCursor       // Delete all text after cursor (Ctrl+K)

	// Vertical navigation (context-dependent: history or completion)
	ActionCursorUp   // Move up (Up, Ctrl+P) - history previous or completion previous
	ActionCursorDown // Move down (Down, Ctrl+N) - history next or completion next

	// Completion actions
	ActionComplete         // Trigger tab completion (Tab)
	ActionCompleteBackward // Cycle backwards through completions (Shift+Tab)

	// History search
	ActionHistorySearch // Start reverse history search (Ctrl+R)

	// Special actions
	ActionSubmit      // Submit the current input (Enter)
	ActionCancel      // Cancel current operation (Escape)
	ActionInterrupt   // Send interrupt signal (Ctrl+C)
	ActionEOF         // End of file / exit (Ctrl+D when input is empty)
	ActionClearScreen // Clear the screen (Ctrl+L)
	ActionPaste       // Paste from clipboard (Ctrl+V)
)

// String returns the string representation of an Action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionCharacterForward:
		return "CharacterForward"
	case ActionCharacterBackward:
		return "CharacterBackward"
	case ActionWordForward:
		return "WordForward"
	case ActionWordBackward:
		return "WordBackward"
	case ActionLineStart:
		return "LineStart"
	case ActionLineEnd:
		return "LineEnd"
	case ActionDeleteCharacterBackward:
		return "DeleteCharacterBackward"
	case ActionDeleteCharacterForward:
		return "DeleteCharacterForward"
	case ActionDeleteWordBackward:
		return "DeleteWordBackward"
	case ActionDeleteWordForward:
		return "DeleteWordForward"
	case ActionDeleteBeforeCursor:
		return "DeleteBeforeCursor"
	case ActionDeleteAfterCursor:
		return "DeleteAfterCursor"
	case ActionCursorUp:
		return "CursorUp"
	case ActionCursorDown:
		return "CursorDown"
	case ActionComplete:
		return "Complete"
	case ActionCompleteBackward:
		return "CompleteBackward"
	case ActionHistorySearch:
		return "HistorySearch"
	case ActionSubmit:
		return "Submit"
	case ActionCancel:
		return "Cancel"
	case ActionInterrupt:
		return "Interrupt"
	case ActionEOF:
		return "EOF"
	case ActionClearScreen:
		return "ClearScreen"
	case ActionPaste:
		return "Paste"
	default:
		return "Unknown"
	}
}

// KeyBinding maps a set of key sequences to an action. Each key string is a
// tea.KeyMsg string representation.
type KeyBinding struct {
	Keys   []string
	Action Action
}

// KeyMap holds all key bindings for the input component. Lookup is O(1)
// using an internal hash map.
type KeyMap struct {
	bindings []KeyBinding
	lookup   map[string]Action
}

// NewKeyMap creates a new KeyMap with the given bindings.
func NewKeyMap(bindings []KeyBinding) *KeyMap {
	km := &KeyMap{
		bindings: bindings,
	}
	km.rebuildLookup()
	return km
}

func (km *KeyMap) rebuildLookup() {
	km.lookup = make(map[string]Action)
	for _, b := range km.bindings {
		for _, key := range b.Keys {
			km.lookup[key] = b.Action
		}
	}
}

// DefaultKeyMap returns a KeyMap with default Emacs-style key bindings.
func DefaultKeyMap() *KeyMap {
	return NewKeyMap([]KeyBinding{
		{Keys: []string{"right", "ctrl+f"}, Action: ActionCharacterForward},
		{Keys: []string{"left", "ctrl+b"}, Action: ActionCharacterBackward},
		{Keys: []string{"alt+right", "ctrl+right", "alt+f"}, Action: ActionWordForward},
		{Keys: []string{"alt+left", "ctrl+left", "alt+b"}, Action: ActionWordBackward},
		{Keys: []string{"home", "ctrl+a"}, Action: ActionLineStart},
		{Keys: []string{"end", "ctrl+e"}, Action: ActionLineEnd},

		{Keys: []string{"backspace", "ctrl+h"}, Action: ActionDeleteCharacterBackward},
		{Keys: []string{"delete", "ctrl+d"}, Action: ActionDeleteCharacterForward},
		{Keys: []string{"ctrl+w", "alt+backspace"}, Action: ActionDeleteWordBackward},
		{Keys: []string{"alt+d", "alt+delete"}, Action: ActionDeleteWordForward},
		{Keys: []string{"ctrl+u"}, Action: ActionDeleteBeforeCursor},
		{Keys: []string{"ctrl+k"}, Action: ActionDeleteAfterCursor},

		{Keys: []string{"up", "ctrl+p"}, Action: ActionCursorUp},
		{Keys: []string{"down", "ctrl+n"}, Action: ActionCursorDown},

		{Keys: []string{"tab"}, Action: ActionComplete},
		{Keys: []string{"shift+tab"}, Action: ActionCompleteBackward},

		{Keys: []string{"ctrl+r"}, Action: ActionHistorySearch},

		{Keys: []string{"enter"}, Action: ActionSubmit},
		{Keys: []string{"esc"}, Action: ActionCancel},
		{Keys: []string{"ctrl+c"}, Action: ActionInterrupt},
		{Keys: []string{"ctrl+l"}, Action: ActionClearScreen},
		{Keys: []string{"ctrl+v"}, Action: ActionPaste},
	})
}

// Lookup finds the action for the given key message. Returns ActionNone if
// no binding matches.
func (km *KeyMap) Lookup(msg tea.KeyMsg) Action {
	if action, ok := km.lookup[msg.String()]; ok {
		return action
	}
	return ActionNone
}

// SetBinding adds or updates the binding for an action.
func (km *KeyMap) SetBinding(binding KeyBinding) {
	for i, b := range km.bindings {
		if b.Action == binding.Action {
			km.bindings[i] = binding
			km.rebuildLookup()
			return
		}
	}
	km.bindings = append(km.bindings, binding)
	km.rebuildLookup()
}

// GetBinding returns the binding for the given action, or nil if not found.
func (km *KeyMap) GetBinding(action Action) *KeyBinding {
	for i := range km.bindings {
		if km.bindings[i].Action == action {
			return &km.bindings[i]
		}
	}
	return nil
}

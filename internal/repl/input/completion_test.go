package input

import (
	"testing"
)

func TestCompletionStateLifecycle(t *testing.T) {
	cs := NewCompletionState()

	if cs.IsActive() {
		t.Error("new state should be inactive")
	}

	cs.Activate([]string{"foo", "foobar", "format"}, "fo", 0, 2, "fo")
	if !cs.IsActive() {
		t.Error("state should be active after Activate")
	}
	if !cs.HasMultiple() {
		t.Error("three suggestions should report HasMultiple")
	}
	if cs.Current() != "" {
		t.Errorf("no candidate selected yet, got %q", cs.Current())
	}
}

func TestCompletionStateCycling(t *testing.T) {
	cs := NewCompletionState()
	cs.Activate([]string{"foo", "foobar"}, "fo", 0, 2, "fo")

	if got := cs.Next(); got != "foo" {
		t.Errorf("expected first candidate %q, got %q", "foo", got)
	}
	if got := cs.Next(); got != "foobar" {
		t.Errorf("expected second candidate %q, got %q", "foobar", got)
	}
	// wraps around
	if got := cs.Next(); got != "foo" {
		t.Errorf("expected wrap to %q, got %q", "foo", got)
	}
	if got := cs.Prev(); got != "foobar" {
		t.Errorf("expected wrap back to %q, got %q", "foobar", got)
	}
}

func TestCompletionStateCancel(t *testing.T) {
	cs := NewCompletionState()
	cs.Activate([]string{"foo", "foobar"}, "fo", 0, 2, "fo")
	cs.Next()

	original := cs.Cancel()
	if original != "fo" {
		t.Errorf("expected original text %q, got %q", "fo", original)
	}
	if cs.IsActive() {
		t.Error("state should be inactive after Cancel")
	}
	if cs.Current() != "" {
		t.Error("no candidate after Cancel")
	}
}

func TestCompletionStateInactiveCycling(t *testing.T) {
	cs := NewCompletionState()
	if cs.Next() != "" || cs.Prev() != "" {
		t.Error("cycling an inactive state should return empty strings")
	}
}

func TestGetWordBoundary(t *testing.T) {
	tests := []struct {
		text      string
		cursorPos int
		start     int
		end       int
	}{
		{"", 0, 0, 0},
		{"foo", 3, 0, 3},
		{"foo bar", 7, 4, 7},
		{"foo bar", 5, 4, 7},
		{"foo bar", 3, 0, 3},
		{"foo ", 4, 4, 4},
		{"sys.Path", 8, 0, 8},
	}

	for _, tt := range tests {
		start, end := GetWordBoundary(tt.text, tt.cursorPos)
		if start != tt.start || end != tt.end {
			t.Errorf("GetWordBoundary(%q, %d) = (%d, %d), want (%d, %d)",
				tt.text, tt.cursorPos, start, end, tt.start, tt.end)
		}
	}
}

func TestApplySuggestion(t *testing.T) {
	newText, newPos := ApplySuggestion("fo bar", "foobar(", 0, 2)
	if newText != "foobar( bar" {
		t.Errorf("expected %q, got %q", "foobar( bar", newText)
	}
	if newPos != 7 {
		t.Errorf("expected cursor at 7, got %d", newPos)
	}
}

func TestApplySuggestionClampsBounds(t *testing.T) {
	newText, newPos := ApplySuggestion("fo", "foo", -3, 99)
	if newText != "foo" {
		t.Errorf("expected %q, got %q", "foo", newText)
	}
	if newPos != 3 {
		t.Errorf("expected cursor at 3, got %d", newPos)
	}
}

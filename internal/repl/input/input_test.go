package input

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

// stubProvider implements CompletionProvider for testing.
type stubProvider struct {
	completions []string
}

func (p *stubProvider) GetCompletions(line string, pos int) []string {
	return p.completions
}

func (p *stubProvider) GetHelpInfo(line string, pos int) string {
	return ""
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyType(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func typeString(m *Model, s string) *Model {
	for _, r := range s {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(*Model)
	}
	return m
}

func TestModelTypesCharacters(t *testing.T) {
	m := NewModel(Options{Prompt: "> "})
	m = typeString(m, "hello")

	if m.Value() != "hello" {
		t.Errorf("expected %q, got %q", "hello", m.Value())
	}
}

func TestModelSanitizesPastedControlCharacters(t *testing.T) {
	m := NewModel(Options{})
	next, _ := m.Update(pasteMsg{text: "a\tb\nc"})
	m = next.(*Model)

	if m.Value() != "a b c" {
		t.Errorf("expected %q, got %q", "a b c", m.Value())
	}
}

func TestModelSubmit(t *testing.T) {
	m := NewModel(Options{})
	m = typeString(m, "version")

	next, cmd := m.Update(keyType(tea.KeyEnter))
	m = next.(*Model)

	if cmd == nil {
		t.Fatal("expected quit command on submit")
	}
	result := m.Result()
	if result == nil || result.Kind != ResultSubmit {
		t.Fatal("expected submit result")
	}
	if result.Input != "version" {
		t.Errorf("expected input %q, got %q", "version", result.Input)
	}
}

func TestModelInterrupt(t *testing.T) {
	m := NewModel(Options{})
	m = typeString(m, "half typed")

	next, _ := m.Update(keyType(tea.KeyCtrlC))
	m = next.(*Model)

	result := m.Result()
	if result == nil || result.Kind != ResultInterrupt {
		t.Fatal("expected interrupt result")
	}
}

func TestModelEOFOnEmptyLine(t *testing.T) {
	m := NewModel(Options{})

	next, _ := m.Update(keyType(tea.KeyCtrlD))
	m = next.(*Model)

	result := m.Result()
	if result == nil || result.Kind != ResultEOF {
		t.Fatal("expected EOF result on empty line")
	}
}

func TestModelCtrlDDeletesWhenNotEmpty(t *testing.T) {
	m := NewModel(Options{})
	m = typeString(m, "ab")
	next, _ := m.Update(keyType(tea.KeyCtrlA))
	m = next.(*Model)

	next, _ = m.Update(keyType(tea.KeyCtrlD))
	m = next.(*Model)

	if m.Result() != nil {
		t.Fatal("Ctrl+D with text should not end the session")
	}
	if m.Value() != "b" {
		t.Errorf("expected %q, got %q", "b", m.Value())
	}
}

func TestModelHistoryNavigation(t *testing.T) {
	m := NewModel(Options{HistoryValues: []string{"newest", "older", "oldest"}})
	m = typeString(m, "draft")

	next, _ := m.Update(keyType(tea.KeyUp))
	m = next.(*Model)
	if m.Value() != "newest" {
		t.Errorf("expected %q, got %q", "newest", m.Value())
	}

	next, _ = m.Update(keyType(tea.KeyUp))
	m = next.(*Model)
	if m.Value() != "older" {
		t.Errorf("expected %q, got %q", "older", m.Value())
	}

	next, _ = m.Update(keyType(tea.KeyDown))
	m = next.(*Model)
	if m.Value() != "newest" {
		t.Errorf("expected %q, got %q", "newest", m.Value())
	}

	// moving past the newest entry restores the draft
	next, _ = m.Update(keyType(tea.KeyDown))
	m = next.(*Model)
	if m.Value() != "draft" {
		t.Errorf("expected draft restored, got %q", m.Value())
	}
}

func TestModelHistoryStopsAtOldest(t *testing.T) {
	m := NewModel(Options{HistoryValues: []string{"only"}})

	next, _ := m.Update(keyType(tea.KeyUp))
	m = next.(*Model)
	next, _ = m.Update(keyType(tea.KeyUp))
	m = next.(*Model)

	if m.Value() != "only" {
		t.Errorf("expected %q, got %q", "only", m.Value())
	}
}

func TestModelSingleCompletionAppliesImmediately(t *testing.T) {
	provider := &stubProvider{completions: []string{"version"}}
	m := NewModel(Options{CompletionProvider: provider})
	m = typeString(m, "ver")

	next, _ := m.Update(keyType(tea.KeyTab))
	m = next.(*Model)

	if m.Value() != "version" {
		t.Errorf("expected %q, got %q", "version", m.Value())
	}
	if m.completion.IsActive() {
		t.Error("single completion should not open the panel")
	}
}

func TestModelCompletionCycling(t *testing.T) {
	provider := &stubProvider{completions: []string{"foo", "foobar("}}
	m := NewModel(Options{CompletionProvider: provider})
	m = typeString(m, "fo")

	next, _ := m.Update(keyType(tea.KeyTab))
	m = next.(*Model)
	if !m.completion.IsActive() {
		t.Fatal("expected completion panel to open")
	}

	next, _ = m.Update(keyType(tea.KeyTab))
	m = next.(*Model)
	if m.Value() != "foo" {
		t.Errorf("expected first candidate applied, got %q", m.Value())
	}

	next, _ = m.Update(keyType(tea.KeyTab))
	m = next.(*Model)
	if m.Value() != "foobar(" {
		t.Errorf("expected second candidate applied, got %q", m.Value())
	}

	next, _ = m.Update(keyType(tea.KeyShiftTab))
	m = next.(*Model)
	if m.Value() != "foo" {
		t.Errorf("expected cycling back to first candidate, got %q", m.Value())
	}
}

func TestModelCompletionCancelRestoresText(t *testing.T) {
	provider := &stubProvider{completions: []string{"foo", "foobar("}}
	m := NewModel(Options{CompletionProvider: provider})
	m = typeString(m, "fo")

	next, _ := m.Update(keyType(tea.KeyTab))
	m = next.(*Model)
	next, _ = m.Update(keyType(tea.KeyTab))
	m = next.(*Model)

	next, _ = m.Update(keyType(tea.KeyEsc))
	m = next.(*Model)

	if m.Value() != "fo" {
		t.Errorf("expected original text restored, got %q", m.Value())
	}
	if m.completion.IsActive() {
		t.Error("expected completion to be cancelled")
	}
}

func TestModelCompletionClosedByTyping(t *testing.T) {
	provider := &stubProvider{completions: []string{"foo", "foobar("}}
	m := NewModel(Options{CompletionProvider: provider})
	m = typeString(m, "fo")

	next, _ := m.Update(keyType(tea.KeyTab))
	m = next.(*Model)
	next, _ = m.Update(keyRunes("x"))
	m = next.(*Model)

	if m.completion.IsActive() {
		t.Error("typing should close the completion panel")
	}
	if m.Value() != "fox" {
		t.Errorf("expected %q, got %q", "fox", m.Value())
	}
}

func TestModelHistorySearchFlow(t *testing.T) {
	history := []string{"version", "env.HOME"}
	m := NewModel(Options{HistoryValues: history})

	next, _ := m.Update(keyType(tea.KeyCtrlR))
	m = next.(*Model)
	if !m.search.IsActive() {
		t.Fatal("expected search mode after Ctrl+R")
	}

	next, _ = m.Update(keyRunes("env"))
	m = next.(*Model)

	if m.search.CurrentMatch() != "env.HOME" {
		t.Errorf("expected match %q, got %q", "env.HOME", m.search.CurrentMatch())
	}

	next, _ = m.Update(keyType(tea.KeyEnter))
	m = next.(*Model)
	result := m.Result()
	if result == nil || result.Kind != ResultSubmit || result.Input != "env.HOME" {
		t.Fatalf("expected submit of matched entry, got %+v", result)
	}
}

func TestModelHistorySearchCancel(t *testing.T) {
	m := NewModel(Options{HistoryValues: []string{"version"}})
	m = typeString(m, "draft")

	next, _ := m.Update(keyType(tea.KeyCtrlR))
	m = next.(*Model)
	next, _ = m.Update(keyRunes("v"))
	m = next.(*Model)
	next, _ = m.Update(keyType(tea.KeyEsc))
	m = next.(*Model)

	if m.search.IsActive() {
		t.Error("expected search mode to end on Esc")
	}
	if m.Value() != "draft" {
		t.Errorf("expected draft restored, got %q", m.Value())
	}
}

func TestModelViewShowsPromptAndText(t *testing.T) {
	m := NewModel(Options{Prompt: "qsh> ", RenderConfig: DefaultRenderConfig()})
	m = typeString(m, "version")

	view := m.View()
	if !strings.Contains(view, "qsh>") {
		t.Errorf("expected prompt in view, got %q", view)
	}
	if !strings.Contains(view, "version") {
		t.Errorf("expected text in view, got %q", view)
	}
}

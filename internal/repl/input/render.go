package input

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

// RenderConfig holds styling for the input component.
type RenderConfig struct {
	// PromptStyle is applied to the prompt string.
	PromptStyle lipgloss.Style

	// TextStyle is applied to the input text.
	TextStyle lipgloss.Style

	// CursorStyle is applied to the character under the cursor.
	CursorStyle lipgloss.Style

	// CompletionPanelStyle is the container for the suggestion list.
	CompletionPanelStyle lipgloss.Style

	// SelectedStyle marks the selected suggestion.
	SelectedStyle lipgloss.Style

	// SearchStyle is applied to the reverse-search status line.
	SearchStyle lipgloss.Style
}

// DefaultRenderConfig returns sensible default styles.
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		PromptStyle: lipgloss.NewStyle().Bold(true),
		TextStyle:   lipgloss.NewStyle(),
		CursorStyle: lipgloss.NewStyle().Reverse(true),
		CompletionPanelStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("3")),
		SelectedStyle: lipgloss.NewStyle().Bold(true),
		SearchStyle:   lipgloss.NewStyle().Faint(true),
	}
}

// Renderer renders the input line and the completion panel.
type Renderer struct {
	config RenderConfig
	width  int
}

// NewRenderer creates a Renderer with the given configuration.
func NewRenderer(config RenderConfig) *Renderer {
	return &Renderer{
		config: config,
		width:  80,
	}
}

// SetWidth sets the terminal width used for clipping.
func (r *Renderer) SetWidth(width int) {
	if width > 0 {
		r.width = width
	}
}

// Width returns the current terminal width.
func (r *Renderer) Width() int {
	return r.width
}

// RenderInputLine renders prompt, text, and cursor.
func (r *Renderer) RenderInputLine(prompt string, buffer *Buffer, focused bool) string {
	var sb strings.Builder
	sb.WriteString(r.config.PromptStyle.Render(prompt))

	if !focused {
		sb.WriteString(r.config.TextStyle.Render(buffer.Text()))
		return sb.String()
	}

	sb.WriteString(r.config.TextStyle.Render(buffer.TextBeforeCursor()))
	if cursor := buffer.RuneAtCursor(); cursor != 0 {
		sb.WriteString(r.config.CursorStyle.Render(string(cursor)))
		after := []rune(buffer.TextAfterCursor())
		sb.WriteString(r.config.TextStyle.Render(string(after[1:])))
	} else {
		sb.WriteString(r.config.CursorStyle.Render(" "))
	}

	return sb.String()
}

// RenderCompletionPanel renders the suggestion list below the input line.
// Returns "" when there is nothing worth showing.
func (r *Renderer) RenderCompletionPanel(cs *CompletionState, maxSuggestions int) string {
	if cs == nil || !cs.IsActive() || !cs.HasMultiple() {
		return ""
	}

	suggestions := cs.Suggestions()
	selected := cs.Selected()

	limit := len(suggestions)
	if maxSuggestions > 0 && maxSuggestions < limit {
		limit = maxSuggestions
	}

	innerWidth := r.width - 4 // panel border and marker
	if innerWidth < 1 {
		innerWidth = 1
	}

	lines := make([]string, 0, limit+1)
	for i := 0; i < limit; i++ {
		line := truncate.String(suggestions[i], uint(innerWidth))
		if i == selected {
			lines = append(lines, r.config.SelectedStyle.Render("> "+line))
		} else {
			lines = append(lines, "  "+line)
		}
	}
	if limit < len(suggestions) {
		lines = append(lines, fmt.Sprintf("  … %d more", len(suggestions)-limit))
	}

	return r.config.CompletionPanelStyle.Render(strings.Join(lines, "\n"))
}

// RenderSearchLine renders the reverse-history-search status line.
func (r *Renderer) RenderSearchLine(search *HistorySearchState) string {
	if search == nil || !search.IsActive() {
		return ""
	}

	status := fmt.Sprintf("(reverse-i-search)`%s': %s", search.Query(), search.CurrentMatch())
	return r.config.SearchStyle.Render(truncate.String(status, uint(r.width)))
}

// RenderFullView renders the whole component: search line or input line,
// plus the completion panel when active.
func (r *Renderer) RenderFullView(prompt string, buffer *Buffer, focused bool, cs *CompletionState, search *HistorySearchState, maxSuggestions int) string {
	var sections []string

	if search != nil && search.IsActive() {
		sections = append(sections, r.RenderSearchLine(search))
	} else {
		sections = append(sections, r.RenderInputLine(prompt, buffer, focused))
	}

	if panel := r.RenderCompletionPanel(cs, maxSuggestions); panel != "" {
		sections = append(sections, panel)
	}

	return strings.Join(sections, "\n")
}

// Package input implements the interactive line editor used by the REPL.
// It is a bubbletea model with emacs-style key bindings, tab completion,
// history navigation, and reverse history search.
package input

import (
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// ResultKind describes how an editing session ended.
type ResultKind int

const (
	// ResultSubmit means the user submitted a line with Enter.
	ResultSubmit ResultKind = iota
	// ResultInterrupt means the user pressed Ctrl+C.
	ResultInterrupt
	// ResultEOF means the user pressed Ctrl+D on an empty line.
	ResultEOF
)

// Result is the outcome of one editing session.
type Result struct {
	Kind  ResultKind
	Input string
}

// Options configures a Model.
type Options struct {
	Prompt             string
	CompletionProvider CompletionProvider
	HistoryValues      []string
	MaxSuggestions     int
	RenderConfig       RenderConfig
	Logger             *zap.Logger
}

// Model is the bubbletea model for a single line of input.
type Model struct {
	prompt   string
	buffer   *Buffer
	keymap   *KeyMap
	renderer *Renderer

	completion *CompletionState
	provider   CompletionProvider

	search              *HistorySearchState
	historyValues       []string
	historyIndex        int
	savedCurrentInput   string
	hasNavigatedHistory bool

	maxSuggestions int
	result         *Result
	logger         *zap.Logger
}

type pasteMsg struct {
	text string
	err  error
}

// NewModel creates a line editor model.
func NewModel(opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	maxSuggestions := opts.MaxSuggestions
	if maxSuggestions <= 0 {
		maxSuggestions = 10
	}
	return &Model{
		prompt:         opts.Prompt,
		buffer:         NewBuffer(),
		keymap:         DefaultKeyMap(),
		renderer:       NewRenderer(opts.RenderConfig),
		completion:     NewCompletionState(),
		provider:       opts.CompletionProvider,
		search:         NewHistorySearchState(),
		historyValues:  opts.HistoryValues,
		historyIndex:   -1,
		maxSuggestions: maxSuggestions,
		logger:         logger,
	}
}

// Result returns the session result, or nil if editing is still in progress.
func (m *Model) Result() *Result {
	return m.result
}

// Value returns the current buffer contents.
func (m *Model) Value() string {
	return m.buffer.Text()
}

// SetValue replaces the buffer contents and moves the cursor to the end.
func (m *Model) SetValue(text string) {
	m.buffer.SetText(text)
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.renderer.SetWidth(msg.Width)
		return m, nil

	case pasteMsg:
		if msg.err != nil {
			m.logger.Debug("clipboard paste failed", zap.Error(msg.err))
			return m, nil
		}
		m.buffer.InsertRunes(sanitizeRunes([]rune(msg.text)))
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	return m.renderer.RenderFullView(m.prompt, m.buffer, m.result == nil, m.completion, m.search, m.maxSuggestions)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.search.IsActive() {
		return m.handleSearchKey(msg)
	}

	action := m.keymap.Lookup(msg)

	if m.completion.IsActive() {
		if model, cmd, handled := m.handleCompletionKey(action); handled {
			return model, cmd
		}
	}

	switch action {
	case ActionCharacterForward:
		m.buffer.SetPos(m.buffer.Pos() + 1)
	case ActionCharacterBackward:
		m.buffer.SetPos(m.buffer.Pos() - 1)
	case ActionWordForward:
		m.buffer.WordForward()
	case ActionWordBackward:
		m.buffer.WordBackward()
	case ActionLineStart:
		m.buffer.CursorStart()
	case ActionLineEnd:
		m.buffer.CursorEnd()

	case ActionDeleteCharacterBackward:
		m.buffer.DeleteCharBackward()
	case ActionDeleteCharacterForward:
		if m.buffer.Len() == 0 {
			// Ctrl+D on an empty line is EOF
			m.result = &Result{Kind: ResultEOF}
			return m, tea.Quit
		}
		m.buffer.DeleteCharForward()
	case ActionDeleteWordBackward:
		m.buffer.DeleteWordBackward()
	case ActionDeleteWordForward:
		m.buffer.DeleteWordForward()
	case ActionDeleteBeforeCursor:
		m.buffer.DeleteBeforeCursor()
	case ActionDeleteAfterCursor:
		m.buffer.DeleteAfterCursor()

	case ActionCursorUp:
		m.navigateHistoryBack()
	case ActionCursorDown:
		m.navigateHistoryForward()

	case ActionComplete:
		m.handleComplete()
	case ActionHistorySearch:
		m.search.Start(m.buffer.Text(), m.buffer.Pos())
		m.search.Refresh(m.historyValues)

	case ActionSubmit:
		m.result = &Result{Kind: ResultSubmit, Input: m.buffer.Text()}
		return m, tea.Quit
	case ActionInterrupt:
		m.result = &Result{Kind: ResultInterrupt, Input: m.buffer.Text()}
		return m, tea.Quit
	case ActionClearScreen:
		return m, tea.ClearScreen
	case ActionPaste:
		return m, pasteFromClipboard
	case ActionCancel:
		// nothing to cancel outside completion or search

	default:
		if len(msg.Runes) > 0 {
			m.resetHistoryNavigation()
			m.buffer.InsertRunes(sanitizeRunes(msg.Runes))
		}
	}

	return m, nil
}

// handleCompletionKey intercepts keys while the completion panel is open.
// Returns handled=false for keys that should close the panel and be
// processed normally.
func (m *Model) handleCompletionKey(action Action) (tea.Model, tea.Cmd, bool) {
	switch action {
	case ActionComplete, ActionCursorDown:
		m.applyCompletion(m.completion.Next())
		return m, nil, true
	case ActionCompleteBackward, ActionCursorUp:
		m.applyCompletion(m.completion.Prev())
		return m, nil, true
	case ActionCancel:
		original := m.completion.Cancel()
		m.buffer.SetText(original)
		return m, nil, true
	case ActionSubmit:
		// accept the selected suggestion and keep editing
		m.completion.Reset()
		return m, nil, true
	default:
		m.completion.Reset()
		return m, nil, false
	}
}

func (m *Model) handleComplete() {
	if m.provider == nil {
		return
	}

	suggestions := m.provider.GetCompletions(m.buffer.Text(), m.buffer.Pos())
	if len(suggestions) == 0 {
		return
	}

	start, end := GetWordBoundary(m.buffer.Text(), m.buffer.Pos())
	prefix := m.buffer.Text()[start:end]

	if len(suggestions) == 1 {
		newText, newPos := ApplySuggestion(m.buffer.Text(), suggestions[0], start, end)
		m.buffer.SetText(newText)
		m.buffer.SetPos(newPos)
		return
	}

	m.completion.Activate(suggestions, prefix, start, end, m.buffer.Text())
	m.applyCompletion(m.completion.Current())
}

func (m *Model) applyCompletion(suggestion string) {
	if suggestion == "" {
		return
	}
	newText, newPos := ApplySuggestion(m.buffer.Text(), suggestion, m.completion.StartPos(), m.completion.EndPos())
	m.buffer.SetText(newText)
	m.buffer.SetPos(newPos)
	m.completion.UpdateBoundaries(suggestion, m.completion.StartPos(), m.completion.StartPos()+len(suggestion))
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keymap.Lookup(msg) {
	case ActionHistorySearch:
		m.search.NextMatch()
		return m, nil
	case ActionCancel, ActionInterrupt:
		original, pos := m.search.Cancel()
		m.buffer.SetText(original)
		m.buffer.SetPos(pos)
		return m, nil
	case ActionSubmit:
		accepted := m.search.Accept()
		m.buffer.SetText(accepted)
		m.result = &Result{Kind: ResultSubmit, Input: accepted}
		return m, tea.Quit
	case ActionDeleteCharacterBackward:
		m.search.DeleteChar()
		m.search.Refresh(m.historyValues)
		return m, nil
	case ActionCursorUp:
		m.search.NextMatch()
		return m, nil
	case ActionCursorDown:
		m.search.PrevMatch()
		return m, nil
	}

	if len(msg.Runes) > 0 {
		for _, r := range msg.Runes {
			m.search.AddChar(r)
		}
		m.search.Refresh(m.historyValues)
		return m, nil
	}

	// any other key accepts the match into the buffer and continues editing
	accepted := m.search.Accept()
	m.buffer.SetText(accepted)
	return m, nil
}

func (m *Model) navigateHistoryBack() {
	if len(m.historyValues) == 0 {
		return
	}
	if !m.hasNavigatedHistory {
		m.savedCurrentInput = m.buffer.Text()
		m.hasNavigatedHistory = true
		m.historyIndex = -1
	}
	if m.historyIndex+1 >= len(m.historyValues) {
		return
	}
	m.historyIndex++
	m.buffer.SetText(m.historyValues[m.historyIndex])
}

func (m *Model) navigateHistoryForward() {
	if !m.hasNavigatedHistory {
		return
	}
	if m.historyIndex <= 0 {
		m.buffer.SetText(m.savedCurrentInput)
		m.resetHistoryNavigation()
		return
	}
	m.historyIndex--
	m.buffer.SetText(m.historyValues[m.historyIndex])
}

func (m *Model) resetHistoryNavigation() {
	m.hasNavigatedHistory = false
	m.historyIndex = -1
	m.savedCurrentInput = ""
}

func pasteFromClipboard() tea.Msg {
	text, err := clipboard.ReadAll()
	return pasteMsg{text: text, err: err}
}

// sanitizeRunes replaces control characters that would corrupt a single-line
// buffer with spaces.
func sanitizeRunes(runes []rune) []rune {
	out := make([]rune, len(runes))
	for i, r := range runes {
		if r == '\t' || r == '\n' || r == '\r' {
			out[i] = ' '
		} else {
			out[i] = r
		}
	}
	return out
}

// ReadLine runs one interactive editing session and returns its result.
func ReadLine(opts Options) (*Result, error) {
	model := NewModel(opts)
	program := tea.NewProgram(model)
	finalModel, err := program.Run()
	if err != nil {
		return nil, err
	}
	final, ok := finalModel.(*Model)
	if !ok || final.result == nil {
		return &Result{Kind: ResultEOF}, nil
	}
	return final.result, nil
}

var _ tea.Model = (*Model)(nil)

package repl

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestREPL(t *testing.T, stdin string) (*REPL, *bytes.Buffer) {
	t.Helper()
	tmpDir := t.TempDir()

	var out bytes.Buffer
	r, err := NewREPL(Options{
		ConfigPath:  filepath.Join(tmpDir, "nonexistent.yaml"),
		HistoryPath: filepath.Join(tmpDir, "history.db"),
		Logger:      zaptest.NewLogger(t),
		Stdin:       strings.NewReader(stdin),
		Stdout:      &out,
	})
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	return r, &out
}

func TestNewREPL_DefaultOptions(t *testing.T) {
	r, _ := newTestREPL(t, "")

	assert.Equal(t, "qsh> ", r.Config().Prompt)
	assert.Equal(t, "info", r.Config().LogLevel)
	assert.NotNil(t, r.History())
	assert.NotNil(t, r.Completer())
	assert.NotNil(t, r.Namespace())
}

func TestNewREPL_WithConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	err := os.WriteFile(configPath, []byte("prompt: \"test> \"\nlogLevel: debug\n"), 0o644)
	require.NoError(t, err)

	r, err := NewREPL(Options{
		ConfigPath:  configPath,
		HistoryPath: filepath.Join(tmpDir, "history.db"),
		Logger:      zaptest.NewLogger(t),
	})
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, "test> ", r.getPrompt())
	assert.Equal(t, "debug", r.Config().LogLevel)
}

func TestNewREPL_NilLogger(t *testing.T) {
	tmpDir := t.TempDir()
	r, err := NewREPL(Options{
		ConfigPath:  filepath.Join(tmpDir, "nonexistent.yaml"),
		HistoryPath: filepath.Join(tmpDir, "history.db"),
	})
	require.NoError(t, err)
	defer r.Close()
	require.NotNil(t, r)
}

func TestREPL_Close(t *testing.T) {
	r, _ := newTestREPL(t, "")
	assert.NoError(t, r.Close())
}

func TestREPL_Run_ContextCancellation(t *testing.T) {
	r, _ := newTestREPL(t, "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := r.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestREPL_Run_Scripted(t *testing.T) {
	r, out := newTestREPL(t, "x = 42\nx\n:quit\nnever reached\n")

	err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Contains(t, out.String(), "42")
	assert.NotContains(t, out.String(), "never reached")
}

func TestREPL_Run_ScriptedEOF(t *testing.T) {
	r, out := newTestREPL(t, "greeting = 'hello'\ngreeting\n")

	err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Contains(t, out.String(), `"hello"`)
}

func TestREPL_ProcessInput_TracksDuration(t *testing.T) {
	r, _ := newTestREPL(t, "")

	callCount := 0
	originalTimeNow := timeNow
	timeNow = func() time.Time {
		callCount++
		if callCount == 1 {
			return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		}
		return time.Date(2026, 1, 1, 0, 0, 0, 100000000, time.UTC)
	}
	defer func() { timeNow = originalTimeNow }()

	err := r.processInput(context.Background(), "x = 1")
	require.NoError(t, err)
	assert.Equal(t, int64(100), r.lastDurationMs)
}

func TestREPL_ProcessInput_RecordsHistory(t *testing.T) {
	r, _ := newTestREPL(t, "")

	require.NoError(t, r.processInput(context.Background(), "x = 1"))
	require.NoError(t, r.processInput(context.Background(), "   "))

	inputs, err := r.History().RecentInputs(10)
	require.NoError(t, err)
	assert.Equal(t, []string{"x = 1"}, inputs)
}

func TestREPL_ProcessInput_CommandsNotRecorded(t *testing.T) {
	r, _ := newTestREPL(t, "")

	require.NoError(t, r.processInput(context.Background(), ":help"))

	inputs, err := r.History().RecentInputs(10)
	require.NoError(t, err)
	assert.Empty(t, inputs)
}

func TestREPL_ProcessInput_EvaluationErrorIsNotFatal(t *testing.T) {
	r, out := newTestREPL(t, "")

	err := r.processInput(context.Background(), "undefined_name")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "qsh:")
}

func TestHandleBuiltinCommand_Quit(t *testing.T) {
	r, _ := newTestREPL(t, "")

	handled, err := r.handleBuiltinCommand(":quit")
	assert.True(t, handled)
	assert.ErrorIs(t, err, ErrExit)

	handled, err = r.handleBuiltinCommand(":exit")
	assert.True(t, handled)
	assert.ErrorIs(t, err, ErrExit)
}

func TestHandleBuiltinCommand_Help(t *testing.T) {
	r, out := newTestREPL(t, "")

	handled, err := r.handleBuiltinCommand(":help")
	assert.True(t, handled)
	assert.NoError(t, err)
	assert.Contains(t, out.String(), ":vars")
	assert.Contains(t, out.String(), ":history")
}

func TestHandleBuiltinCommand_Vars(t *testing.T) {
	r, out := newTestREPL(t, "")
	r.Namespace().Set("answer", 42)

	handled, err := r.handleBuiltinCommand(":vars")
	assert.True(t, handled)
	assert.NoError(t, err)
	assert.Contains(t, out.String(), "answer")
	assert.Contains(t, out.String(), "env")
}

func TestHandleBuiltinCommand_History(t *testing.T) {
	r, out := newTestREPL(t, "")
	_, err := r.History().Append("version = 3", "/tmp")
	require.NoError(t, err)

	handled, err := r.handleBuiltinCommand(":history")
	assert.True(t, handled)
	assert.NoError(t, err)
	assert.Contains(t, out.String(), "version = 3")
}

func TestHandleBuiltinCommand_HistorySearch(t *testing.T) {
	r, out := newTestREPL(t, "")
	_, err := r.History().Append("alpha = 1", "/tmp")
	require.NoError(t, err)
	_, err = r.History().Append("beta = 2", "/tmp")
	require.NoError(t, err)

	handled, err := r.handleBuiltinCommand(":history alpha")
	assert.True(t, handled)
	assert.NoError(t, err)
	assert.Contains(t, out.String(), "alpha = 1")
	assert.NotContains(t, out.String(), "beta = 2")
}

func TestHandleBuiltinCommand_Reset(t *testing.T) {
	r, out := newTestREPL(t, "")
	_, err := r.History().Append("x = 1", "/tmp")
	require.NoError(t, err)

	handled, err := r.handleBuiltinCommand(":reset")
	assert.True(t, handled)
	assert.NoError(t, err)
	assert.Contains(t, out.String(), "History cleared")

	inputs, err := r.History().RecentInputs(10)
	require.NoError(t, err)
	assert.Empty(t, inputs)
}

func TestHandleBuiltinCommand_Unknown(t *testing.T) {
	r, out := newTestREPL(t, "")

	handled, err := r.handleBuiltinCommand(":frobnicate")
	assert.True(t, handled)
	assert.NoError(t, err)
	assert.Contains(t, out.String(), "unknown command")
}

func TestHandleBuiltinCommand_NotACommand(t *testing.T) {
	r, _ := newTestREPL(t, "")

	handled, err := r.handleBuiltinCommand("version")
	assert.False(t, handled)
	assert.NoError(t, err)

	handled, err = r.handleBuiltinCommand("x = 1")
	assert.False(t, handled)
	assert.NoError(t, err)
}

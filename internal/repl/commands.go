package repl

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/quietshell/qsh/internal/history"
	"github.com/quietshell/qsh/internal/namespace"
)

// ErrExit is returned when the user requests to exit the REPL.
var ErrExit = fmt.Errorf("exit requested")

const helpText = `qsh commands:
  :help             show this help
  :vars             list names bound in the session
  :history [query]  show recent input lines, optionally filtered
  :clear            clear the screen
  :reset            delete all stored history
  :quit             exit (also :exit or Ctrl+D)

Anything else is evaluated as an expression:
  name              look up a binding or builtin
  obj.field.method  walk attributes of a value
  name = value      bind a literal or another expression`

// handleBuiltinCommand handles colon-prefixed REPL commands.
// Returns true if the input was handled, and an error if the REPL should exit.
func (r *REPL) handleBuiltinCommand(command string) (bool, error) {
	if !strings.HasPrefix(command, ":") {
		return false, nil
	}

	parts := strings.Fields(command[1:])
	if len(parts) == 0 {
		fmt.Fprintln(r.stdout, "qsh: empty command. Try :help")
		return true, nil
	}

	cmd := parts[0]
	args := parts[1:]

	switch cmd {
	case "quit", "exit":
		return true, ErrExit
	case "help":
		fmt.Fprintln(r.stdout, helpText)
		return true, nil
	case "vars":
		r.handleVarsCommand()
		return true, nil
	case "history":
		r.handleHistoryCommand(args)
		return true, nil
	case "clear":
		// ANSI clear screen plus cursor home
		fmt.Fprint(r.stdout, "\x1b[2J\x1b[H")
		return true, nil
	case "reset":
		r.handleResetCommand()
		return true, nil
	default:
		fmt.Fprintf(r.stdout, "qsh: unknown command :%s. Try :help\n", cmd)
		return true, nil
	}
}

// handleVarsCommand lists the session bindings, then the reserved names.
func (r *REPL) handleVarsCommand() {
	names := r.namespace.Keys()
	if len(names) == 0 {
		fmt.Fprintln(r.stdout, "No session bindings.")
	} else {
		for _, name := range names {
			value, _ := r.namespace.Get(name)
			fmt.Fprintf(r.stdout, "  %-16s %s\n", name, formatValue(value))
		}
	}

	builtins := namespace.Builtins()
	fmt.Fprintf(r.stdout, "Built-in names: %s\n", strings.Join(sortedKeys(builtins), ", "))
}

const historyDisplayLimit = 20

// handleHistoryCommand shows recent inputs, newest last. With an argument it
// searches instead.
func (r *REPL) handleHistoryCommand(args []string) {
	var entries []historyEntryView
	var err error

	if len(args) > 0 {
		entries, err = r.searchHistory(strings.Join(args, " "))
	} else {
		entries, err = r.recentHistory()
	}
	if err != nil {
		fmt.Fprintf(r.stdout, "qsh: %v\n", err)
		return
	}
	if len(entries) == 0 {
		fmt.Fprintln(r.stdout, "No history.")
		return
	}

	for _, e := range entries {
		fmt.Fprintf(r.stdout, "%5d  %-14s %s\n", e.id, humanize.Time(e.createdAt), e.input)
	}
}

type historyEntryView struct {
	id        uint
	createdAt time.Time
	input     string
}

func (r *REPL) recentHistory() ([]historyEntryView, error) {
	entries, err := r.history.Recent(historyDisplayLimit)
	if err != nil {
		return nil, err
	}
	return toHistoryViews(entries), nil
}

func (r *REPL) searchHistory(query string) ([]historyEntryView, error) {
	entries, err := r.history.Search(query, historyDisplayLimit)
	if err != nil {
		return nil, err
	}
	return toHistoryViews(entries), nil
}

func toHistoryViews(entries []history.Entry) []historyEntryView {
	views := make([]historyEntryView, len(entries))
	for i, e := range entries {
		views[i] = historyEntryView{id: e.ID, createdAt: e.CreatedAt, input: e.Input}
	}
	return views
}

func (r *REPL) handleResetCommand() {
	if err := r.history.Reset(); err != nil {
		fmt.Fprintf(r.stdout, "qsh: %v\n", err)
		return
	}
	fmt.Fprintln(r.stdout, "History cleared.")
}

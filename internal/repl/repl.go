// Package repl implements the interactive read-eval-print loop for qsh.
// It wires together the line editor, the completion engine, the persistent
// history store, and the expression evaluator.
package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/quietshell/qsh/internal/complete"
	"github.com/quietshell/qsh/internal/history"
	"github.com/quietshell/qsh/internal/namespace"
	"github.com/quietshell/qsh/internal/repl/config"
	"github.com/quietshell/qsh/internal/repl/input"
	"github.com/quietshell/qsh/internal/repl/render"
	"github.com/quietshell/qsh/internal/styles"
)

// timeNow can be overridden in tests.
var timeNow = time.Now

// Options configures a REPL.
type Options struct {
	ConfigPath  string
	HistoryPath string
	Logger      *zap.Logger
	Version     string

	// Stdin and Stdout default to the process streams. Tests can swap them.
	Stdin  io.Reader
	Stdout io.Writer
}

// REPL is the interactive session.
type REPL struct {
	logger    *zap.Logger
	config    *config.Config
	history   *history.Manager
	namespace *namespace.Namespace
	completer *complete.Completer
	provider  *complete.Provider
	version   string

	stdin  io.Reader
	stdout io.Writer

	lastDurationMs int64
}

// NewREPL creates a REPL from the given options. Config load failures fall
// back to defaults; a broken history store is fatal.
func NewREPL(opts Options) (*REPL, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	loader := config.NewLoader(logger)
	result, err := loader.LoadFromFile(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	for _, loadErr := range result.Errors {
		logger.Warn("config problem", zap.Error(loadErr))
	}

	historyManager, err := history.NewManager(opts.HistoryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history: %w", err)
	}

	ns := namespace.New()
	completer := complete.New(ns,
		complete.WithLogger(logger),
		complete.WithPathCompletion(result.Config.Completion.Paths),
	)

	stdin := opts.Stdin
	if stdin == nil {
		stdin = os.Stdin
	}
	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	return &REPL{
		logger:    logger,
		config:    result.Config,
		history:   historyManager,
		namespace: ns,
		completer: completer,
		provider:  complete.NewProvider(completer),
		version:   opts.Version,
		stdin:     stdin,
		stdout:    stdout,
	}, nil
}

// Config returns the active configuration.
func (r *REPL) Config() *config.Config {
	return r.config
}

// History returns the history manager.
func (r *REPL) History() *history.Manager {
	return r.history
}

// Completer returns the completion engine.
func (r *REPL) Completer() *complete.Completer {
	return r.completer
}

// Namespace returns the session namespace.
func (r *REPL) Namespace() *namespace.Namespace {
	return r.namespace
}

// Close releases the REPL's resources.
func (r *REPL) Close() error {
	return nil
}

func (r *REPL) getPrompt() string {
	return r.config.Prompt
}

// Run processes input until EOF, :quit, or context cancellation.
func (r *REPL) Run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if file, ok := r.stdin.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		return r.runInteractive(ctx)
	}
	return r.runScripted(ctx)
}

func (r *REPL) runInteractive(ctx context.Context) error {
	r.showWelcome()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		historyValues, err := r.history.RecentInputs(r.config.HistoryLimit)
		if err != nil {
			r.logger.Warn("failed to load history for navigation", zap.Error(err))
		}

		result, err := input.ReadLine(input.Options{
			Prompt:             r.getPrompt(),
			CompletionProvider: r.provider,
			HistoryValues:      historyValues,
			MaxSuggestions:     r.config.Completion.MaxSuggestions,
			RenderConfig:       input.DefaultRenderConfig(),
			Logger:             r.logger,
		})
		if err != nil {
			return fmt.Errorf("input error: %w", err)
		}

		switch result.Kind {
		case input.ResultEOF:
			fmt.Fprintln(r.stdout)
			return nil
		case input.ResultInterrupt:
			// drop the current line and prompt again
			continue
		case input.ResultSubmit:
			if err := r.processInput(ctx, result.Input); err != nil {
				if err == ErrExit {
					return nil
				}
				return err
			}
		}
	}
}

func (r *REPL) runScripted(ctx context.Context) error {
	scanner := bufio.NewScanner(r.stdin)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.processInput(ctx, scanner.Text()); err != nil {
			if err == ErrExit {
				return nil
			}
			return err
		}
	}
	return scanner.Err()
}

// processInput evaluates one line of input and records it in history.
func (r *REPL) processInput(ctx context.Context, line string) error {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil
	}

	started := timeNow()
	defer func() {
		r.lastDurationMs = timeNow().Sub(started).Milliseconds()
	}()

	if handled, err := r.handleBuiltinCommand(trimmed); handled {
		return err
	}

	r.recordHistory(trimmed)

	output, err := r.evaluate(trimmed)
	if err != nil {
		fmt.Fprintln(r.stdout, styles.ERROR(fmt.Sprintf("qsh: %v", err)))
		return nil
	}
	if output != "" {
		fmt.Fprintln(r.stdout, styles.VALUE(output))
	}
	return nil
}

func (r *REPL) recordHistory(input string) {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = ""
	}
	if _, err := r.history.Append(input, cwd); err != nil {
		r.logger.Warn("failed to record history", zap.Error(err))
	}
}

func (r *REPL) showWelcome() {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		width = 80
	}

	info := render.WelcomeInfo{Version: r.version}
	if count, err := r.history.Count(); err == nil {
		info.HistoryCount = int(count)
	}

	render.RenderWelcome(r.stdout, info, width)
}

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/quietshell/qsh/internal/core"
	"github.com/quietshell/qsh/internal/repl"
	"github.com/quietshell/qsh/internal/styles"
)

var BUILD_VERSION = "dev"

var command = flag.String("c", "", "evaluate statements from the argument and exit")

var helpFlag = flag.Bool("h", false, "display help information")
var versionFlag = flag.Bool("ver", false, "display build version")

const helpText = `qsh - an interactive shell for inspecting and binding values

USAGE:
  qsh [options] [script.qsh ...]

MODES:
  qsh                 Start an interactive session
  qsh script.qsh      Evaluate statements from a file
  qsh -c "statement"  Evaluate statements from the argument
  ... | qsh           Evaluate statements from standard input

Inside a session, type :help for the available commands.

OPTIONS:
`

func main() {
	flag.Parse()

	if *versionFlag {
		fmt.Println(BUILD_VERSION)
		return
	}

	if *helpFlag {
		fmt.Print(helpText)
		flag.PrintDefaults()
		return
	}

	logLevel := zap.NewAtomicLevelAt(zap.InfoLevel)
	if BUILD_VERSION == "dev" {
		logLevel.SetLevel(zap.DebugLevel)
	}

	logger, err := initializeLogger(logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "qsh: failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("-------- new qsh session --------", zap.Any("args", os.Args))

	if err := run(logger, logLevel); err != nil {
		logger.Error("unhandled error", zap.Error(err))
		fmt.Fprintln(os.Stderr, styles.LOG(fmt.Sprintf("qsh: %v", err)))
		os.Exit(1)
	}
}

func run(logger *zap.Logger, logLevel zap.AtomicLevel) error {
	stdin, cleanup, err := selectInput()
	if err != nil {
		return err
	}
	defer cleanup()

	r, err := repl.NewREPL(repl.Options{
		ConfigPath:  core.ConfigFile(),
		HistoryPath: core.HistoryFile(),
		Logger:      logger,
		Version:     BUILD_VERSION,
		Stdin:       stdin,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer r.Close()

	// dev builds always log at debug
	if BUILD_VERSION != "dev" {
		if level, err := zapcore.ParseLevel(r.Config().LogLevel); err == nil {
			logLevel.SetLevel(level)
		}
	}

	return r.Run(context.Background())
}

// selectInput picks the statement source: -c argument, script files, or
// standard input.
func selectInput() (io.Reader, func(), error) {
	noop := func() {}

	if *command != "" {
		return strings.NewReader(*command), noop, nil
	}

	if flag.NArg() == 0 {
		return os.Stdin, noop, nil
	}

	var readers []io.Reader
	var files []*os.File
	for _, path := range flag.Args() {
		file, err := os.Open(path)
		if err != nil {
			for _, f := range files {
				f.Close()
			}
			return nil, nil, fmt.Errorf("failed to open script: %w", err)
		}
		files = append(files, file)
		readers = append(readers, file)
	}

	cleanup := func() {
		for _, f := range files {
			f.Close()
		}
	}
	return io.MultiReader(readers...), cleanup, nil
}

func initializeLogger(logLevel zap.AtomicLevel) (*zap.Logger, error) {
	loggerConfig := zap.NewProductionConfig()
	loggerConfig.Level = logLevel
	loggerConfig.OutputPaths = []string{
		core.LogFile(),
	}

	// Logs only go to file to avoid interfering with the Bubble Tea UI.
	// Use `tail -f ~/.qsh/qsh.log` to monitor logs in real time.

	return loggerConfig.Build()
}

// Package styles defines terminal text styles shared across qsh output.
package styles

import (
	"os"

	"github.com/muesli/termenv"
)

var (
	stdout = termenv.NewOutput(os.Stdout)
	stderr = termenv.NewOutput(os.Stderr)

	// ERROR styles evaluation and command failures on stdout.
	ERROR = func(s string) string {
		return stdout.String(s).
			Foreground(stdout.Color("9")).
			String()
	}

	// VALUE styles evaluation results.
	VALUE = func(s string) string {
		return stdout.String(s).
			Foreground(stdout.Color("12")).
			String()
	}

	// LOG styles diagnostic output on stderr.
	LOG = func(s string) string {
		return stderr.String(s).
			Foreground(stderr.Color("8")).
			String()
	}
)

package namespace

import (
	"os"
	"runtime"
	"strings"
	"time"
)

// ProcInfo describes the current process. It is bound as the builtin "proc".
type ProcInfo struct {
	Pid        int
	ParentPid  int
	Executable string
	Hostname   string
}

// WorkDir returns the current working directory of the process.
func (p ProcInfo) WorkDir() string {
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return wd
}

// Uptime returns how long the process has been running.
func (p ProcInfo) Uptime() time.Duration {
	return time.Since(startTime)
}

// BuildInfo describes the Go toolchain this binary was built with. It is
// bound as the builtin "build".
type BuildInfo struct {
	GoVersion string
	OS        string
	Arch      string
	Compiler  string
	NumCPU    int
}

var startTime = time.Now()

// builtins is the fixed builtin-names table. It contains a binding for
// BuiltinsName referring to the table itself, which completion excludes.
var builtins = newBuiltins()

func newBuiltins() map[string]any {
	hostname, _ := os.Hostname()
	executable, _ := os.Executable()

	table := map[string]any{
		"env": environMap(),
		"proc": ProcInfo{
			Pid:        os.Getpid(),
			ParentPid:  os.Getppid(),
			Executable: executable,
			Hostname:   hostname,
		},
		"build": BuildInfo{
			GoVersion: runtime.Version(),
			OS:        runtime.GOOS,
			Arch:      runtime.GOARCH,
			Compiler:  runtime.Compiler,
			NumCPU:    runtime.NumCPU(),
		},
		"now":      time.Now,
		"cwd":      os.Getwd,
		"hostname": os.Hostname,
	}

	// The table is reachable through itself, like any other binding.
	table[BuiltinsName] = table
	return table
}

// Builtins returns the builtin-names table.
func Builtins() map[string]any {
	return builtins
}

// IsBuiltin checks whether a name is in the builtins table.
func IsBuiltin(name string) bool {
	_, ok := builtins[name]
	return ok
}

// environMap converts os.Environ into a name-to-value map so environment
// variables can be browsed with attribute completion (env.HOME and friends).
func environMap() map[string]string {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		if key, value, ok := strings.Cut(kv, "="); ok {
			env[key] = value
		}
	}
	return env
}

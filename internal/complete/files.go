package complete

import (
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// fileMatches computes matches when text is a quoted file name fragment.
// The leading quote is stripped, a leading ~ or ~user expands to a home
// directory and a leading $VAR to an environment variable, and the fragment
// is globbed against the filesystem one level deep. Directories come back
// with a trailing separator and no closing quote, inviting further
// completion; regular files are closed with the quote that was stripped.
func (c *Completer) fileMatches(text string) []string {
	quote := ""
	path := text
	if len(text) > 0 && (text[0] == '\'' || text[0] == '"') {
		quote = string(text[0])
		path = text[1:]
	}

	path = expandUser(path)
	path = expandVars(path)

	entries, err := doublestar.FilepathGlob(path + "*")
	if err != nil {
		return nil
	}

	var matches []string
	for _, entry := range entries {
		info, err := os.Stat(entry)
		switch {
		case err == nil && info.IsDir():
			matches = append(matches, quote+entry+string(os.PathSeparator))
		case err == nil && info.Mode().IsRegular():
			matches = append(matches, quote+entry+quote)
		default:
			// Special files and dangling symlinks are offered as-is,
			// unterminated.
			matches = append(matches, quote+entry)
		}
	}
	return matches
}

// expandUser expands a leading ~ or ~user to the corresponding home
// directory. Unresolvable paths are returned unchanged.
func expandUser(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}

	rest := path[1:]
	name := rest
	if i := strings.IndexRune(rest, filepath.Separator); i >= 0 {
		name, rest = rest[:i], rest[i:]
	} else {
		rest = ""
	}

	var home string
	if name == "" {
		home, _ = os.UserHomeDir()
	} else if u, err := user.Lookup(name); err == nil {
		home = u.HomeDir
	}
	if home == "" {
		return path
	}
	return home + rest
}

// expandVars expands a leading $VAR to its environment value. Unset
// variables are left untouched.
func expandVars(path string) string {
	if !strings.HasPrefix(path, "$") {
		return path
	}

	end := 1
	for end < len(path) && (isWordByte(path[end])) {
		end++
	}
	if end == 1 {
		return path
	}

	value, ok := os.LookupEnv(path[1:end])
	if !ok {
		return path
	}
	return value + path[end:]
}

func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}

package namespace

// Keywords is the fixed list of language keywords, in the order used for
// name completion. It covers the statement forms the REPL understands today
// plus words reserved for future syntax.
var Keywords = []string{
	"and",
	"del",
	"else",
	"false",
	"for",
	"if",
	"in",
	"let",
	"not",
	"null",
	"or",
	"true",
	"while",
}

// IsKeyword reports whether name is a language keyword.
func IsKeyword(name string) bool {
	for _, kw := range Keywords {
		if kw == name {
			return true
		}
	}
	return false
}

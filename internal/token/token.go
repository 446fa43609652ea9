package token

import (
	"cqasm/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsSeparator reports whether the token terminates a statement.
func (t Token) IsSeparator() bool {
	return t.Kind == Newline || t.Kind == Semicolon
}

// Display returns the text used for the token in syntax diagnostics.
// EOF is shown as <EOF>, control characters are escaped.
func (t Token) Display() string {
	if t.Kind == EOF {
		return "<EOF>"
	}
	out := make([]byte, 0, len(t.Text))
	for i := 0; i < len(t.Text); i++ {
		switch c := t.Text[i]; c {
		case '\n':
			out = append(out, '\\', 'n')
		case '\r':
			out = append(out, '\\', 'r')
		case '\t':
			out = append(out, '\\', 't')
		default:
			out = append(out, c)
		}
	}
	return string(out)
}

package source

import (
	"fmt"
)

type Span struct {
	File  FileID
	Start uint32 // в байтах включительно
	End   uint32 // в байтах не включительно
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Cover расширяет span так, чтобы он включал other (только в пределах одного файла).
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// ZeroAt returns an empty span positioned at the start of s.
func (s Span) ZeroAt() Span {
	return Span{File: s.File, Start: s.Start, End: s.Start}
}

// Location is a resolved span: path plus 1-based line/column bounds.
type Location struct {
	Path  string
	Start LineCol
	End   LineCol
}

// String renders the location as "path:line:col..col", or
// "path:line:col..line:col" when the span crosses lines.
func (l Location) String() string {
	path := l.Path
	if path == "" {
		path = UnknownPath
	}
	if l.Start.Line == l.End.Line {
		return fmt.Sprintf("%s:%d:%d..%d", path, l.Start.Line, l.Start.Col, l.End.Col)
	}
	return fmt.Sprintf("%s:%d:%d..%d:%d", path, l.Start.Line, l.Start.Col, l.End.Line, l.End.Col)
}

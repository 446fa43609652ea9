package diagfmt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"cqasm/internal/diag"
	"cqasm/internal/source"
)

// PositionJSON is an LSP position. Both fields are 1-based here, matching the
// columns of source.LineCol; the language server shifts them to 0-based.
type PositionJSON struct {
	Line      uint32 `json:"line"`
	Character uint32 `json:"character"`
}

// RangeJSON представляет диапазон [start, end)
type RangeJSON struct {
	Start PositionJSON `json:"start"`
	End   PositionJSON `json:"end"`
}

// LocationJSON — uri плюс диапазон
type LocationJSON struct {
	URI   string    `json:"uri"`
	Range RangeJSON `json:"range"`
}

// RelatedInformationJSON представляет дополнительную заметку для JSON
type RelatedInformationJSON struct {
	Location LocationJSON `json:"location"`
	Message  EscapedText  `json:"message"`
}

// DiagnosticJSON is one Language Server Protocol diagnostic.
type DiagnosticJSON struct {
	Range              RangeJSON                `json:"range"`
	Message            EscapedText              `json:"message"`
	Severity           int                      `json:"severity"`
	RelatedInformation []RelatedInformationJSON `json:"relatedInformation"`
}

// ErrorsOutput is the failure shape of a result: {"errors":[...]}.
type ErrorsOutput struct {
	Errors []DiagnosticJSON `json:"errors"`
}

// EscapedText is a message string serialized with every '"', backslash, control byte
// and byte outside valid UTF-8 written as \u00XX; other text is kept literal.
type EscapedText string

// MarshalJSON implements json.Marshaler.
func (s EscapedText) MarshalJSON() ([]byte, error) {
	text := string(s)
	out := make([]byte, 0, len(text)+2)
	out = append(out, '"')
	for i := 0; i < len(text); {
		c := text[i]
		if c < utf8.RuneSelf {
			if c == '"' || c == '\\' || c < 0x20 {
				out = fmt.Appendf(out, `\u%04X`, c)
			} else {
				out = append(out, c)
			}
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(text[i:])
		if r == utf8.RuneError && size == 1 {
			out = fmt.Appendf(out, `\u%04X`, c)
		} else {
			out = append(out, text[i:i+size]...)
		}
		i += size
	}
	return append(out, '"'), nil
}

// FileURI builds the file:/// URI of a file name, escaping every byte outside
// the unreserved set (so '/' becomes %2F).
func FileURI(name string) string {
	if name == "" {
		name = source.UnknownPath
	}
	var sb strings.Builder
	sb.WriteString("file:///")
	for i := 0; i < len(name); i++ {
		c := name[i]
		if isUnreserved(c) {
			sb.WriteByte(c)
			continue
		}
		fmt.Fprintf(&sb, "%%%02X", c)
	}
	return sb.String()
}

func isUnreserved(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '-', c == '_', c == '.', c == '~':
		return true
	default:
		return false
	}
}

func makeRange(span source.Span, fs *source.FileSet) RangeJSON {
	if fs == nil || fs.Get(span.File) == nil {
		return RangeJSON{}
	}
	start, end := fs.ResolveOnLine(span)
	return RangeJSON{
		Start: PositionJSON{Line: start.Line, Character: start.Col},
		End:   PositionJSON{Line: end.Line, Character: end.Col},
	}
}

// BuildDiagnostic converts d into its LSP form. filename feeds the related
// information uri; an empty name falls back to the span's file.
func BuildDiagnostic(d diag.Diagnostic, fs *source.FileSet, filename string) DiagnosticJSON {
	if filename == "" && fs != nil {
		if f := fs.Get(d.Primary.File); f != nil {
			filename = f.Path
		}
	}
	out := DiagnosticJSON{
		Range:    makeRange(d.Primary, fs),
		Message:  EscapedText(d.Message),
		Severity: d.Severity.LSP(),
	}
	uri := FileURI(filename)
	if len(d.Notes) == 0 {
		out.RelatedInformation = []RelatedInformationJSON{{
			Location: LocationJSON{URI: uri},
			Message:  UnknownErrorMessage,
		}}
		return out
	}
	for _, note := range d.Notes {
		out.RelatedInformation = append(out.RelatedInformation, RelatedInformationJSON{
			Location: LocationJSON{URI: uri, Range: makeRange(note.Span, fs)},
			Message:  EscapedText(note.Msg),
		})
	}
	return out
}

// BuildErrorsOutput формирует структуру {"errors":[...]} без сериализации.
func BuildErrorsOutput(diags []diag.Diagnostic, fs *source.FileSet, filename string) ErrorsOutput {
	out := ErrorsOutput{Errors: make([]DiagnosticJSON, 0, len(diags))}
	for _, d := range diags {
		out.Errors = append(out.Errors, BuildDiagnostic(d, fs, filename))
	}
	return out
}

// ErrorsJSON renders diagnostics as a compact {"errors":[...]} document.
func ErrorsJSON(diags []diag.Diagnostic, fs *source.FileSet, filename string) (string, error) {
	return marshalCompact(BuildErrorsOutput(diags, fs, filename))
}

// marshalCompact keeps '<', '>' and '&' literal: locations contain "<unknown>".
func marshalCompact(v any) (string, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

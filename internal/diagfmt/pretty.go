package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"cqasm/internal/diag"
	"cqasm/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan, color.Bold)
	pathColor    = color.New(color.Bold)
	caretColor   = color.New(color.FgGreen, color.Bold)
	noteColor    = color.New(color.FgBlue)
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем строку исходника с подчёркиванием ^~~~ по Span и, по опции, Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		prettyOne(w, d, fs, opts)
	}
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	paint := func(c *color.Color, s string) string {
		if !opts.Color {
			return s
		}
		return c.Sprint(s)
	}

	sev := d.Severity.String()
	switch d.Severity {
	case diag.SevError:
		sev = paint(errorColor, sev)
	case diag.SevWarning:
		sev = paint(warningColor, sev)
	default:
		sev = paint(infoColor, sev)
	}

	file := fs.Get(d.Primary.File)
	if file == nil {
		fmt.Fprintf(w, "%s: %s\n", sev, d.Message)
		return
	}
	start, end := fs.Resolve(d.Primary)
	header := fmt.Sprintf("%s:%d:%d", file.FormatPath(opts.PathMode.String(), fs.BaseDir()), start.Line, start.Col)
	if opts.ShowCodes {
		fmt.Fprintf(w, "%s: %s %s: %s\n", paint(pathColor, header), sev, d.Code.ID(), d.Message)
	} else {
		fmt.Fprintf(w, "%s: %s: %s\n", paint(pathColor, header), sev, d.Message)
	}

	first := start.Line
	if opts.Context > 0 && first > uint32(opts.Context) {
		first -= uint32(opts.Context)
	} else if opts.Context > 0 {
		first = 1
	}
	for ln := first; ln < start.Line; ln++ {
		fmt.Fprintf(w, "%5d | %s\n", ln, file.GetLine(ln))
	}

	line := file.GetLine(start.Line)
	fmt.Fprintf(w, "%5d | %s\n", start.Line, line)
	fmt.Fprintf(w, "      | %s\n", paint(caretColor, underline(line, start, end)))

	if opts.ShowNotes {
		for _, note := range d.Notes {
			ns, _ := fs.Resolve(note.Span)
			fmt.Fprintf(w, "      = %s %d:%d: %s\n", paint(noteColor, "note:"), ns.Line, ns.Col, note.Msg)
		}
	}
}

// underline строит ^~~~ под участком строки; ширина считается в колонках терминала.
func underline(line string, start, end source.LineCol) string {
	runes := []rune(line)
	from := int(start.Col) - 1
	if from > len(runes) {
		from = len(runes)
	}
	to := len(runes)
	if end.Line == start.Line {
		to = min(int(end.Col)-1, len(runes))
	}
	pad := strings.Builder{}
	for _, r := range runes[:from] {
		if r == '\t' {
			pad.WriteByte('\t')
			continue
		}
		pad.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	width := 0
	if to > from {
		width = runewidth.StringWidth(string(runes[from:to]))
	}
	if width <= 1 {
		return pad.String() + "^"
	}
	return pad.String() + "^" + strings.Repeat("~", width-1)
}

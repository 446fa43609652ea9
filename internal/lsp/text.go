package lsp

import (
	"unicode/utf16"
	"unicode/utf8"
)

// applyChanges applies incremental (ranged) and full-text edits in order.
func applyChanges(text string, changes []textDocumentContentChangeEvent) string {
	for _, change := range changes {
		if change.Range == nil {
			text = change.Text
			continue
		}
		start := offsetForPosition(text, change.Range.Start)
		end := max(offsetForPosition(text, change.Range.End), start)
		text = text[:start] + change.Text + text[end:]
	}
	return text
}

// offsetForPosition maps a 0-based line and UTF-16 character to a byte offset,
// clamping to the end of the line or of the text.
func offsetForPosition(text string, pos position) int {
	if pos.Line < 0 || pos.Character < 0 {
		return 0
	}
	i := 0
	for line := 0; line < pos.Line; line++ {
		nl := indexByteFrom(text, i, '\n')
		if nl < 0 {
			return len(text)
		}
		i = nl + 1
	}
	units := 0
	for i < len(text) && text[i] != '\n' {
		r, size := utf8.DecodeRuneInString(text[i:])
		need := utf16.RuneLen(r)
		if need < 0 {
			need = 1
		}
		if units+need > pos.Character {
			break
		}
		units += need
		i += size
	}
	return i
}

func indexByteFrom(s string, from int, b byte) int {
	for j := from; j < len(s); j++ {
		if s[j] == b {
			return j
		}
	}
	return -1
}

// utf16Column converts a 1-based code-point column on line to a 0-based UTF-16 character.
func utf16Column(line string, col uint32) int {
	if col <= 1 {
		return 0
	}
	units := 0
	n := uint32(1)
	for _, r := range line {
		if n >= col {
			break
		}
		if l := utf16.RuneLen(r); l > 0 {
			units += l
		} else {
			units++
		}
		n++
	}
	// колонка за концом строки (EOF, '\n') остаётся за концом
	return units + int(col-n)
}

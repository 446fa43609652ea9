package source

import (
	"bytes"
	"errors"
	"path/filepath"
	"slices"
	"sort"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrInvalidUTF8 is returned by Normalize when the decoded text is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("source is not valid UTF-8")

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16BE = []byte{0xFE, 0xFF}
	bomUTF16LE = []byte{0xFF, 0xFE}
)

// Normalize turns raw file bytes into the canonical form the lexer expects:
// UTF-8 without BOM and with LF line endings. UTF-16 input is recognised by its BOM.
func Normalize(content []byte) ([]byte, FileFlags, error) {
	var flags FileFlags
	if bytes.HasPrefix(content, bomUTF16BE) || bytes.HasPrefix(content, bomUTF16LE) {
		dec := unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder()
		out, _, err := transform.Bytes(dec, content)
		if err != nil {
			return nil, 0, err
		}
		content = out
		flags |= FileDecodedUTF16 | FileHadBOM
	}
	if stripped, ok := removeBOM(content); ok {
		content = stripped
		flags |= FileHadBOM
	}
	if !utf8.Valid(content) {
		return nil, 0, ErrInvalidUTF8
	}
	if normalized, changed := normalizeCRLF(content); changed {
		content = normalized
		flags |= FileNormalizedCRLF
	}
	return content, flags, nil
}

// normalizeCRLF заменяет все \r\n на \n, не трогая одиночные \r.
// Возвращает новый слайс и флаг: были ли замены (true, если хотя бы одна).
func normalizeCRLF(content []byte) ([]byte, bool) {
	// Быстрый путь: если нет \r, возвращаем как есть.
	if !slices.Contains(content, '\r') {
		return content, false
	}

	out := make([]byte, 0, len(content))
	changed := false

	i := 0
	for i < len(content) {
		if content[i] == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			out = append(out, '\n')
			i += 2
			changed = true
		} else {
			out = append(out, content[i])
			i++
		}
	}
	return out, changed
}

func removeBOM(content []byte) ([]byte, bool) {
	if bytes.HasPrefix(content, bomUTF8) {
		return content[len(bomUTF8):], true
	}
	return content, false
}

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, bytes.Count(content, []byte{'\n'}))
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i)) // #nosec G115 -- content length is checked by callers
		}
	}
	return out
}

// lineOf возвращает номер строки (1-based) и смещение её начала для off.
// Символ '\n' принадлежит строке, которую он завершает.
func lineOf(lineIdx []uint32, off uint32) (line, start uint32) {
	// количество переводов строк строго до off
	n := sort.Search(len(lineIdx), func(i int) bool { return lineIdx[i] >= off })
	if n == 0 {
		return 1, 0
	}
	return uint32(n) + 1, lineIdx[n-1] + 1 // #nosec G115 -- n <= len(lineIdx)
}

func runeCount(b []byte) int {
	return utf8.RuneCount(b)
}

func normalizePath(p string) string {
	if p == UnknownPath {
		return p
	}
	// единый вид в кроссплатформенных дифах
	return filepath.ToSlash(filepath.Clean(p))
}

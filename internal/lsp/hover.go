package lsp

import (
	"encoding/json"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"cqasm/internal/symbols"
)

func (s *Server) handleHover(msg *rpcMessage) error {
	var params hoverParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, codeInvalidParams, "invalid params")
	}
	s.mu.Lock()
	doc, ok := s.docs[params.TextDocument.URI]
	text := ""
	if ok {
		text = doc.text
	}
	s.mu.Unlock()
	if !ok {
		return s.sendResponse(msg.ID, nil)
	}
	result := s.hoverAt(text, params.Position)
	if result == nil {
		return s.sendResponse(msg.ID, nil)
	}
	return s.sendResponse(msg.ID, result)
}

// hoverAt lists the overloads of the instruction named under pos.
func (s *Server) hoverAt(text string, pos position) *hover {
	word, rng, ok := wordAt(text, pos)
	if !ok {
		return nil
	}
	if m, isMod := s.catalog.Modifier(word); isMod {
		return &hover{
			Contents: markupContent{Kind: "markdown", Value: modifierDoc(m)},
			Range:    &rng,
		}
	}
	if !s.catalog.Has(word) {
		return nil
	}
	var b strings.Builder
	kind := "instruction"
	if s.catalog.IsGate(word) {
		kind = "gate"
	}
	b.WriteString("**" + word + "** (" + kind + ")\n\n")
	for _, sig := range s.catalog.Overloads(word) {
		b.WriteString("- `" + sig.Ref() + "`\n")
	}
	return &hover{
		Contents: markupContent{Kind: "markdown", Value: strings.TrimRight(b.String(), "\n")},
		Range:    &rng,
	}
}

func modifierDoc(m symbols.Modifier) string {
	head := "**" + m.Name + "** (gate modifier)\n\n"
	switch {
	case m.Param.IsValid():
		return head + "`" + m.Name + "(" + m.Param.String() + ").G` applies to a single-qubit gate G"
	case m.TwoQubit:
		return head + "`" + m.Name + ".G` adds a control qubit to a single-qubit gate G"
	default:
		return head + "`" + m.Name + ".G` applies to a single-qubit gate G"
	}
}

// wordAt finds the identifier touching pos.
func wordAt(text string, pos position) (string, lspRange, bool) {
	off := offsetForPosition(text, pos)
	start, end := off, off
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(text[:start])
		if !isIdentRune(r) {
			break
		}
		start -= size
	}
	for end < len(text) {
		r, size := utf8.DecodeRuneInString(text[end:])
		if !isIdentRune(r) {
			break
		}
		end += size
	}
	if start == end {
		return "", lspRange{}, false
	}
	lineStart := strings.LastIndexByte(text[:start], '\n') + 1
	startChar := utf16Len(text[lineStart:start])
	rng := lspRange{
		Start: position{Line: pos.Line, Character: startChar},
		End:   position{Line: pos.Line, Character: startChar + utf16Len(text[start:end])},
	}
	return text[start:end], rng, true
}

func isIdentRune(r rune) bool {
	return r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9'
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		if l := utf16.RuneLen(r); l > 0 {
			n += l
		} else {
			n++
		}
	}
	return n
}

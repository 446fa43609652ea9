package parser

import (
	"strings"

	"cqasm/internal/token"
)

// tokenSet — битовое множество видов токенов; порядок вывода совпадает с порядком token.Kind.
type tokenSet uint64

func setOf(kinds ...token.Kind) tokenSet {
	var s tokenSet
	for _, k := range kinds {
		s |= 1 << k
	}
	return s
}

func (s tokenSet) has(k token.Kind) bool {
	return k < 64 && s&(1<<k) != 0
}

func (s tokenSet) with(kinds ...token.Kind) tokenSet {
	return s | setOf(kinds...)
}

func (s tokenSet) kinds() []token.Kind {
	var out []token.Kind
	for k := token.Kind(0); k < 64; k++ {
		if s.has(k) {
			out = append(out, k)
		}
	}
	return out
}

// String renders the set the way syntax errors print expectations:
// a single element bare, several elements as {A, B, C}.
func (s tokenSet) String() string {
	ks := s.kinds()
	if len(ks) == 1 {
		return ks[0].String()
	}
	parts := make([]string, len(ks))
	for i, k := range ks {
		parts[i] = k.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

var (
	separators = setOf(token.Newline, token.Semicolon)
	stmtEnd    = separators.with(token.EOF)
	exprStart  = setOf(
		token.LParen, token.Plus, token.Minus, token.Tilde, token.Bang,
		token.BoolLit, token.IntLit, token.FloatLit, token.Ident,
	)
	typeKeywords = setOf(token.KwQubit, token.KwBit, token.KwBool, token.KwInt, token.KwFloat, token.KwAxis)
	modifiers    = setOf(token.KwInv, token.KwPow, token.KwCtrl)
	stmtStart    = exprStart | typeKeywords | modifiers
	// хвост инструкции: разделитель или аннотация
	stmtFollow = stmtEnd.with(token.At)
	gateStart  = modifiers.with(token.Ident)
	// всё, чем может продолжиться уже разобранное выражение
	exprCont = setOf(
		token.StarStar, token.Star, token.Slash, token.Percent, token.Plus, token.Minus,
		token.Shl, token.Shr, token.Lt, token.Gt, token.LtEq, token.GtEq, token.EqEq, token.BangEq,
		token.Amp, token.Caret, token.Pipe, token.AndAnd, token.CaretCaret, token.OrOr, token.Question,
	)
)

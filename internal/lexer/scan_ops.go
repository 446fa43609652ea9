package lexer

import (
	"unicode/utf8"

	"cqasm/internal/token"
)

var twoByteOps = [...]struct {
	a, b byte
	kind token.Kind
}{
	{'*', '*', token.StarStar},
	{'<', '<', token.Shl},
	{'>', '>', token.Shr},
	{'<', '=', token.LtEq},
	{'>', '=', token.GtEq},
	{'=', '=', token.EqEq},
	{'!', '=', token.BangEq},
	{'&', '&', token.AndAnd},
	{'^', '^', token.CaretCaret},
	{'|', '|', token.OrOr},
}

var oneByteOps = map[byte]token.Kind{
	';': token.Semicolon,
	':': token.Colon,
	',': token.Comma,
	'.': token.Dot,
	'@': token.At,
	'=': token.Assign,
	'[': token.LBracket,
	']': token.RBracket,
	'{': token.LBrace,
	'}': token.RBrace,
	'(': token.LParen,
	')': token.RParen,
	'+': token.Plus,
	'-': token.Minus,
	'~': token.Tilde,
	'!': token.Bang,
	'*': token.Star,
	'/': token.Slash,
	'%': token.Percent,
	'<': token.Lt,
	'>': token.Gt,
	'&': token.Amp,
	'^': token.Caret,
	'|': token.Pipe,
	'?': token.Question,
}

// Жадность: сначала 2-символьные, затем 1-символьные.
// Неизвестный символ становится Invalid-токеном длиной в одну руну;
// об ошибке сообщает парсер, когда не сможет его сопоставить.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	b0, b1 := lx.cursor.Peek(), lx.cursor.PeekAt(1)
	for _, op := range twoByteOps {
		if op.a == b0 && op.b == b1 {
			lx.cursor.Bump()
			lx.cursor.Bump()
			return lx.emit(op.kind, start)
		}
	}
	if k, ok := oneByteOps[b0]; ok {
		lx.cursor.Bump()
		return lx.emit(k, start)
	}

	_, size := utf8.DecodeRune(lx.file.Content[lx.cursor.Off:])
	for i := 0; i < size; i++ {
		lx.cursor.Bump()
	}
	return lx.emit(token.Invalid, start)
}

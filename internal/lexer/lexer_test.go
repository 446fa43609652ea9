package lexer_test

import (
	"testing"

	"cqasm/internal/diag"
	"cqasm/internal/lexer"
	"cqasm/internal/source"
	"cqasm/internal/token"
)

// makeTokens лексит строку целиком и возвращает токены с диагностиками
func makeTokens(input string) ([]token.Token, *diag.Bag) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.cq", []byte(input)))
	bag := diag.NewBag(0)
	return lexer.All(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}}), bag
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(toks))
	for _, t := range toks {
		out = append(out, t.Kind)
	}
	return out
}

func expectKinds(t *testing.T, input string, want ...token.Kind) []token.Token {
	t.Helper()
	toks, bag := makeTokens(input)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics for %q: %+v", input, bag.Items())
	}
	got := kinds(toks)
	want = append(want, token.EOF)
	if len(got) != len(want) {
		t.Fatalf("%q: got %v, want %v", input, got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("%q: token %d is %s, want %s (all: %v)", input, i, got[i], want[i], got)
		}
	}
	return toks
}

func TestProgramTokens(t *testing.T) {
	toks := expectKinds(t, "version 3;qubit[5] q;H q[0:4]",
		token.KwVersion, token.VersionNumber, token.Semicolon,
		token.KwQubit, token.LBracket, token.IntLit, token.RBracket, token.Ident, token.Semicolon,
		token.Ident, token.Ident, token.LBracket, token.IntLit, token.Colon, token.IntLit, token.RBracket,
	)
	if toks[1].Text != "3" || toks[1].Span.Start != 8 || toks[1].Span.End != 9 {
		t.Fatalf("unexpected version token %+v", toks[1])
	}
	if len(toks[1].Leading) != 1 || toks[1].Leading[0].Kind != token.TriviaSpace {
		t.Fatalf("expected a single space trivia before the version number, got %+v", toks[1].Leading)
	}
}

func TestVersionNumberWithMinor(t *testing.T) {
	toks := expectKinds(t, "version 3.0", token.KwVersion, token.VersionNumber)
	if toks[1].Text != "3.0" {
		t.Fatalf("got %q", toks[1].Text)
	}
	// вне позиции версии "3.0" — обычный FLOAT_LITERAL
	expectKinds(t, "3.0", token.FloatLit)
}

func TestMeasureAndNewlines(t *testing.T) {
	expectKinds(t, "b = measure q\n\nreset",
		token.Ident, token.Assign, token.KwMeasure, token.Ident, token.Newline, token.Newline, token.Ident)
}

func TestNumbers(t *testing.T) {
	cases := []struct {
		in   string
		kind token.Kind
	}{
		{"0", token.IntLit},
		{"42", token.IntLit},
		{"1.5", token.FloatLit},
		{"1.", token.FloatLit},
		{".25", token.FloatLit},
		{"1e3", token.FloatLit},
		{"2.5E-2", token.FloatLit},
	}
	for _, tc := range cases {
		toks := expectKinds(t, tc.in, tc.kind)
		if toks[0].Text != tc.in {
			t.Errorf("%q: text %q", tc.in, toks[0].Text)
		}
	}
	// экспонента без цифр не съедается
	expectKinds(t, "1e", token.IntLit, token.Ident)
}

func TestOperators(t *testing.T) {
	expectKinds(t, "** * << < <= == = != ! && & ^^ ^ || | ? ~ % /",
		token.StarStar, token.Star, token.Shl, token.Lt, token.LtEq, token.EqEq, token.Assign,
		token.BangEq, token.Bang, token.AndAnd, token.Amp, token.CaretCaret, token.Caret,
		token.OrOr, token.Pipe, token.Question, token.Tilde, token.Percent, token.Slash)
}

func TestKeywordsAreCaseSensitive(t *testing.T) {
	expectKinds(t, "qubit Qubit bit BIT true False", token.KwQubit, token.Ident, token.KwBit, token.Ident, token.BoolLit, token.Ident)
}

func TestComments(t *testing.T) {
	toks := expectKinds(t, "// header\nH q /* inline */ // tail\n",
		token.Newline, token.Ident, token.Ident, token.Newline)
	if len(toks[0].Leading) != 1 || toks[0].Leading[0].Kind != token.TriviaLineComment {
		t.Fatalf("expected line comment trivia, got %+v", toks[0].Leading)
	}
	last := toks[3].Leading
	if len(last) != 4 || last[1].Kind != token.TriviaBlockComment || last[3].Kind != token.TriviaLineComment {
		t.Fatalf("unexpected trivia before newline: %+v", last)
	}
}

func TestUnterminatedBlockComment(t *testing.T) {
	toks, bag := makeTokens("H q /* never closed")
	if toks[len(toks)-1].Kind != token.EOF {
		t.Fatal("lexer must still reach EOF")
	}
	if bag.Len() != 1 || bag.Items()[0].Code != diag.LexUnterminatedBlockComment {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
}

func TestUnknownCharacterIsInvalidToken(t *testing.T) {
	toks, bag := makeTokens("H $ π")
	if bag.Len() != 0 {
		t.Fatalf("the lexer must not report unknown characters: %+v", bag.Items())
	}
	if toks[1].Kind != token.Invalid || toks[1].Text != "$" {
		t.Fatalf("unexpected token %+v", toks[1])
	}
	if toks[2].Kind != token.Invalid || toks[2].Text != "π" {
		t.Fatalf("unicode rune must be one token, got %+v", toks[2])
	}
}

func TestInvalidUTF8ByteKeepsRawText(t *testing.T) {
	toks, _ := makeTokens("H \xff q")
	if toks[1].Kind != token.Invalid || toks[1].Text != "\xff" {
		t.Fatalf("unexpected token %+v", toks[1])
	}
}

func TestModifiersAndAnnotations(t *testing.T) {
	expectKinds(t, "pow(2).inv.X q @ pragma.ctrl(1)",
		token.KwPow, token.LParen, token.IntLit, token.RParen, token.Dot, token.KwInv, token.Dot,
		token.Ident, token.Ident, token.At, token.Ident, token.Dot, token.KwCtrl, token.LParen,
		token.IntLit, token.RParen)
	expectKinds(t, "float[2] f; axis a", token.KwFloat, token.LBracket, token.IntLit, token.RBracket,
		token.Ident, token.Semicolon, token.KwAxis, token.Ident)
}

func TestPeekDoesNotConsume(t *testing.T) {
	fs := source.NewFileSet()
	lx := lexer.New(fs.Get(fs.AddVirtual("p.cq", []byte("X q"))), lexer.Options{})
	if lx.Peek().Text != "X" || lx.Next().Text != "X" || lx.Next().Text != "q" {
		t.Fatal("Peek must not consume")
	}
	for i := 0; i < 3; i++ {
		if lx.Next().Kind != token.EOF {
			t.Fatal("EOF must be sticky")
		}
	}
}

func TestSpansCoverText(t *testing.T) {
	src := "version 3\nqubit[10] qq // c\nCNOT qq[0], qq[1:3]\n"
	toks, _ := makeTokens(src)
	for _, tok := range toks {
		if got := src[tok.Span.Start:tok.Span.End]; got != tok.Text {
			t.Fatalf("span %v covers %q, text is %q", tok.Span, got, tok.Text)
		}
	}
}

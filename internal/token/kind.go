package token

import "strings"

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Newline separates statements.
	Newline // \n
	// Semicolon separates statements.
	Semicolon // ;
	// Colon separates the bounds of an index range.
	Colon // :
	// Comma separates operands and indices.
	Comma // ,
	// Dot joins gate modifiers and annotation names.
	Dot // .
	// At introduces an annotation.
	At // @
	// Assign introduces the measure target.
	Assign // =
	// LBracket opens an index list or array size.
	LBracket // [
	// RBracket closes an index list or array size.
	RBracket // ]
	// LBrace is reserved punctuation.
	LBrace // {
	// RBrace is reserved punctuation.
	RBrace // }
	// LParen opens a group, a call, or a gate parameter.
	LParen // (
	// RParen closes a group, a call, or a gate parameter.
	RParen // )

	Plus       // +
	Minus      // -
	Tilde      // ~
	Bang       // !
	StarStar   // **
	Star       // *
	Slash      // /
	Percent    // %
	Shl        // <<
	Shr        // >>
	Lt         // <
	Gt         // >
	LtEq       // <=
	GtEq       // >=
	EqEq       // ==
	BangEq     // !=
	Amp        // &
	Caret      // ^
	Pipe       // |
	AndAnd     // &&
	CaretCaret // ^^
	OrOr       // ||
	Question   // ?

	// KwVersion represents the 'version' keyword.
	KwVersion // version
	// KwQubit represents the 'qubit' type keyword.
	KwQubit // qubit
	// KwBit represents the 'bit' type keyword.
	KwBit   // bit
	KwBool  // bool
	KwInt   // int
	KwFloat // float
	KwAxis  // axis
	// KwMeasure represents the 'measure' keyword.
	KwMeasure // measure
	// KwInv, KwPow and KwCtrl are the gate modifiers.
	KwInv  // inv
	KwPow  // pow
	KwCtrl // ctrl

	// VersionNumber is the number following 'version' (3 or 3.0).
	VersionNumber
	// BoolLit represents true/false.
	BoolLit
	// IntLit represents a decimal integer literal.
	IntLit
	// FloatLit represents a floating-point literal.
	FloatLit
	// Ident represents an identifier.
	Ident

	kindCount
)

var kindNames = [...]string{
	Invalid:       "<invalid>",
	EOF:           "<EOF>",
	Newline:       "NEW_LINE",
	Semicolon:     "';'",
	Colon:         "':'",
	Comma:         "','",
	Dot:           "'.'",
	At:            "'@'",
	Assign:        "'='",
	LBracket:      "'['",
	RBracket:      "']'",
	LBrace:        "'{'",
	RBrace:        "'}'",
	LParen:        "'('",
	RParen:        "')'",
	Plus:          "'+'",
	Minus:         "'-'",
	Tilde:         "'~'",
	Bang:          "'!'",
	StarStar:      "'**'",
	Star:          "'*'",
	Slash:         "'/'",
	Percent:       "'%'",
	Shl:           "'<<'",
	Shr:           "'>>'",
	Lt:            "'<'",
	Gt:            "'>'",
	LtEq:          "'<='",
	GtEq:          "'>='",
	EqEq:          "'=='",
	BangEq:        "'!='",
	Amp:           "'&'",
	Caret:         "'^'",
	Pipe:          "'|'",
	AndAnd:        "'&&'",
	CaretCaret:    "'^^'",
	OrOr:          "'||'",
	Question:      "'?'",
	KwVersion:     "'version'",
	KwQubit:       "'qubit'",
	KwBit:         "'bit'",
	KwBool:        "'bool'",
	KwInt:         "'int'",
	KwFloat:       "'float'",
	KwAxis:        "'axis'",
	KwMeasure:     "'measure'",
	KwInv:         "'inv'",
	KwPow:         "'pow'",
	KwCtrl:        "'ctrl'",
	VersionNumber: "VERSION_NUMBER",
	BoolLit:       "BOOLEAN_LITERAL",
	IntLit:        "INTEGER_LITERAL",
	FloatLit:      "FLOAT_LITERAL",
	Ident:         "IDENTIFIER",
}

// String returns the grammar display name: quoted literal for fixed tokens,
// upper-case symbolic name for token classes.
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "<unknown>"
}

// Name returns the Go-ish identifier of the kind, used in token dumps.
func (k Kind) Name() string {
	switch k {
	case Invalid:
		return "Invalid"
	case EOF:
		return "EOF"
	case Newline:
		return "Newline"
	case VersionNumber:
		return "VersionNumber"
	case BoolLit:
		return "BoolLit"
	case IntLit:
		return "IntLit"
	case FloatLit:
		return "FloatLit"
	case Ident:
		return "Ident"
	}
	if k.IsKeyword() {
		word := kindNames[k][1 : len(kindNames[k])-1]
		return "Kw" + strings.ToUpper(word[:1]) + word[1:]
	}
	return kindNames[k]
}

// IsKeyword reports whether the kind is a reserved word.
func (k Kind) IsKeyword() bool {
	return k >= KwVersion && k <= KwCtrl
}

package token

var keywords = map[string]Kind{
	"version": KwVersion,
	"qubit":   KwQubit,
	"bit":     KwBit,
	"bool":    KwBool,
	"int":     KwInt,
	"float":   KwFloat,
	"axis":    KwAxis,
	"measure": KwMeasure,
	"inv":     KwInv,
	"pow":     KwPow,
	"ctrl":    KwCtrl,
	"true":    BoolLit,
	"false":   BoolLit,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые: "Qubit" остаётся идентификатором.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

package types

// Matches reports whether a value of type actual is accepted where expected is declared:
// kinds must be equal (array sizes are not part of the match).
func Matches(expected, actual Type) bool {
	return expected.Kind == actual.Kind
}

// rank — порядок расширения классических скаляров: bool → int → float.
func rank(k Kind) int {
	switch k {
	case KindBool:
		return 1
	case KindInt:
		return 2
	case KindFloat:
		return 3
	default:
		return 0
	}
}

// CanPromote reports whether actual matches expected exactly or widens to it
// along bool → int → float. Quantum types never promote.
func CanPromote(actual, expected Type) bool {
	if Matches(expected, actual) {
		return true
	}
	ra, re := rank(actual.Kind), rank(expected.Kind)
	return ra != 0 && re != 0 && ra < re
}

package types

import "fmt"

// FromSpec decodes a compact signature string, one letter per type:
//
//	Q qubit, B bit, b bool, i int, f float, V qubit array, W bit array.
//
// Array sizes are left at 0: matching ignores them.
func FromSpec(spec string) ([]Type, error) {
	out := make([]Type, 0, len(spec))
	for i := 0; i < len(spec); i++ {
		t, err := fromSpecChar(spec[i])
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// MustFromSpec is FromSpec for static tables.
func MustFromSpec(spec string) []Type {
	ts, err := FromSpec(spec)
	if err != nil {
		panic(err)
	}
	return ts
}

func fromSpecChar(c byte) (Type, error) {
	switch c {
	case 'Q':
		return Qubit, nil
	case 'B':
		return Bit, nil
	case 'b':
		return Bool, nil
	case 'i':
		return Int, nil
	case 'f':
		return Float, nil
	case 'V':
		return Type{Kind: KindQubitArray}, nil
	case 'W':
		return Type{Kind: KindBitArray}, nil
	default:
		return Invalid, fmt.Errorf("unknown type code %q", c)
	}
}

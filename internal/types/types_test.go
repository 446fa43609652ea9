package types

import "testing"

func TestTypeNames(t *testing.T) {
	tests := []struct {
		typ  Type
		name string
		node string
	}{
		{Qubit, "qubit", "Qubit"},
		{Bit, "bit", "Bit"},
		{Bool, "bool", "Bool"},
		{Int, "int", "Int"},
		{Float, "float", "Float"},
		{QubitArray(5), "qubit array", "QubitArray"},
		{BitArray(2), "bit array", "BitArray"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.name {
			t.Fatalf("String() = %q, want %q", got, tt.name)
		}
		if got := tt.typ.Kind.NodeName(); got != tt.node {
			t.Fatalf("NodeName() = %q, want %q", got, tt.node)
		}
	}
}

func TestFromSpec(t *testing.T) {
	ts, err := FromSpec("WVQBbif")
	if err != nil {
		t.Fatalf("FromSpec: %v", err)
	}
	if got := Join(ts); got != "bit array, qubit array, qubit, bit, bool, int, float" {
		t.Fatalf("Join = %q", got)
	}
	if _, err := FromSpec("x"); err == nil {
		t.Fatalf("expected error for unknown code")
	}
}

func TestCanPromote(t *testing.T) {
	tests := []struct {
		from, to Type
		want     bool
	}{
		{Int, Int, true},
		{Bool, Int, true},
		{Bool, Float, true},
		{Int, Float, true},
		{Float, Int, false},
		{Int, Bool, false},
		{Qubit, QubitArray(0), false},
		{QubitArray(5), QubitArray(0), true},
		{BitArray(5), QubitArray(0), false},
		{Int, Qubit, false},
	}
	for _, tt := range tests {
		if got := CanPromote(tt.from, tt.to); got != tt.want {
			t.Fatalf("CanPromote(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestElem(t *testing.T) {
	if QubitArray(3).Elem() != Qubit || BitArray(3).Elem() != Bit || Int.Elem() != Int {
		t.Fatalf("Elem mismatch")
	}
}

func TestArrayOf(t *testing.T) {
	tests := []struct {
		elem     Type
		wantName string
		wantNode string
		ok       bool
	}{
		{Bool, "bool array", "BoolArray", true},
		{Int, "int array", "IntArray", true},
		{Float, "float array", "FloatArray", true},
		{Qubit, "qubit array", "QubitArray", true},
		{Axis, "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.elem.String(), func(t *testing.T) {
			arr, ok := ArrayOf(tt.elem, 4)
			if ok != tt.ok {
				t.Fatalf("ArrayOf(%s) ok = %v", tt.elem, ok)
			}
			if !ok {
				return
			}
			if arr.String() != tt.wantName || arr.Kind.NodeName() != tt.wantNode || arr.Size != 4 {
				t.Fatalf("ArrayOf(%s) = %s/%s/%d", tt.elem, arr, arr.Kind.NodeName(), arr.Size)
			}
			if !arr.IsArray() || arr.Elem() != tt.elem {
				t.Fatalf("%s must be an array of %s", arr, tt.elem)
			}
		})
	}
	if f, _ := ArrayOf(Float, 2); f.IsIndexable() {
		t.Fatal("only qubit and bit arrays are indexable")
	}
	if Axis.IsArray() || Axis.Kind.NodeName() != "Axis" {
		t.Fatal("axis is a scalar")
	}
}

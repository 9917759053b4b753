package tinyexpr

import "testing"

func TestNodeStringUnfoldedCalls(t *testing.T) {
	// Build nodes directly rather than through Compile, since the optimizer
	// would fold these pure, all-literal calls down to a single NodeLiteral
	// before String ever saw the structure being tested here.
	one := &Node{Kind: NodeLiteral, Value: 1}
	two := &Node{Kind: NodeLiteral, Value: 2}
	three := &Node{Kind: NodeLiteral, Value: 3}

	add := &Node{Kind: NodeCall, op: opAdd, Args: []*Node{one, two}}
	if got, want := add.String(), "(1 + 2)"; got != want {
		t.Errorf("add.String() = %q, want %q", got, want)
	}

	neg := &Node{Kind: NodeCall, op: opNeg, Args: []*Node{three}}
	if got, want := neg.String(), "-(3)"; got != want {
		t.Errorf("neg.String() = %q, want %q", got, want)
	}

	seq := &Node{Kind: NodeCall, op: opSeq, Args: []*Node{two, three}}
	if got, want := seq.String(), "(2, 3)"; got != want {
		t.Errorf("seq.String() = %q, want %q", got, want)
	}
}

func TestNodeStringArrayIndex(t *testing.T) {
	arr := []float64{1, 2, 3}
	symbols := SymbolTable{"arr": Array(arr)}
	tree := compileOrFatal(t, "arr[1]", symbols)
	if got, want := tree.String(), "arr[1]"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

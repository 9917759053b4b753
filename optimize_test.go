package tinyexpr

import "testing"

func TestOptimizeFoldsPureConstants(t *testing.T) {
	tree := compileOrFatal(t, "2 + 3 * 4", nil)
	if tree.root.Kind != NodeLiteral {
		t.Errorf("root kind = %v, want NodeLiteral after folding", tree.root.Kind)
	}
	if got, want := tree.root.Value, 14.0; got != want {
		t.Errorf("folded value = %v, want %v", got, want)
	}
}

func TestOptimizeLeavesVariablesUnfolded(t *testing.T) {
	x := 1.0
	symbols := SymbolTable{"x": Scalar(&x)}
	tree := compileOrFatal(t, "x + 1", symbols)
	if tree.root.Kind == NodeLiteral {
		t.Error("root folded to a literal despite depending on a variable")
	}
}

func TestOptimizeLeavesArrayIndexUnfolded(t *testing.T) {
	arr := []float64{1, 2, 3}
	symbols := SymbolTable{"arr": Array(arr)}
	tree := compileOrFatal(t, "arr[0]", symbols)
	if tree.root.Kind == NodeLiteral {
		t.Error("array index folded to a literal, but array contents can change between evals")
	}
}

func TestOptimizeLeavesArrayAggregateUnfolded(t *testing.T) {
	arr := []float64{1, 2, 3}
	symbols := SymbolTable{"arr": Array(arr)}
	tree := compileOrFatal(t, "sum(arr)", symbols)
	if tree.root.Kind == NodeLiteral {
		t.Error("sum(arr) folded to a literal, but array contents can change between evals")
	}
}

func TestOptimizeFoldsArity0Builtin(t *testing.T) {
	tree := compileOrFatal(t, "pi", nil)
	if tree.root.Kind != NodeLiteral {
		t.Errorf("root kind = %v, want NodeLiteral for a folded arity-0 builtin", tree.root.Kind)
	}
}

func TestOptimizeRespectsImpureUserFunction(t *testing.T) {
	calls := 0
	counter := Function(Func{Arity: 0, Pure: false, Call: func([]float64) float64 {
		calls++
		return float64(calls)
	}})
	tree := compileOrFatal(t, "counter()", SymbolTable{"counter": counter})
	if tree.root.Kind == NodeLiteral {
		t.Fatal("impure function folded to a literal")
	}
	if got, want := tree.Eval(), 1.0; got != want {
		t.Errorf("first Eval = %v, want %v", got, want)
	}
	if got, want := tree.Eval(), 2.0; got != want {
		t.Errorf("second Eval = %v, want %v", got, want)
	}
}

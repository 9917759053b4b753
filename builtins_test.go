package tinyexpr

import (
	"math"
	"testing"
)

func TestDefaultBuiltinsTable(t *testing.T) {
	names := []string{
		"abs", "acos", "arrlen", "arrmax", "arrmin", "asin", "atan", "atan2",
		"bit", "ceil", "cos", "cosh", "e", "exp", "fac", "floor",
		"linear_interpolate", "ln", "log", "log10", "ncr", "npr", "pi", "pow",
		"sin", "sinh", "sqrt", "sum", "tan", "tanh", "xor",
	}
	table := defaultBuiltins(false)
	if len(table) != len(names) {
		t.Fatalf("defaultBuiltins has %d entries, want %d", len(table), len(names))
	}
	for _, name := range names {
		if _, ok := table[name]; !ok {
			t.Errorf("defaultBuiltins is missing %q", name)
		}
	}
}

func TestBuiltinTableIsDefensiveCopy(t *testing.T) {
	table := BuiltinTable()
	if arity, ok := table["sum"]; !ok || arity != 1 {
		t.Fatalf(`BuiltinTable()["sum"] = %v, %v, want 1, true`, arity, ok)
	}
	table["sum"] = 99
	if arity := BuiltinTable()["sum"]; arity != 1 {
		t.Errorf("mutating a returned table affected a later call: sum arity = %v", arity)
	}
}

func TestFacOverflowSaturatesToInf(t *testing.T) {
	if got := fac(math.MaxUint32 + 1); !math.IsInf(got, 1) {
		t.Errorf("fac(MaxUint32+1) = %v, want +Inf", got)
	}
}

func TestNcrOutOfDomain(t *testing.T) {
	if got := ncr(2, 5); !math.IsNaN(got) {
		t.Errorf("ncr(2,5) = %v, want NaN", got)
	}
	if got := ncr(-1, 2); !math.IsNaN(got) {
		t.Errorf("ncr(-1,2) = %v, want NaN", got)
	}
}

func TestLerpEqualEndpointsReturnsMidpoint(t *testing.T) {
	got := teLerp([][]float64{{1, 1}, {10, 20}}, []float64{1})
	if got != 15 {
		t.Errorf("teLerp with equal domain endpoints = %v, want 15", got)
	}
}

func TestLerpMismatchedLengths(t *testing.T) {
	got := teLerp([][]float64{{1, 2, 3}, {10, 20}}, []float64{2})
	if !math.IsNaN(got) {
		t.Errorf("teLerp with mismatched lengths = %v, want NaN", got)
	}
}

func TestLerpDescendingDomain(t *testing.T) {
	got := teLerp([][]float64{{10, 0}, {100, 0}}, []float64{5})
	if got != 50 {
		t.Errorf("teLerp descending domain at midpoint = %v, want 50", got)
	}
}

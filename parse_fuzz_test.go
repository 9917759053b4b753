package tinyexpr

import "testing"

func FuzzCompile(f *testing.F) {
	f.Add("1+2")
	f.Add("sin(x)")
	f.Add("arr[0]")
	f.Add("2^3^2")
	f.Add("(")
	f.Add("")
	x := 1.0
	arr := []float64{1, 2, 3}
	symbols := SymbolTable{"x": Scalar(&x), "arr": Array(arr)}
	f.Fuzz(func(t *testing.T, s string) {
		Compile(s, symbols)
	})
}

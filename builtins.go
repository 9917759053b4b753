package tinyexpr

import "math"

// builtin describes one entry of the default function table. All builtins
// are pure: given the same arguments, they always return the same result.
//
// Most builtins take Arity plain float64 arguments evaluated in the usual
// way and are dispatched through call. A few — sum, arrmin, arrmax, arrlen,
// and linear_interpolate — aggregate over whole arrays rather than single
// values. Those mark the array-typed positions of their argument list in
// arrayArgs and are dispatched through arrayCall instead, which receives the
// bound backing slice for each array argument directly rather than a
// folded-down float64. This mirrors the intent of tinyexpr's function
// pointer comparison against te_sum et al. (see its array-aggregate
// functions), but dispatches on an explicit attribute instead of comparing
// function identity, which has no equivalent for Go closures.
type builtin struct {
	name  string
	arity int
	// arrayArgs marks, by position, which of the arity arguments bind to a
	// whole array rather than a scalar expression. Nil means no argument is
	// array-typed.
	arrayArgs []bool
	call      func(args []float64) float64
	arrayCall func(arrays [][]float64, scalars []float64) float64
}

// maxBitwiseValue is the largest magnitude an operand to a bitwise builtin
// (or the & and | operators) may have once rounded, matching the 53 bits of
// integer precision a float64 can represent exactly.
const maxBitwiseValue = (uint64(1) << 53) - 1

func isValidBitwiseOperand(x float64) bool {
	if x < 0 {
		return false
	}
	return math.Round(x) <= float64(maxBitwiseValue)
}

func bitwiseAnd(a, b float64) float64 {
	if !isValidBitwiseOperand(a) || !isValidBitwiseOperand(b) {
		return math.NaN()
	}
	return float64(int64(math.Round(a)) & int64(math.Round(b)))
}

func bitwiseOr(a, b float64) float64 {
	if !isValidBitwiseOperand(a) || !isValidBitwiseOperand(b) {
		return math.NaN()
	}
	return float64(int64(math.Round(a)) | int64(math.Round(b)))
}

func fnXor(a, b float64) float64 {
	if !isValidBitwiseOperand(a) || !isValidBitwiseOperand(b) {
		return math.NaN()
	}
	return float64(int64(math.Round(a)) ^ int64(math.Round(b)))
}

func fnBit(n, i float64) float64 {
	if n < 0 || i < 0 {
		return math.NaN()
	}
	iv := int64(math.Round(n))
	bi := int64(math.Round(i))
	if iv > (int64(1)<<53)-1 || bi >= 53 {
		return math.NaN()
	}
	if iv&(int64(1)<<uint(bi)) != 0 {
		return 1
	}
	return 0
}

// fac saturates to +Inf for inputs too large to fit the accumulator, exactly
// as tinyexpr's fac does against UINT_MAX and ULONG_MAX.
func fac(a float64) float64 {
	if a < 0 {
		return math.NaN()
	}
	if a > math.MaxUint32 {
		return math.Inf(1)
	}
	ua := uint64(a)
	var result uint64 = 1
	for i := uint64(1); i <= ua; i++ {
		if i > math.MaxUint64/result {
			return math.Inf(1)
		}
		result *= i
	}
	return float64(result)
}

func ncr(n, r float64) float64 {
	if n < 0 || r < 0 || n < r {
		return math.NaN()
	}
	if n > math.MaxUint32 || r > math.MaxUint32 {
		return math.Inf(1)
	}
	un, ur := uint64(n), uint64(r)
	if ur > un/2 {
		ur = un - ur
	}
	var result uint64 = 1
	for i := uint64(1); i <= ur; i++ {
		if result > math.MaxUint64/(un-ur+i) {
			return math.Inf(1)
		}
		result *= un - ur + i
		result /= i
	}
	return float64(result)
}

func npr(n, r float64) float64 {
	return ncr(n, r) * fac(r)
}

func teSum(arrays [][]float64, _ []float64) float64 {
	s := 0.0
	for _, v := range arrays[0] {
		s += v
	}
	return s
}

func teArrMin(arrays [][]float64, _ []float64) float64 {
	arr := arrays[0]
	if len(arr) < 1 {
		return math.NaN()
	}
	m := arr[0]
	for _, v := range arr[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func teArrMax(arrays [][]float64, _ []float64) float64 {
	arr := arrays[0]
	if len(arr) < 1 {
		return math.NaN()
	}
	m := arr[0]
	for _, v := range arr[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func teArrLen(arrays [][]float64, _ []float64) float64 {
	return float64(len(arrays[0]))
}

// teLerp performs direction-aware linear interpolation of x against a
// domain/range pair of equal-length arrays.
func teLerp(arrays [][]float64, scalars []float64) float64 {
	d, r, x := arrays[0], arrays[1], scalars[0]
	n := len(d)
	if len(r) != n || n < 2 {
		return math.NaN()
	}
	ascending := d[n-1] > d[0]
	for i := 0; i < n-1; i++ {
		d0, d1 := d[i], d[i+1]
		r0, r1 := r[i], r[i+1]
		inRange := x >= d0 && x <= d1
		if !ascending {
			inRange = x <= d0 && x >= d1
		}
		if inRange {
			if d1 == d0 {
				return (r0 + r1) / 2
			}
			t := (x - d0) / (d1 - d0)
			return r0 + t*(r1-r0)
		}
	}
	return math.NaN()
}

func monadic(f func(float64) float64) func([]float64) float64 {
	return func(args []float64) float64 { return f(args[0]) }
}

func dyadic(f func(float64, float64) float64) func([]float64) float64 {
	return func(args []float64) float64 { return f(args[0], args[1]) }
}

// defaultBuiltins returns the default function table keyed by name. When
// naturalLog is true, "log" is bound to the natural logarithm rather than
// base 10, mirroring tinyexpr's TE_NAT_LOG compile-time option as a runtime
// ParseOption (see NaturalLog).
func defaultBuiltins(naturalLog bool) map[string]*builtin {
	logFn := math.Log10
	if naturalLog {
		logFn = math.Log
	}
	table := []*builtin{
		{name: "abs", arity: 1, call: monadic(math.Abs)},
		{name: "acos", arity: 1, call: monadic(math.Acos)},
		{name: "arrlen", arity: 1, arrayArgs: []bool{true}, arrayCall: teArrLen},
		{name: "arrmax", arity: 1, arrayArgs: []bool{true}, arrayCall: teArrMax},
		{name: "arrmin", arity: 1, arrayArgs: []bool{true}, arrayCall: teArrMin},
		{name: "asin", arity: 1, call: monadic(math.Asin)},
		{name: "atan", arity: 1, call: monadic(math.Atan)},
		{name: "atan2", arity: 2, call: dyadic(math.Atan2)},
		{name: "bit", arity: 2, call: dyadic(fnBit)},
		{name: "ceil", arity: 1, call: monadic(math.Ceil)},
		{name: "cos", arity: 1, call: monadic(math.Cos)},
		{name: "cosh", arity: 1, call: monadic(math.Cosh)},
		{name: "e", arity: 0, call: func([]float64) float64 { return math.E }},
		{name: "exp", arity: 1, call: monadic(math.Exp)},
		{name: "fac", arity: 1, call: monadic(fac)},
		{name: "floor", arity: 1, call: monadic(math.Floor)},
		{name: "linear_interpolate", arity: 3, arrayArgs: []bool{true, true, false}, arrayCall: teLerp},
		{name: "ln", arity: 1, call: monadic(math.Log)},
		{name: "log", arity: 1, call: monadic(logFn)},
		{name: "log10", arity: 1, call: monadic(math.Log10)},
		{name: "ncr", arity: 2, call: dyadic(ncr)},
		{name: "npr", arity: 2, call: dyadic(npr)},
		{name: "pi", arity: 0, call: func([]float64) float64 { return math.Pi }},
		{name: "pow", arity: 2, call: dyadic(math.Pow)},
		{name: "sin", arity: 1, call: monadic(math.Sin)},
		{name: "sinh", arity: 1, call: monadic(math.Sinh)},
		{name: "sqrt", arity: 1, call: monadic(math.Sqrt)},
		{name: "sum", arity: 1, arrayArgs: []bool{true}, arrayCall: teSum},
		{name: "tan", arity: 1, call: monadic(math.Tan)},
		{name: "tanh", arity: 1, call: monadic(math.Tanh)},
		{name: "xor", arity: 2, call: dyadic(fnXor)},
	}
	m := make(map[string]*builtin, len(table))
	for _, b := range table {
		m[b.name] = b
	}
	return m
}

// BuiltinTable returns the names and arities of every function Compile
// recognizes by default, keyed by name. It is a defensive copy: mutating
// the returned map has no effect on parsing.
func BuiltinTable() map[string]int {
	table := defaultBuiltins(false)
	out := make(map[string]int, len(table))
	for name, b := range table {
		out[name] = b.arity
	}
	return out
}

package tinyexpr

import "math"

// Tree is a compiled expression, ready to be evaluated any number of times.
// A Tree is not safe for concurrent Eval calls if any of its bound scalars
// or arrays are being concurrently mutated; evaluating the same immutable
// Tree concurrently without concurrent mutation of its bindings is safe,
// since Eval itself holds no mutable state.
type Tree struct {
	root *Node
	vars []string
}

// Eval evaluates the tree and returns its result. Eval never returns a Go
// error: an operation that is out of domain — a negative sqrt, an
// out-of-bounds array index, an invalid bitwise operand, division that
// leaves both sides zero or infinite — evaluates to math.NaN() instead,
// following ordinary floating-point convention rather than failing loudly.
// Compile is solely responsible for reporting problems that can be
// diagnosed before any value is known.
func (t *Tree) Eval() float64 {
	return evalNode(t.root)
}

// Vars returns the sorted, deduplicated names of every variable referenced
// in the tree, whether scalar or array.
func (t *Tree) Vars() []string {
	return append([]string(nil), t.vars...)
}

// String renders the tree as a fully parenthesized expression.
func (t *Tree) String() string {
	return t.root.String()
}

// Free releases any resources held by the tree. In this implementation a
// Tree holds nothing beyond ordinary garbage-collected memory, so Free is a
// no-op; it exists so code ported from the original C API, which required
// an explicit te_free, has something to call.
func (t *Tree) Free() {}

// Interp compiles src and evaluates it immediately, returning the result or
// the compile error. It is a shortcut for Compile followed by Eval.
func Interp(src string, symbols SymbolTable, opts ...ParseOption) (float64, error) {
	t, err := Compile(src, symbols, opts...)
	if err != nil {
		return math.NaN(), err
	}
	return t.Eval(), nil
}

// evalNode computes the value of any node in a compiled tree.
func evalNode(n *Node) float64 {
	switch n.Kind {
	case NodeLiteral:
		return n.Value
	case NodeScalarVar:
		return *n.Scalar
	case NodeArrayVar:
		// Bare array references only appear as arguments to array-consuming
		// builtins, which read n.Array directly rather than recursing into
		// evalNode. Reaching this case means such a node escaped into a
		// scalar context, which the parser never produces.
		return math.NaN()
	case NodeArrayIndex:
		return indexArray(n.Array, evalNode(n.Index))
	case NodeCall:
		return evalCall(n)
	default:
		return math.NaN()
	}
}

// indexArray implements bounds-checked, truncating array indexing: a
// non-integer index truncates toward zero, matching a C cast from double to
// int, and an index that truncates to a value outside [0, len(arr))
// evaluates to NaN.
func indexArray(arr []float64, idx float64) float64 {
	if math.IsNaN(idx) || idx <= -1 {
		return math.NaN()
	}
	i := int(idx)
	if i < 0 || i >= len(arr) {
		return math.NaN()
	}
	return arr[i]
}

func evalCall(n *Node) float64 {
	switch {
	case n.op != 0:
		return evalOp(n)
	case n.builtin != nil:
		return evalBuiltin(n)
	case n.symbol != nil:
		return evalSymbolCall(n)
	default:
		return math.NaN()
	}
}

func evalOp(n *Node) float64 {
	switch n.op {
	case opNeg:
		return -evalNode(n.Args[0])
	case opSeq:
		var v float64
		for _, a := range n.Args {
			v = evalNode(a)
		}
		return v
	case opAdd:
		return evalNode(n.Args[0]) + evalNode(n.Args[1])
	case opSub:
		return evalNode(n.Args[0]) - evalNode(n.Args[1])
	case opMul:
		return evalNode(n.Args[0]) * evalNode(n.Args[1])
	case opDiv:
		return evalNode(n.Args[0]) / evalNode(n.Args[1])
	case opMod:
		return math.Mod(evalNode(n.Args[0]), evalNode(n.Args[1]))
	case opPow:
		return math.Pow(evalNode(n.Args[0]), evalNode(n.Args[1]))
	case opAnd:
		return bitwiseAnd(evalNode(n.Args[0]), evalNode(n.Args[1]))
	case opOr:
		return bitwiseOr(evalNode(n.Args[0]), evalNode(n.Args[1]))
	default:
		return math.NaN()
	}
}

func evalBuiltin(n *Node) float64 {
	b := n.builtin
	if b.arrayCall != nil {
		arrays := make([][]float64, 0, len(b.arrayArgs))
		scalars := make([]float64, 0, len(n.Args))
		for i, a := range n.Args {
			if b.arrayArgs[i] {
				arrays = append(arrays, a.Array)
			} else {
				scalars = append(scalars, evalNode(a))
			}
		}
		return b.arrayCall(arrays, scalars)
	}
	args := make([]float64, len(n.Args))
	for i, a := range n.Args {
		args[i] = evalNode(a)
	}
	return b.call(args)
}

func evalSymbolCall(n *Node) float64 {
	sym := n.symbol
	args := make([]float64, len(n.Args))
	for i, a := range n.Args {
		args[i] = evalNode(a)
	}
	switch sym.Kind {
	case KindFunction:
		return sym.Function.Call(args)
	case KindClosure:
		return sym.Closure.Call(sym.Context, args)
	default:
		return math.NaN()
	}
}

package tinyexpr

import (
	"strconv"
	"strings"
)

// NodeKind identifies what an AST Node computes.
type NodeKind int8

const (
	// NodeLiteral holds a constant value parsed directly from the source.
	NodeLiteral NodeKind = iota
	// NodeScalarVar reads the current value of a bound scalar.
	NodeScalarVar
	// NodeArrayVar is a bare reference to a bound array, valid only as the
	// array-typed argument of an aggregate builtin.
	NodeArrayVar
	// NodeArrayIndex reads one element of a bound array at a computed index.
	NodeArrayIndex
	// NodeCall applies an operator or function to its Args. Infix arithmetic,
	// unary negation, the comma operator, and ordinary function and closure
	// calls are all represented as NodeCall; only the op/builtin/symbol
	// fields distinguish them. Unifying these lets the optimizer apply a
	// single folding rule uniformly (see optimize.go) instead of special-
	// casing each kind of call.
	NodeCall
)

func (k NodeKind) String() string {
	switch k {
	case NodeLiteral:
		return "literal"
	case NodeScalarVar:
		return "scalar"
	case NodeArrayVar:
		return "array"
	case NodeArrayIndex:
		return "index"
	case NodeCall:
		return "call"
	default:
		return "invalid"
	}
}

// Node is one node of a compiled expression tree.
type Node struct {
	Kind NodeKind

	// Value holds the constant for NodeLiteral.
	Value float64

	// Name holds the bound identifier for NodeScalarVar, NodeArrayVar, and
	// NodeCall (for functions and closures; operators leave Name empty).
	Name string

	// Scalar and Array hold the bound storage for NodeScalarVar and
	// NodeArrayVar/NodeArrayIndex respectively.
	Scalar *float64
	Array  []float64

	// Index is the index expression for NodeArrayIndex.
	Index *Node

	// Args are the children of a NodeCall: the two operands of a binary
	// operator, the one operand of a unary negation, the two or more
	// operands of the comma operator, or the arguments of a function,
	// closure, or builtin call, in order.
	Args []*Node

	// Pure indicates a NodeCall is eligible for constant folding: it always
	// returns the same result for the same Args and has no side effects.
	// Arithmetic operators and math builtins are always pure; user-supplied
	// functions and closures carry whatever Pure their Func or ClosureFunc
	// declared.
	Pure bool

	op      byte
	builtin *builtin
	symbol  *Symbol
}

// op identifies which operator a NodeCall applies, when it isn't a call to a
// builtin or user function/closure.
const (
	opAdd byte = '+'
	opSub byte = '-'
	opMul byte = '*'
	opDiv byte = '/'
	opMod byte = '%'
	opPow byte = '^'
	opAnd byte = '&'
	opOr  byte = '|'
	opNeg byte = 'n'
	opSeq byte = ','
)

// String renders n as a fully parenthesized expression. It exists mainly for
// debugging and test failure messages; it is not guaranteed to reparse to an
// identical tree (e.g. it always parenthesizes, where the original source
// may have relied on precedence).
func (n *Node) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

func (n *Node) fmt(b *strings.Builder) {
	switch n.Kind {
	case NodeLiteral:
		b.WriteString(formatFloat(n.Value))
	case NodeScalarVar, NodeArrayVar:
		b.WriteString(n.Name)
	case NodeArrayIndex:
		b.WriteString(n.Name)
		b.WriteByte('[')
		n.Index.fmt(b)
		b.WriteByte(']')
	case NodeCall:
		n.fmtCall(b)
	default:
		b.WriteString("<invalid>")
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func (n *Node) fmtCall(b *strings.Builder) {
	if n.op != 0 {
		switch n.op {
		case opNeg:
			b.WriteByte('-')
			b.WriteByte('(')
			n.Args[0].fmt(b)
			b.WriteByte(')')
			return
		case opSeq:
			b.WriteByte('(')
			for i, a := range n.Args {
				if i > 0 {
					b.WriteString(", ")
				}
				a.fmt(b)
			}
			b.WriteByte(')')
			return
		default:
			b.WriteByte('(')
			n.Args[0].fmt(b)
			b.WriteByte(' ')
			b.WriteByte(n.op)
			b.WriteByte(' ')
			n.Args[1].fmt(b)
			b.WriteByte(')')
			return
		}
	}
	b.WriteString(n.Name)
	b.WriteByte('(')
	for i, a := range n.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		a.fmt(b)
	}
	b.WriteByte(')')
}

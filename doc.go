// Package tinyexpr implements a small, embeddable arithmetic expression
// compiler and evaluator.
//
// Expressions use ordinary infix math notation: "2 + 3 * x" or
// "sin(pi/4) + sqrt(y[0])". An expression is compiled once with Compile
// into a Tree, then evaluated any number of times with
// Tree.Eval. Variables and functions are resolved against a symbol table
// supplied at compile time; Compile does not look anything up lazily, so a
// Tree carries everything it needs to evaluate except the current values of
// its scalar and array variables.
//
// Compile errors are reported as a single *ParseError carrying the byte
// offset at which the problem was found. Runtime errors have no
// corresponding Go error value: an evaluation that is out of domain, reads
// an out-of-bounds array index, or otherwise cannot produce a real result
// simply returns math.NaN(), matching the arithmetic convention that bad
// floating-point operations produce NaN rather than panicking or failing.
package tinyexpr

package tinyexpr

// parseConfig holds the options in effect for one call to Compile.
type parseConfig struct {
	// rightAssocPow makes ^ right-associative (a^b^c = a^(b^c), -a^b =
	// -(a^b)) instead of the default left-associative behavior (a^b^c =
	// (a^b)^c, -a^b = (-a)^b). This corresponds to tinyexpr's
	// TE_POW_FROM_RIGHT compile-time option.
	rightAssocPow bool
	// naturalLog makes the "log" builtin compute the natural logarithm
	// instead of the base-10 logarithm. This corresponds to tinyexpr's
	// TE_NAT_LOG compile-time option.
	naturalLog bool
	// noDefaults disables the builtin function table entirely; only names
	// present in the SymbolTable passed to Compile are recognized.
	noDefaults bool
}

// ParseOption configures how Compile parses an expression.
type ParseOption interface {
	apply(*parseConfig)
}

type parseOptionFunc func(*parseConfig)

func (f parseOptionFunc) apply(c *parseConfig) { f(c) }

// RightAssociativePow makes the ^ operator right-associative, so that
// "2^3^2" means 2^(3^2) = 512 rather than the default (2^3)^2 = 64, and
// "-2^2" means -(2^2) = -4 rather than the default (-2)^2 = 4.
func RightAssociativePow() ParseOption {
	return parseOptionFunc(func(c *parseConfig) { c.rightAssocPow = true })
}

// NaturalLog makes the "log" builtin compute the natural logarithm rather
// than the base-10 logarithm. "ln" always computes the natural logarithm
// regardless of this option.
func NaturalLog() ParseOption {
	return parseOptionFunc(func(c *parseConfig) { c.naturalLog = true })
}

// DisableDefaultFuncs disables the builtin function table, so that only
// names bound in the SymbolTable given to Compile are recognized. This is
// useful for embedding expressions into a sandbox with a deliberately
// restricted vocabulary.
func DisableDefaultFuncs() ParseOption {
	return parseOptionFunc(func(c *parseConfig) { c.noDefaults = true })
}

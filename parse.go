package tinyexpr

import (
	"sort"
	"strconv"
)

// list   := expr (',' expr)*
// expr   := term (('+'|'-') term)*
// term   := factor (('*'|'/'|'%'|'&'|'|') factor)*
// factor := power ('^' power)*
// power  := ('+'|'-')* base
// base   := number
//         | scalar
//         | array '[' list ']'
//         | func0 ('(' ')')?
//         | func1 ('(' expr ')' | power)
//         | funcN '(' expr (',' expr){N-1} ')'
//         | aggregate '(' arg (',' arg)* ')'
//         | '(' list ')'
//
// An array is indexed exactly once, and a scalar is never indexed. The args
// of an aggregate builtin are bare array names in its array positions and
// exprs elsewhere.

// parseContext carries the state threaded through one call to Compile.
type parseContext struct {
	lex      *lexer
	symbols  SymbolTable
	builtins map[string]*builtin
	cfg      parseConfig
	names    map[string]bool
}

// Compile parses src against symbols and returns a Tree ready for repeated
// evaluation with Tree.Eval. Variables and functions referenced in src that
// are not present in symbols and are not builtins report a *ParseError;
// Position(err) recovers the byte offset of the problem.
func Compile(src string, symbols SymbolTable, opts ...ParseOption) (*Tree, error) {
	var cfg parseConfig
	for _, opt := range opts {
		opt.apply(&cfg)
	}
	p := &parseContext{
		lex:      newLexer(src),
		symbols:  symbols,
		builtins: defaultBuiltins(cfg.naturalLog),
		cfg:      cfg,
		names:    make(map[string]bool),
	}
	root, err := parseList(p)
	if err != nil {
		return nil, err
	}
	tok, err := p.lex.next()
	if err != nil {
		return nil, err
	}
	if tok.kind != tokEOF {
		return nil, newParseError(tok.pos, "unexpected trailing input")
	}
	names := make([]string, 0, len(p.names))
	for name := range p.names {
		names = append(names, name)
	}
	sort.Strings(names)
	return &Tree{root: optimize(root), vars: names}, nil
}

func parseList(p *parseContext) (*Node, error) {
	first, err := parseExpr(p)
	if err != nil {
		return nil, err
	}
	args := []*Node{first}
	for {
		tok, err := p.lex.next()
		if err != nil {
			return nil, err
		}
		if tok.kind != tokComma {
			p.lex.push(tok)
			break
		}
		next, err := parseExpr(p)
		if err != nil {
			return nil, err
		}
		args = append(args, next)
	}
	if len(args) == 1 {
		return args[0], nil
	}
	return &Node{Kind: NodeCall, op: opSeq, Pure: true, Args: args}, nil
}

func parseExpr(p *parseContext) (*Node, error) {
	left, err := parseTerm(p)
	if err != nil {
		return nil, err
	}
	for {
		tok, err := p.lex.next()
		if err != nil {
			return nil, err
		}
		if tok.kind != tokOp || (tok.text != "+" && tok.text != "-") {
			p.lex.push(tok)
			return left, nil
		}
		right, err := parseTerm(p)
		if err != nil {
			return nil, err
		}
		op := opAdd
		if tok.text == "-" {
			op = opSub
		}
		left = &Node{Kind: NodeCall, op: op, Pure: true, Args: []*Node{left, right}}
	}
}

func parseTerm(p *parseContext) (*Node, error) {
	left, err := parseFactor(p)
	if err != nil {
		return nil, err
	}
	for {
		tok, err := p.lex.next()
		if err != nil {
			return nil, err
		}
		if tok.kind != tokOp {
			p.lex.push(tok)
			return left, nil
		}
		var op byte
		switch tok.text {
		case "*":
			op = opMul
		case "/":
			op = opDiv
		case "%":
			op = opMod
		case "&":
			op = opAnd
		case "|":
			op = opOr
		default:
			p.lex.push(tok)
			return left, nil
		}
		right, err := parseFactor(p)
		if err != nil {
			return nil, err
		}
		left = &Node{Kind: NodeCall, op: op, Pure: true, Args: []*Node{left, right}}
	}
}

func parseFactor(p *parseContext) (*Node, error) {
	left, err := parsePower(p)
	if err != nil {
		return nil, err
	}
	tok, err := p.lex.next()
	if err != nil {
		return nil, err
	}
	if tok.kind != tokOp || tok.text != "^" {
		p.lex.push(tok)
		return left, nil
	}
	if p.cfg.rightAssocPow {
		// A leading unary minus binds looser than ^ here, so that
		// "-a^b" means "-(a^b)" rather than "(-a)^b": strip it off left,
		// build the right-associative chain over the unnegated operand, then
		// reapply it to the whole chain.
		neg := false
		base := left
		if base.Kind == NodeCall && base.op == opNeg {
			neg = true
			base = base.Args[0]
		}
		right, err := parseFactor(p)
		if err != nil {
			return nil, err
		}
		node := &Node{Kind: NodeCall, op: opPow, Pure: true, Args: []*Node{base, right}}
		if neg {
			node = &Node{Kind: NodeCall, op: opNeg, Pure: true, Args: []*Node{node}}
		}
		return node, nil
	}
	node := left
	for {
		right, err := parsePower(p)
		if err != nil {
			return nil, err
		}
		node = &Node{Kind: NodeCall, op: opPow, Pure: true, Args: []*Node{node, right}}
		tok, err = p.lex.next()
		if err != nil {
			return nil, err
		}
		if tok.kind != tokOp || tok.text != "^" {
			p.lex.push(tok)
			return node, nil
		}
	}
}

func parsePower(p *parseContext) (*Node, error) {
	neg := false
	for {
		tok, err := p.lex.next()
		if err != nil {
			return nil, err
		}
		if tok.kind == tokOp && tok.text == "+" {
			continue
		}
		if tok.kind == tokOp && tok.text == "-" {
			neg = !neg
			continue
		}
		p.lex.push(tok)
		break
	}
	b, err := parseBase(p)
	if err != nil {
		return nil, err
	}
	if neg {
		return &Node{Kind: NodeCall, op: opNeg, Pure: true, Args: []*Node{b}}, nil
	}
	return b, nil
}

func parseBase(p *parseContext) (*Node, error) {
	tok, err := p.lex.next()
	if err != nil {
		return nil, err
	}
	switch tok.kind {
	case tokNumber:
		v, err := strconv.ParseFloat(tok.text, 64)
		if err != nil {
			return nil, newParseError(tok.pos, "invalid number literal "+strconv.Quote(tok.text))
		}
		return &Node{Kind: NodeLiteral, Value: v}, nil
	case tokIdent:
		return p.parseIdent(tok)
	case tokOpen:
		inner, err := parseList(p)
		if err != nil {
			return nil, err
		}
		end, err := p.lex.next()
		if err != nil {
			return nil, err
		}
		if end.kind != tokClose {
			return nil, newParseError(end.pos, "expected ')'")
		}
		return inner, nil
	case tokEOF:
		return nil, newParseError(tok.pos, "unexpected end of expression")
	default:
		return nil, newParseError(tok.pos, "expected a number, identifier, or '('")
	}
}

// parseIdent resolves an identifier token to a variable or function
// reference. User symbols take priority over builtins, so a SymbolTable
// entry named e.g. "pi" shadows the builtin constant.
func (p *parseContext) parseIdent(tok token) (*Node, error) {
	name := tok.text
	if sym, ok := p.symbols[name]; ok {
		switch sym.Kind {
		case KindScalar:
			p.names[name] = true
			return &Node{Kind: NodeScalarVar, Name: name, Scalar: sym.Scalar}, nil
		case KindArray:
			p.names[name] = true
			return p.parseArrayIndex(tok, name, sym.Array)
		case KindFunction:
			fn := sym.Function
			return p.parseCall(tok, name, fn.Arity, fn.Pure, func(args []*Node) *Node {
				sym := sym
				return &Node{Kind: NodeCall, Name: name, Pure: fn.Pure, Args: args, symbol: &sym}
			})
		case KindClosure:
			fn := sym.Closure
			return p.parseCall(tok, name, fn.Arity, fn.Pure, func(args []*Node) *Node {
				sym := sym
				return &Node{Kind: NodeCall, Name: name, Pure: fn.Pure, Args: args, symbol: &sym}
			})
		default:
			return nil, newParseError(tok.pos, "symbol "+strconv.Quote(name)+" has an invalid kind")
		}
	}
	if !p.cfg.noDefaults {
		if b, ok := p.builtins[name]; ok {
			return p.parseBuiltinCall(tok, b)
		}
	}
	return nil, newParseError(tok.pos, "unknown identifier "+strconv.Quote(name))
}

// parseArrayIndex parses the mandatory postfix index following a reference
// to an array variable. Only one level of indexing is accepted: the result
// of an index expression is a scalar and cannot be indexed again, matching
// tinyexpr's runtime restriction that only a variable, not an already-
// indexed expression, may appear on the left of '['.
func (p *parseContext) parseArrayIndex(tok token, name string, arr []float64) (*Node, error) {
	next, err := p.lex.next()
	if err != nil {
		return nil, err
	}
	if next.kind != tokLBracket {
		return nil, newParseError(tok.pos, "array variable "+strconv.Quote(name)+" used without an index")
	}
	idx, err := parseList(p)
	if err != nil {
		return nil, err
	}
	end, err := p.lex.next()
	if err != nil {
		return nil, err
	}
	if end.kind != tokRBracket {
		return nil, newParseError(end.pos, "expected ']'")
	}
	node := &Node{Kind: NodeArrayIndex, Name: name, Array: arr, Index: idx}
	again, err := p.lex.next()
	if err != nil {
		return nil, err
	}
	if again.kind == tokLBracket {
		return nil, newParseError(again.pos, "cannot index the result of an array index expression")
	}
	p.lex.push(again)
	return node, nil
}

// parseCall parses the arguments to a call of a plain (non-array-consuming)
// function of the given arity, then builds its Node with invoke. A function
// of arity 1 may be applied to a single power either in parentheses or bare
// (e.g. "sin x" or "sin(x)"); any other arity requires a parenthesized,
// comma-separated argument list of exactly that length.
func (p *parseContext) parseCall(tok token, name string, arity int, pure bool, invoke func(args []*Node) *Node) (*Node, error) {
	next, err := p.lex.next()
	if err != nil {
		return nil, err
	}
	switch {
	case arity == 0:
		if next.kind == tokOpen {
			end, err := p.lex.next()
			if err != nil {
				return nil, err
			}
			if end.kind != tokClose {
				return nil, newParseError(end.pos, "function "+strconv.Quote(name)+" takes no arguments")
			}
		} else {
			p.lex.push(next)
		}
		return invoke(nil), nil
	case arity == 1:
		if next.kind == tokOpen {
			arg, err := parseExpr(p)
			if err != nil {
				return nil, err
			}
			end, err := p.lex.next()
			if err != nil {
				return nil, err
			}
			if end.kind != tokClose {
				return nil, newParseError(end.pos, "expected ')'")
			}
			return invoke([]*Node{arg}), nil
		}
		p.lex.push(next)
		arg, err := parsePower(p)
		if err != nil {
			return nil, err
		}
		return invoke([]*Node{arg}), nil
	default:
		if next.kind != tokOpen {
			return nil, newParseError(next.pos, "function "+strconv.Quote(name)+" requires "+strconv.Itoa(arity)+" arguments in parentheses")
		}
		args := make([]*Node, 0, arity)
		for i := 0; i < arity; i++ {
			arg, err := parseExpr(p)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			end, err := p.lex.next()
			if err != nil {
				return nil, err
			}
			if i < arity-1 {
				if end.kind != tokComma {
					return nil, newParseError(end.pos, "function "+strconv.Quote(name)+" requires "+strconv.Itoa(arity)+" arguments")
				}
			} else if end.kind != tokClose {
				return nil, newParseError(end.pos, "function "+strconv.Quote(name)+" requires "+strconv.Itoa(arity)+" arguments")
			}
		}
		return invoke(args), nil
	}
}

// parseBuiltinCall parses a call to a default function, dispatching to
// parseArrayBuiltinCall for the aggregate functions that consume whole
// arrays.
func (p *parseContext) parseBuiltinCall(tok token, b *builtin) (*Node, error) {
	if b.arrayArgs != nil {
		return p.parseArrayBuiltinCall(b)
	}
	return p.parseCall(tok, b.name, b.arity, true, func(args []*Node) *Node {
		return &Node{Kind: NodeCall, Name: b.name, Pure: true, Args: args, builtin: b}
	})
}

// parseArrayBuiltinCall parses a call to an array-consuming builtin such as
// sum or linear_interpolate. Unlike plain builtins, these always require
// parentheses, since the positions marked in b.arrayArgs must parse as a
// bare reference to an array variable rather than a general expression: the
// builtin needs the backing slice itself, not a folded-down float64.
func (p *parseContext) parseArrayBuiltinCall(b *builtin) (*Node, error) {
	open, err := p.lex.next()
	if err != nil {
		return nil, err
	}
	if open.kind != tokOpen {
		return nil, newParseError(open.pos, "function "+strconv.Quote(b.name)+" requires arguments in parentheses")
	}
	args := make([]*Node, b.arity)
	for i := 0; i < b.arity; i++ {
		if b.arrayArgs[i] {
			idTok, err := p.lex.next()
			if err != nil {
				return nil, err
			}
			if idTok.kind != tokIdent {
				return nil, newParseError(idTok.pos, "expected an array variable")
			}
			sym, ok := p.symbols[idTok.text]
			if !ok || sym.Kind != KindArray {
				return nil, newParseError(idTok.pos, strconv.Quote(idTok.text)+" is not an array variable")
			}
			p.names[idTok.text] = true
			args[i] = &Node{Kind: NodeArrayVar, Name: idTok.text, Array: sym.Array}
		} else {
			arg, err := parseExpr(p)
			if err != nil {
				return nil, err
			}
			args[i] = arg
		}
		end, err := p.lex.next()
		if err != nil {
			return nil, err
		}
		if i < b.arity-1 {
			if end.kind != tokComma {
				return nil, newParseError(end.pos, "function "+strconv.Quote(b.name)+" requires "+strconv.Itoa(b.arity)+" arguments")
			}
		} else if end.kind != tokClose {
			return nil, newParseError(end.pos, "function "+strconv.Quote(b.name)+" requires "+strconv.Itoa(b.arity)+" arguments")
		}
	}
	return &Node{Kind: NodeCall, Name: b.name, Pure: true, Args: args, builtin: b}, nil
}

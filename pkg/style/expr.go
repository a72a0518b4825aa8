package style

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Expr is an unresolved expression over named constants, written in
// parentheses, such as "(SSPACING_1 * 2)". A bare "(NAME)" may refer to a
// constant of any type; arithmetic operates on numbers only.
type Expr struct {
	src  string
	root exprNode
}

// Src returns the source text of the expression.
func (e *Expr) Src() string { return e.src }

// Refs returns the names of all constants the expression refers to, in order
// of appearance.
func (e *Expr) Refs() []string {
	var names []string
	var walk func(exprNode)
	walk = func(n exprNode) {
		switch n := n.(type) {
		case refNode:
			names = append(names, string(n))
		case negNode:
			walk(n.operand)
		case binNode:
			walk(n.left)
			walk(n.right)
		}
	}
	walk(e.root)
	return names
}

type exprNode interface{}

type numNode float64
type refNode string
type negNode struct{ operand exprNode }
type binNode struct {
	op          byte
	left, right exprNode
}

// ExprError is returned when an expression cannot be parsed.
type ExprError struct {
	Src     string
	Pos     int
	Message string
}

func (e *ExprError) Error() string {
	return fmt.Sprintf("bad expression %q at %d: %s", e.Src, e.Pos, e.Message)
}

// ParseExpr parses an expression. The whole string must be enclosed in
// parentheses.
//
// The grammar is:
//
//	expr   = term { ('+' | '-') term }
//	term   = factor { ('*' | '/') factor }
//	factor = number | NAME | '(' expr ')' | '-' factor
func ParseExpr(s string) (*Expr, error) {
	p := &exprParser{src: s}
	p.skipSpace()
	if !p.consume('(') {
		return nil, p.errorf("expression must start with (")
	}
	root, err := p.expr()
	if err != nil {
		return nil, err
	}
	if !p.consume(')') {
		return nil, p.errorf("missing )")
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, p.errorf("trailing text")
	}
	return &Expr{src: s, root: root}, nil
}

type exprParser struct {
	src string
	pos int
}

func (p *exprParser) errorf(format string, args ...any) error {
	return &ExprError{p.src, p.pos, fmt.Sprintf(format, args...)}
}

func (p *exprParser) skipSpace() {
	for p.pos < len(p.src) && unicode.IsSpace(rune(p.src[p.pos])) {
		p.pos++
	}
}

func (p *exprParser) peek() byte {
	p.skipSpace()
	if p.pos < len(p.src) {
		return p.src[p.pos]
	}
	return 0
}

func (p *exprParser) consume(b byte) bool {
	if p.peek() == b {
		p.pos++
		return true
	}
	return false
}

func (p *exprParser) expr() (exprNode, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for {
		op := p.peek()
		if op != '+' && op != '-' {
			return left, nil
		}
		p.pos++
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		left = binNode{op, left, right}
	}
}

func (p *exprParser) term() (exprNode, error) {
	left, err := p.factor()
	if err != nil {
		return nil, err
	}
	for {
		op := p.peek()
		if op != '*' && op != '/' {
			return left, nil
		}
		p.pos++
		right, err := p.factor()
		if err != nil {
			return nil, err
		}
		left = binNode{op, left, right}
	}
}

func (p *exprParser) factor() (exprNode, error) {
	switch b := p.peek(); {
	case b == '(':
		p.pos++
		n, err := p.expr()
		if err != nil {
			return nil, err
		}
		if !p.consume(')') {
			return nil, p.errorf("missing )")
		}
		return n, nil
	case b == '-':
		p.pos++
		operand, err := p.factor()
		if err != nil {
			return nil, err
		}
		return negNode{operand}, nil
	case '0' <= b && b <= '9' || b == '.':
		start := p.pos
		for p.pos < len(p.src) && strings.IndexByte("0123456789.eE", p.src[p.pos]) >= 0 {
			p.pos++
			// An exponent may be signed.
			if c := p.src[p.pos-1]; (c == 'e' || c == 'E') && p.pos < len(p.src) &&
				(p.src[p.pos] == '+' || p.src[p.pos] == '-') {
				p.pos++
			}
		}
		f, err := strconv.ParseFloat(p.src[start:p.pos], 64)
		if err != nil {
			return nil, p.errorf("bad number %q", p.src[start:p.pos])
		}
		return numNode(f), nil
	case b == '_' || 'a' <= b && b <= 'z' || 'A' <= b && b <= 'Z':
		start := p.pos
		for p.pos < len(p.src) && isIdentifier(p.src[start:p.pos+1]) {
			p.pos++
		}
		return refNode(p.src[start:p.pos]), nil
	case b == 0:
		return nil, p.errorf("unexpected end of expression")
	default:
		return nil, p.errorf("unexpected %q", b)
	}
}

// Evaluates the expression, calling lookup for each constant reference.
func (e *Expr) eval(lookup func(string) (Value, error)) (Value, error) {
	// A bare reference may yield a value of any type.
	if ref, ok := e.root.(refNode); ok {
		return lookup(string(ref))
	}
	f, err := evalNum(e.root, lookup)
	if err != nil {
		return nil, err
	}
	return Num(f), nil
}

func evalNum(n exprNode, lookup func(string) (Value, error)) (float64, error) {
	switch n := n.(type) {
	case numNode:
		return float64(n), nil
	case refNode:
		v, err := lookup(string(n))
		if err != nil {
			return 0, err
		}
		num, ok := v.(Num)
		if !ok {
			return 0, fmt.Errorf("constant %s is %s, not a number", n, Repr(v))
		}
		return float64(num), nil
	case negNode:
		f, err := evalNum(n.operand, lookup)
		return -f, err
	case binNode:
		l, err := evalNum(n.left, lookup)
		if err != nil {
			return 0, err
		}
		r, err := evalNum(n.right, lookup)
		if err != nil {
			return 0, err
		}
		switch n.op {
		case '+':
			return l + r, nil
		case '-':
			return l - r, nil
		case '*':
			return l * r, nil
		case '/':
			if r == 0 {
				return 0, fmt.Errorf("division by zero")
			}
			return l / r, nil
		}
	}
	return 0, fmt.Errorf("internal: bad expression node %T", n)
}

// Package expr compiles scalar expressions of one variable x into dual functions.
//
// Expressions use Go syntax, for example
//
//	sin(x) + log(x)
//	pow(x, 2) / (1 + exp(-x))
//
// The identifiers pi and e name the usual constants; the functions sin, cos,
// tan, exp, log, sqrt, sinh, cosh, tanh, asin, acos and atan take one argument
// and pow(a, b) raises a to b. The ^ operator also means power; it binds
// tighter than * and /, groups from the right and takes a leading sign with
// it, so 1 + 2*x^2 is 1 + 2*(x^2), 2^x^2 is 2^(x^2) and -x^2 is -(x^2).
package expr

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"math"
	"strconv"

	"github.com/neurlang/dualnum/dual"
)

// ErrSyntax is returned for expressions that cannot be compiled.
var ErrSyntax = errors.New("expr: syntax error")

// Variable is the name of the independent variable.
const Variable = "x"

var constants = map[string]float64{
	"pi": math.Pi,
	"e":  math.E,
}

var functions = map[string]func(dual.Dual) (dual.Dual, error){
	"sin":  total(dual.Dual.Sin),
	"cos":  total(dual.Dual.Cos),
	"tan":  total(dual.Dual.Tan),
	"exp":  total(dual.Dual.Exp),
	"log":  dual.Dual.Log,
	"sqrt": dual.Dual.Sqrt,
	"sinh": total(dual.Dual.Sinh),
	"cosh": total(dual.Dual.Cosh),
	"tanh": total(dual.Dual.Tanh),
	"asin": dual.Dual.Asin,
	"acos": dual.Dual.Acos,
	"atan": total(dual.Dual.Atan),
}

var operators = map[token.Token]dual.Op{
	token.ADD: dual.OpAdd,
	token.SUB: dual.OpSub,
	token.MUL: dual.OpMul,
	token.QUO: dual.OpDiv,
	token.XOR: dual.OpPow,
}

func total(f func(dual.Dual) dual.Dual) func(dual.Dual) (dual.Dual, error) {
	return func(a dual.Dual) (dual.Dual, error) {
		return f(a), nil
	}
}

// Functions lists the function names an expression may call.
func Functions() []string {
	return []string{"sin", "cos", "tan", "exp", "log", "sqrt", "sinh", "cosh", "tanh", "asin", "acos", "atan", "pow"}
}

// Compile parses src into a function of x.
// Numeric failures such as log of a negative number surface when the function is called.
func Compile(src string) (dual.Func, error) {
	tree, err := parser.ParseExpr(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	f, err := compile(tree)
	if err != nil {
		return nil, err
	}
	return dual.Func(f), nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(src string) dual.Func {
	f, err := Compile(src)
	if err != nil {
		panic(err)
	}
	return f
}

type node = func(x dual.Dual) (dual.Dual, error)

func syntaxError(n ast.Node, format string, args ...interface{}) error {
	return fmt.Errorf("%w at offset %d: %s", ErrSyntax, n.Pos()-1, fmt.Sprintf(format, args...))
}

func compile(n ast.Expr) (node, error) {
	switch n := n.(type) {
	case *ast.ParenExpr:
		return compile(n.X)

	case *ast.BasicLit:
		if n.Kind != token.INT && n.Kind != token.FLOAT {
			return nil, syntaxError(n, "unsupported literal %s", n.Value)
		}
		v, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return nil, syntaxError(n, "bad number %s", n.Value)
		}
		c := dual.Constant(v)
		return func(dual.Dual) (dual.Dual, error) { return c, nil }, nil

	case *ast.Ident:
		if n.Name == Variable {
			return func(x dual.Dual) (dual.Dual, error) { return x, nil }, nil
		}
		v, ok := constants[n.Name]
		if !ok {
			return nil, syntaxError(n, "unknown identifier %s", n.Name)
		}
		c := dual.Constant(v)
		return func(dual.Dual) (dual.Dual, error) { return c, nil }, nil

	case *ast.UnaryExpr:
		operand, err := compile(n.X)
		if err != nil {
			return nil, err
		}
		return sign(n, operand)

	case *ast.BinaryExpr:
		c := &chain{}
		if err := c.flatten(n); err != nil {
			return nil, err
		}
		return c.parse(1)

	case *ast.CallExpr:
		name, ok := n.Fun.(*ast.Ident)
		if !ok {
			return nil, syntaxError(n, "unsupported call")
		}
		if name.Name == "pow" {
			return compilePow(n)
		}
		fn, ok := functions[name.Name]
		if !ok {
			return nil, syntaxError(n, "unknown function %s", name.Name)
		}
		if len(n.Args) != 1 || n.Ellipsis.IsValid() {
			return nil, syntaxError(n, "%s takes one argument, got %d", name.Name, len(n.Args))
		}
		arg, err := compile(n.Args[0])
		if err != nil {
			return nil, err
		}
		return func(x dual.Dual) (dual.Dual, error) {
			a, err := arg(x)
			if err != nil {
				return dual.Dual{}, err
			}
			return fn(a)
		}, nil
	}
	return nil, syntaxError(n, "unsupported expression %T", n)
}

func compilePow(n *ast.CallExpr) (node, error) {
	if len(n.Args) != 2 || n.Ellipsis.IsValid() {
		return nil, syntaxError(n, "pow takes two arguments, got %d", len(n.Args))
	}
	base, err := compile(n.Args[0])
	if err != nil {
		return nil, err
	}
	exponent, err := compile(n.Args[1])
	if err != nil {
		return nil, err
	}
	return apply(dual.OpPow, base, exponent), nil
}

func apply(op dual.Op, left, right node) node {
	return func(x dual.Dual) (dual.Dual, error) {
		a, err := left(x)
		if err != nil {
			return dual.Dual{}, err
		}
		b, err := right(x)
		if err != nil {
			return dual.Dual{}, err
		}
		return dual.Binary(op, a, b)
	}
}

func sign(n *ast.UnaryExpr, operand node) (node, error) {
	switch n.Op {
	case token.ADD:
		return operand, nil
	case token.SUB:
		return func(x dual.Dual) (dual.Dual, error) {
			a, err := operand(x)
			if err != nil {
				return dual.Dual{}, err
			}
			return a.Neg(), nil
		}, nil
	}
	return nil, syntaxError(n, "unsupported unary operator %s", n.Op)
}

// chain is a run of binary operators the Go parser grouped with its own
// precedence, where ^ is additive. It is regrouped with ^ above * and /.
type chain struct {
	terms []ast.Expr
	ops   []token.Token // ops[i] sits between terms[i] and terms[i+1]
	next  int           // index of the next unread term
}

func precedence(op token.Token) int {
	switch op {
	case token.ADD, token.SUB:
		return 1
	case token.MUL, token.QUO:
		return 2
	case token.XOR:
		return 3
	}
	return 0
}

// flatten records the operands and operators of n in source order.
func (c *chain) flatten(n ast.Expr) error {
	b, ok := n.(*ast.BinaryExpr)
	if !ok {
		c.terms = append(c.terms, n)
		return nil
	}
	if _, ok := operators[b.Op]; !ok {
		return syntaxError(b, "unsupported operator %s", b.Op)
	}
	if err := c.flatten(b.X); err != nil {
		return err
	}
	c.ops = append(c.ops, b.Op)
	return c.flatten(b.Y)
}

// peek returns the operator after the last read term, or ILLEGAL at the end.
func (c *chain) peek() token.Token {
	if c.next-1 < len(c.ops) {
		return c.ops[c.next-1]
	}
	return token.ILLEGAL
}

// parse reads a term followed by operators of at least lowest precedence.
func (c *chain) parse(lowest int) (node, error) {
	left, err := c.operand()
	if err != nil {
		return nil, err
	}
	for {
		op := c.peek()
		p := precedence(op)
		if p == 0 || p < lowest {
			return left, nil
		}
		if op != token.XOR {
			p++
		}
		right, err := c.parse(p)
		if err != nil {
			return nil, err
		}
		left = apply(operators[op], left, right)
	}
}

func (c *chain) operand() (node, error) {
	term := c.terms[c.next]
	c.next++

	// a sign in front of a power applies to the whole power
	if u, ok := term.(*ast.UnaryExpr); ok && c.peek() == token.XOR {
		c.next--
		c.terms[c.next] = u.X
		power, err := c.parse(precedence(token.XOR))
		if err != nil {
			return nil, err
		}
		return sign(u, power)
	}
	return compile(term)
}

package codegen

import (
	"errors"
	"fmt"

	"github.com/simlang/similc/internal/ast"
)

// ErrMalformedRPN is returned when a formula's atom sequence is not valid
// reverse Polish notation. It indicates a compiler bug, not a user error.
var ErrMalformedRPN = errors.New("malformed formula (internal error)")

// NameFunc maps a storage path to its identifier in the generated
// program.
type NameFunc func(ast.Path) string

// WriteExpr renders an RPN formula as a Python infix expression.
//
// Numbers keep their source lexeme; accesses go through name; binary
// operators get one space on each side; unary sign is prefix with no
// space; '^' becomes Python's '**'; a Bracket atom wraps its operand in
// literal parentheses. The walker consumes the sequence from the end,
// recursing into operands.
func WriteExpr(f ast.Formula, name NameFunc) (string, error) {
	w := exprWalker{atoms: f.Atoms(), name: name}
	w.pos = len(w.atoms) - 1
	out, err := w.render()
	if err != nil {
		return "", err
	}
	if w.pos != -1 {
		return "", fmt.Errorf("%w: %d operands left over", ErrMalformedRPN, w.pos+1)
	}
	return out, nil
}

type exprWalker struct {
	atoms []ast.Atom
	name  NameFunc
	pos   int
}

// render consumes one operand ending at w.pos and returns its rendering.
func (w *exprWalker) render() (string, error) {
	if w.pos < 0 {
		return "", fmt.Errorf("%w: operand missing", ErrMalformedRPN)
	}
	atom := w.atoms[w.pos]
	w.pos--

	switch a := atom.(type) {
	case ast.Number:
		return a.Lexeme, nil

	case ast.Access:
		return w.name(a.Access.Path), nil

	case ast.Operator:
		symbol := a.Symbol
		if symbol == "^" {
			symbol = "**"
		}
		switch a.Arity {
		case 1:
			op, err := w.render()
			if err != nil {
				return "", err
			}
			return symbol + op, nil
		case 2:
			right, err := w.render()
			if err != nil {
				return "", err
			}
			left, err := w.render()
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("%s %s %s", left, symbol, right), nil
		default:
			return "", fmt.Errorf("%w: operator %q with %d operands", ErrMalformedRPN, a.Symbol, a.Arity)
		}

	case ast.Bracket:
		op, err := w.render()
		if err != nil {
			return "", err
		}
		return "(" + op + ")", nil
	}

	return "", fmt.Errorf("%w: unknown atom %T", ErrMalformedRPN, atom)
}

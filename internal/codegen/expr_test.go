package codegen

import (
	"errors"
	"testing"

	"github.com/simlang/similc/internal/ast"
)

// testNames maps k -> self.k and everything else v_<path>.
func testNames(p ast.Path) string {
	if p.String() == "k" {
		return "self.k"
	}
	return "v_" + p.Format("_")
}

func rpn(atoms ...ast.Atom) ast.Formula { return ast.NewFormula(atoms...) }

func acc(s string) ast.Atom  { return ast.Access{Access: ast.NewAccess(ast.NewPath(s))} }
func lit(s string) ast.Atom  { return ast.Number{Lexeme: s} }
func op(s string, n int) ast.Atom { return ast.Operator{Symbol: s, Arity: n} }

func TestWriteExpr(t *testing.T) {
	tests := []struct {
		name string
		f    ast.Formula
		want string
	}{
		{"number", rpn(lit("2.5")), "2.5"},
		{"access", rpn(acc("x")), "v_x"},
		{"binary", rpn(acc("x"), lit("2"), op("+", 2)), "v_x + 2"},
		// -k*x renders with the mapped names: the decay equation.
		{"decay", rpn(acc("k"), op("-", 1), acc("x"), op("*", 2)), "-self.k * v_x"},
		{"unary plus", rpn(acc("x"), op("+", 1)), "+v_x"},
		// Operand order: "a - b", not "b - a".
		{"subtraction", rpn(acc("a"), acc("b"), op("-", 2)), "v_a - v_b"},
		{"nested", rpn(acc("a"), acc("b"), acc("c"), op("*", 2), op("-", 2)), "v_a - v_b * v_c"},
		// ^ becomes Python's **.
		{"power", rpn(acc("x"), lit("2"), op("^", 2)), "v_x ** 2"},
		// Brackets reproduce the source parentheses.
		{"bracket", rpn(acc("a"), acc("b"), op("+", 2), ast.Bracket{}, acc("c"), op("*", 2)), "(v_a + v_b) * v_c"},
		{"qualified", rpn(acc("r1.X")), "v_r1_X"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := WriteExpr(tt.f, testNames)
			if err != nil {
				t.Fatalf("WriteExpr: %v", err)
			}
			if got != tt.want {
				t.Errorf("WriteExpr = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriteExprMalformed(t *testing.T) {
	tests := []struct {
		name string
		f    ast.Formula
	}{
		{"empty", rpn()},
		{"missing operand", rpn(acc("x"), op("+", 2))},
		{"leftover operands", rpn(acc("x"), acc("y"))},
		{"bad arity", rpn(acc("x"), acc("y"), acc("z"), op("?", 3))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := WriteExpr(tt.f, testNames)
			if err == nil {
				t.Fatal("no error for malformed RPN")
			}
			if !errors.Is(err, ErrMalformedRPN) {
				t.Errorf("error %v does not wrap ErrMalformedRPN", err)
			}
		})
	}
}

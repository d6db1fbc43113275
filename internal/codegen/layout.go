// Package codegen lays out the flat model's storage and emits the Python
// simulation program.
//
// The layout assigns every state variable a slot in the state vector and
// every variable a column in the result array; the expression writer
// renders RPN formulas as Python source through a caller-supplied naming
// function. Generation refuses to run on a model whose ErrorsDetected
// flag is set.
package codegen

import (
	"github.com/simlang/similc/internal/ast"
	"github.com/simlang/similc/internal/intermediate"
)

// Layout maps variable paths to array indices.
//
// State variables occupy indices 0..NumStates-1 of both the state vector
// and the result array, in variable-table declaration order. Algebraic
// variables occupy the remaining result-array columns, also in
// declaration order. Maps are keyed by Path.Key().
type Layout struct {
	StateIndex  map[string]int
	ResultIndex map[string]int

	NumStates    int
	NumVariables int

	// StateOrder and AlgebraicOrder list the variable paths in index
	// order, for deterministic emission.
	StateOrder     []ast.Path
	AlgebraicOrder []ast.Path
}

// BuildLayout computes the array layout of m.
func BuildLayout(m *intermediate.Model) Layout {
	l := Layout{
		StateIndex:  make(map[string]int),
		ResultIndex: make(map[string]int),
	}

	index := 0
	for _, v := range m.Variables {
		if !v.IsStateVariable {
			continue
		}
		l.StateIndex[v.Name.Key()] = index
		l.ResultIndex[v.Name.Key()] = index
		l.StateOrder = append(l.StateOrder, v.Name)
		index++
	}
	l.NumStates = index

	for _, v := range m.Variables {
		if v.IsStateVariable {
			continue
		}
		l.ResultIndex[v.Name.Key()] = index
		l.AlgebraicOrder = append(l.AlgebraicOrder, v.Name)
		index++
	}
	l.NumVariables = index

	return l
}

package codegen

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/simlang/similc/internal/ast"
	"github.com/simlang/similc/internal/intermediate"
)

// flatModel builds an already-flat model with the given state and
// algebraic variables, interleaved in declaration order.
func flatModel(t *testing.T, decls ...struct {
	name  string
	state bool
}) *intermediate.Model {
	t.Helper()
	m := &intermediate.Model{}
	for _, d := range decls {
		require.NoError(t, m.AddVariable(ast.Memory{Name: ast.NewPath(d.name), IsStateVariable: d.state}))
	}
	return m
}

type varDecl = struct {
	name  string
	state bool
}

func TestLayoutSingleStateVariable(t *testing.T) {
	m := flatModel(t, varDecl{"x", true})
	l := BuildLayout(m)

	require.Equal(t, 1, l.NumStates)
	require.Equal(t, 1, l.NumVariables)
	require.Equal(t, 0, l.StateIndex["x"])
	require.Equal(t, 0, l.ResultIndex["x"])
}

func TestLayoutStateVariablesFirst(t *testing.T) {
	// Declaration order: algebraic a, state x, algebraic b, state y.
	m := flatModel(t, varDecl{"a", false}, varDecl{"x", true}, varDecl{"b", false}, varDecl{"y", true})
	l := BuildLayout(m)

	require.Equal(t, 2, l.NumStates)
	require.Equal(t, 4, l.NumVariables)

	// State variables share indices 0..S-1 in both spaces,
	// declaration order.
	require.Equal(t, 0, l.StateIndex["x"])
	require.Equal(t, 1, l.StateIndex["y"])
	require.Equal(t, 0, l.ResultIndex["x"])
	require.Equal(t, 1, l.ResultIndex["y"])

	// Algebraic variables follow, declaration order.
	require.Equal(t, 2, l.ResultIndex["a"])
	require.Equal(t, 3, l.ResultIndex["b"])

	// Algebraic variables have no state index.
	_, ok := l.StateIndex["a"]
	require.False(t, ok)

	require.Equal(t, []string{"x", "y"}, pathStrings(l.StateOrder))
	require.Equal(t, []string{"a", "b"}, pathStrings(l.AlgebraicOrder))
}

func TestLayoutQualifiedNames(t *testing.T) {
	m := flatModel(t, varDecl{"r1.X", true}, varDecl{"r2.X", true})
	l := BuildLayout(m)

	require.Equal(t, 2, l.NumStates)
	require.Equal(t, 0, l.StateIndex["r1.X"])
	require.Equal(t, 1, l.StateIndex["r2.X"])
}

func TestLayoutEmptyModel(t *testing.T) {
	l := BuildLayout(&intermediate.Model{})
	require.Equal(t, 0, l.NumStates)
	require.Equal(t, 0, l.NumVariables)
	require.Empty(t, l.StateOrder)
}

func pathStrings(paths []ast.Path) []string {
	var out []string
	for _, p := range paths {
		out = append(out, p.String())
	}
	return out
}

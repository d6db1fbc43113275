package intermediate

import (
	"github.com/simlang/similc/internal/ast"
	"github.com/simlang/similc/internal/diag"
)

// flatten copies the non-recursive fields of src and then inlines every
// sub-model depth-first. Parameters, variables, SET and EQUATION
// statements are copied with the instance chain prefixed onto every name.
// Initial equations are taken unchanged from the top-level process; the
// names in them are already written against the flat name space.
func (m *Model) flatten(repo *ast.Repository, src *ast.Model, sink *diag.Sink) {
	m.Name = src.Name
	m.IsProcess = src.IsProcess
	m.InitialEquations = append([]ast.Equation(nil), src.InitialEquations...)
	m.SolutionParameters = src.SolutionParameters
	m.Span = src.Span

	m.flattenRecursive(repo, src, ast.Path{}, 0, sink)
}

// flattenRecursive inlines one model under the given name prefix.
// Traversal is depth-first and preserves textual order within each
// section, so shorter-named (higher-hierarchy) parameters always precede
// the parameters of their sub-models — parameter propagation relies on
// this order.
func (m *Model) flattenRecursive(repo *ast.Repository, src *ast.Model, prefix ast.Path, level int, sink *diag.Sink) {
	if level > RecursionMax {
		sink.Errorf(src.Span,
			"the maximum sub-model nesting of %d has been reached\nprocess: %s; sub-model where the limit was hit: %s\n(maybe the sub-models contain a cycle)",
			RecursionMax, m.Name, src.Name)
		m.ErrorsDetected = true
		return
	}

	for _, param := range src.Parameters {
		param.Name = param.Name.Prepend(prefix)
		if err := m.AddParameter(param); err != nil {
			sink.Errorf(param.Span, "%s", err.Error())
			m.ErrorsDetected = true
		}
	}

	for _, variable := range src.Variables {
		variable.Name = variable.Name.Prepend(prefix)
		if err := m.AddVariable(variable); err != nil {
			sink.Errorf(variable.Span, "%s", err.Error())
			m.ErrorsDetected = true
		}
	}

	for _, equ := range src.ParameterAssignments {
		equ.LHS = equ.LHS.Prepend(prefix)
		equ.RHS = equ.RHS.PrependPaths(prefix)
		m.ParameterAssignments = append(m.ParameterAssignments, equ)
	}

	for _, equ := range src.Equations {
		equ.LHS = equ.LHS.Prepend(prefix)
		equ.RHS = equ.RHS.PrependPaths(prefix)
		m.Equations = append(m.Equations, equ)
	}

	if src.ErrorsDetected {
		m.ErrorsDetected = true
	}

	for _, sub := range src.SubModels {
		subModel := repo.FindModel(sub.Type)
		if subModel == nil {
			sink.Errorf(sub.Span, "the model %s does not exist (unit %s)", sub.Type, sub.Name)
			m.ErrorsDetected = true
			continue
		}
		m.flattenRecursive(repo, subModel, prefix.AppendName(sub.Name), level+1, sink)
	}
}

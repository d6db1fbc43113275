package intermediate

import "github.com/simlang/similc/internal/diag"

// markStateVariables finds every EQUATION whose lhs is a time derivative
// and marks the corresponding variable as a state variable. A derivative
// of an undeclared variable is a diagnostic. SET and INITIAL are not
// consulted; time derivatives there are rejected by the checker.
func (m *Model) markStateVariables(sink *diag.Sink) {
	for _, equ := range m.Equations {
		if !equ.LHS.TimeDerivative {
			continue
		}
		if v := m.FindVariable(equ.LHS.Path); v != nil {
			v.IsStateVariable = true
		} else {
			sink.Errorf(equ.Span, "undefined variable: %s\nthe symbol %s is used as a state variable", equ.LHS.Path, equ.LHS.Path)
			m.ErrorsDetected = true
		}
	}
}

package intermediate

import (
	"strings"

	"github.com/simlang/similc/internal/ast"
	"github.com/simlang/similc/internal/diag"
)

// check tests the flat model for semantic errors. The syntax was already
// checked by the parser; flattening and propagation have already run.
//
// Every violation is recorded and checking continues, so one compiler run
// reports as many problems as possible.
//
// SET:      operands must be parameters; no $; every parameter assigned
//           exactly once.
// EQUATION: lhs must be a variable, never a parameter; every variable
//           assigned exactly once (this also catches plain assignments to
//           state variables, whose $-assignment already consumed them);
//           rhs operands must be declared; no $ on the rhs.
// INITIAL:  lhs must be a state variable, no $; every state variable
//           initialised exactly once; rhs operands must be declared
//           parameters or variables; no $ on the rhs.
func (m *Model) check(sink *diag.Sink) {
	m.checkSetSection(sink)
	m.checkEquationSection(sink)
	m.checkInitialSection(sink)
}

// assignmentSet implements the one-and-only-one-assignment rule: it is
// seeded with every candidate name, each successful assignment takes the
// name out, and whatever remains at the end of the section was never
// assigned.
type assignmentSet map[string]bool

func (s assignmentSet) put(p ast.Path)      { s[p.Key()] = true }
func (s assignmentSet) has(p ast.Path) bool { return s[p.Key()] }
func (s assignmentSet) take(p ast.Path)     { delete(s, p.Key()) }

// remaining lists the still-unassigned names, in the order given by all.
func (s assignmentSet) remaining(all []ast.Memory) []string {
	var names []string
	for _, mem := range all {
		if s.has(mem.Name) {
			names = append(names, mem.Name.String())
		}
	}
	return names
}

// checkSetAccess validates one operand of the SET section: it must be a
// declared parameter and must not carry the derivative marker.
func (m *Model) checkSetAccess(equ ast.Equation, sink *diag.Sink) func(ast.MemoryAccess) {
	return func(mem ast.MemoryAccess) {
		if m.FindParameter(mem.Path) == nil {
			sink.Errorf(equ.Span, "undefined parameter: %s", mem.Path)
			m.ErrorsDetected = true
		} else if mem.TimeDerivative {
			sink.Errorf(equ.Span, "parameters can not be differentiated: %s", mem)
			m.ErrorsDetected = true
		}
	}
}

func (m *Model) checkSetSection(sink *diag.Sink) {
	unassigned := assignmentSet{}
	for _, p := range m.Parameters {
		unassigned.put(p.Name)
	}

	for _, equ := range m.ParameterAssignments {
		inspect := m.checkSetAccess(equ, sink)
		equ.RHS.VisitAccesses(inspect)
		inspect(equ.LHS)

		if m.FindParameter(equ.LHS.Path) == nil {
			continue // already reported by inspect
		}
		if unassigned.has(equ.LHS.Path) {
			unassigned.take(equ.LHS.Path)
		} else {
			sink.Errorf(equ.Span, "duplicate assignment to parameter: %s", equ.LHS)
			m.ErrorsDetected = true
		}
	}

	if names := unassigned.remaining(m.Parameters); len(names) > 0 {
		sink.Errorf(m.Span, "process %s: the following parameters are unassigned: %s",
			m.Name, strings.Join(names, ", "))
		m.ErrorsDetected = true
	}
}

func (m *Model) checkEquationSection(sink *diag.Sink) {
	unassigned := assignmentSet{}
	for _, v := range m.Variables {
		unassigned.put(v.Name)
	}

	for _, equ := range m.Equations {
		equ.RHS.VisitAccesses(func(mem ast.MemoryAccess) {
			if !m.IdentifierExists(mem.Path) {
				sink.Errorf(equ.Span, "undefined identifier: %s\nexpecting a variable or parameter here", mem.Path)
				m.ErrorsDetected = true
			} else if mem.TimeDerivative {
				sink.Errorf(equ.Span, "illegal time derivative: %s\ntime derivatives are only legal on the lhs of an equation", mem)
				m.ErrorsDetected = true
			}
		})

		if m.FindParameter(equ.LHS.Path) != nil {
			sink.Errorf(equ.Span, "illegal assignment to parameter: %s\nparameters can only be assigned in the SET section", equ.LHS)
			m.ErrorsDetected = true
			continue
		}
		if m.FindVariable(equ.LHS.Path) == nil {
			sink.Errorf(equ.Span, "undefined variable: %s", equ.LHS)
			m.ErrorsDetected = true
			continue
		}
		if unassigned.has(equ.LHS.Path) {
			unassigned.take(equ.LHS.Path)
		} else {
			sink.Errorf(equ.Span, "duplicate assignment to variable: %s", equ.LHS.Path)
			m.ErrorsDetected = true
		}
	}

	if names := unassigned.remaining(m.Variables); len(names) > 0 {
		sink.Errorf(m.Span, "process %s: the following variables are unassigned: %s",
			m.Name, strings.Join(names, ", "))
		m.ErrorsDetected = true
	}
}

func (m *Model) checkInitialSection(sink *diag.Sink) {
	unassigned := assignmentSet{}
	var stateVars []ast.Memory
	for _, v := range m.Variables {
		if v.IsStateVariable {
			unassigned.put(v.Name)
			stateVars = append(stateVars, v)
		}
	}

	for _, equ := range m.InitialEquations {
		equ.RHS.VisitAccesses(func(mem ast.MemoryAccess) {
			if !m.IdentifierExists(mem.Path) {
				sink.Errorf(equ.Span, "undefined identifier: %s\nexpecting a variable or parameter here", mem.Path)
				m.ErrorsDetected = true
			} else if mem.TimeDerivative {
				sink.Errorf(equ.Span, "illegal time derivative in initial section: %s", mem)
				m.ErrorsDetected = true
			}
		})

		lhsVar := m.FindVariable(equ.LHS.Path)
		if lhsVar == nil {
			sink.Errorf(equ.Span, "undefined variable: %s", equ.LHS.Path)
			m.ErrorsDetected = true
			continue
		}
		if !lhsVar.IsStateVariable {
			sink.Errorf(equ.Span, "state variable required: %s is algebraic\nonly state variables can be initialised", equ.LHS.Path)
			m.ErrorsDetected = true
			continue
		}
		if equ.LHS.TimeDerivative {
			sink.Errorf(equ.Span, "illegal time derivative in initial section: %s", equ.LHS)
			m.ErrorsDetected = true
		}
		if unassigned.has(equ.LHS.Path) {
			unassigned.take(equ.LHS.Path)
		} else {
			sink.Errorf(equ.Span, "duplicate initialisation of state variable: %s", equ.LHS.Path)
			m.ErrorsDetected = true
		}
	}

	if names := unassigned.remaining(stateVars); len(names) > 0 {
		sink.Errorf(m.Span, "process %s: the following state variables are not initialised: %s",
			m.Name, strings.Join(names, ", "))
		m.ErrorsDetected = true
	}
}

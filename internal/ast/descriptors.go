package ast

import (
	"fmt"

	"github.com/simlang/similc/internal/diag"
)

// Memory describes one named storage cell: a parameter or a variable.
// The role is determined by the table that holds the descriptor, not by
// the descriptor itself.
type Memory struct {
	// Name is the (possibly qualified) identifier. Flattening prefixes it
	// with the sub-model instance chain.
	Name Path `yaml:"name"`
	// Type is the declared type token (REAL, ANY, or empty). Types are
	// opaque; no later stage interprets them.
	Type string `yaml:"type,omitempty"`
	// Default is the optional DEFAULT expression of a parameter
	// declaration. Kept for tooling; the middle end reads only the SET
	// section.
	Default *Formula `yaml:"default,omitempty"`
	// Initial is the optional INITIAL expression of a variable
	// declaration. Kept for tooling; the middle end reads only the
	// INITIAL section.
	Initial *Formula `yaml:"initial,omitempty"`
	// IsStateVariable is set by the state-variable marker when the
	// variable's time derivative appears on an EQUATION lhs.
	IsStateVariable bool `yaml:"state,omitempty"`

	Span diag.Span `yaml:"-"`
}

// Equation describes one statement of the SET, EQUATION or INITIAL
// section: lhs := rhs. Which section it belongs to is determined by the
// table that holds it.
type Equation struct {
	LHS MemoryAccess `yaml:"lhs"`
	RHS Formula      `yaml:"rhs"`

	Span diag.Span `yaml:"-"`
}

// IsODE reports whether the equation defines a time derivative.
func (e Equation) IsODE() bool { return e.LHS.TimeDerivative }

// SubModel is one UNIT statement: a named instance of another model.
type SubModel struct {
	// Name is the instance name inside the parent model.
	Name string `yaml:"name"`
	// Type is the name of the instantiated model.
	Type string `yaml:"type"`

	Span diag.Span `yaml:"-"`
}

// SolutionParameters carries the SOLUTIONPARAMETERS section. The values
// are numeric literals kept as text.
type SolutionParameters struct {
	ReportingInterval string `yaml:"reportingInterval,omitempty"`
	SimulationTime    string `yaml:"simulationTime,omitempty"`
}

// Model is one MODEL or PROCESS declaration: the tables of parameters,
// variables, sub-model instances and equations. After flattening the
// sub-model table is empty and every name is fully qualified.
type Model struct {
	Name string `yaml:"name"`
	// IsProcess distinguishes top-level PROCESS blocks (compiled to
	// simulators) from reusable MODEL blocks.
	IsProcess bool `yaml:"process"`

	Parameters []Memory   `yaml:"parameters,omitempty"`
	Variables  []Memory   `yaml:"variables,omitempty"`
	SubModels  []SubModel `yaml:"units,omitempty"`

	// ParameterAssignments is the SET section.
	ParameterAssignments []Equation `yaml:"set,omitempty"`
	// Equations is the EQUATION section (algebraic and ODE).
	Equations []Equation `yaml:"equations,omitempty"`
	// InitialEquations is the INITIAL section.
	InitialEquations []Equation `yaml:"initial,omitempty"`

	SolutionParameters SolutionParameters `yaml:"solutionParameters,omitempty"`

	// ErrorsDetected is sticky: once a stage records an error against
	// this model it stays set, and the backend refuses to emit.
	ErrorsDetected bool `yaml:"errorsDetected,omitempty"`

	Span diag.Span `yaml:"-"`
}

// identifierTaken reports whether name is already used by a parameter,
// variable or sub-model instance, and by which kind.
func (m *Model) identifierTaken(name Path) (string, bool) {
	if m.FindParameter(name) != nil {
		return "parameter", true
	}
	if m.FindVariable(name) != nil {
		return "variable", true
	}
	for _, s := range m.SubModels {
		if NewPath(s.Name).Equal(name) {
			return "unit", true
		}
	}
	return "", false
}

// AddParameter adds p to the parameter table. The union of parameter,
// variable and unit names must stay unique; a collision keeps the first
// descriptor and returns an error for the caller to report.
func (m *Model) AddParameter(p Memory) error {
	if kind, taken := m.identifierTaken(p.Name); taken {
		return fmt.Errorf("duplicate identifier %s: already declared as %s", p.Name, kind)
	}
	m.Parameters = append(m.Parameters, p)
	return nil
}

// AddVariable adds v to the variable table; same uniqueness rule as
// AddParameter.
func (m *Model) AddVariable(v Memory) error {
	if kind, taken := m.identifierTaken(v.Name); taken {
		return fmt.Errorf("duplicate identifier %s: already declared as %s", v.Name, kind)
	}
	m.Variables = append(m.Variables, v)
	return nil
}

// AddSubModel adds s to the unit table; same uniqueness rule as
// AddParameter.
func (m *Model) AddSubModel(s SubModel) error {
	if kind, taken := m.identifierTaken(NewPath(s.Name)); taken {
		return fmt.Errorf("duplicate identifier %s: already declared as %s", s.Name, kind)
	}
	m.SubModels = append(m.SubModels, s)
	return nil
}

// FindParameter returns the parameter named name, or nil.
func (m *Model) FindParameter(name Path) *Memory {
	for i := range m.Parameters {
		if m.Parameters[i].Name.Equal(name) {
			return &m.Parameters[i]
		}
	}
	return nil
}

// FindVariable returns the variable named name, or nil.
func (m *Model) FindVariable(name Path) *Memory {
	for i := range m.Variables {
		if m.Variables[i].Name.Equal(name) {
			return &m.Variables[i]
		}
	}
	return nil
}

// IdentifierExists reports whether name is a declared parameter or
// variable. Flat models have no sub-models, so this is the full name
// space of an intermediate model.
func (m *Model) IdentifierExists(name Path) bool {
	return m.FindParameter(name) != nil || m.FindVariable(name) != nil
}

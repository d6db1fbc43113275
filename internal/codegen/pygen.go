package codegen

import (
	"fmt"
	"io"

	"github.com/simlang/similc/internal/ast"
	"github.com/simlang/similc/internal/diag"
	"github.com/simlang/similc/internal/intermediate"
)

// Solution parameters used when a process has no SOLUTIONPARAMETERS
// section.
const (
	defaultReportingInterval = "1.0"
	defaultSimulationTime    = "100.0"
)

// Names maps the flat model's paths to Python identifiers. Parameters
// become members "self.p_a_b" (function-argument form "a_b"); variables
// become locals "v_a_b".
type Names struct {
	Python  map[string]string
	FuncArg map[string]string
}

// BuildNames computes the Python names of every parameter and variable.
func BuildNames(m *intermediate.Model) Names {
	n := Names{
		Python:  make(map[string]string),
		FuncArg: make(map[string]string),
	}
	for _, p := range m.Parameters {
		n.Python[p.Name.Key()] = "self.p_" + p.Name.Format("_")
		n.FuncArg[p.Name.Key()] = p.Name.Format("_")
	}
	for _, v := range m.Variables {
		n.Python[v.Name.Key()] = "v_" + v.Name.Format("_")
	}
	return n
}

// Name returns the naming function over the Python name table.
func (n Names) Name(p ast.Path) string { return n.Python[p.Key()] }

// PyGenerator writes the Python simulation program for flat models.
type PyGenerator struct {
	w    io.Writer
	sink *diag.Sink
}

// NewPyGenerator returns a generator writing to w. Internal problems
// (malformed RPN) are reported to sink.
func NewPyGenerator(w io.Writer, sink *diag.Sink) *PyGenerator {
	return &PyGenerator{w: w, sink: sink}
}

// WriteFileHeader emits the imports shared by all simulator classes of
// one output file.
func (g *PyGenerator) WriteFileHeader(version string) {
	fmt.Fprintf(g.w, "# This file was generated by similc %s.\n", version)
	fmt.Fprintf(g.w, "# Changes will be lost when the source is compiled again.\n")
	fmt.Fprintf(g.w, "\n")
	fmt.Fprintf(g.w, "from Numeric import *\n")
	fmt.Fprintf(g.w, "from simulatorbase import SimulatorBase\n")
	fmt.Fprintf(g.w, "\n")
}

// GenProcess emits the simulator class for one flat process. When the
// model carries errors nothing is written; a single summary diagnostic
// names the process instead.
func (g *PyGenerator) GenProcess(m *intermediate.Model) {
	if m.ErrorsDetected {
		g.sink.Errorf(m.Span, "process %s: no Python object generated due to errors", m.Name)
		return
	}

	layout := BuildLayout(m)
	names := BuildNames(m)

	fmt.Fprintf(g.w, "\nclass %s(SimulatorBase):\n", m.Name)
	fmt.Fprintf(g.w, "    \"\"\"\n")
	fmt.Fprintf(g.w, "    Object to simulate process %s.\n", m.Name)
	if !m.Span.IsZero() {
		fmt.Fprintf(g.w, "    Definition in file: '%s' line: %d\n", m.Span.File, m.Span.Line)
	}
	fmt.Fprintf(g.w, "    \"\"\"\n\n")

	g.genConstructor(m, layout)
	g.genSetParameters(m, names)
	g.genSetInitialValues(m, layout, names)
	g.genOdeFunction(m, layout, names)
	g.genOutputEquations(m, layout, names)
}

// expr renders a formula, reporting malformed RPN as an internal
// diagnostic and substituting a harmless literal so emission can finish.
func (g *PyGenerator) expr(f ast.Formula, names Names, span diag.Span) string {
	out, err := WriteExpr(f, names.Name)
	if err != nil {
		g.sink.Errorf(span, "internal error while rewriting a formula: %s", err.Error())
		return "0"
	}
	return out
}

func (g *PyGenerator) genConstructor(m *intermediate.Model, layout Layout) {
	fmt.Fprintf(g.w, "    def __init__(self):\n")
	fmt.Fprintf(g.w, "        #call base class' constructor.\n")
	fmt.Fprintf(g.w, "        SimulatorBase.__init__(self)\n\n")

	fmt.Fprintf(g.w, "        #Map for converting variable names to indices.\n")
	fmt.Fprintf(g.w, "        self._resultArrayMap = {")
	sep := ""
	for _, path := range layout.StateOrder {
		fmt.Fprintf(g.w, "%s '%s':%d", sep, path, layout.ResultIndex[path.Key()])
		sep = ","
	}
	for _, path := range layout.AlgebraicOrder {
		fmt.Fprintf(g.w, "%s '%s':%d", sep, path, layout.ResultIndex[path.Key()])
		sep = ","
	}
	fmt.Fprintf(g.w, " }\n\n")

	reporting := m.SolutionParameters.ReportingInterval
	if reporting == "" {
		reporting = defaultReportingInterval
	}
	simTime := m.SolutionParameters.SimulationTime
	if simTime == "" {
		simTime = defaultSimulationTime
	}
	fmt.Fprintf(g.w, "        #Set the solution parameters.\n")
	fmt.Fprintf(g.w, "        self.reportingInterval = float(%s)\n", reporting)
	fmt.Fprintf(g.w, "        self.simulationTime    = float(%s)\n\n", simTime)

	fmt.Fprintf(g.w, "        #Compute parameter values.\n")
	fmt.Fprintf(g.w, "        self.setParameters()\n\n")

	fmt.Fprintf(g.w, "        #Number of state variables and total number of variables.\n")
	fmt.Fprintf(g.w, "        self._numStates    = %d\n", layout.NumStates)
	fmt.Fprintf(g.w, "        self._numVariables = %d\n\n", layout.NumVariables)
}

// genSetParameters emits the SET section. Parameters whose rhs is a
// single number become keyword arguments with that default, so callers
// can override them; computed parameters follow in declaration order.
func (g *PyGenerator) genSetParameters(m *intermediate.Model, names Names) {
	isNumberArg := make(map[string]bool)
	for _, equ := range m.ParameterAssignments {
		if _, ok := equ.RHS.SingleNumber(); ok {
			isNumberArg[equ.LHS.Path.Key()] = true
		}
	}

	fmt.Fprintf(g.w, "    def setParameters(self")
	for _, equ := range m.ParameterAssignments {
		if !isNumberArg[equ.LHS.Path.Key()] {
			continue
		}
		lexeme, _ := equ.RHS.SingleNumber()
		fmt.Fprintf(g.w, ", %s=%s", names.FuncArg[equ.LHS.Path.Key()], lexeme)
	}
	fmt.Fprintf(g.w, "):\n")

	fmt.Fprintf(g.w, "        \"\"\"\n")
	fmt.Fprintf(g.w, "        Assign values to the parameters; represents the SET section.\n")
	fmt.Fprintf(g.w, "        Parameters with a number assigned to them can be overridden\n")
	fmt.Fprintf(g.w, "        by passing them as named arguments of this function.\n")
	fmt.Fprintf(g.w, "        \"\"\"\n\n")

	fmt.Fprintf(g.w, "        #Assign values to the parameters with function arguments\n")
	for _, equ := range m.ParameterAssignments {
		if !isNumberArg[equ.LHS.Path.Key()] {
			continue
		}
		key := equ.LHS.Path.Key()
		fmt.Fprintf(g.w, "        %s = float(%s) # = %s\n", names.Python[key], names.FuncArg[key], equ.LHS.Path)
	}

	fmt.Fprintf(g.w, "        #Assign values to the parameters with computations\n")
	for _, equ := range m.ParameterAssignments {
		if isNumberArg[equ.LHS.Path.Key()] {
			continue
		}
		fmt.Fprintf(g.w, "        %s = %s # = %s\n",
			names.Python[equ.LHS.Path.Key()], g.expr(equ.RHS, names, equ.Span), equ.LHS.Path)
	}
	fmt.Fprintf(g.w, "\n")
}

func (g *PyGenerator) genSetInitialValues(m *intermediate.Model, layout Layout, names Names) {
	fmt.Fprintf(g.w, "    def setInitialValues(self):\n")
	fmt.Fprintf(g.w, "        \"\"\"\n")
	fmt.Fprintf(g.w, "        Compute the initial values of the state variables; represents\n")
	fmt.Fprintf(g.w, "        the INITIAL section. Returns the initial state vector.\n")
	fmt.Fprintf(g.w, "        \"\"\"\n\n")

	fmt.Fprintf(g.w, "        initialValues = zeros(%d, Float)\n", layout.NumStates)
	for _, equ := range m.InitialEquations {
		fmt.Fprintf(g.w, "        initialValues[%d] = %s # = %s\n",
			layout.StateIndex[equ.LHS.Path.Key()], g.expr(equ.RHS, names, equ.Span), equ.LHS.Path)
	}
	fmt.Fprintf(g.w, "        return initialValues\n\n")
}

func (g *PyGenerator) genOdeFunction(m *intermediate.Model, layout Layout, names Names) {
	fmt.Fprintf(g.w, "    def _diffStateT(self, y, time):\n")
	fmt.Fprintf(g.w, "        \"\"\"\n")
	fmt.Fprintf(g.w, "        Compute the time derivatives of the state variables.\n")
	fmt.Fprintf(g.w, "        Called repeatedly by the integration algorithm.\n")
	fmt.Fprintf(g.w, "        y: state vector, time: current time\n")
	fmt.Fprintf(g.w, "        \"\"\"\n\n")

	fmt.Fprintf(g.w, "        #Dissect the state vector into individual, local state variables.\n")
	for _, path := range layout.StateOrder {
		fmt.Fprintf(g.w, "        %s = y[%d]\n", names.Python[path.Key()], layout.StateIndex[path.Key()])
	}
	fmt.Fprintf(g.w, "\n")

	fmt.Fprintf(g.w, "        #Create the return vector (the time derivatives dy/dt).\n")
	fmt.Fprintf(g.w, "        y_t = zeros(%d, Float)\n\n", layout.NumStates)

	fmt.Fprintf(g.w, "        #Compute the algebraic variables.\n")
	for _, equ := range m.Equations {
		if equ.IsODE() {
			continue
		}
		fmt.Fprintf(g.w, "        %s = %s\n",
			names.Python[equ.LHS.Path.Key()], g.expr(equ.RHS, names, equ.Span))
	}

	fmt.Fprintf(g.w, "        #Compute the time derivatives of the state variables.\n")
	for _, equ := range m.Equations {
		if !equ.IsODE() {
			continue
		}
		fmt.Fprintf(g.w, "        y_t[%d] = %s # = d %s /dt\n",
			layout.StateIndex[equ.LHS.Path.Key()], g.expr(equ.RHS, names, equ.Span), equ.LHS.Path)
	}
	fmt.Fprintf(g.w, "\n        return y_t\n\n")
}

func (g *PyGenerator) genOutputEquations(m *intermediate.Model, layout Layout, names Names) {
	fmt.Fprintf(g.w, "    def _outputEquations(self, stateResult):\n")
	fmt.Fprintf(g.w, "        \"\"\"\n")
	fmt.Fprintf(g.w, "        Compute the algebraic variables again as functions of the state\n")
	fmt.Fprintf(g.w, "        trajectory; all variables end up together in a 2D array.\n")
	fmt.Fprintf(g.w, "        \"\"\"\n\n")

	fmt.Fprintf(g.w, "        #Compute the size of the result array.\n")
	fmt.Fprintf(g.w, "        if size(shape(stateResult)) == 1:\n")
	fmt.Fprintf(g.w, "            sizeTime = 1\n")
	fmt.Fprintf(g.w, "        else:\n")
	fmt.Fprintf(g.w, "            sizeTime = shape(stateResult)[0]\n\n")

	fmt.Fprintf(g.w, "        #Copy the state variables into the result array.\n")
	fmt.Fprintf(g.w, "        resultArray = zeros((sizeTime, %d), Float)\n", layout.NumVariables)
	fmt.Fprintf(g.w, "        resultArray[:,0:self._numStates] = stateResult\n\n")

	fmt.Fprintf(g.w, "        #Create local state variables - take them from the result array.\n")
	for _, path := range layout.StateOrder {
		fmt.Fprintf(g.w, "        %s = resultArray[:,%d]\n", names.Python[path.Key()], layout.ResultIndex[path.Key()])
	}
	fmt.Fprintf(g.w, "\n")

	fmt.Fprintf(g.w, "        #Compute the algebraic variables from the state variables.\n")
	for _, equ := range m.Equations {
		if equ.IsODE() {
			continue
		}
		fmt.Fprintf(g.w, "        resultArray[:,%d] = %s # = %s\n",
			layout.ResultIndex[equ.LHS.Path.Key()], g.expr(equ.RHS, names, equ.Span), equ.LHS.Path)
	}
	fmt.Fprintf(g.w, "\n        return resultArray\n")
}

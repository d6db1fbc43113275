// Package intermediate derives a flat, checked model from a hierarchical
// PROCESS declaration.
//
// The pipeline is: flatten (inline every sub-model with name
// qualification), propagate parameters (a shorter-named parameter shadows
// longer-named ones with the same trailing name), mark state variables,
// and check semantics. Every stage records problems in the diagnostic
// sink and keeps going; the model's ErrorsDetected flag is sticky and the
// backend refuses to emit when it is set.
package intermediate

import (
	"github.com/simlang/similc/internal/ast"
	"github.com/simlang/similc/internal/diag"
)

// RecursionMax bounds sub-model nesting. Deeper nesting (usually a
// sub-model cycle) stops the descent with a diagnostic. The limit is a
// policy, not a correctness boundary.
const RecursionMax = 10

// Model is a flat model: no sub-model links, fully qualified names.
type Model struct {
	ast.Model
}

// Build derives the intermediate model for process: flattening, parameter
// propagation, state-variable marking and semantic checking, in that
// order. Diagnostics go to sink; the returned model is always usable for
// inspection, but its ErrorsDetected flag must gate code generation.
func Build(repo *ast.Repository, process *ast.Model, sink *diag.Sink) *Model {
	m := &Model{}
	m.flatten(repo, process, sink)
	m.propagateParameters()
	m.markStateVariables(sink)
	m.check(sink)
	return m
}

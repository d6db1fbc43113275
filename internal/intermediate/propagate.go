package intermediate

import "github.com/simlang/similc/internal/ast"

// propagateParameters applies the parameter propagation rule: a parameter
// declared higher in the hierarchy replaces every parameter below it
// whose name ends in the same trailing components. "Ks" replaces "r.Ks"
// and "a.b.Ks". The replaced parameter is removed and every reference to
// it is rewritten.
//
// The flat parameter table lists higher-hierarchy parameters first (the
// flattening order guarantees it), so a single forward pass suffices. A
// parameter that is itself a replacement target does not shadow others in
// this pass.
func (m *Model) propagateParameters() {
	replacements := ast.ReplaceMap{}

	for i := range m.Parameters {
		p1 := &m.Parameters[i]
		if replacements.Has(p1.Name) {
			continue
		}
		for j := i + 1; j < len(m.Parameters); j++ {
			p2 := &m.Parameters[j]
			if p1.Name.IsTailOf(p2.Name) {
				replacements.Put(p2.Name, p1.Name)
			}
		}
	}
	if len(replacements) == 0 {
		return
	}

	kept := m.Parameters[:0]
	for _, p := range m.Parameters {
		if !replacements.Has(p.Name) {
			kept = append(kept, p)
		}
	}
	m.Parameters = kept

	rewrite := func(table []ast.Equation) {
		for i := range table {
			// The lhs rewrite fires for any lhs that names a shadowed
			// parameter; in a valid model only SET lhs do.
			table[i].LHS = table[i].LHS.Replace(replacements)
			table[i].RHS = table[i].RHS.ReplacePaths(replacements)
		}
	}
	rewrite(m.ParameterAssignments)
	rewrite(m.InitialEquations)
	rewrite(m.Equations)
}

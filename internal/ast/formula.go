package ast

import "strings"

// Atom is one element of a formula's RPN sequence. The set of variants is
// closed: Number, Access, Operator and Bracket. Atoms are immutable; a
// formula is changed by replacing atoms, never by editing them in place.
type Atom interface {
	// Operands returns how many operands the atom consumes: 0 for
	// numbers and accesses, 1 or 2 for operators, 1 for brackets.
	Operands() int
	atom()
}

// Number is a numeric literal, kept as its source lexeme.
type Number struct {
	Lexeme string
}

func (Number) Operands() int  { return 0 }
func (Number) atom()          {}
func (n Number) String() string { return n.Lexeme }

// Access reads (or, on an lhs, writes) named storage.
type Access struct {
	Access MemoryAccess
}

func (Access) Operands() int  { return 0 }
func (Access) atom()          {}
func (a Access) String() string { return a.Access.String() }

// Operator is an n-ary math operator. Symbol is one of + - * / ^; Arity 2
// for the infix forms, 1 for sign (+ and - only).
type Operator struct {
	Symbol string
	Arity  int
}

func (o Operator) Operands() int { return o.Arity }
func (Operator) atom()           {}
func (o Operator) String() string { return o.Symbol }

// Bracket wraps the rendering of the operand it follows in parentheses.
// It has no computational meaning.
type Bracket struct{}

func (Bracket) Operands() int  { return 1 }
func (Bracket) atom()          {}
func (Bracket) String() string { return "()" }

// Formula is a mathematical expression stored as a sequence of atoms in
// reverse Polish (postfix) order: each operator follows its operands, with
// the right operand immediately before it.
//
// Bulk transforms return a new Formula; atoms the transform does not touch
// are shared between the old and new sequence (atoms are immutable, so
// sharing is safe).
type Formula struct {
	atoms []Atom
}

// NewFormula builds a formula from atoms already in RPN order.
func NewFormula(atoms ...Atom) Formula {
	return Formula{atoms: atoms}
}

// PushNumber appends a number literal.
func (f *Formula) PushNumber(lexeme string) {
	f.atoms = append(f.atoms, Number{Lexeme: lexeme})
}

// PushAccess appends a memory access.
func (f *Formula) PushAccess(a MemoryAccess) {
	f.atoms = append(f.atoms, Access{Access: a})
}

// PushOperator appends a math operator with the given arity.
func (f *Formula) PushOperator(symbol string, arity int) {
	f.atoms = append(f.atoms, Operator{Symbol: symbol, Arity: arity})
}

// PushBracket appends a bracket marker.
func (f *Formula) PushBracket() {
	f.atoms = append(f.atoms, Bracket{})
}

// Clear removes all atoms.
func (f *Formula) Clear() { f.atoms = nil }

// Len returns the number of atoms.
func (f Formula) Len() int { return len(f.atoms) }

// Atoms returns the atom sequence. Callers must not modify it.
func (f Formula) Atoms() []Atom { return f.atoms }

// PrependPaths returns a formula in which every access atom has prefix put
// in front of its path. Operator and number atoms are shared unchanged.
func (f Formula) PrependPaths(prefix Path) Formula {
	if prefix.IsEmpty() {
		return f
	}
	return f.mapAccesses(func(a MemoryAccess) (MemoryAccess, bool) {
		return a.Prepend(prefix), true
	})
}

// ReplacePaths returns a formula in which every access atom's path is
// replaced per m. Operator and number atoms are shared unchanged.
func (f Formula) ReplacePaths(m ReplaceMap) Formula {
	if len(m) == 0 {
		return f
	}
	return f.mapAccesses(func(a MemoryAccess) (MemoryAccess, bool) {
		if !m.Has(a.Path) {
			return a, false
		}
		return a.Replace(m), true
	})
}

// mapAccesses rewrites access atoms through transform. The atom slice is
// copied only once the first changed atom is seen; an all-unchanged pass
// returns f itself.
func (f Formula) mapAccesses(transform func(MemoryAccess) (MemoryAccess, bool)) Formula {
	var out []Atom
	for i, atom := range f.atoms {
		acc, isAccess := atom.(Access)
		if isAccess {
			replaced, changed := transform(acc.Access)
			if changed && out == nil {
				out = make([]Atom, 0, len(f.atoms))
				out = append(out, f.atoms[:i]...)
			}
			if out != nil {
				out = append(out, Access{Access: replaced})
			}
			continue
		}
		if out != nil {
			out = append(out, atom)
		}
	}
	if out == nil {
		return f
	}
	return Formula{atoms: out}
}

// VisitAccesses calls visit for every access atom in sequence order.
func (f Formula) VisitAccesses(visit func(MemoryAccess)) {
	for _, atom := range f.atoms {
		if acc, ok := atom.(Access); ok {
			visit(acc.Access)
		}
	}
}

// SingleNumber returns the literal and true when the formula consists of
// exactly one number atom. The backend uses this to decide which parameter
// assignments become keyword arguments.
func (f Formula) SingleNumber() (string, bool) {
	if len(f.atoms) != 1 {
		return "", false
	}
	n, ok := f.atoms[0].(Number)
	if !ok {
		return "", false
	}
	return n.Lexeme, true
}

// String renders the RPN sequence space-separated, for debugging and dumps.
func (f Formula) String() string {
	parts := make([]string, len(f.atoms))
	for i, atom := range f.atoms {
		switch a := atom.(type) {
		case Number:
			parts[i] = a.Lexeme
		case Access:
			parts[i] = a.Access.String()
		case Operator:
			parts[i] = a.Symbol
		case Bracket:
			parts[i] = "()"
		}
	}
	return strings.Join(parts, " ")
}

// MarshalYAML renders the RPN sequence as a string in YAML dumps.
func (f Formula) MarshalYAML() (interface{}, error) { return f.String(), nil }

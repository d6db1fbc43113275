package ast

// MemoryAccess is the only way formulas refer to named storage: a Path
// plus a time-derivative flag. "$x" is the time derivative of x; "x" is
// x itself. Subscripts for distributed variables would live here too.
type MemoryAccess struct {
	Path           Path
	TimeDerivative bool
}

// NewAccess builds a plain (non-derivative) access to path.
func NewAccess(path Path) MemoryAccess {
	return MemoryAccess{Path: path}
}

// NewDerivative builds a time-derivative access to path.
func NewDerivative(path Path) MemoryAccess {
	return MemoryAccess{Path: path, TimeDerivative: true}
}

// Prepend returns the access with prefix put in front of its path.
// The derivative flag is preserved.
func (a MemoryAccess) Prepend(prefix Path) MemoryAccess {
	return MemoryAccess{Path: a.Path.Prepend(prefix), TimeDerivative: a.TimeDerivative}
}

// Replace returns the access with its path replaced per m.
// The derivative flag is preserved.
func (a MemoryAccess) Replace(m ReplaceMap) MemoryAccess {
	return MemoryAccess{Path: a.Path.Replace(m), TimeDerivative: a.TimeDerivative}
}

// Format renders the access with configurable separator and derivative
// marker, e.g. Format("_", "d_") on $a.b yields "d_a_b".
func (a MemoryAccess) Format(sep, derivMark string) string {
	if a.TimeDerivative {
		return derivMark + a.Path.Format(sep)
	}
	return a.Path.Format(sep)
}

// String renders the access in source notation: "$a.b" or "a.b".
func (a MemoryAccess) String() string { return a.Format(".", "$") }

// MarshalYAML renders the access in source notation in YAML dumps.
func (a MemoryAccess) MarshalYAML() (interface{}, error) { return a.String(), nil }

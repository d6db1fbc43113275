// Package ast holds the compiler's data model: dotted paths, memory
// accesses, RPN formulas, the descriptors for models and their contents,
// and the repository of parsed declarations.
//
// Everything in this package is a plain in-memory value. The parser writes
// the repository once; every later stage reads it and builds derived
// artifacts. None of these types perform I/O.
package ast

import "strings"

// Path is a qualified dotted identifier: an ordered sequence of non-empty
// components, e.g. "r1.v2.X". Components never contain dots. The empty
// path is legal and renders as "".
//
// Path is a value type. Mutating operations return a new Path; the
// component slice of an existing Path is never written through.
type Path struct {
	components []string
}

// NewPath builds a path from components. Components containing dots are
// split, so NewPath("a.b", "c") and NewPath("a", "b", "c") are equal.
func NewPath(components ...string) Path {
	var parts []string
	for _, c := range components {
		if c == "" {
			continue
		}
		parts = append(parts, strings.Split(c, ".")...)
	}
	return Path{components: parts}
}

// Components returns a read-only view of the path's components.
// Callers must not modify the returned slice.
func (p Path) Components() []string { return p.components }

// Len returns the number of components.
func (p Path) Len() int { return len(p.components) }

// IsEmpty reports whether the path has no components.
func (p Path) IsEmpty() bool { return len(p.components) == 0 }

// Equal reports component-wise equality.
func (p Path) Equal(o Path) bool {
	if len(p.components) != len(o.components) {
		return false
	}
	for i, c := range p.components {
		if o.components[i] != c {
			return false
		}
	}
	return true
}

// IsTailOf reports whether p's components equal the last p.Len()
// components of o. Every path is a tail of itself; the empty path is a
// tail of every path.
func (p Path) IsTailOf(o Path) bool {
	d := len(o.components) - len(p.components)
	if d < 0 {
		return false
	}
	for i, c := range p.components {
		if o.components[d+i] != c {
			return false
		}
	}
	return true
}

// Less is a lexical, component-wise ordering; when one path is a strict
// prefix of the other, the shorter one is less.
func (p Path) Less(o Path) bool {
	n := len(p.components)
	if len(o.components) < n {
		n = len(o.components)
	}
	for i := 0; i < n; i++ {
		if p.components[i] != o.components[i] {
			return p.components[i] < o.components[i]
		}
	}
	return len(p.components) < len(o.components)
}

// Prepend returns prefix ++ p.
func (p Path) Prepend(prefix Path) Path {
	if prefix.IsEmpty() {
		return p
	}
	parts := make([]string, 0, len(prefix.components)+len(p.components))
	parts = append(parts, prefix.components...)
	parts = append(parts, p.components...)
	return Path{components: parts}
}

// Append returns p ++ suffix.
func (p Path) Append(suffix Path) Path {
	return suffix.Prepend(p)
}

// AppendName returns p with one more trailing component.
func (p Path) AppendName(name string) Path {
	return p.Append(NewPath(name))
}

// ReplaceMap maps old paths to their replacements. The key is the old
// path's canonical rendering (Path.Key); components contain no dots, so
// the rendering is injective.
type ReplaceMap map[string]Path

// Put records that old is replaced by new.
func (m ReplaceMap) Put(old, new Path) { m[old.Key()] = new }

// Has reports whether old is scheduled for replacement.
func (m ReplaceMap) Has(old Path) bool {
	_, ok := m[old.Key()]
	return ok
}

// Replace returns the image of p under m when p is a key, else p itself.
func (p Path) Replace(m ReplaceMap) Path {
	if r, ok := m[p.Key()]; ok {
		return r
	}
	return p
}

// Key returns the canonical map key for the path (its dotted rendering).
func (p Path) Key() string { return strings.Join(p.components, ".") }

// Format renders the path with the given component separator.
func (p Path) Format(sep string) string { return strings.Join(p.components, sep) }

// String renders the path with "." separators.
func (p Path) String() string { return p.Key() }

// MarshalYAML renders the path as its dotted string in YAML dumps.
func (p Path) MarshalYAML() (interface{}, error) { return p.String(), nil }

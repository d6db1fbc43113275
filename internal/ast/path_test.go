package ast

import "testing"

func TestNewPathSplitsDots(t *testing.T) {
	p := NewPath("a.b", "c")
	q := NewPath("a", "b", "c")
	if !p.Equal(q) {
		t.Errorf("NewPath(\"a.b\", \"c\") = %v, want %v", p, q)
	}
}

func TestPathIsTailOf(t *testing.T) {
	tests := []struct {
		path string
		of   string
		want bool
	}{
		{"d", "r1.d", true},
		{"r1.d", "r1.d", true},
		{"v.d", "a.b.v.d", true},
		{"r1.d", "d", false},
		{"d", "r1.x", false},
		{"b.d", "a.d", false},
		{"", "a.b", true},
		{"", "", true},
		{"a", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.path+"_of_"+tt.of, func(t *testing.T) {
			got := NewPath(tt.path).IsTailOf(NewPath(tt.of))
			if got != tt.want {
				t.Errorf("NewPath(%q).IsTailOf(%q) = %v, want %v", tt.path, tt.of, got, tt.want)
			}
		})
	}
}

func TestPathIsTailOfImpliesShorter(t *testing.T) {
	paths := []Path{
		NewPath(), NewPath("a"), NewPath("b"), NewPath("a.b"),
		NewPath("b.a"), NewPath("a.b.c"), NewPath("c.a.b"),
	}
	for _, a := range paths {
		for _, b := range paths {
			if a.IsTailOf(b) && a.Len() > b.Len() {
				t.Errorf("%q.IsTailOf(%q) holds but len %d > %d", a, b, a.Len(), b.Len())
			}
		}
		if !a.IsTailOf(a) {
			t.Errorf("%q is not a tail of itself", a)
		}
		if a.IsTailOf(NewPath()) != a.IsEmpty() {
			t.Errorf("%q.IsTailOf(empty) = %v, want %v", a, a.IsTailOf(NewPath()), a.IsEmpty())
		}
	}
}

func TestPathLess(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"a", "b", true},
		{"b", "a", false},
		{"a", "a", false},
		{"a", "a.b", true},  // strict prefix is less
		{"a.b", "a", false},
		{"a.b", "a.c", true},
		{"a.b.c", "a.c", true},
		{"", "a", true},
	}

	for _, tt := range tests {
		if got := NewPath(tt.a).Less(NewPath(tt.b)); got != tt.want {
			t.Errorf("NewPath(%q).Less(%q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestPathLessIsStrictOrder(t *testing.T) {
	paths := []Path{
		NewPath(), NewPath("a"), NewPath("a.a"), NewPath("a.b"),
		NewPath("b"), NewPath("b.a.c"), NewPath("c"),
	}
	// The slice above is in ascending order; check all pairs both ways.
	for i, a := range paths {
		for j, b := range paths {
			want := i < j
			if got := a.Less(b); got != want {
				t.Errorf("%q.Less(%q) = %v, want %v", a, b, got, want)
			}
		}
	}
}

func TestPathPrependAppend(t *testing.T) {
	p := NewPath("X")
	q := p.Prepend(NewPath("r1"))
	if q.String() != "r1.X" {
		t.Errorf("prepend: got %q, want \"r1.X\"", q.String())
	}
	if p.String() != "X" {
		t.Errorf("prepend modified the receiver: %q", p.String())
	}

	r := NewPath("a").Append(NewPath("b")).AppendName("c")
	if r.String() != "a.b.c" {
		t.Errorf("append: got %q, want \"a.b.c\"", r.String())
	}

	// Associativity: (a ++ b) ++ c == a ++ (b ++ c).
	a, b, c := NewPath("a.b"), NewPath("c"), NewPath("d.e")
	left := a.Append(b).Append(c)
	right := a.Append(b.Append(c))
	if !left.Equal(right) {
		t.Errorf("append is not associative: %q vs %q", left, right)
	}
}

func TestPathPrependEmptyPrefix(t *testing.T) {
	p := NewPath("a.b")
	if got := p.Prepend(NewPath()); !got.Equal(p) {
		t.Errorf("prepending the empty path changed %q to %q", p, got)
	}
}

func TestPathReplace(t *testing.T) {
	m := ReplaceMap{}
	m.Put(NewPath("r1.d"), NewPath("d"))

	if got := NewPath("r1.d").Replace(m); got.String() != "d" {
		t.Errorf("replace hit: got %q, want \"d\"", got)
	}
	if got := NewPath("r1.X").Replace(m); got.String() != "r1.X" {
		t.Errorf("replace miss: got %q, want \"r1.X\"", got)
	}

	// Idempotent under a fixed map whose images are not keys.
	once := NewPath("r1.d").Replace(m)
	twice := once.Replace(m)
	if !once.Equal(twice) {
		t.Errorf("replace not idempotent: %q vs %q", once, twice)
	}
}

func TestPathRendering(t *testing.T) {
	p := NewPath("r1", "v2", "X")
	if p.String() != "r1.v2.X" {
		t.Errorf("String() = %q", p.String())
	}
	if p.Format("_") != "r1_v2_X" {
		t.Errorf("Format(\"_\") = %q", p.Format("_"))
	}
	if NewPath().String() != "" {
		t.Errorf("empty path renders %q, want \"\"", NewPath().String())
	}
}

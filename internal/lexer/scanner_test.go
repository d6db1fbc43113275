package lexer

import "testing"

func scanTypes(t *testing.T, src string) []TokenType {
	t.Helper()
	tokens := NewScanner(src, "test.siml").ScanAll()
	types := make([]TokenType, len(tokens))
	for i, tok := range tokens {
		types[i] = tok.Type
	}
	return types
}

func TestScanStatement(t *testing.T) {
	tokens := NewScanner("$r1.X := -k*X;", "test.siml").ScanAll()

	want := []struct {
		typ    TokenType
		lexeme string
	}{
		{TokenDollar, "$"},
		{TokenIdent, "r1"},
		{TokenDot, "."},
		{TokenIdent, "X"},
		{TokenAssign, ":="},
		{TokenMinus, "-"},
		{TokenIdent, "k"},
		{TokenStar, "*"},
		{TokenIdent, "X"},
		{TokenTerminator, ";"},
		{TokenEOF, ""},
	}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(tokens), len(want), tokens)
	}
	for i, w := range want {
		if tokens[i].Type != w.typ || tokens[i].Lexeme != w.lexeme {
			t.Errorf("token %d = {%d %q}, want {%d %q}",
				i, tokens[i].Type, tokens[i].Lexeme, w.typ, w.lexeme)
		}
	}
}

func TestScanKeywords(t *testing.T) {
	tests := []struct {
		src  string
		want TokenType
	}{
		{"MODEL", TokenModel},
		{"PROCESS", TokenProcess},
		{"END", TokenEnd},
		{"PARAMETER", TokenParameter},
		{"VARIABLE", TokenVariable},
		{"UNIT", TokenUnit},
		{"SET", TokenSet},
		{"EQUATION", TokenEquation},
		{"INITIAL", TokenInitial},
		{"SOLUTIONPARAMETERS", TokenSolutionParameters},
		{"AS", TokenAs},
		{"DEFAULT", TokenDefault},
		{"REAL", TokenReal},
		{"ANY", TokenAny},
		// Keywords are case sensitive; lowercase is an identifier.
		{"model", TokenIdent},
		{"Model", TokenIdent},
	}
	for _, tt := range tests {
		tok := NewScanner(tt.src, "t").Next()
		if tok.Type != tt.want {
			t.Errorf("%q scanned as %d, want %d", tt.src, tok.Type, tt.want)
		}
	}
}

func TestScanNumbers(t *testing.T) {
	tests := []string{"0", "42", "3.14", "0.5", "1e6", "2.5e-3", "1E+10"}
	for _, src := range tests {
		tok := NewScanner(src, "t").Next()
		if tok.Type != TokenNumber || tok.Lexeme != src {
			t.Errorf("%q scanned as {%d %q}", src, tok.Type, tok.Lexeme)
		}
	}

	// "1.x" is a number followed by a path fragment, not a bad number.
	types := scanTypes(t, "1.x")
	want := []TokenType{TokenNumber, TokenDot, TokenIdent, TokenEOF}
	for i := range want {
		if types[i] != want[i] {
			t.Fatalf("1.x scanned as %v", types)
		}
	}
}

func TestScanComments(t *testing.T) {
	src := "a # a comment with MODEL keywords\nb { nested { block } comment } c"
	tokens := NewScanner(src, "t").ScanAll()

	var lexemes []string
	for _, tok := range tokens {
		if tok.Type == TokenIdent || tok.Type == TokenTerminator {
			lexemes = append(lexemes, tok.Lexeme)
		}
	}
	want := []string{"a", "\n", "b", "c"}
	if len(lexemes) != len(want) {
		t.Fatalf("got %v, want %v", lexemes, want)
	}
	for i := range want {
		if lexemes[i] != want[i] {
			t.Fatalf("got %v, want %v", lexemes, want)
		}
	}
}

func TestScanLineNumbers(t *testing.T) {
	src := "MODEL R\nPARAMETER\nk\nEND\n"
	tokens := NewScanner(src, "r.siml").ScanAll()

	byLexeme := map[string]int{}
	for _, tok := range tokens {
		if tok.Type == TokenIdent || tok.Type == TokenModel || tok.Type == TokenParameter || tok.Type == TokenEnd {
			byLexeme[tok.Lexeme] = tok.Line
		}
	}
	wantLines := map[string]int{"MODEL": 1, "R": 1, "PARAMETER": 2, "k": 3, "END": 4}
	for lexeme, line := range wantLines {
		if byLexeme[lexeme] != line {
			t.Errorf("%q on line %d, want %d", lexeme, byLexeme[lexeme], line)
		}
	}
	for _, tok := range tokens {
		if tok.File != "r.siml" {
			t.Fatalf("token %q has file %q", tok.Lexeme, tok.File)
		}
	}
}

func TestScanAssignAndError(t *testing.T) {
	types := scanTypes(t, "a := b")
	want := []TokenType{TokenIdent, TokenAssign, TokenIdent, TokenEOF}
	for i := range want {
		if types[i] != want[i] {
			t.Fatalf("a := b scanned as %v", types)
		}
	}

	// A lone ':' is an error token, and scanning continues after it.
	types = scanTypes(t, "a : b")
	want = []TokenType{TokenIdent, TokenError, TokenIdent, TokenEOF}
	for i := range want {
		if types[i] != want[i] {
			t.Fatalf("a : b scanned as %v", types)
		}
	}
}

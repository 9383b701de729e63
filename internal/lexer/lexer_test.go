package lexer

import "testing"

func TestNextTokenBasics(t *testing.T) {
	input := `const x: i32 = 42;
fn add(i32 a, i32 b) i32 {
	return a + b;
}`

	tests := []struct {
		typ     TokenType
		literal string
	}{
		{CONST, "const"}, {IDENT, "x"}, {COLON, ":"}, {I32, "i32"}, {ASSIGN, "="},
		{INT, "42"}, {SEMICOLON, ";"},
		{FN, "fn"}, {IDENT, "add"}, {LPAREN, "("},
		{I32, "i32"}, {IDENT, "a"}, {COMMA, ","},
		{I32, "i32"}, {IDENT, "b"}, {RPAREN, ")"},
		{I32, "i32"}, {LBRACE, "{"},
		{RETURN, "return"}, {IDENT, "a"}, {PLUS, "+"}, {IDENT, "b"}, {SEMICOLON, ";"},
		{RBRACE, "}"},
		{EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.typ {
			t.Fatalf("token %d: type = %s, want %s (literal %q)", i, tok.Type, tt.typ, tok.Literal)
		}
		if tt.literal != "" && tok.Literal != tt.literal {
			t.Fatalf("token %d: literal = %q, want %q", i, tok.Literal, tt.literal)
		}
	}
}

func TestCompoundOperators(t *testing.T) {
	tests := []struct {
		input string
		typ   TokenType
	}{
		{"==", EQ}, {"!=", NOTEQ}, {"<=", LE}, {">=", GE},
		{"&&", ANDAND}, {"||", OROR}, {"=>", FATARROW},
	}
	for _, tt := range tests {
		l := New(tt.input)
		tok := l.NextToken()
		if tok.Type != tt.typ {
			t.Errorf("NextToken(%q).Type = %s, want %s", tt.input, tok.Type, tt.typ)
		}
	}
}

func TestStringLiteral(t *testing.T) {
	l := New(`"hello, world"`)
	tok := l.NextToken()
	if tok.Type != STRING {
		t.Fatalf("Type = %s, want STRING", tok.Type)
	}
	if tok.StringValue != "hello, world" {
		t.Errorf("StringValue = %q, want %q", tok.StringValue, "hello, world")
	}
}

func TestFloatLiteral(t *testing.T) {
	l := New("3.14")
	tok := l.NextToken()
	if tok.Type != FLOAT {
		t.Fatalf("Type = %s, want FLOAT", tok.Type)
	}
	if tok.FloatValue != 3.14 {
		t.Errorf("FloatValue = %v, want 3.14", tok.FloatValue)
	}
}

func TestProcIdentifier(t *testing.T) {
	l := New("$print")
	tok := l.NextToken()
	if tok.Type != PROCIDENT {
		t.Fatalf("Type = %s, want PROCIDENT", tok.Type)
	}
}

func TestCommentsAreSkipped(t *testing.T) {
	input := `// a line comment
let /* inline */ x = 1;`
	l := New(input)
	var kinds []TokenType
	for {
		tok := l.NextToken()
		kinds = append(kinds, tok.Type)
		if tok.Type == EOF {
			break
		}
	}
	want := []TokenType{LET, IDENT, ASSIGN, INT, SEMICOLON, EOF}
	if len(kinds) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(kinds), len(want), kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("token %d = %s, want %s", i, kinds[i], want[i])
		}
	}
}

func TestIllegalCharacterRecordsError(t *testing.T) {
	l := New("let x = #;")
	for {
		tok := l.NextToken()
		if tok.Type == EOF {
			break
		}
	}
	if len(l.Errors()) == 0 {
		t.Errorf("expected at least one lex error for '#'")
	}
}

func TestPositionsAdvanceAcrossLines(t *testing.T) {
	l := New("let x = 1;\nlet y = 2;")
	var tok Token
	for {
		tok = l.NextToken()
		if tok.Literal == "y" {
			break
		}
		if tok.Type == EOF {
			t.Fatalf("did not find identifier 'y'")
		}
	}
	if tok.Pos.Line != 2 {
		t.Errorf("Pos.Line = %d, want 2", tok.Pos.Line)
	}
}

func TestLookupIdentKeywordsVsIdentifiers(t *testing.T) {
	if got := LookupIdent("if"); got != IF {
		t.Errorf("LookupIdent(\"if\") = %s, want IF", got)
	}
	if got := LookupIdent("myVar"); got != IDENT {
		t.Errorf("LookupIdent(\"myVar\") = %s, want IDENT", got)
	}
}

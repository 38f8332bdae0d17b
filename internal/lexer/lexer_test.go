package lexer

import "testing"

func tokenTypes(toks []Token) []TokenType {
	types := make([]TokenType, len(toks))
	for i, t := range toks {
		types[i] = t.Type
	}
	return types
}

func mustTokenize(t *testing.T, src string) []Token {
	t.Helper()
	toks, err := New(src).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize(%q): %v", src, err)
	}
	return toks
}

func TestEventLexing(t *testing.T) {
	src := `event Transfer(address indexed from, address indexed to, uint256 value);`
	toks := mustTokenize(t, src)

	expected := []TokenType{
		EVENT, IDENTIFIER, LPAREN,
		ADDRESS, INDEXED, IDENTIFIER, COMMA,
		ADDRESS, INDEXED, IDENTIFIER, COMMA,
		UINT, IDENTIFIER,
		RPAREN, SEMICOLON, EOF,
	}

	got := tokenTypes(toks)
	if len(got) != len(expected) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(expected), got)
	}
	for i, want := range expected {
		if got[i] != want {
			t.Errorf("token %d: got %s, want %s", i, got[i], want)
		}
		t.Logf("token %d: %s %q", i, toks[i].Type, toks[i].Value)
	}
}

func TestSizedTypes(t *testing.T) {
	cases := []struct {
		src   string
		typ   TokenType
		width int
	}{
		{"uint", UINT, 256},
		{"uint8", UINT, 8},
		{"uint256", UINT, 256},
		{"int", INT, 256},
		{"int128", INT, 128},
		{"bytes", BYTES, 0},
		{"bytes32", BYTES_N, 32},
		{"bytes1", BYTES_N, 1},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			toks := mustTokenize(t, c.src)
			if toks[0].Type != c.typ {
				t.Fatalf("got type %s, want %s", toks[0].Type, c.typ)
			}
			if toks[0].Width != c.width {
				t.Fatalf("got width %d, want %d", toks[0].Width, c.width)
			}
		})
	}
}

func TestHexNumberVsAddressIsLexicalOnly(t *testing.T) {
	// The lexer only ever produces HEX_NUMBER; address-vs-integer
	// classification happens in the builder from the raw text.
	toks := mustTokenize(t, "0x5B38Da6a701c568545dCfcB03FcB875f56beddC4")
	if toks[0].Type != HEX_NUMBER {
		t.Fatalf("got %s, want HEX_NUMBER", toks[0].Type)
	}
	if len(toks[0].Value) != 42 {
		t.Fatalf("got length %d, want 42", len(toks[0].Value))
	}
}

func TestNumberUnderscoreStripping(t *testing.T) {
	toks := mustTokenize(t, "1_000_000")
	if toks[0].Type != NUMBER {
		t.Fatalf("got %s, want NUMBER", toks[0].Type)
	}
	if toks[0].Value != "1000000" {
		t.Fatalf("got %q, want %q", toks[0].Value, "1000000")
	}
}

func TestDocCommentLine(t *testing.T) {
	toks := mustTokenize(t, "/// line one\ncontract C {}")
	if toks[0].Type != DOC_COMMENT_LINE {
		t.Fatalf("got %s, want DOC_COMMENT_LINE", toks[0].Type)
	}
	if toks[0].Value != "line one" {
		t.Fatalf("got %q, want %q", toks[0].Value, "line one")
	}
}

func TestDocCommentBlock(t *testing.T) {
	toks := mustTokenize(t, "/** hello */\ncontract C {}")
	if toks[0].Type != DOC_COMMENT_BLOCK {
		t.Fatalf("got %s, want DOC_COMMENT_BLOCK", toks[0].Type)
	}
}

func TestOrdinaryCommentsDiscarded(t *testing.T) {
	toks := mustTokenize(t, "// not a doc comment\ncontract C {}")
	if toks[0].Type != CONTRACT {
		t.Fatalf("got %s, want CONTRACT (comment should be discarded)", toks[0].Type)
	}
}

func TestPragmaLinePayload(t *testing.T) {
	toks := mustTokenize(t, "pragma solidity ^0.8.0;\ncontract C {}")
	want := []TokenType{PRAGMA, IDENTIFIER, STRING, CONTRACT, IDENTIFIER, LBRACE, RBRACE, EOF}
	got := tokenTypes(toks)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
	if toks[2].Value != "^0.8.0" {
		t.Fatalf("pragma payload = %q, want %q", toks[2].Value, "^0.8.0")
	}
}

func TestPragmaWithoutSemicolon(t *testing.T) {
	toks := mustTokenize(t, "pragma solidity ^0.8.0\ncontract C {}")
	if toks[2].Value != "^0.8.0" {
		t.Fatalf("pragma payload = %q, want %q", toks[2].Value, "^0.8.0")
	}
	if toks[3].Type != CONTRACT {
		t.Fatalf("token after payload = %s, want CONTRACT", toks[3].Type)
	}
}

func TestStringLineContinuationNotUnterminated(t *testing.T) {
	toks, err := New("\"a\\\nb\"").Tokenize()
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if toks[0].Type != STRING {
		t.Fatalf("got %s, want STRING", toks[0].Type)
	}
}

func TestUnterminatedStringIsLexicalError(t *testing.T) {
	_, err := New("\"abc\n").Tokenize()
	if err == nil {
		t.Fatal("expected an error for an unterminated string")
	}
}

func TestMultiCharOperatorsLongestMatch(t *testing.T) {
	toks := mustTokenize(t, "<<=")
	if toks[0].Type != ASSIGN_SHL {
		t.Fatalf("got %s, want ASSIGN_SHL", toks[0].Type)
	}
}

package lexer_test

import (
	"testing"

	"github.com/pixelthegreat/emerald/internal/lexer"
	"github.com/pixelthegreat/emerald/internal/token"
)

func scanAll(t *testing.T, text string) []token.Token {
	t.Helper()
	l := lexer.New("t.em", text)
	var toks []token.Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("NextToken error: %s", err)
		}
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	return toks
}

func TestNextTokenBasics(t *testing.T) {
	toks := scanAll(t, "let x = 1 + 2 * 3")
	want := []struct {
		typ token.Type
		val string
	}{
		{token.KEYWORD, "let"},
		{token.IDENT, "x"},
		{token.ASSIGN, "="},
		{token.INT, "1"},
		{token.PLUS, "+"},
		{token.INT, "2"},
		{token.ASTERISK, "*"},
		{token.INT, "3"},
		{token.EOF, ""},
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(toks), len(want), toks)
	}
	for i, w := range want {
		if toks[i].Type != w.typ {
			t.Errorf("token %d: type = %s, want %s", i, toks[i].Type, w.typ)
		}
		if w.val != "" && toks[i].Value != w.val {
			t.Errorf("token %d: value = %q, want %q", i, toks[i].Value, w.val)
		}
	}
}

func TestNextTokenTwoCharOperators(t *testing.T) {
	toks := scanAll(t, "== != <= >= << >>")
	want := []token.Type{token.EQ, token.NOT_EQ, token.LTE, token.GTE, token.LSHIFT, token.RSHIFT, token.EOF}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, typ := range want {
		if toks[i].Type != typ {
			t.Errorf("token %d: type = %s, want %s", i, toks[i].Type, typ)
		}
	}
}

func TestStringEscapes(t *testing.T) {
	toks := scanAll(t, `"a\nb\tc"`)
	if len(toks) != 2 || toks[0].Type != token.STRING {
		t.Fatalf("unexpected tokens: %+v", toks)
	}
	if toks[0].Value != "a\nb\tc" {
		t.Errorf("string value = %q, want %q", toks[0].Value, "a\nb\tc")
	}
}

func TestStringEscapeIdentityFallback(t *testing.T) {
	// getEscChar falls back to the escaped rune itself for anything not
	// in its table (spec.md §4.4).
	toks := scanAll(t, `"\q"`)
	if toks[0].Value != "q" {
		t.Errorf("string value = %q, want %q", toks[0].Value, "q")
	}
}

func TestCommentToEndOfLine(t *testing.T) {
	toks := scanAll(t, "let x = 1 # trailing comment\nlet y = 2")
	var kws []string
	for _, tk := range toks {
		if tk.Type == token.KEYWORD {
			kws = append(kws, tk.Value)
		}
	}
	if len(kws) != 2 || kws[0] != "let" || kws[1] != "let" {
		t.Errorf("comment wasn't skipped cleanly: keywords = %v", kws)
	}
}

func TestCRLFConsumedAsWhitespace(t *testing.T) {
	toks := scanAll(t, "let x = 1\r\nlet y = 2\r\n")
	count := 0
	for _, tk := range toks {
		if tk.Type == token.KEYWORD && tk.Value == "let" {
			count++
		}
	}
	if count != 2 {
		t.Errorf("expected 2 'let' keywords, got %d", count)
	}
}

func TestFloatLiteral(t *testing.T) {
	toks := scanAll(t, "3.14")
	if toks[0].Type != token.FLOAT || toks[0].Value != "3.14" {
		t.Errorf("got %+v, want FLOAT 3.14", toks[0])
	}
}

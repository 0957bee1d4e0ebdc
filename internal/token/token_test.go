package token_test

import (
	"strings"
	"testing"

	"github.com/pixelthegreat/emerald/internal/token"
)

func TestLookupIdent(t *testing.T) {
	cases := []struct {
		ident string
		want  token.Type
	}{
		{"if", token.KEYWORD},
		{"foreach", token.KEYWORD},
		{"break", token.KEYWORD},
		{"continue", token.KEYWORD},
		{"of", token.KEYWORD},
		{"x", token.IDENT},
		{"puts2", token.IDENT},
	}
	for _, c := range cases {
		if got := token.LookupIdent(c.ident); got != c.want {
			t.Errorf("LookupIdent(%q) = %s, want %s", c.ident, got, c.want)
		}
	}
}

func TestPositionString(t *testing.T) {
	pos := token.Position{Path: "main.em", Line: 3, Column: 5}
	want := "File 'main.em', Line 3, Column 5"
	if got := pos.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestPositionSourceLine(t *testing.T) {
	text := "let x = 1\nputs x\nend\n"
	idx := strings.Index(text, "puts")
	pos := token.Position{Text: text, Index: idx}
	if got := pos.SourceLine(); got != "puts x" {
		t.Errorf("SourceLine() = %q, want %q", got, "puts x")
	}
}

func TestPositionSourceLineEmpty(t *testing.T) {
	pos := token.Position{}
	if got := pos.SourceLine(); got != "" {
		t.Errorf("SourceLine() = %q, want empty", got)
	}
}

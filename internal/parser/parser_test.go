package parser_test

import (
	"testing"

	"github.com/pixelthegreat/emerald/internal/ast"
	"github.com/pixelthegreat/emerald/internal/parser"
)

func TestParserConstructs(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"puts_arith", "puts 1 + 2 * 3\n"},
		{"let_and_for", "let xs = [1,2,3]\nfor i = 0 to lengthOf(xs) then\n  puts xs[i]\nend\n"},
		{"func_recursive", "func fact(n) then\n  if n <= 1 then return 1 end\n  return n * fact(n - 1)\nend\n"},
		{"class_with_init", "class A then\n  func _initialize(self, x) then let self.x = x end\n  func get(self) then return self.x end\nend\n"},
		{"try_catch", "try then raise \"boom\" catch e = Error then puts e end\n"},
		{"foreach_string", "let s = \"\"\nforeach c in \"abc\" then let s = s + c end\nputs s\n"},
		{"map_literal", "let m = {\"a\": 1, \"b\": 2}\n"},
		{"break_continue", "while true then\n  break\nend\nwhile true then\n  continue\nend\n"},
		{"class_of_base", "class B of A then end\n"},
		{"include_stmt", "include \"foo\"\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			prog, err := parser.ParseFile(c.name+".em", c.input)
			if err != nil {
				t.Fatalf("ParseFile error: %s", err)
			}
			if prog == nil || len(prog.Statements) == 0 {
				t.Fatalf("expected non-empty program, got %+v", prog)
			}
		})
	}
}

func TestParserSyntaxError(t *testing.T) {
	_, err := parser.ParseFile("t.em", "let x = \n")
	if err == nil {
		t.Fatal("expected a syntax error, got nil")
	}
}

func TestParsePutsArgList(t *testing.T) {
	prog, err := parser.ParseFile("t.em", "puts 1, 2, 3\n")
	if err != nil {
		t.Fatalf("ParseFile error: %s", err)
	}
	stmt, ok := prog.Statements[0].(*ast.ExpressionStatement)
	if !ok {
		t.Fatalf("expected *ast.ExpressionStatement, got %T", prog.Statements[0])
	}
	putsExpr, ok := stmt.X.(*ast.PutsExpr)
	if !ok {
		t.Fatalf("expected *ast.PutsExpr, got %T", stmt.X)
	}
	if len(putsExpr.Args) != 3 {
		t.Errorf("got %d puts args, want 3", len(putsExpr.Args))
	}
}

func TestParseBinaryPrecedence(t *testing.T) {
	prog, err := parser.ParseFile("t.em", "puts 1 + 2 * 3\n")
	if err != nil {
		t.Fatalf("ParseFile error: %s", err)
	}
	stmt := prog.Statements[0].(*ast.ExpressionStatement)
	putsExpr := stmt.X.(*ast.PutsExpr)
	bin, ok := putsExpr.Args[0].(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("expected top-level *ast.BinaryExpr, got %T", putsExpr.Args[0])
	}
	if bin.Op != "+" {
		t.Errorf("top-level op = %q, want %q (multiplication should bind tighter)", bin.Op, "+")
	}
	if _, ok := bin.Right.(*ast.BinaryExpr); !ok {
		t.Errorf("right operand should be the nested 2*3 BinaryExpr, got %T", bin.Right)
	}
}

// Package parser implements Emerald's recursive-descent parser (spec.md
// §4.5): one method per grammar production, binary operators parsed
// through a shared precedence-climbing chain, and control-flow/let/func/
// class constructs parsed at the `factor` level since spec.md's grammar
// treats them as expressions.
//
// Grounded on funvibe-funxy/internal/parser/expressions_core.go's
// precedence-climbing shape (a parseX function per level, each calling
// the next-higher-precedence function and looping on a set of operator
// tokens) and on original_source/src/emerald/parser.c's error-recovery
// idiom: on a syntax error, queue it and return a nil node so the caller
// propagates rather than attempting recovery.
package parser

import (
	"fmt"
	"strconv"

	"github.com/pixelthegreat/emerald/internal/ast"
	"github.com/pixelthegreat/emerald/internal/lexer"
	"github.com/pixelthegreat/emerald/internal/token"
)

// Parser holds a two-token lookahead window over the lexer's output and
// the first syntax error encountered, if any.
type Parser struct {
	lex  *lexer.Lexer
	cur  token.Token
	peek token.Token
	err  error
}

// New creates a Parser over lexer-scanned text, priming its two-token
// lookahead.
func New(path, text string) *Parser {
	p := &Parser{lex: lexer.New(path, text)}
	p.nextToken()
	p.nextToken()
	return p
}

// ParseFile is the convenience entrypoint internal/evaluator uses for
// both the initial program and every `include`.
func ParseFile(path, text string) (*ast.Program, error) {
	return New(path, text).ParseProgram()
}

func (p *Parser) nextToken() {
	p.cur = p.peek
	if p.err != nil {
		return
	}
	tok, err := p.lex.NextToken()
	if err != nil {
		p.err = err
		return
	}
	p.peek = tok
}

func (p *Parser) fail(pos token.Position, format string, args ...any) {
	if p.err != nil {
		return
	}
	p.err = fmt.Errorf("%s: %s", pos, fmt.Sprintf(format, args...))
}

func isKeyword(t token.Token, word string) bool {
	return t.Type == token.KEYWORD && t.Value == word
}

func (p *Parser) expect(typ token.Type, what string) token.Token {
	t := p.cur
	if p.err != nil {
		return t
	}
	if t.Type != typ {
		p.fail(t.Pos, "expected %s, got %q", what, t.Value)
		return t
	}
	p.nextToken()
	return t
}

func (p *Parser) expectKeyword(word string) token.Token {
	t := p.cur
	if p.err != nil {
		return t
	}
	if !isKeyword(t, word) {
		p.fail(t.Pos, "expected '%s', got %q", word, t.Value)
		return t
	}
	p.nextToken()
	return t
}

// ---- program / statement ----

func (p *Parser) ParseProgram() (*ast.Program, error) {
	pos := p.cur.Pos
	stmts := p.parseStatements(func() bool { return p.cur.Type == token.EOF })
	if p.err != nil {
		return nil, p.err
	}
	return ast.NewProgram(pos, stmts), nil
}

// parseStatements runs until stop() reports true or an error occurs.
func (p *Parser) parseStatements(stop func() bool) []ast.Statement {
	var stmts []ast.Statement
	for p.err == nil && !stop() {
		s := p.parseStatement()
		if p.err != nil {
			break
		}
		stmts = append(stmts, s)
	}
	return stmts
}

// parseBlockUntil parses statements until EOF or one of the given
// keywords appears next (the caller consumes that keyword itself).
func (p *Parser) parseBlockUntil(words ...string) *ast.Block {
	pos := p.cur.Pos
	stop := func() bool {
		if p.cur.Type == token.EOF {
			return true
		}
		for _, w := range words {
			if isKeyword(p.cur, w) {
				return true
			}
		}
		return false
	}
	stmts := p.parseStatements(stop)
	return &ast.Block{Pos: pos, Statements: stmts}
}

func (p *Parser) parseStatement() ast.Statement {
	pos := p.cur.Pos
	switch {
	case isKeyword(p.cur, "continue"):
		p.nextToken()
		return ast.NewContinueStatement(pos)
	case isKeyword(p.cur, "break"):
		p.nextToken()
		return ast.NewBreakStatement(pos)
	case isKeyword(p.cur, "return"):
		p.nextToken()
		v := p.parseExpr()
		return ast.NewReturnStatement(pos, v)
	case isKeyword(p.cur, "raise"):
		p.nextToken()
		v := p.parseExpr()
		return ast.NewRaiseStatement(pos, v)
	case isKeyword(p.cur, "include"):
		p.nextToken()
		v := p.parseExpr()
		return ast.NewIncludeStatement(pos, v)
	}
	x := p.parseExpr()
	return ast.NewExpressionStatement(pos, x)
}

// ---- expr / comp / arith / term ----

func (p *Parser) parseExpr() ast.Expression {
	left := p.parseComp()
	for p.err == nil && (isKeyword(p.cur, "and") || isKeyword(p.cur, "or")) {
		op := p.cur.Value
		pos := p.cur.Pos
		p.nextToken()
		right := p.parseComp()
		left = ast.NewBinaryExpr(pos, op, left, right, op == "and", op == "or")
	}
	return left
}

func (p *Parser) parseComp() ast.Expression {
	left := p.parseArith()
	for p.err == nil && isCompOp(p.cur.Type) {
		op := opLiteral(p.cur)
		pos := p.cur.Pos
		p.nextToken()
		right := p.parseArith()
		left = ast.NewBinaryExpr(pos, op, left, right, false, false)
	}
	return left
}

func isCompOp(t token.Type) bool {
	switch t {
	case token.EQ, token.NOT_EQ, token.LT, token.GT, token.LTE, token.GTE:
		return true
	}
	return false
}

func (p *Parser) parseArith() ast.Expression {
	left := p.parseTerm()
	for p.err == nil && isArithOp(p.cur.Type) {
		op := opLiteral(p.cur)
		pos := p.cur.Pos
		p.nextToken()
		right := p.parseTerm()
		left = ast.NewBinaryExpr(pos, op, left, right, false, false)
	}
	return left
}

func isArithOp(t token.Type) bool {
	switch t {
	case token.PLUS, token.MINUS, token.PIPE, token.AMP:
		return true
	}
	return false
}

func (p *Parser) parseTerm() ast.Expression {
	left := p.parseCall()
	for p.err == nil && isTermOp(p.cur.Type) {
		op := opLiteral(p.cur)
		pos := p.cur.Pos
		p.nextToken()
		right := p.parseCall()
		left = ast.NewBinaryExpr(pos, op, left, right, false, false)
	}
	return left
}

func isTermOp(t token.Type) bool {
	switch t {
	case token.ASTERISK, token.SLASH, token.LSHIFT, token.RSHIFT, token.PERCENT:
		return true
	}
	return false
}

// opLiteral renders a token back to its textual operator, since
// ast.BinaryExpr stores Op as a string rather than a token.Type.
func opLiteral(t token.Token) string {
	switch t.Type {
	case token.EQ:
		return "=="
	case token.NOT_EQ:
		return "!="
	case token.LT:
		return "<"
	case token.GT:
		return ">"
	case token.LTE:
		return "<="
	case token.GTE:
		return ">="
	case token.PLUS:
		return "+"
	case token.MINUS:
		return "-"
	case token.PIPE:
		return "|"
	case token.AMP:
		return "&"
	case token.ASTERISK:
		return "*"
	case token.SLASH:
		return "/"
	case token.LSHIFT:
		return "<<"
	case token.RSHIFT:
		return ">>"
	case token.PERCENT:
		return "%"
	}
	return t.Value
}

// ---- call / call_tail ----

func (p *Parser) parseCall() ast.Expression {
	x := p.parseFactor()
	for p.err == nil {
		pos := p.cur.Pos
		switch p.cur.Type {
		case token.LPAREN:
			args := p.parseArgList(token.RPAREN)
			x = ast.NewCallExpr(pos, x, args)
		case token.DOT:
			p.nextToken()
			name := p.expect(token.IDENT, "identifier after '.'")
			x = ast.NewMemberExpr(pos, x, name.Value)
		case token.LBRACKET:
			p.nextToken()
			idx := p.parseExpr()
			p.expect(token.RBRACKET, "']'")
			x = ast.NewIndexExpr(pos, x, idx)
		default:
			return x
		}
	}
	return x
}

// parseArgList consumes '(' or '[' (already positioned at it), a
// comma-separated expression list, and the matching close token.
func (p *Parser) parseArgList(close token.Type) []ast.Expression {
	p.nextToken() // consume '(' or '['
	var args []ast.Expression
	if p.cur.Type == close {
		p.nextToken()
		return args
	}
	for p.err == nil {
		args = append(args, p.parseExpr())
		if p.cur.Type == token.COMMA {
			p.nextToken()
			continue
		}
		break
	}
	p.expect(close, "closing bracket")
	return args
}

// ---- factor ----

func (p *Parser) parseFactor() ast.Expression {
	pos := p.cur.Pos
	switch {
	case p.cur.Type == token.PLUS:
		p.nextToken()
		return ast.NewUnaryExpr(pos, "+", p.parseFactor())
	case p.cur.Type == token.MINUS:
		p.nextToken()
		return ast.NewUnaryExpr(pos, "-", p.parseFactor())
	case p.cur.Type == token.TILDE:
		p.nextToken()
		return ast.NewUnaryExpr(pos, "~", p.parseFactor())
	case isKeyword(p.cur, "not"):
		p.nextToken()
		return ast.NewUnaryExpr(pos, "not", p.parseFactor())
	case p.cur.Type == token.LPAREN:
		p.nextToken()
		x := p.parseExpr()
		p.expect(token.RPAREN, "')'")
		return x
	case p.cur.Type == token.LBRACKET:
		elems := p.parseArgList(token.RBRACKET)
		return ast.NewListLiteral(pos, elems)
	case p.cur.Type == token.LBRACE:
		return p.parseMapLiteral()
	case p.cur.Type == token.INT:
		v, err := strconv.ParseInt(p.cur.Value, 10, 64)
		if err != nil {
			p.fail(pos, "invalid integer literal %q", p.cur.Value)
		}
		p.nextToken()
		return ast.NewIntLiteral(pos, v)
	case p.cur.Type == token.FLOAT:
		v, err := strconv.ParseFloat(p.cur.Value, 64)
		if err != nil {
			p.fail(pos, "invalid float literal %q", p.cur.Value)
		}
		p.nextToken()
		return ast.NewFloatLiteral(pos, v)
	case p.cur.Type == token.STRING:
		v := p.cur.Value
		p.nextToken()
		return ast.NewStringLiteral(pos, v)
	case p.cur.Type == token.IDENT:
		name := p.cur.Value
		p.nextToken()
		return ast.NewIdentifier(pos, name)
	case isKeyword(p.cur, "let"):
		return p.parseLet()
	case isKeyword(p.cur, "func"):
		return p.parseFunc()
	case isKeyword(p.cur, "class"):
		return p.parseClass()
	case isKeyword(p.cur, "try"):
		return p.parseTry()
	case isKeyword(p.cur, "if"):
		return p.parseIf()
	case isKeyword(p.cur, "for"):
		return p.parseFor()
	case isKeyword(p.cur, "foreach"):
		return p.parseForeach()
	case isKeyword(p.cur, "while"):
		return p.parseWhile()
	case isKeyword(p.cur, "puts"):
		return p.parsePuts()
	}
	p.fail(pos, "unexpected token %q", p.cur.Value)
	return nil
}

func (p *Parser) parseMapLiteral() *ast.MapLiteral {
	pos := p.cur.Pos
	p.nextToken() // consume '{'
	var entries []ast.MapEntry
	if p.cur.Type == token.RBRACE {
		p.nextToken()
		return ast.NewMapLiteral(pos, entries)
	}
	for p.err == nil {
		k := p.parseExpr()
		p.expect(token.COLON, "':'")
		v := p.parseExpr()
		entries = append(entries, ast.MapEntry{Key: k, Value: v})
		if p.cur.Type == token.COMMA {
			p.nextToken()
			continue
		}
		break
	}
	p.expect(token.RBRACE, "'}'")
	return ast.NewMapLiteral(pos, entries)
}

// ---- let_stmt ----

func (p *Parser) parseLet() ast.Expression {
	pos := p.cur.Pos
	p.nextToken() // 'let'
	name := p.expect(token.IDENT, "identifier").Value
	var path []string
	for p.cur.Type == token.DOT {
		p.nextToken()
		path = append(path, p.expect(token.IDENT, "identifier after '.'").Value)
	}
	var index ast.Expression
	if p.cur.Type == token.LBRACKET {
		p.nextToken()
		index = p.parseExpr()
		p.expect(token.RBRACKET, "']'")
	}
	p.expect(token.ASSIGN, "'='")
	val := p.parseExpr()
	return ast.NewLetExpr(pos, name, path, index, val)
}

// ---- func_stmt ----

func (p *Parser) parseFunc() *ast.FuncExpr {
	pos := p.cur.Pos
	p.nextToken() // 'func'
	name := ""
	if p.cur.Type == token.IDENT {
		name = p.cur.Value
		p.nextToken()
	}
	p.expect(token.LPAREN, "'('")
	var argNames []string
	if p.cur.Type != token.RPAREN {
		for p.err == nil {
			argNames = append(argNames, p.expect(token.IDENT, "argument name").Value)
			if p.cur.Type == token.COMMA {
				p.nextToken()
				continue
			}
			break
		}
	}
	p.expect(token.RPAREN, "')'")
	p.expectKeyword("then")
	body := p.parseBlockUntil("end")
	p.expectKeyword("end")
	return ast.NewFuncExpr(pos, name, argNames, body)
}

// ---- class_stmt ----

func (p *Parser) parseClass() *ast.ClassExpr {
	pos := p.cur.Pos
	p.nextToken() // 'class'
	name := p.expect(token.IDENT, "class name").Value
	var base ast.Expression
	if isKeyword(p.cur, "of") {
		p.nextToken()
		base = p.parseExpr()
	}
	p.expectKeyword("then")
	var members []*ast.FuncExpr
	for p.err == nil && !isKeyword(p.cur, "end") && p.cur.Type != token.EOF {
		m := p.parseFunc()
		if p.err != nil {
			break
		}
		members = append(members, m)
	}
	p.expectKeyword("end")
	return ast.NewClassExpr(pos, name, base, members)
}

// ---- try_stmt ----

func (p *Parser) parseTry() *ast.TryExpr {
	pos := p.cur.Pos
	p.nextToken() // 'try'
	p.expectKeyword("then")
	tryBlock := p.parseBlockUntil("catch")
	p.expectKeyword("catch")
	name := ""
	var class ast.Expression
	if p.cur.Type == token.IDENT {
		name = p.cur.Value
		p.nextToken()
		p.expect(token.ASSIGN, "'='")
		class = p.parseExpr()
	}
	p.expectKeyword("then")
	catchBlock := p.parseBlockUntil("end")
	p.expectKeyword("end")
	return ast.NewTryExpr(pos, tryBlock, name, class, catchBlock)
}

// ---- if_stmt ----

func (p *Parser) parseIf() *ast.IfExpr {
	pos := p.cur.Pos
	p.nextToken() // 'if'
	cond := p.parseExpr()
	p.expectKeyword("then")
	body := p.parseBlockUntil("elif", "else", "end")
	branches := []ast.IfBranch{{Cond: cond, Body: body}}
	for isKeyword(p.cur, "elif") {
		p.nextToken()
		c := p.parseExpr()
		p.expectKeyword("then")
		b := p.parseBlockUntil("elif", "else", "end")
		branches = append(branches, ast.IfBranch{Cond: c, Body: b})
	}
	var elseBlock *ast.Block
	if isKeyword(p.cur, "else") {
		p.nextToken()
		p.expectKeyword("then")
		elseBlock = p.parseBlockUntil("end")
	}
	p.expectKeyword("end")
	return ast.NewIfExpr(pos, branches, elseBlock)
}

// ---- for_stmt ----

func (p *Parser) parseFor() *ast.ForExpr {
	pos := p.cur.Pos
	p.nextToken() // 'for'
	v := p.expect(token.IDENT, "loop variable").Value
	p.expect(token.ASSIGN, "'='")
	start := p.parseExpr()
	p.expectKeyword("to")
	end := p.parseExpr()
	p.expectKeyword("then")
	body := p.parseBlockUntil("end")
	p.expectKeyword("end")
	return ast.NewForExpr(pos, v, start, end, body)
}

// ---- foreach_stmt ----

func (p *Parser) parseForeach() *ast.ForeachExpr {
	pos := p.cur.Pos
	p.nextToken() // 'foreach'
	v := p.expect(token.IDENT, "loop variable").Value
	p.expectKeyword("in")
	seq := p.parseExpr()
	p.expectKeyword("then")
	body := p.parseBlockUntil("end")
	p.expectKeyword("end")
	return ast.NewForeachExpr(pos, v, seq, body)
}

// ---- while_stmt ----

func (p *Parser) parseWhile() *ast.WhileExpr {
	pos := p.cur.Pos
	p.nextToken() // 'while'
	cond := p.parseExpr()
	p.expectKeyword("then")
	body := p.parseBlockUntil("end")
	p.expectKeyword("end")
	return ast.NewWhileExpr(pos, cond, body)
}

// ---- puts ----

func (p *Parser) parsePuts() *ast.PutsExpr {
	pos := p.cur.Pos
	p.nextToken() // 'puts'
	args := []ast.Expression{p.parseExpr()}
	for p.cur.Type == token.COMMA {
		p.nextToken()
		args = append(args, p.parseExpr())
	}
	return ast.NewPutsExpr(pos, args)
}

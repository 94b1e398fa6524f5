// Package parser turns a COOL token stream into an internal/ast.Program.
// Grounded on the teacher's Pratt-parser shape (Parser struct holding a
// lexer and a lookahead pair, a numeric precedence table driving infix
// folding) generalized to COOL's grammar, which has no user-defined
// operators, patterns, or module system to register for.
package parser

import (
	"fmt"
	"strconv"

	"github.com/coolc-lang/coolc/internal/ast"
	cerrors "github.com/coolc-lang/coolc/internal/errors"
	"github.com/coolc-lang/coolc/internal/lexer"
)

// Precedence levels, lowest to highest, matching the COOL reference
// grammar's operator table.
const (
	LOWEST int = iota
	ASSIGNPREC
	NOTPREC
	COMPARE
	SUM
	PRODUCT
	ISVOIDPREC
	NEGATEPREC
	DISPATCH
)

var infixPrecedence = map[lexer.TokenType]int{
	lexer.LT:    COMPARE,
	lexer.LE:    COMPARE,
	lexer.EQ:    COMPARE,
	lexer.PLUS:  SUM,
	lexer.MINUS: SUM,
	lexer.STAR:  PRODUCT,
	lexer.SLASH: PRODUCT,
	lexer.DOT:   DISPATCH,
	lexer.AT:    DISPATCH,
}

// Parser consumes a *lexer.Lexer and produces an *ast.Program, collecting
// every syntax error it finds rather than stopping at the first one.
type Parser struct {
	l    *lexer.Lexer
	cur  lexer.Token
	peek lexer.Token

	errs []*cerrors.Report
}

// New creates a Parser reading from l.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	p.advance()
	p.advance()
	return p
}

// Errors returns every diagnostic collected while parsing.
func (p *Parser) Errors() []*cerrors.Report { return p.errs }

func (p *Parser) pos() ast.Pos {
	return ast.Pos{File: p.cur.File, Line: p.cur.Line, Col: p.cur.Col}
}

func tokPos(t lexer.Token) ast.Pos {
	return ast.Pos{File: t.File, Line: t.Line, Col: t.Col}
}

func (p *Parser) advance() {
	p.cur = p.peek
	for {
		p.peek = p.l.NextToken()
		if p.peek.Type != lexer.ILLEGAL {
			break
		}
		pos := tokPos(p.peek)
		p.errs = append(p.errs, cerrors.New(cerrors.PhaseParse, cerrors.PAR001, &pos, p.peek.Literal, nil))
	}
}

func (p *Parser) errorf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	pos := p.pos()
	p.errs = append(p.errs, cerrors.New(cerrors.PhaseParse, cerrors.PAR002, &pos, msg, nil))
}

// expect advances past the current token if it has type t, recording a
// syntax error and returning false otherwise.
func (p *Parser) expect(t lexer.TokenType) bool {
	if p.cur.Type != t {
		p.errorf("expected %s, found %s %q", t, p.cur.Type, p.cur.Literal)
		return false
	}
	p.advance()
	return true
}

// syncTo skips tokens until one of the given types (or EOF) is current,
// so a single malformed class/feature doesn't cascade into diagnostics
// for the rest of the file.
func (p *Parser) syncTo(types ...lexer.TokenType) {
	for p.cur.Type != lexer.EOF {
		for _, t := range types {
			if p.cur.Type == t {
				return
			}
		}
		p.advance()
	}
}

// ParseProgram parses a whole source file's worth of class declarations,
// appending to prog so the driver can parse several files and concatenate
// their classes (spec.md has no separate-compilation-unit model).
func (p *Parser) ParseProgram(prog *ast.Program) {
	for p.cur.Type != lexer.EOF {
		if p.cur.Type != lexer.CLASS {
			p.errorf("expected class declaration, found %s %q", p.cur.Type, p.cur.Literal)
			p.syncTo(lexer.CLASS, lexer.EOF)
			continue
		}
		cls := p.parseClass()
		if cls != nil {
			prog.Classes = append(prog.Classes, cls)
		}
		if p.cur.Type != lexer.SEMI {
			p.errorf("expected ';' after class declaration, found %s %q", p.cur.Type, p.cur.Literal)
			p.syncTo(lexer.CLASS, lexer.EOF)
			continue
		}
		p.advance() // consume ';'
	}
}

func (p *Parser) parseClass() *ast.Class {
	pos := p.pos()
	p.advance() // 'class'

	if p.cur.Type != lexer.TYPEID {
		p.errorf("expected class name, found %s %q", p.cur.Type, p.cur.Literal)
		p.syncTo(lexer.SEMI, lexer.EOF)
		return nil
	}
	name := p.cur.Literal
	p.advance()

	cls := &ast.Class{Name: name, Pos: pos}

	if p.cur.Type == lexer.INHERITS {
		p.advance()
		if p.cur.Type != lexer.TYPEID {
			p.errorf("expected parent class name, found %s %q", p.cur.Type, p.cur.Literal)
			p.syncTo(lexer.LBRACE, lexer.SEMI, lexer.EOF)
		} else {
			cls.ParentName = p.cur.Literal
			cls.HasParent = true
			p.advance()
		}
	}

	if !p.expect(lexer.LBRACE) {
		p.syncTo(lexer.SEMI, lexer.EOF)
		return cls
	}

	for p.cur.Type != lexer.RBRACE && p.cur.Type != lexer.EOF {
		feature := p.parseFeature()
		if feature != nil {
			cls.Features = append(cls.Features, feature)
		}
		if !p.expect(lexer.SEMI) {
			p.syncTo(lexer.RBRACE, lexer.EOF)
			break
		}
	}
	p.expect(lexer.RBRACE)
	return cls
}

// parseFeature parses one `name ( ... ) : Type { body }` method or one
// `name : Type [<- init]` field. Both start with OBJECTID; the next
// token (already buffered in p.peek before the name is consumed, current
// after) disambiguates.
func (p *Parser) parseFeature() ast.Feature {
	if p.cur.Type != lexer.OBJECTID {
		p.errorf("expected feature name, found %s %q", p.cur.Type, p.cur.Literal)
		p.syncTo(lexer.SEMI, lexer.RBRACE, lexer.EOF)
		return nil
	}
	pos := p.pos()
	name := p.cur.Literal
	p.advance()

	if p.cur.Type == lexer.LPAREN {
		return p.parseMethod(pos, name)
	}
	return p.parseField(pos, name)
}

func (p *Parser) parseMethod(pos ast.Pos, name string) *ast.Method {
	p.advance() // '('
	var formals []ast.Formal
	for p.cur.Type != lexer.RPAREN && p.cur.Type != lexer.EOF {
		if len(formals) > 0 && !p.expect(lexer.COMMA) {
			break
		}
		formals = append(formals, p.parseFormal())
	}
	p.expect(lexer.RPAREN)
	p.expect(lexer.COLON)

	retType := ""
	if p.cur.Type == lexer.TYPEID || p.cur.Type == lexer.OBJECTID {
		retType = p.cur.Literal
		p.advance()
	} else {
		p.errorf("expected return type, found %s %q", p.cur.Type, p.cur.Literal)
	}

	if !p.expect(lexer.LBRACE) {
		p.syncTo(lexer.SEMI, lexer.RBRACE, lexer.EOF)
		return &ast.Method{Name: name, Formals: formals, ReturnType: retType, Body: ast.NewVoid(pos), Pos: pos}
	}
	body := p.parseExpr(LOWEST)
	p.expect(lexer.RBRACE)

	return &ast.Method{Name: name, Formals: formals, ReturnType: retType, Body: body, Pos: pos}
}

func (p *Parser) parseFormal() ast.Formal {
	pos := p.pos()
	name := ""
	if p.cur.Type == lexer.OBJECTID {
		name = p.cur.Literal
		p.advance()
	} else {
		p.errorf("expected formal name, found %s %q", p.cur.Type, p.cur.Literal)
	}
	p.expect(lexer.COLON)
	typ := ""
	if p.cur.Type == lexer.TYPEID || p.cur.Type == lexer.OBJECTID {
		typ = p.cur.Literal
		p.advance()
	} else {
		p.errorf("expected formal type, found %s %q", p.cur.Type, p.cur.Literal)
	}
	return ast.Formal{Name: name, Type: typ, Pos: pos}
}

func (p *Parser) parseField(pos ast.Pos, name string) *ast.Field {
	p.expect(lexer.COLON)
	typ := ""
	if p.cur.Type == lexer.TYPEID || p.cur.Type == lexer.OBJECTID {
		typ = p.cur.Literal
		p.advance()
	} else {
		p.errorf("expected field type, found %s %q", p.cur.Type, p.cur.Literal)
	}

	var init ast.Expr
	if p.cur.Type == lexer.ASSIGN {
		p.advance()
		init = p.parseExpr(LOWEST)
	}
	return &ast.Field{Name: name, Type: typ, Init: init, Pos: pos}
}

// parseExpr is the Pratt-style entry point: parse one prefix expression,
// then fold in dispatch/binary operators whose precedence exceeds
// minPrec. `<-` (assignment) is right-associative and lowest, so it is
// recognised up front in parsePrefix rather than as a generic infix fold.
func (p *Parser) parseExpr(minPrec int) ast.Expr {
	left := p.parsePrefix()

	for {
		prec, ok := infixPrecedence[p.cur.Type]
		if !ok || prec <= minPrec {
			break
		}
		if p.cur.Type == lexer.DOT || p.cur.Type == lexer.AT {
			left = p.parseDispatch(left)
			continue
		}
		left = p.parseBinOp(left)
	}
	return left
}

func (p *Parser) parseBinOp(left ast.Expr) ast.Expr {
	pos := p.pos()
	var kind ast.BinOpKind
	switch p.cur.Type {
	case lexer.PLUS:
		kind = ast.Add
	case lexer.MINUS:
		kind = ast.Sub
	case lexer.STAR:
		kind = ast.Mul
	case lexer.SLASH:
		kind = ast.Div
	case lexer.LT:
		kind = ast.LessThan
	case lexer.LE:
		kind = ast.LessOrEqual
	case lexer.EQ:
		kind = ast.Equal
	}
	prec := infixPrecedence[p.cur.Type]
	p.advance()
	right := p.parseExpr(prec)
	return ast.NewBinOp(pos, kind, left, right)
}

// parseDispatch parses `recv.name(args)` or `recv@T.name(args)`.
func (p *Parser) parseDispatch(recv ast.Expr) ast.Expr {
	pos := p.pos()
	staticType := ""
	if p.cur.Type == lexer.AT {
		p.advance()
		if p.cur.Type != lexer.TYPEID {
			p.errorf("expected type name after '@', found %s %q", p.cur.Type, p.cur.Literal)
		} else {
			staticType = p.cur.Literal
			p.advance()
		}
		if !p.expect(lexer.DOT) {
			return recv
		}
	} else {
		p.advance() // '.'
	}

	name := ""
	if p.cur.Type == lexer.OBJECTID {
		name = p.cur.Literal
		p.advance()
	} else {
		p.errorf("expected method name, found %s %q", p.cur.Type, p.cur.Literal)
	}
	args := p.parseArgs()
	return ast.NewInvokeAt(pos, recv, staticType, name, args)
}

func (p *Parser) parseArgs() []ast.Expr {
	if !p.expect(lexer.LPAREN) {
		return nil
	}
	var args []ast.Expr
	for p.cur.Type != lexer.RPAREN && p.cur.Type != lexer.EOF {
		if len(args) > 0 && !p.expect(lexer.COMMA) {
			break
		}
		args = append(args, p.parseExpr(LOWEST))
	}
	p.expect(lexer.RPAREN)
	return args
}

// parsePrefix parses one expression with no leading infix/dispatch
// operator: literals, identifiers (including implicit self-dispatch and
// assignment), parenthesised/braced forms, and the unary/keyword forms.
func (p *Parser) parsePrefix() ast.Expr {
	pos := p.pos()

	switch p.cur.Type {
	case lexer.OBJECTID:
		name := p.cur.Literal
		p.advance()
		switch p.cur.Type {
		case lexer.ASSIGN:
			p.advance()
			value := p.parseExpr(ASSIGNPREC - 1)
			return ast.NewAssign(pos, name, value)
		case lexer.LPAREN:
			args := p.parseArgs()
			return ast.NewInvoke(pos, name, args)
		default:
			return ast.NewVar(pos, name)
		}

	case lexer.INT:
		lit := p.cur.Literal
		p.advance()
		v, err := strconv.ParseInt(lit, 10, 64)
		if err != nil {
			p.errorf("invalid integer literal %q", lit)
		}
		return ast.NewIntConst(pos, v)

	case lexer.STRING:
		v := p.cur.Literal
		p.advance()
		return ast.NewStrConst(pos, v)

	case lexer.BOOL:
		v := p.cur.BoolValue
		p.advance()
		return ast.NewBoolConst(pos, v)

	case lexer.TILDE:
		p.advance()
		e := p.parseExpr(NEGATEPREC)
		return ast.NewNeg(pos, e)

	case lexer.NOT:
		p.advance()
		e := p.parseExpr(NOTPREC - 1)
		return ast.NewNot(pos, e)

	case lexer.ISVOID:
		p.advance()
		e := p.parseExpr(ISVOIDPREC)
		return ast.NewIsVoid(pos, e)

	case lexer.NEW:
		p.advance()
		typ := ""
		if p.cur.Type == lexer.TYPEID || p.cur.Type == lexer.OBJECTID {
			typ = p.cur.Literal
			p.advance()
		} else {
			p.errorf("expected type name after 'new', found %s %q", p.cur.Type, p.cur.Literal)
		}
		return ast.NewNew(pos, typ)

	case lexer.LPAREN:
		p.advance()
		e := p.parseExpr(LOWEST)
		p.expect(lexer.RPAREN)
		return e

	case lexer.LBRACE:
		return p.parseBlock()

	case lexer.IF:
		return p.parseIf()

	case lexer.WHILE:
		return p.parseWhile()

	case lexer.LET:
		return p.parseLet()

	case lexer.CASE:
		return p.parseCase()

	default:
		p.errorf("unexpected token %s %q in expression", p.cur.Type, p.cur.Literal)
		p.advance()
		return ast.NewVoid(pos)
	}
}

func (p *Parser) parseBlock() *ast.Block {
	pos := p.pos()
	p.expect(lexer.LBRACE)
	var exprs []ast.Expr
	for p.cur.Type != lexer.RBRACE && p.cur.Type != lexer.EOF {
		exprs = append(exprs, p.parseExpr(LOWEST))
		if !p.expect(lexer.SEMI) {
			break
		}
	}
	p.expect(lexer.RBRACE)
	return ast.NewBlock(pos, exprs)
}

func (p *Parser) parseIf() *ast.If {
	pos := p.pos()
	p.advance() // 'if'
	pred := p.parseExpr(LOWEST)
	p.expect(lexer.THEN)
	thenE := p.parseExpr(LOWEST)
	p.expect(lexer.ELSE)
	elseE := p.parseExpr(LOWEST)
	p.expect(lexer.FI)
	return ast.NewIf(pos, pred, thenE, elseE)
}

func (p *Parser) parseWhile() *ast.While {
	pos := p.pos()
	p.advance() // 'while'
	pred := p.parseExpr(LOWEST)
	p.expect(lexer.LOOP)
	body := p.parseExpr(LOWEST)
	p.expect(lexer.POOL)
	return ast.NewWhile(pos, pred, body)
}

// parseLet parses `let b1 [, b2 ...] in body`. Multiple comma-separated
// bindings desugar here into nested Let nodes, one per binding, so later
// phases only ever see a single-binding Let (ast.go's doc comment on Let).
func (p *Parser) parseLet() ast.Expr {
	p.advance() // 'let'
	type binding struct {
		pos  ast.Pos
		name string
		typ  string
		init ast.Expr
	}
	var bindings []binding
	for {
		pos := p.pos()
		name := ""
		if p.cur.Type == lexer.OBJECTID {
			name = p.cur.Literal
			p.advance()
		} else {
			p.errorf("expected identifier in let binding, found %s %q", p.cur.Type, p.cur.Literal)
		}
		p.expect(lexer.COLON)
		typ := ""
		if p.cur.Type == lexer.TYPEID || p.cur.Type == lexer.OBJECTID {
			typ = p.cur.Literal
			p.advance()
		} else {
			p.errorf("expected type in let binding, found %s %q", p.cur.Type, p.cur.Literal)
		}
		var init ast.Expr
		if p.cur.Type == lexer.ASSIGN {
			p.advance()
			init = p.parseExpr(ASSIGNPREC)
		}
		bindings = append(bindings, binding{pos: pos, name: name, typ: typ, init: init})
		if p.cur.Type != lexer.COMMA {
			break
		}
		p.advance()
	}
	p.expect(lexer.IN)
	body := p.parseExpr(LOWEST)

	for i := len(bindings) - 1; i >= 0; i-- {
		b := bindings[i]
		body = ast.NewLet(b.pos, b.name, b.typ, b.init, body)
	}
	return body
}

func (p *Parser) parseCase() *ast.Case {
	pos := p.pos()
	p.advance() // 'case'
	scrutinee := p.parseExpr(LOWEST)
	p.expect(lexer.OF)

	var branches []ast.CaseBranch
	for p.cur.Type != lexer.ESAC && p.cur.Type != lexer.EOF {
		branches = append(branches, p.parseCaseBranch())
		if !p.expect(lexer.SEMI) {
			break
		}
	}
	p.expect(lexer.ESAC)
	return ast.NewCase(pos, scrutinee, branches)
}

func (p *Parser) parseCaseBranch() ast.CaseBranch {
	pos := p.pos()
	name := ""
	if p.cur.Type == lexer.OBJECTID {
		name = p.cur.Literal
		p.advance()
	} else {
		p.errorf("expected identifier in case branch, found %s %q", p.cur.Type, p.cur.Literal)
	}
	p.expect(lexer.COLON)
	typ := ""
	if p.cur.Type == lexer.TYPEID || p.cur.Type == lexer.OBJECTID {
		typ = p.cur.Literal
		p.advance()
	} else {
		p.errorf("expected type in case branch, found %s %q", p.cur.Type, p.cur.Literal)
	}
	p.expect(lexer.DARROW)
	expr := p.parseExpr(LOWEST)
	return ast.CaseBranch{Name: name, Type: typ, Expr: expr, Pos: pos}
}

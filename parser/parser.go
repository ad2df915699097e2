package parser

import (
	"fmt"

	"github.com/qewer33/quetite/lexer"
)

// ParseError is a parse-time error pinned to a cursor, collected rather
// than raised immediately so a single parse can report several mistakes
// (mirrors the teacher's Parser.Errors collection, upgraded to a typed
// error per §7's structured-diagnostic requirement).
type ParseError struct {
	Message string
	Cursor  lexer.Cursor
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("[%s] parse error: %s", e.Cursor, e.Message)
}

// ParseWarning is a non-fatal parser diagnostic (currently only the
// >255-argument limit of §4.2).
type ParseWarning struct {
	Message string
	Cursor  lexer.Cursor
}

// anchors are the statement-boundary keywords the parser synchronizes to
// after a parse error, per §4.2's contract.
var anchors = map[lexer.TokenType]bool{
	lexer.FN: true, lexer.VAR: true, lexer.FOR: true,
	lexer.IF: true, lexer.WHILE: true, lexer.OBJ: true, lexer.RETURN: true,
}

const maxArgs = 255

// Parser performs recursive-descent, precedence-climbing parsing over a
// token stream, producing a Program or a list of parse errors.
type Parser struct {
	tokens []lexer.Token
	pos    int

	errors   []error
	warnings []ParseWarning
}

// NewParser tokenizes src and returns a Parser ready to Parse() it. Any
// lexical errors are folded into the parser's own error list so a single
// pass can report both.
func NewParser(src string) *Parser {
	tokens, lexErrs := lexer.NewLexer(src).Tokenize()
	p := &Parser{tokens: tokens}
	p.errors = append(p.errors, lexErrs...)
	return p
}

func (p *Parser) cur() lexer.Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos]
}

func (p *Parser) peekAt(offset int) lexer.Token {
	idx := p.pos + offset
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[idx]
}

func (p *Parser) advance() lexer.Token {
	tok := p.cur()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) check(tt lexer.TokenType) bool { return p.cur().Type == tt }

func (p *Parser) match(types ...lexer.TokenType) bool {
	for _, tt := range types {
		if p.check(tt) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) expect(tt lexer.TokenType, context string) (lexer.Token, bool) {
	if p.check(tt) {
		return p.advance(), true
	}
	p.errorf(p.cur().Cursor, "expected %s %s, got %s", tt, context, p.cur().Type)
	return p.cur(), false
}

func (p *Parser) errorf(cursor lexer.Cursor, format string, a ...interface{}) {
	p.errors = append(p.errors, &ParseError{Message: fmt.Sprintf(format, a...), Cursor: cursor})
}

func (p *Parser) warnf(cursor lexer.Cursor, format string, a ...interface{}) {
	p.warnings = append(p.warnings, ParseWarning{Message: fmt.Sprintf(format, a...), Cursor: cursor})
}

// skipEOLs consumes zero or more EOL tokens.
func (p *Parser) skipEOLs() {
	for p.check(lexer.EOL) {
		p.advance()
	}
}

// synchronize discards tokens until the next EOL or an anchoring
// keyword, so the parser can keep reporting further errors.
func (p *Parser) synchronize() {
	for !p.check(lexer.EOF) {
		if p.check(lexer.EOL) {
			p.advance()
			return
		}
		if anchors[p.cur().Type] {
			return
		}
		p.advance()
	}
}

// Parse runs the full grammar over the token stream and returns the
// resulting Program (nil if any error occurred), the accumulated errors,
// and the accumulated warnings — the `{ast?, errors?, error_count,
// warning_count}` contract of §4.2.
func (p *Parser) Parse() (*Program, []error, []ParseWarning) {
	prog := &Program{}
	p.skipEOLs()
	for !p.check(lexer.EOF) {
		stmt := p.parseDeclaration()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
		if !p.check(lexer.EOF) && !p.check(lexer.EOL) {
			p.errorf(p.cur().Cursor, "expected end of line, got %s", p.cur().Type)
			p.synchronize()
		}
		p.skipEOLs()
	}
	if len(p.errors) > 0 {
		return nil, p.errors, p.warnings
	}
	return prog, nil, p.warnings
}

func (p *Parser) parseDeclaration() Stmt {
	switch p.cur().Type {
	case lexer.VAR:
		return p.parseVarDecl()
	case lexer.FN:
		return p.parseFuncDecl(false)
	case lexer.OBJ:
		return p.parseObjDecl()
	default:
		return p.parseStatement()
	}
}

// parseVarDecl implements `"var" IDENT ("=" expr)? ("while" while-tail)?`.
// The optional trailing "while" fuses the declaration with a loop whose
// pre-declaration runs exactly once, before the condition is first
// tested — the `var i = 0 while i < n step i++ do ... end` idiom.
func (p *Parser) parseVarDecl() Stmt {
	start := p.advance().Cursor // 'var'
	name, ok := p.expect(lexer.IDENT, "after 'var'")
	if !ok {
		p.synchronize()
		return nil
	}
	var init Expr
	if p.match(lexer.ASSIGN) {
		init = p.parseExpression()
	}
	decl := &VarStmt{base: base{start}, Name: name.Lexeme, Init: init}
	if p.check(lexer.WHILE) {
		p.advance()
		cond := p.parseExpression()
		var step Expr
		if p.match(lexer.STEP) {
			step = p.parseExpression()
		}
		body := p.parseStatement()
		return &WhileStmt{base: base{start}, PreDecl: decl, Cond: cond, Step: step, Body: body}
	}
	return decl
}

func (p *Parser) parseStatement() Stmt {
	switch p.cur().Type {
	case lexer.RETURN:
		return p.parseReturn()
	case lexer.BREAK:
		c := p.advance().Cursor
		return &BreakStmt{base{c}}
	case lexer.CONTINUE:
		c := p.advance().Cursor
		return &ContinueStmt{base{c}}
	case lexer.THROW:
		c := p.advance().Cursor
		return &ThrowStmt{base{c}, p.parseExpression()}
	case lexer.USE:
		c := p.advance().Cursor
		return &UseStmt{base{c}, p.parseExpression()}
	case lexer.DO:
		return p.parseBlock()
	case lexer.IF:
		return p.parseIf()
	case lexer.WHILE:
		return p.parseWhile()
	case lexer.FOR:
		return p.parseForIn()
	case lexer.TRY:
		return p.parseTry()
	default:
		return p.parseExprStatement()
	}
}

func (p *Parser) parseExprStatement() Stmt {
	cursor := p.cur().Cursor
	expr := p.parseExpression()
	return &ExprStmt{base{cursor}, expr}
}

// parseBlock parses `do (statement EOL+)* end`.
func (p *Parser) parseBlock() Stmt {
	start, _ := p.expect(lexer.DO, "to start block")
	block := &BlockStmt{base: base{start.Cursor}}
	p.skipEOLs()
	for !p.check(lexer.END) && !p.check(lexer.EOF) {
		stmt := p.parseDeclaration()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		if !p.check(lexer.END) && !p.check(lexer.EOF) {
			p.expect(lexer.EOL, "after statement")
		}
		p.skipEOLs()
	}
	p.expect(lexer.END, "to close block")
	return block
}

func (p *Parser) parseIf() Stmt {
	start := p.advance().Cursor // 'if'
	cond := p.parseExpression()
	then := p.parseStatement()
	var els Stmt
	save := p.pos
	p.skipEOLs()
	if p.check(lexer.ELSE) {
		p.advance()
		els = p.parseStatement()
	} else {
		p.pos = save
	}
	return &IfStmt{base{start}, cond, then, els}
}

// parseWhile parses the `while-tail` production: `expr ("step" expr)?
// statement`, with an optional leading `var` pre-declaration already
// consumed by the caller when written as `var x = 0 while ...`.
func (p *Parser) parseWhile() Stmt {
	start := p.advance().Cursor // 'while'
	cond := p.parseExpression()
	var step Expr
	if p.match(lexer.STEP) {
		step = p.parseExpression()
	}
	body := p.parseStatement()
	return &WhileStmt{base: base{start}, Cond: cond, Step: step, Body: body}
}

func (p *Parser) parseForIn() Stmt {
	start := p.advance().Cursor // 'for'
	elem, _ := p.expect(lexer.IDENT, "after 'for'")
	indexName := ""
	if p.match(lexer.COMMA) {
		idx, _ := p.expect(lexer.IDENT, "after ',' in for-in header")
		indexName = idx.Lexeme
	}
	p.expect(lexer.IN, "in for-in header")
	iterable := p.parseExpression()
	body := p.parseStatement()
	return &ForInStmt{base{start}, elem.Lexeme, indexName, iterable, body}
}

func (p *Parser) parseTry() Stmt {
	start := p.advance().Cursor // 'try'
	lineForm := p.check(lexer.EOL)
	clause := func() Stmt {
		if !lineForm {
			return p.parseStatement()
		}
		block := &BlockStmt{base: base{p.cur().Cursor}}
		for p.skipEOLs(); !p.check(lexer.CATCH) && !p.check(lexer.ENSURE) && !p.check(lexer.END) && !p.check(lexer.EOF); p.skipEOLs() {
			block.Statements = append(block.Statements, p.parseDeclaration())
		}
		return block
	}
	body := clause()
	stmt := &TryStmt{base: base{start}, Body: body}
	p.skipEOLs()
	if p.check(lexer.CATCH) {
		p.advance()
		if p.check(lexer.IDENT) {
			stmt.KindName = p.advance().Lexeme
			if p.check(lexer.IDENT) {
				stmt.ValueName = p.advance().Lexeme
			}
		}
		stmt.Catch = clause()
	}
	p.skipEOLs()
	if p.check(lexer.ENSURE) {
		p.advance()
		stmt.Ensure = clause()
	}
	if lineForm {
		p.expect(lexer.END, "to close try statement")
	}
	return stmt
}

func (p *Parser) parseReturn() Stmt {
	start := p.advance().Cursor // 'return'
	var value Expr
	if !p.check(lexer.EOL) && !p.check(lexer.EOF) && !p.check(lexer.END) {
		value = p.parseExpression()
	}
	return &ReturnStmt{base{start}, value}
}

func (p *Parser) parseFuncDecl(bound bool) Stmt {
	start := p.advance().Cursor // 'fn'
	name, _ := p.expect(lexer.IDENT, "for function name")
	p.expect(lexer.LPAREN, "after function name")
	var params []string
	warning := ""
	if !p.check(lexer.RPAREN) {
		for {
			if p.match(lexer.SELF) {
				params = append(params, "self")
			} else if param, ok := p.expect(lexer.IDENT, "in parameter list"); ok {
				params = append(params, param.Lexeme)
			}
			if !p.match(lexer.COMMA) {
				break
			}
		}
	}
	if len(params) > maxArgs {
		warning = fmt.Sprintf("function %q declares more than %d parameters", name.Lexeme, maxArgs)
		p.warnf(start, warning)
	}
	p.expect(lexer.RPAREN, "to close parameter list")
	body := p.parseBlock().(*BlockStmt)
	return &FuncDeclStmt{base{start}, name.Lexeme, params, body, bound, warning}
}

func (p *Parser) parseObjDecl() Stmt {
	start := p.advance().Cursor // 'obj'
	name, _ := p.expect(lexer.IDENT, "for object name")
	obj := &ObjDeclStmt{base: base{start}, Name: name.Lexeme}
	p.expect(lexer.DO, "after object name")
	p.skipEOLs()
	for p.check(lexer.FN) {
		method := p.parseFuncDecl(true).(*FuncDeclStmt)
		obj.Methods = append(obj.Methods, method)
		p.skipEOLs()
	}
	p.expect(lexer.END, "to close object declaration")
	return obj
}

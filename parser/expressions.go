package parser

import (
	"strconv"

	"github.com/qewer33/quetite/lexer"
)

// parseExpression is the grammar's `expr` production: the entry point for
// any expression context.
func (p *Parser) parseExpression() Expr {
	return p.parseAssignment()
}

// parseAssignment implements `assignment := or ( ("=" | "+=" | "-=" |
// "++" | "--") assignment )?`, right-associative, with the desugar rules
// of §4.2: post-inc/dec become add-assign/sub-assign against a literal 1,
// and the target shape (identifier, property, index) picks the assign
// node kind. An invalid target is a parse error at the operator cursor.
func (p *Parser) parseAssignment() Expr {
	target := p.parseTernary()

	var op AssignOp
	var opCursor lexer.Cursor
	var rhs Expr

	switch p.cur().Type {
	case lexer.ASSIGN:
		opCursor = p.advance().Cursor
		op = OpAssign
		rhs = p.parseAssignment()
	case lexer.PLUS_ASSIGN:
		opCursor = p.advance().Cursor
		op = OpAddAssign
		rhs = p.parseAssignment()
	case lexer.MINUS_ASSIGN:
		opCursor = p.advance().Cursor
		op = OpSubAssign
		rhs = p.parseAssignment()
	case lexer.PLUS_PLUS:
		opCursor = p.advance().Cursor
		op = OpAddAssign
		rhs = &NumberLiteral{base{opCursor}, 1}
	case lexer.MINUS_MINUS:
		opCursor = p.advance().Cursor
		op = OpSubAssign
		rhs = &NumberLiteral{base{opCursor}, 1}
	default:
		return target
	}

	switch t := target.(type) {
	case *IdentifierExpr:
		return &AssignExpr{base{opCursor}, t.Name, op, rhs, nil}
	case *PropertyExpr:
		return &PropertySetExpr{base{opCursor}, t.Object, t.Name, op, rhs}
	case *IndexExpr:
		return &IndexSetExpr{base{opCursor}, t.Object, t.Index, op, rhs}
	default:
		p.errorf(opCursor, "invalid assignment target")
		return target
	}
}

// parseTernary sits between assignment and or: `cond ? then : else`. The
// grammar block of §4.2 omits a BNF row for it even though §4.4 specifies
// its evaluation semantics, so it is slotted here — looser than or/and so
// a bare boolean expression can head the condition, tighter than
// assignment so `x = a ? b : c` parses the ternary as the assigned value
// rather than splitting at the "?" . Right-associative, so `a ? b : c ?
// d : e` reads as `a ? b : (c ? d : e)`.
func (p *Parser) parseTernary() Expr {
	cond := p.parseOr()
	if p.check(lexer.QUESTION) {
		cursor := p.advance().Cursor
		then := p.parseTernary()
		p.expect(lexer.COLON, "in ternary expression")
		els := p.parseTernary()
		return &TernaryExpr{base{cursor}, cond, then, els}
	}
	return cond
}

func (p *Parser) parseOr() Expr {
	left := p.parseAnd()
	for p.check(lexer.OR) {
		cursor := p.advance().Cursor
		right := p.parseAnd()
		left = &LogicalExpr{base{cursor}, left, OpOr, right}
	}
	return left
}

func (p *Parser) parseAnd() Expr {
	left := p.parseEquality()
	for p.check(lexer.AND) {
		cursor := p.advance().Cursor
		right := p.parseEquality()
		left = &LogicalExpr{base{cursor}, left, OpAnd, right}
	}
	return left
}

func (p *Parser) parseEquality() Expr {
	left := p.parseComparison()
	for p.check(lexer.EQ) || p.check(lexer.NE) {
		opTok := p.advance()
		right := p.parseComparison()
		op := OpEq
		if opTok.Type == lexer.NE {
			op = OpNe
		}
		left = &BinaryExpr{base{opTok.Cursor}, left, op, right}
	}
	return left
}

func (p *Parser) parseComparison() Expr {
	left := p.parseRange()
	for p.check(lexer.GT) || p.check(lexer.GE) || p.check(lexer.LT) || p.check(lexer.LE) {
		opTok := p.advance()
		right := p.parseRange()
		var op BinaryOp
		switch opTok.Type {
		case lexer.GT:
			op = OpGt
		case lexer.GE:
			op = OpGe
		case lexer.LT:
			op = OpLt
		case lexer.LE:
			op = OpLe
		}
		left = &BinaryExpr{base{opTok.Cursor}, left, op, right}
	}
	return left
}

// parseRange implements `range := term ( (".." | "..=") term ("step"
// term)? )?`. Ranges do not chain (the grammar allows at most one).
func (p *Parser) parseRange() Expr {
	left := p.parseTerm()
	if p.check(lexer.DOTDOT) || p.check(lexer.DOTDOTEQ) {
		inclusive := p.cur().Type == lexer.DOTDOTEQ
		cursor := p.advance().Cursor
		end := p.parseTerm()
		var step Expr
		if p.match(lexer.STEP) {
			step = p.parseTerm()
		}
		return &RangeExpr{base{cursor}, left, end, inclusive, step}
	}
	return left
}

func (p *Parser) parseTerm() Expr {
	left := p.parseFactor()
	for p.check(lexer.PLUS) || p.check(lexer.MINUS) {
		opTok := p.advance()
		right := p.parseFactor()
		op := OpAdd
		if opTok.Type == lexer.MINUS {
			op = OpSub
		}
		left = &BinaryExpr{base{opTok.Cursor}, left, op, right}
	}
	return left
}

func (p *Parser) parseFactor() Expr {
	left := p.parseUnary()
	for p.check(lexer.STAR) || p.check(lexer.SLASH) || p.check(lexer.PERCENT) ||
		p.check(lexer.STARSTAR) || p.check(lexer.QUESTION2) {
		opTok := p.advance()
		right := p.parseUnary()
		var op BinaryOp
		switch opTok.Type {
		case lexer.STAR:
			op = OpMul
		case lexer.SLASH:
			op = OpDiv
		case lexer.PERCENT:
			op = OpMod
		case lexer.STARSTAR:
			op = OpPow
		case lexer.QUESTION2:
			op = OpNullCoalesce
		}
		left = &BinaryExpr{base{opTok.Cursor}, left, op, right}
	}
	return left
}

func (p *Parser) parseUnary() Expr {
	if p.check(lexer.BANG) || p.check(lexer.MINUS) {
		opTok := p.advance()
		right := p.parseUnary()
		op := OpNot
		if opTok.Type == lexer.MINUS {
			op = OpNegate
		}
		return &UnaryExpr{base{opTok.Cursor}, op, right}
	}
	return p.parseCall()
}

// parseCall implements `call := primary ( "(" args? ")" | "[" expr "]" |
// "." IDENT )*`, chaining postfix call/index/property operators.
func (p *Parser) parseCall() Expr {
	expr := p.parsePrimary()
	for {
		switch {
		case p.check(lexer.LPAREN):
			expr = p.finishCall(expr)
		case p.check(lexer.LBRACKET):
			cursor := p.advance().Cursor
			index := p.parseExpression()
			p.expect(lexer.RBRACKET, "to close index expression")
			expr = &IndexExpr{base{cursor}, expr, index}
		case p.check(lexer.DOT):
			cursor := p.advance().Cursor
			name, _ := p.expect(lexer.IDENT, "after '.'")
			expr = &PropertyExpr{base{cursor}, expr, name.Lexeme}
		default:
			return expr
		}
	}
}

func (p *Parser) finishCall(callee Expr) Expr {
	cursor := p.advance().Cursor // '('
	var args []Expr
	if !p.check(lexer.RPAREN) {
		for {
			args = append(args, p.parseExpression())
			if !p.match(lexer.COMMA) {
				break
			}
		}
	}
	p.expect(lexer.RPAREN, "to close call arguments")
	if len(args) > maxArgs {
		p.warnf(cursor, "call with more than %d arguments", maxArgs)
	}
	return &CallExpr{base{cursor}, callee, args}
}

// parsePrimary implements `list := "[" ... "]" | dict | primary` and
// `primary := NUMBER | STRING | BOOL | "Null" | "self" | IDENT | "(" expr
// ")"`.
func (p *Parser) parsePrimary() Expr {
	tok := p.cur()
	switch tok.Type {
	case lexer.NUMBER:
		p.advance()
		v, _ := strconv.ParseFloat(tok.Lexeme, 64)
		return &NumberLiteral{base{tok.Cursor}, v}
	case lexer.STRING:
		p.advance()
		return &StringLiteral{base{tok.Cursor}, tok.Lexeme}
	case lexer.TRUE:
		p.advance()
		return &BooleanLiteral{base{tok.Cursor}, true}
	case lexer.FALSE:
		p.advance()
		return &BooleanLiteral{base{tok.Cursor}, false}
	case lexer.NULL:
		p.advance()
		return &NullLiteral{base{tok.Cursor}}
	case lexer.SELF:
		p.advance()
		return &SelfExpr{base: base{tok.Cursor}}
	case lexer.PRINT:
		// `print` is a reserved keyword (§2) but is called exactly like an
		// ordinary global function (`print(x)`), so it parses as a plain
		// identifier reference to the native the standard library installs.
		p.advance()
		return &IdentifierExpr{base: base{tok.Cursor}, Name: "print"}
	case lexer.IDENT:
		p.advance()
		return &IdentifierExpr{base: base{tok.Cursor}, Name: tok.Lexeme}
	case lexer.LPAREN:
		p.advance()
		inner := p.parseExpression()
		p.expect(lexer.RPAREN, "to close parenthesized expression")
		return &GroupingExpr{base{tok.Cursor}, inner}
	case lexer.LBRACKET:
		return p.parseListLiteral()
	case lexer.LBRACE:
		return p.parseDictLiteral()
	default:
		p.errorf(tok.Cursor, "unexpected token %s in expression", tok.Type)
		p.advance()
		return &NullLiteral{base{tok.Cursor}}
	}
}

func (p *Parser) parseListLiteral() Expr {
	start := p.advance().Cursor // '['
	list := &ListExpr{base: base{start}}
	if !p.check(lexer.RBRACKET) {
		for {
			list.Elements = append(list.Elements, p.parseExpression())
			if !p.match(lexer.COMMA) {
				break
			}
		}
	}
	p.expect(lexer.RBRACKET, "to close list literal")
	return list
}

func (p *Parser) parseDictLiteral() Expr {
	start := p.advance().Cursor // '{'
	dict := &DictExpr{base: base{start}}
	if !p.check(lexer.RBRACE) {
		for {
			key := p.parseExpression()
			p.expect(lexer.COLON, "after dict key")
			value := p.parseExpression()
			dict.Keys = append(dict.Keys, key)
			dict.Values = append(dict.Values, value)
			if !p.match(lexer.COMMA) {
				break
			}
		}
	}
	p.expect(lexer.RBRACE, "to close dict literal")
	return dict
}

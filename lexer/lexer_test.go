package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func tokenTypes(tokens []Token) []TokenType {
	types := make([]TokenType, len(tokens))
	for i, t := range tokens {
		types[i] = t.Type
	}
	return types
}

func TestTokenizeSimpleAssignment(t *testing.T) {
	tokens, errs := NewLexer(`var x = 2`).Tokenize()
	assert.Empty(t, errs)
	assert.Equal(t, []TokenType{VAR, IDENT, ASSIGN, NUMBER, EOL, EOF}, tokenTypes(tokens))
}

func TestTokenizeLongestMatchOperators(t *testing.T) {
	tokens, errs := NewLexer(`a ??= b..=c`).Tokenize()
	assert.Empty(t, errs)
	// a ??= b..=c is not valid grammar, but the lexer should still longest-match
	// each operator independently: ?? then = , then ..= as one token
	types := tokenTypes(tokens)
	assert.Contains(t, types, QUESTION2)
	assert.Contains(t, types, DOTDOTEQ)
}

func TestTokenizeRangeOperators(t *testing.T) {
	tokens, _ := NewLexer(`0..5 0..=5`).Tokenize()
	types := tokenTypes(tokens)
	assert.Contains(t, types, DOTDOT)
	assert.Contains(t, types, DOTDOTEQ)
}

func TestTokenizeStringEscapes(t *testing.T) {
	tokens, errs := NewLexer(`"a\nb\"c\q"`).Tokenize()
	assert.Empty(t, errs)
	assert.Equal(t, "a\nb\"c\\q", tokens[0].Lexeme)
}

func TestTokenizeUnterminatedStringIsError(t *testing.T) {
	_, errs := NewLexer(`"abc`).Tokenize()
	assert.Len(t, errs, 1)
}

func TestTokenizeKeywords(t *testing.T) {
	tokens, _ := NewLexer(`fn obj self Null true false`).Tokenize()
	assert.Equal(t, []TokenType{FN, OBJ, SELF, NULL, TRUE, FALSE, EOL, EOF}, tokenTypes(tokens))
}

func TestTokenizeLineComment(t *testing.T) {
	tokens, _ := NewLexer("var x = 1 # trailing comment\nvar y = 2").Tokenize()
	types := tokenTypes(tokens)
	assert.Equal(t, []TokenType{VAR, IDENT, ASSIGN, NUMBER, EOL, VAR, IDENT, ASSIGN, NUMBER, EOL, EOF}, types)
}

func TestTokenizeBlankLinesCollapseToOneEOL(t *testing.T) {
	tokens, _ := NewLexer("var x = 1\n\n\nvar y = 2").Tokenize()
	eolCount := 0
	for _, tok := range tokens {
		if tok.Type == EOL {
			eolCount++
		}
	}
	assert.Equal(t, 2, eolCount)
}

func TestCursorsAdvanceAcrossLines(t *testing.T) {
	tokens, _ := NewLexer("var x\nvar y").Tokenize()
	var yTok Token
	for _, tok := range tokens {
		if tok.Lexeme == "y" {
			yTok = tok
		}
	}
	assert.Equal(t, 2, yTok.Cursor.Line)
}

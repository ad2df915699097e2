package function

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/qewer33/quetite/parser"
	"github.com/qewer33/quetite/scope"
)

func TestFunctionDisplayAndArity(t *testing.T) {
	body := &parser.BlockStmt{}
	fn := New("add", []string{"a", "b"}, body, scope.New(nil), false)
	assert.Equal(t, "<fn add>", fn.Display())
	assert.Equal(t, 2, fn.Arity())
	assert.False(t, fn.Bound())
	assert.True(t, fn.Truthy())
}

func TestBoundMethodFlag(t *testing.T) {
	fn := New("init", []string{"self", "x"}, &parser.BlockStmt{}, scope.New(nil), true)
	assert.True(t, fn.Bound())
}

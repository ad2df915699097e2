package std

import (
	"strings"

	"github.com/qewer33/quetite/lexer"
	"github.com/qewer33/quetite/objects"
)

// installStringProto wires the string prototype's methods, grounded on
// the teacher's std/strings.go native set, wrapping Go's strings
// package directly since no third-party string library appears
// anywhere in the example pack.
func installStringProto(p *objects.Prototype) {
	p.Define("upper", 0, strUpper)
	p.Define("lower", 0, strLower)
	p.Define("trim", 0, strTrim)
	p.Define("split", 1, strSplit)
	p.Define("replace", 2, strReplace)
	p.Define("contains", 1, strContains)
	p.Define("index_of", 1, strIndexOf)
	p.Define("starts_with", 1, strStartsWith)
	p.Define("ends_with", 1, strEndsWith)
	p.Define("repeat", 1, strRepeat)
}

func asString(recv objects.Value, cursor lexer.Cursor) (*objects.String, *objects.Signal) {
	s, ok := recv.(*objects.String)
	if !ok {
		return nil, objects.NewError(objects.ErrKindType, cursor, "expected a string receiver, got %s", recv.Kind())
	}
	return s, nil
}

func argString(v objects.Value, cursor lexer.Cursor, what string) (string, *objects.Signal) {
	s, ok := v.(*objects.String)
	if !ok {
		return "", objects.NewError(objects.ErrKindType, cursor, "%s must be a string, got %s", what, v.Kind())
	}
	return s.Value, nil
}

func strUpper(_ objects.Runtime, recv objects.Value, _ []objects.Value) (objects.Value, *objects.Signal) {
	s, sig := asString(recv, lexer.Cursor{})
	if sig != nil {
		return nil, sig
	}
	return objects.NewString(strings.ToUpper(s.Value)), nil
}

func strLower(_ objects.Runtime, recv objects.Value, _ []objects.Value) (objects.Value, *objects.Signal) {
	s, sig := asString(recv, lexer.Cursor{})
	if sig != nil {
		return nil, sig
	}
	return objects.NewString(strings.ToLower(s.Value)), nil
}

func strTrim(_ objects.Runtime, recv objects.Value, _ []objects.Value) (objects.Value, *objects.Signal) {
	s, sig := asString(recv, lexer.Cursor{})
	if sig != nil {
		return nil, sig
	}
	return objects.NewString(strings.TrimSpace(s.Value)), nil
}

func strSplit(_ objects.Runtime, recv objects.Value, args []objects.Value) (objects.Value, *objects.Signal) {
	s, sig := asString(recv, lexer.Cursor{})
	if sig != nil {
		return nil, sig
	}
	sep, sig := argString(args[0], lexer.Cursor{}, "split separator")
	if sig != nil {
		return nil, sig
	}
	parts := strings.Split(s.Value, sep)
	elems := make([]objects.Value, len(parts))
	for i, p := range parts {
		elems[i] = objects.NewString(p)
	}
	return objects.NewList(elems...), nil
}

func strReplace(_ objects.Runtime, recv objects.Value, args []objects.Value) (objects.Value, *objects.Signal) {
	s, sig := asString(recv, lexer.Cursor{})
	if sig != nil {
		return nil, sig
	}
	old, sig := argString(args[0], lexer.Cursor{}, "replace old")
	if sig != nil {
		return nil, sig
	}
	newS, sig := argString(args[1], lexer.Cursor{}, "replace new")
	if sig != nil {
		return nil, sig
	}
	return objects.NewString(strings.ReplaceAll(s.Value, old, newS)), nil
}

func strContains(_ objects.Runtime, recv objects.Value, args []objects.Value) (objects.Value, *objects.Signal) {
	s, sig := asString(recv, lexer.Cursor{})
	if sig != nil {
		return nil, sig
	}
	sub, sig := argString(args[0], lexer.Cursor{}, "contains argument")
	if sig != nil {
		return nil, sig
	}
	return objects.Boolean(strings.Contains(s.Value, sub)), nil
}

func strIndexOf(_ objects.Runtime, recv objects.Value, args []objects.Value) (objects.Value, *objects.Signal) {
	s, sig := asString(recv, lexer.Cursor{})
	if sig != nil {
		return nil, sig
	}
	sub, sig := argString(args[0], lexer.Cursor{}, "index_of argument")
	if sig != nil {
		return nil, sig
	}
	return objects.Number(strings.Index(s.Value, sub)), nil
}

func strStartsWith(_ objects.Runtime, recv objects.Value, args []objects.Value) (objects.Value, *objects.Signal) {
	s, sig := asString(recv, lexer.Cursor{})
	if sig != nil {
		return nil, sig
	}
	prefix, sig := argString(args[0], lexer.Cursor{}, "starts_with argument")
	if sig != nil {
		return nil, sig
	}
	return objects.Boolean(strings.HasPrefix(s.Value, prefix)), nil
}

func strEndsWith(_ objects.Runtime, recv objects.Value, args []objects.Value) (objects.Value, *objects.Signal) {
	s, sig := asString(recv, lexer.Cursor{})
	if sig != nil {
		return nil, sig
	}
	suffix, sig := argString(args[0], lexer.Cursor{}, "ends_with argument")
	if sig != nil {
		return nil, sig
	}
	return objects.Boolean(strings.HasSuffix(s.Value, suffix)), nil
}

func strRepeat(_ objects.Runtime, recv objects.Value, args []objects.Value) (objects.Value, *objects.Signal) {
	s, sig := asString(recv, lexer.Cursor{})
	if sig != nil {
		return nil, sig
	}
	n, ok := args[0].(objects.Number)
	if !ok || n < 0 {
		return nil, objects.NewError(objects.ErrKindType, lexer.Cursor{}, "repeat count must be a non-negative number")
	}
	return objects.NewString(strings.Repeat(s.Value, int(n))), nil
}

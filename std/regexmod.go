package std

import (
	"regexp"

	"github.com/qewer33/quetite/objects"
)

// newRegexModule builds the regex module over stdlib regexp, grounded
// on the teacher's std/regex.go (match_regex/find_regex/
// findall_regex/replace_regex/split_regex).
func newRegexModule() *objects.Object {
	b := newModuleBuilder("regex")

	b.define("match", 2, regexMatch)
	b.define("find", 2, regexFind)
	b.define("find_all", 2, regexFindAll)
	b.define("replace", 3, regexReplace)
	b.define("split", 2, regexSplit)

	return b.obj
}

func regexCompile(v objects.Value) (*regexp.Regexp, *objects.Signal) {
	pat, ok := v.(*objects.String)
	if !ok {
		return nil, objects.NewError(objects.ErrKindType, zeroCursor, "regex pattern must be a string")
	}
	re, err := regexp.Compile(pat.Value)
	if err != nil {
		return nil, objects.NewError(objects.ErrKindValue, zeroCursor, "invalid regex %q: %v", pat.Value, err)
	}
	return re, nil
}

func regexMatch(_ objects.Runtime, _ objects.Value, args []objects.Value) (objects.Value, *objects.Signal) {
	re, sig := regexCompile(args[0])
	if sig != nil {
		return nil, sig
	}
	s, ok := args[1].(*objects.String)
	if !ok {
		return nil, objects.NewError(objects.ErrKindType, zeroCursor, "regex.match() subject must be a string")
	}
	return objects.Boolean(re.MatchString(s.Value)), nil
}

func regexFind(_ objects.Runtime, _ objects.Value, args []objects.Value) (objects.Value, *objects.Signal) {
	re, sig := regexCompile(args[0])
	if sig != nil {
		return nil, sig
	}
	s, ok := args[1].(*objects.String)
	if !ok {
		return nil, objects.NewError(objects.ErrKindType, zeroCursor, "regex.find() subject must be a string")
	}
	m := re.FindString(s.Value)
	if m == "" && !re.MatchString(s.Value) {
		return objects.NullValue, nil
	}
	return objects.NewString(m), nil
}

func regexFindAll(_ objects.Runtime, _ objects.Value, args []objects.Value) (objects.Value, *objects.Signal) {
	re, sig := regexCompile(args[0])
	if sig != nil {
		return nil, sig
	}
	s, ok := args[1].(*objects.String)
	if !ok {
		return nil, objects.NewError(objects.ErrKindType, zeroCursor, "regex.find_all() subject must be a string")
	}
	matches := re.FindAllString(s.Value, -1)
	elems := make([]objects.Value, len(matches))
	for i, m := range matches {
		elems[i] = objects.NewString(m)
	}
	return objects.NewList(elems...), nil
}

func regexReplace(_ objects.Runtime, _ objects.Value, args []objects.Value) (objects.Value, *objects.Signal) {
	re, sig := regexCompile(args[0])
	if sig != nil {
		return nil, sig
	}
	s, ok := args[1].(*objects.String)
	if !ok {
		return nil, objects.NewError(objects.ErrKindType, zeroCursor, "regex.replace() subject must be a string")
	}
	repl, ok := args[2].(*objects.String)
	if !ok {
		return nil, objects.NewError(objects.ErrKindType, zeroCursor, "regex.replace() replacement must be a string")
	}
	return objects.NewString(re.ReplaceAllString(s.Value, repl.Value)), nil
}

func regexSplit(_ objects.Runtime, _ objects.Value, args []objects.Value) (objects.Value, *objects.Signal) {
	re, sig := regexCompile(args[0])
	if sig != nil {
		return nil, sig
	}
	s, ok := args[1].(*objects.String)
	if !ok {
		return nil, objects.NewError(objects.ErrKindType, zeroCursor, "regex.split() subject must be a string")
	}
	parts := re.Split(s.Value, -1)
	elems := make([]objects.Value, len(parts))
	for i, p := range parts {
		elems[i] = objects.NewString(p)
	}
	return objects.NewList(elems...), nil
}

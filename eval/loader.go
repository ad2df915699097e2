package eval

import (
	"io"
	"os"
	"path/filepath"

	"github.com/qewer33/quetite/lexer"
	"github.com/qewer33/quetite/objects"
	"github.com/qewer33/quetite/parser"
	"github.com/qewer33/quetite/resolver"
	"github.com/qewer33/quetite/scope"
)

// Seeder installs the standard library into a freshly created global
// scope. It is supplied by the caller (cmd/quetite) rather than
// imported directly, so the eval package never depends on std.
type Seeder func(globals *scope.Scope, protos *objects.Prototypes)

// Loader implements §4.5's module loading algorithm: canonicalize the
// path, serve a completed module from cache, detect a cycle against
// modules still mid-load, and otherwise parse/resolve/run the file in
// its own Evaluator before caching its globals.
type Loader struct {
	loaded   map[string]*scope.Scope
	visiting map[string]bool

	protos *objects.Prototypes
	out    io.Writer
	seed   Seeder
}

// NewLoader creates a Loader sharing protos and out with every module
// it loads.
func NewLoader(protos *objects.Prototypes, out io.Writer, seed Seeder) *Loader {
	return &Loader{
		loaded:   make(map[string]*scope.Scope),
		visiting: make(map[string]bool),
		protos:   protos,
		out:      out,
		seed:     seed,
	}
}

// Load resolves path relative to callerDir, returning the module's
// global scope. A path already fully loaded is a cache hit, not a
// cycle error — only a path still mid-load (present in `visiting`)
// triggers the cycle error (resolved Open Question — see DESIGN.md).
func (l *Loader) Load(path, callerDir string) (*scope.Scope, *objects.Signal) {
	abs := resolveModulePath(path, callerDir)

	if g, ok := l.loaded[abs]; ok {
		return g, nil
	}
	if l.visiting[abs] {
		return nil, objects.NewError(objects.ErrKindValue, lexer.Cursor{}, "circular use of %q", abs)
	}

	l.visiting[abs] = true
	defer delete(l.visiting, abs)

	src, err := os.ReadFile(abs)
	if err != nil {
		return nil, objects.NewError(objects.ErrKindIO, lexer.Cursor{}, "cannot read %q: %v", abs, err)
	}

	prog, perrs, _ := parser.NewParser(string(src)).Parse()
	if len(perrs) > 0 {
		return nil, objects.NewError(objects.ErrKindNative, lexer.Cursor{}, "parse error in %q: %v", abs, perrs[0])
	}

	prog, rerrs, _ := resolver.Resolve(prog)
	if len(rerrs) > 0 {
		return nil, objects.NewError(objects.ErrKindNative, lexer.Cursor{}, "resolve error in %q: %v", abs, rerrs[0])
	}

	sub := New(l.out, filepath.Dir(abs), l, l.protos)
	if l.seed != nil {
		l.seed(sub.Globals, l.protos)
	}
	if sig := sub.Run(prog); sig != nil {
		return nil, sig
	}

	l.loaded[abs] = sub.Globals
	return sub.Globals, nil
}

// resolveModulePath joins a `use` path against the importing file's
// directory and canonicalizes it, so the same module reached two
// different ways still hits the cache/cycle maps under one key.
func resolveModulePath(path, callerDir string) string {
	joined := path
	if !filepath.IsAbs(path) {
		joined = filepath.Join(callerDir, path)
	}
	if abs, err := filepath.Abs(joined); err == nil {
		return filepath.Clean(abs)
	}
	return filepath.Clean(joined)
}

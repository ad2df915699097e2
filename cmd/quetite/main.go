// Quetite is a tree-walking interpreter: `quetite FILE` runs a source
// file through the lexer, parser, resolver, and evaluator pipeline.
// Grounded on the teacher's main/main.go file-execution path (read the
// file, run it, color-coded error/result output) but built on
// `github.com/spf13/cobra` rather than the teacher's hand-rolled
// os.Args switch — REPL and server modes the teacher's main supports
// are out of scope per spec.md's Non-goals and are not built.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/qewer33/quetite/config"
	"github.com/qewer33/quetite/eval"
	"github.com/qewer33/quetite/lexer"
	"github.com/qewer33/quetite/objects"
	"github.com/qewer33/quetite/parser"
	"github.com/qewer33/quetite/reporter"
	"github.com/qewer33/quetite/resolver"
	"github.com/qewer33/quetite/std"
)

var (
	dumpTokens bool
	dumpAST    bool
	verbose    bool
)

func main() {
	root := &cobra.Command{
		Use:   "quetite FILE",
		Short: "Run a Quetite source file",
		Args:  cobra.ExactArgs(1),
		RunE:  run,
	}
	root.Flags().BoolVar(&dumpTokens, "dump-tokens", false, "print the token stream and exit")
	root.Flags().BoolVar(&dumpAST, "dump-ast", false, "print the parsed AST and exit")
	root.Flags().BoolVarP(&verbose, "verbose", "v", false, "print parser and resolver warnings")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	path := args[0]
	rep := reporter.NewTerminal()

	src, err := os.ReadFile(path)
	if err != nil {
		rep.Error(fmt.Sprintf("cannot read %q: %v", path, err))
		os.Exit(1)
	}
	source := string(src)

	dir := filepath.Dir(path)
	cfg, err := config.Load(filepath.Join(dir, ".quetite.yaml"))
	if err != nil {
		rep.Error(fmt.Sprintf("invalid .quetite.yaml: %v", err))
		os.Exit(1)
	}
	verbose = verbose || cfg.Verbose

	if dumpTokens {
		toks, errs := lexer.NewLexer(source).Tokenize()
		for _, t := range toks {
			fmt.Println(t.String())
		}
		if len(errs) > 0 {
			reportErrors(rep, path, errs)
			os.Exit(1)
		}
		return nil
	}

	prog, perrs, pwarns := parser.NewParser(source).Parse()
	if verbose {
		for _, w := range pwarns {
			rep.WarningAt(w.Message, path, w.Cursor, "")
		}
	}
	if len(perrs) > 0 {
		reportErrors(rep, path, perrs)
		os.Exit(1)
	}

	if dumpAST {
		fmt.Printf("%#v\n", prog)
		return nil
	}

	prog, rerrs, rwarns := resolver.Resolve(prog)
	if verbose {
		for _, w := range rwarns {
			rep.WarningAt(w.Message, path, w.Cursor, "")
		}
	}
	if len(rerrs) > 0 {
		reportErrors(rep, path, rerrs)
		os.Exit(1)
	}

	protos := &objects.Prototypes{}
	loader := eval.NewLoader(protos, os.Stdout, std.Install)
	ev := eval.New(os.Stdout, dir, loader, protos)
	std.Install(ev.Globals, protos)

	if sig := ev.Run(prog); sig != nil {
		rep.ErrorAt(signalMessage(sig), sig.CatchKindName(), path, sig.Cursor, "")
		os.Exit(1)
	}
	return nil
}

func signalMessage(sig *objects.Signal) string {
	if sig.Kind == objects.SigUserError {
		return sig.Thrown.Display()
	}
	return sig.Message
}

func reportErrors(rep reporter.Reporter, path string, errs []error) {
	for _, e := range errs {
		rep.Error(fmt.Sprintf("%s: %v", path, e))
	}
}

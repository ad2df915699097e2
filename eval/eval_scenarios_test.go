package eval

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qewer33/quetite/objects"
	"github.com/qewer33/quetite/parser"
	"github.com/qewer33/quetite/resolver"
	"github.com/qewer33/quetite/scope"
)

// seedTestGlobals installs just enough of a standard library for these
// scenario tests without importing std — print plus nothing else, since none of the six
// seed scenarios in spec.md §8 touches a domain module.
func seedTestGlobals(globals *scope.Scope, out *bytes.Buffer) {
	globals.Define("print", objects.NewNative("print", 1, false, func(rt objects.Runtime, _ objects.Value, args []objects.Value) (objects.Value, *objects.Signal) {
		out.WriteString(args[0].Display())
		out.WriteString("\n")
		return objects.NullValue, nil
	}))
}

// run lexes, parses, resolves, and evaluates src in its own Evaluator,
// returning everything printed and the terminating signal (nil on
// normal completion).
func run(t *testing.T, dir, src string) (string, *objects.Signal) {
	t.Helper()
	prog, perrs, _ := parser.NewParser(src).Parse()
	require.Empty(t, perrs)
	prog, rerrs, _ := resolver.Resolve(prog)
	require.Empty(t, rerrs)

	var out bytes.Buffer
	protos := &objects.Prototypes{}
	loader := NewLoader(protos, &out, func(globals *scope.Scope, _ *objects.Prototypes) {
		seedTestGlobals(globals, &out)
	})
	ev := New(&out, dir, loader, protos)
	seedTestGlobals(ev.Globals, &out)

	sig := ev.Run(prog)
	return out.String(), sig
}

// --- Seed scenario (A): var + arithmetic + print ---

func TestScenarioA_VarArithmeticPrint(t *testing.T) {
	out, sig := run(t, ".", "var x = 2\nprint(x + 3)\n")
	require.Nil(t, sig)
	assert.Equal(t, "5\n", out)
}

// --- Seed scenario (B): closure capture by reference ---

func TestScenarioB_ClosureCapturesEnclosingEnv(t *testing.T) {
	src := "fn mk(n) do\n  fn inner() do return n end\n  return inner\nend\nvar f = mk(7)\nprint(f())\n"
	out, sig := run(t, ".", src)
	require.Nil(t, sig)
	assert.Equal(t, "7\n", out)
}

// --- Seed scenario (C): object construction, implicit receiver, bound methods ---

func TestScenarioC_ObjectConstructionAndBoundMethod(t *testing.T) {
	src := "obj P do\n  fn init(self, x) do self.x = x end\n  fn get(self) do return self.x end\nend\nvar p = P(10)\nprint(p.get())\n"
	out, sig := run(t, ".", src)
	require.Nil(t, sig)
	assert.Equal(t, "10\n", out)
}

// --- Seed scenario (D): range + for-in + compound assign ---

func TestScenarioD_RangeForInCompoundAssign(t *testing.T) {
	src := "var acc = 0\nfor i in 0..5 do acc += i end\nprint(acc)\n"
	out, sig := run(t, ".", src)
	require.Nil(t, sig)
	assert.Equal(t, "10\n", out)
}

// --- Seed scenario (E): try/catch/ensure ordering ---

func TestScenarioE_TryCatchEnsureOrdering(t *testing.T) {
	src := "try\n  throw \"boom\"\ncatch k v\n  print(k)\n  print(v)\nensure\n  print(\"done\")\nend\n"
	out, sig := run(t, ".", src)
	require.Nil(t, sig)
	assert.Equal(t, "UserErr\nboom\ndone\n", out)
}

// --- Seed scenario (F): two-file use, cycle, and IO error ---

func TestScenarioF_UseAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.qte"), []byte("fn add(x,y) do return x+y end\n"), 0o644))
	aPath := filepath.Join(dir, "a.qte")
	require.NoError(t, os.WriteFile(aPath, []byte("use \"b.qte\"\nprint(add(1,2))\n"), 0o644))

	src, err := os.ReadFile(aPath)
	require.NoError(t, err)
	out, sig := run(t, dir, string(src))
	require.Nil(t, sig)
	assert.Equal(t, "3\n", out)
}

func TestScenarioF_MissingUseTargetIsIOError(t *testing.T) {
	dir := t.TempDir()
	src := "use \"missing.qte\"\nprint(1)\n"
	_, sig := run(t, dir, src)
	require.NotNil(t, sig)
	assert.Equal(t, objects.SigError, sig.Kind)
	assert.Equal(t, objects.ErrKindIO, sig.ErrKind)
}

func TestUseCycleIsValueError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.qte"), []byte("use \"b.qte\"\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.qte"), []byte("use \"a.qte\"\n"), 0o644))

	src := "use \"a.qte\"\n"
	_, sig := run(t, dir, src)
	require.NotNil(t, sig)
	assert.Equal(t, objects.SigError, sig.Kind)
	assert.Equal(t, objects.ErrKindValue, sig.ErrKind)
}

// --- Invariant 5: use is load-once, same globals identity ---

func TestUseIsLoadOnceWithSharedGlobalsIdentity(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "counter.qte"), []byte("var hits = 0\nhits += 1\n"), 0o644))

	protos := &objects.Prototypes{}
	var out bytes.Buffer
	loader := NewLoader(protos, &out, func(globals *scope.Scope, _ *objects.Prototypes) {
		seedTestGlobals(globals, &out)
	})

	g1, sig := loader.Load("counter.qte", dir)
	require.Nil(t, sig)
	g2, sig := loader.Load("counter.qte", dir)
	require.Nil(t, sig)

	assert.Same(t, g1, g2)
	hits, ok := g1.Get("hits")
	require.True(t, ok)
	assert.Equal(t, objects.Number(1), hits)
}

// --- Invariant 7: break/continue/return scoping ---

func TestBreakExitsOnlyInnermostLoop(t *testing.T) {
	src := "var seen = 0\nfor i in 0..3 do\n  for j in 0..3 do\n    if j == 1 do break end\n    seen += 1\n  end\nend\nprint(seen)\n"
	out, sig := run(t, ".", src)
	require.Nil(t, sig)
	// Inner loop runs j=0 (seen+=1) then breaks at j=1, for each of 3 outer iterations.
	assert.Equal(t, "3\n", out)
}

func TestContinueAdvancesOnlyInnermostLoop(t *testing.T) {
	src := "var seen = 0\nfor i in 0..2 do\n  for j in 0..3 do\n    if j == 1 do continue end\n    seen += 1\n  end\nend\nprint(seen)\n"
	out, sig := run(t, ".", src)
	require.Nil(t, sig)
	// Each outer iteration: j=0 counts, j=1 skipped, j=2 counts -> 2 per outer, 2 outers.
	assert.Equal(t, "4\n", out)
}

func TestReturnExitsFunctionAcrossNestedLoopsAndTry(t *testing.T) {
	src := "fn f() do\n  for i in 0..3 do\n    try\n      return i\n    ensure\n      print(\"ensure\")\n    end\n  end\n  return -1\nend\nprint(f())\n"
	out, sig := run(t, ".", src)
	require.Nil(t, sig)
	assert.Equal(t, "ensure\n0\n", out)
}

// --- Invariant 8: ensure runs exactly once on every exit path ---

func TestEnsureRunsOnceOnNormalCompletion(t *testing.T) {
	src := "try\n  print(\"body\")\nensure\n  print(\"ensure\")\nend\n"
	out, sig := run(t, ".", src)
	require.Nil(t, sig)
	assert.Equal(t, "body\nensure\n", out)
}

func TestEnsureRunsOnceOnCaughtError(t *testing.T) {
	src := "try\n  throw \"x\"\ncatch k v\n  print(\"caught\")\nensure\n  print(\"ensure\")\nend\n"
	out, sig := run(t, ".", src)
	require.Nil(t, sig)
	assert.Equal(t, "caught\nensure\n", out)
}

func TestEnsureRunsOnceOnPropagatedError(t *testing.T) {
	src := "try\n  throw \"x\"\nensure\n  print(\"ensure\")\nend\n"
	_, sig := run(t, ".", src)
	require.NotNil(t, sig)
	assert.Equal(t, objects.SigUserError, sig.Kind)
}

// --- Static access to a bound method on an object descriptor errors ---

func TestStaticAccessToBoundMethodIsValueError(t *testing.T) {
	src := "obj P do\n  fn get(self) do return 1 end\nend\nprint(P.get)\n"
	_, sig := run(t, ".", src)
	require.NotNil(t, sig)
	assert.Equal(t, objects.SigError, sig.Kind)
	assert.Equal(t, objects.ErrKindValue, sig.ErrKind)
}

// --- Invariant 9: range bounds with and without step ---

func TestRangeExclusiveUpperBound(t *testing.T) {
	src := "var n = 0\nfor i in 0..5 do n += 1 end\nprint(n)\n"
	out, sig := run(t, ".", src)
	require.Nil(t, sig)
	assert.Equal(t, "5\n", out)
}

func TestRangeInclusiveUpperBoundWhenReachable(t *testing.T) {
	src := "var n = 0\nfor i in 0..=5 do n += 1 end\nprint(n)\n"
	out, sig := run(t, ".", src)
	require.Nil(t, sig)
	assert.Equal(t, "6\n", out)
}

func TestRangeWithStep(t *testing.T) {
	src := "var last = -1\nfor i in 0..10 step 3 do last = i end\nprint(last)\n"
	out, sig := run(t, ".", src)
	require.Nil(t, sig)
	assert.Equal(t, "9\n", out)
}

// --- Invariant 4: pure functions are deterministic across repeated calls ---

func TestPureFunctionIsDeterministic(t *testing.T) {
	src := "fn square(x) do return x * x end\nprint(square(6))\nprint(square(6))\n"
	out, sig := run(t, ".", src)
	require.Nil(t, sig)
	assert.Equal(t, "36\n36\n", out)
}

// --- Invariant 2: resolver distance lets an out-of-scope read fail at runtime ---

func TestUnresolvedGlobalReadFailsAtRuntimeNotAtParseOrResolve(t *testing.T) {
	_, sig := run(t, ".", "print(never_defined)\n")
	require.NotNil(t, sig)
	assert.Equal(t, objects.SigError, sig.Kind)
	assert.Equal(t, objects.ErrKindName, sig.ErrKind)
}

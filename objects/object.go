package objects

import (
	"fmt"
	"io"
)

// Callable is the capability every invokable value answers: a stable name
// (used in diagnostics and callable-equality) and an arity.
type Callable interface {
	Value
	CallableName() string
	Arity() int
}

// Method is a Callable additionally tagged with the bound flag the spec's
// object and prototype method records carry: a bound method is invoked
// with an implicit receiver (self, or a prototype's primitive receiver)
// prepended to its arguments.
//
// EffectiveArity is the caller-visible argument count with the receiver
// excluded. For a Native this equals Arity() (a bound native's Invoke
// already takes the receiver as a separate parameter, never counted in
// ArityN). For a bound user-defined method the receiver is instead an
// ordinary leading parameter in source (conventionally named "self"),
// so EffectiveArity is Arity() minus one. The distinction is why a
// single Arity()-based formula can't serve both kinds — see DESIGN.md.
type Method interface {
	Callable
	Bound() bool
	EffectiveArity() int
}

// Runtime is the capability natives need to call back into user code (a
// sort comparator, a custom iterator), mirroring the teacher's
// std.Runtime contract.
type Runtime interface {
	Call(callee Value, args []Value) (Value, *Signal)
	// Output returns the stream print() writes to.
	Output() io.Writer
}

// NativeFunc is the signature every built-in method or function
// implements. receiver is non-nil only when the native is invoked bound
// (a prototype method, or a bound native object method).
type NativeFunc func(rt Runtime, receiver Value, args []Value) (Value, *Signal)

// Native is a built-in callable implemented in Go.
type Native struct {
	NameStr   string
	ArityN    int
	BoundFlag bool
	Fn        NativeFunc
}

func NewNative(name string, arity int, bound bool, fn NativeFunc) *Native {
	return &Native{NameStr: name, ArityN: arity, BoundFlag: bound, Fn: fn}
}

func (n *Native) Kind() string          { return "callable" }
func (n *Native) Display() string       { return fmt.Sprintf("<native %s>", n.NameStr) }
func (n *Native) Truthy() bool          { return true }
func (n *Native) CallableName() string  { return n.NameStr }
func (n *Native) Arity() int            { return n.ArityN }
func (n *Native) Bound() bool           { return n.BoundFlag }
func (n *Native) EffectiveArity() int   { return n.ArityN }

// Invoke calls the native with an explicit receiver, used when a bound
// native method has been looked up via prototype dispatch or instance
// method binding.
func (n *Native) Invoke(rt Runtime, receiver Value, args []Value) (Value, *Signal) {
	return n.Fn(rt, receiver, args)
}

// BoundMethod wraps a Method together with a pre-bound receiver, produced
// by instance method binding (§4.4 "Method binding") and by prototype
// dispatch (§4.4 "Prototype dispatch"). Calling it prepends Receiver to
// the argument list the underlying Method expects, exactly as a Python- or
// Lua-style bound method would.
type BoundMethod struct {
	Receiver Value
	Underlying Method
}

func NewBoundMethod(receiver Value, m Method) *BoundMethod {
	return &BoundMethod{Receiver: receiver, Underlying: m}
}

func (b *BoundMethod) Kind() string   { return "callable" }
func (b *BoundMethod) Truthy() bool   { return true }
func (b *BoundMethod) CallableName() string { return b.Underlying.CallableName() }
func (b *BoundMethod) Arity() int     { return b.Underlying.EffectiveArity() }
func (b *BoundMethod) Bound() bool    { return true }

func (b *BoundMethod) Display() string {
	return fmt.Sprintf("<bound method %s>", b.Underlying.CallableName())
}

// Object is a class-like descriptor: a name plus a method table. It is
// also the value bound for an `obj` declaration, and is itself invoked as
// an instance constructor (§4.4 "Dispatch on calls").
type Object struct {
	Name    string
	Methods map[string]Method
}

func NewObject(name string) *Object {
	return &Object{Name: name, Methods: make(map[string]Method)}
}

func (o *Object) Kind() string    { return "object" }
func (o *Object) Display() string { return fmt.Sprintf("<obj %s>", o.Name) }
func (o *Object) Truthy() bool    { return true }

func (o *Object) Method(name string) (Method, bool) {
	m, ok := o.Methods[name]
	return m, ok
}

// Constructor returns the object's `init` method, if any.
func (o *Object) Constructor() (Method, bool) {
	return o.Method("init")
}

// Instance is a reference to its object descriptor plus a mutable field
// map; per §3's invariants, a single instance is shared-mutable identity
// across every value that references it.
type Instance struct {
	Class  *Object
	Fields map[string]Value
}

func NewInstance(class *Object) *Instance {
	return &Instance{Class: class, Fields: make(map[string]Value)}
}

func (i *Instance) Kind() string    { return "instance" }
func (i *Instance) Display() string { return fmt.Sprintf("<%s instance>", i.Class.Name) }
func (i *Instance) Truthy() bool    { return true }

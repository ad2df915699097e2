package objects

// Prototype is a per-kind method table consulted when a property is read
// off a primitive value. It may consult a single Parent on lookup miss,
// per §3's "prototype set" fixture description.
type Prototype struct {
	Name    string
	Methods map[string]*Native
	Parent  *Prototype
}

func NewPrototype(name string, parent *Prototype) *Prototype {
	return &Prototype{Name: name, Methods: make(map[string]*Native), Parent: parent}
}

func (p *Prototype) Define(name string, arity int, fn NativeFunc) {
	p.Methods[name] = NewNative(name, arity, true, fn)
}

// Lookup finds a method by name, walking exactly one parent hop on miss
// (per §3: "an optional parent prototype consulted on lookup miss").
func (p *Prototype) Lookup(name string) (*Native, bool) {
	if m, ok := p.Methods[name]; ok {
		return m, true
	}
	if p.Parent != nil {
		return p.Parent.Methods[name], p.Parent.Methods[name] != nil
	}
	return nil, false
}

// Prototypes is the process-wide, read-only-after-construction fixture
// holding the five primitive prototypes, all falling back to a shared
// Value prototype for cross-kind methods (to_string, type_of).
type Prototypes struct {
	Value   *Prototype
	List    *Prototype
	String  *Prototype
	Number  *Prototype
	Boolean *Prototype
	Dict    *Prototype
}

// ForKind returns the prototype governing a value's kind, or nil if the
// kind has no prototype (object, instance, callable, null).
func (p *Prototypes) ForKind(v Value) *Prototype {
	switch v.(type) {
	case *List:
		return p.List
	case *String:
		return p.String
	case Number:
		return p.Number
	case Boolean:
		return p.Boolean
	case *Dict:
		return p.Dict
	default:
		return nil
	}
}

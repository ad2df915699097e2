package std

import "github.com/qewer33/quetite/objects"

// installPrototypes builds the five primitive prototypes and wires each
// to the shared Value prototype as its one-hop fallback parent (§3:
// "an optional parent prototype consulted on lookup miss"), so
// the to_string/type_of cross-kind methods live once on Value
// instead of being duplicated on every kind.
func installPrototypes(protos *objects.Prototypes) {
	value := objects.NewPrototype("value", nil)
	installValueProto(value)

	list := objects.NewPrototype("list", value)
	installListProto(list)

	str := objects.NewPrototype("string", value)
	installStringProto(str)

	num := objects.NewPrototype("number", value)
	installNumberProto(num)

	boolProto := objects.NewPrototype("boolean", value)
	installBooleanProto(boolProto)

	dict := objects.NewPrototype("dict", value)
	installDictProto(dict)

	protos.Value = value
	protos.List = list
	protos.String = str
	protos.Number = num
	protos.Boolean = boolProto
	protos.Dict = dict
}

// installValueProto defines the methods every kind inherits when its
// own prototype misses: to_string and type_of, mirroring the core
// global builtins of the same name but available as receiver.method()
// syntax too.
func installValueProto(p *objects.Prototype) {
	p.Define("to_string", 0, func(_ objects.Runtime, recv objects.Value, _ []objects.Value) (objects.Value, *objects.Signal) {
		return objects.NewString(recv.Display()), nil
	})
	p.Define("type_of", 0, func(_ objects.Runtime, recv objects.Value, _ []objects.Value) (objects.Value, *objects.Signal) {
		return objects.NewString(recv.Kind()), nil
	})
}

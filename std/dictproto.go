package std

import "github.com/qewer33/quetite/objects"

// installDictProto wires the dict prototype's methods. Quetite's data
// model has no separate map/set kinds (see DESIGN.md on dropping the
// teacher's std/map.go, std/maps.go, std/set.go), so dict carries the
// keys/values/has/remove surface those modules would otherwise cover.
func installDictProto(p *objects.Prototype) {
	p.Define("keys", 0, dictKeys)
	p.Define("values", 0, dictValues)
	p.Define("has", 1, dictHas)
	p.Define("remove", 1, dictRemove)
	p.Define("each", 1, dictEach)
}

func asDict(recv objects.Value) (*objects.Dict, *objects.Signal) {
	d, ok := recv.(*objects.Dict)
	if !ok {
		return nil, objects.NewError(objects.ErrKindType, zeroCursor, "expected a dict receiver, got %s", recv.Kind())
	}
	return d, nil
}

func dictKeys(_ objects.Runtime, recv objects.Value, _ []objects.Value) (objects.Value, *objects.Signal) {
	d, sig := asDict(recv)
	if sig != nil {
		return nil, sig
	}
	out := make([]objects.Value, len(d.Keys))
	copy(out, d.Keys)
	return objects.NewList(out...), nil
}

func dictValues(_ objects.Runtime, recv objects.Value, _ []objects.Value) (objects.Value, *objects.Signal) {
	d, sig := asDict(recv)
	if sig != nil {
		return nil, sig
	}
	out := make([]objects.Value, 0, len(d.Keys))
	for _, k := range d.Keys {
		v, _ := d.Get(k)
		out = append(out, v)
	}
	return objects.NewList(out...), nil
}

func dictHas(_ objects.Runtime, recv objects.Value, args []objects.Value) (objects.Value, *objects.Signal) {
	d, sig := asDict(recv)
	if sig != nil {
		return nil, sig
	}
	_, ok := d.Get(args[0])
	return objects.Boolean(ok), nil
}

// dictRemove deletes key if present. Dict has no exported delete, so
// this rebuilds Pairs/Keys with key excluded — dicts are not expected
// to be large enough for this to matter.
func dictRemove(_ objects.Runtime, recv objects.Value, args []objects.Value) (objects.Value, *objects.Signal) {
	d, sig := asDict(recv)
	if sig != nil {
		return nil, sig
	}
	hk, ok := objects.HashKey(args[0])
	if !ok {
		return objects.Boolean(false), nil
	}
	if _, existed := d.Pairs[hk]; !existed {
		return objects.Boolean(false), nil
	}
	delete(d.Pairs, hk)
	for i, k := range d.Keys {
		if kh, _ := objects.HashKey(k); kh == hk {
			d.Keys = append(d.Keys[:i], d.Keys[i+1:]...)
			break
		}
	}
	return objects.Boolean(true), nil
}

func dictEach(rt objects.Runtime, recv objects.Value, args []objects.Value) (objects.Value, *objects.Signal) {
	d, sig := asDict(recv)
	if sig != nil {
		return nil, sig
	}
	for _, k := range d.Keys {
		v, _ := d.Get(k)
		if _, sig := rt.Call(args[0], []objects.Value{k, v}); sig != nil {
			return nil, sig
		}
	}
	return objects.NullValue, nil
}

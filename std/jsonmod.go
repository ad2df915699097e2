package std

import (
	"encoding/json"

	"github.com/qewer33/quetite/objects"
)

// newJSONModule builds the json module over stdlib encoding/json,
// grounded on the teacher's std/json.go json_string_to_map/
// map_to_json_string pair, generalized from dicts to null, boolean,
// number, string, list and dict values; callables, objects and
// instances are not encoded.
func newJSONModule() *objects.Object {
	b := newModuleBuilder("json")

	b.define("encode", 1, jsonEncode)
	b.define("decode", 1, jsonDecode)

	return b.obj
}

func jsonEncode(_ objects.Runtime, _ objects.Value, args []objects.Value) (objects.Value, *objects.Signal) {
	native, sig := toGoValue(args[0])
	if sig != nil {
		return nil, sig
	}
	out, err := json.Marshal(native)
	if err != nil {
		return nil, objects.NewError(objects.ErrKindValue, zeroCursor, "json.encode() failed: %v", err)
	}
	return objects.NewString(string(out)), nil
}

func jsonDecode(_ objects.Runtime, _ objects.Value, args []objects.Value) (objects.Value, *objects.Signal) {
	s, ok := args[0].(*objects.String)
	if !ok {
		return nil, objects.NewError(objects.ErrKindType, zeroCursor, "json.decode() argument must be a string")
	}
	var decoded interface{}
	if err := json.Unmarshal([]byte(s.Value), &decoded); err != nil {
		return nil, objects.NewError(objects.ErrKindValue, zeroCursor, "json.decode() failed: %v", err)
	}
	return fromGoValue(decoded), nil
}

// toGoValue converts a Quetite value into a plain Go value that
// encoding/json can marshal. Callables, objects, and instances have no
// JSON representation and are rejected.
func toGoValue(v objects.Value) (interface{}, *objects.Signal) {
	switch val := v.(type) {
	case objects.Null:
		return nil, nil
	case objects.Boolean:
		return bool(val), nil
	case objects.Number:
		return float64(val), nil
	case *objects.String:
		return val.Value, nil
	case *objects.List:
		out := make([]interface{}, len(val.Elements))
		for i, e := range val.Elements {
			gv, sig := toGoValue(e)
			if sig != nil {
				return nil, sig
			}
			out[i] = gv
		}
		return out, nil
	case *objects.Dict:
		out := make(map[string]interface{}, len(val.Keys))
		for _, k := range val.Keys {
			ks, ok := k.(*objects.String)
			if !ok {
				return nil, objects.NewError(objects.ErrKindType, zeroCursor, "json.encode() requires string dict keys, found %s", k.Kind())
			}
			ev, _ := val.Get(k)
			gv, sig := toGoValue(ev)
			if sig != nil {
				return nil, sig
			}
			out[ks.Value] = gv
		}
		return out, nil
	default:
		return nil, objects.NewError(objects.ErrKindType, zeroCursor, "json.encode() cannot serialize a %s", v.Kind())
	}
}

// fromGoValue converts a decoded JSON value (as produced by
// json.Unmarshal into an interface{}) into a Quetite value.
func fromGoValue(v interface{}) objects.Value {
	switch val := v.(type) {
	case nil:
		return objects.NullValue
	case bool:
		return objects.Boolean(val)
	case float64:
		return objects.Number(val)
	case string:
		return objects.NewString(val)
	case []interface{}:
		elems := make([]objects.Value, len(val))
		for i, e := range val {
			elems[i] = fromGoValue(e)
		}
		return objects.NewList(elems...)
	case map[string]interface{}:
		d := objects.NewDict()
		for k, e := range val {
			d.Set(objects.NewString(k), fromGoValue(e))
		}
		return d
	default:
		return objects.NullValue
	}
}

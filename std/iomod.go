package std

import (
	"os"

	"github.com/qewer33/quetite/objects"
)

// newIOModule builds the io module's file natives, generalized from
// the teacher's std/file_io.go read_file/write_file pair over stdlib
// os.ReadFile/os.WriteFile.
func newIOModule() *objects.Object {
	b := newModuleBuilder("io")

	b.define("read_file", 1, ioReadFile)
	b.define("write_file", 2, ioWriteFile)

	return b.obj
}

func ioReadFile(_ objects.Runtime, _ objects.Value, args []objects.Value) (objects.Value, *objects.Signal) {
	path, ok := args[0].(*objects.String)
	if !ok {
		return nil, objects.NewError(objects.ErrKindType, zeroCursor, "read_file() path must be a string")
	}
	content, err := os.ReadFile(path.Value)
	if err != nil {
		return nil, objects.NewError(objects.ErrKindIO, zeroCursor, "cannot read %q: %v", path.Value, err)
	}
	return objects.NewString(string(content)), nil
}

func ioWriteFile(_ objects.Runtime, _ objects.Value, args []objects.Value) (objects.Value, *objects.Signal) {
	path, ok := args[0].(*objects.String)
	if !ok {
		return nil, objects.NewError(objects.ErrKindType, zeroCursor, "write_file() path must be a string")
	}
	content, ok := args[1].(*objects.String)
	if !ok {
		return nil, objects.NewError(objects.ErrKindType, zeroCursor, "write_file() content must be a string")
	}
	if err := os.WriteFile(path.Value, []byte(content.Value), 0o644); err != nil {
		return nil, objects.NewError(objects.ErrKindIO, zeroCursor, "cannot write %q: %v", path.Value, err)
	}
	return objects.NullValue, nil
}

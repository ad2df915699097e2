package std

import (
	"time"

	"github.com/qewer33/quetite/objects"
)

// newTimeModule builds the time module, wrapping the teacher's
// std/time.go native style (now/now_ms/format_time) over stdlib time.
func newTimeModule() *objects.Object {
	b := newModuleBuilder("time")

	b.define("now", 0, func(_ objects.Runtime, _ objects.Value, _ []objects.Value) (objects.Value, *objects.Signal) {
		return objects.Number(time.Now().Unix()), nil
	})
	b.define("unix", 0, func(_ objects.Runtime, _ objects.Value, _ []objects.Value) (objects.Value, *objects.Signal) {
		return objects.Number(time.Now().UnixMilli()), nil
	})
	b.define("format", 2, timeFormat)

	return b.obj
}

// timeFormat renders a Unix-seconds timestamp with a Go reference-time
// layout string, matching the teacher's format_time(timestamp, layout)
// shape.
func timeFormat(_ objects.Runtime, _ objects.Value, args []objects.Value) (objects.Value, *objects.Signal) {
	ts, ok := args[0].(objects.Number)
	if !ok {
		return nil, objects.NewError(objects.ErrKindType, zeroCursor, "format() timestamp must be a number")
	}
	layout, ok := args[1].(*objects.String)
	if !ok {
		return nil, objects.NewError(objects.ErrKindType, zeroCursor, "format() layout must be a string")
	}
	t := time.Unix(int64(ts), 0).UTC()
	return objects.NewString(t.Format(layout.Value)), nil
}

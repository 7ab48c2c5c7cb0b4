package program

import (
	"fill-extrusion/math"
)

// boundValue is one recorded Binder call.
type boundValue struct {
	Type  SlotType
	Value any
}

// recordingBinder captures every uniform a record binds, in call order.
type recordingBinder struct {
	order  []string
	values map[string]boundValue
	dupes  []string
}

func newRecordingBinder() *recordingBinder {
	return &recordingBinder{values: make(map[string]boundValue)}
}

func (r *recordingBinder) set(name string, typ SlotType, v any) {
	if _, ok := r.values[name]; ok {
		r.dupes = append(r.dupes, name)
	}
	r.order = append(r.order, name)
	r.values[name] = boundValue{Type: typ, Value: v}
}

func (r *recordingBinder) Uniform1f(name string, v float32)         { r.set(name, Float, v) }
func (r *recordingBinder) Uniform2f(name string, v math.Vec2)       { r.set(name, Vec2, v) }
func (r *recordingBinder) Uniform3f(name string, v math.Vec3)       { r.set(name, Vec3, v) }
func (r *recordingBinder) UniformMatrix4f(name string, v math.Mat4) { r.set(name, Mat4, v) }
func (r *recordingBinder) Uniform1i(name string, v int32)           { r.set(name, Sampler, v) }

func bindAll(u Uniforms) *recordingBinder {
	r := newRecordingBinder()
	u.Bind(r)
	return r
}

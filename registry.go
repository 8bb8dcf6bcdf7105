package keyframe

import "reflect"

// Slot identifies one target binding: an object key plus an optional
// instance id. The empty instance is the default slot of an object.
type Slot struct {
	Object   string
	Instance string
}

// Registry tracks which host-owned target is currently attached to which
// slot. Attach and Detach are driven by the host's own lifecycle (mount and
// unmount notifications); the Animation only reads from it.
//
// A Registry is not safe for concurrent use. Hosts that attach from other
// goroutines must serialize those calls with evaluation.
type Registry struct {
	targets   map[Slot]any
	gens      map[Slot]uint64
	instances map[string][]string
	nextGen   uint64
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		targets:   make(map[Slot]any),
		gens:      make(map[Slot]uint64),
		instances: make(map[string][]string),
	}
}

// Attach binds target to (object, instance), replacing any target already
// there. Every attach gets a registry-unique generation, so the next
// evaluation writes every field afresh. A nil target detaches.
func (r *Registry) Attach(object, instance string, target any) {
	if isNilTarget(target) {
		r.Detach(object, instance)
		return
	}
	s := Slot{Object: object, Instance: instance}
	if _, ok := r.targets[s]; !ok {
		r.instances[object] = append(r.instances[object], instance)
	}
	r.targets[s] = target
	r.nextGen++
	r.gens[s] = r.nextGen
}

// Detach unbinds (object, instance). Detaching an empty slot is a no-op.
func (r *Registry) Detach(object, instance string) {
	s := Slot{Object: object, Instance: instance}
	if _, ok := r.targets[s]; !ok {
		return
	}
	delete(r.targets, s)
	delete(r.gens, s)

	list := r.instances[object]
	for i, inst := range list {
		if inst == instance {
			copy(list[i:], list[i+1:])
			list[len(list)-1] = ""
			list = list[:len(list)-1]
			break
		}
	}
	if len(list) == 0 {
		delete(r.instances, object)
	} else {
		r.instances[object] = list
	}
}

// Target returns the target attached to (object, instance), if any.
func (r *Registry) Target(object, instance string) (any, bool) {
	t, ok := r.targets[Slot{Object: object, Instance: instance}]
	return t, ok
}

// Instances returns the attached instance ids of object in attach order. The
// returned slice MUST NOT be mutated.
func (r *Registry) Instances(object string) []string {
	return r.instances[object]
}

// Len returns the number of attached targets.
func (r *Registry) Len() int {
	return len(r.targets)
}

// generation returns the generation of the slot's current binding, or 0 when
// nothing is attached. Generations are never reused, so a later reattach is
// always distinguishable from the previous binding.
func (r *Registry) generation(s Slot) uint64 {
	return r.gens[s]
}

// Ref is the attach/detach pair for one slot, ready to be wired into a host's
// lifecycle hooks.
type Ref struct {
	Attach func(target any)
	Detach func()
}

// Set attaches target, or detaches when target is nil. Hosts that report
// mount and unmount through a single callback can use Set directly.
func (ref Ref) Set(target any) {
	if isNilTarget(target) {
		ref.Detach()
		return
	}
	ref.Attach(target)
}

// Ref returns the attach/detach pair for object. An optional instance id
// selects a non-default slot.
func (r *Registry) Ref(object string, instance ...string) Ref {
	inst := ""
	if len(instance) > 0 {
		inst = instance[0]
	}
	return Ref{
		Attach: func(target any) { r.Attach(object, inst, target) },
		Detach: func() { r.Detach(object, inst) },
	}
}

// disposable is implemented by targets that can be torn down by the host
// without a matching Detach, such as *Node.
type disposable interface {
	IsDisposed() bool
}

// pruneDisposed detaches every target of object that reports itself disposed.
func (r *Registry) pruneDisposed(object string) {
	list := r.instances[object]
	for i := len(list) - 1; i >= 0; i-- {
		inst := list[i]
		if d, ok := r.targets[Slot{Object: object, Instance: inst}].(disposable); ok && d.IsDisposed() {
			r.Detach(object, inst)
		}
	}
}

// isNilTarget reports whether target is nil or a typed nil pointer, which
// hosts commonly pass on unmount.
func isNilTarget(target any) bool {
	if target == nil {
		return true
	}
	v := reflect.ValueOf(target)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return v.IsNil()
	}
	return false
}

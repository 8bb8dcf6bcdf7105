package keyframe

import "time"

// WriteEvent describes one committed target write.
type WriteEvent struct {
	Object   string
	Instance string
	Field    string
	Value    any
	Previous any
	Time     float64
}

// WriteSink is the interface for optional write forwarding (for example into
// an ECS world). When set on an Animation, every committed write is emitted.
type WriteSink interface {
	EmitWrite(event WriteEvent)
}

// FrameStats counts what one Evaluate call did.
type FrameStats struct {
	Time       float64
	Fields     int // object fields evaluated
	Writes     int // target writes committed
	Suppressed int // writes skipped because the value did not change
	Unbound    int // object fields with no attached target
}

type cacheKey struct {
	slot  Slot
	field string
}

type cacheEntry struct {
	value any
	gen   uint64
}

// pendingWrite is one write computed during the draft phase of Evaluate.
type pendingWrite struct {
	key    cacheKey
	cap    Capability
	target any
	value  any
	prev   any
	gen    uint64
}

// Animation evaluates a Timeline at caller-supplied times and writes the
// results into the targets attached to its Registry.
//
// There is no internal clock: callers invoke Evaluate themselves, or use a
// Player. Successive calls are expected to move forward in time; rewinding
// is allowed but the prev argument passed to writes then simply reflects
// whatever was written last.
type Animation struct {
	timeline *Timeline
	registry *Registry
	sink     WriteSink
	debug    bool

	cache    map[cacheKey]cacheEntry
	pending  []pendingWrite
	snapshot Snapshot
	stats    FrameStats
}

// NewAnimation binds tl to reg. A nil reg gets a fresh Registry.
// Panics if tl is nil.
func NewAnimation(tl *Timeline, reg *Registry) *Animation {
	if tl == nil {
		panic("keyframe: cannot animate a nil timeline")
	}
	if reg == nil {
		reg = NewRegistry()
	}
	return &Animation{
		timeline: tl,
		registry: reg,
		cache:    make(map[cacheKey]cacheEntry),
	}
}

// Timeline returns the animation's compiled timeline.
func (a *Animation) Timeline() *Timeline {
	return a.timeline
}

// Registry returns the animation's target registry.
func (a *Animation) Registry() *Registry {
	return a.registry
}

// SetWriteSink sets the optional write sink. Nil disables forwarding.
func (a *Animation) SetWriteSink(sink WriteSink) {
	a.sink = sink
}

// Stats returns the counters of the most recent Evaluate call.
func (a *Animation) Stats() FrameStats {
	return a.stats
}

// Snapshot returns the field values published by the most recent Evaluate
// call, including fields of objects with no attached target.
func (a *Animation) Snapshot() Snapshot {
	return a.snapshot
}

// Evaluate computes every field at time t and writes changed values into the
// attached targets. It never fails: unbound objects are skipped, times outside
// the authored range clamp, and static fields yield their constant.
//
// Evaluation runs in two phases. The draft phase computes all values and the
// writes they require without touching any target; the commit phase then
// applies the writes, updates the last-applied cache and publishes the new
// snapshot. Targets never observe a half-evaluated frame, and writes that
// attach or detach targets cannot disturb the pass.
func (a *Animation) Evaluate(t float64) {
	var t0 time.Time
	if a.debug {
		t0 = time.Now()
	}

	stats := FrameStats{Time: t}
	values := make(map[fieldKey]any, len(a.snapshot.values))
	a.pending = a.pending[:0]

	tl := a.timeline
	for _, object := range tl.objects {
		tr := tl.tracks[object]
		a.registry.pruneDisposed(object)
		instances := a.registry.Instances(object)

		for _, name := range tr.names {
			ft := tr.fields[name]
			v := ft.At(t)
			stats.Fields++
			values[fieldKey{object: object, field: name}] = v

			if len(instances) == 0 {
				stats.Unbound++
				continue
			}
			for _, inst := range instances {
				slot := Slot{Object: object, Instance: inst}
				target, _ := a.registry.Target(object, inst)
				gen := a.registry.generation(slot)
				key := cacheKey{slot: slot, field: name}

				var prev any
				if c, ok := a.cache[key]; ok && c.gen == gen {
					if ft.cap.Equal(c.value, v) {
						stats.Suppressed++
						continue
					}
					prev = c.value
				}
				a.pending = append(a.pending, pendingWrite{
					key:    key,
					cap:    ft.cap,
					target: target,
					value:  v,
					prev:   prev,
					gen:    gen,
				})
			}
		}
	}

	for i := range a.pending {
		w := &a.pending[i]
		w.cap.Write(w.target, w.value, w.prev)
		a.cache[w.key] = cacheEntry{value: w.value, gen: w.gen}
		if a.sink != nil {
			a.sink.EmitWrite(WriteEvent{
				Object:   w.key.slot.Object,
				Instance: w.key.slot.Instance,
				Field:    w.key.field,
				Value:    w.value,
				Previous: w.prev,
				Time:     t,
			})
		}
		stats.Writes++
	}
	clear(a.pending)
	a.evictStale()

	a.snapshot = Snapshot{Time: t, values: values}
	a.stats = stats

	if a.debug {
		a.debugLog(stats, time.Since(t0))
	}
}

// evictStale drops cache entries whose slot has been detached or rebound
// since they were written.
func (a *Animation) evictStale() {
	for key, c := range a.cache {
		if a.registry.generation(key.slot) != c.gen {
			delete(a.cache, key)
		}
	}
}

// Reset forgets every last-applied value, so the next Evaluate writes all
// fields of all attached targets.
func (a *Animation) Reset() {
	clear(a.cache)
}

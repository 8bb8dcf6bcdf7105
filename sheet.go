package keyframe

// Sheet is the authoring form of an animation: for each object key, its
// keyframes in authoring order. Keyframes may share a time as long as they
// set different fields.
type Sheet map[string][]Keyframe

// Keyframe sets some fields of one object at one point in time.
type Keyframe struct {
	Time   float64
	Fields map[string]Entry
}

// Entry is one authored data point: a raw value, a raw value with a config
// override, or an inherit marker that repeats the previous value.
//
// Config applies to the segment that ends at this entry.
type Entry struct {
	Value   any
	Config  *ClipConfig
	Inherit bool
}

// Value returns an Entry holding a raw value.
func Value(v any) Entry {
	return Entry{Value: v}
}

// WithConfig returns an Entry holding a raw value and a config override for
// the segment ending at it.
func WithConfig(v any, cfg ClipConfig) Entry {
	return Entry{Value: v, Config: &cfg}
}

// Inherit returns an Entry that holds the previous resolved value, so a value
// can be kept flat across a span without repeating the literal.
func Inherit() Entry {
	return Entry{Inherit: true}
}

// Set appends a keyframe that sets one field of object at time t.
func (s Sheet) Set(object string, t float64, field string, e Entry) {
	s[object] = append(s[object], Keyframe{Time: t, Fields: map[string]Entry{field: e}})
}

// Add appends a keyframe with several fields for object.
func (s Sheet) Add(object string, kf Keyframe) {
	s[object] = append(s[object], kf)
}

package keyframe

import "sort"

type fieldKey struct {
	object string
	field  string
}

// Snapshot is the set of field values computed by one Evaluate call. Each
// Evaluate publishes a new Snapshot and never mutates an old one, so a
// Snapshot can be kept and read after later frames.
type Snapshot struct {
	Time   float64
	values map[fieldKey]any
}

// Value returns the store computed for object.field, if the field was
// evaluated.
func (s Snapshot) Value(object, field string) (any, bool) {
	v, ok := s.values[fieldKey{object: object, field: field}]
	return v, ok
}

// Float returns object.field as a float64. ok is false when the field is
// missing or holds another type.
func (s Snapshot) Float(object, field string) (v float64, ok bool) {
	raw, found := s.Value(object, field)
	if !found {
		return 0, false
	}
	v, ok = raw.(float64)
	return v, ok
}

// Len returns the number of evaluated fields.
func (s Snapshot) Len() int {
	return len(s.values)
}

// Fields returns the evaluated field names of object in sorted order.
func (s Snapshot) Fields(object string) []string {
	var names []string
	for k := range s.values {
		if k.object == object {
			names = append(names, k.field)
		}
	}
	sort.Strings(names)
	return names
}

package keyframe

import (
	"math"
	"sort"

	"github.com/tanema/gween"
)

// Point is one end of a Segment.
type Point struct {
	Time  float64
	Value any
}

// Segment interpolates one field between two points. Start.Time is strictly
// less than End.Time.
type Segment struct {
	Start  Point
	End    Point
	Config Config
}

// Progress returns the eased progress of the segment at time t. It is 0 up to
// the start of the transition window and 1 from its end onward; in between
// the segment's easing shapes it (and may overshoot [0, 1]).
func (s *Segment) Progress(t float64) float64 {
	raw := s.rawProgress(t)
	if raw <= 0 || raw >= 1 || s.Config.linear {
		return raw
	}
	tw := gween.New(0, 1, 1, s.Config.Easing)
	v, _ := tw.Set(float32(raw))
	return float64(v)
}

// rawProgress is the uneased position of t within the transition window,
// clamped to [0, 1].
func (s *Segment) rawProgress(t float64) float64 {
	from, to := s.Config.window(s.Start.Time, s.End.Time)
	if t <= from {
		return 0
	}
	if t >= to {
		return 1
	}
	return (t - from) / (to - from)
}

// FieldTrack is the compiled form of one field of one object: either a static
// value (a single authored point) or a contiguous run of segments.
type FieldTrack struct {
	Name     string
	cap      Capability
	static   bool
	value    any
	segments []Segment
}

// Static reports whether the field was authored at a single point and holds
// that value for all times.
func (f *FieldTrack) Static() bool {
	return f.static
}

// Value returns the constant store of a static field, or nil.
func (f *FieldTrack) Value() any {
	return f.value
}

// Segments returns the field's segments in time order. The returned slice
// MUST NOT be mutated.
func (f *FieldTrack) Segments() []Segment {
	return f.segments
}

// Capability returns the capability the field was compiled with.
func (f *FieldTrack) Capability() Capability {
	return f.cap
}

// At returns the field's store at time t. Times before the first segment hold
// its start value; times at or after the last segment's end hold its end value.
// NaN is treated as before the first segment.
func (f *FieldTrack) At(t float64) any {
	if f.static {
		return f.value
	}
	segs := f.segments
	if t < segs[0].Start.Time || math.IsNaN(t) {
		return segs[0].Start.Value
	}
	if t >= segs[len(segs)-1].End.Time {
		return segs[len(segs)-1].End.Value
	}
	i := sort.Search(len(segs), func(i int) bool { return segs[i].End.Time > t })
	s := &segs[i]
	if st, ok := f.cap.(stepper); ok && st.stepped() {
		if s.rawProgress(t) < 1 {
			return s.Start.Value
		}
		return s.End.Value
	}
	switch a := s.Progress(t); a {
	case 0:
		return s.Start.Value
	case 1:
		return s.End.Value
	default:
		return f.cap.Interpolate(s.Start.Value, s.End.Value, a)
	}
}

// span returns the first and last authored times of the field.
func (f *FieldTrack) span() (start, end float64) {
	if len(f.segments) == 0 {
		return 0, 0
	}
	return f.segments[0].Start.Time, f.segments[len(f.segments)-1].End.Time
}

// Track holds the compiled fields of one object.
type Track struct {
	Object string
	// Config is the merge of the library and object defaults. It may be
	// partial when field defaults are expected to fill the gaps.
	Config ClipConfig

	fields map[string]*FieldTrack
	names  []string
}

// Fields returns the names of the compiled fields in sorted order. The
// returned slice MUST NOT be mutated.
func (tr *Track) Fields() []string {
	return tr.names
}

// Field returns the compiled field with the given name, or nil.
func (tr *Track) Field(name string) *FieldTrack {
	return tr.fields[name]
}

// Timeline is the compiled, read-only form of a Sheet. It is safe to share
// between Animations.
type Timeline struct {
	tracks   map[string]*Track
	objects  []string
	start    float64
	end      float64
	hasRange bool
}

func newTimeline() *Timeline {
	return &Timeline{tracks: make(map[string]*Track)}
}

// Objects returns the compiled object keys in sorted order. The returned
// slice MUST NOT be mutated.
func (tl *Timeline) Objects() []string {
	return tl.objects
}

// Track returns the compiled track for object, or nil if the object was not
// compiled.
func (tl *Timeline) Track(object string) *Track {
	return tl.tracks[object]
}

// Start returns the earliest authored time across all segmented fields.
func (tl *Timeline) Start() float64 {
	return tl.start
}

// End returns the latest authored time across all segmented fields.
func (tl *Timeline) End() float64 {
	return tl.end
}

// Len returns the number of compiled objects.
func (tl *Timeline) Len() int {
	return len(tl.objects)
}

func (tl *Timeline) add(tr *Track) {
	tl.tracks[tr.Object] = tr
	tl.objects = append(tl.objects, tr.Object)
	for _, name := range tr.names {
		f := tr.fields[name]
		if f.static {
			continue
		}
		s, e := f.span()
		if !tl.hasRange || s < tl.start {
			tl.start = s
		}
		if !tl.hasRange || e > tl.end {
			tl.end = e
		}
		tl.hasRange = true
	}
}

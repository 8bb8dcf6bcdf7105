package keyframe

// probe is a test target that records every write made into it.
type probe struct {
	writes []probeWrite
}

type probeWrite struct {
	field   string
	value   float64
	prev    float64
	hasPrev bool
}

// count returns how many writes field received.
func (p *probe) count(field string) int {
	n := 0
	for _, w := range p.writes {
		if w.field == field {
			n++
		}
	}
	return n
}

// last returns the most recent write to field.
func (p *probe) last(field string) (probeWrite, bool) {
	for i := len(p.writes) - 1; i >= 0; i-- {
		if p.writes[i].field == field {
			return p.writes[i], true
		}
	}
	return probeWrite{}, false
}

// probeField is a linear float field that records writes into a *probe.
func probeField(name string) *Field[float64] {
	return &Field[float64]{
		ConvertFunc:     toFloat,
		InterpolateFunc: lerp,
		WriteFunc: func(target any, v, prev float64, hasPrev bool) {
			p := target.(*probe)
			p.writes = append(p.writes, probeWrite{field: name, value: v, prev: prev, hasPrev: hasPrev})
		},
	}
}

func probeFields(names ...string) FieldSet {
	fs := make(FieldSet, len(names))
	for _, name := range names {
		fs[name] = probeField(name)
	}
	return fs
}

// boxSheet is the canonical example: box.opacity at {0: 0, 1000: 1, 2000: inherit}.
func boxSheet() Sheet {
	s := Sheet{}
	s.Set("box", 0, "opacity", Value(0))
	s.Set("box", 1000, "opacity", Value(1))
	s.Set("box", 2000, "opacity", Inherit())
	return s
}

// mustCompile compiles and panics on any error. Only for sheets known to be valid.
func mustCompile(s Sheet, fields FieldSet, opts Options) *Timeline {
	tl, err := Compile(s, fields, opts)
	if err != nil {
		panic(err)
	}
	return tl
}

type sinkRecorder struct {
	events []WriteEvent
}

func (s *sinkRecorder) EmitWrite(e WriteEvent) {
	s.events = append(s.events, e)
}

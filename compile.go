package keyframe

import (
	"errors"
	"math"
	"sort"
)

// Options controls config resolution and failure isolation for Compile.
type Options struct {
	// Library is the lowest-precedence config level. Nil means
	// DefaultConfig(). A non-nil Library is used as given, so leaving an
	// option unset there makes every segment that no other level covers fail
	// with ConfigurationIncomplete.
	Library *ClipConfig

	// FieldDefaults apply per field name, across all objects.
	FieldDefaults map[string]ClipConfig

	// ObjectDefaults apply per object key, across all of its fields.
	ObjectDefaults map[string]ClipConfig

	// KeepValidFields keeps an object whose fields partly failed, minus the
	// failing fields. By default an object with any failure is dropped whole.
	KeepValidFields bool
}

// authored is one entry of one field, tagged with its keyframe time.
type authored struct {
	time  float64
	entry Entry
}

// Compile turns a sheet into a Timeline. Objects compile independently: a
// failing object is reported and left out (or trimmed, see
// Options.KeepValidFields) while the others compile normally. The returned
// timeline is never nil; the error is a *Report when anything failed.
func Compile(sheet Sheet, fields FieldSet, opts Options) (*Timeline, error) {
	lib := DefaultConfig()
	if opts.Library != nil {
		lib = *opts.Library
	}

	objects := make([]string, 0, len(sheet))
	for object := range sheet {
		objects = append(objects, object)
	}
	sort.Strings(objects)

	tl := newTimeline()
	report := &Report{}
	for _, object := range objects {
		tr, errs := compileObject(object, sheet[object], fields, lib, opts)
		if len(errs) > 0 {
			report.Errors = append(report.Errors, errs...)
			if !opts.KeepValidFields || len(tr.names) == 0 {
				report.Dropped = append(report.Dropped, object)
				continue
			}
		}
		if len(tr.names) == 0 {
			continue
		}
		tl.add(tr)
	}

	if len(report.Errors) == 0 {
		return tl, nil
	}
	return tl, report
}

func compileObject(object string, keyframes []Keyframe, fields FieldSet, lib ClipConfig, opts Options) (*Track, []*CompileError) {
	objectCfg := opts.ObjectDefaults[object]
	tr := &Track{
		Object: object,
		Config: Merge(lib, objectCfg),
		fields: make(map[string]*FieldTrack),
	}

	// Group entries per field, keeping authoring order within each field.
	byField := make(map[string][]authored)
	for _, kf := range keyframes {
		for name, e := range kf.Fields {
			byField[name] = append(byField[name], authored{time: kf.Time, entry: e})
		}
	}
	names := make([]string, 0, len(byField))
	for name := range byField {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []*CompileError
	for _, name := range names {
		levels := [3]ClipConfig{lib, opts.FieldDefaults[name], objectCfg}
		ft, ferrs := compileField(object, name, byField[name], fields[name], levels)
		if len(ferrs) > 0 {
			errs = append(errs, ferrs...)
			continue
		}
		tr.fields[name] = ft
		tr.names = append(tr.names, name)
	}
	return tr, errs
}

func compileField(object, name string, entries []authored, c Capability, levels [3]ClipConfig) (*FieldTrack, []*CompileError) {
	fail := func(kind ErrorKind, t float64, err error) *CompileError {
		return &CompileError{Kind: kind, Object: object, Field: name, Time: t, Err: err}
	}

	if c == nil {
		return nil, []*CompileError{fail(UnknownField, math.NaN(), ErrUnknownField)}
	}

	var errs []*CompileError
	for _, a := range entries {
		if math.IsNaN(a.time) || math.IsInf(a.time, 0) {
			errs = append(errs, fail(InvalidTime, a.time, ErrInvalidTime))
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].time < entries[j].time })
	for i := 1; i < len(entries); i++ {
		if entries[i].time == entries[i-1].time {
			errs = append(errs, fail(DuplicateTimestamp, entries[i].time, ErrDuplicateTimestamp))
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}

	values := make([]any, len(entries))
	for i, a := range entries {
		if a.entry.Inherit {
			if i == 0 {
				errs = append(errs, fail(NoPriorValueToInherit, a.time, ErrNoPriorValue))
				continue
			}
			values[i] = values[i-1]
			continue
		}
		v, err := c.Convert(a.entry.Value)
		if err != nil {
			errs = append(errs, fail(InvalidValue, a.time, err))
			continue
		}
		values[i] = v
	}
	if len(errs) > 0 {
		return nil, errs
	}

	ft := &FieldTrack{Name: name, cap: c}
	if len(entries) == 1 {
		ft.static = true
		ft.value = values[0]
		return ft, nil
	}

	ft.segments = make([]Segment, 0, len(entries)-1)
	for i := 1; i < len(entries); i++ {
		override := ClipConfig{}
		if cfg := entries[i].entry.Config; cfg != nil {
			override = *cfg
		}
		cfg, err := Resolve(levels[0], levels[1], levels[2], override)
		if err != nil {
			kind := ConfigurationIncomplete
			if errors.Is(err, ErrInvalidConfig) {
				kind = InvalidConfig
			}
			errs = append(errs, fail(kind, entries[i].time, err))
			continue
		}
		ft.segments = append(ft.segments, Segment{
			Start:  Point{Time: entries[i-1].time, Value: values[i-1]},
			End:    Point{Time: entries[i].time, Value: values[i]},
			Config: cfg,
		})
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return ft, nil
}

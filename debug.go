package keyframe

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/davecgh/go-spew/spew"
)

// debugOutput receives debug-mode log lines.
var debugOutput io.Writer = os.Stderr

// SetDebugMode enables or disables debug mode. Enabling it verifies that the
// timeline's segments are contiguous (panicking otherwise); while enabled,
// every Evaluate logs its timing and write counters to stderr.
func (a *Animation) SetDebugMode(enabled bool) {
	a.debug = enabled
	if enabled {
		debugCheckContiguous(a.timeline)
	}
}

// debugLog prints per-frame stats to stderr.
func (a *Animation) debugLog(stats FrameStats, elapsed time.Duration) {
	if !a.debug {
		return
	}
	_, _ = fmt.Fprintf(debugOutput,
		"[keyframe] t: %g | fields: %d | writes: %d | suppressed: %d | unbound: %d | eval: %v\n",
		stats.Time, stats.Fields, stats.Writes, stats.Suppressed, stats.Unbound, elapsed)
}

// dumpSegment, dumpField and dumpTrack are the printable view of a Timeline.
// Capabilities and easing funcs are replaced by names so dumps are stable.
type dumpSegment struct {
	From, To        float64
	StartValue      any
	EndValue        any
	Duration, Delay float64
	Easing          string
}

type dumpField struct {
	Name     string
	Static   bool
	Value    any
	Segments []dumpSegment
}

type dumpTrack struct {
	Object string
	Fields []dumpField
}

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// DumpTimeline writes a readable dump of every track, field and segment of tl
// to w. Durations of Whole print as +Inf.
func DumpTimeline(w io.Writer, tl *Timeline) {
	tracks := make([]dumpTrack, 0, tl.Len())
	for _, object := range tl.objects {
		tr := tl.tracks[object]
		dt := dumpTrack{Object: object}
		for _, name := range tr.names {
			ft := tr.fields[name]
			df := dumpField{Name: name, Static: ft.static, Value: ft.value}
			for _, s := range ft.segments {
				df.Segments = append(df.Segments, dumpSegment{
					From:       s.Start.Time,
					To:         s.End.Time,
					StartValue: s.Start.Value,
					EndValue:   s.End.Value,
					Duration:   s.Config.Duration,
					Delay:      s.Config.Delay,
					Easing:     easingName(s.Config.Easing),
				})
			}
			dt.Fields = append(dt.Fields, df)
		}
		tracks = append(tracks, dt)
	}
	dumpConfig.Fdump(w, tracks)
}

// debugCheckContiguous panics if any segmented field of tl has a gap or an
// overlap between adjacent segments, or an empty segment.
func debugCheckContiguous(tl *Timeline) {
	for _, object := range tl.objects {
		tr := tl.tracks[object]
		for _, name := range tr.names {
			segs := tr.fields[name].segments
			for i := range segs {
				if !(segs[i].Start.Time < segs[i].End.Time) {
					panic(fmt.Sprintf("keyframe debug: %s.%s segment %d is empty (%g..%g)",
						object, name, i, segs[i].Start.Time, segs[i].End.Time))
				}
				if i > 0 && segs[i-1].End.Time != segs[i].Start.Time {
					panic(fmt.Sprintf("keyframe debug: %s.%s segments %d and %d are not contiguous (%g vs %g)",
						object, name, i-1, i, segs[i-1].End.Time, segs[i].Start.Time))
				}
			}
		}
	}
}

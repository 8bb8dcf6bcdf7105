package keyframe

import (
	"math"
	"strconv"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestEvaluateExampleScenario(t *testing.T) {
	tl := mustCompile(boxSheet(), probeFields("opacity"), Options{})
	anim := NewAnimation(tl, nil)
	p := &probe{}
	anim.Registry().Attach("box", "", p)

	anim.Evaluate(500)
	if w, _ := p.last("opacity"); w.value != 0.5 {
		t.Errorf("opacity at 500 = %v, want 0.5", w.value)
	}
	if p.count("opacity") != 1 {
		t.Fatalf("writes = %d, want 1", p.count("opacity"))
	}

	anim.Evaluate(1500)
	if w, _ := p.last("opacity"); w.value != 1 {
		t.Errorf("opacity at 1500 = %v, want 1", w.value)
	}

	// Same time again: suppressed.
	anim.Evaluate(1500)
	if p.count("opacity") != 2 {
		t.Errorf("writes after repeated 1500 = %d, want 2", p.count("opacity"))
	}

	anim.Evaluate(-100)
	if w, _ := p.last("opacity"); w.value != 0 {
		t.Errorf("opacity at -100 = %v, want 0 (clamped)", w.value)
	}
}

func TestEvaluateBoundaryClamping(t *testing.T) {
	s := Sheet{}
	s.Set("box", 100, "x", Value(10))
	s.Set("box", 200, "x", Value(20))
	s.Set("box", 300, "x", Value(40))
	tl := mustCompile(s, probeFields("x"), Options{})

	tests := []struct {
		name string
		at   float64
		want float64
	}{
		{"far before", -1e9, 10},
		{"just before", 99.999, 10},
		{"at end", 300, 40},
		{"after end", 301, 40},
		{"far after", 1e9, 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			anim := NewAnimation(tl, nil)
			p := &probe{}
			anim.Registry().Attach("box", "", p)
			anim.Evaluate(tt.at)
			w, ok := p.last("x")
			if !ok || w.value != tt.want {
				t.Errorf("x at %v = %v, want %v", tt.at, w.value, tt.want)
			}
		})
	}
}

func TestEvaluateNaNTimeHoldsStart(t *testing.T) {
	tl := mustCompile(boxSheet(), probeFields("opacity"), Options{})
	anim := NewAnimation(tl, nil)
	p := &probe{}
	anim.Registry().Attach("box", "", p)

	anim.Evaluate(math.NaN())
	w, ok := p.last("opacity")
	if !ok || w.value != 0 {
		t.Errorf("opacity at NaN = %v (%v), want 0", w.value, ok)
	}
	if v, ok := anim.Snapshot().Float("box", "opacity"); !ok || v != 0 {
		t.Errorf("snapshot at NaN = %v (%v), want 0", v, ok)
	}
}

func TestEvaluateLinearIsExact(t *testing.T) {
	s := Sheet{}
	s.Set("o", 0, "v", Value(0))
	s.Set("o", 3, "v", Value(3e9))
	ft := mustCompile(s, probeFields("v"), Options{}).Track("o").Field("v")

	if got := ft.At(1).(float64); math.Abs(got-1e9) > 1e-3 {
		t.Errorf("At(1) = %f, want 1e9", got)
	}
}

func TestEvaluateInterpolationIdentityAtBoundaries(t *testing.T) {
	s := Sheet{}
	times := []float64{0, 0.1, 0.3, 1000, 1234.5}
	vals := []float64{0.1, 0.7, 0.3, -2.5, 9.9}
	for i := range times {
		s.Set("o", times[i], "v", WithConfig(vals[i], ClipConfig{Easing: ease.InOutElastic}))
	}
	tl := mustCompile(s, probeFields("v"), Options{})
	ft := tl.Track("o").Field("v")

	for i, at := range times {
		got, _ := ft.At(at).(float64)
		if got != vals[i] {
			t.Errorf("At(%v) = %v, want exactly %v", at, got, vals[i])
		}
	}
}

func TestEvaluateWriteSuppression(t *testing.T) {
	tl := mustCompile(boxSheet(), probeFields("opacity"), Options{})
	anim := NewAnimation(tl, nil)
	p := &probe{}
	anim.Registry().Attach("box", "", p)

	// 1200 and 1800 both lie on the flat inherited segment.
	anim.Evaluate(1200)
	anim.Evaluate(1800)
	if p.count("opacity") != 1 {
		t.Errorf("writes = %d, want 1", p.count("opacity"))
	}
	if st := anim.Stats(); st.Suppressed != 1 || st.Writes != 0 {
		t.Errorf("stats = %+v, want 1 suppressed, 0 writes", st)
	}
}

func TestEvaluatePrevValue(t *testing.T) {
	tl := mustCompile(boxSheet(), probeFields("opacity"), Options{})
	anim := NewAnimation(tl, nil)
	p := &probe{}
	anim.Registry().Attach("box", "", p)

	anim.Evaluate(250)
	w, _ := p.last("opacity")
	if w.hasPrev {
		t.Error("first write should have no previous value")
	}

	anim.Evaluate(750)
	w, _ = p.last("opacity")
	if !w.hasPrev || w.prev != 0.25 {
		t.Errorf("prev = %v (has %v), want 0.25", w.prev, w.hasPrev)
	}

	// Rewinding is allowed; prev is simply the last written value.
	anim.Evaluate(100)
	w, _ = p.last("opacity")
	if w.prev != 0.75 || w.value != 0.1 {
		t.Errorf("after rewind: value %v prev %v, want 0.1 and 0.75", w.value, w.prev)
	}
}

func TestEvaluateUnboundObject(t *testing.T) {
	tl := mustCompile(boxSheet(), probeFields("opacity"), Options{})
	anim := NewAnimation(tl, nil)

	anim.Evaluate(500)
	st := anim.Stats()
	if st.Unbound != 1 || st.Writes != 0 || st.Fields != 1 {
		t.Errorf("stats = %+v, want 1 field, 1 unbound, 0 writes", st)
	}
	if v, ok := anim.Snapshot().Float("box", "opacity"); !ok || v != 0.5 {
		t.Errorf("snapshot opacity = %v (%v), want 0.5", v, ok)
	}

	// A target attached later receives the value on the next evaluation.
	p := &probe{}
	anim.Registry().Attach("box", "", p)
	anim.Evaluate(500)
	if p.count("opacity") != 1 {
		t.Errorf("writes after late attach = %d, want 1", p.count("opacity"))
	}
}

func TestEvaluateReattachForcesWrite(t *testing.T) {
	tl := mustCompile(boxSheet(), probeFields("opacity"), Options{})
	anim := NewAnimation(tl, nil)
	reg := anim.Registry()
	p := &probe{}

	reg.Attach("box", "", p)
	anim.Evaluate(500)
	anim.Evaluate(500)
	if p.count("opacity") != 1 {
		t.Fatalf("writes = %d, want 1", p.count("opacity"))
	}

	reg.Detach("box", "")
	reg.Attach("box", "", p)
	anim.Evaluate(500)
	if p.count("opacity") != 2 {
		t.Fatalf("writes after reattach = %d, want 2", p.count("opacity"))
	}
	if w, _ := p.last("opacity"); w.hasPrev {
		t.Error("write after reattach should not carry a previous value")
	}
}

func TestEvaluateReplaceTargetLastAttachWins(t *testing.T) {
	tl := mustCompile(boxSheet(), probeFields("opacity"), Options{})
	anim := NewAnimation(tl, nil)
	reg := anim.Registry()
	p1, p2 := &probe{}, &probe{}

	reg.Attach("box", "", p1)
	anim.Evaluate(500)
	reg.Attach("box", "", p2)
	anim.Evaluate(500)

	if p1.count("opacity") != 1 {
		t.Errorf("p1 writes = %d, want 1", p1.count("opacity"))
	}
	if p2.count("opacity") != 1 {
		t.Errorf("p2 writes = %d, want 1 (fresh write after replace)", p2.count("opacity"))
	}
	if n := len(reg.Instances("box")); n != 1 {
		t.Errorf("instances = %d, want 1", n)
	}
}

func TestEvaluateInstances(t *testing.T) {
	tl := mustCompile(boxSheet(), probeFields("opacity"), Options{})
	anim := NewAnimation(tl, nil)
	reg := anim.Registry()
	a, b := &probe{}, &probe{}
	reg.Attach("box", "a", a)
	reg.Attach("box", "b", b)

	anim.Evaluate(500)
	if a.count("opacity") != 1 || b.count("opacity") != 1 {
		t.Fatalf("writes a=%d b=%d, want 1 each", a.count("opacity"), b.count("opacity"))
	}

	reg.Detach("box", "a")
	anim.Evaluate(500)
	if b.count("opacity") != 1 {
		t.Errorf("b should stay suppressed, got %d writes", b.count("opacity"))
	}
	if st := anim.Stats(); st.Suppressed != 1 || st.Writes != 0 {
		t.Errorf("stats = %+v", st)
	}
}

func TestEvaluateStaticField(t *testing.T) {
	s := Sheet{}
	s.Set("box", 500, "opacity", Value(0.3))
	tl := mustCompile(s, probeFields("opacity"), Options{})
	ft := tl.Track("box").Field("opacity")
	if !ft.Static() || len(ft.Segments()) != 0 {
		t.Fatalf("single keyframe should compile to a static field")
	}

	anim := NewAnimation(tl, nil)
	p := &probe{}
	anim.Registry().Attach("box", "", p)
	for _, at := range []float64{-1000, 0, 500, 1e6} {
		anim.Evaluate(at)
	}
	if p.count("opacity") != 1 {
		t.Errorf("static field writes = %d, want 1", p.count("opacity"))
	}
	if w, _ := p.last("opacity"); w.value != 0.3 {
		t.Errorf("static value = %v, want 0.3", w.value)
	}
}

func TestEvaluateDelayAndDuration(t *testing.T) {
	s := Sheet{}
	s.Set("o", 0, "v", Value(0))
	s.Set("o", 1000, "v", WithConfig(100, ClipConfig{Delay: Float(200), Duration: Float(400)}))
	tl := mustCompile(s, probeFields("v"), Options{})
	ft := tl.Track("o").Field("v")

	tests := []struct {
		at, want float64
	}{
		{0, 0},
		{100, 0},
		{200, 0},
		{400, 50},
		{600, 100},
		{800, 100},
	}
	for _, tt := range tests {
		if got := ft.At(tt.at).(float64); math.Abs(got-tt.want) > 1e-4 {
			t.Errorf("At(%v) = %v, want %v", tt.at, got, tt.want)
		}
	}
}

func TestEvaluateStepDuration(t *testing.T) {
	s := Sheet{}
	s.Set("o", 0, "v", Value(0))
	s.Set("o", 1000, "v", WithConfig(1, ClipConfig{Delay: Float(500), Duration: Float(0)}))
	ft := mustCompile(s, probeFields("v"), Options{}).Track("o").Field("v")

	if got := ft.At(499).(float64); got != 0 {
		t.Errorf("before step = %v, want 0", got)
	}
	if got := ft.At(501).(float64); got != 1 {
		t.Errorf("after step = %v, want 1", got)
	}
}

func TestEvaluateEasingShapesCurve(t *testing.T) {
	mk := func(fn ease.TweenFunc) *FieldTrack {
		s := Sheet{}
		s.Set("o", 0, "v", Value(0))
		s.Set("o", 1000, "v", WithConfig(100, ClipConfig{Easing: fn}))
		return mustCompile(s, probeFields("v"), Options{}).Track("o").Field("v")
	}
	linear := mk(ease.Linear).At(500).(float64)
	cubic := mk(ease.OutCubic).At(500).(float64)

	// OutCubic should be ahead of linear at midpoint.
	if cubic-linear < 1 {
		t.Errorf("easing curves should differ at midpoint: linear=%f cubic=%f", linear, cubic)
	}
}

func TestEvaluateCommitPhaseIsolation(t *testing.T) {
	// A write that detaches another instance must not disturb the pass:
	// all writes computed in the draft phase are still committed.
	var reg *Registry
	fields := FieldSet{
		"v": &Field[float64]{
			ConvertFunc:     toFloat,
			InterpolateFunc: lerp,
			WriteFunc: func(target any, v, _ float64, _ bool) {
				p := target.(*probe)
				p.writes = append(p.writes, probeWrite{field: "v", value: v})
				reg.Detach("o", "b")
			},
		},
	}
	s := Sheet{}
	s.Set("o", 0, "v", Value(0))
	s.Set("o", 10, "v", Value(10))
	anim := NewAnimation(mustCompile(s, fields, Options{}), nil)
	reg = anim.Registry()

	a, b := &probe{}, &probe{}
	reg.Attach("o", "a", a)
	reg.Attach("o", "b", b)
	anim.Evaluate(5)

	if a.count("v") != 1 || b.count("v") != 1 {
		t.Errorf("writes a=%d b=%d, want 1 each", a.count("v"), b.count("v"))
	}
	if _, ok := reg.Target("o", "b"); ok {
		t.Error("b should be detached after the pass")
	}
}

func TestEvaluateWriteSink(t *testing.T) {
	tl := mustCompile(boxSheet(), probeFields("opacity"), Options{})
	anim := NewAnimation(tl, nil)
	sink := &sinkRecorder{}
	anim.SetWriteSink(sink)
	anim.Registry().Attach("box", "7", &probe{})

	anim.Evaluate(500)
	anim.Evaluate(500)
	anim.Evaluate(1000)

	if len(sink.events) != 2 {
		t.Fatalf("events = %d, want 2", len(sink.events))
	}
	e := sink.events[1]
	if e.Object != "box" || e.Instance != "7" || e.Field != "opacity" || e.Time != 1000 {
		t.Errorf("event = %+v", e)
	}
	if e.Value != 1.0 || e.Previous != 0.5 {
		t.Errorf("event value/prev = %v/%v, want 1/0.5", e.Value, e.Previous)
	}
}

func TestEvaluateDisposedNodeDetached(t *testing.T) {
	s := Sheet{}
	s.Set("box", 0, FieldAlpha, Value(1))
	s.Set("box", 1000, FieldAlpha, Value(0))
	anim := NewAnimation(mustCompile(s, NodeFields(), Options{}), nil)

	node := NewNode("box")
	anim.Registry().Attach("box", "", node)
	node.Dispose()
	anim.Evaluate(500)

	if anim.Registry().Len() != 0 {
		t.Error("disposed node should be detached")
	}
	if node.Alpha != 1 {
		t.Errorf("Alpha changed to %f on disposed node", node.Alpha)
	}
}

func TestEvaluateReset(t *testing.T) {
	tl := mustCompile(boxSheet(), probeFields("opacity"), Options{})
	anim := NewAnimation(tl, nil)
	p := &probe{}
	anim.Registry().Attach("box", "", p)

	anim.Evaluate(500)
	anim.Reset()
	anim.Evaluate(500)
	if p.count("opacity") != 2 {
		t.Errorf("writes after Reset = %d, want 2", p.count("opacity"))
	}
}

func TestSnapshotIsImmutable(t *testing.T) {
	tl := mustCompile(boxSheet(), probeFields("opacity"), Options{})
	anim := NewAnimation(tl, nil)

	anim.Evaluate(250)
	old := anim.Snapshot()
	anim.Evaluate(750)

	if v, _ := old.Float("box", "opacity"); v != 0.25 {
		t.Errorf("old snapshot changed: %v, want 0.25", v)
	}
	if v, _ := anim.Snapshot().Float("box", "opacity"); v != 0.75 {
		t.Errorf("new snapshot = %v, want 0.75", v)
	}
	if old.Time != 250 {
		t.Errorf("old.Time = %v, want 250", old.Time)
	}
	if got := anim.Snapshot().Fields("box"); len(got) != 1 || got[0] != "opacity" {
		t.Errorf("Fields = %v", got)
	}
	if _, ok := anim.Snapshot().Value("nope", "opacity"); ok {
		t.Error("unknown object should not be in snapshot")
	}
}

func TestNewAnimationNilTimelinePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for nil timeline")
		}
	}()
	NewAnimation(nil, nil)
}

func TestEvaluateCacheBoundedAcrossInstances(t *testing.T) {
	tl := mustCompile(boxSheet(), probeFields("opacity"), Options{})
	anim := NewAnimation(tl, nil)
	reg := anim.Registry()
	p := &probe{}

	for i := 0; i < 1000; i++ {
		inst := strconv.Itoa(i)
		reg.Attach("box", inst, p)
		anim.Evaluate(float64(i % 2000))
		reg.Detach("box", inst)
		if len(anim.cache) > 1 {
			t.Fatalf("cache grew to %d entries after %d cycles", len(anim.cache), i+1)
		}
	}
	anim.Evaluate(0)

	if len(anim.cache) != 0 {
		t.Errorf("cache = %d entries with nothing attached, want 0", len(anim.cache))
	}
	if len(reg.gens) != 0 {
		t.Errorf("generations = %d with nothing attached, want 0", len(reg.gens))
	}
	if p.count("opacity") != 1000 {
		t.Errorf("writes = %d, want one per attach", p.count("opacity"))
	}
}

func TestEvaluateDetachReattachBetweenFrames(t *testing.T) {
	tl := mustCompile(boxSheet(), probeFields("opacity"), Options{})
	anim := NewAnimation(tl, nil)
	reg := anim.Registry()
	p := &probe{}

	reg.Attach("box", "", p)
	anim.Evaluate(500)
	// Detach and reattach with no evaluation in between.
	reg.Detach("box", "")
	reg.Attach("box", "", p)
	anim.Evaluate(500)

	if p.count("opacity") != 2 {
		t.Errorf("writes = %d, want 2", p.count("opacity"))
	}
}

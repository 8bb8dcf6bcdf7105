package keyframe

import "math"

// DefaultTimeScale converts Player deltas (seconds) into timeline units
// (milliseconds).
const DefaultTimeScale = 1000

// hostEvent is a queued attach or detach notification.
type hostEvent struct {
	slot   Slot
	target any
	attach bool
}

// Player is a minimal clock for an Animation: the host calls Update(dt) once
// per frame and the player advances its time and evaluates. There is no global
// animation manager; users call Update themselves.
//
// Hosts whose mount/unmount notifications arrive mid-frame can queue them
// with QueueAttach and QueueDetach; queued events are applied at the start of
// the next Update, before evaluation.
type Player struct {
	// Time is the current timeline time.
	Time float64
	// TimeScale multiplies dt before it is added to Time.
	TimeScale float64
	// Loop wraps Time back to the timeline start instead of stopping at its end.
	Loop bool
	// Paused stops time from advancing. Queued attaches are still applied and
	// evaluated.
	Paused bool
	// Done is set when a non-looping player reaches the end of the timeline.
	Done bool

	anim   *Animation
	queue  []hostEvent
	runner *ScriptRunner
}

// NewPlayer creates a player positioned at the start of anim's timeline.
func NewPlayer(anim *Animation) *Player {
	return &Player{
		Time:      anim.timeline.Start(),
		TimeScale: DefaultTimeScale,
		anim:      anim,
	}
}

// Animation returns the animation driven by the player.
func (p *Player) Animation() *Animation {
	return p.anim
}

// QueueAttach queues an attach of target to (object, instance).
func (p *Player) QueueAttach(object, instance string, target any) {
	p.queue = append(p.queue, hostEvent{
		slot:   Slot{Object: object, Instance: instance},
		target: target,
		attach: true,
	})
}

// QueueDetach queues a detach of (object, instance).
func (p *Player) QueueDetach(object, instance string) {
	p.queue = append(p.queue, hostEvent{slot: Slot{Object: object, Instance: instance}})
}

// Pending returns the number of queued host events.
func (p *Player) Pending() int {
	return len(p.queue)
}

// SetScriptRunner attaches a ScriptRunner. Its step method is called at the
// start of every Update.
func (p *Player) SetScriptRunner(runner *ScriptRunner) {
	p.runner = runner
}

// Update advances the player by dt seconds (scaled by TimeScale) and
// evaluates the animation. Once Done, or while Paused, time stays put but
// newly attached targets still receive the current values.
func (p *Player) Update(dt float32) {
	if p.runner != nil {
		p.runner.step(p)
	}
	attached := p.flushQueue()

	switch {
	case p.Done || p.Paused:
		if attached {
			p.anim.Evaluate(p.Time)
		}
	default:
		p.advance(float64(dt) * p.TimeScale)
		p.anim.Evaluate(p.Time)
	}

	if p.runner != nil {
		p.runner.capture(p.anim)
	}
}

// Seek jumps to t and evaluates immediately. Done is recomputed from t.
func (p *Player) Seek(t float64) {
	p.Time = t
	p.Done = !p.Loop && t >= p.anim.timeline.End()
	p.anim.Evaluate(t)
}

func (p *Player) advance(delta float64) {
	tl := p.anim.timeline
	start, end := tl.Start(), tl.End()
	p.Time += delta
	if p.Time < end {
		return
	}
	if p.Loop && end > start {
		p.Time = start + math.Mod(p.Time-start, end-start)
		return
	}
	p.Time = end
	p.Done = true
}

// flushQueue applies queued host events in order and reports whether any of
// them attached a target.
func (p *Player) flushQueue() bool {
	if len(p.queue) == 0 {
		return false
	}
	attached := false
	reg := p.anim.registry
	for _, ev := range p.queue {
		if ev.attach {
			reg.Attach(ev.slot.Object, ev.slot.Instance, ev.target)
			attached = true
		} else {
			reg.Detach(ev.slot.Object, ev.slot.Instance)
		}
	}
	clear(p.queue)
	p.queue = p.queue[:0]
	return attached
}

package keyframe

import (
	"encoding/json"
	"fmt"
)

// scriptStep represents a single action in a playback script.
type scriptStep struct {
	Action   string  `json:"action"`
	Label    string  `json:"label,omitempty"`
	Object   string  `json:"object,omitempty"`
	Instance string  `json:"instance,omitempty"`
	Time     float64 `json:"time,omitempty"`
	Frames   int     `json:"frames,omitempty"`
}

// script is the top-level JSON structure for a playback script.
type script struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner sequences seeks, attaches, detaches and snapshots across
// frames for automated playback testing. Attach to a Player via
// SetScriptRunner; one step runs per Player.Update.
//
// Supported actions:
//
//	seek      jump to "time"
//	attach    attach NewTarget(object, instance) to the slot
//	detach    detach the slot
//	pause     stop advancing time
//	resume    continue advancing time
//	snapshot  record the frame's values under "label"
//	wait      let "frames" frames pass
type ScriptRunner struct {
	// NewTarget creates the target for an attach step. When nil, attach
	// steps create a *Node named after the object.
	NewTarget func(object, instance string) any

	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool

	labels    []string
	snapshots map[string]Snapshot
}

// LoadScript parses a JSON playback script and returns a ScriptRunner ready
// to be attached to a Player via SetScriptRunner.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var s script
	if err := json.Unmarshal(jsonData, &s); err != nil {
		return nil, fmt.Errorf("parse playback script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("parse playback script: no steps")
	}
	for i, st := range s.Steps {
		switch st.Action {
		case "seek", "pause", "resume", "wait":
		case "attach", "detach":
			if st.Object == "" {
				return nil, fmt.Errorf("parse playback script: step %d: %s without object", i, st.Action)
			}
		case "snapshot":
			if st.Label == "" {
				return nil, fmt.Errorf("parse playback script: step %d: snapshot without label", i)
			}
		default:
			return nil, fmt.Errorf("parse playback script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: s.Steps, snapshots: make(map[string]Snapshot)}, nil
}

// Done reports whether all steps in the script have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Snapshots returns the recorded snapshots by label.
func (r *ScriptRunner) Snapshots() map[string]Snapshot {
	return r.snapshots
}

// step advances the runner by one frame. Called from Player.Update before the
// host event queue is flushed.
func (r *ScriptRunner) step(p *Player) {
	if r.done {
		return
	}
	// Count down wait frames.
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "seek":
		p.Seek(st.Time)
	case "attach":
		p.QueueAttach(st.Object, st.Instance, r.newTarget(st.Object, st.Instance))
	case "detach":
		p.QueueDetach(st.Object, st.Instance)
	case "pause":
		p.Paused = true
	case "resume":
		p.Paused = false
	case "snapshot":
		r.labels = append(r.labels, st.Label)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	// Check if we've reached the end after executing.
	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
}

// capture records the queued snapshot labels. Called from Player.Update after
// evaluation.
func (r *ScriptRunner) capture(a *Animation) {
	if len(r.labels) == 0 {
		return
	}
	snap := a.Snapshot()
	for _, label := range r.labels {
		r.snapshots[label] = snap
	}
	r.labels = r.labels[:0]
}

func (r *ScriptRunner) newTarget(object, instance string) any {
	if r.NewTarget != nil {
		return r.NewTarget(object, instance)
	}
	name := object
	if instance != "" {
		name += "#" + instance
	}
	return NewNode(name)
}

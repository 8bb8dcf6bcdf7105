package keyframe

import (
	"fmt"
	"math"
	"strings"

	"github.com/tanema/gween/ease"
)

// Whole is the Duration that stretches a transition to the end of its segment.
var Whole = math.Inf(1)

// ClipConfig is a partially specified set of segment options. A nil field
// means "not set at this level" and defers to a lower-precedence level.
//
// Within a segment [start, end) the transition opens at start+Delay and lasts
// Duration, capped at end. Before the window the start value holds; after it
// the end value holds. Duration 0 is a step.
type ClipConfig struct {
	Duration *float64
	Delay    *float64
	Easing   ease.TweenFunc
}

// Config is a fully resolved ClipConfig.
type Config struct {
	Duration float64
	Delay    float64
	Easing   ease.TweenFunc

	linear bool // Easing is ease.Linear; progress skips the float32 tween
}

// Float returns a pointer to v, for filling ClipConfig literals.
func Float(v float64) *float64 {
	return &v
}

// DefaultConfig returns the library default: the transition spans the whole
// segment, starts immediately and is linear.
func DefaultConfig() ClipConfig {
	return ClipConfig{
		Duration: Float(Whole),
		Delay:    Float(0),
		Easing:   ease.Linear,
	}
}

// Merge layers levels from lowest to highest precedence and returns the
// combined partial config. Options no level sets stay nil.
func Merge(levels ...ClipConfig) ClipConfig {
	var out ClipConfig
	for _, l := range levels {
		if l.Duration != nil {
			out.Duration = l.Duration
		}
		if l.Delay != nil {
			out.Delay = l.Delay
		}
		if l.Easing != nil {
			out.Easing = l.Easing
		}
	}
	return out
}

// Resolve merges levels (lowest precedence first) and requires every option
// to end up set. Missing options produce an error wrapping
// ErrConfigurationIncomplete; out-of-range values wrap ErrInvalidConfig.
func Resolve(levels ...ClipConfig) (Config, error) {
	m := Merge(levels...)

	var missing []string
	if m.Duration == nil {
		missing = append(missing, "duration")
	}
	if m.Delay == nil {
		missing = append(missing, "delay")
	}
	if m.Easing == nil {
		missing = append(missing, "easing")
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s unset", ErrConfigurationIncomplete, strings.Join(missing, ", "))
	}

	cfg := Config{Duration: *m.Duration, Delay: *m.Delay, Easing: m.Easing, linear: isLinear(m.Easing)}
	if math.IsNaN(cfg.Duration) || cfg.Duration < 0 {
		return Config{}, fmt.Errorf("%w: duration %g", ErrInvalidConfig, cfg.Duration)
	}
	if math.IsNaN(cfg.Delay) || math.IsInf(cfg.Delay, 0) || cfg.Delay < 0 {
		return Config{}, fmt.Errorf("%w: delay %g", ErrInvalidConfig, cfg.Delay)
	}
	return cfg, nil
}

// window returns the transition window for a segment spanning [start, end).
func (c Config) window(start, end float64) (from, to float64) {
	from = math.Min(start+c.Delay, end)
	to = math.Min(from+c.Duration, end)
	return from, to
}

package keyframe

import (
	"reflect"
	"sort"
	"strings"

	"github.com/tanema/gween/ease"
)

// easings maps normalized names (lowercase, no separators) to gween easing
// functions. Documents refer to easings by these names.
var easings = map[string]ease.TweenFunc{
	"linear":       ease.Linear,
	"inquad":       ease.InQuad,
	"outquad":      ease.OutQuad,
	"inoutquad":    ease.InOutQuad,
	"outinquad":    ease.OutInQuad,
	"incubic":      ease.InCubic,
	"outcubic":     ease.OutCubic,
	"inoutcubic":   ease.InOutCubic,
	"outincubic":   ease.OutInCubic,
	"inquart":      ease.InQuart,
	"outquart":     ease.OutQuart,
	"inoutquart":   ease.InOutQuart,
	"outinquart":   ease.OutInQuart,
	"inquint":      ease.InQuint,
	"outquint":     ease.OutQuint,
	"inoutquint":   ease.InOutQuint,
	"outinquint":   ease.OutInQuint,
	"insine":       ease.InSine,
	"outsine":      ease.OutSine,
	"inoutsine":    ease.InOutSine,
	"outinsine":    ease.OutInSine,
	"inexpo":       ease.InExpo,
	"outexpo":      ease.OutExpo,
	"inoutexpo":    ease.InOutExpo,
	"outinexpo":    ease.OutInExpo,
	"incirc":       ease.InCirc,
	"outcirc":      ease.OutCirc,
	"inoutcirc":    ease.InOutCirc,
	"outincirc":    ease.OutInCirc,
	"inelastic":    ease.InElastic,
	"outelastic":   ease.OutElastic,
	"inoutelastic": ease.InOutElastic,
	"outinelastic": ease.OutInElastic,
	"inback":       ease.InBack,
	"outback":      ease.OutBack,
	"inoutback":    ease.InOutBack,
	"outinback":    ease.OutInBack,
	"inbounce":     ease.InBounce,
	"outbounce":    ease.OutBounce,
	"inoutbounce":  ease.InOutBounce,
	"outinbounce":  ease.OutInBounce,
}

func normalizeEasingName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.NewReplacer("-", "", "_", "", " ", "").Replace(name)
}

// EasingByName looks up a gween easing function. Matching ignores case and
// the separators '-', '_' and ' ', so "outCubic", "out-cubic" and "OUT_CUBIC"
// all resolve to ease.OutCubic.
func EasingByName(name string) (ease.TweenFunc, bool) {
	fn, ok := easings[normalizeEasingName(name)]
	return fn, ok
}

// EasingNames returns the normalized easing names in sorted order.
func EasingNames() []string {
	names := make([]string, 0, len(easings))
	for name := range easings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// easingName reverse-maps fn to its normalized name, or "custom" for
// functions outside the table.
func easingName(fn ease.TweenFunc) string {
	if fn == nil {
		return ""
	}
	ptr := reflect.ValueOf(fn).Pointer()
	for name, e := range easings {
		if reflect.ValueOf(e).Pointer() == ptr {
			return name
		}
	}
	return "custom"
}

var linearPtr = reflect.ValueOf(ease.Linear).Pointer()

// isLinear reports whether fn is ease.Linear.
func isLinear(fn ease.TweenFunc) bool {
	return fn != nil && reflect.ValueOf(fn).Pointer() == linearPtr
}

// Package keyframe compiles sparse keyframe sheets into gap-free timelines
// and evaluates them into host-owned targets.
//
// A [Sheet] says which value each field of each object should have at which
// time. [Compile] turns it into a [Timeline] of eased segments; an
// [Animation] evaluates that timeline at any time and writes the results into
// whatever targets the host has attached to its [Registry]. Easing comes from
// [gween].
//
// # Quick start
//
//	sheet := keyframe.Sheet{}
//	sheet.Set("box", 0, keyframe.FieldAlpha, keyframe.Value(0))
//	sheet.Set("box", 1000, keyframe.FieldAlpha, keyframe.Value(1))
//	sheet.Set("box", 2000, keyframe.FieldAlpha, keyframe.Inherit())
//
//	tl, err := keyframe.Compile(sheet, keyframe.NodeFields(), keyframe.Options{})
//	if err != nil {
//		// err is a *keyframe.Report; tl still holds every valid object.
//	}
//
//	anim := keyframe.NewAnimation(tl, nil)
//	box := keyframe.NewNode("box")
//	anim.Registry().Attach("box", "", box)
//	anim.Evaluate(500) // box.Alpha == 0.5
//
// # Fields
//
// The engine knows nothing about values. Each field name maps to a
// [Capability] that converts authored values, compares and blends them, and
// writes them into targets. [Field] builds one from typed functions;
// [FloatField], [Vec2Field], [ColorField] and [BoolField] cover the common
// kinds, and [NodeFields] animates the ready-made [Node] target.
//
// # Configuration
//
// Each segment gets a [Config] (duration, delay, easing) resolved from four
// levels, lowest precedence first: the library default, the field default,
// the object default and the override on the entry that ends the segment.
// See [Options] and [ClipConfig].
//
// # Targets
//
// Targets come and go with the host's lifecycle. [Registry.Ref] hands out an
// attach/detach pair per object (and optional instance id). Unbound objects
// are evaluated but not written; a reattached target always receives a fresh
// write. Writes of unchanged values are suppressed.
//
// # Driving
//
// There is no internal clock. Call [Animation.Evaluate] directly, or use a
// [Player] and call Update(dt) each frame; package host runs a Player inside
// an Ebitengine game loop. [LoadDocument] reads sheets from YAML or JSON.
//
// [gween]: https://github.com/tanema/gween
package keyframe

package keyframe

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnsupportedValue is returned by the built-in conversions when an authored
// value has a shape they do not understand.
var ErrUnsupportedValue = errors.New("keyframe: unsupported value")

// Capability defines the value semantics of one field kind. The engine never
// inspects stores itself; it only passes around what Convert returned.
type Capability interface {
	// Convert turns an authored value into a store.
	Convert(raw any) (any, error)
	// Equal reports whether two stores are interchangeable. Either may be nil.
	Equal(a, b any) bool
	// Interpolate blends two stores. alpha is usually in [0, 1] but easings
	// such as back and elastic overshoot.
	Interpolate(from, to any, alpha float64) any
	// Write stores value into target. prev is the store last written to the
	// same target slot, or nil on the first write after an attach.
	Write(target any, value, prev any)
}

// stepper is implemented by capabilities that hold the start value until a
// transition completes instead of blending. Stepped fields switch at the end
// of the transition window, ignoring easing overshoot.
type stepper interface {
	stepped() bool
}

// FieldSet maps field names to their capabilities.
type FieldSet map[string]Capability

// Field adapts typed functions to Capability so implementations never deal
// with type assertions. ConvertFunc may be nil when authored values are
// already of type T; EqualFunc may be nil for comparable T.
type Field[T any] struct {
	ConvertFunc     func(raw any) (T, error)
	EqualFunc       func(a, b T) bool
	InterpolateFunc func(from, to T, alpha float64) T
	WriteFunc       func(target any, value, prev T, hasPrev bool)
}

func (f *Field[T]) Convert(raw any) (any, error) {
	if v, ok := raw.(T); ok {
		return v, nil
	}
	if f.ConvertFunc == nil {
		var zero T
		return nil, fmt.Errorf("%w: %T, want %T", ErrUnsupportedValue, raw, zero)
	}
	v, err := f.ConvertFunc(raw)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (f *Field[T]) Equal(a, b any) bool {
	va, ok := a.(T)
	if !ok {
		return false
	}
	vb, ok := b.(T)
	if !ok {
		return false
	}
	if f.EqualFunc != nil {
		return f.EqualFunc(va, vb)
	}
	return any(va) == any(vb)
}

// Interpolate blends from and to with InterpolateFunc. Without one the field
// steps: from is held while alpha < 1.
func (f *Field[T]) Interpolate(from, to any, alpha float64) any {
	a, _ := from.(T)
	b, _ := to.(T)
	if f.InterpolateFunc == nil {
		if alpha < 1 {
			return a
		}
		return b
	}
	return f.InterpolateFunc(a, b, alpha)
}

// stepped reports whether the field has no blend and only switches values.
func (f *Field[T]) stepped() bool {
	return f.InterpolateFunc == nil
}

func (f *Field[T]) Write(target any, value, prev any) {
	if f.WriteFunc == nil {
		return
	}
	v, _ := value.(T)
	p, ok := prev.(T)
	f.WriteFunc(target, v, p, ok)
}

// FloatField returns a linearly interpolated float64 field.
func FloatField(write func(target any, v float64)) *Field[float64] {
	return &Field[float64]{
		ConvertFunc:     toFloat,
		InterpolateFunc: lerp,
		WriteFunc: func(target any, v, _ float64, _ bool) {
			write(target, v)
		},
	}
}

// Vec2Field returns a component-wise interpolated Vec2 field.
func Vec2Field(write func(target any, v Vec2)) *Field[Vec2] {
	return &Field[Vec2]{
		ConvertFunc:     toVec2,
		InterpolateFunc: Vec2.Lerp,
		WriteFunc: func(target any, v, _ Vec2, _ bool) {
			write(target, v)
		},
	}
}

// ColorField returns a component-wise interpolated Color field.
func ColorField(write func(target any, c Color)) *Field[Color] {
	return &Field[Color]{
		ConvertFunc:     toColor,
		InterpolateFunc: Color.Lerp,
		WriteFunc: func(target any, c, _ Color, _ bool) {
			write(target, c)
		},
	}
}

// BoolField returns a stepped bool field: the start value holds until the
// transition completes.
func BoolField(write func(target any, v bool)) *Field[bool] {
	return &Field[bool]{
		WriteFunc: func(target any, v, _ bool, _ bool) {
			write(target, v)
		},
	}
}

// --- Conversions ---

func toFloat(raw any) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int8:
		return float64(v), nil
	case int16:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint:
		return float64(v), nil
	case uint8:
		return float64(v), nil
	case uint16:
		return float64(v), nil
	case uint32:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	}
	return 0, fmt.Errorf("%w: %T is not a number", ErrUnsupportedValue, raw)
}

// toVec2 accepts a Vec2, a two-element sequence, or a map with x and y keys.
func toVec2(raw any) (Vec2, error) {
	switch v := raw.(type) {
	case Vec2:
		return v, nil
	case [2]float64:
		return Vec2{v[0], v[1]}, nil
	case []float64:
		if len(v) == 2 {
			return Vec2{v[0], v[1]}, nil
		}
	case []any:
		if len(v) == 2 {
			f, err := toFloats(v)
			if err != nil {
				return Vec2{}, err
			}
			return Vec2{f[0], f[1]}, nil
		}
	case map[string]any:
		x, err := toFloat(v["x"])
		if err != nil {
			return Vec2{}, err
		}
		y, err := toFloat(v["y"])
		if err != nil {
			return Vec2{}, err
		}
		return Vec2{x, y}, nil
	}
	return Vec2{}, fmt.Errorf("%w: cannot use %T as a vector", ErrUnsupportedValue, raw)
}

// toColor accepts a Color, "#rrggbb" or "#rrggbbaa", a 3 or 4 element
// sequence, or a map with r, g, b and optional a keys (alpha defaults to 1).
func toColor(raw any) (Color, error) {
	switch v := raw.(type) {
	case Color:
		return v, nil
	case string:
		return parseHexColor(v)
	case []any:
		if len(v) == 3 || len(v) == 4 {
			f, err := toFloats(v)
			if err != nil {
				return Color{}, err
			}
			c := Color{R: f[0], G: f[1], B: f[2], A: 1}
			if len(f) == 4 {
				c.A = f[3]
			}
			return c, nil
		}
	case map[string]any:
		var c Color
		var err error
		if c.R, err = toFloat(v["r"]); err != nil {
			return Color{}, err
		}
		if c.G, err = toFloat(v["g"]); err != nil {
			return Color{}, err
		}
		if c.B, err = toFloat(v["b"]); err != nil {
			return Color{}, err
		}
		c.A = 1
		if a, ok := v["a"]; ok {
			if c.A, err = toFloat(a); err != nil {
				return Color{}, err
			}
		}
		return c, nil
	}
	return Color{}, fmt.Errorf("%w: cannot use %T as a color", ErrUnsupportedValue, raw)
}

func parseHexColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return Color{}, fmt.Errorf("%w: color %q", ErrUnsupportedValue, s)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%w: color %q", ErrUnsupportedValue, s)
	}
	if len(hex) == 6 {
		n = n<<8 | 0xff
	}
	return Color{
		R: float64(n>>24&0xff) / 255,
		G: float64(n>>16&0xff) / 255,
		B: float64(n>>8&0xff) / 255,
		A: float64(n&0xff) / 255,
	}, nil
}

func toFloats(vals []any) ([]float64, error) {
	out := make([]float64, len(vals))
	for i, v := range vals {
		f, err := toFloat(v)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

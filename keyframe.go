package keyframe

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication happens in RGBA, so a Color can be handed directly to
// anything that accepts a color.Color.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// RGBA implements color.Color (premultiplied, 16-bit per channel).
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(clamp01(c.R*c.A) * 0xffff)
	g = uint32(clamp01(c.G*c.A) * 0xffff)
	b = uint32(clamp01(c.B*c.A) * 0xffff)
	a = uint32(clamp01(c.A) * 0xffff)
	return
}

// Lerp blends each component of c toward to by t.
func (c Color) Lerp(to Color, t float64) Color {
	return Color{
		R: lerp(c.R, to.R, t),
		G: lerp(c.G, to.G, t),
		B: lerp(c.B, to.B, t),
		A: lerp(c.A, to.A, t),
	}
}

// Vec2 is a 2D vector used for positions, offsets, sizes, and directions
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Lerp blends v toward to by t.
func (v Vec2) Lerp(to Vec2, t float64) Vec2 {
	return Vec2{X: lerp(v.X, to.X, t), Y: lerp(v.Y, to.Y, t)}
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

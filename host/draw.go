package host

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/keyframe"
)

// whitePixel is a 1x1 white image scaled and tinted to draw solid rectangles.
var whitePixel *ebiten.Image

func pixel() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(keyframe.ColorWhite)
	}
	return whitePixel
}

// NodeGeoM returns the transform that maps the unit square onto n: centered
// on (X, Y), sized Width*ScaleX by Height*ScaleY, rotated by Rotation.
func NodeGeoM(n *keyframe.Node) ebiten.GeoM {
	var m ebiten.GeoM
	m.Translate(-0.5, -0.5)
	m.Scale(n.Width*n.ScaleX, n.Height*n.ScaleY)
	m.Rotate(n.Rotation)
	m.Translate(n.X, n.Y)
	return m
}

// NodeColorScale returns n's color premultiplied by its alpha.
func NodeColorScale(n *keyframe.Node) ebiten.ColorScale {
	var cs ebiten.ColorScale
	a := n.Color.A * n.Alpha
	cs.Scale(float32(n.Color.R*a), float32(n.Color.G*a), float32(n.Color.B*a), float32(a))
	return cs
}

// DrawNode draws n as a solid rectangle and clears its dirty flag. Invisible
// and disposed nodes are skipped.
func DrawNode(screen *ebiten.Image, n *keyframe.Node) {
	if n == nil || n.IsDisposed() || !n.Visible {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM = NodeGeoM(n)
	op.ColorScale = NodeColorScale(n)
	screen.DrawImage(pixel(), op)
	n.ClearDirty()
}

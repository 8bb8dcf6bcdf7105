package keyframe

// Node field names understood by NodeFields.
const (
	FieldX        = "x"
	FieldY        = "y"
	FieldPosition = "position"
	FieldScaleX   = "scaleX"
	FieldScaleY   = "scaleY"
	FieldScale    = "scale"
	FieldRotation = "rotation"
	FieldAlpha    = "alpha"
	FieldColor    = "color"
	FieldVisible  = "visible"
)

// NodeFields returns the capabilities for animating *Node targets. Each write
// sets the field and marks the node dirty. Targets that are not a *Node, or
// that have been disposed, are left untouched.
//
// Position and scale are offered both per axis and as Vec2 fields; a sheet
// should animate one form or the other for a given node, not both.
func NodeFields() FieldSet {
	return FieldSet{
		FieldX:        nodeFloat(func(n *Node, v float64) { n.X = v }),
		FieldY:        nodeFloat(func(n *Node, v float64) { n.Y = v }),
		FieldScaleX:   nodeFloat(func(n *Node, v float64) { n.ScaleX = v }),
		FieldScaleY:   nodeFloat(func(n *Node, v float64) { n.ScaleY = v }),
		FieldRotation: nodeFloat(func(n *Node, v float64) { n.Rotation = v }),
		FieldAlpha:    nodeFloat(func(n *Node, v float64) { n.Alpha = v }),
		FieldPosition: Vec2Field(func(target any, v Vec2) {
			if n := liveNode(target); n != nil {
				n.X, n.Y = v.X, v.Y
				n.MarkDirty()
			}
		}),
		FieldScale: Vec2Field(func(target any, v Vec2) {
			if n := liveNode(target); n != nil {
				n.ScaleX, n.ScaleY = v.X, v.Y
				n.MarkDirty()
			}
		}),
		FieldColor: ColorField(func(target any, c Color) {
			if n := liveNode(target); n != nil {
				n.Color = c
				n.MarkDirty()
			}
		}),
		FieldVisible: BoolField(func(target any, v bool) {
			if n := liveNode(target); n != nil {
				n.Visible = v
				n.MarkDirty()
			}
		}),
	}
}

func nodeFloat(set func(n *Node, v float64)) *Field[float64] {
	return FloatField(func(target any, v float64) {
		if n := liveNode(target); n != nil {
			set(n, v)
			n.MarkDirty()
		}
	})
}

// liveNode returns target as a *Node, or nil if it is not one or has been
// disposed.
func liveNode(target any) *Node {
	n, ok := target.(*Node)
	if !ok || n == nil || n.disposed {
		return nil
	}
	return n
}

package keyframe

// nodeIDCounter is a plain counter (no atomic, evaluation is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is a ready-made animation target: a flat bag of the visual properties
// a 2D host usually animates. Hosts with their own element types write their
// own Capabilities instead; Node exists so the common case needs none.
//
// Node fields are plain and may be read or set directly. Writes made through
// NodeFields mark the node dirty so a host can skip clean nodes.
type Node struct {
	// Identity
	ID   uint32
	Name string

	// Transform (local)
	X, Y          float64
	Width, Height float64
	ScaleX        float64
	ScaleY        float64
	Rotation      float64

	// Appearance
	Alpha   float64
	Color   Color
	Visible bool
	ZIndex  int

	// Metadata
	UserData any

	dirty    bool
	disposed bool
}

// NewNode creates a visible, opaque, unscaled white node.
func NewNode(name string) *Node {
	return &Node{
		ID:      nextNodeID(),
		Name:    name,
		ScaleX:  1,
		ScaleY:  1,
		Alpha:   1,
		Color:   ColorWhite,
		Visible: true,
		dirty:   true,
	}
}

// Position returns the node's (X, Y).
func (n *Node) Position() Vec2 {
	return Vec2{n.X, n.Y}
}

// Scale returns the node's (ScaleX, ScaleY).
func (n *Node) Scale() Vec2 {
	return Vec2{n.ScaleX, n.ScaleY}
}

// MarkDirty flags the node as changed since the host last looked at it.
func (n *Node) MarkDirty() {
	n.dirty = true
}

// Dirty reports whether the node changed since the last ClearDirty.
func (n *Node) Dirty() bool {
	return n.dirty
}

// ClearDirty resets the dirty flag, typically after the host has redrawn it.
func (n *Node) ClearDirty() {
	n.dirty = false
}

// Dispose marks the node as disposed. An Animation detaches disposed nodes on
// its next Evaluate and NodeFields never write to them.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.disposed = true
	n.ID = 0
	n.UserData = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

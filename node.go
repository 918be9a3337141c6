package tiltcard

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// NodeKind distinguishes how a TiltCard treats a child during binding.
type NodeKind uint8

const (
	NodeKindContainer NodeKind = iota // group node with no visual output of its own
	NodeKindImage                     // draws Image (or a Color fill when Image is nil)
	NodeKindCard                      // preferred tilt target; draws like NodeKindImage
	NodeKindOverlay                   // the light reflection layer
)

// nodeIDCounter is a plain counter (no atomic, tiltcard is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is an element drawn inside a TiltCard. Positions are relative to the
// parent node, or to the card's top-left corner for top-level children.
type Node struct {
	ID   uint32
	Name string
	Kind NodeKind

	Parent   *Node
	children []*Node

	X, Y          float64
	Width, Height float64

	// Image is drawn scaled to Width x Height. When nil, the node is filled
	// with Color instead (transparent Color draws nothing).
	Image *ebiten.Image
	Color Color
	Alpha float64

	Visible bool

	UserData any
}

func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.Alpha = 1
	n.Color = ColorWhite
	n.Visible = true
}

// NewContainer creates a group node with no visual representation.
func NewContainer(name string) *Node {
	n := &Node{Name: name, Kind: NodeKindContainer}
	nodeDefaults(n)
	n.Color = Color{}
	return n
}

// NewImage creates a node that draws img at its natural size.
func NewImage(name string, img *ebiten.Image) *Node {
	n := &Node{Name: name, Kind: NodeKindImage, Image: img}
	nodeDefaults(n)
	if img != nil {
		b := img.Bounds()
		n.Width, n.Height = float64(b.Dx()), float64(b.Dy())
	}
	return n
}

// NewCard creates a card node of the given size. The card is filled with
// background unless an image is assigned later.
func NewCard(name string, w, h float64, background Color) *Node {
	n := &Node{Name: name, Kind: NodeKindCard, Width: w, Height: h}
	nodeDefaults(n)
	n.Color = background
	return n
}

// Bounds returns the node's rectangle in parent space.
func (n *Node) Bounds() Rect {
	return Rect{X: n.X, Y: n.Y, Width: n.Width, Height: n.Height}
}

// SetPosition sets the node's offset inside its parent.
func (n *Node) SetPosition(x, y float64) {
	n.X = x
	n.Y = y
}

// SetSize sets the node's drawn size.
func (n *Node) SetSize(w, h float64) {
	n.Width = w
	n.Height = h
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("tiltcard: cannot add nil child")
	}
	if isAncestor(child, n) {
		panic("tiltcard: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
}

// AddChildAt inserts child at the given index.
// Same reparenting and cycle-check behavior as AddChild.
func (n *Node) AddChildAt(child *Node, index int) {
	if child == nil {
		panic("tiltcard: cannot add nil child")
	}
	if isAncestor(child, n) {
		panic("tiltcard: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	if index < 0 || index > len(n.children) {
		panic("tiltcard: child index out of range")
	}
	child.Parent = n
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
}

// isAncestor reports whether candidate is an ancestor of node (or node itself).
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// drawNode paints n and its subtree onto dst with the given parent offset
// and inherited alpha.
func drawNode(dst *ebiten.Image, n *Node, offX, offY, parentAlpha float64, op *ebiten.DrawImageOptions) {
	if !n.Visible {
		return
	}
	x := offX + n.X
	y := offY + n.Y
	alpha := parentAlpha * n.Alpha

	if n.Kind != NodeKindContainer && alpha > 0 {
		drawNodeSelf(dst, n, x, y, alpha, op)
	}
	for _, c := range n.children {
		drawNode(dst, c, x, y, alpha, op)
	}
}

func drawNodeSelf(dst *ebiten.Image, n *Node, x, y, alpha float64, op *ebiten.DrawImageOptions) {
	if n.Width <= 0 || n.Height <= 0 {
		return
	}
	src := n.Image
	tint := ColorWhite
	if src == nil {
		if n.Color.A <= 0 {
			return
		}
		src = ensureWhitePixel()
		tint = n.Color
	}
	b := src.Bounds()
	op.GeoM.Reset()
	op.GeoM.Scale(n.Width/float64(b.Dx()), n.Height/float64(b.Dy()))
	op.GeoM.Translate(x, y)
	op.ColorScale.Reset()
	op.ColorScale.ScaleWithColor(tint.RGBA())
	op.ColorScale.ScaleAlpha(float32(alpha))
	dst.DrawImage(src, op)
}

package tiltcard

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// tiltMesh is a (cols+1) x (rows+1) vertex grid covering the card canvas.
// Each cell is two triangles. DrawTriangles interpolates texture coordinates
// linearly inside a triangle, so a finer grid tracks the perspective
// projection more closely.
type tiltMesh struct {
	cols, rows int
	w, h       float64
	rest       []Vec2
	verts      []ebiten.Vertex
	inds       []uint16
}

// build lays out the grid over a w x h canvas. It is a no-op when the layout
// is unchanged.
func (m *tiltMesh) build(cells int, w, h float64) {
	if cells < 1 {
		cells = 1
	}
	if m.cols == cells && m.rows == cells && m.w == w && m.h == h {
		return
	}
	m.cols, m.rows, m.w, m.h = cells, cells, w, h

	vcols := cells + 1
	vrows := cells + 1
	numVerts := vcols * vrows
	m.rest = make([]Vec2, numVerts)
	m.verts = make([]ebiten.Vertex, numVerts)
	m.inds = make([]uint16, cells*cells*6)

	cellW := w / float64(cells)
	cellH := h / float64(cells)
	for r := 0; r < vrows; r++ {
		for c := 0; c < vcols; c++ {
			idx := r*vcols + c
			x := float64(c) * cellW
			y := float64(r) * cellH
			m.rest[idx] = Vec2{X: x, Y: y}
			m.verts[idx] = ebiten.Vertex{
				SrcX: float32(x), SrcY: float32(y),
				ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1,
			}
		}
	}

	ii := 0
	for r := 0; r < cells; r++ {
		for c := 0; c < cells; c++ {
			tl := uint16(r*vcols + c)
			tr := tl + 1
			bl := uint16((r+1)*vcols + c)
			br := bl + 1
			m.inds[ii+0] = tl
			m.inds[ii+1] = bl
			m.inds[ii+2] = tr
			m.inds[ii+3] = tr
			m.inds[ii+4] = bl
			m.inds[ii+5] = br
			ii += 6
		}
	}
}

// project maps every rest position through mat and offsets the result by
// origin (the card's screen position).
func (m *tiltMesh) project(mat Matrix, origin Vec2) {
	for i, p := range m.rest {
		x, y := mat.MapPoint(p.X, p.Y)
		m.verts[i].DstX = float32(x + origin.X)
		m.verts[i].DstY = float32(y + origin.Y)
	}
}

// bounds returns the axis-aligned box of the projected vertices.
func (m *tiltMesh) bounds() Rect {
	if len(m.verts) == 0 {
		return Rect{}
	}
	minX, minY := float64(m.verts[0].DstX), float64(m.verts[0].DstY)
	maxX, maxY := minX, minY
	for i := 1; i < len(m.verts); i++ {
		x, y := float64(m.verts[i].DstX), float64(m.verts[i].DstY)
		minX, maxX = min(minX, x), max(maxX, x)
		minY, maxY = min(minY, y), max(maxY, y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// composite paints the card's children into the offscreen canvas.
func (c *TiltCard) composite() *ebiten.Image {
	w, h := int(c.width+0.5), int(c.height+0.5)
	if c.canvas == nil {
		c.canvas = NewRenderTexture(w, h)
	} else {
		c.canvas.Resize(w, h)
	}
	c.canvas.Clear()
	img := c.canvas.Image()
	for _, child := range c.root.children {
		drawNode(img, child, 0, 0, 1, &c.imgOp)
	}
	return img
}

// drawPassThrough draws the children without any transform. Used while no
// target is bound or the card has no size yet.
func (c *TiltCard) drawPassThrough(dst *ebiten.Image) {
	for _, child := range c.root.children {
		drawNode(dst, child, c.X, c.Y, 1, &c.imgOp)
	}
}

// drawTilted warps the composited canvas onto dst through the current tilt
// matrix. A matrix without perspective (the card at rest) takes the
// DrawImage path.
func (c *TiltCard) drawTilted(dst *ebiten.Image) {
	canvas := c.composite()
	m := c.Matrix()
	c.drawn = c.Bounds()

	if m.IsAffine() {
		c.imgOp.GeoM = affineGeoM(m)
		c.imgOp.GeoM.Translate(c.X, c.Y)
		c.imgOp.ColorScale.Reset()
		dst.DrawImage(canvas, &c.imgOp)
		return
	}

	c.mesh.build(c.cfg.GridSize, float64(c.canvas.Width()), float64(c.canvas.Height()))
	c.mesh.project(m, Vec2{X: c.X, Y: c.Y})
	c.drawn = c.drawn.Union(c.mesh.bounds())
	c.triOp.Filter = ebiten.FilterLinear
	dst.DrawTriangles(c.mesh.verts, c.mesh.inds, canvas, &c.triOp)
}

// affineGeoM converts an affine Matrix to an ebiten.GeoM.
func affineGeoM(m Matrix) ebiten.GeoM {
	e := m.Affine()
	var g ebiten.GeoM
	g.SetElement(0, 0, e[0])
	g.SetElement(1, 0, e[1])
	g.SetElement(0, 1, e[2])
	g.SetElement(1, 1, e[3])
	g.SetElement(0, 2, e[4])
	g.SetElement(1, 2, e[5])
	return g
}

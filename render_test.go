package tiltcard

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestTiltMeshBuildCounts(t *testing.T) {
	var m tiltMesh
	m.build(8, 300, 400)
	if len(m.verts) != 81 {
		t.Errorf("verts = %d, want 81", len(m.verts))
	}
	if len(m.inds) != 384 {
		t.Errorf("inds = %d, want 384", len(m.inds))
	}
	last := m.verts[len(m.verts)-1]
	if last.SrcX != 300 || last.SrcY != 400 {
		t.Errorf("last vertex src = (%v, %v), want (300, 400)", last.SrcX, last.SrcY)
	}
	for _, idx := range m.inds {
		if int(idx) >= len(m.verts) {
			t.Fatalf("index %d out of range", idx)
		}
	}
}

func TestTiltMeshBuildCached(t *testing.T) {
	var m tiltMesh
	m.build(4, 100, 100)
	verts := m.verts
	m.build(4, 100, 100)
	if &m.verts[0] != &verts[0] {
		t.Error("unchanged layout should reuse the mesh")
	}
	m.build(4, 200, 100)
	if m.rest[len(m.rest)-1].X != 200 {
		t.Error("resize should rebuild the mesh")
	}
}

func TestTiltMeshMinimumCells(t *testing.T) {
	var m tiltMesh
	m.build(0, 10, 10)
	if len(m.verts) != 4 || len(m.inds) != 6 {
		t.Errorf("verts=%d inds=%d, want 4 and 6", len(m.verts), len(m.inds))
	}
}

func TestTiltMeshProjectIdentity(t *testing.T) {
	var m tiltMesh
	m.build(2, 300, 400)
	m.project(IdentityMatrix, Vec2{X: 170, Y: 40})
	if got := m.bounds(); got != (Rect{X: 170, Y: 40, Width: 300, Height: 400}) {
		t.Errorf("bounds = %+v, want card rect", got)
	}
	for i, v := range m.verts {
		if v.DstX != v.SrcX+170 || v.DstY != v.SrcY+40 {
			t.Fatalf("vertex %d dst = (%v, %v)", i, v.DstX, v.DstY)
		}
	}
}

func TestTiltMeshProjectTilted(t *testing.T) {
	var m tiltMesh
	m.build(8, 300, 400)
	mat := TiltMatrix(NewCamera(), 0, 10, 1, Vec2{X: 150, Y: 200})
	m.project(mat, Vec2{})

	// Right column is further away, so it is shorter than the left column.
	topLeft, bottomLeft := m.verts[0], m.verts[72]
	topRight, bottomRight := m.verts[8], m.verts[80]
	left := bottomLeft.DstY - topLeft.DstY
	right := bottomRight.DstY - topRight.DstY
	if right >= left {
		t.Errorf("right edge %v should be shorter than left edge %v", right, left)
	}
	// The centre vertex stays put.
	centre := m.verts[40]
	if !approxEqual(float64(centre.DstX), 150, 1e-3) || !approxEqual(float64(centre.DstY), 200, 1e-3) {
		t.Errorf("centre = (%v, %v), want (150, 200)", centre.DstX, centre.DstY)
	}
}

func TestTiltMeshBoundsEmpty(t *testing.T) {
	var m tiltMesh
	if got := m.bounds(); got != (Rect{}) {
		t.Errorf("empty bounds = %+v", got)
	}
}

func TestDrawPaths(t *testing.T) {
	screen := ebiten.NewImage(640, 480)
	defer screen.Deallocate()

	unbound := newTestCard(t)
	unbound.Draw(screen)
	if unbound.canvas != nil {
		t.Error("unbound card should draw without a canvas")
	}

	c := newAttachedCard(t)
	c.X, c.Y = 170, 40
	c.Draw(screen)
	if c.canvas == nil {
		t.Fatal("bound card should composite into a canvas")
	}
	if len(c.mesh.verts) != 0 {
		t.Error("resting card should skip the mesh")
	}
	if c.drawn != c.Bounds() {
		t.Errorf("resting drawn = %+v, want %+v", c.drawn, c.Bounds())
	}

	press(c, 300, 0)
	settle(c)
	c.Draw(screen)
	if len(c.mesh.verts) != 81 {
		t.Errorf("tilted mesh verts = %d, want 81", len(c.mesh.verts))
	}
	b := c.mesh.bounds()
	// Rotation about Y foreshortens the card horizontally.
	if b.Width >= 300 {
		t.Errorf("tilted width = %v, want < 300", b.Width)
	}
	if c.drawn != c.Bounds().Union(b) {
		t.Errorf("tilted drawn = %+v, want card and mesh union", c.drawn)
	}
	c.Dispose()
}

func TestTiltedCaptureRegionCoversMesh(t *testing.T) {
	screen := ebiten.NewImage(640, 480)
	defer screen.Deallocate()

	c := newAttachedCard(t)
	c.X, c.Y = 170, 40
	press(c, 300, 0)
	settle(c)
	c.Draw(screen)
	defer c.Dispose()

	// Tilting on both axes shears the card taller than its rest height.
	b := c.mesh.bounds()
	if b.Height <= 400 {
		t.Fatalf("tilted height = %v, want > 400", b.Height)
	}
	region := captureRegion(c.drawn, screen.Bounds())
	if float64(region.Min.Y) > b.Y || float64(region.Max.Y) < b.Y+b.Height {
		t.Errorf("capture region %v misses mesh rows %v..%v", region, b.Y, b.Y+b.Height)
	}
}

func TestAffineGeoM(t *testing.T) {
	m := Matrix{2, 0.5, 10, 0.25, 3, 20, 0, 0, 1}
	g := affineGeoM(m)
	for _, p := range [][2]float64{{0, 0}, {4, 6}, {-3, 11}} {
		wx, wy := m.MapPoint(p[0], p[1])
		gx, gy := g.Apply(p[0], p[1])
		if !approxEqual(gx, wx, epsilon) || !approxEqual(gy, wy, epsilon) {
			t.Errorf("GeoM.Apply(%v) = (%v, %v), want (%v, %v)", p, gx, gy, wx, wy)
		}
	}
}

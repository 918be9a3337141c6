package tiltcard

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func matrixApproxEqual(a, b Matrix, eps float64) bool {
	for i := range a {
		if !approxEqual(a[i], b[i], eps) {
			return false
		}
	}
	return true
}

func TestMatrixMulIdentity(t *testing.T) {
	m := Matrix{2, 1, 5, 0, 3, -4, 0.001, 0.002, 1}
	if got := m.Mul(IdentityMatrix); got != m {
		t.Errorf("m * I = %v, want %v", got, m)
	}
	if got := IdentityMatrix.Mul(m); got != m {
		t.Errorf("I * m = %v, want %v", got, m)
	}
}

func TestMatrixMulOrder(t *testing.T) {
	scale := Matrix{2, 0, 0, 0, 2, 0, 0, 0, 1}
	// Translate first, then scale.
	m := scale.Mul(TranslateMatrix(10, 5))
	x, y := m.MapPoint(1, 1)
	if !approxEqual(x, 22, epsilon) || !approxEqual(y, 12, epsilon) {
		t.Errorf("MapPoint = (%v, %v), want (22, 12)", x, y)
	}
}

func TestPreAndPostTranslate(t *testing.T) {
	scale := Matrix{2, 0, 0, 0, 2, 0, 0, 0, 1}

	x, y := scale.PreTranslate(10, 0).MapPoint(0, 0)
	if !approxEqual(x, 20, epsilon) || !approxEqual(y, 0, epsilon) {
		t.Errorf("PreTranslate MapPoint = (%v, %v), want (20, 0)", x, y)
	}
	x, y = scale.PostTranslate(10, 0).MapPoint(0, 0)
	if !approxEqual(x, 10, epsilon) || !approxEqual(y, 0, epsilon) {
		t.Errorf("PostTranslate MapPoint = (%v, %v), want (10, 0)", x, y)
	}
}

func TestAboutPivotKeepsPivotFixed(t *testing.T) {
	m := Matrix{0.5, 0.1, 0, -0.2, 0.8, 0, 0.0004, -0.0003, 1}.AboutPivot(150, 200)
	x, y := m.MapPoint(150, 200)
	if !approxEqual(x, 150, epsilon) || !approxEqual(y, 200, epsilon) {
		t.Errorf("pivot maps to (%v, %v), want (150, 200)", x, y)
	}
}

func TestDampPerspective(t *testing.T) {
	m := Matrix{1, 2, 3, 4, 5, 6, 7, 8, 9}
	got := m.DampPerspective(1000)
	want := Matrix{1, 2, 3, 4, 5, 6, 0.007, 0.008, 9}
	if !matrixApproxEqual(got, want, epsilon) {
		t.Errorf("DampPerspective = %v, want %v", got, want)
	}
	if m[MPersp0] != 7 {
		t.Error("DampPerspective must not modify the receiver")
	}
	if m.DampPerspective(0) != m || m.DampPerspective(-5) != m {
		t.Error("non-positive factor should leave the matrix unchanged")
	}
}

func TestMapPointPerspectiveDivide(t *testing.T) {
	m := Matrix{1, 0, 0, 0, 1, 0, 0.01, 0, 1}
	x, y := m.MapPoint(100, 50)
	// w = 0.01*100 + 1 = 2
	if !approxEqual(x, 50, epsilon) || !approxEqual(y, 25, epsilon) {
		t.Errorf("MapPoint = (%v, %v), want (50, 25)", x, y)
	}
}

func TestMapPointDegenerateW(t *testing.T) {
	m := Matrix{1, 0, 0, 0, 1, 0, 0, 0, 0}
	x, y := m.MapPoint(3, 4)
	if x != 3 || y != 4 {
		t.Errorf("MapPoint with w=0 = (%v, %v), want input (3, 4)", x, y)
	}
}

func TestIsAffine(t *testing.T) {
	if !IdentityMatrix.IsAffine() {
		t.Error("identity should be affine")
	}
	if !TranslateMatrix(5, 5).IsAffine() {
		t.Error("translation should be affine")
	}
	if (Matrix{1, 0, 0, 0, 1, 0, 0.001, 0, 1}).IsAffine() {
		t.Error("perspective matrix should not be affine")
	}
}

func TestAffineLayout(t *testing.T) {
	m := Matrix{1, 2, 3, 4, 5, 6, 0, 0, 1}
	want := [6]float64{1, 4, 2, 5, 3, 6}
	if got := m.Affine(); got != want {
		t.Errorf("Affine = %v, want %v", got, want)
	}
}

func TestInvertRoundTrip(t *testing.T) {
	m := Matrix{0.98, 0.03, 4, -0.02, 0.99, -7, 0.0002, -0.0001, 1}
	got := m.Mul(m.Invert())
	if !matrixApproxEqual(got, IdentityMatrix, 1e-9) {
		t.Errorf("m * m^-1 = %v, want identity", got)
	}

	x, y := m.MapPoint(120, 80)
	bx, by := m.Invert().MapPoint(x, y)
	if !approxEqual(bx, 120, 1e-6) || !approxEqual(by, 80, 1e-6) {
		t.Errorf("inverse MapPoint = (%v, %v), want (120, 80)", bx, by)
	}
}

func TestInvertSingular(t *testing.T) {
	m := Matrix{1, 2, 0, 2, 4, 0, 0, 0, 1}
	if got := m.Invert(); got != IdentityMatrix {
		t.Errorf("singular Invert = %v, want identity", got)
	}
}

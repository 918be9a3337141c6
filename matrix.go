package tiltcard

// Matrix is a 3x3 homogeneous transform stored row-major:
//
//	| m[0] m[1] m[2] |     x' = (m[0]*x + m[1]*y + m[2]) / w
//	| m[3] m[4] m[5] |     y' = (m[3]*x + m[4]*y + m[5]) / w
//	| m[6] m[7] m[8] |     w  =  m[6]*x + m[7]*y + m[8]
//
// m[6] and m[7] are the perspective terms. With both zero and m[8] == 1 the
// matrix is an ordinary affine transform.
type Matrix [9]float64

// Indices of the perspective row.
const (
	MPersp0 = 6
	MPersp1 = 7
	MPersp2 = 8
)

// IdentityMatrix is the identity transform.
var IdentityMatrix = Matrix{1, 0, 0, 0, 1, 0, 0, 0, 1}

// TranslateMatrix returns a pure translation.
func TranslateMatrix(tx, ty float64) Matrix {
	return Matrix{1, 0, tx, 0, 1, ty, 0, 0, 1}
}

// Mul returns m * o, which applies o first and m second.
func (m Matrix) Mul(o Matrix) Matrix {
	var r Matrix
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			r[row*3+col] = m[row*3]*o[col] + m[row*3+1]*o[3+col] + m[row*3+2]*o[6+col]
		}
	}
	return r
}

// PreTranslate returns m * T(tx, ty): the translation is applied before m.
func (m Matrix) PreTranslate(tx, ty float64) Matrix {
	return m.Mul(TranslateMatrix(tx, ty))
}

// PostTranslate returns T(tx, ty) * m: the translation is applied after m.
func (m Matrix) PostTranslate(tx, ty float64) Matrix {
	return TranslateMatrix(tx, ty).Mul(m)
}

// AboutPivot re-centres m so that it operates around (px, py) instead of the
// origin: translate the pivot to the origin, apply m, translate back.
func (m Matrix) AboutPivot(px, py float64) Matrix {
	return m.PreTranslate(-px, -py).PostTranslate(px, py)
}

// DampPerspective divides the perspective terms m[6] and m[7] by factor.
// A factor <= 0 leaves m unchanged.
func (m Matrix) DampPerspective(factor float64) Matrix {
	if factor <= 0 {
		return m
	}
	m[MPersp0] /= factor
	m[MPersp1] /= factor
	return m
}

// MapPoint applies m to (x, y), including the perspective divide.
// A point that projects to w == 0 is returned unchanged.
func (m Matrix) MapPoint(x, y float64) (float64, float64) {
	w := m[6]*x + m[7]*y + m[8]
	if w > -1e-12 && w < 1e-12 {
		return x, y
	}
	return (m[0]*x + m[1]*y + m[2]) / w, (m[3]*x + m[4]*y + m[5]) / w
}

// IsAffine reports whether m has no perspective component.
func (m Matrix) IsAffine() bool {
	return m[6] == 0 && m[7] == 0 && m[8] == 1
}

// Invert returns the inverse of m. Returns the identity matrix if m is
// singular (determinant near 0).
func (m Matrix) Invert() Matrix {
	a, b, c := m[0], m[1], m[2]
	d, e, f := m[3], m[4], m[5]
	g, h, i := m[6], m[7], m[8]

	c00 := e*i - f*h
	c01 := -(d*i - f*g)
	c02 := d*h - e*g

	det := a*c00 + b*c01 + c*c02
	if det > -1e-12 && det < 1e-12 {
		return IdentityMatrix
	}
	inv := 1.0 / det
	return Matrix{
		c00 * inv, (c*h - b*i) * inv, (b*f - c*e) * inv,
		c01 * inv, (a*i - c*g) * inv, (c*d - a*f) * inv,
		c02 * inv, (b*g - a*h) * inv, (a*e - b*d) * inv,
	}
}

// Affine returns the affine part of m column by column as
// [a, b, c, d, tx, ty], where x' = a*x + c*y + tx and y' = b*x + d*y + ty.
// Only meaningful when IsAffine is true.
func (m Matrix) Affine() [6]float64 {
	return [6]float64{m[0], m[3], m[1], m[4], m[2], m[5]}
}

// Package geometry implements the 2D vector, 3x3 homogeneous matrix, and
// ray primitives the region locator uses to fit and rectify a perspective
// grid onto a candidate symbol.
package geometry

import "math"

// almostZero is the magnitude below which a vector or determinant is
// treated as degenerate.
const almostZero = 0.0000001

// Vector2 is a point or direction in the image plane.
type Vector2 struct {
	X, Y float64
}

// Add returns v1+v2.
func Add(v1, v2 Vector2) Vector2 {
	return Vector2{v1.X + v2.X, v1.Y + v2.Y}
}

// Sub returns v1-v2.
func Sub(v1, v2 Vector2) Vector2 {
	return Vector2{v1.X - v2.X, v1.Y - v2.Y}
}

// ScaleVec returns v scaled by s.
func ScaleVec(v Vector2, s float64) Vector2 {
	return Vector2{v.X * s, v.Y * s}
}

// Cross returns the 2D cross product (a scalar: the z component of the
// 3D cross product of the two vectors extended into the plane).
func Cross(v1, v2 Vector2) float64 {
	return v1.X*v2.Y - v1.Y*v2.X
}

// Dot returns the dot product.
func Dot(v1, v2 Vector2) float64 {
	return v1.X*v2.X + v1.Y*v2.Y
}

// Mag returns the Euclidean length of v.
func Mag(v Vector2) float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Norm scales v to unit length in place and returns its original
// magnitude, or -1 if v is too close to zero to normalize.
func Norm(v *Vector2) float64 {
	mag := Mag(*v)
	if mag <= almostZero {
		return -1.0
	}
	*v = ScaleVec(*v, 1/mag)
	return mag
}

// Ray2 is a point (P) and a unit direction (V) through that point.
type Ray2 struct {
	P Vector2
	V Vector2
}

// DistanceFromRay returns the signed perpendicular distance from q to the
// ray's line of travel (positive on one side, negative on the other,
// per the sign of Cross).
func DistanceFromRay(r Ray2, q Vector2) float64 {
	return Cross(r.V, Sub(q, r.P))
}

// DistanceAlongRay returns the signed distance along r's direction at
// which q's projection falls, relative to r.P.
func DistanceAlongRay(r Ray2, q Vector2) float64 {
	return Dot(Sub(q, r.P), r.V)
}

// Intersect finds the point where rays p0 and p1 cross. ok is false when
// the rays are parallel (or nearly so).
func Intersect(p0, p1 Ray2) (point Vector2, ok bool) {
	denom := Cross(p1.V, p0.V)
	if math.Abs(denom) <= almostZero {
		return Vector2{}, false
	}
	w := Sub(p1.P, p0.P)
	numer := Cross(p1.V, w)
	return PointAlong(p0, numer/denom), true
}

// PointAlong returns the point at parameter t along ray r (r.P + t*r.V).
func PointAlong(r Ray2, t float64) Vector2 {
	return Add(r.P, ScaleVec(r.V, t))
}

package region

import (
	"math"
	"sort"

	"github.com/dmtxgo/dmtx/internal/geometry"
	"github.com/dmtxgo/dmtx/raster"
)

// minLineLength is the shortest finder arm accepted as real, in pixels.
const minLineLength = 8.0

// minSolidFraction is the smallest share of dark samples along both of a
// corner's adjacent rectangle edges for that corner to be accepted as the
// finder's solid corner. The clock-track edges alternate dark/light and
// score near 0.5, well below this.
const minSolidFraction = 0.7

// edgeInset is how far inside the fitted rectangle the solid-corner probe
// samples, in pixels, so the samples land within the one-module-thick
// finder bars rather than on their anti-aliased outer boundary.
const edgeInset = 2.0

// edgeCaptureDist is how far a boundary pixel may sit from a rectangle
// edge and still feed that edge's least-squares line refit.
const edgeCaptureDist = 2.5

// minEdgeFitPoints is the fewest captured boundary pixels a solid edge
// needs before its refit line is trusted.
const minEdgeFitPoints = 8

// quad is a fitted parallelogram: an origin corner plus the two edge
// vectors spanning it.
type quad struct {
	corner geometry.Vector2
	uVec   geometry.Vector2
	vVec   geometry.Vector2
}

func (q quad) corners() [4]geometry.Vector2 {
	return [4]geometry.Vector2{
		q.corner,
		geometry.Add(q.corner, q.uVec),
		geometry.Add(geometry.Add(q.corner, q.uVec), q.vVec),
		geometry.Add(q.corner, q.vVec),
	}
}

// fitCorner fits the located component's boundary with its minimum-area
// enclosing rectangle, identifies which rectangle corner is the
// finder's solid corner, and refits the two solid edges to verify the
// corner angle against the square-deviation limit. Stands in for
// dmtxregion.c's FindBestSolidLine/MatrixRegionOrientation pair: the
// solid L spans the symbol's full footprint, so the minimum-area
// rectangle around the module component recovers the same quadrilateral
// the original's two strongest-line fits produce, and the per-edge
// darkness probe plus refit below replace its polarity/condition branch
// for assigning corners.
func fitCorner(img *raster.Image, seed flowPoint, polarity int, p Params) (corner, uDir, vDir geometry.Vector2, uLen, vLen float64, ok bool) {
	ax, ay, ok := darkAnchor(img, seed, polarity)
	if !ok {
		return geometry.Vector2{}, geometry.Vector2{}, geometry.Vector2{}, 0, 0, false
	}

	boundary, ok := blazeComponent(img, ax, ay, polarity, p)
	if !ok {
		return geometry.Vector2{}, geometry.Vector2{}, geometry.Vector2{}, 0, 0, false
	}

	hull := convexHull(boundary)
	if len(hull) < 3 {
		return geometry.Vector2{}, geometry.Vector2{}, geometry.Vector2{}, 0, 0, false
	}

	q, ok := minAreaRect(hull)
	if !ok {
		return geometry.Vector2{}, geometry.Vector2{}, geometry.Vector2{}, 0, 0, false
	}

	return orientSolidCorner(img, q, boundary, polarity, p)
}

// convexHull returns the convex hull of points in counterclockwise order
// (Andrew's monotone chain).
func convexHull(points []geometry.Vector2) []geometry.Vector2 {
	if len(points) < 3 {
		return points
	}
	pts := append([]geometry.Vector2(nil), points...)
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X != pts[j].X {
			return pts[i].X < pts[j].X
		}
		return pts[i].Y < pts[j].Y
	})

	cross := func(o, a, b geometry.Vector2) float64 {
		return geometry.Cross(geometry.Sub(a, o), geometry.Sub(b, o))
	}

	hull := make([]geometry.Vector2, 0, len(pts))
	for _, p := range pts {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := len(pts) - 2; i >= 0; i-- {
		p := pts[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	return hull[:len(hull)-1]
}

// minAreaRect finds the minimum-area rectangle enclosing hull by rotating
// calipers: the optimal rectangle shares a direction with some hull edge.
func minAreaRect(hull []geometry.Vector2) (quad, bool) {
	bestArea := math.Inf(1)
	var best quad
	found := false

	for i := range hull {
		edge := geometry.Sub(hull[(i+1)%len(hull)], hull[i])
		u := edge
		if geometry.Norm(&u) < 0 {
			continue
		}
		v := geometry.Vector2{X: -u.Y, Y: u.X}

		minU, maxU := math.Inf(1), math.Inf(-1)
		minV, maxV := math.Inf(1), math.Inf(-1)
		for _, p := range hull {
			su, sv := geometry.Dot(p, u), geometry.Dot(p, v)
			minU, maxU = math.Min(minU, su), math.Max(maxU, su)
			minV, maxV = math.Min(minV, sv), math.Max(maxV, sv)
		}

		w, h := maxU-minU, maxV-minV
		if w*h < bestArea {
			bestArea = w * h
			best = quad{
				corner: geometry.Add(geometry.ScaleVec(u, minU), geometry.ScaleVec(v, minV)),
				uVec:   geometry.ScaleVec(u, w),
				vVec:   geometry.ScaleVec(v, h),
			}
			found = true
		}
	}
	return best, found
}

// orientSolidCorner probes each corner of q for the finder's solid L (the
// one corner whose two adjacent rectangle edges both read uniformly
// dark), then refits those two edges from the boundary pixels and checks
// the measured corner angle against the square-deviation limit. The
// returned basis is ordered so the u arm crosses the v arm positively
// (u is the symbol's bottom edge, v its left edge, in this package's
// bottom-left-origin pixel space).
func orientSolidCorner(img *raster.Image, q quad, boundary []geometry.Vector2, polarity int, p Params) (corner, uDir, vDir geometry.Vector2, uLen, vLen float64, ok bool) {
	cs := q.corners()
	bestIdx, bestScore := -1, 0.0

	for i := range cs {
		e1 := geometry.Sub(cs[(i+1)%4], cs[i])
		e2 := geometry.Sub(cs[(i+3)%4], cs[i])
		f1 := edgeDarkFraction(img, cs[i], e1, e2, polarity)
		f2 := edgeDarkFraction(img, cs[i], e2, e1, polarity)
		score := math.Min(f1, f2)
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}
	if bestIdx < 0 || bestScore < minSolidFraction {
		return geometry.Vector2{}, geometry.Vector2{}, geometry.Vector2{}, 0, 0, false
	}

	corner = cs[bestIdx]
	u := geometry.Sub(cs[(bestIdx+1)%4], corner)
	v := geometry.Sub(cs[(bestIdx+3)%4], corner)
	uLen = geometry.Norm(&u)
	vLen = geometry.Norm(&v)
	if uLen < minLineLength || vLen < minLineLength {
		return geometry.Vector2{}, geometry.Vector2{}, geometry.Vector2{}, 0, 0, false
	}

	// Refit each solid edge from its nearby boundary pixels, the
	// calibration-edge update of MatrixRegionUpdateXfrms in miniature:
	// the measured angle between the two arms must sit within the
	// square-deviation limit, and their intersection pins the corner
	// more precisely than the rectangle fit alone.
	rayU, okU := fitEdgeLine(boundary, corner, u, uLen)
	rayV, okV := fitEdgeLine(boundary, corner, v, vLen)
	if !okU || !okV {
		return geometry.Vector2{}, geometry.Vector2{}, geometry.Vector2{}, 0, 0, false
	}
	if math.Abs(geometry.Cross(rayU.V, rayV.V)) < p.SquareDevnCos {
		return geometry.Vector2{}, geometry.Vector2{}, geometry.Vector2{}, 0, 0, false
	}
	if refined, okC := geometry.Intersect(rayU, rayV); okC {
		corner = refined
		u, v = rayU.V, rayV.V
	}

	// The mapping convention needs u along the symbol's columns and v
	// along its rows, counterclockwise in Y-up pixel space.
	if geometry.Cross(u, v) < 0 {
		u, v = v, u
		uLen, vLen = vLen, uLen
	}
	return corner, u, v, uLen, vLen, true
}

// fitEdgeLine least-squares fits a line through the boundary pixels
// lying within edgeCaptureDist of the rectangle edge running from corner
// along dir (unit length) for length pixels. The returned ray's
// direction is oriented to agree with dir.
func fitEdgeLine(boundary []geometry.Vector2, corner, dir geometry.Vector2, length float64) (geometry.Ray2, bool) {
	var pts []geometry.Vector2
	for _, p := range boundary {
		rel := geometry.Sub(p, corner)
		along := geometry.Dot(rel, dir)
		if along < -edgeCaptureDist || along > length+edgeCaptureDist {
			continue
		}
		if math.Abs(geometry.Cross(dir, rel)) > edgeCaptureDist {
			continue
		}
		pts = append(pts, p)
	}
	if len(pts) < minEdgeFitPoints {
		return geometry.Ray2{}, false
	}

	var cx, cy float64
	for _, p := range pts {
		cx += p.X
		cy += p.Y
	}
	cx /= float64(len(pts))
	cy /= float64(len(pts))

	var sxx, sxy, syy float64
	for _, p := range pts {
		dx, dy := p.X-cx, p.Y-cy
		sxx += dx * dx
		sxy += dx * dy
		syy += dy * dy
	}
	theta := 0.5 * math.Atan2(2*sxy, sxx-syy)
	d := geometry.Vector2{X: math.Cos(theta), Y: math.Sin(theta)}
	if geometry.Dot(d, dir) < 0 {
		d = geometry.ScaleVec(d, -1)
	}
	return geometry.Ray2{P: geometry.Vector2{X: cx, Y: cy}, V: d}, true
}

// edgeDarkFraction samples along the rectangle edge from origin along
// edge, inset toward the rectangle interior (the direction of inward),
// and returns the share of samples that read polarized-dark.
func edgeDarkFraction(img *raster.Image, origin, edge, inward geometry.Vector2, polarity int) float64 {
	in := inward
	if geometry.Norm(&in) < 0 {
		return 0
	}
	length := geometry.Mag(edge)
	n := int(length / 3)
	if n < 8 {
		n = 8
	}
	if n > 64 {
		n = 64
	}

	darkCount, valid := 0, 0
	for k := 0; k < n; k++ {
		t := (float64(k) + 0.5) / float64(n)
		p := geometry.Add(geometry.Add(origin, geometry.ScaleVec(edge, t)), geometry.ScaleVec(in, edgeInset))
		v, inBounds := polarizedValue(img, int(p.X+0.5), int(p.Y+0.5), polarity)
		if !inBounds {
			continue
		}
		valid++
		if v < darkThreshold {
			darkCount++
		}
	}
	if valid == 0 {
		return 0
	}
	return float64(darkCount) / float64(valid)
}

package geometry

import "math"

// Scale maps pixel vertices to real-world vertices by multiplying every
// coordinate with feetPerPixel. Scaling is uniform and isotropic; there
// is no independent x/y factor.
func Scale(points []Point, feetPerPixel float64) []PointF {
	out := make([]PointF, len(points))
	for i, p := range points {
		out[i] = PointF{
			X: float64(p.X) * feetPerPixel,
			Y: float64(p.Y) * feetPerPixel,
		}
	}
	return out
}

// Area computes a simple polygon's area with the shoelace formula:
// half the absolute sum of cross products of consecutive vertex pairs.
// Polygons with fewer than 3 vertices have zero area.
func Area(points []PointF) float64 {
	if len(points) < 3 {
		return 0
	}
	var sum float64
	n := len(points)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += points[i].X*points[j].Y - points[j].X*points[i].Y
	}
	return math.Abs(sum) / 2
}

// Perimeter sums Euclidean distances between consecutive vertices.
// When closed is true the loop back to the first vertex is included
// (polygon perimeter); otherwise the path is left open (polyline length).
func Perimeter(points []PointF, closed bool) float64 {
	if len(points) < 2 {
		return 0
	}
	var sum float64
	for i := 1; i < len(points); i++ {
		sum += dist(points[i-1], points[i])
	}
	if closed {
		sum += dist(points[len(points)-1], points[0])
	}
	return sum
}

// PixelDistance returns the Euclidean distance between two pixel points.
func PixelDistance(a, b Point) float64 {
	return math.Hypot(float64(b.X-a.X), float64(b.Y-a.Y))
}

// BoundingBox returns the smallest axis-aligned rectangle enclosing all
// points of all given shapes. ok is false when no points exist.
func BoundingBox(shapes ...[]Point) (Rect, bool) {
	r := Rect{MinX: math.MaxInt32, MinY: math.MaxInt32, MaxX: math.MinInt32, MaxY: math.MinInt32}
	found := false
	for _, pts := range shapes {
		for _, p := range pts {
			found = true
			if p.X < r.MinX {
				r.MinX = p.X
			}
			if p.X > r.MaxX {
				r.MaxX = p.X
			}
			if p.Y < r.MinY {
				r.MinY = p.Y
			}
			if p.Y > r.MaxY {
				r.MaxY = p.Y
			}
		}
	}
	if !found {
		return Rect{}, false
	}
	return r, true
}

func dist(a, b PointF) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

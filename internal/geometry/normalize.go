package geometry

const (
	// minPolygonVertices is the fewest vertices a room outline can have.
	minPolygonVertices = 3

	// minRoomAreaSqFt is the noise floor: contours whose scaled area
	// falls below this are measurement artifacts, not rooms.
	minRoomAreaSqFt = 1e-3
)

// NormalizeRooms maps pixel-space room polygons into real-world shapes
// using the resolved scale, computing area and closed perimeter for
// each. Degenerate shapes (fewer than 3 vertices, or area under the
// noise floor) are dropped; the caller is responsible for synthesizing
// fallback geometry when nothing survives.
func NormalizeRooms(rooms []PixelShape, feetPerPixel float64) []Shape {
	out := make([]Shape, 0, len(rooms))
	for _, room := range rooms {
		if len(room.Points) < minPolygonVertices {
			continue
		}
		pts := Scale(room.Points, feetPerPixel)
		area := Area(pts)
		if area < minRoomAreaSqFt {
			continue
		}
		out = append(out, Shape{
			Name:        room.Name,
			Points:      pts,
			AreaSqFt:    area,
			PerimeterFt: Perimeter(pts, true),
		})
	}
	return out
}

// NormalizeWalls maps pixel-space wall polylines into real-world shapes.
// Walls are open paths: PerimeterFt holds the run length and AreaSqFt is
// zero. Polylines with fewer than 2 vertices are dropped.
func NormalizeWalls(walls []PixelShape, feetPerPixel float64) []Shape {
	out := make([]Shape, 0, len(walls))
	for _, wall := range walls {
		if len(wall.Points) < 2 {
			continue
		}
		pts := Scale(wall.Points, feetPerPixel)
		out = append(out, Shape{
			Name:        wall.Name,
			Points:      pts,
			PerimeterFt: Perimeter(pts, false),
		})
	}
	return out
}

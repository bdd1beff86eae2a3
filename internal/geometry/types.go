package geometry

import (
	"encoding/json"
	"fmt"
)

// Point is a 2D coordinate in pixel space.
//
// It marshals as a two-element JSON array [x, y], which is the format
// the line/contour detection collaborator emits for endpoints.
type Point struct {
	X int // Horizontal position (0 = leftmost)
	Y int // Vertical position (0 = topmost)
}

// MarshalJSON encodes the point as [x, y].
func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{p.X, p.Y})
}

// UnmarshalJSON decodes a [x, y] array.
func (p *Point) UnmarshalJSON(data []byte) error {
	var xy [2]int
	if err := json.Unmarshal(data, &xy); err != nil {
		return fmt.Errorf("point must be a [x, y] array: %w", err)
	}
	p.X, p.Y = xy[0], xy[1]
	return nil
}

// PointF is a 2D coordinate in real-world units (feet).
// Like Point it marshals as a two-element array.
type PointF struct {
	X float64
	Y float64
}

// MarshalJSON encodes the point as [x, y].
func (p PointF) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{p.X, p.Y})
}

// UnmarshalJSON decodes a [x, y] array.
func (p *PointF) UnmarshalJSON(data []byte) error {
	var xy [2]float64
	if err := json.Unmarshal(data, &xy); err != nil {
		return fmt.Errorf("point must be a [x, y] array: %w", err)
	}
	p.X, p.Y = xy[0], xy[1]
	return nil
}

// Rect is an axis-aligned rectangle in pixel coordinates.
type Rect struct {
	MinX int `json:"minx"`
	MinY int `json:"miny"`
	MaxX int `json:"maxx"`
	MaxY int `json:"maxy"`
}

// Width returns the horizontal extent in pixels.
func (r Rect) Width() int { return r.MaxX - r.MinX }

// Height returns the vertical extent in pixels.
func (r Rect) Height() int { return r.MaxY - r.MinY }

// Perimeter returns the rectangle perimeter in pixels.
func (r Rect) Perimeter() float64 { return 2 * float64(r.Width()+r.Height()) }

// PixelShape is a polygon (room outline) or polyline (wall run) in
// pixel coordinates, as produced by the contour detection collaborator.
type PixelShape struct {
	// Name is an optional room label recognized near the shape
	// (e.g. "KITCHEN"). May be empty.
	Name string `json:"name,omitempty"`

	// Points are the ordered vertices in pixel space. Polygons are
	// implicitly closed; the last vertex need not repeat the first.
	Points []Point `json:"points"`
}

// Shape is a polygon or polyline in real-world units with its derived
// measurements. It inherits the identity of the pixel shape it was
// normalized from, or carries a synthetic tag when fabricated.
type Shape struct {
	// Name inherits the source shape's label. Synthesized shapes use
	// the reserved names "GrossArea", "SyntheticArea", or "Room<N>".
	Name string `json:"name,omitempty"`

	// Points are the vertices in feet.
	Points []PointF `json:"points"`

	// AreaSqFt is the shoelace area in square feet. Zero for polylines.
	AreaSqFt float64 `json:"area_sqft"`

	// PerimeterFt is the closed perimeter for polygons, or the open
	// path length for polylines, in feet.
	PerimeterFt float64 `json:"perimeter_ft"`

	// Synthetic marks fabricated geometry. Downstream consumers must
	// not present synthetic measurements as authoritative.
	Synthetic bool `json:"synthetic,omitempty"`
}

// Package walls classifies raw wall line segments as exterior or
// interior and aggregates their lengths in real-world units.
//
// Classification is positional: a segment with either endpoint within a
// fixed margin of any image border belongs to the building envelope
// ("exterior"); everything else is interior partition. The aggregator
// also computes a bounding-box perimeter over all segment endpoints as
// an independent cross-check against the room-derived perimeter totals.
package walls

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/planscan/planmetrics/internal/geometry"
)

// DefaultMarginPx is the distance from an image border within which an
// endpoint counts as lying on the building's exterior boundary.
const DefaultMarginPx = 30

// Class is a wall segment classification.
type Class string

const (
	Exterior Class = "exterior"
	Interior Class = "interior"
)

// Segment is a raw wall line in pixel space.
type Segment struct {
	P1 geometry.Point `json:"p1"`
	P2 geometry.Point `json:"p2"`
}

// Classified is a segment with its class and derived measurements.
type Classified struct {
	Segment
	Class      Class   `json:"class"`
	AngleDeg   float64 `json:"angle_deg"`
	LengthPx   float64 `json:"length_px"`
	LengthFt   float64 `json:"length_ft"`
}

// Counts summarizes segment counts per class.
type Counts struct {
	Total    int `json:"total"`
	Exterior int `json:"exterior"`
	Interior int `json:"interior"`
}

// Metrics is the aggregate wall record for one run.
type Metrics struct {
	Segments []Classified  `json:"segments"`
	Counts   Counts        `json:"counts"`
	MarginPx int           `json:"margin_px"`
	BBoxPx   geometry.Rect `json:"bbox_px"`

	TotalFt    float64 `json:"total_length_ft"`
	ExteriorFt float64 `json:"exterior_length_ft"`
	InteriorFt float64 `json:"interior_length_ft"`

	// BBoxPerimeterFt is the perimeter of the endpoint bounding box in
	// real units, independent of the scale estimator's shape bbox.
	BBoxPerimeterFt float64 `json:"bbox_perimeter_ft"`
}

// SegmentsFromPolylines decomposes wall polylines into their
// consecutive-vertex line segments.
func SegmentsFromPolylines(walls []geometry.PixelShape) []Segment {
	var segs []Segment
	for _, w := range walls {
		for i := 1; i < len(w.Points); i++ {
			segs = append(segs, Segment{P1: w.Points[i-1], P2: w.Points[i]})
		}
	}
	return segs
}

// Measure classifies every segment against the image borders and
// aggregates per-class totals using the resolved scale.
//
// imageW and imageH are the source image dimensions in pixels. When
// they are unknown (zero), the segments' own bounding box stands in as
// the boundary frame so classification degrades instead of failing.
func Measure(segs []Segment, imageW, imageH, marginPx int, feetPerPixel float64) *Metrics {
	if marginPx <= 0 {
		marginPx = DefaultMarginPx
	}

	m := &Metrics{
		Segments: make([]Classified, 0, len(segs)),
		MarginPx: marginPx,
	}

	bbox, hasBBox := endpointBBox(segs)
	if hasBBox {
		m.BBoxPx = bbox
		m.BBoxPerimeterFt = bbox.Perimeter() * feetPerPixel
	}

	frame := geometry.Rect{MaxX: imageW, MaxY: imageH}
	if imageW <= 0 || imageH <= 0 {
		frame = bbox
	}

	extLens := make([]float64, 0, len(segs))
	intLens := make([]float64, 0, len(segs))

	for _, s := range segs {
		lengthPx := geometry.PixelDistance(s.P1, s.P2)
		c := Classified{
			Segment:  s,
			Class:    Interior,
			AngleDeg: angleDeg(s.P1, s.P2),
			LengthPx: lengthPx,
			LengthFt: lengthPx * feetPerPixel,
		}
		if nearBorder(s.P1, frame, marginPx) || nearBorder(s.P2, frame, marginPx) {
			c.Class = Exterior
		}

		if c.Class == Exterior {
			extLens = append(extLens, c.LengthFt)
			m.Counts.Exterior++
		} else {
			intLens = append(intLens, c.LengthFt)
			m.Counts.Interior++
		}
		m.Counts.Total++
		m.Segments = append(m.Segments, c)
	}

	m.ExteriorFt = floats.Sum(extLens)
	m.InteriorFt = floats.Sum(intLens)
	m.TotalFt = m.ExteriorFt + m.InteriorFt
	return m
}

// nearBorder reports whether p lies within marginPx of any edge of the
// boundary frame.
func nearBorder(p geometry.Point, frame geometry.Rect, marginPx int) bool {
	return p.X <= frame.MinX+marginPx ||
		p.X >= frame.MaxX-marginPx ||
		p.Y <= frame.MinY+marginPx ||
		p.Y >= frame.MaxY-marginPx
}

// angleDeg returns the segment direction normalized to [0, 180).
func angleDeg(p1, p2 geometry.Point) float64 {
	a := math.Atan2(float64(p2.Y-p1.Y), float64(p2.X-p1.X)) * 180 / math.Pi
	a = math.Mod(a+180, 180)
	if a < 0 {
		a += 180
	}
	return a
}

func endpointBBox(segs []Segment) (geometry.Rect, bool) {
	pts := make([]geometry.Point, 0, len(segs)*2)
	for _, s := range segs {
		pts = append(pts, s.P1, s.P2)
	}
	return geometry.BoundingBox(pts)
}

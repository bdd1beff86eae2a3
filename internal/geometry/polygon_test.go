package geometry

import (
	"encoding/json"
	"math"
	"testing"
)

func TestArea(t *testing.T) {
	tests := []struct {
		name   string
		points []PointF
		want   float64
	}{
		{"unit square", []PointF{{0, 0}, {1, 0}, {1, 1}, {0, 1}}, 1},
		{"10x20 rectangle", []PointF{{0, 0}, {10, 0}, {10, 20}, {0, 20}}, 200},
		{"right triangle", []PointF{{0, 0}, {4, 0}, {0, 3}}, 6},
		{"clockwise winding", []PointF{{0, 0}, {0, 1}, {1, 1}, {1, 0}}, 1},
		{"two points", []PointF{{0, 0}, {5, 5}}, 0},
		{"collinear", []PointF{{0, 0}, {1, 1}, {2, 2}}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Area(tt.points)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Area: got %.4f, want %.4f", got, tt.want)
			}
		})
	}
}

func TestPerimeter(t *testing.T) {
	square := []PointF{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	if got := Perimeter(square, true); math.Abs(got-40) > 1e-9 {
		t.Errorf("closed square perimeter: got %.4f, want 40", got)
	}
	if got := Perimeter(square, false); math.Abs(got-30) > 1e-9 {
		t.Errorf("open square path: got %.4f, want 30", got)
	}
	if got := Perimeter([]PointF{{0, 0}}, true); got != 0 {
		t.Errorf("single point: got %.4f, want 0", got)
	}
}

// Scaling coordinates by s must scale area by s².
func TestAreaScalingLaw(t *testing.T) {
	pixels := []Point{{0, 0}, {120, 10}, {140, 90}, {30, 100}, {5, 60}}
	pixelArea := Area(Scale(pixels, 1))

	for _, s := range []float64{0.02, 0.5, 3.25} {
		scaled := Scale(pixels, s)
		got := Area(scaled)
		want := pixelArea * s * s
		if math.Abs(got-want) > 1e-6*want {
			t.Errorf("scale %g: got area %.6f, want %.6f", s, got, want)
		}
	}
}

func TestScaleIsotropic(t *testing.T) {
	pts := Scale([]Point{{100, 250}}, 0.02)
	if pts[0].X != 2 || pts[0].Y != 5 {
		t.Errorf("Scale: got (%g, %g), want (2, 5)", pts[0].X, pts[0].Y)
	}
}

func TestPixelDistance(t *testing.T) {
	if d := PixelDistance(Point{0, 0}, Point{3, 4}); d != 5 {
		t.Errorf("PixelDistance: got %g, want 5", d)
	}
}

func TestBoundingBox(t *testing.T) {
	room := []Point{{10, 20}, {110, 20}, {110, 220}, {10, 220}}
	wall := []Point{{5, 50}, {300, 50}}

	r, ok := BoundingBox(room, wall)
	if !ok {
		t.Fatal("BoundingBox: no points found")
	}
	want := Rect{MinX: 5, MinY: 20, MaxX: 300, MaxY: 220}
	if r != want {
		t.Errorf("BoundingBox: got %+v, want %+v", r, want)
	}
	if r.Width() != 295 || r.Height() != 200 {
		t.Errorf("extent: got %dx%d, want 295x200", r.Width(), r.Height())
	}
	if got := r.Perimeter(); got != 990 {
		t.Errorf("perimeter: got %g, want 990", got)
	}

	if _, ok := BoundingBox(nil, []Point{}); ok {
		t.Error("BoundingBox over no points reported ok")
	}
}

func TestPointJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(Point{X: 12, Y: 34})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != "[12,34]" {
		t.Errorf("marshal: got %s, want [12,34]", data)
	}

	var p Point
	if err := json.Unmarshal([]byte("[56,78]"), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.X != 56 || p.Y != 78 {
		t.Errorf("unmarshal: got %+v", p)
	}

	if err := json.Unmarshal([]byte(`{"x":1}`), &p); err == nil {
		t.Error("unmarshal accepted an object form")
	}
}

package plan

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/planscan/planmetrics/internal/geometry"
	"github.com/planscan/planmetrics/internal/scale"
)

func pt(x, y int) *geometry.Point { return &geometry.Point{X: x, Y: y} }

// Two consistent annotations resolve the OCR-tier scale and the room
// normalizes at that scale.
func TestReconstruct_OCRScale(t *testing.T) {
	in := &Input{
		ImageSize: &ImageSize{W: 1000, H: 800},
		Tokens: []Token{
			{Text: "10'", P1: pt(0, 0), P2: pt(500, 0)},
			{Text: "5'", P1: pt(0, 0), P2: pt(0, 250)},
			{Text: "KITCHEN"}, // label, skipped
		},
		Rooms: []geometry.PixelShape{
			{Name: "KITCHEN", Points: []geometry.Point{{X: 0, Y: 0}, {X: 500, Y: 0}, {X: 500, Y: 250}, {X: 0, Y: 250}}},
		},
	}

	res, err := Reconstruct(in)
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}

	if res.Area.Scale.Source != scale.SourceOCR {
		t.Errorf("scale source: got %q, want ocr", res.Area.Scale.Source)
	}
	if math.Abs(res.Area.Scale.FeetPerPixel-0.02) > 1e-12 {
		t.Errorf("scale: got %.6f, want 0.02", res.Area.Scale.FeetPerPixel)
	}

	if len(res.Area.Rooms) != 1 {
		t.Fatalf("rooms: got %d, want 1", len(res.Area.Rooms))
	}
	room := res.Area.Rooms[0]
	if room.Synthetic {
		t.Error("measured room tagged synthetic")
	}
	// 500x250 px at 0.02 ft/px = 10x5 ft.
	if math.Abs(room.AreaSqFt-50) > 1e-9 {
		t.Errorf("area: got %.4f, want 50", room.AreaSqFt)
	}
	if math.Abs(res.Area.TotalAreaSqFt-50) > 1e-9 {
		t.Errorf("total area: got %.4f, want 50", res.Area.TotalAreaSqFt)
	}
}

// Manual override width 20 ft over a 400 px shape bbox: 0.05 ft/px,
// provenance manual, even with OCR evidence present.
func TestReconstruct_ManualOverride(t *testing.T) {
	in := &Input{
		Tokens: []Token{{Text: "10'", P1: pt(0, 0), P2: pt(500, 0)}},
		Rooms: []geometry.PixelShape{
			{Points: []geometry.Point{{X: 100, Y: 100}, {X: 500, Y: 100}, {X: 500, Y: 400}, {X: 100, Y: 400}}},
		},
		Override: &scale.Override{WidthFt: 20},
	}

	res, err := Reconstruct(in)
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}
	if res.Area.Scale.Source != scale.SourceManual {
		t.Errorf("scale source: got %q, want manual", res.Area.Scale.Source)
	}
	if math.Abs(res.Area.Scale.FeetPerPixel-0.05) > 1e-12 {
		t.Errorf("scale: got %.6f, want 0.05", res.Area.Scale.FeetPerPixel)
	}
}

// Nothing at all still yields exactly one synthetic 10×10 room at the
// default scale.
func TestReconstruct_EmptyInput(t *testing.T) {
	res, err := Reconstruct(&Input{})
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}

	if res.Area.Scale.Source != scale.SourceDefault {
		t.Errorf("scale source: got %q, want default", res.Area.Scale.Source)
	}
	if len(res.Area.Rooms) != 1 {
		t.Fatalf("rooms: got %d, want exactly 1", len(res.Area.Rooms))
	}
	room := res.Area.Rooms[0]
	if !room.Synthetic || room.Name != "SyntheticArea" {
		t.Errorf("placeholder tag: name=%q synthetic=%v", room.Name, room.Synthetic)
	}
	if math.Abs(room.AreaSqFt-100) > 1e-9 {
		t.Errorf("placeholder area: got %.4f, want 100", room.AreaSqFt)
	}
	if res.Walls.Metrics == nil || res.Walls.Metrics.Counts.Total != 0 {
		t.Errorf("walls record malformed: %+v", res.Walls.Metrics)
	}
}

// Degenerate shapes are dropped by the normalizer but still anchor the
// bbox fallback, so the synthetic room reflects their extent.
func TestReconstruct_BBoxFallback(t *testing.T) {
	in := &Input{
		Tokens: []Token{{Text: "10'", P1: pt(0, 0), P2: pt(500, 0)}},
		Rooms: []geometry.PixelShape{
			{Points: []geometry.Point{{X: 100, Y: 100}, {X: 600, Y: 500}}}, // 2 vertices, dropped
		},
	}

	res, err := Reconstruct(in)
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}
	if len(res.Area.Rooms) != 1 {
		t.Fatalf("rooms: got %d, want 1", len(res.Area.Rooms))
	}
	room := res.Area.Rooms[0]
	if !room.Synthetic || room.Name != "GrossArea" {
		t.Errorf("tag: name=%q synthetic=%v", room.Name, room.Synthetic)
	}
	// bbox 500x400 px at 0.02 = 10x8 ft.
	if math.Abs(room.AreaSqFt-80) > 1e-9 {
		t.Errorf("area: got %.4f, want 80", room.AreaSqFt)
	}
}

// Compound W×H tokens become synthetic rooms when no outline survives.
func TestReconstruct_CompoundTokens(t *testing.T) {
	in := &Input{
		Tokens: []Token{{Text: "12 x 16'"}, {Text: "10x14"}},
	}
	res, err := Reconstruct(in)
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}
	if len(res.Area.Rooms) != 2 {
		t.Fatalf("rooms: got %d, want 2", len(res.Area.Rooms))
	}
	if math.Abs(res.Area.TotalAreaSqFt-(192+140)) > 1e-9 {
		t.Errorf("total area: got %.4f, want 332", res.Area.TotalAreaSqFt)
	}
}

func TestReconstruct_WallMetrics(t *testing.T) {
	in := &Input{
		ImageSize: &ImageSize{W: 1000, H: 800},
		Tokens:    []Token{{Text: "10'", P1: pt(0, 0), P2: pt(500, 0)}},
		Walls: []geometry.PixelShape{
			{Points: []geometry.Point{{X: 10, Y: 10}, {X: 990, Y: 10}}},   // exterior
			{Points: []geometry.Point{{X: 300, Y: 300}, {X: 700, Y: 300}}}, // interior
		},
	}

	res, err := Reconstruct(in)
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}

	m := res.Walls.Metrics
	if m.Counts.Total != 2 || m.Counts.Exterior != 1 || m.Counts.Interior != 1 {
		t.Errorf("counts: %+v", m.Counts)
	}
	if math.Abs(m.TotalFt-(m.ExteriorFt+m.InteriorFt)) > 1e-9 {
		t.Error("wall totals are not the sum of class totals")
	}
	if len(res.Walls.Runs) != 2 {
		t.Errorf("wall runs: got %d, want 2", len(res.Walls.Runs))
	}
	// 980 px at 0.02 = 19.6 ft for the first run.
	if math.Abs(res.Walls.Runs[0].PerimeterFt-19.6) > 1e-9 {
		t.Errorf("run length: got %.4f, want 19.6", res.Walls.Runs[0].PerimeterFt)
	}
}

func TestReconstruct_NilInput(t *testing.T) {
	if _, err := Reconstruct(nil); err != ErrNoInput {
		t.Errorf("got %v, want ErrNoInput", err)
	}
}

func TestReconstruct_RunIsolation(t *testing.T) {
	a, err := Reconstruct(&Input{})
	if err != nil {
		t.Fatal(err)
	}
	b, err := Reconstruct(&Input{})
	if err != nil {
		t.Fatal(err)
	}
	if len(a.RunID) != 8 || len(b.RunID) != 8 {
		t.Errorf("run ids: %q, %q", a.RunID, b.RunID)
	}
	if a.RunID == b.RunID {
		t.Error("two runs share a run id")
	}
}

func TestInput_JSONFormat(t *testing.T) {
	raw := `{
		"image": "plan1.png",
		"image_size": {"w": 1000, "h": 800},
		"tokens": [{"text": "12'-6\"", "p1": [10, 20], "p2": [635, 20]}],
		"rooms": [{"name": "HALL", "points": [[0,0],[500,0],[500,400],[0,400]]}],
		"walls": [{"points": [[0,0],[500,0]]}],
		"override": {"width_ft": 20}
	}`

	var in Input
	if err := json.Unmarshal([]byte(raw), &in); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if in.Tokens[0].P2.X != 635 {
		t.Errorf("token endpoint: %+v", in.Tokens[0].P2)
	}
	if in.Rooms[0].Points[2] != (geometry.Point{X: 500, Y: 400}) {
		t.Errorf("room point: %+v", in.Rooms[0].Points[2])
	}

	if _, err := Reconstruct(&in); err != nil {
		t.Fatalf("Reconstruct on decoded input: %v", err)
	}
}

package geometry

import "fmt"

// placeholderSizeFt is the side of the last-resort room emitted when no
// measurement signal survives at all (100 sq ft).
const placeholderSizeFt = 10.0

// SynthesisInput carries everything the fallback producers may draw on.
// Fields are optional; zero values mean "not available".
type SynthesisInput struct {
	// OverrideWidthFt and OverrideHeightFt are the caller-supplied
	// plan dimensions, when a manual override was provided.
	OverrideWidthFt  float64
	OverrideHeightFt float64

	// DimPairs are compound W×H dimension tokens recognized on the
	// plan, in feet.
	DimPairs [][2]float64

	// PixelBBox is the union bounding box of all raw pixel shapes,
	// including ones the normalizer dropped as degenerate.
	PixelBBox *Rect

	// FeetPerPixel is the resolved scale.
	FeetPerPixel float64

	// AspectRatio is the source image's height/width, used to infer a
	// missing override dimension. Zero when no image is available.
	AspectRatio float64
}

// producer attempts to fabricate room geometry from one class of
// fallback signal. Producers are composed in priority order; the first
// to succeed ends the chain.
type producer func(in SynthesisInput) ([]Shape, bool)

var producers = []producer{
	overrideRect,
	dimPairRooms,
	bboxRect,
	placeholderRect,
}

// Synthesize fabricates room geometry when normalization yielded no
// usable shapes. It always returns at least one room, and every room it
// returns is tagged synthetic. The output depends only on the input, so
// identical inputs yield identical geometry.
func Synthesize(in SynthesisInput) []Shape {
	for _, p := range producers {
		if rooms, ok := p(in); ok {
			return rooms
		}
	}
	// placeholderRect never declines; unreachable.
	return nil
}

// overrideRect builds a rectangle straight from the manual override.
// A missing dimension is inferred from the image aspect ratio, or made
// square when no image is available.
func overrideRect(in SynthesisInput) ([]Shape, bool) {
	w, h := in.OverrideWidthFt, in.OverrideHeightFt
	if w <= 0 && h <= 0 {
		return nil, false
	}
	switch {
	case w > 0 && h <= 0:
		if in.AspectRatio > 0 {
			h = w * in.AspectRatio
		} else {
			h = w
		}
	case h > 0 && w <= 0:
		if in.AspectRatio > 0 {
			w = h / in.AspectRatio
		} else {
			w = h
		}
	}
	return []Shape{rect("GrossArea", w, h)}, true
}

// dimPairRooms turns compound W×H tokens into one synthetic room each.
func dimPairRooms(in SynthesisInput) ([]Shape, bool) {
	if len(in.DimPairs) == 0 {
		return nil, false
	}
	rooms := make([]Shape, 0, len(in.DimPairs))
	for i, wh := range in.DimPairs {
		if wh[0] <= 0 || wh[1] <= 0 {
			continue
		}
		rooms = append(rooms, rect(fmt.Sprintf("Room%d", i+1), wh[0], wh[1]))
	}
	if len(rooms) == 0 {
		return nil, false
	}
	return rooms, true
}

// bboxRect scales the union bounding box of the raw pixel shapes.
func bboxRect(in SynthesisInput) ([]Shape, bool) {
	if in.PixelBBox == nil || in.FeetPerPixel <= 0 {
		return nil, false
	}
	w := float64(in.PixelBBox.Width()) * in.FeetPerPixel
	h := float64(in.PixelBBox.Height()) * in.FeetPerPixel
	if w <= 0 || h <= 0 {
		return nil, false
	}
	return []Shape{rect("GrossArea", w, h)}, true
}

// placeholderRect is the floor of the chain: a fixed 10×10 room.
func placeholderRect(SynthesisInput) ([]Shape, bool) {
	return []Shape{rect("SyntheticArea", placeholderSizeFt, placeholderSizeFt)}, true
}

func rect(name string, w, h float64) Shape {
	pts := []PointF{{0, 0}, {w, 0}, {w, h}, {0, h}}
	return Shape{
		Name:        name,
		Points:      pts,
		AreaSqFt:    Area(pts),
		PerimeterFt: Perimeter(pts, true),
		Synthetic:   true,
	}
}

// Package plan reconstructs canonical real-world geometry from the
// noisy recognized content of a scanned floor plan.
//
// Reconstruct is the single entry point: tokens are parsed into scale
// evidence, the scale is resolved through the tiered estimator, pixel
// shapes are normalized into real-world rooms and walls, and fallback
// geometry is synthesized when nothing usable survives. The result is
// always well-formed with at least one room, because the downstream
// quantity-takeoff calculators require non-empty, non-zero geometry.
//
// Each invocation is a pure synchronous function of its input and
// produces a fresh result keyed by a run identifier; concurrent runs
// share no mutable state.
package plan

import (
	"errors"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"

	"github.com/planscan/planmetrics/internal/dimension"
	"github.com/planscan/planmetrics/internal/geometry"
	"github.com/planscan/planmetrics/internal/scale"
	"github.com/planscan/planmetrics/internal/walls"
)

// ErrNoInput is returned when the primary recognized-dimensions input
// is missing entirely. This is the only aborting condition; every
// degraded-but-present input still produces a result.
var ErrNoInput = errors.New("recognized plan input is missing")

// Reconstruct turns one plan's recognized content into the canonical
// geometry record.
func Reconstruct(in *Input) (*Result, error) {
	if in == nil {
		return nil, ErrNoInput
	}

	ev := gatherEvidence(in)
	est := scale.Resolve(ev.scaleContext(in))

	rooms := geometry.NormalizeRooms(in.Rooms, est.FeetPerPixel)
	if len(rooms) == 0 {
		rooms = geometry.Synthesize(geometry.SynthesisInput{
			OverrideWidthFt:  overrideWidth(in.Override),
			OverrideHeightFt: overrideHeight(in.Override),
			DimPairs:         ev.dimPairs,
			PixelBBox:        ev.bbox,
			FeetPerPixel:     est.FeetPerPixel,
			AspectRatio:      aspectRatio(in.ImageSize),
		})
	}

	imgW, imgH := 0, 0
	if in.ImageSize != nil {
		imgW, imgH = in.ImageSize.W, in.ImageSize.H
	}
	segs := walls.SegmentsFromPolylines(in.Walls)
	metrics := walls.Measure(segs, imgW, imgH, in.MarginPx, est.FeetPerPixel)

	areas := make([]float64, len(rooms))
	perims := make([]float64, len(rooms))
	for i, r := range rooms {
		areas[i] = r.AreaSqFt
		perims[i] = r.PerimeterFt
	}

	return &Result{
		RunID: uuid.NewString()[:8],
		Area: AreaRecord{
			Rooms:            rooms,
			Scale:            est,
			TotalAreaSqFt:    floats.Sum(areas),
			TotalPerimeterFt: floats.Sum(perims),
		},
		Walls: WallsRecord{
			Runs:    geometry.NormalizeWalls(in.Walls, est.FeetPerPixel),
			Metrics: metrics,
		},
	}, nil
}

// evidence is everything extracted from the tokens and shapes in one
// pass: scale evidence pairs, heuristic measurements, compound W×H
// dimensions, and the union bounding box.
type evidence struct {
	pairs        []scale.EvidencePair
	measurements []scale.Measurement
	dimPairs     [][2]float64
	bbox         *geometry.Rect
}

func gatherEvidence(in *Input) *evidence {
	ev := &evidence{}

	for _, tok := range in.Tokens {
		var dist float64
		if tok.P1 != nil && tok.P2 != nil {
			dist = geometry.PixelDistance(*tok.P1, *tok.P2)
			ev.measurements = append(ev.measurements, scale.Measurement{
				Text:          tok.Text,
				PixelDistance: dist,
			})
		}

		d, ok := dimension.Parse(tok.Text)
		if !ok {
			continue
		}
		if d.Compound {
			// Two lengths against one annotation line is ambiguous
			// as scale evidence; compound tokens only feed the
			// synthesizer.
			ev.dimPairs = append(ev.dimPairs, [2]float64{d.Width, d.Height})
			continue
		}
		if dist > 0 {
			ev.pairs = append(ev.pairs, scale.EvidencePair{
				PixelDistance: dist,
				Feet:          d.Feet,
			})
		}
	}

	shapes := make([][]geometry.Point, 0, len(in.Rooms)+len(in.Walls))
	for _, s := range in.Rooms {
		shapes = append(shapes, s.Points)
	}
	for _, s := range in.Walls {
		shapes = append(shapes, s.Points)
	}
	if bbox, ok := geometry.BoundingBox(shapes...); ok {
		ev.bbox = &bbox
	}

	return ev
}

func (ev *evidence) scaleContext(in *Input) *scale.Context {
	ctx := &scale.Context{
		Pairs:        ev.pairs,
		Measurements: ev.measurements,
		Override:     in.Override,
	}
	if ev.bbox != nil {
		ctx.BBoxWidthPx = ev.bbox.Width()
		ctx.BBoxHeightPx = ev.bbox.Height()
	}
	if in.ImageSize != nil {
		ctx.ImageWidthPx = in.ImageSize.W
		ctx.ImageHeightPx = in.ImageSize.H
	}
	return ctx
}

func overrideWidth(o *scale.Override) float64 {
	if o == nil {
		return 0
	}
	return o.WidthFt
}

func overrideHeight(o *scale.Override) float64 {
	if o == nil {
		return 0
	}
	return o.HeightFt
}

func aspectRatio(sz *ImageSize) float64 {
	if sz == nil || sz.W <= 0 || sz.H <= 0 {
		return 0
	}
	return float64(sz.H) / float64(sz.W)
}

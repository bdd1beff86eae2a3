package plan

import (
	"github.com/planscan/planmetrics/internal/geometry"
	"github.com/planscan/planmetrics/internal/scale"
	"github.com/planscan/planmetrics/internal/walls"
)

// Token is a recognized text annotation, optionally tied to the pixel
// endpoints of the dimension line it labels. Bare numerics arrive with
// nil endpoints.
type Token struct {
	Text string          `json:"text"`
	P1   *geometry.Point `json:"p1,omitempty"`
	P2   *geometry.Point `json:"p2,omitempty"`
}

// ImageSize is the pixel dimensions of the source plan image.
type ImageSize struct {
	W int `json:"w"`
	H int `json:"h"`
}

// Input is the recognized content of one scanned plan, as handed over
// by the OCR/CV collaborator, plus optional caller-supplied context.
// All fields except Tokens/Rooms/Walls presence are optional; an Input
// with everything empty is still valid and yields placeholder geometry.
type Input struct {
	// ImagePath locates the rasterized plan, used only for bounding
	// box and aspect-ratio fallbacks. May be empty.
	ImagePath string `json:"image,omitempty"`

	// ImageSize is the plan image's pixel dimensions, when known.
	ImageSize *ImageSize `json:"image_size,omitempty"`

	// Tokens are the recognized dimension annotations.
	Tokens []Token `json:"tokens"`

	// Rooms are pixel-space room outline polygons.
	Rooms []geometry.PixelShape `json:"rooms"`

	// Walls are pixel-space wall polylines.
	Walls []geometry.PixelShape `json:"walls"`

	// Override is a caller-supplied real-world plan extent.
	Override *scale.Override `json:"override,omitempty"`

	// MarginPx overrides the exterior-wall classification margin.
	// Zero selects the default.
	MarginPx int `json:"margin_px,omitempty"`
}

// AreaRecord is the room side of the geometry result. Rooms is never
// empty: when nothing measurable survives, it holds synthetic geometry
// tagged as such.
type AreaRecord struct {
	Rooms []geometry.Shape `json:"rooms"`
	Scale scale.Estimate   `json:"scale"`

	TotalAreaSqFt    float64 `json:"total_area_sqft"`
	TotalPerimeterFt float64 `json:"total_perimeter_ft"`
}

// WallsRecord is the wall side of the geometry result: each wall run
// normalized to feet, plus the classified segment metrics.
type WallsRecord struct {
	Runs    []geometry.Shape `json:"runs"`
	Metrics *walls.Metrics   `json:"metrics"`
}

// Result is the canonical geometry record for one run. It is created
// fresh per invocation, never mutated afterwards, and handed downstream
// as an immutable snapshot.
type Result struct {
	RunID string      `json:"run_id"`
	Area  AreaRecord  `json:"area"`
	Walls WallsRecord `json:"walls"`
}

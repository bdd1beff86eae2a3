// Package scale resolves the real-world-per-pixel factor of a scanned
// floor plan from unreliable, competing evidence sources.
//
// Resolution is a strict ordered evaluation over independent
// strategies. Each strategy either produces a candidate factor or
// declines; the first positive, finite candidate wins and fixes the
// estimate's provenance tag. There is no blending across tiers and no
// backtracking once a tier succeeds. The default tier never declines,
// so resolution always yields a strictly positive scale.
package scale

import "math"

// Source tags how a scale value was resolved, in decreasing order of
// confidence. Downstream consumers use it to judge how much to trust
// the derived geometry.
type Source string

const (
	SourceOCR       Source = "ocr"       // median over dimension-annotation evidence
	SourceManual    Source = "manual"    // caller-supplied plan width/height
	SourceHeuristic Source = "heuristic" // known-common dimension matched on the plan
	SourceDefault   Source = "default"   // fixed constant, low confidence
)

// DefaultFeetPerPixel is the last-resort scale: a 10 ft wall drawn at
// roughly 500 px, which is typical for scanned residential plans.
const DefaultFeetPerPixel = 0.02

// minEvidencePixels is the noise floor for annotation lines. Pixel
// distances at or below this are OCR/CV jitter, not measurements.
const minEvidencePixels = 3.0

// Estimate is a resolved scale factor with its provenance.
// FeetPerPixel is always strictly positive.
type Estimate struct {
	FeetPerPixel float64 `json:"feet_per_pixel"`
	Source       Source  `json:"source"`
}

// EvidencePair couples a parsed annotation length with the pixel length
// of the line it annotates.
type EvidencePair struct {
	PixelDistance float64
	Feet          float64
}

// Measurement is a raw recognized token with the pixel length of its
// annotation line, for the heuristic tier. Text is unparsed; the tier
// scans it for known-common dimension substrings.
type Measurement struct {
	Text          string
	PixelDistance float64
}

// Override is a caller-supplied real-world extent of the overall plan.
// Zero values mean "not supplied".
type Override struct {
	WidthFt  float64 `json:"width_ft,omitempty"`
	HeightFt float64 `json:"height_ft,omitempty"`
}

// Supplied reports whether the override carries at least one dimension.
func (o *Override) Supplied() bool {
	return o != nil && (o.WidthFt > 0 || o.HeightFt > 0)
}

// Context is the evidence available to the strategies for one run.
// Zero-valued fields mean the corresponding signal is absent.
type Context struct {
	// Pairs is the OCR-tier evidence: parsed lengths with pixel
	// distances of their annotation lines.
	Pairs []EvidencePair

	// Measurements are all recognized tokens with pixel distances,
	// parseable or not, for the heuristic tier.
	Measurements []Measurement

	// Override is the manual plan extent, if the caller supplied one.
	Override *Override

	// BBoxWidthPx and BBoxHeightPx are the union bounding box extents
	// over all pixel shapes. Zero when no shapes exist.
	BBoxWidthPx  int
	BBoxHeightPx int

	// ImageWidthPx and ImageHeightPx are the full source image
	// dimensions. Zero when the image is unavailable.
	ImageWidthPx  int
	ImageHeightPx int
}

// Strategy is one independent way of deriving a scale factor.
// Implementations return ok=false to decline, letting resolution fall
// through to the next tier.
type Strategy interface {
	Source() Source
	Resolve(ctx *Context) (float64, bool)
}

// strategies in priority order. The manual tier leads: a caller who
// states the plan's real extent overrides whatever the annotations say.
var strategies = []Strategy{
	manualStrategy{},
	ocrStrategy{},
	heuristicStrategy{},
	defaultStrategy{},
}

// Resolve produces one estimate from the available evidence. It never
// fails: the default tier catches the no-signal case.
func Resolve(ctx *Context) Estimate {
	for _, s := range strategies {
		v, ok := s.Resolve(ctx)
		if ok && v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v) {
			return Estimate{FeetPerPixel: v, Source: s.Source()}
		}
	}
	return Estimate{FeetPerPixel: DefaultFeetPerPixel, Source: SourceDefault}
}

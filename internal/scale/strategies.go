package scale

import (
	"sort"
	"strings"
)

// ocrStrategy derives the scale from dimension annotations: each
// surviving evidence pair implies a ratio, and the median of the ratios
// absorbs individual OCR misreads.
type ocrStrategy struct{}

func (ocrStrategy) Source() Source { return SourceOCR }

func (ocrStrategy) Resolve(ctx *Context) (float64, bool) {
	ratios := make([]float64, 0, len(ctx.Pairs))
	for _, p := range ctx.Pairs {
		if p.PixelDistance <= minEvidencePixels || p.Feet <= 0 {
			continue
		}
		ratios = append(ratios, p.Feet/p.PixelDistance)
	}
	if len(ratios) == 0 {
		return 0, false
	}
	return median(ratios), true
}

// manualStrategy divides a caller-supplied plan extent by the matching
// pixel extent: the union bounding box of all detected shapes when any
// exist, the full image otherwise. Width wins when both dimensions
// were supplied.
type manualStrategy struct{}

func (manualStrategy) Source() Source { return SourceManual }

func (manualStrategy) Resolve(ctx *Context) (float64, bool) {
	if !ctx.Override.Supplied() {
		return 0, false
	}
	extW, extH := ctx.BBoxWidthPx, ctx.BBoxHeightPx
	if extW <= 0 && extH <= 0 {
		extW, extH = ctx.ImageWidthPx, ctx.ImageHeightPx
	}
	if ctx.Override.WidthFt > 0 && extW > 0 {
		return ctx.Override.WidthFt / float64(extW), true
	}
	if ctx.Override.HeightFt > 0 && extH > 0 {
		return ctx.Override.HeightFt / float64(extH), true
	}
	return 0, false
}

// commonDimensions are annotation strings that appear on nearly every
// residential plan with a fixed real-world meaning, checked
// longest-first so "3'-0" wins over a bare "3'".
var commonDimensions = []struct {
	Text string
	Feet float64
}{
	{`6'-8"`, 6 + 8.0/12}, // standard door height
	{`2'-8"`, 2 + 8.0/12}, // interior door leaf
	{`2'-6"`, 2.5},
	{`3'-0"`, 3}, // exterior door leaf
	{`36"`, 3},
	{`32"`, 32.0 / 12},
	{`3'`, 3},
}

// heuristicStrategy scans otherwise-unusable token text for
// known-common dimensions whose annotation line length is available.
// It rescues plans where OCR mangled every annotation except a
// recognizable fragment.
type heuristicStrategy struct{}

func (heuristicStrategy) Source() Source { return SourceHeuristic }

func (heuristicStrategy) Resolve(ctx *Context) (float64, bool) {
	var ratios []float64
	for _, m := range ctx.Measurements {
		if m.PixelDistance <= minEvidencePixels {
			continue
		}
		text := normalizeGlyphs(m.Text)
		for _, cd := range commonDimensions {
			if containsDimension(text, cd.Text) {
				ratios = append(ratios, cd.Feet/m.PixelDistance)
				break
			}
		}
	}
	if len(ratios) == 0 {
		return 0, false
	}
	return median(ratios), true
}

// defaultStrategy never declines.
type defaultStrategy struct{}

func (defaultStrategy) Source() Source { return SourceDefault }

func (defaultStrategy) Resolve(*Context) (float64, bool) {
	return DefaultFeetPerPixel, true
}

func normalizeGlyphs(s string) string {
	return strings.NewReplacer("’", "'", "”", `"`).Replace(s)
}

// containsDimension reports whether sub occurs in text without a digit
// immediately before it, so that "3'" does not match inside "13'".
func containsDimension(text, sub string) bool {
	idx := strings.Index(text, sub)
	if idx < 0 {
		return false
	}
	if idx > 0 && text[idx-1] >= '0' && text[idx-1] <= '9' {
		return false
	}
	return true
}

// median returns the middle element for odd counts and the mean of the
// two middle elements for even counts. The input is not modified.
func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

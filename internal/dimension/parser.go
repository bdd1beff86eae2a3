// Package dimension parses recognized dimension annotations from scanned
// floor plans into normalized lengths.
//
// Scanned plans annotate walls and openings with strings like 12'-6",
// 10', 36", 900mm, or compound room sizes like 12 x 16'. OCR output is
// noisy, so the parser is deliberately forgiving about whitespace,
// dashes, and quote glyphs (both straight ' " and curly ’ ”), and
// treats anything it cannot recognize as a normal non-match rather than
// an error.
//
// All lengths normalize to feet. Feet and inches combine as ft + in/12;
// millimeters convert with 1 ft = 304.8 mm.
package dimension

import (
	"regexp"
	"strconv"
	"strings"
)

// MillimetersPerFoot converts metric annotations to feet.
const MillimetersPerFoot = 304.8

// Dimension is the parsed form of a recognized token: either a single
// length or a compound width-by-height pair, always in feet.
type Dimension struct {
	// Feet is the normalized length for single-value tokens.
	Feet float64 `json:"feet"`

	// Width and Height hold the two values of a compound token
	// (e.g. "12 x 16'"). Only meaningful when Compound is true.
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	// Compound reports whether the token carried a W×H pair.
	Compound bool `json:"compound,omitempty"`
}

var (
	feetInchesRe = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*['’]\s*-?\s*(\d+(?:\.\d+)?)\s*(?:"|”)?$`)
	feetOnlyRe   = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*['’]$`)
	inchesOnlyRe = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*(?:"|”)$`)
	millimeterRe = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*[mM][mM]$`)
	compoundRe   = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*[xX×]\s*(\d+(?:\.\d+)?)\s*['’]?$`)
)

// Parse normalizes a recognized text token to feet.
//
// It returns ok=false when the token is not a dimension; that is the
// expected outcome for room labels and OCR garbage, and callers should
// simply continue with the remaining tokens.
func Parse(text string) (Dimension, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Dimension{}, false
	}

	if m := feetInchesRe.FindStringSubmatch(text); m != nil {
		ft := atof(m[1])
		in := atof(m[2])
		return Dimension{Feet: ft + in/12}, true
	}

	if m := feetOnlyRe.FindStringSubmatch(text); m != nil {
		return Dimension{Feet: atof(m[1])}, true
	}

	if m := inchesOnlyRe.FindStringSubmatch(text); m != nil {
		return Dimension{Feet: atof(m[1]) / 12}, true
	}

	if m := millimeterRe.FindStringSubmatch(text); m != nil {
		return Dimension{Feet: atof(m[1]) / MillimetersPerFoot}, true
	}

	if m := compoundRe.FindStringSubmatch(text); m != nil {
		w := atof(m[1])
		h := atof(m[2])
		return Dimension{Width: w, Height: h, Compound: true}, true
	}

	return Dimension{}, false
}

// ParseLength is a convenience wrapper that returns only single-value
// tokens. Compound tokens and non-dimensions both report ok=false.
func ParseLength(text string) (float64, bool) {
	d, ok := Parse(text)
	if !ok || d.Compound {
		return 0, false
	}
	return d.Feet, true
}

func atof(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

//go:build !ocr

// Package ocr extracts dimension annotation tokens from floor-plan
// images using the Tesseract engine via gosseract.
//
// This is the stub implementation used when the "ocr" build tag is not
// set. New returns ErrOCRNotEnabled. To enable recognition, install
// Tesseract and rebuild:
//
//	go build -tags ocr
package ocr

import (
	"errors"
	"image"
)

// ErrOCRNotEnabled is returned when OCR is requested but support was
// not compiled in.
var ErrOCRNotEnabled = errors.New("ocr support not enabled; rebuild with -tags ocr")

// Token is a recognized word that looks like a dimension annotation,
// together with its pixel bounding box on the plan.
type Token struct {
	Text       string          `json:"text"`
	Box        image.Rectangle `json:"box"`
	Confidence float64         `json:"confidence"`
}

// Client is a stub that fails all operations.
type Client struct{}

// New returns ErrOCRNotEnabled.
func New() (*Client, error) {
	return nil, ErrOCRNotEnabled
}

// Close is a no-op. Safe to call on a nil client.
func (c *Client) Close() error {
	return nil
}

// Extract returns ErrOCRNotEnabled.
func (c *Client) Extract(path string) ([]Token, error) {
	return nil, ErrOCRNotEnabled
}

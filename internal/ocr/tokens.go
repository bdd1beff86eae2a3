//go:build ocr

// Package ocr extracts dimension annotation tokens from floor-plan
// images using the Tesseract engine via gosseract. It is compiled only
// with the "ocr" build tag and requires Tesseract to be installed:
//
//	go build -tags ocr
//
// Without the tag the stub implementation is used and Extract returns
// ErrOCRNotEnabled.
package ocr

import (
	"errors"
	"fmt"
	"image"

	"github.com/otiai10/gosseract/v2"

	"github.com/planscan/planmetrics/internal/dimension"
)

// ErrOCRNotEnabled is returned by the stub build. It never occurs when
// the "ocr" tag is set but is declared in both builds so callers can
// test against it unconditionally.
var ErrOCRNotEnabled = errors.New("ocr support not enabled; rebuild with -tags ocr")

// Token is a recognized word that looks like a dimension annotation,
// together with its pixel bounding box on the plan.
type Token struct {
	Text       string          `json:"text"`
	Box        image.Rectangle `json:"box"`
	Confidence float64         `json:"confidence"`
}

// Client wraps a Tesseract session configured for sparse plan text.
type Client struct {
	client *gosseract.Client
}

// New creates an OCR client. Close it to release the Tesseract session.
func New() (*Client, error) {
	c := gosseract.NewClient()
	if err := c.SetPageSegMode(gosseract.PSM_SPARSE_TEXT); err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to configure page segmentation: %w", err)
	}
	return &Client{client: c}, nil
}

// Close releases the Tesseract session.
func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// Extract runs word-level recognition on the plan at path and returns
// only the words that parse as dimension annotations. Words that fail
// the dimension grammar are discarded.
func (c *Client) Extract(path string) ([]Token, error) {
	if err := c.client.SetImage(path); err != nil {
		return nil, fmt.Errorf("failed to set plan image: %w", err)
	}

	boxes, err := c.client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("word recognition failed: %w", err)
	}

	var tokens []Token
	for _, b := range boxes {
		if _, ok := dimension.Parse(b.Word); !ok {
			continue
		}
		tokens = append(tokens, Token{
			Text:       b.Word,
			Box:        b.Box,
			Confidence: b.Confidence,
		})
	}
	return tokens, nil
}

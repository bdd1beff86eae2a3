// Package imaging loads floor-plan raster images and renders wall
// classification overlays. Plans are decoded once and cached; probing a
// plan yields the pixel dimensions and aspect ratio that downstream
// scale and synthesis stages fall back on when no other evidence exists.
package imaging

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"

	"github.com/disintegration/imaging"
)

// ImageCache provides thread-safe caching of decoded plan images keyed
// by file path. Cached images remain in memory until Evict or Clear.
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// NewImageCache creates an empty cache ready for concurrent use.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]image.Image),
	}
}

// Load returns the cached image for path, decoding it from disk on the
// first call. PNG, JPEG, GIF, TIFF, and BMP plans are supported.
func (c *ImageCache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open plan image: %w", err)
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// Clear removes all cached images.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]image.Image)
	c.mu.Unlock()
}

// Evict removes a single image from the cache. Unknown paths are ignored.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// PlanInfo describes a decoded plan image.
//
// Aspect is height divided by width. It feeds the synthesis stage when
// a plan supplies only a single dimension and the room rectangle has to
// preserve the sheet's proportions.
type PlanInfo struct {
	// Width is the plan width in pixels.
	Width int `json:"width"`

	// Height is the plan height in pixels.
	Height int `json:"height"`

	// Aspect is height / width, or 0 when the width is zero.
	Aspect float64 `json:"aspect"`

	// Format is derived from the file extension: "png", "jpeg", "gif",
	// or "unknown".
	Format string `json:"format"`

	// FileSizeBytes is the size of the plan file on disk.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// Probe loads a plan image and reports its dimensions and aspect ratio.
func Probe(cache *ImageCache, path string) (*PlanInfo, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat plan: %w", err)
	}

	format := "unknown"
	switch filepath.Ext(path) {
	case ".png":
		format = "png"
	case ".jpg", ".jpeg":
		format = "jpeg"
	case ".gif":
		format = "gif"
	}

	bounds := img.Bounds()
	info := &PlanInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        format,
		FileSizeBytes: stat.Size(),
	}
	if info.Width > 0 {
		info.Aspect = float64(info.Height) / float64(info.Width)
	}
	return info, nil
}

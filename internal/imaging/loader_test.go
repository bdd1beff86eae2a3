package imaging

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"sync"
	"testing"
)

// createTestPlan writes a solid-color PNG and returns its path.
// The caller is responsible for removing the file.
func createTestPlan(t *testing.T, width, height int, c color.Color) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}

	tmpFile, err := os.CreateTemp("", "test-plan-*.png")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer tmpFile.Close()

	if err := png.Encode(tmpFile, img); err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to encode image: %v", err)
	}

	return tmpFile.Name()
}

func TestNewImageCache(t *testing.T) {
	cache := NewImageCache()
	if cache == nil {
		t.Fatal("NewImageCache returned nil")
	}
	if cache.images == nil {
		t.Fatal("NewImageCache did not initialize images map")
	}
}

func TestImageCache_Load(t *testing.T) {
	cache := NewImageCache()
	planPath := createTestPlan(t, 100, 100, color.RGBA{255, 0, 0, 255})
	defer os.Remove(planPath)

	img1, err := cache.Load(planPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if img1 == nil {
		t.Fatal("Load returned nil image")
	}

	bounds := img1.Bounds()
	if bounds.Dx() != 100 || bounds.Dy() != 100 {
		t.Errorf("unexpected dimensions: got %dx%d, want 100x100", bounds.Dx(), bounds.Dy())
	}

	// Second load should return the cached image.
	img2, err := cache.Load(planPath)
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if img1 != img2 {
		t.Error("second Load did not return cached image")
	}
}

func TestImageCache_Load_NonExistent(t *testing.T) {
	cache := NewImageCache()
	_, err := cache.Load("/nonexistent/path/to/plan.png")
	if err == nil {
		t.Error("Load should fail for non-existent file")
	}
}

func TestImageCache_Load_InvalidImage(t *testing.T) {
	cache := NewImageCache()

	tmpFile, err := os.CreateTemp("", "invalid-plan-*.png")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.WriteString("not an image")
	tmpFile.Close()
	defer os.Remove(tmpFile.Name())

	_, err = cache.Load(tmpFile.Name())
	if err == nil {
		t.Error("Load should fail for invalid image data")
	}
}

func TestImageCache_ClearAndEvict(t *testing.T) {
	cache := NewImageCache()
	planPath := createTestPlan(t, 50, 50, color.RGBA{0, 255, 0, 255})
	defer os.Remove(planPath)

	if _, err := cache.Load(planPath); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	cache.Evict(planPath)
	cache.mu.RLock()
	_, exists := cache.images[planPath]
	cache.mu.RUnlock()
	if exists {
		t.Error("Evict did not remove image from cache")
	}

	// Evicting an unknown path must not panic.
	cache.Evict("/nonexistent/path")

	if _, err := cache.Load(planPath); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	cache.Clear()
	cache.mu.RLock()
	count := len(cache.images)
	cache.mu.RUnlock()
	if count != 0 {
		t.Errorf("Clear did not empty cache: %d images remain", count)
	}
}

func TestImageCache_ConcurrentAccess(t *testing.T) {
	cache := NewImageCache()
	planPath := createTestPlan(t, 50, 50, color.RGBA{128, 128, 128, 255})
	defer os.Remove(planPath)

	var wg sync.WaitGroup
	errs := make(chan error, 100)

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := cache.Load(planPath); err != nil {
				errs <- err
			}
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent Load error: %v", err)
	}
}

func TestProbe(t *testing.T) {
	cache := NewImageCache()
	planPath := createTestPlan(t, 400, 300, color.RGBA{255, 128, 64, 255})
	defer os.Remove(planPath)

	info, err := Probe(cache, planPath)
	if err != nil {
		t.Fatalf("Probe failed: %v", err)
	}

	if info.Width != 400 {
		t.Errorf("Width: got %d, want 400", info.Width)
	}
	if info.Height != 300 {
		t.Errorf("Height: got %d, want 300", info.Height)
	}
	if math.Abs(info.Aspect-0.75) > 1e-9 {
		t.Errorf("Aspect: got %v, want 0.75", info.Aspect)
	}
	if info.Format != "png" {
		t.Errorf("Format: got %s, want png", info.Format)
	}
	if info.FileSizeBytes <= 0 {
		t.Error("FileSizeBytes should be positive")
	}
}

func TestProbe_NonExistent(t *testing.T) {
	cache := NewImageCache()
	_, err := Probe(cache, "/nonexistent/plan.png")
	if err == nil {
		t.Error("Probe should fail for non-existent file")
	}
}

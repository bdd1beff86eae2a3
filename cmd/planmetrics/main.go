package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"image"
	"log"
	"os"

	"github.com/planscan/planmetrics/internal/geometry"
	"github.com/planscan/planmetrics/internal/imaging"
	"github.com/planscan/planmetrics/internal/ocr"
	"github.com/planscan/planmetrics/internal/plan"
	"github.com/planscan/planmetrics/internal/scale"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and --help before flag parsing
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("planmetrics %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printHelp()
			return
		}
	}

	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	debug := os.Getenv("PLANMETRICS_LOG_LEVEL") == "debug"
	if debug {
		log.Printf("planmetrics v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	var (
		inputPath  = flag.String("input", "", "path to the recognized plan input JSON (required)")
		outArea    = flag.String("out-area", "", "write the area record to this file")
		outWalls   = flag.String("out-walls", "", "write the walls record to this file")
		overlay    = flag.String("overlay", "", "write a classified-walls overlay PNG to this file")
		previewMax = flag.Int("preview-max", 0, "downsample the overlay so its longest edge is at most this many pixels")
		marginPx   = flag.Int("margin", 0, "exterior wall border margin in pixels (0 selects the default)")
		widthFt    = flag.Float64("width-ft", 0, "known real-world plan width in feet")
		heightFt   = flag.Float64("height-ft", 0, "known real-world plan height in feet")
		runOCR     = flag.Bool("ocr", false, "extract dimension tokens from the plan image (requires an ocr-enabled build)")
	)
	flag.Parse()

	if *inputPath == "" {
		fmt.Fprintln(os.Stderr, "error: -input is required")
		flag.Usage()
		os.Exit(2)
	}

	in, err := readInput(*inputPath)
	if err != nil {
		log.Fatalf("failed to read input: %v", err)
	}

	if *marginPx > 0 {
		in.MarginPx = *marginPx
	}
	if *widthFt > 0 || *heightFt > 0 {
		in.Override = &scale.Override{WidthFt: *widthFt, HeightFt: *heightFt}
	}

	cache := imaging.NewImageCache()
	if in.ImagePath != "" && in.ImageSize == nil {
		info, err := imaging.Probe(cache, in.ImagePath)
		if err != nil {
			// Missing or unreadable plan image degrades the fallback
			// tiers but never aborts the run.
			log.Printf("plan image probe failed, continuing without image dimensions: %v", err)
		} else {
			in.ImageSize = &plan.ImageSize{W: info.Width, H: info.Height}
			if debug {
				log.Printf("plan image %dx%d (%s, %d bytes)", info.Width, info.Height, info.Format, info.FileSizeBytes)
			}
		}
	}

	if *runOCR {
		extractTokens(in, debug)
	}

	result, err := plan.Reconstruct(in)
	if err != nil {
		log.Fatalf("reconstruction failed: %v", err)
	}
	if debug {
		log.Printf("run %s: %d rooms, %.2f sqft total, scale %.6f ft/px (%s)",
			result.RunID, len(result.Area.Rooms), result.Area.TotalAreaSqFt,
			result.Area.Scale.FeetPerPixel, result.Area.Scale.Source)
	}

	if err := writeJSON(os.Stdout, result); err != nil {
		log.Fatalf("failed to write result: %v", err)
	}
	if *outArea != "" {
		if err := writeJSONFile(*outArea, result.Area); err != nil {
			log.Fatalf("failed to write area record: %v", err)
		}
	}
	if *outWalls != "" {
		if err := writeJSONFile(*outWalls, result.Walls); err != nil {
			log.Fatalf("failed to write walls record: %v", err)
		}
	}

	if *overlay != "" {
		if err := writeOverlay(cache, in, result, *overlay, *previewMax); err != nil {
			log.Fatalf("failed to write overlay: %v", err)
		}
	}
}

func printHelp() {
	fmt.Println("planmetrics - reconstruct real-world geometry from recognized floor plans")
	fmt.Println()
	fmt.Println("Usage: planmetrics -input plan.json [options]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -input PATH        recognized plan input JSON (required)")
	fmt.Println("  -out-area PATH     write the area record to a file")
	fmt.Println("  -out-walls PATH    write the walls record to a file")
	fmt.Println("  -overlay PATH      write a classified-walls overlay image")
	fmt.Println("  -preview-max N     cap the overlay's longest edge at N pixels")
	fmt.Println("  -margin N          exterior wall border margin in pixels")
	fmt.Println("  -width-ft W        known real-world plan width in feet")
	fmt.Println("  -height-ft H       known real-world plan height in feet")
	fmt.Println("  -ocr               extract dimension tokens from the plan image")
	fmt.Println("  --version, -v      print version information")
	fmt.Println("  --help, -h         print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  PLANMETRICS_LOG_LEVEL=debug    Enable debug logging")
	fmt.Println()
	fmt.Println("The reconstructed geometry record is printed to stdout as JSON.")
}

func readInput(path string) (*plan.Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var in plan.Input
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("invalid input JSON: %w", err)
	}
	return &in, nil
}

// extractTokens appends OCR-recognized dimension tokens to the input.
// OCR failures are logged and skipped so that the run still completes
// on the remaining evidence.
func extractTokens(in *plan.Input, debug bool) {
	if in.ImagePath == "" {
		log.Printf("ocr requested but input has no plan image, skipping")
		return
	}

	client, err := ocr.New()
	if err != nil {
		if errors.Is(err, ocr.ErrOCRNotEnabled) {
			log.Printf("ocr requested but not compiled in, skipping: %v", err)
		} else {
			log.Printf("ocr client failed, skipping: %v", err)
		}
		return
	}
	defer client.Close()

	tokens, err := client.Extract(in.ImagePath)
	if err != nil {
		log.Printf("ocr extraction failed, skipping: %v", err)
		return
	}
	for _, tok := range tokens {
		// A word box's horizontal extent approximates the dimension
		// line it labels.
		mid := (tok.Box.Min.Y + tok.Box.Max.Y) / 2
		in.Tokens = append(in.Tokens, plan.Token{
			Text: tok.Text,
			P1:   &geometry.Point{X: tok.Box.Min.X, Y: mid},
			P2:   &geometry.Point{X: tok.Box.Max.X, Y: mid},
		})
	}
	if debug {
		log.Printf("ocr extracted %d dimension tokens", len(tokens))
	}
}

func writeOverlay(cache *imaging.ImageCache, in *plan.Input, result *plan.Result, path string, previewMax int) error {
	var base image.Image
	if in.ImagePath != "" {
		img, err := cache.Load(in.ImagePath)
		if err != nil {
			log.Printf("plan image unavailable, rendering overlay on blank canvas: %v", err)
		} else {
			base = img
		}
	}

	rendered, err := imaging.RenderOverlay(base, result.Walls.Metrics)
	if err != nil {
		return err
	}
	return imaging.SaveOverlay(imaging.Preview(rendered, previewMax), path)
}

func writeJSON(w *os.File, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeJSONFile(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

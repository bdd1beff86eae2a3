// Package geometry converts pixel-space floor plan shapes into
// real-world geometry and fabricates fallback geometry when nothing
// usable was detected.
//
// # Coordinate System
//
// Pixel coordinates follow the standard image convention: origin at the
// top-left corner, X increasing rightward, Y increasing downward.
// Real-world coordinates are the same frame scaled uniformly by the
// resolved feet-per-pixel factor.
//
// # Normalization
//
// NormalizeRooms and NormalizeWalls apply the scale, compute the
// shoelace area and perimeter (closed for polygons, open for
// polylines), and drop degenerate shapes. Because a degraded scan can
// leave zero survivors, Synthesize provides a chain of fallback
// producers — manual override rectangle, recognized W×H room tokens,
// union bounding box, fixed placeholder — guaranteeing at least one
// room. Fabricated rooms are always tagged synthetic so consumers can
// distinguish them from measured geometry.
package geometry

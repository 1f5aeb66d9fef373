// Package imaging provides the pixel-level building blocks of the banana
// ripeness pipeline: image loading and caching, conversion to a planar HSV
// representation, and the binary Mask grid with its morphological operators.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//
// # Color Representation
//
// Analysis happens in HSV space:
//   - Hue: 0-360 degrees (0=red, 60=yellow, 120=green)
//   - Saturation: 0-100 percent
//   - Value: 0-100 percent
//
// # Immutability
//
// HSVImage is built once per analysis and never mutated. Mask operations
// always allocate a new grid rather than modifying an input in place, because
// masks produced by earlier pipeline stages are read again by later stages.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. HSVImage and Mask values
// are not synchronized; each analysis owns its grids exclusively.
package imaging

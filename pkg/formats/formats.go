// Package formats provides parsers for the heightfield file formats the
// terrain viewer can load.
package formats

// Note: RAW (headerless 8-bit grid) and VED (Tread Marks map) are in raw.go
// Note: image heightmaps (PNG, GIF, JPEG, BMP, TIFF) are in image.go

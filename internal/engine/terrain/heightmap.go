package terrain

import (
	"fmt"

	"github.com/Faultbox/roam-terrain/pkg/formats"
)

// Heightmap is a square grid of 8-bit elevations with one extra row above
// and one below. Row -1 is a copy of the last row and row size a copy of the
// first, so lookups one step past the vertical edges need no bounds checks.
type Heightmap struct {
	size int
	data []byte // (size+2)*size bytes, row -1 first
}

// NewHeightmap creates a flat heightmap.
func NewHeightmap(size int) *Heightmap {
	return &Heightmap{
		size: size,
		data: make([]byte, (size+2)*size),
	}
}

// HeightmapFromSamples wraps size*size row-major samples.
func HeightmapFromSamples(size int, samples []byte) (*Heightmap, error) {
	if size <= 0 {
		return nil, formats.ErrInvalidSize
	}
	if len(samples) != size*size {
		return nil, fmt.Errorf("heightmap: %d samples for size %d", len(samples), size)
	}

	h := NewHeightmap(size)
	copy(h.data[size:], samples)
	h.syncWrapRows()
	return h, nil
}

// Size returns the number of samples per side.
func (h *Heightmap) Size() int {
	return h.size
}

// At returns the elevation at (x, y). y may range over [-1, size] and x over
// [0, size]; column size reads column 0. Anything further out is clamped.
func (h *Heightmap) At(x, y int) uint8 {
	if x >= h.size {
		x -= h.size
	}
	if x < 0 || x >= h.size {
		x = clampInt(x, 0, h.size-1)
	}
	if y < -1 || y > h.size {
		y = clampInt(y, -1, h.size)
	}
	return h.data[(y+1)*h.size+x]
}

// Set changes one interior sample and keeps the duplicated rows in sync.
// Patches covering (x, y) must be marked dirty by the caller.
func (h *Heightmap) Set(x, y int, v uint8) {
	if x < 0 || y < 0 || x >= h.size || y >= h.size {
		return
	}
	h.data[(y+1)*h.size+x] = v
	switch y {
	case 0:
		h.data[(h.size+1)*h.size+x] = v
	case h.size - 1:
		h.data[x] = v
	}
}

// Sample returns the elevation under a world position, clamped to the map.
func (h *Heightmap) Sample(x, z float32) uint8 {
	return h.At(clampInt(int(x), 0, h.size-1), clampInt(int(z), 0, h.size-1))
}

// Raw returns the whole buffer including both duplicated rows.
func (h *Heightmap) Raw() []byte {
	return h.data
}

// Samples returns the size*size interior rows.
func (h *Heightmap) Samples() []byte {
	return h.data[h.size : (h.size+1)*h.size]
}

func (h *Heightmap) syncWrapRows() {
	n := h.size
	copy(h.data[:n], h.data[n*n:(n+1)*n])
	copy(h.data[(n+1)*n:], h.data[n:2*n])
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

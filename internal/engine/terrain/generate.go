package terrain

import (
	"math"
	"math/rand"
)

// GenerateFractal builds a tiling midpoint-displacement heightmap. size must
// be a power of two. roughness in (0, 1] controls how fast the displacement
// shrinks per octave; larger is rougher.
func GenerateFractal(size int, seed int64, roughness float64) *Heightmap {
	rng := rand.New(rand.NewSource(seed))
	grid := make([]float64, size*size)
	at := func(x, y int) *float64 {
		x &= size - 1
		y &= size - 1
		return &grid[y*size+x]
	}

	amp := 1.0
	for step := size; step > 1; step /= 2 {
		half := step / 2

		// Diamond: centre of each square.
		for y := 0; y < size; y += step {
			for x := 0; x < size; x += step {
				avg := (*at(x, y) + *at(x+step, y) + *at(x, y+step) + *at(x+step, y+step)) / 4
				*at(x+half, y+half) = avg + (rng.Float64()*2-1)*amp
			}
		}

		// Square: edge midpoints.
		for y := 0; y < size; y += half {
			for x := (y/half + 1) % 2 * half; x < size; x += step {
				avg := (*at(x-half, y) + *at(x+half, y) + *at(x, y-half) + *at(x, y+half)) / 4
				*at(x, y) = avg + (rng.Float64()*2-1)*amp
			}
		}

		amp *= roughness
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range grid {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	samples := make([]byte, len(grid))
	if hi > lo {
		for i, v := range grid {
			samples[i] = uint8((v - lo) / (hi - lo) * 255)
		}
	}

	hm, _ := HeightmapFromSamples(size, samples)
	return hm
}

// AddSpikes raises n random single samples to height.
func AddSpikes(hm *Heightmap, n int, height uint8, seed int64) {
	rng := rand.New(rand.NewSource(seed))
	for range n {
		hm.Set(rng.Intn(hm.size), rng.Intn(hm.size), height)
	}
}

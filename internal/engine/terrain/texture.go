package terrain

import "math/rand"

// TextureSize is the side of the generated ground texture. Texture
// coordinates repeat every TextureSize world units.
const TextureSize = 128

// StippleTexture returns a size*size RGB image of random green speckles.
// Green ranges over [128, 168); red and blue stay zero.
func StippleTexture(size int, seed int64) []byte {
	rng := rand.New(rand.NewSource(seed))
	pix := make([]byte, size*size*3)
	for i := 0; i < len(pix); i += 3 {
		pix[i+1] = byte(128 + rng.Intn(40))
	}
	return pix
}

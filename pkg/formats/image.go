package formats

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	// Registered decoders for heightmap images.
	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// ErrNotSquare is returned for heightmap images whose sides differ.
var ErrNotSquare = errors.New("heightmap image is not square")

// DecodeHeightImage decodes a grayscale heightmap image. Colour images are
// reduced to luminance. Returns the samples row-major and the side length.
func DecodeHeightImage(r io.Reader) ([]byte, int, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, 0, fmt.Errorf("decode heightmap image: %w", err)
	}

	b := img.Bounds()
	if b.Dx() != b.Dy() {
		return nil, 0, fmt.Errorf("%w: %s image is %dx%d", ErrNotSquare, format, b.Dx(), b.Dy())
	}
	size := b.Dx()
	if size == 0 {
		return nil, 0, ErrInvalidSize
	}

	samples := make([]byte, size*size)

	// Fast path for 8-bit grayscale, the usual heightmap export.
	if gray, ok := img.(*image.Gray); ok {
		for y := range size {
			row := gray.Pix[y*gray.Stride : y*gray.Stride+size]
			copy(samples[y*size:], row)
		}
		return samples, size, nil
	}

	for y := range size {
		for x := range size {
			g := color.GrayModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray)
			samples[y*size+x] = g.Y
		}
	}
	return samples, size, nil
}

// EncodeHeightPNG writes size*size samples as an 8-bit grayscale PNG.
func EncodeHeightPNG(w io.Writer, samples []byte, size int) error {
	if size <= 0 {
		return ErrInvalidSize
	}
	if len(samples) < size*size {
		return fmt.Errorf("%w: need %d samples, have %d", ErrTruncatedRAWData, size*size, len(samples))
	}

	img := image.NewGray(image.Rect(0, 0, size, size))
	for y := range size {
		copy(img.Pix[y*img.Stride:y*img.Stride+size], samples[y*size:(y+1)*size])
	}
	return png.Encode(w, img)
}

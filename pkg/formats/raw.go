package formats

import (
	"errors"
	"fmt"
)

// Heightmap format errors.
var (
	ErrInvalidSize      = errors.New("heightmap size must be positive")
	ErrTruncatedRAWData = errors.New("truncated RAW heightmap data")
	ErrTruncatedVEDData = errors.New("truncated VED map data")
)

// VEDHeaderSize is the number of bytes preceding the height samples in a
// Tread Marks map file.
const VEDHeaderSize = 40

// ParseRAW parses a headerless RAW heightmap: size*size unsigned 8-bit
// samples, row-major. Trailing bytes are ignored.
func ParseRAW(data []byte, size int) ([]byte, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}

	n := size * size
	if len(data) < n {
		return nil, fmt.Errorf("%w: need %d bytes, have %d", ErrTruncatedRAWData, n, len(data))
	}

	samples := make([]byte, n)
	copy(samples, data[:n])
	return samples, nil
}

// ParseVED parses a Tread Marks map: a fixed header followed by the same
// sample layout as RAW.
func ParseVED(data []byte, size int) ([]byte, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	if len(data) < VEDHeaderSize {
		return nil, fmt.Errorf("%w: header is %d bytes", ErrTruncatedVEDData, VEDHeaderSize)
	}

	samples, err := ParseRAW(data[VEDHeaderSize:], size)
	if errors.Is(err, ErrTruncatedRAWData) {
		return nil, fmt.Errorf("%w: %v", ErrTruncatedVEDData, err)
	}
	return samples, err
}

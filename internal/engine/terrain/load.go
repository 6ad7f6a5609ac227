package terrain

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/roam-terrain/internal/logger"
	"github.com/Faultbox/roam-terrain/pkg/formats"
)

// LoadHeightmap reads a heightmap file, choosing the decoder by extension:
// .raw and .ved hold size*size samples, anything else is decoded as an image
// whose side must equal size.
func LoadHeightmap(path string, size int) (*Heightmap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read heightmap: %w", err)
	}

	var samples []byte
	switch strings.ToLower(filepath.Ext(path)) {
	case ".raw":
		samples, err = formats.ParseRAW(data, size)
	case ".ved":
		samples, err = formats.ParseVED(data, size)
	default:
		var side int
		samples, side, err = formats.DecodeHeightImage(bytes.NewReader(data))
		if err == nil && side != size {
			err = fmt.Errorf("image is %dx%d, map size is %d", side, side, size)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("load heightmap %s: %w", path, err)
	}

	return HeightmapFromSamples(size, samples)
}

// LoadDefault looks for Height<size>.raw and then Map.ved in dir. When
// neither exists a flat map is returned and a warning logged.
func LoadDefault(dir string, size int) (*Heightmap, error) {
	candidates := []string{
		filepath.Join(dir, fmt.Sprintf("Height%d.raw", size)),
		filepath.Join(dir, "Map.ved"),
	}

	for _, path := range candidates {
		hm, err := LoadHeightmap(path, size)
		if err == nil {
			logger.Info("heightmap loaded", zap.String("path", path), zap.Int("size", size))
			return hm, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	logger.Warn("no heightmap found, using flat map",
		zap.String("dir", dir),
		zap.Int("size", size))
	return NewHeightmap(size), nil
}

// Open loads the heightmap at path, or searches the working directory with
// LoadDefault when path is empty.
func Open(path string, size int) (*Heightmap, error) {
	if path == "" {
		return LoadDefault(".", size)
	}
	hm, err := LoadHeightmap(path, size)
	if err != nil {
		return nil, err
	}
	logger.Info("heightmap loaded", zap.String("path", path), zap.Int("size", size))
	return hm, nil
}

package datasets

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writePPM writes a binary (P6) PPM image of the given size, with pixel values
// given by colorAt.
func writePPM(t *testing.T, path string, width, height int, colorAt func(x, y int) (r, g, b uint8)) {
	t.Helper()
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "P6\n%d %d\n255\n", width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b := colorAt(x, y)
			buf.Write([]byte{r, g, b})
		}
	}
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

// uniformPPM writes a single color PPM image.
func uniformPPM(t *testing.T, path string, width, height int, r, g, b uint8) {
	t.Helper()
	writePPM(t, path, width, height, func(int, int) (uint8, uint8, uint8) { return r, g, b })
}

// gradientPPM writes an image whose color varies with position, so mirroring
// and resizing are observable.
func gradientPPM(t *testing.T, path string, width, height int) {
	t.Helper()
	writePPM(t, path, width, height, func(x, y int) (uint8, uint8, uint8) {
		return uint8(x * 255 / max(width-1, 1)), uint8(y * 255 / max(height-1, 1)), uint8((x + y) % 256)
	})
}

func mustConfig(t *testing.T, width, height int, mode ColorMode, augmentation string) *Config {
	t.Helper()
	cfg, err := NewConfig(width, height, mode, augmentation)
	require.NoError(t, err)
	return cfg
}

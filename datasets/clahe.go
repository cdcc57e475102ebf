package datasets

import "math"

const (
	// DefaultClipLimit is the contrast limit used for color images, relative to
	// the average histogram bin height.
	DefaultClipLimit = 2.0

	// DefaultTileGrid is the number of tiles per axis used for color images.
	DefaultTileGrid = 8
)

// EqualizeAdaptive applies contrast limited adaptive histogram equalization
// (CLAHE) to a row-major 8-bit single channel image.
//
// The image is split into a tiles x tiles grid (fewer if the image is smaller).
// Each tile gets its own equalization table, built from a histogram clipped at
// clipLimit times the mean bin height, with the clipped excess spread over all
// bins. Output pixels blend the tables of the four nearest tile centers
// bilinearly. A clipLimit <= 0 disables clipping.
//
// The input is not modified.
func EqualizeAdaptive(lum []uint8, width, height int, clipLimit float64, tiles int) []uint8 {
	out := make([]uint8, len(lum))
	if width <= 0 || height <= 0 {
		return out
	}
	tiles = max(tiles, 1)
	tilesX, tilesY := min(tiles, width), min(tiles, height)

	luts := make([][256]uint8, tilesX*tilesY)
	for ty := 0; ty < tilesY; ty++ {
		y0, y1 := ty*height/tilesY, (ty+1)*height/tilesY
		for tx := 0; tx < tilesX; tx++ {
			x0, x1 := tx*width/tilesX, (tx+1)*width/tilesX
			luts[ty*tilesX+tx] = tileLUT(lum, width, x0, x1, y0, y1, clipLimit)
		}
	}

	tileW := float64(width) / float64(tilesX)
	tileH := float64(height) / float64(tilesY)
	for y := 0; y < height; y++ {
		ty0, ty1, wy := tileNeighbors(y, tileH, tilesY)
		for x := 0; x < width; x++ {
			tx0, tx1, wx := tileNeighbors(x, tileW, tilesX)
			v := lum[y*width+x]
			top := lerp(float64(luts[ty0*tilesX+tx0][v]), float64(luts[ty0*tilesX+tx1][v]), wx)
			bottom := lerp(float64(luts[ty1*tilesX+tx0][v]), float64(luts[ty1*tilesX+tx1][v]), wx)
			out[y*width+x] = clampByte(lerp(top, bottom, wy))
		}
	}
	return out
}

// tileLUT builds the clipped equalization table of the tile [x0,x1) x [y0,y1).
func tileLUT(lum []uint8, width, x0, x1, y0, y1 int, clipLimit float64) (lut [256]uint8) {
	var hist [256]int
	for y := y0; y < y1; y++ {
		for _, v := range lum[y*width+x0 : y*width+x1] {
			hist[v]++
		}
	}
	area := (x1 - x0) * (y1 - y0)

	if clipLimit > 0 {
		limit := max(int(clipLimit*float64(area)/256), 1)
		excess := 0
		for i := range hist {
			if hist[i] > limit {
				excess += hist[i] - limit
				hist[i] = limit
			}
		}
		inc, remainder := excess/256, excess%256
		for i := range hist {
			hist[i] += inc
		}
		if remainder > 0 {
			step := max(256/remainder, 1)
			for i := 0; i < 256 && remainder > 0; i += step {
				hist[i]++
				remainder--
			}
		}
	}

	scale := 255 / float64(area)
	sum := 0
	for i := range hist {
		sum += hist[i]
		lut[i] = clampByte(float64(sum) * scale)
	}
	return
}

// tileNeighbors returns the two tile indices whose centers surround pixel
// coordinate p, and the weight of the second one.
func tileNeighbors(p int, tileSize float64, numTiles int) (lo, hi int, weight float64) {
	f := (float64(p)+0.5)/tileSize - 0.5
	base := math.Floor(f)
	lo, hi = int(base), int(base)+1
	weight = f - base
	if lo < 0 {
		lo, weight = 0, 0
	}
	if hi > numTiles-1 {
		hi = numTiles - 1
	}
	if lo > numTiles-1 {
		lo = numTiles - 1
	}
	return
}

func lerp(a, b, w float64) float64 {
	return a + (b-a)*w
}

func clampByte(v float64) uint8 {
	v = math.Round(v)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

package datasets

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"

	// Registers the PPM/PGM/PBM/PAM decoders with the image package.
	_ "github.com/spakin/netpbm"
)

// NormalizeImage decodes the image at path and converts it to a Sample shaped
// by cfg. See NormalizeImageData for the transformation steps.
//
// Unreadable or invalid image files fail with ErrDecode.
func NormalizeImage(path string, cfg *Config) (Sample, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return Sample{}, errors.Wrapf(ErrDecode, "%s: %v", path, err)
	}
	s, err := NormalizeImageData(img, cfg)
	if err != nil {
		return Sample{}, errors.WithMessagef(err, "normalizing %s", path)
	}
	return s, nil
}

// NormalizeImageData converts a decoded image to a Sample. The steps, in order:
//
//  1. Convert to 8-bit RGB (alpha is ignored).
//  2. Grayscale: luminance (0.299R + 0.587G + 0.114B). Color: adaptive histogram
//     equalization on the luma channel, then back to RGB.
//  3. Scale values to [0, 1].
//  4. Bilinear resize to cfg.Width() x cfg.Height().
//  5. Lay out as [height, width, cfg.Channels()].
//
// Contrast equalization works on 0-255 integer luma, so it precedes scaling.
func NormalizeImageData(img image.Image, cfg *Config) (Sample, error) {
	rgb := imaging.Clone(img)
	width, height := rgb.Bounds().Dx(), rgb.Bounds().Dy()
	if width == 0 || height == 0 {
		return Sample{}, errors.Wrapf(ErrDecode, "empty image (%dx%d)", width, height)
	}

	channels := cfg.Channels()
	var planes []uint8
	if cfg.ColorMode() == Grayscale {
		planes = luminance(rgb)
	} else {
		planes = equalizeColor(rgb)
	}

	scaled := make([]float32, len(planes))
	for i, v := range planes {
		scaled[i] = float32(v) / 255
	}

	return Sample{
		Height:   cfg.Height(),
		Width:    cfg.Width(),
		Channels: channels,
		Pixels:   resizeBilinear(scaled, width, height, channels, cfg.Width(), cfg.Height()),
	}, nil
}

// luminance returns one byte per pixel, row-major.
func luminance(rgb *image.NRGBA) []uint8 {
	gray := imaging.Grayscale(rgb)
	width, height := gray.Bounds().Dx(), gray.Bounds().Dy()
	lum := make([]uint8, width*height)
	for y := 0; y < height; y++ {
		row := gray.Pix[y*gray.Stride:]
		for x := 0; x < width; x++ {
			lum[y*width+x] = row[x*4]
		}
	}
	return lum
}

// equalizeColor applies EqualizeAdaptive to the luma of rgb and returns packed
// RGB bytes, 3 per pixel.
func equalizeColor(rgb *image.NRGBA) []uint8 {
	width, height := rgb.Bounds().Dx(), rgb.Bounds().Dy()
	numPixels := width * height
	luma := make([]uint8, numPixels)
	cb := make([]uint8, numPixels)
	cr := make([]uint8, numPixels)
	for y := 0; y < height; y++ {
		row := rgb.Pix[y*rgb.Stride:]
		for x := 0; x < width; x++ {
			i := y*width + x
			luma[i], cb[i], cr[i] = color.RGBToYCbCr(row[x*4], row[x*4+1], row[x*4+2])
		}
	}

	luma = EqualizeAdaptive(luma, width, height, DefaultClipLimit, DefaultTileGrid)

	out := make([]uint8, numPixels*3)
	for i := 0; i < numPixels; i++ {
		out[i*3], out[i*3+1], out[i*3+2] = color.YCbCrToRGB(luma[i], cb[i], cr[i])
	}
	return out
}

// resizeBilinear resizes an interleaved [srcH, srcW, channels] image to
// [dstH, dstW, channels]. Pixel centers are aligned at half-pixel offsets and
// coordinates are clamped at the borders.
func resizeBilinear(src []float32, srcW, srcH, channels, dstW, dstH int) []float32 {
	dst := make([]float32, dstW*dstH*channels)
	if srcW == dstW && srcH == dstH {
		copy(dst, src)
		return dst
	}

	x0s, x1s, wxs := bilinearTaps(srcW, dstW)
	y0s, y1s, wys := bilinearTaps(srcH, dstH)
	for dy := 0; dy < dstH; dy++ {
		row0 := src[y0s[dy]*srcW*channels:]
		row1 := src[y1s[dy]*srcW*channels:]
		wy := wys[dy]
		for dx := 0; dx < dstW; dx++ {
			i0, i1, wx := x0s[dx]*channels, x1s[dx]*channels, wxs[dx]
			out := dst[(dy*dstW+dx)*channels:]
			for c := 0; c < channels; c++ {
				top := row0[i0+c] + (row0[i1+c]-row0[i0+c])*wx
				bottom := row1[i0+c] + (row1[i1+c]-row1[i0+c])*wx
				out[c] = top + (bottom-top)*wy
			}
		}
	}
	return dst
}

// bilinearTaps returns, for each destination coordinate, the two source
// coordinates to blend and the weight of the second one.
func bilinearTaps(srcSize, dstSize int) (lo, hi []int, weight []float32) {
	lo = make([]int, dstSize)
	hi = make([]int, dstSize)
	weight = make([]float32, dstSize)
	scale := float64(srcSize) / float64(dstSize)
	for d := 0; d < dstSize; d++ {
		f := (float64(d)+0.5)*scale - 0.5
		if f < 0 {
			f = 0
		}
		i := int(f)
		if i > srcSize-1 {
			i = srcSize - 1
		}
		lo[d] = i
		hi[d] = min(i+1, srcSize-1)
		if hi[d] != i {
			weight[d] = float32(f - float64(i))
		}
	}
	return
}

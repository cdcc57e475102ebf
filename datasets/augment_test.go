package datasets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rampSample returns a sample whose values are unique and increase along the
// flat layout.
func rampSample(height, width, channels int) Sample {
	s := NewSample(height, width, channels)
	for i := range s.Pixels {
		s.Pixels[i] = float32(i) / float32(len(s.Pixels))
	}
	return s
}

func TestMirrorHorizontal(t *testing.T) {
	s := rampSample(2, 3, 2)
	original := append([]float32(nil), s.Pixels...)
	m := MirrorHorizontal(s)
	require.Equal(t, s.Shape(), m.Shape())
	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			for c := 0; c < s.Channels; c++ {
				assert.Equal(t, s.At(y, s.Width-1-x, c), m.At(y, x, c))
			}
		}
	}
	assert.Equal(t, original, s.Pixels, "input modified")
	assert.Equal(t, s.Pixels, MirrorHorizontal(m).Pixels)
}

func TestAugmentLeftCurveTurnSwap(t *testing.T) {
	s := rampSample(4, 5, 1)
	original := append([]float32(nil), s.Pixels...)
	extra := Augment(s, LeftCurve, AugmentMirrorTurnSwap)
	require.Len(t, extra, 2)
	assert.Equal(t, LeftCurve, extra[0].Label)
	assert.Equal(t, RightCurve, extra[1].Label)
	mirrored := MirrorHorizontal(s).Pixels
	for _, e := range extra {
		assert.Equal(t, mirrored, e.Sample.Pixels)
	}
	assert.Equal(t, original, s.Pixels, "input modified")

	// Outputs don't share memory.
	extra[0].Sample.Pixels[0] = -1
	assert.NotEqual(t, extra[0].Sample.Pixels[0], extra[1].Sample.Pixels[0])
}

func TestAugmentRightCurveTurnSwap(t *testing.T) {
	extra := Augment(rampSample(2, 2, 3), RightCurve, AugmentMirrorTurnSwap)
	require.Len(t, extra, 2)
	assert.Equal(t, RightCurve, extra[0].Label)
	assert.Equal(t, LeftCurve, extra[1].Label)
}

func TestAugmentRules(t *testing.T) {
	s := rampSample(3, 3, 1)
	assert.Empty(t, Augment(s, Stop, AugmentMirror))
	assert.Empty(t, Augment(s, Stop, AugmentMirrorTurnSwap))
	assert.Empty(t, Augment(s, LeftCurve, AugmentNone))
	assert.Empty(t, Augment(s, 5, AugmentMirrorTurnSwap))

	extra := Augment(s, LeftCurve, AugmentMirror)
	require.Len(t, extra, 1)
	assert.Equal(t, LeftCurve, extra[0].Label)

	extra = Augment(s, 10, AugmentMirrorTurnSwap)
	require.Len(t, extra, 1)
	assert.Equal(t, Label(10), extra[0].Label)

	for l := LabelMin; l <= LabelMax; l++ {
		for _, mode := range []Augmentation{AugmentNone, AugmentMirror, AugmentMirrorTurnSwap} {
			assert.LessOrEqual(t, len(Augment(s, l, mode)), MaxExtraSamples(mode))
		}
	}
}

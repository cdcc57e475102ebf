package datasets

// MaxExtraSamples is the largest number of samples Augment can synthesize from
// one input under mode.
func MaxExtraSamples(mode Augmentation) int {
	switch mode {
	case AugmentMirror:
		return 1
	case AugmentMirrorTurnSwap:
		return 2
	}
	return 0
}

// Augment returns the extra samples the policy mode derives from s, in
// generation order. s is never modified.
//
//   - AugmentNone: nothing.
//   - AugmentMirror: a mirrored copy with the same label, if IsFlippable(label).
//   - AugmentMirrorTurnSwap: as AugmentMirror, then a mirrored copy of a
//     LeftCurve relabeled RightCurve (and vice versa). Curves therefore get two
//     extra samples.
func Augment(s Sample, label Label, mode Augmentation) []LabeledSample {
	if mode != AugmentMirror && mode != AugmentMirrorTurnSwap {
		return nil
	}
	var extra []LabeledSample
	if IsFlippable(label) {
		extra = append(extra, LabeledSample{Sample: MirrorHorizontal(s), Label: label})
	}
	if mode == AugmentMirrorTurnSwap {
		switch label {
		case LeftCurve:
			extra = append(extra, LabeledSample{Sample: MirrorHorizontal(s), Label: RightCurve})
		case RightCurve:
			extra = append(extra, LabeledSample{Sample: MirrorHorizontal(s), Label: LeftCurve})
		}
	}
	return extra
}

// MirrorHorizontal returns a copy of s with columns in reverse order.
func MirrorHorizontal(s Sample) Sample {
	out := NewSample(s.Height, s.Width, s.Channels)
	rowSize := s.Width * s.Channels
	for y := 0; y < s.Height; y++ {
		src := s.Pixels[y*rowSize : (y+1)*rowSize]
		dst := out.Pixels[y*rowSize : (y+1)*rowSize]
		for x := 0; x < s.Width; x++ {
			copy(dst[x*s.Channels:(x+1)*s.Channels], src[(s.Width-1-x)*s.Channels:(s.Width-x)*s.Channels])
		}
	}
	return out
}

package datasets

// Sample is one normalized image: Height x Width x Channels float32 values in
// [0, 1], stored row-major with the channel axis last.
type Sample struct {
	Height, Width, Channels int
	Pixels                  []float32
}

// NewSample allocates a zeroed sample of the given shape.
func NewSample(height, width, channels int) Sample {
	return Sample{
		Height:   height,
		Width:    width,
		Channels: channels,
		Pixels:   make([]float32, height*width*channels),
	}
}

// Shape returns [height, width, channels].
func (s Sample) Shape() []int {
	return []int{s.Height, s.Width, s.Channels}
}

// Size is the number of values the shape calls for.
func (s Sample) Size() int {
	return s.Height * s.Width * s.Channels
}

// At returns the value at row y, column x and channel c.
func (s Sample) At(y, x, c int) float32 {
	return s.Pixels[(y*s.Width+x)*s.Channels+c]
}

// LabeledSample pairs a synthesized sample with its label.
type LabeledSample struct {
	Sample Sample
	Label  Label
}

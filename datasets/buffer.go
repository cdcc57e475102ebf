package datasets

import (
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/pkg/errors"
)

// BulkBuffer accumulates samples of one fixed shape into a single contiguous
// float32 array, allocated once up front.
//
// Capacity is usually estimated from a cheap file count (times the augmentation
// factor); Finalize drops the unused tail.
type BulkBuffer struct {
	capacity                int
	height, width, channels int
	sampleSize              int

	// data holds capacity*sampleSize values; only the first count samples are used.
	data  []float32
	count int
}

// NewBulkBuffer preallocates room for capacity samples shaped
// [height, width, channels].
func NewBulkBuffer(capacity, height, width, channels int) (*BulkBuffer, error) {
	if capacity < 0 {
		return nil, errors.Errorf("bulk buffer capacity must be >= 0, got %d", capacity)
	}
	if height <= 0 || width <= 0 || channels <= 0 {
		return nil, errors.Errorf("bulk buffer sample shape must be positive, got [%d, %d, %d]",
			height, width, channels)
	}
	sampleSize := height * width * channels
	return &BulkBuffer{
		capacity:   capacity,
		height:     height,
		width:      width,
		channels:   channels,
		sampleSize: sampleSize,
		data:       make([]float32, capacity*sampleSize),
	}, nil
}

// Append copies s into the next free slot.
//
// It fails with ErrShapeMismatch if s doesn't have the buffer's shape and with
// ErrCapacityExceeded if the buffer is already full. On failure the buffer is
// left unchanged.
func (b *BulkBuffer) Append(s Sample) error {
	if s.Height != b.height || s.Width != b.width || s.Channels != b.channels || len(s.Pixels) != b.sampleSize {
		return errors.Wrapf(ErrShapeMismatch, "sample shaped %v (%d values), buffer expects %v",
			s.Shape(), len(s.Pixels), b.Shape())
	}
	if b.count >= b.capacity {
		return errors.Wrapf(ErrCapacityExceeded, "capacity is %d samples", b.capacity)
	}
	copy(b.data[b.count*b.sampleSize:], s.Pixels)
	b.count++
	return nil
}

// Len returns the number of samples accepted so far.
func (b *BulkBuffer) Len() int { return b.count }

// Cap returns the declared capacity, in samples.
func (b *BulkBuffer) Cap() int { return b.capacity }

// Shape returns the sample shape, [height, width, channels].
func (b *BulkBuffer) Shape() []int { return []int{b.height, b.width, b.channels} }

// DType of the buffered values.
func (b *BulkBuffer) DType() dtypes.DType { return dtypes.Float32 }

// Finalize returns the accepted samples, in append order, as one flat array
// shaped [Len(), height, width, channels]. The result shares memory with the
// buffer but is capacity-clipped, so appending to it never touches unused slots.
func (b *BulkBuffer) Finalize() []float32 {
	n := b.count * b.sampleSize
	return b.data[:n:n]
}

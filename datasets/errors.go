package datasets

import "github.com/pkg/errors"

// Errors returned by the pipeline. They are wrapped with context (file path,
// offending value) so callers should match them with errors.Is.
var (
	// ErrConfig is returned by NewConfig for an invalid augmentation mode,
	// color mode or image size.
	ErrConfig = errors.New("invalid configuration")

	// ErrInvalidSplit is returned for split names other than "train" and "test".
	ErrInvalidSplit = errors.New("invalid split")

	// ErrInvalidLabelFormat is returned when a label directory name is not a
	// base-10 integer.
	ErrInvalidLabelFormat = errors.New("label directory is not an integer")

	// ErrInvalidLabelRange is returned when a label directory name is outside
	// [LabelMin, LabelMax].
	ErrInvalidLabelRange = errors.New("label out of range")

	// ErrDecode is returned when an image file can't be read or decoded.
	ErrDecode = errors.New("failed to decode image")

	// ErrCacheMiss is returned by CacheStore.Lookup when no artifact exists for
	// the key. It is a routine signal, not a failure.
	ErrCacheMiss = errors.New("cache miss")

	// ErrCapacityExceeded is returned by BulkBuffer.Append once the buffer is full.
	ErrCapacityExceeded = errors.New("bulk buffer capacity exceeded")

	// ErrShapeMismatch is returned by BulkBuffer.Append for a sample whose shape
	// differs from the buffer's.
	ErrShapeMismatch = errors.New("sample shape mismatch")

	// ErrEmptyDataset is returned when a split directory yields no samples.
	ErrEmptyDataset = errors.New("empty dataset")
)

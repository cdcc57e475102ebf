// Package datasets turns directories of traffic-sign photographs into dense
// image arrays and integer labels ready for a classifier.
//
// Layout and intended usage:
//
//	<root>/train/<label>/<image>.ppm
//	<root>/test/<label>/<image>.ppm
//
// where <label> is the class index in [0, 20] (see ClassNames). LoadData (or a
// Loader) walks one split, normalizes each image according to a Config,
// synthesizes augmented samples, shuffles the result once and caches it as a
// NumPy .npz file keyed by Config.Serialize() and the split name. Later calls
// with the same configuration read the cache instead of decoding images again.
package datasets

import (
	"github.com/gomlx/gomlx/pkg/core/tensors"
	"github.com/pkg/errors"
)

// Split is a named partition of the data: SplitTrain or SplitTest.
type Split string

const (
	SplitTrain Split = "train"
	SplitTest  Split = "test"
)

// ParseSplit validates a split name.
func ParseSplit(s string) (Split, error) {
	switch sp := Split(s); sp {
	case SplitTrain, SplitTest:
		return sp, nil
	}
	return "", errors.Wrapf(ErrInvalidSplit, "%q (valid: %q, %q)", s, SplitTrain, SplitTest)
}

// Dataset holds all samples of a split in one flat array and their labels in a
// parallel slice. Images[i*SampleSize():(i+1)*SampleSize()] is labeled
// Labels[i].
type Dataset struct {
	// Images is shaped [Len(), Height, Width, Channels].
	Images []float32
	Labels []Label

	Height, Width, Channels int
}

// Len returns the number of samples.
func (d *Dataset) Len() int { return len(d.Labels) }

// SampleSize is the number of values per sample.
func (d *Dataset) SampleSize() int { return d.Height * d.Width * d.Channels }

// Shape returns [Len(), Height, Width, Channels].
func (d *Dataset) Shape() []int { return []int{d.Len(), d.Height, d.Width, d.Channels} }

// check verifies that images and labels are consistent.
func (d *Dataset) check() error {
	if d.Height <= 0 || d.Width <= 0 || d.Channels <= 0 {
		return errors.Errorf("dataset has invalid sample shape [%d, %d, %d]", d.Height, d.Width, d.Channels)
	}
	if len(d.Images) != d.Len()*d.SampleSize() {
		return errors.Errorf("dataset has %d labels but %d image values (want %d)",
			d.Len(), len(d.Images), d.Len()*d.SampleSize())
	}
	return nil
}

// Example returns the pixels (shared with the dataset, not a copy) and label of
// sample idx.
func (d *Dataset) Example(idx int) (pixels []float32, label Label, err error) {
	if idx < 0 || idx >= d.Len() {
		return nil, 0, errors.Errorf("index %d out of range [0, %d)", idx, d.Len())
	}
	size := d.SampleSize()
	return d.Images[idx*size : (idx+1)*size : (idx+1)*size], d.Labels[idx], nil
}

// Batch copies the given samples into a new flat array shaped
// [len(indices), Height, Width, Channels], with the matching labels.
func (d *Dataset) Batch(indices []int) (images []float32, labels []Label, err error) {
	size := d.SampleSize()
	images = make([]float32, len(indices)*size)
	labels = make([]Label, len(indices))
	for i, idx := range indices {
		pixels, label, err := d.Example(idx)
		if err != nil {
			return nil, nil, err
		}
		copy(images[i*size:], pixels)
		labels[i] = label
	}
	return images, labels, nil
}

// ClassCounts returns the number of samples per label.
func (d *Dataset) ClassCounts() (counts [NumClasses]int) {
	for _, l := range d.Labels {
		if l.Valid() {
			counts[l]++
		}
	}
	return
}

// ToGomlxTensors converts the dataset to gomlx tensors: images shaped
// [N, Height, Width, Channels] (Float32) and labels shaped [N] (Int32).
func (d *Dataset) ToGomlxTensors() (images *tensors.Tensor, labels *tensors.Tensor, err error) {
	if err := d.check(); err != nil {
		return nil, nil, err
	}
	images = tensors.FromFlatDataAndDimensions(d.Images, d.Shape()...)
	labels = tensors.FromFlatDataAndDimensions(labelsToInt32(d.Labels), d.Len())
	return images, labels, nil
}

// BatchTensors is like Batch, but returns gomlx tensors.
func (d *Dataset) BatchTensors(indices []int) (images *tensors.Tensor, labels *tensors.Tensor, err error) {
	flat, batchLabels, err := d.Batch(indices)
	if err != nil {
		return nil, nil, err
	}
	images = tensors.FromFlatDataAndDimensions(flat, len(indices), d.Height, d.Width, d.Channels)
	labels = tensors.FromFlatDataAndDimensions(labelsToInt32(batchLabels), len(indices))
	return images, labels, nil
}

func labelsToInt32(labels []Label) []int32 {
	out := make([]int32, len(labels))
	for i, l := range labels {
		out[i] = int32(l)
	}
	return out
}

package datasets

import (
	"testing"

	"github.com/gomlx/gomlx/pkg/core/tensors"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tinyDataset has 3 samples of 1x2 pixels with 1 channel.
func tinyDataset() *Dataset {
	return &Dataset{
		Images:   []float32{0, 0.1, 0.2, 0.3, 0.4, 0.5},
		Labels:   []Label{7, 12, 7},
		Height:   1,
		Width:    2,
		Channels: 1,
	}
}

func TestParseSplit(t *testing.T) {
	for _, name := range []string{"train", "test"} {
		sp, err := ParseSplit(name)
		require.NoError(t, err)
		assert.Equal(t, name, string(sp))
	}
	for _, name := range []string{"", "Train", "validation", "train/"} {
		_, err := ParseSplit(name)
		assert.True(t, errors.Is(err, ErrInvalidSplit), "%q: got %v", name, err)
	}
}

func TestDatasetExample(t *testing.T) {
	ds := tinyDataset()
	assert.Equal(t, 3, ds.Len())
	assert.Equal(t, []int{3, 1, 2, 1}, ds.Shape())

	pixels, label, err := ds.Example(1)
	require.NoError(t, err)
	assert.Equal(t, Label(12), label)
	assert.Equal(t, []float32{0.2, 0.3}, pixels)

	for _, idx := range []int{-1, 3} {
		_, _, err = ds.Example(idx)
		assert.Error(t, err, "index %d", idx)
	}
}

func TestDatasetBatch(t *testing.T) {
	ds := tinyDataset()
	images, labels, err := ds.Batch([]int{2, 0})
	require.NoError(t, err)
	if diff := cmp.Diff([]float32{0.4, 0.5, 0, 0.1}, images); diff != "" {
		t.Errorf("Batch images mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]Label{7, 7}, labels); diff != "" {
		t.Errorf("Batch labels mismatch (-want +got):\n%s", diff)
	}

	// The batch is a copy.
	images[0] = 1
	assert.Equal(t, float32(0.4), ds.Images[4])

	_, _, err = ds.Batch([]int{0, 5})
	assert.Error(t, err)
}

func TestDatasetClassCounts(t *testing.T) {
	counts := tinyDataset().ClassCounts()
	var want [NumClasses]int
	want[Stop] = 2
	want[LeftCurve] = 1
	if diff := cmp.Diff(want, counts); diff != "" {
		t.Errorf("ClassCounts mismatch (-want +got):\n%s", diff)
	}
}

func TestDatasetToGomlxTensors(t *testing.T) {
	ds := tinyDataset()
	images, labels, err := ds.ToGomlxTensors()
	require.NoError(t, err)
	assert.Equal(t, dtypes.Float32, images.Shape().DType)
	assert.Equal(t, []int{3, 1, 2, 1}, images.Shape().Dimensions)
	assert.Equal(t, dtypes.Int32, labels.Shape().DType)
	assert.Equal(t, []int{3}, labels.Shape().Dimensions)
	assert.Equal(t, ds.Images, tensors.MustCopyFlatData[float32](images))
	assert.Equal(t, []int32{7, 12, 7}, tensors.MustCopyFlatData[int32](labels))

	batchImages, batchLabels, err := ds.BatchTensors([]int{1})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1, 2, 1}, batchImages.Shape().Dimensions)
	assert.Equal(t, []int32{12}, tensors.MustCopyFlatData[int32](batchLabels))

	ds.Labels = ds.Labels[:2]
	_, _, err = ds.ToGomlxTensors()
	assert.Error(t, err)
}

package datasets

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/dustin/go-humanize"
	"github.com/gomlx/gomlx/pkg/core/tensors"
	"github.com/gomlx/gomlx/pkg/core/tensors/numpy"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

const (
	// DefaultCacheDir is where LoadData keeps its cache artifacts.
	DefaultCacheDir = "cache"

	cacheExt        = ".npz"
	cacheImagesName = "images"
	cacheLabelsName = "labels"
)

// CacheStore persists datasets as NumPy .npz files, one per (Config, Split),
// holding two arrays: "images" (float32, [N, H, W, C]) and "labels" (int32, [N]).
type CacheStore struct {
	Dir string
}

// NewCacheStore returns a CacheStore keeping its files in dir. The directory is
// created on the first Store.
func NewCacheStore(dir string) *CacheStore {
	return &CacheStore{Dir: dir}
}

// Key is the cache identity of the (cfg, split) pair.
func Key(cfg *Config, split Split) string {
	return fmt.Sprintf("cache__%s__%s", cfg.Serialize(), split)
}

// Path returns the artifact file for (cfg, split).
func (c *CacheStore) Path(cfg *Config, split Split) string {
	return filepath.Join(c.Dir, Key(cfg, split)+cacheExt)
}

// Lookup returns the dataset stored for (cfg, split), or ErrCacheMiss if there
// is none. Any other error means an artifact exists but is unreadable or
// doesn't match cfg.
func (c *CacheStore) Lookup(cfg *Config, split Split) (*Dataset, error) {
	path := c.Path(cfg, split)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrCacheMiss, "%s", path)
		}
		return nil, errors.Wrapf(err, "checking cache file %q", path)
	}

	arrays, err := numpy.FromNpzFile(path)
	if err != nil {
		return nil, errors.WithMessagef(err, "reading cache file %q", path)
	}
	imagesT, labelsT := arrays[cacheImagesName], arrays[cacheLabelsName]
	if imagesT == nil || labelsT == nil {
		return nil, errors.Errorf("cache file %q must hold arrays %q and %q", path, cacheImagesName, cacheLabelsName)
	}

	imagesShape, labelsShape := imagesT.Shape(), labelsT.Shape()
	if imagesShape.DType != dtypes.Float32 || imagesShape.Rank() != 4 {
		return nil, errors.Errorf("cache file %q: images must be a rank-4 float32 array, got %s", path, imagesShape)
	}
	if labelsShape.DType != dtypes.Int32 || labelsShape.Rank() != 1 {
		return nil, errors.Errorf("cache file %q: labels must be a rank-1 int32 array, got %s", path, labelsShape)
	}
	if imagesShape.Dimensions[0] != labelsShape.Dimensions[0] {
		return nil, errors.Errorf("cache file %q: %d images but %d labels", path,
			imagesShape.Dimensions[0], labelsShape.Dimensions[0])
	}
	if !slices.Equal(imagesShape.Dimensions[1:], cfg.InputShape()) {
		return nil, errors.Errorf("cache file %q: samples shaped %v, configuration %s expects %v",
			path, imagesShape.Dimensions[1:], cfg, cfg.InputShape())
	}

	rawLabels := tensors.MustCopyFlatData[int32](labelsT)
	labels := make([]Label, len(rawLabels))
	for i, l := range rawLabels {
		labels[i] = Label(l)
		if !labels[i].Valid() {
			return nil, errors.Wrapf(ErrInvalidLabelRange, "cache file %q: label %d at position %d", path, l, i)
		}
	}
	ds := &Dataset{
		Images:   tensors.MustCopyFlatData[float32](imagesT),
		Labels:   labels,
		Height:   cfg.Height(),
		Width:    cfg.Width(),
		Channels: cfg.Channels(),
	}
	return ds, nil
}

// Store writes ds as the artifact for (cfg, split), replacing any previous one.
//
// The data is first written to a uniquely named file in the same directory and
// then renamed over the final path, so readers never see a partial file and
// concurrent writers of the same key leave one complete artifact.
func (c *CacheStore) Store(cfg *Config, split Split, ds *Dataset) error {
	if err := ds.check(); err != nil {
		return errors.WithMessagef(err, "storing %s", Key(cfg, split))
	}
	if !slices.Equal(ds.Shape()[1:], cfg.InputShape()) {
		return errors.Errorf("storing %s: samples shaped %v, configuration expects %v",
			Key(cfg, split), ds.Shape()[1:], cfg.InputShape())
	}
	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return errors.Wrapf(err, "creating cache directory %q", c.Dir)
	}

	imagesT, labelsT, err := ds.ToGomlxTensors()
	if err != nil {
		return err
	}
	path := c.Path(cfg, split)
	tmpPath := fmt.Sprintf("%s.%s.tmp", path, uuid.NewString())
	f, err := os.Create(tmpPath)
	if err != nil {
		return errors.Wrapf(err, "creating cache file %q", tmpPath)
	}
	err = numpy.ToNpzWriter(map[string]*tensors.Tensor{
		cacheImagesName: imagesT,
		cacheLabelsName: labelsT,
	}, f)
	if closeErr := f.Close(); err == nil && closeErr != nil {
		err = errors.Wrapf(closeErr, "closing cache file %q", tmpPath)
	}
	if err == nil {
		err = os.Rename(tmpPath, path)
		err = errors.Wrapf(err, "moving cache file into %q", path)
	}
	if err != nil {
		_ = os.Remove(tmpPath)
		return errors.WithMessagef(err, "storing %s", Key(cfg, split))
	}

	if info, statErr := os.Stat(path); statErr == nil {
		klog.Infof("Cached %d samples of %q in %s (%s)", ds.Len(), split, path, humanize.Bytes(uint64(info.Size())))
	}
	return nil
}

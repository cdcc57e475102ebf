package datasets

import (
	"io/fs"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"k8s.io/klog/v2"
)

const (
	// DefaultRoot is the directory holding the "train" and "test" splits used by
	// LoadData.
	DefaultRoot = "."

	// DefaultShuffleSeed seeds the shuffle of freshly loaded datasets, so that
	// rebuilding a cache yields the same order.
	DefaultShuffleSeed int64 = 42

	// ImageExt is the extension of raw images; other files are ignored.
	ImageExt = ".ppm"
)

// Loader builds datasets from a directory tree, going through a CacheStore.
type Loader struct {
	// Root holds one sub-directory per split.
	Root string

	// Cache is consulted before and written after a fresh load. If nil, every
	// Load walks the tree.
	Cache *CacheStore

	// Seed for the shuffle of fresh loads.
	Seed int64

	// Progress displays a progress bar on stderr while decoding images.
	Progress bool
}

// NewLoader returns a Loader reading splits under root and caching them in
// cacheDir. An empty cacheDir disables caching.
func NewLoader(root, cacheDir string) *Loader {
	l := &Loader{Root: root, Seed: DefaultShuffleSeed}
	if cacheDir != "" {
		l.Cache = NewCacheStore(cacheDir)
	}
	return l
}

// LoadData loads split ("train" or "test") from DefaultRoot with the cache in
// DefaultCacheDir.
func LoadData(cfg *Config, split string) (*Dataset, error) {
	sp, err := ParseSplit(split)
	if err != nil {
		return nil, err
	}
	return NewLoader(DefaultRoot, DefaultCacheDir).Load(cfg, sp)
}

// SplitDir returns the directory holding split.
func (l *Loader) SplitDir(split Split) string {
	return filepath.Join(l.Root, string(split))
}

// Load returns the dataset of split for cfg.
//
// A cached artifact is returned as is, already shuffled. Otherwise the split
// directory is walked (see LoadFresh) and the result is written to the cache
// before being returned; a failure to write the cache is only logged.
func (l *Loader) Load(cfg *Config, split Split) (*Dataset, error) {
	if _, err := ParseSplit(string(split)); err != nil {
		return nil, err
	}

	if l.Cache != nil {
		ds, err := l.Cache.Lookup(cfg, split)
		switch {
		case err == nil:
			klog.Infof("Loaded %d samples of %q from cache %s", ds.Len(), split, l.Cache.Path(cfg, split))
			return ds, nil
		case errors.Is(err, ErrCacheMiss):
			klog.V(1).Infof("Cache miss for %s", Key(cfg, split))
		default:
			klog.Warningf("Ignoring unreadable cache for %s: %+v", Key(cfg, split), err)
		}
	}

	ds, err := l.LoadFresh(cfg, split)
	if err != nil {
		return nil, err
	}

	if l.Cache != nil {
		if err := l.Cache.Store(cfg, split, ds); err != nil {
			klog.Warningf("Failed to cache %s, continuing without cache: %+v", Key(cfg, split), err)
		}
	}
	return ds, nil
}

// LoadFresh builds the dataset of split from the image files, bypassing the
// cache.
//
// Every ImageExt file under the split directory is labeled by the name of its
// parent directory (see ResolveLabel), normalized (see NormalizeImage) and
// augmented (see Augment); the samples are then shuffled with l.Seed.
// A malformed label directory or an undecodable image aborts the load. A split
// with no images fails with ErrEmptyDataset.
func (l *Loader) LoadFresh(cfg *Config, split Split) (*Dataset, error) {
	dir := l.SplitDir(split)
	paths, err := listImageFiles(dir)
	if err != nil {
		return nil, err
	}
	klog.Infof("Reading %d images from %q", len(paths), dir)

	capacity := len(paths) * max(2, 1+MaxExtraSamples(cfg.Augmentation()))
	buf, err := NewBulkBuffer(capacity, cfg.Height(), cfg.Width(), cfg.Channels())
	if err != nil {
		return nil, err
	}
	labels := make([]Label, 0, capacity)

	var pBar *progressbar.ProgressBar
	if l.Progress && len(paths) > 0 {
		pBar = progressbar.NewOptions(len(paths),
			progressbar.OptionSetDescription("Loading "+string(split)),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowIts(),
			progressbar.OptionSetItsString("images"),
			progressbar.OptionSetTheme(progressbar.ThemeUnicode),
		)
		defer func() { _ = pBar.Close() }()
	}

	for _, path := range paths {
		label, err := ResolveLabel(filepath.Base(filepath.Dir(path)))
		if err != nil {
			return nil, errors.WithMessagef(err, "unexpected directory structure for %s", path)
		}
		klog.V(1).Infof("Processing %q (label %d)", path, label)

		sample, err := NormalizeImage(path, cfg)
		if err != nil {
			return nil, err
		}
		if err := buf.Append(sample); err != nil {
			return nil, errors.WithMessagef(err, "buffering %s", path)
		}
		labels = append(labels, label)
		for _, extra := range Augment(sample, label, cfg.Augmentation()) {
			if err := buf.Append(extra.Sample); err != nil {
				return nil, errors.WithMessagef(err, "buffering augmentation of %s", path)
			}
			labels = append(labels, extra.Label)
		}
		if pBar != nil {
			_ = pBar.Add(1)
		}
	}

	if buf.Len() == 0 {
		return nil, errors.Wrapf(ErrEmptyDataset, "no %s images found under %q", ImageExt, dir)
	}

	ds := &Dataset{
		Images:   buf.Finalize(),
		Labels:   labels,
		Height:   cfg.Height(),
		Width:    cfg.Width(),
		Channels: cfg.Channels(),
	}
	shuffleDataset(ds, rand.New(rand.NewSource(l.Seed)))
	return ds, nil
}

// listImageFiles returns the ImageExt files under dir, in lexical walk order.
// A missing dir is reported as ErrEmptyDataset.
func listImageFiles(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ImageExt) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(ErrEmptyDataset, "split directory %q does not exist", dir)
		}
		return nil, errors.Wrapf(err, "walking %q", dir)
	}
	return paths, nil
}

// shuffleDataset permutes samples and labels in place with one permutation.
func shuffleDataset(ds *Dataset, rng *rand.Rand) {
	size := ds.SampleSize()
	tmp := make([]float32, size)
	rng.Shuffle(ds.Len(), func(i, j int) {
		a := ds.Images[i*size : (i+1)*size]
		b := ds.Images[j*size : (j+1)*size]
		copy(tmp, a)
		copy(a, b)
		copy(b, tmp)
		ds.Labels[i], ds.Labels[j] = ds.Labels[j], ds.Labels[i]
	})
}

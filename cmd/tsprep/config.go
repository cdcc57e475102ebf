package main

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Noofbiz/trafficsigns/datasets"
)

// Configuration keys. Flags use the same names with "-" instead of "_".
const (
	keyDataRoot     = "data_root"
	keyCacheDir     = "cache_dir"
	keyWidth        = "width"
	keyHeight       = "height"
	keyColor        = "color"
	keyAugmentation = "augmentation"
	keySeed         = "seed"
	keyProgress     = "progress"

	envPrefix = "TSPREP"
)

var defaults = map[string]any{
	keyDataRoot:     datasets.DefaultRoot,
	keyCacheDir:     datasets.DefaultCacheDir,
	keyWidth:        28,
	keyHeight:       20,
	keyColor:        datasets.Grayscale.String(),
	keyAugmentation: string(datasets.AugmentNone),
	keySeed:         datasets.DefaultShuffleSeed,
	keyProgress:     false,
}

// settings is what every dataset command needs.
type settings struct {
	Config *datasets.Config
	Loader *datasets.Loader
}

// settingsFunc resolves the settings for the command being run.
type settingsFunc func(cmd *cobra.Command) (*settings, error)

func flagName(key string) string { return strings.ReplaceAll(key, "_", "-") }

func registerDatasetFlags(flags *pflag.FlagSet) {
	flags.String(flagName(keyDataRoot), datasets.DefaultRoot, "directory holding the train/ and test/ splits")
	flags.String(flagName(keyCacheDir), datasets.DefaultCacheDir, "cache directory, empty to disable the cache")
	flags.Int(flagName(keyWidth), defaults[keyWidth].(int), "sample width in pixels")
	flags.Int(flagName(keyHeight), defaults[keyHeight].(int), "sample height in pixels")
	flags.String(flagName(keyColor), defaults[keyColor].(string), "color mode: gray or color")
	flags.String(flagName(keyAugmentation), defaults[keyAugmentation].(string),
		"augmentation policy: none, mirror or mirror_plus_turn_swap")
	flags.Int64(flagName(keySeed), datasets.DefaultShuffleSeed, "seed of the shuffle of freshly loaded datasets")
	flags.Bool(flagName(keyProgress), false, "display a progress bar while decoding images")
}

// newViper layers, from lowest to highest priority: defaults, the optional
// configFile, TSPREP_* environment variables and the flags set on the command
// line.
func newViper(configFile string, flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if flags != nil {
		for key := range defaults {
			if f := flags.Lookup(flagName(key)); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, errors.Wrapf(err, "binding flag --%s", f.Name)
				}
			}
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "reading configuration %q", configFile)
		}
	}
	return v, nil
}

// configFromViper builds the dataset configuration and loader from v.
func configFromViper(v *viper.Viper) (*settings, error) {
	mode, err := datasets.ParseColorMode(v.GetString(keyColor))
	if err != nil {
		return nil, err
	}
	cfg, err := datasets.NewConfig(v.GetInt(keyWidth), v.GetInt(keyHeight), mode, v.GetString(keyAugmentation))
	if err != nil {
		return nil, err
	}
	loader := datasets.NewLoader(v.GetString(keyDataRoot), v.GetString(keyCacheDir))
	loader.Seed = v.GetInt64(keySeed)
	loader.Progress = v.GetBool(keyProgress)
	return &settings{Config: cfg, Loader: loader}, nil
}

// loadSplit resolves the settings and loads the split named by args[0].
func loadSplit(settingsFn settingsFunc, cmd *cobra.Command, args []string) (*settings, datasets.Split, *datasets.Dataset, error) {
	s, err := settingsFn(cmd)
	if err != nil {
		return nil, "", nil, err
	}
	split, err := datasets.ParseSplit(args[0])
	if err != nil {
		return nil, "", nil, err
	}
	ds, err := s.Loader.Load(s.Config, split)
	if err != nil {
		return nil, "", nil, err
	}
	return s, split, ds, nil
}

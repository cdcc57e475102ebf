package datasets

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ColorMode selects how images are converted before scaling.
type ColorMode int

const (
	// Grayscale converts images to a single luminance channel.
	Grayscale ColorMode = iota
	// Color keeps 3 RGB channels after adaptive contrast equalization.
	Color
)

// String returns the canonical name used in cache keys and configuration files.
func (m ColorMode) String() string {
	switch m {
	case Grayscale:
		return "gray"
	case Color:
		return "color"
	}
	return fmt.Sprintf("ColorMode(%d)", int(m))
}

// ParseColorMode parses "gray" (or "grayscale") and "color".
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "gray", "grayscale":
		return Grayscale, nil
	case "color", "colour", "rgb":
		return Color, nil
	}
	return Grayscale, errors.Wrapf(ErrConfig, "unknown color mode %q", s)
}

// Augmentation is the policy used to synthesize extra samples from each image.
type Augmentation string

const (
	// AugmentNone emits no extra samples.
	AugmentNone Augmentation = "none"
	// AugmentMirror emits a horizontally mirrored copy of flippable classes.
	AugmentMirror Augmentation = "mirror"
	// AugmentMirrorTurnSwap is AugmentMirror plus mirrored left/right curve signs
	// relabeled as the opposite curve.
	AugmentMirrorTurnSwap Augmentation = "mirror_plus_turn_swap"
)

// ParseAugmentation validates s against the closed set of augmentation modes.
func ParseAugmentation(s string) (Augmentation, error) {
	switch a := Augmentation(s); a {
	case AugmentNone, AugmentMirror, AugmentMirrorTurnSwap:
		return a, nil
	}
	return "", errors.Wrapf(ErrConfig, "unknown augmentation mode %q (valid: %q, %q, %q)",
		s, AugmentNone, AugmentMirror, AugmentMirrorTurnSwap)
}

// Config describes how raw images are turned into samples. It is immutable:
// create it with NewConfig and share the pointer.
type Config struct {
	width, height int
	colorMode     ColorMode
	augmentation  Augmentation
}

// NewConfig validates its arguments and returns a Config.
//
// It fails with ErrConfig if width or height is not positive, if colorMode is
// unknown or if augmentation is not one of "none", "mirror" or
// "mirror_plus_turn_swap".
func NewConfig(width, height int, colorMode ColorMode, augmentation string) (*Config, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(ErrConfig, "target size must be positive, got %dx%d", width, height)
	}
	if colorMode != Grayscale && colorMode != Color {
		return nil, errors.Wrapf(ErrConfig, "unknown color mode %s", colorMode)
	}
	aug, err := ParseAugmentation(augmentation)
	if err != nil {
		return nil, err
	}
	return &Config{
		width:        width,
		height:       height,
		colorMode:    colorMode,
		augmentation: aug,
	}, nil
}

func (c *Config) Width() int                 { return c.width }
func (c *Config) Height() int                { return c.height }
func (c *Config) ColorMode() ColorMode       { return c.colorMode }
func (c *Config) Augmentation() Augmentation { return c.augmentation }

// Channels is 3 for Color and 1 for Grayscale.
func (c *Config) Channels() int {
	if c.colorMode == Color {
		return 3
	}
	return 1
}

// InputShape returns the shape of one sample: [height, width, channels].
// The channel axis is kept for grayscale (channels == 1), so batches are always
// rank 4.
func (c *Config) InputShape() []int {
	return []int{c.height, c.width, c.Channels()}
}

// SampleSize is the number of float32 values in one sample.
func (c *Config) SampleSize() int {
	return c.height * c.width * c.Channels()
}

// Serialize returns the cache identity of the configuration, e.g.
// "gray_w28_h20_aug-none". Configurations differing in any field produce
// different strings.
func (c *Config) Serialize() string {
	return fmt.Sprintf("%s_w%d_h%d_aug-%s", c.colorMode, c.width, c.height, c.augmentation)
}

// String implements fmt.Stringer.
func (c *Config) String() string { return c.Serialize() }

package datasets

import (
	"strconv"

	"github.com/pkg/errors"
)

// Label is the class index of a traffic sign, in [LabelMin, LabelMax].
type Label int32

const (
	LabelMin   Label = 0
	LabelMax   Label = 20
	NumClasses       = int(LabelMax-LabelMin) + 1
)

// Labels referenced by the augmentation policy.
const (
	Stop       Label = 7
	LeftCurve  Label = 12
	RightCurve Label = 13
)

var classNames = [NumClasses]string{
	"speed limit 20",
	"speed limit 50",
	"speed limit 70",
	"no overtaking",
	"roundabout",
	"priority road",
	"give way",
	"stop",
	"road closed",
	"no heavy goods vehicles",
	"no entry",
	"obstacles",
	"left hand curve",
	"right hand curve",
	"keep straight ahead",
	"slippery road",
	"keep straight or turn right",
	"construction ahead",
	"rough road",
	"traffic lights",
	"school ahead",
}

// flippable tells whether mirroring an image of the class horizontally keeps
// its meaning. Curves are flippable: a mirrored left curve is still a valid
// curve sample, and the turn swap policy adds the relabeled copy on top.
var flippable = [NumClasses]bool{
	false, // speed limit 20
	false, // speed limit 50
	false, // speed limit 70
	false, // no overtaking
	false, // roundabout
	false, // priority road
	true,  // give way
	false, // stop
	true,  // road closed
	false, // no heavy goods vehicles
	true,  // no entry
	true,  // obstacles
	true,  // left hand curve
	true,  // right hand curve
	true,  // keep straight ahead
	false, // slippery road
	false, // keep straight or turn right
	false, // construction ahead
	true,  // rough road
	true,  // traffic lights
	false, // school ahead
}

// ClassNames returns the human-readable class names, indexed by Label.
// The returned slice is a copy.
func ClassNames() []string {
	names := make([]string, NumClasses)
	copy(names, classNames[:])
	return names
}

// Valid reports whether l is within [LabelMin, LabelMax].
func (l Label) Valid() bool {
	return l >= LabelMin && l <= LabelMax
}

// String returns the class name, or the number for invalid labels.
func (l Label) String() string {
	if !l.Valid() {
		return "Label(" + strconv.Itoa(int(l)) + ")"
	}
	return classNames[l]
}

// IsFlippable reports whether a horizontally mirrored image of class l keeps
// label l. Invalid labels are never flippable.
func IsFlippable(l Label) bool {
	return l.Valid() && flippable[l]
}

// ResolveLabel converts a label directory name to a Label.
//
// It fails with ErrInvalidLabelFormat if segment is not a base-10 integer and
// with ErrInvalidLabelRange if it is outside [LabelMin, LabelMax].
func ResolveLabel(segment string) (Label, error) {
	v, err := strconv.Atoi(segment)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidLabelFormat, "directory %q", segment)
	}
	if v < int(LabelMin) || v > int(LabelMax) {
		return 0, errors.Wrapf(ErrInvalidLabelRange, "directory %q: label %d not in [%d, %d]",
			segment, v, LabelMin, LabelMax)
	}
	return Label(v), nil
}

package reward

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r1"

	"sfneuman.com/gogait/rewardconfig"
	"sfneuman.com/gogait/utils/floatutils"
)

// A Normalizer is the final bounding step applied uniformly to every
// catalog term. Exactly one convention is selected per deployment; the
// term formulas themselves never change between conventions.
type Normalizer interface {
	// Normalize maps a term's raw value into the convention's bounds.
	// The divisor is the term's unit-interval magnitude constant;
	// conventions that keep raw magnitudes ignore it.
	Normalize(raw, divisor float64) float64

	// Bounds returns the interval every normalized value lies in.
	Bounds() r1.Interval
}

// UnitInterval scales each term by its magnitude divisor and clips to
// [0, 1], so every term reads as a fraction of its practical maximum.
type UnitInterval struct{}

// Normalize implements the Normalizer interface
func (UnitInterval) Normalize(raw, divisor float64) float64 {
	return floatutils.Clip(raw/divisor, 0.0, 1.0)
}

// Bounds implements the Normalizer interface
func (UnitInterval) Bounds() r1.Interval {
	return r1.Interval{Min: 0.0, Max: 1.0}
}

// SignedWide keeps raw physical magnitudes. The wide clip exists only
// to guard against numeric blow-up.
type SignedWide struct{}

// Normalize implements the Normalizer interface
func (SignedWide) Normalize(raw, _ float64) float64 {
	return floatutils.ClipInterval(raw, wideBounds)
}

// Bounds implements the Normalizer interface
func (SignedWide) Bounds() r1.Interval {
	return wideBounds
}

var wideBounds = r1.Interval{Min: -1000.0, Max: 1000.0}

// NewNormalizer returns the Normalizer for a convention named by a
// rewardconfig profile.
func NewNormalizer(convention string) (Normalizer, error) {
	switch convention {
	case rewardconfig.UnitInterval:
		return UnitInterval{}, nil

	case rewardconfig.SignedWide:
		return SignedWide{}, nil
	}

	return nil, fmt.Errorf("newNormalizer: no such normalization "+
		"convention %q", convention)
}

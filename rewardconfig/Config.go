// Package rewardconfig provides named reward weighting profiles for
// configuring the reward engine per robot morphology. Profiles are
// JSON serializable data: swapping morphology (legged vs wheeled) is a
// profile swap, never a code branch in the reward terms. A profile is
// validated once at load time and treated as immutable for the rest of
// the training run.
package rewardconfig

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
)

// Normalization conventions a profile's scales can be tuned for. Term
// magnitudes differ between conventions, so a profile is only valid
// under the convention it names and profiles of different conventions
// must not be mixed.
const (
	// UnitInterval divides each term by a magnitude constant and clips
	// to [0, 1].
	UnitInterval = "unit_interval"

	// SignedWide keeps raw term magnitudes, clipping to [-1000, 1000]
	// only to guard against numeric blow-up.
	SignedWide = "signed_wide"
)

// RewardScales maps a reward term identifier to its signed weight. A
// weight of exactly 0 disables the term; terms absent from the map are
// likewise disabled.
type RewardScales map[string]float64

// ConfigValidationError reports an unusable reward profile: a
// non-finite scale, a non-positive tracking sigma, an unknown term
// identifier, or an unknown normalization convention. It is returned
// at load or construction time so configuration mistakes never surface
// mid-training.
type ConfigValidationError struct {
	Profile string
	Reason  string
}

func (e *ConfigValidationError) Error() string {
	return fmt.Sprintf("invalid reward profile %v: %v", e.Profile, e.Reason)
}

// Profile is a named, immutable reward weighting: per-term scales, the
// shared tracking sigma for the exponential tracking terms, and the
// normalization convention the scales were tuned for.
type Profile struct {
	Name          string       `json:"name"`
	Convention    string       `json:"convention"`
	TrackingSigma float64      `json:"tracking_sigma"`
	Scales        RewardScales `json:"scales"`
}

// Validate checks the profile's convention, tracking sigma, and scale
// finiteness. Whether every scale key names a known reward term is
// checked where the term catalog is known, when an evaluator is built
// from the profile.
func (p Profile) Validate() error {
	switch p.Convention {
	case UnitInterval, SignedWide:
	default:
		return &ConfigValidationError{p.Name, fmt.Sprintf(
			"unknown normalization convention %q", p.Convention)}
	}
	if math.IsNaN(p.TrackingSigma) || math.IsInf(p.TrackingSigma, 0) ||
		p.TrackingSigma <= 0 {
		return &ConfigValidationError{p.Name, fmt.Sprintf(
			"tracking_sigma must be a positive finite float, got %v",
			p.TrackingSigma)}
	}
	for id, scale := range p.Scales {
		if math.IsNaN(scale) || math.IsInf(scale, 0) {
			return &ConfigValidationError{p.Name, fmt.Sprintf(
				"scale for term %v is not finite", id)}
		}
	}
	return nil
}

// Scale returns the weight configured for a term, 0 when the term is
// not mentioned by the profile.
func (p Profile) Scale(id string) float64 {
	return p.Scales[id]
}

// Load decodes and validates a JSON profile.
func Load(r io.Reader) (Profile, error) {
	var p Profile
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return Profile{}, fmt.Errorf("load: cannot decode profile: %v", err)
	}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Save encodes the profile as indented JSON.
func (p Profile) Save(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("save: cannot encode profile: %v", err)
	}
	return nil
}

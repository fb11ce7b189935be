package reward

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"sfneuman.com/gogait/rewardconfig"
	"sfneuman.com/gogait/state"
)

// Params holds the constants of one training run that the catalog
// needs beyond the per-step snapshot. Like a profile, Params is fixed
// once when the evaluator is built.
type Params struct {
	// Dt is the simulation step duration in seconds.
	Dt float64

	// MinAirTime is the air time below which a touchdown earns no
	// feet_air_time reward.
	MinAirTime float64

	// CommandThreshold is the command norm below which the stand-still
	// penalties engage.
	CommandThreshold float64

	// DefaultPose is the standing joint configuration, NumJoints long.
	// Nil means all zeros.
	DefaultPose mat.Vector

	// DesiredAbduction is the target hip ab/adduction angle per leg,
	// NumLegs long. Nil means all zeros.
	DesiredAbduction mat.Vector

	// DesiredWorldZ is the desired direction of the world up axis seen
	// from the body frame. The zero value means straight up.
	DesiredWorldZ r3.Vec

	// Watched geometry id sets for the three collision terms.
	CollisionGeomIDs []int
	BodyGeomIDs      []int
	KneeGeomIDs      []int
}

// Evaluator scores snapshots under one profile, one normalization
// convention, and one set of run constants. It holds no mutable state
// and is safe for concurrent use once built.
type Evaluator struct {
	scales map[string]float64
	sigma  float64
	norm   Normalizer
	params Params
}

// NewEvaluator validates the profile against the term catalog and
// returns an evaluator for it. A scale key that names no catalog term
// is a *rewardconfig.ConfigValidationError; a catalog term the profile
// does not mention is simply disabled.
func NewEvaluator(profile rewardconfig.Profile, params Params) (*Evaluator,
	error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	for id := range profile.Scales {
		if _, ok := divisors[id]; !ok {
			return nil, &rewardconfig.ConfigValidationError{
				Profile: profile.Name,
				Reason:  fmt.Sprintf("unknown reward term %q", id),
			}
		}
	}

	norm, err := NewNormalizer(profile.Convention)
	if err != nil {
		return nil, err
	}

	// Copy out of the profile so later mutation of the caller's map
	// cannot reach the evaluator
	scales := make(map[string]float64, len(profile.Scales))
	for id, scale := range profile.Scales {
		scales[id] = scale
	}

	if params.DefaultPose == nil {
		params.DefaultPose = mat.NewVecDense(state.NumJoints, nil)
	} else if params.DefaultPose.Len() != state.NumJoints {
		panic(fmt.Sprintf("newEvaluator: default pose has %v joints, "+
			"layout has %v", params.DefaultPose.Len(), state.NumJoints))
	}
	if params.DesiredAbduction == nil {
		params.DesiredAbduction = mat.NewVecDense(state.NumLegs, nil)
	} else if params.DesiredAbduction.Len() != state.NumLegs {
		panic(fmt.Sprintf("newEvaluator: desired abduction has %v legs, "+
			"layout has %v", params.DesiredAbduction.Len(), state.NumLegs))
	}
	if params.DesiredWorldZ == (r3.Vec{}) {
		params.DesiredWorldZ = worldUp
	}

	return &Evaluator{
		scales: scales,
		sigma:  profile.TrackingSigma,
		norm:   norm,
		params: params,
	}, nil
}

// Normalizer returns the normalization convention the evaluator
// applies to every term.
func (e *Evaluator) Normalizer() Normalizer {
	return e.norm
}

// Evaluate validates the snapshot and returns the total weighted
// reward for it.
func (e *Evaluator) Evaluate(s *state.Snapshot) (float64, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	return e.total(e.values(s)), nil
}

// TermValue is one row of a reward breakdown.
type TermValue struct {
	ID       string
	Value    float64 // normalized term output
	Weighted float64 // Value times the profile's scale
}

// Breakdown is the per-term decomposition of one step's reward, in
// Terms() order. Disabled terms appear with a Weighted value of 0.
type Breakdown struct {
	Total float64
	Terms []TermValue
}

// Breakdown scores a snapshot and additionally reports every term's
// normalized and weighted value for logging.
func (e *Evaluator) Breakdown(s *state.Snapshot) (Breakdown, error) {
	if err := s.Validate(); err != nil {
		return Breakdown{}, err
	}

	values := e.values(s)
	b := Breakdown{Terms: make([]TermValue, len(termOrder))}
	for i, id := range termOrder {
		weighted := e.scales[id] * values[i]
		b.Terms[i] = TermValue{ID: id, Value: values[i], Weighted: weighted}
		b.Total += weighted
	}
	return b, nil
}

// values computes every catalog term for one snapshot, normalized, in
// termOrder. Terms with scale 0 are still computed so breakdowns stay
// complete.
func (e *Evaluator) values(s *state.Snapshot) []float64 {
	p := e.params
	raw := map[string]float64{
		TermTrackingLinVel: TrackingLinVel(s.Command, s.Base, s.BaseMotion,
			e.sigma),
		TermTrackingAngVel: TrackingAngVel(s.Command, s.Base, s.BaseMotion,
			e.sigma),
		TermTrackingOrientation: TrackingOrientation(p.DesiredWorldZ, s.Base,
			e.sigma),
		TermLinVelZ:     LinVelZ(s.BaseMotion),
		TermAngVelXY:    AngVelXY(s.BaseMotion),
		TermOrientation: Orientation(s.Base),
		TermTorques:     Torques(s.Joints.Torques),
		TermJointAcceleration: JointAcceleration(s.Joints.Velocities,
			s.PrevJointVelocities, p.Dt),
		TermMechanicalWork: MechanicalWork(s.Joints.Torques,
			s.Joints.Velocities),
		TermActionRate: ActionRate(s.Action, s.PrevAction),
		TermFeetAirTime: FeetAirTime(s.AirTime, s.FirstContact, s.Command,
			p.MinAirTime),
		TermAbductionAngle: AbductionAngle(s.Joints.Angles,
			p.DesiredAbduction),
		TermStandStill: StandStill(s.Command, s.Joints.Angles, p.DefaultPose,
			p.CommandThreshold),
		TermStandStillJointVel: StandStillJointVelocity(s.Command,
			s.Joints.Velocities, p.CommandThreshold),
		TermFootSlip:      FootSlip(s),
		TermGeomCollision: GeomCollision(s.Contacts, p.CollisionGeomIDs),
		TermBodyCollision: GeomCollision(s.Contacts, p.BodyGeomIDs),
		TermKneeCollision: GeomCollision(s.Contacts, p.KneeGeomIDs),
		TermTermination:   Termination(s.Done, s.Step, s.StepThreshold),
	}

	values := make([]float64, len(termOrder))
	for i, id := range termOrder {
		if id == TermTermination {
			// Boolean indicator, never normalized
			values[i] = raw[id]
			continue
		}
		values[i] = e.norm.Normalize(raw[id], divisors[id])
	}
	return values
}

func (e *Evaluator) total(values []float64) float64 {
	var total float64
	for i, id := range termOrder {
		// Terms missing from the profile read a zero scale
		total += e.scales[id] * values[i]
	}
	return total
}

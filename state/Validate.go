package state

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// QuatTolerance is the largest deviation of an orientation
// quaternion's norm from 1 before a snapshot is rejected.
const QuatTolerance = 1e-6

// StateValidationError reports a malformed snapshot: a wrong vector
// length, a non-unit orientation, or a NaN/Inf in any field. It is
// returned instead of letting bad values propagate silently through
// the reward.
type StateValidationError struct {
	Field  string
	Reason string
}

func (e *StateValidationError) Error() string {
	return fmt.Sprintf("invalid snapshot field %v: %v", e.Field, e.Reason)
}

// Validate checks a snapshot against the layout and finiteness
// invariants. It returns a *StateValidationError describing the first
// violation found, or nil for a usable snapshot.
func (s *Snapshot) Validate() error {
	if err := finiteVec3("Base.Pos", s.Base.Pos); err != nil {
		return err
	}
	if err := validRotation("Base.Rot", s.Base.Rot); err != nil {
		return err
	}
	if err := finiteVec3("BaseMotion.Vel", s.BaseMotion.Vel); err != nil {
		return err
	}
	if err := finiteVec3("BaseMotion.Ang", s.BaseMotion.Ang); err != nil {
		return err
	}

	jointVecs := map[string]mat.Vector{
		"Joints.Angles":       s.Joints.Angles,
		"Joints.Velocities":   s.Joints.Velocities,
		"Joints.Torques":      s.Joints.Torques,
		"PrevJointVelocities": s.PrevJointVelocities,
	}
	for field, v := range jointVecs {
		if err := finiteVecLen(field, v, NumJoints); err != nil {
			return err
		}
	}

	if s.Action == nil || s.PrevAction == nil {
		return &StateValidationError{"Action", "action vectors must be non-nil"}
	}
	if s.Action.Len() != s.PrevAction.Len() {
		return &StateValidationError{"PrevAction", fmt.Sprintf(
			"length %v does not match action length %v",
			s.PrevAction.Len(), s.Action.Len())}
	}
	if err := finiteVecLen("Action", s.Action, s.Action.Len()); err != nil {
		return err
	}
	if err := finiteVecLen("PrevAction", s.PrevAction, s.Action.Len()); err != nil {
		return err
	}

	if !finite(s.Command.VelX, s.Command.VelY, s.Command.YawRate) {
		return &StateValidationError{"Command", "command components must be finite"}
	}
	for i, c := range s.Contacts {
		if !finite(c.Dist) {
			return &StateValidationError{"Contacts",
				fmt.Sprintf("contact %v has non-finite distance", i)}
		}
	}

	if err := finiteVecLen("AirTime", s.AirTime, NumLegs); err != nil {
		return err
	}
	if len(s.FirstContact) != NumLegs {
		return &StateValidationError{"FirstContact", lengthMsg(len(s.FirstContact), NumLegs)}
	}
	if len(s.FootContact) != NumLegs {
		return &StateValidationError{"FootContact", lengthMsg(len(s.FootContact), NumLegs)}
	}
	if len(s.FeetSitePos) != NumLegs {
		return &StateValidationError{"FeetSitePos", lengthMsg(len(s.FeetSitePos), NumLegs)}
	}
	if len(s.LowerLegPos) != NumLegs {
		return &StateValidationError{"LowerLegPos", lengthMsg(len(s.LowerLegPos), NumLegs)}
	}
	if len(s.LowerLegBodyID) != NumLegs {
		return &StateValidationError{"LowerLegBodyID", lengthMsg(len(s.LowerLegBodyID), NumLegs)}
	}
	for i := 0; i < NumLegs; i++ {
		if err := finiteVec3("FeetSitePos", s.FeetSitePos[i]); err != nil {
			return err
		}
		if err := finiteVec3("LowerLegPos", s.LowerLegPos[i]); err != nil {
			return err
		}
		idx := s.LowerLegBodyID[i] - WorldBodyOffset
		if idx < 0 || idx >= len(s.BodyMotions) {
			return &StateValidationError{"LowerLegBodyID", fmt.Sprintf(
				"body id %v has no motion entry", s.LowerLegBodyID[i])}
		}
	}
	for i, m := range s.BodyMotions {
		if err := finiteVec3(fmt.Sprintf("BodyMotions[%v].Vel", i), m.Vel); err != nil {
			return err
		}
		if err := finiteVec3(fmt.Sprintf("BodyMotions[%v].Ang", i), m.Ang); err != nil {
			return err
		}
	}

	if s.Step < 0 {
		return &StateValidationError{"Step", "step count must be non-negative"}
	}
	return nil
}

func lengthMsg(have, want int) string {
	return fmt.Sprintf("length %v, want %v", have, want)
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func finiteVec3(field string, v r3.Vec) error {
	if !finite(v.X, v.Y, v.Z) {
		return &StateValidationError{field, "components must be finite"}
	}
	return nil
}

func finiteVecLen(field string, v mat.Vector, length int) error {
	if v == nil {
		return &StateValidationError{field, "vector must be non-nil"}
	}
	if v.Len() != length {
		return &StateValidationError{field, lengthMsg(v.Len(), length)}
	}
	for i := 0; i < v.Len(); i++ {
		if !finite(v.AtVec(i)) {
			return &StateValidationError{field,
				fmt.Sprintf("element %v is not finite", i)}
		}
	}
	return nil
}

func validRotation(field string, q quat.Number) error {
	if !finite(q.Real, q.Imag, q.Jmag, q.Kmag) {
		return &StateValidationError{field, "components must be finite"}
	}
	if math.Abs(quat.Abs(q)-1) > QuatTolerance {
		return &StateValidationError{field, fmt.Sprintf(
			"orientation is not a unit quaternion (norm %v)", quat.Abs(q))}
	}
	return nil
}

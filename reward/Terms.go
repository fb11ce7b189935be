package reward

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"sfneuman.com/gogait/state"
	"sfneuman.com/gogait/utils/quatutils"
)

// Each function in this file is one catalog term: pure, side-effect
// free, and returning the raw value before normalization. Batched
// evaluation is the elementwise application of these functions across
// independent snapshots; there is no per-call state.

var worldUp = r3.Vec{Z: 1.0}

// commandGate is the command norm below which the gait terms treat the
// robot as commanded to stand still.
const commandGate = 0.05

// LinVelZ penalizes vertical motion of the base.
func LinVelZ(m state.Motion) float64 {
	return m.Vel.Z * m.Vel.Z
}

// AngVelXY penalizes base roll and pitch rates.
func AngVelXY(m state.Motion) float64 {
	return m.Ang.X*m.Ang.X + m.Ang.Y*m.Ang.Y
}

// TrackingOrientation rewards keeping the world up axis, seen from the
// body frame, close to a desired direction. The reward decays
// exponentially with the squared error at a rate set by sigma.
func TrackingOrientation(desired r3.Vec, x state.Transform,
	sigma float64) float64 {
	bodyUp := quatutils.RotateInv(worldUp, x.Rot)
	err := r3.Norm2(bodyUp.Sub(desired))
	return math.Exp(-err / (sigma + Eps))
}

// Orientation penalizes tilt away from upright. Zero when the base is
// level.
func Orientation(x state.Transform) float64 {
	up := quatutils.Rotate(worldUp, x.Rot)
	return up.X*up.X + up.Y*up.Y
}

// Torques penalizes actuator effort.
func Torques(torques mat.Vector) float64 {
	return sumSquares(torques)
}

// JointAcceleration penalizes rapid joint velocity changes between
// consecutive steps of duration dt.
func JointAcceleration(vel, prevVel mat.Vector, dt float64) float64 {
	var sum float64
	for i := 0; i < vel.Len(); i++ {
		a := (vel.AtVec(i) - prevVel.AtVec(i)) / (dt + Eps)
		sum += a * a
	}
	return sum
}

// MechanicalWork penalizes the magnitude of mechanical power drawn by
// the actuators.
func MechanicalWork(torques, velocities mat.Vector) float64 {
	var sum float64
	for i := 0; i < torques.Len(); i++ {
		sum += math.Abs(torques.AtVec(i) * velocities.AtVec(i))
	}
	return sum
}

// ActionRate penalizes rapid changes in the policy's action.
func ActionRate(action, prevAction mat.Vector) float64 {
	var sum float64
	for i := 0; i < action.Len(); i++ {
		d := action.AtVec(i) - prevAction.AtVec(i)
		sum += d * d
	}
	return sum
}

// TrackingLinVel rewards following the commanded planar velocity. The
// base velocity is rotated into the body frame before comparison.
func TrackingLinVel(cmd state.Command, x state.Transform, m state.Motion,
	sigma float64) float64 {
	local := quatutils.RotateInv(m.Vel, x.Rot)
	dx := cmd.VelX - local.X
	dy := cmd.VelY - local.Y
	return math.Exp(-(dx*dx + dy*dy) / (sigma + Eps))
}

// TrackingAngVel rewards following the commanded yaw rate. The base
// angular velocity is rotated into the body frame before comparison.
func TrackingAngVel(cmd state.Command, x state.Transform, m state.Motion,
	sigma float64) float64 {
	local := quatutils.RotateInv(m.Ang, x.Rot)
	d := cmd.YawRate - local.Z
	return math.Exp(-(d * d) / (sigma + Eps))
}

// FeetAirTime rewards feet that stay airborne at least minAirTime,
// paid out on the step the foot first touches down. A near-zero
// command earns no air time reward at all.
func FeetAirTime(airTime mat.Vector, firstContact []bool,
	cmd state.Command, minAirTime float64) float64 {
	if cmd.Norm() <= commandGate {
		return 0.0
	}

	var sum float64
	for i := 0; i < airTime.Len(); i++ {
		if firstContact[i] {
			sum += airTime.AtVec(i) - minAirTime
		}
	}
	return sum
}

// AbductionAngle penalizes hip ab/adduction away from the desired
// per-leg stance angles. The abduction joints sit at AbductionOffset
// within each leg's block of the joint vector.
func AbductionAngle(angles, desired mat.Vector) float64 {
	var sum float64
	for leg := 0; leg < state.NumLegs; leg++ {
		i := leg*state.JointsPerLeg + state.AbductionOffset
		d := angles.AtVec(i) - desired.AtVec(leg)
		sum += d * d
	}
	return sum
}

// StandStill penalizes drift from the default pose while no motion is
// commanded. The gate is a hard boolean on the command norm, not a
// soft mask.
func StandStill(cmd state.Command, angles, defaultPose mat.Vector,
	threshold float64) float64 {
	if !cmd.NearZero(threshold) {
		return 0.0
	}

	var sum float64
	for i := 0; i < angles.Len(); i++ {
		sum += math.Abs(angles.AtVec(i) - defaultPose.AtVec(i))
	}
	return sum
}

// StandStillJointVelocity penalizes joint motion while no motion is
// commanded, the velocity counterpart of StandStill.
func StandStillJointVelocity(cmd state.Command, velocities mat.Vector,
	threshold float64) float64 {
	if !cmd.NearZero(threshold) {
		return 0.0
	}

	var sum float64
	for i := 0; i < velocities.Len(); i++ {
		sum += math.Abs(velocities.AtVec(i))
	}
	return sum
}

// FootSlip penalizes planar foot velocity for feet in ground contact.
// The foot velocity is the lower-leg body's spatial velocity carried
// out to the foot site by the body's angular velocity; the body's
// motion entry is looked up through state.WorldBodyOffset.
func FootSlip(s *state.Snapshot) float64 {
	var sum float64
	for i, id := range s.LowerLegBodyID {
		if !s.FootContact[i] {
			continue
		}

		m := s.BodyMotions[id-state.WorldBodyOffset]
		offset := s.FeetSitePos[i].Sub(s.LowerLegPos[i])
		vel := m.Vel.Add(m.Ang.Cross(offset))
		sum += vel.X*vel.X + vel.Y*vel.Y
	}
	return sum
}

// Termination flags an episode that ended before reaching the step
// threshold. It is a boolean indicator and is never normalized; a step
// count exactly at the threshold does not count as early.
func Termination(done bool, step, stepThreshold int) float64 {
	if done && step < stepThreshold {
		return 1.0
	}
	return 0.0
}

// GeomCollision counts interpenetrating contacts that touch any of the
// watched geometry ids. Accumulation is per watched id: a contact
// between two watched ids counts once for each.
func GeomCollision(contacts []state.Contact, geomIDs []int) float64 {
	var count float64
	for _, id := range geomIDs {
		for _, c := range contacts {
			if (c.GeomA == id || c.GeomB == id) && c.Colliding() {
				count++
			}
		}
	}
	return count
}

func sumSquares(v mat.Vector) float64 {
	var sum float64
	for i := 0; i < v.Len(); i++ {
		sum += v.AtVec(i) * v.AtVec(i)
	}
	return sum
}

// Package reward computes the per-timestep scalar training signal for
// legged and wheeled locomotion policies. A fixed catalog of pure term
// functions maps slices of a physics state snapshot to bounded
// scalars; a pluggable normalization convention bounds each term; a
// weighted aggregation under a rewardconfig.Profile collapses the
// catalog into the single number the training loop consumes.
package reward

import "math"

// Eps guards the divisions by tracking sigma and by the simulation
// timestep when either approaches zero.
const Eps = 1e-6

// Term identifiers, stable across profiles and conventions. Profiles
// key their scales by these strings.
const (
	TermLinVelZ             = "lin_vel_z"
	TermAngVelXY            = "ang_vel_xy"
	TermTrackingOrientation = "tracking_orientation"
	TermOrientation         = "orientation"
	TermTorques             = "torques"
	TermJointAcceleration   = "joint_acceleration"
	TermMechanicalWork      = "mechanical_work"
	TermActionRate          = "action_rate"
	TermTrackingLinVel      = "tracking_lin_vel"
	TermTrackingAngVel      = "tracking_ang_vel"
	TermFeetAirTime         = "feet_air_time"
	TermAbductionAngle      = "abduction_angle"
	TermStandStill          = "stand_still"
	TermStandStillJointVel  = "stand_still_joint_velocity"
	TermFootSlip            = "foot_slip"
	TermTermination         = "termination"
	TermGeomCollision       = "geom_collision"
	TermBodyCollision       = "body_collision"
	TermKneeCollision       = "knee_collision"
)

// termOrder fixes the evaluation order of the catalog, and with it the
// column order of breakdowns.
var termOrder = []string{
	TermTrackingLinVel,
	TermTrackingAngVel,
	TermTrackingOrientation,
	TermLinVelZ,
	TermAngVelXY,
	TermOrientation,
	TermTorques,
	TermJointAcceleration,
	TermMechanicalWork,
	TermActionRate,
	TermFeetAirTime,
	TermAbductionAngle,
	TermStandStill,
	TermStandStillJointVel,
	TermFootSlip,
	TermGeomCollision,
	TermBodyCollision,
	TermKneeCollision,
	TermTermination,
}

// Terms returns the catalog's term identifiers in evaluation order.
func Terms() []string {
	terms := make([]string, len(termOrder))
	copy(terms, termOrder)
	return terms
}

// divisors holds the unit-interval magnitude constant per term, chosen
// so the term's practically-observed maximum maps to about 1: 2 m/s of
// vertical base speed, 10 N·m of torque on each of 12 joints, and so
// on. The exponential tracking terms and the termination indicator
// self-normalize and carry 1. The signed-wide convention ignores this
// table entirely, which gives abduction_angle a different effective
// magnitude there; profile scales account for it.
var divisors = map[string]float64{
	TermLinVelZ:             4.0,
	TermAngVelXY:            25.0,
	TermTrackingOrientation: 1.0,
	TermOrientation:         2.0,
	TermTorques:             1200.0,
	TermJointAcceleration:   120000.0,
	TermMechanicalWork:      600.0,
	TermActionRate:          48.0,
	TermTrackingLinVel:      1.0,
	TermTrackingAngVel:      1.0,
	TermFeetAirTime:         2.0,
	TermAbductionAngle:      math.Pi * math.Pi,
	TermStandStill:          12.0 * math.Pi,
	TermStandStillJointVel:  60.0,
	TermFootSlip:            16.0,
	TermTermination:         1.0,
	TermGeomCollision:       10.0,
	TermBodyCollision:       10.0,
	TermKneeCollision:       10.0,
}

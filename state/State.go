// Package state describes the per-timestep physics snapshot that a
// simulator hands to the reward engine. Snapshots are plain data: the
// simulator constructs a fresh one every step, the reward engine only
// reads it.
package state

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Transform is the pose of a single body: world position and
// orientation. The orientation must be a unit quaternion.
type Transform struct {
	Pos r3.Vec
	Rot quat.Number
}

// Motion is the spatial velocity of a single body, expressed in the
// world frame unless a consumer explicitly rotates it into the body
// frame.
type Motion struct {
	Vel r3.Vec
	Ang r3.Vec
}

// JointState holds the actuated joint readings for one timestep. Each
// vector is NumJoints long and shares the fixed index layout described
// in Layout.go.
type JointState struct {
	Angles     mat.Vector
	Velocities mat.Vector
	Torques    mat.Vector
}

// Command is the velocity command the policy is being trained to
// follow: desired forward and lateral base velocity plus desired yaw
// rate.
type Command struct {
	VelX    float64
	VelY    float64
	YawRate float64
}

// Norm returns the Euclidean norm over all three planar-motion
// components of the command.
func (c Command) Norm() float64 {
	return math.Sqrt(c.VelX*c.VelX + c.VelY*c.VelY + c.YawRate*c.YawRate)
}

// NearZero returns whether the command is small enough that the robot
// is effectively being asked to stand still.
func (c Command) NearZero(threshold float64) bool {
	return c.Norm() < threshold
}

// Contact is a simulator-reported contact pair. Dist is the signed
// penetration distance between the two geometries.
type Contact struct {
	GeomA int
	GeomB int
	Dist  float64
}

// Colliding returns whether the two geometries interpenetrate.
func (c Contact) Colliding() bool {
	return c.Dist < 0
}

// Snapshot is the full physics state of one environment instance at
// one timestep. AirTime, FirstContact, and FootContact are gait
// bookkeeping owned and updated by the caller between steps; the
// reward engine only reads them.
type Snapshot struct {
	Base       Transform
	BaseMotion Motion

	Joints JointState

	// PrevJointVelocities holds the previous step's joint velocities,
	// NumJoints long.
	PrevJointVelocities mat.Vector

	// Action and PrevAction are the policy outputs at this and the
	// previous step. They must have equal length.
	Action     mat.Vector
	PrevAction mat.Vector

	Command  Command
	Contacts []Contact

	// Per-foot gait state, NumLegs entries each. AirTime is the time a
	// foot has spent airborne since its last contact, FirstContact is
	// true exactly at touchdown, FootContact is true while the foot is
	// on the ground.
	AirTime      mat.Vector
	FirstContact []bool
	FootContact  []bool

	// Foot geometry for the slip term, NumLegs entries each.
	// FeetSitePos[i] is the world position of the i-th foot site;
	// LowerLegPos[i] and LowerLegBodyID[i] are the world position and
	// simulator body id of the lower-leg body the site hangs off.
	FeetSitePos    []r3.Vec
	LowerLegPos    []r3.Vec
	LowerLegBodyID []int

	// BodyMotions[id-WorldBodyOffset] is the world-frame spatial
	// velocity of body id. The world body has no entry.
	BodyMotions []Motion

	Done          bool
	Step          int
	StepThreshold int
}

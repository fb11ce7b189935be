package state

// Morphology layout of the default 12 degree-of-freedom quadruped.
// Every consumer of joint-indexed state shares these constants, so a
// different morphology means changing them here rather than hunting
// down strides scattered through the reward terms.
const (
	// NumLegs is the number of legs, and equally the number of feet
	// tracked by the gait terms.
	NumLegs = 4

	// JointsPerLeg is the number of actuated joints per leg. Joint
	// vectors are laid out leg-major: indices [leg*JointsPerLeg,
	// (leg+1)*JointsPerLeg) belong to one leg.
	JointsPerLeg = 3

	// NumJoints is the total actuated degree-of-freedom count.
	NumJoints = NumLegs * JointsPerLeg

	// AbductionOffset is the index of the hip ab/adduction joint
	// within each leg's JointsPerLeg-long block.
	AbductionOffset = 1

	// WorldBodyOffset converts a simulator body id into an index into
	// Snapshot.BodyMotions. The world body occupies the first id and
	// carries no motion entry.
	WorldBodyOffset = 1
)

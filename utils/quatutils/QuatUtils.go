// Package quatutils provides utilities for working with unit
// quaternions as 3D rotations
package quatutils

import (
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Rotate rotates v by the unit quaternion q, carrying a body-frame
// vector into the world frame of a body with orientation q.
func Rotate(v r3.Vec, q quat.Number) r3.Vec {
	return r3.Rotation(q).Rotate(v)
}

// RotateInv rotates v by the inverse of the unit quaternion q,
// carrying a world-frame vector into the body frame of a body with
// orientation q.
func RotateInv(v r3.Vec, q quat.Number) r3.Vec {
	return r3.Rotation(quat.Conj(q)).Rotate(v)
}

// Unit rescales q to unit norm. Callers holding a slightly drifted
// orientation can renormalize before rotating with it.
func Unit(q quat.Number) quat.Number {
	return quat.Scale(1/quat.Abs(q), q)
}

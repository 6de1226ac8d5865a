package types

import "github.com/chewxy/math32"

// Unit quaternion used for rotating mesh geometry.
type Quat struct {
	V Vec3
	W float32
}

// Create identity quaternion.
func QuatIdent() Quat {
	return Quat{W: 1.0}
}

// Create a quaternion from an axis vector and an angle in radians.
func QuatFromAxisAngle(axis Vec3, angle float32) Quat {
	sin := math32.Sin(angle * 0.5)
	cos := math32.Cos(angle * 0.5)
	return Quat{
		V: axis.Normalize().Mul(sin),
		W: cos,
	}
}

// Create a quaternion that rotates around the X axis, then the Y axis and
// finally the Z axis using the angles (in degrees) from the input vector.
func QuatFromEulerDegrees(angles Vec3) Quat {
	qx := QuatFromAxisAngle(Vec3{1, 0, 0}, Deg2Rad(angles[0]))
	qy := QuatFromAxisAngle(Vec3{0, 1, 0}, Deg2Rad(angles[1]))
	qz := QuatFromAxisAngle(Vec3{0, 0, 1}, Deg2Rad(angles[2]))
	return qz.Mul(qy.Mul(qx))
}

// Rotates a vector by the rotation this quaternion represents.
func (q Quat) Rotate(v Vec3) Vec3 {
	cross := q.V.Cross(v)
	// v + 2q_w * (q_v x v) + 2q_v x (q_v x v)
	return v.Add(cross.Mul(2 * q.W)).Add(q.V.Mul(2).Cross(cross))
}

// Multiplies two quaternions. The result applies q2 first and then q1.
func (q Quat) Mul(q2 Quat) Quat {
	return Quat{
		q.V.Cross(q2.V).Add(q2.V.Mul(q.W)).Add(q.V.Mul(q2.W)),
		q.W*q2.W - q.V.Dot(q2.V),
	}
}

// 指示: miu200521358
package mmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Quaternion は回転を表す。
type Quaternion struct {
	mgl64.Quat
}

// NewQuaternion は単位クォータニオンを生成する。
func NewQuaternion() Quaternion {
	return Quaternion{Quat: mgl64.QuatIdent()}
}

// NewQuaternionFromDegrees はXYZ順のオイラー角(度)からクォータニオンを生成する。
func NewQuaternionFromDegrees(xDegree, yDegree, zDegree float64) Quaternion {
	q := mgl64.AnglesToQuat(
		DegToRad(xDegree), DegToRad(yDegree), DegToRad(zDegree), mgl64.XYZ)
	return Quaternion{Quat: q}
}

// NewQuaternionFromAxisAngle は軸と角度(ラジアン)からクォータニオンを生成する。
func NewQuaternionFromAxisAngle(axis Vec3, angle float64) Quaternion {
	normalized := axis.Normalized()
	q := mgl64.QuatRotate(angle, mgl64.Vec3{normalized.X, normalized.Y, normalized.Z})
	return Quaternion{Quat: q}
}

// Muled は回転合成(this * other)の結果を返す。
func (q Quaternion) Muled(other Quaternion) Quaternion {
	return Quaternion{Quat: q.Quat.Mul(other.Quat)}
}

// MulVec3 はベクトルをこの回転で変換した結果を返す。
func (q Quaternion) MulVec3(v Vec3) Vec3 {
	rotated := q.Quat.Rotate(mgl64.Vec3{v.X, v.Y, v.Z})
	return NewVec3(rotated.X(), rotated.Y(), rotated.Z())
}

// Negated は全成分の符号を反転した結果を返す。回転としては同一。
func (q Quaternion) Negated() Quaternion {
	return Quaternion{Quat: q.Quat.Scale(-1)}
}

// Inverted は逆回転を返す。
func (q Quaternion) Inverted() Quaternion {
	return Quaternion{Quat: q.Quat.Inverse()}
}

// Normalized は正規化結果を返す。
func (q Quaternion) Normalized() Quaternion {
	return Quaternion{Quat: q.Quat.Normalize()}
}

// Dot は内積を返す。
func (q Quaternion) Dot(other Quaternion) float64 {
	return q.Quat.Dot(other.Quat)
}

// Slerped はother方向へ重みtで最短経路の球面補間をした結果を返す。
func (q Quaternion) Slerped(other Quaternion, t float64) Quaternion {
	target := other.Quat
	if q.Quat.Dot(target) < 0 {
		target = target.Scale(-1)
	}
	return Quaternion{Quat: mgl64.QuatSlerp(q.Quat.Normalize(), target.Normalize(), t)}
}

// NearEquals は回転として許容誤差内で一致するか判定する。
// qと-qは同一回転とみなす。
func (q Quaternion) NearEquals(other Quaternion, epsilon float64) bool {
	return math.Abs(math.Abs(q.Dot(other))-1.0) <= epsilon
}

// IsIdent は単位クォータニオンか判定する。
func (q Quaternion) IsIdent() bool {
	return q.NearEquals(NewQuaternion(), vecEpsilon)
}

// Transform は平行移動・回転・スケールの局所変換を表す。
type Transform struct {
	Translation Vec3
	Rotation    Quaternion
	Scale       Vec3
}

// NewTransform は単位変換を生成する。
func NewTransform() Transform {
	return Transform{
		Translation: ZERO_VEC3,
		Rotation:    NewQuaternion(),
		Scale:       ONE_VEC3,
	}
}

// NearEquals は各成分が許容誤差内で一致するか判定する。
func (t Transform) NearEquals(other Transform, epsilon float64) bool {
	return t.Translation.NearEquals(other.Translation, epsilon) &&
		t.Rotation.NearEquals(other.Rotation, epsilon) &&
		t.Scale.NearEquals(other.Scale, epsilon)
}

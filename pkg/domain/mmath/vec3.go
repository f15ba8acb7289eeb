// 指示: miu200521358
// Package mmath はモーション編集で使うベクトル・回転の数値型を提供する。
package mmath

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// vecEpsilon はベクトル同値判定の既定許容誤差。
	vecEpsilon = 1e-8
)

// Vec3 は3次元ベクトルを表す。
type Vec3 struct {
	r3.Vec
}

// ZERO_VEC3 は零ベクトルを表す。
var ZERO_VEC3 = Vec3{}

// ONE_VEC3 は全成分1のベクトル(単位スケール)を表す。
var ONE_VEC3 = Vec3{Vec: r3.Vec{X: 1, Y: 1, Z: 1}}

// UNIT_X_VEC3 はX軸単位ベクトルを表す。
var UNIT_X_VEC3 = Vec3{Vec: r3.Vec{X: 1}}

// UNIT_Y_VEC3 はY軸単位ベクトルを表す。
var UNIT_Y_VEC3 = Vec3{Vec: r3.Vec{Y: 1}}

// UNIT_Z_VEC3 はZ軸単位ベクトルを表す。
var UNIT_Z_VEC3 = Vec3{Vec: r3.Vec{Z: 1}}

// UNIT_Y_NEG_VEC3 はY軸負方向単位ベクトルを表す。
var UNIT_Y_NEG_VEC3 = Vec3{Vec: r3.Vec{Y: -1}}

// NewVec3 は成分指定でVec3を生成する。
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{Vec: r3.Vec{X: x, Y: y, Z: z}}
}

// Added は加算結果を返す。
func (v Vec3) Added(other Vec3) Vec3 {
	return Vec3{Vec: r3.Add(v.Vec, other.Vec)}
}

// Subed は減算結果を返す。
func (v Vec3) Subed(other Vec3) Vec3 {
	return Vec3{Vec: r3.Sub(v.Vec, other.Vec)}
}

// MuledScalar はスカラー倍した結果を返す。
func (v Vec3) MuledScalar(scale float64) Vec3 {
	return Vec3{Vec: r3.Scale(scale, v.Vec)}
}

// Cross は外積を返す。
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{Vec: r3.Cross(v.Vec, other.Vec)}
}

// Dot は内積を返す。
func (v Vec3) Dot(other Vec3) float64 {
	return r3.Dot(v.Vec, other.Vec)
}

// Length はベクトル長を返す。
func (v Vec3) Length() float64 {
	return r3.Norm(v.Vec)
}

// Distance は2点間距離を返す。
func (v Vec3) Distance(other Vec3) float64 {
	return r3.Norm(r3.Sub(v.Vec, other.Vec))
}

// Normalized は正規化結果を返す。長さが許容誤差以下なら零ベクトルを返す。
func (v Vec3) Normalized() Vec3 {
	if r3.Norm(v.Vec) <= vecEpsilon {
		return ZERO_VEC3
	}
	return Vec3{Vec: r3.Unit(v.Vec)}
}

// Lerped はother方向へ重みtで線形補間した結果を返す。
func (v Vec3) Lerped(other Vec3, t float64) Vec3 {
	return Vec3{Vec: r3.Add(v.Vec, r3.Scale(t, r3.Sub(other.Vec, v.Vec)))}
}

// NearEquals は各成分が許容誤差内で一致するか判定する。
func (v Vec3) NearEquals(other Vec3, epsilon float64) bool {
	return math.Abs(v.X-other.X) <= epsilon &&
		math.Abs(v.Y-other.Y) <= epsilon &&
		math.Abs(v.Z-other.Z) <= epsilon
}

// IsZero は零ベクトルか判定する。
func (v Vec3) IsZero() bool {
	return v.NearEquals(ZERO_VEC3, vecEpsilon)
}

// RadToDeg はラジアンを度へ変換する。
func RadToDeg(rad float64) float64 {
	return rad * 180.0 / math.Pi
}

// DegToRad は度をラジアンへ変換する。
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// Clamped はmin-maxで値をクランプする。
func Clamped(value float64, min float64, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

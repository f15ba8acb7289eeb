// 指示: miu200521358
package mmath

import (
	"github.com/go-gl/mathgl/mgl64"
)

// ToMat4 は変換を平行移動×回転×スケールの順で合成した4x4行列として返す。
func (t Transform) ToMat4() mgl64.Mat4 {
	translation := mgl64.Translate3D(t.Translation.X, t.Translation.Y, t.Translation.Z)
	rotation := t.Rotation.Quat.Normalize().Mat4()
	scale := mgl64.Scale3D(t.Scale.X, t.Scale.Y, t.Scale.Z)
	return translation.Mul4(rotation).Mul4(scale)
}

// TransformPoint は4x4行列で点を変換した結果を返す。
func TransformPoint(matrix mgl64.Mat4, point Vec3) Vec3 {
	transformed := matrix.Mul4x1(mgl64.Vec4{point.X, point.Y, point.Z, 1})
	return NewVec3(transformed.X(), transformed.Y(), transformed.Z())
}

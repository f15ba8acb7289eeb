// 指示: miu200521358
package model

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/miu200521358/mu_motion_edit/pkg/domain/mmath"
)

// SkinVertex はスキニング行列で1頂点のワールド位置を求める。
func SkinVertex(vertex *Vertex, skinningMatrices []mgl64.Mat4) (mmath.Vec3, error) {
	if vertex == nil {
		return mmath.ZERO_VEC3, fmt.Errorf("頂点が未設定です")
	}
	result := mmath.ZERO_VEC3
	for slot, jointIndex := range vertex.JointIndexes {
		if jointIndex < 0 || jointIndex >= len(skinningMatrices) {
			return mmath.ZERO_VEC3, fmt.Errorf("頂点がジョイント範囲外を参照しています: %d", jointIndex)
		}
		skinned := mmath.TransformPoint(skinningMatrices[jointIndex], vertex.Position)
		result = result.Added(skinned.MuledScalar(vertex.Weights[slot]))
	}
	return result, nil
}

// SupportPoint は接地判定に使う支持点(頂点indexとワールド位置)を表す。
type SupportPoint struct {
	VertexIndex int
	World       mmath.Vec3
}

// FindSupport はワールドY座標が最小の頂点を支持点として返す。
// 指定ジョイント集合にウェイトを持つ頂点だけを対象にできる(nilなら全頂点)。
func FindSupport(mesh *Mesh, skinningMatrices []mgl64.Mat4, jointFilter map[int]struct{}) (SupportPoint, error) {
	if mesh == nil || len(mesh.Vertices) == 0 {
		return SupportPoint{}, fmt.Errorf("メッシュが未設定です")
	}

	support := SupportPoint{VertexIndex: -1}
	for vertexIndex, vertex := range mesh.Vertices {
		if jointFilter != nil && !vertexUsesJoints(vertex, jointFilter) {
			continue
		}
		world, err := SkinVertex(vertex, skinningMatrices)
		if err != nil {
			return SupportPoint{}, err
		}
		if support.VertexIndex < 0 || world.Y < support.World.Y {
			support = SupportPoint{VertexIndex: vertexIndex, World: world}
		}
	}
	if support.VertexIndex < 0 {
		return SupportPoint{}, fmt.Errorf("メッシュ %q に対象頂点がありません", mesh.Name)
	}
	return support, nil
}

// vertexUsesJoints は頂点が指定ジョイント集合のいずれかへ正のウェイトを持つか判定する。
func vertexUsesJoints(vertex *Vertex, jointFilter map[int]struct{}) bool {
	for slot, jointIndex := range vertex.JointIndexes {
		if vertex.Weights[slot] <= 0 {
			continue
		}
		if _, ok := jointFilter[jointIndex]; ok {
			return true
		}
	}
	return false
}

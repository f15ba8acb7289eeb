// 指示: miu200521358
package model

import (
	"fmt"

	"github.com/miu200521358/mu_motion_edit/pkg/domain/mmath"
)

const (
	// MaxVertexWeights は1頂点が参照できるジョイント数の上限。
	MaxVertexWeights = 4
	// weightSumEpsilon はウェイト合計の許容誤差。
	weightSumEpsilon = 1e-4
)

// Vertex はスキニング対象の1頂点を表す。
// Positionはバインドポーズでの位置。
type Vertex struct {
	Position     mmath.Vec3
	JointIndexes []int
	Weights      []float64
}

// Mesh はスキニング対象の頂点集合を表す。
type Mesh struct {
	Name     string
	Vertices []*Vertex
}

// Validate はメッシュ不変条件をスケルトンに対して検証する。
func (m *Mesh) Validate(skeleton *Skeleton) error {
	if m == nil {
		return fmt.Errorf("メッシュが未設定です")
	}
	if len(m.Vertices) == 0 {
		return fmt.Errorf("メッシュ %q に頂点がありません", m.Name)
	}
	for vertexIndex, vertex := range m.Vertices {
		if vertex == nil {
			return fmt.Errorf("メッシュ %q の頂点が未設定です: index=%d", m.Name, vertexIndex)
		}
		if len(vertex.JointIndexes) == 0 ||
			len(vertex.JointIndexes) > MaxVertexWeights {
			return fmt.Errorf("メッシュ %q の頂点 %d のジョイント参照数が不正です: %d",
				m.Name, vertexIndex, len(vertex.JointIndexes))
		}
		if len(vertex.JointIndexes) != len(vertex.Weights) {
			return fmt.Errorf("メッシュ %q の頂点 %d のウェイト数が不一致です: joints=%d weights=%d",
				m.Name, vertexIndex, len(vertex.JointIndexes), len(vertex.Weights))
		}
		sum := 0.0
		for slot, jointIndex := range vertex.JointIndexes {
			if jointIndex < 0 || jointIndex >= skeleton.Len() {
				return fmt.Errorf("メッシュ %q の頂点 %d がジョイント範囲外を参照しています: %d",
					m.Name, vertexIndex, jointIndex)
			}
			if vertex.Weights[slot] < 0 {
				return fmt.Errorf("メッシュ %q の頂点 %d のウェイトが負です: %f",
					m.Name, vertexIndex, vertex.Weights[slot])
			}
			sum += vertex.Weights[slot]
		}
		if sum < 1-weightSumEpsilon || sum > 1+weightSumEpsilon {
			return fmt.Errorf("メッシュ %q の頂点 %d のウェイト合計が1ではありません: %f",
				m.Name, vertexIndex, sum)
		}
	}
	return nil
}

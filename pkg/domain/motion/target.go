// 指示: miu200521358
// Package motion はキーフレームトラックとクリップのドメインモデルを提供する。
package motion

import "fmt"

// TargetKind はトラックの対象種別を表す。
type TargetKind int

const (
	// TargetKindJoint はスケルトンのジョイントを対象とする種別。
	TargetKindJoint TargetKind = iota + 1
	// TargetKindNode はシーンノードを対象とする種別。
	TargetKindNode
)

// String は対象種別の表示名を返す。
func (k TargetKind) String() string {
	switch k {
	case TargetKindJoint:
		return "ジョイント"
	case TargetKindNode:
		return "ノード"
	default:
		return fmt.Sprintf("不明(%d)", int(k))
	}
}

// IsValid は定義済み種別か判定する。
func (k TargetKind) IsValid() bool {
	return k == TargetKindJoint || k == TargetKindNode
}

// TargetRef はトラックが駆動する対象を表す。
type TargetRef struct {
	Kind TargetKind
	Name string
}

// NewJointTarget はジョイント対象を生成する。
func NewJointTarget(name string) TargetRef {
	return TargetRef{Kind: TargetKindJoint, Name: name}
}

// NewNodeTarget はシーンノード対象を生成する。
func NewNodeTarget(name string) TargetRef {
	return TargetRef{Kind: TargetKindNode, Name: name}
}

// Equals は種別と名前の両方が一致するか判定する。
// 種別が異なる対象は名前が同じでも別対象として扱う。
func (t TargetRef) Equals(other TargetRef) bool {
	return t.Kind == other.Kind && t.Name == other.Name
}

// Describe は対象の表示文字列を返す。
func (t TargetRef) Describe() string {
	return fmt.Sprintf("%s「%s」", t.Kind.String(), t.Name)
}

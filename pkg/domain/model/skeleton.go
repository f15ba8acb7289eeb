// 指示: miu200521358
// Package model はスケルトン・メッシュ・ポーズのドメインモデルを提供する。
package model

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/miu200521358/mu_motion_edit/pkg/domain/mmath"
)

const (
	// RootParentIndex はルートジョイントの親indexを表す。
	RootParentIndex = -1
)

// Joint はスケルトンの1関節を表す。
type Joint struct {
	Index         int
	Name          string
	ParentIndex   int
	BindTransform mmath.Transform
}

// IsRoot はルートジョイントか判定する。
func (j *Joint) IsRoot() bool {
	return j != nil && j.ParentIndex == RootParentIndex
}

// Skeleton はジョイントの索引付き集合を表す。
// ジョイントは親が常に自分より前に並ぶ順序で保持される。
type Skeleton struct {
	joints           []*Joint
	nameIndexes      map[string]int
	childIndexes     [][]int
	inverseBindModel []mgl64.Mat4
}

// NewSkeleton はジョイント列からスケルトンを生成する。
func NewSkeleton(joints []*Joint) (*Skeleton, error) {
	if len(joints) == 0 {
		return nil, fmt.Errorf("ジョイントがありません")
	}
	skeleton := &Skeleton{
		joints:       joints,
		nameIndexes:  make(map[string]int, len(joints)),
		childIndexes: make([][]int, len(joints)),
	}
	for index, joint := range joints {
		if joint == nil {
			return nil, fmt.Errorf("ジョイントが未設定です: index=%d", index)
		}
		if joint.Name == "" {
			return nil, fmt.Errorf("ジョイント名が空です: index=%d", index)
		}
		if _, ok := skeleton.nameIndexes[joint.Name]; ok {
			return nil, fmt.Errorf("ジョイント名が重複しています: %q", joint.Name)
		}
		if joint.ParentIndex != RootParentIndex &&
			(joint.ParentIndex < 0 || joint.ParentIndex >= index) {
			return nil, fmt.Errorf("ジョイント %q の親indexが不正です: parent=%d index=%d",
				joint.Name, joint.ParentIndex, index)
		}
		joint.Index = index
		skeleton.nameIndexes[joint.Name] = index
		if joint.ParentIndex != RootParentIndex {
			skeleton.childIndexes[joint.ParentIndex] =
				append(skeleton.childIndexes[joint.ParentIndex], index)
		}
	}

	// バインドポーズのモデル行列は固定なので逆行列まで先に求めておく
	bindModel := make([]mgl64.Mat4, len(joints))
	skeleton.inverseBindModel = make([]mgl64.Mat4, len(joints))
	for index, joint := range joints {
		local := joint.BindTransform.ToMat4()
		if joint.ParentIndex == RootParentIndex {
			bindModel[index] = local
		} else {
			bindModel[index] = bindModel[joint.ParentIndex].Mul4(local)
		}
		skeleton.inverseBindModel[index] = bindModel[index].Inv()
	}
	return skeleton, nil
}

// Len はジョイント数を返す。
func (s *Skeleton) Len() int {
	if s == nil {
		return 0
	}
	return len(s.joints)
}

// Get は指定indexのジョイントを返す。
func (s *Skeleton) Get(index int) (*Joint, error) {
	if s == nil {
		return nil, fmt.Errorf("スケルトンが未設定です")
	}
	if index < 0 || index >= len(s.joints) {
		return nil, fmt.Errorf("ジョイントindexが範囲外です: index=%d count=%d",
			index, len(s.joints))
	}
	return s.joints[index], nil
}

// GetByName は指定名のジョイントを返す。
func (s *Skeleton) GetByName(name string) (*Joint, error) {
	if s == nil {
		return nil, fmt.Errorf("スケルトンが未設定です")
	}
	index, ok := s.nameIndexes[name]
	if !ok {
		return nil, fmt.Errorf("ジョイント %q が見つかりません", name)
	}
	return s.joints[index], nil
}

// Contains は指定名のジョイントが存在するか判定する。
func (s *Skeleton) Contains(name string) bool {
	if s == nil {
		return false
	}
	_, ok := s.nameIndexes[name]
	return ok
}

// ChildIndexes は指定ジョイントの子index列を返す。
func (s *Skeleton) ChildIndexes(index int) []int {
	if s == nil || index < 0 || index >= len(s.childIndexes) {
		return nil
	}
	return s.childIndexes[index]
}

// InverseBindMatrix は指定ジョイントのバインドポーズ逆行列を返す。
func (s *Skeleton) InverseBindMatrix(index int) (mgl64.Mat4, error) {
	if s == nil {
		return mgl64.Ident4(), fmt.Errorf("スケルトンが未設定です")
	}
	if index < 0 || index >= len(s.inverseBindModel) {
		return mgl64.Ident4(), fmt.Errorf("ジョイントindexが範囲外です: index=%d count=%d",
			index, len(s.inverseBindModel))
	}
	return s.inverseBindModel[index], nil
}

// JointNames は並び順どおりのジョイント名一覧を返す。
func (s *Skeleton) JointNames() []string {
	if s == nil {
		return nil
	}
	names := make([]string, len(s.joints))
	for index, joint := range s.joints {
		names[index] = joint.Name
	}
	return names
}

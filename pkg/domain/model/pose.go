// 指示: miu200521358
package model

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/miu200521358/mu_motion_edit/pkg/domain/mmath"
	"github.com/miu200521358/mu_motion_edit/pkg/domain/motion"
)

// Pose はある瞬間のスケルトン全ジョイント局所変換を表す。
// クリップと独立した一時状態で、ジョイント単位の上書きもできる。
type Pose struct {
	skeleton *Skeleton
	locals   []mmath.Transform
}

// NewPose はバインドポーズ状態のポーズを生成する。
func NewPose(skeleton *Skeleton) (*Pose, error) {
	if skeleton == nil {
		return nil, fmt.Errorf("スケルトンが未設定です")
	}
	pose := &Pose{
		skeleton: skeleton,
		locals:   make([]mmath.Transform, skeleton.Len()),
	}
	pose.SetToBind()
	return pose, nil
}

// Skeleton は対象スケルトンを返す。
func (p *Pose) Skeleton() *Skeleton {
	if p == nil {
		return nil
	}
	return p.skeleton
}

// SetToBind は全ジョイントをバインドポーズに戻す。
func (p *Pose) SetToBind() {
	if p == nil {
		return
	}
	for index := range p.locals {
		p.locals[index] = p.skeleton.joints[index].BindTransform
	}
}

// SetToClip は指定時刻のクリップ補間値でポーズを設定する。
// トラックの無いジョイントはバインドポーズのまま。
func (p *Pose) SetToClip(clip *motion.Clip, time float64) error {
	if p == nil {
		return fmt.Errorf("ポーズが未設定です")
	}
	if clip == nil {
		return fmt.Errorf("クリップが未設定です")
	}
	p.SetToBind()
	for _, joint := range p.skeleton.joints {
		track := clip.FindTrack(motion.NewJointTarget(joint.Name))
		if track == nil {
			continue
		}
		transform, err := motion.Interpolate(track, time)
		if err != nil {
			return err
		}
		p.applyTrackTransform(joint.Index, track, transform)
	}
	return nil
}

// applyTrackTransform はトラックに存在するチャンネルだけを局所変換へ反映する。
// 欠落チャンネルはバインドポーズの値を保つ。
func (p *Pose) applyTrackTransform(index int, track *motion.Track, transform mmath.Transform) {
	local := p.skeleton.joints[index].BindTransform
	if track.HasTranslations() {
		local.Translation = transform.Translation
	}
	if track.HasRotations() {
		local.Rotation = transform.Rotation
	}
	if track.HasScales() {
		local.Scale = transform.Scale
	}
	p.locals[index] = local
}

// LocalTransform は指定ジョイントの局所変換を返す。
func (p *Pose) LocalTransform(index int) (mmath.Transform, error) {
	if p == nil {
		return mmath.NewTransform(), fmt.Errorf("ポーズが未設定です")
	}
	if index < 0 || index >= len(p.locals) {
		return mmath.NewTransform(), fmt.Errorf("ジョイントindexが範囲外です: index=%d count=%d",
			index, len(p.locals))
	}
	return p.locals[index], nil
}

// SetLocalTransform は指定ジョイントの局所変換を上書きする。
func (p *Pose) SetLocalTransform(index int, transform mmath.Transform) error {
	if p == nil {
		return fmt.Errorf("ポーズが未設定です")
	}
	if index < 0 || index >= len(p.locals) {
		return fmt.Errorf("ジョイントindexが範囲外です: index=%d count=%d",
			index, len(p.locals))
	}
	p.locals[index] = transform
	return nil
}

// AddLocalTranslation は指定ジョイントの局所平行移動へ差分を加える。
func (p *Pose) AddLocalTranslation(index int, delta mmath.Vec3) error {
	local, err := p.LocalTransform(index)
	if err != nil {
		return err
	}
	local.Translation = local.Translation.Added(delta)
	p.locals[index] = local
	return nil
}

// ModelMatrices は全ジョイントのモデル空間行列を親から順に合成して返す。
func (p *Pose) ModelMatrices() []mgl64.Mat4 {
	if p == nil {
		return nil
	}
	matrices := make([]mgl64.Mat4, len(p.locals))
	for index, joint := range p.skeleton.joints {
		local := p.locals[index].ToMat4()
		if joint.ParentIndex == RootParentIndex {
			matrices[index] = local
		} else {
			matrices[index] = matrices[joint.ParentIndex].Mul4(local)
		}
	}
	return matrices
}

// SkinningMatrices は全ジョイントのスキニング行列(モデル行列×バインド逆行列)を返す。
func (p *Pose) SkinningMatrices() ([]mgl64.Mat4, error) {
	if p == nil {
		return nil, fmt.Errorf("ポーズが未設定です")
	}
	modelMatrices := p.ModelMatrices()
	matrices := make([]mgl64.Mat4, len(modelMatrices))
	for index, modelMatrix := range modelMatrices {
		inverseBind, err := p.skeleton.InverseBindMatrix(index)
		if err != nil {
			return nil, err
		}
		matrices[index] = modelMatrix.Mul4(inverseBind)
	}
	return matrices, nil
}

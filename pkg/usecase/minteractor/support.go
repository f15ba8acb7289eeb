// 指示: miu200521358
package minteractor

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/miu200521358/mu_motion_edit/pkg/domain/mmath"
	"github.com/miu200521358/mu_motion_edit/pkg/domain/model"
	"github.com/miu200521358/mu_motion_edit/pkg/domain/motion"
)

const (
	// sensitivityStep は感度行列を差分で求めるときの摂動量。
	sensitivityStep = 0.01
	// singularDetEpsilon は感度行列を特異とみなす行列式絶対値の閾値。
	singularDetEpsilon = 1e-7
)

// ErrSingularSensitivity は感度行列が特異で補正量を解けない状態を表す。
var ErrSingularSensitivity = errors.New("感度行列が特異で補正量を解けません")

// TranslateForSupport は選択中トラックの各キーフレームの平行移動を調整し、
// 支持点(最下端頂点)の高さをバインドポーズの支持高さへ合わせる。
// 1キーフレームでも解けなければクリップは一切変更されない。
func (uc *MotionEditUsecase) TranslateForSupport() error {
	session, err := uc.newSupportSession()
	if err != nil {
		return err
	}
	bindY := session.bindSupport.World.Y

	err = session.adjustKeyframes(func(current model.SupportPoint, _ model.SupportPoint) mmath.Vec3 {
		return mmath.NewVec3(0, bindY-current.World.Y, 0)
	})
	if err != nil {
		return err
	}
	description := fmt.Sprintf("%s を接地高さ補正", session.track.Target.Describe())
	return uc.replaceClip(session.clip, session.workingClip, description, session.workingTrack, "")
}

// TranslateForTraction は選択中トラックの各キーフレームの平行移動を調整し、
// 支持点が直前キーフレームの支持点から水平に滑らないようにする。
func (uc *MotionEditUsecase) TranslateForTraction() error {
	session, err := uc.newSupportSession()
	if err != nil {
		return err
	}

	err = session.adjustKeyframes(func(current model.SupportPoint, previous model.SupportPoint) mmath.Vec3 {
		return mmath.NewVec3(previous.World.X-current.World.X, 0, previous.World.Z-current.World.Z)
	})
	if err != nil {
		return err
	}
	description := fmt.Sprintf("%s を接地滑り補正", session.track.Target.Describe())
	return uc.replaceClip(session.clip, session.workingClip, description, session.workingTrack, "")
}

// supportSession は接地補正1回ぶんの作業状態を表す。
// 補正はクリップの作業複製に対して行い、成功時のみ差し替える。
type supportSession struct {
	skeleton     *model.Skeleton
	mesh         *model.Mesh
	joint        *model.Joint
	clip         *motion.Clip
	track        *motion.Track
	workingClip  *motion.Clip
	workingTrack *motion.Track
	bindSupport  model.SupportPoint
}

// newSupportSession は接地補正の前提を検証して作業状態を作る。
func (uc *MotionEditUsecase) newSupportSession() (*supportSession, error) {
	if uc.document == nil || uc.document.Skeleton == nil {
		return nil, fmt.Errorf("スケルトンが読み込まれていません")
	}
	if uc.document.Mesh == nil {
		return nil, fmt.Errorf("メッシュが読み込まれていません")
	}
	clip, track, err := uc.selectedTrack()
	if err != nil {
		return nil, err
	}
	if track.Target.Kind != motion.TargetKindJoint {
		return nil, fmt.Errorf("接地補正はジョイント対象のトラックにのみ使えます: %s",
			track.Target.Describe())
	}
	if !track.HasTranslations() {
		return nil, fmt.Errorf("トラック %s に平行移動チャンネルがありません",
			track.Target.Describe())
	}
	skeleton := uc.document.Skeleton
	joint, err := skeleton.GetByName(track.Target.Name)
	if err != nil {
		return nil, err
	}

	pose, err := model.NewPose(skeleton)
	if err != nil {
		return nil, err
	}
	matrices, err := pose.SkinningMatrices()
	if err != nil {
		return nil, err
	}
	bindSupport, err := model.FindSupport(uc.document.Mesh, matrices, nil)
	if err != nil {
		return nil, err
	}

	workingClip, err := clip.Copy()
	if err != nil {
		return nil, err
	}
	workingTrack := workingClip.FindTrack(track.Target)
	if workingTrack == nil {
		return nil, fmt.Errorf("作業複製にトラック %s がありません", track.Target.Describe())
	}
	return &supportSession{
		skeleton:     skeleton,
		mesh:         uc.document.Mesh,
		joint:        joint,
		clip:         clip,
		track:        track,
		workingClip:  workingClip,
		workingTrack: workingTrack,
		bindSupport:  bindSupport,
	}, nil
}

// adjustKeyframes は各キーフレームの必要補正量をワールド空間で受け取り、
// 感度行列を解いて局所平行移動へ反映する。直前キーフレームの支持点は
// 補正後の姿勢で取り直して次のキーフレームへ渡す。
func (s *supportSession) adjustKeyframes(deltaWorld func(current, previous model.SupportPoint) mmath.Vec3) error {
	previous := s.bindSupport
	for index, time := range s.workingTrack.Times {
		pose, err := model.NewPose(s.skeleton)
		if err != nil {
			return err
		}
		if err := pose.SetToClip(s.workingClip, time); err != nil {
			return err
		}
		matrices, err := pose.SkinningMatrices()
		if err != nil {
			return err
		}
		current, err := model.FindSupport(s.mesh, matrices, nil)
		if err != nil {
			return err
		}

		wanted := deltaWorld(current, previous)
		deltaLocal, err := s.solveSensitivity(pose, current, wanted)
		if err != nil {
			return fmt.Errorf("キーフレーム %d (時刻 %.3f): %w", index, time, err)
		}
		s.workingTrack.Translations[index] = s.workingTrack.Translations[index].Added(deltaLocal)

		// 次のキーフレームの基準支持点は補正後の姿勢で取り直す
		if err := pose.SetToClip(s.workingClip, time); err != nil {
			return err
		}
		matrices, err = pose.SkinningMatrices()
		if err != nil {
			return err
		}
		previous, err = model.FindSupport(s.mesh, matrices, nil)
		if err != nil {
			return err
		}
	}
	return nil
}

// solveSensitivity は支持点ワールド位置のジョイント局所平行移動に対する
// 3x3感度行列を差分で作り、wantedを生む局所補正量を解く。
func (s *supportSession) solveSensitivity(pose *model.Pose, support model.SupportPoint, wanted mmath.Vec3) (mmath.Vec3, error) {
	vertex := s.mesh.Vertices[support.VertexIndex]
	axes := []mmath.Vec3{mmath.UNIT_X_VEC3, mmath.UNIT_Y_VEC3, mmath.UNIT_Z_VEC3}

	jacobian := mat.NewDense(3, 3, nil)
	base, err := pose.LocalTransform(s.joint.Index)
	if err != nil {
		return mmath.ZERO_VEC3, err
	}
	for column, axis := range axes {
		perturbed := base
		perturbed.Translation = base.Translation.Added(axis.MuledScalar(sensitivityStep))
		if err := pose.SetLocalTransform(s.joint.Index, perturbed); err != nil {
			return mmath.ZERO_VEC3, err
		}
		matrices, err := pose.SkinningMatrices()
		if err != nil {
			return mmath.ZERO_VEC3, err
		}
		moved, err := model.SkinVertex(vertex, matrices)
		if err != nil {
			return mmath.ZERO_VEC3, err
		}
		gradient := moved.Subed(support.World).MuledScalar(1 / sensitivityStep)
		jacobian.Set(0, column, gradient.X)
		jacobian.Set(1, column, gradient.Y)
		jacobian.Set(2, column, gradient.Z)
	}
	if err := pose.SetLocalTransform(s.joint.Index, base); err != nil {
		return mmath.ZERO_VEC3, err
	}

	determinant := mat.Det(jacobian)
	if math.Abs(determinant) <= singularDetEpsilon {
		return mmath.ZERO_VEC3, fmt.Errorf("det=%e: %w", determinant, ErrSingularSensitivity)
	}

	wantedVec := mat.NewVecDense(3, []float64{wanted.X, wanted.Y, wanted.Z})
	var solved mat.VecDense
	if err := solved.SolveVec(jacobian, wantedVec); err != nil {
		return mmath.ZERO_VEC3, fmt.Errorf("補正量の求解に失敗しました: %w", err)
	}
	return mmath.NewVec3(solved.AtVec(0), solved.AtVec(1), solved.AtVec(2)), nil
}

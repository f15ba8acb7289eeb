// 指示: miu200521358
package minteractor

import (
	"errors"
	"math"
	"testing"

	"github.com/miu200521358/mu_motion_edit/pkg/domain/mmath"
	"github.com/miu200521358/mu_motion_edit/pkg/domain/model"
	"github.com/miu200521358/mu_motion_edit/pkg/domain/motion"
	"github.com/miu200521358/mu_motion_edit/pkg/usecase/port/moutput"
)

// newSupportSkeleton はroot-spine-headの3関節スケルトンを作る。
func newSupportSkeleton(t *testing.T) *model.Skeleton {
	t.Helper()
	spineBind := mmath.NewTransform()
	spineBind.Translation = mmath.NewVec3(0, 1, 0)
	headBind := mmath.NewTransform()
	headBind.Translation = mmath.NewVec3(0, 1, 0)
	skeleton, err := model.NewSkeleton([]*model.Joint{
		{Name: "root", ParentIndex: model.RootParentIndex, BindTransform: mmath.NewTransform()},
		{Name: "spine", ParentIndex: 0, BindTransform: spineBind},
		{Name: "head", ParentIndex: 1, BindTransform: headBind},
	})
	if err != nil {
		t.Fatalf("スケルトン生成に失敗: %v", err)
	}
	return skeleton
}

// newSupportUsecase はスケルトン・メッシュ付き文書を読み込み、spineトラックを選択する。
func newSupportUsecase(t *testing.T, spineTranslations []mmath.Vec3, times []float64) *MotionEditUsecase {
	t.Helper()
	skeleton := newSupportSkeleton(t)
	mesh := &model.Mesh{
		Name: "body",
		Vertices: []*model.Vertex{
			{Position: mmath.NewVec3(0, 1, 0), JointIndexes: []int{1}, Weights: []float64{1}},
			{Position: mmath.NewVec3(0, 2, 0), JointIndexes: []int{2}, Weights: []float64{1}},
		},
	}
	clip := motion.NewClip("hop", times[len(times)-1])
	spineTrack := &motion.Track{
		Target:       motion.NewJointTarget("spine"),
		Times:        append([]float64(nil), times...),
		Translations: append([]mmath.Vec3(nil), spineTranslations...),
	}
	headTrack := &motion.Track{
		Target:       motion.NewJointTarget("head"),
		Times:        append([]float64(nil), times...),
		Translations: make([]mmath.Vec3, len(times)),
	}
	for index := range headTrack.Translations {
		headTrack.Translations[index] = mmath.NewVec3(0, 1, 0)
	}
	clip.Tracks = append(clip.Tracks, spineTrack, headTrack)

	document := &moutput.MotionDocument{
		Name:     "support",
		Clips:    []*motion.Clip{clip},
		Skeleton: skeleton,
		Mesh:     mesh,
	}
	uc := NewMotionEditUsecase(MotionEditUsecaseDeps{MotionReader: &fakeReader{document: document}})
	if _, err := uc.LoadMotion(LoadRequest{Path: "support.json"}); err != nil {
		t.Fatalf("読み込みに失敗: %v", err)
	}
	if err := uc.SelectTrack(motion.NewJointTarget("spine")); err != nil {
		t.Fatalf("トラック選択に失敗: %v", err)
	}
	return uc
}

func TestTranslateForSupport(t *testing.T) {
	// t=1でspineが1つ持ち上がるクリップ
	uc := newSupportUsecase(t, []mmath.Vec3{
		mmath.NewVec3(0, 1, 0),
		mmath.NewVec3(0, 2, 0),
	}, []float64{0, 1.0})

	if err := uc.TranslateForSupport(); err != nil {
		t.Fatalf("接地高さ補正に失敗: %v", err)
	}
	track := uc.Selection().SelectedTrack()
	// 支持点(spine直下の頂点)の高さがバインドポーズの高さへ戻る
	if !track.Translations[1].NearEquals(mmath.NewVec3(0, 1, 0), 1e-6) {
		t.Fatalf("補正後の平行移動が不正: %v", track.Translations[1])
	}
	if uc.CountUnsavedEdits() != 1 {
		t.Fatalf("編集回数が不正: %d", uc.CountUnsavedEdits())
	}
}

func TestTranslateForTraction(t *testing.T) {
	// t=1でspineが横へ1滑るクリップ
	uc := newSupportUsecase(t, []mmath.Vec3{
		mmath.NewVec3(0, 1, 0),
		mmath.NewVec3(1, 1, 0),
	}, []float64{0, 1.0})

	if err := uc.TranslateForTraction(); err != nil {
		t.Fatalf("接地滑り補正に失敗: %v", err)
	}
	track := uc.Selection().SelectedTrack()
	if math.Abs(track.Translations[1].X) > 1e-6 {
		t.Fatalf("水平滑りが補正されていない: %v", track.Translations[1])
	}
	// 高さは変えない
	if math.Abs(track.Translations[1].Y-1.0) > 1e-6 {
		t.Fatalf("高さが変わってしまった: %v", track.Translations[1])
	}
}

func TestTranslateForSupportSingular(t *testing.T) {
	uc := newSupportUsecase(t, []mmath.Vec3{
		mmath.NewVec3(0, 1, 0),
		mmath.NewVec3(0, 2, 0),
	}, []float64{0, 1.0})
	// headの移動は支持点(spine側の頂点)に影響しないので感度行列が特異になる
	if err := uc.SelectTrack(motion.NewJointTarget("head")); err != nil {
		t.Fatalf("トラック選択に失敗: %v", err)
	}

	before := uc.Selection().SelectedTrack().Translations[1]
	err := uc.TranslateForSupport()
	if !errors.Is(err, ErrSingularSensitivity) {
		t.Fatalf("特異時のエラーが不正: %v", err)
	}
	// クリップは一切変更されない
	after := uc.Selection().SelectedTrack().Translations[1]
	if !after.NearEquals(before, 1e-12) {
		t.Fatalf("失敗した補正でクリップが変更された")
	}
	if uc.CountUnsavedEdits() != 0 {
		t.Fatalf("失敗した補正が編集として数えられた: %d", uc.CountUnsavedEdits())
	}
}

func TestRetargetHalfMapped(t *testing.T) {
	uc := newEditTestUsecase(t)

	sourceClip := motion.NewClip("source", 1.0)
	hipsTrack := &motion.Track{
		Target: motion.NewJointTarget("Hips"),
		Times:  []float64{0, 0.5, 1.0},
		Rotations: []mmath.Quaternion{
			mmath.NewQuaternion(),
			mmath.NewQuaternionFromDegrees(0, 45, 0),
			mmath.NewQuaternionFromDegrees(0, 90, 0),
		},
	}
	spineTrack := &motion.Track{
		Target:    motion.NewJointTarget("Spine"),
		Times:     []float64{0, 1.0},
		Rotations: []mmath.Quaternion{mmath.NewQuaternion(), mmath.NewQuaternion()},
	}
	sourceClip.Tracks = append(sourceClip.Tracks, hipsTrack, spineTrack)

	// 2トラックのうちHipsだけを対応させる
	mapping, err := model.NewSkeletonMapping("half", []model.JointMapEntry{
		{SourceName: "Hips", TargetName: "hip", Twist: mmath.NewQuaternion()},
	})
	if err != nil {
		t.Fatalf("マッピング生成に失敗: %v", err)
	}

	if err := uc.Retarget(RetargetRequest{
		SourceClip: sourceClip,
		Mapping:    mapping,
		NewName:    "retargeted",
	}); err != nil {
		t.Fatalf("リターゲットに失敗: %v", err)
	}
	newClip := uc.ClipSet().FindByName("retargeted")
	if newClip == nil {
		t.Fatalf("リターゲット結果が登録されていない")
	}
	if len(newClip.Tracks) != 1 {
		t.Fatalf("トラック数が不正: %d", len(newClip.Tracks))
	}
	if math.Abs(newClip.Duration-1.0) > motion.TimeEpsilon {
		t.Fatalf("長さが不正: %f", newClip.Duration)
	}
	track := newClip.Tracks[0]
	if !track.Target.Equals(motion.NewJointTarget("hip")) {
		t.Fatalf("変換先対象が不正: %s", track.Target.Describe())
	}
	// 変換元トラック自身の時刻列でサンプリングされる
	if track.Len() != 3 || math.Abs(track.Times[1]-0.5) > motion.TimeEpsilon {
		t.Fatalf("サンプリング時刻が不正: %v", track.Times)
	}
	if !track.Rotations[2].NearEquals(mmath.NewQuaternionFromDegrees(0, 90, 0), 1e-9) {
		t.Fatalf("回転が不正: %+v", track.Rotations[2])
	}
}

func TestRetargetAppliesTwist(t *testing.T) {
	uc := newEditTestUsecase(t)

	sourceClip := motion.NewClip("source", 1.0)
	sourceClip.Tracks = append(sourceClip.Tracks, &motion.Track{
		Target: motion.NewJointTarget("Hips"),
		Times:  []float64{0, 1.0},
		Rotations: []mmath.Quaternion{
			mmath.NewQuaternionFromDegrees(0, 30, 0),
			mmath.NewQuaternionFromDegrees(0, 30, 0),
		},
	})
	mapping, err := model.NewSkeletonMapping("twisted", []model.JointMapEntry{
		{SourceName: "Hips", TargetName: "hip", Twist: mmath.NewQuaternionFromDegrees(0, 60, 0)},
	})
	if err != nil {
		t.Fatalf("マッピング生成に失敗: %v", err)
	}

	if err := uc.Retarget(RetargetRequest{
		SourceClip: sourceClip,
		Mapping:    mapping,
		NewName:    "retargeted",
	}); err != nil {
		t.Fatalf("リターゲットに失敗: %v", err)
	}
	track := uc.ClipSet().FindByName("retargeted").Tracks[0]
	want := mmath.NewQuaternionFromDegrees(0, 90, 0)
	if !track.Rotations[0].NearEquals(want, 1e-9) {
		t.Fatalf("補正回転が合成されていない: %+v", track.Rotations[0])
	}
}

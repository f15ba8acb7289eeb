// 指示: miu200521358
package minteractor

import (
	"fmt"

	"github.com/miu200521358/mu_motion_edit/pkg/domain/mmath"
	"github.com/miu200521358/mu_motion_edit/pkg/domain/motion"
)

// InsertKeyframe は選択中トラックへキーフレームを挿入する。
func (uc *MotionEditUsecase) InsertKeyframe(time float64, transform mmath.Transform) error {
	clip, track, err := uc.selectedTrack()
	if err != nil {
		return err
	}
	if time > clip.Duration+motion.TimeEpsilon {
		return fmt.Errorf("挿入時刻 %f がクリップ長 %f を越えています", time, clip.Duration)
	}
	newTrack, err := motion.InsertKeyframe(track, time, transform)
	if err != nil {
		return err
	}
	newClip, err := clip.ReplaceTrack(track, newTrack)
	if err != nil {
		return err
	}
	description := fmt.Sprintf("%s へ時刻 %.3f のキーフレームを挿入", track.Target.Describe(), time)
	return uc.replaceClip(clip, newClip, description, newTrack, "")
}

// DeleteKeyframes は選択中トラックからキーフレーム範囲を削除する。
func (uc *MotionEditUsecase) DeleteKeyframes(startIndex, count int) error {
	clip, track, err := uc.selectedTrack()
	if err != nil {
		return err
	}
	newTrack, err := motion.DeleteRange(track, startIndex, count)
	if err != nil {
		return err
	}
	newClip, err := clip.ReplaceTrack(track, newTrack)
	if err != nil {
		return err
	}
	description := fmt.Sprintf("%s のキーフレーム %d 件を削除", track.Target.Describe(), count)
	return uc.replaceClip(clip, newClip, description, newTrack, "")
}

// ReplaceKeyframe は選択中トラックの指定キーフレーム値を差し替える。
func (uc *MotionEditUsecase) ReplaceKeyframe(index int, transform mmath.Transform) error {
	clip, track, err := uc.selectedTrack()
	if err != nil {
		return err
	}
	newTrack, err := motion.ReplaceKeyframe(track, index, transform)
	if err != nil {
		return err
	}
	newClip, err := clip.ReplaceTrack(track, newTrack)
	if err != nil {
		return err
	}
	description := fmt.Sprintf("%s のキーフレーム %d を差し替え", track.Target.Describe(), index)
	return uc.replaceClip(clip, newClip, description, newTrack, "")
}

// SetKeyframeTime は選択中トラックの指定キーフレーム時刻を変更する。
// ドラッグ操作向けの連続編集で、同じキーフレームへの連続変更は1回の編集に合流する。
func (uc *MotionEditUsecase) SetKeyframeTime(index int, newTime float64) error {
	clip, track, err := uc.selectedTrack()
	if err != nil {
		return err
	}
	newTrack, err := motion.SetFrameTime(track, index, newTime)
	if err != nil {
		return err
	}
	newClip, err := clip.ReplaceTrack(track, newTrack)
	if err != nil {
		return err
	}
	description := fmt.Sprintf("%s のキーフレーム %d を時刻 %.3f へ移動",
		track.Target.Describe(), index, newTime)
	detail := fmt.Sprintf("frame_time#%s#%s#%d", clip.Name, track.Target.Describe(), index)
	return uc.replaceClip(clip, newClip, description, newTrack, detail)
}

// ReduceTrack は選択中トラックのキーフレームを間引く。
func (uc *MotionEditUsecase) ReduceTrack(factor int) error {
	clip, track, err := uc.selectedTrack()
	if err != nil {
		return err
	}
	newTrack, err := motion.Reduce(track, factor)
	if err != nil {
		return err
	}
	newClip, err := clip.ReplaceTrack(track, newTrack)
	if err != nil {
		return err
	}
	description := fmt.Sprintf("%s を1/%dへ間引き", track.Target.Describe(), factor)
	return uc.replaceClip(clip, newClip, description, newTrack, "")
}

// ReverseTrack は選択中トラックのキーフレーム順を反転する。
func (uc *MotionEditUsecase) ReverseTrack() error {
	clip, track, err := uc.selectedTrack()
	if err != nil {
		return err
	}
	newTrack, err := motion.Reverse(track)
	if err != nil {
		return err
	}
	newClip, err := clip.ReplaceTrack(track, newTrack)
	if err != nil {
		return err
	}
	description := fmt.Sprintf("%s を反転", track.Target.Describe())
	return uc.replaceClip(clip, newClip, description, newTrack, "")
}

// SmoothTrack は選択中トラックをループ対応の窓平均で平滑化する。
// windowFractionが0以下なら既定の窓幅を使う。
func (uc *MotionEditUsecase) SmoothTrack(windowFraction float64) error {
	clip, track, err := uc.selectedTrack()
	if err != nil {
		return err
	}
	if windowFraction <= 0 {
		windowFraction = motion.DefaultSmoothWindowFraction
	}
	newTrack, err := motion.Smooth(track, windowFraction, clip.Duration, nil, nil)
	if err != nil {
		return err
	}
	newClip, err := clip.ReplaceTrack(track, newTrack)
	if err != nil {
		return err
	}
	description := fmt.Sprintf("%s を平滑化", track.Target.Describe())
	return uc.replaceClip(clip, newClip, description, newTrack, "")
}

// WrapTrack は選択中トラックの始端と終端をループ向けに揃える。
func (uc *MotionEditUsecase) WrapTrack(endWeight float64) error {
	clip, track, err := uc.selectedTrack()
	if err != nil {
		return err
	}
	newTrack, err := motion.Wrap(track, clip.Duration, endWeight)
	if err != nil {
		return err
	}
	newClip, err := clip.ReplaceTrack(track, newTrack)
	if err != nil {
		return err
	}
	description := fmt.Sprintf("%s をループ調整", track.Target.Describe())
	return uc.replaceClip(clip, newClip, description, newTrack, "")
}

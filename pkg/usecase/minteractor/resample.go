// 指示: miu200521358
package minteractor

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/miu200521358/mu_motion_edit/pkg/domain/motion"
)

// mapTracksParallel は全トラックへ同じ変換をトラック単位の並列で適用した
// 新クリップを返す。1トラックでも失敗したら全体が失敗し、元クリップは変わらない。
func mapTracksParallel(oldClip *motion.Clip,
	apply func(oldTrack *motion.Track) (*motion.Track, error)) (*motion.Clip, error) {
	if oldClip == nil {
		return nil, fmt.Errorf("クリップが未設定です")
	}
	newClip := motion.NewClip(oldClip.Name, oldClip.Duration)
	newClip.Tracks = make([]*motion.Track, len(oldClip.Tracks))

	var eg errgroup.Group
	for index, oldTrack := range oldClip.Tracks {
		eg.Go(func() error {
			newTrack, err := apply(oldTrack)
			if err != nil {
				return fmt.Errorf("対象 %s の編集に失敗しました: %w",
					oldTrack.Target.Describe(), err)
			}
			newClip.Tracks[index] = newTrack
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return newClip, nil
}

// reselectTrack は新クリップ内で旧選択トラックに対応するトラックを引き直す。
func (uc *MotionEditUsecase) reselectTrack(newClip *motion.Clip) *motion.Track {
	oldTrack := uc.selection.SelectedTrack()
	if oldTrack == nil {
		return nil
	}
	return newClip.FindTrack(oldTrack.Target)
}

// ResampleClipAtRate は選択中クリップの全トラックを指定レートで再サンプリングする。
func (uc *MotionEditUsecase) ResampleClipAtRate(sampleRate float64) error {
	clip, err := uc.selectedClip()
	if err != nil {
		return err
	}
	newClip, err := mapTracksParallel(clip, func(oldTrack *motion.Track) (*motion.Track, error) {
		return motion.ResampleAtRate(oldTrack, sampleRate, clip.Duration)
	})
	if err != nil {
		return err
	}
	description := fmt.Sprintf("クリップ %q を %.1ffps で再サンプリング", clip.Name, sampleRate)
	return uc.replaceClip(clip, newClip, description, uc.reselectTrack(newClip), "")
}

// ResampleClipToNumber は選択中クリップの全トラックを指定キーフレーム数へ
// 再サンプリングする。
func (uc *MotionEditUsecase) ResampleClipToNumber(count int) error {
	clip, err := uc.selectedClip()
	if err != nil {
		return err
	}
	newClip, err := mapTracksParallel(clip, func(oldTrack *motion.Track) (*motion.Track, error) {
		return motion.ResampleToNumber(oldTrack, count, clip.Duration)
	})
	if err != nil {
		return err
	}
	description := fmt.Sprintf("クリップ %q を %d キーフレームへ再サンプリング", clip.Name, count)
	return uc.replaceClip(clip, newClip, description, uc.reselectTrack(newClip), "")
}

// ReduceClip は選択中クリップの全トラックを間引く。
func (uc *MotionEditUsecase) ReduceClip(factor int) error {
	clip, err := uc.selectedClip()
	if err != nil {
		return err
	}
	newClip, err := mapTracksParallel(clip, func(oldTrack *motion.Track) (*motion.Track, error) {
		return motion.Reduce(oldTrack, factor)
	})
	if err != nil {
		return err
	}
	description := fmt.Sprintf("クリップ %q を1/%dへ間引き", clip.Name, factor)
	return uc.replaceClip(clip, newClip, description, uc.reselectTrack(newClip), "")
}

// WrapClip は選択中クリップの全トラックをループ向けに揃える。
func (uc *MotionEditUsecase) WrapClip(endWeight float64) error {
	clip, err := uc.selectedClip()
	if err != nil {
		return err
	}
	newClip, err := mapTracksParallel(clip, func(oldTrack *motion.Track) (*motion.Track, error) {
		return motion.Wrap(oldTrack, clip.Duration, endWeight)
	})
	if err != nil {
		return err
	}
	description := fmt.Sprintf("クリップ %q をループ調整", clip.Name)
	return uc.replaceClip(clip, newClip, description, uc.reselectTrack(newClip), "")
}

// SmoothClip は選択中クリップの全トラックを平滑化する。
func (uc *MotionEditUsecase) SmoothClip(windowFraction float64) error {
	clip, err := uc.selectedClip()
	if err != nil {
		return err
	}
	if windowFraction <= 0 {
		windowFraction = motion.DefaultSmoothWindowFraction
	}
	newClip, err := mapTracksParallel(clip, func(oldTrack *motion.Track) (*motion.Track, error) {
		return motion.Smooth(oldTrack, windowFraction, clip.Duration, nil, nil)
	})
	if err != nil {
		return err
	}
	description := fmt.Sprintf("クリップ %q を平滑化", clip.Name)
	return uc.replaceClip(clip, newClip, description, uc.reselectTrack(newClip), "")
}

// SetClipDurationProportional は選択中クリップの長さを変更し、
// 全キーフレーム時刻を比例伸縮する。
func (uc *MotionEditUsecase) SetClipDurationProportional(newDuration float64) error {
	clip, err := uc.selectedClip()
	if err != nil {
		return err
	}
	if clip.Duration <= 0 {
		return fmt.Errorf("長さ0のクリップは伸縮できません: %q", clip.Name)
	}
	newClip, err := mapTracksParallel(clip, func(oldTrack *motion.Track) (*motion.Track, error) {
		return motion.SetDurationProportional(oldTrack, clip.Duration, newDuration)
	})
	if err != nil {
		return err
	}
	newClip.Duration = newDuration
	description := fmt.Sprintf("クリップ %q の長さを %.3f へ変更", clip.Name, newDuration)
	return uc.replaceClip(clip, newClip, description, uc.reselectTrack(newClip), "")
}

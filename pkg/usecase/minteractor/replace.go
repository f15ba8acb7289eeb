// 指示: miu200521358
package minteractor

import (
	"fmt"

	"github.com/miu200521358/mu_motion_edit/pkg/domain/motion"
)

// replaceClip は編集結果クリップの差し替えを1点で行う。
// 集合の入れ替え・選択の引き直し・履歴追記・編集回数の記録をまとめて行い、
// 失敗時は何も変更しない。continuousDetailが空なら独立した編集として数える。
func (uc *MotionEditUsecase) replaceClip(oldClip, newClip *motion.Clip,
	description string, newTrack *motion.Track, continuousDetail string) error {
	if uc == nil {
		return fmt.Errorf("ユースケースが未設定です")
	}
	if err := newClip.Validate(); err != nil {
		return fmt.Errorf("編集結果の検証に失敗しました: %w", err)
	}
	if err := uc.clipSet.Replace(oldClip, newClip); err != nil {
		return err
	}
	uc.selection.reset(newClip, newTrack)
	uc.editState.AddHistory(description)
	if continuousDetail == "" {
		uc.editState.SetEdited()
	} else {
		uc.editState.SetEditedContinuous(continuousDetail)
	}
	uc.notifier.OnClipReplaced(newClip.Name)
	if newTrack != nil {
		uc.notifier.OnTrackSelected(newTrack.Target, true)
	} else {
		uc.notifier.OnTrackSelected(motion.TargetRef{}, false)
	}
	return nil
}

// selectedClip は選択中クリップを返す。未選択ならエラー。
func (uc *MotionEditUsecase) selectedClip() (*motion.Clip, error) {
	clip := uc.selection.SelectedClip()
	if clip == nil {
		return nil, fmt.Errorf("クリップが選択されていません")
	}
	return clip, nil
}

// selectedTrack は選択中クリップとトラックを返す。未選択ならエラー。
func (uc *MotionEditUsecase) selectedTrack() (*motion.Clip, *motion.Track, error) {
	clip, err := uc.selectedClip()
	if err != nil {
		return nil, nil, err
	}
	track := uc.selection.SelectedTrack()
	if track == nil {
		return nil, nil, fmt.Errorf("トラックが選択されていません")
	}
	return clip, track, nil
}

// SelectClipByName は指定名のクリップを選択する。
func (uc *MotionEditUsecase) SelectClipByName(name string) error {
	clip := uc.clipSet.FindByName(name)
	if clip == nil {
		return fmt.Errorf("クリップ %q が見つかりません", name)
	}
	uc.selection.SelectClip(clip)
	return nil
}

// SelectTrack は選択中クリップ内のトラックを選択する。
func (uc *MotionEditUsecase) SelectTrack(target motion.TargetRef) error {
	if err := uc.selection.SelectTrack(target); err != nil {
		return err
	}
	uc.notifier.OnTrackSelected(target, true)
	return nil
}

// PreCheckpoint は進行中の連続編集を区切る。
func (uc *MotionEditUsecase) PreCheckpoint() {
	uc.editState.PreCheckpoint()
}

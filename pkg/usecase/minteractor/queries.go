// 指示: miu200521358
package minteractor

import (
	"sort"

	"github.com/miu200521358/mu_motion_edit/pkg/domain/motion"
)

// TrackItem はトラック一覧表示用の1行を表す。
type TrackItem struct {
	Target        motion.TargetRef
	KeyframeCount int
	EndTime       float64
}

// ListTracks は選択中クリップのトラック一覧を表示名順に返す。
func (uc *MotionEditUsecase) ListTracks() ([]TrackItem, error) {
	clip, err := uc.selectedClip()
	if err != nil {
		return nil, err
	}
	items := make([]TrackItem, 0, len(clip.Tracks))
	for _, track := range clip.Tracks {
		items = append(items, TrackItem{
			Target:        track.Target,
			KeyframeCount: track.Len(),
			EndTime:       track.EndTime(),
		})
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Target.Describe() < items[j].Target.Describe()
	})
	return items, nil
}

// ListKeyframeTimes は選択中トラックのキーフレーム時刻一覧を返す。
func (uc *MotionEditUsecase) ListKeyframeTimes() ([]float64, error) {
	_, track, err := uc.selectedTrack()
	if err != nil {
		return nil, err
	}
	return append([]float64(nil), track.Times...), nil
}

// History は編集内容の説明一覧を古い順に返す。
func (uc *MotionEditUsecase) History() []string {
	return uc.editState.History()
}

// CountUnsavedEdits は未保存編集回数を返す。
func (uc *MotionEditUsecase) CountUnsavedEdits() int {
	return uc.editState.CountUnsavedEdits()
}

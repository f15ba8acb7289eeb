// 指示: miu200521358
package minteractor

import (
	"fmt"

	"github.com/miu200521358/mu_motion_edit/pkg/domain/motion"
)

// Selection は編集対象のクリップとトラックの選択状態を表す。
// トラック参照は所有せず、クリップ差し替え時に必ず引き直される。
type Selection struct {
	clip  *motion.Clip
	track *motion.Track
}

// NewSelection は未選択状態を生成する。
func NewSelection() *Selection {
	return &Selection{}
}

// SelectedClip は選択中クリップを返す。未選択ならnil。
func (s *Selection) SelectedClip() *motion.Clip {
	if s == nil {
		return nil
	}
	return s.clip
}

// SelectedTrack は選択中トラックを返す。未選択ならnil。
func (s *Selection) SelectedTrack() *motion.Track {
	if s == nil {
		return nil
	}
	return s.track
}

// SelectClip はクリップを選択し、トラック選択を解除する。
func (s *Selection) SelectClip(clip *motion.Clip) {
	if s == nil {
		return
	}
	s.clip = clip
	s.track = nil
}

// SelectTrack は選択中クリップ内のトラックを対象で選択する。
func (s *Selection) SelectTrack(target motion.TargetRef) error {
	if s == nil {
		return fmt.Errorf("選択状態が未設定です")
	}
	if s.clip == nil {
		return fmt.Errorf("クリップが選択されていません")
	}
	track := s.clip.FindTrack(target)
	if track == nil {
		return fmt.Errorf("クリップ %q に対象 %s のトラックがありません",
			s.clip.Name, target.Describe())
	}
	s.track = track
	return nil
}

// DeselectTrack はトラック選択を解除する。
func (s *Selection) DeselectTrack() {
	if s == nil {
		return
	}
	s.track = nil
}

// reset はクリップ差し替え後の選択状態を設定する。
func (s *Selection) reset(newClip *motion.Clip, newTrack *motion.Track) {
	if s == nil {
		return
	}
	s.clip = newClip
	s.track = newTrack
}

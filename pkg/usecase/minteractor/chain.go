// 指示: miu200521358
package minteractor

import (
	"fmt"

	"github.com/miu200521358/mu_motion_edit/pkg/domain/motion"
)

// addClip は構築済みの新クリップを集合へ追加し、1回の編集として記録する。
func (uc *MotionEditUsecase) addClip(newClip *motion.Clip, description string) error {
	if err := uc.clipSet.Add(newClip); err != nil {
		return err
	}
	uc.editState.AddHistory(description)
	uc.editState.SetEdited()
	return nil
}

// ChainClips は2つのクリップを連結した新クリップを集合へ追加する。
func (uc *MotionEditUsecase) ChainClips(nameA, nameB, newName string) error {
	clipA := uc.clipSet.FindByName(nameA)
	if clipA == nil {
		return fmt.Errorf("クリップ %q が見つかりません", nameA)
	}
	clipB := uc.clipSet.FindByName(nameB)
	if clipB == nil {
		return fmt.Errorf("クリップ %q が見つかりません", nameB)
	}
	newClip, err := motion.ChainClips(clipA, clipB, newName)
	if err != nil {
		return err
	}
	description := fmt.Sprintf("クリップ %q と %q を連結して %q を作成", nameA, nameB, newName)
	return uc.addClip(newClip, description)
}

// ExtractClip は選択中クリップの指定区間を切り出した新クリップを集合へ追加する。
func (uc *MotionEditUsecase) ExtractClip(startTime, endTime float64, newName string) error {
	clip, err := uc.selectedClip()
	if err != nil {
		return err
	}
	newClip, err := motion.ExtractClip(clip, startTime, endTime, newName)
	if err != nil {
		return err
	}
	description := fmt.Sprintf("クリップ %q の区間 [%.3f, %.3f] を %q へ切り出し",
		clip.Name, startTime, endTime, newName)
	return uc.addClip(newClip, description)
}

// MixSource は合成対象のクリップ名とトラック対象の組を表す。
type MixSource struct {
	ClipName string
	Target   motion.TargetRef
}

// MixClips は複数クリップから選んだトラックを1つの新クリップへ合成して
// 集合へ追加する。対象が重複する場合は失敗する。
func (uc *MotionEditUsecase) MixClips(sources []MixSource, newName string) error {
	if len(sources) == 0 {
		return fmt.Errorf("合成対象が指定されていません")
	}
	entries := make([]motion.MixEntry, 0, len(sources))
	for _, source := range sources {
		clip := uc.clipSet.FindByName(source.ClipName)
		if clip == nil {
			return fmt.Errorf("クリップ %q が見つかりません", source.ClipName)
		}
		track := clip.FindTrack(source.Target)
		if track == nil {
			return fmt.Errorf("クリップ %q に対象 %s のトラックがありません",
				source.ClipName, source.Target.Describe())
		}
		entries = append(entries, motion.MixEntry{Track: track, Duration: clip.Duration})
	}
	newClip, err := motion.MixClip(entries, newName)
	if err != nil {
		return err
	}
	description := fmt.Sprintf("%d トラックを %q へ合成", len(entries), newName)
	return uc.addClip(newClip, description)
}

// DeleteClip は指定名のクリップを集合から取り除く。
// 選択中クリップを消した場合は選択も解除される。
func (uc *MotionEditUsecase) DeleteClip(name string) error {
	clip := uc.clipSet.FindByName(name)
	if clip == nil {
		return fmt.Errorf("クリップ %q が見つかりません", name)
	}
	if err := uc.clipSet.Remove(name); err != nil {
		return err
	}
	if uc.selection.SelectedClip() == clip {
		uc.selection.SelectClip(nil)
	}
	uc.editState.AddHistory(fmt.Sprintf("クリップ %q を削除", name))
	uc.editState.SetEdited()
	return nil
}

// RenameClip は選択中クリップの名前を変更する。
func (uc *MotionEditUsecase) RenameClip(newName string) error {
	clip, err := uc.selectedClip()
	if err != nil {
		return err
	}
	if newName == clip.Name {
		return nil
	}
	newClip, err := clip.Copy()
	if err != nil {
		return err
	}
	newClip.Name = newName
	description := fmt.Sprintf("クリップ %q を %q へ改名", clip.Name, newName)
	return uc.replaceClip(clip, newClip, description, uc.reselectTrack(newClip), "")
}

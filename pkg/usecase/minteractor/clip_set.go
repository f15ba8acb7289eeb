// 指示: miu200521358
package minteractor

import (
	"fmt"
	"sort"

	"github.com/miu200521358/mu_motion_edit/pkg/domain/motion"
)

// ClipSet は読み込み中モデルのクリップ集合を所有するコンテナを表す。
type ClipSet struct {
	clips []*motion.Clip
}

// NewClipSet は空のクリップ集合を生成する。
func NewClipSet() *ClipSet {
	return &ClipSet{clips: make([]*motion.Clip, 0)}
}

// Len はクリップ数を返す。
func (cs *ClipSet) Len() int {
	if cs == nil {
		return 0
	}
	return len(cs.clips)
}

// Add はクリップを追加する。名前は既存・予約名と重複できない。
func (cs *ClipSet) Add(clip *motion.Clip) error {
	if cs == nil {
		return fmt.Errorf("クリップ集合が未設定です")
	}
	if err := clip.Validate(); err != nil {
		return err
	}
	if cs.FindByName(clip.Name) != nil {
		return fmt.Errorf("クリップ名 %q は既に存在します", clip.Name)
	}
	cs.clips = append(cs.clips, clip)
	return nil
}

// FindByName は指定名のクリップを返す。無ければnil。
func (cs *ClipSet) FindByName(name string) *motion.Clip {
	if cs == nil {
		return nil
	}
	for _, clip := range cs.clips {
		if clip.Name == name {
			return clip
		}
	}
	return nil
}

// Replace はoldClipをnewClipへ入れ替える。差し替えはこの1点でのみ行う。
func (cs *ClipSet) Replace(oldClip, newClip *motion.Clip) error {
	if cs == nil {
		return fmt.Errorf("クリップ集合が未設定です")
	}
	if oldClip == nil || newClip == nil {
		return fmt.Errorf("差し替えクリップが未設定です")
	}
	if newClip.Name != oldClip.Name && cs.FindByName(newClip.Name) != nil {
		return fmt.Errorf("クリップ名 %q は既に存在します", newClip.Name)
	}
	for index, clip := range cs.clips {
		if clip == oldClip {
			cs.clips[index] = newClip
			return nil
		}
	}
	return fmt.Errorf("差し替え元クリップ %q が集合にありません", oldClip.Name)
}

// Remove は指定名のクリップを取り除く。
func (cs *ClipSet) Remove(name string) error {
	if cs == nil {
		return fmt.Errorf("クリップ集合が未設定です")
	}
	for index, clip := range cs.clips {
		if clip.Name == name {
			cs.clips = append(cs.clips[:index], cs.clips[index+1:]...)
			return nil
		}
	}
	return fmt.Errorf("クリップ %q が集合にありません", name)
}

// Names はクリップ名を辞書順に並べて返す。
func (cs *ClipSet) Names() []string {
	if cs == nil {
		return nil
	}
	names := make([]string, 0, len(cs.clips))
	for _, clip := range cs.clips {
		names = append(names, clip.Name)
	}
	sort.Strings(names)
	return names
}

// 指示: miu200521358
package motion

import (
	"fmt"

	"github.com/tiendc/go-deepcopy"
)

const (
	// BindPoseName はバインドポーズ擬似クリップの予約名。
	BindPoseName = "bind pose"
	// RetargetedPoseName はリターゲットポーズ擬似クリップの予約名。
	RetargetedPoseName = "retargeted pose"
)

// IsReservedClipName は予約クリップ名か否かを返す。
func IsReservedClipName(name string) bool {
	return name == BindPoseName || name == RetargetedPoseName
}

// Clip は名前付きのトラック集合を表す。
// Duration は全トラックの最終キーフレーム時刻以上でなければならない。
type Clip struct {
	Name     string
	Duration float64
	Tracks   []*Track
}

// NewClip は空のクリップを生成する。
func NewClip(name string, duration float64) *Clip {
	return &Clip{
		Name:     name,
		Duration: duration,
		Tracks:   make([]*Track, 0),
	}
}

// Validate はクリップ不変条件を検証する。
func (c *Clip) Validate() error {
	if c == nil {
		return fmt.Errorf("クリップが未設定です")
	}
	if c.Name == "" {
		return fmt.Errorf("クリップ名が空です")
	}
	if IsReservedClipName(c.Name) {
		return fmt.Errorf("クリップ名 %q は予約されています", c.Name)
	}
	if c.Duration < 0 {
		return fmt.Errorf("クリップ %q の長さが負です: %f", c.Name, c.Duration)
	}
	seen := make(map[TargetRef]struct{}, len(c.Tracks))
	for _, track := range c.Tracks {
		if err := track.Validate(); err != nil {
			return fmt.Errorf("クリップ %q: %w", c.Name, err)
		}
		if _, ok := seen[track.Target]; ok {
			return fmt.Errorf("クリップ %q に対象 %s のトラックが重複しています",
				c.Name, track.Target.Describe())
		}
		seen[track.Target] = struct{}{}
		if track.EndTime() > c.Duration+TimeEpsilon {
			return fmt.Errorf("クリップ %q の長さ %f がトラック %s の終端 %f より短いです",
				c.Name, c.Duration, track.Target.Describe(), track.EndTime())
		}
	}
	return nil
}

// Copy はクリップの複製を返す。
func (c *Clip) Copy() (*Clip, error) {
	if c == nil {
		return nil, fmt.Errorf("クリップが未設定です")
	}
	copied := &Clip{}
	if err := deepcopy.Copy(copied, c); err != nil {
		return nil, fmt.Errorf("クリップ複製に失敗しました: %w", err)
	}
	return copied, nil
}

// FindTrack は指定対象のトラックを返す。無ければnil。
func (c *Clip) FindTrack(target TargetRef) *Track {
	if c == nil {
		return nil
	}
	for _, track := range c.Tracks {
		if track.Target.Equals(target) {
			return track
		}
	}
	return nil
}

// TrackIndex は指定対象のトラックindexを返す。無ければ-1。
func (c *Clip) TrackIndex(target TargetRef) int {
	if c == nil {
		return -1
	}
	for index, track := range c.Tracks {
		if track.Target.Equals(target) {
			return index
		}
	}
	return -1
}

// ReplaceTrack はoldTrackをnewTrackへ差し替えた複製クリップを返す。
func (c *Clip) ReplaceTrack(oldTrack, newTrack *Track) (*Clip, error) {
	if c == nil {
		return nil, fmt.Errorf("クリップが未設定です")
	}
	if oldTrack == nil || newTrack == nil {
		return nil, fmt.Errorf("差し替えトラックが未設定です")
	}
	newClip, err := c.Copy()
	if err != nil {
		return nil, err
	}
	index := c.TrackIndex(oldTrack.Target)
	if index < 0 {
		return nil, fmt.Errorf("クリップ %q に対象 %s のトラックがありません",
			c.Name, oldTrack.Target.Describe())
	}
	newClip.Tracks[index] = newTrack
	if newTrack.EndTime() > newClip.Duration {
		newClip.Duration = newTrack.EndTime()
	}
	return newClip, nil
}

// Repair は読み込んだクリップの補修を行い、補修件数を返す。
// 各トラックの先頭時刻を0に揃え、同値時刻の重複キーフレームを除去する。
func (c *Clip) Repair() (int, error) {
	if c == nil {
		return 0, fmt.Errorf("クリップが未設定です")
	}
	repairCount := 0
	for index, track := range c.Tracks {
		zeroed, changed, err := ZeroFirst(track)
		if err != nil {
			return repairCount, err
		}
		if changed {
			repairCount++
		}
		deduped, removed, err := RemoveRepeats(zeroed)
		if err != nil {
			return repairCount, err
		}
		if removed > 0 {
			repairCount++
		}
		c.Tracks[index] = deduped
	}
	for _, track := range c.Tracks {
		if track.EndTime() > c.Duration {
			c.Duration = track.EndTime()
		}
	}
	return repairCount, nil
}

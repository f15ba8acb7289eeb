// 指示: miu200521358
package motion

import (
	"errors"
	"fmt"
)

// ErrMixTargetConflict は合成対象のトラック同士が同一対象を指す状態を表す。
var ErrMixTargetConflict = errors.New("合成対象のトラックが同一対象を指しています")

// ExtractClip は指定区間[startTime,endTime]を切り出した新クリップを返す。
// 区間端にキーフレームが無いトラックは補間値で端キーフレームを作り、
// 全トラックの時刻を0始まりへ詰め直す。
func ExtractClip(oldClip *Clip, startTime, endTime float64, newName string) (*Clip, error) {
	if oldClip == nil {
		return nil, fmt.Errorf("クリップが未設定です")
	}
	if newName == "" || IsReservedClipName(newName) {
		return nil, fmt.Errorf("切り出し先クリップ名が不正です: %q", newName)
	}
	if startTime < 0 || endTime <= startTime || endTime > oldClip.Duration+TimeEpsilon {
		return nil, fmt.Errorf("切り出し区間が不正です: start=%f end=%f 長さ=%f",
			startTime, endTime, oldClip.Duration)
	}

	newClip := NewClip(newName, endTime-startTime)
	for _, oldTrack := range oldClip.Tracks {
		truncated, err := Truncate(oldTrack, endTime)
		if err != nil {
			return nil, err
		}
		beheaded, err := Behead(truncated, startTime)
		if err != nil {
			return nil, err
		}
		newClip.Tracks = append(newClip.Tracks, beheaded)
	}
	return newClip, nil
}

// ChainClips はclipAの後ろへclipBを連結した新クリップを返す。
// 片側にしか無い対象のトラックも全区間を覆うよう補われる。
func ChainClips(clipA, clipB *Clip, newName string) (*Clip, error) {
	if clipA == nil || clipB == nil {
		return nil, fmt.Errorf("連結対象のクリップが未設定です")
	}
	if newName == "" || IsReservedClipName(newName) {
		return nil, fmt.Errorf("連結先クリップ名が不正です: %q", newName)
	}

	durationA := clipA.Duration
	durationB := clipB.Duration
	newClip := NewClip(newName, durationA+durationB)

	// A側の並びを先に保ち、B側のみの対象を後へ足す
	for _, trackA := range clipA.Tracks {
		trackB := clipB.FindTrack(trackA.Target)
		chained, err := ChainTracks(trackA, trackB, durationA, durationB)
		if err != nil {
			return nil, fmt.Errorf("対象 %s の連結に失敗しました: %w",
				trackA.Target.Describe(), err)
		}
		newClip.Tracks = append(newClip.Tracks, chained)
	}
	for _, trackB := range clipB.Tracks {
		if clipA.FindTrack(trackB.Target) != nil {
			continue
		}
		chained, err := ChainTracks(nil, trackB, durationA, durationB)
		if err != nil {
			return nil, fmt.Errorf("対象 %s の連結に失敗しました: %w",
				trackB.Target.Describe(), err)
		}
		newClip.Tracks = append(newClip.Tracks, chained)
	}
	return newClip, nil
}

// MixEntry は合成元トラックと、その所属クリップの長さの組を表す。
type MixEntry struct {
	Track    *Track
	Duration float64
}

// MixClip は複数クリップから選んだトラック群を1つの新クリップへ合成する。
// 対象が重複する場合はErrMixTargetConflict。長さは合成元クリップ長の最大値。
func MixClip(entries []MixEntry, newName string) (*Clip, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("合成対象のトラックがありません")
	}
	if newName == "" || IsReservedClipName(newName) {
		return nil, fmt.Errorf("合成先クリップ名が不正です: %q", newName)
	}

	maxDuration := 0.0
	seen := make(map[TargetRef]struct{}, len(entries))
	newClip := NewClip(newName, 0)
	for _, entry := range entries {
		if entry.Track == nil {
			return nil, fmt.Errorf("合成対象のトラックが未設定です")
		}
		if _, ok := seen[entry.Track.Target]; ok {
			return nil, fmt.Errorf("対象 %s: %w",
				entry.Track.Target.Describe(), ErrMixTargetConflict)
		}
		seen[entry.Track.Target] = struct{}{}
		copied, err := entry.Track.Copy()
		if err != nil {
			return nil, err
		}
		newClip.Tracks = append(newClip.Tracks, copied)
		if entry.Duration > maxDuration {
			maxDuration = entry.Duration
		}
		if copied.EndTime() > maxDuration {
			maxDuration = copied.EndTime()
		}
	}
	newClip.Duration = maxDuration
	return newClip, nil
}

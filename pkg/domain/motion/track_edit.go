// 指示: miu200521358
package motion

import (
	"fmt"

	"github.com/miu200521358/mu_motion_edit/pkg/domain/mmath"
)

// InsertKeyframe は指定時刻へキーフレームを挿入した新トラックを返す。
// 時刻0以下は不可、同時刻のキーフレームが既にある場合はErrKeyframeExists。
func InsertKeyframe(oldTrack *Track, time float64, transform mmath.Transform) (*Track, error) {
	if oldTrack == nil {
		return nil, fmt.Errorf("トラックが未設定です")
	}
	if time <= 0 {
		return nil, fmt.Errorf("挿入時刻は0より大きい必要があります: time=%f", time)
	}
	if oldTrack.FindKeyframeIndex(time) >= 0 {
		return nil, fmt.Errorf("時刻 %f: %w", time, ErrKeyframeExists)
	}

	oldCount := oldTrack.Len()
	newTrack := newTrackLike(oldTrack, oldCount+1)
	newIndex := 0
	inserted := false
	for oldIndex := 0; oldIndex < oldCount; oldIndex++ {
		if !inserted && oldTrack.Times[oldIndex] > time {
			setKeyframe(newTrack, newIndex, time, transform)
			inserted = true
			newIndex++
		}
		copyKeyframe(newTrack, newIndex, oldTrack, oldIndex)
		newIndex++
	}
	if !inserted {
		setKeyframe(newTrack, newIndex, time, transform)
	}
	return newTrack, nil
}

// DeleteRange はstartIndexからcount個のキーフレームを削除した新トラックを返す。
// 先頭キーフレームは削除できない。
func DeleteRange(oldTrack *Track, startIndex, count int) (*Track, error) {
	if oldTrack == nil {
		return nil, fmt.Errorf("トラックが未設定です")
	}
	if count < 1 {
		return nil, fmt.Errorf("削除個数は1以上の必要があります: count=%d", count)
	}
	if startIndex < 1 {
		return nil, fmt.Errorf("startIndex=%d: %w", startIndex, ErrFirstKeyframeImmutable)
	}
	oldCount := oldTrack.Len()
	if startIndex+count > oldCount {
		return nil, fmt.Errorf("削除範囲が末尾を越えています: startIndex=%d count=%d 総数=%d",
			startIndex, count, oldCount)
	}

	newTrack := newTrackLike(oldTrack, oldCount-count)
	newIndex := 0
	for oldIndex := 0; oldIndex < oldCount; oldIndex++ {
		if oldIndex >= startIndex && oldIndex < startIndex+count {
			continue
		}
		copyKeyframe(newTrack, newIndex, oldTrack, oldIndex)
		newIndex++
	}
	return newTrack, nil
}

// Reduce はキーフレームをfactor個ごとに間引いた新トラックを返す。
// 先頭と末尾のキーフレームは常に残す。
func Reduce(oldTrack *Track, factor int) (*Track, error) {
	if oldTrack == nil {
		return nil, fmt.Errorf("トラックが未設定です")
	}
	if factor < 2 {
		return nil, fmt.Errorf("間引き係数は2以上の必要があります: factor=%d", factor)
	}

	oldCount := oldTrack.Len()
	lastIndex := oldCount - 1
	keepIndexes := make([]int, 0, oldCount/factor+2)
	for oldIndex := 0; oldIndex < oldCount; oldIndex++ {
		if oldIndex%factor == 0 || oldIndex == lastIndex {
			keepIndexes = append(keepIndexes, oldIndex)
		}
	}

	newTrack := newTrackLike(oldTrack, len(keepIndexes))
	for newIndex, oldIndex := range keepIndexes {
		copyKeyframe(newTrack, newIndex, oldTrack, oldIndex)
	}
	return newTrack, nil
}

// ReplaceKeyframe は指定indexのキーフレーム値を差し替えた新トラックを返す。
func ReplaceKeyframe(oldTrack *Track, index int, transform mmath.Transform) (*Track, error) {
	if oldTrack == nil {
		return nil, fmt.Errorf("トラックが未設定です")
	}
	if index < 0 || index >= oldTrack.Len() {
		return nil, fmt.Errorf("キーフレームindexが範囲外です: index=%d count=%d",
			index, oldTrack.Len())
	}
	newTrack, err := oldTrack.Copy()
	if err != nil {
		return nil, err
	}
	setKeyframe(newTrack, index, newTrack.Times[index], transform)
	return newTrack, nil
}

// SetFrameTime は指定indexのキーフレーム時刻を変更した新トラックを返す。
// 先頭キーフレームは移動できず、新時刻は前後キーフレームの間に収まる必要がある。
func SetFrameTime(oldTrack *Track, index int, newTime float64) (*Track, error) {
	if oldTrack == nil {
		return nil, fmt.Errorf("トラックが未設定です")
	}
	count := oldTrack.Len()
	if index < 0 || index >= count {
		return nil, fmt.Errorf("キーフレームindexが範囲外です: index=%d count=%d", index, count)
	}
	if index == 0 {
		return nil, fmt.Errorf("index=0: %w", ErrFirstKeyframeImmutable)
	}
	if newTime <= oldTrack.Times[index-1] {
		return nil, fmt.Errorf("新時刻 %f が前のキーフレーム %f 以下です",
			newTime, oldTrack.Times[index-1])
	}
	if index+1 < count && newTime >= oldTrack.Times[index+1] {
		return nil, fmt.Errorf("新時刻 %f が次のキーフレーム %f 以上です",
			newTime, oldTrack.Times[index+1])
	}
	newTrack, err := oldTrack.Copy()
	if err != nil {
		return nil, err
	}
	newTrack.Times[index] = newTime
	return newTrack, nil
}

// Reverse はキーフレーム順を反転した新トラックを返す。
// 各時刻は終端時刻から引き直される。
func Reverse(oldTrack *Track) (*Track, error) {
	if oldTrack == nil {
		return nil, fmt.Errorf("トラックが未設定です")
	}
	oldCount := oldTrack.Len()
	endTime := oldTrack.EndTime()
	newTrack := newTrackLike(oldTrack, oldCount)
	for oldIndex := 0; oldIndex < oldCount; oldIndex++ {
		newIndex := oldCount - 1 - oldIndex
		copyKeyframe(newTrack, newIndex, oldTrack, oldIndex)
		newTrack.Times[newIndex] = endTime - oldTrack.Times[oldIndex]
	}
	return newTrack, nil
}

// SetDurationProportional は全時刻を新旧長さ比で伸縮した新トラックを返す。
func SetDurationProportional(oldTrack *Track, oldDuration, newDuration float64) (*Track, error) {
	if oldTrack == nil {
		return nil, fmt.Errorf("トラックが未設定です")
	}
	if oldDuration <= 0 {
		return nil, fmt.Errorf("旧長さは0より大きい必要があります: %f", oldDuration)
	}
	if newDuration <= 0 {
		return nil, fmt.Errorf("新長さは0より大きい必要があります: %f", newDuration)
	}
	scale := newDuration / oldDuration
	newTrack, err := oldTrack.Copy()
	if err != nil {
		return nil, err
	}
	for index := range newTrack.Times {
		newTrack.Times[index] *= scale
	}
	return newTrack, nil
}

// RemoveRepeats は同値時刻の重複キーフレームを除去した新トラックと除去数を返す。
// 重複時は先に現れたキーフレームを残す。
func RemoveRepeats(oldTrack *Track) (*Track, int, error) {
	if oldTrack == nil {
		return nil, 0, fmt.Errorf("トラックが未設定です")
	}
	oldCount := oldTrack.Len()
	keepIndexes := make([]int, 0, oldCount)
	for oldIndex := 0; oldIndex < oldCount; oldIndex++ {
		if oldIndex > 0 && oldTrack.Times[oldIndex]-oldTrack.Times[oldIndex-1] <= TimeEpsilon {
			continue
		}
		keepIndexes = append(keepIndexes, oldIndex)
	}
	removed := oldCount - len(keepIndexes)
	if removed == 0 {
		newTrack, err := oldTrack.Copy()
		return newTrack, 0, err
	}
	newTrack := newTrackLike(oldTrack, len(keepIndexes))
	for newIndex, oldIndex := range keepIndexes {
		copyKeyframe(newTrack, newIndex, oldTrack, oldIndex)
	}
	return newTrack, removed, nil
}

// ZeroFirst は先頭キーフレーム時刻を0に揃えた新トラックと変更有無を返す。
func ZeroFirst(oldTrack *Track) (*Track, bool, error) {
	if oldTrack == nil {
		return nil, false, fmt.Errorf("トラックが未設定です")
	}
	newTrack, err := oldTrack.Copy()
	if err != nil {
		return nil, false, err
	}
	if newTrack.Len() == 0 || newTrack.Times[0] == 0 {
		return newTrack, false, nil
	}
	newTrack.Times[0] = 0
	return newTrack, true, nil
}

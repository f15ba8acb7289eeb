// 指示: miu200521358
package motion

import (
	"fmt"

	"github.com/miu200521358/mu_motion_edit/pkg/domain/mmath"
)

// Behead は指定時刻より前を切り落とし、残りを時刻0始まりに詰め直した新トラックを返す。
// 指定時刻に一致するキーフレームが無い場合は補間値で先頭キーフレームを作る。
func Behead(oldTrack *Track, newStartTime float64) (*Track, error) {
	if oldTrack == nil {
		return nil, fmt.Errorf("トラックが未設定です")
	}
	if newStartTime < 0 {
		return nil, fmt.Errorf("切り出し開始時刻が負です: %f", newStartTime)
	}
	if newStartTime == 0 {
		return oldTrack.Copy()
	}

	oldCount := oldTrack.Len()
	firstKeep := oldCount
	for oldIndex := 0; oldIndex < oldCount; oldIndex++ {
		if oldTrack.Times[oldIndex] > newStartTime+TimeEpsilon {
			firstKeep = oldIndex
			break
		}
	}
	startIndex := oldTrack.FindKeyframeIndex(newStartTime)

	newCount := oldCount - firstKeep + 1
	newTrack := newTrackLike(oldTrack, newCount)
	if startIndex >= 0 {
		copyKeyframe(newTrack, 0, oldTrack, startIndex)
	} else {
		transform, err := Interpolate(oldTrack, newStartTime)
		if err != nil {
			return nil, err
		}
		setKeyframe(newTrack, 0, newStartTime, transform)
	}
	newTrack.Times[0] = 0
	for newIndex := 1; newIndex < newCount; newIndex++ {
		oldIndex := firstKeep + newIndex - 1
		copyKeyframe(newTrack, newIndex, oldTrack, oldIndex)
		newTrack.Times[newIndex] = oldTrack.Times[oldIndex] - newStartTime
	}
	return newTrack, nil
}

// Truncate は指定時刻より後を切り落とした新トラックを返す。
// 指定時刻に一致するキーフレームが無い場合は補間値で終端キーフレームを作る。
func Truncate(oldTrack *Track, endTime float64) (*Track, error) {
	if oldTrack == nil {
		return nil, fmt.Errorf("トラックが未設定です")
	}
	if endTime < 0 {
		return nil, fmt.Errorf("切り出し終了時刻が負です: %f", endTime)
	}

	oldCount := oldTrack.Len()
	keepCount := 0
	for oldIndex := 0; oldIndex < oldCount; oldIndex++ {
		if oldTrack.Times[oldIndex] > endTime+TimeEpsilon {
			break
		}
		keepCount++
	}
	if keepCount == 0 {
		return nil, fmt.Errorf("切り出し終了時刻 %f が先頭キーフレーム %f より前です",
			endTime, oldTrack.Times[0])
	}

	endIndex := oldTrack.FindKeyframeIndex(endTime)
	newCount := keepCount
	if endIndex < 0 && endTime > oldTrack.Times[keepCount-1]+TimeEpsilon &&
		endTime < oldTrack.EndTime() {
		newCount++
	}
	newTrack := newTrackLike(oldTrack, newCount)
	for newIndex := 0; newIndex < keepCount; newIndex++ {
		copyKeyframe(newTrack, newIndex, oldTrack, newIndex)
	}
	if newCount > keepCount {
		transform, err := Interpolate(oldTrack, endTime)
		if err != nil {
			return nil, err
		}
		setKeyframe(newTrack, keepCount, endTime, transform)
	}
	return newTrack, nil
}

// DelayAll は全キーフレーム時刻へ遅延を加算した新トラックを返す。
func DelayAll(oldTrack *Track, delay float64) (*Track, error) {
	if oldTrack == nil {
		return nil, fmt.Errorf("トラックが未設定です")
	}
	if delay < 0 {
		return nil, fmt.Errorf("遅延が負です: %f", delay)
	}
	newTrack, err := oldTrack.Copy()
	if err != nil {
		return nil, err
	}
	for index := range newTrack.Times {
		newTrack.Times[index] += delay
	}
	return newTrack, nil
}

// Wrap はループ再生向けに始端と終端を同値へ揃えた新トラックを返す。
// 終端(時刻=長さ)のキーフレームがある場合は始端値と終端値をendWeightで
// 混合した値を両端へ書き込む。無い場合は始端値をそのまま終端へ複製して追加し、
// endWeightは使われない。
func Wrap(oldTrack *Track, duration, endWeight float64) (*Track, error) {
	if oldTrack == nil {
		return nil, fmt.Errorf("トラックが未設定です")
	}
	if duration <= 0 {
		return nil, fmt.Errorf("長さは0より大きい必要があります: %f", duration)
	}
	if endWeight < 0 || endWeight > 1 {
		return nil, fmt.Errorf("終端重みは0〜1の必要があります: %f", endWeight)
	}
	if oldTrack.EndTime() > duration+TimeEpsilon {
		return nil, fmt.Errorf("トラック終端 %f が長さ %f を越えています",
			oldTrack.EndTime(), duration)
	}

	oldCount := oldTrack.Len()
	first, err := oldTrack.TransformAt(0)
	if err != nil {
		return nil, err
	}

	endIndex := oldTrack.FindKeyframeIndex(duration)
	var newTrack *Track
	wrapped := first
	if endIndex < 0 {
		// 終端キーフレームを始端値の複製として追加する
		endIndex = oldCount
		newTrack = newTrackLike(oldTrack, oldCount+1)
		for oldIndex := 0; oldIndex < oldCount; oldIndex++ {
			copyKeyframe(newTrack, oldIndex, oldTrack, oldIndex)
		}
	} else {
		end, err := oldTrack.TransformAt(endIndex)
		if err != nil {
			return nil, err
		}
		wrapped.Translation = first.Translation.Lerped(end.Translation, endWeight)
		wrapped.Rotation = first.Rotation.Slerped(end.Rotation, endWeight)
		wrapped.Scale = first.Scale.Lerped(end.Scale, endWeight)
		newTrack = newTrackLike(oldTrack, oldCount)
		for oldIndex := 0; oldIndex < oldCount; oldIndex++ {
			copyKeyframe(newTrack, oldIndex, oldTrack, oldIndex)
		}
	}
	setKeyframe(newTrack, 0, 0, wrapped)
	setKeyframe(newTrack, endIndex, duration, wrapped)
	return newTrack, nil
}

// ChainTracks は同一対象の2トラックを連結した新トラックを返す。
// trackAは先行区間[0,durationA]へ切り詰め、trackBはdurationAだけ遅延させる。
// 片側しか無い場合はnilを渡してよく、A側のみは終端まで保持、B側のみは
// 開始値を時刻0へ複製して全区間を覆う。B側のみの前区間は定義済み
// サンプルが無いため、単位変換ではなく開始値の保持で埋める(遅延開始時の
// 跳ねを避ける)。
func ChainTracks(trackA, trackB *Track, durationA, durationB float64) (*Track, error) {
	if trackA == nil && trackB == nil {
		return nil, fmt.Errorf("連結対象のトラックがありません")
	}
	if durationA < 0 || durationB < 0 {
		return nil, fmt.Errorf("連結区間長が負です: durationA=%f durationB=%f",
			durationA, durationB)
	}
	totalDuration := durationA + durationB

	if trackB == nil {
		// A側のみ: 切り詰めた上で最終値を終端まで保持する
		heldTrack, err := Truncate(trackA, durationA)
		if err != nil {
			return nil, err
		}
		if totalDuration-heldTrack.EndTime() <= TimeEpsilon {
			return heldTrack, nil
		}
		last, err := heldTrack.TransformAt(heldTrack.Len() - 1)
		if err != nil {
			return nil, err
		}
		return appendKeyframe(heldTrack, totalDuration, last)
	}

	delayedTrack, err := DelayAll(trackB, durationA)
	if err != nil {
		return nil, err
	}
	if trackA == nil {
		// B側のみ: 開始値を時刻0へ複製して前区間を覆う
		if durationA <= TimeEpsilon {
			return delayedTrack, nil
		}
		first, err := delayedTrack.TransformAt(0)
		if err != nil {
			return nil, err
		}
		return prependKeyframe(delayedTrack, 0, first)
	}

	headTrack, err := Truncate(trackA, durationA)
	if err != nil {
		return nil, err
	}
	// 継ぎ目で時刻が衝突する場合はB側の値を採る
	headCount := headTrack.Len()
	if delayedTrack.Times[0]-headTrack.EndTime() <= TimeEpsilon {
		headCount--
	}
	if headCount < 0 {
		headCount = 0
	}
	newTrack := newTrackLike(headTrack, headCount+delayedTrack.Len())
	for index := 0; index < headCount; index++ {
		copyKeyframe(newTrack, index, headTrack, index)
	}
	for index := 0; index < delayedTrack.Len(); index++ {
		copyKeyframe(newTrack, headCount+index, delayedTrack, index)
	}
	return newTrack, nil
}

// appendKeyframe は末尾へキーフレームを追加した新トラックを返す。
func appendKeyframe(oldTrack *Track, time float64, transform mmath.Transform) (*Track, error) {
	oldCount := oldTrack.Len()
	newTrack := newTrackLike(oldTrack, oldCount+1)
	for index := 0; index < oldCount; index++ {
		copyKeyframe(newTrack, index, oldTrack, index)
	}
	setKeyframe(newTrack, oldCount, time, transform)
	return newTrack, nil
}

// prependKeyframe は先頭へキーフレームを追加した新トラックを返す。
func prependKeyframe(oldTrack *Track, time float64, transform mmath.Transform) (*Track, error) {
	oldCount := oldTrack.Len()
	newTrack := newTrackLike(oldTrack, oldCount+1)
	setKeyframe(newTrack, 0, time, transform)
	for index := 0; index < oldCount; index++ {
		copyKeyframe(newTrack, index+1, oldTrack, index)
	}
	return newTrack, nil
}

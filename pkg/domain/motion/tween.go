// 指示: miu200521358
package motion

import (
	"fmt"

	"github.com/miu200521358/mu_motion_edit/pkg/domain/mmath"
)

// Interpolate は指定時刻のトラック補間値を返す。
// 時刻0以下と単一キーフレームは先頭値、終端キーフレーム以降は末尾値へクランプする。
// 中間は平行移動・スケールを線形、回転を最短経路の球面線形で補間する。
func Interpolate(track *Track, time float64) (mmath.Transform, error) {
	if track == nil {
		return mmath.NewTransform(), fmt.Errorf("トラックが未設定です")
	}
	count := track.Len()
	if count == 0 {
		return mmath.NewTransform(), fmt.Errorf("トラック %s にキーフレームがありません",
			track.Target.Describe())
	}
	if time <= 0 || count == 1 {
		return track.TransformAt(0)
	}
	if time >= track.Times[count-1] {
		return track.TransformAt(count - 1)
	}

	// timeを挟む直前のキーフレームを探す
	prevIndex := 0
	for index := 1; index < count; index++ {
		if track.Times[index] > time {
			break
		}
		prevIndex = index
	}
	prev, err := track.TransformAt(prevIndex)
	if err != nil {
		return mmath.NewTransform(), err
	}
	if time-track.Times[prevIndex] <= TimeEpsilon {
		return prev, nil
	}
	next, err := track.TransformAt(prevIndex + 1)
	if err != nil {
		return mmath.NewTransform(), err
	}

	span := track.Times[prevIndex+1] - track.Times[prevIndex]
	t := (time - track.Times[prevIndex]) / span
	result := mmath.NewTransform()
	result.Translation = prev.Translation.Lerped(next.Translation, t)
	result.Rotation = prev.Rotation.Slerped(next.Rotation, t)
	result.Scale = prev.Scale.Lerped(next.Scale, t)
	return result, nil
}

// ResampleTimes は指定時刻列でトラックを再サンプリングした新トラックを返す。
func ResampleTimes(oldTrack *Track, times []float64) (*Track, error) {
	if oldTrack == nil {
		return nil, fmt.Errorf("トラックが未設定です")
	}
	if len(times) < 1 {
		return nil, fmt.Errorf("再サンプリング時刻列が空です")
	}
	newTrack := newTrackLike(oldTrack, len(times))
	for index, time := range times {
		transform, err := Interpolate(oldTrack, time)
		if err != nil {
			return nil, err
		}
		setKeyframe(newTrack, index, time, transform)
	}
	return newTrack, nil
}

// ResampleAtRate は指定レート(fps)の等間隔グリッドで再サンプリングした新トラックを返す。
// グリッドは時刻0から長さまでを含み、端数が残る場合は長さ時点のキーフレームを補う。
func ResampleAtRate(oldTrack *Track, sampleRate, duration float64) (*Track, error) {
	if oldTrack == nil {
		return nil, fmt.Errorf("トラックが未設定です")
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("サンプリングレートは0より大きい必要があります: %f", sampleRate)
	}
	if duration < 0 {
		return nil, fmt.Errorf("長さが負です: %f", duration)
	}
	interval := 1.0 / sampleRate
	times := make([]float64, 0, int(duration*sampleRate)+2)
	for time := 0.0; time <= duration+TimeEpsilon; time += interval {
		times = append(times, time)
	}
	if duration-times[len(times)-1] > TimeEpsilon {
		times = append(times, duration)
	}
	return ResampleTimes(oldTrack, times)
}

// ResampleToNumber は[0,長さ]を等分するcount個の時刻で再サンプリングした新トラックを返す。
func ResampleToNumber(oldTrack *Track, count int, duration float64) (*Track, error) {
	if oldTrack == nil {
		return nil, fmt.Errorf("トラックが未設定です")
	}
	if count < 2 {
		return nil, fmt.Errorf("サンプル数は2以上の必要があります: count=%d", count)
	}
	if duration <= 0 {
		return nil, fmt.Errorf("長さは0より大きい必要があります: %f", duration)
	}
	times := make([]float64, count)
	for index := 0; index < count; index++ {
		times[index] = duration * float64(index) / float64(count-1)
	}
	return ResampleTimes(oldTrack, times)
}

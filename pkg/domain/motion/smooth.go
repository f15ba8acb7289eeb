// 指示: miu200521358
package motion

import (
	"fmt"
	"math"

	"github.com/miu200521358/mu_motion_edit/pkg/domain/mmath"
)

const (
	// DefaultSmoothWindowFraction は平滑化窓幅の既定値(クリップ長に対する割合)。
	DefaultSmoothWindowFraction = 0.2
)

// VectorFilter はベクトル列をループ前提で平滑化する関数を表す。
// halfWidthは窓幅の半分(秒)。
type VectorFilter func(times []float64, values []mmath.Vec3, halfWidth, duration float64) []mmath.Vec3

// RotationFilter は回転列をループ前提で平滑化する関数を表す。
// halfWidthは窓幅の半分(秒)。
type RotationFilter func(times []float64, values []mmath.Quaternion, halfWidth, duration float64) []mmath.Quaternion

// loopDistance はループ前提での2時刻間の最短距離を返す。
func loopDistance(timeA, timeB, duration float64) float64 {
	distance := math.Abs(timeA - timeB)
	wrapped := duration - distance
	if wrapped < distance {
		return wrapped
	}
	return distance
}

// windowIndexes は中心時刻から窓幅半分以内にある時刻のindex一覧を返す。
func windowIndexes(times []float64, centerTime, halfWidth, duration float64) []int {
	indexes := make([]int, 0, len(times))
	for index, time := range times {
		if loopDistance(centerTime, time, duration) <= halfWidth+TimeEpsilon {
			indexes = append(indexes, index)
		}
	}
	return indexes
}

// SmoothVectors は窓内の算術平均でベクトル列を平滑化する既定フィルタ。
func SmoothVectors(times []float64, values []mmath.Vec3, halfWidth, duration float64) []mmath.Vec3 {
	smoothed := make([]mmath.Vec3, len(values))
	for index := range values {
		indexes := windowIndexes(times, times[index], halfWidth, duration)
		smoothed[index] = averageVec3(values, indexes)
	}
	return smoothed
}

// SmoothRotations は窓内の回転を半球を揃えた成分平均で平滑化する既定フィルタ。
func SmoothRotations(times []float64, values []mmath.Quaternion, halfWidth, duration float64) []mmath.Quaternion {
	smoothed := make([]mmath.Quaternion, len(values))
	for index := range values {
		indexes := windowIndexes(times, times[index], halfWidth, duration)
		smoothed[index] = averageQuaternion(values, indexes, values[index])
	}
	return smoothed
}

// Smooth はループ対応の窓平均でトラックを平滑化した新トラックを返す。
// 窓幅はwindowFraction×durationで、フィルタをnilにすると既定の
// SmoothRotations / SmoothVectorsを使う。キーフレーム時刻は変えない。
func Smooth(oldTrack *Track, windowFraction, duration float64,
	rotationFilter RotationFilter, vectorFilter VectorFilter) (*Track, error) {
	if oldTrack == nil {
		return nil, fmt.Errorf("トラックが未設定です")
	}
	if windowFraction <= 0 || windowFraction > 1 {
		return nil, fmt.Errorf("窓幅割合は0より大きく1以下の必要があります: %f", windowFraction)
	}
	if duration <= 0 {
		return nil, fmt.Errorf("長さは0より大きい必要があります: %f", duration)
	}
	if oldTrack.EndTime() > duration+TimeEpsilon {
		return nil, fmt.Errorf("トラック終端 %f が長さ %f を越えています",
			oldTrack.EndTime(), duration)
	}
	if rotationFilter == nil {
		rotationFilter = SmoothRotations
	}
	if vectorFilter == nil {
		vectorFilter = SmoothVectors
	}

	count := oldTrack.Len()
	if count < 3 {
		return oldTrack.Copy()
	}
	halfWidth := windowFraction * duration / 2

	newTrack := newTrackLike(oldTrack, count)
	copy(newTrack.Times, oldTrack.Times)
	if newTrack.Translations != nil {
		newTrack.Translations = vectorFilter(oldTrack.Times, oldTrack.Translations, halfWidth, duration)
	}
	if newTrack.Scales != nil {
		newTrack.Scales = vectorFilter(oldTrack.Times, oldTrack.Scales, halfWidth, duration)
	}
	if newTrack.Rotations != nil {
		newTrack.Rotations = rotationFilter(oldTrack.Times, oldTrack.Rotations, halfWidth, duration)
	}
	return newTrack, nil
}

// averageVec3 は指定indexesのベクトル算術平均を返す。
func averageVec3(values []mmath.Vec3, indexes []int) mmath.Vec3 {
	if len(indexes) == 0 {
		return mmath.ZERO_VEC3
	}
	sum := mmath.ZERO_VEC3
	for _, index := range indexes {
		sum = sum.Added(values[index])
	}
	return sum.MuledScalar(1.0 / float64(len(indexes)))
}

// averageQuaternion は中心回転と同じ半球へ揃えた上で成分平均を正規化して返す。
func averageQuaternion(values []mmath.Quaternion, indexes []int, center mmath.Quaternion) mmath.Quaternion {
	if len(indexes) == 0 {
		return center
	}
	sum := mmath.NewQuaternion()
	sum.W = 0
	for _, index := range indexes {
		value := values[index]
		if center.Dot(value) < 0 {
			value = value.Negated()
		}
		sum.W += value.W
		sum.V = sum.V.Add(value.V)
	}
	if sum.Len() <= 1e-8 {
		return center
	}
	return sum.Normalized()
}

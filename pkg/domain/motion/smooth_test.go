// 指示: miu200521358
package motion

import (
	"testing"

	"github.com/miu200521358/mu_motion_edit/pkg/domain/mmath"
)

func TestLoopDistance(t *testing.T) {
	if got := loopDistance(0.1, 1.9, 2.0); got != 0.2 {
		t.Fatalf("ループ距離が不正: got=%f want=0.2", got)
	}
	if got := loopDistance(0.5, 1.0, 2.0); got != 0.5 {
		t.Fatalf("直線距離が不正: got=%f want=0.5", got)
	}
}

func TestSmoothConstantTrack(t *testing.T) {
	track := newTestTrack([]float64{0, 0.5, 1.0, 1.5, 2.0})
	constant := mmath.NewVec3(1, 2, 3)
	for index := range track.Translations {
		track.Translations[index] = constant
		track.Rotations[index] = mmath.NewQuaternionFromDegrees(0, 30, 0)
	}

	newTrack, err := Smooth(track, 0.5, 2.0, nil, nil)
	if err != nil {
		t.Fatalf("平滑化に失敗: %v", err)
	}
	for index := range newTrack.Translations {
		if !newTrack.Translations[index].NearEquals(constant, 1e-10) {
			t.Fatalf("定数トラックが変化した: index=%d value=%v",
				index, newTrack.Translations[index])
		}
		if !newTrack.Rotations[index].NearEquals(track.Rotations[index], 1e-9) {
			t.Fatalf("定数回転が変化した: index=%d", index)
		}
	}
}

func TestSmoothDampsSpike(t *testing.T) {
	track := newTestTrack([]float64{0, 0.5, 1.0, 1.5, 2.0})
	for index := range track.Translations {
		track.Translations[index] = mmath.ZERO_VEC3
	}
	track.Translations[2] = mmath.NewVec3(0, 9, 0)

	newTrack, err := Smooth(track, 0.5, 2.0, nil, nil)
	if err != nil {
		t.Fatalf("平滑化に失敗: %v", err)
	}
	if newTrack.Translations[2].Y >= track.Translations[2].Y {
		t.Fatalf("突出値が減衰していない: got=%f", newTrack.Translations[2].Y)
	}
	if newTrack.Translations[2].Y <= 0 {
		t.Fatalf("突出値の影響が消えている: got=%f", newTrack.Translations[2].Y)
	}
	// 時刻は変わらない
	for index := range track.Times {
		if newTrack.Times[index] != track.Times[index] {
			t.Fatalf("平滑化で時刻が変化した: index=%d", index)
		}
	}
}

func TestSmoothUsesGivenFilters(t *testing.T) {
	track := newTestTrack([]float64{0, 0.5, 1.0, 1.5, 2.0})

	fixedVec := mmath.NewVec3(7, 0, 0)
	fixedRot := mmath.NewQuaternionFromDegrees(0, 45, 0)
	vectorFilter := func(times []float64, values []mmath.Vec3, halfWidth, duration float64) []mmath.Vec3 {
		smoothed := make([]mmath.Vec3, len(values))
		for index := range smoothed {
			smoothed[index] = fixedVec
		}
		return smoothed
	}
	rotationFilter := func(times []float64, values []mmath.Quaternion, halfWidth, duration float64) []mmath.Quaternion {
		smoothed := make([]mmath.Quaternion, len(values))
		for index := range smoothed {
			smoothed[index] = fixedRot
		}
		return smoothed
	}

	newTrack, err := Smooth(track, 0.5, 2.0, rotationFilter, vectorFilter)
	if err != nil {
		t.Fatalf("平滑化に失敗: %v", err)
	}
	for index := range newTrack.Translations {
		if !newTrack.Translations[index].NearEquals(fixedVec, 1e-10) {
			t.Fatalf("ベクトルフィルタが使われていない: index=%d value=%v",
				index, newTrack.Translations[index])
		}
		if !newTrack.Rotations[index].NearEquals(fixedRot, 1e-10) {
			t.Fatalf("回転フィルタが使われていない: index=%d", index)
		}
	}
}

func TestSmoothWrapsAroundLoop(t *testing.T) {
	track := newTestTrack([]float64{0, 0.5, 1.0, 1.5, 2.0})
	for index := range track.Translations {
		track.Translations[index] = mmath.ZERO_VEC3
	}
	track.Translations[4] = mmath.NewVec3(6, 0, 0)

	newTrack, err := Smooth(track, 0.5, 2.0, nil, nil)
	if err != nil {
		t.Fatalf("平滑化に失敗: %v", err)
	}
	// 終端の突出値はループ距離で近い先頭側へも波及する
	if newTrack.Translations[0].X <= 0 {
		t.Fatalf("ループ越しの平滑化が効いていない: got=%f", newTrack.Translations[0].X)
	}
}

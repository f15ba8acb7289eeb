// 指示: miu200521358
package motion

import (
	"math"
	"testing"

	"github.com/miu200521358/mu_motion_edit/pkg/domain/mmath"
)

func TestInterpolateClamp(t *testing.T) {
	track := newTestTrack([]float64{0, 1.0, 2.0})

	before, err := Interpolate(track, -1.0)
	if err != nil {
		t.Fatalf("補間に失敗: %v", err)
	}
	if !before.Translation.NearEquals(track.Translations[0], 1e-10) {
		t.Fatalf("時刻0以前の補間値が先頭値ではない: %v", before.Translation)
	}

	after, err := Interpolate(track, 5.0)
	if err != nil {
		t.Fatalf("補間に失敗: %v", err)
	}
	if !after.Translation.NearEquals(track.Translations[2], 1e-10) {
		t.Fatalf("終端以降の補間値が末尾値ではない: %v", after.Translation)
	}
}

func TestInterpolateMidpoint(t *testing.T) {
	track := newTestTrack([]float64{0, 1.0, 2.0})
	mid, err := Interpolate(track, 0.5)
	if err != nil {
		t.Fatalf("補間に失敗: %v", err)
	}
	if !mid.Translation.NearEquals(mmath.NewVec3(0.5, 0, 0), 1e-10) {
		t.Fatalf("中間の平行移動が不正: %v", mid.Translation)
	}
	wantRotation := mmath.NewQuaternionFromDegrees(0, 0, 5)
	if !mid.Rotation.NearEquals(wantRotation, 1e-9) {
		t.Fatalf("中間の回転が不正: %v", mid.Rotation)
	}
}

func TestInterpolateSingleKeyframe(t *testing.T) {
	track := newTestTrack([]float64{0})
	value, err := Interpolate(track, 0.75)
	if err != nil {
		t.Fatalf("補間に失敗: %v", err)
	}
	if !value.Translation.NearEquals(track.Translations[0], 1e-10) {
		t.Fatalf("単一キーフレームの補間値が先頭値ではない: %v", value.Translation)
	}
}

func TestResampleAtRate(t *testing.T) {
	track := newTestTrack([]float64{0, 1.0, 2.0})
	newTrack, err := ResampleAtRate(track, 10, 2.0)
	if err != nil {
		t.Fatalf("再サンプリングに失敗: %v", err)
	}
	if newTrack.Len() != 21 {
		t.Fatalf("キーフレーム数が不正: got=%d want=21", newTrack.Len())
	}
	if math.Abs(newTrack.Times[0]) > TimeEpsilon ||
		math.Abs(newTrack.Times[20]-2.0) > TimeEpsilon {
		t.Fatalf("グリッド端が不正: times[0]=%f times[20]=%f",
			newTrack.Times[0], newTrack.Times[20])
	}
}

func TestResampleToNumber(t *testing.T) {
	track := newTestTrack([]float64{0, 0.7, 2.0})
	newTrack, err := ResampleToNumber(track, 5, 2.0)
	if err != nil {
		t.Fatalf("再サンプリングに失敗: %v", err)
	}
	if newTrack.Len() != 5 {
		t.Fatalf("キーフレーム数が不正: got=%d want=5", newTrack.Len())
	}
	if math.Abs(newTrack.Times[0]) > TimeEpsilon ||
		math.Abs(newTrack.Times[4]-2.0) > TimeEpsilon {
		t.Fatalf("グリッド端が不正: times=%v", newTrack.Times)
	}
	if math.Abs(newTrack.Times[2]-1.0) > TimeEpsilon {
		t.Fatalf("等分時刻が不正: times=%v", newTrack.Times)
	}

	if _, err := ResampleToNumber(track, 1, 2.0); err == nil {
		t.Fatalf("サンプル数1が通ってしまった")
	}
}

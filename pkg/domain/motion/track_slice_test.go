// 指示: miu200521358
package motion

import (
	"math"
	"testing"

	"github.com/miu200521358/mu_motion_edit/pkg/domain/mmath"
)

func TestBehead(t *testing.T) {
	track := newTestTrack([]float64{0, 1.0, 2.0})
	newTrack, err := Behead(track, 0.5)
	if err != nil {
		t.Fatalf("切り出しに失敗: %v", err)
	}
	wantTimes := []float64{0, 0.5, 1.5}
	if newTrack.Len() != len(wantTimes) {
		t.Fatalf("キーフレーム数が不正: times=%v", newTrack.Times)
	}
	for index, want := range wantTimes {
		if math.Abs(newTrack.Times[index]-want) > TimeEpsilon {
			t.Fatalf("時刻が不正: got=%v want=%v", newTrack.Times, wantTimes)
		}
	}
	// 先頭値は旧時刻0.5の補間値になる
	if !newTrack.Translations[0].NearEquals(mmath.NewVec3(0.5, 0, 0), 1e-10) {
		t.Fatalf("先頭補間値が不正: %v", newTrack.Translations[0])
	}
}

func TestBeheadOnKeyframe(t *testing.T) {
	track := newTestTrack([]float64{0, 1.0, 2.0})
	newTrack, err := Behead(track, 1.0)
	if err != nil {
		t.Fatalf("切り出しに失敗: %v", err)
	}
	if newTrack.Len() != 2 || math.Abs(newTrack.Times[1]-1.0) > TimeEpsilon {
		t.Fatalf("切り出し結果が不正: times=%v", newTrack.Times)
	}
	if !newTrack.Translations[0].NearEquals(track.Translations[1], 1e-10) {
		t.Fatalf("先頭値が不正: %v", newTrack.Translations[0])
	}
}

func TestTruncate(t *testing.T) {
	track := newTestTrack([]float64{0, 1.0, 2.0})
	newTrack, err := Truncate(track, 1.5)
	if err != nil {
		t.Fatalf("切り詰めに失敗: %v", err)
	}
	wantTimes := []float64{0, 1.0, 1.5}
	if newTrack.Len() != len(wantTimes) {
		t.Fatalf("キーフレーム数が不正: times=%v", newTrack.Times)
	}
	if !newTrack.Translations[2].NearEquals(mmath.NewVec3(1.5, 0, 0), 1e-10) {
		t.Fatalf("終端補間値が不正: %v", newTrack.Translations[2])
	}
}

func TestDelayAll(t *testing.T) {
	track := newTestTrack([]float64{0, 1.0})
	newTrack, err := DelayAll(track, 3.0)
	if err != nil {
		t.Fatalf("遅延に失敗: %v", err)
	}
	if math.Abs(newTrack.Times[0]-3.0) > TimeEpsilon ||
		math.Abs(newTrack.Times[1]-4.0) > TimeEpsilon {
		t.Fatalf("遅延結果が不正: times=%v", newTrack.Times)
	}
}

func TestWrapBlend(t *testing.T) {
	track := newTestTrack([]float64{0, 1.0, 2.0})
	newTrack, err := Wrap(track, 2.0, 0.5)
	if err != nil {
		t.Fatalf("ループ調整に失敗: %v", err)
	}
	want := track.Translations[0].Lerped(track.Translations[2], 0.5)
	if !newTrack.Translations[0].NearEquals(want, 1e-10) {
		t.Fatalf("始端値が不正: got=%v want=%v", newTrack.Translations[0], want)
	}
	if !newTrack.Translations[2].NearEquals(want, 1e-10) {
		t.Fatalf("終端値が不正: got=%v want=%v", newTrack.Translations[2], want)
	}

	// 両端が揃った後の再適用は値を変えない
	again, err := Wrap(newTrack, 2.0, 0.5)
	if err != nil {
		t.Fatalf("再適用に失敗: %v", err)
	}
	if !again.Translations[0].NearEquals(newTrack.Translations[0], 1e-10) ||
		!again.Translations[2].NearEquals(newTrack.Translations[2], 1e-10) {
		t.Fatalf("再適用で値が変化した")
	}
}

func TestWrapAppendsEndKeyframe(t *testing.T) {
	track := newTestTrack([]float64{0, 1.0})
	newTrack, err := Wrap(track, 2.0, 0.5)
	if err != nil {
		t.Fatalf("ループ調整に失敗: %v", err)
	}
	if newTrack.Len() != 3 || math.Abs(newTrack.Times[2]-2.0) > TimeEpsilon {
		t.Fatalf("終端キーフレームが追加されていない: times=%v", newTrack.Times)
	}
	// 終端キーフレームが無い場合は始端値をそのまま複製する
	if !newTrack.Translations[2].NearEquals(track.Translations[0], 1e-10) {
		t.Fatalf("追加された終端値が不正: %v", newTrack.Translations[2])
	}
}

func TestChainTracksBothSides(t *testing.T) {
	trackA := newTestTrack([]float64{0, 3.0})
	trackB := newTestTrack([]float64{0, 2.0})
	newTrack, err := ChainTracks(trackA, trackB, 3.0, 2.0)
	if err != nil {
		t.Fatalf("連結に失敗: %v", err)
	}
	if math.Abs(newTrack.Times[0]) > TimeEpsilon ||
		math.Abs(newTrack.EndTime()-5.0) > TimeEpsilon {
		t.Fatalf("連結範囲が不正: times=%v", newTrack.Times)
	}
	// 継ぎ目(3.0)ではB側先頭値を採る
	seamIndex := newTrack.FindKeyframeIndex(3.0)
	if seamIndex < 0 {
		t.Fatalf("継ぎ目キーフレームがない: times=%v", newTrack.Times)
	}
	if !newTrack.Translations[seamIndex].NearEquals(trackB.Translations[0], 1e-10) {
		t.Fatalf("継ぎ目の値が不正: %v", newTrack.Translations[seamIndex])
	}
}

func TestChainTracksASideOnly(t *testing.T) {
	trackA := newTestTrack([]float64{0, 3.0})
	newTrack, err := ChainTracks(trackA, nil, 3.0, 2.0)
	if err != nil {
		t.Fatalf("連結に失敗: %v", err)
	}
	if math.Abs(newTrack.EndTime()-5.0) > TimeEpsilon {
		t.Fatalf("保持区間が終端まで届いていない: times=%v", newTrack.Times)
	}
	last, err := newTrack.TransformAt(newTrack.Len() - 1)
	if err != nil {
		t.Fatalf("キーフレーム取得に失敗: %v", err)
	}
	if !last.Translation.NearEquals(trackA.Translations[1], 1e-10) {
		t.Fatalf("保持値が不正: %v", last.Translation)
	}
}

func TestChainTracksBSideOnly(t *testing.T) {
	trackB := newTestTrack([]float64{0, 2.0})
	newTrack, err := ChainTracks(nil, trackB, 3.0, 2.0)
	if err != nil {
		t.Fatalf("連結に失敗: %v", err)
	}
	if math.Abs(newTrack.Times[0]) > TimeEpsilon ||
		math.Abs(newTrack.EndTime()-5.0) > TimeEpsilon {
		t.Fatalf("連結範囲が不正: times=%v", newTrack.Times)
	}
	if !newTrack.Translations[0].NearEquals(trackB.Translations[0], 1e-10) {
		t.Fatalf("前区間の保持値が不正: %v", newTrack.Translations[0])
	}
}

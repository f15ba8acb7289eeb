// 指示: miu200521358
package motion

import (
	"errors"
	"fmt"

	"github.com/miu200521358/mu_motion_edit/pkg/domain/mmath"
	"github.com/tiendc/go-deepcopy"
)

const (
	// TimeEpsilon はキーフレーム時刻の同値判定許容誤差(秒)。
	TimeEpsilon = 1e-6
)

// ErrKeyframeExists は同時刻キーフレームの二重挿入を表す。
var ErrKeyframeExists = errors.New("同時刻のキーフレームが既に存在します")

// ErrFirstKeyframeImmutable は先頭キーフレームの削除・移動要求を表す。
var ErrFirstKeyframeImmutable = errors.New("先頭キーフレームは削除・移動できません")

// Track は1対象ぶんのキーフレームチャンネル列を表す。
// Times は狭義単調増加で、読み込み修復後は Times[0] == 0 となる。
// 存在するチャンネル配列は全て Times と同じ長さを持つ。
type Track struct {
	Target       TargetRef
	Times        []float64
	Translations []mmath.Vec3
	Rotations    []mmath.Quaternion
	Scales       []mmath.Vec3
}

// Len はキーフレーム数を返す。
func (t *Track) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Times)
}

// EndTime は最終キーフレーム時刻を返す。
func (t *Track) EndTime() float64 {
	if t == nil || len(t.Times) == 0 {
		return 0
	}
	return t.Times[len(t.Times)-1]
}

// HasTranslations は平行移動チャンネルの有無を返す。
func (t *Track) HasTranslations() bool {
	return t != nil && t.Translations != nil
}

// HasRotations は回転チャンネルの有無を返す。
func (t *Track) HasRotations() bool {
	return t != nil && t.Rotations != nil
}

// HasScales はスケールチャンネルの有無を返す。
func (t *Track) HasScales() bool {
	return t != nil && t.Scales != nil
}

// Validate はトラック不変条件を検証する。
func (t *Track) Validate() error {
	if t == nil {
		return fmt.Errorf("トラックが未設定です")
	}
	if !t.Target.Kind.IsValid() {
		return fmt.Errorf("トラック対象種別が不正です: %d", int(t.Target.Kind))
	}
	n := len(t.Times)
	if n < 1 {
		return fmt.Errorf("トラック %s にキーフレームがありません", t.Target.Describe())
	}
	if t.Translations == nil && t.Rotations == nil && t.Scales == nil {
		return fmt.Errorf("トラック %s にチャンネルがありません", t.Target.Describe())
	}
	if t.Translations != nil && len(t.Translations) != n {
		return fmt.Errorf("トラック %s の平行移動数が不一致です: got=%d want=%d",
			t.Target.Describe(), len(t.Translations), n)
	}
	if t.Rotations != nil && len(t.Rotations) != n {
		return fmt.Errorf("トラック %s の回転数が不一致です: got=%d want=%d",
			t.Target.Describe(), len(t.Rotations), n)
	}
	if t.Scales != nil && len(t.Scales) != n {
		return fmt.Errorf("トラック %s のスケール数が不一致です: got=%d want=%d",
			t.Target.Describe(), len(t.Scales), n)
	}
	for index := 1; index < n; index++ {
		if t.Times[index] <= t.Times[index-1] {
			return fmt.Errorf("トラック %s の時刻列が単調増加ではありません: index=%d",
				t.Target.Describe(), index)
		}
	}
	return nil
}

// Copy はトラックの複製を返す。
func (t *Track) Copy() (*Track, error) {
	if t == nil {
		return nil, fmt.Errorf("トラックが未設定です")
	}
	copied := &Track{}
	if err := deepcopy.Copy(copied, t); err != nil {
		return nil, fmt.Errorf("トラック複製に失敗しました: %w", err)
	}
	return copied, nil
}

// FindKeyframeIndex は指定時刻と一致するキーフレームのindexを返す。無ければ-1。
func (t *Track) FindKeyframeIndex(time float64) int {
	if t == nil {
		return -1
	}
	for index, keyTime := range t.Times {
		if keyTime > time+TimeEpsilon {
			break
		}
		if time-TimeEpsilon <= keyTime {
			return index
		}
	}
	return -1
}

// FindPreviousKeyframeIndex は指定時刻以前で最後のキーフレームのindexを返す。無ければ-1。
func (t *Track) FindPreviousKeyframeIndex(time float64) int {
	if t == nil {
		return -1
	}
	found := -1
	for index, keyTime := range t.Times {
		if keyTime > time+TimeEpsilon {
			break
		}
		found = index
	}
	return found
}

// TransformAt は指定indexのキーフレーム値を変換として返す。
// 欠落チャンネルは単位値で補う。
func (t *Track) TransformAt(index int) (mmath.Transform, error) {
	result := mmath.NewTransform()
	if t == nil {
		return result, fmt.Errorf("トラックが未設定です")
	}
	if index < 0 || index >= len(t.Times) {
		return result, fmt.Errorf("キーフレームindexが範囲外です: index=%d count=%d",
			index, len(t.Times))
	}
	if t.Translations != nil {
		result.Translation = t.Translations[index]
	}
	if t.Rotations != nil {
		result.Rotation = t.Rotations[index]
	}
	if t.Scales != nil {
		result.Scale = t.Scales[index]
	}
	return result, nil
}

// newTrackLike は対象とチャンネル構成を引き継いだ空配列トラックを生成する。
// 各配列は呼び出し側が長さcountで埋める。
func newTrackLike(oldTrack *Track, count int) *Track {
	newTrack := &Track{
		Target: oldTrack.Target,
		Times:  make([]float64, count),
	}
	if oldTrack.Translations != nil {
		newTrack.Translations = make([]mmath.Vec3, count)
	}
	if oldTrack.Rotations != nil {
		newTrack.Rotations = make([]mmath.Quaternion, count)
	}
	if oldTrack.Scales != nil {
		newTrack.Scales = make([]mmath.Vec3, count)
	}
	return newTrack
}

// copyKeyframe はoldTrackのoldIndexキーフレームをnewTrackのnewIndexへ複写する。
func copyKeyframe(newTrack *Track, newIndex int, oldTrack *Track, oldIndex int) {
	newTrack.Times[newIndex] = oldTrack.Times[oldIndex]
	if newTrack.Translations != nil && oldTrack.Translations != nil {
		newTrack.Translations[newIndex] = oldTrack.Translations[oldIndex]
	}
	if newTrack.Rotations != nil && oldTrack.Rotations != nil {
		newTrack.Rotations[newIndex] = oldTrack.Rotations[oldIndex]
	}
	if newTrack.Scales != nil && oldTrack.Scales != nil {
		newTrack.Scales[newIndex] = oldTrack.Scales[oldIndex]
	}
}

// setKeyframe はnewTrackのindexへ時刻と変換値を書き込む。
func setKeyframe(newTrack *Track, index int, time float64, transform mmath.Transform) {
	newTrack.Times[index] = time
	if newTrack.Translations != nil {
		newTrack.Translations[index] = transform.Translation
	}
	if newTrack.Rotations != nil {
		newTrack.Rotations[index] = transform.Rotation
	}
	if newTrack.Scales != nil {
		newTrack.Scales[index] = transform.Scale
	}
}

// 指示: miu200521358
package minteractor

// EditState は未保存編集の回数と連続編集の合流状態を表す。
// 連続編集(ドラッグ中の時刻変更など)は同じ指紋が続く限り1回の編集として数える。
type EditState struct {
	unsavedEditCount     int
	continuousEditDetail string
	history              []string
}

// NewEditState は未編集状態のEditStateを生成する。
func NewEditState() *EditState {
	return &EditState{}
}

// CountUnsavedEdits は未保存編集回数を返す。
func (s *EditState) CountUnsavedEdits() int {
	if s == nil {
		return 0
	}
	return s.unsavedEditCount
}

// IsPristine は未保存編集が無いか判定する。
func (s *EditState) IsPristine() bool {
	return s.CountUnsavedEdits() == 0
}

// SetEdited は独立した編集1回を記録し、進行中の連続編集を終了する。
func (s *EditState) SetEdited() {
	if s == nil {
		return
	}
	s.unsavedEditCount++
	s.continuousEditDetail = ""
}

// SetEditedContinuous は連続編集を記録する。
// 直前と同じ指紋なら編集回数を増やさず合流する。
func (s *EditState) SetEditedContinuous(detail string) {
	if s == nil || detail == "" {
		return
	}
	if s.continuousEditDetail != detail {
		s.unsavedEditCount++
		s.continuousEditDetail = detail
	}
}

// PreCheckpoint は進行中の連続編集を終了する。以後の連続編集は新しい1回と数える。
func (s *EditState) PreCheckpoint() {
	if s == nil {
		return
	}
	s.continuousEditDetail = ""
}

// AddHistory は編集内容の説明を履歴へ追記する。
func (s *EditState) AddHistory(description string) {
	if s == nil || description == "" {
		return
	}
	s.history = append(s.history, description)
}

// History は編集内容の説明一覧を古い順に返す。
func (s *EditState) History() []string {
	if s == nil {
		return nil
	}
	return s.history
}

// SetPristine は読み込み・保存直後の未編集状態へ戻す。
func (s *EditState) SetPristine() {
	if s == nil {
		return
	}
	s.unsavedEditCount = 0
	s.continuousEditDetail = ""
}

// 指示: miu200521358
// Package minteractor はモーション編集のユースケースを提供する。
package minteractor

import (
	"github.com/miu200521358/mu_motion_edit/pkg/usecase/port/moutput"
)

// MotionEditUsecaseDeps はモーション編集ユースケースの依存を表す。
type MotionEditUsecaseDeps struct {
	MotionReader  moutput.IMotionReader
	MotionWriter  moutput.IMotionWriter
	MappingReader moutput.IMappingReader
	Notifier      moutput.IViewportNotifier
}

// MotionEditUsecase はモーション文書の読み込み・編集・保存をまとめたユースケースを表す。
// 編集コマンドは単一の呼び出し側から逐次に呼ばれる前提で、並列化は1回の
// 編集呼び出しの内部に閉じる。
type MotionEditUsecase struct {
	motionReader  moutput.IMotionReader
	motionWriter  moutput.IMotionWriter
	mappingReader moutput.IMappingReader
	notifier      moutput.IViewportNotifier

	document  *moutput.MotionDocument
	clipSet   *ClipSet
	selection *Selection
	editState *EditState
}

// NewMotionEditUsecase はモーション編集ユースケースを生成する。
func NewMotionEditUsecase(deps MotionEditUsecaseDeps) *MotionEditUsecase {
	notifier := deps.Notifier
	if notifier == nil {
		notifier = moutput.NopViewportNotifier{}
	}
	return &MotionEditUsecase{
		motionReader:  deps.MotionReader,
		motionWriter:  deps.MotionWriter,
		mappingReader: deps.MappingReader,
		notifier:      notifier,
		clipSet:       NewClipSet(),
		selection:     NewSelection(),
		editState:     NewEditState(),
	}
}

// ClipSet は読み込まれたクリップ集合を返す。
func (uc *MotionEditUsecase) ClipSet() *ClipSet {
	return uc.clipSet
}

// Selection は選択状態を返す。
func (uc *MotionEditUsecase) Selection() *Selection {
	return uc.selection
}

// EditState は編集状態を返す。
func (uc *MotionEditUsecase) EditState() *EditState {
	return uc.editState
}

// Document は読み込まれたモーション文書を返す。未読み込みならnil。
func (uc *MotionEditUsecase) Document() *moutput.MotionDocument {
	return uc.document
}

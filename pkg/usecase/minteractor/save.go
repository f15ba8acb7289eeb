// 指示: miu200521358
package minteractor

import (
	"fmt"
	"strings"

	"github.com/miu200521358/mu_motion_edit/pkg/usecase/port/moutput"
)

// SaveRequest はモーション文書の保存要求を表す。
type SaveRequest struct {
	Path    string
	Writer  moutput.IMotionWriter
	Options moutput.SaveOptions
}

// SaveMotion はクリップ集合の現在内容で文書を保存する。
// 保存に成功すると未編集状態へ戻る。
func (uc *MotionEditUsecase) SaveMotion(request SaveRequest) error {
	writer := request.Writer
	if writer == nil {
		writer = uc.motionWriter
	}
	if writer == nil {
		return fmt.Errorf("モーション保存リポジトリが設定されていません")
	}
	path := strings.TrimSpace(request.Path)
	if path == "" {
		return fmt.Errorf("保存先パスが未指定です")
	}
	if uc.document == nil {
		return fmt.Errorf("保存対象の文書が読み込まれていません")
	}

	uc.editState.PreCheckpoint()
	uc.syncDocumentClips()
	if err := writer.Save(path, uc.document, request.Options); err != nil {
		return err
	}
	uc.editState.SetPristine()
	return nil
}

// syncDocumentClips は文書のクリップ一覧を集合の現在内容(名前順)で引き直す。
func (uc *MotionEditUsecase) syncDocumentClips() {
	names := uc.clipSet.Names()
	uc.document.Clips = uc.document.Clips[:0]
	for _, name := range names {
		uc.document.Clips = append(uc.document.Clips, uc.clipSet.FindByName(name))
	}
}

// 指示: miu200521358
package minteractor

import (
	"fmt"
	"strings"

	"github.com/miu200521358/mu_motion_edit/pkg/domain/model"
	"github.com/miu200521358/mu_motion_edit/pkg/usecase/port/moutput"
)

// LoadRequest はモーション文書の読み込み要求を表す。
type LoadRequest struct {
	Path             string
	Reader           moutput.IMotionReader
	ProgressReporter ILoadProgressReporter
}

// LoadResult はモーション文書の読み込み結果を表す。
type LoadResult struct {
	Document    *moutput.MotionDocument
	ClipCount   int
	RepairCount int
}

// LoadMotion はモーション文書を読み込み、補修した上でクリップ集合を入れ替える。
// 読み込み直後は未編集状態になり、名前順で先頭のクリップが選択される。
func (uc *MotionEditUsecase) LoadMotion(request LoadRequest) (*LoadResult, error) {
	reader := request.Reader
	if reader == nil {
		reader = uc.motionReader
	}
	if reader == nil {
		return nil, fmt.Errorf("モーション読み込みリポジトリが設定されていません")
	}
	path := strings.TrimSpace(request.Path)
	if path == "" {
		return nil, fmt.Errorf("入力パスが未指定です")
	}
	if !reader.CanLoad(path) {
		return nil, fmt.Errorf("読み込めないパスです: %s", path)
	}

	document, err := reader.Load(path)
	if err != nil {
		return nil, err
	}
	if document == nil || len(document.Clips) == 0 {
		return nil, fmt.Errorf("文書にクリップがありません: %s", path)
	}
	if document.Name == "" {
		document.Name = reader.InferName(path)
	}
	reportLoadProgress(request.ProgressReporter, LoadProgressEvent{
		Type:      LoadProgressEventTypeDocumentLoaded,
		ClipCount: len(document.Clips),
	})

	repairCount := 0
	clipSet := NewClipSet()
	for _, clip := range document.Clips {
		repaired, err := clip.Repair()
		if err != nil {
			return nil, fmt.Errorf("クリップ %q の補修に失敗しました: %w", clip.Name, err)
		}
		repairCount += repaired
		if repaired > 0 {
			reportLoadProgress(request.ProgressReporter, LoadProgressEvent{
				Type:        LoadProgressEventTypeClipRepaired,
				ClipName:    clip.Name,
				RepairCount: repaired,
			})
		}
		if err := clipSet.Add(clip); err != nil {
			return nil, err
		}
		reportLoadProgress(request.ProgressReporter, LoadProgressEvent{
			Type:       LoadProgressEventTypeClipRegistered,
			ClipName:   clip.Name,
			TrackCount: len(clip.Tracks),
		})
	}

	uc.document = document
	uc.clipSet = clipSet
	uc.selection = NewSelection()
	// 前の文書の編集履歴を持ち越さない
	uc.editState = NewEditState()
	names := clipSet.Names()
	if len(names) > 0 {
		uc.selection.SelectClip(clipSet.FindByName(names[0]))
	}
	return &LoadResult{
		Document:    document,
		ClipCount:   clipSet.Len(),
		RepairCount: repairCount,
	}, nil
}

// LoadMapping はスケルトンマッピングを読み込む。
func (uc *MotionEditUsecase) LoadMapping(path string) (*model.SkeletonMapping, error) {
	if uc.mappingReader == nil {
		return nil, fmt.Errorf("マッピング読み込みリポジトリが設定されていません")
	}
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("マッピングパスが未指定です")
	}
	return uc.mappingReader.Load(path)
}

// reportLoadProgress は通知先が設定されている場合のみ進捗を通知する。
func reportLoadProgress(reporter ILoadProgressReporter, event LoadProgressEvent) {
	if reporter == nil {
		return
	}
	reporter.ReportLoadProgress(event)
}

// AttachRig は読み込み済み文書へスケルトンとメッシュを後付けする。
// 支持点補正やポーズ補完を使うための別ファイル供給に使う。
func (uc *MotionEditUsecase) AttachRig(skeleton *model.Skeleton, mesh *model.Mesh) error {
	if uc.document == nil {
		return fmt.Errorf("スケルトンを付与する文書が読み込まれていません")
	}
	if skeleton == nil {
		return fmt.Errorf("スケルトンが未設定です")
	}
	if mesh != nil {
		if err := mesh.Validate(skeleton); err != nil {
			return err
		}
	}
	uc.document.Skeleton = skeleton
	uc.document.Mesh = mesh
	return nil
}

// 指示: miu200521358
package minteractor

// LoadProgressEventType は読み込み処理の進捗イベント種別を表す。
type LoadProgressEventType string

const (
	// LoadProgressEventTypeDocumentLoaded は文書読み込み完了イベントを表す。
	LoadProgressEventTypeDocumentLoaded LoadProgressEventType = "document_loaded"
	// LoadProgressEventTypeClipRepaired はクリップ補修完了イベントを表す。
	LoadProgressEventTypeClipRepaired LoadProgressEventType = "clip_repaired"
	// LoadProgressEventTypeClipRegistered はクリップ登録完了イベントを表す。
	LoadProgressEventTypeClipRegistered LoadProgressEventType = "clip_registered"
)

// LoadProgressEvent は読み込み処理の進捗イベントを表す。
type LoadProgressEvent struct {
	Type        LoadProgressEventType
	ClipName    string
	ClipCount   int
	TrackCount  int
	RepairCount int
}

// ILoadProgressReporter は読み込み処理の進捗通知契約を表す。
type ILoadProgressReporter interface {
	// ReportLoadProgress は読み込み進捗を通知する。
	ReportLoadProgress(event LoadProgressEvent)
}

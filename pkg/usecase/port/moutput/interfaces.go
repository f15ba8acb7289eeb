// 指示: miu200521358
// Package moutput はモーション入出力と表示通知の契約を提供する。
package moutput

import (
	"github.com/miu200521358/mu_motion_edit/pkg/domain/model"
	"github.com/miu200521358/mu_motion_edit/pkg/domain/motion"
)

// MotionDocument は読み書きの単位となるモーション文書を表す。
// スケルトンとメッシュは接地補正・リターゲットを使う場合のみ必要。
type MotionDocument struct {
	Name     string
	Clips    []*motion.Clip
	Skeleton *model.Skeleton
	Mesh     *model.Mesh
}

// SaveOptions は保存時のオプションを表す。
type SaveOptions struct {
	Indent    bool
	Overwrite bool
}

// IMotionReader はモーション文書の読み込み契約を表す。
type IMotionReader interface {
	// CanLoad は指定パスを読み込めるか判定する。
	CanLoad(path string) bool
	// InferName はパスから文書名を推定する。
	InferName(path string) string
	// Load は文書を読み込む。
	Load(path string) (*MotionDocument, error)
}

// IMotionWriter はモーション文書の書き込み契約を表す。
type IMotionWriter interface {
	// Save は文書を保存する。
	Save(path string, document *MotionDocument, options SaveOptions) error
}

// IMappingReader はスケルトンマッピングの読み込み契約を表す。
type IMappingReader interface {
	// Load はマッピングを読み込む。
	Load(path string) (*model.SkeletonMapping, error)
}

// IViewportNotifier は編集結果の表示側への通知契約を表す。
type IViewportNotifier interface {
	// OnClipReplaced はクリップ差し替えを通知する。
	OnClipReplaced(clipName string)
	// OnTrackSelected はトラック選択変更を通知する。選択解除はokがfalse。
	OnTrackSelected(target motion.TargetRef, ok bool)
}

// NopViewportNotifier は何もしない表示通知を表す。
type NopViewportNotifier struct{}

// OnClipReplaced は何もしない。
func (NopViewportNotifier) OnClipReplaced(clipName string) {}

// OnTrackSelected は何もしない。
func (NopViewportNotifier) OnTrackSelected(target motion.TargetRef, ok bool) {}

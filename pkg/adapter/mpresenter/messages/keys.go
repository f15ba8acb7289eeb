// 指示: miu200521358
// Package messages はCLI表示に使うメッセージキーを提供する。
package messages

// メッセージキー一覧。
const (
	LogPrefix = "[mu_motion_edit]"

	LabelMotionPath   = "入力モーションJSONパス"
	LabelRecipePath   = "編集レシピYAMLパス"
	LabelOutputPath   = "出力モーションJSONパス"
	LabelMappingPath  = "既定のマッピングYAMLパス"
	LabelSkeletonPath = "スケルトン付き文書JSONパス"

	MessageInputRequired        = "入力モーションファイルを指定してください (-in)"
	MessageRecipeRequired       = "編集レシピファイルを指定してください (-recipe)"
	MessageInputExtInvalid      = "入力拡張子が .json ではありません: %s"
	MessageOutputExtInvalid     = "出力拡張子が .json ではありません: %s"
	MessageSkeletonExtInvalid   = "スケルトン拡張子が .json ではありません: %s"
	MessageInputUnsupported     = "入力形式が未対応です: %s"
	MessageLoadFailed           = "モーション読み込みに失敗しました"
	MessageSaveFailed           = "モーション保存に失敗しました"
	MessageRecipeLoadFailed     = "レシピ読み込みに失敗しました"
	MessageRecipeApplyFailed    = "レシピ適用に失敗しました"
	MessageSkeletonLoadFailed   = "スケルトン読み込みに失敗しました"
	MessageSkeletonMissing      = "スケルトンファイルにスケルトンがありません: %s"
	MessageSkeletonAttachFailed = "スケルトンの付与に失敗しました"
	MessageOutputDirFailed      = "出力先ディレクトリの作成に失敗しました"

	LogLoadStart        = "読み込み開始: %s"
	LogLoadComplete     = "読み込み完了: clips=%d repairs=%d"
	LogSkeletonAttached = "スケルトン付与: joints=%d"
	LogRecipeStart      = "レシピ適用開始: steps=%d"
	LogSaveStart        = "保存開始: %s"
	LogEditComplete     = "編集完了: %s"
)

// 指示: miu200521358
package io_motion

import (
	"fmt"
	"log/slog"
)

// motionLogger はio_motionパッケージのログ出力先。
var motionLogger = slog.Default().With("module", "io_motion")

// logMotionInfo は入出力の情報ログを出力する。
func logMotionInfo(format string, args ...any) {
	motionLogger.Info(fmt.Sprintf(format, args...))
}

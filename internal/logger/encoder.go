package logger

import (
	"time"

	"go.uber.org/zap/zapcore"
)

// Короткое время в консоли, как в логах бота: 15:04:05.
func zapTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("15:04:05"))
}

package logger

import (
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	instance *zap.SugaredLogger
	once     sync.Once
	level    = zap.NewAtomicLevelAt(zapcore.InfoLevel)
)

func get() *zap.SugaredLogger {
	once.Do(func() {
		encoderCfg := zap.NewProductionEncoderConfig()
		encoderCfg.TimeKey = "time"
		encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

		core := zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderCfg),
			zapcore.Lock(os.Stdout),
			level,
		)
		instance = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)).Sugar()
	})
	return instance
}

// SetLevel changes the minimum level; unknown values fall back to info.
func SetLevel(l string) {
	switch strings.ToLower(l) {
	case "debug":
		level.SetLevel(zapcore.DebugLevel)
	case "warn", "warning":
		level.SetLevel(zapcore.WarnLevel)
	case "error":
		level.SetLevel(zapcore.ErrorLevel)
	default:
		level.SetLevel(zapcore.InfoLevel)
	}
}

func Debug(msg string, keysAndValues ...any) {
	get().Debugw(msg, pairs(keysAndValues)...)
}

func Info(msg string, keysAndValues ...any) {
	get().Infow(msg, pairs(keysAndValues)...)
}

func Warn(msg string, keysAndValues ...any) {
	get().Warnw(msg, pairs(keysAndValues)...)
}

func Error(msg string, keysAndValues ...any) {
	get().Errorw(msg, pairs(keysAndValues)...)
}

// Sync flushes buffered entries, call before exit.
func Sync() {
	_ = get().Sync()
}

// pairs keeps call sites like logger.Error("X:Y:Error:", err) readable: a
// lone leading value is logged under "detail".
func pairs(kv []any) []any {
	if len(kv)%2 == 0 {
		return kv
	}
	return append([]any{"detail"}, kv...)
}

package log

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	atomicLevel = zap.NewAtomicLevelAt(zap.InfoLevel)
	base        *zap.Logger
	sugar       *zap.SugaredLogger
)

func init() {
	cfg := zap.NewProductionConfig()
	cfg.Level = atomicLevel
	cfg.Encoding = "console"
	cfg.Sampling = nil
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	// progress goes to stderr
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := cfg.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to init logger: %v", err))
	}
	Use(logger)
}

// Use replaces the process logger. Tests use it to observe log output.
func Use(logger *zap.Logger) {
	base = logger
	sugar = base.Sugar()
}

// SetLevel changes the minimum level of the default logger.
func SetLevel(level zapcore.Level) {
	atomicLevel.SetLevel(level)
}

func Sync() {
	_ = base.Sync()
}

func Debug(format string, args ...any) {
	sugar.Debugf(format, args...)
}

func Info(format string, args ...any) {
	sugar.Infof(format, args...)
}

func Warn(format string, args ...any) {
	sugar.Warnf(format, args...)
}

func Error(format string, args ...any) {
	sugar.Errorf(format, args...)
}

package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// SillyLevel is one step more verbose than debug.
const SillyLevel = zapcore.DebugLevel - 1

type Options struct {
	Level string
	// Logger receives JSON encoded entries in addition to the console, usually a *lumberjack.Logger
	Logger io.Writer
}

var current atomic.Pointer[zap.SugaredLogger]

func init() {
	current.Store(zap.NewNop().Sugar())
}

func ParseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(level) {
	case "fatal":
		return zapcore.FatalLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "", "info":
		return zapcore.InfoLevel, nil
	case "debug":
		return zapcore.DebugLevel, nil
	case "silly":
		return SillyLevel, nil
	}
	return zapcore.InfoLevel, fmt.Errorf("unknown log level: %s", level)
}

func Init(options Options) {
	level, levelErr := ParseLevel(options.Level)

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.Lock(os.Stdout), level),
	}
	if options.Logger != nil {
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(options.Logger), level))
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1))
	current.Store(logger.Sugar())

	if levelErr != nil {
		Warn(levelErr.Error() + ", falling back to info")
	}
}

// Sync flushes buffered entries, errors from syncing a terminal are ignored.
func Sync() {
	_ = current.Load().Sync()
}

func Silly(message string) {
	current.Load().Log(SillyLevel, message)
}

func Sillyf(format string, args ...any) {
	current.Load().Logf(SillyLevel, format, args...)
}

func Debug(message string) {
	current.Load().Debug(message)
}

func Debugf(format string, args ...any) {
	current.Load().Debugf(format, args...)
}

func Info(message string) {
	current.Load().Info(message)
}

func Infof(format string, args ...any) {
	current.Load().Infof(format, args...)
}

func Warn(message string) {
	current.Load().Warn(message)
}

func Warnf(format string, args ...any) {
	current.Load().Warnf(format, args...)
}

func Error(message string) {
	current.Load().Error(message)
}

func Errorf(format string, args ...any) {
	current.Load().Errorf(format, args...)
}

func Fatal(message string) {
	current.Load().Fatal(message)
}

func Fatalf(format string, args ...any) {
	current.Load().Fatalf(format, args...)
}

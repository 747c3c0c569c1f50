package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/proc-tools/appman/pkg/errors"
)

// ZapAdapter backs the Logger interface with a zap sugared logger, hiding zap
// types from callers.
type ZapAdapter struct {
	logger *zap.Logger
	sugar  *zap.SugaredLogger
}

// NewZapLogger creates a console zap logger at the given level
// (debug, info, warn, error).
func NewZapLogger(level string) (*ZapAdapter, error) {
	zapLevel, err := parseLevel(level)
	if err != nil {
		return nil, err
	}

	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(zapLevel)
	config.DisableStacktrace = true

	zapLogger, err := config.Build()
	if err != nil {
		return nil, errors.NewInternalError("failed to build zap logger", err)
	}

	return &ZapAdapter{
		logger: zapLogger,
		sugar:  zapLogger.Sugar(),
	}, nil
}

func parseLevel(level string) (zapcore.Level, error) {
	switch level {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info", "":
		return zapcore.InfoLevel, nil
	case "warn":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, errors.NewValidationError(
			"unsupported log level: "+level, nil,
		).WithContext("valid_levels", "debug, info, warn, error")
	}
}

func (z *ZapAdapter) Debugf(msg string, args ...interface{}) {
	z.sugar.Debugf(msg, args...)
}

func (z *ZapAdapter) Infof(msg string, args ...interface{}) {
	z.sugar.Infof(msg, args...)
}

func (z *ZapAdapter) Warnf(msg string, args ...interface{}) {
	z.sugar.Warnf(msg, args...)
}

func (z *ZapAdapter) Errorf(msg string, args ...interface{}) {
	z.sugar.Errorf(msg, args...)
}

// Sync flushes buffered log entries, for use before process exit.
func (z *ZapAdapter) Sync() error {
	return z.logger.Sync()
}

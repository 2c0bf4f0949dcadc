package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/suchimauz/artist-availability-engine/internal/core/ports/out"
)

// ZapLogger структурированный JSON для не локальных окружений
type ZapLogger struct {
	base   *zap.Logger
	module string
}

func NewZapLogger(production bool, minLevel out.LogLevel) (*ZapLogger, error) {
	base, err := zapConfig(production, minLevel).Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, err
	}

	return NewZapLoggerFrom(base), nil
}

// zapConfig вывод всегда JSON, окружение влияет только на стектрейсы и семплирование
func zapConfig(production bool, minLevel out.LogLevel) zap.Config {
	var cfg zap.Config
	if production {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Encoding = "json"
	cfg.EncoderConfig = zap.NewProductionEncoderConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapLevel(minLevel))
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg
}

func NewZapLoggerFrom(base *zap.Logger) *ZapLogger {
	return &ZapLogger{base: base, module: "unknown"}
}

func (l *ZapLogger) WithFields(fields out.LogFields) out.LoggerPort {
	return &ZapLogger{
		base:   l.base.With(zapFields(fields)...),
		module: l.module,
	}
}

func (l *ZapLogger) WithModule(module string) out.LoggerPort {
	return &ZapLogger{base: l.base, module: module}
}

func (l *ZapLogger) Debug(event string, fields out.LogFields) {
	l.base.Debug(event, l.fields(fields)...)
}

func (l *ZapLogger) Info(event string, fields out.LogFields) {
	l.base.Info(event, l.fields(fields)...)
}

func (l *ZapLogger) Warn(event string, fields out.LogFields) {
	l.base.Warn(event, l.fields(fields)...)
}

func (l *ZapLogger) Error(event string, fields out.LogFields) {
	l.base.Error(event, l.fields(fields)...)
}

func (l *ZapLogger) Sync() error {
	return l.base.Sync()
}

func (l *ZapLogger) fields(fields out.LogFields) []zap.Field {
	return append(zapFields(fields), zap.String("module", l.module))
}

func zapFields(fields out.LogFields) []zap.Field {
	result := make([]zap.Field, 0, len(fields)+1)
	for k, v := range fields {
		result = append(result, zap.Any(k, v))
	}
	return result
}

func zapLevel(level out.LogLevel) zapcore.Level {
	switch level {
	case out.LogLevelInfo:
		return zapcore.InfoLevel
	case out.LogLevelWarn:
		return zapcore.WarnLevel
	case out.LogLevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.DebugLevel
	}
}

package logger

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/keytone/midikeys/sdk/contracts"
)

// ZapLogger implements the contracts.Logger interface on top of Uber's zap.
type ZapLogger struct {
	logger *zap.Logger
	level  contracts.LogLevel
}

// NewZapLogger creates a production zap logger at InfoLevel.
func NewZapLogger() contracts.Logger {
	logger, _ := zap.NewProduction(zap.AddCallerSkip(1))
	return &ZapLogger{logger: logger, level: contracts.InfoLevel}
}

// NewNop creates a logger that discards everything. Used in tests.
func NewNop() contracts.Logger {
	return &ZapLogger{logger: zap.NewNop(), level: contracts.FatalLevel}
}

// Info logs a message at the INFO level.
func (z *ZapLogger) Info(msg string, fields ...contracts.Field) {
	z.log(zapcore.InfoLevel, contracts.InfoLevel, msg, fields...)
}

// Error logs a message at the ERROR level.
func (z *ZapLogger) Error(msg string, fields ...contracts.Field) {
	z.log(zapcore.ErrorLevel, contracts.ErrorLevel, msg, fields...)
}

// Debug logs a message at the DEBUG level.
func (z *ZapLogger) Debug(msg string, fields ...contracts.Field) {
	z.log(zapcore.DebugLevel, contracts.DebugLevel, msg, fields...)
}

// Warn logs a message at the WARN level.
func (z *ZapLogger) Warn(msg string, fields ...contracts.Field) {
	z.log(zapcore.WarnLevel, contracts.WarnLevel, msg, fields...)
}

// Fatal logs a message at the FATAL level and terminates the application.
func (z *ZapLogger) Fatal(msg string, fields ...contracts.Field) {
	z.log(zapcore.FatalLevel, contracts.FatalLevel, msg, fields...)
}

// Field returns a new field builder.
func (z *ZapLogger) Field() contracts.Field {
	return zapField{}
}

// SetLevel sets the minimum level that will be recorded.
func (z *ZapLogger) SetLevel(level contracts.LogLevel) {
	z.level = level
}

func (z *ZapLogger) log(zl zapcore.Level, level contracts.LogLevel, msg string, fields ...contracts.Field) {
	if level < z.level {
		return
	}

	zfields := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		if f, ok := field.(zapField); ok {
			zfields = append(zfields, f.field)
		}
	}

	switch zl {
	case zapcore.InfoLevel:
		z.logger.Info(msg, zfields...)
	case zapcore.ErrorLevel:
		z.logger.Error(msg, zfields...)
	case zapcore.DebugLevel:
		z.logger.Debug(msg, zfields...)
	case zapcore.WarnLevel:
		z.logger.Warn(msg, zfields...)
	case zapcore.FatalLevel:
		z.logger.Fatal(msg, zfields...)
	}
}

// zapField implements contracts.Field by wrapping a native zap.Field, so
// structured data reaches the encoder without intermediate formatting.
type zapField struct {
	field zap.Field
}

func (f zapField) Bool(key string, val bool) contracts.Field {
	return zapField{zap.Bool(key, val)}
}

func (f zapField) Int(key string, val int) contracts.Field {
	return zapField{zap.Int(key, val)}
}

func (f zapField) Float64(key string, val float64) contracts.Field {
	return zapField{zap.Float64(key, val)}
}

func (f zapField) String(key string, val string) contracts.Field {
	return zapField{zap.String(key, val)}
}

func (f zapField) Time(key string, val time.Time) contracts.Field {
	return zapField{zap.Time(key, val)}
}

func (f zapField) Int64(key string, val int64) contracts.Field {
	return zapField{zap.Int64(key, val)}
}

func (f zapField) Error(key string, val error) contracts.Field {
	return zapField{zap.NamedError(key, val)}
}

func (f zapField) Uint64(key string, val uint64) contracts.Field {
	return zapField{zap.Uint64(key, val)}
}

func (f zapField) Uint8(key string, val uint8) contracts.Field {
	return zapField{zap.Uint8(key, val)}
}

func (f zapField) Uint32(key string, val uint32) contracts.Field {
	return zapField{zap.Uint32(key, val)}
}

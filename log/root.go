package log

import (
	"os"
	"path/filepath"
	"time"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"hexint-tracker/config"
)

// Init replaces zap's global logger. Without a log path, output goes to
// stderr; otherwise to a rotated file under the path.
func Init(cfg *config.LogConfig) {
	core := zapcore.NewCore(newEncoder(), newWriteSyncer(cfg), levelOf(cfg.Level))
	logger := zap.New(core, zap.AddCaller())
	zap.ReplaceGlobals(logger)
}

func newEncoder() zapcore.Encoder {
	return zapcore.NewConsoleEncoder(
		zapcore.EncoderConfig{
			TimeKey:          "ts",
			LevelKey:         "level",
			NameKey:          "logger",
			FunctionKey:      zapcore.OmitKey,
			MessageKey:       "msg",
			StacktraceKey:    "stacktrace",
			LineEnding:       zapcore.DefaultLineEnding,
			EncodeLevel:      encodeLevel,
			EncodeTime:       encodeTime,
			EncodeDuration:   zapcore.SecondsDurationEncoder,
			ConsoleSeparator: " ",
		})
}

func newWriteSyncer(cfg *config.LogConfig) zapcore.WriteSyncer {
	if cfg.Path == "" {
		return zapcore.Lock(os.Stderr)
	}

	file := cfg.File
	if file == "" {
		file = "hexint-tracker.log"
	}
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   filepath.Join(cfg.Path, file),
		MaxSize:    200,
		MaxBackups: 10,
		MaxAge:     30,
	})
}

func levelOf(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "panic":
		return zapcore.PanicLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

func encodeLevel(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(level.CapitalString())
}

func encodeTime(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString("[" + t.Format("2006-01-02 15:04:05.000") + "]")
}

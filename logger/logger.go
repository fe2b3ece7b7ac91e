// Package logger builds the application's zap logger, writing to a rotated file.
// Logging is off unless enabled: the terminal is owned by the renderer.
package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/lixenwraith/gridlines/parameter"
)

// Options selects where and how much to log
type Options struct {
	Enabled bool
	File    string // defaults to logs/gridlines.log
	Level   string // zap level name, defaults to info
}

// Logger is a sugared zap logger tagged with a session id
type Logger struct {
	*zap.SugaredLogger
	Session string
	sink    *lumberjack.Logger
}

// Nop returns a logger that discards everything
func Nop() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar()}
}

// New opens the log file and returns a logger, or a no-op logger when disabled
func New(opts Options) (*Logger, error) {
	if !opts.Enabled {
		return Nop(), nil
	}

	level := zapcore.InfoLevel
	if opts.Level != "" {
		l, err := zapcore.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
		level = l
	}

	path := opts.File
	if path == "" {
		path = filepath.Join(parameter.LogDir, parameter.LogFileName)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	// Rotate at 10MB, keep 3 backups for a week
	lj := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    parameter.LogMaxSizeMB,
		MaxBackups: parameter.LogMaxBackups,
		MaxAge:     parameter.LogMaxAgeDays,
		Compress:   false,
	}

	encCfg := zapcore.EncoderConfig{
		TimeKey:       "ts",
		LevelKey:      "level",
		NameKey:       "logger",
		CallerKey:     "caller",
		MessageKey:    "msg",
		StacktraceKey: "stack",
		LineEnding:    zapcore.DefaultLineEnding,
		EncodeLevel:   zapcore.CapitalLevelEncoder,
		EncodeTime:    zapcore.ISO8601TimeEncoder,
		EncodeCaller:  zapcore.ShortCallerEncoder,
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(lj), level)

	session := uuid.NewString()
	l := zap.New(core, zap.AddCaller()).Sugar().With("session", session)
	return &Logger{SugaredLogger: l, Session: session, sink: lj}, nil
}

// Close flushes buffered entries and closes the file
func (l *Logger) Close() error {
	_ = l.Sync()
	if l.sink == nil {
		return nil
	}
	return l.sink.Close()
}

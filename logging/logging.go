// Package logging wraps logrus for the whole client: console output always,
// plus a size-unbounded rotating file when a log directory is configured.
package logging

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	rotatelogs "github.com/lestrrat/go-file-rotatelogs"
	"github.com/rifflock/lfshook"
	"github.com/sirupsen/logrus"
)

const (
	PanicLevel = "panic"
	FatalLevel = "fatal"
	ErrorLevel = "error"
	WarnLevel  = "warn"
	InfoLevel  = "info"
	DebugLevel = "debug"
)

var (
	logger     *logrus.Logger
	loggerOnce sync.Once
)

func convertLevel(level string) logrus.Level {
	switch level {
	case PanicLevel:
		return logrus.PanicLevel
	case FatalLevel:
		return logrus.FatalLevel
	case ErrorLevel:
		return logrus.ErrorLevel
	case WarnLevel:
		return logrus.WarnLevel
	case InfoLevel:
		return logrus.InfoLevel
	case DebugLevel:
		return logrus.DebugLevel
	default:
		return logrus.InfoLevel
	}
}

// Init configures the process logger. Call it once from main before anything
// else logs; later calls are ignored. An empty dir disables the file hook.
func Init(dir string, level string, maxAgeDays uint32) *logrus.Logger {
	loggerOnce.Do(func() {
		clog := logrus.New()
		clog.Out = os.Stdout
		clog.Formatter = &logrus.TextFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
			FullTimestamp:   true,
		}
		clog.Level = convertLevel(level)

		if dir != "" {
			if hook, err := newFileRotateHook(dir, maxAgeDays); err != nil {
				clog.Warnf("file logging disabled: %v", err)
			} else {
				clog.Hooks.Add(hook)
			}
		}
		logger = clog
	})
	return logger
}

// Log returns the process logger, initializing a console-only one on first
// use if Init was never called.
func Log() *logrus.Logger {
	if logger == nil {
		return Init("", InfoLevel, 0)
	}
	return logger
}

func newFileRotateHook(dir string, maxAgeDays uint32) (logrus.Hook, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}
	path := filepath.Join(dir, "deex-cli.log")
	writer, err := rotatelogs.New(
		path+".%Y%m%d",
		rotatelogs.WithLinkName(path),
		rotatelogs.WithRotationTime(24*time.Hour),
		rotatelogs.WithMaxAge(time.Duration(maxAgeDays)*24*time.Hour),
	)
	if err != nil {
		return nil, err
	}
	return lfshook.NewHook(lfshook.WriterMap{
		logrus.DebugLevel: writer,
		logrus.InfoLevel:  writer,
		logrus.WarnLevel:  writer,
		logrus.ErrorLevel: writer,
		logrus.FatalLevel: writer,
		logrus.PanicLevel: writer,
	}, &logrus.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
		DisableColors:   true,
	}), nil
}

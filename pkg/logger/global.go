// pkg/logger/global.go
package logger

import (
	"io"
)

var globalLogger *Logger

func InitGlobal(logPath, logLevel string, debug bool) error {
	l, err := NewLogger(logPath, logLevel, debug)
	if err != nil {
		return err
	}
	globalLogger = l
	return nil
}

// SetGlobal подменяет глобальный логгер
func SetGlobal(l *Logger) {
	globalLogger = l
}

// Discard отключает глобальный вывод
func Discard() {
	globalLogger = NewWriterLogger(io.Discard, LevelFatal)
}

// Глобальные методы для удобства
func Debug(format string, v ...interface{}) {
	if globalLogger != nil {
		globalLogger.Debug(format, v...)
	}
}

func Info(format string, v ...interface{}) {
	if globalLogger != nil {
		globalLogger.Info(format, v...)
	}
}

func Warn(format string, v ...interface{}) {
	if globalLogger != nil {
		globalLogger.Warn(format, v...)
	}
}

func Error(format string, v ...interface{}) {
	if globalLogger != nil {
		globalLogger.Error(format, v...)
	}
}

func Status(stats map[string]string) {
	if globalLogger != nil {
		globalLogger.Status(stats)
	}
}

func Close() {
	if globalLogger != nil {
		globalLogger.Close()
	}
}

// Package logger 提供统一的日志工具
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"
)

// Level 日志级别
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel 解析日志级别字符串
func ParseLevel(s string) Level {
	switch s {
	case "DEBUG", "debug":
		return DEBUG
	case "INFO", "info":
		return INFO
	case "WARN", "warn", "WARNING", "warning":
		return WARN
	case "ERROR", "error":
		return ERROR
	default:
		return INFO
	}
}

// sink 所有组件日志共享的输出端
type sink struct {
	mu      sync.Mutex
	level   Level
	enabled bool
	console bool
	file    bool
	fileOut *os.File
	out     *log.Logger
}

func (s *sink) updateOutput() {
	var writers []io.Writer

	if s.console {
		writers = append(writers, os.Stdout)
	}
	if s.file && s.fileOut != nil {
		writers = append(writers, s.fileOut)
	}

	switch len(writers) {
	case 0:
		s.out.SetOutput(io.Discard)
	case 1:
		s.out.SetOutput(writers[0])
	default:
		s.out.SetOutput(io.MultiWriter(writers...))
	}
}

// Logger 组件日志记录器
// 同一个 sink 下的 Logger 共享级别和输出，仅名称不同
type Logger struct {
	name string
	s    *sink
}

var defaultLogger = New()

// New 创建新的 Logger 实例（独立的输出端）
func New() *Logger {
	return &Logger{
		s: &sink{
			level:   INFO,
			enabled: true,
			console: true,
			out:     log.New(os.Stdout, "", 0),
		},
	}
}

// NewWriter 创建输出到指定 writer 的 Logger（测试中常用）
func NewWriter(w io.Writer, level Level) *Logger {
	return &Logger{
		s: &sink{
			level:   level,
			enabled: true,
			out:     log.New(w, "", 0),
		},
	}
}

// Default 获取默认 logger
func Default() *Logger {
	return defaultLogger
}

// Named 从默认 logger 派生组件 logger
func Named(name string) *Logger {
	return defaultLogger.Named(name)
}

// Named 派生共享输出端的组件 logger
func (l *Logger) Named(name string) *Logger {
	return &Logger{name: name, s: l.s}
}

// Name 返回组件名称
func (l *Logger) Name() string {
	return l.name
}

// SetLevel 设置日志级别
func (l *Logger) SetLevel(level Level) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	l.s.level = level
}

// SetEnabled 设置是否启用日志
func (l *Logger) SetEnabled(enabled bool) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	l.s.enabled = enabled
}

// SetConsole 设置是否输出到控制台
func (l *Logger) SetConsole(enabled bool) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	l.s.console = enabled
	l.s.updateOutput()
}

// SetFile 设置是否输出到文件
func (l *Logger) SetFile(enabled bool, path string) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()

	if l.s.fileOut != nil {
		l.s.fileOut.Close()
		l.s.fileOut = nil
	}

	l.s.file = enabled

	if enabled && path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("无法打开日志文件: %w", err)
		}
		l.s.fileOut = f
	}

	l.s.updateOutput()
	return nil
}

func (l *Logger) log(level Level, format string, args ...interface{}) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()

	if !l.s.enabled || level < l.s.level {
		return
	}

	timestamp := time.Now().Format("15:04:05")
	msg := fmt.Sprintf(format, args...)
	if l.name != "" {
		l.s.out.Printf("%s | %-5s | %s | %s", timestamp, level.String(), l.name, msg)
		return
	}
	l.s.out.Printf("%s | %-5s | %s", timestamp, level.String(), msg)
}

// Debug 输出 DEBUG 级别日志
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(DEBUG, format, args...)
}

// Info 输出 INFO 级别日志
func (l *Logger) Info(format string, args ...interface{}) {
	l.log(INFO, format, args...)
}

// Warn 输出 WARN 级别日志
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(WARN, format, args...)
}

// Error 输出 ERROR 级别日志
func (l *Logger) Error(format string, args ...interface{}) {
	l.log(ERROR, format, args...)
}

// LogEvent 记录带分类的事件日志
// 失败的搜索是预期结果，记为 WARN 而不是 ERROR
func (l *Logger) LogEvent(category string, ok bool, elapsedMs float64, detail string) {
	if ok {
		l.Info("%-6s | OK | %7.1fms | %s", category, elapsedMs, detail)
	} else {
		l.Warn("%-6s | NG | %7.1fms | %s", category, elapsedMs, detail)
	}
}

// Close 关闭 logger，释放资源
func (l *Logger) Close() error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()

	if l.s.fileOut != nil {
		err := l.s.fileOut.Close()
		l.s.fileOut = nil
		return err
	}
	return nil
}

// 包级别便捷函数
func Debug(format string, args ...interface{}) { defaultLogger.Debug(format, args...) }
func Info(format string, args ...interface{})  { defaultLogger.Info(format, args...) }
func Warn(format string, args ...interface{})  { defaultLogger.Warn(format, args...) }
func Error(format string, args ...interface{}) { defaultLogger.Error(format, args...) }
func LogEvent(category string, ok bool, elapsedMs float64, detail string) {
	defaultLogger.LogEvent(category, ok, elapsedMs, detail)
}

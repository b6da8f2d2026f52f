// Package fail 定义两类错误：调用参数错误与搜索结果失败
//
// 参数错误（ErrInvalidUsage）总是同步返回，消息中带有出错的调用与参数，不应重试。
// 搜索失败（ErrFindFailed）是预期内的运行结果，调用方可以选择重试或忽略。
package fail

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidUsage 调用参数错误
	ErrInvalidUsage = errors.New("invalid usage")
	// ErrFindFailed 超时内未找到（或未消失）
	ErrFindFailed = errors.New("find failed")
	// ErrNotFound 资源不存在（图像文件、显示器编号等）
	ErrNotFound = errors.New("not found")
)

// UsageError 参数错误
type UsageError struct {
	Call   string // 出错的调用，如 Rect.SetW
	Args   string // 调用参数
	Reason string // 原因
	Err    error  // 可选的底层错误
}

func (e *UsageError) Error() string {
	msg := fmt.Sprintf("调用 %s 参数错误: %s", e.Call, e.Args)
	if e.Reason != "" {
		msg += " (" + e.Reason + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is 让 errors.Is(err, ErrInvalidUsage) 成立
func (e *UsageError) Is(target error) bool {
	return target == ErrInvalidUsage
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

// Usage 创建参数错误
func Usage(call, args, reason string) *UsageError {
	return &UsageError{Call: call, Args: args, Reason: reason}
}

// Usagef 创建参数错误，原因使用格式化字符串
func Usagef(call, args, format string, a ...interface{}) *UsageError {
	return &UsageError{Call: call, Args: args, Reason: fmt.Sprintf(format, a...)}
}

// WrapUsage 用外层调用重新标注错误，保留底层错误
func WrapUsage(call, args string, err error) *UsageError {
	return &UsageError{Call: call, Args: args, Err: err}
}

// Args 将键值对格式化为参数描述: Args("w", 0, "relation", "center") => "w=0, relation=center"
func Args(kv ...interface{}) string {
	parts := make([]string, 0, (len(kv)+1)/2)
	for i := 0; i < len(kv); i += 2 {
		if i+1 < len(kv) {
			parts = append(parts, fmt.Sprintf("%v=%v", kv[i], kv[i+1]))
		} else {
			parts = append(parts, fmt.Sprintf("%v", kv[i]))
		}
	}
	return strings.Join(parts, ", ")
}

// FindFailedError 搜索失败
type FindFailedError struct {
	Patterns []string // 参与搜索的图像文件名
	Region   string   // 搜索区域描述
	Vanish   bool     // true 表示等待消失超时
}

func (e *FindFailedError) Error() string {
	files := strings.Join(e.Patterns, ", ")
	if e.Vanish {
		return fmt.Sprintf("\"%s\" 在 %s 中未消失", files, e.Region)
	}
	return fmt.Sprintf("无法在 %s 中找到 \"%s\"", e.Region, files)
}

// Is 让 errors.Is(err, ErrFindFailed) 成立
func (e *FindFailedError) Is(target error) bool {
	return target == ErrFindFailed
}

// NotFoundError 资源不存在
type NotFoundError struct {
	What string
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s 不存在: %s", e.What, e.Name)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// IsUsage 判断是否为参数错误
func IsUsage(err error) bool {
	return errors.Is(err, ErrInvalidUsage)
}

// IsFindFailed 判断是否为搜索失败
func IsFindFailed(err error) bool {
	return errors.Is(err, ErrFindFailed)
}

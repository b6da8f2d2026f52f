package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"DEBUG":   DEBUG,
		"info":    INFO,
		"warning": WARN,
		"ERROR":   ERROR,
		"???":     INFO,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestNamedSharesSink(t *testing.T) {
	var buf bytes.Buffer
	root := NewWriter(&buf, INFO)
	region := root.Named("region")

	region.Debug("不应输出")
	region.Info("找到 %d 个匹配", 3)

	out := buf.String()
	if strings.Contains(out, "不应输出") {
		t.Errorf("DEBUG 日志不应输出: %q", out)
	}
	if !strings.Contains(out, "| region | 找到 3 个匹配") {
		t.Errorf("日志缺少组件名称: %q", out)
	}

	root.SetLevel(DEBUG)
	region.Debug("现在可以输出")
	if !strings.Contains(buf.String(), "现在可以输出") {
		t.Error("派生 logger 应共享级别设置")
	}
}

func TestLogEvent(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, DEBUG).Named("search")

	l.LogEvent("FIND", true, 12.5, "a.png")
	l.LogEvent("FIND", false, 3000, "b.png")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("期望 2 行日志, 实际 %d: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "INFO") || !strings.Contains(lines[0], "| OK |") {
		t.Errorf("成功事件格式错误: %q", lines[0])
	}
	if !strings.Contains(lines[1], "WARN") || !strings.Contains(lines[1], "| NG |") {
		t.Errorf("失败事件格式错误: %q", lines[1])
	}
}

func TestSetEnabled(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, DEBUG)
	l.SetEnabled(false)
	l.Error("静默")
	if buf.Len() != 0 {
		t.Errorf("禁用后不应输出: %q", buf.String())
	}
}

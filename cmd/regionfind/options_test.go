package main

import (
	"flag"
	"io"
	"testing"

	"github.com/zoeyai/regionfind/pkg/config"
)

func parse(t *testing.T, args ...string) (*options, error) {
	t.Helper()
	fs := flag.NewFlagSet("regionfind", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return parseFlags(fs, args)
}

func TestParseFlags(t *testing.T) {
	o, err := parse(t, "-pattern", "a.png, b.png", "-mode", "vanish", "-timeout", "2.5", "-similarity", "0.9")
	if err != nil {
		t.Fatal(err)
	}
	if len(o.patterns) != 2 || o.patterns[1] != "b.png" {
		t.Errorf("图像列表解析错误: %v", o.patterns)
	}
	if o.mode != "vanish" || o.screen != 1 {
		t.Errorf("参数错误: %+v", o)
	}
	if got := o.targets().([]string); len(got) != 2 {
		t.Errorf("多个图像应为列表: %v", got)
	}
	if len(o.findOptions()) != 2 {
		t.Errorf("应有超时和相似度两个选项")
	}
}

func TestParseFlagsErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"未知模式", []string{"-pattern", "a.png", "-mode", "click"}},
		{"缺少图像", []string{"-mode", "find"}},
		{"只给宽度", []string{"-pattern", "a.png", "-w", "10"}},
	}
	for _, tt := range tests {
		if _, err := parse(t, tt.args...); err == nil {
			t.Errorf("%s: 应返回错误", tt.name)
		}
	}

	// wait 模式可以不给图像
	o, err := parse(t, "-mode", "wait", "-timeout", "1")
	if err != nil {
		t.Fatal(err)
	}
	if o.targets() != nil || len(o.findOptions()) != 1 {
		t.Errorf("wait 参数错误: %v %d", o.targets(), len(o.findOptions()))
	}

	if o, err := parse(t, "-version"); err != nil || !o.showVersion {
		t.Errorf("-version 不需要其他参数: %v", err)
	}
}

func TestApplyTo(t *testing.T) {
	s := config.Default()
	s.AddImagePath("/images")

	o, err := parse(t, "-pattern", "a.png", "-image-path", "/images,/more", "-failed-dir", "/tmp/failed",
		"-log-level", "debug", "-timeout", "0")
	if err != nil {
		t.Fatal(err)
	}
	o.applyTo(s)

	if len(s.ImagePaths) != 2 || s.ImagePaths[1] != "/more" {
		t.Errorf("图像目录应去重追加: %v", s.ImagePaths)
	}
	if s.FindFailedDir != "/tmp/failed" || s.LogLevel != "DEBUG" || s.FindTimeout != 0 {
		t.Errorf("命令行参数应覆盖配置: %+v", s)
	}

	// 未指定时保留配置值
	s = config.Default()
	o, _ = parse(t, "-pattern", "a.png")
	o.applyTo(s)
	if s.FindTimeout != config.DefaultFindTimeout || len(o.findOptions()) != 0 {
		t.Errorf("未指定超时时应使用配置值: %v", s.FindTimeout)
	}
}

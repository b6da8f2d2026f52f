package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/zoeyai/regionfind/pkg/config"
	"github.com/zoeyai/regionfind/pkg/region"
)

var modes = map[string]bool{
	"find":    true,
	"exists":  true,
	"vanish":  true,
	"findall": true,
	"wait":    true,
}

// options 命令行参数
type options struct {
	x, y, w, h int
	screen     int
	window     string
	patterns   []string
	similarity float64
	timeout    float64
	mode       string
	click      bool
	imagePaths []string
	failedDir  string
	logLevel   string
	logFile    string
	shot       string

	saveConfig  bool
	showVersion bool
	showHelp    bool
}

// parseFlags 解析命令行参数
func parseFlags(fs *flag.FlagSet, args []string) (*options, error) {
	o := &options{}
	var patterns, imagePaths string

	fs.IntVar(&o.x, "x", 0, "区域左上角 x")
	fs.IntVar(&o.y, "y", 0, "区域左上角 y")
	fs.IntVar(&o.w, "w", 0, "区域宽度 (0 为整个显示器)")
	fs.IntVar(&o.h, "h", 0, "区域高度 (0 为整个显示器)")
	fs.IntVar(&o.screen, "screen", 1, "显示器编号 (0 为所有显示器)")
	fs.StringVar(&o.window, "window", "", "按进程名使用其窗口作为搜索区域")
	fs.StringVar(&patterns, "pattern", "", "图像文件，多个用逗号分隔")
	fs.Float64Var(&o.similarity, "similarity", 0, "相似度 (0, 1]，0 使用配置值")
	fs.Float64Var(&o.timeout, "timeout", -1, "超时秒数，负数使用配置值")
	fs.StringVar(&o.mode, "mode", "find", "find | exists | vanish | findall | wait")
	fs.BoolVar(&o.click, "click", false, "找到后点击目标点")
	fs.StringVar(&imagePaths, "image-path", "", "图像搜索目录，多个用逗号分隔")
	fs.StringVar(&o.failedDir, "failed-dir", "", "失败截图目录")
	fs.StringVar(&o.logLevel, "log-level", "", "日志级别")
	fs.StringVar(&o.logFile, "log-file", "", "日志文件")
	fs.StringVar(&o.shot, "shot", "", "保存搜索区域截图")
	fs.BoolVar(&o.saveConfig, "save", false, "保存配置到本地")
	fs.BoolVar(&o.showVersion, "version", false, "显示版本信息")
	fs.BoolVar(&o.showHelp, "help", false, "显示帮助信息")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	o.patterns = splitList(patterns)
	o.imagePaths = splitList(imagePaths)

	if o.showVersion || o.showHelp {
		return o, nil
	}
	if !modes[o.mode] {
		return nil, fmt.Errorf("未知的模式: %s", o.mode)
	}
	if len(o.patterns) == 0 && o.mode != "wait" && o.shot == "" {
		return nil, fmt.Errorf("缺少图像文件，请使用 -pattern 参数指定")
	}
	if (o.w == 0) != (o.h == 0) {
		return nil, fmt.Errorf("-w 和 -h 需要同时指定")
	}
	return o, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// applyTo 用命令行参数覆盖配置
func (o *options) applyTo(s *config.Settings) {
	for _, dir := range o.imagePaths {
		s.AddImagePath(dir)
	}
	if o.failedDir != "" {
		s.FindFailedDir = o.failedDir
	}
	if o.logLevel != "" {
		s.LogLevel = strings.ToUpper(o.logLevel)
	}
	if o.timeout >= 0 {
		s.FindTimeout = o.timeout
	}
}

// region 根据参数创建搜索区域
func (o *options) region(env *region.Env) (*region.Region, error) {
	if o.window != "" {
		return region.ForWindowName(env, o.window)
	}
	if o.w == 0 && o.h == 0 {
		return region.ForScreen(env, o.screen)
	}
	return region.New(env, o.x, o.y, o.w, o.h, region.OnScreen(o.screen), region.WithTitle("命令行区域"))
}

// targets 查找目标：单个图像为 string，多个为 []string，没有时为 nil
func (o *options) targets() any {
	switch len(o.patterns) {
	case 0:
		return nil
	case 1:
		return o.patterns[0]
	default:
		return o.patterns
	}
}

func (o *options) findOptions() []region.FindOption {
	var opts []region.FindOption
	if o.timeout >= 0 {
		opts = append(opts, region.Timeout(config.Seconds(o.timeout)))
	}
	if o.similarity != 0 {
		opts = append(opts, region.Similarity(o.similarity))
	}
	return opts
}

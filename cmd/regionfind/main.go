package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/zoeyai/regionfind/internal/logger"
	"github.com/zoeyai/regionfind/pkg/config"
	"github.com/zoeyai/regionfind/pkg/fail"
	"github.com/zoeyai/regionfind/pkg/match"
	"github.com/zoeyai/regionfind/pkg/platform"
	"github.com/zoeyai/regionfind/pkg/region"
)

// 版本信息 (可通过 ldflags 注入)
var (
	Version   = "1.0.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// 退出码
const (
	exitOK       = 0
	exitNotFound = 1
	exitUsage    = 2
	exitError    = 3
)

func main() {
	opts, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Printf("[ERROR] %v\n", err)
		os.Exit(exitUsage)
	}

	if opts.showVersion {
		printVersion()
		return
	}
	if opts.showHelp {
		printHelp()
		return
	}

	os.Exit(run(opts))
}

func run(opts *options) int {
	// 加载配置，命令行参数优先级高于配置文件
	manager := config.NewManager()
	settings, err := manager.Load()
	if err != nil {
		fmt.Printf("[WARN] 加载配置失败: %v\n", err)
	}
	opts.applyTo(settings)
	if err := settings.Validate(); err != nil {
		fmt.Printf("[ERROR] %v\n", err)
		return exitUsage
	}

	log := logger.Default()
	log.SetLevel(logger.ParseLevel(settings.LogLevel))
	if opts.logFile != "" {
		if err := log.SetFile(true, opts.logFile); err != nil {
			fmt.Printf("[WARN] 打开日志文件失败: %v\n", err)
		}
	}
	defer log.Close()

	if opts.saveConfig {
		if err := manager.Save(settings); err != nil {
			fmt.Printf("[WARN] 保存配置失败: %v\n", err)
		} else {
			fmt.Printf("[INFO] 配置已保存到 %s\n", manager.GetConfigFile())
		}
	}

	p := platform.Detect()
	if p == platform.Darwin {
		checkPermissions()
	}
	backend, err := platform.NewBackend(p)
	if err != nil {
		fmt.Printf("[ERROR] %v\n", err)
		return exitError
	}
	log.Debug("运行环境: %s", platform.Describe())

	env, err := region.NewEnv(settings, backend)
	if err != nil {
		fmt.Printf("[ERROR] %v\n", err)
		return exitUsage
	}

	r, err := opts.region(env)
	if err != nil {
		fmt.Printf("[ERROR] %v\n", err)
		return exitCode(err)
	}
	fmt.Printf("[INFO] 搜索区域: %s\n", r)

	if opts.shot != "" {
		if err := saveShot(r, opts.shot); err != nil {
			fmt.Printf("[ERROR] 保存截图失败: %v\n", err)
			return exitCode(err)
		}
		fmt.Printf("[INFO] 截图已保存到 %s\n", opts.shot)
		if len(opts.patterns) == 0 {
			return exitOK
		}
	}

	return execute(r, opts)
}

// execute 按模式执行查找
func execute(r *region.Region, opts *options) int {
	targets := opts.targets()
	findOpts := opts.findOptions()

	switch opts.mode {
	case "find", "wait":
		var m *match.Match
		var err error
		if opts.mode == "wait" {
			m, err = r.Wait(targets, findOpts...)
		} else {
			m, err = r.Find(targets, findOpts...)
		}
		if err != nil {
			fmt.Printf("[ERROR] %v\n", err)
			return exitCode(err)
		}
		if m == nil {
			fmt.Println("[INFO] 等待结束")
			return exitOK
		}
		fmt.Println(m)
		if opts.click {
			if err := r.ClickMatch(m); err != nil {
				fmt.Printf("[ERROR] %v\n", err)
				return exitCode(err)
			}
		}

	case "exists":
		ok, err := r.Exists(targets, findOpts...)
		if err != nil {
			fmt.Printf("[ERROR] %v\n", err)
			return exitCode(err)
		}
		fmt.Println(ok)
		if !ok {
			return exitNotFound
		}

	case "vanish":
		gone, err := r.WaitVanish(targets, findOpts...)
		if err != nil {
			fmt.Printf("[ERROR] %v\n", err)
			return exitCode(err)
		}
		fmt.Println(gone)
		if !gone {
			return exitNotFound
		}

	case "findall":
		ms, err := r.FindAll(targets, 0, findOpts...)
		if err != nil {
			fmt.Printf("[ERROR] %v\n", err)
			return exitCode(err)
		}
		for _, m := range ms {
			fmt.Println(m)
		}
		if len(ms) == 0 {
			return exitNotFound
		}
	}
	return exitOK
}

func saveShot(r *region.Region, path string) error {
	if strings.HasSuffix(strings.ToLower(path), ".png") {
		return r.SaveAsPNG(path)
	}
	return r.SaveAsJPG(path)
}

func exitCode(err error) int {
	switch {
	case fail.IsFindFailed(err):
		return exitNotFound
	case fail.IsUsage(err):
		return exitUsage
	default:
		return exitError
	}
}

// checkPermissions 检查 macOS 权限
func checkPermissions() {
	perm := platform.CheckPermissions()
	if perm.Granted() {
		return
	}
	fmt.Println("[WARN] ========== 缺少权限 ==========")
	for _, line := range strings.Split(perm.Instructions(), "\n") {
		fmt.Printf("[WARN] %s\n", line)
	}
	fmt.Println("[WARN] ==================================")
}

// printVersion 打印版本信息
func printVersion() {
	fmt.Printf("regionfind v%s\n", Version)
	fmt.Printf("Build Time: %s\n", BuildTime)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}

// printHelp 打印帮助信息
func printHelp() {
	fmt.Println("regionfind - 屏幕区域图像查找")
	fmt.Println()
	fmt.Println("用法:")
	fmt.Println("  regionfind [选项]")
	fmt.Println()
	fmt.Println("选项:")
	fmt.Println("  -x, -y, -w, -h int    搜索区域 (宽高为 0 时使用整个显示器)")
	fmt.Println("  -screen int           显示器编号 (0 为所有显示器，默认 1)")
	fmt.Println("  -window string        按进程名使用其窗口作为搜索区域")
	fmt.Println("  -pattern string       图像文件，多个用逗号分隔")
	fmt.Println("  -similarity float     相似度 (0, 1]，默认使用配置值")
	fmt.Println("  -timeout float        超时秒数，负数使用配置值")
	fmt.Println("  -mode string          find | exists | vanish | findall | wait")
	fmt.Println("  -click                找到后点击目标点")
	fmt.Println("  -image-path string    图像搜索目录，多个用逗号分隔")
	fmt.Println("  -failed-dir string    失败截图目录")
	fmt.Println("  -log-level string     日志级别 (DEBUG/INFO/WARN/ERROR)")
	fmt.Println("  -log-file string      同时写入日志文件")
	fmt.Println("  -shot string          保存搜索区域截图 (.png 或 .jpg)")
	fmt.Println("  -save                 保存配置到本地")
	fmt.Println("  -version              显示版本信息")
	fmt.Println("  -help                 显示帮助信息")
	fmt.Println()
	fmt.Println("示例:")
	fmt.Println("  # 在主显示器上查找按钮并点击")
	fmt.Println("  regionfind -pattern ok.png -click")
	fmt.Println()
	fmt.Println("  # 等待加载图标在 10 秒内消失")
	fmt.Println("  regionfind -x 0 -y 0 -w 800 -h 600 -pattern loading.png -mode vanish -timeout 10")
	fmt.Println()
	fmt.Printf("配置文件位置: %s\n", config.NewManager().GetConfigFile())
}

// Package platform 启动时确定运行平台并选择对应的屏幕与输入实现
package platform

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v4/host"

	"github.com/zoeyai/regionfind/pkg/input"
	"github.com/zoeyai/regionfind/pkg/screen"
)

// Platform 运行平台
type Platform int

const (
	Unknown Platform = iota
	Windows
	Darwin
	Linux
)

func (p Platform) String() string {
	switch p {
	case Windows:
		return "WINDOWS"
	case Darwin:
		return "MACOS"
	case Linux:
		return "LINUX"
	default:
		return "UNKNOWN"
	}
}

// Detect 检测当前平台
func Detect() Platform {
	return fromGOOS(runtime.GOOS)
}

func fromGOOS(goos string) Platform {
	switch goos {
	case "windows":
		return Windows
	case "darwin":
		return Darwin
	case "linux":
		return Linux
	default:
		return Unknown
	}
}

// Backend 平台能力集合
type Backend struct {
	Platform Platform
	Screens  screen.Directory
	Frames   screen.FrameProvider
	Input    input.Driver
}

// NewBackend 按平台创建能力集合，三个桌面平台都由 robotgo 提供
func NewBackend(p Platform) (*Backend, error) {
	switch p {
	case Windows, Darwin, Linux:
		return &Backend{
			Platform: p,
			Screens:  screen.RobotDirectory{},
			Frames:   screen.RobotFrames{},
			Input:    input.RobotDriver{},
		}, nil
	default:
		return nil, fmt.Errorf("不支持的平台: %s/%s", runtime.GOOS, runtime.GOARCH)
	}
}

// SystemInfo 系统信息
type SystemInfo struct {
	Hostname        string `json:"hostname"`
	Platform        string `json:"platform"`
	OS              string `json:"os"`
	PlatformVersion string `json:"platform_version"`
	KernelArch      string `json:"kernel_arch"`
}

func (s SystemInfo) String() string {
	parts := []string{s.Platform}
	if s.OS != "" {
		parts = append(parts, s.OS)
	}
	if s.PlatformVersion != "" {
		parts = append(parts, s.PlatformVersion)
	}
	if s.KernelArch != "" {
		parts = append(parts, s.KernelArch)
	}
	return fmt.Sprintf("%s (%s)", s.Hostname, strings.Join(parts, " "))
}

// Describe 获取当前系统信息，gopsutil 失败时只返回 GOOS/GOARCH
func Describe() SystemInfo {
	info := SystemInfo{
		Platform:   Detect().String(),
		OS:         runtime.GOOS,
		KernelArch: runtime.GOARCH,
	}
	h, err := host.Info()
	if err != nil {
		return info
	}
	info.Hostname = h.Hostname
	if h.Platform != "" {
		info.OS = h.Platform
	}
	info.PlatformVersion = h.PlatformVersion
	if h.KernelArch != "" {
		info.KernelArch = h.KernelArch
	}
	return info
}

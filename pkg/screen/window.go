package screen

import (
	"fmt"
	"strings"

	"github.com/go-vgo/robotgo"
	"github.com/shirou/gopsutil/v4/process"

	"github.com/zoeyai/regionfind/pkg/fail"
	"github.com/zoeyai/regionfind/pkg/geom"
)

// WindowInfo 窗口信息
type WindowInfo struct {
	PID    int       `json:"pid"`
	Name   string    `json:"name"`
	Title  string    `json:"title"`
	Bounds geom.Rect `json:"-"`
}

// WindowLocator 窗口查找
type WindowLocator interface {
	FindWindow(name string) (*WindowInfo, error)
	WindowBounds(pid int) (geom.Rect, error)
}

// SystemWindows 基于 robotgo 与 gopsutil 的 WindowLocator
type SystemWindows struct{}

func (SystemWindows) FindWindow(name string) (*WindowInfo, error) { return FindWindow(name) }
func (SystemWindows) WindowBounds(pid int) (geom.Rect, error)     { return WindowBounds(pid) }

// WindowBounds 获取进程主窗口的边界
func WindowBounds(pid int) (geom.Rect, error) {
	x, y, w, h := robotgo.GetBounds(pid)
	r, err := geom.NewRect(x, y, w, h)
	if err != nil {
		return geom.Rect{}, &fail.NotFoundError{What: "窗口", Name: fmt.Sprintf("pid=%d", pid)}
	}
	return r, nil
}

// FindWindow 按进程名查找窗口（不区分大小写，部分匹配），返回第一个有窗口的进程
func FindWindow(name string) (*WindowInfo, error) {
	procs, err := process.Processes()
	if err != nil {
		return nil, fmt.Errorf("获取进程列表失败: %w", err)
	}

	needle := strings.ToLower(name)
	for _, p := range procs {
		pname, err := p.Name()
		if err != nil || !strings.Contains(strings.ToLower(pname), needle) {
			continue
		}
		pid := int(p.Pid)
		bounds, err := WindowBounds(pid)
		if err != nil {
			continue
		}
		return &WindowInfo{
			PID:    pid,
			Name:   pname,
			Title:  robotgo.GetTitle(pid),
			Bounds: bounds,
		}, nil
	}
	return nil, &fail.NotFoundError{What: "窗口", Name: name}
}

// Package screen 显示器信息与截图
//
// 坐标约定：调用方使用逻辑像素；截图返回的是物理像素，
// 两者之间相差所在显示器的缩放系数（Retina 等高 DPI 屏幕上大于 1）。
package screen

import (
	"fmt"
	"image"

	"github.com/zoeyai/regionfind/pkg/fail"
	"github.com/zoeyai/regionfind/pkg/geom"
)

// Monitor 单个物理显示器
type Monitor struct {
	Area  geom.Rect
	Scale float64
}

// Directory 显示器目录，编号从 1 开始
type Directory interface {
	Count() int
	Monitor(index int) (Monitor, error)
}

// FrameProvider 截取逻辑区域 (x, y, w, h)，返回物理像素图像
// 返回图像可以比 w*scale × h*scale 大（按硬件对齐填充），多余部分由调用方丢弃
type FrameProvider interface {
	Capture(x, y, w, h int) (image.Image, error)
}

// Screen 显示器（编号 0 表示所有显示器的并集）
type Screen struct {
	Number int
	Area   geom.Rect
	Scale  float64
}

func (s Screen) String() string {
	return fmt.Sprintf("Screen %d %s", s.Number, s.Area)
}

// MonitorInfo 查询显示器：0 为并集（缩放系数取 1），>= 1 为物理显示器
func MonitorInfo(dir Directory, index int) (Screen, error) {
	count := dir.Count()
	if index < 0 || index > count || count == 0 {
		return Screen{}, fail.WrapUsage("screen.MonitorInfo", fail.Args("index", index),
			&fail.NotFoundError{What: "显示器", Name: fmt.Sprint(index)})
	}

	if index > 0 {
		m, err := dir.Monitor(index)
		if err != nil {
			return Screen{}, fmt.Errorf("获取显示器 %d 信息失败: %w", index, err)
		}
		return Screen{Number: index, Area: m.Area, Scale: normalizeScale(m.Scale)}, nil
	}

	areas := make([]geom.Rect, 0, count)
	for i := 1; i <= count; i++ {
		m, err := dir.Monitor(i)
		if err != nil {
			return Screen{}, fmt.Errorf("获取显示器 %d 信息失败: %w", i, err)
		}
		areas = append(areas, m.Area)
	}
	return Screen{Number: 0, Area: geom.Union(areas...), Scale: 1}, nil
}

// Containing 返回包含点 l 的显示器，找不到时返回主显示器
func Containing(dir Directory, l geom.Location) (Screen, error) {
	for i := 1; i <= dir.Count(); i++ {
		s, err := MonitorInfo(dir, i)
		if err != nil {
			return Screen{}, err
		}
		if s.Area.Contains(l) {
			return s, nil
		}
	}
	return MonitorInfo(dir, 1)
}

func normalizeScale(v float64) float64 {
	if v <= 0 {
		return 1
	}
	return v
}

package screen

import (
	"fmt"
	"image"

	"github.com/go-vgo/robotgo"

	"github.com/zoeyai/regionfind/pkg/geom"
)

// RobotDirectory 基于 robotgo 的显示器目录
type RobotDirectory struct{}

// Count 显示器数量
func (RobotDirectory) Count() int {
	return robotgo.DisplaysNum()
}

// Monitor 第 index 个显示器（从 1 开始）
func (RobotDirectory) Monitor(index int) (Monitor, error) {
	x, y, w, h := robotgo.GetDisplayBounds(index - 1)
	area, err := geom.NewRect(x, y, w, h)
	if err != nil {
		return Monitor{}, fmt.Errorf("显示器 %d 尺寸无效: %w", index, err)
	}
	return Monitor{Area: area, Scale: robotgo.ScaleF(index - 1)}, nil
}

// RobotFrames 基于 robotgo 的截图
type RobotFrames struct{}

// Capture 截取逻辑区域
func (RobotFrames) Capture(x, y, w, h int) (image.Image, error) {
	img, err := robotgo.CaptureImg(x, y, w, h)
	if err != nil {
		return nil, fmt.Errorf("截取区域失败: %w", err)
	}
	return img, nil
}

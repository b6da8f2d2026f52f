// Package input 鼠标与键盘模拟
//
// Driver 是平台相关的最小操作集合；Actor 在其上实现点击、拖拽、输入等
// 带延时的组合动作，坐标均为逻辑像素。
package input

import (
	"github.com/go-vgo/robotgo"
)

// Button 鼠标按键
type Button string

const (
	Left  Button = "left"
	Right Button = "right"
)

// Driver 输入模拟的底层操作
type Driver interface {
	MoveTo(x, y int)
	Position() (x, y int)
	Toggle(button Button, down bool)
	// Scroll direction > 0 向前（上），< 0 向后（下）
	Scroll(direction int)
	TypeText(text string, modifiers ...string)
	KeyTap(key string, modifiers ...string)
}

// RobotDriver 基于 robotgo 的 Driver
type RobotDriver struct{}

// MoveTo 移动鼠标到指定位置
func (RobotDriver) MoveTo(x, y int) {
	robotgo.Move(x, y)
}

// Position 获取鼠标位置
func (RobotDriver) Position() (int, int) {
	return robotgo.Location()
}

// Toggle 按下或释放鼠标键
func (RobotDriver) Toggle(button Button, down bool) {
	if down {
		robotgo.Toggle(string(button))
		return
	}
	robotgo.Toggle(string(button), "up")
}

// Scroll 滚动一格
func (RobotDriver) Scroll(direction int) {
	if direction >= 0 {
		robotgo.ScrollDir(1, "up")
	} else {
		robotgo.ScrollDir(1, "down")
	}
}

// TypeText 输入文字；带修饰键时逐个字符按键
func (RobotDriver) TypeText(text string, modifiers ...string) {
	if len(modifiers) == 0 {
		robotgo.TypeStr(text)
		return
	}
	for _, r := range text {
		robotgo.KeyTap(string(r), modifiers)
	}
}

// KeyTap 按键
func (RobotDriver) KeyTap(key string, modifiers ...string) {
	if len(modifiers) > 0 {
		robotgo.KeyTap(key, modifiers)
	} else {
		robotgo.KeyTap(key)
	}
}

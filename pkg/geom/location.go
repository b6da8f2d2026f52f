package geom

import (
	"fmt"
	"image"

	"github.com/zoeyai/regionfind/pkg/fail"
)

// Location 屏幕上的一个点（逻辑像素）
// 与任何矩形无关，用于交给输入模拟执行点击等操作
type Location struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Title string `json:"title,omitempty"`
}

// NewLocation 创建新的 Location
func NewLocation(x, y int) Location {
	return Location{X: x, Y: y, Title: "New Location"}
}

func (l Location) String() string {
	return fmt.Sprintf("Location (%d, %d)", l.X, l.Y)
}

// Point 转换为 image.Point
func (l Location) Point() image.Point {
	return image.Pt(l.X, l.Y)
}

// Offset 平移
func (l Location) Offset(dx, dy int) Location {
	return Location{X: l.X + dx, Y: l.Y + dy}
}

// Above 向上移动 dy（dy >= 0）
func (l Location) Above(dy int) (Location, error) {
	if dy < 0 {
		return Location{}, fail.Usage("Location.Above", fail.Args("dy", dy), "距离不能为负")
	}
	return Location{X: l.X, Y: l.Y - dy}, nil
}

// Below 向下移动 dy（dy >= 0）
func (l Location) Below(dy int) (Location, error) {
	if dy < 0 {
		return Location{}, fail.Usage("Location.Below", fail.Args("dy", dy), "距离不能为负")
	}
	return Location{X: l.X, Y: l.Y + dy}, nil
}

// Left 向左移动 dx（dx >= 0）
func (l Location) Left(dx int) (Location, error) {
	if dx < 0 {
		return Location{}, fail.Usage("Location.Left", fail.Args("dx", dx), "距离不能为负")
	}
	return Location{X: l.X - dx, Y: l.Y}, nil
}

// Right 向右移动 dx（dx >= 0）
func (l Location) Right(dx int) (Location, error) {
	if dx < 0 {
		return Location{}, fail.Usage("Location.Right", fail.Args("dx", dx), "距离不能为负")
	}
	return Location{X: l.X + dx, Y: l.Y}, nil
}

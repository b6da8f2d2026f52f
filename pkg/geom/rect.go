// Package geom 提供矩形区域与坐标点的几何运算
//
// Rect 的宽高始终大于 0；x、y 可以为负（多显示器时主屏左侧/上方的区域）。
// 派生区域（Offset、Left、Right、Above、Below、Nearby）总是返回新值，
// 只有 Set* 系列方法会原地修改。
package geom

import (
	"fmt"
	"image"

	"github.com/zoeyai/regionfind/pkg/fail"
)

// Relation 坐标的含义
type Relation string

const (
	// TopLeft 数值是左上角坐标
	TopLeft Relation = "top-left"
	// Center 数值是中心坐标
	Center Relation = "center"
)

// Valid 判断是否为已知的 Relation
func (r Relation) Valid() bool {
	return r == TopLeft || r == Center
}

// Rect 矩形区域（逻辑像素）
type Rect struct {
	x, y, w, h int
}

// NewRect 从左上角坐标和宽高创建矩形
func NewRect(x, y, w, h int) (Rect, error) {
	return NewRectAt(x, y, w, h, TopLeft)
}

// NewRectAt 按指定 Relation 创建矩形
func NewRectAt(x, y, w, h int, rel Relation) (Rect, error) {
	var r Rect
	if err := r.SetRect(x, y, w, h, rel); err != nil {
		return Rect{}, err
	}
	return r, nil
}

func (r Rect) X() int { return r.x }
func (r Rect) Y() int { return r.y }
func (r Rect) W() int { return r.w }
func (r Rect) H() int { return r.h }

// IsZero 判断是否为未初始化的零值
func (r Rect) IsZero() bool {
	return r.w == 0 && r.h == 0
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d, %d, %d, %d)", r.x, r.y, r.w, r.h)
}

// ImageRect 转换为 image.Rectangle
func (r Rect) ImageRect() image.Rectangle {
	return image.Rect(r.x, r.y, r.x+r.w, r.y+r.h)
}

// Contains 判断点是否在矩形内（右、下边界不含）
func (r Rect) Contains(l Location) bool {
	return l.Point().In(r.ImageRect())
}

// ==================== 原地修改 ====================

// SetX 设置 x
func (r *Rect) SetX(x int, rel Relation) error {
	switch rel {
	case TopLeft:
		r.x = x
	case Center:
		r.x = x - r.w/2
	default:
		return fail.Usage("Rect.SetX", fail.Args("x", x, "relation", rel), "未知的 relation")
	}
	return nil
}

// SetY 设置 y
func (r *Rect) SetY(y int, rel Relation) error {
	switch rel {
	case TopLeft:
		r.y = y
	case Center:
		r.y = y - r.h/2
	default:
		return fail.Usage("Rect.SetY", fail.Args("y", y, "relation", rel), "未知的 relation")
	}
	return nil
}

// SetW 设置宽度；Center 模式下保持中心 x 不变
func (r *Rect) SetW(w int, rel Relation) error {
	if w <= 0 || !rel.Valid() {
		return fail.Usage("Rect.SetW", fail.Args("w", w, "relation", rel), "宽度必须大于 0 且 relation 有效")
	}
	if rel == Center {
		r.x += (r.w - w) / 2
	}
	r.w = w
	return nil
}

// SetH 设置高度；Center 模式下保持中心 y 不变
func (r *Rect) SetH(h int, rel Relation) error {
	if h <= 0 || !rel.Valid() {
		return fail.Usage("Rect.SetH", fail.Args("h", h, "relation", rel), "高度必须大于 0 且 relation 有效")
	}
	if rel == Center {
		r.y += (r.h - h) / 2
	}
	r.h = h
	return nil
}

// SetRect 整体重设；Center 模式下 (x, y) 为中心坐标
func (r *Rect) SetRect(x, y, w, h int, rel Relation) error {
	if w <= 0 || h <= 0 || !rel.Valid() {
		return fail.Usage("Rect.SetRect",
			fail.Args("x", x, "y", y, "w", w, "h", h, "relation", rel),
			"宽高必须大于 0 且 relation 有效")
	}
	r.w, r.h = w, h
	if rel == Center {
		r.x, r.y = x-w/2, y-h/2
	} else {
		r.x, r.y = x, y
	}
	return nil
}

// SetFrom 复制另一个矩形的范围
func (r *Rect) SetFrom(o Rect) error {
	if o.w <= 0 || o.h <= 0 {
		return fail.Usage("Rect.SetFrom", fail.Args("rect", o), "源矩形未初始化")
	}
	*r = o
	return nil
}

// ==================== 角点 ====================

// TopLeft 左上角（可加偏移）
func (r Rect) TopLeft(dx, dy int) Location {
	return Location{X: r.x + dx, Y: r.y + dy}
}

// TopRight 右上角
func (r Rect) TopRight(dx, dy int) Location {
	return Location{X: r.x + dx + r.w, Y: r.y + dy}
}

// BottomLeft 左下角
func (r Rect) BottomLeft(dx, dy int) Location {
	return Location{X: r.x + dx, Y: r.y + dy + r.h}
}

// BottomRight 右下角
func (r Rect) BottomRight(dx, dy int) Location {
	return Location{X: r.x + dx + r.w, Y: r.y + dy + r.h}
}

// Center 中心点
func (r Rect) Center(dx, dy int) Location {
	return Location{X: r.x + dx + r.w/2, Y: r.y + dy + r.h/2}
}

// ==================== 派生区域 ====================

// Offset 平移，宽高不变
func (r Rect) Offset(dx, dy int) Rect {
	return Rect{x: r.x + dx, y: r.y + dy, w: r.w, h: r.h}
}

// OffsetBy 按 Location 平移
func (r Rect) OffsetBy(l Location) Rect {
	return r.Offset(l.X, l.Y)
}

// Right 右侧紧邻、同高、宽为 length 的区域
func (r Rect) Right(length int) (Rect, error) {
	if length <= 0 {
		return Rect{}, fail.Usage("Rect.Right", fail.Args("length", length), "长度必须大于 0")
	}
	return Rect{x: r.x + r.w, y: r.y, w: length, h: r.h}, nil
}

// Left 左侧紧邻、同高、宽为 length 的区域
func (r Rect) Left(length int) (Rect, error) {
	if length <= 0 {
		return Rect{}, fail.Usage("Rect.Left", fail.Args("length", length), "长度必须大于 0")
	}
	return Rect{x: r.x - length, y: r.y, w: length, h: r.h}, nil
}

// Above 上方紧邻、同宽、高为 length 的区域
func (r Rect) Above(length int) (Rect, error) {
	if length <= 0 {
		return Rect{}, fail.Usage("Rect.Above", fail.Args("length", length), "长度必须大于 0")
	}
	return Rect{x: r.x, y: r.y - length, w: r.w, h: length}, nil
}

// Below 下方紧邻、同宽、高为 length 的区域
func (r Rect) Below(length int) (Rect, error) {
	if length <= 0 {
		return Rect{}, fail.Usage("Rect.Below", fail.Args("length", length), "长度必须大于 0")
	}
	return Rect{x: r.x, y: r.y + r.h, w: r.w, h: length}, nil
}

// RightTo 右侧直到 bound 的右边界
func (r Rect) RightTo(bound Rect) (Rect, error) {
	length := bound.x + bound.w - (r.x + r.w)
	if length <= 0 {
		return Rect{}, fail.Usage("Rect.RightTo", fail.Args("rect", r, "bound", bound), "右侧没有剩余空间")
	}
	return Rect{x: r.x + r.w, y: r.y, w: length, h: r.h}, nil
}

// LeftTo 左侧直到 bound 的左边界
func (r Rect) LeftTo(bound Rect) (Rect, error) {
	length := r.x - bound.x
	if length <= 0 {
		return Rect{}, fail.Usage("Rect.LeftTo", fail.Args("rect", r, "bound", bound), "左侧没有剩余空间")
	}
	return Rect{x: bound.x, y: r.y, w: length, h: r.h}, nil
}

// AboveTo 上方直到 bound 的上边界
func (r Rect) AboveTo(bound Rect) (Rect, error) {
	length := r.y - bound.y
	if length <= 0 {
		return Rect{}, fail.Usage("Rect.AboveTo", fail.Args("rect", r, "bound", bound), "上方没有剩余空间")
	}
	return Rect{x: r.x, y: bound.y, w: r.w, h: length}, nil
}

// BelowTo 下方直到 bound 的下边界
func (r Rect) BelowTo(bound Rect) (Rect, error) {
	length := bound.y + bound.h - (r.y + r.h)
	if length <= 0 {
		return Rect{}, fail.Usage("Rect.BelowTo", fail.Args("rect", r, "bound", bound), "下方没有剩余空间")
	}
	return Rect{x: r.x, y: r.y + r.h, w: r.w, h: length}, nil
}

// Nearby 四周各扩展 length；length 可为负，但收缩后宽高必须仍大于 0
func (r Rect) Nearby(length int) (Rect, error) {
	if length < 0 && (-2*length >= r.w || -2*length >= r.h) {
		return Rect{}, fail.Usage("Rect.Nearby", fail.Args("length", length, "rect", r), "收缩后宽高必须大于 0")
	}
	return Rect{x: r.x - length, y: r.y - length, w: r.w + 2*length, h: r.h + 2*length}, nil
}

// Union 返回包含所有矩形的最小矩形
func Union(rects ...Rect) Rect {
	if len(rects) == 0 {
		return Rect{}
	}
	b := rects[0].ImageRect()
	for _, r := range rects[1:] {
		b = b.Union(r.ImageRect())
	}
	return Rect{x: b.Min.X, y: b.Min.Y, w: b.Dx(), h: b.Dy()}
}

// Scaled 按缩放系数换算宽高（物理像素），结果至少为 1
func (r Rect) Scaled(factor float64) (w, h int) {
	w = int(float64(r.w) * factor)
	h = int(float64(r.h) * factor)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

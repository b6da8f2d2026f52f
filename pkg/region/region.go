// Package region 屏幕区域：几何、派生区域导航与图像查找
//
// Region 由 Env 提供截图、匹配、输入等能力。导航操作（Right、Nearby、Offset 等）
// 总是返回新的 Region，不修改接收者；派生区域继承查找超时与所属显示器。
package region

import (
	"fmt"
	"time"

	"github.com/zoeyai/regionfind/pkg/config"
	"github.com/zoeyai/regionfind/pkg/fail"
	"github.com/zoeyai/regionfind/pkg/geom"
	"github.com/zoeyai/regionfind/pkg/grid"
	"github.com/zoeyai/regionfind/pkg/screen"
)

const defaultTitle = "New Region"

// Region 屏幕区域
type Region struct {
	rect    geom.Rect
	title   string
	id      int
	timeout time.Duration

	// screenNo 所属显示器编号；screenSet 为 false 时按区域中心自动确定
	screenNo  int
	screenSet bool

	env *Env
}

// Option 区域选项
type Option func(*Region)

// WithTitle 设置标题
func WithTitle(title string) Option {
	return func(r *Region) {
		r.title = title
	}
}

// WithID 设置编号
func WithID(id int) Option {
	return func(r *Region) {
		r.id = id
	}
}

// OnScreen 指定所属显示器
func OnScreen(n int) Option {
	return func(r *Region) {
		r.screenNo = n
		r.screenSet = true
	}
}

// New 创建区域，宽高必须大于 0
func New(env *Env, x, y, w, h int, opts ...Option) (*Region, error) {
	rect, err := geom.NewRect(x, y, w, h)
	if err != nil {
		return nil, fail.WrapUsage("region.New", fail.Args("x", x, "y", y, "w", w, "h", h), err)
	}
	return FromRect(env, rect, opts...), nil
}

// FromRect 由已有矩形创建区域
func FromRect(env *Env, rect geom.Rect, opts ...Option) *Region {
	r := &Region{
		rect:    rect,
		title:   defaultTitle,
		timeout: env.Settings.FindTimeoutDuration(),
		env:     env,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ForScreen 覆盖整个显示器的区域，n 为 0 时为所有显示器的并集
func ForScreen(env *Env, n int) (*Region, error) {
	s, err := screen.MonitorInfo(env.Screens, n)
	if err != nil {
		return nil, err
	}
	return FromRect(env, s.Area, WithTitle(s.String()), OnScreen(n)), nil
}

// ForWindow 进程主窗口所在的区域
func ForWindow(env *Env, pid int) (*Region, error) {
	rect, err := env.Windows.WindowBounds(pid)
	if err != nil {
		return nil, err
	}
	return FromRect(env, rect, WithTitle(fmt.Sprintf("Window of pid %d", pid))), nil
}

// ForWindowName 按进程名查找窗口并创建区域
func ForWindowName(env *Env, name string) (*Region, error) {
	w, err := env.Windows.FindWindow(name)
	if err != nil {
		return nil, err
	}
	title := w.Title
	if title == "" {
		title = w.Name
	}
	return FromRect(env, w.Bounds, WithTitle(title)), nil
}

func (r *Region) String() string {
	return fmt.Sprintf("Region \"%s\" %s", r.title, r.rect)
}

// Rect 区域矩形（副本）
func (r *Region) Rect() geom.Rect { return r.rect }

func (r *Region) X() int { return r.rect.X() }
func (r *Region) Y() int { return r.rect.Y() }
func (r *Region) W() int { return r.rect.W() }
func (r *Region) H() int { return r.rect.H() }

// Title 标题
func (r *Region) Title() string { return r.title }

// SetTitle 设置标题
func (r *Region) SetTitle(title string) { r.title = title }

// ID 编号
func (r *Region) ID() int { return r.id }

// SetID 设置编号
func (r *Region) SetID(id int) { r.id = id }

// FindTimeout 查找超时
func (r *Region) FindTimeout() time.Duration { return r.timeout }

// SetFindTimeout 设置查找超时；0 恢复默认值，负数为参数错误
func (r *Region) SetFindTimeout(d time.Duration) error {
	if d < 0 {
		return fail.Usage("Region.SetFindTimeout", fail.Args("timeout", d), "超时不能为负")
	}
	if d == 0 {
		d = config.Seconds(config.DefaultFindTimeout)
	}
	r.timeout = d
	return nil
}

// SetScreen 指定所属显示器，编号必须存在
func (r *Region) SetScreen(n int) error {
	if _, err := screen.MonitorInfo(r.env.Screens, n); err != nil {
		return err
	}
	r.screenNo, r.screenSet = n, true
	return nil
}

// Screen 所属显示器；未指定时取包含区域中心的显示器
func (r *Region) Screen() (screen.Screen, error) {
	if r.screenSet {
		return screen.MonitorInfo(r.env.Screens, r.screenNo)
	}
	return screen.Containing(r.env.Screens, r.rect.Center(0, 0))
}

// ==================== 直接修改 ====================

func (r *Region) SetX(x int, rel geom.Relation) error { return r.rect.SetX(x, rel) }
func (r *Region) SetY(y int, rel geom.Relation) error { return r.rect.SetY(y, rel) }
func (r *Region) SetW(w int, rel geom.Relation) error { return r.rect.SetW(w, rel) }
func (r *Region) SetH(h int, rel geom.Relation) error { return r.rect.SetH(h, rel) }

// SetRect 重新设置位置和大小
func (r *Region) SetRect(x, y, w, h int, rel geom.Relation) error {
	return r.rect.SetRect(x, y, w, h, rel)
}

// SetFrom 复制另一个区域的位置、大小和查找超时
func (r *Region) SetFrom(o *Region) error {
	if o == nil {
		return fail.Usage("Region.SetFrom", fail.Args("region", nil), "区域不能为空")
	}
	if err := r.rect.SetFrom(o.rect); err != nil {
		return err
	}
	r.timeout = o.timeout
	return nil
}

// ==================== 角点 ====================

func (r *Region) corner(l geom.Location, name string) geom.Location {
	l.Title = name + " of " + r.title
	return l
}

// TopLeft 左上角
func (r *Region) TopLeft(dx, dy int) geom.Location {
	return r.corner(r.rect.TopLeft(dx, dy), "Top left corner")
}

// TopRight 右上角
func (r *Region) TopRight(dx, dy int) geom.Location {
	return r.corner(r.rect.TopRight(dx, dy), "Top right corner")
}

// BottomLeft 左下角
func (r *Region) BottomLeft(dx, dy int) geom.Location {
	return r.corner(r.rect.BottomLeft(dx, dy), "Bottom left corner")
}

// BottomRight 右下角
func (r *Region) BottomRight(dx, dy int) geom.Location {
	return r.corner(r.rect.BottomRight(dx, dy), "Bottom right corner")
}

// Center 中心
func (r *Region) Center(dx, dy int) geom.Location {
	return r.corner(r.rect.Center(dx, dy), "Center")
}

// ==================== 派生区域 ====================

func (r *Region) derive(rect geom.Rect, title string) *Region {
	d := &Region{
		rect:      rect,
		title:     title,
		timeout:   r.timeout,
		screenNo:  r.screenNo,
		screenSet: r.screenSet,
		env:       r.env,
	}
	r.env.Log.Debug("%s => %s", r, d)
	return d
}

// Offset 平移
func (r *Region) Offset(dx, dy int) *Region {
	return r.derive(r.rect.Offset(dx, dy), "Offset of "+r.title)
}

// OffsetBy 按 Location 平移
func (r *Region) OffsetBy(l geom.Location) *Region {
	return r.derive(r.rect.OffsetBy(l), "Offset of "+r.title)
}

// side 计算一侧的派生区域：给出长度时使用固定长度，否则延伸到所属显示器的边缘
func (r *Region) side(call string, length []int, fixed func(int) (geom.Rect, error), toEdge func(geom.Rect) (geom.Rect, error)) (geom.Rect, error) {
	switch len(length) {
	case 0:
		s, err := r.Screen()
		if err != nil {
			return geom.Rect{}, err
		}
		rect, err := toEdge(s.Area)
		if err != nil {
			return geom.Rect{}, fail.WrapUsage(call, fail.Args("region", r), err)
		}
		return rect, nil
	case 1:
		rect, err := fixed(length[0])
		if err != nil {
			return geom.Rect{}, fail.WrapUsage(call, fail.Args("length", length[0]), err)
		}
		return rect, nil
	default:
		return geom.Rect{}, fail.Usage(call, fail.Args("length", length), "最多一个长度参数")
	}
}

// Right 右侧区域，同高；不给长度时延伸到显示器右边缘
func (r *Region) Right(length ...int) (*Region, error) {
	rect, err := r.side("Region.Right", length, r.rect.Right, r.rect.RightTo)
	if err != nil {
		return nil, err
	}
	return r.derive(rect, "Region right of "+r.title), nil
}

// Left 左侧区域，同高；不给长度时延伸到显示器左边缘
func (r *Region) Left(length ...int) (*Region, error) {
	rect, err := r.side("Region.Left", length, r.rect.Left, r.rect.LeftTo)
	if err != nil {
		return nil, err
	}
	return r.derive(rect, "Region left of "+r.title), nil
}

// Above 上方区域，同宽；不给长度时延伸到显示器上边缘
func (r *Region) Above(length ...int) (*Region, error) {
	rect, err := r.side("Region.Above", length, r.rect.Above, r.rect.AboveTo)
	if err != nil {
		return nil, err
	}
	return r.derive(rect, "Region top of "+r.title), nil
}

// Below 下方区域，同宽；不给长度时延伸到显示器下边缘
func (r *Region) Below(length ...int) (*Region, error) {
	rect, err := r.side("Region.Below", length, r.rect.Below, r.rect.BelowTo)
	if err != nil {
		return nil, err
	}
	return r.derive(rect, "Region bottom of "+r.title), nil
}

// Nearby 四周各扩展 length（可为负）
func (r *Region) Nearby(length int) (*Region, error) {
	rect, err := r.rect.Nearby(length)
	if err != nil {
		return nil, err
	}
	return r.derive(rect, "Nearby region of "+r.title), nil
}

// Cell 网格中的一个格子，spec 格式为 "行数.列数.第几行.第几列"
func (r *Region) Cell(spec string) (*Region, error) {
	p, err := grid.Parse(spec)
	if err != nil {
		return nil, err
	}
	rect, err := grid.Cell(r.rect, p)
	if err != nil {
		return nil, err
	}
	return r.derive(rect, fmt.Sprintf("Cell %s of %s", p, r.title)), nil
}

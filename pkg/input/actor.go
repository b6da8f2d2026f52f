package input

import (
	"time"

	"github.com/zoeyai/regionfind/internal/logger"
	"github.com/zoeyai/regionfind/pkg/fail"
	"github.com/zoeyai/regionfind/pkg/geom"
)

// 动作之间的默认延时
const (
	DelayAfterMove    = 50 * time.Millisecond
	DelayInClick      = 100 * time.Millisecond
	DelayDoubleClick  = 100 * time.Millisecond
	DelayInScroll     = 5 * time.Millisecond
	DelayDragStep     = 5 * time.Millisecond
	DelayClickToType  = time.Second
	DefaultAfterClick = DelayInClick
)

const (
	selectAllKey      = "a"
	selectAllModifier = "ctrl"
)

// Actor 在 Location 上执行鼠标、键盘动作
type Actor struct {
	drv       Driver
	log       *logger.Logger
	sleep     func(time.Duration)
	mouseDown bool
}

// NewActor 创建 Actor
func NewActor(drv Driver) *Actor {
	return &Actor{
		drv:   drv,
		log:   logger.Named("input"),
		sleep: time.Sleep,
	}
}

// WithSleep 替换延时函数（测试中使用）
func (a *Actor) WithSleep(sleep func(time.Duration)) *Actor {
	a.sleep = sleep
	return a
}

// WithLogger 替换日志
func (a *Actor) WithLogger(l *logger.Logger) *Actor {
	a.log = l
	return a
}

// MoveTo 移动鼠标
func (a *Actor) MoveTo(l geom.Location) {
	a.drv.MoveTo(l.X, l.Y)
	a.sleep(DelayAfterMove)
	a.log.Debug("鼠标移动到 %s", l)
}

// MouseDown 在 l 处按下鼠标键
func (a *Actor) MouseDown(l geom.Location, button Button) {
	a.drv.MoveTo(l.X, l.Y)
	a.drv.Toggle(button, true)
	a.mouseDown = true
	a.log.Debug("在 %s 按下 %s 键", l, button)
}

// MouseUp 在 l 处释放鼠标键
func (a *Actor) MouseUp(l geom.Location, button Button) {
	a.drv.Toggle(button, false)
	a.mouseDown = false
	a.log.Debug("在 %s 释放 %s 键", l, button)
}

func (a *Actor) press(l geom.Location, button Button, afterClick time.Duration) {
	a.MouseDown(l, button)
	a.sleep(DelayInClick)
	a.MouseUp(l, button)
	a.sleep(afterClick)
}

// Click 左键单击，afterClick 为点击后的等待
func (a *Actor) Click(l geom.Location, afterClick time.Duration) {
	a.press(l, Left, afterClick)
	a.log.Debug("左键单击 %s", l)
}

// RightClick 右键单击
func (a *Actor) RightClick(l geom.Location, afterClick time.Duration) {
	a.press(l, Right, afterClick)
	a.log.Debug("右键单击 %s", l)
}

// DoubleClick 左键双击
func (a *Actor) DoubleClick(l geom.Location, afterClick time.Duration) {
	a.press(l, Left, afterClick)
	a.sleep(DelayDoubleClick)
	a.press(l, Left, afterClick)
	a.log.Debug("左键双击 %s", l)
}

// Scroll 在 l 处滚动 count 次；direction > 0 向前，< 0 向后
// click 为 true 时滚动前先点击获取焦点
func (a *Actor) Scroll(l geom.Location, direction, count int, click bool) error {
	if direction == 0 || count < 0 {
		return fail.Usage("Actor.Scroll", fail.Args("direction", direction, "count", count), "方向不能为 0，次数不能为负")
	}
	if x, y := a.drv.Position(); x != l.X || y != l.Y {
		a.drv.MoveTo(l.X, l.Y)
		a.sleep(DelayInClick)
	}
	for i := 0; i < count; i++ {
		if click {
			a.press(l, Left, DefaultAfterClick)
		}
		a.drv.Scroll(direction)
		a.sleep(DelayInScroll)
	}
	dir := "forward"
	if direction < 0 {
		dir = "backward"
	}
	a.log.Debug("在 %s 滚动 %d 次 (%s)", l, count, dir)
	return nil
}

// DragTo 按下左键并沿直线逐像素移动到 to；stepDelay <= 0 时使用默认值
func (a *Actor) DragTo(from, to geom.Location, stepDelay time.Duration) {
	if stepDelay <= 0 {
		stepDelay = DelayDragStep
	}
	if !a.mouseDown {
		a.MouseDown(from, Left)
	}
	a.sleep(stepDelay)

	for _, p := range line(from, to) {
		a.drv.MoveTo(p.X, p.Y)
		a.sleep(stepDelay)
	}
	a.log.Debug("从 %s 拖拽到 %s", from, to)
}

// Drop 在当前位置释放左键；之前未按下时返回参数错误
func (a *Actor) Drop() error {
	x, y := a.drv.Position()
	if !a.mouseDown {
		return fail.Usage("Actor.Drop", fail.Args("x", x, "y", y), "尚未拖拽")
	}
	a.MouseUp(geom.NewLocation(x, y), Left)
	a.log.Debug("鼠标释放")
	return nil
}

// DragAndDrop 拖拽后释放
func (a *Actor) DragAndDrop(from, to geom.Location, stepDelay time.Duration) error {
	a.DragTo(from, to, stepDelay)
	return a.Drop()
}

// TypeOptions 输入选项
type TypeOptions struct {
	Modifiers      []string
	NoClick        bool          // 输入前不点击
	ClickTypeDelay time.Duration // 点击与输入之间的等待，0 使用默认值
}

func (o TypeOptions) delay() time.Duration {
	if o.ClickTypeDelay > 0 {
		return o.ClickTypeDelay
	}
	return DelayClickToType
}

// Type 点击 l 后输入文字
func (a *Actor) Type(l geom.Location, text string, opts TypeOptions) {
	if !opts.NoClick {
		a.Click(l, opts.delay())
	}
	a.drv.TypeText(text, opts.Modifiers...)
	if len(opts.Modifiers) > 0 {
		a.log.Info("输入 %q (修饰键 %v)", text, opts.Modifiers)
	} else {
		a.log.Info("输入 %q", text)
	}
}

// EnterText 点击 l，全选后输入文字（替换原有内容）
func (a *Actor) EnterText(l geom.Location, text string, opts TypeOptions) {
	if !opts.NoClick {
		a.Click(l, opts.delay())
	}
	a.drv.KeyTap(selectAllKey, selectAllModifier)
	a.sleep(opts.delay())
	a.drv.TypeText(text, opts.Modifiers...)
	a.log.Info("替换输入 %q", text)
}

// line 返回从 from 到 to 的逐像素路径（包含两端）
func line(from, to geom.Location) []geom.Location {
	dx, dy := to.X-from.X, to.Y-from.Y
	steps := max(abs(dx), abs(dy))
	if steps == 0 {
		return []geom.Location{{X: to.X, Y: to.Y}}
	}
	pts := make([]geom.Location, 0, steps+1)
	for i := 0; i <= steps; i++ {
		pts = append(pts, geom.Location{
			X: from.X + dx*i/steps,
			Y: from.Y + dy*i/steps,
		})
	}
	return pts
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

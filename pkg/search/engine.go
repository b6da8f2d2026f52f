// Package search 出现/消失的轮询等待
//
// 每一轮：截图 → 与上一帧完全相同则跳过匹配 → 按顺序匹配各 Pattern。
// 未满足条件时休眠固定间隔并累计耗时，累计耗时达到超时即失败。
// 超时为 0 时只执行一轮，不休眠。
package search

import (
	"bytes"
	"fmt"
	"image"
	"time"

	"github.com/zoeyai/regionfind/internal/logger"
	"github.com/zoeyai/regionfind/pkg/config"
	"github.com/zoeyai/regionfind/pkg/fail"
	"github.com/zoeyai/regionfind/pkg/match"
	"github.com/zoeyai/regionfind/pkg/pattern"
)

// Capturer 截取搜索区域的当前帧（物理像素，已去掉填充）
type Capturer interface {
	Capture() (*image.NRGBA, error)
}

// CaptureFunc 函数形式的 Capturer
type CaptureFunc func() (*image.NRGBA, error)

func (f CaptureFunc) Capture() (*image.NRGBA, error) { return f() }

// Matcher 在帧中查找模板，返回得分超过阈值的候选（扫描顺序）
type Matcher interface {
	Match(tmpl, frame image.Image, threshold float64) ([]match.Candidate, error)
}

// Hit 出现模式的结果：命中的 Pattern 和得分最高的候选
type Hit struct {
	Pattern   *pattern.Pattern
	Candidate match.Candidate
}

// Engine 轮询引擎
type Engine struct {
	matcher  Matcher
	interval time.Duration
	sleep    func(time.Duration)
	log      *logger.Logger
}

// Option 引擎选项
type Option func(*Engine)

// WithInterval 设置两轮之间的间隔
func WithInterval(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.interval = d
		}
	}
}

// WithSleep 替换休眠函数（测试中使用）
func WithSleep(sleep func(time.Duration)) Option {
	return func(e *Engine) {
		e.sleep = sleep
	}
}

// WithLogger 设置日志
func WithLogger(l *logger.Logger) Option {
	return func(e *Engine) {
		e.log = l
	}
}

// New 创建引擎
func New(m Matcher, opts ...Option) *Engine {
	e := &Engine{
		matcher:  m,
		interval: config.Seconds(config.DefaultPollInterval),
		sleep:    time.Sleep,
		log:      logger.Named("search"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Appear 等待任意一个 Pattern 出现
// 按给定顺序匹配，第一个有候选的 Pattern 立即返回，其中得分最高者胜出（同分取扫描顺序靠前的）
func (e *Engine) Appear(c Capturer, patterns []*pattern.Pattern, timeout time.Duration, where string) (Hit, error) {
	if err := validate("Engine.Appear", patterns, timeout); err != nil {
		return Hit{}, err
	}

	start := time.Now()
	var hit Hit
	found := false

	err := e.poll(c, timeout, func(frame *image.NRGBA) (bool, error) {
		for _, p := range patterns {
			cands, err := e.matcher.Match(p.Image(), frame, p.Similarity())
			if err != nil {
				return false, fmt.Errorf("匹配 %s 失败: %w", p.Filename(false), err)
			}
			if best, ok := match.Best(cands); ok {
				hit = Hit{Pattern: p, Candidate: best}
				found = true
				return true, nil
			}
		}
		return false, nil
	})
	if err != nil {
		return Hit{}, err
	}

	elapsed := msSince(start)
	if !found {
		e.log.LogEvent("FIND", false, elapsed, fmt.Sprintf("%v 未找到 (%s)", pattern.Names(patterns), where))
		return Hit{}, &fail.FindFailedError{Patterns: pattern.Names(patterns), Region: where}
	}
	e.log.LogEvent("FIND", true, elapsed, fmt.Sprintf("%q 在 (%d, %d) score=%.4f",
		hit.Pattern.Filename(false), hit.Candidate.X, hit.Candidate.Y, hit.Candidate.Score))
	return hit, nil
}

// Vanish 等待消失
// 每轮按顺序匹配所有 Pattern，但只有列表中的第一个决定是否已消失
func (e *Engine) Vanish(c Capturer, patterns []*pattern.Pattern, timeout time.Duration, where string) error {
	if err := validate("Engine.Vanish", patterns, timeout); err != nil {
		return err
	}

	start := time.Now()
	vanished := false

	err := e.poll(c, timeout, func(frame *image.NRGBA) (bool, error) {
		firstGone := false
		for i, p := range patterns {
			cands, err := e.matcher.Match(p.Image(), frame, p.Similarity())
			if err != nil {
				return false, fmt.Errorf("匹配 %s 失败: %w", p.Filename(false), err)
			}
			if i == 0 {
				firstGone = len(cands) == 0
			}
		}
		vanished = firstGone
		return firstGone, nil
	})
	if err != nil {
		return err
	}

	elapsed := msSince(start)
	if !vanished {
		e.log.LogEvent("VANISH", false, elapsed, fmt.Sprintf("%v 未消失 (%s)", pattern.Names(patterns), where))
		return &fail.FindFailedError{Patterns: pattern.Names(patterns), Region: where, Vanish: true}
	}
	e.log.LogEvent("VANISH", true, elapsed, fmt.Sprintf("%q 已消失", patterns[0].Filename(false)))
	return nil
}

// All 单轮匹配，返回所有候选
func (e *Engine) All(c Capturer, p *pattern.Pattern) ([]match.Candidate, error) {
	if p == nil {
		return nil, fail.Usage("Engine.All", fail.Args("pattern", nil), "Pattern 不能为空")
	}

	start := time.Now()
	frame, err := c.Capture()
	if err != nil {
		return nil, err
	}
	cands, err := e.matcher.Match(p.Image(), frame, p.Similarity())
	if err != nil {
		return nil, fmt.Errorf("匹配 %s 失败: %w", p.Filename(false), err)
	}
	e.log.LogEvent("ALL", true, msSince(start), fmt.Sprintf("%q 共 %d 个匹配", p.Filename(false), len(cands)))
	return cands, nil
}

// poll 轮询直到 check 返回 true 或超时；超时返回 nil，由调用方根据结果判断
func (e *Engine) poll(c Capturer, timeout time.Duration, check func(*image.NRGBA) (bool, error)) error {
	var prev *image.NRGBA
	var elapsed time.Duration

	for {
		frame, err := c.Capture()
		if err != nil {
			return err
		}

		if prev == nil || !sameFrame(prev, frame) {
			done, err := check(frame)
			if err != nil || done {
				return err
			}
		}
		prev = frame

		if timeout <= 0 {
			return nil
		}
		e.sleep(e.interval)
		elapsed += e.interval
		if elapsed >= timeout {
			return nil
		}
	}
}

func validate(call string, patterns []*pattern.Pattern, timeout time.Duration) error {
	args := fail.Args("patterns", len(patterns), "timeout", timeout)
	if len(patterns) == 0 {
		return fail.Usage(call, args, "至少需要一个 Pattern")
	}
	for i, p := range patterns {
		if p == nil {
			return fail.Usagef(call, args, "第 %d 个 Pattern 为空", i+1)
		}
	}
	if timeout < 0 {
		return fail.Usage(call, args, "超时不能为负")
	}
	return nil
}

// sameFrame 判断两帧像素是否完全一致
func sameFrame(a, b *image.NRGBA) bool {
	return a.Rect.Size() == b.Rect.Size() && a.Stride == b.Stride && bytes.Equal(a.Pix, b.Pix)
}

func msSince(t time.Time) float64 {
	return float64(time.Since(t).Microseconds()) / 1000
}

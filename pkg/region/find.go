package region

import (
	"fmt"
	"image"
	"time"

	"github.com/zoeyai/regionfind/pkg/fail"
	"github.com/zoeyai/regionfind/pkg/match"
	"github.com/zoeyai/regionfind/pkg/pattern"
	"github.com/zoeyai/regionfind/pkg/screen"
	"github.com/zoeyai/regionfind/pkg/search"
)

// FindOption 查找选项
type FindOption func(*findOptions)

type findOptions struct {
	timeout    time.Duration
	timeoutSet bool
	similarity float64
	noRaise    bool
	noSnapshot bool
}

// Timeout 本次查找的超时，0 表示只查找一轮
func Timeout(d time.Duration) FindOption {
	return func(o *findOptions) {
		o.timeout = d
		o.timeoutSet = true
	}
}

// Similarity 本次查找使用的相似度，对图像路径和 Pattern 目标都生效
func Similarity(s float64) FindOption {
	return func(o *findOptions) {
		o.similarity = s
	}
}

// NoRaise 未找到时返回 nil 而不是错误，也不保存失败截图
func NoRaise() FindOption {
	return func(o *findOptions) {
		o.noRaise = true
	}
}

// noSnapshot 超时仍返回错误，但不保存失败截图
func noSnapshot() FindOption {
	return func(o *findOptions) {
		o.noSnapshot = true
	}
}

func (r *Region) findOptions(call string, opts []FindOption) (*findOptions, error) {
	o := &findOptions{timeout: r.timeout}
	for _, opt := range opts {
		opt(o)
	}
	if o.timeout < 0 {
		return nil, fail.Usage(call, fail.Args("timeout", o.timeout), "超时不能为负")
	}
	// 0 表示未指定
	if !(o.similarity == 0 || pattern.ValidSimilarity(o.similarity)) {
		return nil, fail.Usage(call, fail.Args("similarity", o.similarity), "相似度必须在 (0, 1] 之间")
	}
	return o, nil
}

// patterns 将查找目标转换为 Pattern 列表
// target 可以是图像路径、*pattern.Pattern，或由它们组成的切片
func (r *Region) patterns(call string, target any, similarity float64) ([]*pattern.Pattern, error) {
	var items []any
	switch t := target.(type) {
	case []any:
		items = t
	case []string:
		for _, s := range t {
			items = append(items, s)
		}
	case []*pattern.Pattern:
		for _, p := range t {
			items = append(items, p)
		}
	default:
		items = []any{target}
	}
	if len(items) == 0 {
		return nil, fail.Usage(call, fail.Args("target", target), "至少需要一个图像")
	}

	out := make([]*pattern.Pattern, 0, len(items))
	for _, it := range items {
		switch v := it.(type) {
		case string:
			p, err := pattern.New(v, pattern.WithSettings(r.env.Settings), pattern.WithSimilarity(similarity))
			if err != nil {
				return nil, fail.WrapUsage(call, fail.Args("target", v), err)
			}
			out = append(out, p)
		case *pattern.Pattern:
			if v == nil {
				return nil, fail.Usage(call, fail.Args("target", target), "Pattern 不能为空")
			}
			if similarity != 0 && similarity != v.Similarity() {
				np, err := v.Similar(similarity)
				if err != nil {
					return nil, fail.WrapUsage(call, fail.Args("target", v.Filename(false)), err)
				}
				v = np
			}
			out = append(out, v)
		default:
			return nil, fail.Usagef(call, fail.Args("target", it), "不支持的类型 %T，应为图像路径或 Pattern", it)
		}
	}
	return out, nil
}

// frames 当前区域的截图器，记录最后一帧和截图元信息
type frames struct {
	region *Region
	scale  float64
	meta   screen.CaptureMeta
	last   *image.NRGBA
}

func (r *Region) frames() (*frames, error) {
	s, err := r.Screen()
	if err != nil {
		return nil, err
	}
	return &frames{region: r, scale: s.Scale}, nil
}

func (f *frames) Capture() (*image.NRGBA, error) {
	img, meta, err := screen.Grab(f.region.env.Frames, f.region.rect, f.scale)
	if err != nil {
		return nil, err
	}
	f.meta, f.last = meta, img
	return img, nil
}

var _ search.Capturer = (*frames)(nil)

// lift 将帧内候选转换为逻辑坐标的 Match
func lift(c match.Candidate, p *pattern.Pattern, meta screen.CaptureMeta) (*match.Match, error) {
	rect, err := screen.AdjustCandidate(c, p.W(), p.H(), meta)
	if err != nil {
		return nil, err
	}
	return match.New(rect, c.Score, p)
}

// Find 等待目标出现并返回得分最高的匹配
// 超时后保存区域截图到失败目录并返回搜索失败错误；使用 NoRaise 时返回 nil, nil
func (r *Region) Find(target any, opts ...FindOption) (*match.Match, error) {
	const call = "Region.Find"
	o, err := r.findOptions(call, opts)
	if err != nil {
		return nil, err
	}
	ps, err := r.patterns(call, target, o.similarity)
	if err != nil {
		return nil, err
	}
	r.env.Log.Info("查找 %v (超时 %s)", pattern.Names(ps), o.timeout)

	f, err := r.frames()
	if err != nil {
		return nil, err
	}
	hit, err := r.env.Engine.Appear(f, ps, o.timeout, r.String())
	if err != nil {
		if !fail.IsFindFailed(err) {
			return nil, err
		}
		if o.noRaise {
			return nil, nil
		}
		if !o.noSnapshot {
			r.saveFailure(f, ps[0], err)
		}
		return nil, err
	}
	return lift(hit.Candidate, hit.Pattern, f.meta)
}

// saveFailure 保存失败截图，保存失败只记录日志
func (r *Region) saveFailure(f *frames, p *pattern.Pattern, cause error) {
	img := f.last
	if img == nil {
		return
	}
	path, err := r.env.Snapshots.Save(img, p.Filename(false), cause.Error())
	if err != nil {
		r.env.Log.Warn("保存失败截图失败: %v", err)
		return
	}
	r.env.Log.Info("失败截图已保存: %s", path)
}

// WaitVanish 等待目标消失；消失返回 true，超时返回 false
// 多个目标时只由第一个决定是否消失
func (r *Region) WaitVanish(target any, opts ...FindOption) (bool, error) {
	const call = "Region.WaitVanish"
	o, err := r.findOptions(call, opts)
	if err != nil {
		return false, err
	}
	ps, err := r.patterns(call, target, o.similarity)
	if err != nil {
		return false, err
	}
	r.env.Log.Info("等待 %v 消失 (超时 %s)", pattern.Names(ps), o.timeout)

	f, err := r.frames()
	if err != nil {
		return false, err
	}
	err = r.env.Engine.Vanish(f, ps, o.timeout, r.String())
	switch {
	case err == nil:
		return true, nil
	case fail.IsFindFailed(err):
		return false, nil
	default:
		return false, err
	}
}

// Exists 只查找一轮，返回是否存在
func (r *Region) Exists(target any, opts ...FindOption) (bool, error) {
	opts = append(append([]FindOption(nil), opts...), Timeout(0), NoRaise())
	m, err := r.Find(target, opts...)
	if err != nil {
		return false, err
	}
	return m != nil, nil
}

// Wait 目标为 nil 时单纯等待超时时间；否则等待目标出现
// 未指定 Timeout 时使用区域的查找超时，Timeout(0) 只查找一轮。超时返回搜索失败错误，不保存失败截图
func (r *Region) Wait(target any, opts ...FindOption) (*match.Match, error) {
	o, err := r.findOptions("Region.Wait", opts)
	if err != nil {
		return nil, err
	}
	if target == nil {
		r.env.sleep(o.timeout)
		return nil, nil
	}
	opts = append(append([]FindOption(nil), opts...), noSnapshot())
	return r.Find(target, opts...)
}

// FindAll 等待 delayBefore 后查找一轮，返回所有得分超过阈值的匹配
func (r *Region) FindAll(target any, delayBefore time.Duration, opts ...FindOption) ([]*match.Match, error) {
	const call = "Region.FindAll"
	if delayBefore < 0 {
		return nil, fail.Usage(call, fail.Args("delay_before", delayBefore), "等待时间不能为负")
	}
	o, err := r.findOptions(call, opts)
	if err != nil {
		return nil, err
	}
	ps, err := r.patterns(call, target, o.similarity)
	if err != nil {
		return nil, err
	}
	if len(ps) != 1 {
		return nil, fail.Usage(call, fail.Args("target", pattern.Names(ps)), "只能查找一个图像")
	}

	if delayBefore > 0 {
		r.env.sleep(delayBefore)
	}
	f, err := r.frames()
	if err != nil {
		return nil, err
	}
	cands, err := r.env.Engine.All(f, ps[0])
	if err != nil {
		return nil, err
	}

	out := make([]*match.Match, 0, len(cands))
	for _, c := range cands {
		m, err := lift(c, ps[0], f.meta)
		if err != nil {
			return nil, fmt.Errorf("转换匹配结果失败: %w", err)
		}
		out = append(out, m)
	}
	r.env.Log.Info("共找到 %d 个 \"%s\"", len(out), ps[0].Filename(false))
	return out, nil
}

// Package match 搜索结果
package match

import (
	"fmt"

	"github.com/zoeyai/regionfind/pkg/fail"
	"github.com/zoeyai/regionfind/pkg/geom"
	"github.com/zoeyai/regionfind/pkg/pattern"
)

// Candidate 匹配器输出的候选位置
// X、Y 是模板左上角在帧内的物理像素坐标
type Candidate struct {
	X     int
	Y     int
	Score float64
}

// Best 返回得分最高的候选；得分相同时取靠前的（扫描顺序）
func Best(cands []Candidate) (Candidate, bool) {
	if len(cands) == 0 {
		return Candidate{}, false
	}
	best := cands[0]
	for _, c := range cands[1:] {
		if c.Score > best.Score {
			best = c
		}
	}
	return best, true
}

// Match 一次成功的匹配：区域（逻辑像素）+ 得分 + 对应的 Pattern
type Match struct {
	rect    geom.Rect
	score   float64
	pattern *pattern.Pattern
}

// New 创建 Match，要求 0 < score <= 1 且 score >= 阈值
func New(rect geom.Rect, score float64, p *pattern.Pattern) (*Match, error) {
	if p == nil || rect.IsZero() || score <= 0 || score > 1 || score < p.Similarity() {
		return nil, fail.Usage("match.New", fail.Args("rect", rect, "score", score, "pattern", p), "得分必须在 (阈值, 1] 之间")
	}
	return &Match{rect: rect, score: score, pattern: p}, nil
}

// Rect 匹配区域
func (m *Match) Rect() geom.Rect {
	return m.rect
}

func (m *Match) X() int { return m.rect.X() }
func (m *Match) Y() int { return m.rect.Y() }
func (m *Match) W() int { return m.rect.W() }
func (m *Match) H() int { return m.rect.H() }

// Score 相似度得分
func (m *Match) Score() float64 {
	return m.score
}

// Pattern 匹配到的 Pattern
func (m *Match) Pattern() *pattern.Pattern {
	return m.pattern
}

// Target 点击目标：匹配中心加上 Pattern 的目标偏移
func (m *Match) Target() geom.Location {
	dx, dy := m.pattern.Target()
	l := m.rect.Center(dx, dy)
	l.Title = "Target of " + m.String()
	return l
}

func (m *Match) String() string {
	return fmt.Sprintf("Match of \"%s\" in %s with score = %f", m.pattern.Filename(true), m.rect, m.score)
}

package match

import (
	"image"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/zoeyai/regionfind/pkg/fail"
	"github.com/zoeyai/regionfind/pkg/geom"
	"github.com/zoeyai/regionfind/pkg/pattern"
)

func newPattern(t *testing.T, similarity float64) *pattern.Pattern {
	t.Helper()
	path := filepath.Join(t.TempDir(), "icon.png")
	if err := imaging.Save(image.NewRGBA(image.Rect(0, 0, 4, 4)), path); err != nil {
		t.Fatal(err)
	}
	p, err := pattern.New(path, pattern.WithSimilarity(similarity))
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestBest(t *testing.T) {
	if _, ok := Best(nil); ok {
		t.Error("空候选不应返回结果")
	}

	cands := []Candidate{{0, 0, 0.96}, {5, 1, 0.99}, {2, 3, 0.99}, {7, 7, 0.97}}
	best, ok := Best(cands)
	if !ok || best.X != 5 || best.Y != 1 {
		t.Errorf("得分相同时应取靠前的: %+v", best)
	}
}

func TestNew(t *testing.T) {
	p := newPattern(t, 0.9)
	rect, _ := geom.NewRect(10, 20, 4, 4)

	m, err := New(rect, 0.95, p)
	if err != nil {
		t.Fatalf("创建 Match 失败: %v", err)
	}
	if m.Score() != 0.95 || m.Pattern() != p || m.Rect() != rect {
		t.Errorf("字段错误: %s", m)
	}
	if !strings.HasSuffix(m.String(), `icon.png" in (10, 20, 4, 4) with score = 0.950000`) {
		t.Errorf("String 错误: %s", m)
	}

	for _, score := range []float64{0.5, 0, 1.01} {
		if _, err := New(rect, score, p); !fail.IsUsage(err) {
			t.Errorf("得分 %v 应被拒绝, got %v", score, err)
		}
	}
}

func TestTarget(t *testing.T) {
	p := newPattern(t, 0.9).TargetOffset(5, -3)
	rect, _ := geom.NewRect(100, 50, 20, 10)
	m, err := New(rect, 1, p)
	if err != nil {
		t.Fatal(err)
	}
	if l := m.Target(); l.X != 115 || l.Y != 52 {
		t.Errorf("目标点错误: %s", l)
	}
}

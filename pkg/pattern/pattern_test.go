package pattern

import (
	"errors"
	"image"
	"image/color"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/zoeyai/regionfind/pkg/config"
	"github.com/zoeyai/regionfind/pkg/fail"
)

func writeImage(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{uint8(x * 20), uint8(y * 30), 128, 255})
		}
	}
	path := filepath.Join(dir, name)
	if err := imaging.Save(img, path); err != nil {
		t.Fatalf("写入测试图像失败: %v", err)
	}
	return path
}

func TestNewAbsolute(t *testing.T) {
	path := writeImage(t, t.TempDir(), "ok.png", 6, 4)

	p, err := New(path)
	if err != nil {
		t.Fatalf("创建 Pattern 失败: %v", err)
	}
	if p.W() != 6 || p.H() != 4 {
		t.Errorf("尺寸错误: %dx%d", p.W(), p.H())
	}
	if p.Similarity() != config.DefaultMinSimilarity {
		t.Errorf("默认相似度错误: %f", p.Similarity())
	}
	if p.Filename(true) != path || p.Filename(false) != "ok.png" {
		t.Errorf("文件名错误: %s / %s", p.Filename(true), p.Filename(false))
	}
	want := `Pattern of "` + path + `" with similarity = 0.995000`
	if p.String() != want {
		t.Errorf("String 错误: %s", p.String())
	}
}

func TestNewSearchDirs(t *testing.T) {
	first, second := t.TempDir(), t.TempDir()
	writeImage(t, second, "btn.png", 3, 3)
	writeImage(t, first, "other.png", 3, 3)

	s := config.Default()
	s.AddImagePath(first)
	s.AddImagePath(second)

	p, err := New("btn.png", WithSettings(s), WithSimilarity(0.9))
	if err != nil {
		t.Fatalf("应在搜索目录中找到: %v", err)
	}
	if filepath.Dir(p.Filename(true)) != second {
		t.Errorf("解析路径错误: %s", p.Filename(true))
	}
	if p.Similarity() != 0.9 {
		t.Errorf("相似度错误: %f", p.Similarity())
	}

	// 两个目录都有时取第一个
	writeImage(t, first, "btn.png", 2, 2)
	p, err = New("btn.png", WithSettings(s))
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Dir(p.Filename(true)) != first {
		t.Errorf("应优先使用第一个目录: %s", p.Filename(true))
	}
}

func TestNewNotFound(t *testing.T) {
	_, err := New("no_such_image.png")
	if !fail.IsUsage(err) {
		t.Fatalf("应返回参数错误, 实际 %v", err)
	}
	if !errors.Is(err, fail.ErrNotFound) {
		t.Errorf("应包含 ErrNotFound: %v", err)
	}
	if !strings.Contains(err.Error(), "no_such_image.png") {
		t.Errorf("错误消息应包含文件名: %v", err)
	}
}

func TestInvalidSimilarity(t *testing.T) {
	path := writeImage(t, t.TempDir(), "a.png", 2, 2)

	for _, sim := range []float64{1.5, -0.1, math.NaN(), math.Inf(1)} {
		p, err := New(path, WithSimilarity(sim))
		if !fail.IsUsage(err) || p != nil {
			t.Errorf("相似度 %v 应失败, got %v, %v", sim, p, err)
		}
	}

	p, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, sim := range []float64{1.5, 0, math.NaN()} {
		if _, err := p.Similar(sim); !fail.IsUsage(err) {
			t.Errorf("Similar(%v) 应返回参数错误, got %v", sim, err)
		}
	}
}

func TestSimilarExact(t *testing.T) {
	path := writeImage(t, t.TempDir(), "a.png", 5, 5)
	p, err := New(path, WithSimilarity(0.8))
	if err != nil {
		t.Fatal(err)
	}
	p = p.TargetOffset(3, -2)

	s, err := p.Similar(0.7)
	if err != nil {
		t.Fatal(err)
	}
	if s.Similarity() != 0.7 || p.Similarity() != 0.8 {
		t.Errorf("Similar 应返回新对象: %f %f", s.Similarity(), p.Similarity())
	}
	if s.Image() == p.Image() {
		t.Error("Similar 应重新加载图像")
	}
	if dx, dy := s.Target(); dx != 3 || dy != -2 {
		t.Errorf("目标偏移应保留: %d,%d", dx, dy)
	}

	e, err := p.Exact()
	if err != nil {
		t.Fatal(err)
	}
	if e.Similarity() != 1.0 {
		t.Errorf("Exact 相似度应为 1.0: %f", e.Similarity())
	}
}

func TestNames(t *testing.T) {
	dir := t.TempDir()
	a, _ := New(writeImage(t, dir, "a.png", 2, 2))
	b, _ := New(writeImage(t, dir, "b.png", 2, 2))
	if got := strings.Join(Names([]*Pattern{a, b}), ","); got != "a.png,b.png" {
		t.Errorf("Names 错误: %s", got)
	}
}

package search

import (
	"errors"
	"image"
	"image/color"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/disintegration/imaging"

	"github.com/zoeyai/regionfind/internal/logger"
	"github.com/zoeyai/regionfind/pkg/fail"
	"github.com/zoeyai/regionfind/pkg/match"
	"github.com/zoeyai/regionfind/pkg/pattern"
)

// scriptedFrames 每次截图返回下一帧，用完后重复最后一帧
type scriptedFrames struct {
	frames []*image.NRGBA
	calls  int
	err    error
}

func (s *scriptedFrames) Capture() (*image.NRGBA, error) {
	if s.err != nil {
		return nil, s.err
	}
	i := min(s.calls, len(s.frames)-1)
	s.calls++
	return s.frames[i], nil
}

// frame 生成 4x4 纯色帧，颜色值 v 用来区分不同帧
func frame(v uint8) *image.NRGBA {
	return imaging.New(4, 4, color.NRGBA{v, v, v, 255})
}

// fakeMatcher 以模板宽度区分 Pattern，以帧的首个像素区分帧内容
type fakeMatcher struct {
	results map[int]map[uint8][]match.Candidate
	calls   []int
}

func (m *fakeMatcher) Match(tmpl, f image.Image, threshold float64) ([]match.Candidate, error) {
	w := tmpl.Bounds().Dx()
	m.calls = append(m.calls, w)
	v := f.(*image.NRGBA).Pix[0]
	return m.results[w][v], nil
}

type sleepRecorder struct {
	slept []time.Duration
}

func (s *sleepRecorder) sleep(d time.Duration) { s.slept = append(s.slept, d) }

func newPattern(t *testing.T, w int) *pattern.Pattern {
	t.Helper()
	path := filepath.Join(t.TempDir(), "p.png")
	if err := imaging.Save(imaging.New(w, 2, color.White), path); err != nil {
		t.Fatal(err)
	}
	p, err := pattern.New(path, pattern.WithSimilarity(0.9))
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func newEngine(m Matcher) (*Engine, *sleepRecorder) {
	sr := &sleepRecorder{}
	e := New(m,
		WithInterval(time.Second),
		WithSleep(sr.sleep),
		WithLogger(logger.NewWriter(io.Discard, logger.DEBUG)),
	)
	return e, sr
}

func TestAppearZeroTimeoutSingleCycle(t *testing.T) {
	m := &fakeMatcher{}
	e, sr := newEngine(m)
	fp := &scriptedFrames{frames: []*image.NRGBA{frame(1), frame(2)}}
	p := newPattern(t, 1)

	_, err := e.Appear(fp, []*pattern.Pattern{p}, 0, "r")
	if !fail.IsFindFailed(err) {
		t.Fatalf("应返回搜索失败, got %v", err)
	}
	if fp.calls != 1 || len(m.calls) != 1 {
		t.Errorf("超时为 0 应只执行一轮: captures=%d matches=%d", fp.calls, len(m.calls))
	}
	if len(sr.slept) != 0 {
		t.Errorf("超时为 0 不应休眠: %v", sr.slept)
	}
}

func TestAppearAfterPolling(t *testing.T) {
	p := newPattern(t, 1)
	m := &fakeMatcher{results: map[int]map[uint8][]match.Candidate{
		1: {3: {{X: 1, Y: 2, Score: 0.97}}},
	}}
	e, sr := newEngine(m)
	fp := &scriptedFrames{frames: []*image.NRGBA{frame(1), frame(2), frame(3)}}

	hit, err := e.Appear(fp, []*pattern.Pattern{p}, 10*time.Second, "r")
	if err != nil {
		t.Fatalf("应找到: %v", err)
	}
	if hit.Pattern != p || hit.Candidate.X != 1 || hit.Candidate.Y != 2 {
		t.Errorf("结果错误: %+v", hit)
	}
	if fp.calls != 3 || len(sr.slept) != 2 {
		t.Errorf("应在第 3 轮找到: captures=%d sleeps=%d", fp.calls, len(sr.slept))
	}
}

func TestAppearTimeoutAccounting(t *testing.T) {
	m := &fakeMatcher{}
	e, sr := newEngine(m)
	frames := []*image.NRGBA{frame(1), frame(2), frame(3), frame(4), frame(5), frame(6)}
	fp := &scriptedFrames{frames: frames}

	_, err := e.Appear(fp, []*pattern.Pattern{newPattern(t, 1)}, 3100*time.Millisecond, "r")
	if !fail.IsFindFailed(err) {
		t.Fatalf("应超时, got %v", err)
	}
	// 0s、1s、2s、3s 各一轮，第 4 次休眠后累计 4s >= 3.1s
	if fp.calls != 4 || len(sr.slept) != 4 {
		t.Errorf("轮数错误: captures=%d sleeps=%d", fp.calls, len(sr.slept))
	}
}

func TestUnchangedFrameSkipsMatching(t *testing.T) {
	m := &fakeMatcher{}
	e, _ := newEngine(m)
	fp := &scriptedFrames{frames: []*image.NRGBA{frame(7), frame(7), frame(7), frame(8)}}

	_, err := e.Appear(fp, []*pattern.Pattern{newPattern(t, 1)}, 3*time.Second, "r")
	if !fail.IsFindFailed(err) {
		t.Fatal(err)
	}
	if fp.calls != 3 {
		t.Fatalf("截图次数错误: %d", fp.calls)
	}
	if len(m.calls) != 1 {
		t.Errorf("帧未变化时不应重新匹配: %v", m.calls)
	}
}

func TestAppearPatternOrder(t *testing.T) {
	p1, p2, p3 := newPattern(t, 1), newPattern(t, 2), newPattern(t, 3)
	m := &fakeMatcher{results: map[int]map[uint8][]match.Candidate{
		2: {1: {{X: 0, Y: 0, Score: 0.95}, {X: 3, Y: 0, Score: 0.99}, {X: 1, Y: 1, Score: 0.99}}},
		3: {1: {{X: 2, Y: 2, Score: 1}}},
	}}
	e, _ := newEngine(m)
	fp := &scriptedFrames{frames: []*image.NRGBA{frame(1)}}

	hit, err := e.Appear(fp, []*pattern.Pattern{p1, p2, p3}, 0, "r")
	if err != nil {
		t.Fatal(err)
	}
	if hit.Pattern != p2 {
		t.Errorf("应命中第一个有结果的 Pattern: %s", hit.Pattern)
	}
	if hit.Candidate.X != 3 || hit.Candidate.Y != 0 {
		t.Errorf("同分应取扫描顺序靠前的: %+v", hit.Candidate)
	}
	if len(m.calls) != 2 {
		t.Errorf("命中后不应继续匹配: %v", m.calls)
	}
}

func TestVanishAlreadyAbsent(t *testing.T) {
	m := &fakeMatcher{}
	e, sr := newEngine(m)
	fp := &scriptedFrames{frames: []*image.NRGBA{frame(1)}}

	if err := e.Vanish(fp, []*pattern.Pattern{newPattern(t, 1)}, 5*time.Second, "r"); err != nil {
		t.Fatalf("已不存在时应立即返回: %v", err)
	}
	if len(sr.slept) != 0 || fp.calls != 1 {
		t.Errorf("不应休眠: sleeps=%d captures=%d", len(sr.slept), fp.calls)
	}
}

func TestVanishAfterPolling(t *testing.T) {
	m := &fakeMatcher{results: map[int]map[uint8][]match.Candidate{
		1: {1: {{Score: 0.99}}, 2: {{Score: 0.99}}},
	}}
	e, sr := newEngine(m)
	fp := &scriptedFrames{frames: []*image.NRGBA{frame(1), frame(2), frame(3)}}

	if err := e.Vanish(fp, []*pattern.Pattern{newPattern(t, 1)}, 10*time.Second, "r"); err != nil {
		t.Fatal(err)
	}
	if fp.calls != 3 || len(sr.slept) != 2 {
		t.Errorf("应在第 3 轮消失: captures=%d sleeps=%d", fp.calls, len(sr.slept))
	}
}

func TestVanishFirstPatternDecides(t *testing.T) {
	p1, p2 := newPattern(t, 1), newPattern(t, 2)
	m := &fakeMatcher{results: map[int]map[uint8][]match.Candidate{
		1: {1: {{Score: 0.99}}},
	}}
	e, _ := newEngine(m)

	// 第一个仍存在，第二个不存在：未消失
	fp := &scriptedFrames{frames: []*image.NRGBA{frame(1)}}
	err := e.Vanish(fp, []*pattern.Pattern{p1, p2}, 0, "r")
	var ff *fail.FindFailedError
	if !errors.As(err, &ff) || !ff.Vanish {
		t.Fatalf("应返回未消失, got %v", err)
	}
	if len(ff.Patterns) != 2 {
		t.Errorf("错误应列出所有 Pattern: %v", ff.Patterns)
	}
	if len(m.calls) != 2 {
		t.Errorf("所有 Pattern 都应参与匹配: %v", m.calls)
	}

	// 第一个不存在，第二个存在：已消失
	m.results = map[int]map[uint8][]match.Candidate{2: {1: {{Score: 0.99}}}}
	fp = &scriptedFrames{frames: []*image.NRGBA{frame(1)}}
	if err := e.Vanish(fp, []*pattern.Pattern{p1, p2}, 0, "r"); err != nil {
		t.Errorf("第一个 Pattern 已消失时应成功: %v", err)
	}
}

func TestInvalidInput(t *testing.T) {
	e, _ := newEngine(&fakeMatcher{})
	fp := &scriptedFrames{frames: []*image.NRGBA{frame(1)}}
	p := newPattern(t, 1)

	cases := []struct {
		name     string
		patterns []*pattern.Pattern
		timeout  time.Duration
	}{
		{"空列表", nil, 0},
		{"包含 nil", []*pattern.Pattern{p, nil}, 0},
		{"超时为负", []*pattern.Pattern{p}, -time.Second},
	}
	for _, c := range cases {
		if _, err := e.Appear(fp, c.patterns, c.timeout, "r"); !fail.IsUsage(err) {
			t.Errorf("Appear %s 应返回参数错误, got %v", c.name, err)
		}
		if err := e.Vanish(fp, c.patterns, c.timeout, "r"); !fail.IsUsage(err) {
			t.Errorf("Vanish %s 应返回参数错误, got %v", c.name, err)
		}
	}
	if fp.calls != 0 {
		t.Errorf("参数错误时不应截图: %d", fp.calls)
	}
}

func TestCaptureError(t *testing.T) {
	e, _ := newEngine(&fakeMatcher{})
	boom := errors.New("boom")
	_, err := e.Appear(&scriptedFrames{err: boom}, []*pattern.Pattern{newPattern(t, 1)}, time.Second, "r")
	if !errors.Is(err, boom) || fail.IsFindFailed(err) || fail.IsUsage(err) {
		t.Errorf("截图错误应原样返回: %v", err)
	}
}

func TestAll(t *testing.T) {
	cands := []match.Candidate{{X: 0, Y: 0, Score: 0.93}, {X: 5, Y: 1, Score: 0.99}, {X: 9, Y: 3, Score: 0.91}}
	m := &fakeMatcher{results: map[int]map[uint8][]match.Candidate{1: {1: cands}}}
	e, sr := newEngine(m)
	fp := &scriptedFrames{frames: []*image.NRGBA{frame(1)}}

	got, err := e.All(fp, newPattern(t, 1))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Errorf("应返回所有候选: %v", got)
	}
	if fp.calls != 1 || len(sr.slept) != 0 {
		t.Errorf("All 只执行一轮: captures=%d", fp.calls)
	}

	if _, err := e.All(fp, nil); !fail.IsUsage(err) {
		t.Errorf("nil Pattern 应返回参数错误, got %v", err)
	}
}

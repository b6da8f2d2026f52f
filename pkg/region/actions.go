package region

import (
	"strings"

	"github.com/disintegration/imaging"

	"github.com/zoeyai/regionfind/pkg/diag"
	"github.com/zoeyai/regionfind/pkg/fail"
	"github.com/zoeyai/regionfind/pkg/input"
	"github.com/zoeyai/regionfind/pkg/match"
)

// Click 点击区域中心（加偏移）
func (r *Region) Click(dx, dy int) {
	r.env.Actor.Click(r.Center(dx, dy), input.DefaultAfterClick)
}

// ClickMatch 点击匹配结果的目标点
func (r *Region) ClickMatch(m *match.Match) error {
	if m == nil {
		return fail.Usage("Region.ClickMatch", fail.Args("match", nil), "匹配结果不能为空")
	}
	r.env.Actor.Click(m.Target(), input.DefaultAfterClick)
	return nil
}

// FindAndClick 查找后点击目标点
func (r *Region) FindAndClick(target any, opts ...FindOption) (*match.Match, error) {
	m, err := r.Find(target, opts...)
	if err != nil || m == nil {
		return m, err
	}
	return m, r.ClickMatch(m)
}

// SaveAsJPG 以 JPEG 格式保存区域截图
func (r *Region) SaveAsJPG(path string) error {
	return r.save("Region.SaveAsJPG", path, imaging.JPEG)
}

// SaveAsPNG 以 PNG 格式保存区域截图
func (r *Region) SaveAsPNG(path string) error {
	return r.save("Region.SaveAsPNG", path, imaging.PNG)
}

func (r *Region) save(call, path string, format imaging.Format) error {
	if strings.TrimSpace(path) == "" {
		return fail.Usage(call, fail.Args("path", path), "路径不能为空")
	}
	f, err := r.frames()
	if err != nil {
		return err
	}
	img, err := f.Capture()
	if err != nil {
		return err
	}
	if err := diag.SaveAs(img, path, format, r.env.Settings.SnapshotQuality); err != nil {
		return err
	}
	r.env.Log.Debug("%s 已保存到 %s", r, path)
	return nil
}

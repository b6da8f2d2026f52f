package screen

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/zoeyai/regionfind/pkg/geom"
	"github.com/zoeyai/regionfind/pkg/match"
)

// CaptureMeta 截图元信息：逻辑原点与缩放系数
type CaptureMeta struct {
	OriginX int
	OriginY int
	Scale   float64
}

// Grab 截取区域并裁掉硬件对齐产生的填充
// 返回图像的尺寸为 int(w*scale) × int(h*scale)
func Grab(fp FrameProvider, area geom.Rect, scale float64) (*image.NRGBA, CaptureMeta, error) {
	meta := CaptureMeta{OriginX: area.X(), OriginY: area.Y(), Scale: normalizeScale(scale)}

	img, err := fp.Capture(area.X(), area.Y(), area.W(), area.H())
	if err != nil {
		return nil, meta, fmt.Errorf("截屏失败: %w", err)
	}
	if img == nil {
		return nil, meta, fmt.Errorf("截屏失败: 图像为空")
	}

	pw, ph := area.Scaled(meta.Scale)
	b := img.Bounds()
	if b.Dx() < pw || b.Dy() < ph {
		return nil, meta, fmt.Errorf("截图尺寸 %dx%d 小于预期 %dx%d", b.Dx(), b.Dy(), pw, ph)
	}
	return imaging.Crop(img, image.Rect(0, 0, pw, ph).Add(b.Min)), meta, nil
}

// AdjustCandidate 将帧内物理坐标换算为逻辑坐标的匹配区域
// x = int((cx + originX*scale) / scale)，宽高 = int(模板尺寸 / scale)
func AdjustCandidate(c match.Candidate, patternW, patternH int, meta CaptureMeta) (geom.Rect, error) {
	s := normalizeScale(meta.Scale)
	x := int((float64(c.X) + float64(meta.OriginX)*s) / s)
	y := int((float64(c.Y) + float64(meta.OriginY)*s) / s)
	w := max(1, int(float64(patternW)/s))
	h := max(1, int(float64(patternH)/s))
	return geom.NewRect(x, y, w, h)
}

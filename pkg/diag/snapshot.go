// Package diag 搜索失败时的截图存档
package diag

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/disintegration/imaging"
	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/zoeyai/regionfind/pkg/config"
)

const (
	captionHeight   = 18
	captionFontSize = 12
	timeLayout      = "2006-01-02_15-04-05"
)

// Snapshotter 把搜索区域的截图写入失败目录
type Snapshotter struct {
	Dir      string
	Quality  int
	Annotate bool
	Now      func() time.Time
}

// NewSnapshotter 按配置创建
func NewSnapshotter(s *config.Settings) *Snapshotter {
	return &Snapshotter{
		Dir:      s.FindFailedDir,
		Quality:  s.SnapshotQuality,
		Annotate: s.AnnotateSnapshots,
		Now:      time.Now,
	}
}

// FileName 失败截图文件名: <时间>_<图像文件名>.jpg
func FileName(now time.Time, patternPath string) string {
	base := patternPath
	if i := strings.LastIndexAny(base, `/\`); i >= 0 {
		base = base[i+1:]
	}
	return fmt.Sprintf("%s_%s.jpg", now.Format(timeLayout), base)
}

// Save 保存截图，caption 非空且开启标注时在顶部加一行说明，返回文件路径
func (s *Snapshotter) Save(img image.Image, patternPath, caption string) (string, error) {
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return "", fmt.Errorf("创建失败截图目录失败: %w", err)
	}

	out := img
	if s.Annotate && caption != "" {
		out = Caption(img, caption)
	}

	path := filepath.Join(s.Dir, FileName(s.Now(), patternPath))
	if err := SaveImage(out, path, s.Quality); err != nil {
		return "", err
	}
	return path, nil
}

// SaveImage 按扩展名保存图像，JPEG 使用指定质量
func SaveImage(img image.Image, path string, quality int) error {
	if quality <= 0 || quality > 100 {
		quality = config.DefaultSnapshotQuality
	}
	if err := imaging.Save(img, path, imaging.JPEGQuality(quality)); err != nil {
		return fmt.Errorf("保存图像失败: %w", err)
	}
	return nil
}

// SaveAs 按指定格式保存，忽略扩展名
func SaveAs(img image.Image, path string, format imaging.Format, quality int) error {
	if quality <= 0 || quality > 100 {
		quality = config.DefaultSnapshotQuality
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("创建文件失败: %w", err)
	}
	if err := imaging.Encode(f, img, format, imaging.JPEGQuality(quality)); err != nil {
		f.Close()
		return fmt.Errorf("保存图像失败: %w", err)
	}
	return f.Close()
}

var (
	fontOnce sync.Once
	fontFace *truetype.Font
	fontErr  error
)

func loadFont() (*truetype.Font, error) {
	fontOnce.Do(func() {
		fontFace, fontErr = freetype.ParseFont(goregular.TTF)
	})
	return fontFace, fontErr
}

// Caption 在图像上方加一条黑底白字的说明
// 字体加载失败时返回原图的拷贝
func Caption(img image.Image, text string) *image.NRGBA {
	f, err := loadFont()
	if err != nil {
		return imaging.Clone(img)
	}

	b := img.Bounds()
	dst := imaging.New(b.Dx(), b.Dy()+captionHeight, color.Black)
	dst = imaging.Paste(dst, img, image.Pt(0, captionHeight))

	c := freetype.NewContext()
	c.SetDPI(72)
	c.SetFont(f)
	c.SetFontSize(captionFontSize)
	c.SetClip(image.Rect(0, 0, b.Dx(), captionHeight))
	c.SetDst(dst)
	c.SetSrc(image.NewUniform(color.White))
	c.SetHinting(font.HintingFull)

	pt := freetype.Pt(2, 2+int(c.PointToFixed(captionFontSize)>>6))
	c.DrawString(text, pt)
	return dst
}

// Package pattern 搜索用的参考图像
package pattern

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/zoeyai/regionfind/pkg/config"
	"github.com/zoeyai/regionfind/pkg/fail"
)

// Pattern 参考图像 + 相似度阈值
// 构造后不可变，Similar/Exact/TargetOffset 都返回新的 Pattern
type Pattern struct {
	path       string
	img        *image.NRGBA
	similarity float64
	targetDX   int
	targetDY   int
	settings   *config.Settings
}

// Option 构造选项
type Option func(*options)

type options struct {
	settings   *config.Settings
	similarity float64
}

// WithSettings 指定配置（默认相似度与图像搜索目录）
func WithSettings(s *config.Settings) Option {
	return func(o *options) {
		o.settings = s
	}
}

// WithSimilarity 指定相似度，必须在 (0, 1] 之间
func WithSimilarity(similarity float64) Option {
	return func(o *options) {
		o.similarity = similarity
	}
}

// New 创建 Pattern
// 路径先按当前目录解析为绝对路径，不存在时依次在 settings.ImagePaths 中查找
func New(path string, opts ...Option) (*Pattern, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.settings == nil {
		o.settings = config.Default()
	}

	call := "pattern.New"
	args := fail.Args("path", path, "similarity", o.similarity)

	similarity := o.similarity
	if similarity == 0 {
		similarity = o.settings.MinSimilarity
	} else if !ValidSimilarity(similarity) {
		return nil, fail.Usage(call, args, "相似度必须在 (0, 1] 之间")
	}

	resolved, err := Resolve(path, o.settings.ImagePaths)
	if err != nil {
		return nil, fail.WrapUsage(call, args, err)
	}

	img, err := decode(resolved)
	if err != nil {
		return nil, fail.WrapUsage(call, args, err)
	}

	return &Pattern{
		path:       resolved,
		img:        img,
		similarity: similarity,
		settings:   o.settings,
	}, nil
}

// ValidSimilarity 相似度在 (0, 1] 之间，NaN 不合法
func ValidSimilarity(s float64) bool {
	return s > 0 && s <= 1
}

// Resolve 解析图像文件路径，返回第一个存在的普通文件
func Resolve(path string, searchDirs []string) (string, error) {
	if abs, err := filepath.Abs(path); err == nil && isFile(abs) {
		return abs, nil
	}
	if !filepath.IsAbs(path) {
		for _, dir := range searchDirs {
			candidate := filepath.Join(dir, path)
			if isFile(candidate) {
				if abs, err := filepath.Abs(candidate); err == nil {
					return abs, nil
				}
				return candidate, nil
			}
		}
	}
	return "", &fail.NotFoundError{What: "图像文件", Name: path}
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func decode(path string) (*image.NRGBA, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("解码图像失败: %w", err)
	}
	return imaging.Clone(img), nil
}

// Similar 以新的相似度重新加载同一文件
func (p *Pattern) Similar(similarity float64) (*Pattern, error) {
	if !ValidSimilarity(similarity) {
		return nil, fail.Usage("Pattern.Similar", fail.Args("path", p.path, "similarity", similarity), "相似度必须在 (0, 1] 之间")
	}
	np, err := New(p.path, WithSettings(p.settings), WithSimilarity(similarity))
	if err != nil {
		return nil, err
	}
	np.targetDX, np.targetDY = p.targetDX, p.targetDY
	return np, nil
}

// Exact 等价于 Similar(1.0)
func (p *Pattern) Exact() (*Pattern, error) {
	return p.Similar(1.0)
}

// TargetOffset 设置点击目标相对匹配中心的偏移
func (p *Pattern) TargetOffset(dx, dy int) *Pattern {
	np := *p
	np.targetDX, np.targetDY = dx, dy
	return &np
}

// Target 点击目标相对匹配中心的偏移
func (p *Pattern) Target() (dx, dy int) {
	return p.targetDX, p.targetDY
}

// Filename 图像文件名；full 为 false 时只返回文件名部分
func (p *Pattern) Filename(full bool) string {
	if full {
		return p.path
	}
	return filepath.Base(p.path)
}

func (p *Pattern) W() int { return p.img.Bounds().Dx() }
func (p *Pattern) H() int { return p.img.Bounds().Dy() }

// Image 解码后的图像，调用方不应修改
func (p *Pattern) Image() image.Image {
	return p.img
}

// Similarity 相似度阈值
func (p *Pattern) Similarity() float64 {
	return p.similarity
}

func (p *Pattern) String() string {
	return fmt.Sprintf("Pattern of \"%s\" with similarity = %f", p.path, p.similarity)
}

// Names 返回一组 Pattern 的文件名，用于错误消息
func Names(patterns []*Pattern) []string {
	names := make([]string, len(patterns))
	for i, p := range patterns {
		names[i] = p.Filename(false)
	}
	return names
}

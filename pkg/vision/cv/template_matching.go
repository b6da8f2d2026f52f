package cv

import (
	"fmt"
	"image"
	"math"

	"gocv.io/x/gocv"

	"github.com/zoeyai/regionfind/pkg/match"
)

// Matcher 模板匹配器，无状态，可复用
type Matcher struct{}

// NewMatcher 创建模板匹配器
func NewMatcher() *Matcher {
	return &Matcher{}
}

// Match 在帧中查找模板，返回所有得分超过阈值的候选（行优先顺序）
// 阈值为 1 时得分达到 1 即算候选
func (m *Matcher) Match(tmpl, frame image.Image, threshold float64) ([]match.Candidate, error) {
	tb, fb := tmpl.Bounds(), frame.Bounds()
	if tb.Dx() > fb.Dx() || tb.Dy() > fb.Dy() {
		// 区域比模板小，不可能匹配
		return nil, nil
	}

	source, err := ImageToMat(frame)
	if err != nil {
		return nil, err
	}
	defer source.Close()

	search, err := ImageToMat(tmpl)
	if err != nil {
		return nil, err
	}
	defer search.Close()

	result, err := templateResultMatrix(source, search)
	if err != nil {
		return nil, err
	}
	defer result.Close()

	return scanCandidates(result, threshold)
}

// templateResultMatrix 计算 TM_CCORR_NORMED 结果矩阵
func templateResultMatrix(source, search gocv.Mat) (gocv.Mat, error) {
	if err := checkSourceLargerThanSearch(source, search); err != nil {
		return gocv.Mat{}, err
	}

	mask := gocv.NewMat()
	defer mask.Close()

	result := gocv.NewMat()
	gocv.MatchTemplate(source, search, &result, gocv.TmCcorrNormed, mask)
	if result.Empty() {
		result.Close()
		return gocv.Mat{}, fmt.Errorf("模板匹配失败: 结果为空")
	}
	return result, nil
}

// scanCandidates 行优先扫描结果矩阵
func scanCandidates(result gocv.Mat, threshold float64) ([]match.Candidate, error) {
	data, err := result.DataPtrFloat32()
	if err != nil {
		return nil, fmt.Errorf("读取匹配结果失败: %w", err)
	}

	rows, cols := result.Rows(), result.Cols()
	var cands []match.Candidate
	for y := 0; y < rows; y++ {
		row := data[y*cols : (y+1)*cols]
		for x, v := range row {
			s := float64(v)
			if math.IsNaN(s) {
				continue
			}
			if !accept(s, threshold) {
				continue
			}
			cands = append(cands, match.Candidate{X: x, Y: y, Score: math.Min(s, 1)})
		}
	}
	return cands, nil
}

func accept(score, threshold float64) bool {
	if score > threshold {
		return true
	}
	return threshold >= 1 && score >= 1
}

// checkSourceLargerThanSearch 检查源图像是否大于搜索图像
func checkSourceLargerThanSearch(source, search gocv.Mat) error {
	if source.Rows() < search.Rows() || source.Cols() < search.Cols() {
		return &ImageSizeError{
			SourceSize: [2]int{source.Cols(), source.Rows()},
			SearchSize: [2]int{search.Cols(), search.Rows()},
		}
	}
	return nil
}

// ImageSizeError 图像尺寸错误
type ImageSizeError struct {
	SourceSize [2]int
	SearchSize [2]int
}

func (e *ImageSizeError) Error() string {
	return fmt.Sprintf("搜索图像尺寸 %v 大于源图像 %v", e.SearchSize, e.SourceSize)
}

// Package grid 把矩形区域划分为 rows × cols 的网格
package grid

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zoeyai/regionfind/pkg/fail"
	"github.com/zoeyai/regionfind/pkg/geom"
)

// Position 网格位置
type Position struct {
	Rows int `json:"rows"` // 总行数
	Cols int `json:"cols"` // 总列数
	Row  int `json:"row"`  // 目标行 (1-based)
	Col  int `json:"col"`  // 目标列 (1-based)
}

func (p Position) String() string {
	return Format(p.Rows, p.Cols, p.Row, p.Col)
}

// Validate 检查网格位置
func (p Position) Validate() error {
	switch {
	case p.Rows < 1 || p.Cols < 1:
		return fail.Usagef("grid.Position", p.String(), "行数和列数必须大于 0: rows=%d, cols=%d", p.Rows, p.Cols)
	case p.Row < 1 || p.Col < 1:
		return fail.Usagef("grid.Position", p.String(), "目标行和目标列必须大于 0: row=%d, col=%d", p.Row, p.Col)
	case p.Row > p.Rows || p.Col > p.Cols:
		return fail.Usagef("grid.Position", p.String(), "目标位置超出范围: row=%d > rows=%d 或 col=%d > cols=%d", p.Row, p.Rows, p.Col, p.Cols)
	}
	return nil
}

// Parse 解析网格位置字符串
// 格式: rows.cols.row.col (如 "2.2.1.1" 表示 2x2 网格的第1行第1列)
func Parse(s string) (Position, error) {
	if s == "" {
		return Position{}, fail.Usage("grid.Parse", fail.Args("spec", s), "网格位置字符串为空")
	}

	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return Position{}, fail.Usage("grid.Parse", fail.Args("spec", s), "期望格式: rows.cols.row.col")
	}

	var nums [4]int
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return Position{}, fail.Usagef("grid.Parse", fail.Args("spec", s), "无效的数字: %s", part)
		}
		nums[i] = n
	}

	p := Position{Rows: nums[0], Cols: nums[1], Row: nums[2], Col: nums[3]}
	if err := p.Validate(); err != nil {
		return Position{}, err
	}
	return p, nil
}

// Format 格式化网格位置为字符串
func Format(rows, cols, row, col int) string {
	return fmt.Sprintf("%d.%d.%d.%d", rows, cols, row, col)
}

// Cell 网格中指定格子的矩形；相邻格子首尾相接，覆盖整个区域
func Cell(rect geom.Rect, p Position) (geom.Rect, error) {
	if err := p.Validate(); err != nil {
		return geom.Rect{}, err
	}
	if p.Cols > rect.W() || p.Rows > rect.H() {
		return geom.Rect{}, fail.Usage("grid.Cell", fail.Args("rect", rect, "grid", p), "格子数超过像素数")
	}

	x0 := rect.X() + (p.Col-1)*rect.W()/p.Cols
	x1 := rect.X() + p.Col*rect.W()/p.Cols
	y0 := rect.Y() + (p.Row-1)*rect.H()/p.Rows
	y1 := rect.Y() + p.Row*rect.H()/p.Rows
	return geom.NewRect(x0, y0, x1-x0, y1-y0)
}

// Center 网格格子的中心点
func Center(rect geom.Rect, p Position) (geom.Location, error) {
	if err := p.Validate(); err != nil {
		return geom.Location{}, err
	}
	cellW := float64(rect.W()) / float64(p.Cols)
	cellH := float64(rect.H()) / float64(p.Rows)
	return geom.Location{
		X: int(float64(rect.X()) + (float64(p.Col)-0.5)*cellW),
		Y: int(float64(rect.Y()) + (float64(p.Row)-0.5)*cellH),
	}, nil
}

// CenterFromString 从字符串解析并计算中心点；空字符串返回整个区域的中心
func CenterFromString(rect geom.Rect, spec string) (geom.Location, error) {
	if spec == "" {
		return rect.Center(0, 0), nil
	}
	p, err := Parse(spec)
	if err != nil {
		return geom.Location{}, err
	}
	return Center(rect, p)
}

package grid

import "github.com/zoeyai/regionfind/pkg/geom"

// Iterator 按行优先遍历网格中的所有格子
type Iterator struct {
	rect    geom.Rect
	rows    int
	cols    int
	current int
}

// NewIterator 创建网格迭代器
func NewIterator(rect geom.Rect, rows, cols int) *Iterator {
	return &Iterator{rect: rect, rows: rows, cols: cols}
}

// Next 返回下一个格子的位置和矩形，遍历完毕时 ok 为 false
func (g *Iterator) Next() (p Position, cell geom.Rect, ok bool) {
	if g.current >= g.Count() {
		return Position{}, geom.Rect{}, false
	}

	p = Position{
		Rows: g.rows,
		Cols: g.cols,
		Row:  g.current/g.cols + 1,
		Col:  g.current%g.cols + 1,
	}
	g.current++

	cell, err := Cell(g.rect, p)
	if err != nil {
		// 格子比像素还多，剩余格子都无效
		g.current = g.Count()
		return Position{}, geom.Rect{}, false
	}
	return p, cell, true
}

// Reset 重置迭代器
func (g *Iterator) Reset() {
	g.current = 0
}

// Count 返回总格子数
func (g *Iterator) Count() int {
	if g.rows < 1 || g.cols < 1 {
		return 0
	}
	return g.rows * g.cols
}

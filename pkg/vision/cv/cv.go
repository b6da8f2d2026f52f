// Package cv 基于 gocv 的模板匹配
//
// 使用归一化互相关 (TM_CCORR_NORMED)。结果矩阵按行优先扫描，
// 得分严格大于阈值的位置都是候选，坐标为模板左上角在帧内的像素位置。
//
// 基本用法:
//
//	m := cv.NewMatcher()
//	cands, err := m.Match(pattern.Image(), frame, 0.995)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, c := range cands {
//	    fmt.Printf("(%d, %d) %.4f\n", c.X, c.Y, c.Score)
//	}
package cv

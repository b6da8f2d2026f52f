package cv

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// ImageToMat 将 image.Image 转换为三通道 gocv.Mat
// 模板与帧使用同一转换，通道顺序不影响匹配
func ImageToMat(img image.Image) (gocv.Mat, error) {
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("图像转换失败: %w", err)
	}
	return mat, nil
}

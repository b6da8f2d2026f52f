package diag

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/disintegration/imaging"
)

func TestFileName(t *testing.T) {
	now := time.Date(2024, 3, 9, 7, 5, 2, 0, time.Local)
	tests := []struct {
		path string
		want string
	}{
		{"/images/ok.png", "2024-03-09_07-05-02_ok.png.jpg"},
		{`C:\images\ok.png`, "2024-03-09_07-05-02_ok.png.jpg"},
		{"ok.png", "2024-03-09_07-05-02_ok.png.jpg"},
	}
	for _, tt := range tests {
		if got := FileName(now, tt.path); got != tt.want {
			t.Errorf("FileName(%q) = %s, want %s", tt.path, got, tt.want)
		}
	}
}

func TestSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "failed")
	s := &Snapshotter{
		Dir:     dir,
		Quality: 70,
		Now:     func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.Local) },
	}

	img := imaging.New(40, 30, color.White)
	path, err := s.Save(img, "/x/btn.png", "ignored")
	if err != nil {
		t.Fatalf("保存失败: %v", err)
	}
	if filepath.Base(path) != "2024-01-02_03-04-05_btn.png.jpg" {
		t.Errorf("文件名错误: %s", path)
	}

	saved, err := imaging.Open(path)
	if err != nil {
		t.Fatalf("读取截图失败: %v", err)
	}
	if saved.Bounds().Dx() != 40 || saved.Bounds().Dy() != 30 {
		t.Errorf("未开启标注时尺寸不应变化: %v", saved.Bounds())
	}
}

func TestSaveAnnotated(t *testing.T) {
	s := &Snapshotter{Dir: t.TempDir(), Quality: 90, Annotate: true, Now: time.Now}
	path, err := s.Save(imaging.New(120, 20, color.White), "a.png", `无法找到 "a.png"`)
	if err != nil {
		t.Fatal(err)
	}
	saved, err := imaging.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if saved.Bounds().Dy() != 20+captionHeight {
		t.Errorf("标注后高度应增加 %d: %v", captionHeight, saved.Bounds())
	}
}

func TestCaption(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 200, 10))
	out := Caption(img, "Unable to find ok.png")

	if out.Bounds().Dy() != 10+captionHeight {
		t.Fatalf("高度错误: %v", out.Bounds())
	}
	// 说明区域中应有白色像素
	white := false
	for y := 0; y < captionHeight && !white; y++ {
		for x := 0; x < 200; x++ {
			if r, _, _, _ := out.At(x, y).RGBA(); r > 0x8000 {
				white = true
				break
			}
		}
	}
	if !white {
		t.Error("说明区域没有绘制文字")
	}
}

func TestSaveImagePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "region.png")
	if err := SaveImage(imaging.New(3, 3, color.Black), path, 0); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("文件应存在: %v", err)
	}
}

func TestSaveAsIgnoresExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "region.dat")
	if err := SaveAs(imaging.New(5, 4, color.White), path, imaging.PNG, 0); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	_, format, err := image.DecodeConfig(f)
	if err != nil || format != "png" {
		t.Errorf("应保存为 PNG: format=%s err=%v", format, err)
	}
}

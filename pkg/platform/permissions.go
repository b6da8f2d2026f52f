package platform

import "strings"

// Permissions 权限状态
type Permissions struct {
	Accessibility   bool `json:"accessibility"`
	ScreenRecording bool `json:"screen_recording"`
}

// Granted 是否全部授权
func (p Permissions) Granted() bool {
	return p.Accessibility && p.ScreenRecording
}

// Instructions 缺少权限时的提示，全部授权时返回空字符串
func (p Permissions) Instructions() string {
	if p.Granted() {
		return ""
	}
	var b strings.Builder
	b.WriteString("需要授权以下权限才能正常工作:\n")
	if !p.Accessibility {
		b.WriteString("  辅助功能 (用于控制鼠标/键盘): 系统设置 > 隐私与安全性 > 辅助功能\n")
	}
	if !p.ScreenRecording {
		b.WriteString("  屏幕录制 (用于截屏和图像匹配): 系统设置 > 隐私与安全性 > 屏幕录制\n")
	}
	b.WriteString("授权后需要重启应用才能生效。")
	return b.String()
}

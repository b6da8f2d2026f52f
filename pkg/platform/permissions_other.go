//go:build !darwin

package platform

// CheckPermissions 非 macOS 系统不需要额外授权
func CheckPermissions() Permissions {
	return Permissions{Accessibility: true, ScreenRecording: true}
}

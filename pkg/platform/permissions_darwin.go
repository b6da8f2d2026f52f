//go:build darwin

package platform

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework Cocoa -framework ApplicationServices -framework CoreGraphics
#import <Cocoa/Cocoa.h>
#import <ApplicationServices/ApplicationServices.h>
#import <CoreGraphics/CoreGraphics.h>

int axTrusted() {
    NSDictionary *options = @{(__bridge NSString *)kAXTrustedCheckOptionPrompt: @NO};
    return AXIsProcessTrustedWithOptions((__bridge CFDictionaryRef)options) ? 1 : 0;
}

// 没有屏幕录制权限时，其他进程的窗口名称不可见
int screenCaptureAllowed() {
    if (@available(macOS 10.15, *)) {
        CFArrayRef windows = CGWindowListCopyWindowInfo(
            kCGWindowListOptionOnScreenOnly | kCGWindowListExcludeDesktopElements,
            kCGNullWindowID
        );
        if (windows == NULL) {
            return 0;
        }
        CFIndex count = CFArrayGetCount(windows);
        int named = 0;
        for (CFIndex i = 0; i < count; i++) {
            CFDictionaryRef w = (CFDictionaryRef)CFArrayGetValueAtIndex(windows, i);
            CFStringRef name = (CFStringRef)CFDictionaryGetValue(w, kCGWindowName);
            if (name != NULL && CFStringGetLength(name) > 0) {
                named = 1;
                break;
            }
        }
        CFRelease(windows);
        return (count == 0 || named) ? 1 : 0;
    }
    return 1;
}
*/
import "C"

// CheckPermissions 检查截屏和输入模拟所需的系统权限（不触发弹窗）
func CheckPermissions() Permissions {
	return Permissions{
		Accessibility:   C.axTrusted() == 1,
		ScreenRecording: C.screenCaptureAllowed() == 1,
	}
}

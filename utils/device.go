package utils

import "strings"

// Device classes recorded on view events.
const (
	DeviceMobile  = "mobile"
	DeviceTablet  = "tablet"
	DeviceDesktop = "desktop"
	DeviceBot     = "bot"
)

var botMarkers = []string{"bot", "crawler", "spider", "slurp", "curl", "wget", "python-requests"}

// ClassifyDevice buckets a user agent into mobile, tablet, desktop, or
// bot. Tablets are checked before phones since tablet UAs often also
// carry "mobile".
func ClassifyDevice(userAgent string) string {
	ua := strings.ToLower(userAgent)
	if ua == "" {
		return DeviceDesktop
	}

	for _, marker := range botMarkers {
		if strings.Contains(ua, marker) {
			return DeviceBot
		}
	}

	if strings.Contains(ua, "ipad") || strings.Contains(ua, "tablet") {
		return DeviceTablet
	}
	if strings.Contains(ua, "mobile") || strings.Contains(ua, "android") || strings.Contains(ua, "iphone") {
		return DeviceMobile
	}
	return DeviceDesktop
}

// Package device buckets a client into mobile/tablet/desktop plus a
// cosmetic label, purely for layout decisions. Malformed or absent user
// agents fall through to the desktop default; there are no error paths.
package device

import (
	"stlouis-middleware/models"

	"strings"
)

const (
	ClassMobile  = "mobile"
	ClassTablet  = "tablet"
	ClassDesktop = "desktop"
)

// Classify inspects user-agent substrings first to set the coarse device
// class, then refines a cosmetic label from viewport size. Known iPad
// resolutions get exact labels; everything else falls back to range-based
// heuristics.
func Classify(userAgent string, width int, height int, isTouch bool) models.DeviceProfile {
	profile := models.DeviceProfile{
		Class:   ClassDesktop,
		Label:   "unknown",
		Width:   width,
		Height:  height,
		IsTouch: isTouch,
	}

	isIPad := strings.Contains(userAgent, "iPad") ||
		(strings.Contains(userAgent, "Macintosh") && isTouch)
	isAndroid := strings.Contains(userAgent, "Android")
	isAndroidMobile := isAndroid && strings.Contains(userAgent, "Mobile")
	isIPhone := strings.Contains(userAgent, "iPhone") || strings.Contains(userAgent, "iPod")
	isWindows := strings.Contains(userAgent, "Windows NT")

	switch {
	case isIPad:
		profile.Class = ClassTablet
		switch {
		case width == 1024 && height == 1366:
			profile.Label = `iPad Pro 12.9"`
		case width == 834 && height == 1194:
			profile.Label = `iPad Pro 11"`
		case width == 820 && height == 1180:
			profile.Label = "iPad Air"
		case width == 768 && height == 1024:
			profile.Label = "iPad Mini/Standard"
		case width >= 1024:
			profile.Label = "iPad Pro (Large)"
		case width >= 768:
			profile.Label = "iPad (Standard)"
		default:
			profile.Label = "iPad (Unknown)"
		}

	case isAndroid && !isAndroidMobile:
		profile.Class = ClassTablet
		switch {
		case width >= 1200:
			profile.Label = "Android Tablet (Large)"
		case width >= 800:
			profile.Label = "Android Tablet (Medium)"
		default:
			profile.Label = "Android Tablet (Small)"
		}

	case isWindows && isTouch && width >= 768 && width <= 1366:
		profile.Class = ClassTablet
		profile.Label = "Windows Tablet"

	case isTouch && width >= 768 && width <= 1366 && height >= 1024:
		profile.Class = ClassTablet
		profile.Label = "Generic Tablet"

	case isIPhone || isAndroidMobile || width < 768:
		profile.Class = ClassMobile
		switch {
		case isIPhone && width >= 414:
			profile.Label = "iPhone Plus/Pro Max"
		case isIPhone && width >= 375:
			profile.Label = "iPhone Standard"
		case isIPhone:
			profile.Label = "iPhone Mini/SE"
		case isAndroid:
			profile.Label = "Android Phone"
		default:
			profile.Label = "Mobile Device"
		}

	default:
		profile.Class = ClassDesktop
		switch {
		case width >= 1920:
			profile.Label = "Desktop (Large)"
		case width >= 1440:
			profile.Label = "Desktop (Medium)"
		default:
			profile.Label = "Desktop (Small)"
		}
	}

	return profile
}

// TabletPadding returns the top-padding utility class that clears the fixed
// header on tablets. Empty for non-tablets.
func TabletPadding(profile models.DeviceProfile) string {
	if profile.Class != ClassTablet {
		return ""
	}
	switch {
	case profile.Width >= 1024:
		return "pt-56"
	case profile.Width >= 820:
		return "pt-52"
	case profile.Width >= 768:
		return "pt-48"
	}
	return "pt-44"
}

// TextSizes are tablet text size utility classes.
type TextSizes struct {
	Heading  string `json:"heading"`
	Subtitle string `json:"subtitle"`
	Button   string `json:"button"`
}

// TabletTextSizes returns size classes for tablets; ok is false otherwise.
func TabletTextSizes(profile models.DeviceProfile) (sizes TextSizes, ok bool) {
	if profile.Class != ClassTablet {
		return sizes, false
	}
	switch {
	case profile.Width >= 1024:
		return TextSizes{Heading: "text-5xl", Subtitle: "text-lg", Button: "text-base"}, true
	case profile.Width >= 820:
		return TextSizes{Heading: "text-4xl", Subtitle: "text-base", Button: "text-sm"}, true
	}
	return TextSizes{Heading: "text-3xl", Subtitle: "text-sm", Button: "text-xs"}, true
}

package device_test

import (
	"testing"

	"stlouis-middleware/device"
)

const (
	iPadUA    = "Mozilla/5.0 (iPad; CPU OS 16_0 like Mac OS X) AppleWebKit/605.1.15"
	iPhoneUA  = "Mozilla/5.0 (iPhone; CPU iPhone OS 16_0 like Mac OS X) AppleWebKit/605.1.15"
	androidUA = "Mozilla/5.0 (Linux; Android 13; Pixel 7) AppleWebKit/537.36 Mobile Safari/537.36"
	tabletUA  = "Mozilla/5.0 (Linux; Android 13; SM-X700) AppleWebKit/537.36 Safari/537.36"
	winUA     = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		ua        string
		width     int
		height    int
		isTouch   bool
		wantClass string
		wantLabel string
	}{
		{"iPad Pro 12.9", iPadUA, 1024, 1366, true, "tablet", `iPad Pro 12.9"`},
		{"iPad Pro 11", iPadUA, 834, 1194, true, "tablet", `iPad Pro 11"`},
		{"iPad Air", iPadUA, 820, 1180, true, "tablet", "iPad Air"},
		{"iPad Mini", iPadUA, 768, 1024, true, "tablet", "iPad Mini/Standard"},
		{"large unknown iPad", iPadUA, 1100, 1500, true, "tablet", "iPad Pro (Large)"},
		{"standard range iPad", iPadUA, 800, 1100, true, "tablet", "iPad (Standard)"},
		{"iPadOS desktop UA", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15)", 1024, 1366, true, "tablet", `iPad Pro 12.9"`},
		{"android tablet medium", tabletUA, 900, 1200, true, "tablet", "Android Tablet (Medium)"},
		{"android tablet large", tabletUA, 1280, 800, true, "tablet", "Android Tablet (Large)"},
		{"windows touch tablet", winUA, 1280, 800, true, "tablet", "Windows Tablet"},
		{"iphone pro max", iPhoneUA, 430, 932, true, "mobile", "iPhone Plus/Pro Max"},
		{"iphone standard", iPhoneUA, 390, 844, true, "mobile", "iPhone Standard"},
		{"iphone se", iPhoneUA, 320, 568, true, "mobile", "iPhone Mini/SE"},
		{"android phone", androidUA, 412, 915, true, "mobile", "Android Phone"},
		{"narrow viewport unknown ua", "", 500, 800, false, "mobile", "Mobile Device"},
		{"desktop small", winUA, 1366, 768, false, "desktop", "Desktop (Small)"},
		{"desktop medium", winUA, 1440, 900, false, "desktop", "Desktop (Medium)"},
		{"desktop large", winUA, 2560, 1440, false, "desktop", "Desktop (Large)"},
		{"empty ua falls through to desktop", "", 1280, 720, false, "desktop", "Desktop (Small)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := device.Classify(tt.ua, tt.width, tt.height, tt.isTouch)
			if got.Class != tt.wantClass {
				t.Errorf("class = %v, want %v", got.Class, tt.wantClass)
			}
			if got.Label != tt.wantLabel {
				t.Errorf("label = %q, want %q", got.Label, tt.wantLabel)
			}
			if got.Width != tt.width || got.Height != tt.height {
				t.Errorf("viewport = %vx%v, want %vx%v", got.Width, got.Height, tt.width, tt.height)
			}
		})
	}
}

func TestTabletPadding(t *testing.T) {
	tests := []struct {
		name  string
		width int
		want  string
	}{
		{"iPad Pro", 1024, "pt-56"},
		{"iPad Air", 820, "pt-52"},
		{"iPad Mini", 768, "pt-48"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := device.Classify(iPadUA, tt.width, 1366, true)
			if got := device.TabletPadding(profile); got != tt.want {
				t.Errorf("padding = %v, want %v", got, tt.want)
			}
		})
	}

	desktop := device.Classify(winUA, 1920, 1080, false)
	if got := device.TabletPadding(desktop); got != "" {
		t.Errorf("desktop padding = %q, want empty", got)
	}
}

func TestTabletTextSizes(t *testing.T) {
	profile := device.Classify(iPadUA, 1024, 1366, true)
	sizes, ok := device.TabletTextSizes(profile)
	if !ok {
		t.Fatal("expected sizes for a tablet")
	}
	if sizes.Heading != "text-5xl" {
		t.Errorf("heading = %v, want text-5xl", sizes.Heading)
	}

	desktop := device.Classify(winUA, 1920, 1080, false)
	if _, ok := device.TabletTextSizes(desktop); ok {
		t.Error("desktop must not get tablet text sizes")
	}
}

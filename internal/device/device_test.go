package device

import (
	"testing"
	"time"

	"github.com/lengocduc195/geovisit/internal/model"
)

const (
	chromeDesktop = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	edgeDesktop = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36 Edg/120.0.2210.91"

	firefoxLinux = "Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0"

	safariMac = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 " +
		"(KHTML, like Gecko) Version/17.2 Safari/605.1.15"

	operaDesktop = "Mozilla/5.0 (Windows NT 6.1; Win64; x64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36 OPR/105.0.0.0"

	safariIPhone = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_2 like Mac OS X) " +
		"AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.2 Mobile/15E148 Safari/604.1"

	safariIPad = "Mozilla/5.0 (iPad; CPU OS 16_6 like Mac OS X) AppleWebKit/605.1.15 " +
		"(KHTML, like Gecko) Version/16.6 Mobile/15E148 Safari/604.1"

	chromeAndroidPhone = "Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/120.0.0.0 Mobile Safari/537.36"

	chromeAndroidTablet = "Mozilla/5.0 (Linux; Android 13; SM-X910) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	googlebot = "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)"

	internetExplorer = "Mozilla/5.0 (Windows NT 6.1; Trident/7.0; rv:11.0) like Gecko"
)

func TestClassifyBrowser(t *testing.T) {
	tests := []struct {
		name       string
		descriptor string
		browser    string
		version    string
	}{
		{"chrome", chromeDesktop, "Chrome", "120.0.0.0"},
		{"edge beats chrome", edgeDesktop, "Edge", "120.0.2210.91"},
		{"firefox", firefoxLinux, "Firefox", "121.0"},
		{"safari", safariMac, "Safari", "17.2"},
		{"opera beats chrome", operaDesktop, "Opera", "105.0.0.0"},
		{"internet explorer", internetExplorer, "Internet Explorer", "11.0"},
		{"unmatched", "curl/8.4.0", Unknown, Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			browser, version := classifyBrowser(tt.descriptor)
			if browser != tt.browser {
				t.Fatal("unexpected browser", browser)
			}
			if version != tt.version {
				t.Fatal("unexpected version", version)
			}
		})
	}
}

func TestClassifyOS(t *testing.T) {
	tests := []struct {
		name       string
		descriptor string
		os         string
		version    string
	}{
		{"windows 10", chromeDesktop, "Windows", "10"},
		{"windows 7", operaDesktop, "Windows", "7"},
		{"linux", firefoxLinux, "Linux", Unknown},
		{"macos", safariMac, "macOS", "10.15.7"},
		{"ios beats macos", safariIPhone, "iOS", "17.2"},
		{"ipad is ios", safariIPad, "iOS", "16.6"},
		{"android beats linux", chromeAndroidPhone, "Android", "14"},
		{"unmatched", "curl/8.4.0", Unknown, Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			osName, version := classifyOS(tt.descriptor)
			if osName != tt.os {
				t.Fatal("unexpected os", osName)
			}
			if version != tt.version {
				t.Fatal("unexpected version", version)
			}
		})
	}
}

func TestClassifyDeviceType(t *testing.T) {
	tests := []struct {
		name       string
		descriptor string
		expect     string
	}{
		{"desktop", chromeDesktop, "desktop"},
		{"phone", chromeAndroidPhone, "mobile"},
		{"iphone", safariIPhone, "mobile"},
		{"ipad", safariIPad, "tablet"},
		{"android tablet", chromeAndroidTablet, "tablet"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyDeviceType(tt.descriptor); got != tt.expect {
				t.Fatal("unexpected device type", got)
			}
		})
	}
}

func TestCollect(t *testing.T) {
	zone := time.FixedZone("Asia/Ho_Chi_Minh", 7*3600)
	clock := model.ClockFunc(func() time.Time {
		return time.Date(2024, time.January, 6, 15, 0, 0, 0, zone)
	})
	collector := &Collector{Clock: clock}

	t.Run("captures the ambient timezone", func(t *testing.T) {
		partial := collector.Collect(chromeDesktop)
		if partial.Timezone != "Asia/Ho_Chi_Minh" {
			t.Fatal("unexpected timezone", partial.Timezone)
		}
		if partial.TimezoneOffset != 7 {
			t.Fatal("unexpected offset", partial.TimezoneOffset)
		}
	})

	t.Run("reads TZ when the zone is unnamed", func(t *testing.T) {
		if time.Local.String() != "Local" {
			t.Skip("the process started with a named local zone")
		}
		t.Setenv("TZ", "Asia/Ho_Chi_Minh")
		localClock := model.ClockFunc(func() time.Time {
			return time.Date(2024, time.January, 6, 15, 0, 0, 0, time.Local)
		})
		partial := (&Collector{Clock: localClock}).Collect(chromeDesktop)
		if partial.Timezone != "Asia/Ho_Chi_Minh" {
			t.Fatal("unexpected timezone", partial.Timezone)
		}
	})

	t.Run("flags crawlers", func(t *testing.T) {
		if !collector.Collect(googlebot).Bot {
			t.Fatal("expected a bot")
		}
		if collector.Collect(chromeDesktop).Bot {
			t.Fatal("expected a non-bot")
		}
	})

	// Detection is a deterministic ordered match: re-running with the
	// same descriptor must classify identically.
	t.Run("is idempotent", func(t *testing.T) {
		first := collector.Collect(edgeDesktop)
		for i := 0; i < 10; i++ {
			again := collector.Collect(edgeDesktop)
			if again.Browser != first.Browser || again.OS != first.OS {
				t.Fatal("classification changed across runs")
			}
		}
	})
}

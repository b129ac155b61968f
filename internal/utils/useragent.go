package utils

import (
	"strings"

	ua "github.com/mssola/user_agent"
)

// DeviceInfo holds parsed information from a User-Agent string
type DeviceInfo struct {
	DeviceType string `json:"device_type"` // tv, mobile, desktop, cli, unknown
	OS         string `json:"os"`
	Browser    string `json:"browser"`
	IsBot      bool   `json:"is_bot"`
}

// tvIndicators mark the smart TVs and set-top boxes that usually run the display page
var tvIndicators = []string{
	"smart-tv",
	"smarttv",
	"tizen",
	"webos",
	"web0s",
	"bravia",
	"android tv",
	"aft", // Fire TV sticks
	"crkey",
	"hbbtv",
}

// cliIndicators mark API clients such as the admin console
var cliIndicators = []string{
	"go-resty",
	"go-http-client",
	"curl/",
	"signage-admin",
}

// ParseUserAgent parses a User-Agent string and extracts device information
func ParseUserAgent(userAgent string) DeviceInfo {
	if userAgent == "" {
		return DeviceInfo{DeviceType: "unknown", OS: "Unknown", Browser: "Unknown"}
	}

	lower := strings.ToLower(userAgent)
	for _, indicator := range cliIndicators {
		if strings.Contains(lower, indicator) {
			return DeviceInfo{DeviceType: "cli", OS: "Unknown", Browser: "Unknown"}
		}
	}

	parser := ua.New(userAgent)
	info := DeviceInfo{
		OS:      "Unknown",
		Browser: "Unknown",
		IsBot:   parser.Bot(),
	}

	if osInfo := parser.OSInfo(); osInfo.Name != "" {
		info.OS = strings.TrimSpace(osInfo.Name + " " + osInfo.Version)
	}
	if name, _ := parser.Browser(); name != "" {
		info.Browser = name
	}

	switch {
	case isTV(lower):
		info.DeviceType = "tv"
	case parser.Mobile():
		info.DeviceType = "mobile"
	default:
		info.DeviceType = "desktop"
	}

	return info
}

func isTV(lowerUA string) bool {
	for _, indicator := range tvIndicators {
		if strings.Contains(lowerUA, indicator) {
			return true
		}
	}
	return false
}

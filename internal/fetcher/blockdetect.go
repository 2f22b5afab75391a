package fetcher

import (
	"net/http"
	"strings"
)

// BlockType describes the kind of anti-bot interstitial a page appears to be.
type BlockType string

const (
	BlockNone       BlockType = ""
	BlockCloudflare BlockType = "cloudflare"
	BlockCaptcha    BlockType = "captcha"
	BlockRobotCheck BlockType = "robot_check"
	BlockJSShell    BlockType = "js_shell"
)

// robotCheckMarkers are phrases from marketplace "are you a robot" pages,
// which are served with status 200.
var robotCheckMarkers = []string{
	"/errors/validatecaptcha",
	"enter the characters you see below",
	"sorry, we just need to make sure you're not a robot",
	"api-services-support@amazon.com",
}

// DetectBlock checks a response for signs that the body is an anti-bot page
// rather than the requested content.
func DetectBlock(status int, header http.Header, body []byte) BlockType {
	if status == http.StatusForbidden || status == http.StatusServiceUnavailable {
		if header.Get("cf-ray") != "" || header.Get("cf-cache-status") != "" || header.Get("server") == "cloudflare" {
			return BlockCloudflare
		}
	}

	lower := strings.ToLower(string(body))

	for _, m := range robotCheckMarkers {
		if strings.Contains(lower, m) {
			return BlockRobotCheck
		}
	}

	if strings.Contains(lower, "checking your browser") ||
		strings.Contains(lower, "cf-browser-verification") {
		return BlockCloudflare
	}

	if strings.Contains(lower, "recaptcha") || strings.Contains(lower, "hcaptcha") {
		return BlockCaptcha
	}

	// JS-only shell: very small body with noscript or meta refresh.
	if len(body) < 2000 {
		if strings.Contains(lower, "<noscript") && strings.Contains(lower, "javascript") {
			return BlockJSShell
		}
		if strings.Contains(lower, `meta http-equiv="refresh"`) {
			return BlockJSShell
		}
	}

	return BlockNone
}

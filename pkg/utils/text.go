package utils

import (
	"regexp"
	"strings"
	"unicode"
)

// CleanText removes extra whitespace and normalizes text
func CleanText(text string) string {
	space := regexp.MustCompile(`\s+`)
	text = space.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// TruncateBytes hard-truncates s to at most max bytes. Unlike a display
// ellipsis this is a budget cut for prompt embedding, so nothing is
// appended; the cut backs up to the previous rune boundary so the result
// stays valid UTF-8.
func TruncateBytes(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func utf8RuneStart(b byte) bool {
	return b&0xC0 != 0x80
}

// SanitizeFilename turns a URL or title into a filesystem-safe token.
func SanitizeFilename(name string) string {
	invalid := regexp.MustCompile(`[<>:"/\\|?*]`)
	name = invalid.ReplaceAllString(name, "_")

	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, name)

	if len(cleaned) > 255 {
		cleaned = cleaned[:255]
	}
	return cleaned
}

// HostToken reduces a URL to a short token usable in export filenames:
// scheme stripped, path separators and dots replaced.
func HostToken(url string) string {
	s := url
	if idx := strings.Index(s, "://"); idx > 0 {
		s = s[idx+3:]
	}
	s = strings.TrimSuffix(s, "/")
	s = strings.NewReplacer("/", "_", ".", "-", ":", "-").Replace(s)
	return SanitizeFilename(s)
}

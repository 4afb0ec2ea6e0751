package parsing

import "strings"

// Full-width ASCII block emitted by some OCR engines for receipt digits and
// letters (０-９, Ａ-Ｚ, ａ-ｚ). Shifting a rune in this range down by
// widthOffset yields its half-width equivalent.
const (
	fullwidthLow  = 0xFF10
	fullwidthHigh = 0xFF5A
	widthOffset   = 0xFEE0
)

// Normalize converts raw OCR text into clean, non-empty lines. Full-width
// alphanumerics are mapped to their half-width equivalents, thousand
// separators (ASCII and full-width commas) are dropped, and every line is
// trimmed. Blank lines disappear; line order is preserved. Normalize never
// fails: garbage in, empty slice out.
func Normalize(text string) []string {
	text = strings.Map(func(r rune) rune {
		switch {
		case r >= fullwidthLow && r <= fullwidthHigh:
			return r - widthOffset
		case r == ',' || r == '，':
			return -1
		}
		return r
	}, text)

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

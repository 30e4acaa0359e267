package bengali

import (
	"regexp"
	"strings"
)

// bengaliBlock matches any code point in the Bengali Unicode block.
var bengaliBlock = regexp.MustCompile(`[\x{0980}-\x{09FF}]`)

// controlChars matches non-printable characters that PDF extraction leaks
// into text, excluding tab and newline.
var controlChars = regexp.MustCompile(`[\x00-\x08\x0b\x0c\x0e-\x1f\x7f-\x9f]`)

var multiSpace = regexp.MustCompile(` +`)

// ContainsBengali reports whether the text holds at least one Bengali
// character.
func ContainsBengali(text string) bool {
	return bengaliBlock.MatchString(text)
}

// CountBengali returns the number of Bengali characters in the text.
func CountBengali(text string) int {
	return len(bengaliBlock.FindAllString(text, -1))
}

// CleanText strips control and zero-width characters and normalizes
// whitespace while preserving Bengali code points. Applied to every
// extracted line before any rule-based fixing.
func CleanText(text string) string {
	if text == "" {
		return ""
	}

	text = controlChars.ReplaceAllString(text, "")

	// Zero-width characters break substring matching against the rule
	// table, so they go before the fixer runs.
	text = strings.ReplaceAll(text, "\u200b", "")
	text = strings.ReplaceAll(text, "\u200c", "")
	text = strings.ReplaceAll(text, "\u200d", "")

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = multiSpace.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}

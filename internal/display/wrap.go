package display

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"
)

// Width is the console's line width. Report templates pad their columns
// to fit inside it, so only prose messages ever actually wrap.
const Width = 80

// Wrap word-wraps text to Width. Lines already shorter than Width pass
// through untouched, which keeps the aligned plot tables intact.
func Wrap(text string) string {
	return wordwrap.String(text, Width)
}

// Capitalize uppercases the first character, turning stored names like
// "spring" into display names.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

package contract

import (
	"testing"
	"unicode/utf8"
)

// FuzzTruncateText fuzzes TruncateText with random text and widths.
func FuzzTruncateText(f *testing.F) {
	f.Add("Light_rainfall", 8)
	f.Add("", 0)
	f.Add("Été", 2)
	f.Add("Thunderstorm", -1)

	f.Fuzz(func(t *testing.T, text string, width int) {
		out := TruncateText(text, width)
		if width > 3 && utf8.RuneCountInString(out) > width && utf8.ValidString(text) {
			t.Errorf("TruncateText(%q, %d) = %q exceeds width", text, width, out)
		}
	})
}

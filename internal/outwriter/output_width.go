package outwriter

import (
	"os"

	"github.com/bikecast/bikecast/internal/contract"
	"golang.org/x/term"
)

// getMaxTableValueWidth calculates the maximum width for values in table output
// based on terminal width.
func getMaxTableValueWidth(cfg *contract.Config) int {
	termWidth := cfg.Width

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Field column plus borders and padding
	available := termWidth - 25
	if available < 12 {
		return 12
	}
	if available > 60 {
		return 60
	}
	return available
}

package outwriter

import (
	"os"

	"github.com/huangsam/benchboard/internal/contract"
	"golang.org/x/term"
)

// getTermWidth returns the configured width override or the detected terminal width.
func getTermWidth(cfg *contract.Config) int {
	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		return cfg.Width
	}
	detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detectedWidth <= 0 {
		// Fallback to conservative default if terminal size can't be detected
		return 80 // Conservative default for narrow terminals and CI
	}
	return detectedWidth
}

// GetMaxTableTextWidth calculates the maximum width for name and text cells in table
// output, given how many numeric and text columns the table shows.
func GetMaxTableTextWidth(cfg *contract.Config, numericCols, textCols int) int {
	termWidth := getTermWidth(cfg)

	// Rank column with badge emoji, borders and padding
	baseWidth := 12

	// Numeric cells are short and rendered in full
	baseWidth += numericCols * 10

	// Reserve space for table borders, separators, and padding
	baseWidth += 4 * textCols

	if textCols == 0 {
		textCols = 1
	}
	available := (termWidth - baseWidth) / textCols
	if available < 12 {
		// Minimum reasonable text width
		return 12
	}
	if available > 48 {
		// Maximum text width to prevent overly wide tables
		return 48
	}
	return available
}

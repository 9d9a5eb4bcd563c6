// Package outwriter has output and writer logic.
package outwriter

import (
	"os"

	"github.com/cfudash/fundboard/internal/contract"
	"golang.org/x/term"
)

// Label column bounds for table output.
const (
	minLabelWidth = 15
	maxLabelWidth = 60
)

// getTerminalWidth returns the --width override, the detected terminal width, or 80.
func getTerminalWidth(cfg *contract.Config) int {
	if cfg.Width > 0 {
		return cfg.Width
	}
	detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detectedWidth <= 0 {
		// Fallback to conservative default if terminal size can't be detected
		return 80
	}
	return detectedWidth
}

// getMaxLabelWidth calculates the maximum width for label cells in table output.
// reserved is the width taken by the other columns including borders and padding.
func getMaxLabelWidth(cfg *contract.Config, reserved int) int {
	available := getTerminalWidth(cfg) - reserved
	if available < minLabelWidth {
		return minLabelWidth
	}
	if available > maxLabelWidth {
		return maxLabelWidth
	}
	return available
}

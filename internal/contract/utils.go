package contract

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/cfudash/fundboard/schema"
	"github.com/fatih/color"
)

// NoDataMessage is shown in place of an empty table or chart.
const NoDataMessage = "No data available."

// Color variables for console output, keyed by bucket name.
var (
	GreenColor  = color.New(color.FgGreen, color.Bold)
	YellowColor = color.New(color.FgYellow)
	OrangeColor = color.New(color.FgHiRed)
	RedColor    = color.New(color.FgRed, color.Bold)
	GrayColor   = color.New(color.FgHiBlack)
)

// BarColor paints histogram bars in text output.
var BarColor = color.New(color.FgCyan)

// GetColorLabel returns text painted with the console color of the bucket.
func GetColorLabel(bucket schema.ColorBucket, text string) string {
	switch bucket.Name {
	case schema.GreenBucket.Name:
		return GreenColor.Sprint(text)
	case schema.YellowBucket.Name:
		return YellowColor.Sprint(text)
	case schema.OrangeBucket.Name:
		return OrangeColor.Sprint(text)
	case schema.RedBucket.Name:
		return RedColor.Sprint(text)
	default:
		return GrayColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path selects os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// TruncateLabel shortens a label to maxWidth runes with an ellipsis suffix.
// Requires maxWidth > 3 so the ellipsis always leaves room for content.
func TruncateLabel(label string, maxWidth int) string {
	runes := []rune(label)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return label
}

// FormatCell renders one record value for tables and CSV.
// Lists are joined with ", " and nil becomes an empty cell.
func FormatCell(v any, precision int) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return ""
		}
		if val == math.Trunc(val) && math.Abs(val) < 1e15 {
			return strconv.FormatFloat(val, 'f', 0, 64)
		}
		return strconv.FormatFloat(val, 'f', precision, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case []any:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = FormatCell(item, precision)
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(val)
	}
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}

package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/benchboard/schema"
)

// Badge emoji for the podium ranks.
const (
	TrophyEmoji   = "🏆"
	StarEmoji     = "⭐"
	SparklesEmoji = "✨"
)

// Color variables for console output.
var (
	TrophyColor   = color.New(color.FgYellow, color.Bold) // TrophyColor highlights first place.
	StarColor     = color.New(color.FgWhite, color.Bold)  // StarColor highlights second place.
	SparklesColor = color.New(color.FgRed)                // SparklesColor highlights third place.
	PlainColor    = color.New(color.FgCyan)               // PlainColor is for every other rank.
)

// GetBadgeEmoji returns the emoji for a badge tier, or an empty string for no badge.
func GetBadgeEmoji(tier schema.BadgeTier) string {
	switch tier {
	case schema.TrophyBadge:
		return TrophyEmoji
	case schema.StarBadge:
		return StarEmoji
	case schema.SparklesBadge:
		return SparklesEmoji
	default:
		return ""
	}
}

// GetPlainRank returns the rank label with its badge emoji when enabled.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainRank(row schema.DisplayRow, useEmojis bool) string {
	if emoji := GetBadgeEmoji(row.Badge); useEmojis && emoji != "" {
		return emoji + " " + row.RankLabel
	}
	return row.RankLabel
}

// GetColorRank returns a colored rank label for console output (table).
// It uses GetPlainRank to determine the string, and then applies the badge color.
func GetColorRank(row schema.DisplayRow, useEmojis bool) string {
	text := GetPlainRank(row, useEmojis)

	switch row.Badge {
	case schema.TrophyBadge:
		return TrophyColor.Sprint(text)
	case schema.StarBadge:
		return StarColor.Sprint(text)
	case schema.SparklesBadge:
		return SparklesColor.Sprint(text)
	default:
		return PlainColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. It falls back to os.Stdout when no path is given.
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

// GetDBFilePath returns the path to the SQLite DB file for record storage.
func GetDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".benchboard.db"
	}
	return filepath.Join(homeDir, ".benchboard.db")
}

// TruncateText truncates a display name to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 to leave room for the "..." and at least one character.
func TruncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
}

// ParseFieldAssignments parses "key=value" pairs into a raw submission map.
// Keys are lowercased and trimmed; values keep their inner spacing. A repeated key is an error.
func ParseFieldAssignments(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.ToLower(strings.TrimSpace(key))
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid field '%s', expected 'key=value'", pair)
		}
		if _, dup := out[key]; dup {
			return nil, fmt.Errorf("field '%s' given more than once", key)
		}
		out[key] = strings.TrimSpace(value)
	}
	return out, nil
}

// FormValues converts decoded JSON values to the raw strings a form would send.
// Null becomes an empty string; objects and arrays are rejected.
func FormValues(raw map[string]any) (map[string]string, error) {
	out := make(map[string]string, len(raw))
	for key, value := range raw {
		key = strings.ToLower(strings.TrimSpace(key))
		switch val := value.(type) {
		case nil:
			out[key] = ""
		case string:
			out[key] = val
		case float64:
			out[key] = strconv.FormatFloat(val, 'f', -1, 64)
		case bool:
			out[key] = strconv.FormatBool(val)
		default:
			return nil, fmt.Errorf("field %s must be a string or number", key)
		}
	}
	return out, nil
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

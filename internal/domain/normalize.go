package domain

import (
	"encoding/json"
	"strconv"
	"strings"
)

// CoerceString turns a decoded JSON value into text.
//   - nil becomes ""
//   - numbers use their shortest decimal form
//   - booleans become "true"/"false"
//   - objects and arrays become compact JSON
func CoerceString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// Truncate cuts s to at most max characters (runes).
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if len(s) <= max {
		return s
	}
	n := 0
	for i := range s {
		if n == max {
			return s[:i]
		}
		n++
	}
	return s
}

// NormalizeLevel trims a difficulty label and keeps its case.
// A blank label becomes "beginner".
func NormalizeLevel(level string) string {
	level = strings.TrimSpace(level)
	if level == "" {
		return "beginner"
	}
	return level
}

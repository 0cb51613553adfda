// Package uiutil holds small formatting helpers shared by templates and handlers.
package uiutil

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// DateTimeLayout is the display format for timestamps in pages.
const DateTimeLayout = "Jan 2, 2006 3:04 PM"

const ellipsis = "…"

// DateTime formats t in the server's local zone. The zero time is "".
func DateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(DateTimeLayout)
}

// Ago describes t relative to now ("3 hours ago"). Anything under a minute,
// or in the future, is "just now"; a week or more falls back to DateTime.
func Ago(t, now time.Time) string {
	d := now.Sub(t)
	var n int
	var unit string
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		n, unit = int(d/time.Minute), "minute"
	case d < 24*time.Hour:
		n, unit = int(d/time.Hour), "hour"
	case d < 7*24*time.Hour:
		n, unit = int(d/(24*time.Hour)), "day"
	default:
		return DateTime(t)
	}
	if n != 1 {
		unit += "s"
	}
	return fmt.Sprintf("%d %s ago", n, unit)
}

// Truncate cuts text to at most limit runes, the last being an ellipsis.
func Truncate(text string, limit int) string {
	if limit <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return strings.TrimRightFunc(string(runes[:limit-1]), unicode.IsSpace) + ellipsis
}

// Initials returns up to two upper-case initials for a display name.
func Initials(name string) string {
	out := make([]rune, 0, 2)
	for _, word := range strings.Fields(name) {
		out = append(out, unicode.ToUpper([]rune(word)[0]))
		if len(out) == cap(out) {
			break
		}
	}
	return string(out)
}

// ProgressPercent is done/total as a whole percentage clamped to 0..100.
func ProgressPercent(done, total int) int {
	if total <= 0 {
		return 0
	}
	return min(max(done, 0), total) * 100 / total
}

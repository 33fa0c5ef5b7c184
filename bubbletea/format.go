package bubbletea

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/studybuddy"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// DueLabel describes a due date relative to today: "Today", "Tomorrow", or
// the date itself, suffixed with "(Overdue!)" when the session is overdue.
func DueLabel(sess studybuddy.Session, today time.Time) string {
	today = studybuddy.DateOf(today)
	due := studybuddy.DateOf(sess.DueDate)
	switch {
	case due.Equal(today):
		return "Today"
	case due.Equal(today.AddDate(0, 0, 1)):
		return "Tomorrow"
	}
	label := due.Format("Jan 2, 2006")
	if sess.Overdue(today) {
		label += " (Overdue!)"
	}
	return label
}

// Hours formats a duration in hours without trailing zeros.
func Hours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64) + "h"
}

// Cell truncates s to width display columns and pads it to exactly width.
func Cell(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = runewidth.Truncate(s, width, "…")
	if w := uniseg.StringWidth(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}

// progressBar renders ratio in [0, 1] as a bar of width cells.
func (s Styles) progressBar(ratio float64, width int) string {
	if width <= 0 {
		return ""
	}
	ratio = math.Max(0, math.Min(1, ratio))
	filled := int(math.Round(ratio * float64(width)))
	return s.Success.Render(strings.Repeat("█", filled)) +
		s.Muted.Render(strings.Repeat("░", width-filled))
}

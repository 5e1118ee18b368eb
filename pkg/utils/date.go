package utils

import (
	"strings"
	"time"
)

const (
	DateLayout        = "2006-01-02"
	DisplayDateLayout = "1/2/2006"
	LatestSuffix      = " (latest)"
)

var displayLayouts = []string{
	DisplayDateLayout,
	DateLayout,
	"January 2, 2006",
	"Jan 2, 2006",
}

// NormalizeDate keeps the calendar day of t and drops the time of day.
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// IsLatest reports whether date is today or later.
func IsLatest(date, today time.Time) bool {
	return !NormalizeDate(date).Before(NormalizeDate(today))
}

func ParseDate(dateStr string) (time.Time, error) {
	return time.Parse(DateLayout, dateStr)
}

func FormatDate(date time.Time) string {
	return date.Format(DateLayout)
}

// FormatDisplayDate renders the date field text, e.g. "3/1/2024 (latest)".
func FormatDisplayDate(date time.Time, latest bool) string {
	text := date.Format(DisplayDateLayout)
	if latest {
		text += LatestSuffix
	}
	return text
}

// ParseDisplayDate reads a date back from the date field text.
func ParseDisplayDate(text string) (time.Time, bool) {
	text = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(text), strings.TrimSpace(LatestSuffix)))
	if text == "" {
		return time.Time{}, false
	}

	for _, layout := range displayLayouts {
		if date, err := time.Parse(layout, text); err == nil {
			return NormalizeDate(date), true
		}
	}

	return time.Time{}, false
}

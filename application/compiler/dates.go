package compiler

import (
	"strings"
	"time"
)

const isoDate = "2006-01-02"

// dateLayouts is the ordered list of accepted date formats. The first
// layout that parses wins.
var dateLayouts = []string{
	"2006-1-2",
	"2006/1/2",
	"1/2/2006",
	"2-1-2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
	"2/1/2006",
	"1-2-2006",
}

var weekdayNames = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// ParseDate normalizes free-form date text into YYYY-MM-DD. It never
// fails: text that cannot be interpreted resolves to a week from now.
// Booking commands degrade to that default instead of erroring out,
// and callers rely on it.
func ParseDate(text string) string {
	return parseDateAt(text, time.Now())
}

func parseDateAt(text string, now time.Time) string {
	text = strings.ToLower(strings.TrimSpace(text))

	if text == "tomorrow" {
		return now.AddDate(0, 0, 1).Format(isoDate)
	}

	if rest, ok := strings.CutPrefix(text, "next "); ok {
		if d, matched := nextWeekday(rest, now); matched {
			return d.Format(isoDate)
		}
		return now.AddDate(0, 0, 7).Format(isoDate)
	}

	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, text); err == nil {
			return d.Format(isoDate)
		}
		// month names were lowercased during normalization
		if d, err := time.Parse(layout, titleWords(text)); err == nil {
			return d.Format(isoDate)
		}
	}

	return now.AddDate(0, 0, 7).Format(isoDate)
}

// nextWeekday resolves "next <weekday>" to the next occurrence of that
// weekday strictly after now. When today already is that weekday, the
// result is a full week ahead, never today.
func nextWeekday(name string, now time.Time) (time.Time, bool) {
	name = strings.TrimSpace(name)
	if len(name) > 3 {
		name = name[:3]
	}
	if name == "" {
		return time.Time{}, false
	}

	target := -1
	for idx, day := range weekdayNames {
		if strings.HasPrefix(day, name) {
			target = idx
			break
		}
	}
	if target < 0 {
		return time.Time{}, false
	}

	// Monday-based weekday index to match the table above
	current := (int(now.Weekday()) + 6) % 7
	ahead := (target - current + 7) % 7
	if ahead == 0 {
		ahead = 7
	}
	return now.AddDate(0, 0, ahead), true
}

func titleWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

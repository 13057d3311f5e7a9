package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// arabicMeridiems maps Arabic morning/evening markers to am/pm. Longer forms
// come first so single-letter markers never clobber them.
var arabicMeridiems = []struct{ arabic, english string }{
	{"الصباح", "am"},
	{"المساء", "pm"},
	{"صباحاً", "am"},
	{"صباحا", "am"},
	{"مساءً", "pm"},
	{"مساء", "pm"},
	{"ظهراً", "pm"},
	{"ظهرا", "pm"},
	{"ص", "am"},
	{"م", "pm"},
}

// arabicDigits maps Arabic-Indic numerals to ASCII digits.
var arabicDigits = map[rune]rune{
	'٠': '0', '١': '1', '٢': '2', '٣': '3', '٤': '4',
	'٥': '5', '٦': '6', '٧': '7', '٨': '8', '٩': '9',
}

var timePattern = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?(am|pm)?$`)

// NormalizeTime converts free-text time input (English and Arabic forms such
// as "17:00", "5pm", "5:30 pm", "٥ مساء") into canonical 24-hour "HH:MM".
// The scheduling core only ever sees the canonical form.
func NormalizeTime(raw string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(raw))

	for _, m := range arabicMeridiems {
		s = strings.ReplaceAll(s, m.arabic, m.english)
	}
	s = strings.Map(func(r rune) rune {
		if d, ok := arabicDigits[r]; ok {
			return d
		}
		return r
	}, s)
	s = strings.ReplaceAll(s, " ", "")

	m := timePattern.FindStringSubmatch(s)
	if m == nil {
		return "", fmt.Errorf("unrecognized time %q", raw)
	}

	hour, err := strconv.Atoi(m[1])
	if err != nil {
		return "", fmt.Errorf("unrecognized time %q", raw)
	}
	minute := 0
	if m[2] != "" {
		minute, err = strconv.Atoi(m[2])
		if err != nil {
			return "", fmt.Errorf("unrecognized time %q", raw)
		}
	}

	switch m[3] {
	case "am":
		if hour < 1 || hour > 12 {
			return "", fmt.Errorf("invalid hour in %q", raw)
		}
		if hour == 12 {
			hour = 0
		}
	case "pm":
		if hour < 1 || hour > 12 {
			return "", fmt.Errorf("invalid hour in %q", raw)
		}
		if hour != 12 {
			hour += 12
		}
	default:
		if hour > 23 {
			return "", fmt.Errorf("invalid hour in %q", raw)
		}
	}
	if minute > 59 {
		return "", fmt.Errorf("invalid minute in %q", raw)
	}

	return fmt.Sprintf("%02d:%02d", hour, minute), nil
}

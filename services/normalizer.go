package services

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	// footnoteRegexp matches bracketed reference markers like [3] or [note 1]
	footnoteRegexp = regexp.MustCompile(`\[.*\]`)
	// yearRegexp captures a standalone 4-digit year in the 1900–2099 range
	yearRegexp = regexp.MustCompile(`\b(19|20)\d{2}\b`)
)

// SafeInt converts text to an integer, tolerating thousands separators and
// float-shaped input ("1,234.0" → 1234). Returns nil on anything non-numeric.
func SafeInt(value string) *int {
	f := SafeFloat(value)
	if f == nil {
		return nil
	}
	n := int(*f)
	return &n
}

// SafeFloat converts text to a float, stripping thousands separators.
// Returns nil on anything non-numeric.
func SafeFloat(value string) *float64 {
	value = strings.ReplaceAll(strings.TrimSpace(value), ",", "")
	if value == "" {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return &f
}

// ParseStreams expands a stream-count cell into an absolute number.
// The text is cut at the first footnote marker; "billion" and "million"
// suffixes multiply the parsed value by 1e9 / 1e6.
func ParseStreams(text string) *float64 {
	text = strings.ToLower(strings.TrimSpace(strings.SplitN(text, "[", 2)[0]))

	switch {
	case strings.Contains(text, "billion"):
		return scale(SafeFloat(strings.ReplaceAll(text, "billion", "")), 1e9)
	case strings.Contains(text, "million"):
		return scale(SafeFloat(strings.ReplaceAll(text, "million", "")), 1e6)
	default:
		return SafeFloat(text)
	}
}

func scale(f *float64, factor float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f * factor
	return &v
}

// ParseYear extracts a release year from the loosely formatted year/date
// cell. It prefers the first 4-digit year token, then a purely numeric cell,
// then the last token of a long-form date ("29 November 2019").
func ParseYear(text string) *int {
	text = strings.TrimSpace(footnoteRegexp.ReplaceAllString(text, ""))
	if text == "" {
		return nil
	}

	if m := yearRegexp.FindString(text); m != "" {
		return SafeInt(m)
	}

	if isDigits(text) {
		return SafeInt(text)
	}

	if parts := strings.Fields(text); len(parts) >= 3 {
		return SafeInt(parts[len(parts)-1])
	}

	return nil
}

// ParseExactDate parses dates of exactly the "29 November 2019" shape into
// ISO form. Any other layout yields nil: ambiguous formats are not guessed.
func ParseExactDate(text string) *string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	d, err := time.Parse("2 January 2006", text)
	if err != nil {
		return nil
	}
	iso := d.Format("2006-01-02")
	return &iso
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

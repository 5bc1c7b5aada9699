package lookup

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DisplayDateLayout is the day-first layout the date step stores in the draft.
const DisplayDateLayout = "02/01/2006"

// Day and month take one or two digits, the year exactly four.
var (
	dayMonthPattern = regexp.MustCompile(`^\d{1,2}$`)
	yearPattern     = regexp.MustCompile(`^\d{4}$`)
)

// NormalizeDate converts DD/MM/YYYY, DD-MM-YYYY or YYYY-MM-DD input to
// YYYY-MM-DD. Input that matches none of these is returned trimmed, so
// NormalizeDate(NormalizeDate(x)) == NormalizeDate(x).
func NormalizeDate(raw string) string {
	s := strings.TrimSpace(raw)
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == '/' || r == '-' })
	if len(parts) != 3 {
		return s
	}
	if yearPattern.MatchString(parts[0]) {
		parts[0], parts[2] = parts[2], parts[0]
	}
	if iso, ok := canonicalDate(parts[0], parts[1], parts[2]); ok {
		return iso
	}
	return s
}

// DateFromParts builds the canonical YYYY-MM-DD form from separate day, month
// and year fields. The result is always a value NormalizeDate leaves
// unchanged.
func DateFromParts(day, month, year string) string {
	day, month, year = strings.TrimSpace(day), strings.TrimSpace(month), strings.TrimSpace(year)
	return NormalizeDate(day + "/" + month + "/" + year)
}

func canonicalDate(day, month, year string) (string, bool) {
	if !dayMonthPattern.MatchString(day) || !dayMonthPattern.MatchString(month) || !yearPattern.MatchString(year) {
		return "", false
	}
	d, _ := strconv.Atoi(day)
	m, _ := strconv.Atoi(month)
	return fmt.Sprintf("%s-%02d-%02d", year, m, d), true
}

// FormatDisplayDate renders t as DD/MM/YYYY.
func FormatDisplayDate(t time.Time) string {
	return t.Format(DisplayDateLayout)
}

// NormalizeTime turns loose time input into HH:MM. "930" and "0930" both
// become "09:30"; "9:30" becomes "09:30". Anything else is returned with
// whitespace removed.
func NormalizeTime(raw string) string {
	s := strings.Join(strings.Fields(raw), "")
	if s == "" {
		return ""
	}
	if !strings.Contains(s, ":") {
		switch len(s) {
		case 3:
			return "0" + s[:1] + ":" + s[1:]
		case 4:
			return s[:2] + ":" + s[2:]
		}
		return s
	}
	hm := strings.SplitN(s, ":", 2)
	if len(hm[0]) == 1 {
		return "0" + hm[0] + ":" + hm[1]
	}
	return s
}

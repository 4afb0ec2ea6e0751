package parsing

import (
	"regexp"
	"strconv"
	"time"
)

// DateLayout is the canonical form for every date in the system.
const DateLayout = "2006-01-02"

// datePattern pairs a regexp with a builder that orders its capture groups
// into year, month, day.
type datePattern struct {
	re    *regexp.Regexp
	build func(m []string) (year, month, day int)
}

// datePatterns is a priority order, not just a list: the unambiguous
// year-first form is tried before the two month/day-first forms, because a
// price or quantity column can look like a short date. Two-digit years land
// in the 2000s.
var datePatterns = []datePattern{
	{
		// 2024年03月15日, 2024/03/15, 2024-3-15, 2024.03.15
		re: regexp.MustCompile(`(\d{4})[年/\-.](\d{1,2})[月/\-.](\d{1,2})日?`),
		build: func(m []string) (int, int, int) {
			return atoi(m[1]), atoi(m[2]), atoi(m[3])
		},
	},
	{
		// 03/15/2024, 3-15-2024
		re: regexp.MustCompile(`(\d{1,2})[/\-.](\d{1,2})[/\-.](\d{4})`),
		build: func(m []string) (int, int, int) {
			return atoi(m[3]), atoi(m[1]), atoi(m[2])
		},
	},
	{
		// 03/15/24, 3-1-24
		re: regexp.MustCompile(`(\d{1,2})[/\-.](\d{1,2})[/\-.](\d{2})\b`),
		build: func(m []string) (int, int, int) {
			return 2000 + atoi(m[3]), atoi(m[1]), atoi(m[2])
		},
	},
}

// ExtractDate scans normalized lines for a transaction date. Each pattern is
// tried against every line before the next pattern is considered, so table
// order outranks line order. A candidate must survive a calendar round-trip:
// time.Date normalizes instead of failing, so month 13 or Feb 30 is caught
// by comparing the components back. Returns ok=false when no line carries a
// usable date; the caller falls back to today.
func ExtractDate(lines []string) (string, bool) {
	for _, p := range datePatterns {
		for _, line := range lines {
			m := p.re.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			year, month, day := p.build(m)
			d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
			if d.Year() != year || d.Month() != time.Month(month) || d.Day() != day {
				continue
			}
			return d.Format(DateLayout), true
		}
	}
	return "", false
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

package plan

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/width"
)

// DaySpan bounds the number of day entries a plan may contain.
// Max == 0 means no upper bound.
type DaySpan struct {
	Min int
	Max int
}

// Exact reports whether the span pins a single day count.
func (s DaySpan) Exact() bool { return s.Max > 0 && s.Min == s.Max }

// Allows reports whether n day entries satisfy the span.
func (s DaySpan) Allows(n int) bool {
	if n < s.Min {
		return false
	}
	return s.Max == 0 || n <= s.Max
}

func (s DaySpan) String() string {
	switch {
	case s.Exact():
		return strconv.Itoa(s.Min)
	case s.Max == 0:
		return strconv.Itoa(s.Min) + "+"
	default:
		return strconv.Itoa(s.Min) + "-" + strconv.Itoa(s.Max)
	}
}

var (
	reNightsDaysJA = regexp.MustCompile(`(\d+)\s*泊\s*(\d+)\s*日`)
	reNightsDaysEN = regexp.MustCompile(`(\d+)[\s-]*nights?\D{0,5}?(\d+)[\s-]*days?`)
	reDays         = regexp.MustCompile(`(\d+)[\s-]*(?:days?|日間|日)`)
	reNights       = regexp.MustCompile(`(\d+)[\s-]*(?:nights?|泊)`)
	openEnded      = []string{"以上", "or more", "or longer", "+"}
	dayTrip        = []string{"日帰り", "day trip", "day-trip", "daytrip", "same day"}
)

// ParseDuration derives the expected number of itinerary days from a free-text
// duration label ("1泊2日", "2 nights 3 days", "day trip", "4泊5日以上").
// An explicit day or night count wins over day-trip wording ("3-day trip").
// Unrecognised labels yield an unconstrained span of at least one day.
func ParseDuration(label string) DaySpan {
	s := strings.ToLower(width.Fold.String(strings.TrimSpace(label)))
	if s == "" {
		return DaySpan{Min: 1}
	}
	days := 0
	if m := reNightsDaysJA.FindStringSubmatch(s); m != nil {
		days = atoi(m[2])
	} else if m := reNightsDaysEN.FindStringSubmatch(s); m != nil {
		days = atoi(m[2])
	} else if m := reDays.FindStringSubmatch(s); m != nil {
		days = atoi(m[1])
	} else if m := reNights.FindStringSubmatch(s); m != nil {
		days = atoi(m[1]) + 1
	}
	if days < 1 {
		for _, kw := range dayTrip {
			if strings.Contains(s, kw) {
				return DaySpan{Min: 1, Max: 1}
			}
		}
		return DaySpan{Min: 1}
	}

	for _, kw := range openEnded {
		if strings.Contains(s, kw) {
			return DaySpan{Min: days}
		}
	}
	return DaySpan{Min: days, Max: days}
}

func atoi(v string) int {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

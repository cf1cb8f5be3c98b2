package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"discount_etl/internal/domain"
)

// fallbackWindow is the validity assumed when none can be parsed.
const fallbackWindow = 7 * 24 * time.Hour

var (
	priceStrip  = regexp.MustCompile(`[^\d,.]`)
	datePattern = regexp.MustCompile(`(\d{1,2})\.\s*(\d{1,2})\.?\s*(\d{4})?`)
)

var dateLayouts = []string{
	"2006-01-02",
	"02.01.2006",
	"2.1.2006",
	"2006/01/02",
}

var isoLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999",
}

// ParsePrice extracts a decimal from text like "129,90 Kč". Empty or
// unparsable input yields an invalid NullDecimal.
func ParsePrice(s string) decimal.NullDecimal {
	cleaned := priceStrip.ReplaceAllString(s, "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	if cleaned == "" {
		return decimal.NullDecimal{}
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

// ParseDate tries the explicit layouts first, then ISO-8601.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return domain.DateOf(t), true
		}
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return domain.DateOf(t), true
		}
	}
	return time.Time{}, false
}

// ParseValidity reads a free-text validity such as "od 20.1. do 26.1." or
// "platí do 26.1.". today must be a date as returned by domain.DateOf.
func ParseValidity(s string, today time.Time) (from, until time.Time) {
	fallbackFrom, fallbackUntil := today, today.Add(fallbackWindow)

	matches := datePattern.FindAllStringSubmatch(s, -1)
	switch {
	case len(matches) >= 2:
		d1, m1, y1, ok1 := dayMonthYear(matches[0], today.Year())
		d2, m2, y2, ok2 := dayMonthYear(matches[1], today.Year())
		if !ok1 || !ok2 {
			return fallbackFrom, fallbackUntil
		}
		if matches[1][3] == "" && m2 < m1 {
			y2 = y1 + 1
		}

		from, ok1 = makeDate(y1, m1, d1)
		until, ok2 = makeDate(y2, m2, d2)
		if !ok1 || !ok2 {
			return fallbackFrom, fallbackUntil
		}
		return from, until

	case len(matches) == 1:
		d, m, y, ok := dayMonthYear(matches[0], today.Year())
		if !ok {
			return fallbackFrom, fallbackUntil
		}
		until, ok = makeDate(y, m, d)
		if !ok {
			return fallbackFrom, fallbackUntil
		}
		return today, until
	}

	return fallbackFrom, fallbackUntil
}

func dayMonthYear(match []string, currentYear int) (day, month, year int, ok bool) {
	day, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, 0, 0, false
	}
	month, err = strconv.Atoi(match[2])
	if err != nil {
		return 0, 0, 0, false
	}
	year = currentYear
	if match[3] != "" {
		if year, err = strconv.Atoi(match[3]); err != nil {
			return 0, 0, 0, false
		}
	}
	return day, month, year, true
}

// makeDate rejects dates that time.Date would silently normalize, like 31.2.
func makeDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || int(t.Month()) != month {
		return time.Time{}, false
	}
	return t, true
}

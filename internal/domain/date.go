package domain

import "time"

// DateOf truncates t to its calendar date in t's location and returns it as
// midnight UTC. All validity dates are carried in this form.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ISOWeek returns the ISO week number and ISO year of a date.
func ISOWeek(d time.Time) (week, year int) {
	year, week = d.ISOWeek()
	return week, year
}

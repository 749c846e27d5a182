package util

import "time"

// Returns the input date at midnight
func RoundDateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Gets the date of the monday of the week that the input date falls in.
func WeekStart(t time.Time) time.Time {
	off := int(t.Weekday()) - int(time.Monday)
	if off < 0 {
		off += 7 // Adjust if the date is a Sunday
	}
	return RoundDateToDay(t.AddDate(0, 0, -off))
}

// Returns the one-based weekday index of the input date, with monday as day
// one, matching how the timetable service counts days.
func DayIndex(t time.Time) int {
	if t.Weekday() == time.Sunday {
		return 7
	}
	return int(t.Weekday())
}

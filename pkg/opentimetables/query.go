package opentimetables

import (
	"fmt"
	"time"

	"github.com/simonrob/opentimetables-utils/types"
	"github.com/simonrob/opentimetables-utils/util"
)

// Period keywords accepted on the command line.
const (
	PeriodYear      = "year"
	PeriodSemester1 = "s1"
	PeriodSemester2 = "s2"
	PeriodToday     = "today"
	PeriodWeek      = "week"
	PeriodNext      = "next"
)

// Wire format of event query dates. The service expects UTC midnight with
// explicit milliseconds.
const queryDateLayout = "2006-01-02T15:04:05.000Z"

// Teaching dates of the current academic session. The service has no endpoint
// that exposes these, so they need a manual update once per year.
var (
	semester1Start = time.Date(2025, time.September, 29, 0, 0, 0, 0, time.UTC)
	semester1End   = time.Date(2026, time.January, 30, 0, 0, 0, 0, time.UTC)
	semester2Start = time.Date(2026, time.February, 2, 0, 0, 0, 0, time.UTC)
	semester2End   = time.Date(2026, time.June, 12, 0, 0, 0, 0, time.UTC)
)

// Builds the event query window for a period keyword. Every call returns a
// fresh query value; now only matters for the day and week relative periods.
// An unknown keyword is an error, which the CLI treats as fatal.
func QueryForPeriod(period string, now time.Time) (types.EventQuery, error) {
	view := types.ViewOptions{
		Days:        []types.Day{},
		Weeks:       []types.Week{},
		DatePeriods: []types.DatePeriod{},
	}

	switch period {
	case PeriodYear:
		view.DatePeriods = append(view.DatePeriods, datePeriod(semester1Start, semester2End))
	case PeriodSemester1:
		view.DatePeriods = append(view.DatePeriods, datePeriod(semester1Start, semester1End))
	case PeriodSemester2:
		view.DatePeriods = append(view.DatePeriods, datePeriod(semester2Start, semester2End))
	case PeriodToday:
		view.Weeks = append(view.Weeks, week(util.WeekStart(now)))
		view.Days = append(view.Days, types.Day{DayOfWeek: util.DayIndex(now)})
	case PeriodWeek:
		view.Weeks = append(view.Weeks, week(util.WeekStart(now)))
	case PeriodNext:
		view.Weeks = append(view.Weeks, week(util.WeekStart(now).AddDate(0, 0, 7)))
	default:
		return types.EventQuery{}, fmt.Errorf("unknown period %q (valid periods are %s, %s, %s, %s, %s and %s)",
			period, PeriodYear, PeriodSemester1, PeriodSemester2, PeriodToday, PeriodWeek, PeriodNext)
	}

	return types.EventQuery{ViewOptions: view, CategoryIdentities: []string{}}, nil
}

// Returns the absolute time range a period keyword covers, with an exclusive
// end. Used to bound queries against an already populated calendar.
func PeriodRange(period string, now time.Time) (time.Time, time.Time, error) {
	switch period {
	case PeriodYear:
		return semester1Start, semester2End.AddDate(0, 0, 1), nil
	case PeriodSemester1:
		return semester1Start, semester1End.AddDate(0, 0, 1), nil
	case PeriodSemester2:
		return semester2Start, semester2End.AddDate(0, 0, 1), nil
	case PeriodToday:
		day := util.RoundDateToDay(now)
		return day, day.AddDate(0, 0, 1), nil
	case PeriodWeek:
		monday := util.WeekStart(now)
		return monday, monday.AddDate(0, 0, 7), nil
	case PeriodNext:
		monday := util.WeekStart(now).AddDate(0, 0, 7)
		return monday, monday.AddDate(0, 0, 7), nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("unknown period %q", period)
	}
}

// Formats a date range selector in the service's wire format.
func datePeriod(start, end time.Time) types.DatePeriod {
	return types.DatePeriod{
		StartDateTime: asQueryDate(start),
		EndDateTime:   asQueryDate(end),
	}
}

// Formats a week selector keyed by its monday.
func week(monday time.Time) types.Week {
	return types.Week{FirstDayInWeek: asQueryDate(monday)}
}

// Formats the calendar date of t as UTC midnight in the service's wire
// format, ignoring the zone t was computed in.
func asQueryDate(t time.Time) string {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).Format(queryDateLayout)
}

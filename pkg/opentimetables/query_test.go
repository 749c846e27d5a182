package opentimetables

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/simonrob/opentimetables-utils/types"
)

func TestQueryForPeriod(t *testing.T) {
	// A Wednesday halfway through the spring semester
	now := time.Date(2026, 3, 4, 10, 30, 0, 0, time.UTC)

	testCases := []struct {
		name   string
		period string
		want   types.ViewOptions
	}{
		{
			name:   "year spans both semesters",
			period: PeriodYear,
			want: types.ViewOptions{
				Days:  []types.Day{},
				Weeks: []types.Week{},
				DatePeriods: []types.DatePeriod{{
					StartDateTime: "2025-09-29T00:00:00.000Z",
					EndDateTime:   "2026-06-12T00:00:00.000Z",
				}},
			},
		},
		{
			name:   "semester one",
			period: PeriodSemester1,
			want: types.ViewOptions{
				Days:  []types.Day{},
				Weeks: []types.Week{},
				DatePeriods: []types.DatePeriod{{
					StartDateTime: "2025-09-29T00:00:00.000Z",
					EndDateTime:   "2026-01-30T00:00:00.000Z",
				}},
			},
		},
		{
			name:   "semester two",
			period: PeriodSemester2,
			want: types.ViewOptions{
				Days:  []types.Day{},
				Weeks: []types.Week{},
				DatePeriods: []types.DatePeriod{{
					StartDateTime: "2026-02-02T00:00:00.000Z",
					EndDateTime:   "2026-06-12T00:00:00.000Z",
				}},
			},
		},
		{
			name:   "today selects the current week and day",
			period: PeriodToday,
			want: types.ViewOptions{
				Days:        []types.Day{{DayOfWeek: 3}},
				Weeks:       []types.Week{{FirstDayInWeek: "2026-03-02T00:00:00.000Z"}},
				DatePeriods: []types.DatePeriod{},
			},
		},
		{
			name:   "week selects the current monday",
			period: PeriodWeek,
			want: types.ViewOptions{
				Days:        []types.Day{},
				Weeks:       []types.Week{{FirstDayInWeek: "2026-03-02T00:00:00.000Z"}},
				DatePeriods: []types.DatePeriod{},
			},
		},
		{
			name:   "next selects the following monday",
			period: PeriodNext,
			want: types.ViewOptions{
				Days:        []types.Day{},
				Weeks:       []types.Week{{FirstDayInWeek: "2026-03-09T00:00:00.000Z"}},
				DatePeriods: []types.DatePeriod{},
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			query, err := QueryForPeriod(tc.period, now)
			assert.NoError(t, err)
			assert.Equal(t, tc.want, query.ViewOptions)
			assert.Empty(t, query.CategoryIdentities)
		})
	}
}

func TestQueryForPeriodOnASunday(t *testing.T) {
	// Sundays still belong to the week that started the previous monday
	sunday := time.Date(2026, 3, 8, 23, 0, 0, 0, time.UTC)

	query, err := QueryForPeriod(PeriodToday, sunday)
	assert.NoError(t, err)
	assert.Equal(t, []types.Week{{FirstDayInWeek: "2026-03-02T00:00:00.000Z"}}, query.ViewOptions.Weeks)
	assert.Equal(t, []types.Day{{DayOfWeek: 7}}, query.ViewOptions.Days)
}

func TestQueryForPeriodDuringSummerTime(t *testing.T) {
	london, err := time.LoadLocation("Europe/London")
	assert.NoError(t, err)

	// Just after midnight BST is still the previous evening in UTC; the
	// query must carry the local civil date
	summer := time.Date(2026, 6, 10, 0, 30, 0, 0, london)
	query, err := QueryForPeriod(PeriodToday, summer)
	assert.NoError(t, err)
	assert.Equal(t, []types.Week{{FirstDayInWeek: "2026-06-08T00:00:00.000Z"}}, query.ViewOptions.Weeks)
	assert.Equal(t, []types.Day{{DayOfWeek: 3}}, query.ViewOptions.Days)
}

func TestQueryForPeriodUnknown(t *testing.T) {
	_, err := QueryForPeriod("fortnight", time.Now())
	assert.ErrorContains(t, err, "unknown period")
}

func TestPeriodRange(t *testing.T) {
	now := time.Date(2026, 3, 4, 10, 30, 0, 0, time.UTC)

	from, to, err := PeriodRange(PeriodWeek, now)
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), to)

	from, to, err = PeriodRange(PeriodToday, now)
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC), to)

	from, to, err = PeriodRange(PeriodNext, now)
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), to)

	_, _, err = PeriodRange("fortnight", now)
	assert.Error(t, err)
}

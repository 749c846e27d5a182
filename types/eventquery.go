package types

// Represents a single weekday selector of an event query. Weekday indices are
// service-native: monday is 1 and sunday is 7.
type Day struct {
	DayOfWeek int `json:"DayOfWeek"`
}

// Represents a single week selector of an event query, keyed by the first day
// (the monday) of that week.
type Week struct {
	FirstDayInWeek string `json:"FirstDayInWeek"`
}

// Represents an inclusive date range selector of an event query.
type DatePeriod struct {
	StartDateTime string `json:"StartDateTime"`
	EndDateTime   string `json:"EndDateTime"`
}

// Represents the time window of an event query. The service combines every
// selector that is present; unused selectors must be sent as empty arrays.
type ViewOptions struct {
	Days        []Day        `json:"Days"`
	Weeks       []Week       `json:"Weeks"`
	DatePeriods []DatePeriod `json:"DatePeriods"`
}

// Represents the request body of the events filter endpoint: a time window
// plus the identities of the categories to fetch events for.
type EventQuery struct {
	ViewOptions        ViewOptions `json:"ViewOptions"`
	CategoryIdentities []string    `json:"CategoryIdentities"`
}

// Returns a deep copy of the query that targets a single category. Queries
// derived from the same base share no state, so filling in the identity for
// one module can never leak into the query of another.
func (q EventQuery) WithCategory(identity string) EventQuery {
	return EventQuery{
		ViewOptions: ViewOptions{
			Days:        append([]Day{}, q.ViewOptions.Days...),
			Weeks:       append([]Week{}, q.ViewOptions.Weeks...),
			DatePeriods: append([]DatePeriod{}, q.ViewOptions.DatePeriods...),
		},
		CategoryIdentities: []string{identity},
	}
}

package types

// Represents one entry of the public category listing: a timetable category
// (a module) with its display name and the service-internal identity that is
// used to request its events.
type Category struct {
	Name     string `json:"Name"`
	Identity string `json:"Identity"`
}

// Represents one page of the category filter endpoint.
type CategoryPage struct {
	TotalPages  int        `json:"TotalPages"`
	CurrentPage int        `json:"CurrentPage"`
	Count       int        `json:"Count"`
	Results     []Category `json:"Results"`
}

// Represents a named extra property attached to a scheduled activity, such as
// a venue photo URL.
type ExtraProperty struct {
	DisplayName string `json:"DisplayName"`
	Value       string `json:"Value"`
}

// Represents a single scheduled activity of a timetable category. Timestamps
// are local wall-clock strings without a zone designator.
type CategoryEvent struct {
	Identity        string          `json:"Identity"`
	Name            string          `json:"Name"`
	EventType       string          `json:"EventType"`
	StartDateTime   string          `json:"StartDateTime"`
	EndDateTime     string          `json:"EndDateTime"`
	Location        string          `json:"Location"`
	ExtraProperties []ExtraProperty `json:"ExtraProperties"`
}

// Represents the scheduled activities of one requested category, as returned
// by the events filter endpoint.
type CategoryTimetable struct {
	Name           string          `json:"Name"`
	CategoryEvents []CategoryEvent `json:"CategoryEvents"`
}

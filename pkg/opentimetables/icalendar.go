package opentimetables

import (
	"fmt"
	"os"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/simonrob/opentimetables-utils/types"
)

// Layout of event timestamps in broker responses: local wall-clock time
// without a zone designator.
const serviceTimeLayout = "2006-01-02T15:04:05"

// Represents one scheduled activity in calendar form, decoupled from both the
// broker response shape and the ICS library.
type CalendarEntry struct {
	UID         string
	Summary     string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
}

// Converts one broker event into a calendar entry. The description collects
// the requested module code(s), the module name, the event type and, when
// present, the location and a venue photo link.
func EventToEntry(event types.CategoryEvent, resolution Resolution, location *time.Location) (CalendarEntry, error) {
	start, err := parseServiceTime(event.StartDateTime, location)
	if err != nil {
		return CalendarEntry{}, fmt.Errorf("could not parse start of %s: %w", event.Name, err)
	}
	end, err := parseServiceTime(event.EndDateTime, location)
	if err != nil {
		return CalendarEntry{}, fmt.Errorf("could not parse end of %s: %w", event.Name, err)
	}

	description := fmt.Sprintf("Module codes: %s\nModule name: %s\nEvent type: %s",
		strings.Join(resolution.Codes, ", "), resolution.Name, event.EventType)
	if event.Location != "" {
		description += fmt.Sprintf("\nLocation: %s", event.Location)
	}
	for _, property := range event.ExtraProperties {
		if property.DisplayName == "Photo" {
			description += fmt.Sprintf("\nVenue photo: %s", property.Value)
		}
	}

	return CalendarEntry{
		UID:         entryUID(event.Identity),
		Summary:     event.Name,
		Description: description,
		Location:    event.Location,
		Start:       start,
		End:         end,
	}, nil
}

// Reports whether two entries describe the same scheduled activity. The UID
// is left out so that entries recovered from an external calendar, which may
// rewrite ids, still compare as equal.
func (e CalendarEntry) Equals(other CalendarEntry) bool {
	return e.Summary == other.Summary &&
		e.Location == other.Location &&
		e.Description == other.Description &&
		e.Start.Equal(other.Start) &&
		e.End.Equal(other.End)
}

// Returns the display title of a calendar covering the given module codes.
func CalendarTitle(codes []string) string {
	return fmt.Sprintf("Lectures for modules %s", strings.Join(codes, ", "))
}

// Builds the calendar document for a run: one entry per fetched event, plus
// a title naming the requested modules and a last-modified stamp.
func BuildCalendar(entries []CalendarEntry, codes []string, now time.Time) *ics.Calendar {
	cal := ics.NewCalendar()
	cal.SetProductId("-//simonrob//opentimetables-utils//EN")
	cal.SetXWRCalName(CalendarTitle(codes))
	cal.SetLastModified(now)

	for _, entry := range entries {
		event := cal.AddEvent(entry.UID)
		event.SetDtStampTime(now)
		event.SetSummary(entry.Summary)
		event.SetStartAt(entry.Start)
		event.SetEndAt(entry.End)
		if entry.Location != "" {
			event.SetLocation(entry.Location)
		}
		event.SetDescription(entry.Description)
	}
	return cal
}

// Serializes a calendar to an .ics file.
func WriteCalendar(cal *ics.Calendar, path string) error {
	if err := os.WriteFile(path, []byte(cal.Serialize()), 0644); err != nil {
		return fmt.Errorf("could not write calendar: %w", err)
	}
	return nil
}

// Derives a stable unique id for an event from its service identity, falling
// back to a random one for events without an identity.
func entryUID(identity string) string {
	if identity == "" {
		identity = uuid.NewString()
	}
	return identity + "@opentimetables"
}

// Parses a broker timestamp. Most deployments send local wall-clock strings;
// some include an explicit offset, so that form is accepted too.
func parseServiceTime(value string, location *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.ParseInLocation(serviceTimeLayout, value, location)
}

package opentimetables

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/simonrob/opentimetables-utils/util"
)

// Prefix marking calendar events that this tool manages. Only events whose id
// carries it are ever updated or deleted.
const googleEventPrefix = "ot"

// Represents a Google Calendar that timetable entries are synced into.
type GoogleCalendar struct {
	Service *calendar.Service
	ID      string
}

// Creates a Google Calendar wrapper from an authenticated HTTP client.
func NewGoogleCalendar(ctx context.Context, client *http.Client, calendarID string) (*GoogleCalendar, error) {
	service, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("could not create calendar service: %w", err)
	}
	return &GoogleCalendar{Service: service, ID: calendarID}, nil
}

// Returns the id a calendar entry gets in Google Calendar. Google only
// accepts base32hex ids, so the service identity (a UUID in practice) is
// lowercased and stripped of every other character.
func GoogleEventID(entry CalendarEntry) string {
	identity := strings.TrimSuffix(entry.UID, "@opentimetables")
	identity = strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || (r >= 'a' && r <= 'v') {
			return r
		}
		return -1
	}, strings.ToLower(identity))
	return googleEventPrefix + identity
}

// Returns all managed events between the two dates, keyed by event id.
func (c *GoogleCalendar) GetEvents(from, to time.Time) (map[string]*calendar.Event, error) {
	events := make(map[string]*calendar.Event)
	pageToken := ""

	req := c.Service.Events.List(c.ID).ShowDeleted(true).
		TimeMin(from.Format(time.RFC3339)).TimeMax(to.Format(time.RFC3339))
	for {
		if pageToken != "" {
			req = req.PageToken(pageToken)
		}
		r, err := req.Do()
		if err != nil {
			return nil, err
		}
		for _, item := range r.Items {
			if strings.HasPrefix(item.Id, googleEventPrefix) {
				events[item.Id] = item
			}
		}

		pageToken = r.NextPageToken
		if pageToken == "" {
			break
		}
	}
	return events, nil
}

// Updates the Google Calendar to match the desired timetable entries. Both
// inputs should be unfiltered: all entries of the run keyed by Google event
// id, and all managed events currently in the calendar. Missing entries are
// inserted, outdated or cancelled ones are updated in place and managed
// events without a desired entry are deleted.
func (c *GoogleCalendar) Update(entries map[string]CalendarEntry, googleEvents map[string]*calendar.Event, location *time.Location) error {
	var inserted, updated, deleted int
	startTime := time.Now()

	currentEntries := make(map[string]CalendarEntry)
	for key, googleEvent := range googleEvents {
		entry, err := googleEventToEntry(googleEvent, location)
		if err != nil {
			return err
		}
		currentEntries[key] = entry
	}

	extras, missing := util.CompareMaps(entries, currentEntries)

	for key, entry := range missing {
		if _, err := c.Service.Events.Insert(c.ID, entryToGoogleEvent(entry, key, location)).Do(); err != nil {
			return fmt.Errorf("could not insert event %s: %w", key, err)
		}
		inserted++
	}

	for key, entry := range entries {
		current, ok := currentEntries[key]
		if !ok {
			continue
		}
		if entry.Equals(current) && googleEvents[key].Status != "cancelled" {
			continue
		}
		update := entryToGoogleEvent(entry, key, location)
		update.Status = "confirmed"
		if _, err := c.Service.Events.Update(c.ID, key, update).Do(); err != nil {
			return fmt.Errorf("could not update event %s: %w", key, err)
		}
		updated++
	}

	for key := range extras {
		if googleEvents[key].Status == "cancelled" {
			continue
		}
		if err := c.Service.Events.Delete(c.ID, key).Do(); err != nil {
			return fmt.Errorf("could not delete event %s: %w", key, err)
		}
		deleted++
	}

	fmt.Printf(`
RESULTS ==============================
UPDATED %v events in Google Calendar
INSERTED %v events into Google Calendar
DELETED %v events from Google Calendar

Execution took %v
======================================
`, updated, inserted, deleted, time.Since(startTime))
	return nil
}

// Clears every managed event from the calendar, leaving manually created
// events untouched.
func (c *GoogleCalendar) Clear() error {
	startTime := time.Now()
	eventCount := 0
	pageToken := ""

	for {
		req := c.Service.Events.List(c.ID)
		if pageToken != "" {
			req = req.PageToken(pageToken)
		}
		r, err := req.Do()
		if err != nil {
			return err
		}
		for _, item := range r.Items {
			if !strings.HasPrefix(item.Id, googleEventPrefix) {
				continue
			}
			if err := c.Service.Events.Delete(c.ID, item.Id).Do(); err != nil {
				return fmt.Errorf("could not delete event %s: %w", item.Id, err)
			}
			eventCount++
		}

		pageToken = r.NextPageToken
		if pageToken == "" {
			break
		}
	}
	log.Printf("Found and deleted %v events in %v\n", eventCount, time.Since(startTime))
	return nil
}

// Converts a calendar entry into its Google Calendar representation under a
// managed id.
func entryToGoogleEvent(entry CalendarEntry, id string, location *time.Location) *calendar.Event {
	return &calendar.Event{
		Id:          id,
		Summary:     entry.Summary,
		Location:    entry.Location,
		Description: entry.Description,
		Start: &calendar.EventDateTime{
			DateTime: entry.Start.Format(time.RFC3339),
			TimeZone: location.String(),
		},
		End: &calendar.EventDateTime{
			DateTime: entry.End.Format(time.RFC3339),
			TimeZone: location.String(),
		},
	}
}

// Converts a Google Calendar event back into a calendar entry so it can be
// compared against freshly fetched timetable data.
func googleEventToEntry(event *calendar.Event, location *time.Location) (CalendarEntry, error) {
	start, err := time.ParseInLocation(time.RFC3339, event.Start.DateTime, location)
	if err != nil {
		return CalendarEntry{}, fmt.Errorf("could not parse start of event %s: %w", event.Id, err)
	}
	end, err := time.ParseInLocation(time.RFC3339, event.End.DateTime, location)
	if err != nil {
		return CalendarEntry{}, fmt.Errorf("could not parse end of event %s: %w", event.Id, err)
	}

	return CalendarEntry{
		UID:         strings.TrimPrefix(event.Id, googleEventPrefix),
		Summary:     event.Summary,
		Description: event.Description,
		Location:    event.Location,
		Start:       start,
		End:         end,
	}, nil
}

package opentimetables

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonrob/opentimetables-utils/types"
)

func TestEventToEntry(t *testing.T) {
	london, err := time.LoadLocation("Europe/London")
	require.NoError(t, err)

	testCases := []struct {
		name       string
		event      types.CategoryEvent
		resolution Resolution
		want       CalendarEntry
		wantErr    string
	}{
		{
			name: "lecture with location and venue photo",
			event: types.CategoryEvent{
				Identity:      "evt-1",
				Name:          "CS-101 Lecture",
				EventType:     "Lecture",
				StartDateTime: "2022-10-03T09:00:00",
				EndDateTime:   "2022-10-03T10:00:00",
				Location:      "Room A",
				ExtraProperties: []types.ExtraProperty{
					{DisplayName: "Capacity", Value: "120"},
					{DisplayName: "Photo", Value: "https://example.com/room-a.jpg"},
				},
			},
			resolution: Resolution{Name: "Computer Science 101", Identity: "abc-123", Codes: []string{"CS-101"}},
			want: CalendarEntry{
				UID:     "evt-1@opentimetables",
				Summary: "CS-101 Lecture",
				Description: "Module codes: CS-101\nModule name: Computer Science 101\nEvent type: Lecture\n" +
					"Location: Room A\nVenue photo: https://example.com/room-a.jpg",
				Location: "Room A",
				Start:    time.Date(2022, 10, 3, 9, 0, 0, 0, london),
				End:      time.Date(2022, 10, 3, 10, 0, 0, 0, london),
			},
		},
		{
			name: "activity without a location",
			event: types.CategoryEvent{
				Identity:      "evt-2",
				Name:          "EG-202 Laboratory",
				EventType:     "Laboratory",
				StartDateTime: "2022-10-03T11:00:00",
				EndDateTime:   "2022-10-03T13:00:00",
			},
			resolution: Resolution{Name: "Engineering Analysis", Identity: "def-456", Codes: []string{"EG-202"}},
			want: CalendarEntry{
				UID:         "evt-2@opentimetables",
				Summary:     "EG-202 Laboratory",
				Description: "Module codes: EG-202\nModule name: Engineering Analysis\nEvent type: Laboratory",
				Start:       time.Date(2022, 10, 3, 11, 0, 0, 0, london),
				End:         time.Date(2022, 10, 3, 13, 0, 0, 0, london),
			},
		},
		{
			name: "resolution matched by several codes",
			event: types.CategoryEvent{
				Identity:      "evt-3",
				Name:          "CS-101 Seminar",
				EventType:     "Seminar",
				StartDateTime: "2022-10-04T14:00:00",
				EndDateTime:   "2022-10-04T15:00:00",
			},
			resolution: Resolution{Name: "Computer Science 101", Identity: "abc-123", Codes: []string{"CS-101", "CSC101"}},
			want: CalendarEntry{
				UID:         "evt-3@opentimetables",
				Summary:     "CS-101 Seminar",
				Description: "Module codes: CS-101, CSC101\nModule name: Computer Science 101\nEvent type: Seminar",
				Start:       time.Date(2022, 10, 4, 14, 0, 0, 0, london),
				End:         time.Date(2022, 10, 4, 15, 0, 0, 0, london),
			},
		},
		{
			name: "unparseable timestamp",
			event: types.CategoryEvent{
				Identity:      "evt-4",
				Name:          "CS-101 Lecture",
				StartDateTime: "03/10/2022 09:00",
				EndDateTime:   "2022-10-03T10:00:00",
			},
			resolution: Resolution{Name: "Computer Science 101", Codes: []string{"CS-101"}},
			wantErr:    "could not parse start",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			entry, err := EventToEntry(tc.event, tc.resolution, london)
			if tc.wantErr != "" {
				assert.ErrorContains(t, err, tc.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.want, entry)
		})
	}
}

func TestEventToEntryAcceptsOffsetTimestamps(t *testing.T) {
	london, err := time.LoadLocation("Europe/London")
	require.NoError(t, err)

	event := types.CategoryEvent{
		Identity:      "evt-1",
		Name:          "CS-101 Lecture",
		EventType:     "Lecture",
		StartDateTime: "2022-10-03T09:00:00+01:00",
		EndDateTime:   "2022-10-03T10:00:00+01:00",
	}

	entry, err := EventToEntry(event, Resolution{Name: "Computer Science 101", Codes: []string{"CS-101"}}, london)
	assert.NoError(t, err)
	assert.WithinDuration(t, time.Date(2022, 10, 3, 9, 0, 0, 0, london), entry.Start, time.Second)
	assert.WithinDuration(t, time.Date(2022, 10, 3, 10, 0, 0, 0, london), entry.End, time.Second)
}

func TestEventToEntryGeneratesUIDWithoutIdentity(t *testing.T) {
	london, err := time.LoadLocation("Europe/London")
	require.NoError(t, err)

	event := types.CategoryEvent{
		Name:          "CS-101 Lecture",
		EventType:     "Lecture",
		StartDateTime: "2022-10-03T09:00:00",
		EndDateTime:   "2022-10-03T10:00:00",
	}
	resolution := Resolution{Name: "Computer Science 101", Codes: []string{"CS-101"}}

	first, err := EventToEntry(event, resolution, london)
	assert.NoError(t, err)
	second, err := EventToEntry(event, resolution, london)
	assert.NoError(t, err)

	assert.True(t, strings.HasSuffix(first.UID, "@opentimetables"))
	assert.NotEqual(t, first.UID, second.UID)
}

func TestCalendarEntryEquals(t *testing.T) {
	base := CalendarEntry{
		UID:         "evt-1@opentimetables",
		Summary:     "CS-101 Lecture",
		Description: "Module codes: CS-101\nModule name: Computer Science 101\nEvent type: Lecture",
		Location:    "Room A",
		Start:       time.Date(2022, 10, 3, 9, 0, 0, 0, time.UTC),
		End:         time.Date(2022, 10, 3, 10, 0, 0, 0, time.UTC),
	}

	renamedID := base
	renamedID.UID = "ot123"
	assert.True(t, base.Equals(renamedID), "differing ids should not affect equality")

	shifted := base
	shifted.Start = base.Start.In(time.FixedZone("CET", 3600))
	shifted.End = base.End.In(time.FixedZone("CET", 3600))
	assert.True(t, base.Equals(shifted), "the same instant in another zone should compare equal")

	moved := base
	moved.Start = base.Start.Add(time.Hour)
	assert.False(t, base.Equals(moved))

	relocated := base
	relocated.Location = "Room B"
	assert.False(t, base.Equals(relocated))
}

func TestCalendarTitle(t *testing.T) {
	assert.Equal(t, "Lectures for modules CS-101, EG-202", CalendarTitle([]string{"CS-101", "EG-202"}))
}

func TestBuildCalendarRoundTrip(t *testing.T) {
	london, err := time.LoadLocation("Europe/London")
	require.NoError(t, err)
	now := time.Date(2022, 9, 30, 12, 0, 0, 0, time.UTC)

	entries := []CalendarEntry{
		{
			UID:     "evt-1@opentimetables",
			Summary: "CS-101 Lecture",
			Description: "Module codes: CS-101\nModule name: Computer Science 101\nEvent type: Lecture\n" +
				"Location: Room A\nVenue photo: https://example.com/room-a.jpg",
			Location: "Room A",
			Start:    time.Date(2022, 10, 3, 9, 0, 0, 0, london),
			End:      time.Date(2022, 10, 3, 10, 0, 0, 0, london),
		},
		{
			UID:         "evt-2@opentimetables",
			Summary:     "EG-202 Laboratory",
			Description: "Module codes: EG-202\nModule name: Engineering Analysis\nEvent type: Laboratory",
			Start:       time.Date(2022, 10, 3, 11, 0, 0, 0, london),
			End:         time.Date(2022, 10, 3, 13, 0, 0, 0, london),
		},
	}

	cal := BuildCalendar(entries, []string{"CS-101", "EG-202"}, now)
	serialized := cal.Serialize()
	assert.Contains(t, serialized, "X-WR-CALNAME:Lectures for modules")
	assert.Contains(t, serialized, "PRODID:-//simonrob//opentimetables-utils//EN")

	parsed, err := ics.ParseCalendar(strings.NewReader(serialized))
	require.NoError(t, err)
	require.Len(t, parsed.Events(), 2)

	byID := make(map[string]*ics.VEvent)
	for _, event := range parsed.Events() {
		byID[event.Id()] = event
	}

	lecture := byID["evt-1@opentimetables"]
	require.NotNil(t, lecture)
	assert.Equal(t, "CS-101 Lecture", lecture.GetProperty(ics.ComponentPropertySummary).Value)
	assert.Equal(t, "Room A", lecture.GetProperty(ics.ComponentPropertyLocation).Value)
	description := lecture.GetProperty(ics.ComponentPropertyDescription).Value
	assert.Contains(t, description, "Module name: Computer Science 101")
	assert.Contains(t, description, "Location: Room A")
	assert.Contains(t, description, "Venue photo: https://example.com/room-a.jpg")

	start, err := lecture.GetStartAt()
	require.NoError(t, err)
	assert.WithinDuration(t, entries[0].Start, start, time.Second)
	end, err := lecture.GetEndAt()
	require.NoError(t, err)
	assert.WithinDuration(t, entries[0].End, end, time.Second)

	lab := byID["evt-2@opentimetables"]
	require.NotNil(t, lab)
	assert.Nil(t, lab.GetProperty(ics.ComponentPropertyLocation))
}

func TestWriteCalendar(t *testing.T) {
	cal := BuildCalendar(nil, []string{"CS-101"}, time.Date(2022, 9, 30, 12, 0, 0, 0, time.UTC))
	path := filepath.Join(t.TempDir(), "timetable.ics")

	err := WriteCalendar(cal, path)
	assert.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "BEGIN:VCALENDAR")
	assert.Contains(t, string(data), "END:VCALENDAR")
}

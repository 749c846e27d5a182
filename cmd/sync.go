/*
Copyright © 2026 Simon Robinson
*/
package cmd

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/exp/maps"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"

	"github.com/simonrob/opentimetables-utils/pkg/opentimetables"
	"github.com/simonrob/opentimetables-utils/util"
)

// syncCmd represents the sync command
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Syncs an OpenTimetables schedule with a Google Calendar",
	Long: `Synchronises the scheduled activities of a list of module codes with a
Google Calendar. Events managed by this tool are inserted, updated or removed
to match the service; manually created events are never touched.`,
	Run: func(cmd *cobra.Command, args []string) {
		modules, _ := cmd.Flags().GetStringSlice("modules")
		period, _ := cmd.Flags().GetString("period")
		calendarID, _ := cmd.Flags().GetString("calendarID")
		tokenPath, _ := cmd.Flags().GetString("tokenPath")

		fmt.Println("Attempting to sync OpenTimetables and Google Calendar...")

		cfg, err := opentimetables.ConfigFromEnv()
		if err != nil {
			log.Fatalf("Could not load configuration: %v\n", err)
		}
		ctx := cmd.Context()

		query, err := opentimetables.QueryForPeriod(period, time.Now())
		if err != nil {
			log.Fatalf("Could not load event period %s: %v\n", period, err)
		}
		from, to, err := opentimetables.PeriodRange(period, time.Now())
		if err != nil {
			log.Fatalf("Could not load event period %s: %v\n", period, err)
		}

		// Reads the credentials file and creates a config from it - this is used to create the client
		bytes, err := os.ReadFile("credentials.json")
		if err != nil {
			log.Fatalf("Could not read contents of credentials.json: %v\n", err)
		}

		googleConfig, err := google.ConfigFromJSON(bytes, calendar.CalendarEventsScope)
		if err != nil {
			log.Fatalf("Could not create config from credentials.json")
		}

		if !strings.HasSuffix(tokenPath, ".json") {
			tokenPath += ".json"
		}

		googleClient, err := util.GetClient(googleConfig, tokenPath)
		if err != nil {
			log.Fatalf("Could not get Google Calendar client: %v\n", err)
		}

		c, err := opentimetables.NewGoogleCalendar(ctx, googleClient, calendarID)
		if err != nil {
			log.Fatalf("Could not create Google Calendar instance: %v\n", err)
		}

		client := opentimetables.NewClient(cfg)
		resolver := opentimetables.NewResolver(cfg, client)
		resolutions, err := resolver.Resolve(ctx, modules)
		if err != nil {
			log.Fatalf("Could not reach %s: %v\n", cfg.BaseURL, err)
		}

		entries := make(map[string]opentimetables.CalendarEntry)
		for _, resolution := range resolutions {
			timetables, err := client.FetchTimetable(ctx, query.WithCategory(resolution.Identity))
			if err != nil {
				log.Fatalf("Could not reach %s: %v\n", cfg.BaseURL, err)
			}
			if len(timetables) == 0 {
				opentimetables.Warnf("\tWarning: timetable for module %s not found at %s; skipping", resolution.Name, cfg.BaseURL)
				continue
			}

			moduleEntries := make(map[string]opentimetables.CalendarEntry)
			for _, timetable := range timetables {
				for _, event := range timetable.CategoryEvents {
					entry, err := opentimetables.EventToEntry(event, resolution, cfg.Location)
					if err != nil {
						opentimetables.Warnf("\tWarning: skipping activity %s: %v", event.Name, err)
						continue
					}
					moduleEntries[opentimetables.GoogleEventID(entry)] = entry
				}
			}
			maps.Copy(entries, moduleEntries)
			fmt.Printf("\tAdded %d scheduled activities for %s\n", len(moduleEntries), resolution.Name)
		}

		googleEvents, err := c.GetEvents(from, to)
		if err != nil {
			log.Fatalf("Could not get events from Google Calendar: %v\n", err)
		}
		err = c.Update(entries, googleEvents, cfg.Location)
		if err != nil {
			log.Fatalf("Could not update Google Calendar: %v\n", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)

	syncCmd.Flags().StringSliceP("modules", "m", nil, "A list of module codes to sync (required)")
	syncCmd.Flags().StringP("period", "p", opentimetables.PeriodWeek, "The time period to sync. Valid options are year, s1, s2, today, week or next")
	syncCmd.Flags().StringP("calendarID", "c", "primary", "Google Calendar calendar ID")
	syncCmd.Flags().StringP("tokenPath", "t", "token.json", "The path to a Google OAuth token file")

	syncCmd.MarkFlagRequired("modules")
}

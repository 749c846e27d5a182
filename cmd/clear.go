/*
Copyright © 2026 Simon Robinson
*/
package cmd

import (
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"

	"github.com/simonrob/opentimetables-utils/pkg/opentimetables"
	"github.com/simonrob/opentimetables-utils/util"
)

// clearCmd represents the clear command
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clears synced timetable events from a Google Calendar",
	Long: `Clears a Google Calendar of events created by the sync command.
	Only managed timetable events are targeted, therefore leaving any personal events intact.`,
	Run: func(cmd *cobra.Command, args []string) {
		calendarID, err := cmd.Flags().GetString("calendarID")
		if err != nil {
			log.Fatalf("Could not get calendar ID: %v\n", err)
		}
		tokenPath, err := cmd.Flags().GetString("token")
		if err != nil {
			log.Fatalf("Could not get token: %v\n", err)
		}

		// Reads the credentials file and creates a config from it - this is used to create the client
		bytes, err := os.ReadFile("credentials.json")
		if err != nil {
			log.Fatalf("Could not read contents of credentials.json: %v\n", err)
		}

		config, err := google.ConfigFromJSON(bytes, calendar.CalendarEventsScope)
		if err != nil {
			log.Fatalf("Could not create config from credentials.json")
		}

		if !strings.HasSuffix(tokenPath, ".json") {
			tokenPath += ".json"
		}

		client, err := util.GetClient(config, tokenPath)
		if err != nil {
			log.Fatalf("Could not get Google Calendar client: %v\n", err)
		}

		c, err := opentimetables.NewGoogleCalendar(cmd.Context(), client, calendarID)
		if err != nil {
			log.Fatalf("Could not create Google Calendar instance: %v\n", err)
		}

		err = c.Clear()
		if err != nil {
			log.Fatalf("Could not clear Google Calendar: %v\n", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(clearCmd)

	clearCmd.Flags().StringP("calendarID", "c", "primary", "The Google Calendar ID")
	clearCmd.Flags().StringP("token", "t", "token.json", "The OAuth token file for Google Calendar")
}

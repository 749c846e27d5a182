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

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/simonrob/opentimetables-utils/pkg/opentimetables"
)

// Sentinel flag values: module codes can come from the clipboard, and output
// can go to a hosted web viewer instead of a file.
const (
	modulesFromClipboard = "paste"
	outputToViewer       = "view"
)

const version = "2026-08-25" // ISO 8601 (YYYY-MM-DD)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "extractics",
	Version: version,
	Short:   "Extract Open Timetables information to an ICS / iCalendar file",
	Long: `Extracts scheduling information for a list of module codes from an
OpenTimetables service and saves it as an ICS / iCalendar file, ready to be
imported into a calendar application. Pass --modules paste to read module
codes from a table copied to the clipboard, and --output view to open the
result in a hosted web viewer instead of saving it.`,
	Run: func(cmd *cobra.Command, args []string) {
		modules, _ := cmd.Flags().GetStringSlice("modules")
		period, _ := cmd.Flags().GetString("period")
		output, _ := cmd.Flags().GetString("output")
		buildCache, _ := cmd.Flags().GetBool("build-cache")

		cfg, err := opentimetables.ConfigFromEnv()
		if err != nil {
			log.Fatalf("Could not load configuration: %v\n", err)
		}
		client := opentimetables.NewClient(cfg)
		ctx := cmd.Context()

		if buildCache {
			count, err := client.BuildModuleCache(ctx, cfg.CacheFile)
			if err != nil {
				log.Fatalf("Could not build module cache from %s: %v\n", cfg.BaseURL, err)
			}
			fmt.Printf("Cached %d modules to %s\n", count, cfg.CacheFile)
			if len(modules) == 0 {
				return
			}
		}

		codes := modules
		if len(codes) == 1 && codes[0] == modulesFromClipboard {
			text, err := clipboard.ReadAll()
			if err != nil {
				log.Fatalf("Could not read the clipboard: %v\n", err)
			}
			codes = opentimetables.ExtractModuleCodes(text)
			if len(codes) == 0 {
				log.Fatalf("No module codes found in the pasted text; copy a table of modules and try again\n")
			}
			fmt.Printf("Found %d module codes in pasted text: %s\n", len(codes), strings.Join(codes, ", "))
		}
		if len(codes) == 0 {
			log.Fatalf("No module codes given; pass them with --modules\n")
		}

		query, err := opentimetables.QueryForPeriod(period, time.Now())
		if err != nil {
			log.Fatalf("Could not load event period %s: %v\n", period, err)
		}

		resolver := opentimetables.NewResolver(cfg, client)
		resolutions, err := resolver.Resolve(ctx, codes)
		if err != nil {
			log.Fatalf("Could not reach %s: %v\n", cfg.BaseURL, err)
		}

		fmt.Printf("Downloading timetables for %d modules\n", len(resolutions))
		var entries []opentimetables.CalendarEntry
		for _, resolution := range resolutions {
			timetables, err := client.FetchTimetable(ctx, query.WithCategory(resolution.Identity))
			if err != nil {
				log.Fatalf("Could not reach %s: %v\n", cfg.BaseURL, err)
			}
			if len(timetables) == 0 {
				opentimetables.Warnf("\tWarning: timetable for module %s not found at %s; skipping", resolution.Name, cfg.BaseURL)
				continue
			}

			eventCount := 0
			for _, timetable := range timetables {
				for _, event := range timetable.CategoryEvents {
					entry, err := opentimetables.EventToEntry(event, resolution, cfg.Location)
					if err != nil {
						opentimetables.Warnf("\tWarning: skipping activity %s: %v", event.Name, err)
						continue
					}
					entries = append(entries, entry)
					eventCount++
				}
			}
			fmt.Printf("\tAdded %d scheduled activities for %s\n", eventCount, resolution.Name)
		}

		calendar := opentimetables.BuildCalendar(entries, codes, time.Now())
		if output == outputToViewer {
			fmt.Println("Opening activities in the web viewer")
			if err := opentimetables.OpenInViewer([]byte(calendar.Serialize()), opentimetables.CalendarTitle(codes)); err != nil {
				log.Fatalf("Could not open the web viewer: %v\n", err)
			}
			return
		}

		fmt.Printf("Saving activities to %s\n", output)
		if err := opentimetables.WriteCalendar(calendar, output); err != nil {
			log.Fatalf("Could not save calendar: %v\n", err)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringSliceP("modules", "m", nil, "A list of module codes, or 'paste' to extract codes from a table copied to the clipboard")
	rootCmd.Flags().StringP("period", "p", opentimetables.PeriodYear, "The time period to include in the output. Valid options are year, s1 (i.e., Semester 1), s2 (Semester 2), today, week or next")
	rootCmd.Flags().StringP("output", "o", "timetable.ics", "The full path to an ICS file to save output, or 'view' to open the result in a web viewer")
	rootCmd.Flags().Bool("build-cache", false, "Download the full module list to the cache file for faster offline code resolution")
}

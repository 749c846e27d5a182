/*
Copyright © 2026 Simon Robinson
*/
package cmd

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/spf13/cobra"

	"github.com/simonrob/opentimetables-utils/pkg/opentimetables"
	"github.com/simonrob/opentimetables-utils/util"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Checks that the configured OpenTimetables service is reachable",
	Long: `Probes the configured OpenTimetables deployment: first the public web
page, to confirm a service is running where the configuration says it is, and
then the broker API, to confirm the authorisation header and category type
are accepted.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := opentimetables.ConfigFromEnv()
		if err != nil {
			log.Fatalf("Could not load configuration: %v\n", err)
		}

		res, err := http.Get(cfg.BaseURL)
		if err != nil {
			log.Fatalf("Could not reach %s: %v\n", cfg.BaseURL, err)
		}
		defer res.Body.Close()
		if res.StatusCode != http.StatusOK {
			log.Fatalf("Could not reach %s: status %d\n", cfg.BaseURL, res.StatusCode)
		}

		doc, err := goquery.NewDocumentFromReader(res.Body)
		if err != nil {
			log.Fatalf("Could not parse the service page: %v\n", err)
		}

		title := strings.TrimSpace(doc.Find("title").First().Text())
		fmt.Printf("Service page found at %s: %q\n", cfg.BaseURL, title)
		if doc.Find("app-root").Length() == 0 {
			opentimetables.Warnf("Warning: the page does not look like an OpenTimetables deployment")
		}

		client := opentimetables.NewClient(cfg)
		page, err := client.SearchCategories(cmd.Context(), "", 1)
		if err != nil {
			log.Fatalf("Could not query the broker API: %v\n", err)
		}

		fmt.Printf("Broker API responded: %d modules across %d pages\n", page.Count, page.TotalPages)
		if len(page.Results) > 0 {
			fmt.Printf("First module of the listing:\n%s\n", util.PrettyPrint(page.Results[0]))
		}
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

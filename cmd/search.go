/*
Copyright © 2026 Simon Robinson
*/
package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/simonrob/opentimetables-utils/pkg/opentimetables"
	"github.com/simonrob/opentimetables-utils/util"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Searches the module listing of the timetable service",
	Long: `Searches the institution's full module listing for a keyword or module
code and prints every match with its category identity. Unlike the main
command this walks all result pages, and the matches can be exported to a
file for later inspection.`,
	Run: func(cmd *cobra.Command, args []string) {
		query, err := cmd.Flags().GetString("query")
		if err != nil {
			log.Fatalf("Could not get query flag: %v\n", err)
		}
		format, err := cmd.Flags().GetString("format")
		if err != nil {
			log.Fatalf("Could not get format flag: %v\n", err)
		}
		path, err := cmd.Flags().GetString("path")
		if err != nil {
			log.Fatalf("Could not get path flag: %v\n", err)
		}

		cfg, err := opentimetables.ConfigFromEnv()
		if err != nil {
			log.Fatalf("Could not load configuration: %v\n", err)
		}
		client := opentimetables.NewClient(cfg)

		fmt.Printf("Searching for `%s`:\n", query)
		categories, _, err := client.SearchAllCategories(cmd.Context(), query)
		if err != nil {
			log.Fatalf("Could not reach %s: %v\n", cfg.BaseURL, err)
		}
		if len(categories) == 0 {
			fmt.Printf("No modules match `%s`\n", query)
			return
		}

		if path != "" {
			if err := util.ExportCategories(categories, format, path); err != nil {
				log.Fatalf("Could not export the module list to %v format at path %q: %v\n", format, path, err)
			}
			fmt.Printf("Exported %d modules to %s\n", len(categories), path)
			return
		}
		for _, category := range categories {
			fmt.Printf("%s : %s\n", category.Name, category.Identity)
		}
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringP("query", "q", "", "A module code or keyword to search for; empty lists every module")
	searchCmd.Flags().StringP("format", "f", "json", "The format of which the module list should be exported as")
	searchCmd.Flags().StringP("path", "o", "", "The path to which the module list should be exported to; empty prints to the terminal")
}

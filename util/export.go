package util

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"

	"github.com/simonrob/opentimetables-utils/types"
)

// Writes a list of module categories to a file in the given format.
// Supported formats are json and csv.
func ExportCategories(categories []types.Category, format, path string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(categories, "", "\t")
		if err != nil {
			return err
		}
		return os.WriteFile(path, data, 0644)
	case "csv":
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()

		w := csv.NewWriter(f)
		if err := w.Write([]string{"name", "identity"}); err != nil {
			return err
		}
		for _, category := range categories {
			if err := w.Write([]string{category.Name, category.Identity}); err != nil {
				return err
			}
		}
		w.Flush()
		return w.Error()
	default:
		return fmt.Errorf("unsupported export format %q (use json or csv)", format)
	}
}

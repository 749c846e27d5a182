package util

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonrob/opentimetables-utils/types"
)

func TestExportCategoriesJSON(t *testing.T) {
	categories := []types.Category{
		{Name: "CS-101 Computer Science 101", Identity: "abc-123"},
		{Name: "EG-202 Engineering Analysis", Identity: "def-789"},
	}
	path := filepath.Join(t.TempDir(), "modules.json")

	require.NoError(t, ExportCategories(categories, "json", path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var exported []types.Category
	require.NoError(t, json.Unmarshal(data, &exported))
	assert.Equal(t, categories, exported)
}

func TestExportCategoriesCSV(t *testing.T) {
	categories := []types.Category{
		{Name: "CS-101 Computer Science 101", Identity: "abc-123"},
	}
	path := filepath.Join(t.TempDir(), "modules.csv")

	require.NoError(t, ExportCategories(categories, "csv", path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"name", "identity"}, records[0])
	assert.Equal(t, []string{"CS-101 Computer Science 101", "abc-123"}, records[1])
}

func TestExportCategoriesUnknownFormat(t *testing.T) {
	err := ExportCategories(nil, "xml", filepath.Join(t.TempDir(), "modules.xml"))
	assert.ErrorContains(t, err, "unsupported export format")
}

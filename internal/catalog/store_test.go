package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/breadcrumb/foodseed/internal/models"
)

const canonicalJSON = `{
  "version": 2,
  "foods": [
    {
      "id": "1",
      "name": "Mac & Cheese",
      "cuisine": "Italian",
      "calories": 520,
      "protein": 18.5,
      "carbs": 60,
      "fat": 22.25,
      "image": "https://example.com/mac.jpg",
      "description": "Baked pasta.",
      "tags": [
        "comfort"
      ]
    },
    {
      "id": "42",
      "name": "Pad Kra Pao",
      "cuisine": "Thai",
      "calories": 430,
      "protein": 30,
      "carbs": 35,
      "fat": 18,
      "image": "",
      "description": "Holy basil stir-fry."
    }
  ],
  "cuisines": [
    "Italian",
    "Thai"
  ]
}
`

const sampleYAML = `# generated catalog
foods:
  - id: "7"
    name: Bibimbap
    cuisine: Korean
    calories: 560
    protein: 22
    carbs: 80
    fat: 16
    image: ""
    description: Mixed rice bowl.
cuisines:
  - Korean
  - Japanese
owner: kitchen
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func newFood(id, cuisine string) models.Food {
	return models.Food{
		ID:          id,
		Name:        "Teriyaki Chicken",
		Cuisine:     cuisine,
		Calories:    400,
		Protein:     30,
		Carbs:       40,
		Fat:         12,
		Description: "Grilled dish with delicate glaze and fresh herbs.",
	}
}

func TestFormatFor(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"foods.json", FormatJSON, false},
		{"FOODS.JSON", FormatJSON, false},
		{"foods", FormatJSON, false},
		{"foods.yaml", FormatYAML, false},
		{"foods.yml", FormatYAML, false},
		{"foods.csv", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFor(tt.path)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad_JSON(t *testing.T) {
	doc, err := Load(writeFile(t, "foods.json", canonicalJSON))
	require.NoError(t, err)

	assert.Equal(t, FormatJSON, doc.Format)
	assert.Equal(t, []string{"Italian", "Thai"}, doc.Catalog.Cuisines)
	require.Len(t, doc.Catalog.Foods, 2)
	assert.Equal(t, "Mac & Cheese", doc.Catalog.Foods[0].Name)
	assert.InDelta(t, 18.5, doc.Catalog.Foods[0].Protein, 1e-9)
	assert.Equal(t, "42", doc.Catalog.Foods[1].ID)
}

func TestSave_UnchangedJSONIsByteIdentical(t *testing.T) {
	path := writeFile(t, "foods.json", canonicalJSON)
	doc, err := Load(path)
	require.NoError(t, err)

	require.NoError(t, doc.Save())

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	if diff := cmp.Diff(canonicalJSON, string(got)); diff != "" {
		t.Errorf("saved document mismatch (-want +got):\n%s", diff)
	}
}

func TestSave_JSONAppendPreservesExisting(t *testing.T) {
	path := writeFile(t, "foods.json", canonicalJSON)
	doc, err := Load(path)
	require.NoError(t, err)

	doc.Catalog.Foods = append(doc.Catalog.Foods, newFood("43", "Thai"))
	require.NoError(t, doc.Save())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)

	assert.Contains(t, text, `"version": 2`)
	assert.Contains(t, text, `"tags": [`, "unknown record fields survive")
	assert.Contains(t, text, `"fat": 22.25`)
	assert.Contains(t, text, `"name": "Mac & Cheese"`)
	assert.Contains(t, text, `"id": "43"`)
	assert.Contains(t, text, `"image": ""`)
	assert.Less(t, strings.Index(text, `"version"`), strings.Index(text, `"foods"`), "member order kept")

	reloaded, err := Load(path)
	require.NoError(t, err)
	if diff := cmp.Diff(doc.Catalog, reloaded.Catalog); diff != "" {
		t.Errorf("reloaded catalog mismatch (-want +got):\n%s", diff)
	}
}

func TestSave_JSONEditedRecordIsReencoded(t *testing.T) {
	path := writeFile(t, "foods.json", canonicalJSON)
	doc, err := Load(path)
	require.NoError(t, err)

	doc.Catalog.Foods[1].Calories = 400
	require.NoError(t, doc.Save())

	reloaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 400, reloaded.Catalog.Foods[1].Calories)
}

func TestSave_JSONAddsMissingFoods(t *testing.T) {
	path := writeFile(t, "foods.json", `{"cuisines": ["Greek"]}`)
	doc, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, doc.Catalog.Foods)

	doc.Catalog.Foods = append(doc.Catalog.Foods, newFood("1", "Greek"))
	require.NoError(t, doc.Save())

	reloaded, err := Load(path)
	require.NoError(t, err)
	require.Len(t, reloaded.Catalog.Foods, 1)
	assert.Equal(t, "Greek", reloaded.Catalog.Foods[0].Cuisine)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr error
	}{
		{"not json", "foods.json", `{"foods": [`, ErrMalformed},
		{"top level array", "foods.json", `[]`, ErrMalformed},
		{"trailing data", "foods.json", `{"cuisines": ["Thai"]} {}`, ErrMalformed},
		{"missing cuisines", "foods.json", `{"foods": []}`, ErrMalformed},
		{"numeric id", "foods.json", `{"foods": [{"id": 3, "cuisine": "Thai"}], "cuisines": ["Thai"]}`, ErrMalformed},
		{"empty cuisines", "foods.json", `{"foods": [], "cuisines": []}`, ErrInvalidCatalog},
		{"bad id", "foods.json", `{"foods": [{"id": "x1", "cuisine": "Thai"}], "cuisines": ["Thai"]}`, ErrInvalidCatalog},
		{"missing record cuisine", "foods.json", `{"foods": [{"id": "1"}], "cuisines": ["Thai"]}`, ErrInvalidCatalog},
		{"yaml scalar", "foods.yaml", `hello`, ErrMalformed},
		{"yaml foods not list", "foods.yaml", "foods: 3\ncuisines: [Thai]\n", ErrMalformed},
		{"unsupported", "foods.txt", `{}`, ErrUnsupportedFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestYAMLRoundTrip(t *testing.T) {
	path := writeFile(t, "foods.yaml", sampleYAML)
	doc, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, FormatYAML, doc.Format)
	assert.Equal(t, []string{"Korean", "Japanese"}, doc.Catalog.Cuisines)
	require.Len(t, doc.Catalog.Foods, 1)
	assert.Equal(t, "Bibimbap", doc.Catalog.Foods[0].Name)

	doc.Catalog.Foods = append(doc.Catalog.Foods, newFood("8", "Japanese"))
	require.NoError(t, doc.Save())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "owner: kitchen")
	assert.Contains(t, string(data), "# generated catalog")

	reloaded, err := Load(path)
	require.NoError(t, err)
	if diff := cmp.Diff(doc.Catalog, reloaded.Catalog); diff != "" {
		t.Errorf("reloaded catalog mismatch (-want +got):\n%s", diff)
	}
}

func TestSave_KeepsPermissionsAndLeavesNoTempFiles(t *testing.T) {
	path := writeFile(t, "foods.json", canonicalJSON)
	doc, err := Load(path)
	require.NoError(t, err)

	doc.Catalog.Foods = append(doc.Catalog.Foods, newFood("43", "Italian"))
	require.NoError(t, doc.Save())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "foods.json", entries[0].Name())
}

func TestValidate(t *testing.T) {
	err := Validate(&models.Catalog{
		Foods:    []models.Food{{ID: "007", Cuisine: "Thai"}, {ID: "2"}},
		Cuisines: nil,
	})
	require.ErrorIs(t, err, ErrInvalidCatalog)
	assert.Contains(t, err.Error(), "cuisine list is empty")
	assert.Contains(t, err.Error(), `id "007"`)
	assert.Contains(t, err.Error(), "food 1: missing cuisine")
}

package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/breadcrumb/foodseed/internal/models"
)

// FixtureFood creates a balanced test food with sensible defaults.
func FixtureFood(overrides ...func(*models.Food)) models.Food {
	food := models.Food{
		ID:          "1",
		Name:        "Chicken Tikka",
		Cuisine:     "Indian",
		Calories:    330, // 4*30 + 4*15 + 9*15 = 315
		Protein:     30,
		Carbs:       15,
		Fat:         15,
		Image:       "",
		Description: "Grilled dish with spicy marinade and fresh herbs.",
	}

	for _, override := range overrides {
		override(&food)
	}

	return food
}

// FixtureCatalog creates a catalog with one food per cuisine, numbered from 1.
func FixtureCatalog(cuisines ...string) *models.Catalog {
	if len(cuisines) == 0 {
		cuisines = []string{"Indian", "Italian", "Thai"}
	}

	catalog := &models.Catalog{Cuisines: append([]string(nil), cuisines...)}
	for i, cuisine := range cuisines {
		catalog.Foods = append(catalog.Foods, FixtureFood(func(f *models.Food) {
			f.ID = strconv.Itoa(i + 1)
			f.Cuisine = cuisine
			f.Name = cuisine + " Special"
		}))
	}

	return catalog
}

// WriteCatalog writes catalog as a JSON document in a temp directory and
// returns its path.
func WriteCatalog(t *testing.T, catalog *models.Catalog) string {
	t.Helper()

	data, err := json.MarshalIndent(catalog, "", "  ")
	if err != nil {
		t.Fatalf("failed to encode catalog: %v", err)
	}

	path := filepath.Join(t.TempDir(), "foods.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write catalog: %v", err)
	}

	return path
}

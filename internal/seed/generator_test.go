package seed

import (
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/breadcrumb/foodseed/internal/models"
)

func testConfig(seed int64) Config {
	cfg := DefaultConfig()
	cfg.RandomSeed = seed
	return cfg
}

func sampleCatalog() *models.Catalog {
	return &models.Catalog{
		Foods: []models.Food{
			{ID: "1", Name: "Butter Chicken", Cuisine: "Indian", Calories: 490, Protein: 27, Carbs: 10, Fat: 38},
			{ID: "42", Name: "Margherita", Cuisine: "Italian", Calories: 600, Protein: 25, Carbs: 70, Fat: 22},
			{ID: "7", Name: "Green Curry", Cuisine: "Thai", Calories: 420, Protein: 20, Carbs: 30, Fat: 24},
		},
		Cuisines: []string{"Italian", "Thai"},
	}
}

func TestGenerate_ContinuesIDs(t *testing.T) {
	catalog := sampleCatalog()
	gen := NewGenerator(testConfig(2077), nil)

	foods, err := gen.Generate(catalog, 3)
	require.NoError(t, err)
	require.Len(t, foods, 3)

	assert.Equal(t, "43", foods[0].ID)
	assert.Equal(t, "44", foods[1].ID)
	assert.Equal(t, "45", foods[2].ID)
	assert.Len(t, catalog.Foods, 6)
	assert.Equal(t, foods, catalog.Foods[3:])
}

func TestGenerate_Invariants(t *testing.T) {
	catalog := sampleCatalog()
	existing := make(map[string]bool)
	for _, f := range catalog.Foods {
		existing[f.ID] = true
	}

	cfg := testConfig(1)
	gen := NewGenerator(cfg, nil)

	foods, err := gen.Generate(catalog, 500)
	require.NoError(t, err)
	require.Len(t, foods, 500)

	prev := 42
	for _, f := range foods {
		id, err := strconv.Atoi(f.ID)
		require.NoError(t, err)
		assert.Greater(t, id, prev, "ids must be strictly increasing")
		assert.False(t, existing[f.ID], "id %s collides with an existing food", f.ID)
		prev = id

		assert.True(t, catalog.HasCuisine(f.Cuisine), "unexpected cuisine %q", f.Cuisine)
		assert.True(t, f.IsEnergyBalanced(cfg.Tolerance),
			"food %s: calories %d vs expected %d", f.ID, f.Calories, f.ExpectedCalories())

		assert.GreaterOrEqual(t, f.Protein, 5.0)
		assert.LessOrEqual(t, f.Protein, 40.0)
		assert.GreaterOrEqual(t, f.Carbs, 10.0)
		assert.LessOrEqual(t, f.Carbs, 80.0)
		assert.GreaterOrEqual(t, f.Fat, 5.0)
		assert.LessOrEqual(t, f.Fat, 40.0)
		assert.GreaterOrEqual(t, f.Calories, 0)

		assert.NotEmpty(t, f.Name)
		assert.NotEmpty(t, f.Description)
		assert.Empty(t, f.Image)
	}

	stats := gen.Stats()
	assert.Equal(t, 500, stats.Generated)
	assert.Zero(t, stats.Capped, "default perturbation never needs the cap")
}

func TestGenerate_ZeroLeavesCatalogUnchanged(t *testing.T) {
	catalog := sampleCatalog()
	before := append([]models.Food(nil), catalog.Foods...)

	foods, err := NewGenerator(testConfig(5), nil).Generate(catalog, 0)
	require.NoError(t, err)
	assert.Empty(t, foods)
	assert.Equal(t, before, catalog.Foods)
}

func TestGenerate_EmptyCatalogStartsAtOne(t *testing.T) {
	catalog := &models.Catalog{Cuisines: []string{"Korean"}}

	foods, err := NewGenerator(testConfig(9), nil).Generate(catalog, 2)
	require.NoError(t, err)
	assert.Equal(t, "1", foods[0].ID)
	assert.Equal(t, "2", foods[1].ID)
	assert.Equal(t, "Korean", foods[0].Cuisine)
}

func TestGenerate_Deterministic(t *testing.T) {
	a, err := NewGenerator(testConfig(2024), nil).Generate(sampleCatalog(), 25)
	require.NoError(t, err)
	b, err := NewGenerator(testConfig(2024), nil).Generate(sampleCatalog(), 25)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := NewGenerator(testConfig(2025), nil).Generate(sampleCatalog(), 25)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestGenerate_ClockSeed(t *testing.T) {
	gen := NewGenerator(testConfig(0), nil)
	assert.NotZero(t, gen.Seed())
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		catalog *models.Catalog
		count   int
		cfg     func(*Config)
		wantErr error
	}{
		{
			name:    "nil catalog",
			catalog: nil,
			count:   1,
			wantErr: ErrNoCuisines,
		},
		{
			name:    "no cuisines",
			catalog: &models.Catalog{Foods: []models.Food{{ID: "1", Cuisine: "Thai"}}},
			count:   1,
			wantErr: ErrNoCuisines,
		},
		{
			name:    "cuisine without vocabulary",
			catalog: &models.Catalog{Cuisines: []string{"Thai", "Martian"}},
			count:   1,
			wantErr: ErrUnknownCuisine,
		},
		{
			name: "non-integer id",
			catalog: &models.Catalog{
				Foods:    []models.Food{{ID: "abc", Cuisine: "Thai"}},
				Cuisines: []string{"Thai"},
			},
			count:   1,
			wantErr: ErrInvalidID,
		},
		{
			name: "missing cuisine",
			catalog: &models.Catalog{
				Foods:    []models.Food{{ID: "3"}},
				Cuisines: []string{"Thai"},
			},
			count:   1,
			wantErr: ErrMissingCuisine,
		},
		{
			name:    "negative count",
			catalog: sampleCatalog(),
			count:   -1,
			wantErr: ErrInvalidCount,
		},
		{
			name:    "inverted range",
			catalog: sampleCatalog(),
			count:   1,
			cfg:     func(c *Config) { c.Fat = Range{Min: 40, Max: 5} },
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "negative tolerance",
			catalog: sampleCatalog(),
			count:   1,
			cfg:     func(c *Config) { c.Tolerance = -1 },
			wantErr: ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(1)
			if tt.cfg != nil {
				tt.cfg(&cfg)
			}

			var before int
			if tt.catalog != nil {
				before = len(tt.catalog.Foods)
			}

			foods, err := NewGenerator(cfg, nil).Generate(tt.catalog, tt.count)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, foods)
			if tt.catalog != nil {
				assert.Len(t, tt.catalog.Foods, before, "catalog must not change on error")
			}
		})
	}
}

func TestGenerate_UnknownCuisineListsNames(t *testing.T) {
	_, err := NewGenerator(testConfig(1), nil).Generate(&models.Catalog{Cuisines: []string{"Martian", "Thai", "Venusian"}}, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Martian, Venusian")
}

func TestBalanceCalories(t *testing.T) {
	t.Run("within tolerance is kept", func(t *testing.T) {
		gen := NewGenerator(testConfig(1), nil)
		assert.Equal(t, 500, gen.balanceCalories(500, 450))
		assert.Zero(t, gen.Stats().Adjusted)
	})

	t.Run("outside tolerance is re-derived", func(t *testing.T) {
		gen := NewGenerator(testConfig(1), nil)
		got := gen.balanceCalories(150, 600)
		assert.InDelta(t, 600, got, 50)
		assert.Equal(t, 1, gen.Stats().Adjusted)
		assert.Zero(t, gen.Stats().Capped)
	})

	t.Run("perturbation wider than tolerance hits the cap", func(t *testing.T) {
		cfg := testConfig(1)
		cfg.Tolerance = 0
		cfg.Perturbation = 1000
		cfg.MaxAdjustments = 3
		gen := NewGenerator(cfg, nil)

		// Expected 600 with a +-1000 offset almost never lands exactly on 600.
		for i := 0; i < 20; i++ {
			assert.Equal(t, 600, gen.balanceCalories(150, 600))
		}
		assert.Equal(t, 20, gen.Stats().Adjusted)
		assert.Positive(t, gen.Stats().Capped)
	})

	t.Run("zero attempts takes exact value", func(t *testing.T) {
		cfg := testConfig(1)
		cfg.MaxAdjustments = 0
		gen := NewGenerator(cfg, nil)
		assert.Equal(t, 600, gen.balanceCalories(150, 600))
		assert.Equal(t, 1, gen.Stats().Capped)
	})
}

func TestGenerate_NamesUseCuisineVocabulary(t *testing.T) {
	catalog := &models.Catalog{Cuisines: []string{"Japanese"}}
	foods, err := NewGenerator(testConfig(11), nil).Generate(catalog, 200)
	require.NoError(t, err)

	cv := DefaultVocabulary["Japanese"]
	for _, f := range foods {
		lower := strings.ToLower(f.Name)
		found := false
		for _, term := range cv.Terms {
			if strings.Contains(lower, term) {
				found = true
				break
			}
		}
		assert.True(t, found, "name %q has no Japanese term", f.Name)
	}
}

func TestConfig_Validate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.Protein = Range{Min: -1, Max: 10}
	cfg.Perturbation = -5
	cfg.MaxAdjustments = -1
	err := cfg.Validate()
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "protein")
	assert.Contains(t, err.Error(), "perturbation")
	assert.Contains(t, err.Error(), "max_adjustments")
}

func TestConfig_ValidateUpperBounds(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{"calories max overflows", func(c *Config) { c.Calories = Range{Min: 0, Max: math.MaxInt64} }, "calories"},
		{"protein above cap", func(c *Config) { c.Protein = Range{Min: 5, Max: MaxValue + 1} }, "protein"},
		{"carbs above cap", func(c *Config) { c.Carbs = Range{Min: 10, Max: MaxValue + 1} }, "carbs"},
		{"fat above cap", func(c *Config) { c.Fat = Range{Min: 5, Max: MaxValue + 1} }, "fat"},
		{"perturbation overflows", func(c *Config) { c.Perturbation = math.MaxInt64/2 + 1 }, "perturbation"},
		{"perturbation above cap", func(c *Config) { c.Perturbation = MaxValue + 1 }, "perturbation"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(3)
			tt.modify(&cfg)

			err := cfg.Validate()
			require.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.want)

			_, err = NewGenerator(cfg, DefaultVocabulary).Generate(sampleCatalog(), 5)
			assert.ErrorIs(t, err, ErrInvalidConfig, "Generate must refuse, not panic")
		})
	}
}

func TestConfig_ValidateAtCap(t *testing.T) {
	cfg := testConfig(3)
	cfg.Calories = Range{Min: 0, Max: MaxValue}
	cfg.Perturbation = MaxValue
	require.NoError(t, cfg.Validate())

	foods, err := NewGenerator(cfg, DefaultVocabulary).Generate(sampleCatalog(), 20)
	require.NoError(t, err)
	for _, f := range foods {
		assert.True(t, f.IsEnergyBalanced(cfg.Tolerance), "food %s unbalanced", f.ID)
	}
}
